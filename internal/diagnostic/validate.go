package diagnostic

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/handxr/ctrllayer/internal/config"
)

// ValidationResult is the validate command's JSON payload.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewValidateCommand creates the "validate" command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Load and validate a layer configuration file",
		Long: `Parses a layer configuration file and runs its structural validation
pass, reporting every field that could not be parsed or failed validation
and was reset to its documented default. A file with warnings is still a
usable configuration; warnings are not fatal.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	f, err := os.Open(path)
	if err != nil {
		_ = formatter.Error("E001", err.Error())
		return NewExitError(ExitCommandError, fmt.Sprintf("open %s: %v", path, err))
	}
	defer f.Close()

	var warnings []string
	collector := &warningCollector{formatter: formatter, warnings: &warnings}
	log := slog.New(slog.NewTextHandler(collector, nil))

	cfg := config.Load(f, log)
	cfg = config.Validate(cfg, log)

	result := ValidationResult{Valid: len(warnings) == 0, Warnings: warnings}

	if !result.Valid {
		if formatter.Format == "json" {
			if err := formatter.Success(result); err != nil {
				return err
			}
			return NewExitError(ExitFailure, fmt.Sprintf("%d warning(s) during validation", len(warnings)))
		}
		fmt.Fprintln(formatter.Writer, "config loaded with warnings:")
		for _, w := range warnings {
			fmt.Fprintf(formatter.Writer, "  - %s\n", w)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d warning(s) during validation", len(warnings)))
	}

	formatter.VerboseLog("interaction profile: %s", cfg.RawInteractionProfile)
	return formatter.Success(result)
}

// warningCollector is an io.Writer adapting slog's text handler output
// into a flat warning list, so validate can report every dropped field
// as a structured ValidationResult entry instead of raw log lines.
type warningCollector struct {
	formatter *OutputFormatter
	warnings  *[]string
}

func (w *warningCollector) Write(p []byte) (int, error) {
	line := string(p)
	*w.warnings = append(*w.warnings, line)
	if w.formatter.Verbose {
		fmt.Fprint(w.formatter.GetErrWriter(), line)
	}
	return len(p), nil
}
