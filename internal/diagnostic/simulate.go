package diagnostic

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handxr/ctrllayer/internal/testkit"
)

// SimulateResult is the simulate command's JSON payload.
type SimulateResult struct {
	Scenario string               `json:"scenario"`
	Pass     bool                 `json:"pass"`
	Frames   []testkit.FrameTrace `json:"frames"`
	Errors   []string             `json:"errors,omitempty"`
}

// NewSimulateCommand creates the "simulate" command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <scenario-file>",
		Short: "Replay a joint-frame scenario through the dispatch engine",
		Long: `Loads a YAML scenario describing a sequence of per-frame joint
positions and runs it through a real dispatch engine and fixture downstream,
one waitFrame/beginFrame/syncActions per frame, then evaluates the
scenario's assertions against the resulting gesture scalars.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runSimulate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scenario, err := testkit.LoadScenario(path)
	if err != nil {
		_ = formatter.Error("E001", err.Error())
		return NewExitError(ExitCommandError, err.Error())
	}
	formatter.VerboseLog("loaded scenario %q with %d frame(s)", scenario.Name, len(scenario.Frames))

	result, err := testkit.Run(scenario)
	if err != nil {
		_ = formatter.Error("E002", err.Error())
		return NewExitError(ExitCommandError, err.Error())
	}

	out := SimulateResult{
		Scenario: scenario.Name,
		Pass:     result.Pass,
		Frames:   result.Frames,
		Errors:   result.Errors,
	}

	if !result.Pass {
		if formatter.Format == "json" {
			if err := formatter.Success(out); err != nil {
				return err
			}
			return NewExitError(ExitFailure, "scenario assertions failed")
		}
		fmt.Fprintf(formatter.Writer, "FAIL %s\n", scenario.Name)
		for _, e := range result.Errors {
			fmt.Fprintf(formatter.Writer, "  - %s\n", e)
		}
		return NewExitError(ExitFailure, "scenario assertions failed")
	}

	if formatter.Format == "text" {
		fmt.Fprintf(formatter.Writer, "PASS %s (%d frame(s))\n", scenario.Name, len(result.Frames))
		return nil
	}
	return formatter.Success(out)
}
