package diagnostic

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handxr/ctrllayer/internal/tracelog"
)

// NewTraceCommand creates the "trace" command group: list and dump.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect a recorded session trace database",
	}
	cmd.AddCommand(newTraceListCommand(rootOpts))
	cmd.AddCommand(newTraceDumpCommand(rootOpts))
	return cmd
}

func newTraceListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list <trace-db>",
		Short:         "List every run recorded in a trace database",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraceList(rootOpts, args[0], cmd)
		},
	}
}

func newTraceDumpCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "dump <trace-db> <run-id>",
		Short:         "Dump every recorded tick for one run, in sequence order",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraceDump(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runTraceList(opts *RootOptions, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose,
	}

	store, err := tracelog.Open(dbPath)
	if err != nil {
		_ = formatter.Error("E001", err.Error())
		return NewExitError(ExitCommandError, err.Error())
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context())
	if err != nil {
		_ = formatter.Error("E002", err.Error())
		return NewExitError(ExitCommandError, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "no runs recorded")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintln(formatter.Writer, r)
	}
	return nil
}

func runTraceDump(opts *RootOptions, dbPath, runID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose,
	}

	store, err := tracelog.Open(dbPath)
	if err != nil {
		_ = formatter.Error("E001", err.Error())
		return NewExitError(ExitCommandError, err.Error())
	}
	defer store.Close()

	records, err := store.Replay(context.Background(), runID)
	if err != nil {
		_ = formatter.Error("E002", err.Error())
		return NewExitError(ExitCommandError, err.Error())
	}
	if len(records) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("no records for run %s", runID))
	}

	if formatter.Format == "json" {
		return formatter.Success(records)
	}
	for _, rec := range records {
		fmt.Fprintf(formatter.Writer, "seq=%d begun=%d scalars=%v\n", rec.Seq, rec.Begun, rec.Scalars)
	}
	return nil
}
