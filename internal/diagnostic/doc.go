// Package diagnostic implements the Diagnostic CLI (SPEC_FULL.md section
// 13): handctl's validate, simulate, and trace subcommands, and the
// text/json output formatting shared between them.
//
// The command/formatter split follows the teacher's internal/cli package:
// a RootOptions struct carrying global flags, an OutputFormatter handling
// text vs. json rendering, and exit codes distinguishing command errors
// from assertion/validation failures.
package diagnostic
