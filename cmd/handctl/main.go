// Command handctl is the offline diagnostic CLI for the hand-to-controller
// OpenXR API layer: validating configuration files, replaying joint-frame
// scenarios through the real dispatch engine, and inspecting recorded
// session traces.
package main

import (
	"fmt"
	"os"

	"github.com/handxr/ctrllayer/internal/diagnostic"
)

func main() {
	root := diagnostic.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(diagnostic.GetExitCode(err))
	}
}
