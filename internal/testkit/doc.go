// Package testkit is the conformance test harness: it loads YAML-defined
// scenarios (a sequence of frames, each giving every joint's position for
// both hands, plus assertions on the resulting action state), drives a
// fixture-backed dispatch.Engine through one full session's frame loop,
// and reports a pass/fail Result with a flattened trace suitable for
// golden-file comparison.
//
// This package never invokes the Go testing package's T directly except
// in golden.go's thin goldie wrapper, so Run can also back the handctl
// simulate command outside of `go test`.
package testkit
