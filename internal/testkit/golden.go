package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden runs scenario and compares its frame-by-frame scalar
// trace against testdata/golden/{scenario.Name}.golden, regenerated with
// `go test ./internal/testkit/... -update`.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	payload, err := canonicalJSON(result.Frames)
	if err != nil {
		return nil, fmt.Errorf("testkit: encode golden payload: %w", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, payload)

	return result, nil
}

// canonicalJSON serializes v with sorted map keys and no HTML escaping,
// like the Trace Recorder's canonical encoding, but indented for
// readability where the recorder's rows are compact.
func canonicalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
