package testkit

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a conformance test scenario: a sequence of frames giving
// both hands' joint positions, plus assertions on the resulting gesture
// scalars. Scenarios validate the gesture recognizer end-to-end through a
// real dispatch.Engine and a fixture-backed downstream, never a mock of
// the engine itself; pose synthesis (locateSpace) is not exercised.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Frames      []Frame     `yaml:"frames"`
	Assertions  []Assertion `yaml:"assertions"`
}

// Frame is one predicted display time's joint data for both hands. Joints
// not listed default to a valid, widely separated rest pose (see
// restJointLocation), so a scenario only needs to name the joints its
// gestures care about.
type Frame struct {
	DisplayTime int64                  `yaml:"display_time"`
	Left        map[string]JointSample `yaml:"left,omitempty"`
	Right       map[string]JointSample `yaml:"right,omitempty"`
}

// JointSample overrides one joint's position and validity for a frame.
// Joint names match the config model's token spelling (e.g. "THUMB_TIP").
type JointSample struct {
	X, Y, Z float64 `yaml:"x,omitempty"`
	Valid   *bool   `yaml:"valid,omitempty"`
}

// Assertion checks one full binding path's gesture scalar after a given
// frame's syncActions has run.
type Assertion struct {
	// Frame is the zero-based index into Scenario.Frames whose scalars
	// this assertion checks.
	Frame int `yaml:"frame"`

	// Path is the full binding path, e.g.
	// "/user/hand/left/input/trigger/value".
	Path string `yaml:"path"`

	// Want is the expected scalar value, compared within Tolerance.
	Want float64 `yaml:"want"`

	// Tolerance defaults to 0.001 when zero.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Absent, when true, asserts the path was not written at all this
	// frame (the gesture's hand was disabled, invalid, or unbound).
	Absent bool `yaml:"absent,omitempty"`
}

// LoadScenario reads and strictly parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: read scenario: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("testkit: parse scenario: %w", err)
	}
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Frames) == 0 {
		return fmt.Errorf("frames list is required and must be non-empty")
	}
	for i, a := range s.Assertions {
		if a.Frame < 0 || a.Frame >= len(s.Frames) {
			return fmt.Errorf("assertions[%d]: frame %d out of range", i, a.Frame)
		}
		if a.Path == "" {
			return fmt.Errorf("assertions[%d]: path is required", i)
		}
	}
	return nil
}
