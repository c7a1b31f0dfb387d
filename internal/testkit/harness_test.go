package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPinchScenarioClosesTrigger(t *testing.T) {
	scenario := &Scenario{
		Name: "pinch-closes-trigger",
		Frames: []Frame{
			{
				DisplayTime: 1000,
				Left: map[string]JointSample{
					"THUMB_TIP": {X: 0.1, Y: 0.1, Z: 0.1},
					"INDEX_TIP": {X: 0.1, Y: 0.1, Z: 0.1},
				},
			},
		},
		Assertions: []Assertion{
			{Frame: 0, Path: "/user/hand/left/input/trigger/value", Want: 1.0},
			{Frame: 0, Path: "/user/hand/left/input/trigger/click", Want: 1.0},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "assertions failed: %v", result.Errors)
}

func TestRunReportsAssertionMismatch(t *testing.T) {
	scenario := &Scenario{
		Name: "pinch-open",
		Frames: []Frame{
			{DisplayTime: 1000},
		},
		Assertions: []Assertion{
			{Frame: 0, Path: "/user/hand/left/input/trigger/value", Want: 1.0},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass, "expected assertion mismatch (hands at rest, far apart)")
}
