package actionstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handxr/ctrllayer/internal/xrtypes"
)

const path = "/user/hand/left/input/trigger/value"

func TestFirstSyncNeverReportsChanged(t *testing.T) {
	tb := New()
	tb.BeginTick()
	tb.Write(path, 0.9)
	tb.CommitSync()

	state, ok := tb.Boolean(path, 0.75, 100)
	require.True(t, ok, "expected found")
	assert.False(t, state.ChangedSinceLastSync, "first sync since instance creation must report changed=false")
	assert.Equal(t, xrtypes.Time(100), state.LastChangeTime)
	assert.True(t, state.CurrentState, "0.9 >= 0.75 threshold should be true")
}

func TestRepeatedReadsWithinTickAreStable(t *testing.T) {
	tb := New()
	tb.BeginTick()
	tb.Write(path, 0.9)
	tb.CommitSync()

	first, _ := tb.Boolean(path, 0.75, 100)
	second, _ := tb.Boolean(path, 0.75, 100)
	assert.Equal(t, first, second, "repeated reads within a tick diverged")
}

func TestBooleanTransitionDetected(t *testing.T) {
	tb := New()
	tb.BeginTick()
	tb.Write(path, 0.9)
	tb.CommitSync()
	tb.Boolean(path, 0.75, 100) // establish the first-sync baseline

	tb.BeginTick()
	tb.Write(path, 0.1)
	tb.CommitSync()

	state, _ := tb.Boolean(path, 0.75, 200)
	assert.True(t, state.ChangedSinceLastSync, "transition from above to below threshold must report changed=true")
	assert.Equal(t, xrtypes.Time(200), state.LastChangeTime)
	assert.False(t, state.CurrentState, "0.1 >= 0.75 should be false")
}

func TestUnchangedKeepsPriorChangeTime(t *testing.T) {
	tb := New()
	tb.BeginTick()
	tb.Write(path, 0.9)
	tb.CommitSync()
	tb.Boolean(path, 0.75, 100)

	tb.BeginTick()
	tb.Write(path, 0.95)
	tb.CommitSync()
	s1, _ := tb.Boolean(path, 0.75, 200)
	assert.False(t, s1.ChangedSinceLastSync, "staying above threshold must not report changed")
	assert.Equal(t, xrtypes.Time(100), s1.LastChangeTime, "want unchanged")

	tb.BeginTick()
	tb.Write(path, 0.92)
	tb.CommitSync()
	s2, _ := tb.Boolean(path, 0.75, 300)
	assert.Equal(t, xrtypes.Time(100), s2.LastChangeTime, "want still unchanged")
}

func TestMissingPathNotFound(t *testing.T) {
	tb := New()
	tb.BeginTick()
	tb.CommitSync()
	_, ok := tb.Boolean(path, 0.75, 100)
	assert.False(t, ok, "expected not-found for a path never written")
}

func TestFloatUsesRawScalarAndExactComparison(t *testing.T) {
	tb := New()
	tb.BeginTick()
	tb.Write(path, 0.4)
	tb.CommitSync()
	tb.Float(path, 100)

	tb.BeginTick()
	tb.Write(path, 0.6)
	tb.CommitSync()
	state, ok := tb.Float(path, 200)
	require.True(t, ok, "expected found")
	assert.Equal(t, 0.6, state.CurrentState)
	assert.True(t, state.ChangedSinceLastSync, "0.4 -> 0.6 must report changed=true")
}
