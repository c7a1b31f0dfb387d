package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handxr/ctrllayer/internal/xrtypes"
)

func TestBegunBeforeFirstFrame(t *testing.T) {
	c := New()
	_, ok := c.Begun()
	assert.False(t, ok, "expected ok=false before any beginFrame")
}

func TestWaitThenBeginLatches(t *testing.T) {
	c := New()
	c.OnWaitFrame(100)
	c.OnBeginFrame()

	got, ok := c.Begun()
	require.True(t, ok)
	assert.Equal(t, xrtypes.Time(100), got)
}

func TestFailedBeginFrameNeverCalled(t *testing.T) {
	c := New()
	c.OnWaitFrame(100)
	c.OnBeginFrame()
	c.OnWaitFrame(200) // a second waitFrame arrives...

	// ...but beginFrame for it is never invoked (simulating a downstream
	// failure): begun must remain at the previously latched value.
	got, ok := c.Begun()
	require.True(t, ok)
	assert.Equal(t, xrtypes.Time(100), got)
}

func TestSecondSuccessfulFrameAdvances(t *testing.T) {
	c := New()
	c.OnWaitFrame(100)
	c.OnBeginFrame()
	c.OnWaitFrame(200)
	c.OnBeginFrame()

	got, ok := c.Begun()
	require.True(t, ok)
	assert.Equal(t, xrtypes.Time(200), got)
}
