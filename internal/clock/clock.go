package clock

import (
	"sync"

	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// FrameClock holds the layer's two per-session timestamps. The zero value
// is ready to use: both timestamps start at zero, and Begun reports the
// "before the first successful beginFrame" state until a frame latches.
//
// Safe for concurrent use, though the OpenXR calling convention never
// drives it concurrently within one session (SPEC_FULL.md section 5).
type FrameClock struct {
	mu      sync.Mutex
	waited  xrtypes.Time
	begun   xrtypes.Time
	latched bool
}

// New creates a FrameClock with no waited or latched frame yet.
func New() *FrameClock {
	return &FrameClock{}
}

// OnWaitFrame records t as the most recently waited predictedDisplayTime.
// Called from the waitFrame trampoline only after the downstream call
// itself has succeeded.
func (c *FrameClock) OnWaitFrame(t xrtypes.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waited = t
}

// OnBeginFrame promotes the most recently waited timestamp into Begun.
// Called from the beginFrame trampoline only after the downstream call
// itself has succeeded; a failed beginFrame must never call this, so a
// stale "begun" from the prior frame is never silently advanced.
func (c *FrameClock) OnBeginFrame() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.begun = c.waited
	c.latched = true
}

// Begun returns the current frame's authoritative display time and
// whether any frame has ever latched. Before the first successful
// beginFrame, ok is false and callers must treat hand state as the empty
// table rather than querying at time zero.
func (c *FrameClock) Begun() (t xrtypes.Time, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.begun, c.latched
}
