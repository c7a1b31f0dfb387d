package visualize

import (
	"github.com/handxr/ctrllayer/internal/pathreg"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// HandVisualizer receives the joint data sampled by each successful
// syncActions trampoline call, only when the engine was built with
// WithVisualizer. endFrame is not intercepted, so Draw runs once per
// syncActions call, which may be zero or several times in one frame.
// Draw must not block meaningfully; any error it encounters internally is its own concern to
// log, never surfaced to the application.
type HandVisualizer interface {
	Draw(begun xrtypes.Time, joints map[pathreg.Side][]xrtypes.JointLocation)
}

// NoOp is the default HandVisualizer: it does nothing. Wired in whenever
// visualization is not enabled, so the engine always holds a non-nil
// adapter.
type NoOp struct{}

// Draw implements HandVisualizer.
func (NoOp) Draw(begun xrtypes.Time, joints map[pathreg.Side][]xrtypes.JointLocation) {}
