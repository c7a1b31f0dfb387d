package handtrack

import (
	"fmt"
	"log/slog"

	"github.com/handxr/ctrllayer/internal/pathreg"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// Sampler is the narrow interface the gesture recognizer and pose
// synthesizer use to read joint locations. The dispatch layer wires a
// *Tracker to downstream function pointers in production; the gesture and
// posesynth tests wire fakes that never touch xrtypes.Downstream at all.
type Sampler interface {
	// LocateJoints returns the full joint set for side at t against base.
	// result is xrtypes.ErrorHandleInvalid when that side has no tracker
	// at all (creation failed or was never attempted) — callers that only
	// care about a valid sample can test xrtypes.Succeeded(result) — and
	// is otherwise whatever xrLocateHandJointsEXT itself returned,
	// success or failure, so a caller that owns the space being located
	// can surface the runtime's own error instead of treating it as
	// untracked.
	LocateJoints(side pathreg.Side, base xrtypes.Space, t xrtypes.Time) (joints []xrtypes.JointLocation, result xrtypes.Result)
}

// sideIndex is the integer side argument CreateHandTrackerEXT expects,
// matching the original implementation's 0=left, 1=right convention.
func sideIndex(side pathreg.Side) int {
	if side == pathreg.SideLeft {
		return 0
	}
	return 1
}

// Tracker owns the two XR_EXT_hand_tracking handles (left, right) for one
// session and samples joints through the downstream function pointers.
type Tracker struct {
	down    *xrtypes.Downstream
	log     *slog.Logger
	session xrtypes.Session
	handles map[pathreg.Side]uint64
}

// NewTracker creates a Tracker bound to down for session. It does not
// create any hand trackers yet; call Create for each side.
func NewTracker(down *xrtypes.Downstream, session xrtypes.Session, log *slog.Logger) *Tracker {
	return &Tracker{
		down:    down,
		log:     log,
		session: session,
		handles: make(map[pathreg.Side]uint64),
	}
}

// Create asks the downstream runtime for a hand tracker for side. A
// failure is logged and side is simply left untracked for this session
// (SPEC_FULL.md section 4.9: the layer degrades to pass-through for the
// affected side rather than aborting session creation).
func (tr *Tracker) Create(side pathreg.Side) error {
	if tr.down.CreateHandTrackerEXT == nil {
		return fmt.Errorf("handtrack: downstream does not implement xrCreateHandTrackerEXT")
	}
	handle, result := tr.down.CreateHandTrackerEXT(tr.session, sideIndex(side))
	if !xrtypes.Succeeded(result) {
		tr.log.Warn("handtrack: failed to create hand tracker", "side", side, "result", result)
		return fmt.Errorf("handtrack: xrCreateHandTrackerEXT(%s) failed: result=%v", side, result)
	}
	tr.handles[side] = handle
	return nil
}

// LocateJoints implements Sampler.
func (tr *Tracker) LocateJoints(side pathreg.Side, base xrtypes.Space, t xrtypes.Time) ([]xrtypes.JointLocation, xrtypes.Result) {
	handle, ok := tr.handles[side]
	if !ok || tr.down.LocateHandJointsEXT == nil {
		return nil, xrtypes.ErrorHandleInvalid
	}
	return tr.down.LocateHandJointsEXT(handle, base, t)
}

// Destroy releases every hand tracker this Tracker created.
func (tr *Tracker) Destroy() {
	for side, handle := range tr.handles {
		if tr.down.DestroyHandTrackerEXT != nil {
			if result := tr.down.DestroyHandTrackerEXT(handle); !xrtypes.Succeeded(result) {
				tr.log.Warn("handtrack: failed to destroy hand tracker", "side", side, "result", result)
			}
		}
	}
	tr.handles = make(map[pathreg.Side]uint64)
}
