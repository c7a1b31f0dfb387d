package posesynth

import (
	"strings"

	"github.com/handxr/ctrllayer/internal/config"
	"github.com/handxr/ctrllayer/internal/geom"
	"github.com/handxr/ctrllayer/internal/handtrack"
	"github.com/handxr/ctrllayer/internal/pathreg"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// Synthesizer answers locateSpace for action spaces the layer owns:
// those created on a hand's grip or aim input path.
type Synthesizer struct {
	sampler handtrack.Sampler
	spaces  *pathreg.SpaceRegistry
}

// New creates a Synthesizer reading joints from sampler and action-space
// bookkeeping from spaces.
func New(sampler handtrack.Sampler, spaces *pathreg.SpaceRegistry) *Synthesizer {
	return &Synthesizer{sampler: sampler, spaces: spaces}
}

// Locate answers locateSpace for space. forward is true when the call
// must go to the downstream instead: space is unknown, its side is
// disabled, its binding path isn't a grip/aim pose, or the hand sampler
// has no tracker at all for that side. When forward is false, space is
// one this layer owns and result reports the outcome — which may itself
// be a failure surfaced from the hand sampler (SPEC_FULL.md section 7.5:
// a registered grip/aim space reports the sampler's own error rather
// than silently falling back to the downstream).
func (s *Synthesizer) Locate(space xrtypes.Space, baseSpace xrtypes.Space, t xrtypes.Time, cfg config.Config) (loc xrtypes.SpaceLocation, result xrtypes.Result, forward bool) {
	entry, ok := s.spaces.Get(space)
	if !ok {
		return xrtypes.SpaceLocation{}, xrtypes.Success, true
	}

	side := pathreg.SideOf(entry.FullPath)
	if side == pathreg.SideNeither {
		return xrtypes.SpaceLocation{}, xrtypes.Success, true
	}

	hand := cfg.Hand(side)
	if !hand.Enabled {
		return xrtypes.SpaceLocation{}, xrtypes.Success, true
	}

	isGrip := strings.Contains(entry.FullPath, "/input/grip/pose")
	isAim := strings.Contains(entry.FullPath, "/input/aim/pose")
	if !isGrip && !isAim {
		return xrtypes.SpaceLocation{}, xrtypes.Success, true
	}

	joints, jres := s.sampler.LocateJoints(side, baseSpace, t)
	if jres == xrtypes.ErrorHandleInvalid {
		// No hand tracker for this side at all; not ours to answer.
		return xrtypes.SpaceLocation{}, xrtypes.Success, true
	}
	if !xrtypes.Succeeded(jres) {
		return xrtypes.SpaceLocation{}, jres, false
	}

	jointIdx := cfg.AimJoint
	if isGrip {
		jointIdx = cfg.GripJoint
	}
	if int(jointIdx) >= len(joints) {
		return xrtypes.SpaceLocation{}, xrtypes.ErrorRuntimeFailure, false
	}
	joint := joints[jointIdx]

	pose := geom.Compose(entry.PoseInActionSpace, hand.Offset, joint.Pose)
	return xrtypes.SpaceLocation{Flags: joint.Flags, Pose: pose}, xrtypes.Success, false
}
