package handtrack

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handxr/ctrllayer/internal/pathreg"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateAndLocateJoints(t *testing.T) {
	down := &xrtypes.Downstream{
		CreateHandTrackerEXT: func(session xrtypes.Session, side int) (uint64, xrtypes.Result) {
			return uint64(side + 1), xrtypes.Success
		},
		LocateHandJointsEXT: func(handle uint64, base xrtypes.Space, t xrtypes.Time) ([]xrtypes.JointLocation, xrtypes.Result) {
			joints := make([]xrtypes.JointLocation, xrtypes.JointCount)
			joints[xrtypes.JointPalm].Flags = xrtypes.LocationFlagOrientationValid | xrtypes.LocationFlagPositionValid
			return joints, xrtypes.Success
		},
	}

	tr := NewTracker(down, xrtypes.Session(1), discardLogger())
	require.NoError(t, tr.Create(pathreg.SideLeft))

	joints, result := tr.LocateJoints(pathreg.SideLeft, xrtypes.Space(1), 100)
	require.True(t, xrtypes.Succeeded(result))
	assert.True(t, joints[xrtypes.JointPalm].Flags.Valid(), "expected palm joint to be valid")
}

func TestLocateJointsPropagatesDownstreamFailure(t *testing.T) {
	down := &xrtypes.Downstream{
		CreateHandTrackerEXT: func(session xrtypes.Session, side int) (uint64, xrtypes.Result) {
			return uint64(side + 1), xrtypes.Success
		},
		LocateHandJointsEXT: func(handle uint64, base xrtypes.Space, t xrtypes.Time) ([]xrtypes.JointLocation, xrtypes.Result) {
			return nil, xrtypes.ErrorRuntimeFailure
		},
	}
	tr := NewTracker(down, xrtypes.Session(1), discardLogger())
	require.NoError(t, tr.Create(pathreg.SideLeft))

	_, result := tr.LocateJoints(pathreg.SideLeft, xrtypes.Space(1), 100)
	assert.Equal(t, xrtypes.ErrorRuntimeFailure, result, "expected the downstream's own failure result to propagate")
}

func TestLocateJointsUntrackedSide(t *testing.T) {
	down := &xrtypes.Downstream{}
	tr := NewTracker(down, xrtypes.Session(1), discardLogger())

	_, result := tr.LocateJoints(pathreg.SideRight, xrtypes.Space(1), 100)
	assert.Equal(t, xrtypes.ErrorHandleInvalid, result, "expected ErrorHandleInvalid for a side never Create'd")
}

func TestCreateFailurePropagates(t *testing.T) {
	down := &xrtypes.Downstream{
		CreateHandTrackerEXT: func(xrtypes.Session, int) (uint64, xrtypes.Result) {
			return 0, xrtypes.ErrorRuntimeFailure
		},
	}
	tr := NewTracker(down, xrtypes.Session(1), discardLogger())
	require.Error(t, tr.Create(pathreg.SideLeft))

	_, result := tr.LocateJoints(pathreg.SideLeft, xrtypes.Space(1), 100)
	assert.Equal(t, xrtypes.ErrorHandleInvalid, result, "expected side to remain untracked after failed Create")
}

func TestDestroyClearsHandles(t *testing.T) {
	destroyed := map[uint64]bool{}
	down := &xrtypes.Downstream{
		CreateHandTrackerEXT: func(session xrtypes.Session, side int) (uint64, xrtypes.Result) {
			return uint64(side + 1), xrtypes.Success
		},
		DestroyHandTrackerEXT: func(handle uint64) xrtypes.Result {
			destroyed[handle] = true
			return xrtypes.Success
		},
	}
	tr := NewTracker(down, xrtypes.Session(1), discardLogger())
	tr.Create(pathreg.SideLeft)
	tr.Create(pathreg.SideRight)
	tr.Destroy()

	assert.Len(t, destroyed, 2)

	_, result := tr.LocateJoints(pathreg.SideLeft, xrtypes.Space(1), 100)
	assert.Equal(t, xrtypes.ErrorHandleInvalid, result, "expected no trackers after Destroy")
}
