package testkit

import (
	"strings"

	"github.com/handxr/ctrllayer/internal/geom"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// jointFrame is one frame's full 26-joint set for both hands.
type jointFrame struct {
	left, right []xrtypes.JointLocation
}

// fixture is the fake downstream runtime a Scenario drives the engine
// against: a minimal in-process XR_EXT_hand_tracking-capable runtime that
// answers every entry point the engine intercepts or resolves directly,
// replaying the scenario's per-frame joint data instead of sampling real
// hardware.
type fixture struct {
	paths        map[string]xrtypes.Path
	pathNames    map[xrtypes.Path]string
	nextPath     xrtypes.Path
	nextHandle   uint64
	handleSide   map[uint64]int
	framesByTime map[xrtypes.Time]jointFrame

	// currentDisplayTime is what the next xrWaitFrame reports; the harness
	// sets it immediately before calling Engine.WaitFrame for each frame.
	currentDisplayTime xrtypes.Time
}

// restJointLocation is the default pose assigned to a joint a frame does
// not explicitly override: valid, and far enough from every other default
// joint that no gesture reads as engaged unless the scenario says so.
func restJointLocation(idx int) xrtypes.JointLocation {
	return xrtypes.JointLocation{
		Flags: xrtypes.LocationFlagPositionValid | xrtypes.LocationFlagOrientationValid,
		Pose:  geom.Pose{Position: geom.Vec3{X: float64(idx) * 0.2}, Orientation: geom.IdentityQuat},
	}
}

func buildJointSet(overrides map[string]JointSample) []xrtypes.JointLocation {
	joints := make([]xrtypes.JointLocation, xrtypes.JointCount)
	for i := range joints {
		joints[i] = restJointLocation(i)
	}
	for name, sample := range overrides {
		idx, ok := xrtypes.ParseJointName(strings.ToUpper(name))
		if !ok {
			continue
		}
		valid := true
		if sample.Valid != nil {
			valid = *sample.Valid
		}
		flags := xrtypes.LocationFlags(0)
		if valid {
			flags = xrtypes.LocationFlagPositionValid | xrtypes.LocationFlagOrientationValid
		}
		joints[idx] = xrtypes.JointLocation{
			Flags: flags,
			Pose:  geom.Pose{Position: geom.Vec3{X: sample.X, Y: sample.Y, Z: sample.Z}, Orientation: geom.IdentityQuat},
		}
	}
	return joints
}

func newFixture(scenario *Scenario) *fixture {
	fx := &fixture{
		paths:        make(map[string]xrtypes.Path),
		pathNames:    make(map[xrtypes.Path]string),
		handleSide:   make(map[uint64]int),
		framesByTime: make(map[xrtypes.Time]jointFrame),
	}
	for _, frame := range scenario.Frames {
		fx.framesByTime[xrtypes.Time(frame.DisplayTime)] = jointFrame{
			left:  buildJointSet(frame.Left),
			right: buildJointSet(frame.Right),
		}
	}
	return fx
}

func (fx *fixture) stringToPath(name string) xrtypes.Path {
	if p, ok := fx.paths[name]; ok {
		return p
	}
	fx.nextPath++
	fx.paths[name] = fx.nextPath
	fx.pathNames[fx.nextPath] = name
	return fx.nextPath
}

// getInstanceProcAddr implements xrtypes.FnGetInstanceProcAddr for this
// fixture, answering every name the engine asks for during negotiation,
// instance creation, and Resolve.
func (fx *fixture) getInstanceProcAddr(instance xrtypes.Instance, name string) (any, xrtypes.Result) {
	switch name {
	case "xrWaitFrame":
		return func(_ xrtypes.Session, _ *xrtypes.FrameWaitInfo, state *xrtypes.FrameState) xrtypes.Result {
			if state != nil {
				state.PredictedDisplayTime = fx.currentDisplayTime
			}
			return xrtypes.Success
		}, xrtypes.Success
	case "xrBeginFrame":
		return func(xrtypes.Session, *xrtypes.FrameBeginInfo) xrtypes.Result { return xrtypes.Success }, xrtypes.Success
	case "xrCreateSession":
		return func(xrtypes.Instance) (xrtypes.Session, xrtypes.Result) { return 1, xrtypes.Success }, xrtypes.Success
	case "xrDestroySession":
		return func(xrtypes.Session) xrtypes.Result { return xrtypes.Success }, xrtypes.Success
	case "xrPollEvent":
		return func(xrtypes.Instance, *xrtypes.EventDataBuffer) xrtypes.Result { return xrtypes.EventUnavailable }, xrtypes.Success
	case "xrGetCurrentInteractionProfile":
		return func(xrtypes.Session, xrtypes.Path) (xrtypes.Path, xrtypes.Result) { return 0, xrtypes.Success }, xrtypes.Success
	case "xrSuggestInteractionProfileBindings":
		return func(xrtypes.Instance, *xrtypes.InteractionProfileSuggestedBindings) xrtypes.Result {
			return xrtypes.Success
		}, xrtypes.Success
	case "xrCreateActionSpace":
		return func(xrtypes.Session, *xrtypes.ActionSpaceCreateInfo) (xrtypes.Space, xrtypes.Result) {
			fx.nextHandle++
			return xrtypes.Space(fx.nextHandle), xrtypes.Success
		}, xrtypes.Success
	case "xrDestroySpace":
		return func(xrtypes.Space) xrtypes.Result { return xrtypes.Success }, xrtypes.Success
	case "xrLocateSpace":
		return func(xrtypes.Space, xrtypes.Space, xrtypes.Time) (xrtypes.SpaceLocation, xrtypes.Result) {
			return xrtypes.SpaceLocation{}, xrtypes.ErrorRuntimeFailure
		}, xrtypes.Success
	case "xrSyncActions":
		return func(xrtypes.Session, *xrtypes.SyncActionsInfo) xrtypes.Result { return xrtypes.Success }, xrtypes.Success
	case "xrGetActionStateBoolean":
		return func(xrtypes.Session, *xrtypes.ActionStateGetInfo) (xrtypes.ActionStateBoolean, xrtypes.Result) {
			return xrtypes.ActionStateBoolean{}, xrtypes.ErrorRuntimeFailure
		}, xrtypes.Success
	case "xrGetActionStateFloat":
		return func(xrtypes.Session, *xrtypes.ActionStateGetInfo) (xrtypes.ActionStateFloat, xrtypes.Result) {
			return xrtypes.ActionStateFloat{}, xrtypes.ErrorRuntimeFailure
		}, xrtypes.Success
	case "xrGetActionStatePose":
		return func(xrtypes.Session, *xrtypes.ActionStateGetInfo) (xrtypes.ActionStatePose, xrtypes.Result) {
			return xrtypes.ActionStatePose{}, xrtypes.ErrorRuntimeFailure
		}, xrtypes.Success
	case "xrCreateReferenceSpace":
		return func(xrtypes.Session, xrtypes.ReferenceSpaceType, geom.Pose) (xrtypes.Space, xrtypes.Result) {
			return 100, xrtypes.Success
		}, xrtypes.Success
	case "xrPathToString":
		return func(_ xrtypes.Instance, p xrtypes.Path) (string, xrtypes.Result) {
			name, ok := fx.pathNames[p]
			if !ok {
				return "", xrtypes.ErrorPathInvalid
			}
			return name, xrtypes.Success
		}, xrtypes.Success
	case "xrStringToPath":
		return func(_ xrtypes.Instance, s string) (xrtypes.Path, xrtypes.Result) {
			return fx.stringToPath(s), xrtypes.Success
		}, xrtypes.Success
	case "xrCreateHandTrackerEXT":
		return func(_ xrtypes.Session, side int) (uint64, xrtypes.Result) {
			fx.nextHandle++
			fx.handleSide[fx.nextHandle] = side
			return fx.nextHandle, xrtypes.Success
		}, xrtypes.Success
	case "xrDestroyHandTrackerEXT":
		return func(uint64) xrtypes.Result { return xrtypes.Success }, xrtypes.Success
	case "xrLocateHandJointsEXT":
		return func(handle uint64, base xrtypes.Space, t xrtypes.Time) ([]xrtypes.JointLocation, xrtypes.Result) {
			side, ok := fx.handleSide[handle]
			if !ok {
				return nil, xrtypes.ErrorHandleInvalid
			}
			frame, ok := fx.framesByTime[t]
			if !ok {
				return nil, xrtypes.ErrorRuntimeFailure
			}
			if side == 0 {
				return frame.left, xrtypes.Success
			}
			return frame.right, xrtypes.Success
		}, xrtypes.Success
	default:
		return nil, xrtypes.ErrorFunctionUnsupported
	}
}
