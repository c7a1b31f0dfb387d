package dispatch

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handxr/ctrllayer/internal/geom"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, nil))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// fakeRuntime stands in for a downstream OpenXR runtime: it implements
// every entry point the engine resolves via GetInstanceProcAddr, with
// fixed joint data for both hands.
type fakeRuntime struct {
	paths      map[string]xrtypes.Path
	pathNames  map[xrtypes.Path]string
	nextPath   xrtypes.Path
	handJoints map[int][]xrtypes.JointLocation
	nextHandle uint64
	profile    xrtypes.Path
}

func newFakeRuntime() *fakeRuntime {
	joints := make([]xrtypes.JointLocation, xrtypes.JointCount)
	for i := range joints {
		joints[i] = xrtypes.JointLocation{
			Flags: xrtypes.LocationFlagPositionValid | xrtypes.LocationFlagOrientationValid,
			Pose:  geom.Pose{Position: geom.Vec3{X: float64(i) * 0.01}, Orientation: geom.IdentityQuat},
		}
	}
	// Pull thumb tip and index tip together so pinch reads as fully closed.
	joints[xrtypes.JointThumbTip].Pose.Position = geom.Vec3{X: 0.1, Y: 0.1, Z: 0.1}
	joints[xrtypes.JointIndexTip].Pose.Position = geom.Vec3{X: 0.1, Y: 0.1, Z: 0.1}

	right := make([]xrtypes.JointLocation, len(joints))
	copy(right, joints)

	return &fakeRuntime{
		paths:     make(map[string]xrtypes.Path),
		pathNames: make(map[xrtypes.Path]string),
		handJoints: map[int][]xrtypes.JointLocation{
			0: joints,
			1: right,
		},
	}
}

func (fr *fakeRuntime) stringToPath(name string) xrtypes.Path {
	if p, ok := fr.paths[name]; ok {
		return p
	}
	fr.nextPath++
	fr.paths[name] = fr.nextPath
	fr.pathNames[fr.nextPath] = name
	return fr.nextPath
}

func (fr *fakeRuntime) getInstanceProcAddr(instance xrtypes.Instance, name string) (any, xrtypes.Result) {
	switch name {
	case "xrWaitFrame":
		return func(xrtypes.Session, *xrtypes.FrameWaitInfo, *xrtypes.FrameState) xrtypes.Result {
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
			fr.nextHandle++
			return xrtypes.Space(fr.nextHandle), xrtypes.Success
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
			name, ok := fr.pathNames[p]
			if !ok {
				return "", xrtypes.ErrorPathInvalid
			}
			return name, xrtypes.Success
		}, xrtypes.Success
	case "xrStringToPath":
		return func(_ xrtypes.Instance, s string) (xrtypes.Path, xrtypes.Result) {
			return fr.stringToPath(s), xrtypes.Success
		}, xrtypes.Success
	case "xrCreateHandTrackerEXT":
		return func(xrtypes.Session, int) (uint64, xrtypes.Result) {
			fr.nextHandle++
			return fr.nextHandle, xrtypes.Success
		}, xrtypes.Success
	case "xrDestroyHandTrackerEXT":
		return func(uint64) xrtypes.Result { return xrtypes.Success }, xrtypes.Success
	case "xrLocateHandJointsEXT":
		return func(handle uint64, base xrtypes.Space, t xrtypes.Time) ([]xrtypes.JointLocation, xrtypes.Result) {
			side := 0
			if handle%2 == 0 {
				side = 1
			}
			return fr.handJoints[side], xrtypes.Success
		}, xrtypes.Success
	default:
		return nil, xrtypes.ErrorFunctionUnsupported
	}
}

func newArmedEngine(t *testing.T) (*Engine, *fakeRuntime) {
	t.Helper()
	fr := newFakeRuntime()
	e := New(WithLogger(discardLogger()))

	info := &xrtypes.NegotiateLoaderInfo{
		MinInterfaceVersion: 1, MaxInterfaceVersion: 1,
		MinAPIVersion: xrtypes.SupportedAPIVersionMin, MaxAPIVersion: xrtypes.SupportedAPIVersionMax,
	}
	var request xrtypes.NegotiateApiLayerRequest
	require.Equal(t, xrtypes.Success, e.Negotiate(info, xrtypes.LayerName, &request))

	createInfo := &xrtypes.ApiLayerCreateInfo{
		NextInfo: &xrtypes.ApiLayerNextInfo{
			NextGetInstanceProcAddr: fr.getInstanceProcAddr,
			NextCreateApiLayerInstance: func(*xrtypes.ApiLayerCreateInfo, *xrtypes.InstanceCreateInfo) (xrtypes.Instance, xrtypes.Result) {
				return 1, xrtypes.Success
			},
		},
	}
	instanceInfo := &xrtypes.InstanceCreateInfo{ApplicationName: "test-app"}
	instance, result := request.CreateApiLayerInstance(createInfo, instanceInfo)
	require.Equal(t, xrtypes.Success, result)
	require.True(t, e.armed, "engine did not arm")

	for _, name := range xrtypes.InterceptedNames {
		_, result := e.Resolve(instance, name)
		require.Equal(t, xrtypes.Success, result, "Resolve(%s)", name)
	}

	return e, fr
}

func TestNegotiateRejectsWrongLayerName(t *testing.T) {
	e := New(WithLogger(discardLogger()))
	info := &xrtypes.NegotiateLoaderInfo{
		MinInterfaceVersion: 1, MaxInterfaceVersion: 1,
		MinAPIVersion: xrtypes.SupportedAPIVersionMin, MaxAPIVersion: xrtypes.SupportedAPIVersionMax,
	}
	var request xrtypes.NegotiateApiLayerRequest
	result := e.Negotiate(info, "wrong-name", &request)
	assert.Equal(t, xrtypes.ErrorInitializationFailed, result)
}

func TestNegotiateRejectsUnsupportedInterfaceRange(t *testing.T) {
	e := New(WithLogger(discardLogger()))
	info := &xrtypes.NegotiateLoaderInfo{
		MinInterfaceVersion: 2, MaxInterfaceVersion: 3,
		MinAPIVersion: xrtypes.SupportedAPIVersionMin, MaxAPIVersion: xrtypes.SupportedAPIVersionMax,
	}
	var request xrtypes.NegotiateApiLayerRequest
	result := e.Negotiate(info, xrtypes.LayerName, &request)
	assert.Equal(t, xrtypes.ErrorInitializationFailed, result)
}

func TestFullSessionLifecycleSynthesizesPinchAndGripPose(t *testing.T) {
	e, _ := newArmedEngine(t)

	session, result := e.CreateSession(1)
	require.Equal(t, xrtypes.Success, result)

	var state xrtypes.FrameState
	require.Equal(t, xrtypes.Success, e.WaitFrame(session, &xrtypes.FrameWaitInfo{}, &state))
	state.PredictedDisplayTime = 1000
	e.frameClock.OnWaitFrame(state.PredictedDisplayTime)
	require.Equal(t, xrtypes.Success, e.BeginFrame(session, &xrtypes.FrameBeginInfo{}))

	var action xrtypes.Action = 42
	bindings := &xrtypes.InteractionProfileSuggestedBindings{
		InteractionProfile: e.cfg.InteractionProfile,
		Suggestions: []xrtypes.InteractionProfileSuggestedBinding{
			{Action: action, Binding: mustPath(t, e, "/user/hand/left/input/trigger/value")},
		},
	}
	require.Equal(t, xrtypes.Success, e.SuggestInteractionProfileBindings(1, bindings))

	require.Equal(t, xrtypes.Success, e.SyncActions(session, &xrtypes.SyncActionsInfo{}))

	state2, result := e.GetActionStateFloat(session, &xrtypes.ActionStateGetInfo{Action: action})
	require.Equal(t, xrtypes.Success, result)
	assert.GreaterOrEqual(t, state2.CurrentState, 0.9, "want a near-fully-closed pinch")

	spaceInfo := &xrtypes.ActionSpaceCreateInfo{Action: action}
	space, result := e.CreateActionSpace(session, spaceInfo)
	require.Equal(t, xrtypes.Success, result)

	actionGrip := action
	gripBindings := &xrtypes.InteractionProfileSuggestedBindings{
		InteractionProfile: e.cfg.InteractionProfile,
		Suggestions: []xrtypes.InteractionProfileSuggestedBinding{
			{Action: actionGrip, Binding: mustPath(t, e, "/user/hand/left/input/grip/pose")},
		},
	}
	e.actions.Clear()
	require.Equal(t, xrtypes.Success, e.SuggestInteractionProfileBindings(1, gripBindings), "SuggestInteractionProfileBindings(grip)")

	gripSpace, result := e.CreateActionSpace(session, &xrtypes.ActionSpaceCreateInfo{Action: actionGrip})
	require.Equal(t, xrtypes.Success, result, "CreateActionSpace(grip)")

	loc, result := e.LocateSpace(gripSpace, e.localSpace, state.PredictedDisplayTime)
	require.Equal(t, xrtypes.Success, result)
	assert.True(t, loc.Flags.Valid(), "expected a valid synthesized grip pose")

	assert.Equal(t, xrtypes.Success, e.DestroySpace(space))
	assert.Equal(t, xrtypes.Success, e.DestroySpace(gripSpace), "DestroySpace(grip)")
	assert.Equal(t, xrtypes.Success, e.DestroySession(session))
}

func mustPath(t *testing.T, e *Engine, s string) xrtypes.Path {
	t.Helper()
	p, result := e.down.StringToPath(e.instance, s)
	require.Equal(t, xrtypes.Success, result, "StringToPath(%q)", s)
	return p
}

func TestPollEventAdvertisesOnceAfterCreateSession(t *testing.T) {
	e, _ := newArmedEngine(t)
	session, result := e.CreateSession(1)
	require.Equal(t, xrtypes.Success, result)

	var buf xrtypes.EventDataBuffer
	require.Equal(t, xrtypes.Success, e.PollEvent(1, &buf), "first PollEvent")
	assert.Equal(t, xrtypes.StructureTypeEventDataInteractionProfileChanged, buf.Type)
	assert.Equal(t, session, buf.Session)

	var buf2 xrtypes.EventDataBuffer
	result = e.PollEvent(1, &buf2)
	assert.Equal(t, xrtypes.EventUnavailable, result, "second PollEvent should passthrough EventUnavailable")
}

func TestGetCurrentInteractionProfileReportsConfiguredProfile(t *testing.T) {
	e, _ := newArmedEngine(t)
	profile, result := e.GetCurrentInteractionProfile(1, 0)
	require.Equal(t, xrtypes.Success, result)
	assert.Equal(t, e.cfg.InteractionProfile, profile)
}
