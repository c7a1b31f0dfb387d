package dispatch

import "github.com/handxr/ctrllayer/internal/xrtypes"

// Resolve implements xrGetInstanceProcAddr: it always asks the downstream
// resolver first, then for each name this layer intercepts (SPEC_FULL.md
// section 4.1) captures the returned pointer as the "next" link and hands
// back the engine's own trampoline instead. Every other name passes through
// unchanged.
//
// Visualization entry points (xrCreateSwapchain and friends) are never
// captured here: the modeled ABI (SPEC_FULL.md section 6) does not carry
// swapchain image structs, so visualization taps the joint locations the
// recognizer already samples each sync rather than the rendered frame; see
// DESIGN.md.
func (e *Engine) Resolve(instance xrtypes.Instance, name string) (any, xrtypes.Result) {
	proc, result := e.down.GetInstanceProcAddr(instance, name)
	if !xrtypes.Succeeded(result) {
		return proc, result
	}

	trampoline, captured := e.captureAndSubstitute(name, proc)
	if !captured {
		return proc, result
	}
	return trampoline, result
}

// captureAndSubstitute type-asserts proc into the Downstream field matching
// name and returns the engine's trampoline method value to hand back in its
// place. ok is false for any name this layer does not intercept.
func (e *Engine) captureAndSubstitute(name string, proc any) (trampoline any, ok bool) {
	switch name {
	case "xrWaitFrame":
		if f, ok := proc.(func(xrtypes.Session, *xrtypes.FrameWaitInfo, *xrtypes.FrameState) xrtypes.Result); ok {
			e.down.WaitFrame = f
		}
		return e.WaitFrame, true
	case "xrBeginFrame":
		if f, ok := proc.(func(xrtypes.Session, *xrtypes.FrameBeginInfo) xrtypes.Result); ok {
			e.down.BeginFrame = f
		}
		return e.BeginFrame, true
	case "xrCreateSession":
		if f, ok := proc.(func(xrtypes.Instance) (xrtypes.Session, xrtypes.Result)); ok {
			e.down.CreateSession = f
		}
		return e.CreateSession, true
	case "xrDestroySession":
		if f, ok := proc.(func(xrtypes.Session) xrtypes.Result); ok {
			e.down.DestroySession = f
		}
		return e.DestroySession, true
	case "xrPollEvent":
		if f, ok := proc.(func(xrtypes.Instance, *xrtypes.EventDataBuffer) xrtypes.Result); ok {
			e.down.PollEvent = f
		}
		return e.PollEvent, true
	case "xrGetCurrentInteractionProfile":
		if f, ok := proc.(func(xrtypes.Session, xrtypes.Path) (xrtypes.Path, xrtypes.Result)); ok {
			e.down.GetCurrentInteractionProfile = f
		}
		return e.GetCurrentInteractionProfile, true
	case "xrSuggestInteractionProfileBindings":
		if f, ok := proc.(func(xrtypes.Instance, *xrtypes.InteractionProfileSuggestedBindings) xrtypes.Result); ok {
			e.down.SuggestInteractionProfileBindings = f
		}
		return e.SuggestInteractionProfileBindings, true
	case "xrCreateActionSpace":
		if f, ok := proc.(func(xrtypes.Session, *xrtypes.ActionSpaceCreateInfo) (xrtypes.Space, xrtypes.Result)); ok {
			e.down.CreateActionSpace = f
		}
		return e.CreateActionSpace, true
	case "xrDestroySpace":
		if f, ok := proc.(func(xrtypes.Space) xrtypes.Result); ok {
			e.down.DestroySpace = f
		}
		return e.DestroySpace, true
	case "xrLocateSpace":
		if f, ok := proc.(func(xrtypes.Space, xrtypes.Space, xrtypes.Time) (xrtypes.SpaceLocation, xrtypes.Result)); ok {
			e.down.LocateSpace = f
		}
		return e.LocateSpace, true
	case "xrSyncActions":
		if f, ok := proc.(func(xrtypes.Session, *xrtypes.SyncActionsInfo) xrtypes.Result); ok {
			e.down.SyncActions = f
		}
		return e.SyncActions, true
	case "xrGetActionStateBoolean":
		if f, ok := proc.(func(xrtypes.Session, *xrtypes.ActionStateGetInfo) (xrtypes.ActionStateBoolean, xrtypes.Result)); ok {
			e.down.GetActionStateBoolean = f
		}
		return e.GetActionStateBoolean, true
	case "xrGetActionStateFloat":
		if f, ok := proc.(func(xrtypes.Session, *xrtypes.ActionStateGetInfo) (xrtypes.ActionStateFloat, xrtypes.Result)); ok {
			e.down.GetActionStateFloat = f
		}
		return e.GetActionStateFloat, true
	case "xrGetActionStatePose":
		if f, ok := proc.(func(xrtypes.Session, *xrtypes.ActionStateGetInfo) (xrtypes.ActionStatePose, xrtypes.Result)); ok {
			e.down.GetActionStatePose = f
		}
		return e.GetActionStatePose, true
	default:
		return nil, false
	}
}
