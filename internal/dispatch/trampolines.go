package dispatch

import (
	"github.com/handxr/ctrllayer/internal/pathreg"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// WaitFrame implements xrWaitFrame: forwards to the downstream, and on
// success latches the predicted display time into the Frame Clock.
func (e *Engine) WaitFrame(session xrtypes.Session, info *xrtypes.FrameWaitInfo, state *xrtypes.FrameState) xrtypes.Result {
	if e.down.WaitFrame == nil {
		return xrtypes.ErrorFunctionUnsupported
	}
	result := e.down.WaitFrame(session, info, state)
	if xrtypes.Succeeded(result) && state != nil {
		e.frameClock.OnWaitFrame(state.PredictedDisplayTime)
	}
	return result
}

// BeginFrame implements xrBeginFrame: forwards to the downstream, and on
// success promotes the waited timestamp into the latched "begun" time
// every other trampoline reads against.
func (e *Engine) BeginFrame(session xrtypes.Session, info *xrtypes.FrameBeginInfo) xrtypes.Result {
	if e.down.BeginFrame == nil {
		return xrtypes.ErrorFunctionUnsupported
	}
	result := e.down.BeginFrame(session, info)
	if xrtypes.Succeeded(result) {
		e.frameClock.OnBeginFrame()
	}
	return result
}

// PollEvent implements xrPollEvent: synthesizes a single
// interaction-profile-changed event right after createSession (so the
// application re-queries getCurrentInteractionProfile and sees the
// configured profile), then forwards every subsequent call to the
// downstream.
func (e *Engine) PollEvent(instance xrtypes.Instance, buffer *xrtypes.EventDataBuffer) xrtypes.Result {
	e.mu.Lock()
	advertise := e.advertiseFlag
	if advertise {
		e.advertiseFlag = false
	}
	session := e.session
	e.mu.Unlock()

	if advertise && buffer != nil {
		buffer.Type = xrtypes.StructureTypeEventDataInteractionProfileChanged
		buffer.Session = session
		return xrtypes.Success
	}

	if e.down.PollEvent == nil {
		return xrtypes.EventUnavailable
	}
	return e.down.PollEvent(instance, buffer)
}

// GetCurrentInteractionProfile implements xrGetCurrentInteractionProfile:
// reports the configured interaction profile for the null top-level path
// or either hand's top-level path, once the engine is armed; every other
// top-level path forwards to the downstream.
func (e *Engine) GetCurrentInteractionProfile(session xrtypes.Session, topLevelUserPath xrtypes.Path) (xrtypes.Path, xrtypes.Result) {
	if e.armed {
		if topLevelUserPath == 0 {
			return e.cfg.InteractionProfile, xrtypes.Success
		}
		if s, ok := e.pathToString(topLevelUserPath); ok && pathreg.SideOf(s) != pathreg.SideNeither {
			return e.cfg.InteractionProfile, xrtypes.Success
		}
	}
	if e.down.GetCurrentInteractionProfile == nil {
		return 0, xrtypes.ErrorFunctionUnsupported
	}
	return e.down.GetCurrentInteractionProfile(session, topLevelUserPath)
}

// SuggestInteractionProfileBindings implements
// xrSuggestInteractionProfileBindings: forwards to the downstream
// unconditionally, and on success, when the suggestion is for this
// layer's configured profile, records every hand-path binding in the
// Action Registry so later getActionState calls can resolve it.
func (e *Engine) SuggestInteractionProfileBindings(instance xrtypes.Instance, bindings *xrtypes.InteractionProfileSuggestedBindings) xrtypes.Result {
	if e.down.SuggestInteractionProfileBindings == nil {
		return xrtypes.ErrorFunctionUnsupported
	}
	result := e.down.SuggestInteractionProfileBindings(instance, bindings)
	if !xrtypes.Succeeded(result) || bindings == nil {
		return result
	}
	if !e.armed || bindings.InteractionProfile != e.cfg.InteractionProfile {
		return result
	}

	for _, suggestion := range bindings.Suggestions {
		path, ok := e.pathToString(suggestion.Binding)
		if !ok || pathreg.SideOf(path) == pathreg.SideNeither {
			continue
		}
		e.actions.Append(suggestion.Action, path)
	}
	return result
}

// CreateActionSpace implements xrCreateActionSpace: forwards to the
// downstream, and on success, if the action resolves to a hand binding
// path, records the space in the Space Registry so locateSpace can
// synthesize a pose for it.
func (e *Engine) CreateActionSpace(session xrtypes.Session, info *xrtypes.ActionSpaceCreateInfo) (xrtypes.Space, xrtypes.Result) {
	if e.down.CreateActionSpace == nil {
		return 0, xrtypes.ErrorFunctionUnsupported
	}
	space, result := e.down.CreateActionSpace(session, info)
	if !xrtypes.Succeeded(result) || info == nil {
		return space, result
	}

	subactionPath, _ := e.pathToString(info.SubactionPath)
	fullPath, ok := e.actions.Resolve(info.Action, subactionPath)
	if !ok || pathreg.SideOf(fullPath) == pathreg.SideNeither {
		return space, result
	}

	e.spaces.Put(space, pathreg.SpaceEntry{
		FullPath:          fullPath,
		PoseInActionSpace: info.PoseInActionSpace,
	})
	return space, result
}

// DestroySpace implements xrDestroySpace: forwards to the downstream, and
// on success removes any Space Registry entry for it (a no-op if it was
// never a hand action space).
func (e *Engine) DestroySpace(space xrtypes.Space) xrtypes.Result {
	if e.down.DestroySpace == nil {
		return xrtypes.ErrorFunctionUnsupported
	}
	result := e.down.DestroySpace(space)
	if xrtypes.Succeeded(result) {
		e.spaces.Remove(space)
	}
	return result
}

// LocateSpace implements xrLocateSpace: delegates to the Pose Synthesizer
// for spaces the layer owns, forwarding to the downstream for everything
// else (unknown space, disabled hand, or a non-grip/aim action space). A
// space the layer owns whose hand sampler failed this call reports that
// failure directly rather than falling back to the downstream.
func (e *Engine) LocateSpace(space, baseSpace xrtypes.Space, t xrtypes.Time) (xrtypes.SpaceLocation, xrtypes.Result) {
	if e.synth != nil {
		if loc, result, forward := e.synth.Locate(space, baseSpace, t, e.cfg); !forward {
			return loc, result
		}
	}
	if e.down.LocateSpace == nil {
		return xrtypes.SpaceLocation{}, xrtypes.ErrorFunctionUnsupported
	}
	return e.down.LocateSpace(space, baseSpace, t)
}

// SyncActions implements xrSyncActions: forwards to the downstream, and
// on success runs one Gesture Recognizer pass against the latched frame
// time, appends the resulting scalars to the trace recorder if enabled,
// and feeds the same joint samples to the hand visualizer if enabled.
//
// This layer has no swapchain ABI to intercept endFrame through, so the
// visualizer is driven from here (SPEC_FULL.md section 9). syncActions may
// be called zero or many times per frame, and the visualizer draws that
// many times too.
func (e *Engine) SyncActions(session xrtypes.Session, info *xrtypes.SyncActionsInfo) xrtypes.Result {
	if e.down.SyncActions == nil {
		return xrtypes.ErrorFunctionUnsupported
	}
	result := e.down.SyncActions(session, info)
	if !xrtypes.Succeeded(result) {
		return result
	}
	if e.recognizer == nil {
		return result
	}

	begun, ok := e.frameClock.Begun()
	if !ok {
		return result
	}

	e.recognizer.Sync(e.cfg, e.localSpace, begun)

	if e.traceRecorder != nil {
		e.traceRecorder.Append(begun, e.table.Snapshot())
	}

	if e.visualizeWanted && e.tracker != nil {
		joints := map[pathreg.Side][]xrtypes.JointLocation{}
		for _, side := range []pathreg.Side{pathreg.SideLeft, pathreg.SideRight} {
			if locations, result := e.tracker.LocateJoints(side, e.localSpace, begun); xrtypes.Succeeded(result) {
				joints[side] = locations
			}
		}
		e.visual.Draw(begun, joints)
	}

	return result
}

// GetActionStateBoolean implements xrGetActionStateBoolean: resolves the
// action to a full binding path and answers from the Action State Table
// when the recognizer wrote it this sync, forwarding otherwise.
func (e *Engine) GetActionStateBoolean(session xrtypes.Session, info *xrtypes.ActionStateGetInfo) (xrtypes.ActionStateBoolean, xrtypes.Result) {
	if info != nil {
		subactionPath, _ := e.pathToString(info.SubactionPath)
		if fullPath, ok := e.actions.Resolve(info.Action, subactionPath); ok {
			begun, _ := e.frameClock.Begun()
			if state, ok := e.table.Boolean(fullPath, e.cfg.ClickThreshold, begun); ok {
				return state, xrtypes.Success
			}
		}
	}
	if e.down.GetActionStateBoolean == nil {
		return xrtypes.ActionStateBoolean{}, xrtypes.ErrorFunctionUnsupported
	}
	return e.down.GetActionStateBoolean(session, info)
}

// GetActionStateFloat implements xrGetActionStateFloat: resolves the
// action to a full binding path and answers from the Action State Table
// when the recognizer wrote it this sync, forwarding otherwise.
func (e *Engine) GetActionStateFloat(session xrtypes.Session, info *xrtypes.ActionStateGetInfo) (xrtypes.ActionStateFloat, xrtypes.Result) {
	if info != nil {
		subactionPath, _ := e.pathToString(info.SubactionPath)
		if fullPath, ok := e.actions.Resolve(info.Action, subactionPath); ok {
			begun, _ := e.frameClock.Begun()
			if state, ok := e.table.Float(fullPath, begun); ok {
				return state, xrtypes.Success
			}
		}
	}
	if e.down.GetActionStateFloat == nil {
		return xrtypes.ActionStateFloat{}, xrtypes.ErrorFunctionUnsupported
	}
	return e.down.GetActionStateFloat(session, info)
}

// GetActionStatePose implements xrGetActionStatePose: reports active for
// any action that resolves to a hand binding path, forwarding otherwise.
func (e *Engine) GetActionStatePose(session xrtypes.Session, info *xrtypes.ActionStateGetInfo) (xrtypes.ActionStatePose, xrtypes.Result) {
	if info != nil {
		subactionPath, _ := e.pathToString(info.SubactionPath)
		if fullPath, ok := e.actions.Resolve(info.Action, subactionPath); ok && pathreg.SideOf(fullPath) != pathreg.SideNeither {
			return xrtypes.ActionStatePose{IsActive: true}, xrtypes.Success
		}
	}
	if e.down.GetActionStatePose == nil {
		return xrtypes.ActionStatePose{}, xrtypes.ErrorFunctionUnsupported
	}
	return e.down.GetActionStatePose(session, info)
}
