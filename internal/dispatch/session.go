package dispatch

import (
	"github.com/handxr/ctrllayer/internal/geom"
	"github.com/handxr/ctrllayer/internal/gesture"
	"github.com/handxr/ctrllayer/internal/handtrack"
	"github.com/handxr/ctrllayer/internal/pathreg"
	"github.com/handxr/ctrllayer/internal/posesynth"
	"github.com/handxr/ctrllayer/internal/tracelog"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// CreateSession implements xrCreateSession: forwards to the downstream,
// and on success stands up this session's reference space, hand trackers,
// gesture recognizer, pose synthesizer, and (if configured) trace
// recorder. A hand tracker that fails to create leaves its side
// untracked rather than failing session creation (SPEC_FULL.md section
// 4.9).
func (e *Engine) CreateSession(instance xrtypes.Instance) (xrtypes.Session, xrtypes.Result) {
	if e.down.CreateSession == nil {
		return 0, xrtypes.ErrorFunctionUnsupported
	}
	session, result := e.down.CreateSession(instance)
	if !xrtypes.Succeeded(result) {
		return session, result
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.session = session

	// Every hand-specific hook below is conditioned on e.armed (set only
	// when XR_EXT_hand_tracking was confirmed present at createInstance):
	// without it there is nothing to synthesize, and this session must
	// behave as pure pass-through (SPEC_FULL.md section 8, scenario 6).
	if !e.armed {
		return session, xrtypes.Success
	}

	e.advertiseFlag = true

	if e.down.CreateReferenceSpace != nil {
		localSpace, lresult := e.down.CreateReferenceSpace(session, xrtypes.ReferenceSpaceTypeLocal, geom.IdentityPose)
		if xrtypes.Succeeded(lresult) {
			e.localSpace = localSpace
		} else {
			e.log.Warn("createSession: failed to create local reference space", "component", "dispatch", "result", lresult)
		}
	}

	e.tracker = handtrack.NewTracker(e.down, session, e.log)
	for _, side := range []pathreg.Side{pathreg.SideLeft, pathreg.SideRight} {
		if err := e.tracker.Create(side); err != nil {
			e.log.Warn("createSession: hand tracker unavailable", "component", "dispatch", "side", side, "error", err)
		}
	}

	e.recognizer = gesture.New(e.tracker, e.table)
	e.synth = posesynth.New(e.tracker, e.spaces)
	e.spaces.Clear()

	if e.cfg.TraceEnabled && e.cfg.TraceDBPath != "" {
		store, err := tracelog.Open(e.cfg.TraceDBPath)
		if err != nil {
			e.log.Warn("createSession: failed to open trace store", "component", "trace", "error", err)
		} else {
			e.traceStore = store
			e.traceDBPath = e.cfg.TraceDBPath
			e.traceRecorder = tracelog.NewRecorder(store, newRunID(), e.log)
		}
	}

	return session, xrtypes.Success
}

// DestroySession implements xrDestroySession: forwards to the downstream,
// and on success releases the hand trackers and closes any open trace
// store.
func (e *Engine) DestroySession(session xrtypes.Session) xrtypes.Result {
	if e.down.DestroySession == nil {
		return xrtypes.ErrorFunctionUnsupported
	}
	result := e.down.DestroySession(session)
	if !xrtypes.Succeeded(result) {
		return result
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tracker != nil {
		e.tracker.Destroy()
	}
	e.recognizer = nil
	e.synth = nil
	e.advertiseFlag = false
	e.session = 0

	if e.traceStore != nil {
		if err := e.traceStore.Close(); err != nil {
			e.log.Warn("destroySession: failed to close trace store", "component", "trace", "error", err)
		}
		e.traceStore = nil
		e.traceRecorder = nil
	}

	return xrtypes.Success
}
