package testkit

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/handxr/ctrllayer/internal/dispatch"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// Run executes scenario against a fresh dispatch.Engine and a fixture
// downstream, one syncActions per frame, and evaluates every assertion
// against the scalar snapshot recorded right after its frame's sync.
func Run(scenario *Scenario) (*Result, error) {
	fx := newFixture(scenario)
	eng := dispatch.New(dispatch.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	instance, err := negotiateAndCreate(eng, fx)
	if err != nil {
		return nil, err
	}

	session, result := eng.CreateSession(instance)
	if !xrtypes.Succeeded(result) {
		return nil, fmt.Errorf("testkit: createSession: %v", result)
	}
	defer eng.DestroySession(session)

	res := newResult()
	for i, frame := range scenario.Frames {
		fx.currentDisplayTime = xrtypes.Time(frame.DisplayTime)

		var state xrtypes.FrameState
		if result := eng.WaitFrame(session, &xrtypes.FrameWaitInfo{}, &state); !xrtypes.Succeeded(result) {
			return nil, fmt.Errorf("testkit: frame %d: waitFrame: %v", i, result)
		}
		if result := eng.BeginFrame(session, &xrtypes.FrameBeginInfo{}); !xrtypes.Succeeded(result) {
			return nil, fmt.Errorf("testkit: frame %d: beginFrame: %v", i, result)
		}
		if result := eng.SyncActions(session, &xrtypes.SyncActionsInfo{}); !xrtypes.Succeeded(result) {
			return nil, fmt.Errorf("testkit: frame %d: syncActions: %v", i, result)
		}

		res.Frames = append(res.Frames, FrameTrace{
			DisplayTime: frame.DisplayTime,
			Scalars:     eng.Scalars(),
		})
	}

	for _, a := range scenario.Assertions {
		evaluate(res, a)
	}

	return res, nil
}

// negotiateAndCreate runs the full negotiate -> createInstance -> resolve
// sequence a real loader performs, against fx as the downstream.
func negotiateAndCreate(eng *dispatch.Engine, fx *fixture) (xrtypes.Instance, error) {
	info := &xrtypes.NegotiateLoaderInfo{
		MinInterfaceVersion: 1, MaxInterfaceVersion: 1,
		MinAPIVersion: xrtypes.SupportedAPIVersionMin, MaxAPIVersion: xrtypes.SupportedAPIVersionMax,
	}
	var request xrtypes.NegotiateApiLayerRequest
	if result := eng.Negotiate(info, xrtypes.LayerName, &request); !xrtypes.Succeeded(result) {
		return 0, fmt.Errorf("testkit: negotiate: %v", result)
	}

	createInfo := &xrtypes.ApiLayerCreateInfo{
		NextInfo: &xrtypes.ApiLayerNextInfo{
			NextGetInstanceProcAddr: fx.getInstanceProcAddr,
			NextCreateApiLayerInstance: func(*xrtypes.ApiLayerCreateInfo, *xrtypes.InstanceCreateInfo) (xrtypes.Instance, xrtypes.Result) {
				return 1, xrtypes.Success
			},
		},
	}
	instance, result := request.CreateApiLayerInstance(createInfo, &xrtypes.InstanceCreateInfo{ApplicationName: "testkit"})
	if !xrtypes.Succeeded(result) {
		return 0, fmt.Errorf("testkit: createApiLayerInstance: %v", result)
	}

	for _, name := range xrtypes.InterceptedNames {
		if _, result := eng.Resolve(instance, name); !xrtypes.Succeeded(result) {
			return 0, fmt.Errorf("testkit: resolve %s: %v", name, result)
		}
	}
	return instance, nil
}

func evaluate(res *Result, a Assertion) {
	frame := res.Frames[a.Frame]
	value, ok := frame.Scalars[a.Path]

	if a.Absent {
		if ok {
			res.addError("frame %d: %s: expected absent, got %v", a.Frame, a.Path, value)
		}
		return
	}
	if !ok {
		res.addError("frame %d: %s: expected a value, got none", a.Frame, a.Path)
		return
	}

	tolerance := a.Tolerance
	if tolerance == 0 {
		tolerance = 0.001
	}
	if math.Abs(value-a.Want) > tolerance {
		res.addError("frame %d: %s: got %v, want %v (tolerance %v)", a.Frame, a.Path, value, a.Want, tolerance)
	}
}
