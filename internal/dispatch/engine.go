package dispatch

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/handxr/ctrllayer/internal/actionstate"
	"github.com/handxr/ctrllayer/internal/clock"
	"github.com/handxr/ctrllayer/internal/config"
	"github.com/handxr/ctrllayer/internal/gesture"
	"github.com/handxr/ctrllayer/internal/handtrack"
	"github.com/handxr/ctrllayer/internal/pathreg"
	"github.com/handxr/ctrllayer/internal/posesynth"
	"github.com/handxr/ctrllayer/internal/tracelog"
	"github.com/handxr/ctrllayer/internal/visualize"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// Engine is the single instance of the Interception Dispatch component.
// One Engine is created per negotiated layer instance; the layer's process
// never creates a second concurrent session (Non-goal, SPEC_FULL.md
// section 1).
type Engine struct {
	mu  sync.Mutex
	log *slog.Logger

	down     *xrtypes.Downstream
	instance xrtypes.Instance
	session  xrtypes.Session

	configDir       string
	extensionProbe  func(name string) bool
	visualizeWanted bool

	cfg                   config.Config
	armed                 bool
	handTrackingAvailable bool

	frameClock *clock.FrameClock
	paths      *pathreg.PathCache
	actions    *pathreg.ActionRegistry
	spaces     *pathreg.SpaceRegistry
	table      *actionstate.Table

	tracker    *handtrack.Tracker
	recognizer *gesture.Recognizer
	synth      *posesynth.Synthesizer

	localSpace    xrtypes.Space
	advertiseFlag bool

	visual visualize.HandVisualizer

	traceStore    *tracelog.Store
	traceRecorder *tracelog.Recorder
	traceDBPath   string
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithLogger overrides the default discard logger.
func WithLogger(log *slog.Logger) EngineOption {
	return func(e *Engine) { e.log = log }
}

// WithConfigDir sets the directory the Config Model reads ".cfg" files
// from (SPEC_FULL.md section 10). No log file is opened there; diagnostics
// go to the logger set with WithLogger.
func WithConfigDir(dir string) EngineOption {
	return func(e *Engine) { e.configDir = dir }
}

// WithVisualizer wires a HandVisualizer other than the no-op default.
func WithVisualizer(v visualize.HandVisualizer) EngineOption {
	return func(e *Engine) { e.visual = v; e.visualizeWanted = true }
}

// WithExtensionProbe overrides how CreateInstance decides whether the
// downstream runtime offers XR_EXT_hand_tracking. The default probe
// reports every extension available, since this layer's modeled ABI
// (SPEC_FULL.md section 6) does not include instance-extension
// enumeration; production wiring of a real loader supplies its own probe
// bound to xrEnumerateInstanceExtensionProperties.
func WithExtensionProbe(probe func(name string) bool) EngineOption {
	return func(e *Engine) { e.extensionProbe = probe }
}

// New creates an Engine with no downstream bound yet. Negotiate and
// CreateInstance populate it; until then a trampoline whose downstream
// pointer is not yet bound returns xrtypes.ErrorFunctionUnsupported.
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		log:            slog.New(slog.NewTextHandler(noopWriter{}, nil)),
		down:           &xrtypes.Downstream{},
		paths:          pathreg.NewPathCache(),
		actions:        pathreg.NewActionRegistry(),
		spaces:         pathreg.NewSpaceRegistry(),
		table:          actionstate.New(),
		frameClock:     clock.New(),
		visual:         visualize.NoOp{},
		extensionProbe: func(string) bool { return true },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// noopWriter discards everything written to it; used as New's zero-value
// logger sink so an Engine constructed without WithLogger never panics.
type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }

// newRunID mints a fresh UUID for a new session's trace recorder.
func newRunID() string {
	return uuid.NewString()
}
