package tracelog

import (
	"context"
	"log/slog"

	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// Recorder appends one TraceRecord per completed syncActions tick for a
// single session's run. Append is synchronous and best-effort: a failure
// is logged and otherwise has no effect on the caller.
type Recorder struct {
	store *Store
	log   *slog.Logger
	runID string
	seq   int64
}

// NewRecorder creates a Recorder writing to store under runID, a UUID
// minted once per session at createSession time.
func NewRecorder(store *Store, runID string, log *slog.Logger) *Recorder {
	return &Recorder{store: store, log: log, runID: runID}
}

// Append persists one tick's scalar snapshot. Never returns an error to
// the caller; failures are logged through the "trace" component.
func (r *Recorder) Append(begun xrtypes.Time, scalars map[string]float64) {
	r.seq++
	rec := Record{RunID: r.runID, Seq: r.seq, Begun: begun, Scalars: scalars}
	if err := r.store.insert(context.Background(), rec); err != nil {
		r.log.Warn("trace: failed to append record", "component", "trace", "run_id", r.runID, "seq", r.seq, "error", err)
	}
}
