package actionstate

import (
	"sync"

	"github.com/handxr/ctrllayer/internal/pathreg"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// edgeRecord is the per-path edge history the detector keeps across syncs.
// computedGen pins the record to the sync generation it was last computed
// for, so the second and later read of a path within one tick reuses the
// recorded outcome instead of recomputing it.
type edgeRecord struct {
	computedGen    int64
	changed        bool
	lastChangeTime xrtypes.Time
}

// Table is the ActionStateTable: the per-path scalar values the gesture
// recognizer writes once per syncActions, plus the edge history needed to
// answer changedSinceLastSync. Safe for concurrent use.
//
// Every map here is keyed by pathreg.Symbol rather than the raw binding
// path string: Write interns its fullPath argument through interner, and
// Lookup/Boolean/Float resolve theirs with interner.Lookup once per call;
// every map access after that uses the Symbol rather than the string
// (SPEC_FULL.md sections 2 and 3 describe the symbol-keyed table).
type Table struct {
	mu sync.Mutex

	interner *pathreg.Interner

	pending map[pathreg.Symbol]float64 // being built by the current tick, not yet visible to reads
	values  map[pathreg.Symbol]float64 // committed values as of the most recent successful sync
	prior   map[pathreg.Symbol]float64 // committed values as of the sync before that

	gen int64

	boolEdges  map[pathreg.Symbol]*edgeRecord
	floatEdges map[pathreg.Symbol]*edgeRecord
}

// New creates an empty Table.
func New() *Table {
	return &Table{
		interner:   pathreg.NewInterner(),
		values:     make(map[pathreg.Symbol]float64),
		prior:      make(map[pathreg.Symbol]float64),
		boolEdges:  make(map[pathreg.Symbol]*edgeRecord),
		floatEdges: make(map[pathreg.Symbol]*edgeRecord),
	}
}

// BeginTick starts building a new tick's values. Must be called once at
// the start of each syncActions trampoline's recognition pass, before any
// Write calls for that tick.
func (t *Table) BeginTick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = make(map[pathreg.Symbol]float64)
}

// Write records value for fullPath in the tick currently being built.
func (t *Table) Write(fullPath string, value float64) {
	sym := t.interner.Intern(fullPath)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending == nil {
		t.pending = make(map[pathreg.Symbol]float64)
	}
	t.pending[sym] = value
}

// CommitSync closes out the tick: the table's previously-committed values
// become the comparison baseline (prior), the tick's pending values become
// the new committed values, and the sync generation advances so edge
// records recompute on next read.
func (t *Table) CommitSync() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prior = t.values
	if t.pending == nil {
		t.pending = make(map[pathreg.Symbol]float64)
	}
	t.values = t.pending
	t.pending = nil
	t.gen++
}

// Lookup returns the committed scalar value for fullPath, if any gesture
// wrote it during the most recent successful sync.
func (t *Table) Lookup(fullPath string) (float64, bool) {
	sym, known := t.interner.Lookup(fullPath)
	if !known {
		return 0, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.values[sym]
	return v, ok
}

// Boolean answers getActionStateBoolean for fullPath, given the click
// threshold and the frame's latched display time. found is false if
// fullPath was never written by the current tick's sync, meaning the
// caller must forward to the downstream instead.
func (t *Table) Boolean(fullPath string, threshold float64, begun xrtypes.Time) (xrtypes.ActionStateBoolean, bool) {
	sym, known := t.interner.Lookup(fullPath)
	if !known {
		return xrtypes.ActionStateBoolean{}, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	val, ok := t.values[sym]
	if !ok {
		return xrtypes.ActionStateBoolean{}, false
	}
	current := val >= threshold

	rec := t.boolEdges[sym]
	if rec == nil {
		rec = &edgeRecord{}
		t.boolEdges[sym] = rec
	}
	if rec.computedGen != t.gen {
		prevVal, existed := t.prior[sym]
		switch {
		case !existed:
			rec.changed = false
			rec.lastChangeTime = begun
		case current != (prevVal >= threshold):
			rec.changed = true
			rec.lastChangeTime = begun
		default:
			rec.changed = false
			// lastChangeTime keeps whatever it was recorded as previously.
		}
		rec.computedGen = t.gen
	}

	return xrtypes.ActionStateBoolean{
		CurrentState:         current,
		ChangedSinceLastSync: rec.changed,
		LastChangeTime:       rec.lastChangeTime,
		IsActive:             true,
	}, true
}

// Float answers getActionStateFloat for fullPath, using the raw scalar as
// CurrentState rather than a threshold comparison.
func (t *Table) Float(fullPath string, begun xrtypes.Time) (xrtypes.ActionStateFloat, bool) {
	sym, known := t.interner.Lookup(fullPath)
	if !known {
		return xrtypes.ActionStateFloat{}, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	val, ok := t.values[sym]
	if !ok {
		return xrtypes.ActionStateFloat{}, false
	}

	rec := t.floatEdges[sym]
	if rec == nil {
		rec = &edgeRecord{}
		t.floatEdges[sym] = rec
	}
	if rec.computedGen != t.gen {
		prevVal, existed := t.prior[sym]
		switch {
		case !existed:
			rec.changed = false
			rec.lastChangeTime = begun
		case val != prevVal:
			rec.changed = true
			rec.lastChangeTime = begun
		default:
			rec.changed = false
		}
		rec.computedGen = t.gen
	}

	return xrtypes.ActionStateFloat{
		CurrentState:         val,
		ChangedSinceLastSync: rec.changed,
		LastChangeTime:       rec.lastChangeTime,
		IsActive:             true,
	}, true
}

// Snapshot returns a copy of the table's currently committed values, keyed
// back by path string, for the Trace Recorder to persist without holding
// the table's lock.
func (t *Table) Snapshot() map[string]float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]float64, len(t.values))
	for sym, v := range t.values {
		out[t.interner.String(sym)] = v
	}
	return out
}
