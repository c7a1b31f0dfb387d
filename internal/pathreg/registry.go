package pathreg

import (
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/handxr/ctrllayer/internal/geom"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// Symbol is an interned binding-path string. The zero Symbol never denotes
// a real path; Interner.Intern never returns it for a non-empty string.
type Symbol int32

// Interner maps binding-path strings to small integer Symbols and back.
// Safe for concurrent use, though the layer's own calling convention never
// exercises it concurrently for a single session (see SPEC_FULL.md section 5).
type Interner struct {
	mu      sync.Mutex
	byPath  map[string]Symbol
	byIndex []string
}

// NewInterner creates an empty Interner.
func NewInterner() *Interner {
	return &Interner{byPath: make(map[string]Symbol)}
}

// Intern normalizes and returns the Symbol for path, assigning a new one on
// first sight. Normalization uses NFC so that two byte-distinct but
// canonically-equal path strings (which the OpenXR spec never intentionally
// produces, but a buggy application might) still intern to the same symbol.
func (in *Interner) Intern(path string) Symbol {
	normalized := norm.NFC.String(path)

	in.mu.Lock()
	defer in.mu.Unlock()

	if sym, ok := in.byPath[normalized]; ok {
		return sym
	}
	in.byIndex = append(in.byIndex, normalized)
	sym := Symbol(len(in.byIndex))
	in.byPath[normalized] = sym
	return sym
}

// Lookup returns the Symbol for path without interning it, if already seen.
func (in *Interner) Lookup(path string) (Symbol, bool) {
	normalized := norm.NFC.String(path)
	in.mu.Lock()
	defer in.mu.Unlock()
	sym, ok := in.byPath[normalized]
	return sym, ok
}

// String returns the original path string for a Symbol previously produced
// by Intern. Panics if sym was never interned by this Interner, since that
// indicates a bug in the caller (a Symbol from a different instance, or a
// bogus one), not a recoverable runtime condition.
func (in *Interner) String(sym Symbol) string {
	in.mu.Lock()
	defer in.mu.Unlock()
	idx := int(sym) - 1
	if idx < 0 || idx >= len(in.byIndex) {
		panic("pathreg: unknown symbol")
	}
	return in.byIndex[idx]
}

// Side identifies which hand a binding path belongs to.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideNeither
)

// String implements fmt.Stringer.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "neither"
	}
}

// Other returns the opposite hand; only meaningful for SideLeft/SideRight.
func (s Side) Other() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

const (
	leftUserPath  = "/user/hand/left"
	rightUserPath = "/user/hand/right"
)

// SideOf classifies a binding-path string by its user path prefix.
func SideOf(path string) Side {
	switch {
	case strings.HasPrefix(path, leftUserPath):
		return SideLeft
	case strings.HasPrefix(path, rightUserPath):
		return SideRight
	default:
		return SideNeither
	}
}

// UserPath returns "/user/hand/left" or "/user/hand/right" for the side.
func UserPath(side Side) string {
	if side == SideLeft {
		return leftUserPath
	}
	return rightUserPath
}

// PathCache caches the opaque xrtypes.Path handle a string resolves to,
// and vice versa, so the engine asks the downstream runtime's
// pathToString/stringToPath at most once per distinct path per instance.
type PathCache struct {
	mu       sync.Mutex
	toString map[xrtypes.Path]string
	toPath   map[string]xrtypes.Path
}

// NewPathCache creates an empty PathCache.
func NewPathCache() *PathCache {
	return &PathCache{
		toString: make(map[xrtypes.Path]string),
		toPath:   make(map[string]xrtypes.Path),
	}
}

// LookupString returns the cached string for path, if known.
func (c *PathCache) LookupString(path xrtypes.Path) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.toString[path]
	return s, ok
}

// LookupPath returns the cached xrtypes.Path for s, if known.
func (c *PathCache) LookupPath(s string) (xrtypes.Path, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.toPath[s]
	return p, ok
}

// Store records a resolved (path, string) pair in both directions.
func (c *PathCache) Store(path xrtypes.Path, s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toString[path] = s
	c.toPath[s] = path
}

// ActionRegistry maps an application-defined action handle to the ordered
// sequence of binding-path strings it was suggested for. Order matters:
// looking up an action by an empty sub-action path must return the first
// entry (SPEC_FULL.md section 3).
type ActionRegistry struct {
	mu       sync.Mutex
	bindings map[xrtypes.Action][]string
}

// NewActionRegistry creates an empty ActionRegistry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{bindings: make(map[xrtypes.Action][]string)}
}

// Append records that action was suggested for the given full binding path.
// Duplicate paths for the same action are not de-duplicated, mirroring how
// suggestInteractionProfileBindings may legitimately be called more than
// once with overlapping suggestions across profiles.
func (r *ActionRegistry) Append(action xrtypes.Action, fullPath string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[action] = append(r.bindings[action], fullPath)
}

// Resolve returns the full binding path for (action, subactionPath). An
// empty subactionPath returns the first bound path in insertion order,
// matching how an application typically creates one action space without
// specifying a sub-action path when it only cares about one hand's action.
// A non-empty subactionPath returns the first bound path that starts with
// it. ok is false if no matching path was ever suggested for this action.
func (r *ActionRegistry) Resolve(action xrtypes.Action, subactionPath string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	paths, ok := r.bindings[action]
	if !ok || len(paths) == 0 {
		return "", false
	}
	if subactionPath == "" {
		return paths[0], true
	}
	for _, p := range paths {
		if strings.HasPrefix(p, subactionPath) {
			return p, true
		}
	}
	return "", false
}

// Clear removes every recorded binding. Called on instance-create success
// per the engine's table-ownership lifecycle (SPEC_FULL.md section 3).
func (r *ActionRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = make(map[xrtypes.Action][]string)
}

// SpaceEntry is what the SpaceRegistry stores per action space handle.
type SpaceEntry struct {
	FullPath          string
	PoseInActionSpace geom.Pose
}

// SpaceRegistry maps an action-space handle to its resolved full binding
// path and the caller-supplied pose-in-action-space offset. Only entries
// whose full path is under a hand user path are ever stored (SPEC_FULL.md
// section 3); createActionSpace calls for non-hand actions never reach
// this registry.
type SpaceRegistry struct {
	mu      sync.Mutex
	entries map[xrtypes.Space]SpaceEntry
}

// NewSpaceRegistry creates an empty SpaceRegistry.
func NewSpaceRegistry() *SpaceRegistry {
	return &SpaceRegistry{entries: make(map[xrtypes.Space]SpaceEntry)}
}

// Put records a new action-space entry.
func (r *SpaceRegistry) Put(space xrtypes.Space, entry SpaceEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[space] = entry
}

// Get returns the entry for space, if any.
func (r *SpaceRegistry) Get(space xrtypes.Space) (SpaceEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[space]
	return e, ok
}

// Remove deletes the entry for space. A no-op if space was never recorded
// (e.g. it was a non-hand action space to begin with).
func (r *SpaceRegistry) Remove(space xrtypes.Space) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, space)
}

// Clear removes every recorded space entry.
func (r *SpaceRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[xrtypes.Space]SpaceEntry)
}
