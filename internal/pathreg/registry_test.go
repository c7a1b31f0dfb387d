package pathreg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternerRoundTrip(t *testing.T) {
	in := NewInterner()
	sym := in.Intern("/user/hand/left/input/trigger/value")
	assert.Equal(t, "/user/hand/left/input/trigger/value", in.String(sym))

	// Interning the same path again must return the same symbol.
	sym2 := in.Intern("/user/hand/left/input/trigger/value")
	assert.Equal(t, sym, sym2, "re-intern returned a different symbol")
}

func TestInternerDistinctPaths(t *testing.T) {
	in := NewInterner()
	a := in.Intern("/user/hand/left/input/trigger/value")
	b := in.Intern("/user/hand/right/input/trigger/value")
	assert.NotEqual(t, a, b, "distinct paths interned to the same symbol")
}

func TestSideOf(t *testing.T) {
	cases := map[string]Side{
		"/user/hand/left/input/trigger/value":  SideLeft,
		"/user/hand/right/input/trigger/value": SideRight,
		"/user/head/input/pose":                SideNeither,
	}
	for path, want := range cases {
		assert.Equal(t, want, SideOf(path), "SideOf(%q)", path)
	}
}

func TestActionRegistryResolveEmptySubaction(t *testing.T) {
	reg := NewActionRegistry()
	reg.Append(1, "/user/hand/left/input/trigger/value")
	reg.Append(1, "/user/hand/right/input/trigger/value")

	got, ok := reg.Resolve(1, "")
	require.True(t, ok)
	assert.Equal(t, "/user/hand/left/input/trigger/value", got, "expected first entry")
}

func TestActionRegistryResolveBySubaction(t *testing.T) {
	reg := NewActionRegistry()
	reg.Append(1, "/user/hand/left/input/trigger/value")
	reg.Append(1, "/user/hand/right/input/trigger/value")

	got, ok := reg.Resolve(1, "/user/hand/right")
	require.True(t, ok)
	assert.Equal(t, "/user/hand/right/input/trigger/value", got)
}

func TestActionRegistryUnknownAction(t *testing.T) {
	reg := NewActionRegistry()
	_, ok := reg.Resolve(99, "")
	assert.False(t, ok, "expected unknown action to fail resolution")
}

func TestPathCacheStoreAndLookup(t *testing.T) {
	c := NewPathCache()
	c.Store(42, "/user/hand/left/input/trigger/value")

	s, ok := c.LookupString(42)
	require.True(t, ok)
	assert.Equal(t, "/user/hand/left/input/trigger/value", s)

	p, ok := c.LookupPath("/user/hand/left/input/trigger/value")
	require.True(t, ok)
	assert.EqualValues(t, 42, p)
}

func TestPathCacheMiss(t *testing.T) {
	c := NewPathCache()
	_, ok := c.LookupString(1)
	assert.False(t, ok, "expected miss on empty cache")
}

func TestSpaceRegistryPutGetRemove(t *testing.T) {
	reg := NewSpaceRegistry()
	reg.Put(5, SpaceEntry{FullPath: "/user/hand/left/input/grip/pose"})

	entry, ok := reg.Get(5)
	require.True(t, ok)
	assert.Equal(t, "/user/hand/left/input/grip/pose", entry.FullPath)

	reg.Remove(5)
	_, ok = reg.Get(5)
	assert.False(t, ok, "expected entry to be removed")
}
