package dispatch

import "github.com/handxr/ctrllayer/internal/xrtypes"

// pathToString resolves path to its string form, consulting the PathCache
// before asking the downstream runtime. ok is false for XR_NULL_PATH or
// when the downstream lookup itself fails.
func (e *Engine) pathToString(path xrtypes.Path) (string, bool) {
	if path == 0 {
		return "", false
	}
	if s, ok := e.paths.LookupString(path); ok {
		return s, true
	}
	if e.down.PathToString == nil {
		return "", false
	}
	s, result := e.down.PathToString(e.instance, path)
	if !xrtypes.Succeeded(result) {
		return "", false
	}
	e.paths.Store(path, s)
	return s, true
}
