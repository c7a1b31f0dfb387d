// Package pathreg is the layer's path/identifier registry: it interns
// OpenXR path strings into small integer symbols, and tracks the two
// mappings the dispatch layer needs to turn an application's action or
// space handle into a full binding-path string.
//
// The Interner is used by internal/actionstate: a binding path is interned
// the first time the gesture recognizer writes it, and the table's value
// and edge maps are keyed by the resulting Symbol (a plain int32). Each
// table read still normalizes and looks up its path string once to find
// that Symbol.
package pathreg
