// Package xrtypes mirrors the small slice of the OpenXR C ABI this layer
// touches: result codes, opaque handles, time values, and the function
// pointer types for every entry point the dispatch package intercepts.
//
// The types here model the C struct layout field-for-field using plain Go
// (handles as distinct integer types, function pointers as Go func values)
// rather than binding the OpenXR SDK headers through cgo. Marshaling the
// real C ABI is a thin, mechanical shim that can sit on top of this package
// without touching the translation logic that is this layer's actual
// subject matter; see SPEC_FULL.md section 6 for the reasoning.
package xrtypes
