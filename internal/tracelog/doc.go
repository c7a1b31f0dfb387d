// Package tracelog implements the supplemental Frame/Session Trace
// Recorder: an opt-in, append-only SQLite log of per-tick Action State
// Table snapshots, for offline replay and golden-trace comparison. It is
// a development and conformance-testing aid, not part of the OpenXR
// behavioral contract — failures here are logged and swallowed, never
// surfaced to the calling application.
package tracelog
