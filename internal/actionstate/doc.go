// Package actionstate implements the Action State Table and its
// snapshot-based Edge Detector.
//
// Edge detection compares the value being reported now against the value
// the table held as of the sync before the most recent one, not against
// whatever a previous read happened to return. This means every read of a
// given path within one sync period reports the same changedSinceLastSync
// and lastChangeTime, however many times the application reads it.
package actionstate
