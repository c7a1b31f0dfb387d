// Package gesture implements the Gesture Recognizer: the syncActions-time
// pass that turns inter-joint distances into the scalars the Action State
// Table exposes as analog and digital controller input.
package gesture
