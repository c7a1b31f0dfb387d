// Package handtrack is the Hand Sampler façade: a narrow interface between
// the engine and the downstream XR_EXT_hand_tracking entry points, plus the
// one concrete implementation the dispatch layer wires it to.
//
// Keeping this behind an interface, rather than calling the downstream
// function pointers directly from the gesture recognizer and pose
// synthesizer, is what lets the recognizer and synthesizer be tested
// against a fake Sampler without a real runtime underneath them.
// (internal/testkit instead fakes the downstream under a real Tracker.)
package handtrack
