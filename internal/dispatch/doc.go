// Package dispatch is the Interception Dispatch: loader negotiation,
// instance/session lifecycle, resolve (xrGetInstanceProcAddr) substitution,
// and the per-entry-point trampolines that either answer a hand-related
// call from engine state or forward it to the downstream chain unchanged.
//
// Every exported trampoline method mirrors one intercepted OpenXR entry
// point. None of them block beyond the single downstream call they each
// make at most once.
package dispatch
