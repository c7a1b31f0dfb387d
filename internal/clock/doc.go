// Package clock implements the Frame Clock: the two-timestamp latch that
// tells every hand-pose query which predicted display time to use.
//
// waitFrame advances the "waited" timestamp; beginFrame promotes it into
// "begun" only once the downstream call has itself succeeded. Every query
// issued for the remainder of that frame reads "begun", never "waited"
// directly, so a frame's hand state never reflects a predictedDisplayTime
// the downstream runtime has not actually begun rendering toward.
package clock
