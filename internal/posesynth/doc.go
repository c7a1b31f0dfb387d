// Package posesynth implements the Action-Space Pose Synthesizer: turning
// a located hand joint into the grip or aim pose an application asked for
// when it created an action space on a hand's input path.
package posesynth
