package gesture

import (
	"sort"
	"strings"

	"github.com/handxr/ctrllayer/internal/actionstate"
	"github.com/handxr/ctrllayer/internal/config"
	"github.com/handxr/ctrllayer/internal/handtrack"
	"github.com/handxr/ctrllayer/internal/pathreg"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// jointPair names the two joints (same side, unless Cross is true in which
// case the second joint belongs to the other side) a single-distance
// gesture measures between.
type jointPair struct {
	a, b xrtypes.JointIndex
	// cross is true when b belongs to the opposite side from a.
	cross bool
}

// gestureJoints maps each single-distance gesture to the joint pair the
// scalar formula measures. Squeeze is handled separately since it
// combines three independent distances.
var gestureJoints = map[config.Gesture]jointPair{
	config.GesturePinch:             {a: xrtypes.JointThumbTip, b: xrtypes.JointIndexTip},
	config.GestureThumbPress:        {a: xrtypes.JointIndexIntermediate, b: xrtypes.JointThumbTip},
	config.GestureIndexBend:         {a: xrtypes.JointIndexProximal, b: xrtypes.JointIndexTip},
	config.GesturePalmTap:           {a: xrtypes.JointPalm, b: xrtypes.JointIndexTip, cross: true},
	config.GestureWristTap:          {a: xrtypes.JointWrist, b: xrtypes.JointIndexTip, cross: true},
	config.GestureIndexProximalTap:  {a: xrtypes.JointIndexProximal, b: xrtypes.JointIndexTip, cross: true},
	config.GestureLittleProximalTap: {a: xrtypes.JointLittleProximal, b: xrtypes.JointIndexTip, cross: true},
}

// squeezeJoints lists the three independent metacarpal/tip pairs combined
// into the squeeze scalar.
var squeezeJoints = [3]jointPair{
	{a: xrtypes.JointMiddleTip, b: xrtypes.JointMiddleMetacarpal},
	{a: xrtypes.JointRingTip, b: xrtypes.JointRingMetacarpal},
	{a: xrtypes.JointLittleTip, b: xrtypes.JointLittleMetacarpal},
}

// Recognizer runs the per-syncActions recognition pass, writing the
// resulting scalars into an actionstate.Table.
type Recognizer struct {
	sampler handtrack.Sampler
	table   *actionstate.Table
}

// New creates a Recognizer reading joints from sampler and writing
// results into table.
func New(sampler handtrack.Sampler, table *actionstate.Table) *Recognizer {
	return &Recognizer{sampler: sampler, table: table}
}

// Sync runs one recognition pass: locates both sides' joints at begun
// against localSpace, computes every configured gesture's scalar, writes
// it into the Action State Table, and commits the tick. Call only after
// the downstream syncActions call has itself succeeded.
func (rec *Recognizer) Sync(cfg config.Config, localSpace xrtypes.Space, begun xrtypes.Time) {
	rec.table.BeginTick()

	leftJoints, leftResult := rec.sampler.LocateJoints(pathreg.SideLeft, localSpace, begun)
	rightJoints, rightResult := rec.sampler.LocateJoints(pathreg.SideRight, localSpace, begun)
	leftOK, rightOK := xrtypes.Succeeded(leftResult), xrtypes.Succeeded(rightResult)

	joints := map[pathreg.Side][]xrtypes.JointLocation{
		pathreg.SideLeft:  leftJoints,
		pathreg.SideRight: rightJoints,
	}
	valid := map[pathreg.Side]bool{
		pathreg.SideLeft:  leftOK,
		pathreg.SideRight: rightOK,
	}

	for _, side := range []pathreg.Side{pathreg.SideLeft, pathreg.SideRight} {
		hand := cfg.Hand(side)
		if !hand.Enabled || !valid[side] {
			continue
		}
		other := side.Other()

		for _, g := range config.Gestures {
			target, hasTarget := hand.Targets[g]
			if !hasTarget || target == "" {
				continue
			}
			thresholds := cfg.Thresholds[g]

			var scalar float64
			var ok bool
			if g == config.GestureSqueeze {
				scalar, ok = squeezeScalar(joints[side], thresholds)
			} else {
				pair := gestureJoints[g]
				bSide := side
				if pair.cross {
					if !valid[other] {
						continue
					}
					bSide = other
				}
				scalar, ok = pairScalar(joints[side], joints[bSide], pair, thresholds)
			}
			if !ok {
				continue
			}

			rec.write(side, target, scalar)
		}
	}

	rec.table.CommitSync()
}

// write records scalar under the full binding path for side+target, and
// additionally under the sibling "/click" path when target ends in
// "/value" (so a configured analog binding also drives a digital read of
// the same gesture).
func (rec *Recognizer) write(side pathreg.Side, target string, scalar float64) {
	fullPath := pathreg.UserPath(side) + target
	rec.table.Write(fullPath, scalar)

	if strings.HasSuffix(target, "/value") {
		clickTarget := strings.TrimSuffix(target, "/value") + "/click"
		rec.table.Write(pathreg.UserPath(side)+clickTarget, scalar)
	}
}

// scalar implements the near/far distance-to-scalar formula: d <= near
// maps to 1.0, d >= far maps to 0.0, linear in between. Requires near <
// far, which the Config Model's validation pass already guarantees for
// any gesture left enabled.
func scalar(d, near, far float64) float64 {
	clamped := d
	if clamped < near {
		clamped = near
	}
	if clamped > far {
		clamped = far
	}
	return 1 - (clamped-near)/(far-near)
}

func jointValid(joints []xrtypes.JointLocation, idx xrtypes.JointIndex) bool {
	return int(idx) < len(joints) && joints[idx].Flags.Valid()
}

func pairScalar(aJoints, bJoints []xrtypes.JointLocation, pair jointPair, t config.GestureThresholds) (float64, bool) {
	if !jointValid(aJoints, pair.a) || !jointValid(bJoints, pair.b) {
		return 0, false
	}
	d := aJoints[pair.a].Pose.Position.Distance(bJoints[pair.b].Pose.Position)
	return scalar(d, t.Near, t.Far), true
}

// squeezeScalar combines the three independent middle/ring/little
// distances: compute all three scalars, sort ascending, drop the
// smallest, and report the mean of the remaining two. This keeps a
// single curled finger that stays extended from masking the other two.
func squeezeScalar(joints []xrtypes.JointLocation, t config.GestureThresholds) (float64, bool) {
	var scalars []float64
	for _, pair := range squeezeJoints {
		if !jointValid(joints, pair.a) || !jointValid(joints, pair.b) {
			continue
		}
		d := joints[pair.a].Pose.Position.Distance(joints[pair.b].Pose.Position)
		scalars = append(scalars, scalar(d, t.Near, t.Far))
	}
	if len(scalars) != 3 {
		return 0, false
	}
	sort.Float64s(scalars)
	return (scalars[1] + scalars[2]) / 2, true
}
