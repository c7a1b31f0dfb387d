package config

import (
	"log/slog"

	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// Validate runs the second, structural validation pass described in
// SPEC_FULL.md section 4.2: it checks invariants over the fully assembled
// struct that per-line parsing cannot, independent of where each field's
// value came from (parsed or left at its Default). Like Load, it never
// aborts; every violation downgrades the offending field to its default
// and is logged individually.
func Validate(cfg Config, log *slog.Logger) Config {
	def := Default()

	if cfg.ClickThreshold < 0 || cfg.ClickThreshold > 1 {
		log.Warn("config: click_threshold out of [0,1], using default",
			"value", cfg.ClickThreshold, "default", def.ClickThreshold)
		cfg.ClickThreshold = def.ClickThreshold
	}

	if !validJoint(cfg.AimJoint) {
		log.Warn("config: aim_joint does not resolve to a known joint, using default",
			"value", cfg.AimJoint, "default", def.AimJoint)
		cfg.AimJoint = def.AimJoint
	}
	if !validJoint(cfg.GripJoint) {
		log.Warn("config: grip_joint does not resolve to a known joint, using default",
			"value", cfg.GripJoint, "default", def.GripJoint)
		cfg.GripJoint = def.GripJoint
	}

	if cfg.Thresholds == nil {
		cfg.Thresholds = make(map[Gesture]GestureThresholds)
	}
	for _, g := range Gestures {
		t, ok := cfg.Thresholds[g]
		if !ok {
			cfg.Thresholds[g] = def.Thresholds[g]
			continue
		}
		if t.Near >= t.Far {
			log.Warn("config: gesture has near >= far, disabling gesture",
				"gesture", g, "near", t.Near, "far", t.Far)
			cfg.Left = clearTarget(cfg.Left, g)
			cfg.Right = clearTarget(cfg.Right, g)
			cfg.Thresholds[g] = def.Thresholds[g]
		}
	}

	return cfg
}

// clearTarget removes gesture's binding target for a hand, without
// touching the rest of its target map; "disabling" a gesture per the
// structural pass means it is no longer written to the action state
// table, not that the whole hand is disabled.
func clearTarget(hand HandConfig, g Gesture) HandConfig {
	if hand.Targets == nil {
		return hand
	}
	delete(hand.Targets, g)
	return hand
}

func validJoint(j xrtypes.JointIndex) bool {
	return j >= 0 && j < xrtypes.JointCount
}
