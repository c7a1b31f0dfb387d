package config

import (
	"github.com/handxr/ctrllayer/internal/geom"
	"github.com/handxr/ctrllayer/internal/pathreg"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// Gesture names the eight recognized gesture kinds. The zero value is not a
// valid gesture; use the named constants.
type Gesture string

const (
	GesturePinch             Gesture = "pinch"
	GestureThumbPress        Gesture = "thumb_press"
	GestureIndexBend         Gesture = "index_bend"
	GestureSqueeze           Gesture = "squeeze"
	GesturePalmTap           Gesture = "palm_tap"
	GestureWristTap          Gesture = "wrist_tap"
	GestureIndexProximalTap  Gesture = "index_proximal_tap"
	GestureLittleProximalTap Gesture = "little_proximal_tap"
)

// Gestures lists every recognized gesture kind in a stable, declaration
// order (used when iterating for the recognizer and for the CLI's
// validate/simulate output).
var Gestures = []Gesture{
	GesturePinch,
	GestureThumbPress,
	GestureIndexBend,
	GestureSqueeze,
	GesturePalmTap,
	GestureWristTap,
	GestureIndexProximalTap,
	GestureLittleProximalTap,
}

// GestureThresholds is the (near, far) distance pair configured for one
// gesture kind, shared by both hands; the target binding suffix is
// configured per hand and is not stored here.
type GestureThresholds struct {
	Near float64
	Far  float64
}

// HandConfig is the per-side subset of Config: whether the hand is enabled,
// its pose offset, and the target binding suffix for each gesture (empty
// means "not bound, do not compute or is computed but not written").
type HandConfig struct {
	Enabled bool
	Offset  geom.Pose
	Targets map[Gesture]string
}

// Config is the immutable-after-load configuration struct. Zero value is
// not directly useful; use Default to obtain the documented defaults.
type Config struct {
	RawInteractionProfile string
	InteractionProfile    xrtypes.Path // resolved by the dispatch layer after load, XR_NULL_PATH until then

	AimJoint  xrtypes.JointIndex
	GripJoint xrtypes.JointIndex

	ClickThreshold float64

	Left  HandConfig
	Right HandConfig

	Thresholds map[Gesture]GestureThresholds

	// TraceEnabled and TraceDBPath configure the supplemental frame trace
	// recorder (SPEC_FULL.md section 12); never armed unless set explicitly.
	TraceEnabled bool
	TraceDBPath  string
}

// Default returns the documented default configuration: click threshold
// 0.75, grip joint PALM, aim joint INDEX_INTERMEDIATE, identity transforms,
// both hands enabled, and the gesture targets/thresholds the original
// implementation shipped with.
func Default() Config {
	return Config{
		RawInteractionProfile: "/interaction_profiles/hp/mixed_reality_controller",
		AimJoint:              xrtypes.JointIndexIntermediate,
		GripJoint:             xrtypes.JointPalm,
		ClickThreshold:        0.75,
		Left: HandConfig{
			Enabled: true,
			Offset:  geom.IdentityPose,
			Targets: defaultTargets(pathreg.SideLeft),
		},
		Right: HandConfig{
			Enabled: true,
			Offset:  geom.IdentityPose,
			Targets: defaultTargets(pathreg.SideRight),
		},
		Thresholds: map[Gesture]GestureThresholds{
			GesturePinch:             {Near: 0.01, Far: 0.06},
			GestureThumbPress:        {Near: 0.01, Far: 0.05},
			GestureIndexBend:         {Near: 0.045, Far: 0.07},
			GestureSqueeze:           {Near: 0.01, Far: 0.07},
			GesturePalmTap:           {Near: 0.02, Far: 0.06},
			GestureWristTap:          {Near: 0.04, Far: 0.05},
			GestureIndexProximalTap:  {Near: 0.02, Far: 0.035},
			GestureLittleProximalTap: {Near: 0.02, Far: 0.035},
		},
	}
}

// defaultTargets returns the per-hand default binding target for each
// gesture. Both hands default to the same trigger/squeeze bindings; the
// two proximal-tap gestures default to distinct face buttons per hand
// (matching the original implementation's four-button
// mixed_reality_controller default: Y/B for index-proximal-tap, X/A for
// little-proximal-tap) so a four-button controller profile gets a
// plausible one-tap-per-button default out of the box.
func defaultTargets(side pathreg.Side) map[Gesture]string {
	targets := map[Gesture]string{
		GesturePinch:      "/input/trigger/value",
		GestureSqueeze:    "/input/squeeze/value",
		GestureWristTap:   "/input/menu/click",
		GestureThumbPress: "",
		GestureIndexBend:  "",
		GesturePalmTap:    "",
	}
	if side == pathreg.SideLeft {
		targets[GestureIndexProximalTap] = "/input/y/click"
		targets[GestureLittleProximalTap] = "/input/x/click"
	} else {
		targets[GestureIndexProximalTap] = "/input/b/click"
		targets[GestureLittleProximalTap] = "/input/a/click"
	}
	return targets
}

// Hand returns the HandConfig for side.
func (c Config) Hand(side pathreg.Side) HandConfig {
	if side == pathreg.SideLeft {
		return c.Left
	}
	return c.Right
}

// WithHand returns a copy of c with side's HandConfig replaced.
func (c Config) WithHand(side pathreg.Side, hand HandConfig) Config {
	if side == pathreg.SideLeft {
		c.Left = hand
	} else {
		c.Right = hand
	}
	return c
}
