package config

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/handxr/ctrllayer/internal/geom"
	"github.com/handxr/ctrllayer/internal/pathreg"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// gestureKeys maps the configuration file's key prefix for each gesture
// (the PARSE_ACTION macro's configString argument in the original
// implementation) to the Gesture it configures.
var gestureKeys = map[string]Gesture{
	"pinch":               GesturePinch,
	"thumb_press":         GestureThumbPress,
	"index_bend":          GestureIndexBend,
	"squeeze":             GestureSqueeze,
	"palm_tap":            GesturePalmTap,
	"wrist_tap":           GestureWristTap,
	"index_proximal_tap":  GestureIndexProximalTap,
	"little_proximal_tap": GestureLittleProximalTap,
}

// Load parses a configuration file in the layer's key=value text format,
// starting from Default and overwriting only the fields the file mentions.
// A line that fails to parse is logged and skipped; it never aborts the
// load, matching the original implementation's per-line try/catch. The
// returned Config has not yet been through Validate.
func Load(r io.Reader, log *slog.Logger) Config {
	cfg := Default()

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := applyLine(&cfg, line); err != nil {
			log.Warn("config: skipping unparseable line", "line", lineNumber, "error", err)
		}
	}
	return cfg
}

// applyLine parses a single "name=value" line and applies it to cfg.
func applyLine(cfg *Config, line string) error {
	offset := strings.IndexByte(line, '=')
	if offset < 0 {
		return fmt.Errorf("no '=' in line") // reported by Load, then skipped
	}
	name := line[:offset]
	value := line[offset+1:]

	side := pathreg.SideNeither
	subName := name
	switch {
	case strings.HasPrefix(name, "left."):
		side = pathreg.SideLeft
		subName = name[len("left."):]
	case strings.HasPrefix(name, "right."):
		side = pathreg.SideRight
		subName = name[len("right."):]
	}

	switch {
	case name == "interaction_profile":
		cfg.RawInteractionProfile = value
		return nil
	case name == "aim_joint":
		idx, ok := xrtypes.ParseJointName(value)
		if !ok {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("aim_joint: %w", err)
			}
			idx = xrtypes.JointIndex(n)
		}
		cfg.AimJoint = idx
		return nil
	case name == "grip_joint":
		idx, ok := xrtypes.ParseJointName(value)
		if !ok {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("grip_joint: %w", err)
			}
			idx = xrtypes.JointIndex(n)
		}
		cfg.GripJoint = idx
		return nil
	case name == "click_threshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("click_threshold: %w", err)
		}
		cfg.ClickThreshold = f
		return nil
	}

	// pinch.near/pinch.far and friends carry no left./right. prefix; they
	// configure one gesture's threshold pair for both hands, so they must
	// be matched before the SideNeither guard below rejects them.
	for key, gesture := range gestureKeys {
		switch name {
		case key + ".near":
			t := cfg.Thresholds[gesture]
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("%s.near: %w", key, err)
			}
			t.Near = f
			cfg.Thresholds[gesture] = t
			return nil
		case key + ".far":
			t := cfg.Thresholds[gesture]
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("%s.far: %w", key, err)
			}
			t.Far = f
			cfg.Thresholds[gesture] = t
			return nil
		}
	}

	if side == pathreg.SideNeither {
		return fmt.Errorf("unrecognized key %q", name)
	}

	switch {
	case subName == "enabled":
		enabled := value == "1" || value == "true"
		hand := cfg.Hand(side)
		hand.Enabled = enabled
		*cfg = cfg.WithHand(side, hand)
		return nil
	case subName == "transform.vec":
		v, err := parseVec3(value)
		if err != nil {
			return fmt.Errorf("transform.vec: %w", err)
		}
		hand := cfg.Hand(side)
		hand.Offset.Position = v
		*cfg = cfg.WithHand(side, hand)
		return nil
	case subName == "transform.quat":
		q, err := parseQuat(value)
		if err != nil {
			return fmt.Errorf("transform.quat: %w", err)
		}
		hand := cfg.Hand(side)
		hand.Offset.Orientation = q
		*cfg = cfg.WithHand(side, hand)
		return nil
	}

	for key, gesture := range gestureKeys {
		if subName == key {
			hand := cfg.Hand(side)
			if hand.Targets == nil {
				hand.Targets = make(map[Gesture]string)
			}
			hand.Targets[gesture] = value
			*cfg = cfg.WithHand(side, hand)
			return nil
		}
	}

	return fmt.Errorf("unrecognized key %q", name)
}

func parseVec3(value string) (geom.Vec3, error) {
	parts := strings.Fields(value)
	if len(parts) != 3 {
		return geom.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(parts))
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return geom.Vec3{}, err
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return geom.Vec3{}, err
	}
	z, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return geom.Vec3{}, err
	}
	return geom.Vec3{X: x, Y: y, Z: z}, nil
}

func parseQuat(value string) (geom.Quat, error) {
	parts := strings.Fields(value)
	if len(parts) != 4 {
		return geom.Quat{}, fmt.Errorf("expected 4 components, got %d", len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return geom.Quat{}, err
		}
		vals[i] = f
	}
	return geom.Quat{X: vals[0], Y: vals[1], Z: vals[2], W: vals[3]}, nil
}
