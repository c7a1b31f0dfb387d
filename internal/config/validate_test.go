package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClampsClickThreshold(t *testing.T) {
	cfg := Default()
	cfg.ClickThreshold = 1.5
	cfg = Validate(cfg, discardLogger())
	assert.Equal(t, Default().ClickThreshold, cfg.ClickThreshold)
}

func TestValidateRejectsUnknownJoint(t *testing.T) {
	cfg := Default()
	cfg.AimJoint = 99
	cfg = Validate(cfg, discardLogger())
	assert.Equal(t, Default().AimJoint, cfg.AimJoint)
}

func TestValidateDisablesInvertedGestureThresholds(t *testing.T) {
	cfg := Default()
	cfg.Thresholds[GesturePinch] = GestureThresholds{Near: 0.1, Far: 0.05}
	cfg.Left.Targets[GesturePinch] = "/input/trigger/value"
	cfg.Right.Targets[GesturePinch] = "/input/trigger/value"

	cfg = Validate(cfg, discardLogger())

	assert.Equal(t, Default().Thresholds[GesturePinch], cfg.Thresholds[GesturePinch])
	_, leftOK := cfg.Left.Targets[GesturePinch]
	assert.False(t, leftOK, "left pinch target should have been cleared")
	_, rightOK := cfg.Right.Targets[GesturePinch]
	assert.False(t, rightOK, "right pinch target should have been cleared")
}

func TestValidateLeavesWellFormedConfigUntouched(t *testing.T) {
	cfg := Default()
	got := Validate(cfg, discardLogger())
	assert.Equal(t, cfg.ClickThreshold, got.ClickThreshold)
	assert.Equal(t, cfg.AimJoint, got.AimJoint)
	assert.Equal(t, cfg.GripJoint, got.GripJoint)
}
