package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeIdentity(t *testing.T) {
	joint := Pose{Position: Vec3{X: 1, Y: 1, Z: 1}, Orientation: IdentityQuat}
	got := Compose(IdentityPose, IdentityPose, joint)

	assert.Equal(t, joint.Position, got.Position, "identity compose changed position")
	assert.Equal(t, IdentityQuat, got.Orientation, "identity compose changed orientation")
}

func TestComposeGripOffset(t *testing.T) {
	// Scenario 3 from the end-to-end table: grip_joint=PALM, left hand
	// offset translates by (0,0,0.03) with identity rotation, action-space
	// offset is identity, PALM pose is translation (1,1,1) identity rotation.
	palm := Pose{Position: Vec3{X: 1, Y: 1, Z: 1}, Orientation: IdentityQuat}
	handOffset := Pose{Position: Vec3{X: 0, Y: 0, Z: 0.03}, Orientation: IdentityQuat}

	got := Compose(IdentityPose, handOffset, palm)

	assert.Equal(t, Vec3{X: 1, Y: 1, Z: 1.03}, got.Position, "grip pose")
	assert.Equal(t, IdentityQuat, got.Orientation, "grip orientation")
}

func TestDistance(t *testing.T) {
	a := Vec3{X: 0, Y: 0, Z: 0}
	b := Vec3{X: 0.01, Y: 0, Z: 0}
	assert.InDelta(t, 0.01, a.Distance(b), 0.0001)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1), "clamp low")
	assert.Equal(t, 1.0, Clamp(2, 0, 1), "clamp high")
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1), "clamp mid")
}
