package xrtypes

// JointIndex mirrors XrHandJointEXT. Only a subset of the 26 defined joints
// is ever referenced by the gesture recognizer or pose synthesizer, but the
// full enumeration is kept so that joint arrays sampled from the downstream
// hand tracker can be indexed directly without a translation table.
type JointIndex int32

const (
	JointPalm JointIndex = iota
	JointWrist
	JointThumbMetacarpal
	JointThumbProximal
	JointThumbDistal
	JointThumbTip
	JointIndexMetacarpal
	JointIndexProximal
	JointIndexIntermediate
	JointIndexDistal
	JointIndexTip
	JointMiddleMetacarpal
	JointMiddleProximal
	JointMiddleIntermediate
	JointMiddleDistal
	JointMiddleTip
	JointRingMetacarpal
	JointRingProximal
	JointRingIntermediate
	JointRingDistal
	JointRingTip
	JointLittleMetacarpal
	JointLittleProximal
	JointLittleIntermediate
	JointLittleDistal
	JointLittleTip

	JointCount
)

// jointNames backs JointIndex.String and the config model's joint-name
// parser (config values name joints by these tokens, e.g. "PALM").
var jointNames = map[JointIndex]string{
	JointPalm:               "PALM",
	JointWrist:              "WRIST",
	JointThumbMetacarpal:    "THUMB_METACARPAL",
	JointThumbProximal:      "THUMB_PROXIMAL",
	JointThumbDistal:        "THUMB_DISTAL",
	JointThumbTip:           "THUMB_TIP",
	JointIndexMetacarpal:    "INDEX_METACARPAL",
	JointIndexProximal:      "INDEX_PROXIMAL",
	JointIndexIntermediate:  "INDEX_INTERMEDIATE",
	JointIndexDistal:        "INDEX_DISTAL",
	JointIndexTip:           "INDEX_TIP",
	JointMiddleMetacarpal:   "MIDDLE_METACARPAL",
	JointMiddleProximal:     "MIDDLE_PROXIMAL",
	JointMiddleIntermediate: "MIDDLE_INTERMEDIATE",
	JointMiddleDistal:       "MIDDLE_DISTAL",
	JointMiddleTip:          "MIDDLE_TIP",
	JointRingMetacarpal:     "RING_METACARPAL",
	JointRingProximal:       "RING_PROXIMAL",
	JointRingIntermediate:   "RING_INTERMEDIATE",
	JointRingDistal:         "RING_DISTAL",
	JointRingTip:            "RING_TIP",
	JointLittleMetacarpal:   "LITTLE_METACARPAL",
	JointLittleProximal:     "LITTLE_PROXIMAL",
	JointLittleIntermediate: "LITTLE_INTERMEDIATE",
	JointLittleDistal:       "LITTLE_DISTAL",
	JointLittleTip:          "LITTLE_TIP",
}

var jointsByName = func() map[string]JointIndex {
	m := make(map[string]JointIndex, len(jointNames))
	for idx, name := range jointNames {
		m[name] = idx
	}
	return m
}()

// String implements fmt.Stringer.
func (j JointIndex) String() string {
	if name, ok := jointNames[j]; ok {
		return name
	}
	return "UNKNOWN_JOINT"
}

// ParseJointName resolves a config-file joint token (e.g. "PALM") to a
// JointIndex. Reports ok=false for an unrecognized name.
func ParseJointName(name string) (JointIndex, bool) {
	idx, ok := jointsByName[name]
	return idx, ok
}

// LocationFlags mirrors XrSpaceLocationFlags, the validity bitset attached
// to every joint location and space location.
type LocationFlags uint64

const (
	LocationFlagOrientationValid   LocationFlags = 1 << 0
	LocationFlagPositionValid      LocationFlags = 1 << 1
	LocationFlagOrientationTracked LocationFlags = 1 << 2
	LocationFlagPositionTracked    LocationFlags = 1 << 3
)

// Valid reports whether both position and orientation are valid, the
// definition of a usable JointLocation used throughout the recognizer.
func (f LocationFlags) Valid() bool {
	const need = LocationFlagPositionValid | LocationFlagOrientationValid
	return f&need == need
}
