package xrtypes

// Result mirrors XrResult. Positive values are success codes, negative
// values are failure codes, matching the OpenXR convention that callers
// check `result >= 0` for success.
type Result int32

const (
	Success                   Result = 0
	SessionLossPending        Result = 3
	EventUnavailable          Result = 4
	ErrorValidationFailure    Result = -1
	ErrorRuntimeFailure       Result = -2
	ErrorHandleInvalid        Result = -12
	ErrorInitializationFailed Result = -3
	ErrorFunctionUnsupported  Result = -7
	ErrorPathInvalid          Result = -37
)

// Succeeded reports whether a Result represents success (non-negative).
func Succeeded(r Result) bool { return r >= 0 }

// Time mirrors XrTime: a monotonic nanosecond timestamp defined by the
// runtime. Zero means "no time has been recorded yet".
type Time int64

// Path mirrors XrPath: an opaque, runtime-assigned handle standing in for
// an interned path string (e.g. "/user/hand/left").
type Path uint64

// Instance, Session, Space, Action and ActionSet mirror the corresponding
// OpenXR opaque handle types. Handle 0 always means "null" / "not created".
type (
	Instance  uint64
	Session   uint64
	Space     uint64
	Action    uint64
	ActionSet uint64
	SystemID  uint64
)

// FormFactor mirrors XrFormFactor.
type FormFactor int32

const FormFactorHeadMountedDisplay FormFactor = 1

// ReferenceSpaceType mirrors XrReferenceSpaceType.
type ReferenceSpaceType int32

const (
	ReferenceSpaceTypeView  ReferenceSpaceType = 1
	ReferenceSpaceTypeLocal ReferenceSpaceType = 2
	ReferenceSpaceTypeStage ReferenceSpaceType = 3
)

// StructureType mirrors the subset of XrStructureType values this layer
// constructs or reads.
type StructureType int32

const (
	StructureTypeEventDataInteractionProfileChanged StructureType = 76
)

// EventDataBuffer mirrors XrEventDataBuffer: a fixed-size tagged union the
// runtime fills in on a successful xrPollEvent.
type EventDataBuffer struct {
	Type StructureType
	// Session identifies which session the synthesized event concerns.
	// Real OpenXR events carry this nested one level down in a
	// type-specific struct; this layer only ever synthesizes one event
	// type, so it is hoisted here for simplicity.
	Session Session
}
