package xrtypes

import "github.com/handxr/ctrllayer/internal/geom"

// JointLocation mirrors XrHandJointLocationEXT: a pose plus its validity
// bitset. A location's Pose is only meaningful when Flags.Valid() is true.
type JointLocation struct {
	Flags LocationFlags
	Pose  geom.Pose
}

// FrameState mirrors the fields of XrFrameState this layer reads.
type FrameState struct {
	PredictedDisplayTime Time
}

// FrameBeginInfo mirrors XrFrameBeginInfo (currently no fields the layer
// reads, kept for symmetry with the real ABI call signature).
type FrameBeginInfo struct{}

// FrameWaitInfo mirrors XrFrameWaitInfo.
type FrameWaitInfo struct{}

// EventDataInteractionProfileChanged mirrors the type-specific event struct
// this layer synthesizes.
type EventDataInteractionProfileChanged struct {
	Session Session
}

// ActionSpaceCreateInfo mirrors XrActionSpaceCreateInfo.
type ActionSpaceCreateInfo struct {
	Action            Action
	SubactionPath     Path
	PoseInActionSpace geom.Pose
}

// ActionStateGetInfo mirrors XrActionStateGetInfo.
type ActionStateGetInfo struct {
	Action        Action
	SubactionPath Path
}

// ActionStateBoolean mirrors XrActionStateBoolean.
type ActionStateBoolean struct {
	CurrentState         bool
	ChangedSinceLastSync bool
	LastChangeTime       Time
	IsActive             bool
}

// ActionStateFloat mirrors XrActionStateFloat.
type ActionStateFloat struct {
	CurrentState         float64
	ChangedSinceLastSync bool
	LastChangeTime       Time
	IsActive             bool
}

// ActionStatePose mirrors XrActionStatePose.
type ActionStatePose struct {
	IsActive bool
}

// SpaceLocation mirrors XrSpaceLocation.
type SpaceLocation struct {
	Flags LocationFlags
	Pose  geom.Pose
}

// InteractionProfileSuggestedBinding mirrors XrActionSuggestedBinding.
type InteractionProfileSuggestedBinding struct {
	Action  Action
	Binding Path
}

// InteractionProfileSuggestedBindings mirrors
// XrInteractionProfileSuggestedBinding.
type InteractionProfileSuggestedBindings struct {
	InteractionProfile Path
	Suggestions        []InteractionProfileSuggestedBinding
}

// SyncActionsInfo mirrors XrActionsSyncInfo (the layer does not need to
// interpret which action sets were synced; it recomputes every gesture
// unconditionally, matching the original implementation).
type SyncActionsInfo struct{}

// InteractionProfileState mirrors XrInteractionProfileState.
type InteractionProfileState struct {
	InteractionProfile Path
}

// FnGetInstanceProcAddr is PFN_xrGetInstanceProcAddr.
type FnGetInstanceProcAddr func(instance Instance, name string) (unknownProc, Result)

// unknownProc is an opaque function pointer as returned by
// xrGetInstanceProcAddr; the dispatch package type-asserts it to the
// concrete Fn* type it expects for a given entry point name.
type unknownProc = any

// Downstream bundles every next_xr* function pointer the layer captures
// while resolving instance proc addresses, mirroring the flat set of
// next_xrFoo globals in the original implementation's translation unit.
// A nil field means the downstream runtime never offered that entry point.
type Downstream struct {
	GetInstanceProcAddr FnGetInstanceProcAddr

	WaitFrame                         func(Session, *FrameWaitInfo, *FrameState) Result
	BeginFrame                        func(Session, *FrameBeginInfo) Result
	CreateSession                     func(instance Instance) (Session, Result)
	DestroySession                    func(Session) Result
	PollEvent                         func(Instance, *EventDataBuffer) Result
	GetCurrentInteractionProfile      func(Session, Path) (Path, Result)
	SuggestInteractionProfileBindings func(Instance, *InteractionProfileSuggestedBindings) Result
	CreateActionSpace                 func(Session, *ActionSpaceCreateInfo) (Space, Result)
	DestroySpace                      func(Space) Result
	LocateSpace                       func(space, baseSpace Space, t Time) (SpaceLocation, Result)
	SyncActions                       func(Session, *SyncActionsInfo) Result
	GetActionStateBoolean             func(Session, *ActionStateGetInfo) (ActionStateBoolean, Result)
	GetActionStateFloat               func(Session, *ActionStateGetInfo) (ActionStateFloat, Result)
	GetActionStatePose                func(Session, *ActionStateGetInfo) (ActionStatePose, Result)

	CreateReferenceSpace func(Session, ReferenceSpaceType, geom.Pose) (Space, Result)
	PathToString         func(Instance, Path) (string, Result)
	StringToPath         func(Instance, string) (Path, Result)

	CreateHandTrackerEXT  func(Session, int) (uint64, Result)
	DestroyHandTrackerEXT func(handTracker uint64) Result
	LocateHandJointsEXT   func(handTracker uint64, base Space, t Time) ([]JointLocation, Result)
}

// InterceptedNames lists every entry point the dispatch package overrides
// when the downstream resolver offers it. Names outside this set always
// resolve straight to the downstream implementation.
var InterceptedNames = []string{
	"xrWaitFrame",
	"xrBeginFrame",
	"xrCreateSession",
	"xrDestroySession",
	"xrPollEvent",
	"xrGetCurrentInteractionProfile",
	"xrSuggestInteractionProfileBindings",
	"xrCreateActionSpace",
	"xrDestroySpace",
	"xrLocateSpace",
	"xrSyncActions",
	"xrGetActionStateBoolean",
	"xrGetActionStateFloat",
	"xrGetActionStatePose",
}

// VisualizationNames lists the swapchain and frame-end entry points a
// hand-rendering layer works with. Resolve does not intercept any of them;
// they pass through to the downstream unchanged.
var VisualizationNames = []string{
	"xrCreateSwapchain",
	"xrDestroySwapchain",
	"xrEnumerateSwapchainImages",
	"xrAcquireSwapchainImage",
	"xrEndFrame",
}

// LayerName is the fixed identifier this layer negotiates under.
const LayerName = "XR_APILAYER_NOVENDOR_hand_to_controller"

// HandTrackingExtensionName is the OpenXR extension this layer requires to
// do anything beyond pass-through.
const HandTrackingExtensionName = "XR_EXT_hand_tracking"

// NegotiateLoaderInfo mirrors XrNegotiateLoaderInfo, the struct the loader
// passes in to describe its own supported interface/API version range.
type NegotiateLoaderInfo struct {
	StructType          uint32
	StructVersion       uint32
	StructSize          uintptr
	MinInterfaceVersion uint32
	MaxInterfaceVersion uint32
	MinAPIVersion       uint64
	MaxAPIVersion       uint64
}

// NegotiateApiLayerRequest mirrors XrNegotiateApiLayerRequest, the struct
// this layer fills in during negotiation.
type NegotiateApiLayerRequest struct {
	StructType             uint32
	StructVersion          uint32
	StructSize             uintptr
	LayerInterfaceVersion  uint32
	LayerApiVersion        uint64
	GetInstanceProcAddr    FnGetInstanceProcAddr
	CreateApiLayerInstance func(*ApiLayerCreateInfo, *InstanceCreateInfo) (Instance, Result)
}

// SupportedInterfaceVersion and SupportedAPIVersion pin the single
// (interface, API) version pair this layer negotiates. Any loader
// declaring a range outside this pair fails negotiation.
const (
	SupportedInterfaceVersion = 1
	SupportedAPIVersionMin    = uint64(1) << 48                       // 1.0.0 packed the way OpenXR packs XR_MAKE_VERSION
	SupportedAPIVersionMax    = (uint64(1) << 48) | (uint64(1) << 32) // 1.1.x
)

// ApiLayerNextInfo mirrors XrApiLayerNextInfo, one link of the layer chain.
type ApiLayerNextInfo struct {
	LayerName                  string
	NextGetInstanceProcAddr    FnGetInstanceProcAddr
	NextCreateApiLayerInstance func(*ApiLayerCreateInfo, *InstanceCreateInfo) (Instance, Result)
	Next                       *ApiLayerNextInfo
}

// ApiLayerCreateInfo mirrors XrApiLayerCreateInfo.
type ApiLayerCreateInfo struct {
	StructType uint32
	StructSize uintptr
	NextInfo   *ApiLayerNextInfo
}

// InstanceCreateInfo mirrors the subset of XrInstanceCreateInfo this layer
// reads/mutates (application name, engine name, enabled extensions).
type InstanceCreateInfo struct {
	ApplicationName   string
	EngineName        string
	EnabledExtensions []string
}
