package dispatch

import (
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// Negotiate implements xrNegotiateLoaderApiLayerInterface: validates the
// loader's declared interface/API version range against the single pair
// this layer supports, and on success fills request with the resolver and
// create-api-layer-instance function pointers bound to this Engine.
//
// Any field mismatch, or a layerName other than xrtypes.LayerName, fails
// negotiation with ErrorInitializationFailed; that failure is
// unrecoverable (SPEC_FULL.md section 7, taxonomy item 1) and the layer
// never arms.
func (e *Engine) Negotiate(info *xrtypes.NegotiateLoaderInfo, layerName string, request *xrtypes.NegotiateApiLayerRequest) xrtypes.Result {
	if layerName != xrtypes.LayerName {
		e.log.Error("negotiate: layer name mismatch", "component", "dispatch", "got", layerName)
		return xrtypes.ErrorInitializationFailed
	}
	if info == nil || request == nil {
		e.log.Error("negotiate: nil loader info or request", "component", "dispatch")
		return xrtypes.ErrorInitializationFailed
	}
	if info.MinInterfaceVersion > xrtypes.SupportedInterfaceVersion ||
		info.MaxInterfaceVersion < xrtypes.SupportedInterfaceVersion {
		e.log.Error("negotiate: unsupported interface version range", "component", "dispatch",
			"min", info.MinInterfaceVersion, "max", info.MaxInterfaceVersion)
		return xrtypes.ErrorInitializationFailed
	}
	if info.MinAPIVersion > xrtypes.SupportedAPIVersionMax ||
		info.MaxAPIVersion < xrtypes.SupportedAPIVersionMin {
		e.log.Error("negotiate: unsupported API version range", "component", "dispatch",
			"min", info.MinAPIVersion, "max", info.MaxAPIVersion)
		return xrtypes.ErrorInitializationFailed
	}

	request.LayerInterfaceVersion = xrtypes.SupportedInterfaceVersion
	request.LayerApiVersion = xrtypes.SupportedAPIVersionMin
	request.GetInstanceProcAddr = e.Resolve
	request.CreateApiLayerInstance = e.CreateInstance

	return xrtypes.Success
}
