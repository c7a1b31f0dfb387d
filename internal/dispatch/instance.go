package dispatch

import (
	"os"
	"path/filepath"

	"github.com/handxr/ctrllayer/internal/config"
	"github.com/handxr/ctrllayer/internal/geom"
	"github.com/handxr/ctrllayer/internal/xrtypes"
)

// CreateInstance implements xrCreateApiLayerInstance: validates the
// layer-info chain, captures the downstream resolver, probes for
// XR_EXT_hand_tracking, forwards to the downstream create, and on success
// resolves the entry points this layer needs directly plus loads
// configuration.
func (e *Engine) CreateInstance(createInfo *xrtypes.ApiLayerCreateInfo, instanceInfo *xrtypes.InstanceCreateInfo) (xrtypes.Instance, xrtypes.Result) {
	if createInfo == nil || createInfo.NextInfo == nil {
		e.log.Error("createInstance: missing layer-info chain", "component", "dispatch")
		return 0, xrtypes.ErrorInitializationFailed
	}
	nextInfo := createInfo.NextInfo
	if nextInfo.NextGetInstanceProcAddr == nil || nextInfo.NextCreateApiLayerInstance == nil {
		e.log.Error("createInstance: layer-info chain missing next pointers", "component", "dispatch")
		return 0, xrtypes.ErrorInitializationFailed
	}

	e.down.GetInstanceProcAddr = nextInfo.NextGetInstanceProcAddr

	handTrackingAvailable := e.extensionProbe(xrtypes.HandTrackingExtensionName)
	if handTrackingAvailable {
		instanceInfo.EnabledExtensions = append(instanceInfo.EnabledExtensions, xrtypes.HandTrackingExtensionName)
	}

	// Pop this layer's link off the chain before forwarding, the standard
	// OpenXR API layer convention for a create-instance trampoline.
	poppedCreateInfo := &xrtypes.ApiLayerCreateInfo{
		StructType: createInfo.StructType,
		StructSize: createInfo.StructSize,
		NextInfo:   nextInfo.Next,
	}
	instance, result := nextInfo.NextCreateApiLayerInstance(poppedCreateInfo, instanceInfo)
	if !xrtypes.Succeeded(result) {
		return instance, result
	}

	e.mu.Lock()
	e.instance = instance
	e.handTrackingAvailable = handTrackingAvailable
	e.actions.Clear()
	e.mu.Unlock()

	if handTrackingAvailable {
		e.resolveCoreDownstreamPointers(instance)
	} else {
		e.log.Warn("createInstance: XR_EXT_hand_tracking unavailable, layer will pass through",
			"component", "dispatch")
	}

	cfg := e.loadConfiguration(instanceInfo)
	if e.down.StringToPath != nil {
		if profile, presult := e.down.StringToPath(instance, cfg.RawInteractionProfile); xrtypes.Succeeded(presult) {
			cfg.InteractionProfile = profile
		} else {
			e.log.Warn("createInstance: failed to resolve configured interaction profile",
				"component", "dispatch", "profile", cfg.RawInteractionProfile, "result", presult)
		}
	}

	e.mu.Lock()
	e.cfg = cfg
	// armed gates every hand-specific interception: without
	// XR_EXT_hand_tracking the layer has nothing to synthesize and every
	// trampoline must behave as pure pass-through (SPEC_FULL.md section 8,
	// scenario 6), matching the original's config.loaded, which is only
	// ever set once the extension is confirmed present.
	e.armed = handTrackingAvailable
	e.mu.Unlock()

	return instance, xrtypes.Success
}

// resolveCoreDownstreamPointers resolves the entry points the layer needs
// directly (never through Resolve/trampoline substitution, since the
// application itself never asks for these): the three hand-tracking
// functions plus createReferenceSpace, pathToString, and stringToPath.
func (e *Engine) resolveCoreDownstreamPointers(instance xrtypes.Instance) {
	get := func(name string, assign func(proc any)) {
		proc, result := e.down.GetInstanceProcAddr(instance, name)
		if !xrtypes.Succeeded(result) {
			e.log.Warn("createInstance: downstream does not offer entry point",
				"component", "dispatch", "name", name, "result", result)
			return
		}
		assign(proc)
	}

	get("xrCreateReferenceSpace", func(p any) {
		if f, ok := p.(func(xrtypes.Session, xrtypes.ReferenceSpaceType, geom.Pose) (xrtypes.Space, xrtypes.Result)); ok {
			e.down.CreateReferenceSpace = f
		}
	})
	get("xrPathToString", func(p any) {
		if f, ok := p.(func(xrtypes.Instance, xrtypes.Path) (string, xrtypes.Result)); ok {
			e.down.PathToString = f
		}
	})
	get("xrStringToPath", func(p any) {
		if f, ok := p.(func(xrtypes.Instance, string) (xrtypes.Path, xrtypes.Result)); ok {
			e.down.StringToPath = f
		}
	})
	get("xrCreateHandTrackerEXT", func(p any) {
		if f, ok := p.(func(xrtypes.Session, int) (uint64, xrtypes.Result)); ok {
			e.down.CreateHandTrackerEXT = f
		}
	})
	get("xrDestroyHandTrackerEXT", func(p any) {
		if f, ok := p.(func(uint64) xrtypes.Result); ok {
			e.down.DestroyHandTrackerEXT = f
		}
	})
	get("xrLocateHandJointsEXT", func(p any) {
		if f, ok := p.(func(uint64, xrtypes.Space, xrtypes.Time) ([]xrtypes.JointLocation, xrtypes.Result)); ok {
			e.down.LocateHandJointsEXT = f
		}
	})
}

// loadConfiguration asks the Config Model to load configuration keyed
// first by application name then by engine name, and always runs the
// structural validation pass over whatever was assembled.
func (e *Engine) loadConfiguration(instanceInfo *xrtypes.InstanceCreateInfo) config.Config {
	cfg, ok := e.tryLoadConfig(instanceInfo.ApplicationName)
	if !ok {
		cfg, ok = e.tryLoadConfig(instanceInfo.EngineName)
	}
	if !ok {
		e.log.Warn("createInstance: no config file found for application or engine name, using defaults",
			"component", "config", "application", instanceInfo.ApplicationName, "engine", instanceInfo.EngineName)
		cfg = config.Default()
	}
	return config.Validate(cfg, e.log)
}

func (e *Engine) tryLoadConfig(name string) (config.Config, bool) {
	if name == "" || e.configDir == "" {
		return config.Config{}, false
	}
	path := filepath.Join(e.configDir, name+".cfg")
	f, err := os.Open(path)
	if err != nil {
		return config.Config{}, false
	}
	defer f.Close()
	e.log.Info("createInstance: loading config", "component", "config", "path", path)
	return config.Load(f, e.log), true
}
