package checks

import (
	"github.com/devblok/vkprobe/core"
	"github.com/devblok/vkprobe/suite"
)

// RobustnessRequests fills cfg with the device state the robustness
// sequence probes against.
func RobustnessRequests(cfg *core.Configuration) {
	cfg.Extensions = []string{core.ExtRobustness2}
	cfg.Features = core.FeatureFlagSet{
		core.FeatureNullDescriptor:      true,
		core.FeatureRobustBufferAccess2: true,
	}
}

// Robustness returns the robustness feature check sequence.
func Robustness() suite.Suite {
	return suite.Suite{
		Title: "Robustness Feature Test Suite",
		Checks: []suite.Check{
			{Name: "robustness2_extension", Run: robustnessExtension},
			{Name: "null_descriptor", Run: robustnessNullDescriptor},
			{Name: "robust_access2", Run: robustnessAccess2},
		},
	}
}

func robustnessExtension(ctx *core.Context) core.CapabilityResult {
	var res core.CapabilityResult
	version, present := core.ExtensionSpecVersion(ctx.PhysicalDevice, core.ExtRobustness2)
	res.Supported = present
	if present {
		res.Notef("%s spec version %d", core.ExtRobustness2, version)
	} else {
		res.Notef("%s not advertised", core.ExtRobustness2)
	}
	return res
}

func robustnessNullDescriptor(ctx *core.Context) core.CapabilityResult {
	var res core.CapabilityResult
	if !core.ExtensionSupported(ctx.PhysicalDevice, core.ExtRobustness2) {
		res.Notef("%s not advertised", core.ExtRobustness2)
		return res
	}
	flags := core.QueryFeatureFlags(ctx.PhysicalDevice, core.Robustness2Features)
	res.Supported = flags.Enabled(core.FeatureNullDescriptor)
	res.Notef("nullDescriptor advertised: %t", res.Supported)
	return res
}

func robustnessAccess2(ctx *core.Context) core.CapabilityResult {
	var res core.CapabilityResult
	if !core.ExtensionSupported(ctx.PhysicalDevice, core.ExtRobustness2) {
		res.Notef("%s not advertised", core.ExtRobustness2)
		return res
	}
	flags := core.QueryFeatureFlags(ctx.PhysicalDevice, core.Robustness2Features)
	buffers := flags.Enabled(core.FeatureRobustBufferAccess2)
	images := flags.Enabled(core.FeatureRobustImageAccess2)
	res.Supported = buffers && images
	res.Notef("robustBufferAccess2 advertised: %t", buffers)
	res.Notef("robustImageAccess2 advertised: %t", images)
	return res
}
