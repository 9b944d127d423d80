// Package checks holds the three fixed capability check sequences the
// probe binaries run. Each sequence is a function returning a suite,
// with a companion that fills a configuration with everything the
// sequence needs enabled on the device.
package checks

import (
	"github.com/devblok/vkprobe/core"
	"github.com/devblok/vkprobe/suite"
)

// Limit floors for the geometry checks. Passthrough needs one triangle
// out, amplification needs two plus a position per vertex.
const (
	passthroughOutputVertices    = 3
	amplifiedOutputVertices      = 6
	amplifiedOutputComponents    = 24
	layeredFramebufferLayerFloor = 2
)

// GeometryRequests fills cfg with the device state the geometry
// sequence probes against.
func GeometryRequests(cfg *core.Configuration) {
	cfg.Features = core.FeatureFlagSet{
		core.FeatureGeometryShader:     true,
		core.FeatureShaderCullDistance: true,
	}
}

// Geometry returns the geometry shader check sequence.
func Geometry() suite.Suite {
	return suite.Suite{
		Title: "Geometry Shader Test Suite",
		Checks: []suite.Check{
			{Name: "gs_feature_supported", Run: geometryFeatureSupported},
			{Name: "gs_basic_passthrough", Run: geometryBasicPassthrough},
			{Name: "gs_amplification", Run: geometryAmplification},
			{Name: "gs_culling", Run: geometryCulling},
			{Name: "gs_layered_rendering", Run: geometryLayeredRendering},
		},
	}
}

func geometryFeatureSupported(ctx *core.Context) core.CapabilityResult {
	var res core.CapabilityResult
	flags := core.QueryFeatureFlags(ctx.PhysicalDevice, core.CoreFeatures)
	res.Supported = flags.Enabled(core.FeatureGeometryShader)
	res.Notef("geometryShader advertised: %t", res.Supported)
	return res
}

func admitsPassthrough(maxOutputVertices uint32) bool {
	return maxOutputVertices >= passthroughOutputVertices
}

func admitsAmplification(maxOutputVertices, maxTotalComponents uint32) bool {
	return maxOutputVertices >= amplifiedOutputVertices &&
		maxTotalComponents >= amplifiedOutputComponents
}

func geometryBasicPassthrough(ctx *core.Context) core.CapabilityResult {
	var res core.CapabilityResult
	if !ctx.FeatureGranted(core.FeatureGeometryShader) {
		res.Notef("geometryShader not granted on device (%s creation)", ctx.Mode)
		return res
	}
	res.Supported = admitsPassthrough(ctx.Limits.MaxGeometryOutputVertices)
	res.Notef("maxGeometryOutputVertices: %d", ctx.Limits.MaxGeometryOutputVertices)
	return res
}

func geometryAmplification(ctx *core.Context) core.CapabilityResult {
	var res core.CapabilityResult
	if !ctx.FeatureGranted(core.FeatureGeometryShader) {
		res.Notef("geometryShader not granted on device (%s creation)", ctx.Mode)
		return res
	}
	res.Supported = admitsAmplification(
		ctx.Limits.MaxGeometryOutputVertices,
		ctx.Limits.MaxGeometryTotalOutputComponents)
	res.Notef("maxGeometryOutputVertices: %d", ctx.Limits.MaxGeometryOutputVertices)
	res.Notef("maxGeometryTotalOutputComponents: %d", ctx.Limits.MaxGeometryTotalOutputComponents)
	return res
}

func geometryCulling(ctx *core.Context) core.CapabilityResult {
	var res core.CapabilityResult
	if !ctx.FeatureGranted(core.FeatureGeometryShader) {
		res.Notef("geometryShader not granted on device (%s creation)", ctx.Mode)
		return res
	}
	flags := core.QueryFeatureFlags(ctx.PhysicalDevice, core.CoreFeatures)
	res.Supported = flags.Enabled(core.FeatureShaderCullDistance)
	res.Notef("shaderCullDistance advertised: %t", res.Supported)
	return res
}

func geometryLayeredRendering(ctx *core.Context) core.CapabilityResult {
	var res core.CapabilityResult
	layers := ctx.Limits.MaxFramebufferLayers
	viewportLayer := core.ExtensionSupported(ctx.PhysicalDevice, core.ExtShaderViewportIndexLayer)
	res.Supported = layers >= layeredFramebufferLayerFloor && viewportLayer
	res.Notef("maxFramebufferLayers: %d", layers)
	res.Notef("%s present: %t", core.ExtShaderViewportIndexLayer, viewportLayer)
	return res
}
