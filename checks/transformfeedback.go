package checks

import (
	vk "github.com/goki/vulkan"

	"github.com/devblok/vkprobe/core"
	"github.com/devblok/vkprobe/shader"
	"github.com/devblok/vkprobe/suite"
)

// overflowProbeSize is the capture buffer size the overflow check
// creates, and the floor it holds maxTransformFeedbackBufferSize to.
const overflowProbeSize = 1 << 20

// Entry points the pause and resume path needs resolved.
var pauseResumeCommands = []string{
	"vkCmdBeginTransformFeedbackEXT",
	"vkCmdEndTransformFeedbackEXT",
}

// TransformFeedbackRequests fills cfg with the device state the
// transform feedback sequence probes against.
func TransformFeedbackRequests(cfg *core.Configuration) {
	cfg.Extensions = []string{core.ExtTransformFeedback}
	cfg.Features = core.FeatureFlagSet{
		core.FeatureTransformFeedback: true,
		core.FeatureGeometryStreams:   true,
	}
	cfg.Functions = []string{
		"vkCmdBindTransformFeedbackBuffersEXT",
		"vkCmdBeginTransformFeedbackEXT",
		"vkCmdEndTransformFeedbackEXT",
		"vkCmdBeginQueryIndexedEXT",
		"vkCmdEndQueryIndexedEXT",
		"vkCmdDrawIndirectByteCountEXT",
	}
}

// TransformFeedback returns the transform feedback check sequence.
func TransformFeedback() suite.Suite {
	return suite.Suite{
		Title: "Transform Feedback Test Suite",
		Checks: []suite.Check{
			{Name: "xfb_extension_present", Run: feedbackExtensionPresent},
			{Name: "xfb_basic_capture", Run: feedbackBasicCapture},
			{Name: "xfb_query_primitives", Run: feedbackQueryPrimitives},
			{Name: "xfb_pause_resume", Run: feedbackPauseResume},
			{Name: "xfb_overflow", Run: feedbackOverflow},
		},
	}
}

func feedbackExtensionPresent(ctx *core.Context) core.CapabilityResult {
	var res core.CapabilityResult
	version, present := core.ExtensionSpecVersion(ctx.PhysicalDevice, core.ExtTransformFeedback)
	res.Supported = present
	if present {
		res.Notef("%s spec version %d", core.ExtTransformFeedback, version)
	} else {
		res.Notef("%s not advertised", core.ExtTransformFeedback)
	}
	return res
}

// captureBuffer creates and backs a buffer with the given usage, then
// tears it down. The checks only need creation to succeed.
func captureBuffer(ctx *core.Context, size vk.DeviceSize, usage vk.BufferUsageFlags) error {
	buffer, err := ctx.NewBuffer(size, usage)
	if err != nil {
		return err
	}
	memory, err := ctx.BackBuffer(buffer)
	if err != nil {
		vk.DestroyBuffer(ctx.Device, buffer, nil)
		return err
	}
	vk.DestroyBuffer(ctx.Device, buffer, nil)
	vk.FreeMemory(ctx.Device, memory, nil)
	return nil
}

func feedbackBasicCapture(ctx *core.Context) core.CapabilityResult {
	var res core.CapabilityResult
	if !ctx.ExtensionEnabled(core.ExtTransformFeedback) {
		res.Notef("%s not enabled on device (%s creation)", core.ExtTransformFeedback, ctx.Mode)
		return res
	}

	code, err := shader.CaptureVertexSPIRV()
	if err != nil {
		res.Notef("capture shader compilation failed: %v", err)
		return res
	}
	res.Notef("capture shader compiled, %d bytes of SPIR-V", len(code))

	module, err := shader.NewModule(ctx.Device, code)
	if err != nil {
		res.Notef("%v", err)
		return res
	}
	vk.DestroyShaderModule(ctx.Device, module, nil)

	usage := vk.BufferUsageFlags(core.BufferUsageTransformFeedbackBit | vk.BufferUsageVertexBufferBit)
	if err := captureBuffer(ctx, 4096, usage); err != nil {
		res.Notef("capture buffer creation failed: %v", err)
		return res
	}

	res.Supported = true
	res.Notef("capture buffer created and backed")
	return res
}

func feedbackQueryPrimitives(ctx *core.Context) core.CapabilityResult {
	var res core.CapabilityResult
	if !ctx.ExtensionEnabled(core.ExtTransformFeedback) {
		res.Notef("%s not enabled on device (%s creation)", core.ExtTransformFeedback, ctx.Mode)
		return res
	}

	pool, err := ctx.NewQueryPool(core.QueryTypeTransformFeedbackStream, 1)
	if err != nil {
		res.Notef("query pool creation failed: %v", err)
		return res
	}
	vk.DestroyQueryPool(ctx.Device, pool, nil)

	res.Supported = true
	res.Notef("transform feedback stream query pool created")
	return res
}

func feedbackPauseResume(ctx *core.Context) core.CapabilityResult {
	var res core.CapabilityResult
	for _, name := range pauseResumeCommands {
		if !ctx.Funcs.Resolved(name) {
			res.Notef("%s unresolved", name)
			return res
		}
		res.Notef("%s resolved", name)
	}

	usage := vk.BufferUsageFlags(core.BufferUsageTransformFeedbackCounterBit)
	if err := captureBuffer(ctx, 16, usage); err != nil {
		res.Notef("counter buffer creation failed: %v", err)
		return res
	}

	res.Supported = true
	res.Notef("counter buffer created and backed")
	return res
}

func feedbackOverflow(ctx *core.Context) core.CapabilityResult {
	var res core.CapabilityResult
	if !ctx.ExtensionEnabled(core.ExtTransformFeedback) {
		res.Notef("%s not enabled on device (%s creation)", core.ExtTransformFeedback, ctx.Mode)
		return res
	}

	limits := core.QueryTransformFeedbackLimits(ctx.PhysicalDevice)
	res.Notef("maxTransformFeedbackBufferSize: %d", limits.MaxBufferSize)
	res.Notef("maxTransformFeedbackBuffers: %d", limits.MaxBuffers)
	if limits.MaxBufferSize < overflowProbeSize {
		return res
	}

	usage := vk.BufferUsageFlags(core.BufferUsageTransformFeedbackBit)
	if err := captureBuffer(ctx, overflowProbeSize, usage); err != nil {
		res.Notef("overflow probe buffer creation failed: %v", err)
		return res
	}

	res.Supported = true
	res.Notef("%d byte capture buffer created", overflowProbeSize)
	return res
}
