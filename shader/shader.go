// Package shader compiles the capture shaders the transform feedback
// checks record with, and carries the reference data their output is
// compared against. Compilation happens at probe time from WGSL, no
// precompiled SPIR-V ships with the binary.
package shader

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/gogpu/naga"

	"github.com/devblok/vkprobe/core"
)

// captureVertexWGSL emits one clip space triangle. The positions it
// writes are what transform feedback is expected to capture.
const captureVertexWGSL = `
@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    var pos = array<vec2<f32>, 3>(
        vec2<f32>(0.0, 0.5),
        vec2<f32>(-0.5, -0.5),
        vec2<f32>(0.5, -0.5)
    );
    return vec4<f32>(pos[idx], 0.0, 1.0);
}
`

// CaptureVertexSPIRV compiles the capture vertex shader.
func CaptureVertexSPIRV() ([]byte, error) {
	code, err := naga.Compile(captureVertexWGSL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile capture shader: %w", err)
	}
	return code, nil
}

// NewModule uploads compiled SPIR-V into a shader module on the device.
func NewModule(device vk.Device, code []byte) (vk.ShaderModule, error) {
	smci := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint64(len(code)),
		PCode:    core.SliceUint32(code),
	}

	var module vk.ShaderModule
	if err := vk.Error(vk.CreateShaderModule(device, &smci, nil, &module)); err != nil {
		return vk.NullShaderModule, fmt.Errorf("vk.CreateShaderModule: %s", err.Error())
	}
	return module, nil
}
