package core

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"
)

// Device extensions under probe.
const (
	ExtTransformFeedback        = "VK_EXT_transform_feedback"
	ExtRobustness2              = "VK_EXT_robustness2"
	ExtShaderViewportIndexLayer = "VK_EXT_shader_viewport_index_layer"
)

// Enumeration constants of VK_EXT_transform_feedback the binding
// predates, values from the registry.
const (
	BufferUsageTransformFeedbackBit        vk.BufferUsageFlagBits = 0x00000800
	BufferUsageTransformFeedbackCounterBit vk.BufferUsageFlagBits = 0x00001000
	QueryTypeTransformFeedbackStream       vk.QueryType           = 1000028004
)

// DeviceExtensions enumerates the extension properties of a physical
// device, count call first, then the full list.
func DeviceExtensions(pd vk.PhysicalDevice) ([]vk.ExtensionProperties, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &count, nil)); err != nil {
		return nil, fmt.Errorf("vk.EnumerateDeviceExtensionProperties(): %s", err)
	}
	properties := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &count, properties)); err != nil {
		return nil, fmt.Errorf("vk.EnumerateDeviceExtensionProperties(): %s", err)
	}
	return properties, nil
}

// ExtensionNames enumerates just the names.
func ExtensionNames(pd vk.PhysicalDevice) []string {
	properties, err := DeviceExtensions(pd)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(properties))
	for _, ext := range properties {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names
}

// ExtensionSupported reports whether the named device extension is
// advertised. Matching is exact and case sensitive.
func ExtensionSupported(pd vk.PhysicalDevice, name string) bool {
	return hasExtension(ExtensionNames(pd), name)
}

// ExtensionSpecVersion returns the advertised spec version of the named
// extension, false when absent.
func ExtensionSpecVersion(pd vk.PhysicalDevice, name string) (uint32, bool) {
	properties, err := DeviceExtensions(pd)
	if err != nil {
		return 0, false
	}
	for _, ext := range properties {
		ext.Deref()
		if vk.ToString(ext.ExtensionName[:]) == name {
			return ext.SpecVersion, true
		}
	}
	return 0, false
}

func hasExtension(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// commandOwners maps extension entry points to the extension that must
// be enabled before they may be resolved.
var commandOwners = map[string]string{
	"vkCmdBindTransformFeedbackBuffersEXT": ExtTransformFeedback,
	"vkCmdBeginTransformFeedbackEXT":       ExtTransformFeedback,
	"vkCmdEndTransformFeedbackEXT":         ExtTransformFeedback,
	"vkCmdBeginQueryIndexedEXT":            ExtTransformFeedback,
	"vkCmdEndQueryIndexedEXT":              ExtTransformFeedback,
	"vkCmdDrawIndirectByteCountEXT":        ExtTransformFeedback,
}

// ProcResolver resolves a named entry point, nil when unresolved.
type ProcResolver func(name string) unsafe.Pointer

// ExtensionFunctionTable maps resolved entry point names to their
// addresses. Only names whose owning extension was confirmed enabled,
// and which the driver actually resolved, are present.
type ExtensionFunctionTable map[string]unsafe.Pointer

// Resolved reports whether a usable entry point is in the table.
func (t ExtensionFunctionTable) Resolved(name string) bool {
	return t[name] != nil
}

// ResolveExtensionFunctions resolves the named entry points. Names owned
// by an extension outside enabled are never passed to the resolver,
// querying them is undefined behaviour in the driver.
func ResolveExtensionFunctions(resolve ProcResolver, enabled []string, names []string) ExtensionFunctionTable {
	table := ExtensionFunctionTable{}
	for _, name := range names {
		owner, known := commandOwners[name]
		if !known || !hasExtension(enabled, owner) {
			continue
		}
		if addr := resolve(name); addr != nil {
			table[name] = addr
		}
	}
	return table
}
