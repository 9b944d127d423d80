package device

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/devblok/vkprobe/core"
)

// NewVulkanDevice creates an instance-only inspection device. No
// logical device is created, enumeration needs none.
func NewVulkanDevice(appName string) (Device, error) {
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, err
	}
	if err := vk.Init(); err != nil {
		return nil, err
	}

	v := &Vulkan{}

	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         vk.MakeVersion(1, 2, 0),
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PApplicationName:   appName + "\x00",
		PEngineName:        "vkprobe\x00",
	}
	instanceInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &v.instance)); err != nil {
		return nil, fmt.Errorf("vulkan instance creation failed: %s", err)
	}
	vk.InitInstance(v.instance)

	if err := v.enumerateDevices(); err != nil {
		v.Destroy()
		return nil, err
	}

	return v, nil
}

// Vulkan is the Vulkan backed inspection device.
type Vulkan struct {
	availableDevices []vk.PhysicalDevice

	instance vk.Instance
}

func (v *Vulkan) enumerateDevices() error {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, nil)); err != nil {
		return fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	v.availableDevices = make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, v.availableDevices)); err != nil {
		return fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	return nil
}

// PhysicalDevices collects info for every enumerated device. Devices
// whose queries fail are marked Invalid rather than dropped.
func (v *Vulkan) PhysicalDevices() []PhysicalDeviceInfo {
	pdi := make([]PhysicalDeviceInfo, len(v.availableDevices))

	for i := 0; i < len(v.availableDevices); i++ {
		pd := v.availableDevices[i]

		extensions, err := core.DeviceExtensions(pd)
		if err != nil {
			pdi[i].Invalid = true
		}
		for _, ext := range extensions {
			ext.Deref()
			pdi[i].Extensions = append(pdi[i].Extensions, vk.ToString(ext.ExtensionName[:]))
		}

		var numDeviceLayers uint32
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(pd, &numDeviceLayers, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(pd, &numDeviceLayers, deviceLayers)); err != nil {
			pdi[i].Invalid = true
		}
		for _, layer := range deviceLayers {
			layer.Deref()
			pdi[i].Layers = append(pdi[i].Layers, vk.ToString(layer.LayerName[:]))
		}

		var memoryProperties vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(pd, &memoryProperties)
		memoryProperties.Deref()
		for iMem := uint32(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
			memoryProperties.MemoryHeaps[iMem].Deref()
			pdi[i].Memory += uint64(memoryProperties.MemoryHeaps[iMem].Size)
		}

		var physicalDeviceProperties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(pd, &physicalDeviceProperties)
		physicalDeviceProperties.Deref()
		pdi[i].ID = int(physicalDeviceProperties.DeviceID)
		pdi[i].VendorID = int(physicalDeviceProperties.VendorID)
		pdi[i].Name = vk.ToString(physicalDeviceProperties.DeviceName[:])
		pdi[i].DriverVersion = core.FormatDriverVersion(physicalDeviceProperties.DriverVersion)

		pdi[i].Capabilities = summarize(pd, pdi[i].Extensions)
	}
	return pdi
}

func summarize(pd vk.PhysicalDevice, extensions []string) CapabilitySummary {
	flags := core.QueryFeatureFlags(pd, core.CoreFeatures)
	return CapabilitySummary{
		GeometryShader:    flags.Enabled(core.FeatureGeometryShader),
		TransformFeedback: contains(extensions, core.ExtTransformFeedback),
		Robustness2:       contains(extensions, core.ExtRobustness2),
	}
}

func contains(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}

// Destroy releases the instance. Safe on a nil device.
func (v *Vulkan) Destroy() {
	if v == nil {
		return
	}
	v.availableDevices = nil
	if v.instance != nil {
		vk.DestroyInstance(v.instance, nil)
		v.instance = nil
	}
}
