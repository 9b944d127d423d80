// Package device enumerates Vulkan physical devices and summarizes the
// capabilities the probe suites exercise, for the inspection CLI.
package device

// CapabilitySummary flags the probed capability groups per device.
type CapabilitySummary struct {
	GeometryShader    bool `json:"geometryShader"`
	TransformFeedback bool `json:"transformFeedback"`
	Robustness2       bool `json:"robustness2"`
}

// PhysicalDeviceInfo describes available properties of one physical device.
type PhysicalDeviceInfo struct {
	ID            int               `json:"id"`
	VendorID      int               `json:"vendorId"`
	DriverVersion string            `json:"driverVersion"`
	Name          string            `json:"name"`
	Invalid       bool              `json:"invalid"`
	Extensions    []string          `json:"extensions"`
	Layers        []string          `json:"layers"`
	Memory        uint64            `json:"memory"`
	Capabilities  CapabilitySummary `json:"capabilities"`
}

// Device describes a non-concrete inspection device.
type Device interface {
	PhysicalDevices() []PhysicalDeviceInfo
	Destroy()
}
