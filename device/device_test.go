package device

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPhysicalDeviceInfoJSON(t *testing.T) {
	info := PhysicalDeviceInfo{
		ID:            4318,
		VendorID:      0x10005,
		DriverVersion: "0.0.1",
		Name:          "llvmpipe (LLVM 15.0.7, 256 bits)",
		Extensions:    []string{"VK_EXT_transform_feedback"},
		Memory:        1 << 31,
		Capabilities: CapabilitySummary{
			GeometryShader:    true,
			TransformFeedback: true,
		},
	}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{
		`"id":4318`,
		`"driverVersion":"0.0.1"`,
		`"capabilities":`,
		`"geometryShader":true`,
		`"robustness2":false`,
	} {
		if !strings.Contains(string(data), key) {
			t.Errorf("marshalled info missing %s: %s", key, data)
		}
	}
}

func TestContains(t *testing.T) {
	names := []string{"VK_EXT_transform_feedback", "VK_EXT_robustness2"}
	if !contains(names, "VK_EXT_robustness2") {
		t.Error("present name not found")
	}
	if contains(names, "VK_EXT_robustness") {
		t.Error("prefix must not match")
	}
	if contains(nil, "VK_EXT_robustness2") {
		t.Error("empty list matched")
	}
}

func TestDestroyNil(t *testing.T) {
	var v *Vulkan
	v.Destroy()
}
