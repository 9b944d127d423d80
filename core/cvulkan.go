package core

// The binding resolves known commands once at vk.Init/vk.InitInstance and
// exposes neither device-level proc resolution nor pNext read-back for
// extension feature structs, so both go through this thin shim. Chain
// memory handed to the driver is C-allocated, the cgo pointer rules forbid
// Go pointers stored inside passed memory.

/*
#cgo linux LDFLAGS: -lvulkan
#cgo darwin LDFLAGS: -lvulkan
#cgo windows LDFLAGS: -lvulkan-1
#include <stdlib.h>
#include <vulkan/vulkan.h>

static void probeFeatures2(VkPhysicalDevice pd, void *chain) {
	VkPhysicalDeviceFeatures2 base = {
		.sType = VK_STRUCTURE_TYPE_PHYSICAL_DEVICE_FEATURES_2,
		.pNext = chain,
	};
	vkGetPhysicalDeviceFeatures2(pd, &base);
}

static void probeProperties2(VkPhysicalDevice pd, void *chain) {
	VkPhysicalDeviceProperties2 base = {
		.sType = VK_STRUCTURE_TYPE_PHYSICAL_DEVICE_PROPERTIES_2,
		.pNext = chain,
	};
	vkGetPhysicalDeviceProperties2(pd, &base);
}

static void *probeDeviceProc(VkDevice dev, const char *name) {
	return (void *)vkGetDeviceProcAddr(dev, name);
}
*/
import "C"

import (
	"unsafe"

	vk "github.com/goki/vulkan"
)

func allocWire(size uintptr) unsafe.Pointer {
	return C.calloc(1, C.size_t(size))
}

func freeWire(p unsafe.Pointer) {
	C.free(p)
}

func queryFeatures2(pd vk.PhysicalDevice, chain unsafe.Pointer) {
	C.probeFeatures2(C.VkPhysicalDevice(unsafe.Pointer(pd)), chain)
}

func queryProperties2(pd vk.PhysicalDevice, chain unsafe.Pointer) {
	C.probeProperties2(C.VkPhysicalDevice(unsafe.Pointer(pd)), chain)
}

func deviceProcAddr(dev vk.Device, name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.probeDeviceProc(C.VkDevice(unsafe.Pointer(dev)), cname)
}
