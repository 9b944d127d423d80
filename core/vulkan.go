package core

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"
)

// Context owns the Vulkan state of one probe run: instance, selected
// physical device, logical device and its queue. It is created once,
// used serially by the checks and released once.
type Context struct {
	Instance       vk.Instance
	PhysicalDevice vk.PhysicalDevice
	Device         vk.Device
	Queue          vk.Queue
	QueueIndex     uint32

	// Mode records which device creation path succeeded. After a bare
	// creation EnabledExtensions and GrantedFeatures are empty no matter
	// what was requested.
	Mode              CreationMode
	EnabledExtensions []string
	GrantedFeatures   FeatureFlagSet
	Funcs             ExtensionFunctionTable

	DeviceName    string
	DriverVersion uint32
	Limits        vk.PhysicalDeviceLimits

	// Notes carry bootstrap diagnostics, fallback notes included.
	Notes []string

	released bool
}

// NewContext bootstraps a probe context according to cfg. Any error it
// returns is fatal to the run, no checks can execute without a context.
func NewContext(cfg Configuration) (*Context, error) {
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, fmt.Errorf("vk.GetInstanceProcAddr(): %s: %w", err, ErrInstanceCreation)
	}
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vk.Init(): %s: %w", err, ErrInstanceCreation)
	}

	c := &Context{}
	if err := c.createInstance(cfg); err != nil {
		return nil, err
	}
	if err := c.selectPhysicalDevice(); err != nil {
		c.Release()
		return nil, err
	}
	if err := c.selectQueueFamily(); err != nil {
		c.Release()
		return nil, err
	}
	if err := c.createDevice(cfg); err != nil {
		c.Release()
		return nil, err
	}

	var queue vk.Queue
	vk.GetDeviceQueue(c.Device, c.QueueIndex, 0, &queue)
	c.Queue = queue

	c.Funcs = ResolveExtensionFunctions(c.procResolver(), c.EnabledExtensions, cfg.Functions)
	return c, nil
}

func (c *Context) createInstance(cfg Configuration) error {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         vk.MakeVersion(1, 2, 0),
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PApplicationName:   safeString(cfg.AppName),
		PEngineName:        "vkprobe\x00",
	}

	var layers []string
	if cfg.Debug {
		layers = append(layers, "VK_LAYER_KHRONOS_validation\x00")
	}

	instanceInfo := vk.InstanceCreateInfo{
		SType:               vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:    appInfo,
		EnabledLayerCount:   uint32(len(layers)),
		PpEnabledLayerNames: layers,
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return fmt.Errorf("vk.CreateInstance(): %s: %w", err, ErrInstanceCreation)
	}
	c.Instance = instance
	vk.InitInstance(instance)
	return nil
}

// selectPhysicalDevice picks the first enumerated device. This is a probe
// tool, ranking multiple GPUs is not its job.
func (c *Context) selectPhysicalDevice() error {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(c.Instance, &deviceCount, nil)); err != nil {
		return fmt.Errorf("vk.EnumeratePhysicalDevices(): %s: %w", err, ErrNoDeviceFound)
	}
	if deviceCount == 0 {
		return fmt.Errorf("vk.EnumeratePhysicalDevices(): zero devices: %w", ErrNoDeviceFound)
	}
	devices := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(c.Instance, &deviceCount, devices)); err != nil {
		return fmt.Errorf("vk.EnumeratePhysicalDevices(): %s: %w", err, ErrNoDeviceFound)
	}
	c.PhysicalDevice = devices[0]

	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(c.PhysicalDevice, &properties)
	properties.Deref()
	properties.Limits.Deref()
	c.DeviceName = vk.ToString(properties.DeviceName[:])
	c.DriverVersion = properties.DriverVersion
	c.Limits = properties.Limits
	return nil
}

// selectQueueFamily scans the queue families in order and takes the
// first one with graphics capability.
func (c *Context) selectQueueFamily() error {
	var familyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(c.PhysicalDevice, &familyCount, nil)
	families := make([]vk.QueueFamilyProperties, familyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(c.PhysicalDevice, &familyCount, families)
	if familyCount == 0 {
		return fmt.Errorf("vk.GetPhysicalDeviceQueueFamilyProperties(): no queue families on GPU: %w", ErrNoSuitableQueueFamily)
	}

	required := vk.QueueFlags(vk.QueueGraphicsBit)
	for i := uint32(0); i < familyCount; i++ {
		families[i].Deref()
		if families[i].QueueFlags&required != 0 {
			c.QueueIndex = i
			return nil
		}
	}
	return fmt.Errorf("no graphics-capable queue family: %w", ErrNoSuitableQueueFamily)
}

type deviceCreator func(bare bool) (vk.Device, error)

// createWithFallback attempts full-feature creation, retries exactly once
// with everything optional stripped, and gives up after that.
func createWithFallback(create deviceCreator) (vk.Device, CreationMode, string, error) {
	device, firstErr := create(false)
	if firstErr == nil {
		return device, CreatedFull, "", nil
	}
	device, retryErr := create(true)
	if retryErr != nil {
		return nil, CreatedBare, "", fmt.Errorf("%s (full-feature attempt: %s): %w", retryErr, firstErr, ErrDeviceCreation)
	}
	note := fmt.Sprintf("created bare device, full-feature attempt failed: %s", firstErr)
	return device, CreatedBare, note, nil
}

func (c *Context) createDevice(cfg Configuration) error {
	create := func(bare bool) (vk.Device, error) {
		queueInfos := []vk.DeviceQueueCreateInfo{{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: c.QueueIndex,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}}

		deviceInfo := vk.DeviceCreateInfo{
			SType:                vk.StructureTypeDeviceCreateInfo,
			QueueCreateInfoCount: uint32(len(queueInfos)),
			PQueueCreateInfos:    queueInfos,
		}

		var chain *featureChain
		if !bare {
			deviceInfo.EnabledExtensionCount = uint32(len(cfg.Extensions))
			deviceInfo.PpEnabledExtensionNames = safeStrings(cfg.Extensions)
			if cfg.Features.Enabled(FeatureGeometryShader) || cfg.Features.Enabled(FeatureShaderCullDistance) {
				deviceInfo.PEnabledFeatures = []vk.PhysicalDeviceFeatures{{
					GeometryShader:     bool32(cfg.Features.Enabled(FeatureGeometryShader)),
					ShaderCullDistance: bool32(cfg.Features.Enabled(FeatureShaderCullDistance)),
				}}
			}
			if structs := cfg.Features.Structs(); len(structs) > 0 {
				chain = newFeatureChain(structs, cfg.Features)
				deviceInfo.PNext = chain.head
			}
		}

		var device vk.Device
		err := vk.Error(vk.CreateDevice(c.PhysicalDevice, &deviceInfo, nil, &device))
		if chain != nil {
			chain.free()
		}
		if err != nil {
			return nil, fmt.Errorf("vk.CreateDevice(): %s", err)
		}
		return device, nil
	}

	device, mode, note, err := createWithFallback(create)
	if err != nil {
		return err
	}
	c.Device = device
	c.Mode = mode
	if note != "" {
		c.Notes = append(c.Notes, note)
	}
	if mode == CreatedFull {
		c.EnabledExtensions = cfg.Extensions
		c.GrantedFeatures = cfg.Features
	} else {
		c.EnabledExtensions = nil
		c.GrantedFeatures = FeatureFlagSet{}
	}
	return nil
}

// ExtensionEnabled reports whether the named extension ended up enabled
// on the created device.
func (c *Context) ExtensionEnabled(name string) bool {
	return hasExtension(c.EnabledExtensions, name)
}

// FeatureGranted reports whether the named feature was both requested
// and carried through device creation.
func (c *Context) FeatureGranted(id FeatureID) bool {
	return c.GrantedFeatures.Enabled(id)
}

func (c *Context) procResolver() ProcResolver {
	return func(name string) unsafe.Pointer {
		return deviceProcAddr(c.Device, name)
	}
}

// NewBuffer creates a buffer with the given size and usage.
func (c *Context) NewBuffer(size vk.DeviceSize, usage vk.BufferUsageFlags) (vk.Buffer, error) {
	bufferInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	}
	var buffer vk.Buffer
	if err := vk.Error(vk.CreateBuffer(c.Device, &bufferInfo, nil, &buffer)); err != nil {
		return vk.NullBuffer, fmt.Errorf("vk.CreateBuffer(): %s: %w", err, ErrResourceCreation)
	}
	return buffer, nil
}

// BackBuffer allocates host-visible memory for the buffer and binds it.
func (c *Context) BackBuffer(buffer vk.Buffer) (vk.DeviceMemory, error) {
	var requirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(c.Device, buffer, &requirements)
	requirements.Deref()

	memoryType, err := c.MemoryType(requirements.MemoryTypeBits,
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		return vk.NullDeviceMemory, err
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: memoryType,
	}
	var memory vk.DeviceMemory
	if err := vk.Error(vk.AllocateMemory(c.Device, &allocateInfo, nil, &memory)); err != nil {
		return vk.NullDeviceMemory, fmt.Errorf("vk.AllocateMemory(): %s: %w", err, ErrResourceCreation)
	}
	if err := vk.Error(vk.BindBufferMemory(c.Device, buffer, memory, 0)); err != nil {
		vk.FreeMemory(c.Device, memory, nil)
		return vk.NullDeviceMemory, fmt.Errorf("vk.BindBufferMemory(): %s: %w", err, ErrResourceCreation)
	}
	return memory, nil
}

// NewQueryPool creates a query pool of the given type.
func (c *Context) NewQueryPool(queryType vk.QueryType, count uint32) (vk.QueryPool, error) {
	poolInfo := vk.QueryPoolCreateInfo{
		SType:      vk.StructureTypeQueryPoolCreateInfo,
		QueryType:  queryType,
		QueryCount: count,
	}
	var pool vk.QueryPool
	if err := vk.Error(vk.CreateQueryPool(c.Device, &poolInfo, nil, &pool)); err != nil {
		return vk.NullQueryPool, fmt.Errorf("vk.CreateQueryPool(): %s: %w", err, ErrResourceCreation)
	}
	return pool, nil
}

// MemoryType finds a memory type index satisfying typeBits and the
// requested properties.
func (c *Context) MemoryType(typeBits uint32, properties vk.MemoryPropertyFlags) (uint32, error) {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(c.PhysicalDevice, &memoryProperties)
	memoryProperties.Deref()

	for idx := uint32(0); idx < memoryProperties.MemoryTypeCount; idx++ {
		if (typeBits & 1) == 1 {
			memoryProperties.MemoryTypes[idx].Deref()
			if (memoryProperties.MemoryTypes[idx].PropertyFlags & properties) == properties {
				return idx, nil
			}
		}
		typeBits >>= 1
	}
	return 0, fmt.Errorf("requested memory type not found: %w", ErrResourceCreation)
}

// Release destroys the device then the instance, each only when populated.
// Safe to call more than once and on a partially constructed context.
func (c *Context) Release() {
	if c == nil || c.released {
		return
	}
	if c.Device != nil {
		vk.DeviceWaitIdle(c.Device)
		vk.DestroyDevice(c.Device, nil)
		c.Device = nil
	}
	if c.Instance != nil {
		vk.DestroyInstance(c.Instance, nil)
		c.Instance = nil
	}
	c.released = true
}

// FormatDriverVersion renders a packed driver version the way the
// loader packs it.
func FormatDriverVersion(version uint32) string {
	return fmt.Sprintf("%d.%d.%d", version>>22, (version>>12)&0x3ff, version&0xfff)
}

func bool32(b bool) vk.Bool32 {
	if b {
		return vk.True
	}
	return vk.False
}
