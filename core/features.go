package core

import (
	"unsafe"

	vk "github.com/goki/vulkan"
)

// FeatureID names a single optional device capability the probe can
// request or query, core features and extension feature struct members
// alike.
type FeatureID int

const (
	FeatureGeometryShader FeatureID = iota
	FeatureShaderCullDistance
	FeatureTransformFeedback
	FeatureGeometryStreams
	FeatureRobustBufferAccess2
	FeatureRobustImageAccess2
	FeatureNullDescriptor
)

var featureNames = map[FeatureID]string{
	FeatureGeometryShader:      "geometryShader",
	FeatureShaderCullDistance:  "shaderCullDistance",
	FeatureTransformFeedback:   "transformFeedback",
	FeatureGeometryStreams:     "geometryStreams",
	FeatureRobustBufferAccess2: "robustBufferAccess2",
	FeatureRobustImageAccess2:  "robustImageAccess2",
	FeatureNullDescriptor:      "nullDescriptor",
}

func (f FeatureID) String() string {
	if name, ok := featureNames[f]; ok {
		return name
	}
	return "unknown"
}

// Struct returns the feature struct that owns this flag.
func (f FeatureID) Struct() FeatureStruct {
	for tag, layout := range featureStructLayout {
		for _, id := range layout.fields {
			if id == f {
				return tag
			}
		}
	}
	return CoreFeatures
}

// FeatureStruct tags one feature query struct that can be attached to a
// features2 call. Callers list tags, the chain itself is built internally.
type FeatureStruct int

const (
	CoreFeatures FeatureStruct = iota
	TransformFeedbackFeatures
	Robustness2Features
)

// Extension returns the device extension that owns the struct, empty
// for core features.
func (s FeatureStruct) Extension() string {
	switch s {
	case TransformFeedbackFeatures:
		return ExtTransformFeedback
	case Robustness2Features:
		return ExtRobustness2
	}
	return ""
}

// FeatureFlagSet holds boolean capability outcomes and requests,
// keyed by feature.
type FeatureFlagSet map[FeatureID]bool

// Enabled reports whether the flag is present and set.
func (s FeatureFlagSet) Enabled(id FeatureID) bool {
	return s[id]
}

// Structs returns the extension feature structs needed to carry the
// flags in the set, in stable order. Core features are excluded, those
// ride on the base device features.
func (s FeatureFlagSet) Structs() []FeatureStruct {
	var out []FeatureStruct
	for _, tag := range []FeatureStruct{TransformFeedbackFeatures, Robustness2Features} {
		for _, id := range featureStructLayout[tag].fields {
			if s.Enabled(id) {
				out = append(out, tag)
				break
			}
		}
	}
	return out
}

// Wire structure tags of the extension feature structs, values from the
// registry (extension number 29 and 287).
const (
	sTypeTransformFeedbackFeatures   uint32 = 1000028000
	sTypeTransformFeedbackProperties uint32 = 1000028001
	sTypeRobustness2Features         uint32 = 1000286000
)

// featureBlock mirrors the common wire layout of extension feature
// structs on 64-bit targets: sType, pNext, then Bool32 members. The flags
// array is an upper bound, the driver only touches the members its struct
// defines.
type featureBlock struct {
	sType uint32
	_     uint32
	pNext unsafe.Pointer
	flags [8]uint32
}

type featureLayout struct {
	sType  uint32
	fields []FeatureID
}

var featureStructLayout = map[FeatureStruct]featureLayout{
	TransformFeedbackFeatures: {
		sType:  sTypeTransformFeedbackFeatures,
		fields: []FeatureID{FeatureTransformFeedback, FeatureGeometryStreams},
	},
	Robustness2Features: {
		sType:  sTypeRobustness2Features,
		fields: []FeatureID{FeatureRobustBufferAccess2, FeatureRobustImageAccess2, FeatureNullDescriptor},
	},
}

type featureLink struct {
	tag   FeatureStruct
	block *featureBlock
}

// featureChain is a pNext chain of extension feature structs held in C
// memory. Free after the call that consumed it returned.
type featureChain struct {
	head  unsafe.Pointer
	links []featureLink
}

// newFeatureChain links one block per tag. When requested is non-nil the
// matching flags are preset, which is the request form used at device
// creation. A nil set produces a zeroed chain for querying.
func newFeatureChain(structs []FeatureStruct, requested FeatureFlagSet) *featureChain {
	chain := &featureChain{}
	for _, tag := range structs {
		layout, ok := featureStructLayout[tag]
		if !ok {
			continue
		}
		block := (*featureBlock)(allocWire(unsafe.Sizeof(featureBlock{})))
		block.sType = layout.sType
		block.pNext = chain.head
		for i, id := range layout.fields {
			if requested.Enabled(id) {
				block.flags[i] = uint32(vk.True)
			}
		}
		chain.head = unsafe.Pointer(block)
		chain.links = append(chain.links, featureLink{tag: tag, block: block})
	}
	return chain
}

// flags reads the chain back into a flag set.
func (c *featureChain) flags() FeatureFlagSet {
	set := FeatureFlagSet{}
	for _, link := range c.links {
		for i, id := range featureStructLayout[link.tag].fields {
			set[id] = link.block.flags[i] == uint32(vk.True)
		}
	}
	return set
}

func (c *featureChain) free() {
	for _, link := range c.links {
		freeWire(unsafe.Pointer(link.block))
	}
	c.head = nil
	c.links = nil
}

// QueryFeatureFlags issues a single features2 call with every requested
// extension struct attached and returns the populated flags. CoreFeatures
// may be listed alongside extension structs and is answered from the base
// device features.
func QueryFeatureFlags(pd vk.PhysicalDevice, structs ...FeatureStruct) FeatureFlagSet {
	var ext []FeatureStruct
	core := false
	for _, tag := range structs {
		if tag == CoreFeatures {
			core = true
			continue
		}
		ext = append(ext, tag)
	}

	set := FeatureFlagSet{}
	if len(ext) > 0 {
		chain := newFeatureChain(ext, nil)
		queryFeatures2(pd, chain.head)
		set = chain.flags()
		chain.free()
	}
	if core {
		var features vk.PhysicalDeviceFeatures
		vk.GetPhysicalDeviceFeatures(pd, &features)
		features.Deref()
		set[FeatureGeometryShader] = features.GeometryShader == vk.True
		set[FeatureShaderCullDistance] = features.ShaderCullDistance == vk.True
	}
	return set
}

// TransformFeedbackLimits are the implementation limits of
// VK_EXT_transform_feedback.
type TransformFeedbackLimits struct {
	MaxStreams                uint32
	MaxBuffers                uint32
	MaxBufferSize             uint64
	MaxStreamDataSize         uint32
	MaxBufferDataSize         uint32
	MaxBufferDataStride       uint32
	Queries                   bool
	StreamsLinesTriangles     bool
	RasterizationStreamSelect bool
	Draw                      bool
}

// xfbPropertiesBlock mirrors VkPhysicalDeviceTransformFeedbackPropertiesEXT
// on 64-bit targets.
type xfbPropertiesBlock struct {
	sType                     uint32
	_                         uint32
	pNext                     unsafe.Pointer
	maxStreams                uint32
	maxBuffers                uint32
	maxBufferSize             uint64
	maxStreamDataSize         uint32
	maxBufferDataSize         uint32
	maxBufferDataStride       uint32
	queries                   uint32
	streamsLinesTriangles     uint32
	rasterizationStreamSelect uint32
	draw                      uint32
}

// QueryTransformFeedbackLimits reads the transform feedback properties
// through a chained properties2 call.
func QueryTransformFeedbackLimits(pd vk.PhysicalDevice) TransformFeedbackLimits {
	block := (*xfbPropertiesBlock)(allocWire(unsafe.Sizeof(xfbPropertiesBlock{})))
	defer freeWire(unsafe.Pointer(block))
	block.sType = sTypeTransformFeedbackProperties

	queryProperties2(pd, unsafe.Pointer(block))

	return TransformFeedbackLimits{
		MaxStreams:                block.maxStreams,
		MaxBuffers:                block.maxBuffers,
		MaxBufferSize:             block.maxBufferSize,
		MaxStreamDataSize:         block.maxStreamDataSize,
		MaxBufferDataSize:         block.maxBufferDataSize,
		MaxBufferDataStride:       block.maxBufferDataStride,
		Queries:                   block.queries == uint32(vk.True),
		StreamsLinesTriangles:     block.streamsLinesTriangles == uint32(vk.True),
		RasterizationStreamSelect: block.rasterizationStreamSelect == uint32(vk.True),
		Draw:                      block.draw == uint32(vk.True),
	}
}
