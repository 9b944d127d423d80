package core

import (
	"testing"
	"unsafe"

	vk "github.com/goki/vulkan"
)

func TestFeatureChainLinksEveryStructOnce(t *testing.T) {
	chain := newFeatureChain([]FeatureStruct{TransformFeedbackFeatures, Robustness2Features}, nil)
	defer chain.free()

	if len(chain.links) != 2 {
		t.Fatalf("chain has %d blocks, want 2", len(chain.links))
	}
	if chain.head != unsafe.Pointer(chain.links[1].block) {
		t.Error("head does not point at the last linked block")
	}
	if chain.links[1].block.pNext != unsafe.Pointer(chain.links[0].block) {
		t.Error("blocks are not linked through pNext")
	}
	if chain.links[0].block.pNext != nil {
		t.Error("chain is not terminated")
	}
	if chain.links[0].block.sType != sTypeTransformFeedbackFeatures {
		t.Errorf("transform feedback sType = %d", chain.links[0].block.sType)
	}
	if chain.links[1].block.sType != sTypeRobustness2Features {
		t.Errorf("robustness2 sType = %d", chain.links[1].block.sType)
	}
}

func TestFeatureChainPresetsRequestedFlags(t *testing.T) {
	requested := FeatureFlagSet{
		FeatureTransformFeedback: true,
		FeatureNullDescriptor:    true,
	}
	chain := newFeatureChain(requested.Structs(), requested)
	defer chain.free()

	set := chain.flags()
	if !set.Enabled(FeatureTransformFeedback) {
		t.Error("transformFeedback not preset")
	}
	if set.Enabled(FeatureGeometryStreams) {
		t.Error("geometryStreams preset although not requested")
	}
	if !set.Enabled(FeatureNullDescriptor) {
		t.Error("nullDescriptor not preset")
	}
	if set.Enabled(FeatureRobustBufferAccess2) {
		t.Error("robustBufferAccess2 preset although not requested")
	}
}

func TestFeatureChainReadBack(t *testing.T) {
	chain := newFeatureChain([]FeatureStruct{Robustness2Features}, nil)
	defer chain.free()

	// Simulate the driver filling the struct.
	chain.links[0].block.flags[2] = uint32(vk.True)

	set := chain.flags()
	if !set.Enabled(FeatureNullDescriptor) {
		t.Error("nullDescriptor not read back from the chain")
	}
	if set.Enabled(FeatureRobustBufferAccess2) || set.Enabled(FeatureRobustImageAccess2) {
		t.Error("untouched flags read back as set")
	}
}

func TestFlagSetStructs(t *testing.T) {
	set := FeatureFlagSet{
		FeatureGeometryShader: true,
		FeatureNullDescriptor: true,
	}
	structs := set.Structs()
	if len(structs) != 1 || structs[0] != Robustness2Features {
		t.Errorf("Structs() = %v, want just robustness2", structs)
	}

	set[FeatureGeometryStreams] = true
	structs = set.Structs()
	if len(structs) != 2 {
		t.Errorf("Structs() = %v, want transform feedback and robustness2", structs)
	}
}

func TestFeatureIdentity(t *testing.T) {
	if FeatureNullDescriptor.String() != "nullDescriptor" {
		t.Errorf("name = %q", FeatureNullDescriptor.String())
	}
	if FeatureNullDescriptor.Struct() != Robustness2Features {
		t.Error("nullDescriptor not owned by robustness2")
	}
	if FeatureGeometryShader.Struct() != CoreFeatures {
		t.Error("geometryShader must be a core feature")
	}
	if Robustness2Features.Extension() != ExtRobustness2 {
		t.Errorf("extension = %q", Robustness2Features.Extension())
	}
	if CoreFeatures.Extension() != "" {
		t.Error("core features have no owning extension")
	}
}
