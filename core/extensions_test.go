package core

import (
	"testing"
	"unsafe"
)

func TestHasExtensionExactMatch(t *testing.T) {
	names := []string{"VK_KHR_swapchain", ExtTransformFeedback}

	if !hasExtension(names, ExtTransformFeedback) {
		t.Error("expected exact name to match")
	}
	if hasExtension(names, "VK_EXT_TRANSFORM_FEEDBACK") {
		t.Error("matching must be case sensitive")
	}
	if hasExtension(names, "VK_EXT_transform") {
		t.Error("prefixes must not match")
	}
	if hasExtension(nil, ExtTransformFeedback) {
		t.Error("empty enumeration must not match")
	}
}

func TestResolveExtensionFunctionsGatesOnEnabledSet(t *testing.T) {
	var resolved []string
	resolver := func(name string) unsafe.Pointer {
		resolved = append(resolved, name)
		return unsafe.Pointer(&resolved)
	}
	names := []string{
		"vkCmdBeginTransformFeedbackEXT",
		"vkCmdEndTransformFeedbackEXT",
		"vkNotARealCommand",
	}

	table := ResolveExtensionFunctions(resolver, nil, names)
	if len(table) != 0 {
		t.Errorf("table has %d entries with nothing enabled, want 0", len(table))
	}
	if len(resolved) != 0 {
		t.Errorf("resolver called for %v with nothing enabled", resolved)
	}

	table = ResolveExtensionFunctions(resolver, []string{ExtTransformFeedback}, names)
	if len(table) != 2 {
		t.Errorf("table has %d entries, want 2", len(table))
	}
	for name := range table {
		if commandOwners[name] != ExtTransformFeedback {
			t.Errorf("entry %q is not owned by an enabled extension", name)
		}
	}
	if !table.Resolved("vkCmdBeginTransformFeedbackEXT") {
		t.Error("vkCmdBeginTransformFeedbackEXT should be resolved")
	}
	if table.Resolved("vkNotARealCommand") {
		t.Error("unknown command must never appear in the table")
	}
}

func TestResolveExtensionFunctionsDropsNilResults(t *testing.T) {
	resolver := func(name string) unsafe.Pointer { return nil }
	table := ResolveExtensionFunctions(resolver, []string{ExtTransformFeedback},
		[]string{"vkCmdBeginTransformFeedbackEXT"})
	if len(table) != 0 {
		t.Errorf("table has %d entries, want none for unresolved names", len(table))
	}
	if table.Resolved("vkCmdBeginTransformFeedbackEXT") {
		t.Error("unresolved entry point reported as resolved")
	}
}
