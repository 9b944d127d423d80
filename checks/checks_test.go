package checks

import (
	"testing"

	"github.com/devblok/vkprobe/core"
	"github.com/devblok/vkprobe/suite"
)

func checkNames(s suite.Suite) []string {
	names := make([]string, 0, len(s.Checks))
	for _, check := range s.Checks {
		names = append(names, check.Name)
	}
	return names
}

func assertSequence(t *testing.T, s suite.Suite, title string, want []string) {
	t.Helper()
	if s.Title != title {
		t.Errorf("expected title %q, got %q", title, s.Title)
	}
	got := checkNames(s)
	if len(got) != len(want) {
		t.Fatalf("expected %d checks, got %d", len(want), len(got))
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Errorf("check %d: expected %s, got %s", idx, want[idx], got[idx])
		}
		if s.Checks[idx].Run == nil {
			t.Errorf("check %s has no body", want[idx])
		}
	}
}

func TestGeometrySequence(t *testing.T) {
	assertSequence(t, Geometry(), "Geometry Shader Test Suite", []string{
		"gs_feature_supported",
		"gs_basic_passthrough",
		"gs_amplification",
		"gs_culling",
		"gs_layered_rendering",
	})
}

func TestTransformFeedbackSequence(t *testing.T) {
	assertSequence(t, TransformFeedback(), "Transform Feedback Test Suite", []string{
		"xfb_extension_present",
		"xfb_basic_capture",
		"xfb_query_primitives",
		"xfb_pause_resume",
		"xfb_overflow",
	})
}

func TestRobustnessSequence(t *testing.T) {
	assertSequence(t, Robustness(), "Robustness Feature Test Suite", []string{
		"robustness2_extension",
		"null_descriptor",
		"robust_access2",
	})
}

func TestGeometryLimitPredicates(t *testing.T) {
	if !admitsPassthrough(3) || admitsPassthrough(2) {
		t.Error("passthrough floor is 3 output vertices")
	}
	if !admitsAmplification(6, 24) {
		t.Error("amplification floor rejected")
	}
	if admitsAmplification(5, 24) || admitsAmplification(6, 23) {
		t.Error("below-floor limits accepted")
	}
}

func TestRequestsFillConfigurations(t *testing.T) {
	var gs core.Configuration
	GeometryRequests(&gs)
	if !gs.Features.Enabled(core.FeatureGeometryShader) {
		t.Error("geometry sequence must request geometryShader")
	}
	if len(gs.Extensions) != 0 {
		t.Error("geometry sequence needs no device extensions")
	}

	var xfb core.Configuration
	TransformFeedbackRequests(&xfb)
	if len(xfb.Extensions) != 1 || xfb.Extensions[0] != core.ExtTransformFeedback {
		t.Errorf("unexpected extensions: %v", xfb.Extensions)
	}
	if !xfb.Features.Enabled(core.FeatureTransformFeedback) {
		t.Error("transform feedback sequence must request transformFeedback")
	}
	if len(xfb.Functions) != 6 {
		t.Errorf("expected 6 entry points, got %d", len(xfb.Functions))
	}
	for _, name := range pauseResumeCommands {
		found := false
		for _, fn := range xfb.Functions {
			if fn == name {
				found = true
			}
		}
		if !found {
			t.Errorf("pause/resume entry point %s not requested", name)
		}
	}

	var rb core.Configuration
	RobustnessRequests(&rb)
	if len(rb.Extensions) != 1 || rb.Extensions[0] != core.ExtRobustness2 {
		t.Errorf("unexpected extensions: %v", rb.Extensions)
	}
	if !rb.Features.Enabled(core.FeatureNullDescriptor) {
		t.Error("robustness sequence must request nullDescriptor")
	}
}
