package shader_test

import (
	"encoding/binary"
	"testing"

	"github.com/devblok/vkprobe/shader"
)

const spirvMagic = 0x07230203

func TestCaptureVertexSPIRV(t *testing.T) {
	code, err := shader.CaptureVertexSPIRV()
	if err != nil {
		t.Fatal(err)
	}
	if len(code) == 0 || len(code)%4 != 0 {
		t.Fatalf("SPIR-V length must be a positive word multiple, got %d", len(code))
	}
	if magic := binary.LittleEndian.Uint32(code[:4]); magic != spirvMagic {
		t.Errorf("expected SPIR-V magic %#x, got %#x", spirvMagic, magic)
	}
}

func TestCaptureReferenceMatchesItself(t *testing.T) {
	ref := shader.CaptureReference()
	if len(ref) != 3 {
		t.Fatalf("expected 3 reference vertices, got %d", len(ref))
	}
	if !shader.CaptureMatches(ref, shader.CaptureReference(), 1e-6) {
		t.Error("reference does not match itself")
	}
}

func TestCaptureMatchesRejects(t *testing.T) {
	ref := shader.CaptureReference()

	perturbed := shader.CaptureReference()
	perturbed[1][0] += 0.01
	if shader.CaptureMatches(perturbed, ref, 1e-4) {
		t.Error("perturbed vertex accepted")
	}

	if shader.CaptureMatches(ref[:2], ref, 1e-4) {
		t.Error("short capture accepted")
	}

	reordered := []struct{ from, to int }{{0, 1}, {1, 0}, {2, 2}}
	swapped := shader.CaptureReference()
	for _, m := range reordered {
		swapped[m.to] = ref[m.from]
	}
	if shader.CaptureMatches(swapped, ref, 1e-4) {
		t.Error("reordered capture accepted")
	}
}
