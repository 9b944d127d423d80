package shader

import "github.com/go-gl/mathgl/mgl32"

// CaptureReference returns the clip space positions the capture shader
// emits, in vertex order. Captured transform feedback output is laid
// out the same way.
func CaptureReference() []mgl32.Vec4 {
	return []mgl32.Vec4{
		{0.0, 0.5, 0.0, 1.0},
		{-0.5, -0.5, 0.0, 1.0},
		{0.5, -0.5, 0.0, 1.0},
	}
}

// CaptureMatches compares captured vertices against the reference
// within epsilon. Order matters, implementations may not reorder
// vertices within a stream.
func CaptureMatches(got, want []mgl32.Vec4, epsilon float32) bool {
	if len(got) != len(want) {
		return false
	}
	for idx := range got {
		if !got[idx].ApproxEqualThreshold(want[idx], epsilon) {
			return false
		}
	}
	return true
}
