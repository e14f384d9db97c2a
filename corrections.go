package glwindow

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

// ScalingFactor maps logical window coordinates onto framebuffer pixels.
// On high-DPI displays GLFW reports the window size in logical points while
// the framebuffer is measured in physical pixels, so the two differ.
// Returns (1,1) for a degenerate window, e.g. one that is minimized or not
// yet realized.
func ScalingFactor(window, framebuffer Size) mgl.Vec2 {
	if window.X == 0 || window.Y == 0 {
		return mgl.Vec2{1, 1}
	}
	return mgl.Vec2{
		float32(framebuffer.X) / float32(window.X),
		float32(framebuffer.Y) / float32(window.Y),
	}
}

// CorrectedCoordinates converts a raw cursor position (top-left origin,
// logical points, as GLFW reports it) into framebuffer pixels with a
// bottom-left origin. The vertical flip happens against the window height,
// before scaling: raw (100,50) in an 800x600 window with a 1600x1200
// framebuffer flips to (100,550) and scales to (200,1100).
func CorrectedCoordinates(window, framebuffer Size, raw mgl.Vec2) mgl.Vec2 {
	s := ScalingFactor(window, framebuffer)
	return mgl.Vec2{
		raw[0] * s[0],
		(float32(window.Y) - raw[1]) * s[1],
	}
}
