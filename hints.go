package glwindow

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Hint is one ordered (key, value) directive consumed by GLFW before
// window creation.
type Hint struct {
	Key   glfw.Hint
	Value int
}

// StandardWindowHints returns the default buffer configuration for a new
// window: 4x multisampling, a 24-bit depth buffer and 8-bit RGBA.
func StandardWindowHints() []Hint {
	return []Hint{
		{glfw.Samples, 4},
		{glfw.DepthBits, 24},
		{glfw.AlphaBits, 8},
		{glfw.RedBits, 8},
		{glfw.GreenBits, 8},
		{glfw.BlueBits, 8},
		{glfw.StencilBits, 0},
		{glfw.AuxBuffers, 0},
	}
}

// StandardContextHints returns the context hints for the requested OpenGL
// version. Versions below 3.0 lack required features and are rejected as a
// configuration error before any native resources are touched. From 3.2 up
// a core profile is requested; core profiles are unreliable below 3.2 and
// mandatory on some platforms at 3.2 and above.
func StandardContextHints(major, minor int) ([]Hint, error) {
	if major < 3 {
		return nil, fmt.Errorf("OpenGL version %d.%d requested, need at least version 3.0", major, minor)
	}
	// Forward compatibility only exists for core profiles; requesting it
	// alongside the any profile fails on some drivers.
	if major > 3 || minor >= 2 {
		return []Hint{
			{glfw.ContextVersionMajor, major},
			{glfw.ContextVersionMinor, minor},
			{glfw.OpenGLForwardCompatible, glfw.True},
			{glfw.OpenGLProfile, int(glfw.OpenGLCoreProfile)},
		}, nil
	}
	return []Hint{
		{glfw.ContextVersionMajor, major},
		{glfw.ContextVersionMinor, minor},
		{glfw.OpenGLProfile, int(glfw.OpenGLAnyProfile)},
	}, nil
}

func applyHints(hints []Hint) {
	for _, h := range hints {
		glfw.WindowHint(h.Key, h.Value)
	}
}
