package glwindow

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileHint(t *testing.T, hints []Hint) int {
	t.Helper()
	for _, h := range hints {
		if h.Key == glfw.OpenGLProfile {
			return h.Value
		}
	}
	t.Fatal("no profile hint found")
	return 0
}

func TestStandardContextHintsRejectsOldVersions(t *testing.T) {
	_, err := StandardContextHints(2, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least version 3.0")
	_, err = StandardContextHints(1, 5)
	require.Error(t, err)
}

func TestStandardContextHintsProfileSelection(t *testing.T) {
	hints, err := StandardContextHints(3, 1)
	require.NoError(t, err)
	assert.Equal(t, int(glfw.OpenGLAnyProfile), profileHint(t, hints))

	hints, err = StandardContextHints(3, 2)
	require.NoError(t, err)
	assert.Equal(t, int(glfw.OpenGLCoreProfile), profileHint(t, hints))

	hints, err = StandardContextHints(4, 1)
	require.NoError(t, err)
	assert.Equal(t, int(glfw.OpenGLCoreProfile), profileHint(t, hints))
}

func TestForwardCompatOnlyWithCoreProfile(t *testing.T) {
	// Forward compatibility is a core-profile concept; the any-profile
	// hint set below 3.2 must not carry it.
	hints, err := StandardContextHints(3, 1)
	require.NoError(t, err)
	for _, h := range hints {
		assert.NotEqual(t, glfw.OpenGLForwardCompatible, h.Key)
	}

	hints, err = StandardContextHints(3, 2)
	require.NoError(t, err)
	keys := map[glfw.Hint]bool{}
	for _, h := range hints {
		keys[h.Key] = true
	}
	assert.True(t, keys[glfw.OpenGLForwardCompatible])
}

func TestStandardContextHintsOrder(t *testing.T) {
	hints, err := StandardContextHints(3, 3)
	require.NoError(t, err)
	require.Len(t, hints, 4)
	assert.Equal(t, Hint{glfw.ContextVersionMajor, 3}, hints[0])
	assert.Equal(t, Hint{glfw.ContextVersionMinor, 3}, hints[1])
	assert.Equal(t, glfw.OpenGLForwardCompatible, hints[2].Key)
	assert.Equal(t, glfw.OpenGLProfile, hints[3].Key)
}

func TestStandardWindowHints(t *testing.T) {
	hints := StandardWindowHints()
	require.NotEmpty(t, hints)
	assert.Equal(t, Hint{glfw.Samples, 4}, hints[0])
	keys := map[glfw.Hint]bool{}
	for _, h := range hints {
		keys[h.Key] = true
	}
	for _, want := range []glfw.Hint{glfw.DepthBits, glfw.AlphaBits, glfw.RedBits, glfw.GreenBits, glfw.BlueBits, glfw.StencilBits, glfw.AuxBuffers} {
		assert.True(t, keys[want], "missing hint %v", want)
	}
}
