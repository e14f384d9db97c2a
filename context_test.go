package glwindow

import (
	"strings"
	"testing"

	gl "github.com/go-gl/gl/all-core/gl"
	"github.com/stretchr/testify/assert"
)

func TestFormatDebugMessageError(t *testing.T) {
	block := formatDebugMessage(gl.DEBUG_SOURCE_API, gl.DEBUG_TYPE_ERROR,
		1281, gl.DEBUG_SEVERITY_HIGH, "GL_INVALID_VALUE in glTexImage2D")
	assert.Contains(t, block, "OpenGL ERROR!")
	assert.Contains(t, block, "source: GL_DEBUG_SOURCE_API")
	assert.Contains(t, block, "type: GL_DEBUG_TYPE_ERROR")
	assert.Contains(t, block, "id: 1281")
	assert.Contains(t, block, "severity: HIGH")
	assert.Contains(t, block, "|  GL_INVALID_VALUE in glTexImage2D")
}

func TestFormatDebugMessageInfo(t *testing.T) {
	block := formatDebugMessage(gl.DEBUG_SOURCE_SHADER_COMPILER, gl.DEBUG_TYPE_PERFORMANCE,
		7, gl.DEBUG_SEVERITY_LOW, "shader recompiled\n")
	assert.NotContains(t, block, "ERROR")
	assert.Contains(t, block, "GL_DEBUG_SOURCE_SHADER_COMPILER")
	assert.Contains(t, block, "GL_DEBUG_TYPE_PERFORMANCE")
	assert.Contains(t, block, "severity: LOW")
	// Trailing newline of the raw message does not produce an empty line.
	assert.NotContains(t, block, "|  \n|_")
}

func TestFormatDebugMessageMultiline(t *testing.T) {
	block := formatDebugMessage(gl.DEBUG_SOURCE_APPLICATION, gl.DEBUG_TYPE_MARKER,
		0, gl.DEBUG_SEVERITY_NOTIFICATION, "line one\nline two")
	assert.Contains(t, block, "|  line one\n")
	assert.Contains(t, block, "|  line two\n")
	lines := strings.Split(block, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "_"))
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "|_"))
}

func TestDebugSinkRouting(t *testing.T) {
	var infos, errors []string
	sink := &DebugSink{
		Info:  func(msg string) { infos = append(infos, msg) },
		Error: func(msg string) { errors = append(errors, msg) },
	}
	ctx := &Context{sink: sink}
	ctx.onDebugMessage(gl.DEBUG_SOURCE_API, gl.DEBUG_TYPE_ERROR, 1, gl.DEBUG_SEVERITY_HIGH,
		4, "oops-and-trailing-garbage", nil)
	ctx.onDebugMessage(gl.DEBUG_SOURCE_API, gl.DEBUG_TYPE_OTHER, 2, gl.DEBUG_SEVERITY_LOW,
		2, "hi", nil)
	assert.Len(t, errors, 1)
	assert.Len(t, infos, 1)
	// The message is decoded with the driver-given length, not any
	// terminator: only the first 4 bytes survive.
	assert.Contains(t, errors[0], "|  oops\n")
	assert.NotContains(t, errors[0], "garbage")
}

func TestRequestDestroyDefersDuringPoll(t *testing.T) {
	// Teardown requested while the event queue is being pumped (a close
	// callback firing inside PollEvents) must wait until the poll returns.
	ctx := &Context{}
	runs := 0
	ctx.OnDestroy(func() { runs++ })

	ctx.beginPoll()
	ctx.requestDestroy()
	assert.Equal(t, 0, runs)
	assert.False(t, ctx.destroyed)

	ctx.endPoll()
	assert.Equal(t, 1, runs)
	assert.True(t, ctx.destroyed)

	// Further requests and polls stay no-ops.
	ctx.requestDestroy()
	ctx.endPoll()
	assert.Equal(t, 1, runs)
}

func TestRequestDestroyOutsidePollIsImmediate(t *testing.T) {
	ctx := &Context{}
	runs := 0
	ctx.OnDestroy(func() { runs++ })
	ctx.requestDestroy()
	assert.Equal(t, 1, runs)
	assert.True(t, ctx.destroyed)
}

func TestDebugSeverityNames(t *testing.T) {
	assert.Equal(t, "HIGH", debugSeverityName(gl.DEBUG_SEVERITY_HIGH))
	assert.Equal(t, "MEDIUM", debugSeverityName(gl.DEBUG_SEVERITY_MEDIUM))
	assert.Equal(t, "LOW", debugSeverityName(gl.DEBUG_SEVERITY_LOW))
	assert.Equal(t, "NOTIFICATION", debugSeverityName(gl.DEBUG_SEVERITY_NOTIFICATION))
}
