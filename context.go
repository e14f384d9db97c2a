package glwindow

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/all-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

const desiredFPS = 60

func GetTime() float64 {
	return glfw.GetTime()
}

// DebugSink receives decoded driver debug messages. A zero sink routes
// everything through the package logger.
type DebugSink struct {
	Info  func(msg string)
	Error func(msg string)
}

func (d *DebugSink) info(msg string) {
	if d != nil && d.Info != nil {
		d.Info(msg)
		return
	}
	logger.Info(msg)
}

func (d *DebugSink) error(msg string) {
	if d != nil && d.Error != nil {
		d.Error(msg)
		return
	}
	logger.Error(msg)
}

// WindowConfig describes the native window and GL context to create.
type WindowConfig struct {
	Name       string
	Resolution Size
	Major      int
	Minor      int
	Debug      bool
	// WindowHints and ContextHints override the standard hint tables when
	// non-nil.
	WindowHints  []Hint
	ContextHints []Hint
	Sink         *DebugSink
}

// Context wraps the native window and the GL resources cached against the
// context it carries. One Context backs a whole screen tree; only the root
// owns it. Only the thread that made the context current may issue GL calls
// against it.
type Context struct {
	Window    *glfw.Window
	sink      *DebugSink
	fb        *Framebuffer
	cleanup   []func()
	destroyed bool
	// polling is set while the native event queue is being pumped; window
	// destruction must not happen from inside a GLFW callback, so teardown
	// requests arriving then are parked until the poll returns.
	polling         bool
	deferredDestroy bool
}

// CreateContext applies the context and window hints in order, creates the
// native window and makes its GL context current on the calling thread.
// When cfg.Debug is set and the driver lacks GL_KHR_debug, the debug
// context is silently downgraded with a warning instead of failing.
func CreateContext(cfg WindowConfig) (*Context, error) {
	ctxHints := cfg.ContextHints
	if ctxHints == nil {
		var err error
		ctxHints, err = StandardContextHints(cfg.Major, cfg.Minor)
		if err != nil {
			return nil, err
		}
	}
	winHints := cfg.WindowHints
	if winHints == nil {
		winHints = StandardWindowHints()
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}
	glfw.DefaultWindowHints()
	applyHints(winHints)
	applyHints(ctxHints)
	if cfg.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	window, err := glfw.CreateWindow(cfg.Resolution.X, cfg.Resolution.Y, cfg.Name, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("load GL functions: %w", err)
	}
	ctx := &Context{Window: window, sink: cfg.Sink}
	ctx.fb = defaultFramebuffer(cfg.Resolution)
	if cfg.Debug {
		if glfw.ExtensionSupported("GL_KHR_debug") {
			gl.Enable(gl.DEBUG_OUTPUT)
			gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
			gl.DebugMessageCallback(ctx.onDebugMessage, nil)
		} else {
			logger.Warn("debug context requested but GL_KHR_debug is unavailable, continuing without")
		}
	}
	return ctx, nil
}

// OnDestroy registers fn to run when the context is torn down. Hooks run in
// reverse registration order, before the native window is destroyed.
func (c *Context) OnDestroy(fn func()) {
	c.cleanup = append(c.cleanup, fn)
}

// Track ties a GL resource's lifetime to the context.
func (c *Context) Track(res interface{ Close() error }) {
	c.OnDestroy(func() {
		if err := res.Close(); err != nil {
			logger.Warn("closing GL resource failed", "error", err)
		}
	})
}

// destroy releases cached GL resources and the native window. Repeated
// calls are no-ops; release happens exactly once.
func (c *Context) destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	for i := len(c.cleanup) - 1; i >= 0; i-- {
		c.cleanup[i]()
	}
	if c.Window != nil {
		c.Window.Destroy()
	}
}

// requestDestroy tears the context down, unless the event queue is being
// pumped right now: GLFW forbids destroying a window from inside one of
// its callbacks, so the destroy then waits for endPoll.
func (c *Context) requestDestroy() {
	if c.polling {
		c.deferredDestroy = true
		return
	}
	c.destroy()
}

func (c *Context) beginPoll() {
	c.polling = true
}

// endPoll marks the native event pump as finished and runs a teardown that
// was requested from inside a callback.
func (c *Context) endPoll() {
	c.polling = false
	if c.deferredDestroy {
		c.deferredDestroy = false
		c.destroy()
	}
}

func (c *Context) onDebugMessage(source, gltype, id, severity uint32, length int32, message string, _ unsafe.Pointer) {
	// The driver hands over a length-bounded buffer, not a C string; trust
	// the length, not any terminator.
	if n := int(length); n >= 0 && n <= len(message) {
		message = message[:n]
	}
	block := formatDebugMessage(source, gltype, id, severity, message)
	if gltype == gl.DEBUG_TYPE_ERROR {
		c.sink.error(block)
	} else {
		c.sink.info(block)
	}
}

func formatDebugMessage(source, gltype, id, severity uint32, message string) string {
	var b strings.Builder
	border := strings.Repeat("_", 72)
	fmt.Fprintf(&b, "%s\n", border)
	fmt.Fprintf(&b, "|\n")
	if gltype == gl.DEBUG_TYPE_ERROR {
		fmt.Fprintf(&b, "| OpenGL ERROR!\n")
	} else {
		fmt.Fprintf(&b, "| OpenGL debug message\n")
	}
	fmt.Fprintf(&b, "| source: %s | type: %s | id: %d | severity: %s\n",
		debugSourceName(source), debugTypeName(gltype), id, debugSeverityName(severity))
	for _, line := range strings.Split(strings.TrimRight(message, "\n"), "\n") {
		fmt.Fprintf(&b, "|  %s\n", line)
	}
	fmt.Fprintf(&b, "|%s", border)
	return b.String()
}

func debugSourceName(source uint32) string {
	switch source {
	case gl.DEBUG_SOURCE_API:
		return "GL_DEBUG_SOURCE_API"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		return "GL_DEBUG_SOURCE_WINDOW_SYSTEM"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		return "GL_DEBUG_SOURCE_SHADER_COMPILER"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		return "GL_DEBUG_SOURCE_THIRD_PARTY"
	case gl.DEBUG_SOURCE_APPLICATION:
		return "GL_DEBUG_SOURCE_APPLICATION"
	default:
		return "GL_DEBUG_SOURCE_OTHER"
	}
}

func debugTypeName(gltype uint32) string {
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		return "GL_DEBUG_TYPE_ERROR"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "GL_DEBUG_TYPE_DEPRECATED_BEHAVIOR"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "GL_DEBUG_TYPE_UNDEFINED_BEHAVIOR"
	case gl.DEBUG_TYPE_PORTABILITY:
		return "GL_DEBUG_TYPE_PORTABILITY"
	case gl.DEBUG_TYPE_PERFORMANCE:
		return "GL_DEBUG_TYPE_PERFORMANCE"
	case gl.DEBUG_TYPE_MARKER:
		return "GL_DEBUG_TYPE_MARKER"
	default:
		return "GL_DEBUG_TYPE_OTHER"
	}
}

func debugSeverityName(severity uint32) string {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return "HIGH"
	case gl.DEBUG_SEVERITY_MEDIUM:
		return "MEDIUM"
	case gl.DEBUG_SEVERITY_LOW:
		return "LOW"
	default:
		return "NOTIFICATION"
	}
}
