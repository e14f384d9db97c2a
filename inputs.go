package glwindow

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	mgl "github.com/go-gl/mathgl/mgl32"
)

// ObjectID identifies the object and sub-index under the cursor, read back
// from the objectid framebuffer channel. NoObject means nothing is hit.
type ObjectID struct {
	ID    int
	Index int
}

var NoObject = ObjectID{ID: -1, Index: -1}

// Inputs holds the standard input channels of one screen. A child screen
// starts with a shallow copy of its parent's channels (the struct copy
// shares every signal by reference) and then overrides MousePosition,
// MouseInside and WindowArea with node-local derivations.
type Inputs struct {
	WindowOpen      *Signal[bool]
	WindowSize      *Signal[Size]
	WindowPosition  *Signal[Point]
	KeyboardButtons *Signal[[]glfw.Key]
	MouseButtons    *Signal[[]glfw.MouseButton]
	DroppedFiles    *Signal[[]string]
	FramebufferSize *Signal[Size]
	UnicodeInput    *Signal[[]rune]
	CursorPosition  *Signal[mgl.Vec2]
	Scroll          *Signal[mgl.Vec2]
	HasFocus        *Signal[bool]
	EnteredWindow   *Signal[bool]

	// Derived per screen.
	WindowArea    *Signal[Rect]
	MousePosition *Signal[mgl.Vec2]
	MouseInside   *Signal[bool]
	MouseToID     *Signal[ObjectID]
}

func newInputs() Inputs {
	return Inputs{
		WindowOpen:      NewDistinct(true),
		WindowSize:      NewSignal(Size{}),
		WindowPosition:  NewSignal(Point{}),
		KeyboardButtons: NewSignal[[]glfw.Key](nil),
		MouseButtons:    NewSignal[[]glfw.MouseButton](nil),
		DroppedFiles:    NewSignal[[]string](nil),
		FramebufferSize: NewSignal(Size{}),
		UnicodeInput:    NewSignal[[]rune](nil),
		CursorPosition:  NewSignal(mgl.Vec2{}),
		Scroll:          NewSignal(mgl.Vec2{}),
		HasFocus:        NewDistinct(false),
		EnteredWindow:   NewDistinct(false),
		MouseToID:       NewSignal(NoObject),
	}
}

// Channels exposes the name-to-signal mapping of the standard channels,
// for introspection and debugging.
func (in Inputs) Channels() map[string]any {
	return map[string]any{
		"window_open":      in.WindowOpen,
		"window_size":      in.WindowSize,
		"window_position":  in.WindowPosition,
		"keyboard_buttons": in.KeyboardButtons,
		"mouse_buttons":    in.MouseButtons,
		"dropped_files":    in.DroppedFiles,
		"framebuffer_size": in.FramebufferSize,
		"unicode_input":    in.UnicodeInput,
		"cursor_position":  in.CursorPosition,
		"scroll":           in.Scroll,
		"hasfocus":         in.HasFocus,
		"entered_window":   in.EnteredWindow,
		"window_area":      in.WindowArea,
		"mouseposition":    in.MousePosition,
		"mouseinside":      in.MouseInside,
		"mouse2id":         in.MouseToID,
	}
}

func pressButton[T comparable](s *Signal[[]T], b T) {
	cur := s.Value()
	for _, x := range cur {
		if x == b {
			return
		}
	}
	next := make([]T, 0, len(cur)+1)
	next = append(next, cur...)
	s.Set(append(next, b))
}

func releaseButton[T comparable](s *Signal[[]T], b T) {
	cur := s.Value()
	next := make([]T, 0, len(cur))
	for _, x := range cur {
		if x != b {
			next = append(next, x)
		}
	}
	if len(next) != len(cur) {
		s.Set(next)
	}
}

// registerCallbacks wires the GLFW event callbacks of window into the root
// input channels. Events are delivered synchronously by PollEvents and
// friends on the event-loop thread.
func registerCallbacks(window *glfw.Window, in Inputs) {
	window.SetCloseCallback(func(w *glfw.Window) {
		in.WindowOpen.Set(false)
	})
	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		in.WindowSize.Set(Size{X: width, Y: height})
	})
	window.SetPosCallback(func(w *glfw.Window, x, y int) {
		in.WindowPosition.Set(Point{X: x, Y: y})
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		in.FramebufferSize.Set(Size{X: width, Y: height})
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			pressButton(in.KeyboardButtons, key)
		case glfw.Release:
			releaseButton(in.KeyboardButtons, key)
		}
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			pressButton(in.MouseButtons, button)
		case glfw.Release:
			releaseButton(in.MouseButtons, button)
		}
	})
	window.SetDropCallback(func(w *glfw.Window, names []string) {
		in.DroppedFiles.Set(names)
	})
	window.SetCharCallback(func(w *glfw.Window, char rune) {
		in.UnicodeInput.Set([]rune{char})
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		in.CursorPosition.Set(mgl.Vec2{float32(x), float32(y)})
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		in.Scroll.Set(mgl.Vec2{float32(xoff), float32(yoff)})
	})
	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		in.HasFocus.Set(focused)
	})
	window.SetCursorEnterCallback(func(w *glfw.Window, entered bool) {
		in.EnteredWindow.Set(entered)
	})
}
