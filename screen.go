package glwindow

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	mgl "github.com/go-gl/mathgl/mgl32"
)

var defaultBackground = ColorWhite

// Screen is one rectangular logical viewport in a tree whose nodes all
// share a single GL context. The root wraps the native window; children
// carve out sub-areas and inherit the parent's input channels with
// node-local mouse derivations.
type Screen struct {
	Name string
	// Area is the screen's viewport in the parent's coordinate space,
	// measured in framebuffer pixels. Unless overridden at construction a
	// child shares the parent's area signal, so both observe the same
	// underlying source.
	Area            *Signal[Rect]
	Children        []*Screen
	Inputs          Inputs
	Hidden          bool
	BackgroundColor Color
	Cameras         map[string]Camera
	// Context is shared by every node of the tree and owned by the root.
	Context *Context

	// parent is a non-owning back reference, valid only while the parent
	// lives. Nil for the root.
	parent     *Screen
	renderList []RenderObject
	events     chan func()
	// detach removes the node-local derivations from the enclosing
	// signals, so a closed screen stops listening and recomputing.
	detach []func()
}

var screenSeq int

func nextScreenName() string {
	screenSeq++
	return fmt.Sprintf("screen-%d", screenSeq)
}

// ScreenConfig configures the root screen and its native window. Zero
// fields fall back to defaults: 960x540, OpenGL 3.3, white background.
type ScreenConfig struct {
	Name         string
	Resolution   Size
	Major        int
	Minor        int
	Debug        bool
	Background   Color
	WindowHints  []Hint
	ContextHints []Hint
	Sink         *DebugSink
}

// CreateScreen opens a native window and wraps it in the root screen of a
// new tree. On any error no native resources are left behind and no
// partially built screen is returned. The GPU-side caches tied to the
// context are released exactly once, when the window-open signal goes
// false.
func CreateScreen(cfg ScreenConfig) (*Screen, error) {
	if cfg.Name == "" {
		cfg.Name = "glwindow"
	}
	if cfg.Resolution.X == 0 || cfg.Resolution.Y == 0 {
		cfg.Resolution = Size{X: 960, Y: 540}
	}
	if cfg.Major == 0 {
		cfg.Major, cfg.Minor = 3, 3
	}
	if cfg.Background == (Color{}) {
		cfg.Background = defaultBackground
	}
	ctx, err := CreateContext(WindowConfig{
		Name:         cfg.Name,
		Resolution:   cfg.Resolution,
		Major:        cfg.Major,
		Minor:        cfg.Minor,
		Debug:        cfg.Debug,
		WindowHints:  cfg.WindowHints,
		ContextHints: cfg.ContextHints,
		Sink:         cfg.Sink,
	})
	if err != nil {
		return nil, err
	}

	in := newInputs()
	registerCallbacks(ctx.Window, in)
	// Seed the size channels from the realized window; on high-DPI
	// displays the framebuffer is larger than the logical window size.
	w, h := ctx.Window.GetSize()
	in.WindowSize.Set(Size{X: w, Y: h})
	fw, fh := ctx.Window.GetFramebufferSize()
	in.FramebufferSize.Set(Size{X: fw, Y: fh})

	screen := newRootScreen(cfg.Name, in)
	screen.Context = ctx
	screen.BackgroundColor = cfg.Background

	in.FramebufferSize.Subscribe(func(size Size) {
		ctx.fb.Resize(size)
	})
	ctx.fb.Resize(in.FramebufferSize.Value())
	in.WindowOpen.Subscribe(func(open bool) {
		if !open {
			// Render lists must not outlive the shared context. The close
			// may originate inside a GLFW callback (OS close button, a key
			// handler), where destroying the window is forbidden;
			// requestDestroy defers teardown until the poll returns.
			screen.clearSubtree()
			ctx.requestDestroy()
		}
	})
	return screen, nil
}

// newRootScreen wires the derived channels without touching the native
// layer, so a tree can also be built from hand-fed inputs.
func newRootScreen(name string, in Inputs) *Screen {
	in.WindowArea = Map(in.FramebufferSize, func(s Size) Rect {
		return Rect{Max: s}
	})
	corrected := Map3(in.WindowSize, in.FramebufferSize, in.CursorPosition,
		func(w, f Size, raw mgl.Vec2) mgl.Vec2 {
			return CorrectedCoordinates(w, f, raw)
		})
	s := &Screen{
		Name:            name,
		Area:            in.WindowArea,
		Inputs:          in,
		BackgroundColor: defaultBackground,
		Cameras:         map[string]Camera{},
		events:          make(chan func(), eventQueueSize),
	}
	wireMouse(s, corrected, in.WindowArea)
	s.Cameras["window"] = NewPixelCamera(in.WindowArea)
	return s
}

// ChildOptions overrides inherited fields when building a child screen.
// Nil fields inherit from the parent.
type ChildOptions struct {
	Name            string
	Area            *Signal[Rect]
	Children        []*Screen
	Inputs          *Inputs
	Hidden          *bool
	BackgroundColor *Color
	Cameras         map[string]Camera
}

// ChildScreen builds a new screen relative to its parent and appends it to
// the parent's children. The child's inputs start as a shallow copy of the
// parent's; MousePosition, MouseInside and WindowArea are then replaced
// with node-local derivations.
func (parent *Screen) ChildScreen(opts ChildOptions) *Screen {
	in := parent.Inputs
	if opts.Inputs != nil {
		in = *opts.Inputs
	}
	name := opts.Name
	if name == "" {
		name = nextScreenName()
	}
	area := opts.Area
	if area == nil {
		area = parent.Area
	}
	hidden := parent.Hidden
	if opts.Hidden != nil {
		hidden = *opts.Hidden
	}
	bg := parent.BackgroundColor
	if opts.BackgroundColor != nil {
		bg = *opts.BackgroundColor
	}
	cams := opts.Cameras
	if cams == nil {
		cams = map[string]Camera{}
	}
	s := &Screen{
		Name:            name,
		Area:            area,
		Children:        opts.Children,
		Inputs:          in,
		Hidden:          hidden,
		BackgroundColor: bg,
		Cameras:         cams,
		Context:         parent.Context,
		parent:          parent,
	}
	for _, c := range s.Children {
		c.parent = s
	}
	wa := NewSignal(Rect{Max: area.Value().Size()})
	s.Inputs.WindowArea = wa
	s.detach = append(s.detach, area.Subscribe(func(a Rect) {
		wa.Set(Rect{Max: a.Size()})
	}))
	wireMouse(s, parent.Inputs.MousePosition, parent.Area)
	parent.Children = append(parent.Children, s)
	return s
}

// wireMouse derives the node-local mouse channels from the mouse position
// of the enclosing coordinate space. The position listeners are registered
// before the hit-test listener so that the hit test always sees the
// already-updated local position. The subscriptions are retained in
// s.detach so Close can take the node off the enclosing signals again.
func wireMouse(s *Screen, outerPos *Signal[mgl.Vec2], outerArea *Signal[Rect]) {
	local := func() mgl.Vec2 {
		// Local coordinates are relative to the part of the area that is
		// visible inside the origin-anchored enclosing area.
		pm := outerPos.Value()
		visible := s.Area.Value().Intersect(Rect{Max: outerArea.Value().Size()})
		return mgl.Vec2{
			pm[0] - float32(visible.Min.X),
			pm[1] - float32(visible.Min.Y),
		}
	}
	pos := NewSignal(local())
	s.Inputs.MousePosition = pos
	inside := NewDistinct(s.hitTest(outerPos.Value()))
	s.Inputs.MouseInside = inside
	s.detach = append(s.detach,
		outerPos.Subscribe(func(mgl.Vec2) { pos.Set(local()) }),
		s.Area.Subscribe(func(Rect) { pos.Set(local()) }),
		outerArea.Subscribe(func(Rect) { pos.Set(local()) }),
		outerPos.Subscribe(func(pm mgl.Vec2) { inside.Set(s.hitTest(pm)) }),
	)
}

// hitTest reports whether pm (in the enclosing coordinate space) hits this
// screen: inside its area, not claimed by an earlier sibling, and not
// inside any child. Children occlude their parent; when siblings overlap,
// the first one in the parent's child list wins.
func (s *Screen) hitTest(pm mgl.Vec2) bool {
	if !pointInRect(pm, s.Area.Value()) {
		return false
	}
	if s.parent != nil {
		for _, sib := range s.parent.Children {
			if sib == s {
				break
			}
			if pointInRect(pm, sib.Area.Value()) {
				return false
			}
		}
	}
	local := s.Inputs.MousePosition.Value()
	for _, c := range s.Children {
		if pointInRect(local, c.Area.Value()) {
			return false
		}
	}
	return true
}

func pointInRect(p mgl.Vec2, r Rect) bool {
	// Compare in float space: converting to int would truncate toward zero
	// and pull positions in (-1,0) inside a rect whose Min is 0.
	return p[0] >= float32(r.Min.X) && p[0] < float32(r.Max.X) &&
		p[1] >= float32(r.Min.Y) && p[1] < float32(r.Max.Y)
}

func (s *Screen) Parent() *Screen {
	return s.parent
}

// TrackMouseToID refreshes the mouse2id channel from fb's objectid channel
// on every mouse move. fb must carry an objectid channel, e.g. one built
// by CreateFramebuffer.
func (s *Screen) TrackMouseToID(fb *Framebuffer) {
	s.Inputs.MousePosition.Subscribe(func(p mgl.Vec2) {
		id, ok := fb.ObjectIDAt(Point{X: int(p[0]), Y: int(p[1])})
		if !ok {
			id = NoObject
		}
		s.Inputs.MouseToID.Set(id)
	})
}

// absoluteArea is the screen's area in framebuffer coordinates,
// accumulated over the parent chain.
func (s *Screen) absoluteArea() Rect {
	a := s.Area.Value()
	for p := s.parent; p != nil; p = p.parent {
		a = a.Add(p.Area.Value().Min)
	}
	return a
}

// AddRenderObject appends obj to the screen's render list.
func (s *Screen) AddRenderObject(obj RenderObject) {
	s.renderList = append(s.renderList, obj)
}

func (s *Screen) ClearRenderList() {
	s.renderList = nil
}

// RenderList returns a copy of the render list; mutating the result does
// not affect the screen.
func (s *Screen) RenderList() []RenderObject {
	return append([]RenderObject(nil), s.renderList...)
}

func (s *Screen) IsRoot() bool {
	return s.parent == nil
}

func (s *Screen) IsOpen() bool {
	return s.Inputs.WindowOpen.Value()
}

// Close requests teardown. On the root this drops the window-open signal,
// which releases the GPU caches exactly once; on a child it removes the
// subtree from the parent.
func (s *Screen) Close() {
	if s.parent == nil {
		if s.Context != nil && !s.Context.destroyed {
			s.Context.Window.SetShouldClose(true)
		}
		s.clearSubtree()
		s.Inputs.WindowOpen.Set(false)
		return
	}
	p := s.parent
	for i, c := range p.Children {
		if c == s {
			p.Children = append(p.Children[:i:i], p.Children[i+1:]...)
			break
		}
	}
	s.clearSubtree()
	s.parent = nil
}

// clearSubtree drops the render lists below s before the shared context
// goes away and detaches the subtree's listeners from the enclosing
// signals; closed screens must neither render nor recompute.
func (s *Screen) clearSubtree() {
	for _, c := range s.Children {
		c.clearSubtree()
	}
	for _, off := range s.detach {
		off()
	}
	s.detach = nil
	s.renderList = nil
}

// Run drives the event loop of a root screen: render, swap, then drain the
// native event queue with frame pacing. Callbacks fire synchronously
// during the drain and push values through the signal graph before the
// poll returns. frame, when non-nil, runs once per frame after rendering.
func (s *Screen) Run(frame func() error) error {
	if s.parent != nil {
		return fmt.Errorf("Run must be called on the root screen")
	}
	if s.Context == nil {
		return fmt.Errorf("screen has no native window")
	}
	ctx := s.Context
	window := ctx.Window
	for s.IsOpen() {
		start := glfw.GetTime()
		s.Render()
		if frame != nil {
			if err := frame(); err != nil {
				return err
			}
		}
		window.SwapBuffers()
		s.drainEvents()
		elapsedSeconds := glfw.GetTime() - start
		frameSeconds := 1.0 / desiredFPS
		// Teardown requested by a callback during the poll runs in endPoll,
		// after control has returned from GLFW.
		ctx.beginPoll()
		if frameSeconds > elapsedSeconds {
			glfw.WaitEventsTimeout(frameSeconds - elapsedSeconds)
		} else {
			glfw.PollEvents()
		}
		ctx.endPoll()
		if !ctx.destroyed && window.ShouldClose() {
			s.Close()
		}
	}
	return nil
}
