package glwindow

import (
	gl "github.com/go-gl/gl/all-core/gl"
)

// RenderObject is an opaque handle held in a screen's render list. Draw is
// called with the screen's viewport and scissor already set to its area.
type RenderObject interface {
	Draw()
}

// Render clears the screen's area to its background color, draws its
// render list and then recurses into the visible children. Hidden screens
// and their subtrees are skipped.
func (s *Screen) Render() {
	if s.Hidden {
		return
	}
	a := s.absoluteArea()
	gl.Viewport(int32(a.Min.X), int32(a.Min.Y), int32(a.Dx()), int32(a.Dy()))
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(a.Min.X), int32(a.Min.Y), int32(a.Dx()), int32(a.Dy()))
	r, g, b, alpha := s.BackgroundColor.GL()
	gl.ClearColor(r, g, b, alpha)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	for _, obj := range s.renderList {
		obj.Draw()
	}
	gl.Disable(gl.SCISSOR_TEST)
	for _, c := range s.Children {
		c.Render()
	}
}

const (
	quadVertexShader = `#version 330 core
in vec2 a_position;
uniform mat4 u_projection;
void main(void) {
  gl_Position = u_projection * vec4(a_position, 0.0, 1.0);
}`
	quadFragmentShader = `#version 330 core
uniform vec4 u_color;
out vec4 fragColor;
void main(void) {
  fragColor = u_color;
}`
)

// SolidQuad fills a rectangle of its screen with a flat color, in local
// pixel coordinates. Mostly a smoke-test object; real render objects live
// with their owners.
type SolidQuad struct {
	Rect    Rect
	Color   Color
	camera  Camera
	program Program
	vao     uint32
	vbo     uint32
	uProj   int32
	uColor  int32
}

// CreateSolidQuad compiles the quad pipeline against the screen's context
// and registers the GL resources for release at context teardown.
func CreateSolidQuad(s *Screen, rect Rect, color Color) (*SolidQuad, error) {
	program, err := CreateProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		return nil, err
	}
	q := &SolidQuad{
		Rect:    rect,
		Color:   color,
		camera:  NewPixelCamera(s.Inputs.WindowArea),
		program: program,
		uProj:   program.GetUniformLocation("u_projection"),
		uColor:  program.GetUniformLocation("u_color"),
	}
	gl.GenVertexArrays(1, &q.vao)
	gl.BindVertexArray(q.vao)
	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	loc := program.GetAttribLocation("a_position")
	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointerWithOffset(uint32(loc), 2, gl.FLOAT, false, 0, 0)
	gl.BindVertexArray(0)
	if s.Context != nil {
		s.Context.Track(q)
	}
	return q, nil
}

func (q *SolidQuad) Draw() {
	x0, y0 := float32(q.Rect.Min.X), float32(q.Rect.Min.Y)
	x1, y1 := float32(q.Rect.Max.X), float32(q.Rect.Max.Y)
	vertices := []float32{
		x0, y0,
		x1, y0,
		x0, y1,
		x1, y0,
		x1, y1,
		x0, y1,
	}
	q.program.Use()
	proj := q.camera.Projection()
	gl.UniformMatrix4fv(q.uProj, 1, false, &proj[0])
	r, g, b, a := q.Color.GL()
	gl.Uniform4f(q.uColor, r, g, b, a)
	gl.BindVertexArray(q.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (q *SolidQuad) Close() error {
	if q.vbo != 0 {
		gl.DeleteBuffers(1, &q.vbo)
		q.vbo = 0
	}
	if q.vao != 0 {
		gl.DeleteVertexArrays(1, &q.vao)
		q.vao = 0
	}
	return q.program.Close()
}
