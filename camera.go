package glwindow

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

// Camera produces the projection for a screen's render objects.
type Camera interface {
	Projection() mgl.Mat4
}

// PixelCamera is an orthographic camera that tracks a screen area signal:
// one GL unit per framebuffer pixel, origin at the bottom-left corner.
type PixelCamera struct {
	projection *Signal[mgl.Mat4]
}

func NewPixelCamera(area *Signal[Rect]) *PixelCamera {
	projection := Map(area, func(a Rect) mgl.Mat4 {
		w, h := a.Dx(), a.Dy()
		if w == 0 || h == 0 {
			return mgl.Ident4()
		}
		return mgl.Ortho2D(0, float32(w), 0, float32(h))
	})
	return &PixelCamera{projection: projection}
}

func (c *PixelCamera) Projection() mgl.Mat4 {
	return c.projection.Value()
}
