package glwindow

import (
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const projTol = 1e-5

func projectPoint(proj mgl.Mat4, x, y float32) (float32, float32) {
	v := proj.Mul4x1(mgl.Vec4{x, y, 0, 1})
	return v[0], v[1]
}

func TestPixelCameraMapsAreaToClipSpace(t *testing.T) {
	area := NewSignal(Rect{Max: Size{X: 800, Y: 600}})
	cam := NewPixelCamera(area)

	x, y := projectPoint(cam.Projection(), 0, 0)
	assert.InDelta(t, -1, x, projTol)
	assert.InDelta(t, -1, y, projTol)

	x, y = projectPoint(cam.Projection(), 800, 600)
	assert.InDelta(t, 1, x, projTol)
	assert.InDelta(t, 1, y, projTol)

	x, y = projectPoint(cam.Projection(), 400, 300)
	assert.InDelta(t, 0, x, projTol)
	assert.InDelta(t, 0, y, projTol)
}

func TestPixelCameraTracksAreaSignal(t *testing.T) {
	area := NewSignal(Rect{Max: Size{X: 800, Y: 600}})
	cam := NewPixelCamera(area)

	area.Set(Rect{Max: Size{X: 400, Y: 400}})
	x, y := projectPoint(cam.Projection(), 400, 400)
	assert.InDelta(t, 1, x, projTol)
	assert.InDelta(t, 1, y, projTol)
}

func TestPixelCameraDegenerateArea(t *testing.T) {
	cam := NewPixelCamera(NewSignal(Rect{}))
	assert.Equal(t, mgl.Ident4(), cam.Projection())
}
