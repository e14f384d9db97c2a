package glwindow

import (
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestScalingFactorDegenerateWindow(t *testing.T) {
	for _, fb := range []Size{{X: 0, Y: 0}, {X: 100, Y: 100}, {X: 1600, Y: 1200}} {
		assert.Equal(t, mgl.Vec2{1, 1}, ScalingFactor(Size{X: 0, Y: 600}, fb))
		assert.Equal(t, mgl.Vec2{1, 1}, ScalingFactor(Size{X: 800, Y: 0}, fb))
		assert.Equal(t, mgl.Vec2{1, 1}, ScalingFactor(Size{X: 0, Y: 0}, fb))
	}
}

func TestScalingFactor(t *testing.T) {
	assert.Equal(t, mgl.Vec2{2, 2}, ScalingFactor(Size{X: 800, Y: 600}, Size{X: 1600, Y: 1200}))
	assert.Equal(t, mgl.Vec2{1, 1}, ScalingFactor(Size{X: 800, Y: 600}, Size{X: 800, Y: 600}))
	assert.Equal(t, mgl.Vec2{1.5, 1.5}, ScalingFactor(Size{X: 800, Y: 600}, Size{X: 1200, Y: 900}))
}

func TestCorrectedCoordinates(t *testing.T) {
	// Flip against the window height first, then scale: raw (100,50) in an
	// 800x600 window flips to (100,550) and scales by (2,2) to (200,1100).
	got := CorrectedCoordinates(Size{X: 800, Y: 600}, Size{X: 1600, Y: 1200}, mgl.Vec2{100, 50})
	assert.Equal(t, mgl.Vec2{200, 1100}, got)
}

func TestCorrectedCoordinatesNoScaling(t *testing.T) {
	got := CorrectedCoordinates(Size{X: 800, Y: 600}, Size{X: 800, Y: 600}, mgl.Vec2{100, 50})
	assert.Equal(t, mgl.Vec2{100, 550}, got)
}

func TestCorrectedCoordinatesDegenerateWindow(t *testing.T) {
	// Degenerate window: scaling falls back to (1,1), flip against height 0.
	got := CorrectedCoordinates(Size{X: 0, Y: 0}, Size{X: 1600, Y: 1200}, mgl.Vec2{100, 50})
	assert.Equal(t, mgl.Vec2{100, -50}, got)
}
