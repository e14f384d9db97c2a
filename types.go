package glwindow

import (
	"image"
)

type Point = image.Point
type Size = image.Point
type Rect = image.Rectangle

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// GL returns the color components normalized for glClearColor and friends.
func (c Color) GL() (r, g, b, a float32) {
	r = float32(c.R) / 255.0
	g = float32(c.G) / 255.0
	b = float32(c.B) / 255.0
	a = float32(c.A) / 255.0
	return
}

var (
	ColorWhite = Color{255, 255, 255, 255}
	ColorBlack = Color{0, 0, 0, 255}
)
