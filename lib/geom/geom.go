// Package geom holds the integer screen geometry shared by the selector,
// the overlay and the capture device.
package geom

import (
	"fmt"
	"image"
	"math"
)

type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%v,%v)", p.X, p.Y)
}

type Size struct {
	W int
	H int
}

func (s Size) String() string {
	return fmt.Sprintf("%vx%v", s.W, s.H)
}

func (s Size) Scale(factor float64) Size {
	return Size{W: scale(s.W, factor), H: scale(s.H, factor)}
}

// Rect is an axis-aligned rectangle. W and H are never negative as long as
// the rect comes from RectFromCorners.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// RectFromCorners normalizes two opposite corners into a Rect. The order of
// the corners does not matter.
func RectFromCorners(p1, p2 Point) Rect {
	return Rect{
		X: min(p1.X, p2.X),
		Y: min(p1.Y, p2.Y),
		W: abs(p1.X - p2.X),
		H: abs(p1.Y - p2.Y),
	}
}

func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Scale maps r into a space factor times larger, such as from logical to
// physical pixels. Edges are rounded so adjacent rects stay adjacent.
func (r Rect) Scale(factor float64) Rect {
	x0, y0 := scale(r.X, factor), scale(r.Y, factor)
	x1, y1 := scale(r.X+r.W, factor), scale(r.Y+r.H, factor)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Image returns r as an image.Rectangle in the same coordinate space.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%v,%v,%v,%v)", r.X, r.Y, r.W, r.H)
}

func scale(v int, factor float64) int {
	return int(math.Round(float64(v) * factor))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
