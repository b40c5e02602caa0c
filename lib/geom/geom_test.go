package geom

import (
	"image"
	"testing"
)

func TestRectFromCorners(t *testing.T) {
	for _, entry := range []struct {
		p1, p2   Point
		expected Rect
	}{
		{Point{10, 10}, Point{50, 40}, Rect{10, 10, 40, 30}},
		{Point{50, 40}, Point{10, 10}, Rect{10, 10, 40, 30}},
		{Point{50, 10}, Point{10, 40}, Rect{10, 10, 40, 30}},
		{Point{10, 40}, Point{50, 10}, Rect{10, 10, 40, 30}},
		{Point{-5, 3}, Point{5, -3}, Rect{-5, -3, 10, 6}},
		{Point{7, 7}, Point{7, 7}, Rect{7, 7, 0, 0}},
		{Point{0, 0}, Point{0, 9}, Rect{0, 0, 0, 9}},
	} {
		actual := RectFromCorners(entry.p1, entry.p2)
		if actual != entry.expected {
			t.Errorf("%v %v: expected: %v | got %v", entry.p1, entry.p2, entry.expected, actual)
		}
		swapped := RectFromCorners(entry.p2, entry.p1)
		if swapped != actual {
			t.Errorf("%v %v: swapped corners gave %v, want %v", entry.p1, entry.p2, swapped, actual)
		}
		if actual.W < 0 || actual.H < 0 {
			t.Errorf("negative size: %v", actual)
		}
	}
}

func TestRectFromCorners_EqualCorners(t *testing.T) {
	r := RectFromCorners(Point{3, 4}, Point{3, 4})
	if r.W != 0 || r.H != 0 {
		t.Errorf("expected empty rect, got %v", r)
	}
	if r.X != 3 || r.Y != 4 {
		t.Errorf("got %+v, want origin (3,4)", r)
	}
}

func TestRectImage(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}
	expected := image.Rect(10, 20, 40, 60)
	if r.Image() != expected {
		t.Errorf("expected: %v | got %v", expected, r.Image())
	}
	if got := r.Translate(-10, 5).Image(); got != image.Rect(0, 25, 30, 65) {
		t.Errorf("translate: got %v", got)
	}
}

func TestRectScale(t *testing.T) {
	for _, entry := range []struct {
		r        Rect
		factor   float64
		expected Rect
	}{
		{Rect{X: 10, Y: 20, W: 30, H: 40}, 1, Rect{X: 10, Y: 20, W: 30, H: 40}},
		{Rect{X: 10, Y: 20, W: 30, H: 40}, 2, Rect{X: 20, Y: 40, W: 60, H: 80}},
		{Rect{X: 1, Y: 1, W: 1, H: 1}, 1.5, Rect{X: 2, Y: 2, W: 1, H: 1}},
		{Rect{X: 5, Y: 5}, 2, Rect{X: 10, Y: 10}},
	} {
		actual := entry.r.Scale(entry.factor)
		if actual != entry.expected {
			t.Errorf("%v * %v: expected: %v | got %v", entry.r, entry.factor, entry.expected, actual)
		}
	}
}
