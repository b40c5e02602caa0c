// Package device captures frames of one display area with
// github.com/kbinani/screenshot.
package device

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
	"github.com/piqueme/gif-capture/lib/frame"
	"github.com/piqueme/gif-capture/lib/geom"
)

var ErrNoDisplay = errors.New("display not found")

// Screen captures a fixed area of one display. Area is relative to the
// display's top-left corner, the same space the selection overlay reports.
type Screen struct {
	index  int
	bounds image.Rectangle
	area   image.Rectangle

	capture func(image.Rectangle) (*image.RGBA, error)
}

func Open(index int, area geom.Rect) (*Screen, error) {
	n := screenshot.NumActiveDisplays()
	if index < 0 || index >= n {
		return nil, fmt.Errorf("%w: index %v of %v active displays", ErrNoDisplay, index, n)
	}
	bounds := screenshot.GetDisplayBounds(index)
	return newScreen(index, bounds, area, screenshot.CaptureRect), nil
}

func newScreen(index int, bounds image.Rectangle, area geom.Rect, capture func(image.Rectangle) (*image.RGBA, error)) *Screen {
	return &Screen{
		index:   index,
		bounds:  bounds,
		area:    area.Translate(bounds.Min.X, bounds.Min.Y).Image(),
		capture: capture,
	}
}

// Size returns the display resolution.
func (s *Screen) Size() geom.Size {
	return geom.Size{W: s.bounds.Dx(), H: s.bounds.Dy()}
}

func (s *Screen) Capture() (frame.Raw, error) {
	img, err := s.capture(s.area)
	if err != nil {
		return frame.Raw{}, fmt.Errorf("display %v: %w", s.index, err)
	}
	return frame.FromRGBA(img), nil
}
