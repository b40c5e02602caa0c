package anim

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/xyproto/palgen"
)

// Quantizer builds a palette of at most n colors for img.
type Quantizer interface {
	Palette(img image.Image, n int) (color.Palette, error)
}

// MedianCut is the default quantizer.
type MedianCut struct{}

func (MedianCut) Palette(img image.Image, n int) (color.Palette, error) {
	quantizer := quantize.MedianCutQuantizer{}
	emptyPalette := make(color.Palette, 0, n)
	return quantizer.Quantize(emptyPalette, img), nil
}

type Palgen struct{}

func (Palgen) Palette(img image.Image, n int) (color.Palette, error) {
	return palgen.Generate(img, n)
}

// QuantizerByName maps a settings value to a quantizer.
func QuantizerByName(name string) (Quantizer, bool) {
	switch name {
	case "", "mediancut":
		return MedianCut{}, true
	case "palgen":
		return Palgen{}, true
	}
	return nil, false
}

// stack presents equally sized frames as one tall image so that a single
// quantizer pass sees every frame.
type stack struct {
	frames []*image.RGBA
	w, h   int
}

func newStack(frames []*image.RGBA) *stack {
	b := frames[0].Bounds()
	return &stack{frames: frames, w: b.Dx(), h: b.Dy()}
}

func (s *stack) ColorModel() color.Model { return color.RGBAModel }

func (s *stack) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.w, s.h*len(s.frames))
}

func (s *stack) At(x, y int) color.Color {
	if x < 0 || x >= s.w || y < 0 || y >= s.h*len(s.frames) {
		return color.RGBA{}
	}
	f := s.frames[y/s.h]
	origin := f.Bounds().Min
	return f.RGBAAt(origin.X+x, origin.Y+y%s.h)
}
