// Package anim assembles a frame sequence into an animated GIF with one
// palette shared by every frame.
package anim

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"

	"github.com/piqueme/gif-capture/lib/framerate"
	"golang.org/x/image/draw"
)

var ErrEncodingFailed = errors.New("encoding failed")

const (
	MinColors = 2
	MaxColors = 256
)

type Options struct {
	// MaxColors bounds the shared palette; 0 means 256.
	MaxColors int
	// Quantizer defaults to MedianCut.
	Quantizer Quantizer
	// Dither maps frames with Floyd-Steinberg error diffusion instead of
	// nearest color.
	Dither bool
	// LoopCount follows image/gif: 0 loops forever, -1 plays once.
	LoopCount int
}

// Animation is the assembled artifact: shared palette, indexed frames and
// one display delay for every frame.
type Animation struct {
	Palette   color.Palette
	Frames    []*image.Paletted
	Delay     int // centiseconds
	LoopCount int
}

func encodingError(format string, args ...any) error {
	return fmt.Errorf("%w: %v", ErrEncodingFailed, fmt.Sprintf(format, args...))
}

// Assemble quantizes frames to one palette and gives every frame a delay of
// 1/rate seconds.
func Assemble(frames []*image.RGBA, rate framerate.T, opts Options) (*Animation, error) {
	if len(frames) == 0 {
		return nil, encodingError("no frames")
	}
	if err := rate.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingFailed, err)
	}

	size := frames[0].Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return nil, encodingError("empty frame %vx%v", size.X, size.Y)
	}
	for i, f := range frames[1:] {
		if f.Bounds().Size() != size {
			return nil, encodingError("frame %v is %v, expected %v", i+1, f.Bounds().Size(), size)
		}
	}

	maxColors := opts.MaxColors
	if maxColors == 0 {
		maxColors = MaxColors
	}
	if maxColors < MinColors || maxColors > MaxColors {
		return nil, encodingError("palette size %v outside [%v, %v]", maxColors, MinColors, MaxColors)
	}
	quantizer := opts.Quantizer
	if quantizer == nil {
		quantizer = MedianCut{}
	}

	pal, err := quantizer.Palette(newStack(frames), maxColors)
	if err != nil {
		return nil, fmt.Errorf("%w: build palette: %w", ErrEncodingFailed, err)
	}
	if len(pal) == 0 || len(pal) > MaxColors {
		return nil, encodingError("palette has %v colors", len(pal))
	}

	var drawer draw.Drawer = draw.Src
	if opts.Dither {
		drawer = draw.FloydSteinberg
	}

	bounds := image.Rectangle{Max: size}
	paletted := make([]*image.Paletted, len(frames))
	for i, f := range frames {
		dst := image.NewPaletted(bounds, pal)
		drawer.Draw(dst, bounds, f, f.Bounds().Min)
		paletted[i] = dst
	}

	return &Animation{
		Palette:   pal,
		Frames:    paletted,
		Delay:     rate.Centiseconds(),
		LoopCount: opts.LoopCount,
	}, nil
}

// Encode serializes the animation as GIF into w.
func (a *Animation) Encode(w io.Writer) error {
	if len(a.Frames) == 0 {
		return encodingError("no frames")
	}

	b := a.Frames[0].Bounds()
	g := &gif.GIF{
		Image:     a.Frames,
		Delay:     make([]int, len(a.Frames)),
		Disposal:  make([]byte, len(a.Frames)),
		LoopCount: a.LoopCount,
		Config: image.Config{
			ColorModel: a.Palette,
			Width:      b.Dx(),
			Height:     b.Dy(),
		},
	}
	for i := range a.Frames {
		g.Delay[i] = a.Delay
		g.Disposal[i] = gif.DisposalNone
	}

	if err := gif.EncodeAll(w, g); err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingFailed, err)
	}
	return nil
}

// Encode assembles frames and writes the GIF to w.
func Encode(w io.Writer, frames []*image.RGBA, rate framerate.T, opts Options) error {
	a, err := Assemble(frames, rate, opts)
	if err != nil {
		return err
	}
	return a.Encode(w)
}
