package frame

import (
	"errors"
	"fmt"
	"image"
)

var (
	ErrBadLength     = errors.New("raw frame length does not match its dimensions")
	ErrUnknownFormat = errors.New("unknown raw frame format")
)

// Format names the byte order of a Sample as the capture device delivers it.
// The fourth byte is padding and never read.
type Format int

const (
	FormatRGBX Format = iota
	FormatBGRX
)

func (f Format) String() string {
	switch f {
	case FormatRGBX:
		return "rgbx"
	case FormatBGRX:
		return "bgrx"
	}
	return "invalid-format"
}

// channels returns the sample index of red, green and blue.
func (f Format) channels() (r, g, b int, ok bool) {
	switch f {
	case FormatRGBX:
		return 0, 1, 2, true
	case FormatBGRX:
		return 2, 1, 0, true
	}
	return 0, 0, 0, false
}

type Sample [4]byte

// Raw is one unprocessed frame: Width*Height samples, row-major.
type Raw struct {
	Width  int
	Height int
	Format Format
	Pix    []Sample
}

func (r Raw) Validate() error {
	if r.Width < 0 || r.Height < 0 || len(r.Pix) != r.Width*r.Height {
		return fmt.Errorf("%w: %vx%v with %v samples", ErrBadLength, r.Width, r.Height, len(r.Pix))
	}
	return nil
}

// FromRGBA copies a captured image into an RGBX raw frame. Padding bytes are
// left as the alpha the device reported.
func FromRGBA(img *image.RGBA) Raw {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	raw := Raw{
		Width:  w,
		Height: h,
		Format: FormatRGBX,
		Pix:    make([]Sample, w*h),
	}
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			copy(raw.Pix[y*w+x][:], row[x*4:x*4+4])
		}
	}
	return raw
}
