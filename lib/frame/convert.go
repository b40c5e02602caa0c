package frame

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"runtime"

	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"
)

// Convert maps a raw frame to an RGBA image of the same size. Pixel (x, y)
// comes from Pix[y*Width+x] and alpha is always opaque.
func Convert(r Raw) (*image.RGBA, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	ri, gi, bi, ok := r.Format.channels()
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, int(r.Format))
	}

	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			s := r.Pix[y*r.Width+x]
			o := img.PixOffset(x, y)
			img.Pix[o+0] = s[ri]
			img.Pix[o+1] = s[gi]
			img.Pix[o+2] = s[bi]
			img.Pix[o+3] = 0xff
		}
	}
	return img, nil
}

// ConvertAll converts every raw frame, keeping capture order. At most workers
// frames are converted at once; workers <= 0 means one per CPU.
func ConvertAll(ctx context.Context, raws []Raw, workers int) ([]*image.RGBA, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	images := make([]*image.RGBA, len(raws))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range raws {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := Convert(raws[i])
			if err != nil {
				return fmt.Errorf("frame %v: %w", i, err)
			}
			images[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// Scale resizes img by factor with Lanczos resampling. A factor of 1, or
// one that is not positive, returns img as is.
func Scale(img *image.RGBA, factor float64) *image.RGBA {
	if factor <= 0 || factor == 1 {
		return img
	}
	b := img.Bounds()
	w := uint(float64(b.Dx())*factor + 0.5)
	h := uint(float64(b.Dy())*factor + 0.5)
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}

	scaled := resize.Resize(w, h, img, resize.Lanczos3)
	if rgba, ok := scaled.(*image.RGBA); ok {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	draw.Draw(dst, dst.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	return dst
}
