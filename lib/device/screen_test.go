package device

import (
	"errors"
	"image"
	"testing"

	"github.com/piqueme/gif-capture/lib/geom"
)

func TestScreen_TranslatesArea(t *testing.T) {
	var requested image.Rectangle
	capture := func(r image.Rectangle) (*image.RGBA, error) {
		requested = r
		return image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy())), nil
	}

	bounds := image.Rect(1920, 0, 3840, 1080)
	s := newScreen(1, bounds, geom.Rect{X: 10, Y: 10, W: 40, H: 30}, capture)

	raw, err := s.Capture()
	if err != nil {
		t.Fatal(err)
	}
	expected := image.Rect(1930, 10, 1970, 40)
	if requested != expected {
		t.Errorf("expected: %v | got %v", expected, requested)
	}
	if raw.Width != 40 || raw.Height != 30 || len(raw.Pix) != 1200 {
		t.Errorf("got %vx%v with %v samples", raw.Width, raw.Height, len(raw.Pix))
	}
	if s.Size() != (geom.Size{W: 1920, H: 1080}) {
		t.Errorf("got size %v", s.Size())
	}
}

func TestScreen_CaptureError(t *testing.T) {
	failure := errors.New("xgb: connection closed")
	s := newScreen(0, image.Rect(0, 0, 10, 10), geom.Rect{W: 5, H: 5}, func(image.Rectangle) (*image.RGBA, error) {
		return nil, failure
	})
	if _, err := s.Capture(); !errors.Is(err, failure) {
		t.Errorf("expected wrapped capture error, got %v", err)
	}
}
