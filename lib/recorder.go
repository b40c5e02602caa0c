package lib

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log"

	"github.com/piqueme/gif-capture/lib/anim"
	"github.com/piqueme/gif-capture/lib/frame"
	"github.com/piqueme/gif-capture/lib/geom"
	"github.com/piqueme/gif-capture/lib/output"
	"github.com/piqueme/gif-capture/lib/sampler"
	"github.com/piqueme/gif-capture/lib/selector"
)

// RegionSelector runs the interactive selection and reports the screen and
// the chosen area.
type RegionSelector interface {
	SelectRegion(ctx context.Context) (selector.CaptureContext, error)
}

// DeviceOpener opens the capture device for an area of a display.
type DeviceOpener func(display int, area geom.Rect) (sampler.Device, error)

// Recorder runs one selection, capture, encode and write cycle. Each phase
// consumes the whole output of the one before it and the first failure
// stops the run before anything is written.
type Recorder struct {
	Settings   Settings
	Selector   RegionSelector
	OpenDevice DeviceOpener

	Logger *log.Logger
	// Clock paces the sampler; nil uses the system clock.
	Clock sampler.Clock
}

func (r *Recorder) logger() *log.Logger {
	if r.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return r.Logger
}

// Run records one animation and returns the path it was written to.
func (r *Recorder) Run(ctx context.Context) (string, error) {
	logger := r.logger()
	settings := r.Settings
	if err := settings.Validate(); err != nil {
		return "", err
	}
	if requested, clamped := settings.clampFrameRate(); clamped {
		logger.Printf("* %v is above the GIF limit, recording at %v", requested, settings.FrameRate)
	}

	cc, err := r.Selector.SelectRegion(ctx)
	if err != nil {
		return "", phaseError(PhaseSelection, err)
	}
	logger.Printf("capture screen dimensions: %v", cc.Screen)
	logger.Printf("capture area: %v", cc.Area)

	raws, err := r.capture(cc, settings, logger)
	if err != nil {
		return "", phaseError(PhaseCapture, err)
	}

	data, err := r.encode(ctx, raws, settings, logger)
	if err != nil {
		return "", phaseError(PhaseEncoding, err)
	}

	filename, err := output.Resolve(settings.OutputFilename, settings.OutputMethod)
	if err != nil {
		return "", phaseError(PhaseIO, err)
	}
	if err := output.WriteFile(filename, data); err != nil {
		return "", phaseError(PhaseIO, err)
	}
	logger.Printf("* saved %v (%v bytes)", filename, len(data))
	return filename, nil
}

func (r *Recorder) capture(cc selector.CaptureContext, settings Settings, logger *log.Logger) ([]frame.Raw, error) {
	dev, err := r.OpenDevice(settings.Display, cc.Area)
	if err != nil {
		return nil, err
	}

	opts := []sampler.Option{sampler.WithLogger(logger)}
	if r.Clock != nil {
		opts = append(opts, sampler.WithClock(r.Clock))
	}
	logger.Printf("* start recording: %v for %v", settings.FrameRate, settings.Duration)
	return sampler.Sample(dev, settings.Duration, settings.FrameRate, opts...)
}

func (r *Recorder) encode(ctx context.Context, raws []frame.Raw, settings Settings, logger *log.Logger) ([]byte, error) {
	images, err := frame.ConvertAll(ctx, raws, settings.Workers)
	if err != nil {
		return nil, fmt.Errorf("%w: convert: %w", anim.ErrEncodingFailed, err)
	}
	if settings.Scale != 1 {
		scaled := make([]*image.RGBA, len(images))
		for i, img := range images {
			scaled[i] = frame.Scale(img, settings.Scale)
		}
		images = scaled
	}

	logger.Printf("* encoding %v frames", len(images))
	var buf bytes.Buffer
	if err := anim.Encode(&buf, images, settings.FrameRate, settings.animOptions()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
