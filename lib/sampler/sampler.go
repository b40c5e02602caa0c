// Package sampler pulls a time-bounded burst of frames from a capture device.
package sampler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/piqueme/gif-capture/lib/frame"
	"github.com/piqueme/gif-capture/lib/framerate"
)

var (
	ErrFrameCaptureFailed = errors.New("frame capture failed")
	ErrInvalidDuration    = errors.New("capture duration must not be negative")
)

// Device captures one frame per call.
type Device interface {
	Capture() (frame.Raw, error)
}

// CaptureError reports the 0-based attempt that failed. No frames survive it.
type CaptureError struct {
	Index int
	Err   error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("%v at frame %v: %v", ErrFrameCaptureFailed, e.Index, e.Err)
}

func (e *CaptureError) Unwrap() []error {
	return []error{ErrFrameCaptureFailed, e.Err}
}

type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

type options struct {
	clock  Clock
	logger *log.Logger
}

type Option func(*options)

func WithClock(clock Clock) Option {
	return func(o *options) { o.clock = clock }
}

func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Sample captures frames from dev every 1000/rate milliseconds until more
// than d has elapsed since the first capture began.
//
// The elapsed check runs after each capture and its sleep, so at least one
// frame is captured even when d is zero. The sleep does not account for the
// time the capture itself took.
func Sample(dev Device, d time.Duration, rate framerate.T, opts ...Option) ([]frame.Raw, error) {
	o := options{
		clock:  systemClock{},
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := rate.Validate(); err != nil {
		return nil, err
	}
	if d < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, d)
	}

	delay := rate.Delay()
	frames := make([]frame.Raw, 0, rate.Capacity(d))

	start := o.clock.Now()
	for i := 0; ; i++ {
		raw, err := dev.Capture()
		if err != nil {
			return nil, &CaptureError{Index: i, Err: err}
		}
		frames = append(frames, raw)
		o.logger.Println("* screenshot", len(frames))

		o.clock.Sleep(delay)
		if o.clock.Now().Sub(start) > d {
			break
		}
	}

	return frames, nil
}
