package framerate

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalid = errors.New("frame rate must be a positive number of frames per second")

// T is a capture rate in frames per second.
type T int

func (rate T) String() string {
	return fmt.Sprintf("%v frames per second", int(rate))
}

func (rate T) Validate() error {
	if rate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalid, int(rate))
	}
	return nil
}

// Delay is the pause between two captures, 1000/rate whole milliseconds.
func (rate T) Delay() time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(1000/int(rate)) * time.Millisecond
}

// Centiseconds is the per-frame display delay in the unit GIF uses.
// Rates above 100 fps still get the smallest non-zero delay.
func (rate T) Centiseconds() int {
	if rate <= 0 {
		return 0
	}
	cs := int(math.Round(100 / float64(rate)))
	if cs < 1 {
		cs = 1
	}
	return cs
}

// Capacity estimates how many frames a capture of the given duration yields.
func (rate T) Capacity(d time.Duration) int {
	if rate <= 0 || d < 0 {
		return 1
	}
	return int(d.Seconds()*float64(rate)) + 1
}

func (rate *T) Clamp(min, max int) {
	if int(*rate) < min {
		*rate = T(min)
	} else if int(*rate) > max {
		*rate = T(max)
	}
}
