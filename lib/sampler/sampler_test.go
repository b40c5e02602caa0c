package sampler

import (
	"errors"
	"testing"
	"time"

	"github.com/piqueme/gif-capture/lib/frame"
	"github.com/piqueme/gif-capture/lib/framerate"
)

type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

type fakeDevice struct {
	calls  int
	failOn int
	clock  *fakeClock
	cost   time.Duration
}

func (dev *fakeDevice) Capture() (frame.Raw, error) {
	dev.calls++
	if dev.clock != nil {
		dev.clock.now = dev.clock.now.Add(dev.cost)
	}
	if dev.calls == dev.failOn {
		return frame.Raw{}, errors.New("device lost")
	}
	return frame.Raw{
		Width:  1,
		Height: 1,
		Pix:    []frame.Sample{{byte(dev.calls), 0, 0, 0}},
	}, nil
}

func TestSample_ZeroDurationCapturesOnce(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	dev := &fakeDevice{}

	frames, err := Sample(dev, 0, 10, WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 1 {
		t.Errorf("expected: %v | got %v", 1, len(frames))
	}
	if len(clock.slept) != 1 || clock.slept[0] != 100*time.Millisecond {
		t.Errorf("got sleeps %v", clock.slept)
	}
}

func TestSample_StopsOnceElapsedExceedsDuration(t *testing.T) {
	for _, entry := range []struct {
		d        time.Duration
		rate     framerate.T
		expected int
	}{
		// elapsed after n captures is n*100ms; stop when strictly > d
		{300 * time.Millisecond, 10, 4},
		{250 * time.Millisecond, 10, 3},
		{3 * time.Second, 10, 31},
		{time.Second, 1, 2},
		{time.Second, 3, 4},
	} {
		clock := &fakeClock{now: time.Unix(0, 0)}
		frames, err := Sample(&fakeDevice{}, entry.d, entry.rate, WithClock(clock))
		if err != nil {
			t.Fatal(err)
		}
		if len(frames) != entry.expected {
			t.Errorf("d=%v rate=%v: expected: %v | got %v", entry.d, int(entry.rate), entry.expected, len(frames))
		}
	}
}

func TestSample_CaptureCostDrifts(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	dev := &fakeDevice{clock: clock, cost: 50 * time.Millisecond}

	frames, err := Sample(dev, 300*time.Millisecond, 10, WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}
	// 150ms per iteration: 150, 300, 450
	if len(frames) != 3 {
		t.Errorf("expected: %v | got %v", 3, len(frames))
	}
}

func TestSample_KeepsCaptureOrder(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	frames, err := Sample(&fakeDevice{}, 500*time.Millisecond, 10, WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}
	for i, f := range frames {
		if f.Pix[0][0] != byte(i+1) {
			t.Errorf("frame %v: expected marker %v | got %v", i, i+1, f.Pix[0][0])
		}
	}
}

func TestSample_FailureDiscardsFrames(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	dev := &fakeDevice{failOn: 3}

	frames, err := Sample(dev, 3*time.Second, 10, WithClock(clock))
	if frames != nil {
		t.Errorf("expected no frames, got %v", len(frames))
	}
	if !errors.Is(err, ErrFrameCaptureFailed) {
		t.Fatalf("expected ErrFrameCaptureFailed, got %v", err)
	}

	var captureErr *CaptureError
	if !errors.As(err, &captureErr) {
		t.Fatalf("expected *CaptureError, got %T", err)
	}
	if captureErr.Index != 2 {
		t.Errorf("expected: %v | got %v", 2, captureErr.Index)
	}
	if dev.calls != 3 {
		t.Errorf("device must not be retried, got %v calls", dev.calls)
	}
}

func TestSample_InvalidArguments(t *testing.T) {
	dev := &fakeDevice{}
	if _, err := Sample(dev, time.Second, 0); !errors.Is(err, framerate.ErrInvalid) {
		t.Errorf("expected framerate.ErrInvalid, got %v", err)
	}
	if _, err := Sample(dev, -time.Second, 10); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
	if dev.calls != 0 {
		t.Errorf("no capture expected, got %v", dev.calls)
	}
}
