package lib

import "fmt"

type Phase string

const (
	PhaseSelection Phase = "selection"
	PhaseCapture   Phase = "capture"
	PhaseEncoding  Phase = "encoding"
	PhaseIO        Phase = "io"
)

// PhaseError is the first failure of a run, tagged with the phase that
// produced it.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%v phase failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

func phaseError(phase Phase, err error) error {
	return &PhaseError{Phase: phase, Err: err}
}
