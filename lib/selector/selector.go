// Package selector turns a pointer drag into a normalized capture rectangle.
//
// The selection runs as a synchronous poll loop: Select waits for the next
// event, feeds it to the Machine and stops once the machine reaches Done or
// Cancelled. Drawing is only requested through a Canvas.
package selector

import (
	"context"
	"errors"
	"fmt"

	"github.com/piqueme/gif-capture/lib/geom"
)

var ErrSelectionAborted = errors.New("selection aborted")

type State int

const (
	StateIdle State = iota
	StateDragging
	StateDone
	StateCancelled
)

func (state State) String() string {
	switch state {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	}
	return "invalid-state"
}

func (state State) Terminal() bool {
	return state == StateDone || state == StateCancelled
}

type Machine struct {
	canvas Canvas

	state  State
	anchor geom.Point
	rect   geom.Rect
}

func NewMachine(canvas Canvas) *Machine {
	return &Machine{canvas: canvas}
}

func (m *Machine) State() State { return m.state }

// Rect returns the final rectangle. It is only valid in StateDone.
func (m *Machine) Rect() (geom.Rect, bool) {
	return m.rect, m.state == StateDone
}

// Handle applies one event. Events arriving after a terminal state are
// ignored. A canvas failure cancels the selection and is returned.
func (m *Machine) Handle(e Event) error {
	if m.state.Terminal() {
		return nil
	}

	switch e.Kind {
	case EventQuit:
		m.state = StateCancelled
		return nil
	case EventKeyDown:
		if e.Key == KeyEscape {
			m.state = StateCancelled
		}
		return nil
	}

	switch m.state {
	case StateIdle:
		if e.Kind == EventPointerDown {
			m.anchor = e.Pos
			m.state = StateDragging
			m.canvas.Present()
		}

	case StateDragging:
		switch e.Kind {
		case EventPointerDown:
			m.anchor = e.Pos
			m.canvas.Present()
		case EventPointerMove:
			preview := geom.RectFromCorners(m.anchor, e.Pos)
			m.canvas.Clear()
			if err := m.canvas.FillRect(preview); err != nil {
				m.state = StateCancelled
				return err
			}
			m.canvas.Present()
		case EventPointerUp:
			m.rect = geom.RectFromCorners(m.anchor, e.Pos)
			m.state = StateDone
		}
	}
	return nil
}

// Select polls src until the user finishes or cancels a drag. A source error
// or a cancelled ctx counts as a quit signal.
func Select(ctx context.Context, src EventSource, canvas Canvas) (geom.Rect, error) {
	m := NewMachine(canvas)
	for !m.State().Terminal() {
		e, err := src.Next(ctx)
		if err != nil {
			return geom.Rect{}, fmt.Errorf("%w: %v", ErrSelectionAborted, err)
		}
		if err := m.Handle(e); err != nil {
			return geom.Rect{}, fmt.Errorf("%w: draw preview: %w", ErrSelectionAborted, err)
		}
	}

	rect, ok := m.Rect()
	if !ok {
		return geom.Rect{}, ErrSelectionAborted
	}
	return rect, nil
}
