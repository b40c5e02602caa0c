package selector

import (
	"context"
	"fmt"

	"github.com/piqueme/gif-capture/lib/geom"
)

type EventKind int

const (
	EventQuit EventKind = iota
	EventKeyDown
	EventPointerDown
	EventPointerMove
	EventPointerUp
)

func (kind EventKind) String() string {
	switch kind {
	case EventQuit:
		return "quit"
	case EventKeyDown:
		return "key-down"
	case EventPointerDown:
		return "pointer-down"
	case EventPointerMove:
		return "pointer-move"
	case EventPointerUp:
		return "pointer-up"
	}
	return "invalid-event"
}

type Key int

const (
	KeyOther Key = iota
	KeyEscape
)

// Event is one input event. Pos is in absolute screen coordinates and is
// only meaningful for pointer events; Key only for key events.
type Event struct {
	Kind EventKind
	Pos  geom.Point
	Key  Key
}

func (e Event) String() string {
	switch e.Kind {
	case EventPointerDown, EventPointerMove, EventPointerUp:
		return fmt.Sprintf("%v%v", e.Kind, e.Pos)
	}
	return e.Kind.String()
}

func Quit() Event                { return Event{Kind: EventQuit} }
func KeyDown(key Key) Event      { return Event{Kind: EventKeyDown, Key: key} }
func PointerDown(x, y int) Event { return Event{Kind: EventPointerDown, Pos: geom.Point{X: x, Y: y}} }
func PointerMove(x, y int) Event { return Event{Kind: EventPointerMove, Pos: geom.Point{X: x, Y: y}} }
func PointerUp(x, y int) Event   { return Event{Kind: EventPointerUp, Pos: geom.Point{X: x, Y: y}} }

// EventSource yields input events. Next blocks until an event is available.
type EventSource interface {
	Next(ctx context.Context) (Event, error)
}

// Canvas receives drawing requests. Nothing is shown until Present.
type Canvas interface {
	Clear()
	FillRect(r geom.Rect) error
	Present()
}

// CaptureContext is what a finished selection hands to the capture phase.
type CaptureContext struct {
	Screen geom.Size
	Area   geom.Rect
}

func (c CaptureContext) String() string {
	return fmt.Sprintf("screen %v, area %v", c.Screen, c.Area)
}
