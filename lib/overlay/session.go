// Package overlay shows a transparent full-screen ebiten window and turns its
// input into selector events. The window is the selection canvas.
package overlay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/piqueme/gif-capture/lib/geom"
	"github.com/piqueme/gif-capture/lib/selector"
)

var (
	ErrNoScreen = errors.New("screen size unavailable")
	ErrClosed   = errors.New("overlay closed")

	errSessionDone = errors.New("overlay session done")
)

const eventBufferSize = 256

// Session owns the overlay window for one selection. It implements
// selector.EventSource and selector.Canvas: the selector runs on its own
// goroutine while ebiten drives Update and Draw on the calling one.
type Session struct {
	// screen is in logical pixels, the space ebiten reports the cursor in.
	screen geom.Size
	// scale converts logical to physical pixels.
	scale  float64
	logger *log.Logger

	events chan selector.Event
	done   atomic.Bool

	mu      sync.Mutex
	pending []geom.Rect
	shown   []geom.Rect

	cursor geom.Point
	scrp   *ScreenPrint
}

// Open queries the display resolution and scale for a new session.
func Open(logger *log.Logger) (*Session, error) {
	w, h := ebiten.ScreenSizeInFullscreen()
	if w <= 0 || h <= 0 {
		return nil, ErrNoScreen
	}
	return newSession(geom.Size{W: w, H: h}, ebiten.DeviceScaleFactor(), logger), nil
}

func newSession(screen geom.Size, scale float64, logger *log.Logger) *Session {
	if scale <= 0 {
		scale = 1
	}
	return &Session{
		screen: screen,
		scale:  scale,
		logger: logger,
		events: make(chan selector.Event, eventBufferSize),
		cursor: geom.Point{X: -1, Y: -1},
		scrp:   NewScreenPrint(),
	}
}

// SelectRegion shows the overlay until the user finishes or cancels a drag.
// It must run on the main goroutine. The window is gone when it returns,
// whatever the outcome.
func (s *Session) SelectRegion(ctx context.Context) (selector.CaptureContext, error) {
	type result struct {
		rect geom.Rect
		err  error
	}
	resultCh := make(chan result, 1)

	go func() {
		defer s.done.Store(true)
		rect, err := selector.Select(ctx, s, s)
		resultCh <- result{rect, err}
	}()

	s.configureWindow()
	runErr := ebiten.RunGame(s)
	if errors.Is(runErr, errSessionDone) {
		runErr = nil
	}
	s.done.Store(true)
	close(s.events)

	res := <-resultCh
	if runErr != nil {
		return selector.CaptureContext{}, fmt.Errorf("%w: overlay: %w", selector.ErrSelectionAborted, runErr)
	}
	if res.err != nil {
		return selector.CaptureContext{}, res.err
	}
	return s.captureContext(res.rect), nil
}

// captureContext converts a selection to physical pixels, the space the
// capture device works in.
func (s *Session) captureContext(rect geom.Rect) selector.CaptureContext {
	return selector.CaptureContext{
		Screen: s.screen.Scale(s.scale),
		Area:   rect.Scale(s.scale),
	}
}

func (s *Session) configureWindow() {
	ebiten.SetWindowTitle("gifcap")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetScreenTransparent(true)
	ebiten.SetWindowSize(s.screen.W, s.screen.H)
	ebiten.SetWindowPosition(0, 0)
	ebiten.SetCursorShape(ebiten.CursorShapeCrosshair)
}

// Next implements selector.EventSource.
func (s *Session) Next(ctx context.Context) (selector.Event, error) {
	select {
	case e, ok := <-s.events:
		if !ok {
			return selector.Event{}, ErrClosed
		}
		return e, nil
	case <-ctx.Done():
		return selector.Event{}, ctx.Err()
	}
}

// Clear implements selector.Canvas.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = s.pending[:0]
}

// FillRect implements selector.Canvas.
func (s *Session) FillRect(r geom.Rect) error {
	if s.done.Load() {
		return ErrClosed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, r)
	return nil
}

// Present implements selector.Canvas.
func (s *Session) Present() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = append(s.shown[:0], s.pending...)
}

func (s *Session) displayed() []geom.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]geom.Rect(nil), s.shown...)
}

func (s *Session) send(e selector.Event) {
	select {
	case s.events <- e:
	default:
		if s.logger != nil {
			s.logger.Printf("overlay: dropped %v", e)
		}
	}
}

// --- ebiten.Game interface ---

func (s *Session) Update() error {
	if s.done.Load() {
		return errSessionDone
	}

	if ebiten.IsWindowBeingClosed() {
		s.send(selector.Quit())
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.send(selector.KeyDown(selector.KeyEscape))
		return nil
	}

	x, y := ebiten.CursorPosition()
	p := geom.Point{X: x, Y: y}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.send(selector.PointerDown(x, y))
	}
	if p != s.cursor {
		s.cursor = p
		s.send(selector.PointerMove(x, y))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.send(selector.PointerUp(x, y))
	}
	return nil
}

func (s *Session) Draw(screen *ebiten.Image) {
	screen.Clear()
	b := screen.Bounds()
	ebitenutil.DrawRect(screen, 0, 0, float64(b.Dx()), float64(b.Dy()), ColorBlackTransparent)

	s.scrp.Reset(screen)
	s.scrp.Color = ColorTeal
	s.scrp.Println("\n\nDrag to select the area to record")
	s.scrp.Color = ColorWhite
	s.scrp.Println("Press [esc] to cancel")

	for _, r := range s.displayed() {
		ebitenutil.DrawRect(screen, float64(r.X), float64(r.Y), float64(r.W), float64(r.H), ColorSelection)
		x, y := labelPosition(r, s.screen)
		s.scrp.Label(x, y, r.Size().String())
	}
}

func (s *Session) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return outsideWidth, outsideHeight
}

// labelPosition puts the size label just below the rectangle's bottom-right
// corner, or inside it when that would leave the screen.
func labelPosition(r geom.Rect, screen geom.Size) (x, y int) {
	const labelW, labelH = 80, 20
	x = r.X + r.W - labelW
	if x < 0 {
		x = 0
	}
	y = r.Y + r.H + 4
	if y+labelH > screen.H {
		y = r.Y + r.H - labelH
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
