package game

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/nebula/nebula"
	"github.com/pthm-cable/nebula/renderer"
)

// NewTerminalScreen opens and initialises the controlling terminal.
func NewTerminalScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w: %v", ErrNoSurface, err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initialising terminal: %w: %v", ErrNoSurface, err)
	}
	return screen, nil
}

// terminalInput tracks the pointer across tcell events.
type terminalInput struct {
	surface      *renderer.TerminalSurface
	inside       bool
	lastX, lastY float64 // field position of the latest mouse event
}

// RunTerminal drives the game on a tcell screen until a quit key is pressed
// or maxTicks frames have run (0 = unlimited). The caller owns the screen.
func (g *Game) RunTerminal(screen tcell.Screen, maxTicks int) error {
	cfg := g.cfg

	surface := renderer.NewTerminalSurface(screen, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight)
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	in := &terminalInput{surface: surface}
	w, h := surface.FieldSize()
	g.field.Enqueue(nebula.Resize(w, h))

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Duration(cfg.Derived.FrameDT * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if !g.handleTerminalEvent(in, ev) {
				return nil
			}

		case <-ticker.C:
			g.Frame(surface)
			surface.Present()

			if maxTicks > 0 && int(g.tick) >= maxTicks {
				return nil
			}
		}
	}
}

// handleTerminalEvent translates a tcell event into field intents. It returns
// false when the user asked to quit.
func (g *Game) handleTerminalEvent(in *terminalInput, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		w := float64(cols) * g.cfg.Terminal.CellWidth
		h := float64(rows) * g.cfg.Terminal.CellHeight
		g.field.Enqueue(nebula.Resize(w, h))
		logResize(w, h)

	case *tcell.EventMouse:
		x, y := in.surface.CellToField(ev.Position())
		in.lastX, in.lastY = x, y
		g.field.Enqueue(nebula.PointerMove(x, y))
		if !in.inside {
			g.field.Enqueue(nebula.PointerEnter())
			in.inside = true
			logPointer("enter", x, y)
		}

	case *tcell.EventFocus:
		if !ev.Focused && in.inside {
			g.field.Enqueue(nebula.PointerLeave())
			in.inside = false
			logPointer("leave", in.lastX, in.lastY)
		}
	}

	return true
}
