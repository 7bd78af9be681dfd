package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/nebula"
)

// handleInput translates window events into field intents.
func (g *Game) handleInput() {
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Debug overlays
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := g.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay", "id", string(id), "enabled", on)
		}
	}

	g.handlePointer(rl.IsCursorOnScreen(), rl.GetMousePosition())
}

// handleResize queues a resize when the window width changes. The field
// height stays at nebula.height.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(g.cfg.Nebula.Height)
	if w == g.field.Width && h == g.field.Height {
		return
	}
	g.field.Enqueue(nebula.Resize(w, h))
	logResize(w, h)
}

// handlePointer queues pointer intents from one poll of the cursor. Enter and
// leave fire on transitions only.
func (g *Game) handlePointer(onScreen bool, pos rl.Vector2) {
	switch {
	case onScreen && !g.pointerInside:
		g.field.Enqueue(nebula.PointerMove(float64(pos.X), float64(pos.Y)))
		g.field.Enqueue(nebula.PointerEnter())
		g.pointerInside = true
		logPointer("enter", float64(pos.X), float64(pos.Y))
	case !onScreen && g.pointerInside:
		g.field.Enqueue(nebula.PointerLeave())
		g.pointerInside = false
		logPointer("leave", float64(pos.X), float64(pos.Y))
	case onScreen:
		g.field.Enqueue(nebula.PointerMove(float64(pos.X), float64(pos.Y)))
	}
}
