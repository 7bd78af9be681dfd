package game

import "log/slog"

func logResize(width, height float64) {
	slog.Debug("resize", "width", width, "height", height)
}

func logPointer(event string, x, y float64) {
	slog.Debug("pointer", "event", event, "x", x, "y", y)
}

// logFieldState logs a one-line summary of the field.
func (g *Game) logFieldState() {
	slog.Info("field",
		"run_id", g.runID,
		"tick", g.tick,
		"width", g.field.Width,
		"height", g.field.Height,
		"population", g.field.RegularCount(),
		"pointer", g.field.PointerCount() > 0,
		"links", g.lastLinks.Count,
	)
}
