package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the debug HUD.
type HUDData struct {
	Title      string
	RunID      string
	Population int
	Target     int
	Pointer    bool
	Links      int
	LinkAlpha  float64
	Tick       int32
	FPS        int32
	Width      float64
	Height     float64
}

// HUD renders the debug heads-up display.
type HUD struct {
	x, y       float32
	width      float32
	lineHeight float32
}

// NewHUD creates a HUD anchored at the top-left corner.
func NewHUD() *HUD {
	return &HUD{x: 10, y: 10, width: 300, lineHeight: 20}
}

// Lines returns the HUD text, one entry per row.
func (h *HUD) Lines(data HUDData) []string {
	pointer := "out"
	if data.Pointer {
		pointer = "in"
	}
	return []string{
		fmt.Sprintf("Balls: %d / %d | Pointer: %s", data.Population, data.Target, pointer),
		fmt.Sprintf("Links: %d | Mean alpha: %.2f", data.Links, data.LinkAlpha),
		fmt.Sprintf("Field: %.0f x %.0f", data.Width, data.Height),
		fmt.Sprintf("Tick: %d | FPS: %d", data.Tick, data.FPS),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	lines := h.Lines(data)
	height := h.lineHeight*float32(len(lines)+2) + 8

	gui.Panel(rl.Rectangle{X: h.x, Y: h.y, Width: h.width, Height: height}, data.Title)

	y := h.y + h.lineHeight + 8
	for _, line := range lines {
		gui.Label(rl.Rectangle{X: h.x + 8, Y: y, Width: h.width - 16, Height: h.lineHeight}, line)
		y += h.lineHeight
	}

	gui.StatusBar(rl.Rectangle{X: h.x, Y: y, Width: h.width, Height: h.lineHeight}, "run "+shortID(data.RunID))
}

// shortID trims a run id to its first group for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
