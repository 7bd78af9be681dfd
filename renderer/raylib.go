package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaylibSurface draws into the current raylib frame. Calls must happen
// between rl.BeginDrawing and rl.EndDrawing.
type RaylibSurface struct{}

// NewRaylibSurface creates a surface for the open raylib window.
func NewRaylibSurface() *RaylibSurface {
	return &RaylibSurface{}
}

func (s *RaylibSurface) Clear(bg color.RGBA) {
	rl.ClearBackground(toRaylib(bg))
}

func (s *RaylibSurface) FillCircle(x, y, r float64, c color.RGBA) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), toRaylib(c))
}

func (s *RaylibSurface) StrokeLine(x1, y1, x2, y2, width float64, c color.RGBA) {
	rl.DrawLineEx(
		rl.NewVector2(float32(x1), float32(y1)),
		rl.NewVector2(float32(x2), float32(y2)),
		float32(width),
		toRaylib(c),
	)
}

func toRaylib(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
