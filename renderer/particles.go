package renderer

import (
	"image/color"
	"math"

	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/nebula"
)

// NebulaRenderer paints balls and links onto a Surface.
type NebulaRenderer struct {
	Background color.RGBA
	BallColor  color.RGBA
	BallRadius float64
	LinkColor  color.RGBA
	LinkWidth  float64
}

// NewNebulaRenderer creates a renderer from the loaded config.
func NewNebulaRenderer(cfg *config.Config) *NebulaRenderer {
	return &NebulaRenderer{
		Background: cfg.Derived.Background,
		BallColor:  cfg.Derived.BallColor,
		BallRadius: cfg.Balls.Radius,
		LinkColor:  cfg.Derived.LinkColor,
		LinkWidth:  cfg.Links.Width,
	}
}

// Clear wipes the surface.
func (r *NebulaRenderer) Clear(s Surface) {
	s.Clear(r.Background)
}

// DrawParticles fills a circle for every regular particle and returns how many
// were drawn. The pointer particle is never drawn.
func (r *NebulaRenderer) DrawParticles(s Surface, particles []nebula.Particle) int {
	drawn := 0
	for i := range particles {
		p := &particles[i]
		switch p.Kind {
		case nebula.KindRegular:
			s.FillCircle(p.Pos.X, p.Pos.Y, r.BallRadius, withAlpha(r.BallColor, p.Alpha))
			drawn++
		case nebula.KindPointer:
		}
	}
	return drawn
}

// DrawLinks strokes a line for every linked pair, fading with distance.
func (r *NebulaRenderer) DrawLinks(s Surface, f *nebula.Field) nebula.LinkStats {
	return f.VisitLinks(func(a, b *nebula.Particle, _, alpha float64) {
		s.StrokeLine(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y, r.LinkWidth, withAlpha(r.LinkColor, alpha))
	})
}

// markerSegments is the number of line segments in the pointer reach ring.
const markerSegments = 48

// DrawPointerMarker outlines the pointer ball and the circle within which it
// links. It reports false when no pointer is present.
func (r *NebulaRenderer) DrawPointerMarker(s Surface, f *nebula.Field) bool {
	p := f.Pointer()
	if p == nil {
		return false
	}

	c := withAlpha(r.LinkColor, 0.35)
	s.FillCircle(p.Pos.X, p.Pos.Y, r.BallRadius*2, c)

	reach := f.Params().LinkDistance
	prevX, prevY := p.Pos.X+reach, p.Pos.Y
	for i := 1; i <= markerSegments; i++ {
		theta := 2 * math.Pi * float64(i) / markerSegments
		x := p.Pos.X + reach*math.Cos(theta)
		y := p.Pos.Y + reach*math.Sin(theta)
		s.StrokeLine(prevX, prevY, x, y, r.LinkWidth, c)
		prevX, prevY = x, y
	}
	return true
}
