package nebula

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nebula/config"
)

// Params holds the fixed simulation constants.
type Params struct {
	Size              int     // Target regular population
	BufferZone        float64 // Margin beyond the visible area before culling
	Radius            float64
	Alpha             float64
	MinVelocity       float64
	MaxVelocity       float64
	MinInwardVelocity float64
	LinkDistance      float64
}

// ParamsFromConfig extracts the simulation constants from the loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Size:              cfg.Nebula.Size,
		BufferZone:        cfg.Nebula.BufferZone,
		Radius:            cfg.Balls.Radius,
		Alpha:             cfg.Balls.Alpha,
		MinVelocity:       cfg.Balls.MinVelocity,
		MaxVelocity:       cfg.Balls.MaxVelocity,
		MinInwardVelocity: cfg.Balls.MinInwardVelocity,
		LinkDistance:      cfg.Links.MaxDistance,
	}
}

// Field is the complete simulation state. It is owned by a single goroutine;
// input reaches it through Enqueue and is applied by ApplyIntents.
type Field struct {
	Particles     []Particle
	Width, Height float64

	params  Params
	rng     *rand.Rand
	intents []Intent
	pointer r2.Vec // Last known pointer position, kept across leave/enter
}

// NewField creates an empty field of the given size.
func NewField(width, height float64, params Params, rng *rand.Rand) *Field {
	return &Field{
		Particles: make([]Particle, 0, params.Size+1),
		Width:     width,
		Height:    height,
		params:    params,
		rng:       rng,
	}
}

// Params returns the field's constants.
func (f *Field) Params() Params {
	return f.params
}

// Len returns the number of particles of any kind.
func (f *Field) Len() int {
	return len(f.Particles)
}

// RegularCount returns the number of regular particles.
func (f *Field) RegularCount() int {
	n := 0
	for i := range f.Particles {
		if f.Particles[i].Kind == KindRegular {
			n++
		}
	}
	return n
}

// PointerCount returns the number of pointer particles (0 or 1).
func (f *Field) PointerCount() int {
	return len(f.Particles) - f.RegularCount()
}

// Pointer returns the pointer particle, or nil when the pointer is outside.
func (f *Field) Pointer() *Particle {
	for i := range f.Particles {
		if f.Particles[i].Kind == KindPointer {
			return &f.Particles[i]
		}
	}
	return nil
}

// inBounds reports whether p lies within the visible area grown by the buffer.
// A particle exactly on the buffered edge is kept.
func (f *Field) inBounds(p *Particle) bool {
	b := f.params.BufferZone
	return p.Pos.X >= -b && p.Pos.X <= f.Width+b &&
		p.Pos.Y >= -b && p.Pos.Y <= f.Height+b
}
