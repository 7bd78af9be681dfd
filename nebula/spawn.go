package nebula

import "gonum.org/v1/gonum/spatial/r2"

// Edge identifies the side of the field a particle enters from.
type Edge uint8

// Edges, clockwise from the top.
const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
	numEdges
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	}
	return "unknown"
}

// Spawn adds one regular particle at a random edge if the population is below
// target. It reports whether a particle was added.
func (f *Field) Spawn() bool {
	if f.RegularCount() >= f.params.Size {
		return false
	}
	edge := Edge(f.rng.Intn(int(numEdges)))
	f.Particles = append(f.Particles, f.SpawnEdge(edge))
	return true
}

// SpawnEdge builds a regular particle just outside the given edge, moving inward.
func (f *Field) SpawnEdge(edge Edge) Particle {
	r := f.params.Radius
	p := Particle{
		Radius: r,
		Alpha:  f.params.Alpha,
		Kind:   KindRegular,
		Vel:    f.RandomVelocity(edge),
	}

	switch edge {
	case EdgeTop:
		p.Pos = r2.Vec{X: f.between(0, f.Width), Y: -r}
	case EdgeRight:
		p.Pos = r2.Vec{X: f.Width + r, Y: f.between(0, f.Height)}
	case EdgeBottom:
		p.Pos = r2.Vec{X: f.between(0, f.Width), Y: f.Height + r}
	case EdgeLeft:
		p.Pos = r2.Vec{X: -r, Y: f.between(0, f.Height)}
	}
	return p
}

// RandomVelocity draws a velocity whose component perpendicular to edge points
// into the field with at least MinInwardVelocity magnitude. The parallel
// component is unrestricted within [MinVelocity, MaxVelocity).
func (f *Field) RandomVelocity(edge Edge) r2.Vec {
	lo, hi := f.params.MinVelocity, f.params.MaxVelocity
	in := f.params.MinInwardVelocity

	switch edge {
	case EdgeTop:
		return r2.Vec{X: f.between(lo, hi), Y: f.between(in, hi)}
	case EdgeRight:
		return r2.Vec{X: f.between(lo, -in), Y: f.between(lo, hi)}
	case EdgeBottom:
		return r2.Vec{X: f.between(lo, hi), Y: f.between(lo, -in)}
	default:
		return r2.Vec{X: f.between(in, hi), Y: f.between(lo, hi)}
	}
}

// between returns a uniform value in [min, max).
func (f *Field) between(min, max float64) float64 {
	return f.rng.Float64()*(max-min) + min
}
