// Package nebula simulates the drifting particle field: spawning at the edges,
// constant-velocity integration, culling beyond the buffer margin and
// proximity linking.
package nebula

import "gonum.org/v1/gonum/spatial/r2"

// Kind identifies what a particle represents.
type Kind uint8

const (
	// KindRegular is a drifting ball that is drawn and culled.
	KindRegular Kind = iota
	// KindPointer tracks the input device. It takes part in linking only.
	KindPointer
)

func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindPointer:
		return "pointer"
	}
	return "unknown"
}

// Particle is a single member of the field.
type Particle struct {
	Pos    r2.Vec // Surface pixel space
	Vel    r2.Vec // Pixels per frame
	Radius float64
	Alpha  float64
	Kind   Kind
}

// Distance returns the Euclidean distance between two particles.
func Distance(a, b *Particle) float64 {
	return r2.Norm(r2.Sub(a.Pos, b.Pos))
}
