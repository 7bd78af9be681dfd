package nebula

import "gonum.org/v1/gonum/spatial/r2"

// Advance moves every regular particle by its velocity, then drops those that
// ended up beyond the buffered area. The pointer is neither moved nor dropped.
// It returns the number of particles removed.
func (f *Field) Advance() int {
	for i := range f.Particles {
		p := &f.Particles[i]
		switch p.Kind {
		case KindRegular:
			p.Pos = r2.Add(p.Pos, p.Vel)
		case KindPointer:
			// Position is driven by input
		}
	}

	kept := make([]Particle, 0, cap(f.Particles))
	for i := range f.Particles {
		p := &f.Particles[i]
		switch p.Kind {
		case KindRegular:
			if !f.inBounds(p) {
				continue
			}
		case KindPointer:
		}
		kept = append(kept, *p)
	}

	culled := len(f.Particles) - len(kept)
	f.Particles = kept
	return culled
}
