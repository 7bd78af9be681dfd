package nebula

// LinkStats summarises one pass of the pairwise linker.
type LinkStats struct {
	Count    int     // Pairs within the link distance, including fully transparent ones
	AlphaSum float64 // Sum of link alphas
}

// MeanAlpha returns the average link opacity, or 0 without links.
func (s LinkStats) MeanAlpha() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.AlphaSum / float64(s.Count)
}

// LinkAlpha returns the opacity of a link between two particles distance apart.
// ok is false beyond maxDistance. At exactly maxDistance the link exists with
// alpha 0.
func LinkAlpha(distance, maxDistance float64) (alpha float64, ok bool) {
	if distance > maxDistance {
		return 0, false
	}
	alpha = 1 - distance/maxDistance
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return alpha, true
}

// VisitLinks calls fn for every unordered pair of particles within the link
// distance. The pointer particle is linked like any other. fn may be nil.
func (f *Field) VisitLinks(fn func(a, b *Particle, distance, alpha float64)) LinkStats {
	var stats LinkStats
	n := len(f.Particles)
	for i := 0; i < n; i++ {
		a := &f.Particles[i]
		for j := i + 1; j < n; j++ {
			b := &f.Particles[j]
			d := Distance(a, b)
			alpha, ok := LinkAlpha(d, f.params.LinkDistance)
			if !ok {
				continue
			}
			stats.Count++
			stats.AlphaSum += alpha
			if fn != nil {
				fn(a, b, d, alpha)
			}
		}
	}
	return stats
}
