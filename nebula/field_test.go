package nebula

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func testParams() Params {
	return Params{
		Size:              50,
		BufferZone:        50,
		Radius:            1.5,
		Alpha:             1,
		MinVelocity:       -1,
		MaxVelocity:       1,
		MinInwardVelocity: 0.1,
		LinkDistance:      250,
	}
}

func newTestField() *Field {
	return NewField(800, 450, testParams(), rand.New(rand.NewSource(42)))
}

func regular(x, y, vx, vy float64) Particle {
	return Particle{
		Pos:    r2.Vec{X: x, Y: y},
		Vel:    r2.Vec{X: vx, Y: vy},
		Radius: 1.5,
		Alpha:  1,
		Kind:   KindRegular,
	}
}

func TestAdvanceIntegratesVelocity(t *testing.T) {
	f := newTestField()
	for i := 0; i < 20; i++ {
		f.Spawn()
	}
	f.Enqueue(PointerMove(300, 200))
	f.Enqueue(PointerEnter())
	f.ApplyIntents()

	before := make([]Particle, len(f.Particles))
	copy(before, f.Particles)

	f.Advance()

	if len(f.Particles) != len(before) {
		t.Fatalf("freshly spawned particles should survive one step, got %d of %d", len(f.Particles), len(before))
	}
	for i, p := range f.Particles {
		prev := before[i]
		switch p.Kind {
		case KindRegular:
			want := r2.Add(prev.Pos, prev.Vel)
			if math.Abs(p.Pos.X-want.X) > 1e-9 || math.Abs(p.Pos.Y-want.Y) > 1e-9 {
				t.Errorf("particle %d at %v, want %v", i, p.Pos, want)
			}
		case KindPointer:
			if p.Pos != prev.Pos {
				t.Errorf("pointer moved by integration: %v -> %v", prev.Pos, p.Pos)
			}
		}
	}
}

func TestAdvanceCullBoundary(t *testing.T) {
	tests := []struct {
		name string
		p    Particle
		keep bool
	}{
		{"on buffered right edge", regular(849, 100, 1, 0), true},
		{"beyond buffered right edge", regular(851, 100, 1, 0), false},
		{"on buffered left edge", regular(-49, 100, -1, 0), true},
		{"beyond buffered left edge", regular(-52, 100, 1, 0), false},
		{"on buffered bottom edge", regular(100, 499, 0, 1), true},
		{"beyond buffered bottom edge", regular(100, 501, 0, 0), false},
		{"beyond buffered top edge", regular(100, -49.5, 0, -1), false},
		{"inside", regular(400, 225, 0.5, -0.5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField()
			f.Particles = append(f.Particles, tt.p)
			culled := f.Advance()

			kept := f.Len() == 1
			if kept != tt.keep {
				t.Errorf("kept = %v, want %v (pos after step %v)", kept, tt.keep, r2.Add(tt.p.Pos, tt.p.Vel))
			}
			if tt.keep && culled != 0 || !tt.keep && culled != 1 {
				t.Errorf("culled = %d", culled)
			}
		})
	}
}

// Field 800x450 with buffer 50: x=850 is kept, x=852 is removed.
func TestAdvanceScenarioWidthPlusBuffer(t *testing.T) {
	f := newTestField()
	f.Particles = append(f.Particles,
		regular(850, 100, 0, 0),
		regular(852, 200, 0, 0),
	)

	f.Advance()

	if f.Len() != 1 {
		t.Fatalf("expected 1 particle, got %d", f.Len())
	}
	if f.Particles[0].Pos.X != 850 {
		t.Errorf("kept particle at x=%v, want 850", f.Particles[0].Pos.X)
	}
}

func TestAdvanceNeverCullsPointer(t *testing.T) {
	f := newTestField()
	f.Enqueue(PointerMove(5000, -5000))
	f.Enqueue(PointerEnter())
	f.ApplyIntents()

	f.Advance()

	if f.PointerCount() != 1 {
		t.Errorf("pointer count = %d, want 1", f.PointerCount())
	}
}

func TestAdvancePreservesOrder(t *testing.T) {
	f := newTestField()
	f.Particles = append(f.Particles,
		regular(10, 10, 0, 0),
		regular(2000, 10, 0, 0),
		regular(20, 10, 0, 0),
		regular(30, 10, 0, 0),
	)

	f.Advance()

	want := []float64{10, 20, 30}
	if f.Len() != len(want) {
		t.Fatalf("len = %d, want %d", f.Len(), len(want))
	}
	for i, x := range want {
		if f.Particles[i].Pos.X != x {
			t.Errorf("particle %d x = %v, want %v", i, f.Particles[i].Pos.X, x)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindRegular.String() != "regular" || KindPointer.String() != "pointer" {
		t.Errorf("unexpected kind names %q %q", KindRegular, KindPointer)
	}
}
