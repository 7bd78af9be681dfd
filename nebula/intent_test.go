package nebula

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestPointerEnterLeave(t *testing.T) {
	tests := []struct {
		name    string
		intents []Intent
		want    int
	}{
		{"enter", []Intent{PointerEnter()}, 1},
		{"enter then leave", []Intent{PointerEnter(), PointerLeave()}, 0},
		{"enter twice", []Intent{PointerEnter(), PointerEnter()}, 1},
		{"leave without enter", []Intent{PointerLeave()}, 0},
		{"move only", []Intent{PointerMove(10, 10)}, 0},
		{"enter leave enter", []Intent{PointerEnter(), PointerLeave(), PointerEnter()}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField()
			f.Particles = append(f.Particles, regular(10, 10, 0, 0), regular(20, 20, 0, 0))
			for _, in := range tt.intents {
				f.Enqueue(in)
			}
			applied := f.ApplyIntents()

			if applied != len(tt.intents) {
				t.Errorf("applied = %d, want %d", applied, len(tt.intents))
			}
			if f.PointerCount() != tt.want {
				t.Errorf("pointer count = %d, want %d", f.PointerCount(), tt.want)
			}
			if f.RegularCount() != 2 {
				t.Errorf("regular count = %d, want 2", f.RegularCount())
			}
			if f.Pending() != 0 {
				t.Errorf("pending = %d after apply", f.Pending())
			}
		})
	}
}

func TestPointerMoveTracksPosition(t *testing.T) {
	f := newTestField()
	f.Enqueue(PointerMove(40, 60))
	f.Enqueue(PointerEnter())
	f.ApplyIntents()

	p := f.Pointer()
	if p == nil {
		t.Fatal("expected pointer particle")
	}
	if p.Pos.X != 40 || p.Pos.Y != 60 {
		t.Errorf("pointer at %v, want (40, 60)", p.Pos)
	}

	f.Enqueue(PointerMove(90, 10))
	f.ApplyIntents()

	p = f.Pointer()
	if p.Pos.X != 90 || p.Pos.Y != 10 {
		t.Errorf("pointer at %v, want (90, 10)", p.Pos)
	}
	if p.Vel.X != 0 || p.Vel.Y != 0 {
		t.Errorf("pointer velocity = %v, want zero", p.Vel)
	}
}

// The last position survives a leave, so a re-enter starts where the pointer left.
func TestPointerReenterKeepsLastPosition(t *testing.T) {
	f := newTestField()
	f.Enqueue(PointerEnter())
	f.Enqueue(PointerMove(120, 80))
	f.Enqueue(PointerLeave())
	f.Enqueue(PointerEnter())
	f.ApplyIntents()

	p := f.Pointer()
	if p == nil {
		t.Fatal("expected pointer particle")
	}
	if p.Pos.X != 120 || p.Pos.Y != 80 {
		t.Errorf("pointer at %v, want (120, 80)", p.Pos)
	}
}

func TestIntentsWaitForApply(t *testing.T) {
	f := newTestField()
	f.Enqueue(PointerEnter())
	f.Enqueue(Resize(1024, 450))

	if f.PointerCount() != 0 || f.Width != 800 {
		t.Fatal("intents must not take effect before ApplyIntents")
	}
	if f.Pending() != 2 {
		t.Errorf("pending = %d, want 2", f.Pending())
	}

	f.ApplyIntents()

	if f.PointerCount() != 1 || f.Width != 1024 {
		t.Errorf("after apply: pointers %d width %v", f.PointerCount(), f.Width)
	}
}

func TestResize(t *testing.T) {
	f := newTestField()
	f.Enqueue(Resize(640, 300))
	f.ApplyIntents()
	if f.Width != 640 || f.Height != 300 {
		t.Errorf("size = %vx%v, want 640x300", f.Width, f.Height)
	}

	f.Enqueue(Resize(-5, 300))
	f.ApplyIntents()
	if f.Width != 0 {
		t.Errorf("width = %v, want clamp to 0", f.Width)
	}
}

func TestIntentKindString(t *testing.T) {
	if IntentPointerMove.String() != "pointer_move" {
		t.Errorf("got %q", IntentPointerMove.String())
	}
	if IntentKind(99).String() != "intent(99)" {
		t.Errorf("got %q", IntentKind(99).String())
	}
}

func TestSetLastPointerUsedOnEnter(t *testing.T) {
	f := newTestField()
	f.SetLastPointer(r2.Vec{X: 33, Y: 44})

	if f.PointerCount() != 0 {
		t.Fatalf("SetLastPointer added a pointer particle")
	}
	if got := f.LastPointer(); got != (r2.Vec{X: 33, Y: 44}) {
		t.Errorf("LastPointer = %v, want (33,44)", got)
	}

	f.Enqueue(PointerEnter())
	f.ApplyIntents()
	if p := f.Pointer(); p == nil || p.Pos != (r2.Vec{X: 33, Y: 44}) {
		t.Errorf("pointer after enter = %+v, want at (33,44)", p)
	}
}
