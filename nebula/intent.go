package nebula

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// IntentKind identifies a queued input event.
type IntentKind uint8

const (
	IntentResize IntentKind = iota
	IntentPointerEnter
	IntentPointerLeave
	IntentPointerMove
)

func (k IntentKind) String() string {
	switch k {
	case IntentResize:
		return "resize"
	case IntentPointerEnter:
		return "pointer_enter"
	case IntentPointerLeave:
		return "pointer_leave"
	case IntentPointerMove:
		return "pointer_move"
	}
	return fmt.Sprintf("intent(%d)", uint8(k))
}

// Intent is an input event waiting to be applied at the start of a frame.
// X and Y carry the new size for IntentResize and the surface-relative
// position for IntentPointerMove.
type Intent struct {
	Kind IntentKind
	X, Y float64
}

// Resize requests new surface dimensions.
func Resize(width, height float64) Intent {
	return Intent{Kind: IntentResize, X: width, Y: height}
}

// PointerEnter requests the pointer particle be placed in the field.
func PointerEnter() Intent {
	return Intent{Kind: IntentPointerEnter}
}

// PointerLeave requests the pointer particle be removed.
func PointerLeave() Intent {
	return Intent{Kind: IntentPointerLeave}
}

// PointerMove requests the pointer position be updated.
func PointerMove(x, y float64) Intent {
	return Intent{Kind: IntentPointerMove, X: x, Y: y}
}

// Enqueue stores an intent until the next ApplyIntents.
func (f *Field) Enqueue(in Intent) {
	f.intents = append(f.intents, in)
}

// Pending returns the number of queued intents.
func (f *Field) Pending() int {
	return len(f.intents)
}

// ApplyIntents applies queued intents in arrival order and clears the queue.
// It returns the number applied.
func (f *Field) ApplyIntents() int {
	n := len(f.intents)
	for _, in := range f.intents {
		f.apply(in)
	}
	f.intents = f.intents[:0]
	return n
}

func (f *Field) apply(in Intent) {
	switch in.Kind {
	case IntentResize:
		f.Width = max(in.X, 0)
		f.Height = max(in.Y, 0)
	case IntentPointerEnter:
		if p := f.Pointer(); p != nil {
			p.Pos = f.pointer
			return
		}
		f.Particles = append(f.Particles, Particle{Pos: f.pointer, Kind: KindPointer})
	case IntentPointerLeave:
		f.removePointer()
	case IntentPointerMove:
		f.pointer = r2.Vec{X: in.X, Y: in.Y}
		if p := f.Pointer(); p != nil {
			p.Pos = f.pointer
		}
	}
}

func (f *Field) removePointer() {
	kept := make([]Particle, 0, cap(f.Particles))
	for _, p := range f.Particles {
		if p.Kind == KindPointer {
			continue
		}
		kept = append(kept, p)
	}
	f.Particles = kept
}

// LastPointer returns the last position reported by a pointer move, whether or
// not the pointer is inside.
func (f *Field) LastPointer() r2.Vec {
	return f.pointer
}

// SetLastPointer sets the position a later pointer enter will use. It does not
// add or move a pointer particle.
func (f *Field) SetLastPointer(pos r2.Vec) {
	f.pointer = pos
}
