package renderer

import "image/color"

// OpKind identifies a recorded drawing call.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpCircle
	OpLine
)

// Op is one recorded drawing call.
type Op struct {
	Kind   OpKind
	X1, Y1 float64
	X2, Y2 float64 // Line end
	Size   float64 // Circle radius or line width
	Color  color.RGBA
}

// Recorder is a Surface that keeps every call, for tests and headless checks.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Clear(bg color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Color: bg})
}

func (r *Recorder) FillCircle(x, y, radius float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X1: x, Y1: y, Size: radius, Color: c})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2, width float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Size: width, Color: c})
}

// Count returns the number of recorded calls of the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
