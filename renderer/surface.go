// Package renderer draws the field onto raylib, terminal or recording surfaces.
package renderer

import "image/color"

// Surface is an immediate-mode 2D drawing target in field pixel space.
// Colors are straight (non-premultiplied) RGBA; A carries the opacity.
type Surface interface {
	Clear(bg color.RGBA)
	FillCircle(x, y, r float64, c color.RGBA)
	StrokeLine(x1, y1, x2, y2, width float64, c color.RGBA)
}

// withAlpha returns c with its alpha replaced by a in [0,1].
func withAlpha(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = uint8(a*255 + 0.5)
	return c
}
