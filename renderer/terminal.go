package renderer

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

const (
	ballRune = '●'
)

// linkRunes are picked by link opacity, faintest first.
var linkRunes = []rune{'·', ':', '+'}

type termCell struct {
	ball  bool
	level float64 // Strongest alpha written to this cell this frame
	c     color.RGBA
}

// TerminalSurface rasterises the field onto a tcell screen. Each cell stands
// for CellWidth x CellHeight field pixels. Drawing goes to an off-screen buffer
// that Present copies to the screen.
type TerminalSurface struct {
	screen     tcell.Screen
	cellW      float64
	cellH      float64
	cols, rows int
	cells      []termCell
	background color.RGBA
}

// NewTerminalSurface creates a surface on an initialised screen.
func NewTerminalSurface(screen tcell.Screen, cellW, cellH float64) *TerminalSurface {
	s := &TerminalSurface{screen: screen, cellW: cellW, cellH: cellH}
	s.syncSize()
	return s
}

// FieldSize returns the screen extent in field pixels.
func (s *TerminalSurface) FieldSize() (float64, float64) {
	cols, rows := s.screen.Size()
	return float64(cols) * s.cellW, float64(rows) * s.cellH
}

// CellToField converts a cell coordinate to the field pixel at its centre.
func (s *TerminalSurface) CellToField(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

func (s *TerminalSurface) syncSize() {
	cols, rows := s.screen.Size()
	if cols != s.cols || rows != s.rows || s.cells == nil {
		s.cols, s.rows = cols, rows
		s.cells = make([]termCell, cols*rows)
	}
}

func (s *TerminalSurface) Clear(bg color.RGBA) {
	s.syncSize()
	for i := range s.cells {
		s.cells[i] = termCell{}
	}
	s.background = bg
}

func (s *TerminalSurface) FillCircle(x, y, _ float64, c color.RGBA) {
	col, row := s.toCell(x, y)
	cell := s.at(col, row)
	if cell == nil {
		return
	}
	cell.ball = true
	cell.level = float64(c.A) / 255
	cell.c = c
}

func (s *TerminalSurface) StrokeLine(x1, y1, x2, y2, _ float64, c color.RGBA) {
	level := float64(c.A) / 255
	if level <= 0 {
		return
	}
	c0, r0 := s.toCell(x1, y1)
	c1, r1 := s.toCell(x2, y2)

	// Bresenham over cells
	dx := abs(c1 - c0)
	dy := -abs(r1 - r0)
	sx, sy := 1, 1
	if c0 > c1 {
		sx = -1
	}
	if r0 > r1 {
		sy = -1
	}
	e := dx + dy
	for {
		if cell := s.at(c0, r0); cell != nil && !cell.ball && level > cell.level {
			cell.level = level
			cell.c = c
		}
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			c0 += sx
		}
		if e2 <= dx {
			e += dx
			r0 += sy
		}
	}
}

// Present copies the buffer to the screen and shows it.
func (s *TerminalSurface) Present() {
	bg := tcell.NewRGBColor(int32(s.background.R), int32(s.background.G), int32(s.background.B))
	base := tcell.StyleDefault.Background(bg)

	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			cell := &s.cells[row*s.cols+col]
			switch {
			case cell.ball:
				s.screen.SetContent(col, row, ballRune, nil, base.Foreground(s.blend(cell.c, cell.level)))
			case cell.level > 0:
				s.screen.SetContent(col, row, linkRune(cell.level), nil, base.Foreground(s.blend(cell.c, cell.level)))
			default:
				s.screen.SetContent(col, row, ' ', nil, base)
			}
		}
	}
	s.screen.Show()
}

// blend mixes c over the background by alpha, since terminals have no opacity.
func (s *TerminalSurface) blend(c color.RGBA, alpha float64) tcell.Color {
	mix := func(fg, bg uint8) int32 {
		return int32(math.Round(float64(bg) + (float64(fg)-float64(bg))*alpha))
	}
	return tcell.NewRGBColor(mix(c.R, s.background.R), mix(c.G, s.background.G), mix(c.B, s.background.B))
}

func (s *TerminalSurface) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / s.cellW)), int(math.Floor(y / s.cellH))
}

func (s *TerminalSurface) at(col, row int) *termCell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return nil
	}
	return &s.cells[row*s.cols+col]
}

func linkRune(level float64) rune {
	i := int(level * float64(len(linkRunes)))
	if i >= len(linkRunes) {
		i = len(linkRunes) - 1
	}
	return linkRunes[i]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
