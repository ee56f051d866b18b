// Package screenmodel maintains an in-memory parsed screen for a PTY's
// output stream. It wraps github.com/hinshun/vt10x, which parses the VT
// byte stream and tracks cells/cursor, and exposes a decomposed per-cell
// (rune, style) view so callers never touch raw SGR text.
package screenmodel

import (
	"sync"

	"github.com/hinshun/vt10x"

	"tzig/internal/cellstyle"
)

const (
	attrReverse   = 1 << 0
	attrUnderline = 1 << 1
	attrBold      = 1 << 2
	attrItalic    = 1 << 4
	attrBlink     = 1 << 5
)

// Model is a fixed-size parsed screen. Its dimensions never change after
// construction: it has no resize operation and is never reflowed in place.
type Model struct {
	mu   sync.Mutex
	vt   vt10x.Terminal
	cols int
	rows int
}

// New creates a Model of the given size. cols and rows must both be >= 1.
func New(cols, rows int) *Model {
	return &Model{
		vt:   vt10x.New(vt10x.WithSize(cols, rows)),
		cols: cols,
		rows: rows,
	}
}

// Feed parses p, a chunk of raw PTY output, advancing the model's state.
func (m *Model) Feed(p []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, _ = m.vt.Write(p)
}

// Size returns the model's fixed column/row count.
func (m *Model) Size() (cols, rows int) {
	return m.cols, m.rows
}

// Cursor returns the current cursor column and row, 0-indexed, and whether
// the cursor is currently hidden (DECTCEM reset).
func (m *Model) Cursor() (x, y int, hidden bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.vt.Cursor()
	return c.X, c.Y, !m.vt.CursorVisible()
}

// Row returns the cols cells of row y translated into cellstyle.Cells. y
// must be in [0, rows).
func (m *Model) Row(y int) []cellstyle.Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]cellstyle.Cell, m.cols)
	for x := 0; x < m.cols; x++ {
		out[x] = translate(m.vt.Cell(x, y))
	}
	return out
}

func translate(c vt10x.Glyph) cellstyle.Cell {
	fg, bg := c.FG, c.BG

	// vt10x swaps FG/BG for reverse cells and promotes 0-7 to bright 8-15
	// under bold; undo both so the cell carries its true logical colors and
	// the SGR serializer can express the reverse/bold bits natively.
	if c.Mode&attrReverse != 0 {
		fg, bg = bg, fg
	}
	if c.Mode&attrBold != 0 && fg >= 8 && fg < 16 {
		fg -= 8
	}

	s := cellstyle.Style{
		Bold:   c.Mode&attrBold != 0,
		Italic: c.Mode&attrItalic != 0,
		Blink:  c.Mode&attrBlink != 0,
		Inverse: c.Mode&attrReverse != 0,
	}
	if c.Mode&attrUnderline != 0 {
		s.Underline = cellstyle.UnderlineSingle
	}
	if fg != vt10x.DefaultFG {
		s.FG = vtColor(fg)
	}
	if bg != vt10x.DefaultBG {
		s.BG = vtColor(bg)
	}

	ch := c.Char
	if ch == 0 {
		ch = ' '
	}
	return cellstyle.Cell{Rune: ch, Style: s}
}

func vtColor(c vt10x.Color) cellstyle.Color {
	if c >= vt10x.DefaultFG {
		return cellstyle.Color{}
	}
	if c < 256 {
		return cellstyle.Palette(uint8(c))
	}
	r := uint8((int(c) >> 16) & 0xFF)
	g := uint8((int(c) >> 8) & 0xFF)
	b := uint8(int(c) & 0xFF)
	return cellstyle.RGB(r, g, b)
}
