// Package window implements floating and main windows: geometry, optional
// border and title, and composition into a single output frame.
package window

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"tzig/internal/cellstyle"
	"tzig/internal/ptyhandle"
	"tzig/internal/screenmodel"
)

const titleBufCap = 256

// Window is a rectangular region of the host terminal, optionally bordered
// and optionally backed by its own PTY-driven shell.
type Window struct {
	X, Y, W, H   int
	HasBorder    bool
	DefaultTitle string
	Visible      bool

	Model *screenmodel.Model
	PTY   *ptyhandle.Handle

	dynTitle []byte
	osc      oscScanner
}

// NewMain builds the process-level main window: no border, no owned PTY,
// sized to the full host terminal as captured at init.
func NewMain(cols, rows int) *Window {
	return &Window{
		W: cols, H: rows,
		Visible: true,
		Model:   screenmodel.New(cols, rows),
	}
}

// NewFloating builds a bordered floating window backed by its own PTY. w
// and h are the window's outer dimensions, including the border.
func NewFloating(x, y, w, h int, title string, pty *ptyhandle.Handle) *Window {
	cw, ch := contentSize(true, w, h)
	return &Window{
		X: x, Y: y, W: w, H: h,
		HasBorder:    true,
		DefaultTitle: title,
		Model:        screenmodel.New(cw, ch),
		PTY:          pty,
	}
}

func contentSize(hasBorder bool, w, h int) (cw, ch int) {
	if !hasBorder {
		return w, h
	}
	cw, ch = w-2, h-2
	if cw < 1 {
		cw = 1
	}
	if ch < 1 {
		ch = 1
	}
	return cw, ch
}

// Title returns the dynamic title if one has been set via OSC, else the
// window's default title.
func (w *Window) Title() string {
	if len(w.dynTitle) == 0 {
		return w.DefaultTitle
	}
	return string(w.dynTitle)
}

// ParseOSC scans a chunk of raw PTY output for an OSC 0/2 title sequence,
// updating the dynamic title as sequences complete. Partial sequences are
// remembered across calls; unterminated or malformed sequences are silently
// dropped rather than applied.
func (w *Window) ParseOSC(data []byte) {
	for _, b := range data {
		if title, ok := w.osc.feed(b); ok {
			if len(title) > titleBufCap {
				title = title[:titleBufCap]
			}
			w.dynTitle = []byte(title)
		}
	}
}

// Render draws the window into buf: border first (if any), then content.
// A hidden window renders nothing.
func (w *Window) Render(buf *strings.Builder) {
	if !w.Visible {
		return
	}
	if w.HasBorder {
		w.renderBorder(buf)
	}
	w.renderContent(buf)
}

func (w *Window) renderBorder(buf *strings.Builder) {
	top := borderRow('╭', '╮', w.W, w.Title())
	writeAt(buf, w.X+1, w.Y+1, top)

	side := "│"
	for i := 1; i < w.H-1; i++ {
		writeAt(buf, w.X+1, w.Y+1+i, side)
		writeAt(buf, w.X+w.W, w.Y+1+i, side)
	}

	bottom := borderRow('╰', '╯', w.W, "")
	writeAt(buf, w.X+1, w.Y+w.H, bottom)
}

// borderRow builds one full-width border row: left corner, a fill of ─ with
// title centered (top row only; bottom passes an empty title), right corner.
func borderRow(left, right rune, w int, title string) string {
	inner := w - 2
	if inner < 0 {
		inner = 0
	}
	maxTitle := w - 4
	if maxTitle < 0 {
		maxTitle = 0
	}
	trimmed := truncateToWidth(title, maxTitle)
	titleLen := runewidth.StringWidth(trimmed)

	var segment string
	if titleLen == 0 {
		segment = strings.Repeat("─", inner)
	} else {
		remainder := inner - titleLen - 2
		if remainder < 0 {
			remainder = 0
		}
		padBefore := remainder / 2
		padAfter := remainder - padBefore
		segment = strings.Repeat("─", padBefore) + " " + trimmed + " " + strings.Repeat("─", padAfter)
	}

	var b strings.Builder
	b.WriteRune(left)
	b.WriteString(segment)
	b.WriteRune(right)
	return b.String()
}

func truncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	var b strings.Builder
	width := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if width+rw > maxWidth {
			break
		}
		b.WriteRune(r)
		width += rw
	}
	return b.String()
}

func (w *Window) renderContent(buf *strings.Builder) {
	cx, cy := w.X, w.Y
	if w.HasBorder {
		cx, cy = cx+1, cy+1
	}
	cw, ch := contentSize(w.HasBorder, w.W, w.H)

	for row := 0; row < ch; row++ {
		writeAt(buf, cx+1, cy+1+row, "")
		cells := w.Model.Row(row)
		if len(cells) > cw {
			cells = cells[:cw]
		}
		cellstyle.RenderRow(buf, cells, cw)
	}
}

func writeAt(buf *strings.Builder, x, y int, s string) {
	fmt.Fprintf(buf, "\x1b[%d;%dH", y, x)
	buf.WriteString(s)
}

// CursorAbs returns the absolute 1-indexed host position of this window's
// bound model cursor, per the rule in the overlay's per-frame cursor
// placement.
func (w *Window) CursorAbs() (absX, absY int) {
	border := 0
	if w.HasBorder {
		border = 1
	}
	cx, cy, _ := w.Model.Cursor()
	return w.X + border + cx + 1, w.Y + border + cy + 1
}
