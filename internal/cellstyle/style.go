// Package cellstyle defines the terminal cell/style data model and serializes
// styled cells to SGR + UTF-8 escape sequences.
package cellstyle

// UnderlineStyle enumerates the underline variants a cell can carry.
type UnderlineStyle int

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// ColorKind selects how a Color value should be interpreted.
type ColorKind int

const (
	ColorNone ColorKind = iota
	ColorPalette
	ColorRGB
)

// Color is either unset, a 0-255 palette index, or a 24-bit RGB triple.
type Color struct {
	Kind    ColorKind
	Palette uint8
	R, G, B uint8
}

// Palette constructs a palette-indexed Color (0-255).
func Palette(idx uint8) Color {
	return Color{Kind: ColorPalette, Palette: idx}
}

// RGB constructs a 24-bit truecolor Color.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// Style carries every SGR-expressible attribute for a single cell. It is a
// plain comparable struct so two Styles can be compared with ==, which the
// row renderer relies on to detect transitions between consecutive cells.
type Style struct {
	Bold          bool
	Faint         bool
	Italic        bool
	Underline     UnderlineStyle
	Blink         bool
	Inverse       bool
	Invisible     bool
	Strikethrough bool
	FG            Color
	BG            Color
}

// IsZero reports whether s carries no attributes at all (the default style).
func (s Style) IsZero() bool {
	return s == Style{}
}

// Cell is a single grid position: a Unicode codepoint (0 = blank) and a style.
type Cell struct {
	Rune  rune
	Style Style
}
