package cellstyle

import (
	"strings"
	"testing"
)

func TestSGR(t *testing.T) {
	cases := []struct {
		name string
		s    Style
		want string
	}{
		{"zero", Style{}, ""},
		{"bold", Style{Bold: true}, "\x1b[1m"},
		{"fg-low-palette", Style{FG: Palette(1)}, "\x1b[31m"},
		{"bg-low-palette", Style{BG: Palette(1)}, "\x1b[41m"},
		{"fg-bright-palette", Style{FG: Palette(9)}, "\x1b[91m"},
		{"bg-bright-palette", Style{BG: Palette(9)}, "\x1b[101m"},
		{"fg-256", Style{FG: Palette(200)}, "\x1b[38;5;200m"},
		{"bg-256", Style{BG: Palette(200)}, "\x1b[48;5;200m"},
		{"fg-rgb", Style{FG: RGB(10, 20, 30)}, "\x1b[38;2;10;20;30m"},
		{"bg-rgb", Style{BG: RGB(10, 20, 30)}, "\x1b[48;2;10;20;30m"},
		{"underline-curly", Style{Underline: UnderlineCurly}, "\x1b[4:3m"},
		{"bold-red-on-default", Style{Bold: true, FG: Palette(1)}, "\x1b[1;31m"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SGR(c.s); got != c.want {
				t.Errorf("SGR(%+v) = %q, want %q", c.s, got, c.want)
			}
		})
	}
}

func TestRenderRowStyleTransitions(t *testing.T) {
	cells := []Cell{
		{Rune: 'x', Style: Style{Bold: true, FG: Palette(1)}},
		{Rune: 'y', Style: Style{}},
	}
	var buf strings.Builder
	RenderRow(&buf, cells, 4)
	want := "\x1b[0m\x1b[1;31mx\x1b[0my\x1b[0m  "
	if got := buf.String(); got != want {
		t.Errorf("RenderRow = %q, want %q", got, want)
	}
}

func TestRenderRowSameStyleNoRetransition(t *testing.T) {
	s := Style{Italic: true}
	cells := []Cell{{Rune: 'a', Style: s}, {Rune: 'b', Style: s}}
	var buf strings.Builder
	RenderRow(&buf, cells, 2)
	want := "\x1b[0m\x1b[3mab\x1b[0m"
	if got := buf.String(); got != want {
		t.Errorf("RenderRow = %q, want %q", got, want)
	}
}

func TestRenderRowPaddingUsesPlainSpaces(t *testing.T) {
	cells := []Cell{{Rune: 'z', Style: Style{Inverse: true}}}
	var buf strings.Builder
	RenderRow(&buf, cells, 5)
	want := "\x1b[0m\x1b[7mz\x1b[0m    "
	if got := buf.String(); got != want {
		t.Errorf("RenderRow = %q, want %q", got, want)
	}
}
