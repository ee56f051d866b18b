package cellstyle

import (
	"fmt"
	"strings"
)

// SGR renders s as a single SGR escape sequence ("\x1b[...m"). A zero Style
// produces the empty string: callers that need an explicit reset use the
// literal "\x1b[0m" rather than relying on SGR of the zero value.
func SGR(s Style) string {
	codes := sgrCodes(s)
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func sgrCodes(s Style) []string {
	var codes []string
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Faint {
		codes = append(codes, "2")
	}
	if s.Italic {
		codes = append(codes, "3")
	}
	switch s.Underline {
	case UnderlineSingle:
		codes = append(codes, "4")
	case UnderlineDouble:
		codes = append(codes, "4:2")
	case UnderlineCurly:
		codes = append(codes, "4:3")
	case UnderlineDotted:
		codes = append(codes, "4:4")
	case UnderlineDashed:
		codes = append(codes, "4:5")
	}
	if s.Blink {
		codes = append(codes, "5")
	}
	if s.Inverse {
		codes = append(codes, "7")
	}
	if s.Invisible {
		codes = append(codes, "8")
	}
	if s.Strikethrough {
		codes = append(codes, "9")
	}
	if c := colorCode(s.FG, true); c != "" {
		codes = append(codes, c)
	}
	if c := colorCode(s.BG, false); c != "" {
		codes = append(codes, c)
	}
	return codes
}

func colorCode(c Color, fg bool) string {
	switch c.Kind {
	case ColorNone:
		return ""
	case ColorPalette:
		n := int(c.Palette)
		switch {
		case n < 8:
			if fg {
				return fmt.Sprintf("3%d", n)
			}
			return fmt.Sprintf("4%d", n)
		case n < 16:
			if fg {
				return fmt.Sprintf("9%d", n-8)
			}
			return fmt.Sprintf("10%d", n-8)
		default:
			if fg {
				return fmt.Sprintf("38;5;%d", n)
			}
			return fmt.Sprintf("48;5;%d", n)
		}
	case ColorRGB:
		if fg {
			return fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B)
		}
		return fmt.Sprintf("48;2;%d;%d;%d", c.R, c.G, c.B)
	default:
		return ""
	}
}

// RenderRow writes cells as a styled line, emitting a style transition only
// when consecutive cells' styles differ (reset first, then the new style's
// SGR if non-zero), followed by each cell's rune. It always resets at the end
// of the row before padding the remainder of width with plain spaces, so
// padding never inherits the row's trailing style.
func RenderRow(buf *strings.Builder, cells []Cell, width int) {
	var last Style
	first := true
	for _, c := range cells {
		if first || c.Style != last {
			buf.WriteString("\x1b[0m")
			if seq := SGR(c.Style); seq != "" {
				buf.WriteString(seq)
			}
			last = c.Style
			first = false
		}
		r := c.Rune
		if r == 0 {
			r = ' '
		}
		buf.WriteRune(r)
	}
	buf.WriteString("\x1b[0m")
	for i := len(cells); i < width; i++ {
		buf.WriteByte(' ')
	}
}
