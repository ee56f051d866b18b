package window

import (
	"strings"
	"testing"
)

func TestBorderRowGeometry(t *testing.T) {
	// w=20, h=5, title "ABC": inner=18, title visible len 3, two flanking
	// spaces reserved, remainder = 18-3-2 = 13, padBefore=6, padAfter=7.
	top := borderRow('╭', '╮', 20, "ABC")
	want := "╭" + strings.Repeat("─", 6) + " ABC " + strings.Repeat("─", 7) + "╮"
	if top != want {
		t.Fatalf("borderRow = %q, want %q", top, want)
	}
	if w := runeCount(top); w != 20 {
		t.Fatalf("top row cell count = %d, want 20", w)
	}
}

func TestBorderRowNoTitle(t *testing.T) {
	bottom := borderRow('╰', '╯', 20, "")
	want := "╰" + strings.Repeat("─", 18) + "╯"
	if bottom != want {
		t.Fatalf("borderRow = %q, want %q", bottom, want)
	}
}

func TestBorderRowMinimumSize(t *testing.T) {
	// w=4: inner=2, maxTitle=0, title always dropped regardless of content.
	top := borderRow('╭', '╮', 4, "hello")
	want := "╭──╮"
	if top != want {
		t.Fatalf("borderRow = %q, want %q", top, want)
	}
}

func TestContentSize(t *testing.T) {
	cw, ch := contentSize(true, 20, 5)
	if cw != 18 || ch != 3 {
		t.Fatalf("contentSize = (%d,%d), want (18,3)", cw, ch)
	}
	cw, ch = contentSize(false, 20, 5)
	if cw != 20 || ch != 5 {
		t.Fatalf("contentSize(no border) = (%d,%d), want (20,5)", cw, ch)
	}
}

func TestParseOSCTitleWholeSequence(t *testing.T) {
	w := NewFloating(0, 0, 10, 5, "default", nil)
	w.ParseOSC([]byte("\x1b]0;hi\x07"))
	if got := w.Title(); got != "hi" {
		t.Fatalf("Title() = %q, want %q", got, "hi")
	}
}

func TestParseOSCTitleSplitAcrossCalls(t *testing.T) {
	w := NewFloating(0, 0, 10, 5, "default", nil)
	w.ParseOSC([]byte("\x1b]2;hel"))
	w.ParseOSC([]byte("lo\x1b\\"))
	if got := w.Title(); got != "hello" {
		t.Fatalf("Title() = %q, want %q", got, "hello")
	}
}

func TestParseOSCUnterminatedDropped(t *testing.T) {
	w := NewFloating(0, 0, 10, 5, "default", nil)
	w.ParseOSC([]byte("\x1b]0;nope"))
	if got := w.Title(); got != "default" {
		t.Fatalf("Title() = %q, want fallback %q", got, "default")
	}
}

func TestParseOSCMalformedKindDropped(t *testing.T) {
	w := NewFloating(0, 0, 10, 5, "default", nil)
	w.ParseOSC([]byte("\x1b]9;nope\x07"))
	if got := w.Title(); got != "default" {
		t.Fatalf("Title() = %q, want fallback %q", got, "default")
	}
}

func TestTitleFallsBackToDefault(t *testing.T) {
	w := NewFloating(0, 0, 10, 5, "default", nil)
	if got := w.Title(); got != "default" {
		t.Fatalf("Title() = %q, want %q", got, "default")
	}
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
