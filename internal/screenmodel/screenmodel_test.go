package screenmodel

import "testing"

func TestFeedPlainText(t *testing.T) {
	m := New(10, 2)
	m.Feed([]byte("hi"))
	row := m.Row(0)
	if row[0].Rune != 'h' || row[1].Rune != 'i' {
		t.Fatalf("row[0:2] = %q%q, want hi", row[0].Rune, row[1].Rune)
	}
	if row[2].Rune != ' ' {
		t.Fatalf("row[2] = %q, want blank", row[2].Rune)
	}
}

func TestFeedBoldRed(t *testing.T) {
	m := New(10, 2)
	m.Feed([]byte("\x1b[1;31mx\x1b[0m"))
	cell := m.Row(0)[0]
	if cell.Rune != 'x' {
		t.Fatalf("rune = %q, want x", cell.Rune)
	}
	if !cell.Style.Bold {
		t.Errorf("expected bold")
	}
	if cell.Style.FG.Kind == 0 {
		t.Errorf("expected a foreground color set")
	}
}

func TestSizeFixed(t *testing.T) {
	m := New(80, 24)
	cols, rows := m.Size()
	if cols != 80 || rows != 24 {
		t.Fatalf("Size() = (%d,%d), want (80,24)", cols, rows)
	}
	m.Feed([]byte("anything"))
	cols2, rows2 := m.Size()
	if cols2 != cols || rows2 != rows {
		t.Fatalf("Size() changed after Feed: (%d,%d)", cols2, rows2)
	}
}

func TestSplitFeedEquivalence(t *testing.T) {
	a := New(20, 3)
	b := New(20, 3)
	whole := []byte("\x1b[32mhello\x1b[0m world")
	a.Feed(whole)
	for i := 0; i < len(whole); i++ {
		b.Feed(whole[i : i+1])
	}
	for y := 0; y < 3; y++ {
		ra, rb := a.Row(y), b.Row(y)
		for x := range ra {
			if ra[x] != rb[x] {
				t.Fatalf("row %d cell %d differs: %+v vs %+v", y, x, ra[x], rb[x])
			}
		}
	}
}
