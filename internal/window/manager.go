package window

import "strings"

// Manager owns the single main Window and an ordered list of floating
// Windows. Composition paints main first, then floating windows in list
// order, so later entries paint over earlier ones where they overlap.
type Manager struct {
	Main     *Window
	Floating []*Window
}

// NewManager builds a Manager around an already-constructed main window.
func NewManager(main *Window) *Manager {
	return &Manager{Main: main}
}

// CreateFloatingWindow appends a new floating window and returns it.
// WindowManager never reorders floating windows after creation.
func (m *Manager) CreateFloatingWindow(x, y, w, h int, title string) *Window {
	win := NewFloating(x, y, w, h, title, nil)
	m.Floating = append(m.Floating, win)
	return win
}

// Render paints the main window, then every floating window in list order.
func (m *Manager) Render(buf *strings.Builder) {
	m.Main.Render(buf)
	for _, win := range m.Floating {
		win.Render(buf)
	}
}

// TopFloating returns the last (topmost) floating window, or nil if there
// are none. The core only ever creates one at startup, but composition
// order is defined for any number of them.
func (m *Manager) TopFloating() *Window {
	if len(m.Floating) == 0 {
		return nil
	}
	return m.Floating[len(m.Floating)-1]
}
