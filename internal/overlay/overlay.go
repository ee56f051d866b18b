// Package overlay implements the overlay controller: the hidden/visible
// toggle, the alternate-screen transition it drives, and the per-frame
// composited redraw of the main window plus any floating windows.
package overlay

import (
	"fmt"
	"io"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"

	"tzig/internal/ptyhandle"
	"tzig/internal/window"
)

const (
	drainMaxIterations = 5
	drainPollTimeoutMS = 1
	drainReadSize      = 4096
)

// Controller holds the overlay's visibility state and drives the two
// transitions (hidden->visible, visible->hidden) plus the per-frame render.
type Controller struct {
	visible bool
	wm      *window.Manager
	mainPTY *ptyhandle.Handle
	out     io.Writer
}

// New builds a Controller. The overlay starts hidden.
func New(wm *window.Manager, mainPTY *ptyhandle.Handle, out io.Writer) *Controller {
	return &Controller{wm: wm, mainPTY: mainPTY, out: out}
}

// Visible reports the current overlay state.
func (c *Controller) Visible() bool {
	return c.visible
}

// Toggle flips hidden<->visible, running the transition sequence 4.G
// requires for whichever direction applies.
func (c *Controller) Toggle() error {
	if c.visible {
		return c.hide()
	}
	return c.show()
}

func (c *Controller) show() error {
	c.drainMainPTY()
	if _, err := io.WriteString(c.out, "\x1b[?1049h"); err != nil {
		return fmt.Errorf("overlay: enter alternate screen: %w", err)
	}
	c.visible = true
	return c.RenderAll()
}

func (c *Controller) hide() error {
	if err := c.RenderMainWindowOnly(); err != nil {
		return err
	}
	if _, err := io.WriteString(c.out, "\x1b[?1049l"); err != nil {
		return fmt.Errorf("overlay: leave alternate screen: %w", err)
	}
	c.visible = false
	if c.mainPTY != nil && c.mainPTY.Cmd.Process != nil {
		_ = c.mainPTY.Cmd.Process.Signal(syscall.SIGWINCH)
	}
	return nil
}

// drainMainPTY empties the main PTY's pending readable bytes before
// entering the alternate screen, so nothing is lost between the last
// pass-through read and the switch. Bounded to drainMaxIterations polls of
// drainPollTimeoutMS each; once a poll finds nothing readable, draining
// stops early.
func (c *Controller) drainMainPTY() {
	fd := c.mainPTY.Fd()
	buf := make([]byte, drainReadSize)
	for i := 0; i < drainMaxIterations; i++ {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, drainPollTimeoutMS)
		if err != nil || n == 0 || fds[0].Revents&unix.POLLIN == 0 {
			return
		}
		nr, err := unix.Read(fd, buf)
		if nr <= 0 {
			return
		}
		chunk := buf[:nr]
		c.wm.Main.Model.Feed(chunk)
		_, _ = c.out.Write(chunk)
		if err != nil {
			return
		}
	}
}

// RenderAll repaints the whole frame: main window, then floating windows on
// top, with the cursor left positioned inside the topmost floating window
// if one is visible.
func (c *Controller) RenderAll() error {
	var buf strings.Builder
	buf.WriteString("\x1b[?25l")
	buf.WriteString("\x1b[H\x1b[2J")

	c.wm.Render(&buf)

	if top := c.wm.TopFloating(); top != nil && top.Visible {
		absX, absY := top.CursorAbs()
		fmt.Fprintf(&buf, "\x1b[%d;%dH", absY, absX)
	}

	buf.WriteString("\x1b[?25h")
	_, err := io.WriteString(c.out, buf.String())
	return err
}

// RenderMainWindowOnly repaints only the main window, with no floating
// windows and no cursor repositioning; used for the final frame of the
// visible->hidden transition.
func (c *Controller) RenderMainWindowOnly() error {
	var buf strings.Builder
	buf.WriteString("\x1b[?25l")
	buf.WriteString("\x1b[H\x1b[2J")
	c.wm.Main.Render(&buf)
	buf.WriteString("\x1b[?25h")
	_, err := io.WriteString(c.out, buf.String())
	return err
}
