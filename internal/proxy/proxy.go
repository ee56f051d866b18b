// Package proxy implements the single-threaded, poll-driven event loop that
// wires together PTY handles, screen models, the window manager, the query
// forwarder, and the overlay controller.
package proxy

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"tzig/internal/overlay"
	"tzig/internal/ptyhandle"
	"tzig/internal/queryfwd"
	"tzig/internal/window"
)

const (
	readChunkSize = 4096
	hotkeyByte    = 0x1d
	floatID       = 0
)

var kittyToggleSeq = []byte{0x1b, '[', '9', '3', ';', '5', 'u'}

// fdDisabled marks a poll slot as inert: Floating-PTY hangup disables its fd
// without tearing down the window or breaking the loop.
const fdDisabled = -1

// Proxy owns every piece of mutable state for one run: the raw-mode
// snapshot, both PTYs, the window manager, the overlay controller, and the
// query forwarder's one-shot routing flag.
type Proxy struct {
	stdinFd  int
	oldState *term.State

	main     *ptyhandle.Handle
	floating *ptyhandle.Handle
	floatWin *window.Window
	floatOK  bool

	wm     *window.Manager
	ov     *overlay.Controller
	qf     queryfwd.Forwarder
	stdout io.Writer
	log    *slog.Logger
}

// Run sets stdin to raw mode, spawns the main and floating shells, and runs
// the event loop until the main shell exits or stdin fails. Raw mode is
// always restored before returning, on every exit path.
func Run(shell string) error {
	stdinFd := int(os.Stdin.Fd())
	if !isatty.IsTerminal(uintptr(stdinFd)) {
		return fmt.Errorf("proxy: stdin is not a terminal")
	}

	cols, rows, err := term.GetSize(stdinFd)
	if err != nil {
		// ioctl window-size failure is tolerated; fall back to a default.
		cols, rows = 80, 24
	}

	oldState, err := term.MakeRaw(stdinFd)
	if err != nil {
		return fmt.Errorf("proxy: enter raw mode: %w", err)
	}
	defer term.Restore(stdinFd, oldState)

	p, err := newProxy(shell, cols, rows, stdinFd, oldState)
	if err != nil {
		return err
	}
	defer p.close()

	return p.loop()
}

func newProxy(shell string, cols, rows, stdinFd int, oldState *term.State) (*Proxy, error) {
	main, err := ptyhandle.Open(shell, nil, cols, rows, nil)
	if err != nil {
		return nil, fmt.Errorf("proxy: start main shell: %w", err)
	}

	wm := window.NewManager(window.NewMain(cols, rows))
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	fx, fy, fw, fh := floatingGeometry(cols, rows)
	floating, ferr := ptyhandle.Open(shell, nil, fw-2, fh-2, nil)
	p := &Proxy{
		stdinFd:  stdinFd,
		oldState: oldState,
		main:     main,
		wm:       wm,
		stdout:   os.Stdout,
		log:      log,
	}
	if ferr != nil {
		log.Warn("floating shell failed to start, continuing without it", "error", ferr)
	} else {
		p.floating = floating
		p.floatWin = window.NewFloating(fx, fy, fw, fh, shell, floating)
		p.floatWin.Visible = true
		wm.Floating = append(wm.Floating, p.floatWin)
		p.floatOK = true
	}

	p.ov = overlay.New(wm, main, os.Stdout)
	return p, nil
}

// floatingGeometry picks a single centered floating window 4 columns and 4
// rows smaller than the host terminal, leaving a two-cell margin on every
// side. The window is never smaller than 4x3, so on small hosts the margin
// shrinks, and on a host below 4x3 the window extends past the host edge.
func floatingGeometry(cols, rows int) (x, y, w, h int) {
	w = cols - 4
	if w < 4 {
		w = 4
	}
	h = rows - 4
	if h < 3 {
		h = 3
	}
	x = (cols - w) / 2
	if x < 0 {
		x = 0
	}
	y = (rows - h) / 2
	if y < 0 {
		y = 0
	}
	return x, y, w, h
}

func (p *Proxy) close() {
	if p.floating != nil {
		if p.floating.Cmd.Process != nil {
			_ = p.floating.Cmd.Process.Signal(syscall.SIGTERM)
		}
		_ = p.floating.Close()
	}
	_ = p.main.Close()
}

// loop is the single poll-driven event loop: blocking wait over stdin, the
// main PTY, and the floating PTY, dispatching each readable/hung-up fd per
// wake in a fixed order.
func (p *Proxy) loop() error {
	for {
		fds := []unix.PollFd{
			{Fd: int32(p.stdinFd), Events: unix.POLLIN},
			{Fd: int32(p.main.Fd()), Events: unix.POLLIN},
			{Fd: int32(p.floatingFd()), Events: unix.POLLIN},
		}

		if _, err := unix.Poll(fds, -1); err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("proxy: poll: %w", err)
		}

		if fds[1].Revents&(unix.POLLHUP|unix.POLLERR) != 0 {
			return nil
		}
		if fds[1].Revents&unix.POLLIN != 0 {
			if done, err := p.handleMainPTY(); done {
				return err
			}
		}

		if p.floatOK {
			if fds[2].Revents&(unix.POLLHUP|unix.POLLERR) != 0 {
				p.log.Warn("floating shell hung up, disabling its window")
				p.disableFloating()
			} else if fds[2].Revents&unix.POLLIN != 0 {
				p.handleFloatingPTY()
			}
		}

		if fds[0].Revents&unix.POLLIN != 0 {
			if done, err := p.handleStdin(); done {
				return err
			}
		}
	}
}

func (p *Proxy) floatingFd() int {
	if !p.floatOK {
		return fdDisabled
	}
	return p.floating.Fd()
}

func (p *Proxy) disableFloating() {
	p.floatOK = false
}

// handleMainPTY reads the main shell's output. done is true when the shell
// has exited (0 bytes or a read error), which terminates the loop.
func (p *Proxy) handleMainPTY() (done bool, err error) {
	buf := make([]byte, readChunkSize)
	n, rerr := p.main.Master.Read(buf)
	if n == 0 || rerr != nil {
		return true, nil
	}
	chunk := buf[:n]
	p.wm.Main.Model.Feed(chunk)

	if !p.ov.Visible() {
		if _, werr := p.stdout.Write(chunk); werr != nil {
			return true, fmt.Errorf("proxy: write stdout: %w", werr)
		}
		return false, nil
	}
	return false, p.ov.RenderAll()
}

// handleFloatingPTY reads the floating shell's output. A read error
// disables that fd rather than ending the loop.
func (p *Proxy) handleFloatingPTY() {
	buf := make([]byte, readChunkSize)
	n, rerr := p.floating.Master.Read(buf)
	if n <= 0 || rerr != nil {
		p.log.Warn("floating shell exited unexpectedly, disabling its window", "error", rerr)
		p.disableFloating()
		return
	}
	chunk := buf[:n]

	if forwarded := p.qf.Scan(chunk, floatID); len(forwarded) > 0 {
		_, _ = p.stdout.Write(forwarded)
	}
	p.floatWin.ParseOSC(chunk)
	p.floatWin.Model.Feed(chunk)

	if p.ov.Visible() {
		_ = p.ov.RenderAll()
	}
}

// handleStdin reads user keystrokes and either routes an armed query
// response, toggles the overlay, or forwards the bytes to whichever shell
// currently has focus. done is true when stdin itself failed.
func (p *Proxy) handleStdin() (done bool, err error) {
	buf := make([]byte, readChunkSize)
	n, rerr := os.Stdin.Read(buf)
	if n == 0 || rerr != nil {
		return true, nil
	}
	data := buf[:n]

	if p.floatOK {
		if id, ok := p.qf.RouteResponse(data); ok {
			if id == floatID {
				_, _ = p.floating.Master.Write(data)
			}
			return false, nil
		}
	}

	if isHotkey(data) {
		return false, p.ov.Toggle()
	}

	if p.ov.Visible() && p.floatOK {
		_, _ = p.floating.Master.Write(data)
	} else {
		_, _ = p.main.Master.Write(data)
	}
	return false, nil
}

func isHotkey(data []byte) bool {
	if len(data) == 1 && data[0] == hotkeyByte {
		return true
	}
	return bytes.Equal(data, kittyToggleSeq)
}
