// Package ptyhandle opens a PTY pair and spawns a shell attached to its
// slave side, giving the caller a raw master *os.File to multiplex.
package ptyhandle

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Handle owns one PTY master and the child process attached to its slave.
type Handle struct {
	Master *os.File
	Cmd    *exec.Cmd
}

// Open allocates a PTY, sets its window size to cols x rows, and starts
// shell (with args) attached to the slave as its controlling terminal.
// creack/pty makes the child a session leader with the slave as its
// controlling tty, the Setsid/Setctty behavior component A requires. env,
// if non-nil, replaces the child's environment; a nil env inherits
// os.Environ().
func Open(shell string, args []string, cols, rows int, env []string) (*Handle, error) {
	cmd := exec.Command(shell, args...)
	if env != nil {
		cmd.Env = env
	}

	master, err := pty.StartWithSize(cmd, &pty.Winsize{
		Cols: uint16(cols),
		Rows: uint16(rows),
	})
	if err != nil {
		return nil, fmt.Errorf("ptyhandle: start %s: %w", shell, err)
	}

	return &Handle{Master: master, Cmd: cmd}, nil
}

// Fd returns the master's file descriptor, for use in poll/read/write
// syscalls in the event loop.
func (h *Handle) Fd() int {
	return int(h.Master.Fd())
}

// Resize updates the PTY's window size. The Screen Model attached to this
// handle is not resized here; callers that need to reflow tear down and
// rebuild their Model, per the fixed-size-after-init rule.
func (h *Handle) Resize(cols, rows int) error {
	if err := pty.Setsize(h.Master, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)}); err != nil {
		return fmt.Errorf("ptyhandle: resize: %w", err)
	}
	return nil
}

// Close closes the master side. It does not wait for or signal the child;
// callers that need a clean shutdown should signal Cmd.Process themselves
// before calling Close.
func (h *Handle) Close() error {
	return h.Master.Close()
}

// Wait blocks until the child exits and returns its exit error, if any.
func (h *Handle) Wait() error {
	return h.Cmd.Wait()
}
