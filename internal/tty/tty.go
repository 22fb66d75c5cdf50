// Package tty provides a real-terminal backend for vm.IoPort: raw-mode
// keyboard reads and character output over Unix terminal I/O.
package tty

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNoTTY is returned if standard input is not a terminal.
var ErrNoTTY = errors.New("tty: not a terminal")

// Console is a vm.IoPort backed by a real terminal placed in raw mode.
// Callers must call Restore on every exit path to return the terminal to
// its original state.
type Console struct {
	in    *os.File
	out   *os.File
	fd    int
	state *term.State
	r     *bufio.Reader

	pending    rune
	hasPending bool
}

// NewConsole places in into raw mode and returns a Console that reads keys
// from in and writes characters to out. If in is not a terminal, ErrNoTTY
// is returned and no terminal state is changed.
func NewConsole(in, out *os.File) (*Console, error) {
	fd := int(in.Fd())

	if !term.IsTerminal(fd) {
		return nil, ErrNoTTY
	}

	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTTY, err)
	}

	c := &Console{
		in:    in,
		out:   out,
		fd:    fd,
		state: saved,
		r:     bufio.NewReader(in),
	}

	if err := c.setTerminalParams(1, 0); err != nil {
		_ = c.Restore()
		return nil, err
	}

	return c, nil
}

// Restore returns the terminal to its state before NewConsole.
func (c *Console) Restore() error {
	return term.Restore(c.fd, c.state)
}

// GetChar blocks until a single character is read and returns it.
func (c *Console) GetChar() (rune, error) {
	if c.hasPending {
		c.hasPending = false
		return c.pending, nil
	}

	if err := c.blocking(); err != nil {
		return 0, err
	}

	b, err := c.r.ReadByte()
	if err != nil {
		return 0, err
	}

	return rune(b), nil
}

// PutChar writes ch to the terminal and flushes it immediately.
func (c *Console) PutChar(ch rune) error {
	_, err := fmt.Fprintf(c.out, "%c", ch)
	return err
}

// IsKeyDown is a non-blocking poll: it attempts to read one byte without
// blocking, and if one is available, buffers it so the next GetChar call
// returns the same byte rather than discarding it.
func (c *Console) IsKeyDown() (bool, error) {
	if c.hasPending {
		return true, nil
	}

	if err := c.nonBlocking(); err != nil {
		return false, err
	}

	b, err := c.r.ReadByte()
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	c.pending = rune(b)
	c.hasPending = true

	return true, nil
}

func (c *Console) blocking() error {
	return c.in.SetReadDeadline(time.Time{})
}

func (c *Console) nonBlocking() error {
	return c.in.SetReadDeadline(time.Now())
}

func (c *Console) setTerminalParams(vmin, vtime byte) error {
	_ = syscall.SetNonblock(c.fd, true)

	termIO, err := unix.IoctlGetTermios(c.fd, getTermiosIoctl)
	if err != nil {
		return err
	}

	termIO.Cc[unix.VMIN] = vmin
	termIO.Cc[unix.VTIME] = vtime

	if err := unix.IoctlSetTermios(c.fd, setTermiosIoctl, termIO); err != nil {
		return err
	}

	return c.in.SetReadDeadline(time.Time{})
}
