package backend

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal implements Backend on a Unix terminal device.
type Terminal struct {
	in  int
	out int
	w   io.Writer

	// saved holds the mode captured by the first Init. It is never
	// mutated and is the only state the signal path reads.
	saved atomic.Pointer[unix.Termios]
}

// NewTerminal creates a terminal backend reading from in and writing to out.
func NewTerminal(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%w: %w: %s", ErrTerminalConfig, ErrNotTerminal, in.Name())
	}
	return &Terminal{
		in:  fd,
		out: int(out.Fd()),
		w:   out,
	}, nil
}

// Init captures the current mode and applies raw mode.
func (t *Terminal) Init() error {
	current, err := unix.IoctlGetTermios(t.in, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("%w: reading attributes: %w", ErrTerminalConfig, err)
	}

	if t.saved.Load() == nil {
		snapshot := *current
		t.saved.Store(&snapshot)
	}

	raw := makeRaw(*t.saved.Load())
	if err := unix.IoctlSetTermios(t.in, ioctlWriteTermios, &raw); err != nil {
		return fmt.Errorf("%w: applying raw mode: %w", ErrTerminalConfig, err)
	}
	return nil
}

// Shutdown reapplies the captured mode. Without a captured mode it does nothing.
func (t *Terminal) Shutdown() error {
	saved := t.saved.Load()
	if saved == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(t.in, ioctlWriteTermios, saved); err != nil {
		return fmt.Errorf("%w: restoring mode: %w", ErrTerminalConfig, err)
	}
	return nil
}

// restore is the signal-path variant of Shutdown: no wrapping, no allocation.
func (t *Terminal) restore() {
	if saved := t.saved.Load(); saved != nil {
		_ = unix.IoctlSetTermios(t.in, ioctlWriteTermios, saved)
	}
}

// Size queries the window size of the output device.
func (t *Terminal) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(t.out, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrWindowSize, err)
	}
	if ws.Col == 0 {
		return 0, 0, fmt.Errorf("%w: terminal reports zero columns", ErrWindowSize)
	}
	return int(ws.Row), int(ws.Col), nil
}

// PollByte performs one timed read. In raw mode the kernel returns after
// one byte or after the VTIME interval, whichever comes first.
func (t *Terminal) PollByte() (byte, bool, error) {
	var buf [1]byte
	n, err := unix.Read(t.in, buf[:])
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	return buf[0], true, nil
}

// WriteAll writes the whole of p to the terminal.
func (t *Terminal) WriteAll(p []byte) error {
	return writeFull(t.w, p)
}

// InstallTerminationHandlers restores the captured mode and exits when a
// terminating signal arrives.
func (t *Terminal) InstallTerminationHandlers() func() {
	return notifyTermination(t.restore, os.Exit)
}

// makeRaw derives raw mode settings from orig: no canonical input, no
// signal characters, no echo, no output processing, and reads that return
// after at most 100ms with zero or one byte.
func makeRaw(orig unix.Termios) unix.Termios {
	raw := orig
	raw.Lflag &^= unix.ICANON | unix.ISIG | unix.IEXTEN | unix.ECHO
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.IGNBRK | unix.IGNCR | unix.INLCR |
		unix.INPCK | unix.ISTRIP | unix.IXON | unix.PARMRK
	raw.Oflag &^= unix.OPOST
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1
	return raw
}

// writeFull loops until p is written or w fails.
func writeFull(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		p = p[n:]
	}
	return nil
}
