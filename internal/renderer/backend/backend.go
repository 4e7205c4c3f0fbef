// Package backend provides the terminal session used by the editor.
//
// A Backend owns the terminal device: it switches it into raw mode, reports
// the window size, yields input one byte at a time with a bounded wait, and
// writes composed frames. Terminal is the real implementation; NullBackend is
// a scripted stand-in for tests.
package backend

import "bytes"

// Backend defines the terminal operations the editor depends on.
type Backend interface {
	// Init captures the current terminal mode and switches to raw mode.
	Init() error

	// Shutdown restores the terminal mode captured by Init.
	// Safe to call multiple times, and before Init.
	Shutdown() error

	// Size returns the current terminal dimensions.
	Size() (rows, cols int, err error)

	// PollByte reads one input byte. ok is false when no byte arrived
	// before the read timeout expired.
	PollByte() (b byte, ok bool, err error)

	// WriteAll writes p to the terminal, looping over short writes.
	WriteAll(p []byte) error

	// InstallTerminationHandlers arranges for the terminal mode to be
	// restored if the process is killed by a signal. The returned
	// function removes the handlers.
	InstallTerminationHandlers() (stop func())
}

type pollResult struct {
	b  byte
	ok bool

	resize     bool
	rows, cols int
}

// NullBackend is a scripted backend for testing.
type NullBackend struct {
	rows, cols int
	sizeErr    error
	initErr    error
	closeErr   error

	script []pollResult
	output bytes.Buffer
	writes int

	rawMode       bool
	initCalls     int
	shutdownCalls int
	handlers      int
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(rows, cols int) *NullBackend {
	return &NullBackend{rows: rows, cols: cols}
}

// Feed appends bytes to the scripted input.
func (b *NullBackend) Feed(p ...byte) {
	for _, c := range p {
		b.script = append(b.script, pollResult{b: c, ok: true})
	}
}

// FeedString appends the bytes of s to the scripted input.
func (b *NullBackend) FeedString(s string) {
	b.Feed([]byte(s)...)
}

// FeedTimeout appends a read timeout to the scripted input.
func (b *NullBackend) FeedTimeout() {
	b.script = append(b.script, pollResult{})
}

// FeedResize appends a window size change to the scripted input. The new
// size takes effect when it is polled, which reports a read timeout.
func (b *NullBackend) FeedResize(rows, cols int) {
	b.script = append(b.script, pollResult{resize: true, rows: rows, cols: cols})
}

// FailSize makes Size return err.
func (b *NullBackend) FailSize(err error) {
	b.sizeErr = err
}

// FailInit makes Init return err.
func (b *NullBackend) FailInit(err error) {
	b.initErr = err
}

// FailShutdown makes Shutdown return err. The mode is still restored.
func (b *NullBackend) FailShutdown(err error) {
	b.closeErr = err
}

func (b *NullBackend) Init() error {
	b.initCalls++
	if b.initErr != nil {
		return b.initErr
	}
	b.rawMode = true
	return nil
}

func (b *NullBackend) Shutdown() error {
	b.shutdownCalls++
	b.rawMode = false
	return b.closeErr
}

func (b *NullBackend) Size() (int, int, error) {
	if b.sizeErr != nil {
		return 0, 0, b.sizeErr
	}
	return b.rows, b.cols, nil
}

func (b *NullBackend) PollByte() (byte, bool, error) {
	if len(b.script) == 0 {
		return 0, false, ErrScriptExhausted
	}
	next := b.script[0]
	b.script = b.script[1:]
	if next.resize {
		b.rows, b.cols = next.rows, next.cols
	}
	return next.b, next.ok, nil
}

func (b *NullBackend) WriteAll(p []byte) error {
	b.writes++
	b.output.Write(p)
	return nil
}

func (b *NullBackend) InstallTerminationHandlers() func() {
	b.handlers++
	return func() { b.handlers-- }
}

// Output returns everything written so far.
func (b *NullBackend) Output() []byte {
	return b.output.Bytes()
}

// Writes returns the number of WriteAll calls.
func (b *NullBackend) Writes() int {
	return b.writes
}

// RawMode reports whether the backend is between Init and Shutdown.
func (b *NullBackend) RawMode() bool {
	return b.rawMode
}

// Calls returns how many times Init and Shutdown were called.
func (b *NullBackend) Calls() (init, shutdown int) {
	return b.initCalls, b.shutdownCalls
}

// HandlersInstalled reports whether termination handlers are active.
func (b *NullBackend) HandlersInstalled() bool {
	return b.handlers > 0
}
