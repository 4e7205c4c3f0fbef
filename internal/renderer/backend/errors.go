package backend

import "errors"

// Terminal errors.
var (
	// ErrTerminalConfig indicates the terminal attributes could not be read or applied.
	ErrTerminalConfig = errors.New("terminal configuration failed")

	// ErrWindowSize indicates the terminal dimensions could not be determined.
	ErrWindowSize = errors.New("window size unavailable")

	// ErrNotTerminal indicates the input descriptor is not a terminal.
	ErrNotTerminal = errors.New("not a terminal")

	// ErrScriptExhausted is returned by NullBackend once its scripted input is consumed.
	ErrScriptExhausted = errors.New("scripted input exhausted")
)
