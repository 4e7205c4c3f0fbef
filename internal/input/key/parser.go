package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single byte: "a", "1", "@"
//   - Named keys: "Enter", "Escape", "Tab", "Backspace", "Space", "PageUp"
//   - Control chords: "Ctrl+Q", "C-q", "<C-q>"
//   - Vim aliases: "<CR>", "<Esc>", "<BS>", "<Tab>"
//
// Only the Ctrl modifier is meaningful: the terminal delivers other
// modifiers as escape sequences the decoder does not interpret.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	if len(spec) > 2 && (spec[:2] == "C-" || spec[:2] == "c-") {
		return parseVimStyle(spec)
	}

	return parseSingle(spec)
}

// parseVimStyle parses the inside of "<...>" notation, e.g. "C-q" or "CR".
func parseVimStyle(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}

	// A trailing "-" is the key itself, as in "<C-->".
	parts := strings.Split(inner, "-")
	if strings.HasSuffix(inner, "--") {
		parts = append(strings.Split(strings.TrimSuffix(inner, "--"), "-"), "-")
	}
	if len(parts) == 1 {
		return parseSingle(parts[0])
	}

	ctrl := false
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			ctrl = true
		default:
			return Event{}, fmt.Errorf("%w: unsupported modifier %q", ErrInvalidSpec, p)
		}
	}
	return parseKey(parts[len(parts)-1], ctrl)
}

// parseModifierStyle parses "Ctrl+Q" style notation.
func parseModifierStyle(spec string) (Event, error) {
	idx := strings.LastIndex(spec, "+")
	mods, keyPart := spec[:idx], spec[idx+1:]
	if keyPart == "" {
		// "Ctrl++" names the plus key.
		keyPart = "+"
		mods = strings.TrimSuffix(mods, "+")
	}

	ctrl := false
	for _, p := range strings.Split(mods, "+") {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "control", "c":
			ctrl = true
		default:
			return Event{}, fmt.Errorf("%w: unsupported modifier %q", ErrInvalidSpec, p)
		}
	}
	return parseKey(keyPart, ctrl)
}

// parseSingle parses a single byte or a key name.
func parseSingle(spec string) (Event, error) {
	return parseKey(spec, false)
}

// parseKey parses a key part, applying Ctrl when requested.
func parseKey(keyPart string, ctrl bool) (Event, error) {
	if keyPart != " " {
		keyPart = strings.TrimSpace(keyPart)
	}
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	var ev Event
	switch lower := strings.ToLower(keyPart); lower {
	case "cr", "return", "enter":
		ev = NewByteEvent(ByteEnter)
	case "tab":
		ev = NewByteEvent(ByteTab)
	case "bs", "backspace":
		ev = NewByteEvent(ByteBackspace)
	case "space":
		ev = NewByteEvent(' ')
	case "lt":
		ev = NewByteEvent('<')
	case "gt":
		ev = NewByteEvent('>')
	case "bar":
		ev = NewByteEvent('|')
	case "bslash":
		ev = NewByteEvent('\\')
	default:
		if k := KeyFromName(lower); k != KeyNone {
			ev = NewSpecialEvent(k)
		} else if len(keyPart) == 1 {
			ev = NewByteEvent(keyPart[0])
		} else {
			return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
		}
	}

	if !ctrl {
		return ev, nil
	}
	return applyCtrl(ev)
}

// applyCtrl maps a byte to the control character a terminal sends for it.
func applyCtrl(ev Event) (Event, error) {
	if !ev.IsByte() {
		return Event{}, fmt.Errorf("%w: Ctrl cannot modify %s", ErrInvalidSpec, ev.Key)
	}

	switch b := ev.Byte; {
	case b >= 'a' && b <= 'z', b >= '@' && b <= '_':
		c := Ctrl(b)
		if c.Byte == ByteEscape {
			return NewSpecialEvent(KeyEscape), nil
		}
		return c, nil
	case b == '?':
		return NewByteEvent(ByteBackspace), nil
	case b == ' ':
		return NewByteEvent(0), nil
	default:
		return Event{}, fmt.Errorf("%w: Ctrl cannot modify %q", ErrInvalidSpec, b)
	}
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}
