package key

import "fmt"

// Byte values with their own names.
const (
	ByteTab       byte = '\t'
	ByteEnter     byte = '\r'
	ByteEscape    byte = 0x1b
	ByteBackspace byte = 0x7f
)

// Event represents a single decoded key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Byte is the literal byte for KeyByte events.
	Byte byte
}

// NewByteEvent creates a key event for a literal byte.
func NewByteEvent(b byte) Event {
	return Event{Key: KeyByte, Byte: b}
}

// NewSpecialEvent creates a key event for a logical key.
func NewSpecialEvent(k Key) Event {
	return Event{Key: k}
}

// Ctrl returns the event produced by holding Ctrl and pressing c.
func Ctrl(c byte) Event {
	return NewByteEvent(c & 0x1f)
}

// IsByte returns true if this is a literal byte event.
func (e Event) IsByte() bool {
	return e.Key == KeyByte
}

// IsEnter returns true for a carriage return.
func (e Event) IsEnter() bool {
	return e.IsByte() && e.Byte == ByteEnter
}

// String returns a compact name: "a", "Space", "CR", "C-q", "Up".
func (e Event) String() string {
	if !e.IsByte() {
		return e.Key.String()
	}

	switch b := e.Byte; {
	case b == ' ':
		return "Space"
	case b == ByteEnter:
		return "CR"
	case b == ByteTab:
		return "Tab"
	case b == ByteBackspace:
		return "BS"
	case b == ByteEscape:
		return "Esc"
	case b >= 0x01 && b <= 0x1a:
		return "C-" + string(rune('a'+b-1))
	case b < 0x20:
		return "C-" + string(rune('@'+b))
	case b < 0x7f:
		return string(rune(b))
	default:
		return fmt.Sprintf("0x%02x", b)
	}
}
