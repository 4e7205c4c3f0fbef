package key

import (
	"errors"
	"fmt"
)

// ErrInputRead indicates the input source failed for a reason other than a timeout.
var ErrInputRead = errors.New("input read failed")

// ByteSource yields input one byte at a time with a bounded wait.
type ByteSource interface {
	// PollByte returns ok=false when no byte arrived before the timeout.
	PollByte() (b byte, ok bool, err error)
}

// decodeState is the position of the decoder inside an escape sequence.
type decodeState uint8

const (
	stateIdle decodeState = iota
	stateSawEscape
	stateBracket
	stateXtermO
)

// Decoder converts raw terminal bytes into key Events.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	src      ByteSource
	timeouts uint64
}

// NewDecoder creates a decoder reading from src.
func NewDecoder(src ByteSource) *Decoder {
	return &Decoder{src: src}
}

// Timeouts returns the number of idle read timeouts seen so far.
func (d *Decoder) Timeouts() uint64 {
	return d.timeouts
}

// Next blocks until one key has been decoded and returns it.
//
// While idle, read timeouts are retried. Once an escape byte has been
// seen, a timeout or failed read ends the sequence and yields KeyEscape.
// Source errors while idle are returned wrapped in ErrInputRead.
func (d *Decoder) Next() (Event, error) {
	state := stateIdle

	for {
		switch state {
		case stateIdle:
			b, ok, err := d.src.PollByte()
			if err != nil {
				return Event{}, fmt.Errorf("%w: %w", ErrInputRead, err)
			}
			if !ok {
				d.timeouts++
				continue
			}
			if b != ByteEscape {
				return NewByteEvent(b), nil
			}
			state = stateSawEscape

		case stateSawEscape:
			b, ok := d.follow()
			switch {
			case !ok:
				return NewSpecialEvent(KeyEscape), nil
			case b == '[':
				state = stateBracket
			case b == 'O':
				state = stateXtermO
			default:
				return NewSpecialEvent(KeyEscape), nil
			}

		case stateBracket:
			b, ok := d.follow()
			if !ok {
				return NewSpecialEvent(KeyEscape), nil
			}
			if b >= '1' && b <= '9' {
				return NewSpecialEvent(d.decodeTilde(b)), nil
			}
			return NewSpecialEvent(csiFinalKey(b)), nil

		case stateXtermO:
			b, ok := d.follow()
			if !ok {
				return NewSpecialEvent(KeyEscape), nil
			}
			return NewSpecialEvent(ss3FinalKey(b)), nil
		}
	}
}

// follow reads the next byte of an escape sequence.
func (d *Decoder) follow() (byte, bool) {
	b, ok, err := d.src.PollByte()
	if err != nil || !ok {
		return 0, false
	}
	return b, true
}

// decodeTilde finishes a VT-style "ESC [ <digit> ~" sequence.
func (d *Decoder) decodeTilde(digit byte) Key {
	b, ok := d.follow()
	if !ok || b != '~' {
		return KeyEscape
	}
	switch digit {
	case '1', '7':
		return KeyHome
	case '2':
		return KeyInsert
	case '3':
		return KeyDelete
	case '4', '8':
		return KeyEnd
	case '5':
		return KeyPageUp
	case '6':
		return KeyPageDown
	default:
		return KeyEscape
	}
}

// csiFinalKey maps the final byte of "ESC [ <x>".
func csiFinalKey(b byte) Key {
	switch b {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'F':
		return KeyEnd
	case 'H':
		return KeyHome
	default:
		return KeyEscape
	}
}

// ss3FinalKey maps the final byte of "ESC O <x>".
func ss3FinalKey(b byte) Key {
	switch b {
	case 'F':
		return KeyEnd
	case 'H':
		return KeyHome
	default:
		return KeyEscape
	}
}
