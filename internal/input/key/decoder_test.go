package key

import (
	"errors"
	"testing"
)

var errBroken = errors.New("broken pipe")

// step is one scripted PollByte result. A zero step is a timeout.
type step struct {
	b   byte
	ok  bool
	err error
}

type scriptSource struct {
	steps []step
	polls int
}

func (s *scriptSource) PollByte() (byte, bool, error) {
	s.polls++
	if len(s.steps) == 0 {
		return 0, false, errBroken
	}
	next := s.steps[0]
	s.steps = s.steps[1:]
	return next.b, next.ok, next.err
}

func bytesOf(s string) []step {
	out := make([]step, 0, len(s))
	for i := 0; i < len(s); i++ {
		out = append(out, step{b: s[i], ok: true})
	}
	return out
}

func timeout() step { return step{} }

func TestDecoderSequences(t *testing.T) {
	tests := []struct {
		name  string
		steps []step
		want  Event
	}{
		{"printable", bytesOf("a"), NewByteEvent('a')},
		{"control", bytesOf("\x11"), NewByteEvent(0x11)},
		{"carriage return", bytesOf("\r"), NewByteEvent('\r')},
		{"high byte", bytesOf("\xc3"), NewByteEvent(0xc3)},
		{"arrow up", bytesOf("\x1b[A"), NewSpecialEvent(KeyUp)},
		{"arrow down", bytesOf("\x1b[B"), NewSpecialEvent(KeyDown)},
		{"arrow right", bytesOf("\x1b[C"), NewSpecialEvent(KeyRight)},
		{"arrow left", bytesOf("\x1b[D"), NewSpecialEvent(KeyLeft)},
		{"csi end", bytesOf("\x1b[F"), NewSpecialEvent(KeyEnd)},
		{"csi home", bytesOf("\x1b[H"), NewSpecialEvent(KeyHome)},
		{"vt home 1", bytesOf("\x1b[1~"), NewSpecialEvent(KeyHome)},
		{"vt insert", bytesOf("\x1b[2~"), NewSpecialEvent(KeyInsert)},
		{"vt delete", bytesOf("\x1b[3~"), NewSpecialEvent(KeyDelete)},
		{"vt end 4", bytesOf("\x1b[4~"), NewSpecialEvent(KeyEnd)},
		{"vt page up", bytesOf("\x1b[5~"), NewSpecialEvent(KeyPageUp)},
		{"vt page down", bytesOf("\x1b[6~"), NewSpecialEvent(KeyPageDown)},
		{"vt home 7", bytesOf("\x1b[7~"), NewSpecialEvent(KeyHome)},
		{"vt end 8", bytesOf("\x1b[8~"), NewSpecialEvent(KeyEnd)},
		{"vt 9 unmapped", bytesOf("\x1b[9~"), NewSpecialEvent(KeyEscape)},
		{"vt digit without tilde", bytesOf("\x1b[5x"), NewSpecialEvent(KeyEscape)},
		{"csi unknown final", bytesOf("\x1b[Z"), NewSpecialEvent(KeyEscape)},
		{"ss3 home", bytesOf("\x1bOH"), NewSpecialEvent(KeyHome)},
		{"ss3 end", bytesOf("\x1bOF"), NewSpecialEvent(KeyEnd)},
		{"ss3 unknown", bytesOf("\x1bOP"), NewSpecialEvent(KeyEscape)},
		{"escape then other", bytesOf("\x1bx"), NewSpecialEvent(KeyEscape)},
		{"lone escape", append(bytesOf("\x1b"), timeout()), NewSpecialEvent(KeyEscape)},
		{"escape bracket timeout", append(bytesOf("\x1b["), timeout()), NewSpecialEvent(KeyEscape)},
		{"escape digit timeout", append(bytesOf("\x1b[5"), timeout()), NewSpecialEvent(KeyEscape)},
		{"escape O timeout", append(bytesOf("\x1bO"), timeout()), NewSpecialEvent(KeyEscape)},
		{"escape read error", append(bytesOf("\x1b"), step{err: errBroken}), NewSpecialEvent(KeyEscape)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(&scriptSource{steps: tt.steps})
			got, err := d.Next()
			if err != nil {
				t.Fatalf("Next() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Next() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecoderRetriesIdleTimeouts(t *testing.T) {
	src := &scriptSource{steps: []step{timeout(), timeout(), timeout(), {b: 'x', ok: true}}}
	d := NewDecoder(src)

	got, err := d.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if got != NewByteEvent('x') {
		t.Errorf("Next() = %#v, want byte 'x'", got)
	}
	if d.Timeouts() != 3 {
		t.Errorf("Timeouts() = %d, want 3", d.Timeouts())
	}
	if src.polls != 4 {
		t.Errorf("polls = %d, want 4", src.polls)
	}
}

func TestDecoderOneEventPerCall(t *testing.T) {
	// A discarded byte after ESC does not leak into the next event.
	src := &scriptSource{steps: bytesOf("\x1bxab\x1b[Aq")}
	d := NewDecoder(src)

	want := []Event{
		NewSpecialEvent(KeyEscape),
		NewByteEvent('a'),
		NewByteEvent('b'),
		NewSpecialEvent(KeyUp),
		NewByteEvent('q'),
	}
	for i, w := range want {
		got, err := d.Next()
		if err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
		if got != w {
			t.Errorf("Next() #%d = %#v, want %#v", i, got, w)
		}
	}
}

func TestDecoderIdleReadError(t *testing.T) {
	d := NewDecoder(&scriptSource{steps: []step{timeout(), {err: errBroken}}})

	_, err := d.Next()
	if !errors.Is(err, ErrInputRead) {
		t.Errorf("Next() error = %v, want ErrInputRead", err)
	}
	if !errors.Is(err, errBroken) {
		t.Errorf("Next() error = %v, want wrapped cause", err)
	}
}
