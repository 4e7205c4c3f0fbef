package renderer

// Frame is an append-only byte sequence holding one screen update.
type Frame struct {
	buf []byte
}

// NewFrame creates a frame with room for size bytes.
func NewFrame(size int) *Frame {
	return &Frame{buf: make([]byte, 0, max(size, 0))}
}

// Append adds p to the frame.
func (f *Frame) Append(p []byte) {
	f.buf = append(f.buf, p...)
}

// AppendString adds s to the frame.
func (f *Frame) AppendString(s string) {
	f.buf = append(f.buf, s...)
}

// AppendByte adds a single byte to the frame.
func (f *Frame) AppendByte(b byte) {
	f.buf = append(f.buf, b)
}

// AppendRepeat adds n copies of b.
func (f *Frame) AppendRepeat(b byte, n int) {
	for ; n > 0; n-- {
		f.buf = append(f.buf, b)
	}
}

// AppendCursorPosition adds a 1-indexed cursor positioning sequence.
func (f *Frame) AppendCursorPosition(row, col int) {
	f.buf = AppendCursorPosition(f.buf, row, col)
}

// Bytes returns the frame contents.
func (f *Frame) Bytes() []byte {
	return f.buf
}
