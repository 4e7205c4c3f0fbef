package buffer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrFileLoad indicates the document source could not be read.
var ErrFileLoad = errors.New("file load failed")

// Row is one line of the document.
type Row struct {
	Chars []byte
}

// Buffer is an ordered sequence of rows.
// A Buffer is not safe for concurrent use.
type Buffer struct {
	rows    []Row
	maxRows int
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NumRows returns the number of rows.
func (b *Buffer) NumRows() int {
	return len(b.rows)
}

// Row returns the bytes of row i, or nil if i is out of range.
// The returned slice must not be modified.
func (b *Buffer) Row(i int) []byte {
	if i < 0 || i >= len(b.rows) {
		return nil
	}
	return b.rows[i].Chars
}

// Full reports whether the row cap has been reached.
func (b *Buffer) Full() bool {
	return b.maxRows > 0 && len(b.rows) >= b.maxRows
}

// AppendRow copies line into a new last row. It returns false, leaving the
// buffer unchanged, when the row cap has been reached.
func (b *Buffer) AppendRow(line []byte) bool {
	if b.Full() {
		return false
	}
	chars := make([]byte, len(line))
	copy(chars, line)
	b.rows = append(b.rows, Row{Chars: chars})
	return true
}

// Load appends the lines read from r, stripping trailing '\n' and '\r'
// bytes from each. It stops at EOF or when the row cap is reached and
// returns the number of rows appended.
func (b *Buffer) Load(r io.Reader) (int, error) {
	br := bufio.NewReader(r)
	added := 0

	for !b.Full() {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			b.AppendRow(trimLineEnding(line))
			added++
		}
		if err == io.EOF {
			return added, nil
		}
		if err != nil {
			return added, err
		}
	}
	return added, nil
}

// LoadFile reads the file at path into a new buffer.
func LoadFile(path string, opts ...Option) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileLoad, err)
	}
	defer f.Close()

	b := New(opts...)
	if _, err := b.Load(f); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrFileLoad, path, err)
	}
	return b, nil
}

// trimLineEnding removes every trailing newline and carriage return.
func trimLineEnding(line []byte) []byte {
	n := len(line)
	for n > 0 && (line[n-1] == '\n' || line[n-1] == '\r') {
		n--
	}
	return line[:n]
}
