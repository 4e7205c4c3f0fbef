package renderer

import (
	"fmt"

	"github.com/dshills/ned/internal/renderer/viewport"
)

// RowSource provides read access to document rows.
type RowSource interface {
	// NumRows returns the number of rows in the document.
	NumRows() int

	// Row returns the bytes of row i.
	Row(i int) []byte
}

// Renderer builds frames from a view and a document.
type Renderer struct {
	banner string
}

// New creates a renderer whose welcome banner names the given version.
func New(version string) *Renderer {
	return &Renderer{banner: WelcomeBanner(version)}
}

// WelcomeBanner returns the message shown over an empty document.
func WelcomeBanner(version string) string {
	return fmt.Sprintf("ned, the blazingly fast text editor -- version %s", version)
}

// Render composes a full frame for v over rows.
func (r *Renderer) Render(v viewport.View, rows RowSource) []byte {
	// Text plus per-line overhead ("~", erase, CRLF) and the fixed sequences.
	f := NewFrame(v.Rows*(v.Cols+6) + 32)

	f.AppendString(CursorHide)
	f.AppendString(CursorHome)

	r.drawRows(f, v, rows)

	f.AppendCursorPosition(v.CursorY+1, v.CursorX+1)
	f.AppendString(CursorShow)

	return f.Bytes()
}

// drawRows writes every window row, erasing to the end of each line.
func (r *Renderer) drawRows(f *Frame, v viewport.View, rows RowSource) {
	numRows := rows.NumRows()

	for y := 0; y < v.Rows; y++ {
		fileRow := y + v.RowOffset

		switch {
		case fileRow < numRows:
			line := rows.Row(fileRow)
			if len(line) > v.Cols {
				line = line[:v.Cols]
			}
			f.Append(line)
		case numRows == 0 && y == v.Rows/3:
			r.drawBanner(f, v.Cols)
		default:
			f.AppendByte('~')
		}

		f.AppendString(EraseLine)
		// No CRLF after the last line, or the terminal would scroll.
		if y < v.Rows-1 {
			f.AppendString("\r\n")
		}
	}
}

// drawBanner centers the welcome banner within cols, truncating it when
// the window is narrower than the message.
func (r *Renderer) drawBanner(f *Frame, cols int) {
	msg := r.banner
	if len(msg) > cols {
		msg = msg[:cols]
	}

	padding := (cols - len(msg)) / 2
	if padding > 0 {
		f.AppendByte('~')
		padding--
	}
	f.AppendRepeat(' ', padding)
	f.AppendString(msg)
}
