// Package viewport implements the cursor and scroll controller.
//
// A View describes the visible window onto the document: its size, the
// cursor position inside it, and the index of the first document row
// shown. Views are values; every operation returns an updated copy.
package viewport

import "github.com/dshills/ned/internal/input/key"

// View is the cursor and scroll state of the editor window.
//
// Invariants: 0 <= CursorX < Cols, 0 <= CursorY < Rows, RowOffset >= 0.
type View struct {
	Rows int
	Cols int

	CursorX int
	CursorY int

	RowOffset int
}

// New creates a view of the given window size with the cursor at the
// origin. Sizes below one are raised to one.
func New(rows, cols int) View {
	return View{Rows: max(rows, 1), Cols: max(cols, 1)}
}

// Apply returns the view after handling ev against a document of numRows
// rows. Keys that do not navigate leave the view unchanged.
//
// Up and Down scroll by one row before moving the cursor. PageUp and
// PageDown repeat that combined step once per window row.
func (v View) Apply(ev key.Event, numRows int) View {
	switch ev.Key {
	case key.KeyUp:
		return v.stepUp()
	case key.KeyDown:
		return v.stepDown(numRows)
	case key.KeyLeft, key.KeyRight, key.KeyHome, key.KeyEnd:
		return v.MoveCursor(ev.Key)
	case key.KeyPageUp:
		for i, n := 0, v.Rows; i < n; i++ {
			v = v.stepUp()
		}
		return v
	case key.KeyPageDown:
		for i, n := 0, v.Rows; i < n; i++ {
			v = v.stepDown(numRows)
		}
		return v
	default:
		return v
	}
}

func (v View) stepUp() View {
	return v.ScrollUp().MoveCursor(key.KeyUp)
}

func (v View) stepDown(numRows int) View {
	return v.ScrollDown(numRows).MoveCursor(key.KeyDown)
}

// ScrollUp moves the viewport one row towards the start of the document.
func (v View) ScrollUp() View {
	if v.RowOffset > 0 {
		v.RowOffset--
	}
	return v
}

// ScrollDown moves the viewport one row towards the end of a document of
// numRows rows. The offset never passes numRows.
func (v View) ScrollDown(numRows int) View {
	if v.RowOffset < numRows {
		v.RowOffset++
	}
	return v
}

// MoveCursor moves the cursor one cell for arrow keys, or to the row ends
// for Home and End, clamping to the window.
func (v View) MoveCursor(k key.Key) View {
	switch k {
	case key.KeyUp:
		v.CursorY--
	case key.KeyDown:
		v.CursorY++
	case key.KeyLeft:
		v.CursorX--
	case key.KeyRight:
		v.CursorX++
	case key.KeyHome:
		v.CursorX = 0
	case key.KeyEnd:
		v.CursorX = v.Cols - 1
	}
	return v.clamp()
}

// Resize returns the view for a new window size, keeping the cursor inside it.
func (v View) Resize(rows, cols int) View {
	v.Rows = max(rows, 1)
	v.Cols = max(cols, 1)
	return v.clamp()
}

// clamp enforces the cursor and offset invariants.
func (v View) clamp() View {
	v.CursorX = min(max(v.CursorX, 0), v.Cols-1)
	v.CursorY = min(max(v.CursorY, 0), v.Rows-1)
	v.RowOffset = max(v.RowOffset, 0)
	return v
}
