package renderer

import "strconv"

// Control sequences written to the terminal.
const (
	CursorHide  = "\x1b[?25l"
	CursorShow  = "\x1b[?25h"
	CursorHome  = "\x1b[H"
	EraseLine   = "\x1b[K"
	EraseScreen = "\x1b[2J"
)

// ClearScreen erases the display and homes the cursor.
const ClearScreen = EraseScreen + CursorHome

// AppendCursorPosition appends the sequence moving the cursor to the
// 1-indexed row and column.
func AppendCursorPosition(dst []byte, row, col int) []byte {
	dst = append(dst, "\x1b["...)
	dst = strconv.AppendInt(dst, int64(row), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(col), 10)
	return append(dst, 'H')
}
