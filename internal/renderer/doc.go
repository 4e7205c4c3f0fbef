// Package renderer composes editor frames for a VT100-compatible terminal.
//
// Every refresh redraws the whole screen. A frame hides the cursor, homes
// it, writes each window row (document text, a "~" filler, or the welcome
// banner), erases the remainder of each line, positions the cursor and
// shows it again. The caller writes the finished frame to the terminal in
// a single call so the screen never shows a partial update.
//
// Usage:
//
//	r := renderer.New("0.1")
//	frame := r.Render(view, buf)
//	err := term.WriteAll(frame)
package renderer
