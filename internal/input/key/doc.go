// Package key provides key event types, key specification parsing and the
// terminal input decoder.
//
// The editor works on raw bytes: a key Event is either a literal byte
// (printable or control character) or one of a closed set of logical keys
// such as KeyUp or KeyPageDown that arrive as multi-byte escape sequences.
//
// # Key Specifications
//
// Key specifications are used in configuration to name a key:
//
//   - Simple keys: "a", "1", "Enter", "Tab", "Escape", "PageUp"
//   - Control chords: "Ctrl+Q", "C-q", "<C-q>"
//
// # Decoding
//
// Decoder turns the byte stream of a raw-mode terminal into Events. It
// recognizes CSI arrow and navigation keys (ESC [ A, ESC [ 5 ~, ...) and
// the xterm SS3 forms ESC O H and ESC O F. A lone ESC, or any sequence it
// does not understand, decodes as KeyEscape.
package key
