package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithMaxRows caps the number of rows the buffer accepts.
// Zero or a negative value means no cap.
func WithMaxRows(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.maxRows = n
		} else {
			b.maxRows = 0
		}
	}
}
