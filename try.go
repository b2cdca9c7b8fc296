package collage

// Try is a container for a value or an error
type Try[A any] struct {
	V     A
	Error error
}

// FromSlice converts a slice into a stream.
// If err is not nil function returns a stream with a single error.
func FromSlice[A any](slice []A, err error) <-chan Try[A] {
	if err != nil {
		out := make(chan Try[A], 1)
		out <- Try[A]{Error: err}
		close(out)
		return out
	}

	out := make(chan Try[A], len(slice))
	for _, a := range slice {
		out <- Try[A]{V: a}
	}
	close(out)
	return out
}

// FromChan wraps a channel of plain values into a stream. It is useful for candidate sources that
// cannot fail, such as a picker that emits whatever the user taps.
func FromChan[A any](values <-chan A) <-chan Try[A] {
	if values == nil {
		return nil
	}

	out := make(chan Try[A])
	go func() {
		defer close(out)
		for x := range values {
			out <- Try[A]{V: x}
		}
	}()

	return out
}
