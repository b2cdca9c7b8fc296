package core

func Drain[A any](in <-chan A) {
	for range in {
	}
}

// DrainNB is a non-blocking version of Drain. It drains the channel in a separate goroutine.
func DrainNB[A any](in <-chan A) {
	go Drain(in)
}
