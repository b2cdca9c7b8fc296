package collage

import "github.com/destel/collage/internal/core"

// Drain consumes and discards all items from an input channel, blocking until the channel is closed.
func Drain[A any](in <-chan A) {
	core.Drain(in)
}

// DrainNB is a non-blocking version of [Drain]. Is does draining in a separate goroutine.
func DrainNB[A any](in <-chan A) {
	core.DrainNB(in)
}
