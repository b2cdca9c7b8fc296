package core

import (
	"fmt"
	"time"
)

// Throttle limits the rate of values flowing from in to out to at most one per interval.
// The first value after a quiet period is forwarded immediately and opens a window.
// Values arriving while the window is open replace each other; the latest one is forwarded
// when the window ends, which opens the next window. When in is closed, a pending value is
// flushed before out is closed. Zero or negative interval is not supported and will panic.
func Throttle[A any](in <-chan A, interval time.Duration) <-chan A {
	if in == nil {
		return nil
	}
	if interval <= 0 {
		panic(fmt.Errorf("throttle interval must be positive, got %v", interval))
	}

	out := make(chan A)

	go func() {
		defer close(out)

		t := time.NewTimer(1 * time.Hour)
		t.Stop()
		defer t.Stop()

		var pending A
		var hasPending bool

		// tick is nil while no window is open
		var tick <-chan time.Time

		for {
			select {
			case <-tick:
				if !hasPending {
					// window ended quietly
					tick = nil
					continue
				}

				out <- pending
				pending, hasPending = *new(A), false
				t.Reset(interval)

			case a, ok := <-in:
				if !ok {
					if hasPending {
						out <- pending
					}
					return
				}

				if tick == nil {
					out <- a
					t.Reset(interval)
					tick = t.C
					continue
				}

				pending, hasPending = a, true
			}
		}
	}()

	return out
}
