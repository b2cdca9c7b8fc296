package collage

import (
	"time"

	"github.com/destel/collage/internal/core"
)

// Throttle takes a channel of values and returns a channel that emits at most one value per interval.
//
// The first value after a quiet period is emitted immediately. Values that arrive during the following
// interval are coalesced: only the latest of them is emitted when the interval ends.
// When the input channel is closed, a pending value is emitted before the output is closed.
// Setting the interval to zero or a negative value is not supported and will result in a panic.
//
// Throttle suits expensive reactions to bursty changes, where only the settled state matters.
func Throttle[A any](in <-chan A, interval time.Duration) <-chan A {
	return core.Throttle(in, interval)
}
