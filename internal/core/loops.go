package core

import (
	"sync"
)

type orderedValue[A any] struct {
	Value        A
	CanWrite     chan struct{}
	NextCanWrite chan struct{}
}

var canWritePool sync.Pool

func makeCanWriteChan() chan struct{} {
	ch := canWritePool.Get()
	if ch == nil {
		return make(chan struct{}, 1)
	}
	return ch.(chan struct{})
}

func releaseCanWriteChan(ch chan struct{}) {
	canWritePool.Put(ch)
}

// OrderedLoop processes items from the input channel concurrently using n goroutines,
// while letting f write its results in the same order as items were read from the input.
// If done channel is not nil, it will be closed after all items are processed.
//
// Special "canWrite" channel is passed to f. Typical f looks like this:
//   - Do some processing (this part is executed concurrently).
//   - Read from canWrite exactly once. This step is required. Otherwise, behavior is undefined.
//   - Write the result somewhere. This step is optional.
func OrderedLoop[A, B any](in <-chan A, done chan<- B, n int, f func(a A, canWrite <-chan struct{})) {
	if n <= 1 {
		canWrite := make(chan struct{})
		close(canWrite)

		go func() {
			if done != nil {
				defer close(done)
			}

			for a := range in {
				f(a, canWrite)
			}
		}()
		return
	}

	// Each item holds its own canWrite channel and a reference to the next item's canWrite channel.
	// After an item is written, it signals the next item that it can also be written.
	orderedIn := make(chan orderedValue[A])

	go func() {
		defer close(orderedIn)

		var canWrite, nextCanWrite chan struct{}
		nextCanWrite = makeCanWriteChan()
		nextCanWrite <- struct{}{} // first item can be written immediately

		for a := range in {
			canWrite, nextCanWrite = nextCanWrite, makeCanWriteChan()
			orderedIn <- orderedValue[A]{a, canWrite, nextCanWrite}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for a := range orderedIn {
				f(a.Value, a.CanWrite)

				releaseCanWriteChan(a.CanWrite)
				a.NextCanWrite <- struct{}{}
			}
		}()
	}

	if done != nil {
		go func() {
			wg.Wait()
			close(done)
		}()
	}
}
