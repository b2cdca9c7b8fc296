package core

import (
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/destel/collage/internal/th"
)

func fromRange(start, end int) <-chan int {
	ch := make(chan int)
	go func() {
		defer close(ch)
		for i := start; i < end; i++ {
			ch <- i
		}
	}()
	return ch
}

func TestOrderedLoop(t *testing.T) {
	for _, n := range []int{1, 5} {
		t.Run(th.Name("correctness", n), func(t *testing.T) {
			done := make(chan struct{})
			var sum atomic.Int64

			OrderedLoop(fromRange(0, 20), done, n, func(x int, canWrite <-chan struct{}) {
				<-canWrite
				sum.Add(int64(x))
			})

			<-done
			th.ExpectValue(t, sum.Load(), int64(19*20/2))
		})

		t.Run(th.Name("ordering", n), func(t *testing.T) {
			out := make(chan int)

			OrderedLoop(fromRange(0, 500), out, n, func(x int, canWrite <-chan struct{}) {
				// uneven work so that goroutines finish out of order
				time.Sleep(time.Duration(rand.Intn(200)) * time.Microsecond)
				<-canWrite
				out <- x
			})

			outSlice := th.ToSlice(out)
			th.ExpectValue(t, len(outSlice), 500)
			for i, x := range outSlice {
				if x != i {
					t.Fatalf("expected %d at position %d, got %d", i, i, x)
				}
			}
		})
	}
}

func TestOrderedFilterMap(t *testing.T) {
	for _, n := range []int{1, 4} {
		t.Run(th.Name("odd squares", n), func(t *testing.T) {
			out := OrderedFilterMap(fromRange(0, 10), n, func(x int) (int, bool) {
				return x * x, x%2 == 1
			})

			th.ExpectSlice(t, th.ToSlice(out), []int{1, 9, 25, 49, 81})
		})
	}

	t.Run("nil input", func(t *testing.T) {
		var in chan int
		out := OrderedFilterMap(in, 2, func(x int) (int, bool) { return x, true })
		th.ExpectValue(t, out == nil, true)
	})
}
