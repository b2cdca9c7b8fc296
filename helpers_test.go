package collage

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/destel/collage/internal/th"
)

func landscape(seed uint8) Candidate {
	return Candidate{Name: fmt.Sprint("landscape-", seed), Image: th.Solid(30, 20, seed)}
}

func portrait(seed uint8) Candidate {
	return Candidate{Name: fmt.Sprint("portrait-", seed), Image: th.Solid(20, 30, seed)}
}

func square(seed uint8) Candidate {
	return Candidate{Name: fmt.Sprint("square-", seed), Image: th.Solid(25, 25, seed)}
}

func newTestAggregator() *Aggregator {
	return NewAggregator(WithFingerprinter(ContentHash))
}

// sourceOf wraps a ready-made stream into a Source that ignores cancellation.
func sourceOf(in <-chan Try[Candidate]) Source {
	return func(context.Context) <-chan Try[Candidate] {
		return in
	}
}

// endlessSource emits distinct landscape candidates until its context is canceled.
// When it stops, it sends the number of candidates it emitted to produced.
func endlessSource() (src Source, produced <-chan int) {
	done := make(chan int, 1)
	src = func(ctx context.Context) <-chan Try[Candidate] {
		out := make(chan Try[Candidate])
		go func() {
			defer close(out)
			n := 0
			defer func() { done <- n }()

			for i := 0; i < 250; i++ {
				if ctx.Err() != nil {
					return
				}
				select {
				case out <- Try[Candidate]{V: landscape(uint8(i))}:
					n++
				case <-ctx.Done():
					return
				}
			}
		}()
		return out
	}
	return src, done
}

func names(items []Candidate) []string {
	res := make([]string, len(items))
	for i, c := range items {
		res[i] = c.Name
	}
	return res
}

// fakeRaster renders a collage as a 1-pixel-high image whose width is the number of photos.
// It counts the calls.
type fakeRaster struct {
	mu    sync.Mutex
	calls int
}

func (r *fakeRaster) Compose(items []Candidate, size image.Point) image.Image {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	return image.NewRGBA(image.Rect(0, 0, len(items), 1))
}

func (r *fakeRaster) Thumbnail(img image.Image, size image.Point) image.Image {
	return image.NewRGBA(image.Rectangle{Max: size})
}

func (r *fakeRaster) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// recorder collects whatever sinks receive.
type recorder[A any] struct {
	mu     sync.Mutex
	values []A
}

func (r *recorder[A]) add(a A) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, a)
}

func (r *recorder[A]) Values() []A {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]A(nil), r.values...)
}

func (r *recorder[A]) Last() (A, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		var zero A
		return zero, false
	}
	return r.values[len(r.values)-1], true
}

type notification struct {
	Title, Description string
}

// notifications is a Notifier whose messages are dismissed immediately.
type notifications struct {
	recorder[notification]
}

func (n *notifications) Notify(ctx context.Context, title, description string) <-chan struct{} {
	n.add(notification{title, description})
	dismissed := make(chan struct{})
	close(dismissed)
	return dismissed
}
