package collage

import (
	"context"
	"sync"

	"github.com/destel/collage/internal/ringbuffer"
)

// Variable holds a value and broadcasts every change of it to all observers.
//
// Variable is a hot stream: the value is produced once by whoever calls [Variable.Set]
// and is shared by all observers. Each observer first receives the value that is current
// at the moment of subscription, and then every subsequent value in the order they were set.
// Observers never miss intermediate values: each one has its own unbounded queue,
// so a slow observer does not block Set and does not affect other observers.
//
// Variable is safe for concurrent use.
type Variable[A any] struct {
	mu     sync.Mutex
	value  A
	subs   map[*subscription[A]]struct{}
	closed bool
}

type subscription[A any] struct {
	mu    sync.Mutex
	queue ringbuffer.Buffer[A]
	done  bool          // no more values will be queued
	ready chan struct{} // signals that queue or done has changed
}

func (s *subscription[A]) push(a A) {
	s.mu.Lock()
	s.queue.Write(a)
	s.mu.Unlock()
	s.notify()
}

func (s *subscription[A]) finish() {
	s.mu.Lock()
	s.done = true
	s.mu.Unlock()
	s.notify()
}

func (s *subscription[A]) notify() {
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// pop returns the next queued value. ok is false when the queue is empty,
// in which case finished tells whether the subscription has ended.
func (s *subscription[A]) pop() (a A, ok bool, finished bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok = s.queue.Read()
	return a, ok, !ok && s.done
}

// NewVariable creates a Variable holding the initial value.
func NewVariable[A any](initial A) *Variable[A] {
	return &Variable[A]{
		value: initial,
		subs:  make(map[*subscription[A]]struct{}),
	}
}

// Value returns the current value.
func (v *Variable[A]) Value() A {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Set replaces the current value and queues it to every observer. Set never blocks on observers.
// Calling Set on a closed Variable has no effect.
func (v *Variable[A]) Set(a A) {
	v.Update(func(A) A { return a })
}

// Update atomically replaces the current value with f(current) and queues the result
// to every observer. f must not call other methods of the Variable.
func (v *Variable[A]) Update(f func(A) A) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}

	v.value = f(v.value)
	for s := range v.subs {
		s.push(v.value)
	}
}

// Observe returns a channel that receives the current value and all subsequent ones.
// The channel is closed when ctx is canceled or after the Variable is closed and
// all queued values have been delivered. After cancellation no more values are delivered,
// even if some of them were queued.
func (v *Variable[A]) Observe(ctx context.Context) <-chan A {
	s := &subscription[A]{ready: make(chan struct{}, 1)}

	v.mu.Lock()
	s.queue.Write(v.value)
	if v.closed {
		s.done = true
	} else {
		v.subs[s] = struct{}{}
	}
	v.mu.Unlock()

	out := make(chan A)
	go func() {
		defer close(out)
		defer v.unsubscribe(s)

		for {
			a, ok, finished := s.pop()
			if finished {
				return
			}

			if !ok {
				select {
				case <-s.ready:
					continue
				case <-ctx.Done():
					return
				}
			}

			if ctx.Err() != nil {
				return
			}

			select {
			case out <- a:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func (v *Variable[A]) unsubscribe(s *subscription[A]) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.subs, s)
}

// Close completes all observers. Values set before Close are still delivered.
func (v *Variable[A]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true

	for s := range v.subs {
		s.finish()
	}
	v.subs = nil
}
