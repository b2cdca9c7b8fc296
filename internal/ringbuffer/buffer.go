// Package ringbuffer provides an unbounded FIFO queue backed by a growable ring.
package ringbuffer

const minCap = 16

// Buffer is a FIFO queue. The zero value is an empty buffer ready to use.
// Buffer is not safe for concurrent use.
type Buffer[T any] struct {
	data         []T
	offset, size int
}

func (b *Buffer[T]) Cap() int {
	return len(b.data)
}

func (b *Buffer[T]) Len() int {
	return b.size
}

// Write appends v to the end of the queue.
func (b *Buffer[T]) Write(v T) {
	if b.size == len(b.data) {
		newCap := len(b.data) << 1
		if newCap < minCap {
			newCap = minCap
		}
		b.resize(newCap)
	}

	b.data[(b.offset+b.size)%len(b.data)] = v
	b.size++
}

// Read removes and returns the value at the head of the queue.
// Once the queue is at most a quarter full, its storage is halved.
func (b *Buffer[T]) Read() (T, bool) {
	var zero T
	if b.size == 0 {
		return zero, false
	}

	v := b.data[b.offset]
	b.data[b.offset] = zero // let GC do its work
	b.offset = (b.offset + 1) % len(b.data)
	b.size--

	if half := len(b.data) >> 1; half >= minCap && b.size <= half>>1 {
		b.resize(half)
	}

	return v, true
}

// resize changes the capacity and defragments the buffer.
// Panics if newCap is less than b.size.
func (b *Buffer[T]) resize(newCap int) {
	newData := make([]T, newCap)

	end := b.offset + b.size
	if end <= len(b.data) {
		copy(newData, b.data[b.offset:end])
	} else {
		copied := copy(newData, b.data[b.offset:])
		copy(newData[copied:], b.data[:b.size-copied])
	}

	b.data = newData
	b.offset = 0
}
