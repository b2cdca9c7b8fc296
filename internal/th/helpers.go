package th

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"
)

func Send[T any](ch chan<- T, items ...T) {
	for _, item := range items {
		ch <- item
	}
}

func FromSlice[T any](items []T) <-chan T {
	ch := make(chan T)
	go func() {
		defer close(ch)
		Send(ch, items...)
	}()
	return ch
}

func ToSlice[T any](ch <-chan T) []T {
	var res []T
	for x := range ch {
		res = append(res, x)
	}
	return res
}

func DoConcurrentlyN(n int, f func(i int)) {
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			f(i)
		}()
	}

	wg.Wait()
}

// Name generates a test name.
// Works the same way as fmt.Sprint, but adds spaces between all arguments.
func Name(args ...any) string {
	res := fmt.Sprintln(args...)
	return strings.TrimSpace(res)
}

// Solid makes a w×h image filled with a gray level derived from seed.
// Different seeds give different pixel content, and therefore different fingerprints.
func Solid(w, h int, seed uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c := color.RGBA{R: seed, G: seed, B: seed, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Noise makes a w×h image whose pixels depend on position and seed.
// Its PNG encoding length varies with seed, unlike a Solid image of the same size.
func Noise(w, h int, seed uint32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	s := seed*2654435761 + 1
	for i := range img.Pix {
		s ^= s << 13
		s ^= s >> 17
		s ^= s << 5
		img.Pix[i] = uint8(s)
	}
	return img
}

// Buffer is an io.Writer that is safe for concurrent use, e.g. as a log destination.
type Buffer struct {
	mu sync.Mutex
	sb strings.Builder
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.Write(p)
}

func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.String()
}

// Count returns the number of non-overlapping occurrences of substr written so far.
func (b *Buffer) Count(substr string) int {
	return strings.Count(b.String(), substr)
}
