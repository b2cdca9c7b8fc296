// Package mockapi provides a fake photo picker and a fake photo library for examples and demos.
package mockapi

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"sync"
	"time"

	"github.com/destel/collage"
)

// Photo makes a w×h candidate filled with a color derived from seed.
// Photos with equal seeds and sizes have equal content.
func Photo(seed int, w, h int) collage.Candidate {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c := color.RGBA{R: uint8(seed * 37), G: uint8(seed * 91), B: uint8(seed * 53), A: 255}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return collage.Candidate{Name: fmt.Sprintf("photo-%d-%dx%d", seed, w, h), Image: img}
}

// Tap simulates a user tapping photos in a picker, one after another, with short random pauses.
// The stream ends after the last photo or when ctx is canceled.
func Tap(ctx context.Context, photos []collage.Candidate, maxPause time.Duration) <-chan collage.Try[collage.Candidate] {
	out := make(chan collage.Try[collage.Candidate])
	go func() {
		defer close(out)
		for _, p := range photos {
			randomSleep(ctx, maxPause)
			select {
			case out <- collage.Try[collage.Candidate]{V: p}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Library is a photo library kept in memory. It fails every save when FailWith is set.
type Library struct {
	FailWith string
	Latency  time.Duration

	mu    sync.Mutex
	saved []image.Image
}

func (l *Library) Save(ctx context.Context, img image.Image) error {
	randomSleep(ctx, l.Latency)
	if err := ctx.Err(); err != nil {
		return err
	}
	if l.FailWith != "" {
		return &collage.PersistenceError{Reason: l.FailWith, Err: errors.New("mockapi: save failed")}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.saved = append(l.saved, img)
	return nil
}

// Saved returns the number of saved collages.
func (l *Library) Saved() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.saved)
}

func randomSleep(ctx context.Context, max time.Duration) {
	if max <= 0 {
		return
	}
	t := time.NewTimer(time.Duration(rand.Int63n(int64(max))))
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
