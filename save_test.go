package collage

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/destel/collage/internal/th"
)

func TestSaver(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))

	t.Run("nothing rendered", func(t *testing.T) {
		called := false
		s := NewSaver(PersisterFunc(func(ctx context.Context, img image.Image) error {
			called = true
			return nil
		}), nil, nil)

		th.ExpectNoError(t, s.Save(context.Background(), nil))
		th.ExpectValue(t, called, false)
		th.ExpectValue(t, s.State(), SaveIdle)
	})

	t.Run("success", func(t *testing.T) {
		var notes notifications
		saved := 0
		s := NewSaver(PersisterFunc(func(ctx context.Context, got image.Image) error {
			th.ExpectValue(t, got, image.Image(img))
			return nil
		}), &notes, func() { saved++ })

		th.ExpectNoError(t, s.Save(context.Background(), img))
		th.ExpectValue(t, saved, 1)
		th.ExpectSlice(t, notes.Values(), []notification{{Title: "Saved"}})
		th.ExpectValue(t, s.State(), SaveIdle)
	})

	t.Run("failure", func(t *testing.T) {
		var notes notifications
		saved := 0
		cause := errors.New("permission denied")
		s := NewSaver(PersisterFunc(func(ctx context.Context, img image.Image) error {
			return &PersistenceError{Reason: "photo library is not accessible", Err: cause}
		}), &notes, func() { saved++ })

		err := s.Save(context.Background(), img)
		th.ExpectError(t, err, "photo library is not accessible")
		th.ExpectErrorIs(t, err, cause)
		th.ExpectValue(t, saved, 0)
		th.ExpectSlice(t, notes.Values(), []notification{{Title: "Error", Description: "photo library is not accessible"}})
		th.ExpectValue(t, s.State(), SaveIdle)
	})

	t.Run("plain error becomes persistence error", func(t *testing.T) {
		s := NewSaver(PersisterFunc(func(ctx context.Context, img image.Image) error {
			return errors.New("disk full")
		}), nil, nil)

		err := s.Save(context.Background(), img)
		var perr *PersistenceError
		if !errors.As(err, &perr) {
			t.Fatalf("expected PersistenceError, got %v", err)
		}
		th.ExpectValue(t, perr.Reason, "disk full")
	})

	t.Run("no concurrent saves", func(t *testing.T) {
		release := make(chan struct{})
		calls := make(chan struct{}, 10)
		s := NewSaver(PersisterFunc(func(ctx context.Context, img image.Image) error {
			calls <- struct{}{}
			<-release
			return nil
		}), nil, nil)

		first := make(chan error, 1)
		go func() { first <- s.Save(context.Background(), img) }()

		th.ExpectReceive(t, calls, 1*time.Second)
		th.ExpectValue(t, s.State(), Saving)
		th.ExpectErrorIs(t, s.Save(context.Background(), img), ErrSaveInProgress)

		close(release)
		th.ExpectNoError(t, th.ExpectReceive(t, first, 1*time.Second))
		th.ExpectValue(t, len(calls), 0)
		th.ExpectValue(t, s.State(), SaveIdle)
	})

	t.Run("waits for dismissal", func(t *testing.T) {
		dismiss := make(chan struct{})
		saved := make(chan struct{})
		s := NewSaver(
			PersisterFunc(func(ctx context.Context, img image.Image) error { return nil }),
			NotifierFunc(func(ctx context.Context, title, description string) <-chan struct{} { return dismiss }),
			func() { close(saved) },
		)

		done := make(chan error, 1)
		go func() { done <- s.Save(context.Background(), img) }()

		// the selection is cleared without waiting for the user
		th.ExpectClosedChan(t, saved, 1*time.Second)
		th.ExpectValue(t, s.State(), Saved)
		th.ExpectErrorIs(t, s.Save(context.Background(), img), ErrSaveInProgress)

		close(dismiss)
		th.ExpectNoError(t, th.ExpectReceive(t, done, 1*time.Second))
		th.ExpectValue(t, s.State(), SaveIdle)
	})

	t.Run("canceled while waiting for dismissal", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		s := NewSaver(
			PersisterFunc(func(ctx context.Context, img image.Image) error { return errors.New("boom") }),
			NotifierFunc(func(ctx context.Context, title, description string) <-chan struct{} {
				cancel()
				return make(chan struct{})
			}),
			nil,
		)

		th.ExpectNotHang(t, 1*time.Second, func() {
			th.ExpectError(t, s.Save(ctx, img), "boom")
		})
	})
}
