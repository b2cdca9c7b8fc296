package collage

import (
	"context"
	"errors"
	"image"
	"sync"
)

// SaveState is the state of a [Saver].
type SaveState int

const (
	SaveIdle SaveState = iota
	Saving
	Saved
	SaveFailed
)

func (s SaveState) String() string {
	switch s {
	case SaveIdle:
		return "idle"
	case Saving:
		return "saving"
	case Saved:
		return "saved"
	case SaveFailed:
		return "save failed"
	default:
		return "unknown"
	}
}

// Saver coordinates saving a collage and telling the user about the outcome.
//
// Only one save runs at a time. The saver goes from idle to saving, then either to saved
// or to save failed, and returns to idle once the user dismisses the notification.
// Requests made while not idle are rejected with [ErrSaveInProgress].
type Saver struct {
	persister Persister
	notifier  Notifier
	onSaved   func()

	mu    sync.Mutex
	state SaveState
}

// NewSaver creates a Saver. onSaved is called after a successful save, right after the
// success notification is shown. notifier and onSaved may be nil.
func NewSaver(persister Persister, notifier Notifier, onSaved func()) *Saver {
	return &Saver{
		persister: persister,
		notifier:  notifier,
		onSaved:   onSaved,
	}
}

// State returns the current save state.
func (s *Saver) State() SaveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Saver) setState(state SaveState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// Save persists img. A nil img means there is nothing rendered yet, and Save does nothing.
//
// Save blocks until the outcome notification is dismissed or ctx is canceled.
// On failure it returns a [*PersistenceError]; the caller's selection is not touched.
// The persistence call itself is not canceled by Save once started, beyond what
// the Persister does with ctx.
func (s *Saver) Save(ctx context.Context, img image.Image) error {
	if img == nil {
		return nil
	}

	s.mu.Lock()
	if s.state != SaveIdle {
		s.mu.Unlock()
		return ErrSaveInProgress
	}
	s.state = Saving
	s.mu.Unlock()

	defer s.setState(SaveIdle)

	if err := s.persister.Save(ctx, img); err != nil {
		perr := asPersistenceError(err)
		s.setState(SaveFailed)
		s.await(ctx, s.notify(ctx, "Error", perr.Reason))
		return perr
	}

	s.setState(Saved)
	dismissed := s.notify(ctx, "Saved", "")
	if s.onSaved != nil {
		s.onSaved()
	}
	s.await(ctx, dismissed)
	return nil
}

func (s *Saver) notify(ctx context.Context, title, description string) <-chan struct{} {
	if s.notifier == nil {
		return nil
	}
	return s.notifier.Notify(ctx, title, description)
}

func (s *Saver) await(ctx context.Context, dismissed <-chan struct{}) {
	if dismissed == nil {
		return
	}
	select {
	case <-dismissed:
	case <-ctx.Done():
	}
}

func asPersistenceError(err error) *PersistenceError {
	var perr *PersistenceError
	if errors.As(err, &perr) {
		return perr
	}
	return &PersistenceError{Reason: err.Error(), Err: err}
}
