package collage

import "errors"

var (
	// ErrSaveInProgress is returned when a save is requested while another one has not finished yet.
	ErrSaveInProgress = errors.New("save already in progress")

	// ErrSaveDisabled is returned when a save is requested for a selection that cannot be saved.
	ErrSaveDisabled = errors.New("save is disabled for the current selection")
)

// PersistenceError is returned when the collage could not be written to the photo library.
// The selection is left untouched so that the save can be retried.
type PersistenceError struct {
	// Reason is a human readable description, suitable for showing to the user.
	Reason string
	Err    error
}

func (e *PersistenceError) Error() string {
	return e.Reason
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
