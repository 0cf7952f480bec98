package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a row with the requested id does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidGoal reports a goal rejected at the write boundary. Use
// errors.Is to match; the message carries the specific reason.
var ErrInvalidGoal = errors.New("invalid goal")

// ErrHueOutOfRange reports a theme hue outside [0, 360].
var ErrHueOutOfRange = errors.New("theme hue out of range")

// StorageError wraps a persistence failure (quota, corruption, locked
// database). It is never swallowed here; callers decide whether anything
// can be done.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
