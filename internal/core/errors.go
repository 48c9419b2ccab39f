package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an entry or note id does not exist.
	ErrNotFound = errors.New("record not found")

	ErrEmptyNoteTitle   = errors.New("note title cannot be empty")
	ErrEmptyNoteContent = errors.New("note content cannot be empty")
	ErrInvalidTheme     = errors.New("invalid theme mode")
)

// ValidationError carries the message shown to the user when a submission is rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// StorageError wraps a failure of the backing store. It is returned unchanged to
// the caller; nothing in the core retries it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
