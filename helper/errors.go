package helper

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrConflict          = errors.New("identifier already in use")
	ErrInvalidStatus     = errors.New("status outside the allowed set")
	ErrInvalidTransition = errors.New("status transition not permitted")
	ErrUpstream          = errors.New("image store failure")
)

// ValidationError marks caller-fault input problems before any side effect runs.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func Validation(reason string) error {
	return &ValidationError{Reason: reason}
}
