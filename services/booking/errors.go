package booking

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSelection    = errors.New("service and technician must be selected")
	ErrActiveBookingExists = errors.New("an active booking already exists")
	ErrNoActiveBooking     = errors.New("no active booking")
	ErrInvalidTransition   = errors.New("invalid job status transition")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrNotCompleted        = errors.New("booking is not completed")
	ErrAlreadyRated        = errors.New("booking already rated")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5 stars")
	ErrUnknownPage         = errors.New("unknown page")
)

// LifecycleError carries a machine-readable code alongside the sentinel it wraps.
type LifecycleError struct {
	Code    string
	Message string
	Err     error
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LifecycleError) Unwrap() error {
	return e.Err
}

func newLifecycleError(code string, err error, format string, args ...interface{}) error {
	return &LifecycleError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
