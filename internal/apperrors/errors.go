package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError means the input was rejected before any network or
// storage call was made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// RemoteAPIError is a non-2xx response or transport failure from an
// external service. StatusCode is 0 when the request never reached the
// remote side.
type RemoteAPIError struct {
	Message    string
	StatusCode int
}

func (e *RemoteAPIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("remote API error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote API error: %s", e.Message)
}

// PersistenceError wraps a storage write failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsRemote(err error) bool {
	var re *RemoteAPIError
	return errors.As(err, &re)
}

func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
