package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailTaken         = errors.New("email has already registered")
	ErrTasklistNotFound   = errors.New("Tasklist not found")
	ErrTaskNotFound       = errors.New("Task not found")
	ErrStepNotFound       = errors.New("Step not found")
)

// ValidationError is a field-level business-rule failure, surfaced as a 422
// with the field map in the envelope's data.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
