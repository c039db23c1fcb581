package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("email or password incorrect")
	ErrAccountDisabled    = errors.New("account has been disabled, contact an administrator")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailExists        = errors.New("email already in use")
	ErrSystem             = errors.New("system error, please try again")
	ErrLoginInFlight      = errors.New("a login is already in progress")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")
	ErrSessionNotFound    = errors.New("session not found")
	ErrCorruptSession     = errors.New("stored session is corrupt")
)

// ValidationError is an input problem detected before any I/O.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }
