package exception

import (
	"errors"
	"fmt"
)

// ApplicationError handles application level errors.
// Code is a stable machine readable identifier, Message is shown to the user.
type ApplicationError struct {
	Code       string
	Message    string
	StatusCode int
	Cause      error
}

// Error interface implementation.
func (e ApplicationError) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}

func (e ApplicationError) Unwrap() error {
	return e.Cause
}

// Is matches on Code when the target has one, so sentinel errors still match
// after WithMessage or WithCause produced a more specific copy.
func (e ApplicationError) Is(target error) bool {
	var targetErr ApplicationError

	if !errors.As(target, &targetErr) {
		return false
	}

	if targetErr.Code != "" {
		return e.Code == targetErr.Code
	}

	return e.Cause == targetErr.Cause &&
		e.Message == targetErr.Message
}

// WithMessage returns a copy of the error carrying a more specific message.
func (e ApplicationError) WithMessage(format string, args ...any) ApplicationError {
	e.Message = fmt.Sprintf(format, args...)

	return e
}

// WithCause returns a copy of the error wrapping cause.
func (e ApplicationError) WithCause(cause error) ApplicationError {
	e.Cause = cause

	return e
}

// ErrorCode returns error code for an application error.
func (e ApplicationError) ErrorCode() int {
	return e.StatusCode
}
