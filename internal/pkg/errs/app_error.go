package errs

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindDependency Kind = "DEPENDENCY"
)

// AppError is the structured error handed from use cases to the HTTP layer.
// Message is caller-visible; the cause is kept for logs only.
type AppError struct {
	Kind    Kind
	Code    Code
	Message string
	Details string
	// Data carries an optional structured payload, e.g. a suggested alternative.
	Data  any
	cause error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func (e *AppError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrDependency:
		return e.Kind == KindDependency
	}
	return false
}

// NewAppError builds an error from the catalogue entry for code.
func NewAppError(code Code) *AppError {
	entry := lookup(code)
	return &AppError{
		Kind:    entry.kind,
		Code:    code,
		Message: entry.message,
		Details: entry.details,
	}
}

// FromCause builds a catalogue error and attaches cause with a stack trace.
func FromCause(code Code, cause error) *AppError {
	e := NewAppError(code)
	if cause != nil {
		e.cause = Wrap(cause, string(code))
	}
	return e
}

func (e *AppError) WithMessage(msg string) *AppError {
	e.Message = msg
	return e
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithData(data any) *AppError {
	e.Data = data
	return e
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
