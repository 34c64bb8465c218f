package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidTransition indicates an obligation state machine violation,
// e.g. paying an already-paid installment or revoking an unpaid one.
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrIntegrity indicates that an entity cannot be deleted because other
// records still reference it.
var ErrIntegrity = errors.New("cannot delete, still referenced")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// FieldError is a validation failure tied to a specific input field so that
// callers can surface it next to the offending form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap makes FieldError match errors.Is(err, ErrValidation).
func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// NewFieldError creates a field-tagged validation error.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// AppError wraps lower-level failures (usually storage) with a status code
// and a human-readable message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
