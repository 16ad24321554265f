// Package apperr defines the error kinds shared by the journal, tag and insight services.
//
// Callers classify errors with errors.Is against the sentinel values; the
// concrete messages are built by wrapping a sentinel with fmt.Errorf.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrDuplicateTag     = errors.New("duplicate tag")
	ErrQuotaExceeded    = errors.New("quota exceeded")
	ErrInvalidState     = errors.New("invalid state")
	ErrAdapter          = errors.New("adapter error")
	ErrInsufficientData = errors.New("insufficient data")
	ErrTemplate         = errors.New("template error")
	ErrGeneration       = errors.New("generation error")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid returns a *ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

func DuplicateTag(format string, args ...any) error {
	return wrap(ErrDuplicateTag, format, args...)
}

func QuotaExceeded(format string, args ...any) error {
	return wrap(ErrQuotaExceeded, format, args...)
}

func InvalidState(format string, args ...any) error {
	return wrap(ErrInvalidState, format, args...)
}

func InsufficientData(format string, args ...any) error {
	return wrap(ErrInsufficientData, format, args...)
}

func Template(format string, args ...any) error {
	return wrap(ErrTemplate, format, args...)
}

func Generation(format string, args ...any) error {
	return wrap(ErrGeneration, format, args...)
}

// GenerationFailed marks err, usually an adapter error, as the cause of a failed generation.
func GenerationFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrGeneration, err)
}

// Adapter marks err as a failure of an external collaborator named by adapter.
func Adapter(adapter string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrAdapter, adapter, err)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
