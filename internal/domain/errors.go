package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidObservation marks observations that cannot be scored, such as NaN inputs
	ErrInvalidObservation = errors.New("invalid clinical observation")
	// ErrMissingReferenceData marks an incomplete reference table
	ErrMissingReferenceData = errors.New("missing reference data")
	// ErrInvalidConfig marks configuration that fails validation
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Error codes for different failure scenarios
const (
	ErrCodeInvalidObservation = "INVALID_OBSERVATION"
	ErrCodeMissingReference   = "MISSING_REFERENCE_DATA"
	ErrCodeInvalidConfig      = "INVALID_CONFIG"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// ValidationError represents a rejected observation field
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// Unwrap lets callers match ValidationError with errors.Is(err, ErrInvalidObservation)
func (e *ValidationError) Unwrap() error {
	return ErrInvalidObservation
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// ErrorCode maps an error to its stable code for reporting.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidObservation):
		return ErrCodeInvalidObservation
	case errors.Is(err, ErrMissingReferenceData):
		return ErrCodeMissingReference
	case errors.Is(err, ErrInvalidConfig):
		return ErrCodeInvalidConfig
	default:
		return ErrCodeInternal
	}
}
