package domain

import (
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Generation specific errors
	CodeAIUnavailable  ErrorCode = "AI_UNAVAILABLE"
	CodeRecordNotFound ErrorCode = "RECORD_NOT_FOUND"
)

// DomainError represents a domain-specific error. Cause is kept for
// logging only and is never serialized to API clients.
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// NewAIUnavailableError covers both "model not configured" and "model call
// or normalization failed"; callers see one recoverable condition.
func NewAIUnavailableError(message string, cause error) *DomainError {
	return NewError(CodeAIUnavailable, message, cause)
}

func NewRecordNotFoundError(id string) *DomainError {
	err := NewError(CodeRecordNotFound, fmt.Sprintf("Interview record not found with ID: %s", id), nil)
	err.Context = map[string]interface{}{"record_id": id}
	return err
}

// ValidationError represents a single field-level validation failure
type ValidationError struct {
	Field   string    `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeMissingField,
		Message: fmt.Sprintf("'%s' is required and must be non-empty", field),
	}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeInvalidFormat,
		Message: fmt.Sprintf("'%s' has an invalid format: %s", field, value),
	}
}

func NewOutOfRangeError(field string, got, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("'%s' is out of range: got %d, expected between %d and %d", field, got, min, max),
	}
}

// ValidationErrors aggregates field-level failures into a single error
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
