// Package errors provides standardized error handling for the wizard engine.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeMissingRequired ErrorCode = "MISSING_REQUIRED"
	ErrCodeInvalidFormat   ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidValue    ErrorCode = "INVALID_VALUE"
	ErrCodeOutOfRange      ErrorCode = "OUT_OF_RANGE"

	ErrCodeBusinessRuleViolation ErrorCode = "BUSINESS_RULE_VIOLATION"
	ErrCodeInsufficientCapacity  ErrorCode = "INSUFFICIENT_CAPACITY"
	ErrCodeNotConfirmed          ErrorCode = "NOT_CONFIRMED"

	ErrCodeDraftCorrupt  ErrorCode = "DRAFT_CORRUPT"
	ErrCodeStorageFailed ErrorCode = "STORAGE_FAILED"
	ErrCodeArchiveFailed ErrorCode = "ARCHIVE_FAILED"
)

// FieldError is a validation failure attached to a single input field.
type FieldError struct {
	Field   string    `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// FieldErrors aggregates per-field failures for one submission attempt.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// ByField returns a field → message mapping for presentation layers.
func (e FieldErrors) ByField() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		out[fe.Field] = fe.Message
	}
	return out
}

// StandardError represents a structured application error not tied to a
// single field.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewInvalidPayloadError marks a step submission that could not be decoded
// at all.
func NewInvalidPayloadError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFormat,
		Message:   "Invalid step payload",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewBusinessRuleError creates a cross-field business-rule rejection.
func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBusinessRuleViolation,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewInsufficientCapacityError creates the affordability rejection raised by
// the financial step.
func NewInsufficientCapacityError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInsufficientCapacity,
		Message:   "Your financial capacity isn't sufficient.",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotConfirmedError creates the precondition error for finalizing without
// the review confirmation gate.
func NewNotConfirmedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNotConfirmed,
		Message:   "Please confirm before submitting.",
		Timestamp: time.Now().UTC(),
	}
}

// NewDraftCorruptError marks an unparseable persisted draft. Callers recover
// by treating the draft as absent; the error exists for logging only.
func NewDraftCorruptError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDraftCorrupt,
		Message:   "Persisted draft is unreadable",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageFailedError wraps a storage backend failure.
func NewStorageFailedError(message string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageFailed,
		Message:   message,
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// NewArchiveFailedError wraps a submission archive failure.
func NewArchiveFailedError(message string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeArchiveFailed,
		Message:   message,
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// AsFieldErrors extracts per-field failures from err, if it carries any.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// AsStandardError extracts a StandardError from err, if it is one.
func AsStandardError(err error) (*StandardError, bool) {
	var se *StandardError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsCode reports whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	se, ok := AsStandardError(err)
	return ok && se.Code == code
}
