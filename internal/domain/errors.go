// Package domain holds the error taxonomy and shared value definitions used
// across the booking service's domain packages.
package domain

import (
	"errors"
	"fmt"
)

// CurrencyMYR is the only currency the service quotes fares in.
const CurrencyMYR = "MYR"

// ErrorCode classifies a domain error for transport-level mapping.
type ErrorCode string

const (
	CodeValidation      ErrorCode = "validation_error"
	CodeNotFound        ErrorCode = "not_found"
	CodeOutOfRange      ErrorCode = "index_out_of_range"
	CodeUnavailable     ErrorCode = "resource_unavailable"
	CodePersistence     ErrorCode = "persistence_unavailable"
	CodeDeserialization ErrorCode = "deserialization_error"
)

// Error is a domain error carrying a classification code.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error returns the error message.
func (e *Error) Error() string {
	return e.Message
}

// NewValidationError creates an error for rejected input.
func NewValidationError(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// NewNotFoundError creates an error for a missing entity.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s not found: %s", entity, id)}
}

// NewOutOfRangeError creates an error for an index outside a collection's bounds.
func NewOutOfRangeError(index, length int) *Error {
	return &Error{Code: CodeOutOfRange, Message: fmt.Sprintf("index %d out of range for length %d", index, length)}
}

// NewUnavailableError creates an error for a resource that cannot be allocated.
func NewUnavailableError(msg string) *Error {
	return &Error{Code: CodeUnavailable, Message: msg}
}

// NewPersistenceError creates an error for an unreachable or failing store.
func NewPersistenceError(msg string) *Error {
	return &Error{Code: CodePersistence, Message: msg}
}

// NewDeserializationError creates an error for persisted data that does not
// match the expected shape.
func NewDeserializationError(msg string) *Error {
	return &Error{Code: CodeDeserialization, Message: msg}
}

// CodeOf extracts the ErrorCode from err, or "" if err is not a domain error.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsCode reports whether err is a domain error with the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
