// Package domainerrors defines the error taxonomy shared by services and
// transports. Services return *Error values; transports translate the Code
// into a status and a public message.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	CodeInternal           Code = "internal_error"
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_error"
	CodeInvalidInput       Code = "invalid_input"
	CodeInvariantViolation Code = "invariant_violation"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeTimeout            Code = "timeout"
	CodeRateLimited        Code = "rate_limited"
)

// Error is a classified error. Field is set for validation errors that belong
// to a single input field.
type Error struct {
	Code    Code
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap classifies err while keeping it in the chain.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// NewField creates a validation error scoped to a single input field.
func NewField(field, message string) error {
	return &Error{Code: CodeValidation, Message: message, Field: field}
}

// WrapField classifies err as a validation error on field.
func WrapField(err error, field, message string) error {
	return &Error{Code: CodeValidation, Message: message, Field: field, Err: err}
}

// From returns the first *Error in err's chain.
func From(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	de, ok := From(err)
	return ok && de.Code == code
}

// FieldOf returns the field a validation error is scoped to, or "".
func FieldOf(err error) string {
	if de, ok := From(err); ok {
		return de.Field
	}
	return ""
}
