// Package dErrors provides coded domain errors and their HTTP translation.
// The rule-engine core stays total and error-free; coded errors only appear
// at service, store, and transport boundaries.
package dErrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a domain error for transport mapping and logging.
type ErrorCode string

const (
	CodeBadRequest         ErrorCode = "bad_request"
	CodeNotFound           ErrorCode = "not_found"
	CodeInternal           ErrorCode = "internal_error"
	CodeInvariantViolation ErrorCode = "invariant_violation"
)

// DomainError carries a code alongside the message so handlers can translate
// without string-matching.
type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// New creates a DomainError with the given code and message.
func New(code ErrorCode, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Wrap annotates err with a code and message while preserving the chain.
func Wrap(err error, code ErrorCode, message string) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

// Code extracts the ErrorCode from err, defaulting to CodeInternal for
// errors that did not originate in this package.
func Code(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps an ErrorCode to its HTTP response status.
func ToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvariantViolation:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
