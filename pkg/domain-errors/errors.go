// Package domainerrors provides coded errors for the service domain layer.
//
// Services and handlers create errors with New/Wrap and branch on codes with
// HasCode. Transport layers translate codes into protocol status; see
// pkg/platform/httputil for the HTTP mapping. Infrastructure facts (a registry
// row does not exist, an upstream is down) are expressed with pkg/platform/sentinel
// errors instead and translated into coded errors at the service boundary.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for transport mapping and caller branching.
type Code string

const (
	// CodeInvalidInput marks malformed identifiers or values rejected at a
	// trust boundary before any I/O.
	CodeInvalidInput Code = "invalid_input"

	// CodeValidation marks a request that parsed but violates a domain rule.
	CodeValidation Code = "validation_error"

	// CodeBadRequest marks a request body that could not be decoded at all.
	CodeBadRequest Code = "bad_request"

	// CodeNotFound marks an entity or result that does not exist.
	CodeNotFound Code = "not_found"

	// CodeTooLarge marks an input that exceeds a configured size cap.
	CodeTooLarge Code = "too_large"

	// CodeUnavailable marks an upstream dependency failure.
	CodeUnavailable Code = "unavailable"

	// CodeInternal marks an unclassified internal failure. Its description is
	// never exposed to clients.
	CodeInternal Code = "internal_error"

	// CodeInvariantViolation marks a broken internal invariant; always a bug.
	CodeInvariantViolation Code = "invariant_violation"
)

// Error is a coded domain error. It optionally wraps a cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New creates a coded error with a message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a coded error around a cause. The cause stays reachable through
// errors.Is/errors.As.
func Wrap(cause error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches two domain errors by code so named error values can be compared
// with errors.Is.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code && e.Message == other.Message
}

// HasCode reports whether err or anything it wraps carries the given code.
func HasCode(err error, code Code) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in the domain layer.
func CodeOf(err error) Code {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}
