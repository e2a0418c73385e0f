package scheduling

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error category. Codes are part of the
// API contract: handlers map them to HTTP statuses and clients branch on
// them, so they must never change once published.
type Code string

const (
	CodeInvalidArgument    Code = "invalid-argument"
	CodeUnauthenticated    Code = "unauthenticated"
	CodePermissionDenied   Code = "permission-denied"
	CodeNotFound           Code = "not-found"
	CodeFailedPrecondition Code = "failed-precondition"
	CodeSlotUnavailable    Code = "slot-unavailable"
	CodeInternal           Code = "internal"
)

// Error is the error type returned by every Service operation.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewError builds a categorized error with a caller-facing message.
func NewError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapInternal hides a storage or infrastructure failure behind a sanitized
// internal error. The cause stays attached for logging via Unwrap.
func WrapInternal(err error, message string) *Error {
	return &Error{Code: CodeInternal, Message: message, cause: err}
}

// CodeOf extracts the category from an error, defaulting to internal for
// anything that did not originate in this package.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// ErrSlotTaken is the sentinel a Repository implementation returns when an
// exclusive appointment create lost the race to an overlapping booking.
var ErrSlotTaken = errors.New("slot already taken")
