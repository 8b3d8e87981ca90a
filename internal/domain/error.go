package domain

import (
	"errors"
	"fmt"
)

// Application error codes. These map onto HTTP status codes at the API
// boundary and decide which messages are safe to show to callers.
const (
	ECONFLICT     = "conflict"         // 409 - state conflict (already confirmed, etc.)
	EINTERNAL     = "internal"         // 500 - internal error (hide details)
	EINVALID      = "invalid"          // 400 - validation error
	ENOTFOUND     = "not_found"        // 404 - resource not found
	EUNAUTHORIZED = "unauthorized"     // 401 - authentication required
	EFORBIDDEN    = "forbidden"        // 403 - authenticated but not permitted
	EPAYMENT      = "payment_required" // 402 - payment failed or required
)

// Error is an application error with a machine-readable code, a
// caller-safe message, the operation it occurred in, and an optional
// wrapped cause.
type Error struct {
	Code    string
	Message string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the code from an error; non-domain errors report
// EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage extracts a caller-facing message. Internal and unknown
// errors get a generic message so details never leak.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Code != EINTERNAL {
		return e.Message
	}
	return "An internal error occurred. Please try again later."
}

// Errorf creates a new domain error with a formatted message.
// Example: domain.Errorf(domain.EINVALID, "order.place", "unknown restaurant %s", id)
func Errorf(code, op, format string, args ...interface{}) error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// Internal wraps err as an internal error, preserving the cause for logs.
func Internal(err error, op, message string) error {
	return &Error{Code: EINTERNAL, Op: op, Message: message, Err: err}
}
