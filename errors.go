package mirror

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	// CodeInvalidArgument reports a missing or unusable target, name, or
	// argument. Precondition checks always run before any lookup.
	CodeInvalidArgument ErrorCode = "invalid_argument"

	// CodeMemberNotFound reports a lookup that exhausted the embedded-struct
	// chain without a match.
	CodeMemberNotFound ErrorCode = "member_not_found"

	// CodeAccessDenied reports a member that exists but lacks the capability
	// the operation requires, such as setting a getter-only property.
	CodeAccessDenied ErrorCode = "access_denied"

	// CodeInternal reports a failure inside the runtime's reflection
	// machinery that the facade could not classify.
	CodeInternal ErrorCode = "internal"
)

// Error is the standard error envelope for all lookup and access failures.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new accessor error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new accessor error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// CodeOf returns the ErrorCode carried by err, unwrapping as needed.
// Errors that did not originate here report CodeInternal; a nil error
// reports the empty code.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsNotFound reports whether err is a member-not-found failure.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeMemberNotFound
}

// IsAccessDenied reports whether err is an access-denied failure.
func IsAccessDenied(err error) bool {
	return CodeOf(err) == CodeAccessDenied
}

// IsInvalidArgument reports whether err is an invalid-argument failure.
func IsInvalidArgument(err error) bool {
	return CodeOf(err) == CodeInvalidArgument
}
