package shared

import (
	"errors"
	"fmt"
)

// Kind classifies an application error for boundary reporting.
type Kind int

const (
	// KindInternal marks unexpected failures (store down, signing failure).
	KindInternal Kind = iota
	// KindValidation marks malformed or missing input.
	KindValidation
	// KindAuthentication marks bad credentials or bad tokens.
	KindAuthentication
	// KindAuthorization marks a valid identity with insufficient scope.
	KindAuthorization
	// KindConflict marks duplicate unique fields.
	KindConflict
	// KindNotFound marks a referenced record that does not exist.
	KindNotFound
)

// Error carries a classification plus a message safe to show callers.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// Validation builds a KindValidation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Authentication builds a KindAuthentication error.
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Authorization builds a KindAuthorization error.
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// Conflict builds a KindConflict error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NotFound builds a KindNotFound error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal wraps an unexpected failure. The message is what callers see;
// the cause stays server-side for logging.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, cause: cause}
}

// KindOf extracts the classification from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// UserSafeMessage returns the caller-facing message for err. Unexpected
// errors collapse to a generic message so internals never leak.
func UserSafeMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "Internal server error."
}
