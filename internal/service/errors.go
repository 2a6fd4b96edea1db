package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation. Every error that crosses the Service
// boundary is tagged with exactly one kind and carries a user-displayable
// message.
type Kind int

const (
	// KindValidation means a client-side precondition failed. No network
	// call was made.
	KindValidation Kind = iota

	// KindAuth means the server rejected credentials or the session token.
	KindAuth

	// KindFetch means a network or server failure on a task operation.
	KindFetch

	// KindNotFound means the referenced task no longer exists.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindFetch:
		return "fetch"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is the tagged result of a failed Service call.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error { return e.cause }

// NewError creates a tagged error.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError creates a tagged error retaining its cause.
func WrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// ValidationErrorf creates a KindValidation error.
func ValidationErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func is(err error, kind Kind) bool {
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Kind == kind
}

// IsValidation reports whether err is a client-side precondition failure.
func IsValidation(err error) bool { return is(err, KindValidation) }

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool { return is(err, KindAuth) }

// IsFetch reports whether err is a network or server failure.
func IsFetch(err error) bool { return is(err, KindFetch) }

// IsNotFound reports whether err refers to a missing task.
func IsNotFound(err error) bool { return is(err, KindNotFound) }
