// Package apperr defines the error taxonomy shared by every feature.
// Usecases and adapters return kinded errors; the transport layer maps each
// kind to an HTTP status without inspecting error strings.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. The taxonomy is closed: every error that
// crosses a usecase boundary carries exactly one of these kinds.
type Kind int

const (
	// KindUnknown marks errors that did not originate from this package.
	KindUnknown Kind = iota

	// KindValidation: malformed or out-of-range input. The caller can
	// recover by correcting the payload.
	KindValidation

	// KindReference: a referenced entity id does not resolve. The caller
	// can recover by supplying a valid id.
	KindReference

	// KindNotFound: the target entity of the operation is absent.
	KindNotFound

	// KindDuplicate: a uniqueness constraint was violated (e.g. email).
	KindDuplicate

	// KindDenied: the principal lacks rights on an existing resource.
	// Deliberately distinct from KindNotFound so callers can tell
	// "nothing there" from "not yours".
	KindDenied

	// KindUnauthenticated: no valid credential was presented.
	KindUnauthenticated
)

// Error is a kinded error with a human-readable reason. Field is set for
// validation failures to name the offending field.
type Error struct {
	Kind  Kind
	Field string
	Msg   string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return e.Msg
}

// Validation reports a field-level invariant violation.
func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: msg}
}

// Reference reports an unresolvable cross-entity reference.
func Reference(msg string) *Error {
	return &Error{Kind: KindReference, Msg: msg}
}

// NotFound reports an absent target entity.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Duplicate reports a uniqueness violation.
func Duplicate(msg string) *Error {
	return &Error{Kind: KindDuplicate, Msg: msg}
}

// Denied reports an authorization failure on an existing resource.
func Denied(msg string) *Error {
	return &Error{Kind: KindDenied, Msg: msg}
}

// Unauthenticated reports a missing or invalid credential.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Msg: msg}
}

// KindOf extracts the kind from an error chain. Errors not created by this
// package report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}
