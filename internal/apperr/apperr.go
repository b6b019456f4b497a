package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so handlers can map it to a transport
// status without string matching.
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindInvalidInput      Kind = "INVALID_INPUT"
	KindInvalidState      Kind = "INVALID_STATE"
	KindWrongStage        Kind = "WRONG_STAGE"
	KindAlreadyTerminal   Kind = "ALREADY_TERMINAL"
	KindAlreadyApproved   Kind = "ALREADY_APPROVED"
	KindDuplicateApprover Kind = "DUPLICATE_APPROVER"
	KindConflict          Kind = "CONFLICT"
	KindPartnerNotSigned  Kind = "PARTNER_NOT_SIGNED"
	KindDurationMissing   Kind = "DURATION_MISSING"
	KindInvalidPrivilege  Kind = "INVALID_PRIVILEGE_SHAPE"
	KindNotOperational    Kind = "NOT_OPERATIONAL"
	KindForbidden         Kind = "FORBIDDEN"
	KindInternal          Kind = "INTERNAL"
)

// Error is a structured application error: a machine-readable kind plus a
// human-readable message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches two application errors by kind, so tests and callers can use
// errors.Is(err, apperr.Conflict("")) style sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new application error.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

func NotFound(resource, id string) *Error {
	return Newf(KindNotFound, "%s %q not found", resource, id)
}

func InvalidInput(field, msg string) *Error {
	return Newf(KindInvalidInput, "%s: %s", field, msg)
}

func Conflict(msg string) *Error {
	return New(KindConflict, msg)
}

func Forbidden(msg string) *Error {
	return New(KindForbidden, msg)
}

// KindOf returns the kind of an application error, or KindInternal for any
// other error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
