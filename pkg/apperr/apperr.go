// Package apperr defines the error taxonomy surfaced by the service layer.
// Handlers map each kind to exactly one HTTP status, so services never deal
// in status codes and handlers never match on message text.
package apperr

import "errors"

var (
	ErrInvalid      = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error carries a client-facing message tagged with one of the sentinel kinds.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func Invalid(msg string) error { return &Error{kind: ErrInvalid, msg: msg} }

func Unauthorized(msg string) error { return &Error{kind: ErrUnauthorized, msg: msg} }

func Forbidden(msg string) error { return &Error{kind: ErrForbidden, msg: msg} }

func NotFound(msg string) error { return &Error{kind: ErrNotFound, msg: msg} }

func Conflict(msg string) error { return &Error{kind: ErrConflict, msg: msg} }
