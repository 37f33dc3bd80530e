// Package common defines error kinds, shared constants and small helpers used
// across the job board server. Callers should use errors.Is to match kinds.
package common

import (
	"errors"
	"fmt"
)

var (
	// request-facing kinds
	ErrorInvalidInput = errors.New("invalid input")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorNotFound     = errors.New("not found")
	ErrorConflict     = errors.New("conflict")
	ErrorInternal     = errors.New("internal error")

	// repository specific errors
	ErrorUniqueViolation           = errors.New("unique violation")
	ErrorForeignKeyViolation       = errors.New("foreign key violation")
	ErrorInvalidTextRepresentation = errors.New("invalid text representation")

	// token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

var kinds = []error{
	ErrorInvalidInput,
	ErrorUnauthorized,
	ErrorForbidden,
	ErrorNotFound,
	ErrorConflict,
	ErrorInternal,
}

// Error is a classified failure carrying a client-facing message and optional
// extra response fields. Err holds the operator-facing cause and is never
// rendered to clients.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]any
	Err     error
}

// NewError returns an Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// With attaches an extra response field.
func (e *Error) With(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// Wrap records the underlying cause.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// KindOf classifies err into one of the request-facing kinds. A *Error is
// classified by its own Kind even if its cause carries another one.
// Anything unrecognised is ErrorInternal.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) && e.Kind != nil {
		return e.Kind
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrorInternal
}
