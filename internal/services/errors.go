package services

import (
	"errors"
	"fmt"
)

// Kind classifies an expected business failure.
type Kind string

const (
	KindConflict    Kind = "Conflict"
	KindNotFound    Kind = "NotFound"
	KindNotLinked   Kind = "NotLinked"
	KindValidation  Kind = "Validation"
	KindSeedFailure Kind = "SeedFailure"
	KindUnexpected  Kind = "Unexpected"
)

// Error is returned for expected business failures. Anything else a
// service returns is a storage or I/O fault.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels below regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

var (
	ErrConflict    = &Error{Kind: KindConflict}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrNotLinked   = &Error{Kind: KindNotLinked}
	ErrValidation  = &Error{Kind: KindValidation}
	ErrSeedFailure = &Error{Kind: KindSeedFailure}
)

// KindOf returns the business kind of err, or KindUnexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}

func notFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func notLinked(format string, args ...any) *Error {
	return newError(KindNotLinked, format, args...)
}

func validation(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

func isBusiness(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
