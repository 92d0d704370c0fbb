// Package apperr defines the error type returned across component boundaries.
//
// An Error carries a Kind, an operator-facing Message and the underlying
// error. The command layer decides whether to show the underlying error based
// on the debug setting; components never print it themselves.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	// KindConfig is an unreadable or corrupt configuration store.
	KindConfig Kind = iota + 1
	// KindUsage is a user-input error: unknown slug, missing file, no active workspace.
	KindUsage
	// KindRemote is an authentication, validation or network failure from the backend.
	KindRemote
	// KindImport is a failure to resolve a pipeline from a local source file.
	KindImport
	// KindAborted is a declined confirmation.
	KindAborted
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindUsage:
		return "usage"
	case KindRemote:
		return "remote"
	case KindImport:
		return "import"
	case KindAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Error is a classified error with a terse message and optional detail.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail returns the underlying error text, or "" when there is none.
func (e *Error) Detail() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// New returns an Error without an underlying cause.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error that keeps err as its detail.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
