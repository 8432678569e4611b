// Released under an MIT license. See LICENSE.

// Package errs provides the errors raised when a program is rejected.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind int

// Error kinds.
const (
	Unknown Kind = iota

	BadIdentifier
	TypeError
	ValueCategoryMismatch
	ListTypeError
	ListReductionFailure
	ParameterMismatch
	ArityMismatch
	InvalidSyntax
	InvalidReference
)

//nolint:gochecknoglobals
var kinds = [...]string{
	Unknown:               "Error",
	BadIdentifier:         "BadIdentifier",
	TypeError:             "TypeError",
	ValueCategoryMismatch: "ValueCategoryMismatch",
	ListTypeError:         "ListTypeError",
	ListReductionFailure:  "ListReductionFailure",
	ParameterMismatch:     "ParameterMismatch",
	ArityMismatch:         "ArityMismatch",
	InvalidSyntax:         "InvalidSyntax",
	InvalidReference:      "InvalidReference",
}

// String returns the name of the kind k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kinds) {
		return kinds[Unknown]
	}

	return kinds[k]
}

// Error is a rejected input or program. Errors nest: Cause, if set, is the
// error that was detected first.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// New creates a new error of kind k.
func New(k Kind, msg string) *Error {
	return &Error{Kind: k, Message: msg}
}

// Errorf creates a new error of kind k with a formatted message.
func Errorf(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// Nest wraps cause in a new error of kind k.
func Nest(k Kind, cause error, msg string) *Error {
	return &Error{Kind: k, Message: msg, Cause: cause}
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	s := e.Kind.String() + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}

	return s
}

// Is reports whether target is an *Error of the same kind.
// An *Error with no message matches any error of its kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Unwrap returns the nested cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return Unknown
}

// Sentinels for use with errors.Is.
//
//nolint:gochecknoglobals
var (
	ErrBadIdentifier         = New(BadIdentifier, "")
	ErrTypeError             = New(TypeError, "")
	ErrValueCategoryMismatch = New(ValueCategoryMismatch, "")
	ErrListTypeError         = New(ListTypeError, "")
	ErrListReductionFailure  = New(ListReductionFailure, "")
	ErrParameterMismatch     = New(ParameterMismatch, "")
	ErrArityMismatch         = New(ArityMismatch, "")
	ErrInvalidSyntax         = New(InvalidSyntax, "")
	ErrInvalidReference      = New(InvalidReference, "")
)

// Count formats n and label, pluralized with p when n is not one.
func Count(n int, label string, p string) string {
	if n == 1 {
		p = ""
	}

	return fmt.Sprintf("%d %s%s", n, label, p)
}
