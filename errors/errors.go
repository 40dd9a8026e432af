// Package errors provides a string based error type allowing packages to define const sentinel errors.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSeparator separates the sentinel message from the cause in a wrapped error message.
const ErrSeparator = " -- "

// Error is a const-compatible error type. Declare package sentinels as
// `const ErrFoo = errors.Error("foo")` and compare with errors.Is.
type Error string

func (e Error) Error() string {
	return string(e)
}

// Is reports whether target is this error or an error wrapped by it.
func (e Error) Is(target error) bool {
	return e.Error() == target.Error() || strings.HasPrefix(target.Error(), e.Error()+ErrSeparator)
}

// Wrap attaches err as the cause of this sentinel and returns the combined error.
func (e Error) Wrap(err error) error {
	return wrappedError{sentinel: e, cause: err}
}

type wrappedError struct {
	sentinel Error
	cause    error
}

func (w wrappedError) Error() string {
	if w.cause != nil {
		return fmt.Sprintf("%s%s%v", string(w.sentinel), ErrSeparator, w.cause)
	}
	return string(w.sentinel)
}

func (w wrappedError) Is(target error) bool {
	return w.sentinel.Is(target)
}

func (w wrappedError) Unwrap() error {
	return w.cause
}

// The below wrap the stdlib errors package as we are stealing its namespace.

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns a new error with the specified message.
func New(message string) error {
	return errors.New(message)
}
