// Package errors is the single import for error handling in infrastructure code:
// matching comes from the standard library, annotation with stack traces from
// pkg/errors.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

func New(text string) error { return pkgerrors.New(text) }

func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

// Join keeps every non-nil error matchable with Is and As.
func Join(errs ...error) error { return stderrors.Join(errs...) }

// Wrap annotates err with message and the caller's stack. Wrap(nil, ...) is nil.
func Wrap(err error, message string) error { return pkgerrors.Wrap(err, message) }

func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records the caller's stack without changing the message.
func WithStack(err error) error { return pkgerrors.WithStack(err) }
