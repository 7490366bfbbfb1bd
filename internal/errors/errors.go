package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// InternalError is the rich error type carried through the service layers.
// It wraps a cause, an operator hint safe to surface to API callers, and
// optional reportable details (never internal state).
type InternalError struct {
	cause   error
	hint    string
	details map[string]interface{}
}

func (e *InternalError) Error() string {
	if e.cause == nil {
		return e.hint
	}
	return e.cause.Error()
}

func (e *InternalError) Unwrap() error {
	return e.cause
}

// Hint returns the caller-safe hint for the error
func (e *InternalError) Hint() string {
	return e.hint
}

// Details returns the reportable details for the error
func (e *InternalError) Details() map[string]interface{} {
	return e.details
}

// ErrorBuilder provides a fluent API for constructing marked errors.
type ErrorBuilder struct {
	err *InternalError
}

// NewError starts building an error from a message
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{
		err: &InternalError{cause: errors.New(msg)},
	}
}

// NewErrorf starts building an error from a format string
func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return NewError(fmt.Sprintf(format, args...))
}

// WithError starts building an error wrapping an existing cause
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{
		err: &InternalError{cause: err},
	}
}

// WithHint attaches a caller-safe hint
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err.hint = hint
	return b
}

// WithHintf attaches a formatted caller-safe hint
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.err.hint = fmt.Sprintf(format, args...)
	return b
}

// WithReportableDetails attaches structured details included in the API response
func (b *ErrorBuilder) WithReportableDetails(details map[string]interface{}) *ErrorBuilder {
	b.err.details = details
	return b
}

// Mark finalizes the builder, marking the error with a taxonomy marker
func (b *ErrorBuilder) Mark(marker error) error {
	return errors.Mark(b.err, marker)
}

// Hint extracts the hint from an error chain, if any
func Hint(err error) string {
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie.Hint()
	}
	return ""
}

// Details extracts the reportable details from an error chain, if any
func Details(err error) map[string]interface{} {
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie.Details()
	}
	return nil
}
