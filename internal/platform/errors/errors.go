// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
)

// ErrorCode defines supported error codes used across packages
// Values are stable for exit status mapping; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeInvalidArgument is for bad input parameters
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is for validation failures (options, flags)
	ErrorCodeValidation

	// ErrorCodeNotFound is for missing inputs (files)
	ErrorCodeNotFound

	// ErrorCodeParse is for a line whose text is not an integer
	ErrorCodeParse

	// ErrorCodeSourceRead is for failures of the underlying byte stream
	ErrorCodeSourceRead

	// ErrorCodeSkipLimit is for a lenient stream that dropped too many lines in a row
	ErrorCodeSkipLimit

	// ErrorCodeNoResult is for a scan that never recorded a best pair (invalid data)
	ErrorCodeNoResult
)

// String returns a short stable name for the code
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeInvalidArgument:
		return "invalid_argument"
	case ErrorCodeValidation:
		return "validation"
	case ErrorCodeNotFound:
		return "not_found"
	case ErrorCodeParse:
		return "parse"
	case ErrorCodeSourceRead:
		return "source_read"
	case ErrorCodeSkipLimit:
		return "skip_limit"
	case ErrorCodeNoResult:
		return "no_result"
	default:
		return "unknown"
	}
}

// ExitCode turns an ErrorCode into a process exit status
// 0 is never returned; callers exit 0 only when there is no error
func ExitCode(c ErrorCode) int {
	switch c {
	case ErrorCodeInvalidArgument, ErrorCodeValidation:
		return 2
	case ErrorCodeNotFound:
		return 3
	case ErrorCodeSourceRead:
		return 4
	case ErrorCodeNoResult, ErrorCodeSkipLimit, ErrorCodeParse:
		return 5
	default:
		return 1
	}
}

// ErrNoResult is the sentinel for a scan without a qualifying pair
var ErrNoResult = New(ErrorCodeNoResult, "invalid data")

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing
// field is optional (offending text or option name); op is optional operation tag
// orig is the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Is matches another *Error by code and message so copies of sentinels like ErrNoResult still match
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.code == t.code && e.msg == t.msg
}

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// ExitStatus returns the mapped exit status for any error, 0 for nil
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	return ExitCode(CodeOf(err))
}

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Mutators (copy-on-write)

// WithField attaches a field to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// WithOp attaches an operation label to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf wraps only when err != nil (helper for 1-liners)
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// Sugar

// InvalidArgf returns an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// NotFoundf returns a not found error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// Validationf returns a validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }
