package civ2

import (
	"fmt"
)

// Code identifies the class of a failure. Two errors with the same code are
// considered the same by errors.Is, regardless of message or cause.
type Code string

const (
	CodeInvalidArgument   Code = "INVALID_ARGUMENT"
	CodeIO                Code = "IO_FAILURE"
	CodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	CodeLogic             Code = "LOGIC_ERROR"
	CodeNotLoaded         Code = "NOT_LOADED"
)

// Sentinels for errors.Is.
var (
	ErrInvalidArgument   = &Error{code: CodeInvalidArgument}
	ErrIO                = &Error{code: CodeIO}
	ErrUnsupportedFormat = &Error{code: CodeUnsupportedFormat}
	ErrLogic             = &Error{code: CodeLogic}
	ErrNotLoaded         = &Error{code: CodeNotLoaded}
)

type Error struct {
	code  Code
	msg   string
	cause error
}

func newError(code Code, format string, args ...any) *Error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...)}
}

func invalidArgument(format string, args ...any) *Error {
	return newError(CodeInvalidArgument, format, args...)
}

func unsupported(format string, args ...any) *Error {
	return newError(CodeUnsupportedFormat, format, args...)
}

func logicError(format string, args ...any) *Error {
	return newError(CodeLogic, format, args...)
}

func ioError(cause error, format string, args ...any) *Error {
	e := newError(CodeIO, format, args...)
	e.cause = cause
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.msg == "" {
		if e.cause == nil {
			return string(e.code)
		}
		return fmt.Sprintf("%s: %v", e.code, e.cause)
	}
	if e.cause == nil {
		return fmt.Sprintf("%s: %s", e.code, e.msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.code, e.msg, e.cause)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is matches on code only.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.code == t.code
}

func (e *Error) Code() Code {
	if e == nil {
		return ""
	}
	return e.code
}
