package interpreter

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes run-ending errors.
type ErrorKind int

const (
	TypeError ErrorKind = iota + 1
	NameError
	SyntaxError
	RuntimeError
)

func (k ErrorKind) String() string {
	switch k {
	case TypeError:
		return "TypeError"
	case NameError:
		return "NameError"
	case SyntaxError:
		return "SyntaxError"
	case RuntimeError:
		return "RuntimeError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// noLine marks an error that has not been attributed to a program line yet.
const noLine = -1

// Error is a categorized error raised while running a program.
// Line is the 0-based index of the offending statement.
type Error struct {
	Kind ErrorKind
	Line int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Line == noLine {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s on line %d: %s", e.Kind, e.Line, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newErrorf builds an Error; the step loop fills in the line.
func newErrorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: noLine, Msg: fmt.Sprintf(format, args...)}
}

// wrapError builds a RuntimeError around a lower level failure.
func wrapError(err error, format string, args ...any) *Error {
	e := newErrorf(RuntimeError, format, args...)
	e.Err = err
	return e
}

// KindOf returns the category of err, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

var (
	ErrMaxStepsExceeded = errors.New("maximum steps exceeded")
	ErrDivisionByZero   = errors.New("division by zero")
)
