// Package errors provides an error wrapper annotated with the location
// where the wrapping happened.
//
// Usage:
//
//	wrapped := xerrors.Wrap(err)
//
// `wrapped` knows the file, line and function name where it was created.
// Messages of nested wraps chain with ` <- `, so reading one message
// gives the trail of marks from the outermost wrap down to the cause.
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

type TraceError struct {
	file     string
	line     int
	funcname string
	note     string
	cause    error
}

func (e *TraceError) File() string {
	return e.file
}

func (e *TraceError) Line() int {
	return e.line
}

func (e *TraceError) Error() string {
	if e.note == "" {
		return fmt.Sprintf(`at %s (%s:%d) <- %s`, e.funcname, e.file, e.line, e.cause.Error())
	}
	return fmt.Sprintf(`at %s (%s:%d; %s) <- %s`, e.funcname, e.file, e.line, e.note, e.cause.Error())
}

func (e *TraceError) Unwrap() error {
	return e.cause
}

// New creates a new error with the given message, annotated with the caller.
func New(text string) error {
	return trace("", errors.New(text), 1)
}

// Wrap annotates err with the caller's location.
func Wrap(err error) error {
	return trace("", err, 1)
}

// WrapWithNote is Wrap with a free-form note attached to the location mark.
func WrapWithNote(note string, err error) error {
	return trace(note, err, 1)
}

func trace(note string, err error, depth int) error {
	pc, file, line, ok := runtime.Caller(depth + 1)
	funcname := "(unknown func)"
	if !ok {
		file = "?"
		line = -1
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcname = fn.Name()
	}

	return &TraceError{
		funcname: funcname,
		file:     file,
		line:     line,
		note:     note,
		cause:    err,
	}
}
