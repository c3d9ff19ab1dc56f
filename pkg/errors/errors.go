// errors package provides error wrapper knowing where it is created.
//
// Usage:
//
//	wrapped := xe.Wrap(err)
//
// `wrapped` knows filename, line, and the name of function where itself is created.
//
// When you read message of this, replace
//
//	s/<-/\n/
//
// and it gives you "stacks" of where you marks.
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

type ErrWithCaller struct {
	Func string
	File string
	Line int
	Note string

	err error
}

func (e *ErrWithCaller) Error() string {
	loc := fmt.Sprintf(`@ %s "%s" l%d`, e.Func, e.File, e.Line)
	if e.Note != "" {
		loc += " (" + e.Note + ")"
	}
	return loc + " <- " + e.err.Error()
}

func (e *ErrWithCaller) Unwrap() error {
	return e.err
}

func New(text string) error {
	return wrap("", errors.New(text), 1)
}

// Wrap err with the location of the caller.
//
// If err is nil, it returns nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return wrap("", err, 1)
}

func WrapWithNote(note string, err error) error {
	if err == nil {
		return nil
	}
	return wrap(note, err, 1)
}

func wrap(note string, err error, depth int) error {
	ret := &ErrWithCaller{Func: "(unknown func)", File: "?", Line: -1, Note: note, err: err}
	pc, file, line, ok := runtime.Caller(depth + 1)
	if ok {
		ret.File, ret.Line = file, line
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		ret.Func = fn.Name()
	}
	return ret
}
