package lisp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/luthersystems/tinylisp/parser/token"
)

// Condition classifies an Error.
type Condition string

// Error conditions signaled by the reader and the evaluator.
const (
	CondParse          Condition = "parse-error"
	CondUndefined      Condition = "undefined-variable"
	CondType           Condition = "type-error"
	CondArity          Condition = "arity-error"
	CondArithmetic     Condition = "arithmetic-error"
	CondRecursionLimit Condition = "recursion-limit"
)

// Error is the error type returned by reading and evaluation.
type Error struct {
	Condition Condition
	Msg       string
	// Source is the location of the offending token for parse errors.
	Source *token.Location
	// Stack is a copy of the call stack when the error passed out of a
	// function call.
	Stack *CallStack
	// Err is the underlying cause, if any.
	Err error
}

// Errorf returns an Error with the given condition.  The %w verb may be used
// to wrap a cause which can be retrieved with errors.Unwrap.
func Errorf(c Condition, format string, v ...interface{}) *Error {
	err := fmt.Errorf(format, v...)
	return &Error{
		Condition: c,
		Msg:       err.Error(),
		Err:       errors.Unwrap(err),
	}
}

func typeErrorf(format string, v ...interface{}) *Error {
	return Errorf(CondType, format, v...)
}

func arityErrorf(format string, v ...interface{}) *Error {
	return Errorf(CondArity, format, v...)
}

func (err *Error) Error() string {
	var buf strings.Builder
	if err.Source != nil {
		buf.WriteString(err.Source.String())
		buf.WriteString(": ")
	}
	buf.WriteString(string(err.Condition))
	msg := err.Msg
	if msg == "" && err.Err != nil {
		msg = err.Err.Error()
	}
	if msg != "" {
		buf.WriteString(": ")
		buf.WriteString(msg)
	}
	return buf.String()
}

func (err *Error) Unwrap() error {
	return err.Err
}

// ConditionOf returns the condition of the first *Error in err's chain.  If
// err does not contain an *Error ConditionOf returns an empty Condition.
func ConditionOf(err error) Condition {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Condition
	}
	return ""
}

// IsCondition returns true if err contains an *Error with condition c.
func IsCondition(err error, c Condition) bool {
	return err != nil && ConditionOf(err) == c
}
