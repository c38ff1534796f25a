package lisp

import (
	"fmt"
	"io"
	"log"
)

// Config is a function that configures a new Runtime.
type Config func(rt *Runtime) error

// WithReader returns a Config that makes the runtime use r to parse source
// text.  There is no default Reader for a runtime.
func WithReader(r Reader) Config {
	return func(rt *Runtime) error {
		if r == nil {
			return fmt.Errorf("nil reader")
		}
		rt.Reader = r
		return nil
	}
}

// WithStdout returns a Config that makes PRINT write to w instead of the
// default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(rt *Runtime) error {
		if w == nil {
			return fmt.Errorf("nil stdout")
		}
		rt.Stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes the runtime write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(rt *Runtime) error {
		if w == nil {
			return fmt.Errorf("nil stderr")
		}
		rt.Stderr = w
		return nil
	}
}

// WithLogger returns a Config that sends runtime trace messages to logger.
// By default trace messages are discarded.
func WithLogger(logger *log.Logger) Config {
	return func(rt *Runtime) error {
		if logger == nil {
			return fmt.Errorf("nil logger")
		}
		rt.Logger = logger
		return nil
	}
}

// WithMaxDepth returns a Config that limits the nesting depth of evaluation
// to n.  Exceeding the limit is a recursion-limit error.  A value of zero
// disables the limit, allowing runaway recursion to crash the process.
func WithMaxDepth(n int) Config {
	return func(rt *Runtime) error {
		if n < 0 {
			return fmt.Errorf("negative maximum depth: %d", n)
		}
		rt.MaxDepth = n
		return nil
	}
}

// WithSurplusArgs returns a Config that controls whether closures silently
// ignore arguments beyond their parameter list.  By default surplus arguments
// are an arity-error.
func WithSurplusArgs(ignore bool) Config {
	return func(rt *Runtime) error {
		rt.SurplusArgs = ignore
		return nil
	}
}
