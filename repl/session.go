package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/luthersystems/tinylisp/lisp"
)

// Status tells the terminal loop what to do after a line is handled.
type Status int

// Possible Status values
const (
	// Ready means the session is waiting for a new expression.
	Ready Status = iota
	// Continue means the buffered input is an incomplete expression.
	Continue
	// Exit means the user asked to end the session.
	Exit
)

// Session evaluates lines of input in a runtime.  Input that ends inside an
// expression is buffered until a later line completes it.
type Session struct {
	rt  *lisp.Runtime
	out io.Writer
	err io.Writer
	buf strings.Builder

	// PrintStack causes the call stack of a failed evaluation to be printed
	// along with the error.
	PrintStack bool
}

// NewSession returns a Session that writes results to out and errors to
// errOut.  The runtime's Stdout and Stderr are redirected to the same writers
// so PRINT output is ordered with the printed results.
func NewSession(rt *lisp.Runtime, out, errOut io.Writer) *Session {
	rt.Stdout = out
	rt.Stderr = errOut
	return &Session{rt: rt, out: out, err: errOut}
}

// Pending returns true if the session holds an incomplete expression.
func (s *Session) Pending() bool {
	return s.buf.Len() > 0
}

// Reset discards any incomplete expression.
func (s *Session) Reset() {
	s.buf.Reset()
}

// Line handles one line of input.  Every complete expression in the
// buffered input is evaluated and its value printed.  Evaluation stops at
// the first error, which is reported; definitions made before the error
// remain in effect.
func (s *Session) Line(line string) Status {
	if !s.Pending() {
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return Ready
		case "exit", "quit":
			return Exit
		}
	}
	if s.Pending() {
		s.buf.WriteString("\n")
	}
	s.buf.WriteString(line)

	exprs, err := s.rt.Reader.ReadProgram("<repl>", strings.NewReader(s.buf.String()))
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return Continue
	}
	s.Reset()
	if err != nil {
		s.report(err)
		return Ready
	}
	for _, expr := range exprs {
		v, err := s.rt.Eval(expr, s.rt.Global)
		if err != nil {
			s.report(err)
			return Ready
		}
		fmt.Fprintln(s.out, v)
	}
	return Ready
}

func (s *Session) report(err error) {
	fmt.Fprintln(s.err, err)
	var lerr *lisp.Error
	if s.PrintStack && errors.As(err, &lerr) && lerr.Stack != nil {
		lerr.Stack.DebugPrint(s.err) //nolint:errcheck
	}
}
