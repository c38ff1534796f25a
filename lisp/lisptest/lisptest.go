// Package lisptest runs sequences of lisp expressions against expected
// results.
package lisptest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/luthersystems/tinylisp/lisp"
	"github.com/luthersystems/tinylisp/parser/rdparser"
)

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a lisp.Runtime.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the external form of the result, or the error message
	Output string // text written by PRINT while evaluating Expr
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// Runner is a test runner.
type Runner struct {
	// Reader constructs the reader used to parse expressions.  When Reader is
	// nil rdparser.NewReader is used.
	Reader func() lisp.Reader
	// Configs are applied to every runtime after the reader and output
	// configuration.
	Configs []lisp.Config
}

// NewRuntime returns a runtime whose PRINT output is written to stdout.
func (r *Runner) NewRuntime(stdout *bytes.Buffer) (*lisp.Runtime, error) {
	newReader := r.Reader
	if newReader == nil {
		newReader = rdparser.NewReader
	}
	configs := []lisp.Config{
		lisp.WithReader(newReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(stdout),
	}
	configs = append(configs, r.Configs...)
	rt, err := lisp.NewRuntime(configs...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lisp runtime: %w", err)
	}
	return rt, nil
}

// RunTestSuite runs each TestSequence in tests on an isolated lisp.Runtime.
// Expressions in a sequence share the runtime, so definitions persist from
// one expression to the next, including across failures.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	for i, test := range tests {
		var stdout bytes.Buffer
		rt, err := r.NewRuntime(&stdout)
		if err != nil {
			t.Fatal(err)
		}
		for j, expr := range test.TestSequence {
			stdout.Reset()
			var result string
			v, err := rt.EvalString(expr.Expr)
			if err != nil {
				result = err.Error()
			} else {
				result = v.String()
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if stdout.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, stdout.String())
			}
			if rt.Stack.Len() != 0 {
				t.Errorf("test %d %q: expr %d: call stack not empty after evaluation (%d frames)", i, test.Name, j, rt.Stack.Len())
			}
		}
	}
}

// RunTestSuite runs each TestSequence in tests on an isolated lisp.Runtime
// using the default reader.
func RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	(&Runner{}).RunTestSuite(t, tests)
}
