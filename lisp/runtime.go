package lisp

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// DefaultMaxDepth is the evaluation depth limit of a new Runtime.  The limit
// counts nested Eval calls, not function calls.  Each closure call nests
// several evaluations, so user recursion is limited to a fraction of it.
const DefaultMaxDepth = 10000

// Reader parses source text into lisp values.
type Reader interface {
	// Read parses the first expression in text.  Text following the
	// expression is ignored.  Text containing no expression reads as Empty.
	Read(text string) (LVal, error)
	// ReadProgram parses every expression in r.  The name is used to report
	// source locations.
	ReadProgram(name string, r io.Reader) ([]LVal, error)
}

// Runtime holds the global environment and the state of evaluation.  A
// Runtime must not be used by multiple goroutines concurrently.
type Runtime struct {
	Global *Env
	Reader Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
	Stack  *CallStack
	// MaxDepth limits the nesting of Eval calls.  Zero means no limit.
	MaxDepth int
	// SurplusArgs makes closures ignore arguments beyond their parameters.
	SurplusArgs bool

	depth int
}

// NewRuntime returns a Runtime whose global environment contains every
// builtin primitive.
func NewRuntime(configs ...Config) (*Runtime, error) {
	rt := &Runtime{
		Global:   NewEnv(len(DefaultBuiltins())),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Logger:   log.New(io.Discard, "", 0),
		Stack:    &CallStack{},
		MaxDepth: DefaultMaxDepth,
	}
	for _, fn := range configs {
		err := fn(rt)
		if err != nil {
			return nil, err
		}
	}
	for _, prim := range DefaultBuiltins() {
		rt.Global.Define(Intern(prim.name), prim)
	}
	rt.Logger.Printf("installed %d primitives", rt.Global.Len())
	return rt, nil
}

// Read parses the first expression in text using the runtime's Reader.
func (rt *Runtime) Read(text string) (LVal, error) {
	if rt.Reader == nil {
		return nil, fmt.Errorf("no reader configured")
	}
	return rt.Reader.Read(text)
}

// EvalString reads the first expression in text and evaluates it in the
// global environment.
func (rt *Runtime) EvalString(text string) (LVal, error) {
	expr, err := rt.Read(text)
	if err != nil {
		return nil, err
	}
	return rt.Eval(expr, rt.Global)
}

// Load reads every expression in r and evaluates them in order in the global
// environment, returning the value of the last one.  Load stops at the first
// error.  Definitions evaluated before the error remain in effect.
func (rt *Runtime) Load(name string, r io.Reader) (LVal, error) {
	if rt.Reader == nil {
		return nil, fmt.Errorf("no reader configured")
	}
	exprs, err := rt.Reader.ReadProgram(name, r)
	if err != nil {
		return nil, err
	}
	var result LVal = Empty
	for _, expr := range exprs {
		result, err = rt.Eval(expr, rt.Global)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// LoadString is like Load but reads source from text.
func (rt *Runtime) LoadString(name string, text string) (LVal, error) {
	return rt.Load(name, strings.NewReader(text))
}

