package lisp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntern(t *testing.T) {
	assert.Same(t, Intern("foo"), Intern("FOO"))
	assert.Same(t, Intern("Foo"), Intern("fOO"))
	assert.Equal(t, "FOO", Intern("foo").Name())
	assert.Same(t, Empty, Intern("nil"))
	assert.Same(t, True, Intern("t"))
	assert.NotSame(t, Intern("a"), Intern("b"))

	assert.Same(t, IntOf(5), IntOf(5))
	assert.Same(t, IntOf(-128), IntOf(-128))
	assert.Same(t, IntOf(1<<40), IntOf(1<<40))
	assert.Same(t, IntOf(-1<<40), IntOf(-1<<40))
	assert.Equal(t, int64(1<<40), IntOf(1<<40).Value())
	assert.Same(t, Zero, IntOf(0))

	assert.Same(t, TextOf("abc"), TextOf("abc"))
	assert.NotSame(t, TextOf("abc"), TextOf("ABC"))
}

func TestIsTrue(t *testing.T) {
	for _, v := range []LVal{Empty, Zero} {
		assert.False(t, IsTrue(v), "value: %v", v)
	}
	for _, v := range []LVal{True, IntOf(1), IntOf(-1), TextOf(""), Intern("x"), List(Zero), Cons(Empty, Empty), langBuiltins[0]} {
		assert.True(t, IsTrue(v), "value: %v", v)
	}
	assert.Same(t, True, Bool(true))
	assert.Same(t, Zero, Bool(false))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v      LVal
		result string
	}{
		{Empty, "NIL"},
		{True, "T"},
		{IntOf(-42), "-42"},
		{TextOf("a \"b\"\n"), `"a \"b\"\n"`},
		{Intern("null?"), "NULL?"},
		{List(IntOf(1), IntOf(2), IntOf(3)), "(1 2 3)"},
		{Cons(IntOf(1), IntOf(2)), "(1 . 2)"},
		{ListTail(Intern("c"), Intern("a"), Intern("b")), "(A B . C)"},
		{List(List(), List(Empty)), "(NIL (NIL))"},
		{Quote(Intern("x")), "(QUOTE X)"},
		{NewPrimitive("F", 0, 0, nil), "#<primitive:F>"},
		{&Closure{Sym: Intern("g")}, "#<closure:G>"},
	}
	for _, test := range tests {
		assert.Equal(t, test.result, test.v.String())
		var buf bytes.Buffer
		n, err := Format(&buf, test.v)
		assert.NoError(t, err)
		assert.Equal(t, len(test.result), n)
	}
}

type failWriter struct{ n int }

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, io.ErrShortWrite
	}
	w.n--
	return len(p), nil
}

func TestFormat_writeError(t *testing.T) {
	n, err := Format(&failWriter{n: 2}, List(IntOf(1), IntOf(2)))
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, 2, n)
}

func TestCons(t *testing.T) {
	lis := List(IntOf(1), IntOf(2), IntOf(3))
	head, err := First(lis)
	require.NoError(t, err)
	assert.Same(t, IntOf(1), head)
	rest, err := Rest(lis)
	require.NoError(t, err)
	assert.Equal(t, "(2 3)", rest.String())
	assert.Equal(t, 3, Len(lis))
	assert.Equal(t, 0, Len(Empty))

	for _, v := range []LVal{Empty, True, IntOf(1), TextOf("x")} {
		assert.True(t, IsAtom(v))
		_, err = First(v)
		assert.True(t, IsCondition(err, CondType), "value: %v", v)
		_, err = Rest(v)
		assert.True(t, IsCondition(err, CondType), "value: %v", v)
	}

	s, tail, ok := Slice(lis)
	assert.True(t, ok)
	assert.Same(t, Empty, tail)
	assert.Equal(t, []LVal{IntOf(1), IntOf(2), IntOf(3)}, s)

	s, tail, ok = Slice(Cons(IntOf(1), IntOf(2)))
	assert.False(t, ok)
	assert.Same(t, IntOf(2), tail)
	assert.Equal(t, []LVal{IntOf(1)}, s)

	assert.Same(t, Empty, List())
	assert.Same(t, IntOf(7), ListTail(IntOf(7)))
}

func TestListBuilder(t *testing.T) {
	var b ListBuilder
	assert.Same(t, Empty, b.List())
	b.Append(IntOf(1))
	b.Append(IntOf(2), IntOf(3))
	assert.Equal(t, "(1 2 3)", b.List().String())
}

func TestListIterator(t *testing.T) {
	var vals []string
	it := NewListIterator(List(Intern("a"), Intern("b")))
	for it.Next() {
		vals = append(vals, it.Value().String())
	}
	assert.NoError(t, it.Err())
	assert.Equal(t, []string{"A", "B"}, vals)

	it = NewListIterator(Cons(IntOf(1), IntOf(2)))
	assert.True(t, it.Next())
	assert.Same(t, IntOf(2), it.Rest())
	assert.False(t, it.Next())
	assert.True(t, IsCondition(it.Err(), CondType))
	assert.False(t, it.Next())
}

func TestEnv(t *testing.T) {
	env := NewEnv(0)
	x, y := Intern("x"), Intern("y")
	_, err := env.Get(x)
	assert.True(t, IsCondition(err, CondUndefined))
	assert.Equal(t, "undefined-variable: X", err.Error())

	assert.Same(t, IntOf(1), env.Define(x, IntOf(1)))
	env.Define(y, IntOf(2))
	env.Define(x, IntOf(3))
	v, err := env.Get(x)
	require.NoError(t, err)
	assert.Same(t, IntOf(3), v)
	assert.Equal(t, []*Symbol{x, y}, env.Symbols())

	v, ok := env.Lookup(Empty)
	assert.True(t, ok)
	assert.Same(t, Empty, v)
	v, ok = env.Lookup(True)
	assert.True(t, ok)
	assert.Same(t, True, v)
}

func TestEnv_Snapshot(t *testing.T) {
	env := NewEnv(0)
	x, y := Intern("x"), Intern("y")
	env.Define(x, IntOf(1))
	cp := env.Snapshot()
	cp.Define(x, IntOf(99))
	cp.Define(y, IntOf(2))
	env.Define(Intern("z"), IntOf(3))

	v, _ := env.Lookup(x)
	assert.Same(t, IntOf(1), v)
	_, ok := env.Lookup(y)
	assert.False(t, ok)
	v, _ = cp.Lookup(x)
	assert.Same(t, IntOf(99), v)
	_, ok = cp.Lookup(Intern("z"))
	assert.False(t, ok)
	assert.Equal(t, 2, env.Len())
	assert.Equal(t, 2, cp.Len())
}

func TestCallStack(t *testing.T) {
	s := &CallStack{}
	assert.Nil(t, s.Top())
	s.Push(NewPrimitive("+", 0, -1, nil))
	s.Push(&Closure{Sym: Intern("fact")})
	assert.Equal(t, "FACT", s.Top().Name)
	cp := s.Copy()
	assert.Equal(t, CallFrame{"FACT", LClosure}, s.Pop())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, cp.Len())

	var buf bytes.Buffer
	_, err := cp.DebugPrint(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Stack Trace [2 frames -- entrypoint last]:\n"+
		"  height 1: closure FACT\n"+
		"  height 0: primitive +\n", buf.String())

	s.Pop()
	assert.Equal(t, 0, s.Len())
	assert.Panics(t, func() { s.Pop() })
}

func TestError(t *testing.T) {
	err := Errorf(CondArity, "%s: expected %d arguments", "CONS", 2)
	assert.Equal(t, "arity-error: CONS: expected 2 arguments", err.Error())
	assert.Nil(t, errors.Unwrap(err))

	cause := errors.New("boom")
	err = Errorf(CondParse, "reading: %w", cause)
	assert.Same(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("context: %w", err)
	assert.Equal(t, CondParse, ConditionOf(wrapped))
	assert.True(t, IsCondition(wrapped, CondParse))
	assert.False(t, IsCondition(wrapped, CondType))
	assert.False(t, IsCondition(nil, CondParse))
	assert.Equal(t, Condition(""), ConditionOf(cause))

	assert.Equal(t, "type-error: boom", (&Error{Condition: CondType, Err: cause}).Error())
}

func TestEval_selfEvaluating(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)
	for _, v := range []LVal{Empty, True, IntOf(5), TextOf("x"), langBuiltins[0]} {
		result, err := rt.Eval(v, rt.Global)
		require.NoError(t, err)
		assert.Same(t, v, result)
	}
	_, err = rt.Eval(Intern("unbound-symbol"), rt.Global)
	assert.True(t, IsCondition(err, CondUndefined))
	assert.Equal(t, len(langBuiltins), rt.Global.Len())
}

func TestEval_depthLimit(t *testing.T) {
	var stderr bytes.Buffer
	var logs bytes.Buffer
	rt, err := NewRuntime(WithMaxDepth(50), WithStderr(&stderr), WithLogger(log.New(&logs, "lisp: ", 0)))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "installed")

	// (DEFUN LOOP (N) (LOOP N))
	loop := Intern("loop")
	n := Intern("n")
	_, err = rt.Eval(List(symDefun, loop, List(n), List(loop, n)), rt.Global)
	require.NoError(t, err)
	_, err = rt.Eval(List(loop, IntOf(1)), rt.Global)
	require.Error(t, err)
	assert.True(t, IsCondition(err, CondRecursionLimit))
	var lerr *Error
	require.True(t, errors.As(err, &lerr))
	require.NotNil(t, lerr.Stack)
	assert.Greater(t, lerr.Stack.Len(), 1)
	assert.Equal(t, "LOOP", lerr.Stack.Top().Name)
	assert.Contains(t, logs.String(), "depth limit 50 exceeded")

	// the runtime remains usable
	assert.Equal(t, 0, rt.Stack.Len())
	v, err := rt.Eval(List(Intern("+"), IntOf(1), IntOf(2)), rt.Global)
	require.NoError(t, err)
	assert.Same(t, IntOf(3), v)
}

func TestEval_defaultDepth(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)
	// (DEFUN DOWN (N) (IF (= N 0) 0 (DOWN (- N 1))))
	down, n := Intern("down"), Intern("n")
	body := List(symIf, List(Intern("="), n, Zero), Zero, List(down, List(Intern("-"), n, IntOf(1))))
	_, err = rt.Eval(List(symDefun, down, List(n), body), rt.Global)
	require.NoError(t, err)
	v, err := rt.Eval(List(down, IntOf(1000)), rt.Global)
	require.NoError(t, err)
	assert.Same(t, Zero, v)
	_, err = rt.Eval(List(down, IntOf(DefaultMaxDepth)), rt.Global)
	assert.True(t, IsCondition(err, CondRecursionLimit))
	// every call nests at least two evaluations
	_, err = rt.Eval(List(down, IntOf(DefaultMaxDepth/2+100)), rt.Global)
	assert.True(t, IsCondition(err, CondRecursionLimit))
	assert.Equal(t, 0, rt.Stack.Len())
}

func TestRuntime_noReader(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)
	_, err = rt.EvalString("1")
	assert.Error(t, err)
	_, err = rt.LoadString("test", "1")
	assert.Error(t, err)
}

func TestConfig(t *testing.T) {
	_, err := NewRuntime(WithStdout(nil))
	assert.Error(t, err)
	_, err = NewRuntime(WithStderr(nil))
	assert.Error(t, err)
	_, err = NewRuntime(WithReader(nil))
	assert.Error(t, err)
	_, err = NewRuntime(WithLogger(nil))
	assert.Error(t, err)
	_, err = NewRuntime(WithMaxDepth(-1))
	assert.Error(t, err)
	rt, err := NewRuntime(WithMaxDepth(0), WithSurplusArgs(true))
	require.NoError(t, err)
	assert.Equal(t, 0, rt.MaxDepth)
	assert.True(t, rt.SurplusArgs)
}

func TestCheckArity(t *testing.T) {
	assert.NoError(t, checkArity("F", 2, 2, 3))
	assert.NoError(t, checkArity("F", 5, 1, -1))
	assert.EqualError(t, checkArity("F", 0, 1, 1), "arity-error: F: expected 1 argument (got 0)")
	assert.EqualError(t, checkArity("F", 0, 2, -1), "arity-error: F: expected at least 2 arguments (got 0)")
	assert.EqualError(t, checkArity("F", 4, 2, 3), "arity-error: F: expected 2 to 3 arguments (got 4)")
}
