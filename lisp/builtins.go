package lisp

import (
	"bufio"
)

// LBuiltin is a native function applied to evaluated arguments.
type LBuiltin func(rt *Runtime, args []LVal) (LVal, error)

// Primitive is a Callable implemented in Go.  A Primitive checks the number
// of its arguments before calling its LBuiltin, which validates argument
// types.
type Primitive struct {
	name string
	min  int
	max  int // negative for variadic primitives
	fn   LBuiltin
}

var _ Callable = (*Primitive)(nil)

// NewPrimitive returns a Primitive that accepts between min and max
// arguments.  A negative max means the primitive is variadic.
func NewPrimitive(name string, min, max int, fn LBuiltin) *Primitive {
	return &Primitive{name: name, min: min, max: max, fn: fn}
}

func (p *Primitive) Type() LType    { return LPrimitive }
func (p *Primitive) Name() string   { return p.name }
func (p *Primitive) String() string { return formatString(p) }

// Call implements Callable.
func (p *Primitive) Call(rt *Runtime, args LVal) (LVal, error) {
	cells, _, ok := Slice(args)
	if !ok {
		return nil, typeErrorf("%s: improper argument list", p.name)
	}
	if err := checkArity(p.name, len(cells), p.min, p.max); err != nil {
		return nil, err
	}
	return p.fn(rt, cells)
}

const variadic = -1

var langBuiltins = []*Primitive{
	{"+", 0, variadic, builtinAdd},
	{"-", 1, variadic, builtinSub},
	{"*", 0, variadic, builtinMul},
	{"/", 2, variadic, builtinDiv},
	{"AND", 0, variadic, builtinAnd},
	{"OR", 0, variadic, builtinOr},
	{"NOT", 1, 1, builtinNot},
	{"=", 2, variadic, compareBuiltin("=", func(a, b int64) bool { return a == b })},
	{"<", 2, variadic, compareBuiltin("<", func(a, b int64) bool { return a < b })},
	{">", 2, variadic, compareBuiltin(">", func(a, b int64) bool { return a > b })},
	{"FIRST", 1, 1, builtinFirst},
	{"REST", 1, 1, builtinRest},
	{"CONS", 2, 2, builtinCons},
	{"LIST", 0, variadic, builtinList},
	{"NULL?", 1, 1, builtinNullP},
	{"LIST?", 1, 1, builtinListP},
	{"SYMBOL?", 1, 1, builtinSymbolP},
	{"NUMBER?", 1, 1, builtinNumberP},
	{"PRINT", 0, variadic, builtinPrint},
}

// DefaultBuiltins returns the primitives installed in the global environment
// of every Runtime.
func DefaultBuiltins() []*Primitive {
	return langBuiltins
}

func intArgs(name string, args []LVal) ([]int64, error) {
	ns := make([]int64, len(args))
	for i, v := range args {
		n, ok := v.(*Int)
		if !ok {
			return nil, typeErrorf("%s: argument is not a number: %v", name, v)
		}
		ns[i] = n.value
	}
	return ns, nil
}

func builtinAdd(rt *Runtime, args []LVal) (LVal, error) {
	ns, err := intArgs("+", args)
	if err != nil {
		return nil, err
	}
	var sum int64
	for _, n := range ns {
		sum += n
	}
	return IntOf(sum), nil
}

func builtinSub(rt *Runtime, args []LVal) (LVal, error) {
	ns, err := intArgs("-", args)
	if err != nil {
		return nil, err
	}
	if len(ns) == 1 {
		return IntOf(-ns[0]), nil
	}
	diff := ns[0]
	for _, n := range ns[1:] {
		diff -= n
	}
	return IntOf(diff), nil
}

func builtinMul(rt *Runtime, args []LVal) (LVal, error) {
	ns, err := intArgs("*", args)
	if err != nil {
		return nil, err
	}
	var prod int64 = 1
	for _, n := range ns {
		prod *= n
	}
	return IntOf(prod), nil
}

func builtinDiv(rt *Runtime, args []LVal) (LVal, error) {
	ns, err := intArgs("/", args)
	if err != nil {
		return nil, err
	}
	quo := ns[0]
	for _, n := range ns[1:] {
		if n == 0 {
			return nil, Errorf(CondArithmetic, "/: division by zero")
		}
		quo /= n
	}
	return IntOf(quo), nil
}

func builtinAnd(rt *Runtime, args []LVal) (LVal, error) {
	for _, v := range args {
		if !IsTrue(v) {
			return Zero, nil
		}
	}
	return True, nil
}

func builtinOr(rt *Runtime, args []LVal) (LVal, error) {
	for _, v := range args {
		if IsTrue(v) {
			return True, nil
		}
	}
	return Zero, nil
}

func builtinNot(rt *Runtime, args []LVal) (LVal, error) {
	return Bool(!IsTrue(args[0])), nil
}

// compareBuiltin returns a chained comparison.  The result is true when cmp
// holds for every adjacent pair of arguments.
func compareBuiltin(name string, cmp func(a, b int64) bool) LBuiltin {
	return func(rt *Runtime, args []LVal) (LVal, error) {
		ns, err := intArgs(name, args)
		if err != nil {
			return nil, err
		}
		for i := 1; i < len(ns); i++ {
			if !cmp(ns[i-1], ns[i]) {
				return Zero, nil
			}
		}
		return True, nil
	}
}

func builtinFirst(rt *Runtime, args []LVal) (LVal, error) {
	return First(args[0])
}

func builtinRest(rt *Runtime, args []LVal) (LVal, error) {
	return Rest(args[0])
}

func builtinCons(rt *Runtime, args []LVal) (LVal, error) {
	return Cons(args[0], args[1]), nil
}

func builtinList(rt *Runtime, args []LVal) (LVal, error) {
	return List(args...), nil
}

func builtinNullP(rt *Runtime, args []LVal) (LVal, error) {
	return Bool(IsEmpty(args[0])), nil
}

func builtinListP(rt *Runtime, args []LVal) (LVal, error) {
	return Bool(IsList(args[0])), nil
}

func builtinSymbolP(rt *Runtime, args []LVal) (LVal, error) {
	return Bool(args[0].Type() == LSymbol), nil
}

func builtinNumberP(rt *Runtime, args []LVal) (LVal, error) {
	return Bool(args[0].Type() == LInt), nil
}

func builtinPrint(rt *Runtime, args []LVal) (LVal, error) {
	w := bufio.NewWriter(rt.Stdout)
	for i, v := range args {
		if i > 0 {
			w.WriteString(" ") //nolint:errcheck // reported by Flush
		}
		Format(w, v) //nolint:errcheck // reported by Flush
	}
	w.WriteString("\n") //nolint:errcheck // reported by Flush
	if err := w.Flush(); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return Empty, nil
	}
	return args[0], nil
}
