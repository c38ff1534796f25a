package lisp

import "errors"

// Callable is a value that can be applied to a list of evaluated arguments.
type Callable interface {
	LVal
	Name() string
	Call(rt *Runtime, args LVal) (LVal, error)
}

// Eval evaluates expr in env.  Symbols are looked up in env, non-empty lists
// are special forms or function applications and every other value evaluates
// to itself.
func (rt *Runtime) Eval(expr LVal, env *Env) (LVal, error) {
	rt.depth++
	defer func() { rt.depth-- }()
	if rt.MaxDepth > 0 && rt.depth > rt.MaxDepth {
		rt.Logger.Printf("evaluation depth limit %d exceeded with %d active calls", rt.MaxDepth, rt.Stack.Len())
		return nil, Errorf(CondRecursionLimit, "maximum evaluation depth exceeded (%d)", rt.MaxDepth)
	}
	switch v := expr.(type) {
	case *Symbol:
		return env.Get(v)
	case *Pair:
		return rt.evalPair(v, env)
	default:
		return expr, nil
	}
}

func (rt *Runtime) evalPair(p *Pair, env *Env) (LVal, error) {
	if sym, ok := p.head.(*Symbol); ok {
		switch sym {
		case symIf:
			return rt.evalIf(p.tail, env)
		case symDefine:
			return rt.evalDefine(p.tail, env)
		case symDefun:
			return rt.evalDefun(p.tail, env)
		case symQuote:
			args, err := formArgs(symQuote, p.tail, 1, 1)
			if err != nil {
				return nil, err
			}
			return args[0], nil
		}
	}
	fv, err := rt.Eval(p.head, env)
	if err != nil {
		return nil, err
	}
	fn, ok := fv.(Callable)
	if !ok {
		return nil, typeErrorf("not a function: %v", fv)
	}
	args, err := rt.evalArgs(p.tail, env)
	if err != nil {
		return nil, err
	}
	return rt.Apply(fn, args)
}

// evalArgs evaluates the elements of list from left to right and returns a
// list of the results.
func (rt *Runtime) evalArgs(list LVal, env *Env) (LVal, error) {
	var b ListBuilder
	it := NewListIterator(list)
	for it.Next() {
		v, err := rt.Eval(it.Value(), env)
		if err != nil {
			return nil, err
		}
		b.Append(v)
	}
	if it.Err() != nil {
		return nil, typeErrorf("improper argument list: %v", list)
	}
	return b.List(), nil
}

// Apply calls fn with an already evaluated argument list.  A copy of the
// call stack is attached to errors returned by fn.
func (rt *Runtime) Apply(fn Callable, args LVal) (LVal, error) {
	rt.Stack.Push(fn)
	v, err := fn.Call(rt, args)
	if err != nil {
		var lerr *Error
		if errors.As(err, &lerr) && lerr.Stack == nil {
			lerr.Stack = rt.Stack.Copy()
		}
	}
	rt.Stack.Pop()
	return v, err
}

// (IF cond then [else])
func (rt *Runtime) evalIf(list LVal, env *Env) (LVal, error) {
	args, err := formArgs(symIf, list, 2, 3)
	if err != nil {
		return nil, err
	}
	cond, err := rt.Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	if IsTrue(cond) {
		return rt.Eval(args[1], env)
	}
	if len(args) < 3 {
		return Empty, nil
	}
	return rt.Eval(args[2], env)
}

// (DEFINE name expr)
func (rt *Runtime) evalDefine(list LVal, env *Env) (LVal, error) {
	args, err := formArgs(symDefine, list, 2, 2)
	if err != nil {
		return nil, err
	}
	name, err := bindableSymbol(symDefine, args[0])
	if err != nil {
		return nil, err
	}
	v, err := rt.Eval(args[1], env)
	if err != nil {
		return nil, err
	}
	return env.Define(name, v), nil
}

// (DEFUN name (param ...) expr ...)
//
// The closure is bound in env before DEFUN returns and captures env itself,
// so the body can call the function by name.
func (rt *Runtime) evalDefun(list LVal, env *Env) (LVal, error) {
	args, err := formArgs(symDefun, list, 3, -1)
	if err != nil {
		return nil, err
	}
	name, err := bindableSymbol(symDefun, args[0])
	if err != nil {
		return nil, err
	}
	env.Define(name, &Closure{
		Sym:    name,
		Params: args[1],
		Body:   args[2:],
		Env:    env,
	})
	return name, nil
}

// formArgs returns the arguments of a special form.  A negative max means
// there is no upper bound.
func formArgs(form *Symbol, list LVal, min, max int) ([]LVal, error) {
	args, _, ok := Slice(list)
	if !ok {
		return nil, typeErrorf("%s: improper argument list", form.name)
	}
	if err := checkArity(form.name, len(args), min, max); err != nil {
		return nil, err
	}
	return args, nil
}

func bindableSymbol(form *Symbol, v LVal) (*Symbol, error) {
	sym, ok := v.(*Symbol)
	if !ok {
		return nil, typeErrorf("%s: name is not a symbol: %v", form.name, v)
	}
	if sym == Empty || sym == True {
		return nil, typeErrorf("%s: cannot rebind constant %v", form.name, sym)
	}
	return sym, nil
}

func checkArity(name string, n, min, max int) error {
	if n >= min && (max < 0 || n <= max) {
		return nil
	}
	switch {
	case min == max:
		return arityErrorf("%s: expected %d %s (got %d)", name, min, plural(min, "argument"), n)
	case max < 0:
		return arityErrorf("%s: expected at least %d %s (got %d)", name, min, plural(min, "argument"), n)
	default:
		return arityErrorf("%s: expected %d to %d arguments (got %d)", name, min, max, n)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
