package lisp

type binding struct {
	name  *Symbol
	value LVal
}

// Env is a mutable set of variable bindings.  Bindings are kept in the order
// symbols were first defined.
//
// Envs are not linked together.  A closure call evaluates its body in a
// Snapshot of the environment the closure captured, so definitions made by
// the body never escape the call.
type Env struct {
	pairs []binding
	index map[*Symbol]int
}

// NewEnv returns an empty Env with capacity for n bindings.
func NewEnv(n int) *Env {
	return &Env{
		pairs: make([]binding, 0, n),
		index: make(map[*Symbol]int, n),
	}
}

// Len returns the number of symbols bound in env.
func (env *Env) Len() int {
	return len(env.pairs)
}

// Lookup returns the value bound to sym, if any.  Empty and True are
// constants and always resolve to themselves.
func (env *Env) Lookup(sym *Symbol) (LVal, bool) {
	if sym == Empty || sym == True {
		return sym, true
	}
	i, ok := env.index[sym]
	if !ok {
		return nil, false
	}
	return env.pairs[i].value, true
}

// Get returns the value bound to sym or an undefined-variable error.
func (env *Env) Get(sym *Symbol) (LVal, error) {
	v, ok := env.Lookup(sym)
	if !ok {
		return nil, Errorf(CondUndefined, "%s", sym.name)
	}
	return v, nil
}

// Define binds sym to v, replacing any previous binding, and returns v.
func (env *Env) Define(sym *Symbol, v LVal) LVal {
	i, ok := env.index[sym]
	if ok {
		env.pairs[i].value = v
		return v
	}
	env.index[sym] = len(env.pairs)
	env.pairs = append(env.pairs, binding{sym, v})
	return v
}

// Snapshot returns an independent copy of env.  Later definitions in either
// Env are not visible in the other.
func (env *Env) Snapshot() *Env {
	cp := &Env{
		pairs: make([]binding, len(env.pairs), len(env.pairs)+4),
		index: make(map[*Symbol]int, len(env.pairs)+4),
	}
	copy(cp.pairs, env.pairs)
	for sym, i := range env.index {
		cp.index[sym] = i
	}
	return cp
}

// Symbols returns the bound symbols in the order they were first defined.
func (env *Env) Symbols() []*Symbol {
	syms := make([]*Symbol, len(env.pairs))
	for i := range env.pairs {
		syms[i] = env.pairs[i].name
	}
	return syms
}
