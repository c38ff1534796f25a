package lisp

// Closure is a function defined with DEFUN.
type Closure struct {
	Sym    *Symbol
	Params LVal
	Body   []LVal
	// Env is the environment the closure was defined in.  It is shared, not
	// copied, so later definitions in Env are visible to the closure.
	Env *Env
}

var _ Callable = (*Closure)(nil)

func (c *Closure) Type() LType    { return LClosure }
func (c *Closure) Name() string   { return c.Sym.name }
func (c *Closure) String() string { return formatString(c) }

// Call binds the parameters of c to args in a snapshot of c.Env and
// evaluates the body there, returning the value of the last expression.
func (c *Closure) Call(rt *Runtime, args LVal) (LVal, error) {
	local := c.Env.Snapshot()
	params := c.Params
	for {
		p, ok := params.(*Pair)
		if !ok {
			break
		}
		sym, ok := p.head.(*Symbol)
		if !ok {
			return nil, typeErrorf("%s: parameter is not a symbol: %v", c.Sym.name, p.head)
		}
		if sym == Empty || sym == True {
			return nil, typeErrorf("%s: cannot bind constant %v", c.Sym.name, sym)
		}
		arg, ok := args.(*Pair)
		if !ok {
			return nil, arityErrorf("%s: missing arguments", c.Sym.name)
		}
		local.Define(sym, arg.head)
		params, args = p.tail, arg.tail
	}
	if !IsEmpty(params) {
		return nil, typeErrorf("%s: parameter list is not a list: %v", c.Sym.name, c.Params)
	}
	if !IsEmpty(args) && !rt.SurplusArgs {
		return nil, arityErrorf("%s: too many arguments", c.Sym.name)
	}
	var result LVal = Empty
	for _, expr := range c.Body {
		var err error
		result, err = rt.Eval(expr, local)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
