package lisp

// Pair is a cons cell.  A chain of pairs whose last tail is Empty is a
// proper list.  Pairs are never modified once a list has been constructed.
type Pair struct {
	head LVal
	tail LVal
}

func (p *Pair) Type() LType    { return LPair }
func (p *Pair) Head() LVal     { return p.head }
func (p *Pair) Tail() LVal     { return p.tail }
func (p *Pair) String() string { return formatString(p) }

// Cons returns a new Pair from head and tail.  If tail is a list then Cons
// returns a list as well.
//
//	(cons head tail)
func Cons(head, tail LVal) *Pair {
	return &Pair{head: head, tail: tail}
}

// List returns a proper list containing the elements of v.  List returns
// Empty when v is empty.
func List(v ...LVal) LVal {
	return ListTail(Empty, v...)
}

// ListTail returns a chain of pairs holding the elements of v whose final
// tail is tail.  ListTail returns tail when v is empty.
func ListTail(tail LVal, v ...LVal) LVal {
	lis := tail
	for i := len(v) - 1; i >= 0; i-- {
		lis = Cons(v[i], lis)
	}
	return lis
}

// First returns the head of v.  First returns a type-error if v is an atom.
func First(v LVal) (LVal, error) {
	p, ok := v.(*Pair)
	if !ok {
		return nil, typeErrorf("first: argument is not a list: %v", v)
	}
	return p.head, nil
}

// Rest returns the tail of v.  Rest returns a type-error if v is an atom.
func Rest(v LVal) (LVal, error) {
	p, ok := v.(*Pair)
	if !ok {
		return nil, typeErrorf("rest: argument is not a list: %v", v)
	}
	return p.tail, nil
}

// Slice collects the elements of list v into a slice.  If v does not end in
// Empty then ok is false and tail holds the final non-list value.
func Slice(v LVal) (s []LVal, tail LVal, ok bool) {
	for {
		p, isPair := v.(*Pair)
		if !isPair {
			return s, v, IsEmpty(v)
		}
		s = append(s, p.head)
		v = p.tail
	}
}

// Len returns the number of pairs in the chain starting at v.
func Len(v LVal) int {
	n := 0
	for p, ok := v.(*Pair); ok; p, ok = p.tail.(*Pair) {
		n++
	}
	return n
}

// ListBuilder constructs a proper list front to back.
type ListBuilder struct {
	front LVal
	back  *Pair
}

// List returns the list built so far.  Lists returned by List must not be
// retained if Append is called again.
func (b *ListBuilder) List() LVal {
	if b.front == nil {
		return Empty
	}
	return b.front
}

// Append adds elements to the end of the list.
func (b *ListBuilder) Append(v ...LVal) {
	for i := range v {
		p := Cons(v[i], Empty)
		if b.back == nil {
			b.front = p
		} else {
			b.back.tail = p
		}
		b.back = p
	}
}

// ListIterator iterates through the elements of a list.
type ListIterator struct {
	v    LVal
	rest LVal
	err  error
}

// NewListIterator returns a ListIterator that will iterate through list v.
func NewListIterator(v LVal) *ListIterator {
	return &ListIterator{rest: v}
}

// Next advances the iterator and returns true if there is an element to read
// with Value.  Next returns false at the end of the list or if the list is
// improper, in which case Err returns a type-error.
func (it *ListIterator) Next() bool {
	if it.err != nil {
		return false
	}
	switch rest := it.rest.(type) {
	case *Pair:
		it.v = rest.head
		it.rest = rest.tail
		return true
	default:
		if !IsEmpty(rest) {
			it.err = typeErrorf("improper list ends in %v", rest)
		}
		it.v = nil
		return false
	}
}

// Value returns the current list element.
func (it *ListIterator) Value() LVal {
	return it.v
}

// Rest returns the portion of the list following Value.
func (it *ListIterator) Rest() LVal {
	return it.rest
}

// Err returns any error encountered during iteration.
func (it *ListIterator) Err() error {
	return it.err
}
