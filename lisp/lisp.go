// Package lisp implements the data model and evaluator of a small,
// case-insensitive lisp dialect.
package lisp

import (
	"strings"

	"github.com/luthersystems/tinylisp/atom"
)

// LType is the type of an LVal.
type LType uint

// Possible LType values
const (
	LInvalid LType = iota
	LSymbol
	LInt
	LText
	LPair
	LPrimitive
	LClosure
	numLTypes
)

var ltypeStrings = [numLTypes]string{
	LInvalid:   "invalid",
	LSymbol:    "symbol",
	LInt:       "int",
	LText:      "text",
	LPair:      "pair",
	LPrimitive: "primitive",
	LClosure:   "closure",
}

func (t LType) String() string {
	if t >= numLTypes {
		return ltypeStrings[LInvalid]
	}
	return ltypeStrings[t]
}

// LVal is a lisp value.  Symbols, integers and text are interned so values
// with equal content are the same pointer.
type LVal interface {
	Type() LType
	// String returns the external form of the value.
	String() string
}

// Symbol is an interned, upper case identifier.
type Symbol struct {
	name string
}

func (s *Symbol) Type() LType    { return LSymbol }
func (s *Symbol) Name() string   { return s.name }
func (s *Symbol) String() string { return s.name }

// Int is an interned 64-bit integer.
type Int struct {
	value int64
}

func (n *Int) Type() LType    { return LInt }
func (n *Int) Value() int64   { return n.value }
func (n *Int) String() string { return formatString(n) }

// Text is an interned immutable string.
type Text struct {
	value string
}

func (s *Text) Type() LType    { return LText }
func (s *Text) Value() string  { return s.value }
func (s *Text) String() string { return formatString(s) }

var (
	symbols = atom.NewTable(func(name string) *Symbol { return &Symbol{name: name} })
	ints    = atom.NewTable(func(v int64) *Int { return &Int{value: v} })
	texts   = atom.NewTable(func(s string) *Text { return &Text{value: s} })
)

const (
	smallIntMin = -128
	smallIntMax = 1024
)

var smallInts = func() []*Int {
	cache := make([]*Int, smallIntMax-smallIntMin+1)
	for i := range cache {
		cache[i] = ints.Intern(int64(i + smallIntMin))
	}
	return cache
}()

// Intern returns the canonical symbol for name.  Names are case-insensitive.
// Interning "NIL" and "T" returns Empty and True respectively.
func Intern(name string) *Symbol {
	return symbols.Intern(strings.ToUpper(name))
}

// IntOf returns the canonical Int for v.
func IntOf(v int64) *Int {
	if smallIntMin <= v && v <= smallIntMax {
		return smallInts[v-smallIntMin]
	}
	return ints.Intern(v)
}

// TextOf returns the canonical Text for s.
func TextOf(s string) *Text {
	return texts.Intern(s)
}

// Sentinel values.  Empty is the empty list and the canonical false value.
// True is the canonical true value.  Neither symbol can be rebound.
var (
	Empty = Intern("NIL")
	True  = Intern("T")
	// Zero is the false value returned by predicates.
	Zero = IntOf(0)
)

// Symbols naming special operators
var (
	symIf     = Intern("IF")
	symDefine = Intern("DEFINE")
	symDefun  = Intern("DEFUN")
	symQuote  = Intern("QUOTE")
)

// IsEmpty returns true if v is the empty list.
func IsEmpty(v LVal) bool {
	return v == LVal(Empty)
}

// IsTrue returns false iff v is Empty or the integer zero.
func IsTrue(v LVal) bool {
	switch v := v.(type) {
	case *Symbol:
		return v != Empty
	case *Int:
		return v.value != 0
	default:
		return true
	}
}

// Bool returns True if ok is true and Zero otherwise.
func Bool(ok bool) LVal {
	if ok {
		return True
	}
	return Zero
}

// IsAtom returns true if v has no head and tail.  Empty is an atom.
func IsAtom(v LVal) bool {
	return v.Type() != LPair
}

// IsList returns true if v is Empty or a Pair.
func IsList(v LVal) bool {
	return IsEmpty(v) || v.Type() == LPair
}

// Quote returns the expression (QUOTE v).
func Quote(v LVal) LVal {
	return Cons(symQuote, Cons(v, Empty))
}
