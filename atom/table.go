// Package atom provides interning tables.  A Table maps a normalized key to a
// single canonical value which is created on first reference and retained
// for the lifetime of the table.
package atom

import "sync"

// Table interns values of type V keyed by K.  A Table is safe for concurrent
// use although the interpreter itself only evaluates on one goroutine.
type Table[K comparable, V any] struct {
	sync sync.RWMutex
	make func(K) V
	m    map[K]V
}

// NewTable returns a Table that calls fn to construct the canonical value for
// a key the first time the key is interned.  The returned value of fn is
// never replaced.
func NewTable[K comparable, V any](fn func(K) V) *Table[K, V] {
	if fn == nil {
		panic("nil constructor")
	}
	return &Table[K, V]{
		make: fn,
		m:    make(map[K]V),
	}
}

// Intern returns the canonical value for k, constructing it if k has not been
// interned yet.
func (t *Table[K, V]) Intern(k K) V {
	t.sync.RLock()
	v, ok := t.m[k]
	t.sync.RUnlock()
	if ok {
		return v
	}
	t.sync.Lock()
	defer t.sync.Unlock()
	// another goroutine may have won the race for the write lock
	if v, ok := t.m[k]; ok {
		return v
	}
	v = t.make(k)
	t.m[k] = v
	return v
}
