package repl

import (
	"testing"

	"github.com/luthersystems/tinylisp/lisp"
	"github.com/stretchr/testify/assert"
)

func TestSymbolCompleter(t *testing.T) {
	env := lisp.NewEnv(0)
	env.Define(lisp.Intern("fact"), lisp.IntOf(1))
	env.Define(lisp.Intern("factorial"), lisp.IntOf(2))
	env.Define(lisp.Intern("first"), lisp.IntOf(3))
	c := &symbolCompleter{env: env}

	complete := func(line string) ([]string, int) {
		rs := []rune(line)
		suffixes, n := c.Do(rs, len(rs))
		var ss []string
		for _, s := range suffixes {
			ss = append(ss, string(s))
		}
		return ss, n
	}

	ss, n := complete("(fa")
	assert.Equal(t, []string{"ct", "ctorial"}, ss)
	assert.Equal(t, 2, n)

	ss, n = complete("(print 'FAC")
	assert.Equal(t, []string{"T", "TORIAL"}, ss)
	assert.Equal(t, 3, n)

	ss, _ = complete("(fact")
	assert.Equal(t, []string{"orial"}, ss)

	ss, n = complete("(f ")
	assert.Nil(t, ss)
	assert.Equal(t, 0, n)

	ss, _ = complete("(xyz")
	assert.Nil(t, ss)
}
