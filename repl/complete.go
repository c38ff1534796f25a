package repl

import (
	"strings"
	"unicode"

	"github.com/luthersystems/tinylisp/lisp"
)

// symbolCompleter completes the symbol under the cursor with the names bound
// in an environment.  It implements readline.AutoCompleter.
type symbolCompleter struct {
	env *lisp.Env
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && isSymbolRune(line[start-1]) {
		start--
	}
	typed := string(line[start:pos])
	if typed == "" {
		return nil, 0
	}
	prefix := strings.ToUpper(typed)
	lower := typed == strings.ToLower(typed)
	var suffixes [][]rune
	for _, sym := range c.env.Symbols() {
		name := sym.Name()
		if len(name) <= len(prefix) || !strings.HasPrefix(name, prefix) {
			continue
		}
		suffix := name[len(prefix):]
		if lower {
			suffix = strings.ToLower(suffix)
		}
		suffixes = append(suffixes, []rune(suffix))
	}
	return suffixes, pos - start
}

func isSymbolRune(c rune) bool {
	switch c {
	case '(', ')', '\'', '"', ';':
		return false
	}
	return !unicode.IsSpace(c)
}
