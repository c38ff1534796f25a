package lisp

import (
	"io"
	"strconv"
	"strings"

	"github.com/luthersystems/tinylisp/parser/token"
)

// Format writes the external form of v to w.  Lists are written in
// parentheses with " . " preceding an improper tail.  Text is quoted using
// the escapes understood by the reader.
func Format(w io.Writer, v LVal) (int, error) {
	cw := &countingWriter{w: w}
	format(cw, v)
	return cw.n, cw.err
}

func formatString(v LVal) string {
	var buf strings.Builder
	Format(&buf, v) //nolint:errcheck // strings.Builder never fails
	return buf.String()
}

func format(w *countingWriter, v LVal) {
	switch v := v.(type) {
	case *Symbol:
		w.WriteString(v.name)
	case *Int:
		w.WriteString(strconv.FormatInt(v.value, 10))
	case *Text:
		w.WriteString(token.QuoteString(v.value))
	case *Pair:
		w.WriteString("(")
		formatInner(w, v)
		w.WriteString(")")
	case *Primitive:
		w.WriteString("#<primitive:" + v.name + ">")
	case *Closure:
		w.WriteString("#<closure:" + v.Sym.name + ">")
	case nil:
		w.WriteString("#<invalid>")
	default:
		w.WriteString("#<" + v.Type().String() + ">")
	}
}

func formatInner(w *countingWriter, p *Pair) {
	for {
		format(w, p.head)
		if IsEmpty(p.tail) {
			return
		}
		next, ok := p.tail.(*Pair)
		if !ok {
			w.WriteString(" . ")
			format(w, p.tail)
			return
		}
		w.WriteString(" ")
		p = next
	}
}

// countingWriter counts bytes written and retains the first write error.
// Writes after an error are dropped.
type countingWriter struct {
	w   io.Writer
	n   int
	err error
}

func (w *countingWriter) WriteString(s string) {
	if w.err != nil {
		return
	}
	n, err := io.WriteString(w.w, s)
	w.n += n
	w.err = err
}
