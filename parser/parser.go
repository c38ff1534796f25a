// Package parser selects between the available lisp.Reader implementations.
//
// The default reader is a recursive-descent parser (see package rdparser).
// The parsec reader implements the same language with goparsec combinators.
package parser

import (
	"fmt"

	"github.com/luthersystems/tinylisp/lisp"
	"github.com/luthersystems/tinylisp/parser/rdparser"
)

const defaultSourceName = rdparser.DefaultSourceName

// Reader kinds accepted by NewReaderKind.
const (
	KindRD     = "rd"
	KindParsec = "parsec"
)

// NewReader returns the default lisp.Reader.
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

// NewReaderKind returns the lisp.Reader named by kind.  An empty kind selects
// the default reader.
func NewReaderKind(kind string) (lisp.Reader, error) {
	switch kind {
	case "", KindRD:
		return rdparser.NewReader(), nil
	case KindParsec:
		return NewParsecReader(), nil
	default:
		return nil, fmt.Errorf("unknown reader: %q (expected %q or %q)", kind, KindRD, KindParsec)
	}
}
