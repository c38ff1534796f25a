package lexer

import (
	"errors"
	"io"
	"testing"

	"github.com/luthersystems/tinylisp/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tok struct {
	typ  token.Type
	text string
}

func lexAll(t *testing.T, src string) ([]tok, *Lexer) {
	lex := New(token.NewScannerBytes("test", []byte(src)))
	var toks []tok
	for i := 0; i < 1000; i++ {
		next := lex.NextToken()
		toks = append(toks, tok{next.Type, next.Text})
		if next.Type == token.EOF || next.Type == token.ERROR {
			return toks, lex
		}
	}
	t.Fatal("lexer did not terminate")
	return nil, nil
}

func TestLexer(t *testing.T) {
	tests := []struct {
		src  string
		toks []tok
	}{
		{"", []tok{{token.EOF, ""}}},
		{"  \n\t ", []tok{{token.EOF, ""}}},
		{"abc", []tok{{token.SYMBOL, "abc"}, {token.EOF, ""}}},
		{"(a b)", []tok{
			{token.PAREN_L, "("},
			{token.SYMBOL, "a"},
			{token.SYMBOL, "b"},
			{token.PAREN_R, ")"},
			{token.EOF, ""},
		}},
		{"'x", []tok{{token.QUOTE, "'"}, {token.SYMBOL, "x"}, {token.EOF, ""}}},
		{"12 -3 -x -", []tok{
			{token.INT, "12"},
			{token.INT, "-3"},
			{token.SYMBOL, "-x"},
			{token.SYMBOL, "-"},
			{token.EOF, ""},
		}},
		{"5abc", []tok{{token.INT, "5"}, {token.SYMBOL, "abc"}, {token.EOF, ""}}},
		{"007", []tok{{token.INT, "007"}, {token.EOF, ""}}},
		{"(a . b)", []tok{
			{token.PAREN_L, "("},
			{token.SYMBOL, "a"},
			{token.DOT, "."},
			{token.SYMBOL, "b"},
			{token.PAREN_R, ")"},
			{token.EOF, ""},
		}},
		{".b ..", []tok{{token.SYMBOL, ".b"}, {token.SYMBOL, ".."}, {token.EOF, ""}}},
		{"; comment\nx", []tok{{token.COMMENT, "; comment"}, {token.SYMBOL, "x"}, {token.EOF, ""}}},
		{"a;b", []tok{{token.SYMBOL, "a;b"}, {token.EOF, ""}}},
		{`"a b" "x\"y"`, []tok{{token.STRING, `"a b"`}, {token.STRING, `"x\"y"`}, {token.EOF, ""}}},
		{"\"line\nbreak\"", []tok{{token.STRING, "\"line\nbreak\""}, {token.EOF, ""}}},
		{"null?", []tok{{token.SYMBOL, "null?"}, {token.EOF, ""}}},
		{"a\"b\"", []tok{{token.SYMBOL, "a"}, {token.STRING, `"b"`}, {token.EOF, ""}}},
	}
	for _, test := range tests {
		toks, _ := lexAll(t, test.src)
		assert.Equal(t, test.toks, toks, "source: %q", test.src)
	}
}

func TestLexer_unterminatedString(t *testing.T) {
	for _, src := range []string{`"abc`, `"abc\`, `(print "x`} {
		toks, lex := lexAll(t, src)
		last := toks[len(toks)-1]
		assert.Equal(t, token.ERROR, last.typ, "source: %q", src)
		assert.True(t, errors.Is(lex.Err(), io.ErrUnexpectedEOF), "source: %q", src)
		// errors are sticky
		assert.Equal(t, token.ERROR, lex.NextToken().Type)
	}
}

func TestLexer_invalidUTF8(t *testing.T) {
	toks, lex := lexAll(t, "ab\xffc")
	require.Len(t, toks, 2)
	assert.Equal(t, tok{token.SYMBOL, "ab"}, toks[0])
	assert.Equal(t, token.ERROR, toks[1].typ)
	assert.False(t, errors.Is(lex.Err(), io.ErrUnexpectedEOF))
}

func TestLexer_location(t *testing.T) {
	lex := New(token.NewScannerBytes("test.lisp", []byte("(a\n  bc)")))
	var locs []string
	for {
		next := lex.NextToken()
		if next.Type == token.EOF {
			break
		}
		locs = append(locs, next.Source.String())
	}
	assert.Equal(t, []string{"test.lisp:1:1", "test.lisp:1:2", "test.lisp:2:3", "test.lisp:2:5"}, locs)
}
