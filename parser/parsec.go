package parser

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/luthersystems/tinylisp/lisp"
	"github.com/luthersystems/tinylisp/parser/rdparser"
	"github.com/luthersystems/tinylisp/parser/token"
	parsec "github.com/prataprc/goparsec"
)

/*
The combinator grammar accepted by parsecReader.

	expr    := comment* (term | list | quoted)
	list    := '(' expr* tail* comment* ')'
	tail    := comment* '.' expr
	quoted  := '\'' expr
	term    := string | int | symbol
	comment := /;[^\n]* /
	int     := /-?[0-9]+/
	symbol  := /[^\s()'";.][^\s()'"]* | \.[^\s()'"]+/
	string  := '"' (/[^"\\]/ | '\' /./)* '"'

A list may have a tail only if it has at least one element and at most one
tail.  listNode enforces this.
*/

// parsecNode is the value produced by every grammar callback.  Callbacks never
// return nil because goparsec treats a nil node as a failed match.
type parsecNode struct {
	v   lisp.LVal
	err error
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	dot := parsec.Atom(".", "DOT")
	q := parsec.Atom("'", "QUOTE")
	comment := parsec.Token(`;[^\n]*`, "COMMENT")
	text := parsec.Token(`"(?:[^"\\]|\\[\s\S])*"`, "STRING")
	integer := parsec.Token(`-?[0-9]+`, "INT")
	symbol := parsec.Token(`(?:[^\s()'";.][^\s()'"]*|\.[^\s()'"]+)`, "SYMBOL")
	term := parsec.OrdChoice(termNode,
		text,
		integer,
		symbol, // symbol comes last because it swallows anything
	)

	var expr parsec.Parser // forward declaration allows for recursive parsing
	tail := parsec.And(tailNode, parsec.Kleene(nil, comment), dot, &expr)
	list := parsec.And(listNode,
		openP, parsec.Kleene(nil, &expr), parsec.Kleene(nil, tail), parsec.Kleene(nil, comment), closeP)
	quoted := parsec.And(quoteNode, q, &expr)
	expr = parsec.And(exprNode, parsec.Kleene(nil, comment), parsec.OrdChoice(pickNode, term, list, quoted))
	return expr
}

func termNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	term, ok := nodes[0].(*parsec.Terminal)
	if !ok {
		return &parsecNode{err: fmt.Errorf("unexpected node: %T", nodes[0])}
	}
	switch term.Name {
	case "INT":
		x, err := strconv.ParseInt(term.Value, 10, 64)
		if err != nil {
			return &parsecNode{err: fmt.Errorf("integer literal overflows int64: %v", term.Value)}
		}
		return &parsecNode{v: lisp.IntOf(x)}
	case "STRING":
		s, err := token.UnquoteString(term.Value)
		if err != nil {
			return &parsecNode{err: err}
		}
		return &parsecNode{v: lisp.TextOf(s)}
	default:
		return &parsecNode{v: lisp.Intern(term.Value)}
	}
}

func pickNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return nodes[0]
}

// exprNode discards the comments preceding an expression.
func exprNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return nodes[1]
}

func quoteNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	x := nodes[1].(*parsecNode)
	if x.err != nil {
		return x
	}
	return &parsecNode{v: lisp.Quote(x.v)}
}

// tailNode keeps the expression following a dot.
func tailNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return nodes[2]
}

func listNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	cells, err := collectNodes(nodes[1])
	if err != nil {
		return &parsecNode{err: err}
	}
	tails, err := collectNodes(nodes[2])
	if err != nil {
		return &parsecNode{err: err}
	}
	switch {
	case len(tails) == 0:
		return &parsecNode{v: lisp.List(cells...)}
	case len(cells) == 0:
		return &parsecNode{err: fmt.Errorf("unexpected . at the beginning of a list")}
	case len(tails) > 1:
		return &parsecNode{err: fmt.Errorf("expected ) following the tail of a dotted list")}
	default:
		return &parsecNode{v: lisp.ListTail(tails[0], cells...)}
	}
}

// collectNodes returns the values of a single parsecNode or of a Kleene
// repetition of them.
func collectNodes(n parsec.ParsecNode) ([]lisp.LVal, error) {
	switch n := n.(type) {
	case *parsecNode:
		if n.err != nil {
			return nil, n.err
		}
		return []lisp.LVal{n.v}, nil
	case []parsec.ParsecNode:
		var vals []lisp.LVal
		for _, c := range n {
			v, err := collectNodes(c)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v...)
		}
		return vals, nil
	default:
		return nil, fmt.Errorf("unexpected node: %T", n)
	}
}

type parsecReader struct {
	expr     parsec.Parser
	maxDepth int
}

// NewParsecReader returns a lisp.Reader built from parser combinators.  It
// accepts the same language as the default reader.
func NewParsecReader() lisp.Reader {
	return &parsecReader{
		expr:     newParsecParser(),
		maxDepth: rdparser.DefaultMaxDepth,
	}
}

// Read implements lisp.Reader.
func (r *parsecReader) Read(text string) (lisp.LVal, error) {
	exprs, err := r.parse(defaultSourceName, []byte(text), true)
	if err != nil {
		return nil, err
	}
	if len(exprs) == 0 {
		return lisp.Empty, nil
	}
	return exprs[0], nil
}

// ReadProgram implements lisp.Reader.
func (r *parsecReader) ReadProgram(name string, src io.Reader) ([]lisp.LVal, error) {
	text, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return r.parse(name, text, false)
}

func (r *parsecReader) parse(name string, text []byte, first bool) ([]lisp.LVal, error) {
	if !utf8.Valid(text) {
		off := invalidUTF8Offset(text)
		return nil, parseErrorAt(name, text, off, fmt.Errorf("invalid utf-8 sequence in source text starting with byte %q", text[off]))
	}
	// the combinators recurse once per level so depth is checked up front
	if off := nestingOverflow(text, r.maxDepth); off >= 0 {
		return nil, parseErrorAt(name, text, off, fmt.Errorf("maximum nesting depth exceeded (%d)", r.maxDepth))
	}
	var exprs []lisp.LVal
	s := parsec.NewScanner(text)
	for {
		start := skipTrivia(text, s.GetCursor())
		if start >= len(text) {
			return exprs, nil
		}
		root, news := r.expr(s)
		if root == nil {
			return nil, parseErrorAt(name, text, start, r.diagnose(text[start:]))
		}
		node := root.(*parsecNode)
		if node.err != nil {
			return nil, parseErrorAt(name, text, start, node.err)
		}
		exprs = append(exprs, node.v)
		if first {
			return exprs, nil
		}
		s = news
	}
}

// diagnose explains why the expression at the beginning of rest did not
// parse.  If appending text to rest would make it parse the input is merely
// incomplete and the returned error wraps io.ErrUnexpectedEOF.
func (r *parsecReader) diagnose(rest []byte) error {
	if rest[0] == ')' {
		return fmt.Errorf("unmatched )")
	}
	probe := completion(rest)
	if probe == nil {
		return fmt.Errorf("syntax error")
	}
	root, _ := r.expr(parsec.NewScanner(probe))
	if root == nil {
		return fmt.Errorf("syntax error")
	}
	if err := root.(*parsecNode).err; err != nil {
		return err
	}
	return fmt.Errorf("incomplete expression: %w", io.ErrUnexpectedEOF)
}

// completion returns rest followed by the text that would close its open
// string literal and lists and give a value to a trailing quote or dot.
// Completion returns nil if rest is not a prefix of some expression.
func completion(rest []byte) []byte {
	var (
		depth   int
		inText  bool
		escape  bool
		pending bool // a quote or dot awaits an expression
		word    []byte
	)
	endWord := func() {
		if len(word) > 0 {
			pending = string(word) == "."
			word = word[:0]
		}
	}
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		switch {
		case inText:
			switch {
			case escape:
				escape = false
			case c == '\\':
				escape = true
			case c == '"':
				inText = false
			}
			continue
		case c == ';' && len(word) == 0:
			for i < len(rest) && rest[i] != '\n' {
				i++
			}
			continue
		case c == '(' || c == ')' || c == '\'' || c == '"' || isSpace(c):
			endWord()
		default:
			word = append(word, c)
			continue
		}
		switch c {
		case '(':
			depth++
			pending = false
		case ')':
			depth--
			pending = false
		case '\'':
			pending = true
		case '"':
			inText = true
			pending = false
		}
	}
	endWord()
	if depth < 0 {
		return nil
	}
	var buf bytes.Buffer
	buf.Write(rest)
	if inText {
		if escape {
			buf.WriteByte('x')
		}
		buf.WriteByte('"')
		pending = false
	}
	buf.WriteByte('\n')
	if pending {
		buf.WriteString("x ")
	}
	buf.WriteString(strings.Repeat(")", depth))
	return buf.Bytes()
}

// nestingOverflow returns the offset of the first open paren or quote in text
// that nests deeper than limit, or -1 if it never does.  A quote nests until the
// expression following it ends.  A limit of zero disables the check.
func nestingOverflow(text []byte, limit int) int {
	if limit <= 0 {
		return -1
	}
	quotes := []int{0} // pending quotes in each open list
	depth := 0
	inWord := false
	endExpr := func() {
		top := len(quotes) - 1
		depth -= quotes[top]
		quotes[top] = 0
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inWord {
			if c != '(' && c != ')' && c != '\'' && c != '"' && !isSpace(c) {
				continue
			}
			inWord = false
			endExpr()
		}
		switch {
		case isSpace(c):
		case c == ';':
			for i < len(text) && text[i] != '\n' {
				i++
			}
		case c == '"':
			for i++; i < len(text) && text[i] != '"'; i++ {
				if text[i] == '\\' {
					i++
				}
			}
			endExpr()
		case c == '(' || c == '\'':
			depth++
			if depth > limit {
				return i
			}
			if c == '(' {
				quotes = append(quotes, 0)
			} else {
				quotes[len(quotes)-1]++
			}
		case c == ')':
			top := len(quotes) - 1
			if top == 0 {
				return -1 // unmatched, reported by the grammar
			}
			depth -= quotes[top] + 1
			quotes = quotes[:top]
			endExpr()
		default:
			inWord = true
		}
	}
	return -1
}

func isSpace(c byte) bool {
	return c < utf8.RuneSelf && unicode.IsSpace(rune(c))
}

// skipTrivia returns the offset of the first byte at or after off that is
// not whitespace or part of a comment.
func skipTrivia(text []byte, off int) int {
	for off < len(text) {
		switch c := text[off]; {
		case isSpace(c):
			off++
		case c == ';':
			for off < len(text) && text[off] != '\n' {
				off++
			}
		default:
			return off
		}
	}
	return off
}

func invalidUTF8Offset(text []byte) int {
	for off := 0; off < len(text); {
		c, n := utf8.DecodeRune(text[off:])
		if c == utf8.RuneError && n == 1 {
			return off
		}
		off += n
	}
	return len(text)
}

func parseErrorAt(name string, text []byte, off int, cause error) error {
	err := lisp.Errorf(lisp.CondParse, "%w", cause)
	err.Source = locate(name, text, off)
	return err
}

// locate converts a byte offset into a line and column location.  Columns
// count runes.
func locate(name string, text []byte, off int) *token.Location {
	line := 1 + bytes.Count(text[:off], []byte("\n"))
	lineStart := bytes.LastIndexByte(text[:off], '\n') + 1
	return &token.Location{
		File: name,
		Pos:  off,
		Line: line,
		Col:  1 + utf8.RuneCount(text[lineStart:off]),
	}
}
