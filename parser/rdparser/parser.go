package rdparser

import (
	"errors"
	"io"
	"strconv"

	"github.com/luthersystems/tinylisp/lisp"
	"github.com/luthersystems/tinylisp/parser/lexer"
	"github.com/luthersystems/tinylisp/parser/token"
)

// DefaultSourceName is the file name reported in parse errors for text read
// with Read.
const DefaultSourceName = "<input>"

// DefaultMaxDepth is the nesting limit of lists and quotes in a new Parser.
const DefaultMaxDepth = lisp.DefaultMaxDepth

type reader struct{}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(text string) (lisp.LVal, error) {
	p := New(token.NewScannerBytes(DefaultSourceName, []byte(text)))
	return p.ParseFirst()
}

// ReadProgram implements lisp.Reader.
func (*reader) ReadProgram(name string, r io.Reader) ([]lisp.LVal, error) {
	s, err := token.NewScanner(name, r)
	if err != nil {
		return nil, err
	}
	return New(s).ParseProgram()
}

// Parser is a lisp parser.
type Parser struct {
	lex   *lexer.Lexer
	curr  *token.Token
	peek  *token.Token
	depth int

	// MaxDepth limits how deeply lists and quotes may nest.  Exceeding the
	// limit is a parse-error.  Zero disables the limit.
	MaxDepth int
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	p := &Parser{
		lex:      lexer.New(scanner),
		MaxDepth: DefaultMaxDepth,
	}
	// Setup the peek token so the parser is in the proper state when the
	// first parse function is called.
	p.ReadToken()
	return p
}

// ParseFirst parses the first expression in the input.  Any input following
// the expression is not examined.  Input containing no expression parses as
// lisp.Empty.
func (p *Parser) ParseFirst() (lisp.LVal, error) {
	p.skipComments()
	if p.PeekType() == token.EOF {
		return lisp.Empty, nil
	}
	return p.ParseExpression()
}

// ParseProgram parses every expression in the input.
func (p *Parser) ParseProgram() ([]lisp.LVal, error) {
	var exprs []lisp.LVal
	for {
		p.skipComments()
		if p.expect(token.EOF) {
			break
		}
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func (p *Parser) ParseExpression() (lisp.LVal, error) {
	p.skipComments()
	switch p.PeekType() {
	case token.INT:
		return p.ParseLiteralInt()
	case token.STRING:
		return p.ParseLiteralString()
	case token.QUOTE:
		return p.ParseQuote()
	case token.SYMBOL:
		return p.ParseSymbol()
	case token.PAREN_L:
		return p.ParseConsExpression()
	case token.EOF:
		p.ReadToken()
		return nil, p.incomplete("expected an expression")
	case token.ERROR, token.INVALID:
		p.ReadToken()
		err := p.lex.Err()
		if err == nil {
			err = errors.New(p.Token().Text)
		}
		return nil, p.errorf("%w", err)
	case token.PAREN_R:
		p.ReadToken()
		return nil, p.errorf("unmatched %s", p.Token().Text)
	default:
		p.ReadToken()
		return nil, p.errorf("unexpected %s", p.Token().Type)
	}
}

func (p *Parser) ParseLiteralInt() (lisp.LVal, error) {
	if !p.expect(token.INT) {
		return nil, p.errorf("invalid integer literal: %v", p.PeekType())
	}
	text := p.Token().Text
	x, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, p.errorf("integer literal overflows int64: %v", text)
	}
	return lisp.IntOf(x), nil
}

func (p *Parser) ParseLiteralString() (lisp.LVal, error) {
	if !p.expect(token.STRING) {
		return nil, p.errorf("invalid string literal: %v", p.PeekType())
	}
	s, err := token.UnquoteString(p.Token().Text)
	if err != nil {
		return nil, p.errorf("%w", err)
	}
	return lisp.TextOf(s), nil
}

func (p *Parser) ParseQuote() (lisp.LVal, error) {
	if !p.expect(token.QUOTE) {
		return nil, p.errorf("invalid quote: %v", p.PeekType())
	}
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}
	v, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return lisp.Quote(v), nil
}

func (p *Parser) ParseSymbol() (lisp.LVal, error) {
	if !p.expect(token.SYMBOL) {
		return nil, p.errorf("invalid symbol: %v", p.PeekType())
	}
	return lisp.Intern(p.Token().Text), nil
}

// ParseConsExpression parses a parenthesized list.  A dot may precede the
// last element to make the element the tail of the final pair.
func (p *Parser) ParseConsExpression() (lisp.LVal, error) {
	if !p.expect(token.PAREN_L) {
		return nil, p.errorf("invalid list: %v", p.PeekType())
	}
	open := p.Token()
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}
	var cells []lisp.LVal
	for {
		p.skipComments()
		switch {
		case p.expect(token.EOF):
			return nil, p.incompleteAt(open, "unmatched %s", open.Text)
		case p.expect(token.PAREN_R):
			return lisp.List(cells...), nil
		case p.expect(token.DOT):
			if len(cells) == 0 {
				return nil, p.errorf("unexpected %s at the beginning of a list", p.Token().Text)
			}
			p.skipComments()
			if p.PeekType() == token.PAREN_R {
				p.ReadToken()
				return nil, p.errorf("missing tail of a dotted list")
			}
			tail, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			p.skipComments()
			if p.expect(token.EOF) {
				return nil, p.incompleteAt(open, "unmatched %s", open.Text)
			}
			if !p.expect(token.PAREN_R) {
				p.ReadToken()
				return nil, p.errorf("expected %s following the tail of a dotted list", token.PAREN_R)
			}
			return lisp.ListTail(tail, cells...), nil
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		cells = append(cells, x)
	}
}

func (p *Parser) ReadToken() *token.Token {
	p.curr = p.peek
	p.peek = p.lex.NextToken()
	return p.curr
}

func (p *Parser) Token() *token.Token {
	return p.curr
}

func (p *Parser) PeekType() token.Type {
	return p.peek.Type
}

// enter descends into a list or quoted expression.
func (p *Parser) enter() error {
	p.depth++
	if p.MaxDepth > 0 && p.depth > p.MaxDepth {
		return p.errorf("maximum nesting depth exceeded (%d)", p.MaxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) skipComments() {
	for p.expect(token.COMMENT) {
	}
}

func (p *Parser) expect(typ ...token.Type) bool {
	peekType := p.peek.Type
	for _, typ := range typ {
		if typ == peekType {
			p.ReadToken()
			return true
		}
	}
	return false
}

func (p *Parser) errorf(format string, v ...interface{}) error {
	err := lisp.Errorf(lisp.CondParse, format, v...)
	err.Source = p.Token().Source
	return err
}

// incomplete returns an error signaling that the input ended in the middle of
// an expression.  The error wraps io.ErrUnexpectedEOF.
func (p *Parser) incomplete(msg string) error {
	return p.incompleteAt(p.Token(), "%s", msg)
}

func (p *Parser) incompleteAt(tok *token.Token, format string, v ...interface{}) error {
	err := lisp.Errorf(lisp.CondParse, format, v...)
	err.Err = io.ErrUnexpectedEOF
	err.Msg += ": unexpected end of input"
	err.Source = tok.Source
	return err
}
