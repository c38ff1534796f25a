package lexer

import (
	"errors"
	"fmt"
	"io"
	"unicode"

	"github.com/luthersystems/tinylisp/parser/token"
)

// Lexer splits source text into tokens.  Whitespace is skipped before each
// token; comments are emitted as token.COMMENT.
type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune

	// err is the cause of the last ERROR token.
	err error
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{scanner: s}
}

// Err returns the error which caused the most recent ERROR token emitted by
// lex.  Errors caused by input ending inside a token wrap
// io.ErrUnexpectedEOF.
func (lex *Lexer) Err() error {
	return lex.err
}

func (lex *Lexer) NextToken() *token.Token {
	if lex.err != nil {
		return lex.emit(token.ERROR, lex.err.Error())
	}
	if err := lex.skipWhitespace(); err != nil {
		return lex.emitError(err, true)
	}
	if err := lex.readChar(); err != nil {
		return lex.emitError(err, true)
	}
	switch lex.ch {
	case '(':
		return lex.scanner.EmitToken(token.PAREN_L)
	case ')':
		return lex.scanner.EmitToken(token.PAREN_R)
	case '\'':
		return lex.scanner.EmitToken(token.QUOTE)
	case ';':
		for {
			c, ok := lex.scanner.Peek()
			if !ok || c == '\n' {
				break
			}
			if err := lex.readChar(); err != nil {
				return lex.emitError(err, false)
			}
		}
		return lex.scanner.EmitToken(token.COMMENT)
	case '"':
		return lex.readString()
	case '-':
		if isDigit(lex.peekRune()) {
			return lex.readNumber()
		}
	default:
		if isDigit(lex.ch) {
			return lex.readNumber()
		}
	}
	if err := lex.readSymbol(); err != nil {
		return lex.emitError(err, false)
	}
	if lex.scanner.Text() == "." {
		return lex.scanner.EmitToken(token.DOT)
	}
	return lex.scanner.EmitToken(token.SYMBOL)
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitError(err error, expectEOF bool) *token.Token {
	if errors.Is(err, io.EOF) {
		if expectEOF {
			return lex.emit(token.EOF, "")
		}
		err = io.ErrUnexpectedEOF
	}
	lex.err = err
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return lex.emitError(fmt.Errorf(format, v...), false)
}

func (lex *Lexer) readString() *token.Token {
	for {
		err := lex.readChar()
		if errors.Is(err, io.EOF) {
			return lex.errorf("unterminated string literal: %w", io.ErrUnexpectedEOF)
		}
		if err != nil {
			return lex.emitError(err, false)
		}
		switch lex.ch {
		case '"':
			return lex.scanner.EmitToken(token.STRING)
		case '\\':
			// The escaped character is decoded by the parser.
			err := lex.readChar()
			if errors.Is(err, io.EOF) {
				return lex.errorf("unterminated string literal: %w", io.ErrUnexpectedEOF)
			}
			if err != nil {
				return lex.emitError(err, false)
			}
		}
	}
}

// The returned text may not be a representable integer (overflow), which is
// detected by the parser.
func (lex *Lexer) readNumber() *token.Token {
	for isDigit(lex.peekRune()) {
		if err := lex.readChar(); err != nil {
			return lex.emitError(err, false)
		}
	}
	return lex.scanner.EmitToken(token.INT)
}

func (lex *Lexer) readSymbol() error {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || !isSymbolRune(c) {
			return nil
		}
		if err := lex.readChar(); err != nil {
			return err
		}
	}
}

func (lex *Lexer) skipWhitespace() error {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || !unicode.IsSpace(c) {
			break
		}
		if err := lex.readChar(); err != nil {
			return err
		}
	}
	lex.scanner.Ignore()
	return nil
}

func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func (lex *Lexer) readChar() error {
	err := lex.scanner.ScanRune()
	if err != nil {
		return err
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

func isSymbolRune(c rune) bool {
	switch c {
	case '(', ')', '\'', '"':
		return false
	}
	return !unicode.IsSpace(c)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
