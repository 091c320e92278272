package lexer

import (
	"fmt"
	"strconv"

	"calc/token"
)

type LexError struct {
	Pos int
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("[col %d] %s", e.Pos+1, e.Msg)
}

// Lexer converts one line of source text into a flat token slice
// terminated by EOF. Lexing the same source twice yields equal slices.
type Lexer struct {
	source string
	tokens []token.Token

	start   int
	current int
}

func (l *Lexer) Init(source string) {
	l.source = source
	l.tokens = make([]token.Token, 0)

	l.start = 0
	l.current = 0
}

func (l *Lexer) Lex() ([]token.Token, error) {
	srcLen := len(l.source)
	for l.current < srcLen {
		l.start = l.current
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}
	l.tokens = append(l.tokens, token.Token{Type: token.EOF, Pos: l.current})
	return l.tokens, nil
}

// Lex is a convenience wrapper around Lexer for single statements.
func Lex(source string) ([]token.Token, error) {
	l := new(Lexer)
	l.Init(source)
	return l.Lex()
}

func (l *Lexer) scanToken() error {
	c := l.source[l.current]
	l.current++
	switch c {
	case ' ', '\r', '\t', '\n':
		; // pass
	case '(':
		l.addToken(token.LEFT_PAREN, 0)
	case ')':
		l.addToken(token.RIGHT_PAREN, 0)
	case '[':
		l.addToken(token.LEFT_BRACKET, 0)
	case ']':
		l.addToken(token.RIGHT_BRACKET, 0)
	case ',':
		l.addToken(token.COMMA, 0)
	case '-':
		l.addToken(token.MINUS, 0)
	case '+':
		l.addToken(token.PLUS, 0)
	case '*':
		l.addToken(token.STAR, 0)
	case '/':
		l.addToken(token.SLASH, 0)
	case '^':
		l.addToken(token.CARET, 0)
	case '=':
		l.addToken(token.EQUAL, 0)
	default:
		switch {
		case isDigit(c) || (c == '.' && isDigit(l.peekChar())):
			return l.scanNumber()
		case isAlpha(c):
			l.scanIdentifier()
		default:
			return &LexError{
				Pos: l.start,
				Msg: fmt.Sprintf("unexpected character %q", c),
			}
		}
	}
	return nil
}

func (l *Lexer) addToken(typ token.Type, literal float64) {
	text := l.source[l.start:l.current]
	l.tokens = append(
		l.tokens,
		token.Token{
			Type:    typ,
			Lexeme:  text,
			Literal: literal,
			Pos:     l.start,
		},
	)
}

func (l *Lexer) peekChar() byte {
	if l.current >= len(l.source) {
		return 0
	}
	return l.source[l.current]
}

// Numbers are integer or decimal literals with an optional signed
// exponent, e.g. 42, 3.1415, .001, 1e-9.
func (l *Lexer) scanNumber() error {
	for isDigit(l.peekChar()) {
		l.current++
	}
	if l.peekChar() == '.' && l.source[l.start] != '.' {
		l.current++ // consume the .
		for isDigit(l.peekChar()) {
			l.current++
		}
	}
	if c := l.peekChar(); c == 'e' || c == 'E' {
		cursor := l.current + 1
		if cursor < len(l.source) && (l.source[cursor] == '+' || l.source[cursor] == '-') {
			cursor++
		}
		if cursor < len(l.source) && isDigit(l.source[cursor]) {
			l.current = cursor + 1
			for isDigit(l.peekChar()) {
				l.current++
			}
		}
	}

	numStr := l.source[l.start:l.current]
	number, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return &LexError{
			Pos: l.start,
			Msg: fmt.Sprintf("invalid number %q", numStr),
		}
	}
	l.addToken(token.NUMBER, number)

	return nil
}

func (l *Lexer) scanIdentifier() {
	for isAlphaNumeric(l.peekChar()) {
		l.current++
	}
	l.addToken(token.IDENTIFIER, 0)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
