package token

import (
	"fmt"
)

type Type byte

const (
	// Grouping
	LEFT_PAREN Type = iota
	RIGHT_PAREN
	LEFT_BRACKET
	RIGHT_BRACKET
	COMMA

	// Math operators
	MINUS
	PLUS
	SLASH
	STAR
	CARET

	// Assignment
	EQUAL

	// Literals
	IDENTIFIER
	NUMBER

	EOF
)

func (t Type) String() string {
	switch t {
	case LEFT_PAREN:
		return "LEFT_PAREN"
	case RIGHT_PAREN:
		return "RIGHT_PAREN"
	case LEFT_BRACKET:
		return "LEFT_BRACKET"
	case RIGHT_BRACKET:
		return "RIGHT_BRACKET"
	case COMMA:
		return "COMMA"
	case MINUS:
		return "MINUS"
	case PLUS:
		return "PLUS"
	case SLASH:
		return "SLASH"
	case STAR:
		return "STAR"
	case CARET:
		return "CARET"
	case EQUAL:
		return "EQUAL"
	case IDENTIFIER:
		return "IDENTIFIER"
	case NUMBER:
		return "NUMBER"
	case EOF:
		return "EOF"
	}

	panic(fmt.Sprintf("Invalid token type: %d", t))
}

// Token is one atomic lexical unit of a statement. Literal is only
// meaningful for NUMBER tokens; Pos is the byte offset of the lexeme
// within the source line.
type Token struct {
	Type    Type
	Lexeme  string
	Literal float64
	Pos     int
}

func (t Token) String() string {
	if t.Type == NUMBER {
		return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
}
