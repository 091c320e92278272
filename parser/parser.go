package parser

import (
	"fmt"
	"slices"

	"calc/ast"
	"calc/token"
)

// MaxDepth bounds expression nesting. The parser recurses once per
// nesting level, so this is the guard against stack exhaustion.
const MaxDepth = 128

type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedEnd
	UnmatchedParen
	NestingTooDeep
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnexpectedEnd:
		return "UnexpectedEnd"
	case UnmatchedParen:
		return "UnmatchedParen"
	case NestingTooDeep:
		return "NestingTooDeep"
	}

	panic(fmt.Sprintf("Invalid error kind: %d", int(k)))
}

type SyntaxError struct {
	Kind ErrorKind
	Tok  token.Token
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Tok.Type == token.EOF {
		return fmt.Sprintf("at end: %s", e.Msg)
	}
	return fmt.Sprintf("at '%s': %s", e.Tok.Lexeme, e.Msg)
}

// Parser turns one token stream into one expression tree. The grammar
// helpers panic with *SyntaxError; Parse recovers it into the returned
// error, so a failed parse never yields a partial tree.
type Parser struct {
	tokens  []token.Token
	current int
	depth   int
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse is a convenience wrapper for parsing a single statement.
func Parse(tokens []token.Token) (ast.Expr, error) {
	return New(tokens).Parse()
}

func (p *Parser) Parse() (expr ast.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(*SyntaxError); ok {
				expr, err = nil, perr
			} else {
				panic(r) // real panic, let it crash
			}
		}
	}()

	expr = p.parseExpression()

	// A statement is exactly one expression; anything left over is an error.
	if tok := p.peekToken(); tok.Type != token.EOF {
		kind := UnexpectedToken
		if tok.Type == token.RIGHT_PAREN || tok.Type == token.RIGHT_BRACKET {
			kind = UnmatchedParen
		}
		panic(&SyntaxError{kind, tok, "unexpected '" + tok.Lexeme + "' after expression"})
	}

	return expr, nil
}

func (p *Parser) peekToken() token.Token {
	p.current = min(p.current, len(p.tokens)-1) // avoid passing EOF
	return p.tokens[p.current]
}

func (p *Parser) peekAndConsume() token.Token {
	tok := p.peekToken()
	if tok.Type != token.EOF {
		p.current++
	}

	return tok
}

func (p *Parser) peekIsOneOf(types ...token.Type) bool {
	return slices.Contains(types, p.peekToken().Type)
}

func (p *Parser) consumeOneOf(types ...token.Type) (token.Token, bool) {
	tok := p.peekToken()
	if slices.Contains(types, tok.Type) {
		p.current++
		return tok, true
	}

	return tok, false
}

func (p *Parser) consumeToken(typ token.Type, msg string) {
	tok := p.peekToken()
	if tok.Type == typ {
		p.current++
		return
	}

	kind := UnexpectedToken
	if tok.Type == token.EOF {
		kind = UnexpectedEnd
	}
	panic(&SyntaxError{kind, tok, msg})
}

// consumeCloser expects the closing half of a grouping pair. A missing
// or mismatched closer is an UnmatchedParen, not a generic token error.
func (p *Parser) consumeCloser(typ token.Type, msg string) {
	tok := p.peekToken()
	if tok.Type == typ {
		p.current++
		return
	}

	switch tok.Type {
	case token.EOF:
		panic(&SyntaxError{UnmatchedParen, tok, msg})
	case token.RIGHT_PAREN, token.RIGHT_BRACKET:
		panic(&SyntaxError{UnmatchedParen, tok, msg})
	default:
		panic(&SyntaxError{UnexpectedToken, tok, msg})
	}
}

func (p *Parser) descend() {
	p.depth++
	if p.depth > MaxDepth {
		panic(&SyntaxError{NestingTooDeep, p.peekToken(), "expression nests too deeply"})
	}
}

func (p *Parser) ascend() {
	p.depth--
}

// expression ::= assignment
func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

// assignment ::= additive ( "=" assignment )?
// Right-associative; only a bare identifier is a valid target.
func (p *Parser) parseAssignment() ast.Expr {
	p.descend()
	defer p.ascend()

	expr := p.parseAdditive()

	if tok := p.peekToken(); tok.Type == token.EQUAL {
		p.current++ // consume '='

		value := p.parseAssignment()

		v, ok := expr.(*ast.Variable)
		if !ok {
			panic(&SyntaxError{UnexpectedToken, tok, "invalid assignment target"})
		}

		return &ast.Assign{Name: v.Name, Value: value}
	}

	return expr
}

// additive ::= multiplicative ( ( '-' | '+' ) multiplicative )*
func (p *Parser) parseAdditive() ast.Expr {
	expr := p.parseMultiplicative()
	for p.peekIsOneOf(token.MINUS, token.PLUS) {
		op := p.peekAndConsume()
		rhs := p.parseMultiplicative()
		expr = &ast.Binary{Lhs: expr, Op: op, Rhs: rhs}
	}

	return expr
}

// multiplicative ::= unary ( ( '*' | '/' ) unary )*
func (p *Parser) parseMultiplicative() ast.Expr {
	expr := p.parseUnary()
	for p.peekIsOneOf(token.STAR, token.SLASH) {
		op := p.peekAndConsume()
		rhs := p.parseUnary()
		expr = &ast.Binary{Lhs: expr, Op: op, Rhs: rhs}
	}

	return expr
}

// unary ::= ( ( '-' | '+' ) unary ) | power
func (p *Parser) parseUnary() ast.Expr {
	if op, ok := p.consumeOneOf(token.MINUS, token.PLUS); ok {
		p.descend()
		defer p.ascend()

		rhs := p.parseUnary()
		return &ast.Unary{Op: op, Rhs: rhs}
	}

	return p.parsePower()
}

// power ::= primary ( "^" unary )?
// Right-associative and binds tighter than unary: 2^3^2 is 2^(3^2),
// -2^2 is -(2^2), and 2^-3 parses.
func (p *Parser) parsePower() ast.Expr {
	expr := p.parsePrimary()

	if op, ok := p.consumeOneOf(token.CARET); ok {
		// Right recursion, so a chain of '^' is nesting.
		p.descend()
		defer p.ascend()

		rhs := p.parseUnary()
		return &ast.Binary{Lhs: expr, Op: op, Rhs: rhs}
	}

	return expr
}

/*
 * primary ::= NUMBER
 *			 | IDENTIFIER ( "(" arguments? ")" )?
 *			 | "(" expression ")"
 *			 | "[" expression "]"
 */
func (p *Parser) parsePrimary() ast.Expr {
	switch tok := p.peekAndConsume(); tok.Type {
	case token.NUMBER:
		return &ast.Literal{Value: tok.Literal}
	case token.IDENTIFIER:
		if p.peekToken().Type == token.LEFT_PAREN {
			p.current++ // consume '('
			args := p.parseArguments()
			p.consumeCloser(token.RIGHT_PAREN, "expect ')' after arguments")

			return &ast.Call{Callee: tok, Args: args}
		}

		return &ast.Variable{Name: tok}
	case token.LEFT_PAREN:
		expr := p.parseExpression()
		p.consumeCloser(token.RIGHT_PAREN, "expect ')' after expression")

		return expr
	case token.LEFT_BRACKET:
		expr := p.parseExpression()
		p.consumeCloser(token.RIGHT_BRACKET, "expect ']' after expression")

		return expr
	case token.RIGHT_PAREN, token.RIGHT_BRACKET:
		panic(&SyntaxError{UnmatchedParen, tok, "'" + tok.Lexeme + "' has no matching opener"})
	case token.EOF:
		panic(&SyntaxError{UnexpectedEnd, tok, "expect expression"})
	default:
		panic(&SyntaxError{UnexpectedToken, tok, "expect expression"})
	}
}

// arguments ::= expression ( "," expression )*
func (p *Parser) parseArguments() []ast.Expr {
	args := []ast.Expr{}

	for !p.peekIsOneOf(token.RIGHT_PAREN, token.EOF) {
		arg := p.parseExpression()
		args = append(args, arg)

		if p.peekToken().Type != token.RIGHT_PAREN {
			p.consumeToken(token.COMMA, "expect ',' between arguments")
			if tok := p.peekToken(); tok.Type == token.RIGHT_PAREN {
				panic(&SyntaxError{UnexpectedToken, tok, "expect argument after ','"})
			}
		}
	}

	return args
}
