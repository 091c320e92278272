package ast

import (
	"fmt"
	"strconv"
	"strings"

	"calc/token"
)

// Expr is the closed set of expression tree nodes. Each node exclusively
// owns its children; arity is fixed by the struct fields, so a malformed
// tree cannot be constructed.
type Expr interface {
	isExpr()
	fmt.Stringer
}

type Literal struct {
	Value float64
}

func (*Literal) isExpr() {}
func (l Literal) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64)
}

type Variable struct {
	Name token.Token
}

func (*Variable) isExpr() {}
func (v Variable) String() string {
	return parenthesize(v.Name.Lexeme)
}

type Unary struct {
	Op  token.Token
	Rhs Expr
}

func (*Unary) isExpr() {}
func (u Unary) String() string {
	return parenthesize(u.Op.Lexeme, u.Rhs)
}

type Binary struct {
	Lhs Expr
	Op  token.Token
	Rhs Expr
}

func (*Binary) isExpr() {}
func (b Binary) String() string {
	return parenthesize(b.Op.Lexeme, b.Lhs, b.Rhs)
}

type Assign struct {
	Name  token.Token
	Value Expr
}

func (*Assign) isExpr() {}
func (a Assign) String() string {
	return parenthesize("assign "+a.Name.Lexeme, a.Value)
}

type Call struct {
	Callee token.Token
	Args   []Expr
}

func (*Call) isExpr() {}
func (c Call) String() string {
	return parenthesize("call "+c.Callee.Lexeme, c.Args...)
}

func parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, expr := range exprs {
		sb.WriteByte(' ')
		sb.WriteString(expr.String())
	}
	sb.WriteByte(')')

	return sb.String()
}
