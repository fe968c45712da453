package ast

import (
	"bytes"
	"strings"

	"github.com/minipar-lang/minipar/internal/token"
)

// NumberLit is an integer or decimal literal. The lexeme is kept verbatim;
// "contains a dot" decides int vs. float at evaluation time.
type NumberLit struct {
	Token token.Token
	Value string
}

func (n *NumberLit) expressionNode()      {}
func (n *NumberLit) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLit) Pos() token.Position  { return n.Token.Pos }
func (n *NumberLit) String() string       { return n.Value }

// StringLit is a double-quoted string literal, unescaped.
type StringLit struct {
	Token token.Token
	Value string
}

func (s *StringLit) expressionNode()      {}
func (s *StringLit) TokenLiteral() string { return s.Token.Literal }
func (s *StringLit) Pos() token.Position  { return s.Token.Pos }
func (s *StringLit) String() string       { return "\"" + s.Value + "\"" }

// BoolLit is a `true`/`false` literal.
type BoolLit struct {
	Token token.Token
	Value bool
}

func (b *BoolLit) expressionNode()      {}
func (b *BoolLit) TokenLiteral() string { return b.Token.Literal }
func (b *BoolLit) Pos() token.Position  { return b.Token.Pos }
func (b *BoolLit) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// BinaryExpr is a left-associative binary operator application, covering
// arithmetic, relational, and logical operators.
type BinaryExpr struct {
	Token token.Token
	Op    string
	Left  Expression
	Right Expression
}

func (b *BinaryExpr) expressionNode()      {}
func (b *BinaryExpr) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpr) Pos() token.Position  { return b.Token.Pos }
func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// UnaryExpr is a right-associative prefix operator application.
type UnaryExpr struct {
	Token token.Token
	Op    string
	Right Expression
}

func (u *UnaryExpr) expressionNode()      {}
func (u *UnaryExpr) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpr) Pos() token.Position  { return u.Token.Pos }
func (u *UnaryExpr) String() string       { return "(" + u.Op + u.Right.String() + ")" }

// ArrayAccess indexes a 1D or 2D array. Array may itself be an
// AttributeAccess chain, which is how an array reached through an
// attribute chain is represented here.
type ArrayAccess struct {
	Token  token.Token
	Array  Expression
	Index1 Expression
	Index2 Expression // nil for 1D access
}

func (a *ArrayAccess) expressionNode()      {}
func (a *ArrayAccess) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayAccess) Pos() token.Position  { return a.Token.Pos }
func (a *ArrayAccess) String() string {
	s := a.Array.String() + "[" + a.Index1.String() + "]"
	if a.Index2 != nil {
		s += "[" + a.Index2.String() + "]"
	}
	return s
}

// AttributeAccess is `object.Name`; Object may itself be an AttributeAccess
// to represent chained access (`a.b.c`).
type AttributeAccess struct {
	Token  token.Token
	Object Expression
	Name   string
}

func (a *AttributeAccess) expressionNode()      {}
func (a *AttributeAccess) TokenLiteral() string { return a.Token.Literal }
func (a *AttributeAccess) Pos() token.Position  { return a.Token.Pos }
func (a *AttributeAccess) String() string       { return a.Object.String() + "." + a.Name }

// ThisExpr is the implicit receiver reference inside a method body.
type ThisExpr struct {
	Token token.Token
}

func (t *ThisExpr) expressionNode()      {}
func (t *ThisExpr) TokenLiteral() string { return t.Token.Literal }
func (t *ThisExpr) Pos() token.Position  { return t.Token.Pos }
func (t *ThisExpr) String() string       { return "this" }

// NewExpr instantiates a class.
type NewExpr struct {
	Token     token.Token
	ClassName string
}

func (n *NewExpr) expressionNode()      {}
func (n *NewExpr) TokenLiteral() string { return n.Token.Literal }
func (n *NewExpr) Pos() token.Position  { return n.Token.Pos }
func (n *NewExpr) String() string       { return "new " + n.ClassName + "()" }

// ArrayInit is a `[...]` array literal.
type ArrayInit struct {
	Token    token.Token
	Elements []Expression
}

func (a *ArrayInit) expressionNode()      {}
func (a *ArrayInit) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayInit) Pos() token.Position  { return a.Token.Pos }
func (a *ArrayInit) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// BraceInit is a `{...}` aggregate literal (used for 2D array row groups).
type BraceInit struct {
	Token    token.Token
	Elements []Expression
}

func (b *BraceInit) expressionNode()      {}
func (b *BraceInit) TokenLiteral() string { return b.Token.Literal }
func (b *BraceInit) Pos() token.Position  { return b.Token.Pos }
func (b *BraceInit) String() string {
	parts := make([]string, len(b.Elements))
	for i, e := range b.Elements {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// CallExpr is an invocation: Callee is an Identifier for a plain function
// call, or an AttributeAccess for a method call. A method call reached
// through an array element collapses into this one node too — Callee.Object
// is then itself an ArrayAccess.
type CallExpr struct {
	Token  token.Token
	Callee Expression
	Args   []Expression
}

func (c *CallExpr) expressionNode()      {}
func (c *CallExpr) statementNode()       {} // a bare call is also a valid statement
func (c *CallExpr) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpr) Pos() token.Position  { return c.Token.Pos }
func (c *CallExpr) String() string {
	var out bytes.Buffer
	out.WriteString(c.Callee.String())
	out.WriteString("(")
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(")")
	return out.String()
}

// InputExpr is the `input(prompt?)` pseudo-call used as an expression on
// the right-hand side of an assignment or declaration initializer.
type InputExpr struct {
	Token  token.Token
	Prompt Expression // nil if omitted
}

func (i *InputExpr) expressionNode()      {}
func (i *InputExpr) TokenLiteral() string { return i.Token.Literal }
func (i *InputExpr) Pos() token.Position  { return i.Token.Pos }
func (i *InputExpr) String() string {
	if i.Prompt != nil {
		return "input(" + i.Prompt.String() + ")"
	}
	return "input()"
}
