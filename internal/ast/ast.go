// Package ast defines the abstract syntax tree produced by the parser.
//
// Every node implements Node (TokenLiteral/String/Pos); expression nodes
// additionally implement Expression, statement nodes Statement. Several
// assignment-target shapes are represented here by a single generalized
// node to keep the tree small and idiomatic: array assignment, attribute
// assignment, and array-element-of-object assignment
// all collapse into Assignment{Target, Value} where Target is any lvalue
// expression (Identifier, ArrayAccess, AttributeAccess, or a chain of
// those); function calls, method calls, and array-element method calls
// collapse into CallExpr{Callee, Args}. See DESIGN.md for the full mapping.
package ast

import (
	"bytes"

	"github.com/minipar-lang/minipar/internal/token"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: an ordered sequence of top-level declarations
// and blocks.
type Program struct {
	Children []Node
}

func (p *Program) TokenLiteral() string {
	if len(p.Children) > 0 {
		return p.Children[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, c := range p.Children {
		out.WriteString(c.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Children) > 0 {
		return p.Children[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

// BlockKind distinguishes sequential from parallel compound statements.
type BlockKind int

const (
	Seq BlockKind = iota
	Par
)

func (k BlockKind) String() string {
	if k == Par {
		return "par"
	}
	return "seq"
}

// Block is a seq{...} or par{...} compound statement.
type Block struct {
	Token      token.Token
	Kind       BlockKind
	Statements []Statement
}

func (b *Block) statementNode()       {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Pos() token.Position  { return b.Token.Pos }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString(b.Kind.String())
	out.WriteString(" {\n")
	for _, s := range b.Statements {
		out.WriteString("  " + s.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// Identifier is a bare name reference.
type Identifier struct {
	Token token.Token
	Name  string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() token.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Name }

// TypeRef names a declared type: a primitive keyword or a class name.
type TypeRef struct {
	Token token.Token
	Name  string
}

func (t *TypeRef) TokenLiteral() string { return t.Token.Literal }
func (t *TypeRef) Pos() token.Position  { return t.Token.Pos }
func (t *TypeRef) String() string       { return t.Name }

// ArrayShape carries the declared size expression(s) of an array
// declaration: Dim2 is nil for a 1D array.
type ArrayShape struct {
	Dim1 Expression
	Dim2 Expression
}

func (s *ArrayShape) String() string {
	if s == nil {
		return ""
	}
	if s.Dim2 != nil {
		return "[" + s.Dim1.String() + "][" + s.Dim2.String() + "]"
	}
	return "[" + s.Dim1.String() + "]"
}
