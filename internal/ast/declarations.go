package ast

import (
	"bytes"
	"strings"

	"github.com/minipar-lang/minipar/internal/token"
)

// Param is a single (type, name) function/method parameter.
type Param struct {
	Type *TypeRef
	Name string
}

func (p *Param) String() string { return p.Type.String() + " " + p.Name }

// FunctionDecl is a top-level function or a class method. Methods are
// FunctionDecls held in ClassDecl.Methods; both share this node because
// minipar has no function-valued expressions, only named declarations.
type FunctionDecl struct {
	Token      token.Token
	ReturnType *TypeRef
	Name       string
	Params     []*Param
	Body       *Block
}

func (f *FunctionDecl) statementNode()       {}
func (f *FunctionDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDecl) Pos() token.Position  { return f.Token.Pos }
func (f *FunctionDecl) String() string {
	var out bytes.Buffer
	out.WriteString(f.ReturnType.String())
	out.WriteString(" ")
	out.WriteString(f.Name)
	out.WriteString("(")
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(f.Body.String())
	return out.String()
}

// AttributeDecl is a class field: a declared type, name, and optional
// array shape.
type AttributeDecl struct {
	Token token.Token
	Type  *TypeRef
	Name  string
	Shape *ArrayShape
}

func (a *AttributeDecl) TokenLiteral() string { return a.Token.Literal }
func (a *AttributeDecl) Pos() token.Position  { return a.Token.Pos }
func (a *AttributeDecl) String() string {
	return a.Type.String() + " " + a.Name + a.Shape.String()
}

// ClassDecl is a class declaration with an optional single parent.
type ClassDecl struct {
	Token      token.Token
	Name       string
	Parent     string // "" if none
	Attributes []*AttributeDecl
	Methods    []*FunctionDecl
}

func (c *ClassDecl) statementNode()       {}
func (c *ClassDecl) TokenLiteral() string { return c.Token.Literal }
func (c *ClassDecl) Pos() token.Position  { return c.Token.Pos }
func (c *ClassDecl) String() string {
	var out bytes.Buffer
	out.WriteString("class ")
	out.WriteString(c.Name)
	if c.Parent != "" {
		out.WriteString(" extends " + c.Parent)
	}
	out.WriteString(" {\n")
	for _, a := range c.Attributes {
		out.WriteString("  " + a.String() + ";\n")
	}
	for _, m := range c.Methods {
		out.WriteString("  " + m.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// VarDecl is a variable or channel declaration, optionally with an
// initializer, array shape, or (for c_channel) a pair of endpoint ids.
type VarDecl struct {
	Token            token.Token
	Type             *TypeRef
	Name             string
	Init             Expression // nil if none
	Shape            *ArrayShape
	ChannelEndpoints []string // 0 or 2 entries, only meaningful for c_channel
}

func (v *VarDecl) statementNode()       {}
func (v *VarDecl) TokenLiteral() string { return v.Token.Literal }
func (v *VarDecl) Pos() token.Position  { return v.Token.Pos }
func (v *VarDecl) String() string {
	var out bytes.Buffer
	out.WriteString(v.Type.String())
	out.WriteString(" ")
	out.WriteString(v.Name)
	out.WriteString(v.Shape.String())
	if len(v.ChannelEndpoints) == 2 {
		out.WriteString(" [" + v.ChannelEndpoints[0] + " " + v.ChannelEndpoints[1] + "]")
	}
	if v.Init != nil {
		out.WriteString(" = " + v.Init.String())
	}
	out.WriteString(";")
	return out.String()
}
