package parser

import (
	"github.com/minipar-lang/minipar/internal/ast"
	"github.com/minipar-lang/minipar/internal/token"
)

// parseClassDecl parses `class Name [extends Parent] { attrs; methods }`.
func (p *Parser) parseClassDecl() *ast.ClassDecl {
	decl := &ast.ClassDecl{Token: p.cur}
	if !p.expect(token.IDENT) {
		return decl
	}
	decl.Name = p.cur.Literal

	if p.peekIs(token.EXTENDS) {
		p.next()
		if !p.expect(token.IDENT) {
			return decl
		}
		decl.Parent = p.cur.Literal
	}

	if !p.expect(token.LBRACE) {
		return decl
	}
	p.next() // move onto first member

	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) && !p.failed() {
		if !token.IsTypeKeyword(p.cur.Type) || !p.peekIs(token.IDENT) {
			p.errorf("expected attribute or method declaration inside class %s, got %q", decl.Name, p.cur.Literal)
			return decl
		}
		typeTok := p.cur
		typeRef := p.parseTypeRef()
		if !p.expect(token.IDENT) {
			return decl
		}
		name := p.cur
		if p.peekIs(token.LPAREN) {
			decl.Methods = append(decl.Methods, p.parseFunctionDecl(typeTok, typeRef, name))
		} else {
			shape := p.parseOptionalShape()
			if !p.expect(token.SEMICOLON) {
				return decl
			}
			decl.Attributes = append(decl.Attributes, &ast.AttributeDecl{
				Token: typeTok, Type: typeRef, Name: name.Literal, Shape: shape,
			})
		}
		p.next()
	}
	return decl
}

// parseFunctionDecl parses the parameter list and body of a function or
// method; typeTok/typeRef/name were already consumed by the caller as part
// of the two-token lookahead that distinguished this from a var decl.
func (p *Parser) parseFunctionDecl(_ token.Token, retType *ast.TypeRef, name token.Token) *ast.FunctionDecl {
	fn := &ast.FunctionDecl{Token: name, ReturnType: retType, Name: name.Literal}
	if !p.expect(token.LPAREN) {
		return fn
	}
	for !p.peekIs(token.RPAREN) {
		p.next()
		if !token.IsTypeKeyword(p.cur.Type) {
			p.errorf("expected parameter type, got %q", p.cur.Literal)
			return fn
		}
		pt := p.parseTypeRef()
		if !p.expect(token.IDENT) {
			return fn
		}
		fn.Params = append(fn.Params, &ast.Param{Type: pt, Name: p.cur.Literal})
		if p.peekIs(token.COMMA) {
			p.next()
		}
	}
	if !p.expect(token.RPAREN) {
		return fn
	}
	if !p.expect(token.LBRACE) {
		return fn
	}
	fn.Body = p.parseBlockBody(ast.Seq)
	return fn
}

// parseVarDeclTail parses the remainder of a variable or channel
// declaration after `TYPE IDENT` has been consumed.
func (p *Parser) parseVarDeclTail(typeTok token.Token, typeRef *ast.TypeRef, name token.Token) *ast.VarDecl {
	decl := &ast.VarDecl{Token: typeTok, Type: typeRef, Name: name.Literal}

	if typeRef.Name == "c_channel" && p.peekIs(token.LBRACKET) {
		p.next() // consume '['
		if !p.expect(token.IDENT) {
			return decl
		}
		first := p.cur.Literal
		if !p.expect(token.IDENT) {
			return decl
		}
		second := p.cur.Literal
		decl.ChannelEndpoints = []string{first, second}
		if !p.expect(token.RBRACKET) {
			return decl
		}
	} else {
		decl.Shape = p.parseOptionalShape()
	}

	if p.peekIs(token.ASSIGN) {
		p.next()
		p.next()
		decl.Init = p.parseExpression(lowest)
	}
	if !p.expect(token.SEMICOLON) {
		return decl
	}
	return decl
}

// parseOptionalShape parses zero, one, or two `[expr]` array dimensions.
func (p *Parser) parseOptionalShape() *ast.ArrayShape {
	if !p.peekIs(token.LBRACKET) {
		return nil
	}
	p.next()
	p.next()
	dim1 := p.parseExpression(lowest)
	if !p.expect(token.RBRACKET) {
		return &ast.ArrayShape{Dim1: dim1}
	}
	shape := &ast.ArrayShape{Dim1: dim1}
	if p.peekIs(token.LBRACKET) {
		p.next()
		p.next()
		shape.Dim2 = p.parseExpression(lowest)
		if !p.expect(token.RBRACKET) {
			return shape
		}
	}
	return shape
}
