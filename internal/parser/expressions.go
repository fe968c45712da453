package parser

import (
	"github.com/minipar-lang/minipar/internal/ast"
	"github.com/minipar-lang/minipar/internal/token"
)

// lowest is the entry precedence for parseExpression; minipar's grammar is
// small enough that each precedence level gets its own named parse function
// instead of a generic precedence table, so this
// constant only marks "start from the top".
const lowest = 0

// parseExpression parses one expression; cur is the first token of the
// expression on entry.
func (p *Parser) parseExpression(_ int) ast.Expression {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.peekIs(token.OR) {
		opTok := p.pk
		p.next()
		p.next()
		right := p.parseAnd()
		left = &ast.BinaryExpr{Token: opTok, Op: "||", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseRelational()
	for p.peekIs(token.AND) {
		opTok := p.pk
		p.next()
		p.next()
		right := p.parseRelational()
		left = &ast.BinaryExpr{Token: opTok, Op: "&&", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	for isRelOp(p.pk.Type) {
		opTok := p.pk
		op := opTok.Literal
		p.next()
		p.next()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Token: opTok, Op: op, Left: left, Right: right}
	}
	return left
}

func isRelOp(t token.Type) bool {
	switch t {
	case token.EQ, token.NOT_EQ, token.LT, token.GT, token.LE, token.GE:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.peekIs(token.PLUS) || p.peekIs(token.MINUS) {
		opTok := p.pk
		p.next()
		p.next()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Token: opTok, Op: opTok.Literal, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.peekIs(token.ASTERISK) || p.peekIs(token.SLASH) || p.peekIs(token.PERCENT) {
		opTok := p.pk
		p.next()
		p.next()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Token: opTok, Op: opTok.Literal, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.curIs(token.MINUS) || p.curIs(token.NOT) {
		opTok := p.cur
		op := opTok.Literal
		p.next()
		right := p.parseUnary()
		return &ast.UnaryExpr{Token: opTok, Op: op, Right: right}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur.Type {
	case token.NUMBER:
		return &ast.NumberLit{Token: p.cur, Value: p.cur.Literal}
	case token.TEXT:
		return &ast.StringLit{Token: p.cur, Value: p.cur.Literal}
	case token.TRUE:
		return &ast.BoolLit{Token: p.cur, Value: true}
	case token.FALSE:
		return &ast.BoolLit{Token: p.cur, Value: false}
	case token.THIS:
		return p.parsePostfixChain(&ast.ThisExpr{Token: p.cur})
	case token.IDENT:
		return p.parsePostfixChain(&ast.Identifier{Token: p.cur, Name: p.cur.Literal})
	case token.INPUT:
		return p.parseInputExpr()
	case token.NEW:
		return p.parseNewExpr()
	case token.LPAREN:
		p.next()
		expr := p.parseExpression(lowest)
		if !p.expect(token.RPAREN) {
			return expr
		}
		return expr
	case token.LBRACKET:
		return p.parseArrayInit()
	case token.LBRACE:
		return p.parseBraceInit()
	default:
		p.errorf("unexpected token %q in expression", p.cur.Literal)
		return nil
	}
}

func (p *Parser) parseInputExpr() ast.Expression {
	expr := &ast.InputExpr{Token: p.cur}
	if !p.expect(token.LPAREN) {
		return expr
	}
	if !p.peekIs(token.RPAREN) {
		p.next()
		expr.Prompt = p.parseExpression(lowest)
	}
	if !p.expect(token.RPAREN) {
		return expr
	}
	return expr
}

func (p *Parser) parseNewExpr() ast.Expression {
	expr := &ast.NewExpr{Token: p.cur}
	if !p.expect(token.IDENT) {
		return expr
	}
	expr.ClassName = p.cur.Literal
	if !p.expect(token.LPAREN) {
		return expr
	}
	if !p.expect(token.RPAREN) {
		return expr
	}
	return expr
}

func (p *Parser) parseArrayInit() ast.Expression {
	lit := &ast.ArrayInit{Token: p.cur}
	for !p.peekIs(token.RBRACKET) {
		p.next()
		lit.Elements = append(lit.Elements, p.parseExpression(lowest))
		if p.peekIs(token.COMMA) {
			p.next()
		}
	}
	if !p.expect(token.RBRACKET) {
		return lit
	}
	return lit
}

func (p *Parser) parseBraceInit() ast.Expression {
	lit := &ast.BraceInit{Token: p.cur}
	for !p.peekIs(token.RBRACE) {
		p.next()
		lit.Elements = append(lit.Elements, p.parseExpression(lowest))
		if p.peekIs(token.COMMA) {
			p.next()
		}
	}
	if !p.expect(token.RBRACE) {
		return lit
	}
	return lit
}

// parsePostfixChain repeatedly applies `.name`, `[index]`, and `(args)`
// suffixes to base. It is shared between expression-position parsing and
// parseIdentStatement, since the grammar for an lvalue/callee chain is
// identical in both positions.
func (p *Parser) parsePostfixChain(base ast.Expression) ast.Expression {
	for {
		switch {
		case p.peekIs(token.DOT):
			p.next()
			if !p.expect(token.IDENT) {
				return base
			}
			base = &ast.AttributeAccess{Token: p.cur, Object: base, Name: p.cur.Literal}
		case p.peekIs(token.LBRACKET):
			p.next()
			p.next()
			idx1 := p.parseExpression(lowest)
			if !p.expect(token.RBRACKET) {
				return base
			}
			access := &ast.ArrayAccess{Token: p.cur, Array: base, Index1: idx1}
			if p.peekIs(token.LBRACKET) {
				p.next()
				p.next()
				access.Index2 = p.parseExpression(lowest)
				if !p.expect(token.RBRACKET) {
					return access
				}
			}
			base = access
		case p.peekIs(token.LPAREN):
			p.next()
			callTok := p.cur
			args := p.parseCallArgs()
			base = &ast.CallExpr{Token: callTok, Callee: base, Args: args}
		default:
			return base
		}
	}
}

func (p *Parser) parseCallArgs() []ast.Expression {
	var args []ast.Expression
	for !p.peekIs(token.RPAREN) {
		p.next()
		args = append(args, p.parseExpression(lowest))
		if p.peekIs(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	return args
}
