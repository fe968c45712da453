package parser

import (
	"github.com/minipar-lang/minipar/internal/ast"
	"github.com/minipar-lang/minipar/internal/token"
)

// parseBlock parses a top-level `seq { ... }` or `par { ... }` compound
// statement; cur is the SEQ/PAR token.
func (p *Parser) parseBlock() *ast.Block {
	kind := ast.Seq
	if p.curIs(token.PAR) {
		kind = ast.Par
	}
	if !p.expect(token.LBRACE) {
		return &ast.Block{Kind: kind}
	}
	return p.parseBlockBody(kind)
}

// parseBlockBody parses statements until a closing brace; cur is the
// opening LBRACE on entry, RBRACE on exit.
func (p *Parser) parseBlockBody(kind ast.BlockKind) *ast.Block {
	block := &ast.Block{Token: p.cur, Kind: kind}
	p.next()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) && !p.failed() {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.next()
	}
	return block
}

// parseStatement dispatches on the current token to one of the recognized
// statement forms.
func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curIs(token.SEQ) || p.curIs(token.PAR):
		return p.parseBlock()
	case p.curIs(token.IF):
		return p.parseIfStmt()
	case p.curIs(token.WHILE):
		return p.parseWhileStmt()
	case p.curIs(token.FOR):
		return p.parseForStmt()
	case p.curIs(token.PRINT):
		return p.parsePrintStmt()
	case p.curIs(token.RETURN):
		return p.parseReturnStmt()
	case token.IsTypeKeyword(p.cur.Type) && p.peekIs(token.IDENT):
		typeTok := p.cur
		typeRef := p.parseTypeRef()
		p.next()
		return p.parseVarDeclTail(typeTok, typeRef, p.cur)
	case p.curIs(token.IDENT) || p.curIs(token.THIS):
		return p.parseIdentStatement()
	default:
		p.errorf("unexpected token %q starting a statement", p.cur.Literal)
		return nil
	}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	stmt := &ast.IfStmt{Token: p.cur}
	if !p.expect(token.LPAREN) {
		return stmt
	}
	p.next()
	stmt.Condition = p.parseExpression(lowest)
	if !p.expect(token.RPAREN) {
		return stmt
	}
	if !p.expect(token.LBRACE) {
		return stmt
	}
	stmt.Then = p.parseBlockBody(ast.Seq)
	if p.peekIs(token.ELSE) {
		p.next()
		if p.peekIs(token.IF) {
			p.next()
			stmt.Else = p.parseIfStmt()
			return stmt
		}
		if !p.expect(token.LBRACE) {
			return stmt
		}
		stmt.Else = p.parseBlockBody(ast.Seq)
	}
	return stmt
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	stmt := &ast.WhileStmt{Token: p.cur}
	if !p.expect(token.LPAREN) {
		return stmt
	}
	p.next()
	stmt.Condition = p.parseExpression(lowest)
	if !p.expect(token.RPAREN) {
		return stmt
	}
	if !p.expect(token.LBRACE) {
		return stmt
	}
	stmt.Body = p.parseBlockBody(ast.Seq)
	return stmt
}

// parseForStmt parses `for v=init; cond; v=step { body }`. Var must already
// be a declared identifier; the parser only records the name, the semantic
// analyzer checks prior declaration.
func (p *Parser) parseForStmt() *ast.ForStmt {
	stmt := &ast.ForStmt{Token: p.cur}
	if !p.expect(token.IDENT) {
		return stmt
	}
	stmt.Var = p.cur.Literal
	if !p.expect(token.ASSIGN) {
		return stmt
	}
	p.next()
	stmt.Init = p.parseExpression(lowest)
	if !p.expect(token.SEMICOLON) {
		return stmt
	}
	p.next()
	stmt.Condition = p.parseExpression(lowest)
	if !p.expect(token.SEMICOLON) {
		return stmt
	}
	if !p.expect(token.IDENT) {
		return stmt
	}
	if p.cur.Literal != stmt.Var {
		p.errorf("for-loop step must reassign control variable %s, got %s", stmt.Var, p.cur.Literal)
		return stmt
	}
	if !p.expect(token.ASSIGN) {
		return stmt
	}
	p.next()
	stmt.Step = p.parseExpression(lowest)
	if !p.expect(token.LBRACE) {
		return stmt
	}
	stmt.Body = p.parseBlockBody(ast.Seq)
	return stmt
}

func (p *Parser) parsePrintStmt() *ast.PrintStmt {
	stmt := &ast.PrintStmt{Token: p.cur}
	if !p.expect(token.LPAREN) {
		return stmt
	}
	p.next()
	stmt.Value = p.parseExpression(lowest)
	if !p.expect(token.RPAREN) {
		return stmt
	}
	if !p.expect(token.SEMICOLON) {
		return stmt
	}
	return stmt
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	stmt := &ast.ReturnStmt{Token: p.cur}
	if p.peekIs(token.SEMICOLON) {
		p.next()
		return stmt
	}
	p.next()
	stmt.Value = p.parseExpression(lowest)
	if !p.expect(token.SEMICOLON) {
		return stmt
	}
	return stmt
}

// parseIdentStatement handles every statement form that begins with an
// identifier or `this`: plain/array/attribute assignment, `= input(...)`,
// a bare function/method call, and the `ch.send(...)`/`ch.receive(...)`
// channel operations.
func (p *Parser) parseIdentStatement() ast.Statement {
	startTok := p.cur

	// Channel send/receive are recognized directly off a bare identifier
	// base (`ch.send(...)`); deeper attribute chains to a channel field are
	// out of scope for this simplification (see DESIGN.md).
	if p.curIs(token.IDENT) && p.peekIs(token.DOT) {
		if stmt := p.tryParseChannelOp(startTok); stmt != nil {
			return stmt
		}
	}

	var base ast.Expression
	if p.curIs(token.THIS) {
		base = &ast.ThisExpr{Token: startTok}
	} else {
		base = &ast.Identifier{Token: startTok, Name: startTok.Literal}
	}
	base = p.parsePostfixChain(base)

	if p.peekIs(token.ASSIGN) {
		p.next()
		p.next()
		if p.curIs(token.INPUT) {
			return p.finishInputStmt(startTok, base)
		}
		value := p.parseExpression(lowest)
		if !p.expect(token.SEMICOLON) {
			return nil
		}
		return &ast.Assignment{Token: startTok, Target: base, Value: value}
	}

	call, ok := base.(*ast.CallExpr)
	if !ok {
		p.errorf("expected assignment or call statement, got %s", base.String())
		return nil
	}
	if !p.expect(token.SEMICOLON) {
		return nil
	}
	return call
}

func (p *Parser) finishInputStmt(startTok token.Token, target ast.Expression) *ast.InputStmt {
	stmt := &ast.InputStmt{Token: startTok, Target: target}
	if !p.expect(token.LPAREN) {
		return stmt
	}
	if !p.peekIs(token.RPAREN) {
		p.next()
		stmt.Prompt = p.parseExpression(lowest)
	}
	if !p.expect(token.RPAREN) {
		return stmt
	}
	if !p.expect(token.SEMICOLON) {
		return stmt
	}
	return stmt
}

// tryParseChannelOp recognizes `IDENT.send(...)` / `IDENT.receive(...)` and
// returns the corresponding statement, or nil if the member name isn't
// send/receive (in which case no tokens beyond startTok were consumed).
func (p *Parser) tryParseChannelOp(startTok token.Token) ast.Statement {
	// cur is the identifier and pk the '.', so the member name is the token
	// after pk; scan it from a copy of the lexer so nothing is consumed here.
	ahead := *p.l
	member := ahead.NextToken()
	for member.Type == token.COMMENT {
		member = ahead.NextToken()
	}
	if member.Type != token.SEND && member.Type != token.RECEIVE {
		return nil
	}
	isSend := member.Type == token.SEND
	p.next() // consume '.'
	p.next() // consume member name
	if !p.peekIs(token.LPAREN) {
		p.errorf("expected '(' after channel operation %q", p.cur.Literal)
		return nil
	}
	p.next() // consume '('
	channel := ast.Expression(&ast.Identifier{Token: startTok, Name: startTok.Literal})

	if isSend {
		stmt := &ast.SendStmt{Token: startTok, Channel: channel}
		for !p.peekIs(token.RPAREN) {
			p.next()
			stmt.Values = append(stmt.Values, p.parseExpression(lowest))
			if p.peekIs(token.COMMA) {
				p.next()
			}
		}
		if !p.expect(token.RPAREN) {
			return stmt
		}
		if !p.expect(token.SEMICOLON) {
			return stmt
		}
		return stmt
	}

	stmt := &ast.ReceiveStmt{Token: startTok, Channel: channel}
	for !p.peekIs(token.RPAREN) {
		if !p.expect(token.IDENT) {
			return stmt
		}
		stmt.Targets = append(stmt.Targets, p.cur.Literal)
		if p.peekIs(token.COMMA) {
			p.next()
		}
	}
	if !p.expect(token.RPAREN) {
		return stmt
	}
	if !p.expect(token.SEMICOLON) {
		return stmt
	}
	return stmt
}
