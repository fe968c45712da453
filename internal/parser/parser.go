// Package parser implements a hand-written recursive-descent parser that
// turns a minipar token stream into an AST. The parser fails fast on the
// first syntactic violation: there is no error recovery.
package parser

import (
	"fmt"

	"github.com/minipar-lang/minipar/internal/ast"
	"github.com/minipar-lang/minipar/internal/lexer"
	"github.com/minipar-lang/minipar/internal/token"
)

// Parser consumes tokens from a Lexer with one or two tokens of lookahead.
type Parser struct {
	l   *lexer.Lexer
	cur token.Token
	pk  token.Token

	errors []string
}

// New creates a Parser reading from l and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Errors returns all syntax errors recorded so far. Parsing stops after the
// statement in which the first error occurs, so this slice holds that error
// and at most a few follow-on errors from the same statement; the
// multi-error shape keeps the API convenient for embedders.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) next() {
	p.cur = p.pk
	for {
		p.pk = p.l.NextToken()
		if p.pk.Type != token.COMMENT {
			break
		}
	}
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.pk.Type == t }

func (p *Parser) expect(t token.Type) bool {
	if p.peekIs(t) {
		p.next()
		return true
	}
	p.errorf("expected next token to be %s, got %s (%q) instead", t, p.pk.Type, p.pk.Literal)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("line %d:%d: %s", p.cur.Pos.Line, p.cur.Pos.Column, msg))
}

func (p *Parser) failed() bool { return len(p.errors) > 0 }

// ParseProgram parses the whole token stream into a Program. On the first
// syntax error, parsing stops and Errors() is non-empty.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) && !p.failed() {
		child := p.parseTopLevel()
		if child != nil {
			prog.Children = append(prog.Children, child)
		}
		p.next()
	}
	return prog
}

// parseTopLevel recognizes the four top-level forms the language allows at
// file scope: class declarations, function declarations, variable/channel
// declarations, and seq/par blocks. Anything else is still parsed as a
// generic statement so the semantic analyzer can report the "loose
// executable statement at top level" structural error rather than the
// parser rejecting it outright.
func (p *Parser) parseTopLevel() ast.Node {
	switch {
	case p.curIs(token.CLASS):
		return p.parseClassDecl()
	case p.curIs(token.SEQ) || p.curIs(token.PAR):
		return p.parseBlock()
	case token.IsTypeKeyword(p.cur.Type) && p.peekIs(token.IDENT):
		return p.parseDeclOrFunction()
	default:
		return p.parseStatement()
	}
}

// parseDeclOrFunction implements the two-token lookahead rule: `TYPE IDENT
// (` is a function declaration, `TYPE IDENT ...` is a variable declaration.
func (p *Parser) parseDeclOrFunction() ast.Node {
	typeTok := p.cur
	typeRef := p.parseTypeRef()
	if !p.expect(token.IDENT) {
		return nil
	}
	name := p.cur
	if p.peekIs(token.LPAREN) {
		return p.parseFunctionDecl(typeTok, typeRef, name)
	}
	return p.parseVarDeclTail(typeTok, typeRef, name)
}

func (p *Parser) parseTypeRef() *ast.TypeRef {
	return &ast.TypeRef{Token: p.cur, Name: p.cur.Literal}
}
