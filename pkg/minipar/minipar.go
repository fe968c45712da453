// Package minipar is the embedder-facing facade over the lexer, parser,
// semantic analyzer, TAC emitter, and tree-walking evaluator: a single
// entry point that hides the internal pipeline packages behind a small,
// stable API.
package minipar

import (
	"github.com/minipar-lang/minipar/internal/ast"
	"github.com/minipar-lang/minipar/internal/errors"
	"github.com/minipar-lang/minipar/internal/lexer"
	"github.com/minipar-lang/minipar/internal/parser"
	"github.com/minipar-lang/minipar/internal/semantic"
	"github.com/minipar-lang/minipar/internal/tac"
	"github.com/minipar-lang/minipar/internal/token"
)

// AnalysisResult bundles every artifact produced from one pass over a
// source string: the raw tokens, the parsed AST, the semantic report, the
// diagnostic three-address-code translation, and a plain-data symbol
// snapshot suitable for JSON encoding.
type AnalysisResult struct {
	Tokens   []token.Token
	Program  *ast.Program
	Semantic *semantic.Report
	TAC      *tac.Program
	Symbols  map[string]any

	// ParseErrors holds syntax errors; non-empty means Program, Semantic,
	// and TAC are unset, since analysis never proceeds past a parse failure.
	ParseErrors []*errors.CompilerError
}

// Analyze runs the full static pipeline over source: lex, parse, then (if
// parsing succeeded) semantic analysis and TAC emission. filename is used
// only to annotate diagnostics.
func Analyze(source, filename string) *AnalysisResult {
	result := &AnalysisResult{Tokens: lexAll(source)}

	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if len(p.Errors()) > 0 {
		result.ParseErrors = errors.FromStringErrors(p.Errors(), source, filename)
		return result
	}

	result.Program = program

	analyzer := semantic.New(source, filename)
	report := analyzer.Analyze(program)
	result.Semantic = report
	result.Symbols = report.Symbols()
	result.TAC = tac.Emit(program)

	return result
}

func lexAll(source string) []token.Token {
	l := lexer.New(source)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens
}
