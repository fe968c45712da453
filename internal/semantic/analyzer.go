// Package semantic implements minipar's semantic analysis pass: name
// resolution, type checking, and diagnostic reporting over a parsed
// program. It never mutates the AST it walks.
package semantic

import (
	"fmt"

	"github.com/minipar-lang/minipar/internal/ast"
	cerrors "github.com/minipar-lang/minipar/internal/errors"
	"github.com/minipar-lang/minipar/internal/token"
)

// Analyzer walks a Program and accumulates diagnostics. Construct one with
// New per program; it is not safe for concurrent or repeated use.
type Analyzer struct {
	source string
	file   string

	global  *Scope
	classes *ClassTable

	errs     []*cerrors.CompilerError
	warnings []*cerrors.CompilerError

	// currentClass/currentReturn track the enclosing method/function while
	// walking a body, so `this` and bare `return` can be typed correctly.
	currentClass  string
	currentReturn string
	sawReturn     bool
}

// New creates an Analyzer over source text (for diagnostic context lines)
// from the named file (may be "" for anonymous/REPL input).
func New(source, file string) *Analyzer {
	a := &Analyzer{
		source:  source,
		file:    file,
		global:  NewScope(),
		classes: NewClassTable(),
	}
	for name, sig := range builtins {
		a.global.DefineHere(&Symbol{
			Name: name, IsFunction: true, ReturnType: sig.Return, ParamTypes: sig.Params, Used: true,
		})
	}
	return a
}

// Analyze runs the full pass over prog and returns the resulting Report.
func (a *Analyzer) Analyze(prog *ast.Program) *Report {
	a.collectClasses(prog)
	a.collectTopLevelSymbols(prog)
	a.checkClassBodies(prog)
	a.checkTopLevel(prog)
	return a.buildReport()
}

func (a *Analyzer) errorf(pos token.Position, format string, args ...any) {
	a.errs = append(a.errs, cerrors.New(pos, fmt.Sprintf(format, args...), a.source, a.file))
}

func (a *Analyzer) warnf(pos token.Position, format string, args ...any) {
	a.warnings = append(a.warnings, cerrors.NewWarning(pos, fmt.Sprintf(format, args...), a.source, a.file))
}
