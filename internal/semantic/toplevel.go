package semantic

import "github.com/minipar-lang/minipar/internal/ast"

// checkTopLevel walks the program's top-level children, type-checking
// function bodies, top-level variable initializers, and seq/par blocks.
// Anything else at top level is a structural error.
func (a *Analyzer) checkTopLevel(prog *ast.Program) {
	for _, child := range prog.Children {
		switch node := child.(type) {
		case *ast.ClassDecl:
			// already handled by checkClassBodies
		case *ast.FunctionDecl:
			a.checkFunctionLike(node, "")
		case *ast.VarDecl:
			a.checkVarDecl(node, a.global)
		case *ast.Block:
			a.checkBlock(node, a.global)
		default:
			if stmt, ok := node.(ast.Statement); ok {
				a.errorf(stmt.Pos(), "statement must lie inside a seq/par block or a function body, not at program top level")
			}
		}
	}
	a.warnUnused(a.global)
}
