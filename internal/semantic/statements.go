package semantic

import "github.com/minipar-lang/minipar/internal/ast"

// checkBlock type-checks a seq/par block in its own nested scope.
func (a *Analyzer) checkBlock(block *ast.Block, outer *Scope) {
	if block == nil {
		return
	}
	scope := NewEnclosedScope(outer)
	for _, stmt := range block.Statements {
		a.checkStatement(stmt, scope)
	}
	a.warnUnused(scope)
}

func (a *Analyzer) checkStatement(stmt ast.Statement, scope *Scope) {
	switch s := stmt.(type) {
	case *ast.Block:
		a.checkBlock(s, scope)
	case *ast.VarDecl:
		a.checkVarDecl(s, scope)
	case *ast.Assignment:
		a.checkAssignment(s, scope)
	case *ast.InputStmt:
		a.checkInputStmt(s, scope)
	case *ast.IfStmt:
		a.checkIfStmt(s, scope)
	case *ast.WhileStmt:
		a.checkWhileStmt(s, scope)
	case *ast.ForStmt:
		a.checkForStmt(s, scope)
	case *ast.PrintStmt:
		a.inferType(s.Value, scope)
	case *ast.ReturnStmt:
		a.checkReturnStmt(s, scope)
	case *ast.SendStmt:
		a.checkSendStmt(s, scope)
	case *ast.ReceiveStmt:
		a.checkReceiveStmt(s, scope)
	case *ast.CallExpr:
		a.inferType(s, scope)
	case *ast.FunctionDecl, *ast.ClassDecl:
		a.errorf(stmt.Pos(), "declarations are only permitted at program top level")
	default:
		a.errorf(stmt.Pos(), "statement not permitted here")
	}
}

func (a *Analyzer) checkVarDecl(decl *ast.VarDecl, scope *Scope) {
	a.defineVar(scope, decl)
	a.checkArrayShape(decl.Shape, scope)
	if decl.Init == nil {
		return
	}
	sourceType := a.inferType(decl.Init, scope)
	if sourceType == "" {
		return
	}
	ok, warn := assignable(decl.Type.Name, sourceType, a.classes)
	if !ok {
		a.errorf(decl.Pos(), "cannot initialize %s %s with value of type %s", decl.Type.Name, decl.Name, sourceType)
	} else if warn {
		a.warnf(decl.Pos(), "initializing %s %s from an object-typed expression; type not verified at compile time", decl.Type.Name, decl.Name)
	}
}

func (a *Analyzer) checkArrayShape(shape *ast.ArrayShape, scope *Scope) {
	if shape == nil {
		return
	}
	for _, dim := range []ast.Expression{shape.Dim1, shape.Dim2} {
		if dim == nil {
			continue
		}
		t := a.inferType(dim, scope)
		if t != "" && normalizeType(t) != TInt {
			a.errorf(dim.Pos(), "array dimension must be int, got %s", t)
		}
	}
}

func (a *Analyzer) checkAssignment(s *ast.Assignment, scope *Scope) {
	targetType := a.inferLvalueType(s.Target, scope)
	sourceType := a.inferType(s.Value, scope)
	if targetType == "" || sourceType == "" {
		return
	}
	ok, warn := assignable(targetType, sourceType, a.classes)
	if !ok {
		a.errorf(s.Pos(), "cannot assign value of type %s to %s", sourceType, targetType)
	} else if warn {
		a.warnf(s.Pos(), "assigning from an object-typed expression; type not verified at compile time")
	}
}

func (a *Analyzer) checkInputStmt(s *ast.InputStmt, scope *Scope) {
	a.inferLvalueType(s.Target, scope)
	if s.Prompt != nil {
		a.inferType(s.Prompt, scope)
	}
}

func (a *Analyzer) checkIfStmt(s *ast.IfStmt, scope *Scope) {
	a.checkCondition(s.Condition, scope)
	a.checkStatement(s.Then, scope)
	if s.Else != nil {
		a.checkStatement(s.Else, scope)
	}
}

func (a *Analyzer) checkWhileStmt(s *ast.WhileStmt, scope *Scope) {
	a.checkCondition(s.Condition, scope)
	a.checkStatement(s.Body, scope)
}

// checkCondition enforces control-structure hygiene: a bool or relational
// condition is expected, a bare numeric produces a warning.
func (a *Analyzer) checkCondition(cond ast.Expression, scope *Scope) {
	t := a.inferType(cond, scope)
	if t == "" {
		return
	}
	if normalizeType(t) == TBool {
		return
	}
	if isNumeric(t) {
		a.warnf(cond.Pos(), "numeric condition %q; prefer an explicit comparison", cond.String())
		return
	}
	a.errorf(cond.Pos(), "condition must be bool, got %s", t)
}

func (a *Analyzer) checkForStmt(s *ast.ForStmt, scope *Scope) {
	sym, ok := scope.Resolve(s.Var)
	if !ok {
		a.errorf(s.Pos(), "for-loop control variable %s is not declared", s.Var)
	} else {
		sym.Used = true
	}
	a.inferType(s.Init, scope)
	a.inferType(s.Condition, scope)
	a.inferType(s.Step, scope)
	a.checkStatement(s.Body, scope)
}

func (a *Analyzer) checkReturnStmt(s *ast.ReturnStmt, scope *Scope) {
	a.sawReturn = true
	if s.Value == nil {
		if a.currentReturn != "" && normalizeType(a.currentReturn) != TVoid {
			a.errorf(s.Pos(), "bare return in function with return type %s", a.currentReturn)
		}
		return
	}
	t := a.inferType(s.Value, scope)
	if t == "" || a.currentReturn == "" {
		return
	}
	ok, warn := assignable(a.currentReturn, t, a.classes)
	if !ok {
		a.errorf(s.Pos(), "cannot return value of type %s from function declared to return %s", t, a.currentReturn)
	} else if warn {
		a.warnf(s.Pos(), "returning an object-typed expression; type not verified at compile time")
	}
}

func (a *Analyzer) checkSendStmt(s *ast.SendStmt, scope *Scope) {
	a.checkChannelOperand(s.Channel, scope)
	for _, v := range s.Values {
		a.inferType(v, scope)
	}
}

func (a *Analyzer) checkReceiveStmt(s *ast.ReceiveStmt, scope *Scope) {
	a.checkChannelOperand(s.Channel, scope)
	for _, name := range s.Targets {
		sym, ok := scope.Resolve(name)
		if !ok {
			a.errorf(s.Pos(), "receive target %s is not declared", name)
			continue
		}
		sym.Used = true
	}
}

func (a *Analyzer) checkChannelOperand(channel ast.Expression, scope *Scope) {
	t := a.inferType(channel, scope)
	if t != "" && normalizeType(t) != TChannel {
		a.errorf(channel.Pos(), "%s is not a channel", channel.String())
	}
}
