package semantic

import "github.com/minipar-lang/minipar/internal/ast"

// collectClasses registers every top-level class declaration and its
// attribute/method members, so forward references (a method returning a
// class declared later in the file) resolve correctly.
func (a *Analyzer) collectClasses(prog *ast.Program) {
	for _, child := range prog.Children {
		decl, ok := child.(*ast.ClassDecl)
		if !ok {
			continue
		}
		ci := &ClassInfo{
			Decl:       decl,
			Name:       decl.Name,
			Parent:     decl.Parent,
			Attributes: make(map[string]*ast.AttributeDecl),
			Methods:    make(map[string]*ast.FunctionDecl),
		}
		for _, attr := range decl.Attributes {
			if _, dup := ci.Attributes[attr.Name]; dup {
				a.errorf(attr.Pos(), "duplicate attribute %q in class %s", attr.Name, decl.Name)
				continue
			}
			ci.Attributes[attr.Name] = attr
		}
		for _, m := range decl.Methods {
			if _, dup := ci.Methods[m.Name]; dup {
				a.errorf(m.Pos(), "duplicate method %q in class %s", m.Name, decl.Name)
				continue
			}
			ci.Methods[m.Name] = m
		}
		if prior, dup := a.classes.Define(ci); dup {
			a.errorf(decl.Pos(), "class %s already declared at line %d", decl.Name, prior.Decl.Pos().Line)
		}
	}

	for _, ci := range a.classes.All() {
		if ci.Parent == "" {
			continue
		}
		if _, ok := a.classes.Lookup(ci.Parent); !ok {
			a.errorf(ci.Decl.Pos(), "class %s extends undeclared class %s", ci.Name, ci.Parent)
			continue
		}
		if a.classHasCycle(ci.Name) {
			a.errorf(ci.Decl.Pos(), "inheritance cycle detected starting at class %s", ci.Name)
		}
	}
}

func (a *Analyzer) classHasCycle(start string) bool {
	seen := map[string]bool{}
	cur := start
	for {
		ci, ok := a.classes.Lookup(cur)
		if !ok || ci.Parent == "" {
			return false
		}
		if seen[cur] {
			return true
		}
		seen[cur] = true
		cur = ci.Parent
	}
}

// collectTopLevelSymbols registers every top-level function declaration
// into the global scope before any body is checked, so forward calls (a
// function invoking one declared later in the file) resolve. Top-level
// variables are defined later, in checkTopLevel, in source order — the
// language has no forward-reference rule for them.
func (a *Analyzer) collectTopLevelSymbols(prog *ast.Program) {
	for _, child := range prog.Children {
		decl, ok := child.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		sym := &Symbol{
			Name: decl.Name, IsFunction: true, ReturnType: decl.ReturnType.Name, Pos: decl.Pos(), Used: true,
		}
		for _, p := range decl.Params {
			sym.ParamTypes = append(sym.ParamTypes, p.Type.Name)
		}
		if prior, dup := a.global.DefineHere(sym); dup {
			a.errorf(decl.Pos(), "function %s already declared at line %d", decl.Name, prior.Pos.Line)
		}
	}
}

func (a *Analyzer) defineVar(scope *Scope, decl *ast.VarDecl) {
	sym := &Symbol{Name: decl.Name, Type: decl.Type.Name, Pos: decl.Pos()}
	if decl.Shape != nil {
		sym.IsArray = true
		sym.ArrayElemType = decl.Type.Name
		sym.declaredShape = decl.Shape
	}
	if prior, dup := scope.DefineHere(sym); dup {
		a.errorf(decl.Pos(), "%s already declared at line %d", decl.Name, prior.Pos.Line)
	}
}

// checkClassBodies type-checks every method body, seeded with its
// parameters and an implicit `this` of the enclosing class.
func (a *Analyzer) checkClassBodies(prog *ast.Program) {
	for _, child := range prog.Children {
		decl, ok := child.(*ast.ClassDecl)
		if !ok {
			continue
		}
		for _, m := range decl.Methods {
			a.checkFunctionLike(m, decl.Name)
		}
	}
}

// checkFunctionLike type-checks a function or method body. className is ""
// for a plain top-level function.
func (a *Analyzer) checkFunctionLike(fn *ast.FunctionDecl, className string) {
	scope := NewEnclosedScope(a.global)
	if className != "" {
		scope.DefineHere(&Symbol{Name: "this", Type: className, Used: true})
	}
	for _, p := range fn.Params {
		scope.DefineHere(&Symbol{Name: p.Name, Type: p.Type.Name, Used: true})
	}

	prevClass, prevReturn, prevSaw := a.currentClass, a.currentReturn, a.sawReturn
	a.currentClass, a.currentReturn, a.sawReturn = className, fn.ReturnType.Name, false

	a.checkBlock(fn.Body, scope)

	if normalizeType(a.currentReturn) != TVoid && !a.sawReturn {
		a.warnf(fn.Pos(), "function %s has non-void return type %s but no return statement", fn.Name, fn.ReturnType.Name)
	}
	a.warnUnused(scope)

	a.currentClass, a.currentReturn, a.sawReturn = prevClass, prevReturn, prevSaw
}

func (a *Analyzer) warnUnused(scope *Scope) {
	for name, sym := range scope.All() {
		if name == "this" || sym.Used {
			continue
		}
		a.warnf(sym.Pos, "%s declared but never used", name)
	}
}
