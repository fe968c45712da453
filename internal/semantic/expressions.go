package semantic

import (
	"strconv"
	"strings"

	"github.com/minipar-lang/minipar/internal/ast"
)

// inferType computes the static type of expr, recording errors for
// undeclared names, bad operand types, and out-of-range constant array
// indices along the way. An empty string return means the error was already
// reported and callers should not chain further checks off the result.
func (a *Analyzer) inferType(expr ast.Expression, scope *Scope) string {
	switch e := expr.(type) {
	case *ast.NumberLit:
		if strings.Contains(e.Value, ".") {
			return TFloat
		}
		return TInt
	case *ast.StringLit:
		return TString
	case *ast.BoolLit:
		return TBool
	case *ast.Identifier:
		sym, ok := scope.Resolve(e.Name)
		if !ok {
			a.errorf(e.Pos(), "undeclared identifier %s", e.Name)
			return ""
		}
		sym.Used = true
		if sym.IsFunction {
			a.errorf(e.Pos(), "%s is a function, not a value", e.Name)
			return ""
		}
		return sym.Type
	case *ast.ThisExpr:
		if a.currentClass == "" {
			a.errorf(e.Pos(), "this used outside a method body")
			return ""
		}
		return a.currentClass
	case *ast.BinaryExpr:
		return a.inferBinary(e, scope)
	case *ast.UnaryExpr:
		return a.inferUnary(e, scope)
	case *ast.ArrayAccess:
		return a.inferArrayAccess(e, scope)
	case *ast.AttributeAccess:
		t, _, _ := a.inferAttributeAccess(e, scope)
		return t
	case *ast.NewExpr:
		if _, ok := a.classes.Lookup(e.ClassName); !ok {
			a.errorf(e.Pos(), "new references undeclared class %s", e.ClassName)
			return ""
		}
		return e.ClassName
	case *ast.ArrayInit:
		for _, el := range e.Elements {
			a.inferType(el, scope)
		}
		return TObject
	case *ast.BraceInit:
		for _, el := range e.Elements {
			a.inferType(el, scope)
		}
		return TObject
	case *ast.CallExpr:
		return a.inferCall(e, scope)
	case *ast.InputExpr:
		if e.Prompt != nil {
			a.inferType(e.Prompt, scope)
		}
		return TString
	default:
		return ""
	}
}

// inferLvalueType types an expression used as an assignment/input target.
// It delegates to inferType, so an identifier target is marked used: a
// variable that is only ever written is not reported as unused.
func (a *Analyzer) inferLvalueType(expr ast.Expression, scope *Scope) string {
	return a.inferType(expr, scope)
}

func (a *Analyzer) inferBinary(e *ast.BinaryExpr, scope *Scope) string {
	left := a.inferType(e.Left, scope)
	right := a.inferType(e.Right, scope)
	if left == "" || right == "" {
		return ""
	}
	if (e.Op == "/" || e.Op == "%") && isLiteralZero(e.Right) {
		a.errorf(e.Pos(), "division by literal zero")
		return ""
	}
	result, ok := resultType(e.Op, left, right)
	if !ok {
		a.errorf(e.Pos(), "operator %s not defined for operand types %s and %s", e.Op, left, right)
		return ""
	}
	return result
}

func isLiteralZero(expr ast.Expression) bool {
	n, ok := expr.(*ast.NumberLit)
	if !ok {
		return false
	}
	f, err := strconv.ParseFloat(n.Value, 64)
	return err == nil && f == 0
}

func (a *Analyzer) inferUnary(e *ast.UnaryExpr, scope *Scope) string {
	t := a.inferType(e.Right, scope)
	if t == "" {
		return ""
	}
	switch e.Op {
	case "-":
		if !isNumeric(t) {
			a.errorf(e.Pos(), "unary - requires a numeric operand, got %s", t)
			return ""
		}
		return t
	case "!":
		if normalizeType(t) != TBool {
			a.errorf(e.Pos(), "unary ! requires a bool operand, got %s", t)
			return ""
		}
		return TBool
	default:
		return ""
	}
}

func (a *Analyzer) inferArrayAccess(e *ast.ArrayAccess, scope *Scope) string {
	arrType := a.inferArrayBaseType(e.Array, scope)
	shape := a.arrayShapeOf(e.Array, scope)

	a.checkIndex(e.Index1, shape, 0, scope)
	if e.Index2 != nil {
		a.checkIndex(e.Index2, shape, 1, scope)
	}
	return arrType
}

// checkIndex type-checks one array index and, when both the index and the
// declared dimension are compile-time constants, enforces a hard
// out-of-bounds error.
func (a *Analyzer) checkIndex(idx ast.Expression, shape *ast.ArrayShape, dim int, scope *Scope) {
	t := a.inferType(idx, scope)
	if t != "" && normalizeType(t) != TInt {
		a.errorf(idx.Pos(), "array index must be int, got %s", t)
	}
	if shape == nil {
		return
	}
	var dimExpr ast.Expression
	if dim == 0 {
		dimExpr = shape.Dim1
	} else {
		dimExpr = shape.Dim2
	}
	idxConst, idxOK := constantInt(idx)
	sizeConst, sizeOK := constantInt(dimExpr)
	if idxOK && sizeOK && (idxConst < 0 || idxConst >= sizeConst) {
		a.errorf(idx.Pos(), "array index %d out of range for declared size %d", idxConst, sizeConst)
	}
}

func constantInt(expr ast.Expression) (int, bool) {
	n, ok := expr.(*ast.NumberLit)
	if !ok || strings.Contains(n.Value, ".") {
		return 0, false
	}
	v, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, false
	}
	return v, true
}

// inferArrayBaseType resolves the element type of an lvalue usable as an
// array base: a plain identifier or an attribute access.
func (a *Analyzer) inferArrayBaseType(base ast.Expression, scope *Scope) string {
	switch b := base.(type) {
	case *ast.Identifier:
		sym, ok := scope.Resolve(b.Name)
		if !ok {
			a.errorf(b.Pos(), "undeclared identifier %s", b.Name)
			return ""
		}
		sym.Used = true
		return sym.ArrayElemType
	case *ast.AttributeAccess:
		_, attr, _ := a.inferAttributeAccess(b, scope)
		if attr != nil {
			return attr.Type.Name
		}
		return ""
	default:
		return a.inferType(base, scope)
	}
}

func (a *Analyzer) arrayShapeOf(base ast.Expression, scope *Scope) *ast.ArrayShape {
	switch b := base.(type) {
	case *ast.Identifier:
		sym, ok := scope.Resolve(b.Name)
		if !ok || !sym.IsArray {
			return nil
		}
		return sym.declaredShape
	case *ast.AttributeAccess:
		_, attr, _ := a.inferAttributeAccess(b, scope)
		if attr != nil {
			return attr.Shape
		}
	}
	return nil
}

// inferAttributeAccess resolves object.Name by first typing Object, then
// walking the inheritance chain for an attribute of that name. It returns
// the attribute's declared type, the AttributeDecl itself (nil if
// unresolved), and whether resolution
// succeeded.
func (a *Analyzer) inferAttributeAccess(e *ast.AttributeAccess, scope *Scope) (string, *ast.AttributeDecl, bool) {
	objType := a.inferType(e.Object, scope)
	if objType == "" {
		return "", nil, false
	}
	if normalizeType(objType) == TObject {
		return TObject, nil, true
	}
	attr, _, ok := a.classes.ResolveAttribute(objType, e.Name)
	if !ok {
		if _, _, mok := a.classes.ResolveMethod(objType, e.Name); mok {
			a.warnf(e.Pos(), "%s is a method, not an attribute, on class %s", e.Name, objType)
			return "", nil, false
		}
		a.errorf(e.Pos(), "class %s has no attribute %s", objType, e.Name)
		return "", nil, false
	}
	return attr.Type.Name, attr, true
}

// inferCall resolves a plain function call (Callee is an Identifier) or a
// method call (Callee is an AttributeAccess), checking arity and per-
// argument assignability.
func (a *Analyzer) inferCall(e *ast.CallExpr, scope *Scope) string {
	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		sym, ok := scope.Resolve(callee.Name)
		if !ok {
			a.errorf(e.Pos(), "call to undeclared function %s", callee.Name)
			a.inferArgs(e.Args, nil, scope)
			return ""
		}
		sym.Used = true
		if !sym.IsFunction {
			a.errorf(e.Pos(), "%s is not callable", callee.Name)
			a.inferArgs(e.Args, nil, scope)
			return ""
		}
		a.checkArity(e, callee.Name, sym.ParamTypes, scope)
		return sym.ReturnType
	case *ast.AttributeAccess:
		objType := a.inferType(callee.Object, scope)
		if objType == "" {
			a.inferArgs(e.Args, nil, scope)
			return ""
		}
		if normalizeType(objType) == TObject {
			a.inferArgs(e.Args, nil, scope)
			return TObject
		}
		method, _, ok := a.classes.ResolveMethod(objType, callee.Name)
		if !ok {
			if _, _, aok := a.classes.ResolveAttribute(objType, callee.Name); aok {
				a.warnf(e.Pos(), "%s is an attribute, not a method, on class %s", callee.Name, objType)
			} else {
				a.errorf(e.Pos(), "class %s has no method %s", objType, callee.Name)
			}
			a.inferArgs(e.Args, nil, scope)
			return ""
		}
		var paramTypes []string
		for _, p := range method.Params {
			paramTypes = append(paramTypes, p.Type.Name)
		}
		a.checkArity(e, callee.Name, paramTypes, scope)
		return method.ReturnType.Name
	default:
		a.errorf(e.Pos(), "expression is not callable")
		a.inferArgs(e.Args, nil, scope)
		return ""
	}
}

func (a *Analyzer) inferArgs(args []ast.Expression, paramTypes []string, scope *Scope) {
	for i, arg := range args {
		argType := a.inferType(arg, scope)
		if paramTypes == nil || i >= len(paramTypes) || argType == "" {
			continue
		}
		if ok, warn := assignable(paramTypes[i], argType, a.classes); !ok {
			a.errorf(arg.Pos(), "argument %d: cannot pass %s where %s is expected", i+1, argType, paramTypes[i])
		} else if warn {
			a.warnf(arg.Pos(), "argument %d passed from an object-typed expression; type not verified at compile time", i+1)
		}
	}
}

func (a *Analyzer) checkArity(e *ast.CallExpr, name string, paramTypes []string, scope *Scope) {
	if len(e.Args) != len(paramTypes) {
		a.errorf(e.Pos(), "%s expects %d argument(s), got %d", name, len(paramTypes), len(e.Args))
		a.inferArgs(e.Args, nil, scope)
		return
	}
	a.inferArgs(e.Args, paramTypes, scope)
}
