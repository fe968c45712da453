package interp

import (
	"strconv"
	"strings"

	"github.com/minipar-lang/minipar/internal/ast"
)

// eval evaluates expr under task and returns its runtime Value, following
// this language's permissive runtime type rules (floor int/int
// division, int/float promotion to float, string-concatenating `+`).
func (in *Interpreter) eval(expr ast.Expression, task *taskContext) (Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return numberLiteral(e.Value), nil
	case *ast.StringLit:
		return &String{Value: e.Value}, nil
	case *ast.BoolLit:
		return &Bool{Value: e.Value}, nil
	case *ast.Identifier:
		v, ok := Lookup(task.frame, in.global, e.Name)
		if !ok {
			return nil, &RuntimeError{Message: "undeclared identifier " + e.Name}
		}
		return v, nil
	case *ast.ThisExpr:
		v, ok := Lookup(task.frame, in.global, "this")
		if !ok {
			return nil, &RuntimeError{Message: "this used outside a method body"}
		}
		return v, nil
	case *ast.BinaryExpr:
		return in.evalBinary(e, task)
	case *ast.UnaryExpr:
		return in.evalUnary(e, task)
	case *ast.ArrayAccess:
		return in.evalArrayAccess(e, task)
	case *ast.AttributeAccess:
		return in.evalAttributeAccess(e, task)
	case *ast.NewExpr:
		return in.Instantiate(e.ClassName, task)
	case *ast.ArrayInit:
		return in.evalArrayInit(e, task)
	case *ast.BraceInit:
		return in.evalArrayInit(e, task)
	case *ast.CallExpr:
		return in.evalCall(e, task)
	case *ast.InputExpr:
		prompt := ""
		if e.Prompt != nil {
			v, err := in.eval(e.Prompt, task)
			if err != nil {
				return nil, err
			}
			prompt = stringify(v)
		}
		line, err := task.input.ReadLine(prompt)
		if err != nil {
			return nil, err
		}
		return &String{Value: line}, nil
	default:
		return unsetValue, nil
	}
}

func numberLiteral(lexeme string) Value {
	if strings.Contains(lexeme, ".") {
		f, _ := strconv.ParseFloat(lexeme, 64)
		return &Float{Value: f}
	}
	n, _ := strconv.ParseInt(lexeme, 10, 64)
	return &Int{Value: n}
}

func (in *Interpreter) evalBinary(e *ast.BinaryExpr, task *taskContext) (Value, error) {
	left, err := in.eval(e.Left, task)
	if err != nil {
		return nil, err
	}

	// && and || short-circuit; the right operand is only evaluated when it
	// can affect the result.
	if e.Op == "&&" {
		if !truthy(left) {
			return &Bool{Value: false}, nil
		}
		right, err := in.eval(e.Right, task)
		if err != nil {
			return nil, err
		}
		return &Bool{Value: truthy(right)}, nil
	}
	if e.Op == "||" {
		if truthy(left) {
			return &Bool{Value: true}, nil
		}
		right, err := in.eval(e.Right, task)
		if err != nil {
			return nil, err
		}
		return &Bool{Value: truthy(right)}, nil
	}

	right, err := in.eval(e.Right, task)
	if err != nil {
		return nil, err
	}

	if e.Op == "+" {
		_, lStr := left.(*String)
		_, rStr := right.(*String)
		if lStr || rStr {
			return &String{Value: stringify(left) + stringify(right)}, nil
		}
	}

	switch e.Op {
	case "+", "-", "*", "/", "%":
		return evalArithmetic(e.Op, left, right)
	case "==":
		return &Bool{Value: valuesEqual(left, right)}, nil
	case "!=":
		return &Bool{Value: !valuesEqual(left, right)}, nil
	case "<", ">", "<=", ">=":
		return evalRelational(e.Op, left, right)
	default:
		return nil, &RuntimeError{Message: "unknown operator " + e.Op}
	}
}

func evalArithmetic(op string, left, right Value) (Value, error) {
	lf, lok := asFloat64(left)
	rf, rok := asFloat64(right)
	if !lok || !rok {
		return nil, &RuntimeError{Message: "operator " + op + " requires numeric operands"}
	}
	_, lIsFloat := left.(*Float)
	_, rIsFloat := right.(*Float)
	useFloat := lIsFloat || rIsFloat

	if op == "/" && rf == 0 {
		return nil, &RuntimeError{Message: "division by zero"}
	}
	if op == "%" && rf == 0 {
		return nil, &RuntimeError{Message: "modulo by zero"}
	}

	if !useFloat {
		li, ri := int64(lf), int64(rf)
		switch op {
		case "+":
			return &Int{Value: li + ri}, nil
		case "-":
			return &Int{Value: li - ri}, nil
		case "*":
			return &Int{Value: li * ri}, nil
		case "/":
			return &Int{Value: floorDiv(li, ri)}, nil
		case "%":
			return &Int{Value: li % ri}, nil
		}
	}

	switch op {
	case "+":
		return &Float{Value: lf + rf}, nil
	case "-":
		return &Float{Value: lf - rf}, nil
	case "*":
		return &Float{Value: lf * rf}, nil
	case "/":
		return &Float{Value: lf / rf}, nil
	case "%":
		return &Float{Value: float64(int64(lf) % int64(rf))}, nil
	}
	return nil, &RuntimeError{Message: "unreachable arithmetic operator " + op}
}

// floorDiv truncates toward negative infinity, for int/int division.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func evalRelational(op string, left, right Value) (Value, error) {
	lf, lok := asFloat64(left)
	rf, rok := asFloat64(right)
	if !lok || !rok {
		return nil, &RuntimeError{Message: "operator " + op + " requires numeric operands"}
	}
	switch op {
	case "<":
		return &Bool{Value: lf < rf}, nil
	case ">":
		return &Bool{Value: lf > rf}, nil
	case "<=":
		return &Bool{Value: lf <= rf}, nil
	case ">=":
		return &Bool{Value: lf >= rf}, nil
	default:
		return nil, &RuntimeError{Message: "unknown relational operator " + op}
	}
}

func valuesEqual(left, right Value) bool {
	if isNumericValue(left) && isNumericValue(right) {
		lf, _ := asFloat64(left)
		rf, _ := asFloat64(right)
		return lf == rf
	}
	if ls, ok := left.(*String); ok {
		if rs, ok := right.(*String); ok {
			return ls.Value == rs.Value
		}
	}
	if lb, ok := left.(*Bool); ok {
		if rb, ok := right.(*Bool); ok {
			return lb.Value == rb.Value
		}
	}
	return false
}

func (in *Interpreter) evalUnary(e *ast.UnaryExpr, task *taskContext) (Value, error) {
	v, err := in.eval(e.Right, task)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "-":
		switch n := v.(type) {
		case *Int:
			return &Int{Value: -n.Value}, nil
		case *Float:
			return &Float{Value: -n.Value}, nil
		default:
			return nil, &RuntimeError{Message: "unary - requires a numeric operand"}
		}
	case "!":
		b, ok := v.(*Bool)
		if !ok {
			return nil, &RuntimeError{Message: "unary ! requires a bool operand"}
		}
		return &Bool{Value: !b.Value}, nil
	default:
		return nil, &RuntimeError{Message: "unknown unary operator " + e.Op}
	}
}

func (in *Interpreter) evalArrayAccess(e *ast.ArrayAccess, task *taskContext) (Value, error) {
	arr, err := in.resolveArray(e.Array, task)
	if err != nil {
		return nil, err
	}
	i1, err := in.evalIntExpr(e.Index1, task)
	if err != nil {
		return nil, err
	}
	if e.Index2 == nil {
		v, err := arr.Get1D(i1)
		if err != nil {
			return nil, &RuntimeError{Message: err.Error()}
		}
		return v, nil
	}
	i2, err := in.evalIntExpr(e.Index2, task)
	if err != nil {
		return nil, err
	}
	v, err := arr.Get2D(i1, i2)
	if err != nil {
		return nil, &RuntimeError{Message: err.Error()}
	}
	return v, nil
}

func (in *Interpreter) evalAttributeAccess(e *ast.AttributeAccess, task *taskContext) (Value, error) {
	obj, err := in.resolveObject(e.Object, task)
	if err != nil {
		return nil, err
	}
	v, ok := obj.Attrs[e.Name]
	if !ok {
		return nil, &RuntimeError{Message: "class " + obj.Class.Name + " has no attribute " + e.Name}
	}
	return v, nil
}

func (in *Interpreter) evalArrayInit(e ast.Expression, task *taskContext) (Value, error) {
	var elements []ast.Expression
	switch lit := e.(type) {
	case *ast.ArrayInit:
		elements = lit.Elements
	case *ast.BraceInit:
		elements = lit.Elements
	}

	// A `{{1,2},{3,4}}` literal groups one BraceInit per row: build a real
	// 2D Array instead of evaluating each inner brace group down to a
	// scalar *Array element.
	if len(elements) > 0 {
		if _, nested := elements[0].(*ast.BraceInit); nested {
			rows := make([][]Value, len(elements))
			for i, el := range elements {
				inner, ok := el.(*ast.BraceInit)
				if !ok {
					return nil, &RuntimeError{Message: "array literal mixes row groups with scalar elements"}
				}
				row := make([]Value, len(inner.Elements))
				for j, cell := range inner.Elements {
					v, err := in.eval(cell, task)
					if err != nil {
						return nil, err
					}
					row[j] = v
				}
				rows[i] = row
			}
			return &Array{Rows: rows}, nil
		}
	}

	row := make([]Value, len(elements))
	for i, el := range elements {
		v, err := in.eval(el, task)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return &Array{Rows: [][]Value{row}}, nil
}

// evalCall resolves and invokes a plain function call (Callee is an
// Identifier) or a method call (Callee is an AttributeAccess).
func (in *Interpreter) evalCall(e *ast.CallExpr, task *taskContext) (Value, error) {
	args := make([]Value, len(e.Args))
	for i, argExpr := range e.Args {
		v, err := in.eval(argExpr, task)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		if fn, ok := in.functions[callee.Name]; ok {
			return in.invoke(fn, nil, args, task.input)
		}
		if isBuiltinName(callee.Name) {
			return in.callBuiltin(callee.Name, args, task)
		}
		return nil, &RuntimeError{Message: "call to undeclared function " + callee.Name}
	case *ast.AttributeAccess:
		obj, err := in.resolveObject(callee.Object, task)
		if err != nil {
			return nil, err
		}
		fn, _ := obj.Class.ResolveMethod(callee.Name)
		if fn == nil {
			return nil, &RuntimeError{Message: "class " + obj.Class.Name + " has no method " + callee.Name}
		}
		return in.invoke(fn, obj, args, task.input)
	default:
		return nil, &RuntimeError{Message: "expression is not callable"}
	}
}

// invoke pushes a fresh, empty call frame (no access to the caller's
// locals), binds this (for a method) and parameters left-to-right, and
// executes the body; the frame chain begins empty at each call.
func (in *Interpreter) invoke(fn *ast.FunctionDecl, receiver *Object, args []Value, input InputProvider) (Value, error) {
	frame := NewFrame(nil)
	if receiver != nil {
		Declare(frame, "this", receiver)
	}
	for i, p := range fn.Params {
		var v Value
		if i < len(args) {
			v = args[i]
		} else {
			v = zeroValue(p.Type.Name)
		}
		Declare(frame, p.Name, v)
	}
	callTask := &taskContext{frame: frame, input: input}
	returned, v, err := in.execBlock(fn.Body, callTask)
	if err != nil {
		return nil, err
	}
	if !returned {
		return unsetValue, nil
	}
	return v, nil
}
