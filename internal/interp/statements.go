package interp

import "github.com/minipar-lang/minipar/internal/ast"

// execStatement executes stmt under task, returning (returned, value, err)
// where returned signals that a `return` statement unwound this call via a
// dedicated control-flow path (not a Go panic), carrying value as the
// function/method's result.
func (in *Interpreter) execStatement(stmt ast.Statement, task *taskContext) (bool, Value, error) {
	switch s := stmt.(type) {
	case *ast.Block:
		return in.execBlock(s, task)
	case *ast.VarDecl:
		return false, nil, in.execVarDecl(s, task)
	case *ast.Assignment:
		return false, nil, in.execAssignment(s, task)
	case *ast.InputStmt:
		return false, nil, in.execInputStmt(s, task)
	case *ast.IfStmt:
		return in.execIfStmt(s, task)
	case *ast.WhileStmt:
		return in.execWhileStmt(s, task)
	case *ast.ForStmt:
		return in.execForStmt(s, task)
	case *ast.PrintStmt:
		return false, nil, in.execPrintStmt(s, task)
	case *ast.ReturnStmt:
		if s.Value == nil {
			return true, unsetValue, nil
		}
		v, err := in.eval(s.Value, task)
		return true, v, err
	case *ast.SendStmt:
		return false, nil, in.execSendStmt(s, task)
	case *ast.ReceiveStmt:
		return false, nil, in.execReceiveStmt(s, task)
	case *ast.CallExpr:
		_, err := in.eval(s, task)
		return false, nil, err
	default:
		return false, nil, nil
	}
}

// execBlock runs a seq block on the current thread/frame chain, or fans a
// par block out into one task per statement.
func (in *Interpreter) execBlock(block *ast.Block, task *taskContext) (bool, Value, error) {
	if block.Kind == ast.Par {
		return false, nil, in.runPar(block, task)
	}
	child := &taskContext{frame: NewFrame(task.frame), input: task.input}
	for _, stmt := range block.Statements {
		returned, v, err := in.execStatement(stmt, child)
		if err != nil || returned {
			return returned, v, err
		}
	}
	return false, nil, nil
}

func (in *Interpreter) execVarDecl(decl *ast.VarDecl, task *taskContext) error {
	if decl.Type.Name == "c_channel" {
		ch := NewChannel()
		if err := in.wireNetworkChannel(decl, ch); err != nil {
			return err
		}
		if task.frame == nil {
			in.global.Set(decl.Name, ch)
		} else {
			Declare(task.frame, decl.Name, ch)
		}
		return nil
	}

	var value Value
	if decl.Init != nil {
		v, err := in.eval(decl.Init, task)
		if err != nil {
			return err
		}
		value = coerceAssign(decl.Type.Name, v)
	} else if decl.Shape != nil {
		dim1, err := in.evalIntExpr(decl.Shape.Dim1, task)
		if err != nil {
			return err
		}
		if decl.Shape.Dim2 == nil {
			value = NewArray1D(dim1, decl.Type.Name)
		} else {
			dim2, err := in.evalIntExpr(decl.Shape.Dim2, task)
			if err != nil {
				return err
			}
			value = NewArray2D(dim1, dim2, decl.Type.Name)
		}
	} else {
		value = zeroValue(decl.Type.Name)
	}

	if task.frame == nil {
		in.global.Set(decl.Name, value)
	} else {
		Declare(task.frame, decl.Name, value)
	}
	return nil
}

// wireNetworkChannel attaches a TCP-backed networkEndpoint to ch when decl
// declares two channel endpoint ids and one of them is bound in this
// process's networkBindings; a channel with no bound endpoint stays
// purely in-process.
func (in *Interpreter) wireNetworkChannel(decl *ast.VarDecl, ch *Channel) error {
	if len(in.networkBindings) == 0 || len(decl.ChannelEndpoints) != 2 {
		return nil
	}
	for _, id := range decl.ChannelEndpoints {
		binding, ok := in.networkBindings[id]
		if !ok {
			continue
		}
		if binding.Listen {
			return ListenChannel(binding.Addr, ch)
		}
		return ConnectChannel(binding.Addr, ch)
	}
	return nil
}

func (in *Interpreter) execAssignment(a *ast.Assignment, task *taskContext) error {
	v, err := in.eval(a.Value, task)
	if err != nil {
		return err
	}
	return in.assignTo(a.Target, v, task)
}

// assignTo writes v into the lvalue target: a plain identifier, an
// array-element access (1D or 2D), or an attribute access.
func (in *Interpreter) assignTo(target ast.Expression, v Value, task *taskContext) error {
	switch t := target.(type) {
	case *ast.Identifier:
		Assign(task.frame, in.global, t.Name, v)
		return nil
	case *ast.ArrayAccess:
		arr, err := in.resolveArray(t.Array, task)
		if err != nil {
			return err
		}
		i1, err := in.evalIntExpr(t.Index1, task)
		if err != nil {
			return err
		}
		if t.Index2 == nil {
			return arr.Set1D(i1, v)
		}
		i2, err := in.evalIntExpr(t.Index2, task)
		if err != nil {
			return err
		}
		return arr.Set2D(i1, i2, v)
	case *ast.AttributeAccess:
		obj, err := in.resolveObject(t.Object, task)
		if err != nil {
			return err
		}
		obj.Attrs[t.Name] = v
		return nil
	default:
		return &RuntimeError{Message: "invalid assignment target"}
	}
}

func (in *Interpreter) resolveArray(expr ast.Expression, task *taskContext) (*Array, error) {
	v, err := in.eval(expr, task)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*Array)
	if !ok {
		return nil, &RuntimeError{Message: "value is not an array"}
	}
	return arr, nil
}

func (in *Interpreter) resolveObject(expr ast.Expression, task *taskContext) (*Object, error) {
	v, err := in.eval(expr, task)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, &RuntimeError{Message: "value is not an object"}
	}
	return obj, nil
}

// execInputStmt reads one line from the configured provider and coerces it
// to Target's declared type.
func (in *Interpreter) execInputStmt(s *ast.InputStmt, task *taskContext) error {
	prompt := ""
	if s.Prompt != nil {
		v, err := in.eval(s.Prompt, task)
		if err != nil {
			return err
		}
		prompt = stringify(v)
	}
	line, err := task.input.ReadLine(prompt)
	if err != nil {
		return err
	}
	targetType := in.lvalueType(s.Target, task)
	value, err := coerceInput(line, targetType)
	if err != nil {
		return &RuntimeError{Message: err.Error()}
	}
	return in.assignTo(s.Target, value, task)
}

// lvalueType best-effort resolves the declared type name of an lvalue
// expression, used only to pick the right input coercion.
func (in *Interpreter) lvalueType(target ast.Expression, task *taskContext) string {
	v, err := in.eval(target, task)
	if err == nil && v != nil {
		switch v.(type) {
		case *Int:
			return "int"
		case *Float:
			return "float"
		case *Bool:
			return "bool"
		}
	}
	return "string"
}

func (in *Interpreter) execIfStmt(s *ast.IfStmt, task *taskContext) (bool, Value, error) {
	cond, err := in.eval(s.Condition, task)
	if err != nil {
		return false, nil, err
	}
	if truthy(cond) {
		return in.execStatement(s.Then, task)
	}
	if s.Else != nil {
		return in.execStatement(s.Else, task)
	}
	return false, nil, nil
}

func (in *Interpreter) execWhileStmt(s *ast.WhileStmt, task *taskContext) (bool, Value, error) {
	for {
		cond, err := in.eval(s.Condition, task)
		if err != nil {
			return false, nil, err
		}
		if !truthy(cond) {
			return false, nil, nil
		}
		returned, v, err := in.execStatement(s.Body, task)
		if err != nil || returned {
			return returned, v, err
		}
	}
}

func (in *Interpreter) execForStmt(s *ast.ForStmt, task *taskContext) (bool, Value, error) {
	init, err := in.eval(s.Init, task)
	if err != nil {
		return false, nil, err
	}
	Assign(task.frame, in.global, s.Var, init)
	for {
		cond, err := in.eval(s.Condition, task)
		if err != nil {
			return false, nil, err
		}
		if !truthy(cond) {
			return false, nil, nil
		}
		returned, v, err := in.execStatement(s.Body, task)
		if err != nil || returned {
			return returned, v, err
		}
		step, err := in.eval(s.Step, task)
		if err != nil {
			return false, nil, err
		}
		Assign(task.frame, in.global, s.Var, step)
	}
}

func (in *Interpreter) execPrintStmt(s *ast.PrintStmt, task *taskContext) error {
	v, err := in.eval(s.Value, task)
	if err != nil {
		return err
	}
	text := stringify(v)
	if _, ok := v.(*String); ok {
		text = printEscape(text)
	}
	in.writeOutput(text)
	return nil
}

func (in *Interpreter) execSendStmt(s *ast.SendStmt, task *taskContext) error {
	ch, err := in.resolveChannel(s.Channel, task)
	if err != nil {
		return err
	}
	tuple := make(Tuple, len(s.Values))
	for i, expr := range s.Values {
		v, err := in.eval(expr, task)
		if err != nil {
			return err
		}
		tuple[i] = v
	}
	ch.Send(tuple)
	return nil
}

func (in *Interpreter) execReceiveStmt(s *ast.ReceiveStmt, task *taskContext) error {
	ch, err := in.resolveChannel(s.Channel, task)
	if err != nil {
		return err
	}
	tuple := ch.Receive()
	for i, name := range s.Targets {
		if i >= len(tuple) {
			break
		}
		// Receive creates bindings in the global scope if not already bound
		// in the current frame.
		if task.frame != nil {
			if _, ok := Lookup(task.frame, in.global, name); ok {
				Assign(task.frame, in.global, name, tuple[i])
				continue
			}
		}
		in.global.Set(name, tuple[i])
	}
	return nil
}

// resolveChannel evaluates channel, auto-vivifying and registering an
// in-process channel in the global scope if the name was never declared.
func (in *Interpreter) resolveChannel(expr ast.Expression, task *taskContext) (*Channel, error) {
	if id, ok := expr.(*ast.Identifier); ok {
		if v, found := Lookup(task.frame, in.global, id.Name); found {
			if ch, ok := v.(*Channel); ok {
				return ch, nil
			}
			return nil, &RuntimeError{Message: id.Name + " is not a channel"}
		}
		ch := NewChannel()
		in.global.Set(id.Name, ch)
		return ch, nil
	}
	v, err := in.eval(expr, task)
	if err != nil {
		return nil, err
	}
	ch, ok := v.(*Channel)
	if !ok {
		return nil, &RuntimeError{Message: "expression is not a channel"}
	}
	return ch, nil
}

func truthy(v Value) bool {
	b, ok := v.(*Bool)
	return ok && b.Value
}

// coerceAssign widens an int initializer to float when the declared
// target type is float; any other combination passes the evaluated value
// through as-is.
func coerceAssign(targetType string, v Value) Value {
	if targetType == "float" {
		if i, ok := v.(*Int); ok {
			return &Float{Value: float64(i.Value)}
		}
	}
	return v
}
