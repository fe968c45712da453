package tac

import (
	"fmt"
	"strconv"

	"github.com/minipar-lang/minipar/internal/ast"
)

// Emitter walks an analyzed AST and produces a flat Program, one emit*
// method per node kind.
type Emitter struct {
	prog       Program
	tempCount  int
	labelCount int
	strings    map[string]int
}

// NewEmitter creates an Emitter ready to process one Program.
func NewEmitter() *Emitter {
	return &Emitter{strings: make(map[string]int)}
}

// Emit translates prog into three-address code.
func Emit(prog *ast.Program) *Program {
	e := NewEmitter()
	for _, child := range prog.Children {
		e.emitTopLevel(child)
	}
	e.prog.Strings = make([]string, len(e.strings))
	for s, idx := range e.strings {
		e.prog.Strings[idx] = s
	}
	return &e.prog
}

func (e *Emitter) newTemp() string {
	t := fmt.Sprintf("t%d", e.tempCount)
	e.tempCount++
	return t
}

func (e *Emitter) newLabel() string {
	l := fmt.Sprintf("L%d", e.labelCount)
	e.labelCount++
	return l
}

func (e *Emitter) intern(s string) string {
	if idx, ok := e.strings[s]; ok {
		return fmt.Sprintf("str_%d", idx)
	}
	idx := len(e.strings)
	e.strings[s] = idx
	return fmt.Sprintf("str_%d", idx)
}

func (e *Emitter) emit(instr Instruction) {
	e.prog.Instructions = append(e.prog.Instructions, instr)
}

func (e *Emitter) emitTopLevel(node ast.Node) {
	switch n := node.(type) {
	case *ast.ClassDecl:
		for _, m := range n.Methods {
			e.emitFunction(n.Name + "." + m.Name, m)
		}
	case *ast.FunctionDecl:
		e.emitFunction(n.Name, n)
	case *ast.VarDecl:
		e.emitVarDecl(n)
	case *ast.Block:
		e.emitBlock(n)
	case ast.Statement:
		e.emitStatement(n)
	}
}

func (e *Emitter) emitFunction(name string, fn *ast.FunctionDecl) {
	e.emit(Instruction{Op: OpLabel, Arg1: name})
	e.emitBlock(fn.Body)
	e.emit(Instruction{Op: OpReturn})
}

func (e *Emitter) emitBlock(block *ast.Block) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		e.emitStatement(stmt)
	}
}

func (e *Emitter) emitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		e.emitBlock(s)
	case *ast.VarDecl:
		e.emitVarDecl(s)
	case *ast.Assignment:
		e.emitAssignment(s)
	case *ast.InputStmt:
		result := e.emitOperand(s.Target)
		e.emit(Instruction{Op: OpCall, Arg1: "input", Arg2: "0", Result: result})
	case *ast.IfStmt:
		e.emitIf(s)
	case *ast.WhileStmt:
		e.emitWhile(s)
	case *ast.ForStmt:
		e.emitFor(s)
	case *ast.PrintStmt:
		v := e.emitExpr(s.Value)
		e.emit(Instruction{Op: OpParam, Arg1: v})
		e.emit(Instruction{Op: OpCall, Arg1: "print", Arg2: "1", Result: e.newTemp()})
	case *ast.ReturnStmt:
		if s.Value == nil {
			e.emit(Instruction{Op: OpReturn})
		} else {
			v := e.emitExpr(s.Value)
			e.emit(Instruction{Op: OpReturn, Arg1: v})
		}
	case *ast.SendStmt:
		for _, v := range s.Values {
			arg := e.emitExpr(v)
			e.emit(Instruction{Op: OpParam, Arg1: arg})
		}
		chanName := e.emitOperand(s.Channel)
		e.emit(Instruction{Op: OpMethodCall, Arg1: chanName, Arg2: "send", Result: e.newTemp()})
	case *ast.ReceiveStmt:
		chanName := e.emitOperand(s.Channel)
		result := e.newTemp()
		e.emit(Instruction{Op: OpMethodCall, Arg1: chanName, Arg2: "receive", Result: result})
		for i, target := range s.Targets {
			e.emit(Instruction{Op: OpCopy, Arg1: fmt.Sprintf("%s.%d", result, i), Result: target})
		}
	case *ast.CallExpr:
		e.emitExpr(s)
	}
}

func (e *Emitter) emitVarDecl(decl *ast.VarDecl) {
	if decl.Init == nil {
		return
	}
	v := e.emitExpr(decl.Init)
	e.emit(Instruction{Op: OpCopy, Arg1: v, Result: decl.Name})
}

func (e *Emitter) emitAssignment(a *ast.Assignment) {
	v := e.emitExpr(a.Value)
	switch target := a.Target.(type) {
	case *ast.Identifier:
		e.emit(Instruction{Op: OpCopy, Arg1: v, Result: target.Name})
	case *ast.ArrayAccess:
		base := e.emitOperand(target.Array)
		idx := e.emitExpr(target.Index1)
		e.emit(Instruction{Op: OpArrayStore, Result: base, Arg1: idx, Arg2: v})
	case *ast.AttributeAccess:
		obj := e.emitOperand(target.Object)
		e.emit(Instruction{Op: OpAttrStore, Arg1: obj, Arg2: target.Name, Result: v})
	default:
		result := e.newTemp()
		e.emit(Instruction{Op: OpCopy, Arg1: v, Result: result})
	}
}

func (e *Emitter) emitIf(s *ast.IfStmt) {
	cond := e.emitExpr(s.Condition)
	lElse := e.newLabel()
	lEnd := e.newLabel()
	e.emit(Instruction{Op: OpIfFalse, Arg1: cond, Arg2: lElse})
	e.emitStatement(s.Then)
	e.emit(Instruction{Op: OpGoto, Arg1: lEnd})
	e.emit(Instruction{Op: OpLabel, Arg1: lElse})
	if s.Else != nil {
		e.emitStatement(s.Else)
	}
	e.emit(Instruction{Op: OpLabel, Arg1: lEnd})
}

func (e *Emitter) emitWhile(s *ast.WhileStmt) {
	lStart := e.newLabel()
	lEnd := e.newLabel()
	e.emit(Instruction{Op: OpLabel, Arg1: lStart})
	cond := e.emitExpr(s.Condition)
	e.emit(Instruction{Op: OpIfFalse, Arg1: cond, Arg2: lEnd})
	e.emitStatement(s.Body)
	e.emit(Instruction{Op: OpGoto, Arg1: lStart})
	e.emit(Instruction{Op: OpLabel, Arg1: lEnd})
}

func (e *Emitter) emitFor(s *ast.ForStmt) {
	init := e.emitExpr(s.Init)
	e.emit(Instruction{Op: OpCopy, Arg1: init, Result: s.Var})
	lStart := e.newLabel()
	lEnd := e.newLabel()
	e.emit(Instruction{Op: OpLabel, Arg1: lStart})
	cond := e.emitExpr(s.Condition)
	e.emit(Instruction{Op: OpIfFalse, Arg1: cond, Arg2: lEnd})
	e.emitStatement(s.Body)
	step := e.emitExpr(s.Step)
	e.emit(Instruction{Op: OpCopy, Arg1: step, Result: s.Var})
	e.emit(Instruction{Op: OpGoto, Arg1: lStart})
	e.emit(Instruction{Op: OpLabel, Arg1: lEnd})
}

// emitOperand returns a name usable as an instruction operand without
// forcing a fresh temporary for simple identifiers.
func (e *Emitter) emitOperand(expr ast.Expression) string {
	if id, ok := expr.(*ast.Identifier); ok {
		return id.Name
	}
	return e.emitExpr(expr)
}

// emitExpr evaluates expr into a temporary (or returns a literal/identifier
// name directly when no computation is needed) and returns its name.
func (e *Emitter) emitExpr(expr ast.Expression) string {
	switch ex := expr.(type) {
	case *ast.NumberLit:
		return ex.Value
	case *ast.StringLit:
		return e.intern(ex.Value)
	case *ast.BoolLit:
		return strconv.FormatBool(ex.Value)
	case *ast.Identifier:
		return ex.Name
	case *ast.ThisExpr:
		return "this"
	case *ast.BinaryExpr:
		left := e.emitExpr(ex.Left)
		right := e.emitExpr(ex.Right)
		result := e.newTemp()
		e.emit(Instruction{Op: Op(ex.Op), Arg1: left, Arg2: right, Result: result})
		return result
	case *ast.UnaryExpr:
		operand := e.emitExpr(ex.Right)
		result := e.newTemp()
		op := OpNeg
		if ex.Op == "!" {
			op = OpNot
		}
		e.emit(Instruction{Op: op, Arg1: operand, Result: result})
		return result
	case *ast.ArrayAccess:
		base := e.emitOperand(ex.Array)
		idx := e.emitExpr(ex.Index1)
		result := e.newTemp()
		e.emit(Instruction{Op: OpArrayLoad, Arg1: base, Arg2: idx, Result: result})
		return result
	case *ast.AttributeAccess:
		obj := e.emitOperand(ex.Object)
		result := e.newTemp()
		e.emit(Instruction{Op: OpAttrLoad, Arg1: obj, Arg2: ex.Name, Result: result})
		return result
	case *ast.NewExpr:
		result := e.newTemp()
		e.emit(Instruction{Op: OpNew, Arg1: ex.ClassName, Result: result})
		return result
	case *ast.ArrayInit:
		result := e.newTemp()
		for i, el := range ex.Elements {
			v := e.emitExpr(el)
			e.emit(Instruction{Op: OpArrayStore, Result: result, Arg1: strconv.Itoa(i), Arg2: v})
		}
		return result
	case *ast.BraceInit:
		result := e.newTemp()
		for i, el := range ex.Elements {
			v := e.emitExpr(el)
			e.emit(Instruction{Op: OpArrayStore, Result: result, Arg1: strconv.Itoa(i), Arg2: v})
		}
		return result
	case *ast.CallExpr:
		return e.emitCall(ex)
	case *ast.InputExpr:
		result := e.newTemp()
		e.emit(Instruction{Op: OpCall, Arg1: "input", Arg2: "0", Result: result})
		return result
	default:
		return e.newTemp()
	}
}

func (e *Emitter) emitCall(call *ast.CallExpr) string {
	switch callee := call.Callee.(type) {
	case *ast.Identifier:
		for _, arg := range call.Args {
			v := e.emitExpr(arg)
			e.emit(Instruction{Op: OpParam, Arg1: v})
		}
		result := e.newTemp()
		e.emit(Instruction{Op: OpCall, Arg1: callee.Name, Arg2: strconv.Itoa(len(call.Args)), Result: result})
		return result
	case *ast.AttributeAccess:
		obj := e.emitOperand(callee.Object)
		for _, arg := range call.Args {
			v := e.emitExpr(arg)
			e.emit(Instruction{Op: OpParam, Arg1: v})
		}
		result := e.newTemp()
		e.emit(Instruction{Op: OpMethodCall, Arg1: obj, Arg2: callee.Name, Result: result})
		return result
	default:
		result := e.newTemp()
		e.emit(Instruction{Op: OpNop, Result: result})
		return result
	}
}
