package interp

import (
	"fmt"
	"io"
	"sync"

	"github.com/minipar-lang/minipar/internal/ast"
	"github.com/minipar-lang/minipar/internal/interp/runtime"
)

// Interpreter holds everything shared across a single program run: the
// global variable map, the class and function tables populated by the
// single-threaded preamble pass, the output sink, and the configured input
// provider.
type Interpreter struct {
	global    *Global
	classes   map[string]*ClassRecord
	functions map[string]*ast.FunctionDecl

	out     io.Writer
	printMu sync.Mutex
	input   InputProvider

	// networkBindings maps a channel-declaration endpoint id to the local
	// role/address for this process, set via SetNetworkBindings before Run.
	// A c_channel declared with two endpoint ids wires a networkEndpoint
	// instead of staying purely in-process when one of its ids is bound.
	networkBindings map[string]NetworkBinding
}

// taskContext is the per-task handle threaded through statement/expression
// evaluation: its call-frame chain and the shared input provider.
type taskContext struct {
	frame *Frame
	input InputProvider
}

// RuntimeError is a captured per-task failure, surfaced at a par block's
// join or at top-level abort.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// New creates an Interpreter over an analyzed Program, wired to out for
// Print output and provider for input() resolution.
func New(out io.Writer, provider InputProvider) *Interpreter {
	return &Interpreter{
		global:    NewGlobal(),
		classes:   make(map[string]*ClassRecord),
		functions: make(map[string]*ast.FunctionDecl),
		out:       out,
		input:     provider,
	}
}

// SetNetworkBindings configures which channel-declaration endpoint ids this
// process owns a network role for; must be called before Run.
func (in *Interpreter) SetNetworkBindings(bindings map[string]NetworkBinding) {
	in.networkBindings = bindings
}

func (in *Interpreter) writeOutput(s string) {
	in.printMu.Lock()
	defer in.printMu.Unlock()
	fmt.Fprint(in.out, s)
}

// Run executes prog: a single-threaded preamble indexes classes/functions
// and runs top-level variable declarations against the global scope, then
// top-level Block children execute in source order.
func (in *Interpreter) Run(prog *ast.Program) error {
	in.preamble(prog)

	root := &taskContext{frame: nil, input: in.input}
	for _, child := range prog.Children {
		block, ok := child.(*ast.Block)
		if !ok {
			continue
		}
		if _, _, err := in.execStatement(block, root); err != nil {
			return err
		}
	}
	return nil
}

// preamble builds the class and function tables and executes every
// top-level VarDecl against the global scope. Class/function tables are
// populated here, single-threaded, and are read-only for the rest of the
// run.
func (in *Interpreter) preamble(prog *ast.Program) {
	for _, child := range prog.Children {
		if decl, ok := child.(*ast.ClassDecl); ok {
			in.registerClass(decl)
		}
	}
	// A second pass resolves Parent pointers once every class exists.
	for _, child := range prog.Children {
		decl, ok := child.(*ast.ClassDecl)
		if !ok || decl.Parent == "" {
			continue
		}
		if parent, ok := in.classes[decl.Parent]; ok {
			in.classes[decl.Name].Parent = parent
		}
	}
	for _, child := range prog.Children {
		if decl, ok := child.(*ast.FunctionDecl); ok {
			in.functions[decl.Name] = decl
		}
	}

	root := &taskContext{frame: nil, input: in.input}
	for _, child := range prog.Children {
		if decl, ok := child.(*ast.VarDecl); ok {
			in.execVarDecl(decl, root)
		}
	}
}

func (in *Interpreter) registerClass(decl *ast.ClassDecl) {
	rec := &ClassRecord{
		Name:    decl.Name,
		Methods: make(map[string]*ast.FunctionDecl),
	}
	rec.Attributes = append(rec.Attributes, decl.Attributes...)
	for _, m := range decl.Methods {
		rec.Methods[m.Name] = m
	}
	in.classes[decl.Name] = rec
}

// Instantiate allocates a zero-initialized Object of the named class:
// attributes are zeroed (arrays shaped and filled) across the whole
// inheritance chain.
func (in *Interpreter) Instantiate(className string, task *taskContext) (*Object, error) {
	rec, ok := in.classes[className]
	if !ok {
		return nil, &RuntimeError{Message: fmt.Sprintf("new references undeclared class %s", className)}
	}
	obj := &Object{Class: rec, Attrs: make(map[string]Value)}
	for _, attr := range rec.AllAttributes() {
		if attr.Shape == nil {
			obj.Attrs[attr.Name] = zeroValue(attr.Type.Name)
			continue
		}
		dim1, err := in.evalIntExpr(attr.Shape.Dim1, task)
		if err != nil {
			return nil, err
		}
		if attr.Shape.Dim2 == nil {
			obj.Attrs[attr.Name] = NewArray1D(dim1, attr.Type.Name)
			continue
		}
		dim2, err := in.evalIntExpr(attr.Shape.Dim2, task)
		if err != nil {
			return nil, err
		}
		obj.Attrs[attr.Name] = NewArray2D(dim1, dim2, attr.Type.Name)
	}
	return obj, nil
}

func (in *Interpreter) evalIntExpr(expr ast.Expression, task *taskContext) (int, error) {
	v, err := in.eval(expr, task)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case *Int:
		return int(n.Value), nil
	case *Float:
		return int(n.Value), nil
	default:
		return 0, &RuntimeError{Message: "array dimension did not evaluate to a number"}
	}
}

// runPar fans out each statement in block as its own task via a
// runtime.TaskGroup and joins: every child gets a fresh, empty call-frame
// chain, and one child's failure never aborts its siblings.
func (in *Interpreter) runPar(block *ast.Block, parentTask *taskContext) error {
	tg := runtime.NewTaskGroup()
	for _, stmt := range block.Statements {
		stmt := stmt
		tg.Go(func() error {
			childTask := &taskContext{frame: nil, input: parentTask.input}
			_, _, err := in.execStatement(stmt, childTask)
			return err
		})
	}
	errs := tg.Wait()
	if len(errs) == 0 {
		return nil
	}
	msg := errs[0].Error()
	for _, e := range errs[1:] {
		msg += "; " + e.Error()
	}
	return &RuntimeError{Message: msg}
}
