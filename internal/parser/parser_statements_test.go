package parser

import (
	"testing"

	"github.com/minipar-lang/minipar/internal/ast"
	"github.com/minipar-lang/minipar/internal/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	l := lexer.New(input)
	p := New(l)
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("ParseProgram(%q) errors: %v", input, p.Errors())
	}
	return prog
}

func TestParseVarDeclWithInitializer(t *testing.T) {
	prog := parseProgram(t, "int x = 5;")
	if len(prog.Children) != 1 {
		t.Fatalf("len(Children) = %d, want 1", len(prog.Children))
	}
	decl, ok := prog.Children[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("Children[0] is %T, want *ast.VarDecl", prog.Children[0])
	}
	if decl.Name != "x" || decl.Type.Name != "int" {
		t.Errorf("decl = %+v", decl)
	}
	if decl.Init == nil || decl.Init.String() != "5" {
		t.Errorf("Init = %v, want 5", decl.Init)
	}
}

func TestParseVarDeclArrayShape(t *testing.T) {
	prog := parseProgram(t, "int nums[10];")
	decl := prog.Children[0].(*ast.VarDecl)
	if decl.Shape == nil {
		t.Fatal("Shape is nil, want a 1D shape")
	}
	if decl.Shape.String() != "[10]" {
		t.Errorf("Shape = %q, want %q", decl.Shape.String(), "[10]")
	}
}

func TestParseChannelDeclWithEndpoints(t *testing.T) {
	prog := parseProgram(t, "c_channel ch[nodeA nodeB];")
	decl := prog.Children[0].(*ast.VarDecl)
	if len(decl.ChannelEndpoints) != 2 {
		t.Fatalf("ChannelEndpoints = %v, want 2 entries", decl.ChannelEndpoints)
	}
	if decl.ChannelEndpoints[0] != "nodeA" || decl.ChannelEndpoints[1] != "nodeB" {
		t.Errorf("ChannelEndpoints = %v", decl.ChannelEndpoints)
	}
}

func TestParseFunctionDecl(t *testing.T) {
	prog := parseProgram(t, `int add(int a, int b) {
		return a + b;
	}`)
	fn, ok := prog.Children[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("Children[0] is %T, want *ast.FunctionDecl", prog.Children[0])
	}
	if fn.Name != "add" || fn.ReturnType.Name != "int" {
		t.Errorf("fn = %+v", fn)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("len(Params) = %d, want 2", len(fn.Params))
	}
	if fn.Params[0].Name != "a" || fn.Params[1].Name != "b" {
		t.Errorf("Params = %+v", fn.Params)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("len(Body.Statements) = %d, want 1", len(fn.Body.Statements))
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parseProgram(t, `seq {
		if (x > 0) {
			print(x);
		} else {
			print(0);
		}
	}`)
	block := prog.Children[0].(*ast.Block)
	stmt, ok := block.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("Statements[0] is %T, want *ast.IfStmt", block.Statements[0])
	}
	if stmt.Else == nil {
		t.Fatal("Else is nil, want an else branch")
	}
}

func TestParseIfElseIfChain(t *testing.T) {
	prog := parseProgram(t, `seq {
		if (x == 1) {
			print(1);
		} else if (x == 2) {
			print(2);
		} else {
			print(0);
		}
	}`)
	block := prog.Children[0].(*ast.Block)
	stmt := block.Statements[0].(*ast.IfStmt)
	elseIf, ok := stmt.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("Else is %T, want *ast.IfStmt", stmt.Else)
	}
	if elseIf.Else == nil {
		t.Fatal("elseIf.Else is nil, want the trailing else")
	}
}

func TestParseWhileLoop(t *testing.T) {
	prog := parseProgram(t, `seq {
		while (x < 10) {
			x = x + 1;
		}
	}`)
	block := prog.Children[0].(*ast.Block)
	stmt, ok := block.Statements[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("Statements[0] is %T, want *ast.WhileStmt", block.Statements[0])
	}
	if stmt.Condition.String() != "(x < 10)" {
		t.Errorf("Condition = %q", stmt.Condition.String())
	}
}

func TestParseForLoop(t *testing.T) {
	prog := parseProgram(t, `seq {
		for i=0; i < 10; i=i + 1 {
			print(i);
		}
	}`)
	block := prog.Children[0].(*ast.Block)
	stmt, ok := block.Statements[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("Statements[0] is %T, want *ast.ForStmt", block.Statements[0])
	}
	if stmt.Var != "i" {
		t.Errorf("Var = %q, want %q", stmt.Var, "i")
	}
}

func TestParseAssignmentStatement(t *testing.T) {
	prog := parseProgram(t, "seq { x = 5; }")
	block := prog.Children[0].(*ast.Block)
	assign, ok := block.Statements[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("Statements[0] is %T, want *ast.Assignment", block.Statements[0])
	}
	if assign.Target.String() != "x" || assign.Value.String() != "5" {
		t.Errorf("assign = %+v", assign)
	}
}

func TestParseArrayElementAssignment(t *testing.T) {
	prog := parseProgram(t, "seq { arr[0] = 5; }")
	block := prog.Children[0].(*ast.Block)
	assign := block.Statements[0].(*ast.Assignment)
	if assign.Target.String() != "arr[0]" {
		t.Errorf("Target = %q, want %q", assign.Target.String(), "arr[0]")
	}
}

func TestParseInputStatement(t *testing.T) {
	prog := parseProgram(t, `seq { x = input("enter x: "); }`)
	block := prog.Children[0].(*ast.Block)
	stmt, ok := block.Statements[0].(*ast.InputStmt)
	if !ok {
		t.Fatalf("Statements[0] is %T, want *ast.InputStmt", block.Statements[0])
	}
	if stmt.Prompt == nil || stmt.Prompt.String() != `"enter x: "` {
		t.Errorf("Prompt = %v", stmt.Prompt)
	}
}

func TestParseBareCallStatement(t *testing.T) {
	prog := parseProgram(t, "seq { doSomething(1, 2); }")
	block := prog.Children[0].(*ast.Block)
	call, ok := block.Statements[0].(*ast.CallExpr)
	if !ok {
		t.Fatalf("Statements[0] is %T, want *ast.CallExpr", block.Statements[0])
	}
	if call.String() != "doSomething(1, 2)" {
		t.Errorf("call = %q", call.String())
	}
}

func TestParseChannelSendAndReceive(t *testing.T) {
	prog := parseProgram(t, `seq {
		ch.send(1, 2);
		ch.receive(a, b);
	}`)
	block := prog.Children[0].(*ast.Block)

	send, ok := block.Statements[0].(*ast.SendStmt)
	if !ok {
		t.Fatalf("Statements[0] is %T, want *ast.SendStmt", block.Statements[0])
	}
	if len(send.Values) != 2 {
		t.Errorf("len(Values) = %d, want 2", len(send.Values))
	}

	recv, ok := block.Statements[1].(*ast.ReceiveStmt)
	if !ok {
		t.Fatalf("Statements[1] is %T, want *ast.ReceiveStmt", block.Statements[1])
	}
	if len(recv.Targets) != 2 || recv.Targets[0] != "a" || recv.Targets[1] != "b" {
		t.Errorf("Targets = %v", recv.Targets)
	}
}

func TestParseReturnStatements(t *testing.T) {
	tests := []struct {
		input    string
		hasValue bool
	}{
		{"int f() { return 5; }", true},
		{"void f() { return; }", false},
	}

	for _, tt := range tests {
		prog := parseProgram(t, tt.input)
		fn := prog.Children[0].(*ast.FunctionDecl)
		ret := fn.Body.Statements[0].(*ast.ReturnStmt)
		if (ret.Value != nil) != tt.hasValue {
			t.Errorf("%q: Value present = %v, want %v", tt.input, ret.Value != nil, tt.hasValue)
		}
	}
}

func TestParsePrintStatement(t *testing.T) {
	prog := parseProgram(t, `seq { print("hello"); }`)
	block := prog.Children[0].(*ast.Block)
	stmt, ok := block.Statements[0].(*ast.PrintStmt)
	if !ok {
		t.Fatalf("Statements[0] is %T, want *ast.PrintStmt", block.Statements[0])
	}
	if stmt.Value.String() != `"hello"` {
		t.Errorf("Value = %q", stmt.Value.String())
	}
}

func TestParseParBlock(t *testing.T) {
	prog := parseProgram(t, `par {
		print(1);
		print(2);
	}`)
	block, ok := prog.Children[0].(*ast.Block)
	if !ok {
		t.Fatalf("Children[0] is %T, want *ast.Block", prog.Children[0])
	}
	if block.Kind != ast.Par {
		t.Errorf("Kind = %v, want Par", block.Kind)
	}
	if len(block.Statements) != 2 {
		t.Fatalf("len(Statements) = %d, want 2", len(block.Statements))
	}
}
