package tac

import (
	"strings"
	"testing"

	"github.com/minipar-lang/minipar/internal/lexer"
	"github.com/minipar-lang/minipar/internal/parser"
)

func emitSource(t *testing.T, source string) *Program {
	t.Helper()
	l := lexer.New(source)
	p := parser.New(l)
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors on %q: %v", source, p.Errors())
	}
	return Emit(prog)
}

func TestEmitArithmeticAssignment(t *testing.T) {
	prog := emitSource(t, "seq { int x = 1 + 2; }")
	text := prog.String()
	if !strings.Contains(text, "= 1 + 2") {
		t.Errorf("expected an addition instruction, got:\n%s", text)
	}
	if !strings.Contains(text, "x = t0") {
		t.Errorf("expected the result copied into x, got:\n%s", text)
	}
}

func TestEmitPrintCallsPrintBuiltin(t *testing.T) {
	prog := emitSource(t, `seq { print("hi"); }`)
	text := prog.String()
	if !strings.Contains(text, "param str_0") {
		t.Errorf("expected an interned string param, got:\n%s", text)
	}
	if !strings.Contains(text, "call print, 1") {
		t.Errorf("expected a call to print, got:\n%s", text)
	}
	if len(prog.Strings) != 1 || prog.Strings[0] != "hi" {
		t.Errorf("Strings = %v, want [\"hi\"]", prog.Strings)
	}
}

func TestEmitIfGeneratesLabelsAndBranch(t *testing.T) {
	prog := emitSource(t, `seq {
		int x = 1;
		if (x > 0) {
			print(x);
		} else {
			print(0);
		}
	}`)
	text := prog.String()
	if !strings.Contains(text, "ifFalse") {
		t.Errorf("expected an ifFalse branch, got:\n%s", text)
	}
	if !strings.Contains(text, "goto") {
		t.Errorf("expected a goto, got:\n%s", text)
	}
}

func TestEmitWhileLoopsBackToStart(t *testing.T) {
	prog := emitSource(t, `seq {
		int x = 0;
		while (x < 3) {
			x = x + 1;
		}
	}`)
	text := prog.String()
	labelCount := strings.Count(text, ":")
	if labelCount < 2 {
		t.Errorf("expected at least a start and end label, got:\n%s", text)
	}
}

func TestEmitFunctionDeclStartsWithLabel(t *testing.T) {
	prog := emitSource(t, `int add(int a, int b) {
		return a + b;
	}`)
	if len(prog.Instructions) == 0 {
		t.Fatal("expected at least one instruction")
	}
	first := prog.Instructions[0]
	if first.Op != OpLabel || first.Arg1 != "add" {
		t.Errorf("first instruction = %+v, want label add", first)
	}
	last := prog.Instructions[len(prog.Instructions)-1]
	if last.Op != OpReturn {
		t.Errorf("last instruction = %+v, want a return", last)
	}
}

func TestEmitMethodLabelIsQualifiedByClass(t *testing.T) {
	prog := emitSource(t, `class Counter {
		int value;

		void bump() {
			this.value = this.value + 1;
		}
	}`)
	found := false
	for _, instr := range prog.Instructions {
		if instr.Op == OpLabel && instr.Arg1 == "Counter.bump" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a Counter.bump label, got:\n%s", prog.String())
	}
}

func TestEmitChannelSendAndReceive(t *testing.T) {
	prog := emitSource(t, `par {
		c_channel ch[a b];
		seq {
			ch.send(1);
		}
		seq {
			int x = 0;
			ch.receive(x);
		}
	}`)
	text := prog.String()
	if !strings.Contains(text, "method_call ch, send") {
		t.Errorf("expected a send method_call, got:\n%s", text)
	}
	if !strings.Contains(text, "method_call ch, receive") {
		t.Errorf("expected a receive method_call, got:\n%s", text)
	}
}

func TestEmitStringInterningReusesIndexForRepeatedLiteral(t *testing.T) {
	prog := emitSource(t, `seq {
		print("same");
		print("same");
	}`)
	if len(prog.Strings) != 1 {
		t.Fatalf("Strings = %v, want exactly one interned entry", prog.Strings)
	}
}
