package tac

import "testing"

func TestInstructionStringForms(t *testing.T) {
	tests := []struct {
		instr    Instruction
		expected string
	}{
		{Instruction{Op: OpLabel, Arg1: "L0"}, "L0:"},
		{Instruction{Op: OpGoto, Arg1: "L1"}, "goto L1"},
		{Instruction{Op: OpIfFalse, Arg1: "t0", Arg2: "L2"}, "ifFalse t0 goto L2"},
		{Instruction{Op: OpIf, Arg1: "t0", Arg2: "L2"}, "if t0 goto L2"},
		{Instruction{Op: OpParam, Arg1: "t0"}, "param t0"},
		{Instruction{Op: OpCall, Arg1: "f", Arg2: "2", Result: "t1"}, "t1 = call f, 2"},
		{Instruction{Op: OpReturn}, "return"},
		{Instruction{Op: OpReturn, Arg1: "t0"}, "return t0"},
		{Instruction{Op: OpNeg, Arg1: "t0", Result: "t1"}, "t1 = neg t0"},
		{Instruction{Op: OpNot, Arg1: "t0", Result: "t1"}, "t1 = not t0"},
		{Instruction{Op: OpCopy, Arg1: "t0", Result: "x"}, "x = t0"},
		{Instruction{Op: OpArrayLoad, Arg1: "arr", Arg2: "0", Result: "t0"}, "t0 = arr[0]"},
		{Instruction{Op: OpArrayStore, Arg1: "0", Arg2: "t0", Result: "arr"}, "arr[0] = t0"},
		{Instruction{Op: OpNew, Arg1: "Counter", Result: "t0"}, "t0 = new Counter"},
		{Instruction{Op: OpAttrLoad, Arg1: "this", Arg2: "count", Result: "t0"}, "t0 = this.count"},
		{Instruction{Op: OpAttrStore, Arg1: "this", Arg2: "count", Result: "t0"}, "this.count = t0"},
		{Instruction{Op: OpMethodCall, Arg1: "ch", Arg2: "send", Result: "t0"}, "t0 = method_call ch, send"},
		{Instruction{Op: OpNop}, "nop"},
		{Instruction{Op: OpAdd, Arg1: "a", Arg2: "b", Result: "t0"}, "t0 = a + b"},
	}

	for _, tt := range tests {
		if got := tt.instr.String(); got != tt.expected {
			t.Errorf("Instruction{%v}.String() = %q, want %q", tt.instr, got, tt.expected)
		}
	}
}

func TestProgramStringIncludesStringPool(t *testing.T) {
	prog := &Program{
		Instructions: []Instruction{{Op: OpCopy, Arg1: "str_0", Result: "s"}},
		Strings:      []string{"hello"},
	}
	got := prog.String()
	if got != "s = str_0\n; string pool:\n; str_0 = \"hello\"\n" {
		t.Errorf("Program.String() = %q", got)
	}
}

func TestProgramStringWithoutStringsOmitsPool(t *testing.T) {
	prog := &Program{Instructions: []Instruction{{Op: OpNop}}}
	got := prog.String()
	if got != "nop\n" {
		t.Errorf("Program.String() = %q, want %q", got, "nop\n")
	}
}
