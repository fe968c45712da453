package semantic

import "testing"

func TestAnalyzeIfConditionMustBeBool(t *testing.T) {
	report := analyze(t, `seq {
		string s = "x";
		if (s) {
			print(s);
		}
	}`)
	if report.Success {
		t.Fatal("expected failure for a non-bool, non-numeric if condition")
	}
}

func TestAnalyzeIfNumericConditionWarns(t *testing.T) {
	report := analyze(t, `seq {
		int x = 1;
		if (x) {
			print(x);
		}
	}`)
	if !report.Success {
		t.Fatalf("expected success, got errors: %v", report.Errors)
	}
	if len(report.Warnings) == 0 {
		t.Fatal("expected a warning for a bare numeric condition")
	}
}

func TestAnalyzeIfRelationalConditionSucceeds(t *testing.T) {
	report := analyze(t, `seq {
		int x = 1;
		if (x > 0) {
			print(x);
		}
	}`)
	if !report.Success {
		t.Fatalf("expected success, got errors: %v", report.Errors)
	}
}

func TestAnalyzeForLoopUndeclaredControlVarErrors(t *testing.T) {
	report := analyze(t, `seq {
		for i=0; i < 10; i=i + 1 {
			print(i);
		}
	}`)
	if report.Success {
		t.Fatal("expected failure: for-loop control variable was never declared")
	}
}

func TestAnalyzeForLoopDeclaredControlVarSucceeds(t *testing.T) {
	report := analyze(t, `seq {
		int i = 0;
		for i=0; i < 10; i=i + 1 {
			print(i);
		}
	}`)
	if !report.Success {
		t.Fatalf("expected success, got errors: %v", report.Errors)
	}
}

func TestAnalyzeBareReturnInNonVoidFunctionErrors(t *testing.T) {
	report := analyze(t, `int f() {
		return;
	}`)
	if report.Success {
		t.Fatal("expected failure: bare return from a non-void function")
	}
}

func TestAnalyzeReturnTypeMismatchErrors(t *testing.T) {
	report := analyze(t, `int f() {
		return "not an int";
	}`)
	if report.Success {
		t.Fatal("expected failure: returning a string from an int function")
	}
}

func TestAnalyzeSendToNonChannelErrors(t *testing.T) {
	report := analyze(t, `seq {
		int x = 1;
		x.send(1);
	}`)
	if report.Success {
		t.Fatal("expected failure: send on a non-channel value")
	}
}

func TestAnalyzeSendReceiveOnDeclaredChannelSucceeds(t *testing.T) {
	report := analyze(t, `par {
		c_channel ch[a b];
		seq {
			ch.send(1);
		}
		seq {
			int x = 0;
			ch.receive(x);
			print(x);
		}
	}`)
	if !report.Success {
		t.Fatalf("expected success, got errors: %v", report.Errors)
	}
}

func TestAnalyzeNestedBlockMayShadowOuterDeclaration(t *testing.T) {
	report := analyze(t, `seq {
		int x = 1;
		seq {
			int x = 2;
			print(x);
		}
	}`)
	if !report.Success {
		t.Fatalf("shadowing in a nested block should succeed, got errors: %v", report.Errors)
	}
}
