package minipar

import "testing"

func TestAnalyzeValidProgramSucceeds(t *testing.T) {
	result := Analyze(`seq {
		int x = 1 + 2;
		print(x);
	}`, "prog.minipar")

	if len(result.ParseErrors) != 0 {
		t.Fatalf("unexpected parse errors: %v", result.ParseErrors)
	}
	if result.Semantic == nil || !result.Semantic.Success {
		t.Fatalf("expected semantic success, got %+v", result.Semantic)
	}
	if result.Program == nil {
		t.Fatal("expected a parsed Program")
	}
	if result.TAC == nil {
		t.Fatal("expected an emitted TAC program")
	}
	if len(result.Tokens) == 0 {
		t.Fatal("expected a non-empty token stream")
	}
	if _, ok := result.Symbols["classes"]; !ok {
		t.Errorf("Symbols = %+v, want a classes entry", result.Symbols)
	}
}

func TestAnalyzeSyntaxErrorStopsBeforeSemanticAnalysis(t *testing.T) {
	result := Analyze(`seq { int x = ; }`, "prog.minipar")

	if len(result.ParseErrors) == 0 {
		t.Fatal("expected parse errors")
	}
	if result.Program != nil || result.Semantic != nil || result.TAC != nil {
		t.Error("expected analysis to stop before semantic/TAC stages on a parse failure")
	}
}

func TestAnalyzeSemanticErrorStillReturnsProgramAndTAC(t *testing.T) {
	result := Analyze(`seq {
		int x = undeclared_name;
	}`, "prog.minipar")

	if len(result.ParseErrors) != 0 {
		t.Fatalf("unexpected parse errors: %v", result.ParseErrors)
	}
	if result.Semantic == nil || result.Semantic.Success {
		t.Fatal("expected semantic analysis to fail for an undeclared identifier")
	}
	if result.Program == nil {
		t.Error("Program should still be set even when semantic analysis fails")
	}
	if result.TAC == nil {
		t.Error("TAC should still be emitted even when semantic analysis fails")
	}
}
