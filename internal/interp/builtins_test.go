package interp

import "testing"

func TestIsBuiltinName(t *testing.T) {
	for _, name := range []string{"strlen", "substr", "charat", "indexof", "parseint", "print", "input"} {
		if !isBuiltinName(name) {
			t.Errorf("isBuiltinName(%q) = false, want true", name)
		}
	}
	if isBuiltinName("bogus") {
		t.Error("isBuiltinName(bogus) = true, want false")
	}
}

func TestCallBuiltinStrlenCharatIndexof(t *testing.T) {
	in := New(nil, NewSliceProvider(nil))
	task := &taskContext{input: in.input}

	v, err := in.callBuiltin("strlen", []Value{&String{Value: "hello"}}, task)
	if err != nil || v.(*Int).Value != 5 {
		t.Errorf("strlen(hello) = %v, %v, want 5", v, err)
	}

	v, err = in.callBuiltin("charat", []Value{&String{Value: "hello"}, &Int{Value: 1}}, task)
	if err != nil || v.(*String).Value != "e" {
		t.Errorf("charat(hello, 1) = %v, %v, want 'e'", v, err)
	}

	v, err = in.callBuiltin("charat", []Value{&String{Value: "hi"}, &Int{Value: 99}}, task)
	if err != nil || v.(*String).Value != "" {
		t.Errorf("charat out of range = %v, %v, want empty string", v, err)
	}

	v, err = in.callBuiltin("indexof", []Value{&String{Value: "hello world"}, &String{Value: "world"}}, task)
	if err != nil || v.(*Int).Value != 6 {
		t.Errorf("indexof = %v, %v, want 6", v, err)
	}

	v, err = in.callBuiltin("indexof", []Value{&String{Value: "hello"}, &String{Value: "zzz"}}, task)
	if err != nil || v.(*Int).Value != -1 {
		t.Errorf("indexof miss = %v, %v, want -1", v, err)
	}
}

func TestCallBuiltinSubstrClampsToBounds(t *testing.T) {
	tests := []struct {
		s      string
		start  int
		length int
		want   string
	}{
		{"hello", 1, 3, "ell"},
		{"hello", -2, 3, "hel"},
		{"hello", 2, 100, "llo"},
		{"hello", 10, 3, ""},
	}
	for _, tt := range tests {
		if got := substr(tt.s, tt.start, tt.length); got != tt.want {
			t.Errorf("substr(%q, %d, %d) = %q, want %q", tt.s, tt.start, tt.length, got, tt.want)
		}
	}
}

func TestParseIntPermissiveStopsAtNonDigit(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"42", 42},
		{"  -7  ", -7},
		{"12abc", 12},
		{"abc", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseIntPermissive(tt.in); got != tt.want {
			t.Errorf("parseIntPermissive(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPrintEscapeExpandsNewlineAndTab(t *testing.T) {
	got := printEscape(`a\nb\tc`)
	want := "a\nb\tc"
	if got != want {
		t.Errorf("printEscape = %q, want %q", got, want)
	}
}

func TestCoerceInputInt(t *testing.T) {
	v, err := coerceInput("42", "int")
	if err != nil || v.(*Int).Value != 42 {
		t.Errorf("coerceInput(42, int) = %v, %v", v, err)
	}
	if _, err := coerceInput("abc", "int"); err == nil {
		t.Error("expected an error coercing a non-numeric string to int")
	}
}

func TestCoerceInputFloat(t *testing.T) {
	v, err := coerceInput("3.5", "float")
	if err != nil || v.(*Float).Value != 3.5 {
		t.Errorf("coerceInput(3.5, float) = %v, %v", v, err)
	}
}

func TestCoerceInputBoolLocaleSynonyms(t *testing.T) {
	truthy := []string{"true", "1", "yes", "verdadeiro", "sim", "TRUE"}
	for _, s := range truthy {
		v, err := coerceInput(s, "bool")
		if err != nil || !v.(*Bool).Value {
			t.Errorf("coerceInput(%q, bool) = %v, %v, want true", s, v, err)
		}
	}
	falsy := []string{"false", "0", "no", "não", "falso"}
	for _, s := range falsy {
		v, err := coerceInput(s, "bool")
		if err != nil || v.(*Bool).Value {
			t.Errorf("coerceInput(%q, bool) = %v, %v, want false", s, v, err)
		}
	}
	if _, err := coerceInput("maybe", "bool"); err == nil {
		t.Error("expected an error coercing an unrecognized bool synonym")
	}
}

func TestCoerceInputDefaultsToString(t *testing.T) {
	v, err := coerceInput("raw text", "unknown_type")
	if err != nil || v.(*String).Value != "raw text" {
		t.Errorf("coerceInput(default) = %v, %v", v, err)
	}
}
