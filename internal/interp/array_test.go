package interp

import "testing"

func TestNewArray1DZeroesEachCell(t *testing.T) {
	arr := NewArray1D(3, "int")
	for i := 0; i < 3; i++ {
		v, err := arr.Get1D(i)
		if err != nil {
			t.Fatalf("Get1D(%d) error: %v", i, err)
		}
		if n, ok := v.(*Int); !ok || n.Value != 0 {
			t.Errorf("Get1D(%d) = %v, want zero Int", i, v)
		}
	}
}

func TestNewArray2DZeroesEachCell(t *testing.T) {
	arr := NewArray2D(2, 3, "float")
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			v, err := arr.Get2D(i, j)
			if err != nil {
				t.Fatalf("Get2D(%d,%d) error: %v", i, j, err)
			}
			if n, ok := v.(*Float); !ok || n.Value != 0 {
				t.Errorf("Get2D(%d,%d) = %v, want zero Float", i, j, v)
			}
		}
	}
}

func TestArraySet1DAndGet1D(t *testing.T) {
	arr := NewArray1D(2, "string")
	if err := arr.Set1D(1, &String{Value: "hi"}); err != nil {
		t.Fatalf("Set1D error: %v", err)
	}
	v, err := arr.Get1D(1)
	if err != nil {
		t.Fatalf("Get1D error: %v", err)
	}
	if s, ok := v.(*String); !ok || s.Value != "hi" {
		t.Errorf("Get1D(1) = %v, want String{hi}", v)
	}
}

func TestArrayGet1DOutOfRangeErrors(t *testing.T) {
	arr := NewArray1D(3, "int")
	if _, err := arr.Get1D(3); err == nil {
		t.Error("expected an out-of-range error for index 3")
	}
	if _, err := arr.Get1D(-1); err == nil {
		t.Error("expected an out-of-range error for index -1")
	}
}

func TestArraySet2DOutOfRangeErrors(t *testing.T) {
	arr := NewArray2D(2, 2, "int")
	if err := arr.Set2D(2, 0, &Int{}); err == nil {
		t.Error("expected an out-of-range error for row 2")
	}
	if err := arr.Set2D(0, 2, &Int{}); err == nil {
		t.Error("expected an out-of-range error for column 2")
	}
}

func TestArrayInspectFormat(t *testing.T) {
	arr := &Array{Rows: [][]Value{{&Int{Value: 1}, &Int{Value: 2}}}}
	if got := arr.Inspect(); got != "[[1, 2]]" {
		t.Errorf("Inspect() = %q, want %q", got, "[[1, 2]]")
	}
}

func TestZeroValuePerType(t *testing.T) {
	tests := []struct {
		typeName string
		want     ValueType
	}{
		{"int", IntType},
		{"float", FloatType},
		{"string", StringType},
		{"bool", BoolType},
		{"c_channel", UnsetType},
	}
	for _, tt := range tests {
		if got := zeroValue(tt.typeName).Type(); got != tt.want {
			t.Errorf("zeroValue(%q).Type() = %q, want %q", tt.typeName, got, tt.want)
		}
	}
}
