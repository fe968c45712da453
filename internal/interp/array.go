package interp

import (
	"fmt"
	"strings"
)

// Array is a 1D or 2D heterogeneous-capable array, zero-initialized
// according to its declared element type.
type Array struct {
	Rows [][]Value
}

func (a *Array) Type() ValueType { return ArrayType }
func (a *Array) Inspect() string {
	rows := make([]string, len(a.Rows))
	for i, row := range a.Rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = c.Inspect()
		}
		rows[i] = "[" + strings.Join(cells, ", ") + "]"
	}
	return "[" + strings.Join(rows, ", ") + "]"
}

// NewArray1D allocates a 1D array of size n, each cell zero-valued per
// elemType.
func NewArray1D(n int, elemType string) *Array {
	row := make([]Value, n)
	for i := range row {
		row[i] = zeroValue(elemType)
	}
	return &Array{Rows: [][]Value{row}}
}

// NewArray2D allocates a rows x cols array, each cell zero-valued.
func NewArray2D(rows, cols int, elemType string) *Array {
	a := &Array{Rows: make([][]Value, rows)}
	for i := range a.Rows {
		row := make([]Value, cols)
		for j := range row {
			row[j] = zeroValue(elemType)
		}
		a.Rows[i] = row
	}
	return a
}

// Get1D returns element i of a 1D array.
func (a *Array) Get1D(i int) (Value, error) {
	if len(a.Rows) == 0 || i < 0 || i >= len(a.Rows[0]) {
		return nil, fmt.Errorf("array index %d out of range", i)
	}
	return a.Rows[0][i], nil
}

// Set1D writes element i of a 1D array.
func (a *Array) Set1D(i int, v Value) error {
	if len(a.Rows) == 0 || i < 0 || i >= len(a.Rows[0]) {
		return fmt.Errorf("array index %d out of range", i)
	}
	a.Rows[0][i] = v
	return nil
}

// Get2D returns element (i, j) of a 2D array.
func (a *Array) Get2D(i, j int) (Value, error) {
	if i < 0 || i >= len(a.Rows) || j < 0 || j >= len(a.Rows[i]) {
		return nil, fmt.Errorf("array index [%d][%d] out of range", i, j)
	}
	return a.Rows[i][j], nil
}

// Set2D writes element (i, j) of a 2D array.
func (a *Array) Set2D(i, j int, v Value) error {
	if i < 0 || i >= len(a.Rows) || j < 0 || j >= len(a.Rows[i]) {
		return fmt.Errorf("array index [%d][%d] out of range", i, j)
	}
	a.Rows[i][j] = v
	return nil
}

func zeroValue(typeName string) Value {
	switch typeName {
	case "int":
		return &Int{}
	case "float":
		return &Float{}
	case "string":
		return &String{}
	case "bool":
		return &Bool{}
	default:
		return unsetValue
	}
}
