// Package interp is the tree-walking evaluator: the "hard core" of minipar.
// It executes an analyzed Program directly, with no intermediate
// bytecode — the tac package's output is diagnostic only.
package interp

import "fmt"

// ValueType identifies the runtime kind of a Value, mirroring object.go's
// Type()/Inspect() shape from the tree-walking interpreters in the pack.
type ValueType string

const (
	IntType    ValueType = "int"
	FloatType  ValueType = "float"
	StringType ValueType = "string"
	BoolType   ValueType = "bool"
	ArrayType  ValueType = "array"
	ObjectType ValueType = "object"
	ChannelType ValueType = "c_channel"
	UnsetType  ValueType = "unset"
)

// Value is the base interface every runtime value implements.
type Value interface {
	Type() ValueType
	Inspect() string
}

// Int is a minipar int value.
type Int struct{ Value int64 }

func (i *Int) Type() ValueType { return IntType }
func (i *Int) Inspect() string { return fmt.Sprintf("%d", i.Value) }

// Float is a minipar float value.
type Float struct{ Value float64 }

func (f *Float) Type() ValueType { return FloatType }
func (f *Float) Inspect() string { return fmt.Sprintf("%g", f.Value) }

// String is a minipar string value.
type String struct{ Value string }

func (s *String) Type() ValueType { return StringType }
func (s *String) Inspect() string { return s.Value }

// Bool is a minipar bool value.
type Bool struct{ Value bool }

func (b *Bool) Type() ValueType { return BoolType }
func (b *Bool) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Unset is the zero-value result of a function/method with no `return`
// statement.
type Unset struct{}

func (u *Unset) Type() ValueType { return UnsetType }
func (u *Unset) Inspect() string { return "unset" }

var unsetValue = &Unset{}

// asFloat64 extracts a numeric Value as a float64 for arithmetic promotion.
func asFloat64(v Value) (float64, bool) {
	switch n := v.(type) {
	case *Int:
		return float64(n.Value), true
	case *Float:
		return n.Value, true
	default:
		return 0, false
	}
}

func isNumericValue(v Value) bool {
	switch v.(type) {
	case *Int, *Float:
		return true
	default:
		return false
	}
}

// stringify renders a value's canonical string conversion, used for `+`
// concatenation with any string operand.
func stringify(v Value) string {
	return v.Inspect()
}
