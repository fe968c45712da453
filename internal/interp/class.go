package interp

import "github.com/minipar-lang/minipar/internal/ast"

// ClassRecord is the runtime description of a declared class: its own
// attributes/methods plus a link to its parent record, so lookups can walk
// the inheritance chain.
type ClassRecord struct {
	Name       string
	Parent     *ClassRecord
	Attributes []*ast.AttributeDecl
	Methods    map[string]*ast.FunctionDecl
}

// ResolveMethod walks the inheritance chain from c looking for method name.
func (c *ClassRecord) ResolveMethod(name string) (*ast.FunctionDecl, *ClassRecord) {
	for cur := c; cur != nil; cur = cur.Parent {
		if m, ok := cur.Methods[name]; ok {
			return m, cur
		}
	}
	return nil, nil
}

// AllAttributes returns every attribute declared anywhere in c's
// inheritance chain, root class first (so subclass declarations would
// shadow, though minipar's grammar doesn't allow attribute re-declaration).
func (c *ClassRecord) AllAttributes() []*ast.AttributeDecl {
	var chain []*ClassRecord
	for cur := c; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	var attrs []*ast.AttributeDecl
	for i := len(chain) - 1; i >= 0; i-- {
		attrs = append(attrs, chain[i].Attributes...)
	}
	return attrs
}

// Object is a class instance: zero-or-assigned attribute values keyed by
// name, plus the class record used for method dispatch.
type Object struct {
	Class *ClassRecord
	Attrs map[string]Value
}

func (o *Object) Type() ValueType { return ObjectType }
func (o *Object) Inspect() string { return "<" + o.Class.Name + " instance>" }
