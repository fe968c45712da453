package semantic

import "github.com/minipar-lang/minipar/internal/ast"

// ClassInfo records one class declaration's shape for attribute/method
// lookup across the inheritance chain.
type ClassInfo struct {
	Decl       *ast.ClassDecl
	Name       string
	Parent     string // "" if none
	Attributes map[string]*ast.AttributeDecl
	Methods    map[string]*ast.FunctionDecl
}

// ClassTable is the set of all declared classes, keyed by name.
type ClassTable struct {
	classes map[string]*ClassInfo
}

func NewClassTable() *ClassTable {
	return &ClassTable{classes: make(map[string]*ClassInfo)}
}

func (ct *ClassTable) Define(ci *ClassInfo) (prior *ClassInfo, duplicate bool) {
	if existing, ok := ct.classes[ci.Name]; ok {
		return existing, true
	}
	ct.classes[ci.Name] = ci
	return nil, false
}

func (ct *ClassTable) Lookup(name string) (*ClassInfo, bool) {
	ci, ok := ct.classes[name]
	return ci, ok
}

func (ct *ClassTable) All() map[string]*ClassInfo { return ct.classes }

// IsSubclassOf reports whether child transitively extends ancestor
// (reflexive: a class is considered a "subclass" of itself for the purposes
// of assignability). Guards against cycles with a visited set so a
// malformed `extends` chain can't loop forever.
func (ct *ClassTable) IsSubclassOf(child, ancestor string) bool {
	if child == ancestor {
		return true
	}
	seen := map[string]bool{}
	cur := child
	for {
		ci, ok := ct.classes[cur]
		if !ok || ci.Parent == "" || seen[cur] {
			return false
		}
		seen[cur] = true
		if ci.Parent == ancestor {
			return true
		}
		cur = ci.Parent
	}
}

// ResolveAttribute walks the inheritance chain starting at className
// looking for an attribute declaration named attr.
func (ct *ClassTable) ResolveAttribute(className, attr string) (*ast.AttributeDecl, *ClassInfo, bool) {
	cur := className
	seen := map[string]bool{}
	for cur != "" && !seen[cur] {
		seen[cur] = true
		ci, ok := ct.classes[cur]
		if !ok {
			return nil, nil, false
		}
		if a, ok := ci.Attributes[attr]; ok {
			return a, ci, true
		}
		cur = ci.Parent
	}
	return nil, nil, false
}

// ResolveMethod walks the inheritance chain starting at className looking
// for a method declaration named name.
func (ct *ClassTable) ResolveMethod(className, name string) (*ast.FunctionDecl, *ClassInfo, bool) {
	cur := className
	seen := map[string]bool{}
	for cur != "" && !seen[cur] {
		seen[cur] = true
		ci, ok := ct.classes[cur]
		if !ok {
			return nil, nil, false
		}
		if m, ok := ci.Methods[name]; ok {
			return m, ci, true
		}
		cur = ci.Parent
	}
	return nil, nil, false
}
