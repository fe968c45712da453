package semantic

import (
	"github.com/minipar-lang/minipar/internal/ast"
	"github.com/minipar-lang/minipar/internal/token"
)

// Symbol is a single entry in a Scope: a variable, channel, function, or
// class binding.
type Symbol struct {
	Name          string
	Type          string // declared type name: int/float/string/bool/c_channel/void/ClassName
	IsArray       bool
	ArrayElemType string
	declaredShape *ast.ArrayShape
	IsFunction    bool
	IsClass       bool
	ReturnType    string
	ParamTypes    []string
	Used          bool
	Pos           token.Position
}

// Scope is one nesting level of the name environment the analyzer walks;
// it mirrors the evaluator's call-frame chain.
type Scope struct {
	symbols map[string]*Symbol
	outer   *Scope
}

// NewScope creates a root scope with no outer.
func NewScope() *Scope {
	return &Scope{symbols: make(map[string]*Symbol)}
}

// NewEnclosedScope creates a scope nested inside outer.
func NewEnclosedScope(outer *Scope) *Scope {
	return &Scope{symbols: make(map[string]*Symbol), outer: outer}
}

// DefineHere declares name directly in this scope, reporting whether a
// symbol with that name was already present in *this* scope. No two
// declarations may share a name within the same scope.
func (s *Scope) DefineHere(sym *Symbol) (prior *Symbol, duplicate bool) {
	if existing, ok := s.symbols[sym.Name]; ok {
		return existing, true
	}
	s.symbols[sym.Name] = sym
	return nil, false
}

// Resolve looks up name in this scope, then outward.
func (s *Scope) Resolve(name string) (*Symbol, bool) {
	if sym, ok := s.symbols[name]; ok {
		return sym, true
	}
	if s.outer != nil {
		return s.outer.Resolve(name)
	}
	return nil, false
}

// ResolveHere looks up name only in this exact scope.
func (s *Scope) ResolveHere(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// All returns every symbol declared directly in this scope.
func (s *Scope) All() map[string]*Symbol { return s.symbols }
