package sema

import (
	"pyrite/internal/source"
	"pyrite/internal/types"
)

// Symbol is one named binding: a parameter, a local, a function or a global.
type Symbol struct {
	Name string
	Kind *types.Kind
	Def  source.Span
}

// Scope is a lexical name table. Scopes never change once their owning
// construct has been checked; lookups walk the parent chain.
type Scope struct {
	parent *Scope
	names  map[string]Symbol
}

func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent: parent,
		names:  make(map[string]Symbol),
	}
}

// Bind adds a symbol. Returns the previous binding and false when the name is
// already taken in this scope.
func (s *Scope) Bind(sym Symbol) (Symbol, bool) {
	if prev, ok := s.names[sym.Name]; ok {
		return prev, false
	}
	s.names[sym.Name] = sym
	return Symbol{}, true
}

// Lookup resolves a name through the scope chain.
func (s *Scope) Lookup(name string) (Symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.names[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}
