package ir1

import (
	"pyrite/internal/source"
	"pyrite/internal/types"
)

// Param is one function parameter with its resolved kind.
type Param struct {
	Name string
	Kind *types.Kind
}

// Func is one IR1 function: a signature plus a single body expression tree.
type Func struct {
	Name    string
	Span    source.Span
	Params  []Param
	Result  *types.Kind
	CanFail bool
	Body    *Expr
}

// Global is one exported module-level binding.
type Global struct {
	Name  string
	Span  source.Span
	Kind  *types.Kind
	Value *Expr
}

// Module is the IR1 form of one source module, in declaration order.
type Module struct {
	Name    string
	Funcs   []*Func
	Globals []*Global
}

// Func returns the function with the given name, or nil.
func (m *Module) Func(name string) *Func {
	for _, f := range m.Funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}
