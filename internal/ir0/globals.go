package ir0

import "pyrite/internal/source"

// Global is one module-level binding emitted at namespace scope: a using
// alias when IsType is set, a static constexpr otherwise. Err, when non-nil,
// is the binding's error-channel expression; code generation routes it
// through the module's error check so a failing binding breaks the target
// build with the error's message.
type Global struct {
	Name   string
	Span   source.Span
	IsType bool
	Expr   *Expr
	Err    *Expr
}

// AddGlobal appends a module-level binding. Order is preserved.
func (m *Module) AddGlobal(g Global) {
	m.globals = append(m.globals, g)
}

// Globals returns the module-level bindings in declaration order.
func (m *Module) Globals() []Global { return m.globals }
