package opt

import (
	"pyrite/internal/diag"
	"pyrite/internal/ir0"
)

// Defaults for the instantiation ceilings. They are generous enough for any
// terminating program of reasonable size and small enough to fail fast on
// runaway recursion.
const (
	DefaultMaxDepth          = 500
	DefaultMaxInstantiations = 50000
)

// Options configures the optimizer.
type Options struct {
	Reporter diag.Reporter

	// MaxDepth bounds the nesting of one elaboration chain; MaxInstantiations
	// bounds the total number of elaborated instantiations per compilation.
	MaxDepth          int
	MaxInstantiations int
}

// Result reports optimizer outcome. Errors counts instantiation-limit
// failures; any such failure aborts the module.
type Result struct {
	Errors int
}

// Optimize runs the pass pipeline over m in place: bounded constant
// elaboration, hash-consing, first-argument-selection reduction and eager
// sentinel propagation. Every pass is result-preserving; only the set of
// declarations changes.
func Optimize(m *ir0.Module, opts Options) Result {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxInstantiations <= 0 {
		opts.MaxInstantiations = DefaultMaxInstantiations
	}

	nerr := elaborate(m, opts)
	if nerr > 0 {
		return Result{Errors: nerr}
	}
	hashCons(m)
	reduceSelect1st(m)
	propagateErrors(m)
	sweepDead(m)
	return Result{}
}

// sweepDead retires declarations nothing reachable references. Roots are the
// module globals and every declaration lowered straight from a source
// function: those stay callable from other translation units.
func sweepDead(m *ir0.Module) {
	live := make(map[ir0.DeclID]bool)
	var mark func(e *ir0.Expr)
	mark = func(e *ir0.Expr) {
		if e == nil {
			return
		}
		if e.Kind == ir0.ExprDeclRef && !live[e.Decl] {
			live[e.Decl] = true
			d := m.Decl(e.Decl)
			for _, s := range d.AllSpecs() {
				for _, b := range s.Body {
					mark(b.Expr)
				}
			}
		}
		mark(e.X)
		mark(e.Y)
		for _, a := range e.Args {
			mark(a)
		}
	}
	for _, d := range m.Decls() {
		if d.Public && !d.Dead {
			mark(ir0.DeclRef(d.ID))
		}
	}
	for _, g := range m.Globals() {
		mark(g.Expr)
		mark(g.Err)
	}
	for _, d := range m.Decls() {
		if !d.Builtin && !live[d.ID] {
			d.Dead = true
		}
	}
}
