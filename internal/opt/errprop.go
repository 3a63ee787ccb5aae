package opt

import "pyrite/internal/ir0"

// propagateErrors short-circuits statically-known error sentinels: error
// joins drop known "no error" operands, stop at the first known failure, and
// declarations that unconditionally fail feed their error straight into
// dependents without another elaboration.
func propagateErrors(m *ir0.Module) {
	known := make(map[ir0.DeclID]*ir0.Expr)
	for _, d := range m.Decls() {
		if d.Builtin || d.Dead || d.IsError {
			continue
		}
		var holder *ir0.Expr
		ok := len(d.AllSpecs()) > 0
		for _, s := range d.AllSpecs() {
			b := s.Binding(ir0.MemberError)
			if b == nil || !isErrorHolder(m, b.Expr) {
				ok = false
				break
			}
			if holder == nil {
				holder = b.Expr
			} else if m.ExprString(holder) != m.ExprString(b.Expr) {
				ok = false
				break
			}
		}
		if ok && holder != nil {
			known[d.ID] = holder
		}
	}

	rewriteModule(m, func(e *ir0.Expr) *ir0.Expr {
		if e.Kind != ir0.ExprMember || e.X.Kind != ir0.ExprInst {
			return e
		}
		callee := e.X.X
		if e.Name == ir0.MemberError && callee.Kind == ir0.ExprDeclRef {
			if h, ok := known[callee.Decl]; ok {
				return h
			}
		}
		if e.Name == ir0.MemberType && callee.Kind == ir0.ExprGlobalRef && callee.Name == "GetFirstError" {
			return simplifyErrorJoin(m, e)
		}
		return e
	})
}

func isErrorHolder(m *ir0.Module, e *ir0.Expr) bool {
	if e == nil || e.Kind != ir0.ExprInst || e.X.Kind != ir0.ExprDeclRef {
		return false
	}
	d := m.Decl(e.X.Decl)
	return d != nil && d.IsError
}

// simplifyErrorJoin rewrites GetFirstError<...>::type. Known "no error"
// operands are dropped; a known failure ends the scan, since nothing after
// it can ever be selected.
func simplifyErrorJoin(m *ir0.Module, e *ir0.Expr) *ir0.Expr {
	var kept []*ir0.Expr
	changed := false
	for _, a := range e.X.Args {
		if isVoid(a) {
			changed = true
			continue
		}
		if isErrorHolder(m, a) {
			if len(kept) == 0 {
				return a
			}
			kept = append(kept, a)
			changed = true
			break
		}
		kept = append(kept, a)
	}
	if !changed {
		return e
	}
	switch len(kept) {
	case 0:
		return voidType()
	case 1:
		return kept[0]
	default:
		return ir0.Member(ir0.Inst(ir0.GlobalRef("GetFirstError"), kept...), ir0.MemberType)
	}
}
