package opt

import "pyrite/internal/ir0"

// reduceSelect1st rewrites uses of declarations whose body is exactly
// "return the first parameter, ignore the rest": the member access collapses
// to the first argument, skipping an instantiation hop.
func reduceSelect1st(m *ir0.Module) {
	for _, d := range m.Decls() {
		if d.Builtin || d.Dead || d.IsError || d.Public {
			continue
		}
		if len(d.Specs) != 0 || d.Main == nil || len(d.Params) == 0 || d.Params[0].Pack {
			continue
		}
		rb := d.Main.Binding(d.ResultMember())
		if rb == nil || rb.Expr.Kind != ir0.ExprParamRef || rb.Expr.Name != d.Params[0].Name {
			continue
		}
		if eb := d.Main.Binding(ir0.MemberError); eb != nil && !isVoid(eb.Expr) {
			continue
		}

		id := d.ID
		member := d.ResultMember()
		rewriteModule(m, func(e *ir0.Expr) *ir0.Expr {
			if e.Kind != ir0.ExprMember || e.X.Kind != ir0.ExprInst {
				return e
			}
			callee := e.X.X
			if callee.Kind != ir0.ExprDeclRef || callee.Decl != id || len(e.X.Args) == 0 {
				return e
			}
			switch e.Name {
			case member:
				return e.X.Args[0]
			case ir0.MemberError:
				return voidType()
			}
			return e
		})
	}
}
