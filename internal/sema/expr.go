package sema

import (
	"pyrite/internal/ast"
	"pyrite/internal/builtins"
	"pyrite/internal/diag"
	"pyrite/internal/types"
)

// checkExpr resolves the kind of one expression node, records it in the Info
// table and returns it. A nil result means the expression was broken and a
// diagnostic has already been reported.
func (c *Checker) checkExpr(id ast.ExprID, scope *Scope) *types.Kind {
	e := c.b.Expr(id)
	k := c.exprKind(e, scope)
	if k != nil {
		c.info.Kinds[id] = k
	}
	return k
}

func (c *Checker) exprKind(e *ast.Expr, scope *Scope) *types.Kind {
	switch e.Kind {
	case ast.ExprIntLit:
		return c.in.Int64()

	case ast.ExprBoolLit:
		return c.in.Bool()

	case ast.ExprStringLit:
		// string literals are only legal as the payload of type()/error(),
		// which consume them before checkExpr sees them
		c.errorf(diag.TypeBadOperand, e.Span,
			"string literals may only appear inside type(...) or error(...)")
		return nil

	case ast.ExprIdent:
		sym, ok := scope.Lookup(e.StrVal)
		if !ok {
			if _, isBuiltin := builtins.Lookup(e.StrVal); isBuiltin {
				c.errorf(diag.TypeBadOperand, e.Span,
					"%q is a builtin and must be called directly", e.StrVal)
				return nil
			}
			c.errorf(diag.TypeUndefinedName, e.Span, "undefined name %q", e.StrVal)
			return nil
		}
		return sym.Kind

	case ast.ExprCall:
		return c.checkCall(e, scope)

	case ast.ExprIf:
		return c.checkIfExpr(e, scope)

	case ast.ExprUnary:
		return c.checkUnary(e, scope)

	case ast.ExprBinary:
		return c.checkBinary(e, scope)

	case ast.ExprList, ast.ExprSet:
		return c.checkContainer(e, scope)
	}
	return nil
}

func (c *Checker) checkCall(e *ast.Expr, scope *Scope) *types.Kind {
	callee := c.b.Expr(e.Callee)

	if callee.Kind == ast.ExprIdent {
		if _, shadowed := scope.Lookup(callee.StrVal); !shadowed {
			if id, ok := builtins.Lookup(callee.StrVal); ok {
				return c.checkIntrinsic(e, id, scope)
			}
		}
	}

	calleeKind := c.checkExpr(e.Callee, scope)
	if calleeKind == nil {
		return nil
	}
	if calleeKind.Fam != types.FamFn {
		c.errorf(diag.TypeNotCallable, callee.Span, "%s is not callable", calleeKind)
		return nil
	}
	if len(e.Args) != len(calleeKind.Params) {
		c.errorf(diag.TypeArityMismatch, e.Span,
			"call expects %d argument(s), got %d", len(calleeKind.Params), len(e.Args))
		return nil
	}
	for i, arg := range e.Args {
		ak := c.checkExpr(arg, scope)
		if ak == nil {
			return nil
		}
		if !c.assignable(ak, calleeKind.Params[i]) {
			c.errorf(diag.TypeArgMismatch, c.b.Expr(arg).Span,
				"argument %d: expected %s, got %s", i+1, calleeKind.Params[i], ak)
		}
	}

	// error-ness propagates through user calls
	if callee.Kind == ast.ExprIdent {
		if fnID, ok := c.fnByName[callee.StrVal]; ok && c.info.CanFail[fnID] {
			c.markCanFail()
		}
	}
	return calleeKind.Result
}

func (c *Checker) checkIntrinsic(e *ast.Expr, id builtins.ID, scope *Scope) *types.Kind {
	switch id {
	case builtins.TypeLit, builtins.ErrorLit:
		if len(e.Args) != 1 || c.b.Expr(e.Args[0]).Kind != ast.ExprStringLit {
			c.errorf(diag.TypeArgMismatch, e.Span,
				"%s takes exactly one string literal", id)
			return nil
		}
		if id == builtins.TypeLit {
			return c.in.Type()
		}
		c.markCanFail()
		return c.in.Error()

	case builtins.EmptyList, builtins.EmptySet:
		elem, ok := c.scalarTypeArg(e, id)
		if !ok {
			return nil
		}
		if id == builtins.EmptyList {
			return c.in.ListOf(elem)
		}
		return c.in.SetOf(elem)
	}

	args := make([]*types.Kind, 0, len(e.Args))
	for _, arg := range e.Args {
		ak := c.checkExpr(arg, scope)
		if ak == nil {
			return nil
		}
		args = append(args, ak)
	}

	result, err := builtins.CheckCall(c.in, id, args)
	if err != nil {
		c.errorf(diag.TypeArgMismatch, e.Span, "%s", err)
		return nil
	}

	// transform/fold apply a caller-supplied function whose failures surface
	// through this call
	if id == builtins.Transform || id == builtins.Fold {
		c.markCanFail()
	}
	return result
}

// scalarTypeArg handles empty_list(int) / empty_set(Type): the single
// argument must be a bare scalar type name.
func (c *Checker) scalarTypeArg(e *ast.Expr, id builtins.ID) (*types.Kind, bool) {
	if len(e.Args) != 1 {
		c.errorf(diag.TypeArityMismatch, e.Span, "%s takes exactly one type name", id)
		return nil, false
	}
	arg := c.b.Expr(e.Args[0])
	if arg.Kind == ast.ExprIdent {
		switch arg.StrVal {
		case "bool":
			return c.in.Bool(), true
		case "int":
			return c.in.Int64(), true
		case "Type":
			return c.in.Type(), true
		}
	}
	c.errorf(diag.TypeArgMismatch, arg.Span,
		"%s takes a scalar type name: bool, int or Type", id)
	return nil, false
}

// checkIfExpr unifies the two branches of a conditional expression.
func (c *Checker) checkIfExpr(e *ast.Expr, scope *Scope) *types.Kind {
	ck := c.checkExpr(e.Cond, scope)
	if ck != nil && ck != c.in.Bool() && ck.Fam != types.FamError {
		c.errorf(diag.TypeCondNotBool, c.b.Expr(e.Cond).Span,
			"condition must be bool, got %s", ck)
	}
	tk := c.checkExpr(e.Then, scope)
	ek := c.checkExpr(e.Else, scope)
	if tk == nil || ek == nil {
		return nil
	}
	return c.unify(tk, ek, e)
}

// unify resolves the common kind of two branches. The error kind yields to
// the other side; diverging kinds are a branch-type mismatch.
func (c *Checker) unify(a, b *types.Kind, e *ast.Expr) *types.Kind {
	switch {
	case a == b:
		return a
	case a.Fam == types.FamError:
		return b
	case b.Fam == types.FamError:
		return a
	}
	c.errorf(diag.TypeBranchMismatch, e.Span,
		"branches disagree: %s vs %s", a, b)
	return nil
}

func (c *Checker) checkUnary(e *ast.Expr, scope *Scope) *types.Kind {
	xk := c.checkExpr(e.X, scope)
	if xk == nil {
		return nil
	}
	switch e.Op {
	case ast.OpNeg:
		if xk != c.in.Int64() && xk.Fam != types.FamError {
			c.errorf(diag.TypeBadOperand, e.Span, "unary '-' needs int, got %s", xk)
			return nil
		}
		return c.in.Int64()
	case ast.OpNot:
		if xk != c.in.Bool() && xk.Fam != types.FamError {
			c.errorf(diag.TypeBadOperand, e.Span, "'not' needs bool, got %s", xk)
			return nil
		}
		return c.in.Bool()
	}
	return nil
}

func (c *Checker) checkBinary(e *ast.Expr, scope *Scope) *types.Kind {
	xk := c.checkExpr(e.X, scope)
	yk := c.checkExpr(e.Y, scope)
	if xk == nil || yk == nil {
		return nil
	}

	switch {
	case e.Op.Arithmetic():
		if !c.assignable(xk, c.in.Int64()) || !c.assignable(yk, c.in.Int64()) {
			c.errorf(diag.TypeBadOperand, e.Span,
				"'%s' needs int operands, got %s and %s", e.Op, xk, yk)
			return nil
		}
		return c.in.Int64()

	case e.Op == ast.OpEq || e.Op == ast.OpNe:
		common := c.unify(xk, yk, e)
		if common == nil {
			return nil
		}
		switch {
		case common.Scalar(), common.Fam == types.FamSet:
			return c.in.Bool()
		default:
			c.errorf(diag.TypeBadOperand, e.Span,
				"'%s' compares scalars or sets, not %s", e.Op, common)
			return nil
		}

	case e.Op.Comparison(): // < <= > >=
		if !c.assignable(xk, c.in.Int64()) || !c.assignable(yk, c.in.Int64()) {
			c.errorf(diag.TypeBadOperand, e.Span,
				"'%s' needs int operands, got %s and %s", e.Op, xk, yk)
			return nil
		}
		return c.in.Bool()

	case e.Op == ast.OpAnd || e.Op == ast.OpOr:
		if !c.assignable(xk, c.in.Bool()) || !c.assignable(yk, c.in.Bool()) {
			c.errorf(diag.TypeBadOperand, e.Span,
				"'%s' needs bool operands, got %s and %s", e.Op, xk, yk)
			return nil
		}
		return c.in.Bool()

	case e.Op == ast.OpIn:
		if !yk.Container() {
			c.errorf(diag.TypeBadOperand, e.Span,
				"'in' needs a List or Set on the right, got %s", yk)
			return nil
		}
		if !c.assignable(xk, yk.Elem) {
			c.errorf(diag.TypeBadOperand, e.Span,
				"'in': element is %s but the container holds %s", xk, yk.Elem)
			return nil
		}
		return c.in.Bool()
	}
	return nil
}

func (c *Checker) checkContainer(e *ast.Expr, scope *Scope) *types.Kind {
	var elem *types.Kind
	for _, eid := range e.Elems {
		k := c.checkExpr(eid, scope)
		if k == nil {
			return nil
		}
		if k.Fam == types.FamError {
			continue
		}
		if elem == nil {
			elem = k
			continue
		}
		if k != elem {
			c.errorf(diag.TypeBadElement, c.b.Expr(eid).Span,
				"container mixes %s and %s", elem, k)
			return nil
		}
	}
	if elem == nil {
		c.errorf(diag.TypeBadElement, e.Span, "container element kind is unknown")
		return nil
	}
	if !elem.Scalar() {
		c.errorf(diag.TypeBadElement, e.Span,
			"container elements must be bool, int or Type, not %s", elem)
		return nil
	}
	if e.Kind == ast.ExprSet {
		return c.in.SetOf(elem)
	}
	return c.in.ListOf(elem)
}

func (c *Checker) markCanFail() {
	if c.current != ast.NoFnID {
		c.info.CanFail[c.current] = true
	}
}
