package sema

import (
	"fmt"

	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

// Info is the type checker's output: every expression node carries exactly
// one resolved kind, and the resolution never changes afterwards.
type Info struct {
	Kinds   map[ast.ExprID]*types.Kind
	Fns     map[ast.FnID]*types.Kind // always FamFn
	Globals map[ast.GlobalID]*types.Kind
	// CanFail marks functions whose body can produce an error value on some
	// path, directly or through a callee. Lowering uses it to thread the
	// error channel.
	CanFail map[ast.FnID]bool
}

// Checker performs static type checking over one parsed module.
type Checker struct {
	b        *ast.Builder
	in       *types.Interner
	reporter diag.Reporter
	info     *Info
	module   *Scope
	errors   uint

	fnByName map[string]ast.FnID
	current  ast.FnID // function being checked, for self-recursion marking
}

// Check type-checks the module and returns the collected kinds.
// Diagnostics go to the reporter; the second result is the error count.
// The checker collects as many errors as it can rather than stopping at the
// first one.
func Check(b *ast.Builder, in *types.Interner, reporter diag.Reporter) (*Info, uint) {
	c := &Checker{
		b:        b,
		in:       in,
		reporter: reporter,
		info: &Info{
			Kinds:   make(map[ast.ExprID]*types.Kind),
			Fns:     make(map[ast.FnID]*types.Kind),
			Globals: make(map[ast.GlobalID]*types.Kind),
			CanFail: make(map[ast.FnID]bool),
		},
		module:   NewScope(nil),
		fnByName: make(map[string]ast.FnID),
	}

	for _, item := range b.Module.Items {
		switch item.Kind {
		case ast.ItemFn:
			c.checkFn(item.Fn)
		case ast.ItemGlobal:
			c.checkGlobal(item.Global)
		}
	}
	return c.info, c.errors
}

func (c *Checker) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	c.errors++
	diag.ReportError(c.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

// resolveType turns a written annotation into an interned kind.
func (c *Checker) resolveType(id ast.TypeID) (*types.Kind, bool) {
	t := c.b.Type(id)
	if t == nil {
		return nil, false
	}
	switch t.Kind {
	case ast.TypeSynName:
		switch t.Name {
		case "bool":
			return c.in.Bool(), true
		case "int":
			return c.in.Int64(), true
		case "Type":
			return c.in.Type(), true
		}
		c.errorf(diag.TypeUnknownAnnotation, t.Span, "unknown type %q", t.Name)
		return nil, false

	case ast.TypeSynList, ast.TypeSynSet:
		elem, ok := c.resolveType(t.Elem)
		if !ok {
			return nil, false
		}
		if !elem.Scalar() {
			c.errorf(diag.TypeBadElement, t.Span,
				"container elements must be bool, int or Type, not %s", elem)
			return nil, false
		}
		if t.Kind == ast.TypeSynList {
			return c.in.ListOf(elem), true
		}
		return c.in.SetOf(elem), true

	case ast.TypeSynCallable:
		params := make([]*types.Kind, 0, len(t.Params))
		for _, pid := range t.Params {
			p, ok := c.resolveType(pid)
			if !ok {
				return nil, false
			}
			params = append(params, p)
		}
		result, ok := c.resolveType(t.Result)
		if !ok {
			return nil, false
		}
		return c.in.FnOf(params, result), true
	}
	return nil, false
}

func (c *Checker) checkFn(id ast.FnID) {
	fn := c.b.Fn(id)

	params := make([]*types.Kind, 0, len(fn.Params))
	scope := NewScope(c.module)
	okSig := true
	for _, p := range fn.Params {
		pk, ok := c.resolveType(p.Type)
		if !ok {
			okSig = false
			continue
		}
		params = append(params, pk)
		if prev, fresh := scope.Bind(Symbol{Name: p.Name, Kind: pk, Def: p.NameSpan}); !fresh {
			c.errorf(diag.TypeRedefinedName, p.NameSpan,
				"parameter %q already defined", p.Name)
			_ = prev
		}
	}
	ret, okRet := c.resolveType(fn.Ret)
	if !okSig || !okRet {
		return
	}

	sig := c.in.FnOf(params, ret)
	c.info.Fns[id] = sig
	c.fnByName[fn.Name] = id

	// visible to later items and to its own body (recursion is unrestricted)
	if prev, fresh := c.module.Bind(Symbol{Name: fn.Name, Kind: sig, Def: fn.NameSpan}); !fresh {
		c.errorf(diag.TypeRedefinedName, fn.NameSpan,
			"%q already defined", fn.Name)
		_ = prev
		return
	}

	prevCurrent := c.current
	c.current = id
	terminated := c.checkBlock(fn.Body, scope, ret)
	c.current = prevCurrent

	if !terminated {
		c.errorf(diag.TypeMissingReturn, fn.Span,
			"function %q: not every path ends in a return", fn.Name)
	}
}

// checkBlock checks statements in order and reports whether every control
// path through the block ends in a return.
func (c *Checker) checkBlock(stmts []ast.StmtID, scope *Scope, ret *types.Kind) bool {
	terminated := false
	for _, sid := range stmts {
		st := c.b.Stmt(sid)
		if terminated {
			c.errorf(diag.TypeUnreachable, st.Span, "unreachable statement")
			return true
		}
		switch st.Kind {
		case ast.StmtAssign:
			k := c.checkExpr(st.Value, scope)
			if k == nil {
				continue
			}
			if _, fresh := scope.Bind(Symbol{Name: st.Name, Kind: k, Def: st.NameSpan}); !fresh {
				c.errorf(diag.TypeRedefinedName, st.NameSpan,
					"%q already defined; rebinding is not allowed", st.Name)
			}

		case ast.StmtReturn:
			k := c.checkExpr(st.Value, scope)
			if k != nil && !c.assignable(k, ret) {
				c.errorf(diag.TypeReturnMismatch, st.Span,
					"returned %s, function declares %s", k, ret)
			}
			terminated = true

		case ast.StmtIf:
			ck := c.checkExpr(st.Cond, scope)
			if ck != nil && ck != c.in.Bool() && ck.Fam != types.FamError {
				c.errorf(diag.TypeCondNotBool, c.b.Expr(st.Cond).Span,
					"condition must be bool, got %s", ck)
			}
			// each branch opens a child scope; bindings do not escape
			thenEnds := c.checkBlock(st.Then, NewScope(scope), ret)
			elseEnds := false
			if len(st.Else) > 0 {
				elseEnds = c.checkBlock(st.Else, NewScope(scope), ret)
			}
			terminated = thenEnds && elseEnds
		}
	}
	return terminated
}

func (c *Checker) checkGlobal(id ast.GlobalID) {
	g := c.b.Global(id)
	k := c.checkExpr(g.Value, c.module)
	if k == nil {
		return
	}
	if k.Fam == types.FamFn {
		c.errorf(diag.TypeBadOperand, g.Span,
			"module bindings must hold values, not functions")
		return
	}
	c.info.Globals[id] = k
	if _, fresh := c.module.Bind(Symbol{Name: g.Name, Kind: k, Def: g.NameSpan}); !fresh {
		c.errorf(diag.TypeRedefinedName, g.NameSpan, "%q already defined", g.Name)
	}
}

// assignable reports whether a value of kind k satisfies expected. The error
// kind satisfies anything: raising is legal in any value position.
func (c *Checker) assignable(k, expected *types.Kind) bool {
	return k == expected || k.Fam == types.FamError
}
