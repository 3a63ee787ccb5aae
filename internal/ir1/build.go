package ir1

import (
	"fmt"

	"pyrite/internal/ast"
	"pyrite/internal/sema"
	"pyrite/internal/types"
)

// Builder translates a type-checked AST into IR1. It runs only after sema
// reported zero errors, so malformed input here is a compiler defect and
// surfaces as an error, not a diagnostic.
type Builder struct {
	b    *ast.Builder
	info *sema.Info
	in   *types.Interner
}

// Build translates one module. The module name feeds generated-name mangling
// downstream, so it must be stable for one source file.
func Build(name string, b *ast.Builder, info *sema.Info, in *types.Interner) (*Module, error) {
	bld := &Builder{b: b, info: info, in: in}
	m := &Module{Name: name}

	moduleEnv := make(map[string]*Expr)
	for _, item := range b.Module.Items {
		switch item.Kind {
		case ast.ItemFn:
			fn, err := bld.buildFn(item.Fn)
			if err != nil {
				return nil, err
			}
			m.Funcs = append(m.Funcs, fn)

		case ast.ItemGlobal:
			g := b.Global(item.Global)
			value, err := bld.buildExpr(g.Value, moduleEnv)
			if err != nil {
				return nil, err
			}
			kind, ok := info.Globals[item.Global]
			if !ok {
				return nil, fmt.Errorf("global %q has no resolved kind", g.Name)
			}
			moduleEnv[g.Name] = value
			m.Globals = append(m.Globals, &Global{
				Name:  g.Name,
				Span:  g.Span,
				Kind:  kind,
				Value: value,
			})
		}
	}
	return m, nil
}

func (bld *Builder) buildFn(id ast.FnID) (*Func, error) {
	fn := bld.b.Fn(id)
	sig, ok := bld.info.Fns[id]
	if !ok {
		return nil, fmt.Errorf("function %q has no resolved signature", fn.Name)
	}

	params := make([]Param, len(fn.Params))
	env := make(map[string]*Expr, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = Param{Name: p.Name, Kind: sig.Params[i]}
		env[p.Name] = &Expr{
			Kind:   ExprVarRef,
			Span:   p.NameSpan,
			Result: sig.Params[i],
			Name:   p.Name,
		}
	}

	body, err := bld.buildBlock(fn.Body, env)
	if err != nil {
		return nil, fmt.Errorf("function %q: %w", fn.Name, err)
	}

	return &Func{
		Name:    fn.Name,
		Span:    fn.Span,
		Params:  params,
		Result:  sig.Result,
		CanFail: bld.info.CanFail[id],
		Body:    body,
	}, nil
}

// buildBlock folds a statement list into one expression tree. Assignments
// extend the substitution environment; `if` becomes a conditional whose
// fall-through branch is the rest of the block. Sema has already proven that
// every path returns, so running out of statements is a defect.
func (bld *Builder) buildBlock(stmts []ast.StmtID, env map[string]*Expr) (*Expr, error) {
	if len(stmts) == 0 {
		return nil, fmt.Errorf("block does not terminate in a return")
	}
	st := bld.b.Stmt(stmts[0])
	rest := stmts[1:]

	switch st.Kind {
	case ast.StmtAssign:
		value, err := bld.buildExpr(st.Value, env)
		if err != nil {
			return nil, err
		}
		child := cloneEnv(env)
		child[st.Name] = value
		return bld.buildBlock(rest, child)

	case ast.StmtReturn:
		return bld.buildExpr(st.Value, env)

	case ast.StmtIf:
		cond, err := bld.buildExpr(st.Cond, env)
		if err != nil {
			return nil, err
		}
		thenE, err := bld.buildBlock(append(append([]ast.StmtID{}, st.Then...), rest...), cloneEnv(env))
		if err != nil {
			return nil, err
		}
		var elseE *Expr
		if len(st.Else) > 0 {
			elseE, err = bld.buildBlock(append(append([]ast.StmtID{}, st.Else...), rest...), cloneEnv(env))
		} else {
			elseE, err = bld.buildBlock(rest, cloneEnv(env))
		}
		if err != nil {
			return nil, err
		}
		return &Expr{
			Kind:   ExprCond,
			Span:   st.Span,
			Result: branchKind(thenE, elseE),
			Cond:   cond,
			Then:   thenE,
			Else:   elseE,
		}, nil
	}
	return nil, fmt.Errorf("unknown statement kind %d", st.Kind)
}

// branchKind picks the non-error branch kind; sema guarantees agreement.
func branchKind(a, b *Expr) *types.Kind {
	if a.Result.Fam == types.FamError {
		return b.Result
	}
	return a.Result
}

func cloneEnv(env map[string]*Expr) map[string]*Expr {
	out := make(map[string]*Expr, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}
