package lower

import (
	"fmt"

	"pyrite/internal/ir0"
	"pyrite/internal/ir1"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

func (lo *lowerer) lowerFn(fn *ir1.Func) {
	d := lo.out.Decl(lo.fns[fn.Name])
	for _, p := range fn.Params {
		d.Params = append(d.Params, toParam(p))
	}
	d.ResultIsType = resultIsType(fn.Result)
	d.HasError = true
	d.Public = true

	lo.curName = d.Name
	lo.curParams = fn.Params
	lo.nhelpers = 0

	env := make(map[string]*ir0.Expr, len(fn.Params))
	for _, p := range fn.Params {
		env[p.Name] = ir0.ParamRef(p.Name)
	}

	// Recursive shapes peel into pattern specializations: each leading
	// "if param == <literal>" conditional becomes one specialization with
	// the literal substituted into the pattern, and the final else branch
	// becomes the generic main body that re-invokes the declaration.
	// A repeated (param, literal) pair would redefine the specialization.
	body := fn.Body
	seen := map[string]source.Span{}
	for body.Kind == ir1.ExprCond {
		pname, lit, ok := lo.baseCase(body.Cond, env)
		if !ok {
			break
		}
		key := pname + "==" + lo.out.ExprString(lit)
		if first, dup := seen[key]; dup {
			lo.ambiguousSpec(body.Cond.Span, pname, lo.out.ExprString(lit), first)
			body = body.Else
			continue
		}
		seen[key] = body.Cond.Span
		spec := &ir0.Spec{}
		for _, p := range d.Params {
			if p.Name == pname {
				spec.Patterns = append(spec.Patterns, lit)
				continue
			}
			spec.Params = append(spec.Params, p)
			spec.Patterns = append(spec.Patterns, ir0.ParamRef(p.Name))
		}
		senv := cloneEnv(env)
		senv[pname] = lit
		spec.Body = lo.lowerBody(body.Then, senv, fn.Result)
		d.Specs = append(d.Specs, spec)
		body = body.Else
	}
	d.Main = &ir0.Spec{
		Params: d.Params,
		Body:   lo.lowerBody(body, env, fn.Result),
	}
}

// baseCase recognizes "param == literal" conditions. The literal may be a
// scalar constant or an atomic type literal; anything else dispatches
// through a branch helper instead.
func (lo *lowerer) baseCase(cond *ir1.Expr, env map[string]*ir0.Expr) (string, *ir0.Expr, bool) {
	if cond.Kind != ir1.ExprPrim || cond.Prim != ir1.PrimEq {
		return "", nil, false
	}
	x, y := cond.Args[0], cond.Args[1]
	if lit := patternLit(y); lit != nil {
		if name, ok := plainParam(x, env); ok {
			return name, lit, true
		}
	}
	if lit := patternLit(x); lit != nil {
		if name, ok := plainParam(y, env); ok {
			return name, lit, true
		}
	}
	return "", nil, false
}

func patternLit(e *ir1.Expr) *ir0.Expr {
	switch {
	case e.Kind == ir1.ExprConst && e.Const.Kind == ir1.ConstBool:
		return ir0.LitBool(e.Const.Bool)
	case e.Kind == ir1.ExprConst && e.Const.Kind == ir1.ConstInt:
		return ir0.LitInt(e.Const.Int)
	case e.Kind == ir1.ExprPrim && e.Prim == ir1.PrimTypeLit:
		return ir0.TypeLit(e.Name)
	}
	return nil
}

// plainParam reports whether e reads a parameter still bound to itself.
func plainParam(e *ir1.Expr, env map[string]*ir0.Expr) (string, bool) {
	if e.Kind != ir1.ExprVarRef {
		return "", false
	}
	b := env[e.Name]
	if b == nil || b.Kind != ir0.ExprParamRef || b.Name != e.Name {
		return "", false
	}
	return e.Name, true
}

// lowerBody lowers a branch into the value/type binding plus the error
// binding joining every error-channel expression in evaluation order.
func (lo *lowerer) lowerBody(e *ir1.Expr, env map[string]*ir0.Expr, rk *types.Kind) []ir0.Binding {
	var errs []*ir0.Expr
	v := lo.lowerExpr(e, env, &errs)
	if e.Result.Fam == types.FamError && !resultIsType(rk) {
		v = zeroScalar(rk)
	}
	member := ir0.MemberType
	if !resultIsType(rk) {
		member = ir0.MemberValue
	}
	return []ir0.Binding{
		{Name: member, IsType: resultIsType(rk), Expr: v},
		{Name: ir0.MemberError, IsType: true, Expr: errJoin(errs)},
	}
}

func zeroScalar(k *types.Kind) *ir0.Expr {
	if k.Fam == types.FamInt64 {
		return ir0.LitInt(0)
	}
	return ir0.LitBool(false)
}

// lowerCond dispatches a conditional through a helper declaration with
// true/false specializations, so only the taken branch is ever elaborated.
func (lo *lowerer) lowerCond(e *ir1.Expr, env map[string]*ir0.Expr, errs *[]*ir0.Expr) *ir0.Expr {
	cond := lo.lowerExpr(e.Cond, env, errs)

	lo.nhelpers++
	aux := lo.out.New(lo.uniqueName(fmt.Sprintf("%sIf%d", lo.curName, lo.nhelpers)))
	aux.Origin = lo.curName
	aux.ResultIsType = resultIsType(e.Result)
	aux.HasError = true
	aux.Params = append(aux.Params, ir0.Param{Name: "pyriteCond", Kind: ir0.PKBool})
	for _, p := range lo.curParams {
		aux.Params = append(aux.Params, toParam(p))
	}

	auxEnv := make(map[string]*ir0.Expr, len(lo.curParams))
	for _, p := range lo.curParams {
		auxEnv[p.Name] = ir0.ParamRef(p.Name)
	}
	for _, taken := range []bool{true, false} {
		spec := &ir0.Spec{Patterns: []*ir0.Expr{ir0.LitBool(taken)}}
		for _, p := range lo.curParams {
			spec.Params = append(spec.Params, toParam(p))
			spec.Patterns = append(spec.Patterns, ir0.ParamRef(p.Name))
		}
		branch := e.Then
		if !taken {
			branch = e.Else
		}
		spec.Body = lo.lowerBody(branch, cloneEnv(auxEnv), e.Result)
		aux.Specs = append(aux.Specs, spec)
	}

	args := make([]*ir0.Expr, 0, len(lo.curParams)+1)
	args = append(args, cond)
	for _, p := range lo.curParams {
		args = append(args, env[p.Name])
	}
	inst := ir0.Inst(ir0.DeclRef(aux.ID), args...)
	*errs = append(*errs, ir0.Member(inst, ir0.MemberError))
	return ir0.Member(inst, memberFor(e.Result))
}

func cloneEnv(env map[string]*ir0.Expr) map[string]*ir0.Expr {
	out := make(map[string]*ir0.Expr, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}
