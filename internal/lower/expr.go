package lower

import (
	"pyrite/internal/ir0"
	"pyrite/internal/ir1"
	"pyrite/internal/types"
)

// lowerExpr translates one IR1 expression. Error-channel expressions of
// every sub-call are appended to errs in evaluation order; the caller joins
// them into its own error binding.
func (lo *lowerer) lowerExpr(e *ir1.Expr, env map[string]*ir0.Expr, errs *[]*ir0.Expr) *ir0.Expr {
	switch e.Kind {
	case ir1.ExprConst:
		if e.Const.Kind == ir1.ConstBool {
			return ir0.LitBool(e.Const.Bool)
		}
		return ir0.LitInt(e.Const.Int)

	case ir1.ExprVarRef:
		if b := env[e.Name]; b != nil {
			return b
		}
		lo.internal(e.Span, "unbound variable %q", e.Name)
		return ir0.TypeLit("void")

	case ir1.ExprFnRef:
		id, ok := lo.fns[e.Name]
		if !ok {
			lo.internal(e.Span, "reference to unknown function %q", e.Name)
			return ir0.TypeLit("void")
		}
		return ir0.DeclRef(id)

	case ir1.ExprCall:
		return lo.lowerCall(e, env, errs)

	case ir1.ExprCond:
		return lo.lowerCond(e, env, errs)

	case ir1.ExprPrim:
		return lo.lowerPrim(e, env, errs)
	}
	lo.internal(e.Span, "unexpected expression kind %s", e.Kind)
	return ir0.TypeLit("void")
}

// lowerArg lowers an argument expression, substituting a kind-correct dummy
// when the argument is a raised error: the error channel already carries it
// and short-circuits any use, but the slot still needs a well-formed value.
// Scalar slots get a zero literal, container slots the empty list.
func (lo *lowerer) lowerArg(e *ir1.Expr, env map[string]*ir0.Expr, errs *[]*ir0.Expr, want *types.Kind) *ir0.Expr {
	v := lo.lowerExpr(e, env, errs)
	if e.Result.Fam != types.FamError || want == nil {
		return v
	}
	switch {
	case !resultIsType(want):
		return zeroScalar(want)
	case want.Container():
		return ir0.Inst(ir0.GlobalRef(listTemplate(want.Elem)))
	}
	return v
}

func (lo *lowerer) lowerCall(e *ir1.Expr, env map[string]*ir0.Expr, errs *[]*ir0.Expr) *ir0.Expr {
	var callee *ir0.Expr
	var params []ir1.Param
	if e.CalleeVar {
		b := env[e.Name]
		if b == nil {
			lo.internal(e.Span, "unbound callee %q", e.Name)
			return ir0.TypeLit("void")
		}
		callee = b
	} else {
		id, ok := lo.fns[e.Name]
		if !ok {
			lo.internal(e.Span, "call to unknown function %q", e.Name)
			return ir0.TypeLit("void")
		}
		callee = ir0.DeclRef(id)
		if fn := lo.in.Func(e.Name); fn != nil {
			params = fn.Params
		}
	}

	args := make([]*ir0.Expr, 0, len(e.Args))
	for i, a := range e.Args {
		var want *types.Kind
		if i < len(params) {
			want = params[i].Kind
		}
		args = append(args, lo.lowerArg(a, env, errs, want))
	}
	inst := ir0.Inst(callee, args...)
	*errs = append(*errs, ir0.Member(inst, ir0.MemberError))
	return ir0.Member(inst, memberFor(e.Result))
}

func (lo *lowerer) lowerPrim(e *ir1.Expr, env map[string]*ir0.Expr, errs *[]*ir0.Expr) *ir0.Expr {
	arg := func(i int) *ir0.Expr { return lo.lowerExpr(e.Args[i], env, errs) }

	switch e.Prim {
	case ir1.PrimTypeLit:
		return ir0.TypeLit(e.Name)

	case ir1.PrimPtr:
		return ir0.Pointer(arg(0))

	case ir1.PrimErrorLit:
		id := lo.errorDecl(e.Name)
		*errs = append(*errs, ir0.Inst(ir0.DeclRef(id), ir0.TypeLit("void")))
		return ir0.TypeLit("void")

	case ir1.PrimListLit, ir1.PrimSetLit:
		elem := e.Result.Elem
		elems := make([]*ir0.Expr, 0, len(e.Args))
		for _, a := range e.Args {
			elems = append(elems, lo.lowerArg(a, env, errs, elem))
		}
		list := ir0.Inst(ir0.GlobalRef(listTemplate(elem)), elems...)
		if e.Prim == ir1.PrimSetLit {
			return member(inst1(famName(elem)+"ListToSet", list), true)
		}
		return list

	case ir1.PrimEmptyList, ir1.PrimEmptySet:
		return ir0.Inst(ir0.GlobalRef(listTemplate(e.Result.Elem)))

	case ir1.PrimSetOf:
		return member(inst1(famName(e.Result.Elem)+"ListToSet", arg(0)), true)

	case ir1.PrimConcat:
		l := e.Result
		a := lo.lowerArg(e.Args[0], env, errs, l)
		b := lo.lowerArg(e.Args[1], env, errs, l)
		return member(ir0.Inst(ir0.GlobalRef(famName(l.Elem)+"ListConcat"), a, b), true)

	case ir1.PrimTransform:
		src := e.Args[0].Result.Elem
		dst := e.Result.Elem
		list := arg(0)
		f := arg(1)
		inst := ir0.Inst(ir0.GlobalRef("Transform"+famName(src)+"ListTo"+famName(dst)+"List"), list, f)
		*errs = append(*errs, ir0.Member(inst, ir0.MemberError))
		return ir0.Member(inst, ir0.MemberType)

	case ir1.PrimFold:
		elem := e.Args[0].Result.Elem
		acc := e.Result
		list := arg(0)
		seed := lo.lowerArg(e.Args[1], env, errs, acc)
		f := arg(2)
		inst := ir0.Inst(ir0.GlobalRef("Fold"+famPlural(elem)+"To"+famName(acc)), seed, f, list)
		*errs = append(*errs, ir0.Member(inst, ir0.MemberError))
		return ir0.Member(inst, memberFor(acc))

	case ir1.PrimAddToSet:
		set := arg(0)
		x := lo.lowerArg(e.Args[1], env, errs, e.Result.Elem)
		return member(ir0.Inst(ir0.GlobalRef("AddTo"+famName(e.Result.Elem)+"Set"), set, x), true)

	case ir1.PrimIsInSet, ir1.PrimIsInList:
		cont := e.Args[1].Result
		x := lo.lowerArg(e.Args[0], env, errs, cont.Elem)
		c := arg(1)
		tmpl := "IsIn" + famName(cont.Elem) + "Set"
		if e.Prim == ir1.PrimIsInList {
			tmpl = "IsIn" + famName(cont.Elem) + "List"
		}
		return member(ir0.Inst(ir0.GlobalRef(tmpl), c, x), false)

	case ir1.PrimSetEquals:
		// either operand may be error-kind; the element family comes from
		// whichever side is a real set
		set := e.Args[0].Result
		if set.Fam != types.FamSet {
			set = e.Args[1].Result
		}
		if set.Fam != types.FamSet {
			arg(0)
			arg(1)
			return ir0.LitBool(false)
		}
		a := lo.lowerArg(e.Args[0], env, errs, set)
		b := lo.lowerArg(e.Args[1], env, errs, set)
		return member(ir0.Inst(ir0.GlobalRef(famName(set.Elem)+"SetEquals"), a, b), false)

	case ir1.PrimSum:
		return member(inst1("Int64ListSum", arg(0)), false)

	case ir1.PrimAll:
		return member(inst1("BoolListAll", arg(0)), false)

	case ir1.PrimAny:
		return member(inst1("BoolListAny", arg(0)), false)

	case ir1.PrimNot:
		return ir0.Not(arg(0))

	case ir1.PrimNeg:
		return ir0.Neg(arg(0))

	case ir1.PrimEq, ir1.PrimNe:
		x, y := arg(0), arg(1)
		if e.Args[0].Result.Fam == types.FamType || e.Args[1].Result.Fam == types.FamType {
			same := member(ir0.Inst(ir0.GlobalRef("std::is_same"), x, y), false)
			if e.Prim == ir1.PrimNe {
				return ir0.Not(same)
			}
			return same
		}
		op := ir0.OpEq
		if e.Prim == ir1.PrimNe {
			op = ir0.OpNe
		}
		return ir0.Bin(op, x, y)

	case ir1.PrimAdd, ir1.PrimSub, ir1.PrimMul, ir1.PrimFloorDiv, ir1.PrimMod,
		ir1.PrimLt, ir1.PrimLe, ir1.PrimGt, ir1.PrimGe:
		return ir0.Bin(binOp(e.Prim), arg(0), arg(1))
	}

	lo.internal(e.Span, "unexpected primitive %s", e.Prim)
	return ir0.TypeLit("void")
}

func inst1(name string, arg *ir0.Expr) *ir0.Expr {
	return ir0.Inst(ir0.GlobalRef(name), arg)
}

func member(inst *ir0.Expr, isType bool) *ir0.Expr {
	if isType {
		return ir0.Member(inst, ir0.MemberType)
	}
	return ir0.Member(inst, ir0.MemberValue)
}

func famPlural(k *types.Kind) string {
	switch k.Fam {
	case types.FamBool:
		return "Bools"
	case types.FamInt64:
		return "Int64s"
	default:
		return "Types"
	}
}

func binOp(p ir1.PrimOp) ir0.BinOp {
	switch p {
	case ir1.PrimAdd:
		return ir0.OpAdd
	case ir1.PrimSub:
		return ir0.OpSub
	case ir1.PrimMul:
		return ir0.OpMul
	case ir1.PrimFloorDiv:
		return ir0.OpDiv
	case ir1.PrimMod:
		return ir0.OpMod
	case ir1.PrimLt:
		return ir0.OpLt
	case ir1.PrimLe:
		return ir0.OpLe
	case ir1.PrimGt:
		return ir0.OpGt
	}
	return ir0.OpGe
}
