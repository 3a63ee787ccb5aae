package ir1

import (
	"fmt"

	"pyrite/internal/ast"
	"pyrite/internal/builtins"
	"pyrite/internal/types"
)

var primForBuiltin = map[builtins.ID]PrimOp{
	builtins.Concat:    PrimConcat,
	builtins.Transform: PrimTransform,
	builtins.Fold:      PrimFold,
	builtins.AddToSet:  PrimAddToSet,
	builtins.IsInSet:   PrimIsInSet,
	builtins.SetEquals: PrimSetEquals,
	builtins.SetOf:     PrimSetOf,
	builtins.Sum:       PrimSum,
	builtins.All:       PrimAll,
	builtins.Any:       PrimAny,
	builtins.Ptr:       PrimPtr,
}

var primForBinOp = map[ast.Op]PrimOp{
	ast.OpAdd:      PrimAdd,
	ast.OpSub:      PrimSub,
	ast.OpMul:      PrimMul,
	ast.OpFloorDiv: PrimFloorDiv,
	ast.OpMod:      PrimMod,
	ast.OpEq:       PrimEq,
	ast.OpNe:       PrimNe,
	ast.OpLt:       PrimLt,
	ast.OpLe:       PrimLe,
	ast.OpGt:       PrimGt,
	ast.OpGe:       PrimGe,
}

func (bld *Builder) buildExpr(id ast.ExprID, env map[string]*Expr) (*Expr, error) {
	e := bld.b.Expr(id)
	kind := bld.info.Kinds[id]

	switch e.Kind {
	case ast.ExprIntLit:
		return &Expr{
			Kind:   ExprConst,
			Span:   e.Span,
			Result: kind,
			Const:  Const{Kind: ConstInt, Int: e.IntVal},
		}, nil

	case ast.ExprBoolLit:
		return &Expr{
			Kind:   ExprConst,
			Span:   e.Span,
			Result: kind,
			Const:  Const{Kind: ConstBool, Bool: e.BoolVal},
		}, nil

	case ast.ExprIdent:
		if bound, ok := env[e.StrVal]; ok {
			return bound, nil
		}
		// a module function used as a value
		if kind != nil && kind.Fam == types.FamFn {
			return &Expr{Kind: ExprFnRef, Span: e.Span, Result: kind, Name: e.StrVal}, nil
		}
		return nil, fmt.Errorf("unbound name %q survived type checking", e.StrVal)

	case ast.ExprCall:
		return bld.buildCall(e, kind, env)

	case ast.ExprIf:
		return bld.buildCondExpr(e, env)

	case ast.ExprUnary:
		x, err := bld.buildExpr(e.X, env)
		if err != nil {
			return nil, err
		}
		op := PrimNot
		if e.Op == ast.OpNeg {
			op = PrimNeg
		}
		return &Expr{
			Kind:   ExprPrim,
			Span:   e.Span,
			Result: kind,
			Prim:   op,
			Args:   []*Expr{x},
		}, nil

	case ast.ExprBinary:
		return bld.buildBinary(e, kind, env)

	case ast.ExprList, ast.ExprSet:
		elems := make([]*Expr, 0, len(e.Elems))
		for _, eid := range e.Elems {
			el, err := bld.buildExpr(eid, env)
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
		}
		op := PrimListLit
		if e.Kind == ast.ExprSet {
			op = PrimSetLit
		}
		return &Expr{
			Kind:   ExprPrim,
			Span:   e.Span,
			Result: kind,
			Prim:   op,
			Args:   elems,
		}, nil
	}
	return nil, fmt.Errorf("unknown AST expression kind %d", e.Kind)
}

func (bld *Builder) buildCall(e *ast.Expr, kind *types.Kind, env map[string]*Expr) (*Expr, error) {
	callee := bld.b.Expr(e.Callee)
	if callee.Kind != ast.ExprIdent {
		return nil, fmt.Errorf("callee is not a name")
	}

	// intrinsics, unless the builtin name is shadowed by a binding
	if _, shadowed := env[callee.StrVal]; !shadowed {
		if bid, ok := builtins.Lookup(callee.StrVal); ok {
			return bld.buildIntrinsic(e, bid, kind, env)
		}
	}

	args := make([]*Expr, 0, len(e.Args))
	for _, aid := range e.Args {
		a, err := bld.buildExpr(aid, env)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}

	// a call through a function-kinded parameter or local binding
	if bound, ok := env[callee.StrVal]; ok {
		if bound.Kind != ExprVarRef && bound.Kind != ExprFnRef {
			return nil, fmt.Errorf("callee %q is not a function value", callee.StrVal)
		}
		return &Expr{
			Kind:      ExprCall,
			Span:      e.Span,
			Result:    kind,
			Name:      bound.Name,
			CalleeVar: bound.Kind == ExprVarRef,
			Args:      args,
		}, nil
	}

	return &Expr{
		Kind:   ExprCall,
		Span:   e.Span,
		Result: kind,
		Name:   callee.StrVal,
		Args:   args,
	}, nil
}

func (bld *Builder) buildIntrinsic(e *ast.Expr, bid builtins.ID, kind *types.Kind, env map[string]*Expr) (*Expr, error) {
	switch bid {
	case builtins.TypeLit, builtins.ErrorLit:
		payload := bld.b.Expr(e.Args[0])
		op := PrimTypeLit
		if bid == builtins.ErrorLit {
			op = PrimErrorLit
		}
		return &Expr{
			Kind:   ExprPrim,
			Span:   e.Span,
			Result: kind,
			Prim:   op,
			Name:   payload.StrVal,
		}, nil

	case builtins.EmptyList, builtins.EmptySet:
		op := PrimEmptyList
		if bid == builtins.EmptySet {
			op = PrimEmptySet
		}
		return &Expr{Kind: ExprPrim, Span: e.Span, Result: kind, Prim: op}, nil
	}

	op, ok := primForBuiltin[bid]
	if !ok {
		return nil, fmt.Errorf("intrinsic %s has no IR1 primitive", bid)
	}
	args := make([]*Expr, 0, len(e.Args))
	for _, aid := range e.Args {
		a, err := bld.buildExpr(aid, env)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return &Expr{
		Kind:   ExprPrim,
		Span:   e.Span,
		Result: kind,
		Prim:   op,
		Args:   args,
	}, nil
}

func (bld *Builder) buildCondExpr(e *ast.Expr, env map[string]*Expr) (*Expr, error) {
	cond, err := bld.buildExpr(e.Cond, env)
	if err != nil {
		return nil, err
	}
	thenE, err := bld.buildExpr(e.Then, env)
	if err != nil {
		return nil, err
	}
	elseE, err := bld.buildExpr(e.Else, env)
	if err != nil {
		return nil, err
	}
	return &Expr{
		Kind:   ExprCond,
		Span:   e.Span,
		Result: branchKind(thenE, elseE),
		Cond:   cond,
		Then:   thenE,
		Else:   elseE,
	}, nil
}

func (bld *Builder) buildBinary(e *ast.Expr, kind *types.Kind, env map[string]*Expr) (*Expr, error) {
	x, err := bld.buildExpr(e.X, env)
	if err != nil {
		return nil, err
	}
	y, err := bld.buildExpr(e.Y, env)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case ast.OpAnd:
		// a and b  →  b if a else False
		return &Expr{
			Kind:   ExprCond,
			Span:   e.Span,
			Result: kind,
			Cond:   x,
			Then:   y,
			Else:   boolConst(false, kind),
		}, nil
	case ast.OpOr:
		// a or b  →  True if a else b
		return &Expr{
			Kind:   ExprCond,
			Span:   e.Span,
			Result: kind,
			Cond:   x,
			Then:   boolConst(true, kind),
			Else:   y,
		}, nil

	case ast.OpIn:
		op := PrimIsInList
		if y.Result.Fam == types.FamSet {
			op = PrimIsInSet
		}
		return &Expr{
			Kind:   ExprPrim,
			Span:   e.Span,
			Result: kind,
			Prim:   op,
			Args:   []*Expr{x, y},
		}, nil

	case ast.OpEq, ast.OpNe:
		// set comparison desugars to the set-equality primitive
		if x.Result.Fam == types.FamSet || y.Result.Fam == types.FamSet {
			eq := &Expr{
				Kind:   ExprPrim,
				Span:   e.Span,
				Result: kind,
				Prim:   PrimSetEquals,
				Args:   []*Expr{x, y},
			}
			if e.Op == ast.OpEq {
				return eq, nil
			}
			return &Expr{
				Kind:   ExprPrim,
				Span:   e.Span,
				Result: kind,
				Prim:   PrimNot,
				Args:   []*Expr{eq},
			}, nil
		}
	}

	op, ok := primForBinOp[e.Op]
	if !ok {
		return nil, fmt.Errorf("operator %s has no IR1 primitive", e.Op)
	}
	return &Expr{
		Kind:   ExprPrim,
		Span:   e.Span,
		Result: kind,
		Prim:   op,
		Args:   []*Expr{x, y},
	}, nil
}

func boolConst(v bool, kind *types.Kind) *Expr {
	return &Expr{
		Kind:   ExprConst,
		Result: kind,
		Const:  Const{Kind: ConstBool, Bool: v},
	}
}
