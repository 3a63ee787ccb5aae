package opt

import (
	"errors"
	"fmt"
	"strings"

	"pyrite/internal/diag"
	"pyrite/internal/ir0"
)

// errAbstract means an expression depends on something not statically known
// (a free template parameter); the pass keeps the original expression.
var errAbstract = errors.New("not statically evaluable")

// limitError aborts elaboration when a ceiling is hit.
type limitError struct {
	code  diag.Code
	msg   string
	chain []string
}

func (e *limitError) Error() string { return e.msg }

type evaluator struct {
	m        *ir0.Module
	maxDepth int
	maxInsts int

	count int
	memo  map[string][]ir0.Binding
	busy  map[string]bool
	chain []string
}

func newEvaluator(m *ir0.Module, opts Options) *evaluator {
	return &evaluator{
		m:        m,
		maxDepth: opts.MaxDepth,
		maxInsts: opts.MaxInstantiations,
		memo:     make(map[string][]ir0.Binding),
		busy:     make(map[string]bool),
	}
}

// elaborate evaluates every module global whose value is statically
// determined, replacing instantiation chains with their results. This is
// where terminating recursion collapses to a concrete value and where
// runaway recursion is caught and reported.
func elaborate(m *ir0.Module, opts Options) int {
	ev := newEvaluator(m, opts)
	globals := m.Globals()
	for i := range globals {
		g := &globals[i]
		v, err := ev.eval(g.Expr)
		if lim := reportLimit(opts.Reporter, g.Name, g, err); lim {
			return 1
		}
		if err == nil {
			g.Expr = v
		}
		if g.Err == nil {
			continue
		}
		ve, err := ev.eval(g.Err)
		if lim := reportLimit(opts.Reporter, g.Name, g, err); lim {
			return 1
		}
		if err == nil {
			if isVoid(ve) {
				g.Err = nil
			} else {
				g.Err = ve
			}
		}
	}
	return 0
}

func reportLimit(rep diag.Reporter, name string, g *ir0.Global, err error) bool {
	var lim *limitError
	if !errors.As(err, &lim) {
		return false
	}
	b := diag.ReportError(rep, lim.code, g.Span,
		fmt.Sprintf("%s while elaborating %q; the recursion likely never reaches its base case", lim.msg, name))
	chain := lim.chain
	if len(chain) > 8 {
		chain = chain[len(chain)-8:]
	}
	for _, c := range chain {
		b.WithNote(g.Span, "while instantiating "+c)
	}
	b.Emit()
	return true
}

func (ev *evaluator) eval(e *ir0.Expr) (*ir0.Expr, error) {
	return ev.evalExpr(e, nil, 0)
}

func (ev *evaluator) evalExpr(e *ir0.Expr, env map[string]*ir0.Expr, depth int) (*ir0.Expr, error) {
	switch e.Kind {
	case ir0.ExprLitBool, ir0.ExprLitInt, ir0.ExprTypeLit, ir0.ExprDeclRef, ir0.ExprGlobalRef:
		return e, nil

	case ir0.ExprParamRef:
		if v := env[e.Name]; v != nil {
			return v, nil
		}
		return nil, errAbstract

	case ir0.ExprPointer:
		x, err := ev.evalExpr(e.X, env, depth)
		if err != nil {
			return nil, err
		}
		return ir0.Pointer(x), nil

	case ir0.ExprNot:
		x, err := ev.evalBool(e.X, env, depth)
		if err != nil {
			return nil, err
		}
		return ir0.LitBool(!x), nil

	case ir0.ExprNeg:
		x, err := ev.evalInt(e.X, env, depth)
		if err != nil {
			return nil, err
		}
		return ir0.LitInt(-x), nil

	case ir0.ExprBin:
		return ev.evalBin(e, env, depth)

	case ir0.ExprInst:
		callee, err := ev.evalExpr(e.X, env, depth)
		if err != nil {
			return nil, err
		}
		args := make([]*ir0.Expr, len(e.Args))
		for i, a := range e.Args {
			if args[i], err = ev.evalExpr(a, env, depth); err != nil {
				return nil, err
			}
		}
		return ir0.Inst(callee, args...), nil

	case ir0.ExprMember:
		return ev.evalMember(e, env, depth)
	}
	return nil, errAbstract
}

func (ev *evaluator) evalBool(e *ir0.Expr, env map[string]*ir0.Expr, depth int) (bool, error) {
	v, err := ev.evalExpr(e, env, depth)
	if err != nil {
		return false, err
	}
	if v.Kind != ir0.ExprLitBool {
		return false, errAbstract
	}
	return v.Bool, nil
}

func (ev *evaluator) evalInt(e *ir0.Expr, env map[string]*ir0.Expr, depth int) (int64, error) {
	v, err := ev.evalExpr(e, env, depth)
	if err != nil {
		return 0, err
	}
	if v.Kind != ir0.ExprLitInt {
		return 0, errAbstract
	}
	return v.Int, nil
}

func (ev *evaluator) evalBin(e *ir0.Expr, env map[string]*ir0.Expr, depth int) (*ir0.Expr, error) {
	x, err := ev.evalExpr(e.X, env, depth)
	if err != nil {
		return nil, err
	}
	y, err := ev.evalExpr(e.Y, env, depth)
	if err != nil {
		return nil, err
	}
	if x.Kind == ir0.ExprLitInt && y.Kind == ir0.ExprLitInt {
		a, b := x.Int, y.Int
		switch e.Op {
		case ir0.OpAdd:
			return ir0.LitInt(a + b), nil
		case ir0.OpSub:
			return ir0.LitInt(a - b), nil
		case ir0.OpMul:
			return ir0.LitInt(a * b), nil
		case ir0.OpDiv:
			if b == 0 {
				return nil, errAbstract
			}
			return ir0.LitInt(a / b), nil
		case ir0.OpMod:
			if b == 0 {
				return nil, errAbstract
			}
			return ir0.LitInt(a % b), nil
		case ir0.OpEq:
			return ir0.LitBool(a == b), nil
		case ir0.OpNe:
			return ir0.LitBool(a != b), nil
		case ir0.OpLt:
			return ir0.LitBool(a < b), nil
		case ir0.OpLe:
			return ir0.LitBool(a <= b), nil
		case ir0.OpGt:
			return ir0.LitBool(a > b), nil
		case ir0.OpGe:
			return ir0.LitBool(a >= b), nil
		}
	}
	if x.Kind == ir0.ExprLitBool && y.Kind == ir0.ExprLitBool {
		switch e.Op {
		case ir0.OpEq:
			return ir0.LitBool(x.Bool == y.Bool), nil
		case ir0.OpNe:
			return ir0.LitBool(x.Bool != y.Bool), nil
		}
	}
	return nil, errAbstract
}

func (ev *evaluator) evalMember(e *ir0.Expr, env map[string]*ir0.Expr, depth int) (*ir0.Expr, error) {
	x, err := ev.evalExpr(e.X, env, depth)
	if err != nil {
		return nil, err
	}
	if x.Kind != ir0.ExprInst {
		return nil, errAbstract
	}
	if name := calleeName(ev.m, x.X); name == "std::is_same" && len(x.Args) == 2 {
		return ir0.LitBool(ev.equal(x.Args[0], x.Args[1])), nil
	}
	d := ev.calleeDecl(x.X)
	if d == nil || d.IsError {
		return nil, errAbstract
	}
	binds, err := ev.elaborateInst(d, x.Args, depth)
	if err != nil {
		return nil, err
	}
	for _, b := range binds {
		if b.Name == e.Name {
			return b.Expr, nil
		}
	}
	if e.Name == ir0.MemberError {
		return voidType(), nil
	}
	return nil, errAbstract
}

func (ev *evaluator) calleeDecl(callee *ir0.Expr) *ir0.Decl {
	switch callee.Kind {
	case ir0.ExprDeclRef:
		return ev.m.Decl(callee.Decl)
	case ir0.ExprGlobalRef:
		return ev.m.ByName(callee.Name)
	}
	return nil
}

func calleeName(m *ir0.Module, callee *ir0.Expr) string {
	switch callee.Kind {
	case ir0.ExprDeclRef:
		return m.Decl(callee.Decl).Name
	case ir0.ExprGlobalRef:
		return callee.Name
	}
	return ""
}

// elaborateInst evaluates one instantiation's bindings, memoized on the
// canonical instantiation key so identical sub-computations are elaborated
// once per compilation.
func (ev *evaluator) elaborateInst(d *ir0.Decl, args []*ir0.Expr, depth int) ([]ir0.Binding, error) {
	var sb strings.Builder
	sb.WriteString(d.Name)
	sb.WriteByte('<')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		ev.m.WriteExpr(&sb, a)
	}
	sb.WriteByte('>')
	key := sb.String()

	if binds, ok := ev.memo[key]; ok {
		return binds, nil
	}
	if ev.busy[key] {
		return nil, &limitError{
			code:  diag.InstDepthExceeded,
			msg:   "self-referential instantiation " + key,
			chain: append([]string(nil), ev.chain...),
		}
	}
	if depth+1 > ev.maxDepth {
		return nil, &limitError{
			code:  diag.InstDepthExceeded,
			msg:   fmt.Sprintf("instantiation depth limit (%d) exceeded", ev.maxDepth),
			chain: append([]string(nil), ev.chain...),
		}
	}
	ev.count++
	if ev.count > ev.maxInsts {
		return nil, &limitError{
			code:  diag.InstCountExceeded,
			msg:   fmt.Sprintf("instantiation count limit (%d) exceeded", ev.maxInsts),
			chain: append([]string(nil), ev.chain...),
		}
	}

	ev.busy[key] = true
	ev.chain = append(ev.chain, key)
	defer func() {
		delete(ev.busy, key)
		ev.chain = ev.chain[:len(ev.chain)-1]
	}()

	var binds []ir0.Binding
	var err error
	if d.Builtin {
		binds, err = ev.intrinsic(d, args, depth+1)
	} else {
		binds, err = ev.elaborateBody(d, args, depth+1)
	}
	if err != nil {
		return nil, err
	}
	ev.memo[key] = binds
	return binds, nil
}

func (ev *evaluator) elaborateBody(d *ir0.Decl, args []*ir0.Expr, depth int) ([]ir0.Binding, error) {
	spec, env := ev.matchSpec(d, args)
	if spec == nil {
		return nil, errAbstract
	}
	out := make([]ir0.Binding, 0, len(spec.Body))
	for _, b := range spec.Body {
		v, err := ev.evalExpr(b.Expr, env, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, ir0.Binding{Name: b.Name, IsType: b.IsType, Expr: v})
	}
	return out, nil
}

// matchSpec picks the first specialization whose patterns match, falling
// back to the main definition. Generated specializations are disjoint, so
// first-match is the same as most-specialized.
func (ev *evaluator) matchSpec(d *ir0.Decl, args []*ir0.Expr) (*ir0.Spec, map[string]*ir0.Expr) {
	for _, s := range d.Specs {
		if len(s.Patterns) != len(args) {
			continue
		}
		env := make(map[string]*ir0.Expr)
		ok := true
		for i, pat := range s.Patterns {
			if !ev.matchPattern(pat, args[i], env) {
				ok = false
				break
			}
		}
		if ok {
			return s, env
		}
	}
	if d.Main == nil || len(d.Main.Params) != len(args) {
		return nil, nil
	}
	env := make(map[string]*ir0.Expr, len(args))
	for i, p := range d.Main.Params {
		env[p.Name] = args[i]
	}
	return d.Main, env
}

func (ev *evaluator) matchPattern(pat, arg *ir0.Expr, env map[string]*ir0.Expr) bool {
	switch pat.Kind {
	case ir0.ExprParamRef:
		env[pat.Name] = arg
		return true
	case ir0.ExprLitBool:
		return arg.Kind == ir0.ExprLitBool && arg.Bool == pat.Bool
	case ir0.ExprLitInt:
		return arg.Kind == ir0.ExprLitInt && arg.Int == pat.Int
	case ir0.ExprTypeLit:
		return ev.equal(pat, arg)
	}
	return false
}

func (ev *evaluator) equal(a, b *ir0.Expr) bool {
	return ev.m.ExprString(a) == ev.m.ExprString(b)
}

func voidType() *ir0.Expr { return ir0.TypeLit("void") }

func isVoid(e *ir0.Expr) bool {
	return e != nil && e.Kind == ir0.ExprTypeLit && e.Name == "void"
}
