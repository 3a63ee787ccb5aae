package lower

import (
	"fmt"

	"pyrite/internal/diag"
	"pyrite/internal/ir0"
	"pyrite/internal/ir1"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

// Options configures lowering.
type Options struct {
	Reporter diag.Reporter
}

// Result reports what lowering produced. Errors counts rejected inputs:
// inexpressible IR1 constructs (a compiler defect) and ambiguous base-case
// patterns (a source error). Either aborts the module.
type Result struct {
	Errors int
}

// Lower translates an IR1 module into template declarations appended to m.
// The declaration arena must already hold the contract declarations (see
// builtins.NewModule); lowered bodies reference them by name.
func Lower(in *ir1.Module, m *ir0.Module, opts Options) Result {
	lo := &lowerer{
		in:   in,
		out:  m,
		rep:  opts.Reporter,
		fns:  make(map[string]ir0.DeclID),
		errs: make(map[string]ir0.DeclID),
	}
	if lo.rep == nil {
		lo.rep = diag.NopReporter{}
	}

	// Declarations first so bodies can reference functions defined later.
	for _, fn := range in.Funcs {
		d := m.New(lo.uniqueName(fn.Name))
		d.Origin = fn.Name
		lo.fns[fn.Name] = d.ID
	}
	for _, fn := range in.Funcs {
		lo.lowerFn(fn)
	}
	for _, g := range in.Globals {
		lo.lowerGlobal(g)
	}
	return Result{Errors: lo.nerr}
}

type lowerer struct {
	in   *ir1.Module
	out  *ir0.Module
	rep  diag.Reporter
	nerr int

	fns  map[string]ir0.DeclID // IR1 function name -> declaration
	errs map[string]ir0.DeclID // error message -> holder declaration

	// Current function context, used by branch-dispatch helpers.
	curName   string
	curParams []ir1.Param
	nhelpers  int
}

func (lo *lowerer) internal(sp source.Span, format string, args ...any) {
	lo.nerr++
	diag.ReportError(lo.rep, diag.LowerInexpressible, sp,
		"internal: "+fmt.Sprintf(format, args...)).
		WithNote(source.Span{}, "this is a compiler defect, not an error in the source program").
		Emit()
}

// ambiguousSpec rejects a repeated base-case pattern: two specializations on
// the same (parameter, literal) pair would redefine one template.
func (lo *lowerer) ambiguousSpec(sp source.Span, param, lit string, first source.Span) {
	lo.nerr++
	diag.ReportError(lo.rep, diag.LowerAmbiguousSpec, sp,
		fmt.Sprintf("duplicate base case: %s == %s already has a specialization", param, lit)).
		WithNote(first, "first matched here").
		Emit()
}

// uniqueName keeps generated names disjoint from the contract's and from
// each other. Source identifiers that collide get a numeric suffix, always
// in declaration order, so renaming is deterministic.
func (lo *lowerer) uniqueName(base string) string {
	if lo.out.ByName(base) == nil {
		return base
	}
	for i := 2; ; i++ {
		name := fmt.Sprintf("%s%d", base, i)
		if lo.out.ByName(name) == nil {
			return name
		}
	}
}

// errorDecl returns the holder declaration for an error message, creating it
// on first use. The holder is a one-parameter template with an empty body;
// the message itself is emitted in the module's error-check specialization.
func (lo *lowerer) errorDecl(msg string) ir0.DeclID {
	if id, ok := lo.errs[msg]; ok {
		return id
	}
	d := lo.out.New(lo.uniqueName(fmt.Sprintf("Error%d", len(lo.errs)+1)))
	d.IsError = true
	d.ErrorMessage = msg
	d.Params = []ir0.Param{{Name: "T", Kind: ir0.PKType}}
	d.ResultIsType = true
	lo.errs[msg] = d.ID
	return d.ID
}

// paramKind maps a source kind onto a template parameter kind.
func paramKind(k *types.Kind) ir0.ParamKind {
	switch k.Fam {
	case types.FamBool:
		return ir0.PKBool
	case types.FamInt64:
		return ir0.PKInt64
	case types.FamFn:
		return ir0.PKTemplate
	default:
		return ir0.PKType
	}
}

func toParam(p ir1.Param) ir0.Param {
	out := ir0.Param{Name: p.Name, Kind: paramKind(p.Kind)}
	if out.Kind == ir0.PKTemplate {
		for _, pk := range p.Kind.Params {
			out.TemplateArgs = append(out.TemplateArgs, paramKind(pk))
		}
	}
	return out
}

// resultIsType reports whether a kind lives in the type member rather than
// the value member. The error kind counts as a type: its channel carries
// holder types.
func resultIsType(k *types.Kind) bool {
	switch k.Fam {
	case types.FamBool, types.FamInt64:
		return false
	default:
		return true
	}
}

func memberFor(k *types.Kind) string {
	if resultIsType(k) {
		return ir0.MemberType
	}
	return ir0.MemberValue
}

// famName names the contract family for an element kind.
func famName(k *types.Kind) string {
	switch k.Fam {
	case types.FamBool:
		return "Bool"
	case types.FamInt64:
		return "Int64"
	default:
		return "Type"
	}
}

func listTemplate(elem *types.Kind) string {
	switch elem.Fam {
	case types.FamBool:
		return "BoolList"
	case types.FamInt64:
		return "Int64List"
	default:
		return "List"
	}
}

func (lo *lowerer) lowerGlobal(g *ir1.Global) {
	lo.curName = g.Name
	lo.curParams = nil
	lo.nhelpers = 0

	var errs []*ir0.Expr
	env := map[string]*ir0.Expr{}
	v := lo.lowerExpr(g.Value, env, &errs)
	out := ir0.Global{
		Name:   g.Name,
		Span:   g.Span,
		IsType: resultIsType(g.Kind),
		Expr:   v,
	}
	if len(errs) > 0 {
		out.Err = errJoin(errs)
	}
	lo.out.AddGlobal(out)
}

// errJoin folds the collected error-channel expressions into one, preserving
// left-to-right order.
func errJoin(errs []*ir0.Expr) *ir0.Expr {
	switch len(errs) {
	case 0:
		return ir0.TypeLit("void")
	case 1:
		return errs[0]
	default:
		return ir0.Member(ir0.Inst(ir0.GlobalRef("GetFirstError"), errs...), ir0.MemberType)
	}
}
