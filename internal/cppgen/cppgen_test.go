package cppgen

import (
	"strings"
	"testing"

	"pyrite/internal/ir0"
)

// factorial builds the module a small recursive function lowers to: a main
// definition, a base-case specialization and one type-kind global.
func factorial() *ir0.Module {
	m := ir0.NewModule()
	d := m.New("fact")
	d.Origin = "fact"
	d.Public = true
	d.Params = []ir0.Param{{Name: "n", Kind: ir0.PKInt64}}
	d.HasError = true
	d.Main = &ir0.Spec{
		Params: d.Params,
		Body: []ir0.Binding{
			{Name: ir0.MemberValue, Expr: ir0.Bin(ir0.OpMul,
				ir0.ParamRef("n"),
				ir0.Member(ir0.Inst(ir0.DeclRef(d.ID), ir0.Bin(ir0.OpSub, ir0.ParamRef("n"), ir0.LitInt(1))), ir0.MemberValue))},
			{Name: ir0.MemberError, IsType: true,
				Expr: ir0.Member(ir0.Inst(ir0.DeclRef(d.ID), ir0.Bin(ir0.OpSub, ir0.ParamRef("n"), ir0.LitInt(1))), ir0.MemberError)},
		},
	}
	d.Specs = []*ir0.Spec{{
		Patterns: []*ir0.Expr{ir0.LitInt(0)},
		Body: []ir0.Binding{
			{Name: ir0.MemberValue, Expr: ir0.LitInt(1)},
			{Name: ir0.MemberError, IsType: true, Expr: ir0.TypeLit("void")},
		},
	}}
	m.AddGlobal(ir0.Global{
		Name: "f5",
		Expr: ir0.Member(ir0.Inst(ir0.DeclRef(d.ID), ir0.LitInt(5)), ir0.MemberValue),
		Err:  ir0.Member(ir0.Inst(ir0.DeclRef(d.ID), ir0.LitInt(5)), ir0.MemberError),
	})
	return m
}

func TestRuntimeIncludeComesFirst(t *testing.T) {
	out := Generate(factorial(), Options{HeaderLines: []string{"generated", "do not edit"}})
	if !strings.HasPrefix(out, "// generated\n// do not edit\n\n#include <pyrite/pyrite.h>\n") {
		t.Fatalf("preamble wrong:\n%s", out)
	}
}

func TestForwardDeclarationsPrecedeDefinitions(t *testing.T) {
	out := Generate(factorial(), Options{})
	fwd := strings.Index(out, "struct fact;")
	def := strings.Index(out, "struct fact {")
	if fwd < 0 || def < 0 || fwd > def {
		t.Fatalf("fwd=%d def=%d:\n%s", fwd, def, out)
	}
}

func TestSpecializationRendersPatterns(t *testing.T) {
	out := Generate(factorial(), Options{})
	if !strings.Contains(out, "template <int64_t n>\nstruct fact {") {
		t.Fatalf("main definition missing:\n%s", out)
	}
	if !strings.Contains(out, "struct fact<0> {") {
		t.Fatalf("base-case specialization missing:\n%s", out)
	}
}

func TestTypeMembersGetTypename(t *testing.T) {
	out := Generate(factorial(), Options{})
	if !strings.Contains(out, "using error = typename fact<(n - 1)>::error;") {
		t.Fatalf("type member access missing typename:\n%s", out)
	}
	if !strings.Contains(out, "static constexpr auto value = (n * fact<(n - 1)>::value);") {
		t.Fatalf("value member rendered wrong:\n%s", out)
	}
	if strings.Contains(out, "typename fact<(n - 1)>::value") {
		t.Fatalf("value member must not take typename:\n%s", out)
	}
}

func TestGlobalsRenderByKind(t *testing.T) {
	m := ir0.NewModule()
	m.AddGlobal(ir0.Global{Name: "result", IsType: true,
		Expr: ir0.Pointer(ir0.Pointer(ir0.Pointer(ir0.TypeLit("int"))))})
	m.AddGlobal(ir0.Global{Name: "answer", Expr: ir0.LitInt(42)})
	out := Generate(m, Options{})
	if !strings.Contains(out, "using result = int***;\n") {
		t.Fatalf("type global wrong:\n%s", out)
	}
	if !strings.Contains(out, "static constexpr auto answer = 42;\n") {
		t.Fatalf("value global wrong:\n%s", out)
	}
}

func TestErrorHolderEmitsStaticAssert(t *testing.T) {
	m := ir0.NewModule()
	h := m.New("Error1")
	h.IsError = true
	h.ErrorMessage = "negative input"
	h.ResultIsType = true
	h.Params = []ir0.Param{{Name: "T", Kind: ir0.PKType}}
	m.AddGlobal(ir0.Global{
		Name: "checked",
		Expr: ir0.LitInt(0),
		Err:  ir0.Inst(ir0.DeclRef(h.ID), ir0.TypeLit("void")),
	})
	out := Generate(m, Options{})

	if !strings.Contains(out, "struct Error1 {};") {
		t.Fatalf("holder definition missing:\n%s", out)
	}
	if !strings.Contains(out, "struct PyriteCheckError<Error1<T>> {") {
		t.Fatalf("check specialization missing:\n%s", out)
	}
	if !strings.Contains(out, "static_assert(Select1stBoolType<false, T>::value,") {
		t.Fatalf("assert condition wrong:\n%s", out)
	}
	if !strings.Contains(out, `"negative input"`) {
		t.Fatalf("assert message missing:\n%s", out)
	}
	if !strings.Contains(out, "using checkedResultCheck = typename PyriteCheckError<Error1<void>>::type;") {
		t.Fatalf("global error check missing:\n%s", out)
	}
}

func TestKeywordIdentifiersGetSuffix(t *testing.T) {
	m := ir0.NewModule()
	d := m.New("class")
	d.Public = true
	d.Params = []ir0.Param{{Name: "int", Kind: ir0.PKInt64}}
	d.Main = &ir0.Spec{
		Params: d.Params,
		Body: []ir0.Binding{
			{Name: ir0.MemberValue, Expr: ir0.ParamRef("int")},
		},
	}
	out := Generate(m, Options{})
	if !strings.Contains(out, "struct class_;") {
		t.Fatalf("declaration name not mangled:\n%s", out)
	}
	if !strings.Contains(out, "template <int64_t int_>") {
		t.Fatalf("parameter name not mangled:\n%s", out)
	}
	if !strings.Contains(out, "static constexpr auto value = int_;") {
		t.Fatalf("reference not mangled:\n%s", out)
	}
}

func TestTemplateTemplateParameter(t *testing.T) {
	m := ir0.NewModule()
	d := m.New("apply")
	d.Public = true
	d.Params = []ir0.Param{
		{Name: "F", Kind: ir0.PKTemplate, TemplateArgs: []ir0.ParamKind{ir0.PKInt64}},
		{Name: "n", Kind: ir0.PKInt64},
	}
	d.Main = &ir0.Spec{
		Params: d.Params,
		Body: []ir0.Binding{
			{Name: ir0.MemberValue,
				Expr: ir0.Member(ir0.Inst(ir0.ParamRef("F"), ir0.ParamRef("n")), ir0.MemberValue)},
		},
	}
	out := Generate(m, Options{})
	if !strings.Contains(out, "template <template <int64_t> class F, int64_t n>") {
		t.Fatalf("template-template head wrong:\n%s", out)
	}
	if !strings.Contains(out, "F<n>::value") {
		t.Fatalf("invocation wrong:\n%s", out)
	}
}

func TestBuiltinAndDeadDeclarationsAreSkipped(t *testing.T) {
	m := factorial()
	b := m.New("Int64ListSum")
	b.Builtin = true
	dead := m.New("retired")
	dead.Dead = true
	out := Generate(m, Options{})
	if strings.Contains(out, "Int64ListSum") || strings.Contains(out, "retired") {
		t.Fatalf("skipped declarations leaked:\n%s", out)
	}
}

func TestOriginCommentOnRenamedDeclarations(t *testing.T) {
	m := ir0.NewModule()
	d := m.New("GetFirstError2")
	d.Origin = "GetFirstError"
	d.Public = true
	d.Params = []ir0.Param{{Name: "n", Kind: ir0.PKInt64}}
	d.Main = &ir0.Spec{
		Params: d.Params,
		Body:   []ir0.Binding{{Name: ir0.MemberValue, Expr: ir0.ParamRef("n")}},
	}
	out := Generate(m, Options{})
	if !strings.Contains(out, "// from GetFirstError\n") {
		t.Fatalf("origin comment missing:\n%s", out)
	}
}

func TestOutputIsDeterministic(t *testing.T) {
	a := Generate(factorial(), Options{HeaderLines: []string{"x"}})
	b := Generate(factorial(), Options{HeaderLines: []string{"x"}})
	if a != b {
		t.Fatalf("two renders of the same module differ")
	}
}
