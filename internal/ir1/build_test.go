package ir1

import (
	"testing"

	"pyrite/internal/diag"
	"pyrite/internal/lexer"
	"pyrite/internal/parser"
	"pyrite/internal/sema"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

func build(t *testing.T, src string) *Module {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pyr", []byte(src))
	bag := diag.NewBag(16)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	pres := parser.ParseFile(id, lx, parser.Options{Reporter: rep})
	if pres.Errors > 0 {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	in := types.NewInterner()
	info, nerr := sema.Check(pres.Builder, in, rep)
	if nerr > 0 {
		t.Fatalf("type errors: %v", bag.Items())
	}
	m, err := Build("test", pres.Builder, info, in)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return m
}

func TestFunctionBodyBecomesOneExpression(t *testing.T) {
	m := build(t, "def double(n: int) -> int:\n    return n + n\n")
	fn := m.Func("double")
	if fn == nil {
		t.Fatalf("function missing")
	}
	if fn.Body.Kind != ExprPrim || fn.Body.Prim != PrimAdd {
		t.Fatalf("body: %s %s", fn.Body.Kind, fn.Body.Prim)
	}
	for _, a := range fn.Body.Args {
		if a.Kind != ExprVarRef || a.Name != "n" {
			t.Fatalf("operand: %+v", a)
		}
	}
}

func TestIfStatementFoldsIntoConditional(t *testing.T) {
	src := "def f(n: int) -> int:\n" +
		"    if n == 0:\n" +
		"        return 1\n" +
		"    return n\n"
	m := build(t, src)
	body := m.Func("f").Body
	if body.Kind != ExprCond {
		t.Fatalf("body: %s", body.Kind)
	}
	if body.Cond.Prim != PrimEq {
		t.Fatalf("cond: %s", body.Cond.Prim)
	}
	if body.Then.Kind != ExprConst || body.Then.Const.Int != 1 {
		t.Fatalf("then: %+v", body.Then)
	}
	if body.Else.Kind != ExprVarRef {
		t.Fatalf("else: %+v", body.Else)
	}
}

func TestAssignmentSubstitutesIntoUses(t *testing.T) {
	src := "def f(n: int) -> int:\n" +
		"    m = n + 1\n" +
		"    return m * m\n"
	m := build(t, src)
	body := m.Func("f").Body
	if body.Prim != PrimMul {
		t.Fatalf("body: %s", body.Prim)
	}
	// both uses resolve to the same shared subtree
	if body.Args[0] != body.Args[1] {
		t.Fatalf("expected shared substitution")
	}
	if body.Args[0].Prim != PrimAdd {
		t.Fatalf("bound value: %s", body.Args[0].Prim)
	}
}

func TestRecursiveCallKeepsName(t *testing.T) {
	src := "def count(n: int) -> int:\n" +
		"    if n == 0:\n" +
		"        return 0\n" +
		"    return count(n - 1) + 1\n"
	m := build(t, src)
	body := m.Func("count").Body
	call := body.Else.Args[0]
	if call.Kind != ExprCall || call.Name != "count" || call.CalleeVar {
		t.Fatalf("recursive call: %+v", call)
	}
}

func TestHigherOrderArgumentBecomesFnRef(t *testing.T) {
	src := "def inc(n: int) -> int:\n" +
		"    return n + 1\n" +
		"xs = transform([1, 2], inc)\n"
	m := build(t, src)
	g := m.Globals[0]
	if g.Value.Prim != PrimTransform {
		t.Fatalf("global: %s", g.Value.Prim)
	}
	f := g.Value.Args[1]
	if f.Kind != ExprFnRef || f.Name != "inc" {
		t.Fatalf("function argument: %+v", f)
	}
}

func TestContainerLiteralsTagElementKind(t *testing.T) {
	m := build(t, "xs = [type(\"int\"), type(\"bool\")]\nys = {1, 2}\n")
	xs := m.Globals[0].Value
	if xs.Prim != PrimListLit || len(xs.Args) != 2 {
		t.Fatalf("list literal: %+v", xs)
	}
	if xs.Result.Fam != types.FamList || xs.Result.Elem.Fam != types.FamType {
		t.Fatalf("list kind: %s", xs.Result)
	}
	ys := m.Globals[1].Value
	if ys.Prim != PrimSetLit || ys.Result.Fam != types.FamSet {
		t.Fatalf("set literal: %+v", ys)
	}
}

func TestBooleanOperatorsDesugarToConditionals(t *testing.T) {
	m := build(t, "def f(a: bool, b: bool) -> bool:\n    return a and b\n")
	body := m.Func("f").Body
	if body.Kind != ExprCond {
		t.Fatalf("'and' should lower to a conditional, got %s", body.Kind)
	}
	if body.Else.Kind != ExprConst || body.Else.Const.Bool {
		t.Fatalf("short-circuit arm: %+v", body.Else)
	}
}

func TestSetComparisonDesugarsToSetEquals(t *testing.T) {
	m := build(t, "x = {1, 2} == {2, 1}\n")
	v := m.Globals[0].Value
	if v.Prim != PrimSetEquals {
		t.Fatalf("got %s", v.Prim)
	}
}

func TestMembershipPicksContainerFamily(t *testing.T) {
	m := build(t, "a = 1 in [1, 2]\nb = 1 in {1, 2}\n")
	if m.Globals[0].Value.Prim != PrimIsInList {
		t.Fatalf("list membership: %s", m.Globals[0].Value.Prim)
	}
	if m.Globals[1].Value.Prim != PrimIsInSet {
		t.Fatalf("set membership: %s", m.Globals[1].Value.Prim)
	}
}

func TestErrorLiteralCarriesMessage(t *testing.T) {
	src := "def f(n: int) -> int:\n" +
		"    if n == 0:\n" +
		"        return error(\"denominator is zero\")\n" +
		"    return 10 // n\n"
	m := build(t, src)
	fn := m.Func("f")
	if !fn.CanFail {
		t.Fatalf("function should be fallible")
	}
	errExpr := fn.Body.Then
	if errExpr.Prim != PrimErrorLit || errExpr.Name != "denominator is zero" {
		t.Fatalf("error literal: %+v", errExpr)
	}
}
