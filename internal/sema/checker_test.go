package sema

import (
	"testing"

	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/lexer"
	"pyrite/internal/parser"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

func check(t *testing.T, src string) (*ast.Builder, *types.Interner, *Info, *diag.Bag, uint) {
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
	info, nerr := Check(pres.Builder, in, rep)
	return pres.Builder, in, info, bag, nerr
}

func firstCode(t *testing.T, bag *diag.Bag) diag.Code {
	t.Helper()
	if len(bag.Items()) == 0 {
		t.Fatalf("expected diagnostics")
	}
	return bag.Items()[0].Code
}

func TestWellTypedProgram(t *testing.T) {
	src := "def double(n: int) -> int:\n" +
		"    return n + n\n" +
		"x = double(21)\n"
	b, in, info, bag, nerr := check(t, src)
	if nerr != 0 {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	fnID := b.Module.Items[0].Fn
	sig := info.Fns[fnID]
	if sig == nil || sig.Fam != types.FamFn {
		t.Fatalf("missing signature")
	}
	if sig.Result != in.Int64() {
		t.Fatalf("result kind: %s", sig.Result)
	}
	gk := info.Globals[b.Module.Items[1].Global]
	if gk != in.Int64() {
		t.Fatalf("global kind: %s", gk)
	}
}

func TestRecursiveCallIsAllowed(t *testing.T) {
	src := "def fact(n: int) -> int:\n" +
		"    if n == 0:\n" +
		"        return 1\n" +
		"    return n * fact(n - 1)\n"
	_, _, _, bag, nerr := check(t, src)
	if nerr != 0 {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestReturnMismatch(t *testing.T) {
	_, _, _, bag, nerr := check(t, "def f(n: int) -> bool:\n    return n\n")
	if nerr == 0 {
		t.Fatalf("expected an error")
	}
	if c := firstCode(t, bag); c != diag.TypeReturnMismatch {
		t.Fatalf("got %v", c)
	}
}

func TestConditionMustBeBool(t *testing.T) {
	src := "def f(n: int) -> int:\n" +
		"    if n:\n" +
		"        return 1\n" +
		"    return 0\n"
	_, _, _, bag, nerr := check(t, src)
	if nerr == 0 {
		t.Fatalf("expected an error")
	}
	if c := firstCode(t, bag); c != diag.TypeCondNotBool {
		t.Fatalf("got %v", c)
	}
}

func TestUndefinedName(t *testing.T) {
	_, _, _, bag, nerr := check(t, "x = missing\n")
	if nerr == 0 {
		t.Fatalf("expected an error")
	}
	if c := firstCode(t, bag); c != diag.TypeUndefinedName {
		t.Fatalf("got %v", c)
	}
}

func TestMissingReturnOnSomePath(t *testing.T) {
	src := "def f(b: bool) -> int:\n" +
		"    if b:\n" +
		"        return 1\n" +
		"    x = 2\n"
	_, _, _, bag, nerr := check(t, src)
	if nerr == 0 {
		t.Fatalf("expected an error")
	}
	if c := firstCode(t, bag); c != diag.TypeMissingReturn {
		t.Fatalf("got %v", c)
	}
}

func TestBranchKindMismatch(t *testing.T) {
	_, _, _, bag, nerr := check(t, "def f(b: bool) -> int:\n    return 1 if b else True\n")
	if nerr == 0 {
		t.Fatalf("expected an error")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.TypeBranchMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %v, got %v", diag.TypeBranchMismatch, bag.Items())
	}
}

func TestRebindingRejected(t *testing.T) {
	src := "def f(n: int) -> int:\n" +
		"    x = 1\n" +
		"    x = 2\n" +
		"    return x\n"
	_, _, _, bag, nerr := check(t, src)
	if nerr == 0 {
		t.Fatalf("expected an error")
	}
	if c := firstCode(t, bag); c != diag.TypeRedefinedName {
		t.Fatalf("got %v", c)
	}
}

func TestErrorKindSatisfiesAnyPosition(t *testing.T) {
	src := "def f(n: int) -> int:\n" +
		"    if n == 0:\n" +
		"        return error(\"n must be positive\")\n" +
		"    return n\n"
	b, _, info, bag, nerr := check(t, src)
	if nerr != 0 {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if !info.CanFail[b.Module.Items[0].Fn] {
		t.Fatalf("function should be marked fallible")
	}
}

func TestFallibilityPropagatesThroughCalls(t *testing.T) {
	src := "def inner(n: int) -> int:\n" +
		"    if n == 0:\n" +
		"        return error(\"zero\")\n" +
		"    return n\n" +
		"def outer(n: int) -> int:\n" +
		"    return inner(n)\n"
	b, _, info, bag, nerr := check(t, src)
	if nerr != 0 {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if !info.CanFail[b.Module.Items[1].Fn] {
		t.Fatalf("caller of a fallible function should be fallible")
	}
}

func TestIntrinsicArityChecked(t *testing.T) {
	_, _, _, bag, nerr := check(t, "x = concat([1])\n")
	if nerr == 0 {
		t.Fatalf("expected an error")
	}
	if c := firstCode(t, bag); c != diag.TypeArgMismatch {
		t.Fatalf("got %v", c)
	}
}

func TestTransformSignatureChecked(t *testing.T) {
	src := "def id2(a: int, b: int) -> int:\n" +
		"    return a\n" +
		"xs = transform([1, 2], id2)\n"
	_, _, _, bag, nerr := check(t, src)
	if nerr == 0 {
		t.Fatalf("expected an arity error for the element function")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.TypeArgMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("got %v", bag.Items())
	}
}

func TestContainerElementsMustAgree(t *testing.T) {
	_, _, _, bag, nerr := check(t, "xs = [1, True]\n")
	if nerr == 0 {
		t.Fatalf("expected an error")
	}
	if c := firstCode(t, bag); c != diag.TypeBadElement {
		t.Fatalf("got %v", c)
	}
}

func TestGlobalCannotHoldFunction(t *testing.T) {
	src := "def f(n: int) -> int:\n" +
		"    return n\n" +
		"g = f\n"
	_, _, _, bag, nerr := check(t, src)
	if nerr == 0 {
		t.Fatalf("expected an error")
	}
	_ = bag
}
