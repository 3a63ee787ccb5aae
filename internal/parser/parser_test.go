package parser

import (
	"testing"

	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/lexer"
	"pyrite/internal/source"
)

func parse(t *testing.T, src string, rep diag.Reporter) Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pyr", []byte(src))
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	return ParseFile(id, lx, Options{Reporter: rep})
}

func mustParse(t *testing.T, src string) *ast.Builder {
	t.Helper()
	bag := diag.NewBag(16)
	res := parse(t, src, diag.BagReporter{Bag: bag})
	if res.Errors > 0 {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	return res.Builder
}

func TestParseFunction(t *testing.T) {
	b := mustParse(t, "def add(x: int, y: int) -> int:\n    return x + y\n")
	if len(b.Module.Items) != 1 || b.Module.Items[0].Kind != ast.ItemFn {
		t.Fatalf("expected one function item, got %v", b.Module.Items)
	}
	fn := b.Fn(b.Module.Items[0].Fn)
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("got %q with %d params", fn.Name, len(fn.Params))
	}
	if fn.Params[0].Name != "x" || fn.Params[1].Name != "y" {
		t.Fatalf("params: %v", fn.Params)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("body: %d statements", len(fn.Body))
	}
	st := b.Stmt(fn.Body[0])
	if st.Kind != ast.StmtReturn {
		t.Fatalf("expected a return, got %v", st.Kind)
	}
	if b.Expr(st.Value).Kind != ast.ExprBinary {
		t.Fatalf("return value: %v", b.Expr(st.Value).Kind)
	}
}

func TestParseGlobalBinding(t *testing.T) {
	b := mustParse(t, "answer = 42\n")
	if len(b.Module.Items) != 1 || b.Module.Items[0].Kind != ast.ItemGlobal {
		t.Fatalf("expected one global item")
	}
	g := b.Global(b.Module.Items[0].Global)
	if g.Name != "answer" {
		t.Fatalf("got %q", g.Name)
	}
	if b.Expr(g.Value).Kind != ast.ExprIntLit || b.Expr(g.Value).IntVal != 42 {
		t.Fatalf("value: %+v", b.Expr(g.Value))
	}
}

func TestParseIfElseStatement(t *testing.T) {
	src := "def f(n: int) -> int:\n" +
		"    if n == 0:\n" +
		"        return 1\n" +
		"    else:\n" +
		"        return n\n"
	b := mustParse(t, src)
	fn := b.Fn(b.Module.Items[0].Fn)
	st := b.Stmt(fn.Body[0])
	if st.Kind != ast.StmtIf {
		t.Fatalf("expected if, got %v", st.Kind)
	}
	if len(st.Then) != 1 || len(st.Else) != 1 {
		t.Fatalf("branches: then=%d else=%d", len(st.Then), len(st.Else))
	}
}

func TestParseConditionalExpression(t *testing.T) {
	b := mustParse(t, "def f(b: bool) -> int:\n    return 1 if b else 2\n")
	fn := b.Fn(b.Module.Items[0].Fn)
	v := b.Expr(b.Stmt(fn.Body[0]).Value)
	if v.Kind != ast.ExprIf {
		t.Fatalf("expected a conditional expression, got %v", v.Kind)
	}
}

func TestParseContainerLiterals(t *testing.T) {
	b := mustParse(t, "xs = [1, 2, 3]\nys = {1, 2}\n")
	xs := b.Expr(b.Global(b.Module.Items[0].Global).Value)
	if xs.Kind != ast.ExprList || len(xs.Elems) != 3 {
		t.Fatalf("list: %+v", xs)
	}
	ys := b.Expr(b.Global(b.Module.Items[1].Global).Value)
	if ys.Kind != ast.ExprSet || len(ys.Elems) != 2 {
		t.Fatalf("set: %+v", ys)
	}
}

func TestParseCallableAnnotation(t *testing.T) {
	b := mustParse(t, "def apply(f: Callable[[int], int], n: int) -> int:\n    return f(n)\n")
	fn := b.Fn(b.Module.Items[0].Fn)
	ty := b.Type(fn.Params[0].Type)
	if ty.Kind != ast.TypeSynCallable || len(ty.Params) != 1 {
		t.Fatalf("annotation: %+v", ty)
	}
}

func TestParseListAnnotation(t *testing.T) {
	b := mustParse(t, "def head(xs: List[Type]) -> Type:\n    return first(xs)\n")
	fn := b.Fn(b.Module.Items[0].Fn)
	ty := b.Type(fn.Params[0].Type)
	if ty.Kind != ast.TypeSynList {
		t.Fatalf("annotation: %+v", ty)
	}
	if b.Type(ty.Elem).Name != "Type" {
		t.Fatalf("element: %+v", b.Type(ty.Elem))
	}
}

func TestComparisonIsNonAssociative(t *testing.T) {
	bag := diag.NewBag(16)
	res := parse(t, "x = 1 < 2 < 3\n", diag.BagReporter{Bag: bag})
	if res.Errors == 0 {
		t.Fatalf("expected a syntax error for chained comparison")
	}
}

func TestEmptyContainerRejected(t *testing.T) {
	bag := diag.NewBag(16)
	res := parse(t, "xs = []\n", diag.BagReporter{Bag: bag})
	if res.Errors == 0 {
		t.Fatalf("expected an error")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynEmptyContainer {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %v, got %v", diag.SynEmptyContainer, bag.Items())
	}
}

func TestUnexpectedTopLevelRecovers(t *testing.T) {
	bag := diag.NewBag(16)
	src := "return 1\nx = 2\n"
	res := parse(t, src, diag.BagReporter{Bag: bag})
	if res.Errors == 0 {
		t.Fatalf("expected an error")
	}
	if bag.Items()[0].Code != diag.SynUnexpectedTopLevel {
		t.Fatalf("got %v", bag.Items()[0].Code)
	}
	// the parser resynchronizes and still picks up the following binding
	if len(res.Builder.Module.Items) != 1 {
		t.Fatalf("expected recovery to keep one item, got %d", len(res.Builder.Module.Items))
	}
}

func TestMissingArrowReported(t *testing.T) {
	bag := diag.NewBag(16)
	res := parse(t, "def f(x: int):\n    return x\n", diag.BagReporter{Bag: bag})
	if res.Errors == 0 {
		t.Fatalf("expected an error")
	}
	if bag.Items()[0].Code != diag.SynExpectArrow {
		t.Fatalf("got %v", bag.Items()[0].Code)
	}
}

func TestEmptyBlockRejected(t *testing.T) {
	bag := diag.NewBag(16)
	res := parse(t, "def f(x: int) -> int:\n    pass\n", diag.BagReporter{Bag: bag})
	if res.Errors == 0 {
		t.Fatalf("expected an error")
	}
}
