package lower

import (
	"strings"
	"testing"

	"pyrite/internal/builtins"
	"pyrite/internal/diag"
	"pyrite/internal/ir0"
	"pyrite/internal/ir1"
	"pyrite/internal/lexer"
	"pyrite/internal/parser"
	"pyrite/internal/sema"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

func lower(t *testing.T, src string) *ir0.Module {
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
	m1, err := ir1.Build("test", pres.Builder, info, in)
	if err != nil {
		t.Fatalf("ir1: %v", err)
	}
	m0 := builtins.NewModule()
	if res := Lower(m1, m0, Options{Reporter: rep}); res.Errors > 0 {
		t.Fatalf("lowering errors: %v", bag.Items())
	}
	return m0
}

func TestBaseCasePeelsIntoSpecialization(t *testing.T) {
	src := "def fact(n: int) -> int:\n" +
		"    if n == 0:\n" +
		"        return 1\n" +
		"    return n * fact(n - 1)\n"
	m := lower(t, src)
	d := m.ByName("fact")
	if d == nil {
		t.Fatalf("declaration missing")
	}
	if !d.Public || d.ResultIsType {
		t.Fatalf("flags: public=%t resultIsType=%t", d.Public, d.ResultIsType)
	}
	if len(d.Specs) != 1 {
		t.Fatalf("specs: %d", len(d.Specs))
	}
	spec := d.Specs[0]
	if len(spec.Patterns) != 1 || spec.Patterns[0].Kind != ir0.ExprLitInt || spec.Patterns[0].Int != 0 {
		t.Fatalf("pattern: %+v", spec.Patterns)
	}
	if spec.Binding(ir0.MemberValue) == nil {
		t.Fatalf("base case has no value binding")
	}
	if d.Main == nil {
		t.Fatalf("generic body missing")
	}
	main := m.ExprString(d.Main.Binding(ir0.MemberValue).Expr)
	if !strings.Contains(main, "fact<(n - 1)>::value") {
		t.Fatalf("recursive body: %s", main)
	}
}

func TestElifChainPeelsMultipleSpecializations(t *testing.T) {
	src := "def f(n: int) -> int:\n" +
		"    if n == 0:\n" +
		"        return 10\n" +
		"    if n == 1:\n" +
		"        return 20\n" +
		"    return f(n - 2)\n"
	m := lower(t, src)
	d := m.ByName("f")
	if len(d.Specs) != 2 {
		t.Fatalf("specs: %d", len(d.Specs))
	}
	if d.Specs[0].Patterns[0].Int != 0 || d.Specs[1].Patterns[0].Int != 1 {
		t.Fatalf("patterns: %v %v", d.Specs[0].Patterns, d.Specs[1].Patterns)
	}
}

func TestTypeLiteralBaseCase(t *testing.T) {
	src := "def strip(t: Type) -> Type:\n" +
		"    if t == type(\"void\"):\n" +
		"        return t\n" +
		"    return t\n"
	m := lower(t, src)
	d := m.ByName("strip")
	if len(d.Specs) != 1 {
		t.Fatalf("specs: %d", len(d.Specs))
	}
	pat := d.Specs[0].Patterns[0]
	if pat.Kind != ir0.ExprTypeLit || pat.Name != "void" {
		t.Fatalf("pattern: %+v", pat)
	}
}

func TestNonBaseConditionDispatchesThroughHelper(t *testing.T) {
	src := "def clamp(n: int) -> int:\n" +
		"    if n > 10:\n" +
		"        return 10\n" +
		"    return n\n"
	m := lower(t, src)
	aux := m.ByName("clampIf1")
	if aux == nil {
		t.Fatalf("helper declaration missing")
	}
	if aux.Origin != "clamp" || aux.Public {
		t.Fatalf("helper flags: origin=%q public=%t", aux.Origin, aux.Public)
	}
	if len(aux.Specs) != 2 {
		t.Fatalf("helper specs: %d", len(aux.Specs))
	}
	if aux.Params[0].Name != "pyriteCond" || aux.Params[0].Kind != ir0.PKBool {
		t.Fatalf("helper params: %+v", aux.Params)
	}
	// the true/false specializations hold the two branches
	if aux.Specs[0].Patterns[0].Bool != true || aux.Specs[1].Patterns[0].Bool != false {
		t.Fatalf("dispatch patterns: %v %v", aux.Specs[0].Patterns[0], aux.Specs[1].Patterns[0])
	}
}

func TestEveryBodyCarriesErrorBinding(t *testing.T) {
	m := lower(t, "def double(n: int) -> int:\n    return n + n\n")
	d := m.ByName("double")
	if !d.HasError {
		t.Fatalf("declaration should carry the error channel")
	}
	eb := d.Main.Binding(ir0.MemberError)
	if eb == nil || !eb.IsType {
		t.Fatalf("error binding: %+v", eb)
	}
	if m.ExprString(eb.Expr) != "#void" {
		t.Fatalf("pure body should report no error, got %s", m.ExprString(eb.Expr))
	}
}

func TestCallErrorsJoinThroughGetFirstError(t *testing.T) {
	src := "def f(n: int) -> int:\n" +
		"    return n\n" +
		"def g(n: int) -> int:\n" +
		"    return f(n) + f(n + 1)\n"
	m := lower(t, src)
	d := m.ByName("g")
	errExpr := m.ExprString(d.Main.Binding(ir0.MemberError).Expr)
	if !strings.Contains(errExpr, "GetFirstError<") {
		t.Fatalf("error join: %s", errExpr)
	}
	if !strings.Contains(errExpr, "f<n>::error") || !strings.Contains(errExpr, "f<(n + 1)>::error") {
		t.Fatalf("error join misses sub-call channels: %s", errExpr)
	}
}

func TestErrorLiteralBecomesHolderDeclaration(t *testing.T) {
	src := "def f(n: int) -> int:\n" +
		"    if n == 0:\n" +
		"        return error(\"n must be positive\")\n" +
		"    return n\n"
	m := lower(t, src)
	var holder *ir0.Decl
	for _, d := range m.Decls() {
		if d.IsError {
			holder = d
		}
	}
	if holder == nil {
		t.Fatalf("no holder declaration")
	}
	if holder.ErrorMessage != "n must be positive" {
		t.Fatalf("message: %q", holder.ErrorMessage)
	}
	// the base-case specialization routes the holder through its error binding
	spec := m.ByName("f").Specs[0]
	errExpr := m.ExprString(spec.Binding(ir0.MemberError).Expr)
	if !strings.Contains(errExpr, holder.Name+"<#void>") {
		t.Fatalf("error binding: %s", errExpr)
	}
}

func TestDuplicateErrorMessagesShareOneHolder(t *testing.T) {
	src := "def f(n: int) -> int:\n" +
		"    if n == 0:\n" +
		"        return error(\"bad\")\n" +
		"    return n\n" +
		"def g(n: int) -> int:\n" +
		"    if n == 0:\n" +
		"        return error(\"bad\")\n" +
		"    return n\n"
	m := lower(t, src)
	holders := 0
	for _, d := range m.Decls() {
		if d.IsError {
			holders++
		}
	}
	if holders != 1 {
		t.Fatalf("got %d holders, want 1", holders)
	}
}

func TestHigherOrderParamBecomesTemplateTemplate(t *testing.T) {
	src := "def apply(f: Callable[[int], int], n: int) -> int:\n" +
		"    return f(n)\n"
	m := lower(t, src)
	d := m.ByName("apply")
	if d.Params[0].Kind != ir0.PKTemplate {
		t.Fatalf("param kind: %s", d.Params[0].Kind)
	}
	if len(d.Params[0].TemplateArgs) != 1 || d.Params[0].TemplateArgs[0] != ir0.PKInt64 {
		t.Fatalf("template args: %v", d.Params[0].TemplateArgs)
	}
}

func TestContainersLowerOntoContractTemplates(t *testing.T) {
	m := lower(t, "xs = concat([1, 2], [3])\n")
	g := m.Globals()[0]
	s := m.ExprString(g.Expr)
	want := "Int64ListConcat<Int64List<1, 2>, Int64List<3>>::type"
	if s != want {
		t.Fatalf("got %s, want %s", s, want)
	}
}

func TestSetLiteralRoutesThroughListToSet(t *testing.T) {
	m := lower(t, "s = {type(\"int\"), type(\"bool\")}\n")
	s := m.ExprString(m.Globals()[0].Expr)
	if !strings.HasPrefix(s, "TypeListToSet<List<#int, #bool>>") {
		t.Fatalf("got %s", s)
	}
}

func TestTypeEqualityUsesIsSame(t *testing.T) {
	m := lower(t, "b = type(\"int\") == type(\"bool\")\n")
	s := m.ExprString(m.Globals()[0].Expr)
	if s != "std::is_same<#int, #bool>::value" {
		t.Fatalf("got %s", s)
	}
}

func TestFoldArgumentOrderMatchesContract(t *testing.T) {
	src := "def step(acc: int, n: int) -> int:\n" +
		"    return acc + n\n" +
		"total = fold([1, 2, 3], 0, step)\n"
	m := lower(t, src)
	s := m.ExprString(m.Globals()[0].Expr)
	if !strings.HasPrefix(s, "FoldInt64sToInt64<0, step, Int64List<1, 2, 3>>") {
		t.Fatalf("got %s", s)
	}
}

func TestGlobalErrorChannelRecorded(t *testing.T) {
	src := "def checked(n: int) -> int:\n" +
		"    if n == 0:\n" +
		"        return error(\"zero\")\n" +
		"    return n\n" +
		"x = checked(5)\n"
	m := lower(t, src)
	g := m.Globals()[0]
	if g.Err == nil {
		t.Fatalf("global should record the callee error channel")
	}
	if m.ExprString(g.Err) != "checked<5>::error" {
		t.Fatalf("got %s", m.ExprString(g.Err))
	}
}

func TestErrorComparedWithSetLowersToErrorChannel(t *testing.T) {
	m := lower(t, "b = error(\"boom\") == {1, 2}\n")
	g := m.Globals()[0]
	if g.Err == nil {
		t.Fatalf("global should carry the raised error")
	}
	if !strings.Contains(m.ExprString(g.Err), "<#void>") {
		t.Fatalf("error channel: %s", m.ExprString(g.Err))
	}
	// the raised operand is replaced by the empty list of the set's family
	s := m.ExprString(g.Expr)
	want := "Int64SetEquals<Int64List<>, Int64ListToSet<Int64List<1, 2>>::type>::value"
	if s != want {
		t.Fatalf("got %s, want %s", s, want)
	}
}

func TestSetComparedWithErrorKeepsSetFamily(t *testing.T) {
	m := lower(t, "b = {type(\"int\")} == error(\"boom\")\n")
	s := m.ExprString(m.Globals()[0].Expr)
	if !strings.HasPrefix(s, "TypeSetEquals<") || !strings.Contains(s, "List<>") {
		t.Fatalf("got %s", s)
	}
}

func TestDuplicateBaseCaseRejected(t *testing.T) {
	src := "def f(n: int) -> int:\n" +
		"    if n == 0:\n" +
		"        return 1\n" +
		"    if n == 0:\n" +
		"        return 2\n" +
		"    return f(n - 1)\n"
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
	m1, err := ir1.Build("test", pres.Builder, info, in)
	if err != nil {
		t.Fatalf("ir1: %v", err)
	}
	m0 := builtins.NewModule()
	if res := Lower(m1, m0, Options{Reporter: rep}); res.Errors == 0 {
		t.Fatalf("repeated guard should fail lowering")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LowerAmbiguousSpec {
			found = true
		}
	}
	if !found {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	// only the first guard produced a specialization
	if n := len(m0.ByName("f").Specs); n != 1 {
		t.Fatalf("specs: %d", n)
	}
}

func TestSourceNameCollidingWithContractGetsSuffix(t *testing.T) {
	m := lower(t, "def GetFirstError(n: int) -> int:\n    return n\n")
	if m.ByName("GetFirstError2") == nil {
		t.Fatalf("colliding source name should be renamed deterministically")
	}
	d := m.ByName("GetFirstError")
	if d == nil || !d.Builtin {
		t.Fatalf("contract declaration should keep its name")
	}
}
