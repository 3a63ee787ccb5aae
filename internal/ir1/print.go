package ir1

import (
	"fmt"
	"io"
	"strings"
)

// Print writes a readable dump of the module, one function per block.
// Debug aid for the `pyrite check --dump-ir1` path and for tests.
func Print(w io.Writer, m *Module) {
	for _, f := range m.Funcs {
		params := make([]string, len(f.Params))
		for i, p := range f.Params {
			params[i] = fmt.Sprintf("%s: %s", p.Name, p.Kind)
		}
		fail := ""
		if f.CanFail {
			fail = " !"
		}
		fmt.Fprintf(w, "func %s(%s) -> %s%s\n", f.Name, strings.Join(params, ", "), f.Result, fail)
		printExpr(w, f.Body, 1)
	}
	for _, g := range m.Globals {
		fmt.Fprintf(w, "global %s: %s\n", g.Name, g.Kind)
		printExpr(w, g.Value, 1)
	}
}

func printExpr(w io.Writer, e *Expr, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e.Kind {
	case ExprConst:
		if e.Const.Kind == ConstBool {
			fmt.Fprintf(w, "%sconst %v\n", indent, e.Const.Bool)
		} else {
			fmt.Fprintf(w, "%sconst %d\n", indent, e.Const.Int)
		}
	case ExprVarRef:
		fmt.Fprintf(w, "%svar %s\n", indent, e.Name)
	case ExprFnRef:
		fmt.Fprintf(w, "%sfnref %s\n", indent, e.Name)
	case ExprCall:
		kind := "call"
		if e.CalleeVar {
			kind = "call-var"
		}
		fmt.Fprintf(w, "%s%s %s\n", indent, kind, e.Name)
		for _, a := range e.Args {
			printExpr(w, a, depth+1)
		}
	case ExprCond:
		fmt.Fprintf(w, "%scond\n", indent)
		printExpr(w, e.Cond, depth+1)
		printExpr(w, e.Then, depth+1)
		printExpr(w, e.Else, depth+1)
	case ExprPrim:
		if e.Name != "" {
			fmt.Fprintf(w, "%sprim %s %q\n", indent, e.Prim, e.Name)
		} else {
			fmt.Fprintf(w, "%sprim %s\n", indent, e.Prim)
		}
		for _, a := range e.Args {
			printExpr(w, a, depth+1)
		}
	}
}
