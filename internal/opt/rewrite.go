package opt

import "pyrite/internal/ir0"

// rewrite applies f bottom-up over an expression, building new nodes only
// where something changed so untouched subtrees stay shared.
func rewrite(e *ir0.Expr, f func(*ir0.Expr) *ir0.Expr) *ir0.Expr {
	if e == nil {
		return nil
	}
	x := rewrite(e.X, f)
	y := rewrite(e.Y, f)
	args := e.Args
	changed := x != e.X || y != e.Y
	for i, a := range e.Args {
		na := rewrite(a, f)
		if na == a {
			continue
		}
		if !changedArgs(args, e.Args) {
			args = append([]*ir0.Expr(nil), e.Args...)
		}
		args[i] = na
		changed = true
	}
	if changed {
		ne := *e
		ne.X, ne.Y, ne.Args = x, y, args
		e = &ne
	}
	return f(e)
}

func changedArgs(a, b []*ir0.Expr) bool {
	return len(a) != 0 && len(b) != 0 && &a[0] != &b[0]
}

// rewriteModule applies f to every live declaration body and global.
func rewriteModule(m *ir0.Module, f func(*ir0.Expr) *ir0.Expr) {
	for _, d := range m.Decls() {
		if d.Builtin || d.Dead || d.IsError {
			continue
		}
		for _, s := range d.AllSpecs() {
			for i := range s.Body {
				s.Body[i].Expr = rewrite(s.Body[i].Expr, f)
			}
		}
	}
	globals := m.Globals()
	for i := range globals {
		globals[i].Expr = rewrite(globals[i].Expr, f)
		globals[i].Err = rewrite(globals[i].Err, f)
	}
}
