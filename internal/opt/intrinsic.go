package opt

import (
	"strings"

	"pyrite/internal/ir0"
)

// listParts unpacks a container value into its template name and elements.
func (ev *evaluator) listParts(e *ir0.Expr) (string, []*ir0.Expr, bool) {
	if e.Kind != ir0.ExprInst {
		return "", nil, false
	}
	switch name := calleeName(ev.m, e.X); name {
	case "List", "Int64List", "BoolList":
		return name, e.Args, true
	default:
		return "", nil, false
	}
}

func makeList(tmpl string, elems []*ir0.Expr) *ir0.Expr {
	return ir0.Inst(ir0.GlobalRef(tmpl), elems...)
}

func famTemplate(fam string) string {
	switch fam {
	case "Bool":
		return "BoolList"
	case "Int64":
		return "Int64List"
	default:
		return "List"
	}
}

func (ev *evaluator) contains(elems []*ir0.Expr, x *ir0.Expr) bool {
	for _, e := range elems {
		if ev.equal(e, x) {
			return true
		}
	}
	return false
}

func typeBinding(e *ir0.Expr) []ir0.Binding {
	return []ir0.Binding{{Name: ir0.MemberType, IsType: true, Expr: e}}
}

func valueBinding(e *ir0.Expr) []ir0.Binding {
	return []ir0.Binding{{Name: ir0.MemberValue, Expr: e}}
}

// call elaborates one application of a template-template argument, returning
// its result member and error member.
func (ev *evaluator) call(f *ir0.Expr, args []*ir0.Expr, depth int) (*ir0.Expr, *ir0.Expr, error) {
	d := ev.calleeDecl(f)
	if d == nil {
		return nil, nil, errAbstract
	}
	binds, err := ev.elaborateInst(d, args, depth)
	if err != nil {
		return nil, nil, err
	}
	var res, errv *ir0.Expr
	for _, b := range binds {
		switch b.Name {
		case d.ResultMember():
			res = b.Expr
		case ir0.MemberError:
			errv = b.Expr
		}
	}
	if res == nil {
		return nil, nil, errAbstract
	}
	if errv == nil {
		errv = voidType()
	}
	return res, errv, nil
}

// intrinsic evaluates one runtime-contract instantiation. The Go
// implementations here and the C++ ones in the runtime header must agree;
// the contract tests pin the shared semantics.
func (ev *evaluator) intrinsic(d *ir0.Decl, args []*ir0.Expr, depth int) ([]ir0.Binding, error) {
	name := d.Name

	switch {
	case name == "GetFirstError":
		for _, a := range args {
			if !isVoid(a) {
				return typeBinding(a), nil
			}
		}
		return typeBinding(voidType()), nil

	case strings.HasSuffix(name, "ListConcat"):
		t1, e1, ok1 := ev.listParts(args[0])
		t2, e2, ok2 := ev.listParts(args[1])
		if !ok1 || !ok2 || t1 != t2 {
			return nil, errAbstract
		}
		elems := make([]*ir0.Expr, 0, len(e1)+len(e2))
		elems = append(elems, e1...)
		elems = append(elems, e2...)
		return typeBinding(makeList(t1, elems)), nil

	case strings.HasSuffix(name, "ListToSet"):
		tmpl, elems, ok := ev.listParts(args[0])
		if !ok {
			return nil, errAbstract
		}
		var out []*ir0.Expr
		for _, e := range elems {
			if !ev.contains(out, e) {
				out = append(out, e)
			}
		}
		return typeBinding(makeList(tmpl, out)), nil

	case strings.HasPrefix(name, "AddTo") && strings.HasSuffix(name, "Set"):
		tmpl, elems, ok := ev.listParts(args[0])
		if !ok {
			return nil, errAbstract
		}
		if ev.contains(elems, args[1]) {
			return typeBinding(args[0]), nil
		}
		out := append(append([]*ir0.Expr(nil), elems...), args[1])
		return typeBinding(makeList(tmpl, out)), nil

	case strings.HasPrefix(name, "IsIn"):
		_, elems, ok := ev.listParts(args[0])
		if !ok {
			return nil, errAbstract
		}
		return valueBinding(ir0.LitBool(ev.contains(elems, args[1]))), nil

	case strings.HasSuffix(name, "SetEquals"):
		_, e1, ok1 := ev.listParts(args[0])
		_, e2, ok2 := ev.listParts(args[1])
		if !ok1 || !ok2 {
			return nil, errAbstract
		}
		eq := true
		for _, e := range e1 {
			if !ev.contains(e2, e) {
				eq = false
				break
			}
		}
		if eq {
			for _, e := range e2 {
				if !ev.contains(e1, e) {
					eq = false
					break
				}
			}
		}
		return valueBinding(ir0.LitBool(eq)), nil

	case strings.HasPrefix(name, "Transform"):
		return ev.transform(name, args, depth)

	case strings.HasPrefix(name, "Fold"):
		return ev.fold(d, args, depth)

	case name == "Int64ListSum":
		_, elems, ok := ev.listParts(args[0])
		if !ok {
			return nil, errAbstract
		}
		var sum int64
		for _, e := range elems {
			if e.Kind != ir0.ExprLitInt {
				return nil, errAbstract
			}
			sum += e.Int
		}
		return valueBinding(ir0.LitInt(sum)), nil

	case name == "BoolListAll", name == "BoolListAny":
		_, elems, ok := ev.listParts(args[0])
		if !ok {
			return nil, errAbstract
		}
		all, any := true, false
		for _, e := range elems {
			if e.Kind != ir0.ExprLitBool {
				return nil, errAbstract
			}
			all = all && e.Bool
			any = any || e.Bool
		}
		if name == "BoolListAll" {
			return valueBinding(ir0.LitBool(all)), nil
		}
		return valueBinding(ir0.LitBool(any)), nil

	case strings.HasPrefix(name, "Select1st"):
		return valueBinding(args[0]), nil

	case strings.HasPrefix(name, "AlwaysTrueFrom"):
		return valueBinding(ir0.LitBool(true)), nil

	case name == "AlwaysFalseFromType":
		return valueBinding(ir0.LitBool(false)), nil
	}
	return nil, errAbstract
}

// transform maps F over a list, preserving length and reporting the first
// per-element error in left-to-right order.
func (ev *evaluator) transform(name string, args []*ir0.Expr, depth int) ([]ir0.Binding, error) {
	_, elems, ok := ev.listParts(args[0])
	if !ok {
		return nil, errAbstract
	}
	idx := strings.Index(name, "ListTo")
	dstTmpl := famTemplate(strings.TrimSuffix(name[idx+len("ListTo"):], "List"))

	out := make([]*ir0.Expr, 0, len(elems))
	firstErr := voidType()
	for _, e := range elems {
		v, errv, err := ev.call(args[1], []*ir0.Expr{e}, depth)
		if err != nil {
			return nil, err
		}
		if isVoid(firstErr) && !isVoid(errv) {
			firstErr = errv
		}
		out = append(out, v)
	}
	binds := typeBinding(makeList(dstTmpl, out))
	binds = append(binds, ir0.Binding{Name: ir0.MemberError, IsType: true, Expr: firstErr})
	return binds, nil
}

// fold reduces strictly left-to-right from the explicit seed, stopping at
// the first failing step.
func (ev *evaluator) fold(d *ir0.Decl, args []*ir0.Expr, depth int) ([]ir0.Binding, error) {
	_, elems, ok := ev.listParts(args[2])
	if !ok {
		return nil, errAbstract
	}
	acc := args[0]
	errv := voidType()
	for _, e := range elems {
		v, ev2, err := ev.call(args[1], []*ir0.Expr{acc, e}, depth)
		if err != nil {
			return nil, err
		}
		if !isVoid(ev2) {
			errv = ev2
			break
		}
		acc = v
	}
	var binds []ir0.Binding
	if d.ResultIsType {
		binds = typeBinding(acc)
	} else {
		binds = valueBinding(acc)
	}
	binds = append(binds, ir0.Binding{Name: ir0.MemberError, IsType: true, Expr: errv})
	return binds, nil
}
