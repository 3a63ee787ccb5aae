package obj

import (
	"fmt"

	"pyrite/internal/ir0"
)

func encodeDecl(m *ir0.Module, d *ir0.Decl) declRec {
	dr := declRec{
		Name:         d.Name,
		Origin:       d.Origin,
		Params:       encodeParams(d.Params),
		ResultIsType: d.ResultIsType,
		HasError:     d.HasError,
		Public:       d.Public,
		Builtin:      d.Builtin,
		IsError:      d.IsError,
		ErrorMessage: d.ErrorMessage,
	}
	if d.Main != nil {
		s := encodeSpec(m, d.Main)
		dr.Main = &s
	}
	for _, s := range d.Specs {
		dr.Specs = append(dr.Specs, encodeSpec(m, s))
	}
	return dr
}

func encodeParams(ps []ir0.Param) []paramRec {
	out := make([]paramRec, 0, len(ps))
	for _, p := range ps {
		r := paramRec{Name: p.Name, Kind: uint8(p.Kind), Pack: p.Pack}
		for _, a := range p.TemplateArgs {
			r.TemplateArgs = append(r.TemplateArgs, uint8(a))
		}
		out = append(out, r)
	}
	return out
}

func encodeSpec(m *ir0.Module, s *ir0.Spec) specRec {
	r := specRec{Params: encodeParams(s.Params)}
	for _, p := range s.Patterns {
		r.Patterns = append(r.Patterns, encodeExpr(m, p))
	}
	for _, b := range s.Body {
		r.Body = append(r.Body, bindRec{Name: b.Name, IsType: b.IsType, Expr: encodeExpr(m, b.Expr)})
	}
	return r
}

func encodeExpr(m *ir0.Module, e *ir0.Expr) *exprRec {
	if e == nil {
		return nil
	}
	r := &exprRec{
		Kind: uint8(e.Kind),
		Bool: e.Bool,
		Int:  e.Int,
		Name: e.Name,
		Pack: e.Pack,
		X:    encodeExpr(m, e.X),
		Y:    encodeExpr(m, e.Y),
		Op:   uint8(e.Op),
	}
	if e.Kind == ir0.ExprDeclRef {
		r.Decl = m.Decl(e.Decl).Name
	}
	for _, a := range e.Args {
		r.Args = append(r.Args, encodeExpr(m, a))
	}
	return r
}

func decodeShell(dr declRec) *ir0.Decl {
	return &ir0.Decl{
		Name:         dr.Name,
		Origin:       dr.Origin,
		Params:       decodeParams(dr.Params),
		ResultIsType: dr.ResultIsType,
		HasError:     dr.HasError,
		Public:       dr.Public,
		Builtin:      dr.Builtin,
		IsError:      dr.IsError,
		ErrorMessage: dr.ErrorMessage,
	}
}

func decodeParams(ps []paramRec) []ir0.Param {
	out := make([]ir0.Param, 0, len(ps))
	for _, p := range ps {
		o := ir0.Param{Name: p.Name, Kind: ir0.ParamKind(p.Kind), Pack: p.Pack}
		for _, a := range p.TemplateArgs {
			o.TemplateArgs = append(o.TemplateArgs, ir0.ParamKind(a))
		}
		out = append(out, o)
	}
	return out
}

func decodeBodies(m *ir0.Module, d *ir0.Decl, dr declRec) error {
	if dr.Main != nil {
		s, err := decodeSpec(m, *dr.Main)
		if err != nil {
			return err
		}
		d.Main = s
	}
	for _, sr := range dr.Specs {
		s, err := decodeSpec(m, sr)
		if err != nil {
			return err
		}
		d.Specs = append(d.Specs, s)
	}
	return nil
}

func decodeSpec(m *ir0.Module, sr specRec) (*ir0.Spec, error) {
	s := &ir0.Spec{Params: decodeParams(sr.Params)}
	for _, p := range sr.Patterns {
		e, err := decodeExpr(m, p)
		if err != nil {
			return nil, err
		}
		s.Patterns = append(s.Patterns, e)
	}
	for _, b := range sr.Body {
		e, err := decodeExpr(m, b.Expr)
		if err != nil {
			return nil, err
		}
		s.Body = append(s.Body, ir0.Binding{Name: b.Name, IsType: b.IsType, Expr: e})
	}
	return s, nil
}

func decodeExpr(m *ir0.Module, r *exprRec) (*ir0.Expr, error) {
	if r == nil {
		return nil, nil
	}
	e := &ir0.Expr{
		Kind: ir0.ExprKind(r.Kind),
		Bool: r.Bool,
		Int:  r.Int,
		Name: r.Name,
		Pack: r.Pack,
		Op:   ir0.BinOp(r.Op),
	}
	if e.Kind == ir0.ExprDeclRef {
		d := m.ByName(r.Decl)
		if d == nil {
			return nil, fmt.Errorf("reference to unknown declaration %q", r.Decl)
		}
		e.Decl = d.ID
	}
	var err error
	if e.X, err = decodeExpr(m, r.X); err != nil {
		return nil, err
	}
	if e.Y, err = decodeExpr(m, r.Y); err != nil {
		return nil, err
	}
	for _, a := range r.Args {
		ae, err := decodeExpr(m, a)
		if err != nil {
			return nil, err
		}
		e.Args = append(e.Args, ae)
	}
	return e, nil
}
