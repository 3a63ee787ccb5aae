package ir0

import (
	"fmt"
	"strings"
)

// WriteExpr appends a canonical textual form of e to sb. Declaration
// references are rendered by name, so two expressions print equal exactly
// when they are structurally equal up to declaration identity.
func (m *Module) WriteExpr(sb *strings.Builder, e *Expr) {
	switch e.Kind {
	case ExprLitBool:
		fmt.Fprintf(sb, "%t", e.Bool)
	case ExprLitInt:
		fmt.Fprintf(sb, "%d", e.Int)
	case ExprTypeLit:
		sb.WriteByte('#')
		sb.WriteString(e.Name)
	case ExprParamRef:
		sb.WriteString(e.Name)
		if e.Pack {
			sb.WriteString("...")
		}
	case ExprDeclRef:
		sb.WriteString(m.Decl(e.Decl).Name)
	case ExprGlobalRef:
		sb.WriteString(e.Name)
	case ExprInst:
		m.WriteExpr(sb, e.X)
		sb.WriteByte('<')
		for i, a := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			m.WriteExpr(sb, a)
		}
		sb.WriteByte('>')
	case ExprMember:
		m.WriteExpr(sb, e.X)
		sb.WriteString("::")
		sb.WriteString(e.Name)
	case ExprPointer:
		m.WriteExpr(sb, e.X)
		sb.WriteByte('*')
	case ExprNot:
		sb.WriteByte('!')
		m.WriteExpr(sb, e.X)
	case ExprNeg:
		sb.WriteByte('-')
		m.WriteExpr(sb, e.X)
	case ExprBin:
		sb.WriteByte('(')
		m.WriteExpr(sb, e.X)
		sb.WriteByte(' ')
		sb.WriteString(e.Op.String())
		sb.WriteByte(' ')
		m.WriteExpr(sb, e.Y)
		sb.WriteByte(')')
	}
}

// ExprString renders e via WriteExpr.
func (m *Module) ExprString(e *Expr) string {
	var sb strings.Builder
	m.WriteExpr(&sb, e)
	return sb.String()
}

func writeParam(sb *strings.Builder, p Param) {
	sb.WriteString(p.Kind.String())
	if p.Kind == PKTemplate {
		sb.WriteByte('(')
		for i, k := range p.TemplateArgs {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(k.String())
		}
		sb.WriteByte(')')
	}
	sb.WriteByte(' ')
	sb.WriteString(p.Name)
	if p.Pack {
		sb.WriteString("...")
	}
}

func (m *Module) writeSpec(sb *strings.Builder, d *Decl, s *Spec) {
	sb.WriteString("  spec <")
	for i, p := range s.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeParam(sb, p)
	}
	sb.WriteByte('>')
	if !s.IsMain() {
		sb.WriteString(" [")
		for i, pat := range s.Patterns {
			if i > 0 {
				sb.WriteString(", ")
			}
			m.WriteExpr(sb, pat)
		}
		sb.WriteByte(']')
	}
	sb.WriteString(":\n")
	for _, b := range s.Body {
		sb.WriteString("    ")
		if b.IsType {
			sb.WriteString("type ")
		}
		sb.WriteString(b.Name)
		sb.WriteString(" = ")
		m.WriteExpr(sb, b.Expr)
		sb.WriteByte('\n')
	}
	_ = d
}

// Print renders the whole module for debugging.
func (m *Module) Print() string {
	var sb strings.Builder
	for _, d := range m.decls {
		if d.Builtin {
			continue
		}
		sb.WriteString("decl ")
		sb.WriteString(d.Name)
		if d.IsError {
			fmt.Fprintf(&sb, " = error(%q)\n", d.ErrorMessage)
			continue
		}
		sb.WriteByte('\n')
		for _, s := range d.AllSpecs() {
			m.writeSpec(&sb, d, s)
		}
	}
	return sb.String()
}

// Fingerprint is a canonical rendition of a declaration's full shape minus
// its own name. Two declarations with equal fingerprints are interchangeable
// and may be merged.
func (m *Module) Fingerprint(d *Decl) string {
	var sb strings.Builder
	if d.IsError {
		fmt.Fprintf(&sb, "error(%q)", d.ErrorMessage)
		return sb.String()
	}
	sb.WriteByte('<')
	for i, p := range d.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeParam(&sb, p)
	}
	sb.WriteString(">\n")
	for _, s := range d.AllSpecs() {
		m.writeSpec(&sb, d, s)
	}
	return sb.String()
}
