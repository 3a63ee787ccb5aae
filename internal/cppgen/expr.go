package cppgen

import (
	"fmt"
	"strings"

	"pyrite/internal/ir0"
)

// writeExpr renders one expression as C++. Member accesses to type members
// get the typename keyword; value members do not.
func (g *generator) writeExpr(sb *strings.Builder, e *ir0.Expr) {
	switch e.Kind {
	case ir0.ExprLitBool:
		if e.Bool {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case ir0.ExprLitInt:
		fmt.Fprintf(sb, "%d", e.Int)
	case ir0.ExprTypeLit:
		sb.WriteString(e.Name)
	case ir0.ExprParamRef:
		sb.WriteString(cppName(e.Name))
		if e.Pack {
			sb.WriteString("...")
		}
	case ir0.ExprDeclRef:
		sb.WriteString(g.declName(e.Decl))
	case ir0.ExprGlobalRef:
		sb.WriteString(e.Name)
	case ir0.ExprInst:
		g.writeExpr(sb, e.X)
		sb.WriteByte('<')
		for i, a := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			g.writeExpr(sb, a)
		}
		sb.WriteByte('>')
	case ir0.ExprMember:
		if e.Name != ir0.MemberValue {
			sb.WriteString("typename ")
		}
		g.writeExpr(sb, e.X)
		sb.WriteString("::")
		sb.WriteString(e.Name)
	case ir0.ExprPointer:
		g.writeExpr(sb, e.X)
		sb.WriteByte('*')
	case ir0.ExprNot:
		sb.WriteByte('!')
		g.writeExpr(sb, e.X)
	case ir0.ExprNeg:
		sb.WriteByte('-')
		g.writeExpr(sb, e.X)
	case ir0.ExprBin:
		sb.WriteByte('(')
		g.writeExpr(sb, e.X)
		sb.WriteByte(' ')
		sb.WriteString(e.Op.String())
		sb.WriteByte(' ')
		g.writeExpr(sb, e.Y)
		sb.WriteByte(')')
	}
}

func (g *generator) exprString(e *ir0.Expr) string {
	var sb strings.Builder
	g.writeExpr(&sb, e)
	return sb.String()
}

// cppKeywords guards generated identifiers against the target language's
// reserved words. Source keywords differ from C++'s, so a valid source
// identifier like "class" would otherwise emit broken code.
var cppKeywords = map[string]bool{
	"alignas": true, "alignof": true, "and": true, "asm": true, "auto": true,
	"bool": true, "break": true, "case": true, "catch": true, "char": true,
	"class": true, "const": true, "constexpr": true, "continue": true,
	"decltype": true, "default": true, "delete": true, "do": true,
	"double": true, "else": true, "enum": true, "explicit": true,
	"export": true, "extern": true, "false": true, "float": true, "for": true,
	"friend": true, "goto": true, "if": true, "inline": true, "int": true,
	"long": true, "mutable": true, "namespace": true, "new": true,
	"noexcept": true, "not": true, "nullptr": true, "operator": true,
	"or": true, "private": true, "protected": true, "public": true,
	"register": true, "return": true, "short": true, "signed": true,
	"sizeof": true, "static": true, "struct": true, "switch": true,
	"template": true, "this": true, "throw": true, "true": true, "try": true,
	"typedef": true, "typeid": true, "typename": true, "union": true,
	"unsigned": true, "using": true, "virtual": true, "void": true,
	"volatile": true, "while": true,
}

func cppName(name string) string {
	if cppKeywords[name] {
		return name + "_"
	}
	return name
}
