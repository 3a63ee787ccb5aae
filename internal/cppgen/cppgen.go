package cppgen

import (
	"fmt"
	"strings"

	"pyrite/internal/ir0"
)

// Options configures code generation.
type Options struct {
	// Header text placed at the very top, one line per entry, each
	// prefixed with "// ".
	HeaderLines []string
}

// Generate renders a module as one C++ header. Output is a pure function of
// the module: declarations and globals are walked in insertion order and no
// map is ever iterated, so identical modules produce byte-identical text.
func Generate(m *ir0.Module, opts Options) string {
	g := &generator{m: m}
	var sb strings.Builder

	for _, l := range opts.HeaderLines {
		sb.WriteString("// ")
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	if len(opts.HeaderLines) > 0 {
		sb.WriteByte('\n')
	}
	sb.WriteString("#include <pyrite/pyrite.h>\n")

	live := g.liveDecls()
	errDecls := g.errorDecls(live)

	// Every generated template is declared up front, so definition order
	// never matters: bodies only instantiate other templates lazily, after
	// all definitions are in scope.
	if len(live) > 0 {
		sb.WriteByte('\n')
		for _, d := range live {
			g.writeTemplateHead(&sb, d.Params)
			fmt.Fprintf(&sb, "\nstruct %s;\n", g.declName(d.ID))
		}
	}

	if len(errDecls) > 0 {
		g.writeErrorCheck(&sb, errDecls)
	}

	for _, d := range live {
		if d.IsError {
			continue
		}
		g.writeDecl(&sb, d)
	}

	g.writeGlobals(&sb)
	return sb.String()
}

type generator struct {
	m *ir0.Module
}

func (g *generator) declName(id ir0.DeclID) string {
	return cppName(g.m.Decl(id).Name)
}

func (g *generator) liveDecls() []*ir0.Decl {
	var out []*ir0.Decl
	for _, d := range g.m.Decls() {
		if d.Builtin || d.Dead {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (g *generator) errorDecls(live []*ir0.Decl) []*ir0.Decl {
	var out []*ir0.Decl
	for _, d := range live {
		if d.IsError {
			out = append(out, d)
		}
	}
	return out
}

func paramType(k ir0.ParamKind, args []ir0.ParamKind) string {
	switch k {
	case ir0.PKBool:
		return "bool"
	case ir0.PKInt64:
		return "int64_t"
	case ir0.PKType:
		return "typename"
	case ir0.PKTemplate:
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = paramType(a, nil)
		}
		return fmt.Sprintf("template <%s> class", strings.Join(parts, ", "))
	}
	return "typename"
}

func writeParamDecl(sb *strings.Builder, p ir0.Param) {
	sb.WriteString(paramType(p.Kind, p.TemplateArgs))
	if p.Pack {
		sb.WriteString("...")
	}
	if p.Name != "" {
		sb.WriteByte(' ')
		sb.WriteString(cppName(p.Name))
	}
}

func (g *generator) writeTemplateHead(sb *strings.Builder, params []ir0.Param) {
	sb.WriteString("template <")
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeParamDecl(sb, p)
	}
	sb.WriteByte('>')
}

func (g *generator) writeBody(sb *strings.Builder, body []ir0.Binding) {
	sb.WriteString(" {\n")
	for _, b := range body {
		if b.IsType {
			fmt.Fprintf(sb, "  using %s = %s;\n", b.Name, g.exprString(b.Expr))
		} else {
			fmt.Fprintf(sb, "  static constexpr auto %s = %s;\n", b.Name, g.exprString(b.Expr))
		}
	}
	sb.WriteString("};\n")
}

func (g *generator) writeDecl(sb *strings.Builder, d *ir0.Decl) {
	sb.WriteByte('\n')
	if d.Origin != "" && d.Origin != d.Name {
		fmt.Fprintf(sb, "// from %s\n", d.Origin)
	}
	name := cppName(d.Name)

	if d.Main != nil {
		g.writeTemplateHead(sb, d.Main.Params)
		fmt.Fprintf(sb, "\nstruct %s", name)
		g.writeBody(sb, d.Main.Body)
	}
	for _, s := range d.Specs {
		g.writeTemplateHead(sb, s.Params)
		fmt.Fprintf(sb, "\nstruct %s<", name)
		for i, pat := range s.Patterns {
			if i > 0 {
				sb.WriteString(", ")
			}
			g.writeExpr(sb, pat)
		}
		sb.WriteByte('>')
		g.writeBody(sb, s.Body)
	}
}

// writeErrorCheck emits the error holders and the module's error check: the
// main case passes anything through as "no error", and each holder gets a
// specialization whose static_assert carries the source message. The assert
// condition routes through Select1stBoolType so it only fires when the
// specialization is actually instantiated.
func (g *generator) writeErrorCheck(sb *strings.Builder, errDecls []*ir0.Decl) {
	for _, d := range errDecls {
		sb.WriteByte('\n')
		g.writeTemplateHead(sb, d.Params)
		fmt.Fprintf(sb, "\nstruct %s {};\n", g.declName(d.ID))
	}

	sb.WriteString(`
template <typename>
struct PyriteCheckError {
  using type = void;
};
`)
	for _, d := range errDecls {
		sb.WriteByte('\n')
		g.writeTemplateHead(sb, d.Params)
		fmt.Fprintf(sb, "\nstruct PyriteCheckError<%s<%s>> {\n", g.declName(d.ID), cppName(d.Params[0].Name))
		fmt.Fprintf(sb, "  static_assert(Select1stBoolType<false, %s>::value,\n", cppName(d.Params[0].Name))
		fmt.Fprintf(sb, "                %q);\n", d.ErrorMessage)
		sb.WriteString("  using type = void;\n};\n")
	}
}

func (g *generator) writeGlobals(sb *strings.Builder) {
	globals := g.m.Globals()
	if len(globals) == 0 {
		return
	}
	sb.WriteByte('\n')
	for _, gl := range globals {
		name := cppName(gl.Name)
		if gl.Err != nil {
			fmt.Fprintf(sb, "using %sResultCheck = typename PyriteCheckError<%s>::type;\n",
				name, g.exprString(gl.Err))
		}
		if gl.IsType {
			fmt.Fprintf(sb, "using %s = %s;\n", name, g.exprString(gl.Expr))
		} else {
			fmt.Fprintf(sb, "static constexpr auto %s = %s;\n", name, g.exprString(gl.Expr))
		}
	}
}
