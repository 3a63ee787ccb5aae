package ast

import (
	"pyrite/internal/source"
)

// Param is one annotated function parameter.
type Param struct {
	Name     string
	NameSpan source.Span
	Type     TypeID
}

// Fn is one `def` item. Every parameter and the return type carry explicit
// annotations; there is no inference at the signature level.
type Fn struct {
	Name     string
	NameSpan source.Span
	Span     source.Span
	Params   []Param
	Ret      TypeID
	Body     []StmtID
}

// Global is one module-level assignment `name = expr`. Each global becomes an
// exported binding in the generated output.
type Global struct {
	Name     string
	NameSpan source.Span
	Span     source.Span
	Value    ExprID
}
