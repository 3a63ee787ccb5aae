package ast

import (
	"pyrite/internal/source"
)

// StmtKind enumerates statement variants inside a function body.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	// StmtAssign is single assignment `name = expr`. Rebinding is not allowed.
	StmtAssign
	// StmtIf is `if cond:` with an optional `else:` block.
	StmtIf
	// StmtReturn is `return expr`.
	StmtReturn
)

// Stmt is one arena-allocated statement node.
type Stmt struct {
	Kind StmtKind
	Span source.Span

	// assign
	Name     string
	NameSpan source.Span
	Value    ExprID

	// if
	Cond ExprID
	Then []StmtID
	Else []StmtID
}
