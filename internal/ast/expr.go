package ast

import (
	"pyrite/internal/source"
)

// ExprKind enumerates AST expression variants.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	// ExprIntLit is an integer literal.
	ExprIntLit
	// ExprBoolLit is True or False.
	ExprBoolLit
	// ExprStringLit is a quoted literal (type names, error messages).
	ExprStringLit
	// ExprIdent is a name reference.
	ExprIdent
	// ExprCall is callee(args...).
	ExprCall
	// ExprIf is the conditional expression `then if cond else else`.
	ExprIf
	// ExprUnary is `-x` or `not x`.
	ExprUnary
	// ExprBinary covers arithmetic, comparison, and/or, and `in`.
	ExprBinary
	// ExprList is a list literal [a, b, c].
	ExprList
	// ExprSet is a set literal {a, b, c}.
	ExprSet
)

// Expr is one arena-allocated expression node. Only the fields relevant to
// Kind are populated; the node is immutable once the parser has produced it.
type Expr struct {
	Kind ExprKind
	Span source.Span

	// literals
	IntVal  int64
	BoolVal bool
	StrVal  string // string literal payload, or identifier name

	// call
	Callee ExprID
	Args   []ExprID

	// if-expression
	Cond ExprID
	Then ExprID
	Else ExprID

	// unary/binary; unary uses X only
	Op Op
	X  ExprID
	Y  ExprID

	// container literals
	Elems []ExprID
}
