package ast

import (
	"pyrite/internal/source"
)

// TypeSynKind enumerates written type annotations.
type TypeSynKind uint8

const (
	TypeSynInvalid TypeSynKind = iota
	// TypeSynName is a bare name: bool, int, Type.
	TypeSynName
	// TypeSynList is List[T].
	TypeSynList
	// TypeSynSet is Set[T].
	TypeSynSet
	// TypeSynCallable is Callable[[T1, ...], R].
	TypeSynCallable
)

// TypeSyn is one written type annotation, resolved to a *types.Kind by sema.
type TypeSyn struct {
	Kind TypeSynKind
	Span source.Span

	Name   string   // TypeSynName
	Elem   TypeID   // TypeSynList/TypeSynSet
	Params []TypeID // TypeSynCallable
	Result TypeID   // TypeSynCallable
}
