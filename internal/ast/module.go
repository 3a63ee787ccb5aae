package ast

import (
	"pyrite/internal/source"
)

// ItemKind says whether a top-level item is a function or a global binding.
type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemGlobal
)

// Item preserves top-level declaration order.
type Item struct {
	Kind   ItemKind
	Fn     FnID
	Global GlobalID
}

// Module is the parse result for one source file.
type Module struct {
	File  source.FileID
	Span  source.Span
	Items []Item
}
