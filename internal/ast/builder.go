package ast

import (
	"pyrite/internal/source"
)

// Builder owns the arenas for one parse. The parser allocates through it;
// later stages only read.
type Builder struct {
	Exprs   *Arena[Expr]
	Stmts   *Arena[Stmt]
	Types   *Arena[TypeSyn]
	Fns     *Arena[Fn]
	Globals *Arena[Global]
	Module  *Module
}

func NewBuilder(file source.FileID) *Builder {
	return &Builder{
		Exprs:   NewArena[Expr](256),
		Stmts:   NewArena[Stmt](64),
		Types:   NewArena[TypeSyn](32),
		Fns:     NewArena[Fn](16),
		Globals: NewArena[Global](8),
		Module:  &Module{File: file},
	}
}

func (b *Builder) NewExpr(e Expr) ExprID {
	return ExprID(b.Exprs.Allocate(e))
}

func (b *Builder) NewStmt(s Stmt) StmtID {
	return StmtID(b.Stmts.Allocate(s))
}

func (b *Builder) NewType(t TypeSyn) TypeID {
	return TypeID(b.Types.Allocate(t))
}

func (b *Builder) NewFn(f Fn) FnID {
	id := FnID(b.Fns.Allocate(f))
	b.Module.Items = append(b.Module.Items, Item{Kind: ItemFn, Fn: id})
	return id
}

func (b *Builder) NewGlobal(g Global) GlobalID {
	id := GlobalID(b.Globals.Allocate(g))
	b.Module.Items = append(b.Module.Items, Item{Kind: ItemGlobal, Global: id})
	return id
}

func (b *Builder) Expr(id ExprID) *Expr       { return b.Exprs.Get(uint32(id)) }
func (b *Builder) Stmt(id StmtID) *Stmt       { return b.Stmts.Get(uint32(id)) }
func (b *Builder) Type(id TypeID) *TypeSyn    { return b.Types.Get(uint32(id)) }
func (b *Builder) Fn(id FnID) *Fn             { return b.Fns.Get(uint32(id)) }
func (b *Builder) Global(id GlobalID) *Global { return b.Globals.Get(uint32(id)) }
