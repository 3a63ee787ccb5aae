package parser

import (
	"fmt"

	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/token"
)

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIfStmt()
	case token.Ident:
		return p.parseAssign()
	default:
		got := p.lx.Peek()
		p.report(diag.SynUnexpectedToken, got.Span,
			fmt.Sprintf("expected a statement, found %s", got.Kind))
		return ast.NoStmtID, false
	}
}

func (p *Parser) parseReturn() (ast.StmtID, bool) {
	ret := p.advance()
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.expectNewline()
	return p.b.NewStmt(ast.Stmt{
		Kind:  ast.StmtReturn,
		Span:  ret.Span.Cover(p.lastSpan),
		Value: value,
	}), true
}

func (p *Parser) parseAssign() (ast.StmtID, bool) {
	name := p.advance()
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "'='"); !ok {
		return ast.NoStmtID, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.expectNewline()
	return p.b.NewStmt(ast.Stmt{
		Kind:     ast.StmtAssign,
		Span:     name.Span.Cover(p.lastSpan),
		Name:     name.Text,
		NameSpan: name.Span,
		Value:    value,
	}), true
}

func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	thenBlock, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	var elseBlock []ast.StmtID
	if p.at(token.KwElse) {
		p.advance()
		elseBlock, ok = p.parseBlock()
		if !ok {
			return ast.NoStmtID, false
		}
	}

	return p.b.NewStmt(ast.Stmt{
		Kind: ast.StmtIf,
		Span: ifTok.Span.Cover(p.lastSpan),
		Cond: cond,
		Then: thenBlock,
		Else: elseBlock,
	}), true
}
