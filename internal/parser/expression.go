package parser

import (
	"fmt"
	"strconv"

	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/token"
)

// parseExpr parses a full expression, including the Python-style conditional
// `then if cond else else`, which binds loosest.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	then, ok := p.parseOr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.KwIf) {
		return then, true
	}

	ifTok := p.advance()
	cond, ok := p.parseOr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.KwElse, diag.SynUnexpectedToken, "'else' of conditional expression"); !ok {
		return ast.NoExprID, false
	}
	els, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	_ = ifTok
	thenSpan := p.b.Expr(then).Span
	return p.b.NewExpr(ast.Expr{
		Kind: ast.ExprIf,
		Span: thenSpan.Cover(p.lastSpan),
		Cond: cond,
		Then: then,
		Else: els,
	}), true
}

func (p *Parser) parseOr() (ast.ExprID, bool) {
	lhs, ok := p.parseAnd()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.KwOr) {
		p.advance()
		rhs, ok := p.parseAnd()
		if !ok {
			return ast.NoExprID, false
		}
		lhs = p.binary(ast.OpOr, lhs, rhs)
	}
	return lhs, true
}

func (p *Parser) parseAnd() (ast.ExprID, bool) {
	lhs, ok := p.parseNot()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.KwAnd) {
		p.advance()
		rhs, ok := p.parseNot()
		if !ok {
			return ast.NoExprID, false
		}
		lhs = p.binary(ast.OpAnd, lhs, rhs)
	}
	return lhs, true
}

func (p *Parser) parseNot() (ast.ExprID, bool) {
	if p.at(token.KwNot) {
		notTok := p.advance()
		operand, ok := p.parseNot()
		if !ok {
			return ast.NoExprID, false
		}
		return p.b.NewExpr(ast.Expr{
			Kind: ast.ExprUnary,
			Span: notTok.Span.Cover(p.b.Expr(operand).Span),
			Op:   ast.OpNot,
			X:    operand,
		}), true
	}
	return p.parseComparison()
}

var comparisonOps = map[token.Kind]ast.Op{
	token.EqEq:  ast.OpEq,
	token.NotEq: ast.OpNe,
	token.Lt:    ast.OpLt,
	token.Le:    ast.OpLe,
	token.Gt:    ast.OpGt,
	token.Ge:    ast.OpGe,
	token.KwIn:  ast.OpIn,
}

// parseComparison parses a single, non-associative comparison.
func (p *Parser) parseComparison() (ast.ExprID, bool) {
	lhs, ok := p.parseArith()
	if !ok {
		return ast.NoExprID, false
	}
	op, isCmp := comparisonOps[p.lx.Peek().Kind]
	if !isCmp {
		return lhs, true
	}
	p.advance()
	rhs, ok := p.parseArith()
	if !ok {
		return ast.NoExprID, false
	}
	return p.binary(op, lhs, rhs), true
}

func (p *Parser) parseArith() (ast.ExprID, bool) {
	lhs, ok := p.parseTerm()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		var op ast.Op
		switch p.lx.Peek().Kind {
		case token.Plus:
			op = ast.OpAdd
		case token.Minus:
			op = ast.OpSub
		default:
			return lhs, true
		}
		p.advance()
		rhs, ok := p.parseTerm()
		if !ok {
			return ast.NoExprID, false
		}
		lhs = p.binary(op, lhs, rhs)
	}
}

func (p *Parser) parseTerm() (ast.ExprID, bool) {
	lhs, ok := p.parseFactor()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		var op ast.Op
		switch p.lx.Peek().Kind {
		case token.Star:
			op = ast.OpMul
		case token.FloorDiv:
			op = ast.OpFloorDiv
		case token.Percent:
			op = ast.OpMod
		default:
			return lhs, true
		}
		p.advance()
		rhs, ok := p.parseFactor()
		if !ok {
			return ast.NoExprID, false
		}
		lhs = p.binary(op, lhs, rhs)
	}
}

func (p *Parser) parseFactor() (ast.ExprID, bool) {
	if p.at(token.Minus) {
		minus := p.advance()
		operand, ok := p.parseFactor()
		if !ok {
			return ast.NoExprID, false
		}
		return p.b.NewExpr(ast.Expr{
			Kind: ast.ExprUnary,
			Span: minus.Span.Cover(p.b.Expr(operand).Span),
			Op:   ast.OpNeg,
			X:    operand,
		}), true
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by call suffixes.
func (p *Parser) parsePostfix() (ast.ExprID, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.LParen) {
		p.advance()
		var args []ast.ExprID
		for !p.at(token.RParen) {
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')'"); !ok {
			return ast.NoExprID, false
		}
		expr = p.b.NewExpr(ast.Expr{
			Kind:   ast.ExprCall,
			Span:   p.b.Expr(expr).Span.Cover(p.lastSpan),
			Callee: expr,
			Args:   args,
		})
	}
	return expr, true
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Int:
		p.advance()
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			p.report(diag.SynUnexpectedToken, tok.Span, "integer literal out of range")
			return ast.NoExprID, false
		}
		return p.b.NewExpr(ast.Expr{Kind: ast.ExprIntLit, Span: tok.Span, IntVal: v}), true

	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.b.NewExpr(ast.Expr{
			Kind:    ast.ExprBoolLit,
			Span:    tok.Span,
			BoolVal: tok.Kind == token.KwTrue,
		}), true

	case token.String:
		p.advance()
		return p.b.NewExpr(ast.Expr{Kind: ast.ExprStringLit, Span: tok.Span, StrVal: tok.Text}), true

	case token.Ident:
		p.advance()
		return p.b.NewExpr(ast.Expr{Kind: ast.ExprIdent, Span: tok.Span, StrVal: tok.Text}), true

	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')'"); !ok {
			return ast.NoExprID, false
		}
		return inner, true

	case token.LBracket:
		return p.parseContainer(token.RBracket, ast.ExprList, diag.SynUnclosedBracket)

	case token.LBrace:
		return p.parseContainer(token.RBrace, ast.ExprSet, diag.SynUnclosedBrace)

	default:
		p.report(diag.SynExpectExpression, tok.Span,
			fmt.Sprintf("expected an expression, found %s", tok.Kind))
		return ast.NoExprID, false
	}
}

// parseContainer parses [a, b] and {a, b} literals. Empty literals are
// rejected here: the element kind would be unknowable, and the language
// provides empty_list/empty_set builtins instead.
func (p *Parser) parseContainer(closing token.Kind, kind ast.ExprKind, unclosedCode diag.Code) (ast.ExprID, bool) {
	open := p.advance()
	var elems []ast.ExprID
	for !p.at(closing) {
		e, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, e)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(closing, unclosedCode, fmt.Sprintf("'%s'", closing)); !ok {
		return ast.NoExprID, false
	}
	if len(elems) == 0 {
		p.report(diag.SynEmptyContainer, open.Span.Cover(p.lastSpan),
			"empty container literals are not allowed; use empty_list/empty_set")
		return ast.NoExprID, false
	}
	return p.b.NewExpr(ast.Expr{
		Kind:  kind,
		Span:  open.Span.Cover(p.lastSpan),
		Elems: elems,
	}), true
}

func (p *Parser) binary(op ast.Op, lhs, rhs ast.ExprID) ast.ExprID {
	return p.b.NewExpr(ast.Expr{
		Kind: ast.ExprBinary,
		Span: p.b.Expr(lhs).Span.Cover(p.b.Expr(rhs).Span),
		Op:   op,
		X:    lhs,
		Y:    rhs,
	})
}
