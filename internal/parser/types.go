package parser

import (
	"fmt"

	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/token"
)

// parseType parses a written type annotation:
// bool | int | Type | List[T] | Set[T] | Callable[[T1, ...], R]
func (p *Parser) parseType() (ast.TypeID, bool) {
	name, ok := p.expect(token.Ident, diag.SynExpectType, "a type")
	if !ok {
		return ast.NoTypeID, false
	}

	switch name.Text {
	case "List", "Set":
		if _, ok := p.expect(token.LBracket, diag.SynExpectType,
			fmt.Sprintf("'[' after %s", name.Text)); !ok {
			return ast.NoTypeID, false
		}
		elem, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "']'"); !ok {
			return ast.NoTypeID, false
		}
		kind := ast.TypeSynList
		if name.Text == "Set" {
			kind = ast.TypeSynSet
		}
		return p.b.NewType(ast.TypeSyn{
			Kind: kind,
			Span: name.Span.Cover(p.lastSpan),
			Elem: elem,
		}), true

	case "Callable":
		return p.parseCallableType(name)

	default:
		return p.b.NewType(ast.TypeSyn{
			Kind: ast.TypeSynName,
			Span: name.Span,
			Name: name.Text,
		}), true
	}
}

// parseCallableType parses Callable[[T1, ...], R].
func (p *Parser) parseCallableType(name token.Token) (ast.TypeID, bool) {
	if _, ok := p.expect(token.LBracket, diag.SynExpectType, "'[' after Callable"); !ok {
		return ast.NoTypeID, false
	}
	if _, ok := p.expect(token.LBracket, diag.SynExpectType, "'[' opening the parameter list"); !ok {
		return ast.NoTypeID, false
	}

	var params []ast.TypeID
	for !p.at(token.RBracket) {
		pt, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		params = append(params, pt)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "']'"); !ok {
		return ast.NoTypeID, false
	}
	if _, ok := p.expect(token.Comma, diag.SynExpectType, "',' and a result type"); !ok {
		return ast.NoTypeID, false
	}
	result, ok := p.parseType()
	if !ok {
		return ast.NoTypeID, false
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "']'"); !ok {
		return ast.NoTypeID, false
	}

	return p.b.NewType(ast.TypeSyn{
		Kind:   ast.TypeSynCallable,
		Span:   name.Span.Cover(p.lastSpan),
		Params: params,
		Result: result,
	}), true
}
