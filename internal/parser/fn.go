package parser

import (
	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/token"
)

// parseFn parses one `def name(params) -> ret:` item with its body block.
func (p *Parser) parseFn() bool {
	def := p.advance() // def

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "function name")
	if !ok {
		return false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "'('"); !ok {
		return false
	}

	var params []ast.Param
	for !p.at(token.RParen) {
		pname, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "parameter name")
		if !ok {
			return false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "':' after parameter name"); !ok {
			return false
		}
		ptype, ok := p.parseType()
		if !ok {
			return false
		}
		params = append(params, ast.Param{Name: pname.Text, NameSpan: pname.Span, Type: ptype})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')'"); !ok {
		return false
	}

	if _, ok := p.expect(token.Arrow, diag.SynExpectArrow, "'->' and a return type"); !ok {
		return false
	}
	ret, ok := p.parseType()
	if !ok {
		return false
	}

	body, ok := p.parseBlock()
	if !ok {
		return false
	}

	p.b.NewFn(ast.Fn{
		Name:     name.Text,
		NameSpan: name.Span,
		Span:     def.Span.Cover(p.lastSpan),
		Params:   params,
		Ret:      ret,
		Body:     body,
	})
	return true
}

// parseBlock parses `: NEWLINE INDENT stmt+ DEDENT`.
func (p *Parser) parseBlock() ([]ast.StmtID, bool) {
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "':'"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Newline, diag.SynUnexpectedToken, "end of line"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Indent, diag.SynExpectIndent, "an indented block"); !ok {
		return nil, false
	}

	var stmts []ast.StmtID
	for !p.at(token.Dedent) && !p.at(token.EOF) {
		if p.at(token.Newline) {
			p.advance()
			continue
		}
		s, ok := p.parseStmt()
		if !ok {
			p.resyncLine()
			continue
		}
		stmts = append(stmts, s)
	}
	if p.at(token.Dedent) {
		p.advance()
	}

	if len(stmts) == 0 {
		p.report(diag.SynExpectExpression, p.lastSpan, "block cannot be empty")
		return nil, false
	}
	return stmts, true
}
