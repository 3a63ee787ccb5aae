package lexer

import (
	"fmt"

	"pyrite/internal/diag"
	"pyrite/internal/token"
)

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	mark := lx.cursor.Mark()
	ch := lx.cursor.Bump()

	kind := token.Invalid
	switch ch {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case ',':
		kind = token.Comma
	case ':':
		kind = token.Colon
	case '+':
		kind = token.Plus
	case '*':
		kind = token.Star
	case '%':
		kind = token.Percent
	case '-':
		kind = token.Minus
		if lx.cursor.Eat('>') {
			kind = token.Arrow
		}
	case '=':
		kind = token.Assign
		if lx.cursor.Eat('=') {
			kind = token.EqEq
		}
	case '!':
		if lx.cursor.Eat('=') {
			kind = token.NotEq
		}
	case '<':
		kind = token.Lt
		if lx.cursor.Eat('=') {
			kind = token.Le
		}
	case '>':
		kind = token.Gt
		if lx.cursor.Eat('=') {
			kind = token.Ge
		}
	case '/':
		if lx.cursor.Eat('/') {
			kind = token.FloorDiv
		}
	}

	sp := lx.cursor.SpanFrom(mark)
	if kind == token.Invalid {
		diag.ReportError(lx.opts.Reporter, diag.LexUnknownChar, sp,
			fmt.Sprintf("unexpected character %q", ch)).Emit()
	}
	return token.Token{Kind: kind, Span: sp}
}
