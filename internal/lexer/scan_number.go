package lexer

import (
	"pyrite/internal/diag"
	"pyrite/internal/token"
)

func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()
	for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// a digit run followed by an identifier character is one malformed token
	if !lx.cursor.EOF() && isIdentStart(lx.cursor.Peek()) {
		for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(mark)
		diag.ReportError(lx.opts.Reporter, diag.LexBadNumber, sp,
			"malformed integer literal").Emit()
		return token.Token{Kind: token.Invalid, Span: sp}
	}

	sp := lx.cursor.SpanFrom(mark)
	return token.Token{
		Kind: token.Int,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
