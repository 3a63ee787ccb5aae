package lexer

import (
	"pyrite/internal/diag"
	"pyrite/internal/token"
)

// scanString handles single- and double-quoted literals. The language uses
// strings only for atomic type names and error messages, so there are no
// escape sequences and no multi-line forms.
func (lx *Lexer) scanString() token.Token {
	mark := lx.cursor.Mark()
	quote := lx.cursor.Bump()

	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == '\n' {
			break
		}
		lx.cursor.Bump()
		if ch == quote {
			sp := lx.cursor.SpanFrom(mark)
			return token.Token{
				Kind: token.String,
				Span: sp,
				Text: string(lx.file.Content[sp.Start+1 : sp.End-1]),
			}
		}
	}

	sp := lx.cursor.SpanFrom(mark)
	diag.ReportError(lx.opts.Reporter, diag.LexUnterminatedString, sp,
		"unterminated string literal").Emit()
	return token.Token{Kind: token.Invalid, Span: sp}
}
