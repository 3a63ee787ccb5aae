package lexer

import (
	"pyrite/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	mark := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(mark)
	text := string(lx.file.Content[sp.Start:sp.End])

	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: sp}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
