package lexer

import (
	"pyrite/internal/diag"
	"pyrite/internal/source"
	"pyrite/internal/token"
)

// Lexer turns one source file into a token stream. Indentation is part of the
// grammar: at the start of each logical line the lexer compares leading spaces
// against its indent stack and emits Indent/Dedent tokens, CPython-style.
// Blank and comment-only lines produce no tokens at all.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	look    *token.Token  // 1-token lookahead buffer
	pending []token.Token // queued Indent/Dedent/Newline tokens
	indents []uint32      // indentation stack, always starts with 0
	atStart bool          // next scan begins a logical line
	done    bool          // EOF token already produced
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:    file,
		cursor:  NewCursor(file),
		opts:    opts,
		indents: []uint32{0},
		atStart: true,
	}
}

// Next returns the next token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		t := lx.scan()
		lx.look = &t
	}
	return *lx.look
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) scan() token.Token {
	if len(lx.pending) > 0 {
		tok := lx.pending[0]
		lx.pending = lx.pending[1:]
		return tok
	}
	if lx.done {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	if lx.atStart {
		lx.atStart = false
		lx.handleIndentation()
		if len(lx.pending) > 0 {
			tok := lx.pending[0]
			lx.pending = lx.pending[1:]
			return tok
		}
		if lx.done {
			return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
		}
	}

	lx.skipInlineSpace()

	if lx.cursor.EOF() {
		return lx.finish()
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '\n':
		lx.cursor.Bump()
		lx.atStart = true
		return token.Token{Kind: token.Newline, Span: lx.EmptySpan()}

	case ch == '#':
		lx.skipComment()
		return lx.scan()

	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '"' || ch == '\'':
		return lx.scanString()

	default:
		return lx.scanOperatorOrPunct()
	}
}

// handleIndentation measures the leading spaces of the coming line and queues
// Indent/Dedent tokens. Lines that hold only spaces or a comment are skipped.
func (lx *Lexer) handleIndentation() {
	for {
		mark := lx.cursor.Mark()
		width := uint32(0)
		for !lx.cursor.EOF() {
			ch := lx.cursor.Peek()
			if ch == ' ' {
				lx.cursor.Bump()
				width++
				continue
			}
			if ch == '\t' {
				diag.ReportError(lx.opts.Reporter, diag.LexTabIndent, lx.EmptySpan(),
					"tab characters are not allowed in indentation").Emit()
				lx.cursor.Bump()
				width++
				continue
			}
			break
		}

		if lx.cursor.EOF() {
			lx.finishInto()
			return
		}
		ch := lx.cursor.Peek()
		if ch == '\n' {
			// blank line; ignore entirely
			lx.cursor.Bump()
			continue
		}
		if ch == '#' {
			lx.skipComment()
			continue
		}

		lx.queueIndents(width, lx.cursor.SpanFrom(mark))
		return
	}
}

func (lx *Lexer) queueIndents(width uint32, sp source.Span) {
	top := lx.indents[len(lx.indents)-1]
	switch {
	case width > top:
		lx.indents = append(lx.indents, width)
		lx.pending = append(lx.pending, token.Token{Kind: token.Indent, Span: sp})
	case width < top:
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > width {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
		}
		if lx.indents[len(lx.indents)-1] != width {
			diag.ReportError(lx.opts.Reporter, diag.LexBadIndent, sp,
				"unindent does not match any outer indentation level").Emit()
		}
	}
}

// finish emits the trailing Newline, pending Dedents and the final EOF.
func (lx *Lexer) finish() token.Token {
	lx.finishInto()
	tok := lx.pending[0]
	lx.pending = lx.pending[1:]
	return tok
}

func (lx *Lexer) finishInto() {
	sp := lx.EmptySpan()
	lx.pending = append(lx.pending, token.Token{Kind: token.Newline, Span: sp})
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
	}
	lx.pending = append(lx.pending, token.Token{Kind: token.EOF, Span: sp})
	lx.done = true
}

func (lx *Lexer) skipInlineSpace() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == ' ' || ch == '\t' || ch == '\r' {
			lx.cursor.Bump()
			continue
		}
		break
	}
}

func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}
