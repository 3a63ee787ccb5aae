package parser

import (
	"fmt"

	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/lexer"
	"pyrite/internal/source"
	"pyrite/internal/token"
)

// Options configures one parse.
type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
}

// Result is the outcome of parsing one file.
type Result struct {
	Builder *ast.Builder
	Errors  uint
}

// Parser holds the state for parsing a single file.
type Parser struct {
	lx       *lexer.Lexer
	b        *ast.Builder
	opts     Options
	errors   uint
	lastSpan source.Span
}

// ParseFile is the entry point for parsing one file. It requires an already
// constructed lexer over a source.File.
func ParseFile(file source.FileID, lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:       lx,
		b:        ast.NewBuilder(file),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()
	return Result{Builder: p.b, Errors: p.errors}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) advance() token.Token {
	t := p.lx.Next()
	p.lastSpan = t.Span
	return t
}

// expect consumes a token of kind k or reports a diagnostic with the given
// code and returns false.
func (p *Parser) expect(k token.Kind, code diag.Code, what string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	got := p.lx.Peek()
	p.report(code, got.Span, fmt.Sprintf("expected %s, found %s", what, got.Kind))
	return got, false
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors {
		return
	}
	p.errors++
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
}

// skipBlankLines consumes Newline tokens between items.
func (p *Parser) skipBlankLines() {
	for p.at(token.Newline) {
		p.advance()
	}
}

// parseItems is the top-level loop: functions and global bindings until EOF.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for {
		p.skipBlankLines()
		if p.at(token.EOF) {
			break
		}
		if !p.parseItem() {
			p.resyncTop()
		}
	}
	p.b.Module.Span = startSpan.Cover(p.lastSpan)
}

func (p *Parser) parseItem() bool {
	switch p.lx.Peek().Kind {
	case token.KwDef:
		return p.parseFn()
	case token.Ident:
		return p.parseGlobal()
	default:
		got := p.lx.Peek()
		p.report(diag.SynUnexpectedTopLevel, got.Span,
			fmt.Sprintf("expected a function definition or a binding, found %s", got.Kind))
		return false
	}
}

// parseGlobal parses a module-level `name = expr` binding.
func (p *Parser) parseGlobal() bool {
	name := p.advance()
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "'='"); !ok {
		return false
	}
	value, ok := p.parseExpr()
	if !ok {
		return false
	}
	p.expectNewline()
	p.b.NewGlobal(ast.Global{
		Name:     name.Text,
		NameSpan: name.Span,
		Span:     name.Span.Cover(p.lastSpan),
		Value:    value,
	})
	return true
}

func (p *Parser) expectNewline() {
	if p.at(token.Newline) {
		p.advance()
		return
	}
	if p.at(token.EOF) || p.at(token.Dedent) {
		return
	}
	got := p.lx.Peek()
	p.report(diag.SynUnexpectedToken, got.Span,
		fmt.Sprintf("expected end of line, found %s", got.Kind))
	p.resyncLine()
}

// resyncTop skips to the start of the next top-level line.
func (p *Parser) resyncTop() {
	depth := 0
	for {
		switch p.lx.Peek().Kind {
		case token.EOF:
			return
		case token.Indent:
			depth++
		case token.Dedent:
			if depth > 0 {
				depth--
			}
		case token.Newline:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// resyncLine skips to the end of the current logical line.
func (p *Parser) resyncLine() {
	for !p.at(token.Newline) && !p.at(token.EOF) && !p.at(token.Dedent) {
		p.advance()
	}
	if p.at(token.Newline) {
		p.advance()
	}
}
