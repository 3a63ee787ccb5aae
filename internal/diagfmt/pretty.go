package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pyrite/internal/diag"
	"pyrite/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// Pretty formats diagnostics for humans. It walks bag.Items() (the caller is
// expected to Sort() first) and prints, per diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	    <source line>
//	    ^~~~ underline over the primary span
//
// followed by notes in the same shape. Color is applied only when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeOne(w, d, fs, opts)
	}
}

func writeOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	path, lc := fs.Position(d.Primary)
	sev := d.Severity.String()
	code := d.Code.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
		code = noteColor.Sprint(code)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, lc.Line, lc.Col, sev, code, d.Message)

	writeContext(w, d.Primary, fs, opts)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		if n.Span.Empty() && n.Span.File == 0 {
			fmt.Fprintf(w, "  note: %s\n", n.Msg)
			continue
		}
		npath, nlc := fs.Position(n.Span)
		fmt.Fprintf(w, "  %s:%d:%d: note: %s\n", npath, nlc.Line, nlc.Col, n.Msg)
	}
}

// writeContext prints the offending source line and a caret underline whose
// width tracks display cells, not bytes.
func writeContext(w io.Writer, sp source.Span, fs *source.FileSet, opts PrettyOpts) {
	line := fs.LineText(sp.File, sp.Start)
	if line == "" {
		return
	}
	_, lc := fs.Position(sp)
	fmt.Fprintf(w, "    %s\n", line)

	col := int(lc.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(line[:col])
	width := int(sp.Len())
	if width < 1 {
		width = 1
	}
	if col+width > len(line) {
		width = len(line) - col
		if width < 1 {
			width = 1
		}
	}
	underline := "^" + strings.Repeat("~", max(0, runewidth.StringWidth(line[col:min(len(line), col+width)])-1))
	if opts.Color {
		underline = caretColor.Sprint(underline)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), underline)
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
