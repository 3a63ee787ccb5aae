package diag

import "pyrite/internal/source"

// ReportBuilder collects the parts of one diagnostic before it reaches a
// Reporter. A nil builder is a no-op, so call sites can chain freely.
type ReportBuilder struct {
	reporter Reporter
	sev      Severity
	code     Code
	primary  source.Span
	msg      string
	notes    []Note
	emitted  bool
}

func report(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{reporter: r, sev: sev, code: code, primary: primary, msg: msg}
}

// ReportError starts an error-severity diagnostic.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return report(r, SevError, code, primary, msg)
}

// ReportWarning starts a warning-severity diagnostic.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return report(r, SevWarning, code, primary, msg)
}

// WithNote attaches secondary context.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.notes = append(b.notes, Note{Span: sp, Msg: msg})
	}
	return b
}

// Emit hands the diagnostic to the reporter. Repeated calls do nothing.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	b.emitted = true
	if b.reporter != nil {
		b.reporter.Report(b.code, b.sev, b.primary, b.msg, b.notes)
	}
}
