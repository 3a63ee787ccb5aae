package diag

import "pyrite/internal/source"

// Note attaches secondary context to a diagnostic (e.g. a definition site,
// or one frame of an instantiation call chain).
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one structured compiler message: severity, stable code,
// primary span and any notes.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// New builds a diagnostic of the given severity without notes.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary}
}

// NewError builds an error-severity diagnostic without notes.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: SevError, Code: code, Message: msg, Primary: primary}
}

// WithNote returns a copy of d with one more note attached.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
