package token

import (
	"fmt"

	"pyrite/internal/source"
)

// Token is one lexical element with its source span.
// Text carries the raw source slice for identifiers and literals; for
// punctuation and keywords it is left empty.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

func (t Token) String() string {
	if t.Text != "" {
		return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Span)
	}
	return fmt.Sprintf("%s@%s", t.Kind, t.Span)
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}
