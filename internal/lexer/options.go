package lexer

import "pyrite/internal/diag"

// Options configures one Lexer instance.
type Options struct {
	// Reporter receives lexical diagnostics. Nil means diagnostics are dropped.
	Reporter diag.Reporter
}
