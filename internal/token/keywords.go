package token

var keywords = map[string]Kind{
	"def":    KwDef,
	"if":     KwIf,
	"else":   KwElse,
	"return": KwReturn,
	"True":   KwTrue,
	"False":  KwFalse,
	"not":    KwNot,
	"and":    KwAnd,
	"or":     KwOr,
	"in":     KwIn,
}

// LookupKeyword maps an identifier spelling to its keyword kind.
// The second result is false for ordinary identifiers.
func LookupKeyword(s string) (Kind, bool) {
	k, ok := keywords[s]
	return k, ok
}
