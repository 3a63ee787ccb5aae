package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline terminates a logical line.
	Newline
	// Indent opens an indentation block.
	Indent
	// Dedent closes an indentation block.
	Dedent

	// Ident represents an identifier token.
	Ident
	// Int represents an integer literal.
	Int
	// String represents a string literal (type names, error messages).
	String

	// KwDef represents the 'def' keyword.
	KwDef // def
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwTrue represents the 'True' literal.
	KwTrue // True
	// KwFalse represents the 'False' literal.
	KwFalse // False
	// KwNot represents the 'not' operator.
	KwNot // not
	// KwAnd represents the 'and' operator.
	KwAnd // and
	// KwOr represents the 'or' operator.
	KwOr // or
	// KwIn represents the 'in' operator.
	KwIn // in

	// LParen '('
	LParen
	// RParen ')'
	RParen
	// LBracket '['
	LBracket
	// RBracket ']'
	RBracket
	// LBrace '{'
	LBrace
	// RBrace '}'
	RBrace
	// Comma ','
	Comma
	// Colon ':'
	Colon
	// Arrow '->'
	Arrow
	// Assign '='
	Assign
	// EqEq '=='
	EqEq
	// NotEq '!='
	NotEq
	// Lt '<'
	Lt
	// Le '<='
	Le
	// Gt '>'
	Gt
	// Ge '>='
	Ge
	// Plus '+'
	Plus
	// Minus '-'
	Minus
	// Star '*'
	Star
	// FloorDiv '//'
	FloorDiv
	// Percent '%'
	Percent
)

var kindNames = map[Kind]string{
	Invalid:  "Invalid",
	EOF:      "EOF",
	Newline:  "Newline",
	Indent:   "Indent",
	Dedent:   "Dedent",
	Ident:    "Ident",
	Int:      "Int",
	String:   "String",
	KwDef:    "def",
	KwIf:     "if",
	KwElse:   "else",
	KwReturn: "return",
	KwTrue:   "True",
	KwFalse:  "False",
	KwNot:    "not",
	KwAnd:    "and",
	KwOr:     "or",
	KwIn:     "in",
	LParen:   "(",
	RParen:   ")",
	LBracket: "[",
	RBracket: "]",
	LBrace:   "{",
	RBrace:   "}",
	Comma:    ",",
	Colon:    ":",
	Arrow:    "->",
	Assign:   "=",
	EqEq:     "==",
	NotEq:    "!=",
	Lt:       "<",
	Le:       "<=",
	Gt:       ">",
	Ge:       ">=",
	Plus:     "+",
	Minus:    "-",
	Star:     "*",
	FloorDiv: "//",
	Percent:  "%",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// IsKeyword reports whether the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwDef && k <= KwIn
}
