package diag

import (
	"fmt"
)

// Code identifies one diagnostic kind. Codes are grouped by pipeline stage:
// 1000 lexical, 2000 syntax, 3000 type, 4000 lowering, 5000 instantiation
// limits.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexBadNumber          Code = 1002
	LexBadIndent          Code = 1003
	LexUnterminatedString Code = 1004
	LexTabIndent          Code = 1005

	// Syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectColon        Code = 2004
	SynExpectIndent       Code = 2005
	SynExpectExpression   Code = 2006
	SynExpectType         Code = 2007
	SynExpectArrow        Code = 2008
	SynUnclosedParen      Code = 2009
	SynUnclosedBracket    Code = 2010
	SynUnclosedBrace      Code = 2011
	SynMissingReturn      Code = 2012
	SynEmptyContainer     Code = 2013

	// Type
	TypeInfo              Code = 3000
	TypeUndefinedName     Code = 3001
	TypeRedefinedName     Code = 3002
	TypeArityMismatch     Code = 3003
	TypeArgMismatch       Code = 3004
	TypeBranchMismatch    Code = 3005
	TypeCondNotBool       Code = 3006
	TypeNotCallable       Code = 3007
	TypeBadElement        Code = 3008
	TypeUnknownAnnotation Code = 3009
	TypeBadOperand        Code = 3010
	TypeReturnMismatch    Code = 3011
	TypeUnreachable       Code = 3012
	TypeMissingReturn     Code = 3013

	// Lowering. Inexpressible constructs are compiler defects; ambiguous
	// specializations point at the source program.
	LowerInfo           Code = 4000
	LowerInexpressible  Code = 4001
	LowerAmbiguousSpec  Code = 4002
	LowerMissingBuiltin Code = 4003

	// Instantiation limits
	InstInfo           Code = 5000
	InstDepthExceeded  Code = 5001
	InstCountExceeded  Code = 5002
)

// Category is the coarse error class used for process exit decisions.
type Category uint8

const (
	CatNone Category = iota
	CatLex
	CatSyntax
	CatType
	CatLowering
	CatInstLimit
)

func (c Category) String() string {
	switch c {
	case CatLex:
		return "lex"
	case CatSyntax:
		return "syntax"
	case CatType:
		return "type"
	case CatLowering:
		return "lowering"
	case CatInstLimit:
		return "instantiation-limit"
	}
	return "none"
}

// Category maps a code to its pipeline stage class.
func (c Code) Category() Category {
	switch {
	case c >= 1000 && c < 2000:
		return CatLex
	case c >= 2000 && c < 3000:
		return CatSyntax
	case c >= 3000 && c < 4000:
		return CatType
	case c >= 4000 && c < 5000:
		return CatLowering
	case c >= 5000 && c < 6000:
		return CatInstLimit
	}
	return CatNone
}

// Fatal reports whether a diagnostic with this code must fail the build.
func (c Code) Fatal() bool {
	switch c.Category() {
	case CatLex, CatSyntax, CatType, CatLowering, CatInstLimit:
		return true
	}
	return false
}

func (c Code) String() string {
	return fmt.Sprintf("PYR%04d", uint16(c))
}
