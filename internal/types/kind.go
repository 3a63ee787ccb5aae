package types

import (
	"strings"
)

// Family is the top-level tag of a value kind.
type Family uint8

const (
	// FamBool is the boolean kind.
	FamBool Family = iota
	// FamInt64 is the 64-bit integer kind.
	FamInt64
	// FamType is the C++-type-reference kind.
	FamType
	// FamList is an ordered sequence kind; Elem holds the element kind.
	FamList
	// FamSet is a set kind; Elem holds the element kind.
	FamSet
	// FamFn is a function signature kind (higher-order parameters).
	FamFn
	// FamError is the error kind. It unifies with every other kind: an
	// expression that raises can appear in any value position.
	FamError
)

func (f Family) String() string {
	switch f {
	case FamBool:
		return "bool"
	case FamInt64:
		return "int"
	case FamType:
		return "Type"
	case FamList:
		return "List"
	case FamSet:
		return "Set"
	case FamFn:
		return "Callable"
	case FamError:
		return "error"
	}
	return "unknown"
}

// Kind is one resolved value kind. Kinds are interned: structurally equal
// kinds share a single *Kind, so equality is pointer equality after interning.
// A Kind is immutable once created.
type Kind struct {
	Fam    Family
	Elem   *Kind   // element kind for List/Set
	Params []*Kind // parameter kinds for Fn
	Result *Kind   // result kind for Fn
}

// Scalar reports whether k is one of the leaf kinds (bool/int/Type).
func (k *Kind) Scalar() bool {
	return k.Fam == FamBool || k.Fam == FamInt64 || k.Fam == FamType
}

// Container reports whether k is a List or Set.
func (k *Kind) Container() bool {
	return k.Fam == FamList || k.Fam == FamSet
}

// String renders the kind in source-language syntax.
func (k *Kind) String() string {
	switch k.Fam {
	case FamList, FamSet:
		return k.Fam.String() + "[" + k.Elem.String() + "]"
	case FamFn:
		var sb strings.Builder
		sb.WriteString("Callable[[")
		for i, p := range k.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.String())
		}
		sb.WriteString("], ")
		sb.WriteString(k.Result.String())
		sb.WriteString("]")
		return sb.String()
	default:
		return k.Fam.String()
	}
}

// Key renders the canonical compact form used for interning, hash-consing
// and artifact serialization. The grammar is unambiguous:
// b, i, t, e, L<elem>, S<elem>, F(<p>...;<result>).
func (k *Kind) Key() string {
	var sb strings.Builder
	k.writeKey(&sb)
	return sb.String()
}

func (k *Kind) writeKey(sb *strings.Builder) {
	switch k.Fam {
	case FamBool:
		sb.WriteByte('b')
	case FamInt64:
		sb.WriteByte('i')
	case FamType:
		sb.WriteByte('t')
	case FamError:
		sb.WriteByte('e')
	case FamList:
		sb.WriteByte('L')
		k.Elem.writeKey(sb)
	case FamSet:
		sb.WriteByte('S')
		k.Elem.writeKey(sb)
	case FamFn:
		sb.WriteString("F(")
		for _, p := range k.Params {
			p.writeKey(sb)
		}
		sb.WriteByte(';')
		k.Result.writeKey(sb)
		sb.WriteByte(')')
	}
}
