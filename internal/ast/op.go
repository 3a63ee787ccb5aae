package ast

// Op enumerates unary and binary operators of the surface language.
type Op uint8

const (
	OpNone Op = iota

	// unary
	OpNeg
	OpNot

	// arithmetic
	OpAdd
	OpSub
	OpMul
	OpFloorDiv
	OpMod

	// comparison
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe

	// logic (desugared into conditionals by the IR1 builder)
	OpAnd
	OpOr

	// membership: x in xs
	OpIn
)

func (o Op) String() string {
	switch o {
	case OpNeg:
		return "-"
	case OpNot:
		return "not"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpFloorDiv:
		return "//"
	case OpMod:
		return "%"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpIn:
		return "in"
	}
	return "?"
}

// Comparison reports whether the operator yields a bool from two operands of
// one shared kind.
func (o Op) Comparison() bool {
	switch o {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// Arithmetic reports whether the operator is int × int → int.
func (o Op) Arithmetic() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpFloorDiv, OpMod:
		return true
	}
	return false
}
