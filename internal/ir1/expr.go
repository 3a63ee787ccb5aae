package ir1

import (
	"pyrite/internal/source"
	"pyrite/internal/types"
)

// ExprKind enumerates IR1 expression variants. IR1 is purely functional:
// constants, references, calls (including recursive ones), conditionals and
// primitive operations. There are no loops and no mutation.
type ExprKind uint8

const (
	// ExprConst is a bool or int constant.
	ExprConst ExprKind = iota
	// ExprVarRef reads a function parameter.
	ExprVarRef
	// ExprFnRef names a module function used as a value (higher-order
	// argument to transform/fold).
	ExprFnRef
	// ExprCall invokes a module function (possibly the enclosing one) or a
	// function-kinded parameter.
	ExprCall
	// ExprCond is if/else with both branches of one kind.
	ExprCond
	// ExprPrim applies one primitive operation to its operands.
	ExprPrim
)

func (k ExprKind) String() string {
	switch k {
	case ExprConst:
		return "Const"
	case ExprVarRef:
		return "VarRef"
	case ExprFnRef:
		return "FnRef"
	case ExprCall:
		return "Call"
	case ExprCond:
		return "Cond"
	case ExprPrim:
		return "Prim"
	}
	return "Unknown"
}

// PrimOp enumerates primitive operations. Sequence/set primitives map onto
// the runtime contract; scalar ops map onto target-language operators.
type PrimOp uint8

const (
	PrimNone PrimOp = iota

	// sequence/set contract
	PrimConcat
	PrimTransform
	PrimFold
	PrimAddToSet
	PrimIsInSet
	PrimIsInList
	PrimSetEquals
	PrimSetOf
	PrimSum
	PrimAll
	PrimAny
	PrimListLit
	PrimSetLit
	PrimEmptyList
	PrimEmptySet

	// type construction
	PrimTypeLit // atomic C++ type from a name
	PrimPtr     // pointer-of

	// error channel
	PrimErrorLit

	// scalar ops
	PrimNot
	PrimNeg
	PrimAdd
	PrimSub
	PrimMul
	PrimFloorDiv
	PrimMod
	PrimEq
	PrimNe
	PrimLt
	PrimLe
	PrimGt
	PrimGe
)

var primNames = map[PrimOp]string{
	PrimConcat:    "concat",
	PrimTransform: "transform",
	PrimFold:      "fold",
	PrimAddToSet:  "add_to_set",
	PrimIsInSet:   "is_in_set",
	PrimIsInList:  "is_in_list",
	PrimSetEquals: "set_equals",
	PrimSetOf:     "set_of",
	PrimSum:       "sum",
	PrimAll:       "all",
	PrimAny:       "any",
	PrimListLit:   "list",
	PrimSetLit:    "set",
	PrimEmptyList: "empty_list",
	PrimEmptySet:  "empty_set",
	PrimTypeLit:   "type",
	PrimPtr:       "ptr",
	PrimErrorLit:  "error",
	PrimNot:       "not",
	PrimNeg:       "neg",
	PrimAdd:       "+",
	PrimSub:       "-",
	PrimMul:       "*",
	PrimFloorDiv:  "//",
	PrimMod:       "%",
	PrimEq:        "==",
	PrimNe:        "!=",
	PrimLt:        "<",
	PrimLe:        "<=",
	PrimGt:        ">",
	PrimGe:        ">=",
}

func (p PrimOp) String() string {
	if s, ok := primNames[p]; ok {
		return s
	}
	return "?"
}

// ConstKind tags the payload of an ExprConst node.
type ConstKind uint8

const (
	ConstBool ConstKind = iota
	ConstInt
)

// Const is a literal value.
type Const struct {
	Kind ConstKind
	Bool bool
	Int  int64
}

// Expr is one immutable IR1 node. Subtrees may be shared (assignment
// substitution creates DAGs); nothing mutates a node after the builder
// finishes.
type Expr struct {
	Kind   ExprKind
	Span   source.Span
	Result *types.Kind

	// ExprConst
	Const Const

	// ExprVarRef / ExprFnRef: referenced name.
	// ExprCall: callee name; CalleeVar says the name is a parameter rather
	// than a module function.
	// ExprPrim with PrimTypeLit/PrimErrorLit: the literal payload.
	Name      string
	CalleeVar bool

	// ExprCall / ExprPrim operands
	Args []*Expr

	// ExprCond
	Cond *Expr
	Then *Expr
	Else *Expr

	// ExprPrim
	Prim PrimOp
}
