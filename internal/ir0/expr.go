package ir0

// ExprKind enumerates IR0 expression variants. IR0 expressions are the
// right-hand sides of template bindings: literals, parameter references,
// instantiations, member accesses and scalar operators.
type ExprKind uint8

const (
	// ExprLitBool and ExprLitInt are scalar constants.
	ExprLitBool ExprKind = iota
	ExprLitInt
	// ExprTypeLit names an atomic nonlocal C++ type ("int", "void", ...).
	ExprTypeLit
	// ExprParamRef reads a template parameter in scope.
	ExprParamRef
	// ExprDeclRef names a declaration of this module, used as a
	// template-template argument or as the callee of an instantiation.
	ExprDeclRef
	// ExprGlobalRef names a template provided by the runtime contract.
	ExprGlobalRef
	// ExprInst instantiates X with Args.
	ExprInst
	// ExprMember accesses a class member (value, type, error) of X.
	ExprMember
	// ExprPointer forms X*.
	ExprPointer
	// ExprNot and ExprNeg are unary scalar operators on X.
	ExprNot
	ExprNeg
	// ExprBin applies Op to X and Y.
	ExprBin
)

func (k ExprKind) String() string {
	switch k {
	case ExprLitBool:
		return "LitBool"
	case ExprLitInt:
		return "LitInt"
	case ExprTypeLit:
		return "TypeLit"
	case ExprParamRef:
		return "ParamRef"
	case ExprDeclRef:
		return "DeclRef"
	case ExprGlobalRef:
		return "GlobalRef"
	case ExprInst:
		return "Inst"
	case ExprMember:
		return "Member"
	case ExprPointer:
		return "Pointer"
	case ExprNot:
		return "Not"
	case ExprNeg:
		return "Neg"
	case ExprBin:
		return "Bin"
	}
	return "Unknown"
}

// BinOp enumerates scalar binary operators. Logical connectives never reach
// IR0: they were turned into conditionals earlier and conditionals become
// specializations.
type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

var binOpNames = [...]string{"+", "-", "*", "/", "%", "==", "!=", "<", "<=", ">", ">="}

func (op BinOp) String() string {
	if int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return "?"
}

// Expr is one immutable IR0 node. Subtrees may be shared; passes build new
// graphs instead of mutating.
type Expr struct {
	Kind ExprKind

	Bool bool
	Int  int64

	// ExprTypeLit, ExprGlobalRef, ExprMember: the name.
	// ExprParamRef: the parameter name; Pack marks a pack expansion.
	Name string
	Pack bool

	// ExprDeclRef
	Decl DeclID

	// ExprInst callee, ExprMember/ExprPointer/ExprNot/ExprNeg operand,
	// ExprBin left operand.
	X *Expr
	// ExprBin right operand.
	Y *Expr

	// ExprInst arguments.
	Args []*Expr

	Op BinOp
}

func LitBool(v bool) *Expr  { return &Expr{Kind: ExprLitBool, Bool: v} }
func LitInt(v int64) *Expr  { return &Expr{Kind: ExprLitInt, Int: v} }
func TypeLit(n string) *Expr { return &Expr{Kind: ExprTypeLit, Name: n} }

func ParamRef(n string) *Expr { return &Expr{Kind: ExprParamRef, Name: n} }

// PackRef references a parameter pack in expanded position.
func PackRef(n string) *Expr { return &Expr{Kind: ExprParamRef, Name: n, Pack: true} }

func DeclRef(id DeclID) *Expr  { return &Expr{Kind: ExprDeclRef, Decl: id} }
func GlobalRef(n string) *Expr { return &Expr{Kind: ExprGlobalRef, Name: n} }

func Inst(callee *Expr, args ...*Expr) *Expr {
	return &Expr{Kind: ExprInst, X: callee, Args: args}
}

func Member(x *Expr, name string) *Expr {
	return &Expr{Kind: ExprMember, X: x, Name: name}
}

func Pointer(x *Expr) *Expr { return &Expr{Kind: ExprPointer, X: x} }
func Not(x *Expr) *Expr     { return &Expr{Kind: ExprNot, X: x} }
func Neg(x *Expr) *Expr     { return &Expr{Kind: ExprNeg, X: x} }

func Bin(op BinOp, x, y *Expr) *Expr {
	return &Expr{Kind: ExprBin, Op: op, X: x, Y: y}
}
