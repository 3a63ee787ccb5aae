package ast

type (
	ExprID   uint32
	StmtID   uint32
	TypeID   uint32
	FnID     uint32
	GlobalID uint32
)

const (
	NoExprID   ExprID   = 0
	NoStmtID   StmtID   = 0
	NoTypeID   TypeID   = 0
	NoFnID     FnID     = 0
	NoGlobalID GlobalID = 0
)

func (id ExprID) IsValid() bool   { return id != NoExprID }
func (id StmtID) IsValid() bool   { return id != NoStmtID }
func (id TypeID) IsValid() bool   { return id != NoTypeID }
func (id FnID) IsValid() bool     { return id != NoFnID }
func (id GlobalID) IsValid() bool { return id != NoGlobalID }
