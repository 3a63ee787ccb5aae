package ir0

// DeclID names a template declaration inside a Module. IDs are 1-based;
// NoDeclID is the zero sentinel.
type DeclID uint32

const NoDeclID DeclID = 0

func (id DeclID) IsValid() bool { return id != NoDeclID }
