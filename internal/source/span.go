package source

import "fmt"

// Span marks the byte range [Start, End) of one file. Every AST node, token
// and diagnostic carries one; it is the only thing the later stages keep
// from the original text.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool { return s.Start == s.End }

func (s Span) Len() uint32 { return s.End - s.Start }

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover widens s just enough to contain other. Cross-file spans cannot be
// merged; s comes back unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	return Span{
		File:  s.File,
		Start: min(s.Start, other.Start),
		End:   max(s.End, other.End),
	}
}
