package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"pyrite/internal/source"
)

// Cursor walks the raw bytes of one file. It knows nothing about tokens;
// the scanners drive it and cut spans out of the distance it covered.
type Cursor struct {
	id  source.FileID
	src []byte
	lim uint32
	Off uint32
}

func NewCursor(f *source.File) Cursor {
	lim, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file content overflow: %w", err))
	}
	return Cursor{id: f.ID, src: f.Content, lim: lim}
}

func (c *Cursor) EOF() bool { return c.Off >= c.lim }

// Peek reads the current byte without advancing; 0 past the end.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.Off]
}

// Bump consumes and returns the current byte; 0 past the end.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.Off]
	c.Off++
	return b
}

// Eat advances past the current byte only when it equals b.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.src[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Mark remembers a position so a finished scan can cut its span.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom is the range covered since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.id, Start: uint32(m), End: c.Off}
}
