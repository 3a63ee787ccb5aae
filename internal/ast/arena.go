package ast

// Arena is append-only typed storage addressed by 1-based indices.
// Slot 0 holds a zero sentinel so that index 0 means "no node".
type Arena[T any] struct {
	data []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	a := &Arena[T]{data: make([]T, 1, capHint+1)}
	return a
}

// Allocate appends value and returns its index. Indices start at 1.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return uint32(len(a.data) - 1)
}

// Get returns the element at index, or nil for the sentinel 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || index >= uint32(len(a.data)) {
		return nil
	}
	return &a.data[index]
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data) - 1)
}
