package builtins

import (
	"fmt"

	"pyrite/internal/types"
)

// ID enumerates the intrinsic operations the language exposes. They are
// polymorphic over element kinds, so the type checker resolves them here
// instead of through the ordinary symbol table.
type ID uint8

const (
	None ID = iota
	// TypeLit is `type("int")`: an atomic C++ type literal.
	TypeLit
	// Ptr is `ptr(t)`: pointer-of.
	Ptr
	// Concat is sequence concatenation.
	Concat
	// Transform is element-wise map with error propagation.
	Transform
	// Fold is strict left fold with explicit seed.
	Fold
	// AddToSet adds an element by value equality, idempotently.
	AddToSet
	// IsInSet is the membership test.
	IsInSet
	// SetEquals is order- and duplicate-independent set equality.
	SetEquals
	// SetOf converts a list into a set.
	SetOf
	// Sum reduces List[int] by addition.
	Sum
	// All reduces List[bool] by conjunction.
	All
	// Any reduces List[bool] by disjunction.
	Any
	// EmptyList is `empty_list(int)`: the empty sequence of a scalar kind.
	EmptyList
	// EmptySet is `empty_set(int)`.
	EmptySet
	// ErrorLit is `error("msg")`: raises a compile-time error value.
	ErrorLit
)

var byName = map[string]ID{
	"type":       TypeLit,
	"ptr":        Ptr,
	"concat":     Concat,
	"transform":  Transform,
	"fold":       Fold,
	"add_to_set": AddToSet,
	"is_in_set":  IsInSet,
	"set_equals": SetEquals,
	"set_of":     SetOf,
	"sum":        Sum,
	"all":        All,
	"any":        Any,
	"empty_list": EmptyList,
	"empty_set":  EmptySet,
	"error":      ErrorLit,
}

// Lookup maps a source name to its intrinsic ID.
func Lookup(name string) (ID, bool) {
	id, ok := byName[name]
	return id, ok
}

func (id ID) String() string {
	for name, v := range byName {
		if v == id {
			return name
		}
	}
	return "none"
}

// Arity returns the expected argument count.
func (id ID) Arity() int {
	switch id {
	case TypeLit, Ptr, SetOf, Sum, All, Any, EmptyList, EmptySet, ErrorLit:
		return 1
	case Concat, Transform, AddToSet, IsInSet, SetEquals:
		return 2
	case Fold:
		return 3
	}
	return 0
}

// CheckCall type-checks an intrinsic call given already-resolved argument
// kinds and returns the result kind. Arguments with the error kind pass any
// position. The type/error/empty_* intrinsics take literal arguments that the
// checker validates separately, so they never reach this function.
func CheckCall(in *types.Interner, id ID, args []*types.Kind) (*types.Kind, error) {
	if len(args) != id.Arity() {
		return nil, fmt.Errorf("%s expects %d argument(s), got %d", id, id.Arity(), len(args))
	}

	switch id {
	case Ptr:
		if err := want(args[0], in.Type()); err != nil {
			return nil, fmt.Errorf("ptr: %w", err)
		}
		return in.Type(), nil

	case Concat:
		l, err := wantList(args[0], "concat")
		if err != nil {
			return nil, err
		}
		if err := want(args[1], l); err != nil {
			return nil, fmt.Errorf("concat: %w", err)
		}
		return l, nil

	case Transform:
		l, err := wantList(args[0], "transform")
		if err != nil {
			return nil, err
		}
		f := args[1]
		if f.Fam != types.FamFn || len(f.Params) != 1 {
			return nil, fmt.Errorf("transform: second argument must be a one-parameter function, got %s", f)
		}
		if f.Params[0] != l.Elem {
			return nil, fmt.Errorf("transform: function takes %s but the list holds %s", f.Params[0], l.Elem)
		}
		if !f.Result.Scalar() {
			return nil, fmt.Errorf("transform: function must yield a scalar element, got %s", f.Result)
		}
		return in.ListOf(f.Result), nil

	case Fold:
		l, err := wantList(args[0], "fold")
		if err != nil {
			return nil, err
		}
		seed := args[1]
		f := args[2]
		if f.Fam != types.FamFn || len(f.Params) != 2 {
			return nil, fmt.Errorf("fold: third argument must be a two-parameter step function, got %s", f)
		}
		if f.Params[0] != seed || f.Result != seed {
			return nil, fmt.Errorf("fold: step function must be %s × %s → %s", seed, l.Elem, seed)
		}
		if f.Params[1] != l.Elem {
			return nil, fmt.Errorf("fold: step function takes %s elements but the list holds %s", f.Params[1], l.Elem)
		}
		return seed, nil

	case AddToSet:
		s, err := wantSet(args[0], "add_to_set")
		if err != nil {
			return nil, err
		}
		if err := want(args[1], s.Elem); err != nil {
			return nil, fmt.Errorf("add_to_set: %w", err)
		}
		return s, nil

	case IsInSet:
		s, err := wantSet(args[1], "is_in_set")
		if err != nil {
			return nil, err
		}
		if err := want(args[0], s.Elem); err != nil {
			return nil, fmt.Errorf("is_in_set: %w", err)
		}
		return in.Bool(), nil

	case SetEquals:
		s, err := wantSet(args[0], "set_equals")
		if err != nil {
			return nil, err
		}
		if err := want(args[1], s); err != nil {
			return nil, fmt.Errorf("set_equals: %w", err)
		}
		return in.Bool(), nil

	case SetOf:
		l, err := wantList(args[0], "set_of")
		if err != nil {
			return nil, err
		}
		return in.SetOf(l.Elem), nil

	case Sum:
		if err := want(args[0], in.ListOf(in.Int64())); err != nil {
			return nil, fmt.Errorf("sum: %w", err)
		}
		return in.Int64(), nil

	case All, Any:
		if err := want(args[0], in.ListOf(in.Bool())); err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		return in.Bool(), nil
	}

	return nil, fmt.Errorf("intrinsic %s cannot be checked from argument kinds alone", id)
}

func want(got, expected *types.Kind) error {
	if got == expected || got.Fam == types.FamError {
		return nil
	}
	return fmt.Errorf("expected %s, got %s", expected, got)
}

func wantList(k *types.Kind, what string) (*types.Kind, error) {
	if k.Fam != types.FamList {
		return nil, fmt.Errorf("%s: expected a List, got %s", what, k)
	}
	return k, nil
}

func wantSet(k *types.Kind, what string) (*types.Kind, error) {
	if k.Fam != types.FamSet {
		return nil, fmt.Errorf("%s: expected a Set, got %s", what, k)
	}
	return k, nil
}
