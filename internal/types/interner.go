package types

import (
	"fmt"
)

// Interner deduplicates Kind values so structural equality collapses to
// pointer equality. One interner lives for the whole compilation; kinds from
// a loaded builtins artifact are re-interned into it on load.
type Interner struct {
	byKey map[string]*Kind

	boolKind  *Kind
	int64Kind *Kind
	typeKind  *Kind
	errKind   *Kind
}

func NewInterner() *Interner {
	in := &Interner{byKey: make(map[string]*Kind)}
	in.boolKind = in.intern(&Kind{Fam: FamBool})
	in.int64Kind = in.intern(&Kind{Fam: FamInt64})
	in.typeKind = in.intern(&Kind{Fam: FamType})
	in.errKind = in.intern(&Kind{Fam: FamError})
	return in
}

func (in *Interner) intern(k *Kind) *Kind {
	key := k.Key()
	if existing, ok := in.byKey[key]; ok {
		return existing
	}
	in.byKey[key] = k
	return k
}

// Bool returns the interned boolean kind.
func (in *Interner) Bool() *Kind { return in.boolKind }

// Int64 returns the interned integer kind.
func (in *Interner) Int64() *Kind { return in.int64Kind }

// Type returns the interned C++-type-reference kind.
func (in *Interner) Type() *Kind { return in.typeKind }

// Error returns the interned error kind.
func (in *Interner) Error() *Kind { return in.errKind }

// ListOf returns the interned List kind with the given element kind.
func (in *Interner) ListOf(elem *Kind) *Kind {
	return in.intern(&Kind{Fam: FamList, Elem: elem})
}

// SetOf returns the interned Set kind with the given element kind.
func (in *Interner) SetOf(elem *Kind) *Kind {
	return in.intern(&Kind{Fam: FamSet, Elem: elem})
}

// FnOf returns the interned function-signature kind.
func (in *Interner) FnOf(params []*Kind, result *Kind) *Kind {
	cp := make([]*Kind, len(params))
	copy(cp, params)
	return in.intern(&Kind{Fam: FamFn, Params: cp, Result: result})
}

// ParseKey reconstructs an interned kind from its canonical Key() form.
// Used when loading kinds back out of a serialized artifact.
func (in *Interner) ParseKey(key string) (*Kind, error) {
	k, rest, err := in.parseKey(key)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, fmt.Errorf("trailing junk %q in kind key %q", rest, key)
	}
	return k, nil
}

func (in *Interner) parseKey(s string) (*Kind, string, error) {
	if s == "" {
		return nil, "", fmt.Errorf("empty kind key")
	}
	switch s[0] {
	case 'b':
		return in.boolKind, s[1:], nil
	case 'i':
		return in.int64Kind, s[1:], nil
	case 't':
		return in.typeKind, s[1:], nil
	case 'e':
		return in.errKind, s[1:], nil
	case 'L':
		elem, rest, err := in.parseKey(s[1:])
		if err != nil {
			return nil, "", err
		}
		return in.ListOf(elem), rest, nil
	case 'S':
		elem, rest, err := in.parseKey(s[1:])
		if err != nil {
			return nil, "", err
		}
		return in.SetOf(elem), rest, nil
	case 'F':
		if len(s) < 2 || s[1] != '(' {
			return nil, "", fmt.Errorf("malformed function kind key %q", s)
		}
		rest := s[2:]
		var params []*Kind
		for len(rest) > 0 && rest[0] != ';' {
			p, r, err := in.parseKey(rest)
			if err != nil {
				return nil, "", err
			}
			params = append(params, p)
			rest = r
		}
		if len(rest) == 0 {
			return nil, "", fmt.Errorf("unterminated function kind key %q", s)
		}
		result, rest, err := in.parseKey(rest[1:])
		if err != nil {
			return nil, "", err
		}
		if len(rest) == 0 || rest[0] != ')' {
			return nil, "", fmt.Errorf("unterminated function kind key %q", s)
		}
		return in.FnOf(params, result), rest[1:], nil
	}
	return nil, "", fmt.Errorf("unknown kind key prefix %q", s[0])
}
