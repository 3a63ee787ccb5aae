package types

import "testing"

func TestInterningCollapsesToPointerEquality(t *testing.T) {
	in := NewInterner()
	a := in.ListOf(in.Int64())
	b := in.ListOf(in.Int64())
	if a != b {
		t.Fatalf("equal kinds interned to distinct pointers")
	}
	if in.ListOf(in.Bool()) == a {
		t.Fatalf("distinct kinds interned to one pointer")
	}
	f1 := in.FnOf([]*Kind{in.Type(), in.Int64()}, in.Type())
	f2 := in.FnOf([]*Kind{in.Type(), in.Int64()}, in.Type())
	if f1 != f2 {
		t.Fatalf("equal function kinds interned to distinct pointers")
	}
}

func TestKeyIsUnambiguous(t *testing.T) {
	in := NewInterner()
	cases := map[*Kind]string{
		in.Bool():                     "b",
		in.Int64():                    "i",
		in.Type():                     "t",
		in.Error():                    "e",
		in.ListOf(in.ListOf(in.Type())): "LLt",
		in.SetOf(in.Int64()):          "Si",
		in.FnOf([]*Kind{in.Type(), in.Int64()}, in.Type()): "F(ti;t)",
		in.FnOf(nil, in.Bool()):       "F(;b)",
	}
	for k, want := range cases {
		if got := k.Key(); got != want {
			t.Fatalf("Key(%s) = %q, want %q", k, got, want)
		}
	}
}

func TestParseKeyRoundTrips(t *testing.T) {
	in := NewInterner()
	kinds := []*Kind{
		in.Bool(),
		in.ListOf(in.SetOf(in.Type())),
		in.FnOf([]*Kind{in.ListOf(in.Int64()), in.Type()}, in.ListOf(in.Type())),
	}
	for _, k := range kinds {
		got, err := in.ParseKey(k.Key())
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", k.Key(), err)
		}
		if got != k {
			t.Fatalf("ParseKey(%q) lost identity", k.Key())
		}
	}
}

func TestParseKeyRejectsMalformedInput(t *testing.T) {
	in := NewInterner()
	for _, key := range []string{"", "x", "L", "F(t;t", "ti", "F(t)"} {
		if _, err := in.ParseKey(key); err == nil {
			t.Fatalf("ParseKey(%q) accepted", key)
		}
	}
}

func TestStringUsesSourceSyntax(t *testing.T) {
	in := NewInterner()
	f := in.FnOf([]*Kind{in.Type(), in.Int64()}, in.ListOf(in.Type()))
	if got := f.String(); got != "Callable[[Type, int], List[Type]]" {
		t.Fatalf("got %q", got)
	}
	if got := in.SetOf(in.Bool()).String(); got != "Set[bool]" {
		t.Fatalf("got %q", got)
	}
}
