package builtins

import "pyrite/internal/ir0"

// Families the runtime contract is specialized over. Every sequence and set
// primitive exists once per element family; the names below are the exact
// template names the runtime header defines.
var families = []struct {
	Name string
	Kind ir0.ParamKind
}{
	{"Bool", ir0.PKBool},
	{"Int64", ir0.PKInt64},
	{"Type", ir0.PKType},
}

// ListTemplate returns the container template name for an element family
// parameter kind. Lists of types, lists of lists and sets all travel as the
// generic List.
func ListTemplate(k ir0.ParamKind) string {
	switch k {
	case ir0.PKBool:
		return "BoolList"
	case ir0.PKInt64:
		return "Int64List"
	default:
		return "List"
	}
}

func typeParam(name string) ir0.Param { return ir0.Param{Name: name, Kind: ir0.PKType} }

func contractDecl(name string, resultIsType, hasError bool, params ...ir0.Param) *ir0.Decl {
	return &ir0.Decl{
		Name:         name,
		Params:       params,
		ResultIsType: resultIsType,
		HasError:     hasError,
		Builtin:      true,
	}
}

// Contract builds the runtime-contract declarations: the shapes of every
// primitive the runtime header defines. They join the declaration arena
// read-only so lowering can reference them and the elaborator can evaluate
// them, and they are what gen-builtins serializes.
func Contract() []*ir0.Decl {
	var ds []*ir0.Decl

	// Containers. These carry values in their template arguments and have
	// no result member of their own.
	ds = append(ds,
		contractDecl("List", true, false, ir0.Param{Name: "Ts", Kind: ir0.PKType, Pack: true}),
		contractDecl("Int64List", true, false, ir0.Param{Name: "ns", Kind: ir0.PKInt64, Pack: true}),
		contractDecl("BoolList", true, false, ir0.Param{Name: "bs", Kind: ir0.PKBool, Pack: true}),
	)

	for _, f := range families {
		elem := ir0.Param{Name: "x", Kind: f.Kind}
		ds = append(ds,
			contractDecl(f.Name+"ListConcat", true, false, typeParam("L1"), typeParam("L2")),
			contractDecl(f.Name+"ListToSet", true, false, typeParam("L")),
			contractDecl("AddTo"+f.Name+"Set", true, false, typeParam("S"), elem),
			contractDecl("IsIn"+f.Name+"Set", false, false, typeParam("S"), elem),
			contractDecl("IsIn"+f.Name+"List", false, false, typeParam("L"), elem),
			contractDecl(f.Name+"SetEquals", false, false, typeParam("S1"), typeParam("S2")),
		)
	}

	// Transform<Src>ListTo<Dst>List<L, F>: F maps one Src element to a
	// (value, error) pair; the result keeps L's length and the error member
	// is the first per-element error in left-to-right order.
	for _, src := range families {
		for _, dst := range families {
			ds = append(ds, contractDecl(
				"Transform"+src.Name+"ListTo"+dst.Name+"List", true, true,
				typeParam("L"),
				ir0.Param{Name: "F", Kind: ir0.PKTemplate, TemplateArgs: []ir0.ParamKind{src.Kind}},
			))
		}
	}

	// Fold<Elems>To<Acc><Acc, F, L>: strict left fold with explicit seed.
	plural := map[string]string{"Bool": "Bools", "Int64": "Int64s", "Type": "Types"}
	for _, elem := range families {
		for _, acc := range families {
			ds = append(ds, contractDecl(
				"Fold"+plural[elem.Name]+"To"+acc.Name, acc.Kind == ir0.PKType, true,
				ir0.Param{Name: "Acc", Kind: acc.Kind},
				ir0.Param{Name: "F", Kind: ir0.PKTemplate, TemplateArgs: []ir0.ParamKind{acc.Kind, elem.Kind}},
				typeParam("L"),
			))
		}
	}

	ds = append(ds,
		contractDecl("Int64ListSum", false, false, typeParam("L")),
		contractDecl("BoolListAll", false, false, typeParam("L")),
		contractDecl("BoolListAny", false, false, typeParam("L")),
		contractDecl("GetFirstError", true, false, ir0.Param{Name: "Ts", Kind: ir0.PKType, Pack: true}),
	)

	// Select1st and AlwaysTrue/AlwaysFalse helpers. Select1st exposes its
	// result as "value" even for types, matching the runtime header.
	for _, x := range families {
		for _, y := range families {
			ds = append(ds, contractDecl(
				"Select1st"+x.Name+y.Name, false, false,
				ir0.Param{Name: "X", Kind: x.Kind},
				ir0.Param{Name: "Y", Kind: y.Kind},
			))
		}
		ds = append(ds, contractDecl("AlwaysTrueFrom"+x.Name, false, false, ir0.Param{Name: "X", Kind: x.Kind}))
	}
	ds = append(ds, contractDecl("AlwaysFalseFromType", false, false, typeParam("T")))

	return ds
}

// NewModule returns a declaration arena pre-seeded with the contract.
func NewModule() *ir0.Module {
	m := ir0.NewModule()
	for _, d := range Contract() {
		m.Add(d)
	}
	return m
}
