package ir0

// Member names every declaration agrees on. A declaration exposes exactly
// one of MemberValue/MemberType for its result and, when it can fail,
// MemberError carrying void on success.
const (
	MemberValue = "value"
	MemberType  = "type"
	MemberError = "error"
)

// Binding is one member definition inside a specialization body: a typedef
// when IsType is set, a static constexpr otherwise. Bodies are ordered and
// a binding may reference earlier ones by name.
type Binding struct {
	Name   string
	IsType bool
	Expr   *Expr
}

// Spec is the main definition or one partial specialization of a template.
// Params are the specialization's own parameters. Patterns is nil for the
// main definition; otherwise it holds one pattern expression per parameter
// of the enclosing declaration, with ExprParamRef nodes referring to Params.
type Spec struct {
	Params   []Param
	Patterns []*Expr
	Body     []Binding
}

// IsMain reports whether s is the main definition rather than a partial
// specialization.
func (s *Spec) IsMain() bool { return s.Patterns == nil }

// Binding returns the named member binding, or nil.
func (s *Spec) Binding(name string) *Binding {
	for i := range s.Body {
		if s.Body[i].Name == name {
			return &s.Body[i]
		}
	}
	return nil
}

// Decl is one template declaration: a main definition plus zero or more
// partial specializations, all sharing the parameter list and result shape.
type Decl struct {
	ID   DeclID
	Name string

	// Origin is the source-level function (or error) name the declaration
	// was lowered from, kept for diagnostics. Empty for helpers.
	Origin string

	Params []Param

	// ResultIsType distinguishes a type result (member "type") from a
	// scalar result (member "value").
	ResultIsType bool

	// HasError marks declarations whose bodies define an "error" member.
	HasError bool

	// Main may be nil when every case is covered by specializations.
	Main  *Spec
	Specs []*Spec

	// Public marks declarations lowered straight from a source function.
	// They stay emitted even when nothing in this module references them:
	// other translation units may instantiate them.
	Public bool

	// Builtin declarations come from the contract artifact. They are
	// available to the evaluator but never emitted: the runtime header
	// already defines them.
	Builtin bool

	// ErrorMessage is set on error-carrier declarations produced by
	// error(...); such declarations have no Main/Specs and are emitted as
	// dedicated diagnostic structs.
	ErrorMessage string
	IsError      bool

	// Dead marks declarations retired by optimization passes. They stay in
	// the arena so IDs remain stable, but nothing references them and code
	// generation skips them.
	Dead bool
}

// AllSpecs returns the main definition (if any) followed by the partial
// specializations.
func (d *Decl) AllSpecs() []*Spec {
	if d.Main == nil {
		return d.Specs
	}
	out := make([]*Spec, 0, len(d.Specs)+1)
	out = append(out, d.Main)
	out = append(out, d.Specs...)
	return out
}

// ResultMember is the member name carrying the declaration's result.
func (d *Decl) ResultMember() string {
	if d.ResultIsType {
		return MemberType
	}
	return MemberValue
}
