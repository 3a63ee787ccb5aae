package ir0

// ParamKind classifies a template parameter.
type ParamKind uint8

const (
	// PKBool is a non-type parameter of C++ type bool.
	PKBool ParamKind = iota
	// PKInt64 is a non-type parameter of C++ type int64_t.
	PKInt64
	// PKType is a typename parameter. Lists and sets travel as plain
	// typenames; the element discipline lives in the runtime contract.
	PKType
	// PKTemplate is a template-template parameter.
	PKTemplate
)

func (k ParamKind) String() string {
	switch k {
	case PKBool:
		return "bool"
	case PKInt64:
		return "int64"
	case PKType:
		return "type"
	case PKTemplate:
		return "template"
	}
	return "?"
}

// Param is one template parameter of a declaration or specialization.
// TemplateArgs is set only for PKTemplate and gives the parameter kinds of
// the expected template. Pack marks a trailing parameter pack.
type Param struct {
	Name         string
	Kind         ParamKind
	TemplateArgs []ParamKind
	Pack         bool
}
