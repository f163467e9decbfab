package model

type Kind int

const (
	KindClass   Kind = iota // any name outside the closed primitive set
	KindOpaque              // '', mixed, void, object, real, resource, null
	KindString              // string
	KindInteger             // int, number
	KindFloat               // double, float
	KindBool                // bool, boolean
	KindArray               // array
)

var primitiveKinds = map[string]Kind{
	"":         KindOpaque,
	"mixed":    KindOpaque,
	"void":     KindOpaque,
	"object":   KindOpaque,
	"real":     KindOpaque,
	"resource": KindOpaque,
	"null":     KindOpaque,
	"string":   KindString,
	"int":      KindInteger,
	"number":   KindInteger,
	"double":   KindFloat,
	"float":    KindFloat,
	"bool":     KindBool,
	"boolean":  KindBool,
	"array":    KindArray,
}

// KindOf classifies a type name. Matching is case-sensitive, so "String" is a
// class name.
func KindOf(typ string) Kind {
	if k, ok := primitiveKinds[typ]; ok {
		return k
	}
	return KindClass
}

// Hintable reports whether a parameter of this kind gets a declared type.
// Only arrays and class types do.
func (k Kind) Hintable() bool {
	return k == KindClass || k == KindArray
}

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindOpaque:
		return "opaque"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}
