package model

import (
	"errors"
	"strings"
)

var (
	ErrMissingType = errors.New("field type is missing")
	ErrEmptyName   = errors.New("field name is empty")
)

// NamespaceSeparator separates the segments of a namespaced type name.
const NamespaceSeparator = `\`

// RawField is one field as typed by the operator.
type RawField struct {
	FieldName string `json:"fieldName" yaml:"name" mapstructure:"name"`
	Type      string `json:"type" yaml:"type" mapstructure:"type"`
}

// Field is the template-ready form of a RawField. It is always a fresh value;
// the RawField it came from is never modified.
type Field struct {
	FieldName            string // lcfirst(raw name)
	FieldNameCapitalized string // ucfirst(raw name), used for setX/getX
	FullyQualifiedType   string // raw type, untouched
	Type                 string // possibly shortened to the last two segments
	TypeHint             string // Type when hintable, otherwise ""
	TestValue            string // literal used by the generated test
	Kind                 Kind
}

// Bundle is a resolved generation target.
type Bundle struct {
	Name      string // "AcmeBlogBundle"
	Path      string // filesystem root of the bundle sources
	Namespace string // "Acme\BlogBundle"
}

// Request drives exactly one class file and one test file.
type Request struct {
	Bundle  Bundle
	Section string // slash separated, may be empty
	Class   string
	Fields  []RawField
}

// SectionNamespace returns the section as a namespace fragment.
func (r Request) SectionNamespace() string {
	return strings.ReplaceAll(r.Section, "/", NamespaceSeparator)
}
