package prompt

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/cmmoran/classgen/internal/derive"
	"github.com/cmmoran/classgen/internal/model"
)

const reservedField = "id"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidShortcut = errors.New("invalid shortcut notation")
)

// Target is a parsed class shortcut such as AcmeBlogBundle:Post:Comment.
type Target struct {
	Bundle  string
	Section string // slash separated
	Class   string
}

// ParseShortcut splits "Bundle:Section:...:Class". The middle parts form the
// section path and may be empty ("Bundle::Class" targets the bundle root).
func ParseShortcut(shortcut string) (Target, error) {
	parts := strings.Split(strings.TrimSpace(shortcut), ":")
	if len(parts) < 3 {
		return Target{}, fmt.Errorf("%w: the class name must contain at least 2 :s (%q given, expecting something like AcmeBlogBundle:Services:PostService)", ErrInvalidShortcut, shortcut)
	}
	t := Target{
		Bundle: parts[0],
		Class:  parts[len(parts)-1],
	}
	sections := make([]string, 0, len(parts)-2)
	for _, s := range parts[1 : len(parts)-1] {
		if s != "" {
			sections = append(sections, s)
		}
	}
	t.Section = strings.Join(sections, "/")
	if t.Bundle == "" || t.Class == "" {
		return Target{}, fmt.Errorf("%w: bundle and class are required (%q given)", ErrInvalidShortcut, shortcut)
	}
	return t, nil
}

// ValidateFieldName rejects empty names, names that are not identifiers, the
// reserved "id" and names already present in existing. Comparison is
// case-sensitive.
func ValidateFieldName(name string, existing []model.RawField) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, model.ErrEmptyName)
	}
	if !isIdentifier(name) {
		return fmt.Errorf("%w: field %q is not a valid identifier", ErrInvalidInput, name)
	}
	if name == reservedField {
		return fmt.Errorf("%w: field %q is reserved", ErrInvalidInput, name)
	}
	for _, f := range existing {
		if f.FieldName == name {
			return fmt.Errorf("%w: field %q is already defined", ErrInvalidInput, name)
		}
	}
	return nil
}

// ValidateType rejects type names the deriver cannot split.
func ValidateType(typ string) error {
	if _, err := derive.Split(strings.TrimSpace(typ)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// ParseFields reads the --fields flag format: whitespace separated
// "name:type" pairs. "name:" declares an untyped field.
func ParseFields(spec string) ([]model.RawField, error) {
	tokens := strings.Fields(spec)
	out := make([]model.RawField, 0, len(tokens))
	for _, tok := range tokens {
		name, typ, ok := strings.Cut(tok, ":")
		if !ok {
			return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidInput, tok, model.ErrMissingType)
		}
		if err := ValidateFieldName(name, out); err != nil {
			return nil, err
		}
		if err := ValidateType(typ); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		out = append(out, model.RawField{FieldName: name, Type: typ})
	}
	return out, nil
}

// ValidateFields applies the collection rules to fields loaded from elsewhere.
func ValidateFields(fields []model.RawField) error {
	for i, f := range fields {
		if err := ValidateFieldName(f.FieldName, fields[:i]); err != nil {
			return err
		}
		if err := ValidateType(f.Type); err != nil {
			return fmt.Errorf("field %q: %w", f.FieldName, err)
		}
	}
	return nil
}

// isIdentifier accepts a letter or underscore followed by letters, digits and
// underscores.
func isIdentifier(name string) bool {
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return name != ""
}
