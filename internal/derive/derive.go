// Package derive turns raw field definitions into the metadata the class and
// test templates consume.
package derive

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/cmmoran/classgen/internal/model"
)

var ErrInvalidType = errors.New("invalid type name")

// Result is the output of Derive. Fields keep the input order; Imports are
// unique and ordered by first occurrence.
type Result struct {
	Fields  []model.Field
	Imports []string
}

// Derive enriches every field and collects the import statements the rendered
// sources need. It does no I/O and returns equal results for equal input.
func Derive(fields []model.RawField) (Result, error) {
	out := Result{
		Fields: make([]model.Field, 0, len(fields)),
	}
	candidates := make([]string, 0, len(fields))
	for i, raw := range fields {
		f, use, err := Field(raw)
		if err != nil {
			return Result{}, fmt.Errorf("field %d (%q): %w", i, raw.FieldName, err)
		}
		out.Fields = append(out.Fields, f)
		candidates = append(candidates, use)
	}
	out.Imports = Imports(candidates)

	return out, nil
}

// Field derives a single field together with its import candidate, which is
// empty when the field needs no import.
func Field(raw model.RawField) (model.Field, string, error) {
	ns, err := Split(raw.Type)
	if err != nil {
		return model.Field{}, "", err
	}

	f := model.Field{
		FieldName:            lowerFirst(raw.FieldName),
		FieldNameCapitalized: upperFirst(raw.FieldName),
		FullyQualifiedType:   raw.Type,
		Type:                 ns.Short,
		Kind:                 model.KindOf(raw.Type),
	}

	use := ns.Import
	if model.KindOf(f.Type).Hintable() {
		f.TypeHint = f.Type
		if use == "" && f.Type != "array" {
			use = f.Type
		}
	}
	f.TestValue = TestValue(f.FullyQualifiedType)

	return f, use, nil
}

// Imports removes empty and repeated candidates, keeping first-seen order.
func Imports(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError && size == 1 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError && size == 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
