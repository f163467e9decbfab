package fieldset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/classgen/internal/model"
)

// entry keeps Type as a pointer so an omitted key can be told apart from an
// explicitly empty (untyped) field.
type entry struct {
	Name string  `yaml:"name"`
	Type *string `yaml:"type"`
}

type document struct {
	Fields []entry `yaml:"fields"`
}

// Load reads a fields file from the provided path.
//
// Both a top level list and a document with a "fields" key are accepted:
//
//   - name: title
//     type: string
//   - name: author
//     type: Acme\BlogBundle\Entity\User
func Load(fs afero.Fs, path string) ([]model.RawField, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fields file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode parses a fields document.
func Decode(r io.Reader) ([]model.RawField, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read fields: %w", err)
	}

	var node yaml.Node
	if err = yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}
	if len(node.Content) == 0 {
		return []model.RawField{}, nil
	}

	var entries []entry
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		err = root.Decode(&entries)
	case yaml.MappingNode:
		var doc document
		err = root.Decode(&doc)
		entries = doc.Fields
	default:
		err = errors.New("expected a list of fields")
	}
	if err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}

	out := make([]model.RawField, 0, len(entries))
	for i, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return nil, fmt.Errorf("field %d: %w", i, model.ErrEmptyName)
		}
		if e.Type == nil {
			return nil, fmt.Errorf("field %d (%q): %w", i, e.Name, model.ErrMissingType)
		}
		out = append(out, model.RawField{FieldName: e.Name, Type: strings.TrimSpace(*e.Type)})
	}

	return out, nil
}
