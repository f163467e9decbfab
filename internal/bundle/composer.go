package bundle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"github.com/cmmoran/classgen/internal/model"
)

var psr4Paths = []string{"autoload.psr-4", "autoload-dev.psr-4"}

// ComposerResolver finds bundles through the PSR-4 autoload map of a
// composer.json file. A prefix such as "Acme\\BlogBundle\\" matches the bundle
// names "AcmeBlogBundle" and "BlogBundle".
type ComposerResolver struct {
	Fs   afero.Fs
	File string
}

func NewComposerResolver(fs afero.Fs, file string) *ComposerResolver {
	return &ComposerResolver{Fs: fs, File: file}
}

func (c *ComposerResolver) Resolve(_ context.Context, name string) (model.Bundle, error) {
	data, err := afero.ReadFile(c.Fs, c.File)
	if errors.Is(err, os.ErrNotExist) {
		return model.Bundle{}, fmt.Errorf("%w: %q (no %s)", ErrUnresolved, name, c.File)
	}
	if err != nil {
		return model.Bundle{}, fmt.Errorf("read composer file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return model.Bundle{}, fmt.Errorf("read composer file: %s is not valid JSON", c.File)
	}

	root := filepath.Dir(c.File)
	doc := gjson.ParseBytes(data)
	for _, p := range psr4Paths {
		var (
			found model.Bundle
			ok    bool
		)
		doc.Get(p).ForEach(func(key, value gjson.Result) bool {
			ns := strings.Trim(key.String(), model.NamespaceSeparator)
			if ns == "" || !matches(ns, name) {
				return true
			}
			dir := value.String()
			if value.IsArray() {
				dir = value.Get("0").String()
			}
			found = model.Bundle{
				Name:      name,
				Path:      filepath.Clean(filepath.Join(root, dir)),
				Namespace: ns,
			}
			ok = true
			return false
		})
		if ok {
			return found, nil
		}
	}

	return model.Bundle{}, fmt.Errorf("%w: %q", ErrUnresolved, name)
}

func matches(namespace, name string) bool {
	segs := strings.Split(namespace, model.NamespaceSeparator)
	return strings.Join(segs, "") == name || segs[len(segs)-1] == name
}
