// Package bundle resolves the symbolic bundle name of a class shortcut to a
// source root and namespace.
package bundle

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cmmoran/classgen/internal/model"
)

var ErrUnresolved = errors.New("bundle does not exist")

// Resolver looks up a bundle by name.
type Resolver interface {
	Resolve(ctx context.Context, name string) (model.Bundle, error)
}

// Config is the configuration shape of one bundle entry.
type Config struct {
	Path      string `json:"path" yaml:"path" mapstructure:"path"`
	Namespace string `json:"namespace" yaml:"namespace" mapstructure:"namespace"`
}

// ConfigResolver serves bundles declared in configuration.
type ConfigResolver struct {
	Bundles map[string]Config
	// BaseDir anchors relative bundle paths, usually the working directory.
	BaseDir string
}

func (c *ConfigResolver) Resolve(_ context.Context, name string) (model.Bundle, error) {
	b, ok := c.Bundles[name]
	if !ok {
		// configuration keys may have been lower-cased by the loader
		for k, v := range c.Bundles {
			if strings.EqualFold(k, name) {
				b, ok = v, true
				break
			}
		}
	}
	if !ok {
		return model.Bundle{}, fmt.Errorf("%w: %q", ErrUnresolved, name)
	}
	path := b.Path
	if !filepath.IsAbs(path) && c.BaseDir != "" {
		path = filepath.Join(c.BaseDir, path)
	}
	return model.Bundle{
		Name:      name,
		Path:      filepath.Clean(path),
		Namespace: b.Namespace,
	}, nil
}

// Chain asks each resolver in turn and returns the first hit.
type Chain []Resolver

func (c Chain) Resolve(ctx context.Context, name string) (model.Bundle, error) {
	for _, r := range c {
		if r == nil {
			continue
		}
		b, err := r.Resolve(ctx, name)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, ErrUnresolved) {
			return model.Bundle{}, err
		}
	}
	return model.Bundle{}, fmt.Errorf("%w: %q", ErrUnresolved, name)
}
