// Package render executes class skeletons and writes the results.
package render

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/afero"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrWrite            = errors.New("write rendered file")
)

//go:embed skeleton
var skeletons embed.FS

// Renderer looks templates up in its skeleton directories, most specific
// first, and falls back to the built-in skeletons.
type Renderer struct {
	fs      afero.Fs
	dirs    []string
	builtin fs.FS
	funcs   template.FuncMap
	logger  *slog.Logger
}

type Option func(*Renderer)

// WithSkeletonDirs appends directories searched before the built-in skeletons.
func WithSkeletonDirs(dirs ...string) Option {
	return func(r *Renderer) { r.dirs = append(r.dirs, dirs...) }
}

func WithLogger(l *slog.Logger) Option { return func(r *Renderer) { r.logger = l } }

// WithBuiltin replaces the built-in skeletons.
func WithBuiltin(f fs.FS) Option { return func(r *Renderer) { r.builtin = f } }

func New(fsys afero.Fs, opts ...Option) *Renderer {
	sub, _ := fs.Sub(skeletons, "skeleton")
	r := &Renderer{
		fs:      fsys,
		builtin: sub,
		funcs:   sprig.TxtFuncMap(),
		logger:  slog.Default(),
	}
	for _, fn := range opts {
		fn(r)
	}
	return r
}

// RenderString executes the named template. dirs are searched before the
// renderer's own skeleton directories.
func (r *Renderer) RenderString(_ context.Context, name string, params map[string]any, dirs ...string) (string, error) {
	src, origin, err := r.lookup(name, dirs)
	if err != nil {
		return "", err
	}
	r.logger.Debug("rendering template", "template", name, "origin", origin)

	tmpl, err := template.New(path.Base(name)).Funcs(r.funcs).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", origin, err)
	}
	var buf bytes.Buffer
	if err = tmpl.Execute(&buf, params); err != nil {
		return "", fmt.Errorf("execute template %s: %w", origin, err)
	}
	return buf.String(), nil
}

// Render executes the named template into dst, creating parent directories
// as needed. Nothing is written when the template fails.
func (r *Renderer) Render(ctx context.Context, name, dst string, params map[string]any, dirs ...string) error {
	out, err := r.RenderString(ctx, name, params, dirs...)
	if err != nil {
		return err
	}
	if err = r.fs.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return fmt.Errorf("%w: create directory for %s: %w", ErrWrite, dst, err)
	}
	if err = afero.WriteFile(r.fs, dst, []byte(out), filePerm); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, dst, err)
	}
	r.logger.Info("file written", "file", dst, "template", name)
	return nil
}

func (r *Renderer) lookup(name string, extra []string) ([]byte, string, error) {
	dirs := make([]string, 0, len(extra)+len(r.dirs))
	dirs = append(dirs, extra...)
	dirs = append(dirs, r.dirs...)
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, filepath.FromSlash(name))
		data, err := afero.ReadFile(r.fs, candidate)
		if err == nil {
			return data, candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("read template %s: %w", candidate, err)
		}
	}
	if r.builtin != nil {
		if data, err := fs.ReadFile(r.builtin, name); err == nil {
			return data, "builtin:" + name, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
}
