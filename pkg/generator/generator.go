package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/cmmoran/classgen/internal/derive"
	"github.com/cmmoran/classgen/internal/model"
)

const (
	TemplateClass    = "class/Class.php.tmpl"
	TemplateUnitTest = "class/UnitTest.php.tmpl"
)

var (
	ErrAlreadyExists  = errors.New("class already exists")
	ErrInvalidRequest = errors.New("invalid generation request")
)

// Renderer executes a named template; Render writes the result to dst.
// dirs are searched before the renderer's own skeleton directories.
type Renderer interface {
	Render(ctx context.Context, name, dst string, params map[string]any, dirs ...string) error
	RenderString(ctx context.Context, name string, params map[string]any, dirs ...string) (string, error)
}

// File is one generated file. Content is only filled on dry runs.
type File struct {
	Path     string
	Template string
	Content  string
}

// Output describes a completed generation.
type Output struct {
	ClassFile File
	TestFile  File
	Fields    []model.Field
	Imports   []string
	DryRun    bool
}

// Generator renders a class and its unit test.
type Generator struct {
	Opts Options

	fs       afero.Fs
	renderer Renderer
	testPath TestPathStrategy
	logger   *slog.Logger
}

// New builds a Generator from functional options.
func New(fsys afero.Fs, r Renderer, opts ...Option) (*Generator, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}

	return NewWithOpts(fsys, r, o)
}

func NewWithOpts(fsys afero.Fs, r Renderer, opts *Options) (*Generator, error) {
	opts.Normalize()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	tp, err := NewTestPathStrategy(opts)
	if err != nil {
		return nil, err
	}

	return &Generator{
		Opts:     *opts,
		fs:       fsys,
		renderer: r,
		testPath: tp,
		logger:   slog.Default(),
	}, nil
}

// WithLogger sets the logger used for progress messages.
func (g *Generator) WithLogger(l *slog.Logger) *Generator {
	if l != nil {
		g.logger = l
	}
	return g
}

// ClassFile returns the path of the class source for req.
func (g *Generator) ClassFile(req model.Request) string {
	return filepath.Join(req.Bundle.Path, filepath.FromSlash(req.Section), req.Class+g.Opts.Extension)
}

// TestFile returns the path of the unit test for req.
func (g *Generator) TestFile(req model.Request) (string, error) {
	root, err := g.testPath.TestRoot(req.Bundle.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, filepath.FromSlash(req.Section), req.Class+"Test"+g.Opts.Extension), nil
}

// Exists reports whether the class file for req is already on disk.
func (g *Generator) Exists(req model.Request) (bool, error) {
	return afero.Exists(g.fs, g.ClassFile(req))
}

// Generate writes the unit test and the class for req. It fails with
// ErrAlreadyExists before anything is derived or written when the class file
// is present.
func (g *Generator) Generate(ctx context.Context, req model.Request) (*Output, error) {
	req.Section = strings.Trim(filepath.ToSlash(req.Section), "/")
	if req.Class == "" {
		return nil, fmt.Errorf("%w: class name is empty", ErrInvalidRequest)
	}
	if req.Bundle.Path == "" {
		return nil, fmt.Errorf("%w: bundle %q has no path", ErrInvalidRequest, req.Bundle.Name)
	}

	classFile := g.ClassFile(req)
	exists, err := afero.Exists(g.fs, classFile)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", classFile, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: class \"%s:%s\"", ErrAlreadyExists, req.Section, req.Class)
	}
	testFile, err := g.TestFile(req)
	if err != nil {
		return nil, err
	}

	res, err := derive.Derive(req.Fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	for _, f := range res.Fields {
		g.logger.Debug("field derived",
			"field", f.FieldName,
			"kind", f.Kind.String(),
			"type", f.Type,
			"hint", f.TypeHint,
		)
	}

	params := map[string]any{
		"namespace": req.Bundle.Namespace,
		"bundle":    req.Bundle.Name,
		"section":   req.SectionNamespace(),
		"class":     req.Class,
		"fields":    res.Fields,
		"uses":      res.Imports,
	}
	out := &Output{
		ClassFile: File{Path: classFile, Template: TemplateClass},
		TestFile:  File{Path: testFile, Template: TemplateUnitTest},
		Fields:    res.Fields,
		Imports:   res.Imports,
		DryRun:    g.Opts.DryRun,
	}
	dirs := g.skeletonDirs(req.Bundle)

	for _, f := range []*File{&out.TestFile, &out.ClassFile} {
		if g.Opts.DryRun {
			if f.Content, err = g.renderer.RenderString(ctx, f.Template, params, dirs...); err != nil {
				return nil, err
			}
			continue
		}
		if err = g.renderer.Render(ctx, f.Template, f.Path, params, dirs...); err != nil {
			return nil, err
		}
	}

	g.logger.Info("class generated",
		"bundle", req.Bundle.Name,
		"section", req.Section,
		"class", req.Class,
		"fields", len(res.Fields),
		"dry_run", g.Opts.DryRun,
	)

	return out, nil
}

func (g *Generator) skeletonDirs(b model.Bundle) []string {
	dirs := make([]string, 0, len(g.Opts.SkeletonDirs)+1)
	if g.Opts.BundleSkeleton != "" {
		dirs = append(dirs, filepath.Join(b.Path, g.Opts.BundleSkeleton))
	}
	return append(dirs, g.Opts.SkeletonDirs...)
}
