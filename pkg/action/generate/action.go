package generate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/cmmoran/classgen/internal/bundle"
	"github.com/cmmoran/classgen/internal/model"
	"github.com/cmmoran/classgen/internal/prompt"
	"github.com/cmmoran/classgen/internal/render"
	"github.com/cmmoran/classgen/pkg/fieldset"
	"github.com/cmmoran/classgen/pkg/generator"
)

// Params gathers everything one generate:class run needs.
type Params struct {
	Options []generator.Option

	Bundles      map[string]bundle.Config
	ComposerFile string
	BaseDir      string

	Shortcut    string // Bundle:Section:Class
	Fields      string // name:type pairs
	FieldsFile  string
	Interactive bool

	In     io.Reader
	Out    io.Writer
	Logger *slog.Logger
}

// Generate resolves the target, collects fields and renders the class and
// its unit test.
func Generate(ctx context.Context, fs afero.Fs, p *Params) (*generator.Output, error) {
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	if p.In == nil {
		p.In = os.Stdin
	}
	if p.Out == nil {
		p.Out = os.Stdout
	}

	renderer := render.New(fs, render.WithLogger(p.Logger))
	gen, err := generator.New(fs, renderer, p.Options...)
	if err != nil {
		return nil, err
	}
	gen.WithLogger(p.Logger)

	resolver := bundle.Chain{
		&bundle.ConfigResolver{Bundles: p.Bundles, BaseDir: p.BaseDir},
	}
	if p.ComposerFile != "" {
		resolver = append(resolver, bundle.NewComposerResolver(fs, p.ComposerFile))
	}

	fields, err := seedFields(fs, p)
	if err != nil {
		return nil, err
	}

	var req model.Request
	if p.Interactive {
		console := prompt.NewConsole(p.In, p.Out)
		req, err = prompt.NewCollector(console, resolver, gen).
			WithLogger(p.Logger).
			Collect(ctx, p.Shortcut, fields)
	} else {
		req, err = target(ctx, resolver, p.Shortcut)
		req.Fields = fields
	}
	if err != nil {
		return nil, err
	}

	out, err := gen.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	report(p.Out, out)

	return out, nil
}

func seedFields(fs afero.Fs, p *Params) ([]model.RawField, error) {
	fields := make([]model.RawField, 0)
	if p.FieldsFile != "" {
		loaded, err := fieldset.Load(fs, p.FieldsFile)
		if err != nil {
			return nil, err
		}
		fields = append(fields, loaded...)
	}
	if p.Fields != "" {
		parsed, err := prompt.ParseFields(p.Fields)
		if err != nil {
			return nil, err
		}
		fields = append(fields, parsed...)
	}
	if err := prompt.ValidateFields(fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func target(ctx context.Context, r bundle.Resolver, shortcut string) (model.Request, error) {
	t, err := prompt.ParseShortcut(shortcut)
	if err != nil {
		return model.Request{}, err
	}
	b, err := r.Resolve(ctx, t.Bundle)
	if err != nil {
		return model.Request{}, err
	}
	return model.Request{Bundle: b, Section: t.Section, Class: t.Class}, nil
}

func report(w io.Writer, out *generator.Output) {
	if !out.DryRun {
		_, _ = fmt.Fprintf(w, "Class has been generated\n  %s\n  %s\n", out.ClassFile.Path, out.TestFile.Path)
		return
	}
	for _, f := range []generator.File{out.ClassFile, out.TestFile} {
		_, _ = fmt.Fprintf(w, "// %s\n%s\n", f.Path, f.Content)
	}
}
