package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cmmoran/classgen/internal/bundle"
	"github.com/cmmoran/classgen/internal/model"
)

// ExistenceChecker reports whether the class a request targets already exists.
type ExistenceChecker interface {
	Exists(req model.Request) (bool, error)
}

// Collector runs the interactive loops that build a generation request.
type Collector struct {
	console  Console
	resolver bundle.Resolver
	exists   ExistenceChecker
	logger   *slog.Logger
}

func NewCollector(c Console, r bundle.Resolver, e ExistenceChecker) *Collector {
	return &Collector{
		console:  c,
		resolver: r,
		exists:   e,
		logger:   slog.Default(),
	}
}

func (c *Collector) WithLogger(l *slog.Logger) *Collector {
	if l != nil {
		c.logger = l
	}
	return c
}

// Collect asks for the target class and then its fields. fields seeds the
// field list, for instance from --fields.
func (c *Collector) Collect(ctx context.Context, shortcut string, fields []model.RawField) (model.Request, error) {
	c.console.Section("Welcome to the class generator")

	req, err := c.CollectTarget(ctx, shortcut)
	if err != nil {
		return model.Request{}, err
	}
	if req.Fields, err = c.CollectFields(ctx, fields); err != nil {
		return model.Request{}, err
	}
	return req, nil
}

// CollectTarget asks for a class shortcut until it names a resolvable bundle
// and a class that does not exist yet.
func (c *Collector) CollectTarget(ctx context.Context, shortcut string) (model.Request, error) {
	c.console.Println(
		"First, you need to give the class name you want to generate.",
		"You must use the shortcut notation like AcmeBlogBundle:Post:Comment",
		"",
	)

	for {
		answer, err := c.console.Ask(ctx, Question{Title: "Class name", Default: shortcut})
		if err != nil {
			return model.Request{}, err
		}

		target, err := ParseShortcut(answer)
		if err != nil {
			c.console.Error(err.Error())
			continue
		}

		b, err := c.resolver.Resolve(ctx, target.Bundle)
		if errors.Is(err, bundle.ErrUnresolved) {
			c.console.Error(fmt.Sprintf("Bundle %q does not exist.", target.Bundle))
			continue
		}
		if err != nil {
			c.console.Error("Error: " + err.Error())
			continue
		}

		req := model.Request{Bundle: b, Section: target.Section, Class: target.Class}
		exists, err := c.exists.Exists(req)
		if err != nil {
			c.console.Error("Error: " + err.Error())
			continue
		}
		if exists {
			c.console.Error(fmt.Sprintf("Class \"%s:%s:%s\" already exists.", target.Bundle, target.Section, target.Class))
			continue
		}

		c.logger.Debug("target selected", "bundle", b.Name, "path", b.Path, "section", req.Section, "class", req.Class)
		return req, nil
	}
}

// CollectFields appends fields until an empty name (or the end of input) is
// given.
func (c *Collector) CollectFields(ctx context.Context, seed []model.RawField) ([]model.RawField, error) {
	fields := append(make([]model.RawField, 0, len(seed)), seed...)

	c.console.Println("", "Add some fields to the class", "")

	for {
		c.console.Println("")
		name, err := c.console.Ask(ctx, Question{
			Title: "New field name (press <return> to stop adding fields)",
			Validate: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return nil
				}
				return ValidateFieldName(s, fields)
			},
		})
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if name == "" {
			break
		}

		typ, err := c.console.Ask(ctx, Question{Title: "Field type", Validate: ValidateType})
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		fields = append(fields, model.RawField{FieldName: name, Type: typ})
		c.logger.Debug("field added", "field", name, "type", typ)
	}

	return fields, nil
}
