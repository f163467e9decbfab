package generator

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/classgen/internal/derive"
	"github.com/cmmoran/classgen/internal/model"
	"github.com/cmmoran/classgen/internal/render"
)

const root = "/tmp/classgen/src/Foo/BarBundle"

func fooBundle() model.Bundle {
	return model.Bundle{Name: "FooBarBundle", Path: root, Namespace: `Foo\BarBundle`}
}

func newGenerator(t *testing.T, opts ...Option) (*Generator, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	g, err := New(fs, render.New(fs), opts...)
	require.NoError(t, err)
	return g, fs
}

func read(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err, path)
	return string(data)
}

func TestGenerate(ttt *testing.T) {
	tests := []struct {
		name        string
		fields      []model.RawField
		classHas    []string
		classHasNot []string
		unitHas     []string
		unitHasNot  []string
	}{
		{
			name:   "bare class type",
			fields: []model.RawField{{FieldName: "Foo", Type: "FooType"}},
			classHas: []string{
				`namespace Foo\BarBundle\Section;`,
				"class Class",
				"use FooType;",
				"public function setFoo(FooType $foo)",
			},
			unitHas: []string{
				`namespace Foo\BarBundle\Tests\Section;`,
				"class ClassTest",
			},
		},
		{
			name: "namespaced and scalar fields",
			fields: []model.RawField{
				{FieldName: "FooField", Type: `Foo\Bar\Baz`},
				{FieldName: "BarField", Type: "int"},
			},
			classHas: []string{
				`use Foo\Bar;`,
				`public function setFooField(Bar\Baz $fooField)`,
				"public function getFooField()",
				"public function setBarField($barField)",
				"public function getBarField()",
				`@param Bar\Baz`,
			},
			unitHas: []string{
				`namespace Foo\BarBundle\Tests\Section;`,
				`use Foo\BarBundle\Section`,
				`use Foo\Bar;`,
				`class ClassTest extends \PHPUnit_Framework_TestCase`,
				"public function testSetFooField()",
				"->getMockBuilder('Foo\\Bar\\Baz')",
			},
		},
		{
			name:        "long namespace",
			fields:      []model.RawField{{FieldName: "FooField", Type: `Foo\Bar\Baz\Beep\Bloop`}},
			classHas:    []string{`use Foo\Bar\Baz\Beep;`, `public function setFooField(Beep\Bloop $fooField)`},
			classHasNot: []string{`use Beep\Bloop;`},
			unitHas:     []string{`use Foo\Bar\Baz\Beep;`},
			unitHasNot:  []string{`use Beep\Bloop;`},
		},
		{
			name: "duplicated namespace",
			fields: []model.RawField{
				{FieldName: "FirstField", Type: `Foo\Bar\Baz\First`},
				{FieldName: "SecondField", Type: `Foo\Bar\Baz\Second`},
			},
			classHas:    []string{`use Foo\Bar\Baz;`},
			classHasNot: []string{"use Foo\\Bar\\Baz;\nuse Foo\\Bar\\Baz;"},
		},
		{
			name:        "array",
			fields:      []model.RawField{{FieldName: "FirstField", Type: "array"}},
			classHas:    []string{"public function setFirstField(array $firstField)"},
			classHasNot: []string{"use array;"},
			unitHas:     []string{"$firstField = [];"},
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g, fs := newGenerator(t)
			req := model.Request{Bundle: fooBundle(), Section: "Section", Class: "Class", Fields: tt.fields}

			out, err := g.Generate(t.Context(), req)
			require.NoError(t, err)
			assert.Equal(t, root+"/Section/Class.php", out.ClassFile.Path)
			assert.Equal(t, root+"/Tests/Section/ClassTest.php", out.TestFile.Path)
			assert.Empty(t, out.ClassFile.Content)

			class := read(t, fs, out.ClassFile.Path)
			unit := read(t, fs, out.TestFile.Path)
			for _, s := range tt.classHas {
				assert.Contains(t, class, s)
			}
			for _, s := range tt.classHasNot {
				assert.NotContains(t, class, s)
			}
			for _, s := range tt.unitHas {
				assert.Contains(t, unit, s)
			}
			for _, s := range tt.unitHasNot {
				assert.NotContains(t, unit, s)
			}
		})
	}
}

func TestGenerateLogsFieldKinds(t *testing.T) {
	var logs bytes.Buffer
	g, _ := newGenerator(t)
	g.WithLogger(slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))

	_, err := g.Generate(t.Context(), model.Request{
		Bundle: fooBundle(),
		Class:  "Post",
		Fields: []model.RawField{
			{FieldName: "author", Type: `\DateTime`},
			{FieldName: "count", Type: "int"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"field":"author","kind":"class"`)
	assert.Contains(t, logs.String(), `"field":"count","kind":"integer"`)
}

func TestGenerateRefusesExistingClass(t *testing.T) {
	g, fs := newGenerator(t)
	existing := root + "/Section/Class.php"
	require.NoError(t, afero.WriteFile(fs, existing, []byte("<?php // mine"), 0o644))

	_, err := g.Generate(t.Context(), model.Request{Bundle: fooBundle(), Section: "Section", Class: "Class"})
	require.ErrorIs(t, err, ErrAlreadyExists)
	assert.ErrorContains(t, err, `"Section:Class"`)

	assert.Equal(t, "<?php // mine", read(t, fs, existing))
	exists, err := afero.Exists(fs, root+"/Tests/Section/ClassTest.php")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateReplaceStrategy(t *testing.T) {
	g, fs := newGenerator(t, WithReplacedSegment("src", "tests"))
	req := model.Request{Bundle: fooBundle(), Section: "Service/Blog", Class: "PostService"}

	out, err := g.Generate(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/classgen/tests/Foo/BarBundle/Service/Blog/PostServiceTest.php", out.TestFile.Path)
	assert.Contains(t, read(t, fs, out.ClassFile.Path), `namespace Foo\BarBundle\Service\Blog;`)

	req.Bundle.Path = "/srv/app/lib/Foo"
	_, err = g.Generate(t.Context(), req)
	require.ErrorIs(t, err, ErrNoSourceSegment)
}

func TestGenerateDryRun(t *testing.T) {
	g, fs := newGenerator(t, WithDryRun())
	req := model.Request{
		Bundle:  fooBundle(),
		Section: "Section",
		Class:   "Class",
		Fields:  []model.RawField{{FieldName: "title", Type: "string"}},
	}

	out, err := g.Generate(t.Context(), req)
	require.NoError(t, err)
	assert.True(t, out.DryRun)
	assert.Contains(t, out.ClassFile.Content, "public function setTitle($title)")
	assert.Contains(t, out.TestFile.Content, `$title = "I am a string";`)

	exists, err := afero.DirExists(fs, root)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateUsesBundleSkeleton(t *testing.T) {
	g, fs := newGenerator(t)
	require.NoError(t, afero.WriteFile(fs, root+"/Resources/skeleton/class/Class.php.tmpl",
		[]byte("custom {{ .class }} {{ join \",\" .uses }}"), 0o644))

	req := model.Request{Bundle: fooBundle(), Class: "Thing", Fields: []model.RawField{{FieldName: "a", Type: `X\Y`}}}
	out, err := g.Generate(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, root+"/Thing.php", out.ClassFile.Path)
	assert.Equal(t, "custom Thing X", read(t, fs, out.ClassFile.Path))
	assert.Contains(t, read(t, fs, out.TestFile.Path), `namespace Foo\BarBundle\Tests;`)
}

func TestGenerateInvalidRequests(t *testing.T) {
	g, _ := newGenerator(t)

	_, err := g.Generate(t.Context(), model.Request{Bundle: fooBundle()})
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = g.Generate(t.Context(), model.Request{Bundle: model.Bundle{Name: "X"}, Class: "C"})
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = g.Generate(t.Context(), model.Request{
		Bundle: fooBundle(),
		Class:  "C",
		Fields: []model.RawField{{FieldName: "bad", Type: `Foo\\Bar`}},
	})
	require.ErrorIs(t, err, ErrInvalidRequest)
	require.ErrorIs(t, err, derive.ErrInvalidType)
}

func TestOptionsValidation(t *testing.T) {
	o := NewOptions()
	o.TestPath = "sideways"
	_, err := NewWithOpts(afero.NewMemMapFs(), nil, o)
	require.Error(t, err)

	o = &Options{Extension: "inc", TestPath: " Replace "}
	g, err := NewWithOpts(afero.NewMemMapFs(), nil, o)
	require.NoError(t, err)
	assert.Equal(t, ".inc", g.Opts.Extension)
	assert.Equal(t, TestPathReplace, g.Opts.TestPath)
	assert.Equal(t, "src", g.Opts.SourceSegment)

	o = NewOptions()
	o.TestSegment = "te/sts"
	_, err = NewWithOpts(afero.NewMemMapFs(), nil, o)
	require.Error(t, err)
}
