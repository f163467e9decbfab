package cmd

import (
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/classgen/pkg/generator"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"debug+1", slog.LevelDebug + 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestGenerateCommandFlags(t *testing.T) {
	c := NewGenerateCommand()
	assert.Equal(t, "generate:class", c.Name())
	assert.Contains(t, c.Aliases, "class")
	for flag := range generateBindings {
		assert.NotNil(t, c.Flags().Lookup(flag), flag)
	}
	assert.Equal(t, "n", c.Flags().Lookup("no-interaction").Shorthand)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("generator.test_path", "Replace")
	viper.Set("generator.source_segment", "lib")
	viper.Set("generator.test_segment", "unit")
	viper.Set("generator.extension", "inc")
	viper.Set("generator.bundle_skeleton", "Resources/SensioGeneratorBundle/skeleton")
	viper.Set("generator.skeleton_dirs", []string{"/app/skeleton"})

	o := &generator.Options{}
	for _, fn := range optionsFromConfig(true) {
		fn(o)
	}
	o.Normalize()
	require.NoError(t, o.Validate())
	assert.Equal(t, generator.TestPathReplace, o.TestPath)
	assert.Equal(t, "lib", o.SourceSegment)
	assert.Equal(t, "unit", o.TestSegment)
	assert.Equal(t, ".inc", o.Extension)
	assert.Equal(t, "Resources/SensioGeneratorBundle/skeleton", o.BundleSkeleton)
	assert.Equal(t, []string{"/app/skeleton"}, o.SkeletonDirs)
	assert.True(t, o.DryRun)

	viper.Set("generator.test_path", "sideways")
	o = &generator.Options{}
	for _, fn := range optionsFromConfig(false) {
		fn(o)
	}
	o.Normalize()
	require.Error(t, o.Validate())
}
