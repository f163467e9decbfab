package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/classgen/internal/prompt"
	"github.com/cmmoran/classgen/pkg/action/generate"
	"github.com/cmmoran/classgen/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

// flag name -> config key
var generateBindings = map[string]string{
	"test-path":       "generator.test_path",
	"tests-dir":       "generator.tests_dir",
	"source-segment":  "generator.source_segment",
	"test-segment":    "generator.test_segment",
	"extension":       "generator.extension",
	"skeleton-dir":    "generator.skeleton_dirs",
	"bundle-skeleton": "generator.bundle_skeleton",
	"composer":        "composer.file",
}

func NewGenerateCommand() *cobra.Command {
	var (
		params        = &generate.Params{}
		noInteraction bool
		dryRun        bool
	)

	// generateCmd represents the classgen generate:class command
	var generateCmd = &cobra.Command{
		Use:     "generate:class",
		Aliases: []string{"class"},
		Short:   "generate a class and its unit test",
		Long: `Generate a class and its unit test inside a bundle.

The class is named with the shortcut notation Bundle:Section:Class, for
example AcmeBlogBundle:Post:Comment. Fields are given as name:type pairs:

  classgen generate:class --class=AcmeBlogBundle:Post:Comment --fields="body:string author:Acme\BlogBundle\Entity\User"`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if err := viper.UnmarshalKey("bundles", &params.Bundles); err != nil {
				return err
			}
			params.Options = optionsFromConfig(dryRun)
			params.BaseDir = baseDir()
			params.ComposerFile = viper.GetString("composer.file")
			if params.ComposerFile != "" && !filepath.IsAbs(params.ComposerFile) {
				params.ComposerFile = filepath.Join(params.BaseDir, params.ComposerFile)
			}
			params.Interactive = !noInteraction
			params.In = c.InOrStdin()
			params.Out = c.OutOrStdout()
			params.Logger = slog.Default()

			_, err := generate.Generate(c.Context(), afero.NewOsFs(), params)
			if errors.Is(err, prompt.ErrAborted) {
				return nil
			}
			return err
		},
	}
	flags := generateCmd.Flags()
	flags.StringVar(&params.Shortcut, "class", "", "the class name to create, in shortcut notation (AcmeBlogBundle:Post:Comment)")
	flags.StringVar(&params.Fields, "fields", "", `the fields to create, as space separated name:type pairs (title:string body:text)`)
	flags.StringVar(&params.FieldsFile, "fields-file", "", "yaml file listing the fields to create")
	flags.BoolVarP(&noInteraction, "no-interaction", "n", false, "do not ask any interactive question")
	flags.BoolVar(&dryRun, "dry-run", false, "print the generated files instead of writing them")
	flags.String("test-path", generator.TestPathNested, "test file layout: nested (<bundle>/Tests/...) or replace (src -> tests)")
	flags.String("tests-dir", "Tests", "test directory below the bundle root, for --test-path=nested")
	flags.String("source-segment", "src", "path segment swapped for --test-path=replace")
	flags.String("test-segment", "tests", "replacement for --source-segment")
	flags.String("extension", ".php", "extension of the generated files")
	flags.StringSlice("skeleton-dir", []string{}, "skeleton directories searched after the bundle's Resources/skeleton")
	flags.String("bundle-skeleton", filepath.Join("Resources", "skeleton"), "skeleton directory relative to the bundle root, searched first")
	flags.String("composer", "composer.json", "composer.json used to locate bundles through PSR-4 autoload")

	for flag, key := range generateBindings {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}

	return generateCmd
}

func optionsFromConfig(dryRun bool) []generator.Option {
	opts := []generator.Option{
		generator.WithExtension(viper.GetString("generator.extension")),
		generator.WithSkeletonDirs(viper.GetStringSlice("generator.skeleton_dirs")...),
		generator.WithBundleSkeleton(viper.GetString("generator.bundle_skeleton")),
	}
	switch testPath := strings.ToLower(strings.TrimSpace(viper.GetString("generator.test_path"))); testPath {
	case generator.TestPathNested, "":
		opts = append(opts, generator.WithNestedTests(viper.GetString("generator.tests_dir")))
	case generator.TestPathReplace:
		opts = append(opts, generator.WithReplacedSegment(
			viper.GetString("generator.source_segment"),
			viper.GetString("generator.test_segment"),
		))
	default:
		// left for Options.Validate to reject
		opts = append(opts, func(o *generator.Options) { o.TestPath = testPath })
	}
	if dryRun {
		opts = append(opts, generator.WithDryRun())
	}
	return opts
}

// baseDir anchors relative bundle paths: the config file's directory, or the
// working directory without one.
func baseDir() string {
	if f := viper.ConfigFileUsed(); f != "" {
		if abs, err := filepath.Abs(f); err == nil {
			return filepath.Dir(abs)
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
