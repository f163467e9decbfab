package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	TestPathNested  = "nested"
	TestPathReplace = "replace"
)

// Options control where files go and which skeletons are used.
//
// TestPath       – "nested" (under TestsDir) or "replace" (SourceSegment → TestSegment).
// TestsDir       – test directory below the bundle root for the nested strategy.
// SourceSegment  – path segment of the bundle root swapped by the replace strategy.
// TestSegment    – its replacement.
// Extension      – suffix of generated files, including the dot.
// SkeletonDirs   – app level skeleton directories, searched after the bundle's own.
// BundleSkeleton – skeleton directory relative to the bundle root.
// DryRun         – render without writing.
type Options struct {
	TestPath       string   `json:"test_path,omitempty" yaml:"test_path,omitempty" mapstructure:"test_path,omitempty" validate:"oneof=nested replace"`
	TestsDir       string   `json:"tests_dir,omitempty" yaml:"tests_dir,omitempty" mapstructure:"tests_dir,omitempty" validate:"required_if=TestPath nested"`
	SourceSegment  string   `json:"source_segment,omitempty" yaml:"source_segment,omitempty" mapstructure:"source_segment,omitempty" validate:"required_if=TestPath replace,excludesall=/\\"`
	TestSegment    string   `json:"test_segment,omitempty" yaml:"test_segment,omitempty" mapstructure:"test_segment,omitempty" validate:"required_if=TestPath replace,excludesall=/\\"`
	Extension      string   `json:"extension,omitempty" yaml:"extension,omitempty" mapstructure:"extension,omitempty" validate:"required,startswith=."`
	SkeletonDirs   []string `json:"skeleton_dirs,omitempty" yaml:"skeleton_dirs,omitempty" mapstructure:"skeleton_dirs,omitempty"`
	BundleSkeleton string   `json:"bundle_skeleton,omitempty" yaml:"bundle_skeleton,omitempty" mapstructure:"bundle_skeleton,omitempty"`
	DryRun         bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty" mapstructure:"dry_run,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		TestPath:       TestPathNested,
		TestsDir:       "Tests",
		SourceSegment:  "src",
		TestSegment:    "tests",
		Extension:      ".php",
		BundleSkeleton: filepath.Join("Resources", "skeleton"),
	}
}

// Normalize fills unset values with their defaults.
func (o *Options) Normalize() {
	d := NewOptions()
	o.TestPath = strings.ToLower(strings.TrimSpace(o.TestPath))
	if o.TestPath == "" {
		o.TestPath = d.TestPath
	}
	if o.TestsDir == "" {
		o.TestsDir = d.TestsDir
	}
	if o.SourceSegment == "" {
		o.SourceSegment = d.SourceSegment
	}
	if o.TestSegment == "" {
		o.TestSegment = d.TestSegment
	}
	if o.Extension == "" {
		o.Extension = d.Extension
	}
	if !strings.HasPrefix(o.Extension, ".") {
		o.Extension = "." + o.Extension
	}
	if o.BundleSkeleton == "" {
		o.BundleSkeleton = d.BundleSkeleton
	}
}

// Validate checks the options after Normalize.
func (o *Options) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		return fmt.Errorf("invalid generator options: %w", err)
	}
	return nil
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithNestedTests(dir string) Option {
	return func(o *Options) { o.TestPath, o.TestsDir = TestPathNested, dir }
}
func WithReplacedSegment(from, to string) Option {
	return func(o *Options) { o.TestPath, o.SourceSegment, o.TestSegment = TestPathReplace, from, to }
}
func WithExtension(ext string) Option { return func(o *Options) { o.Extension = ext } }
func WithSkeletonDirs(dirs ...string) Option {
	return func(o *Options) { o.SkeletonDirs = append(o.SkeletonDirs, dirs...) }
}
func WithBundleSkeleton(rel string) Option { return func(o *Options) { o.BundleSkeleton = rel } }
func WithDryRun() Option                   { return func(o *Options) { o.DryRun = true } }
