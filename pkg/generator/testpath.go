package generator

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrNoSourceSegment = errors.New("bundle path has no source segment")

// TestPathStrategy maps a bundle source root to the root its tests live in.
type TestPathStrategy interface {
	TestRoot(root string) (string, error)
}

// NestedTestPath keeps tests inside the bundle: <root>/<Dir>.
type NestedTestPath struct {
	Dir string
}

func (n NestedTestPath) TestRoot(root string) (string, error) {
	return filepath.Join(root, n.Dir), nil
}

// ReplaceTestPath swaps a whole path segment of the root, so /app/src/Acme
// becomes /app/tests/Acme. The segment closest to the bundle wins.
type ReplaceTestPath struct {
	From string
	To   string
}

func (r ReplaceTestPath) TestRoot(root string) (string, error) {
	clean := filepath.ToSlash(filepath.Clean(root))
	segs := strings.Split(clean, "/")
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i] == r.From {
			segs[i] = r.To
			return filepath.FromSlash(strings.Join(segs, "/")), nil
		}
	}
	return "", fmt.Errorf("%w: %q does not contain %q", ErrNoSourceSegment, root, r.From)
}

// NewTestPathStrategy builds the strategy selected by opts.
func NewTestPathStrategy(opts *Options) (TestPathStrategy, error) {
	switch opts.TestPath {
	case TestPathNested:
		return NestedTestPath{Dir: opts.TestsDir}, nil
	case TestPathReplace:
		return ReplaceTestPath{From: opts.SourceSegment, To: opts.TestSegment}, nil
	default:
		return nil, fmt.Errorf("unknown test path strategy %q", opts.TestPath)
	}
}
