package derive

import (
	"fmt"
	"strings"

	"github.com/cmmoran/classgen/internal/model"
)

// Namespace is a type name split for rendering.
//
// For three or more segments the type is referenced by its last two segments
// and the parent of the second-to-last segment is imported:
//
//	Foo\Bar\Baz\Beep\Bloop -> Short: Beep\Bloop, Import: Foo\Bar\Baz\Beep
//
// A two-segment type keeps its name and imports its first segment. A bare
// name has no import here. Only the segments and the import drop a leading
// separator; Short keeps typ as written unless it is shortened.
type Namespace struct {
	Segments []string
	Short    string
	Import   string
}

// Split breaks typ on the namespace separator. A single leading separator is
// treated as the global namespace marker; any other empty segment is an error.
func Split(typ string) (Namespace, error) {
	ns := Namespace{Short: typ}
	name := strings.TrimPrefix(typ, model.NamespaceSeparator)
	if name == "" {
		if typ != "" {
			return Namespace{}, fmt.Errorf("%w: %q", ErrInvalidType, typ)
		}
		return ns, nil
	}

	ns.Segments = strings.Split(name, model.NamespaceSeparator)
	for _, s := range ns.Segments {
		if s == "" {
			return Namespace{}, fmt.Errorf("%w: %q has an empty namespace segment", ErrInvalidType, typ)
		}
	}

	n := len(ns.Segments)
	switch {
	case n >= 3:
		ns.Short = strings.Join(ns.Segments[n-2:], model.NamespaceSeparator)
		ns.Import = strings.Join(ns.Segments[:n-1], model.NamespaceSeparator)
	case n == 2:
		ns.Import = ns.Segments[0]
	}

	return ns, nil
}
