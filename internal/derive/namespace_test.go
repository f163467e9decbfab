package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		typ        string
		wantShort  string
		wantImport string
		wantSegs   int
	}{
		{typ: "", wantShort: "", wantImport: "", wantSegs: 0},
		{typ: "int", wantShort: "int", wantImport: "", wantSegs: 1},
		{typ: `\DateTime`, wantShort: `\DateTime`, wantImport: "", wantSegs: 1},
		{typ: `\Foo\Bar\Baz`, wantShort: `Bar\Baz`, wantImport: `Foo\Bar`, wantSegs: 3},
		{typ: `Foo\Bar`, wantShort: `Foo\Bar`, wantImport: "Foo", wantSegs: 2},
		{typ: `\Foo\Bar`, wantShort: `\Foo\Bar`, wantImport: "Foo", wantSegs: 2},
		{typ: `Foo\Bar\Baz`, wantShort: `Bar\Baz`, wantImport: `Foo\Bar`, wantSegs: 3},
		{typ: `A\B\C\D`, wantShort: `C\D`, wantImport: `A\B\C`, wantSegs: 4},
	}
	for _, tt := range tests {
		ns, err := Split(tt.typ)
		require.NoError(t, err, tt.typ)
		assert.Equal(t, tt.wantShort, ns.Short, tt.typ)
		assert.Equal(t, tt.wantImport, ns.Import, tt.typ)
		assert.Len(t, ns.Segments, tt.wantSegs, tt.typ)
	}
}

func TestSplitNeverImportsTheShortName(t *testing.T) {
	ns, err := Split(`A\B\C\D`)
	require.NoError(t, err)
	assert.NotEqual(t, `C\D`, ns.Import)
	assert.NotEqual(t, "D", ns.Import)
}
