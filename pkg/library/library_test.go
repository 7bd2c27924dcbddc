package library_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wehubfusion/Daedalus/pkg/library"
	"github.com/wehubfusion/Daedalus/pkg/node"
)

func newLibraryRegistry(t *testing.T) *node.Registry {
	t.Helper()
	reg := node.NewRegistry()
	require.NoError(t, library.Register(reg))
	return reg
}

// ran performs one Check/Run cycle and returns the raw value written to the
// named output.
func ran(t *testing.T, n node.Node, output string) interface{} {
	t.Helper()
	require.True(t, n.Check(), "%s not ready", n)
	require.NoError(t, n.Run())
	out, err := n.Output(output)
	require.NoError(t, err)
	return out.RawValue()
}

func TestConstantNodes(t *testing.T) {
	reg := newLibraryRegistry(t)

	t.Run("CreateString", func(t *testing.T) {
		n, err := reg.New(library.ClassCreateString, node.Config{})
		require.NoError(t, err)
		require.NoError(t, n.SetInput("Str", "hello", false))
		assert.Equal(t, "hello", ran(t, n, "String"))
	})

	t.Run("CreateInt coerces literals", func(t *testing.T) {
		n, err := reg.New(library.ClassCreateInt, node.Config{})
		require.NoError(t, err)
		require.NoError(t, n.SetInput("Value", "17", false))
		assert.Equal(t, 17, ran(t, n, "Integer"))
	})

	t.Run("CreateBool", func(t *testing.T) {
		n, err := reg.New(library.ClassCreateBool, node.Config{})
		require.NoError(t, err)
		require.NoError(t, n.SetInput("Value", true, false))
		assert.Equal(t, true, ran(t, n, "Boolean"))
	})
}

func TestIsEqual(t *testing.T) {
	reg := newLibraryRegistry(t)

	cases := []struct {
		name string
		a, b interface{}
		want bool
	}{
		{"equal ints", 3, 3, true},
		{"different ints", 3, 4, false},
		{"deep slices", []interface{}{1, "x"}, []interface{}{1, "x"}, true},
		{"mixed types", 1, "1", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := reg.New(library.ClassIsEqual, node.Config{})
			require.NoError(t, err)
			require.NoError(t, n.SetInput("object1", tc.a, false))
			require.NoError(t, n.SetInput("object2", tc.b, false))
			assert.Equal(t, tc.want, ran(t, n, "Equal"))
		})
	}
}

func TestReadFile(t *testing.T) {
	reg := newLibraryRegistry(t)

	t.Run("reads content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.txt")
		require.NoError(t, os.WriteFile(path, []byte("file body"), 0o644))

		n, err := reg.New(library.ClassReadFile, node.Config{})
		require.NoError(t, err)
		require.NoError(t, n.SetInput("Name", path, false))
		assert.Equal(t, "file body", ran(t, n, "Content"))
	})

	t.Run("missing file reports IOError", func(t *testing.T) {
		collector := &node.CollectReporter{}
		n, err := reg.New(library.ClassReadFile, node.Config{Reporter: collector})
		require.NoError(t, err)
		require.NoError(t, n.SetInput("Name", filepath.Join(t.TempDir(), "absent"), false))

		require.True(t, n.Check())
		require.NoError(t, n.Run(), "a domain failure must not abort the cycle")

		require.Len(t, collector.Events, 1)
		assert.Equal(t, "IOError", collector.Events[0].Code)
		out, err := n.Output("Content")
		require.NoError(t, err)
		assert.Nil(t, out.RawValue())
	})
}

func TestDebugPrint(t *testing.T) {
	reg := newLibraryRegistry(t)

	n, err := reg.New(library.ClassDebugPrint, node.Config{})
	require.NoError(t, err)
	require.NoError(t, n.SetInput("Object", []interface{}{1, 2}, false))
	assert.Equal(t, []interface{}{1, 2}, ran(t, n, "Out"), "the value passes through unchanged")
}

func TestChangeCase(t *testing.T) {
	reg := newLibraryRegistry(t)

	cases := []struct {
		mode string
		in   string
		want string
	}{
		{library.CaseUpper, "mixed Case", "MIXED CASE"},
		{library.CaseLower, "Mixed Case", "mixed case"},
		{library.CaseTitle, "mixed case words", "Mixed Case Words"},
	}
	for _, tc := range cases {
		t.Run(tc.mode, func(t *testing.T) {
			n, err := reg.New(library.ClassChangeCase, node.Config{})
			require.NoError(t, err)
			require.NoError(t, n.SetInput("Value", tc.in, false))
			require.NoError(t, n.SetInput("Mode", tc.mode, true))
			assert.Equal(t, tc.want, ran(t, n, "Result"))
		})
	}

	t.Run("mode defaults to upper", func(t *testing.T) {
		n, err := reg.New(library.ClassChangeCase, node.Config{})
		require.NoError(t, err)
		require.NoError(t, n.SetInput("Value", "quiet", false))
		assert.Equal(t, "QUIET", ran(t, n, "Result"))
	})

	t.Run("unknown mode reports BadMode", func(t *testing.T) {
		collector := &node.CollectReporter{}
		n, err := reg.New(library.ClassChangeCase, node.Config{Reporter: collector})
		require.NoError(t, err)
		require.NoError(t, n.SetInput("Value", "x", false))
		require.NoError(t, n.SetInput("Mode", "sideways", false))

		require.True(t, n.Check())
		require.NoError(t, n.Run())
		require.Len(t, collector.Events, 1)
		assert.Equal(t, "BadMode", collector.Events[0].Code)
	})
}

func TestScript(t *testing.T) {
	reg := newLibraryRegistry(t)

	t.Run("evaluates with the bound input", func(t *testing.T) {
		n, err := reg.New(library.ClassScript, node.Config{})
		require.NoError(t, err)
		require.NoError(t, n.SetInput("Source", `input.toUpperCase() + "!"`, false))
		require.NoError(t, n.SetInput("Input", "loud", false))
		assert.Equal(t, "LOUD!", ran(t, n, "Result"))
	})

	t.Run("host environment is not exposed", func(t *testing.T) {
		collector := &node.CollectReporter{}
		n, err := reg.New(library.ClassScript, node.Config{Reporter: collector})
		require.NoError(t, err)
		require.NoError(t, n.SetInput("Source", `require("fs")`, false))
		require.NoError(t, n.SetInput("Input", nil, false))

		require.True(t, n.Check())
		require.NoError(t, n.Run())
		require.Len(t, collector.Events, 1)
		assert.Equal(t, "ScriptError", collector.Events[0].Code)
	})

	t.Run("syntax error reports ScriptError", func(t *testing.T) {
		collector := &node.CollectReporter{}
		n, err := reg.New(library.ClassScript, node.Config{Reporter: collector})
		require.NoError(t, err)
		require.NoError(t, n.SetInput("Source", `this is not javascript`, false))
		require.NoError(t, n.SetInput("Input", 0, false))

		require.True(t, n.Check())
		require.NoError(t, n.Run())
		require.Len(t, collector.Events, 1)
		assert.Equal(t, "ScriptError", collector.Events[0].Code)
	})
}
