package control_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wehubfusion/Daedalus/pkg/control"
)

func TestWaitAllBarrier(t *testing.T) {
	reg, graph, wa := newControlGraph(t, control.ClassWaitAll)
	sink := probe(t, reg, graph, wa, "out")

	assert.False(t, wa.Check())

	require.NoError(t, wa.SetInput("1", 5, false))
	assert.False(t, wa.Check(), "barrier needs every input")

	require.NoError(t, wa.SetInput("2", 7, false))
	cycle(t, wa)

	// The barrier signals arrival downstream; it does not transport the
	// gathered values.
	in, err := sink.Input("in")
	require.NoError(t, err)
	assert.True(t, in.ValueSet())
	assert.Nil(t, in.RawValue())

	t.Run("inputs are force-reset after firing", func(t *testing.T) {
		assert.False(t, wa.Check())
		one, err := wa.Input("1")
		require.NoError(t, err)
		assert.False(t, one.ValueSet())
	})
}

func TestWaitAnyBarrier(t *testing.T) {
	reg, graph, wy := newControlGraph(t, control.ClassWaitAny)
	sink := probe(t, reg, graph, wy, "out")

	t.Run("ready on any arrival", func(t *testing.T) {
		assert.False(t, wy.Check())
		require.NoError(t, wy.SetInput("2", "late", false))
		assert.True(t, wy.Check())
	})

	t.Run("forwards the arrived value", func(t *testing.T) {
		cycle(t, wy)
		assert.Equal(t, "late", probeValue(t, sink))
		resetProbe(t, sink)
	})

	t.Run("multiple arrivals forward in declaration order, last wins", func(t *testing.T) {
		require.NoError(t, wy.SetInput("1", "first", false))
		require.NoError(t, wy.SetInput("2", "second", false))
		cycle(t, wy)
		assert.Equal(t, "second", probeValue(t, sink))
	})

	t.Run("defaults do not trigger readiness", func(t *testing.T) {
		assert.False(t, wy.Check(), "inputs were force-reset, nothing has arrived")
	})
}
