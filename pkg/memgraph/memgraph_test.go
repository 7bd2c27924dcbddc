package memgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wehubfusion/Daedalus/pkg/memgraph"
	"github.com/wehubfusion/Daedalus/pkg/node"
	"github.com/wehubfusion/Daedalus/pkg/vartypes"
)

func newPair(t *testing.T) (*memgraph.Graph, node.Node, node.Node) {
	t.Helper()
	reg := node.NewRegistry()
	_, err := reg.Register(node.NewClassSpec("Relay").
		Input("in", vartypes.String, node.WithDefault("fallback")).
		Output("out", vartypes.String).
		Factory(node.PlainFactory(reg, "Relay")))
	require.NoError(t, err)

	graph := memgraph.New()
	a, err := reg.New("Relay", node.Config{ID: "a", Graph: graph})
	require.NoError(t, err)
	b, err := reg.New("Relay", node.Config{ID: "b", Graph: graph})
	require.NoError(t, err)
	require.NoError(t, graph.AddNode(a))
	require.NoError(t, graph.AddNode(b))
	return graph, a, b
}

func TestAddNode(t *testing.T) {
	graph, a, _ := newPair(t)

	got, ok := graph.Node("a")
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = graph.Node("ghost")
	assert.False(t, ok)

	require.Error(t, graph.AddNode(a), "duplicate IDs are rejected")
}

func TestConnect(t *testing.T) {
	graph, a, b := newPair(t)
	require.NoError(t, graph.Connect(a, "out", b, "in"))

	t.Run("query sides agree", func(t *testing.T) {
		outs := graph.ConnectionsFrom("a")
		require.Len(t, outs, 1)
		assert.Equal(t, "out", outs[0].OutputName)
		assert.Equal(t, "in", outs[0].TargetInput)
		assert.Same(t, b, outs[0].Target)

		byOutput := graph.ConnectionsOfOutput("a", "out")
		require.Len(t, byOutput, 1)
		assert.Empty(t, graph.ConnectionsOfOutput("a", "other"))

		in, ok := graph.ConnectionOfInput("b", "in")
		require.True(t, ok)
		assert.Same(t, a, in.Source)
		assert.Equal(t, "out", in.SourceOutput)
	})

	t.Run("connected input ignores its default", func(t *testing.T) {
		port, err := b.Input("in")
		require.NoError(t, err)
		assert.True(t, port.Connected())
		assert.False(t, port.IsAvailable(), "the default is disabled while connected")
	})

	t.Run("single feed per input", func(t *testing.T) {
		require.Error(t, graph.Connect(a, "out", b, "in"))
	})

	t.Run("unknown ports rejected", func(t *testing.T) {
		err := graph.Connect(a, "nope", b, "in")
		require.ErrorIs(t, err, node.ErrUnknownPort)
		err = graph.Connect(a, "out", b, "nope")
		require.ErrorIs(t, err, node.ErrUnknownPort)
	})
}

func TestDisconnect(t *testing.T) {
	graph, a, b := newPair(t)
	require.NoError(t, graph.Connect(a, "out", b, "in"))
	require.NoError(t, graph.Disconnect(b, "in"))

	assert.Empty(t, graph.ConnectionsFrom("a"))
	_, ok := graph.ConnectionOfInput("b", "in")
	assert.False(t, ok)

	port, err := b.Input("in")
	require.NoError(t, err)
	assert.False(t, port.Connected())
	assert.True(t, port.IsAvailable(), "the default is live again")

	require.Error(t, graph.Disconnect(b, "in"), "already disconnected")
}
