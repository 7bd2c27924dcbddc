package control_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wehubfusion/Daedalus/pkg/control"
	"github.com/wehubfusion/Daedalus/pkg/memgraph"
	"github.com/wehubfusion/Daedalus/pkg/node"
	"github.com/wehubfusion/Daedalus/pkg/vartypes"
)

// newControlRegistry returns a registry with the control-flow classes plus
// a Probe class used as an observation sink in the wiring tests.
func newControlRegistry(t *testing.T) *node.Registry {
	t.Helper()
	reg := node.NewRegistry()
	require.NoError(t, control.Register(reg))

	_, err := reg.Register(node.NewClassSpec("Probe").
		Input("in", vartypes.Object).
		Output("out", vartypes.Object).
		Factory(node.PlainFactory(reg, "Probe")))
	require.NoError(t, err)
	return reg
}

// probe instantiates an observation sink and wires the named output of
// from into it.
func probe(t *testing.T, reg *node.Registry, graph *memgraph.Graph, from node.Node, output string) node.Node {
	t.Helper()
	sink, err := reg.New("Probe", node.Config{Graph: graph})
	require.NoError(t, err)
	require.NoError(t, graph.AddNode(sink))
	require.NoError(t, graph.Connect(from, output, sink, "in"))
	return sink
}

// probeValue reads the sink's captured raw value; fails if nothing arrived.
func probeValue(t *testing.T, sink node.Node) interface{} {
	t.Helper()
	in, err := sink.Input("in")
	require.NoError(t, err)
	require.True(t, in.ValueSet(), "no value arrived at probe %s", sink)
	return in.RawValue()
}

// probeEmpty asserts nothing has arrived at the sink.
func probeEmpty(t *testing.T, sink node.Node) {
	t.Helper()
	in, err := sink.Input("in")
	require.NoError(t, err)
	require.False(t, in.ValueSet(), "unexpected value at probe %s: %v", sink, in.RawValue())
}

// resetProbe clears the sink so the next cycle's arrival is unambiguous.
func resetProbe(t *testing.T, sink node.Node) {
	t.Helper()
	in, err := sink.Input("in")
	require.NoError(t, err)
	in.Reset()
}

// cycle runs one full ready cycle on the node: the node must report ready,
// then Run and Notify must succeed.
func cycle(t *testing.T, n node.Node) {
	t.Helper()
	require.True(t, n.Check(), "%s not ready", n)
	require.NoError(t, n.Run())
	require.NoError(t, n.Notify())
}

func newControlGraph(t *testing.T, class string) (*node.Registry, *memgraph.Graph, node.Node) {
	t.Helper()
	reg := newControlRegistry(t)
	graph := memgraph.New()
	n, err := reg.New(class, node.Config{ID: "ctl", Graph: graph})
	require.NoError(t, err)
	require.NoError(t, graph.AddNode(n))
	return reg, graph, n
}
