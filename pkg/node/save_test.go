package node_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wehubfusion/Daedalus/pkg/memgraph"
	"github.com/wehubfusion/Daedalus/pkg/node"
)

func TestSnapshotRoundTrip(t *testing.T) {
	reg := newTestRegistry(t)
	graph := memgraph.New()

	up := mustNode(t, reg, "TestNode2", node.Config{ID: "up", Graph: graph})
	down := mustNode(t, reg, "TestNode", node.Config{ID: "down", Graph: graph})
	require.NoError(t, graph.AddNode(up))
	require.NoError(t, graph.AddNode(down))
	require.NoError(t, graph.Connect(up, "strOutput", down, "strInput"))

	up.(*node.PlainNode).SetPosition(node.Position{X: 3, Y: 7})
	require.NoError(t, up.SetInput("strInput", "payload", false))
	out, err := up.Output("strOutput")
	require.NoError(t, err)
	out.Write("emitted")

	snap, err := up.Snapshot()
	require.NoError(t, err)

	t.Run("payload content", func(t *testing.T) {
		assert.Equal(t, "TestNode2", snap.Class)
		assert.Equal(t, node.Position{X: 3, Y: 7}, snap.Position)

		require.Len(t, snap.Inputs, 3)
		assert.Equal(t, "strInput", snap.Inputs[0].Name)
		assert.Equal(t, "str", snap.Inputs[0].Type)
		assert.Equal(t, "payload", snap.Inputs[0].Value)
		assert.Equal(t, 10.0, snap.Inputs[1].Default)
		assert.Equal(t, "TestNode", snap.Inputs[2].Value, "default stands in for an unset input")

		require.Len(t, snap.Outputs, 1)
		assert.Equal(t, "emitted", snap.Outputs[0].Value)
		assert.Equal(t, []string{"down:IstrInput"}, snap.OutputConnections["strOutput"])
		assert.Empty(t, snap.InputConnections)
	})

	t.Run("downstream records its feed", func(t *testing.T) {
		dsnap, err := down.Snapshot()
		require.NoError(t, err)
		assert.Equal(t, "up:OstrOutput", dsnap.InputConnections["strInput"])
		assert.Equal(t, []string{}, dsnap.OutputConnections["strOutput"],
			"unconnected outputs still appear with an empty endpoint list")
	})

	t.Run("restore reproduces the snapshot", func(t *testing.T) {
		restored, err := node.RestoreNode(reg, snap, node.Config{ID: "up", Graph: graph})
		require.NoError(t, err)

		rsnap, err := restored.Snapshot()
		require.NoError(t, err)
		assert.Equal(t, snap, rsnap)
	})

	t.Run("payload survives JSON", func(t *testing.T) {
		raw, err := json.Marshal(snap)
		require.NoError(t, err)

		var decoded node.Snapshot
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, snap.Class, decoded.Class)
		assert.Equal(t, snap.Position, decoded.Position)
		assert.Equal(t, "payload", decoded.Inputs[0].Value)
		assert.Equal(t, snap.OutputConnections, decoded.OutputConnections)
	})
}

func TestRestoreErrors(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := node.RestoreNode(reg, nil, node.Config{})
	require.Error(t, err)

	_, err = node.RestoreNode(reg, &node.Snapshot{Class: "Ghost"}, node.Config{})
	require.ErrorIs(t, err, node.ErrUnknownClass)
}
