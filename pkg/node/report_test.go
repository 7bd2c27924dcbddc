package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wehubfusion/Daedalus/pkg/node"
)

func TestReporters(t *testing.T) {
	event := node.ErrorEvent{NodeID: "n1", Class: "ReadFile", Code: "IOError", Message: "gone"}

	t.Run("string form", func(t *testing.T) {
		assert.Equal(t, "ReadFile-n1: [IOError] gone", event.String())
	})

	t.Run("collector accumulates in order", func(t *testing.T) {
		c := &node.CollectReporter{}
		c.Report(event)
		c.Report(node.ErrorEvent{NodeID: "n2"})
		assert.Len(t, c.Events, 2)
		assert.Equal(t, "n1", c.Events[0].NodeID)
		assert.Equal(t, "n2", c.Events[1].NodeID)
	})

	t.Run("multi fans out", func(t *testing.T) {
		a, b := &node.CollectReporter{}, &node.CollectReporter{}
		m := node.MultiReporter{a, b, node.NopReporter{}}
		m.Report(event)
		assert.Len(t, a.Events, 1)
		assert.Len(t, b.Events, 1)
	})

	t.Run("log reporter writes structured fields", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		r := node.NewLogReporter(zap.New(core))
		r.Report(event)

		entries := logs.All()
		assert.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "n1", fields["node_id"])
		assert.Equal(t, "IOError", fields["code"])
	})
}
