// Package memgraph is an in-memory reference implementation of the
// node.Graph connection store. The execution core only ever consumes the
// query side of the interface; the maintenance operations here (Connect,
// Disconnect) exist so drivers, examples and tests have a concrete
// collaborator to wire graphs with.
package memgraph

import (
	"fmt"
	"sync"

	"github.com/wehubfusion/Daedalus/pkg/node"
)

// Graph is an in-memory connection store. It tracks which output port
// feeds which input port across registered nodes and keeps each input's
// connected flag in sync with the wiring.
type Graph struct {
	mu       sync.RWMutex
	nodes    map[string]node.Node
	outbound map[string][]node.Outbound
	inbound  map[string]map[string]node.Inbound
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]node.Node),
		outbound: make(map[string][]node.Outbound),
		inbound:  make(map[string]map[string]node.Inbound),
	}
}

// AddNode registers a node instance with the store.
func (g *Graph) AddNode(n node.Node) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.nodes[n.ID()]; exists {
		return fmt.Errorf("memgraph: node %q already added", n.ID())
	}
	g.nodes[n.ID()] = n
	return nil
}

// Node resolves a registered node by ID.
func (g *Graph) Node(id string) (node.Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	return n, ok
}

// Connect wires one output port to one input port and flags the input as
// connected, which disables its default fallback. An input accepts a single
// upstream feed; connecting an already-fed input fails.
func (g *Graph) Connect(from node.Node, outputName string, to node.Node, inputName string) error {
	if _, err := from.Output(outputName); err != nil {
		return err
	}
	if _, err := to.Input(inputName); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.inbound[to.ID()][inputName]; exists {
		return fmt.Errorf("memgraph: input %s of node %s already connected", inputName, to.ID())
	}
	g.outbound[from.ID()] = append(g.outbound[from.ID()], node.Outbound{
		OutputName:  outputName,
		Target:      to,
		TargetInput: inputName,
	})
	if g.inbound[to.ID()] == nil {
		g.inbound[to.ID()] = make(map[string]node.Inbound)
	}
	g.inbound[to.ID()][inputName] = node.Inbound{
		InputName:    inputName,
		Source:       from,
		SourceOutput: outputName,
	}
	return to.SetConnected(inputName, true)
}

// Disconnect removes the upstream feed of an input and clears its
// connected flag.
func (g *Graph) Disconnect(to node.Node, inputName string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	in, exists := g.inbound[to.ID()][inputName]
	if !exists {
		return fmt.Errorf("memgraph: input %s of node %s is not connected", inputName, to.ID())
	}
	delete(g.inbound[to.ID()], inputName)
	edges := g.outbound[in.Source.ID()]
	for i, con := range edges {
		if con.OutputName == in.SourceOutput && con.Target.ID() == to.ID() && con.TargetInput == inputName {
			g.outbound[in.Source.ID()] = append(edges[:i], edges[i+1:]...)
			break
		}
	}
	return to.SetConnected(inputName, false)
}

// ConnectionsFrom implements node.Graph.
func (g *Graph) ConnectionsFrom(nodeID string) []node.Outbound {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]node.Outbound(nil), g.outbound[nodeID]...)
}

// ConnectionsOfOutput implements node.Graph.
func (g *Graph) ConnectionsOfOutput(nodeID, outputName string) []node.Outbound {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []node.Outbound
	for _, con := range g.outbound[nodeID] {
		if con.OutputName == outputName {
			out = append(out, con)
		}
	}
	return out
}

// ConnectionOfInput implements node.Graph.
func (g *Graph) ConnectionOfInput(nodeID, inputName string) (node.Inbound, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	in, ok := g.inbound[nodeID][inputName]
	return in, ok
}

var _ node.Graph = (*Graph)(nil)
