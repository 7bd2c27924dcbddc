package node

import "fmt"

// PortSnapshot is the serialized state of one port: name, declared type
// name, the effective value (or nil) and the default literal (or nil).
type PortSnapshot struct {
	Name    string      `json:"name"`
	Type    string      `json:"type"`
	Value   interface{} `json:"value"`
	Default interface{} `json:"default"`
}

// Snapshot is the structural serialization payload of a node instance: the
// sole persistence contract the core exposes. A list of snapshots of every
// node in a graph is all the data the external persistence layer needs to
// rebuild the graph. Connection endpoints are recorded as pin-ID strings in
// both directions.
type Snapshot struct {
	Class             string              `json:"class"`
	Position          Position            `json:"position"`
	Inputs            []PortSnapshot      `json:"inputs"`
	InputConnections  map[string]string   `json:"inputConnections"`
	Outputs           []PortSnapshot      `json:"outputs"`
	OutputConnections map[string][]string `json:"outputConnections"`
}

// Snapshot produces the serialization payload of this instance. Input
// values are the effective (coerced) reads in no-raise mode; output values
// are the raw current values.
func (n *BaseNode) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{
		Class:             n.class,
		Position:          n.pos,
		InputConnections:  make(map[string]string, len(n.inputOrder)),
		OutputConnections: make(map[string][]string, len(n.outputOrder)),
	}
	for _, name := range n.inputOrder {
		port := n.inputs[name]
		snap.Inputs = append(snap.Inputs, PortSnapshot{
			Name:    name,
			Type:    port.Type().Name,
			Value:   port.ValueOrNil(),
			Default: port.Default(),
		})
		if n.graph != nil {
			if con, ok := n.graph.ConnectionOfInput(n.id, name); ok {
				snap.InputConnections[name] = OutputPinID(con.Source.ID(), con.SourceOutput)
			}
		}
	}
	for _, name := range n.outputOrder {
		port := n.outputs[name]
		snap.Outputs = append(snap.Outputs, PortSnapshot{
			Name:    name,
			Type:    port.Type().Name,
			Value:   port.RawValue(),
			Default: port.Default(),
		})
		endpoints := []string{}
		if n.graph != nil {
			for _, con := range n.graph.ConnectionsOfOutput(n.id, name) {
				endpoints = append(endpoints, InputPinID(con.Target.ID(), con.TargetInput))
			}
		}
		snap.OutputConnections[name] = endpoints
	}
	return snap, nil
}

// RestoreNode reinstantiates a node from its snapshot payload: the class is
// resolved against the registry, then port defaults and values are applied
// on top of the fresh instance. Connection endpoints travel in the payload
// for the external graph layer to re-wire; they are not applied here.
func RestoreNode(reg *Registry, snap *Snapshot, cfg Config) (Node, error) {
	if snap == nil {
		return nil, fmt.Errorf("node: nil snapshot")
	}
	cfg.Position = snap.Position
	restored, err := reg.New(snap.Class, cfg)
	if err != nil {
		return nil, err
	}
	for _, ps := range snap.Inputs {
		port, err := restored.Input(ps.Name)
		if err != nil {
			return nil, err
		}
		port.def = ps.Default
		if ps.Value != nil {
			if err := port.Set(ps.Value, true); err != nil {
				return nil, err
			}
		}
	}
	for _, ps := range snap.Outputs {
		port, err := restored.Output(ps.Name)
		if err != nil {
			return nil, err
		}
		port.def = ps.Default
		if ps.Value != nil {
			port.Write(ps.Value)
		}
	}
	return restored, nil
}
