package node

// Graph is the connection-store collaborator consumed by the execution core.
// It answers which output port feeds which input port across nodes; the
// store itself (construction, persistence, editing) lives outside this
// module. Implementations must be safe for the synchronous, one-node-at-a-
// time call pattern of the protocol.
type Graph interface {
	// ConnectionsFrom lists every outgoing connection of the node.
	ConnectionsFrom(nodeID string) []Outbound

	// ConnectionsOfOutput lists the outgoing connections of one output.
	ConnectionsOfOutput(nodeID, outputName string) []Outbound

	// ConnectionOfInput resolves the single upstream feed of one input,
	// if any.
	ConnectionOfInput(nodeID, inputName string) (Inbound, bool)
}

// Outbound describes one connection leaving a node.
type Outbound struct {
	// OutputName is the source output port on the owning node.
	OutputName string

	// Target is the downstream node.
	Target Node

	// TargetInput is the input port name on the downstream node.
	TargetInput string
}

// Inbound describes the upstream feed of one input.
type Inbound struct {
	// InputName is the fed input port on the owning node.
	InputName string

	// Source is the upstream node.
	Source Node

	// SourceOutput is the output port name on the upstream node.
	SourceOutput string
}
