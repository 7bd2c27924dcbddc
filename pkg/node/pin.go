package node

import "fmt"

// Pin is a stable address identifying one port of one node instance. Pin
// identifiers have the form "<nodeID>:I<portName>" for inputs and
// "<nodeID>:O<portName>" for outputs; they are used for cross-referencing
// in connection records and serialization. A pin carries no state beyond
// its identity and the back-references to its port and node.
type Pin struct {
	ID   string
	Name string
	Port *Port
	Node Node
}

// InputPinID builds the pin identifier of a named input.
func InputPinID(nodeID, inputName string) string {
	return fmt.Sprintf("%s:I%s", nodeID, inputName)
}

// OutputPinID builds the pin identifier of a named output.
func OutputPinID(nodeID, outputName string) string {
	return fmt.Sprintf("%s:O%s", nodeID, outputName)
}
