// Package node implements the execution core of the dataflow environment:
// typed ports bound to node instances, the declarative class registry, and
// the check/run/notify protocol an external driver invokes to execute a
// graph. The connection store and the scheduling order are collaborators
// outside this package; nodes only consume the Graph query interface.
package node

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/vartypes"
)

// Position is the editor placement of a node instance. It is carried as
// opaque data through serialization.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Config carries the per-instance construction parameters of a node.
type Config struct {
	// ID is the node instance identifier. Empty generates a UUID.
	ID string

	// Graph is the connection-store collaborator. A nil graph is valid
	// for detached instances; Notify then only resets inputs.
	Graph Graph

	// Position is the editor placement.
	Position Position

	// Logger receives execution traces. Nil defaults to a no-op logger.
	Logger *zap.Logger

	// Reporter is the node-local channel for domain failures raised
	// during Run. Nil defaults to a no-op reporter.
	Reporter Reporter
}

// Node is a typed unit of computation with named input/output ports and the
// check/run/notify lifecycle. Check, Run and Notify are synchronous and are
// never invoked concurrently for the same instance; the external driver
// decides invocation order across the graph.
type Node interface {
	ID() string
	Class() string
	Position() Position
	String() string

	// Check reports whether all prerequisites for running are met. The
	// driver defers the node and retries later when it returns false.
	Check() bool

	// Run executes the node's logic. The error return is reserved for
	// protocol-level failures (unknown ports, unavailable reads);
	// domain failures are raised through the configured Reporter so
	// the driver can keep scheduling other nodes.
	Run() error

	// Notify propagates output values into downstream inputs through
	// the Graph collaborator and re-arms the node's own inputs.
	Notify() error

	// SetInput writes a value into a named input. Notify is the only
	// caller during normal execution; drivers use it to seed sources.
	SetInput(name string, value interface{}, override bool) error

	// SetConnected flags a named input as fed by an upstream
	// connection, disabling its default fallback.
	SetConnected(name string, connected bool) error

	Input(name string) (*InputPort, error)
	Output(name string) (*OutputPort, error)
	InputNames() []string
	OutputNames() []string

	// Snapshot produces the structural serialization payload.
	Snapshot() (*Snapshot, error)
}

// BaseNode is the default Node implementation. Concrete node types embed it
// and override Check, Run or Notify; Bind must be called after construction
// so the base dispatches graph queries against the outer type.
type BaseNode struct {
	id       string
	class    string
	pos      Position
	graph    Graph
	logger   *zap.Logger
	reporter Reporter

	inputs      map[string]*InputPort
	outputs     map[string]*OutputPort
	inputOrder  []string
	outputOrder []string
	inputPins   map[string]*Pin
	outputPins  map[string]*Pin

	self Node
}

// NewBaseNode builds the instance-owned ports and pins of a node from its
// class descriptor. Every port is a private copy of the schema entry; class
// defaults are coerced with the legacy rules at this point. Construction
// fails with ErrNoInputs when the class declares no inputs.
func NewBaseNode(desc *ClassDescriptor, cfg Config) (BaseNode, error) {
	if desc == nil {
		return BaseNode{}, fmt.Errorf("node: nil class descriptor")
	}
	if len(desc.Inputs) == 0 {
		return BaseNode{}, fmt.Errorf("node: class %q: %w", desc.Name, ErrNoInputs)
	}
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reporter := cfg.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}

	n := BaseNode{
		id:         id,
		class:      desc.Name,
		pos:        cfg.Position,
		graph:      cfg.Graph,
		logger:     logger,
		reporter:   reporter,
		inputs:     make(map[string]*InputPort, len(desc.Inputs)),
		outputs:    make(map[string]*OutputPort, len(desc.Outputs)),
		inputPins:  make(map[string]*Pin, len(desc.Inputs)),
		outputPins: make(map[string]*Pin, len(desc.Outputs)),
	}
	owner := fmt.Sprintf("%s-%s", desc.Name, id)

	for _, spec := range desc.Inputs {
		port := &InputPort{Port: newPort(spec, owner, InputPinID(id, spec.Name))}
		n.inputs[spec.Name] = port
		n.inputOrder = append(n.inputOrder, spec.Name)
		n.inputPins[spec.Name] = &Pin{ID: port.pinID, Name: spec.Name, Port: &port.Port}
	}
	for _, spec := range desc.Outputs {
		port := &OutputPort{Port: newPort(spec, owner, OutputPinID(id, spec.Name))}
		n.outputs[spec.Name] = port
		n.outputOrder = append(n.outputOrder, spec.Name)
		n.outputPins[spec.Name] = &Pin{ID: port.pinID, Name: spec.Name, Port: &port.Port}
	}
	return n, nil
}

func newPort(spec PortSpec, owner, pinID string) Port {
	p := Port{
		name:    spec.Name,
		typ:     spec.Type,
		hints:   spec.Type.EffectiveHints(spec.Hints),
		options: spec.Options,
		isList:  spec.IsList,
		owner:   owner,
		pinID:   pinID,
	}
	if spec.Default != nil {
		p.SetDefault(spec.Default)
	}
	return p
}

// Bind registers the outer node type with the base so pins and the default
// Notify reference the concrete instance. Factories call it once right
// after construction.
func (n *BaseNode) Bind(self Node) {
	n.self = self
	for _, pin := range n.inputPins {
		pin.Node = self
	}
	for _, pin := range n.outputPins {
		pin.Node = self
	}
}

// ID returns the node instance identifier.
func (n *BaseNode) ID() string { return n.id }

// Class returns the node class name.
func (n *BaseNode) Class() string { return n.class }

// Position returns the editor placement.
func (n *BaseNode) Position() Position { return n.pos }

// SetPosition updates the editor placement.
func (n *BaseNode) SetPosition(pos Position) { n.pos = pos }

// Graph returns the connection-store collaborator, nil for detached nodes.
func (n *BaseNode) Graph() Graph { return n.graph }

// Logger returns the node's structured logger.
func (n *BaseNode) Logger() *zap.Logger { return n.logger }

func (n *BaseNode) String() string {
	return fmt.Sprintf("%s-%s", n.class, n.id)
}

// Check reports readiness: by default every input must be available.
// Control-flow nodes override this with their state machines.
func (n *BaseNode) Check() bool {
	for _, name := range n.inputOrder {
		if !n.inputs[name].IsAvailable() {
			n.logger.Debug("prerequisites not met",
				zap.String("node", n.String()),
				zap.String("input", name))
			return false
		}
	}
	return true
}

// Run is the default no-op execution: it emits the execution trace.
func (n *BaseNode) Run() error {
	n.logger.Debug("executing node", zap.String("node", n.String()))
	return nil
}

// Notify pushes every output's current value (explicit value if set, else
// its default) into the connected downstream inputs, overriding stale
// values from prior cycles, then resets all of this node's inputs.
func (n *BaseNode) Notify() error {
	if n.graph != nil {
		for _, con := range n.graph.ConnectionsFrom(n.id) {
			out, ok := n.outputs[con.OutputName]
			if !ok {
				return portErr(n.String(), con.OutputName, ErrUnknownPort)
			}
			value := out.value
			if !out.valueSet {
				value = out.def
			}
			if err := con.Target.SetInput(con.TargetInput, value, true); err != nil {
				return err
			}
		}
	}
	n.ResetInputs()
	return nil
}

// PropagateOutput pushes one output's connections, the primitive the
// control-flow nodes route through. Override selects whether a stale
// downstream value may be replaced.
func (n *BaseNode) PropagateOutput(name string, override bool) error {
	out, ok := n.outputs[name]
	if !ok {
		return portErr(n.String(), name, ErrUnknownPort)
	}
	if n.graph == nil {
		return nil
	}
	for _, con := range n.graph.ConnectionsOfOutput(n.id, name) {
		if err := con.Target.SetInput(con.TargetInput, out.value, override); err != nil {
			return err
		}
	}
	return nil
}

// ResetInputs re-arms every input port.
func (n *BaseNode) ResetInputs() {
	for _, port := range n.inputs {
		port.Reset()
	}
}

// SetInput writes a value into a named input.
func (n *BaseNode) SetInput(name string, value interface{}, override bool) error {
	port, ok := n.inputs[name]
	if !ok {
		return portErr(n.String(), name, ErrUnknownPort)
	}
	return port.Set(value, override)
}

// SetConnected flags a named input as fed by an upstream connection.
func (n *BaseNode) SetConnected(name string, connected bool) error {
	port, ok := n.inputs[name]
	if !ok {
		return portErr(n.String(), name, ErrUnknownPort)
	}
	port.SetConnected(connected)
	return nil
}

// ReadInput performs a coerced read of a named input.
func (n *BaseNode) ReadInput(name string) (interface{}, error) {
	port, ok := n.inputs[name]
	if !ok {
		return nil, portErr(n.String(), name, ErrUnknownPort)
	}
	return port.Value()
}

// ReadInputOrNil is the no-raise read mode for a named input.
func (n *BaseNode) ReadInputOrNil(name string) interface{} {
	port, ok := n.inputs[name]
	if !ok {
		return nil
	}
	return port.ValueOrNil()
}

// WriteOutput performs the push operation on a named output.
func (n *BaseNode) WriteOutput(name string, value interface{}) error {
	port, ok := n.outputs[name]
	if !ok {
		return portErr(n.String(), name, ErrUnknownPort)
	}
	port.Write(value)
	return nil
}

// Input returns the named input port.
func (n *BaseNode) Input(name string) (*InputPort, error) {
	port, ok := n.inputs[name]
	if !ok {
		return nil, portErr(n.String(), name, ErrUnknownPort)
	}
	return port, nil
}

// Output returns the named output port.
func (n *BaseNode) Output(name string) (*OutputPort, error) {
	port, ok := n.outputs[name]
	if !ok {
		return nil, portErr(n.String(), name, ErrUnknownPort)
	}
	return port, nil
}

// InputNames returns the input names in declaration order.
func (n *BaseNode) InputNames() []string {
	return append([]string(nil), n.inputOrder...)
}

// OutputNames returns the output names in declaration order.
func (n *BaseNode) OutputNames() []string {
	return append([]string(nil), n.outputOrder...)
}

// Inputs returns the input ports in declaration order.
func (n *BaseNode) Inputs() []*InputPort {
	out := make([]*InputPort, 0, len(n.inputOrder))
	for _, name := range n.inputOrder {
		out = append(out, n.inputs[name])
	}
	return out
}

// InputPin returns the pin of a named input.
func (n *BaseNode) InputPin(name string) (*Pin, error) {
	pin, ok := n.inputPins[name]
	if !ok {
		return nil, portErr(n.String(), name, ErrUnknownPort)
	}
	return pin, nil
}

// OutputPin returns the pin of a named output.
func (n *BaseNode) OutputPin(name string) (*Pin, error) {
	pin, ok := n.outputPins[name]
	if !ok {
		return nil, portErr(n.String(), name, ErrUnknownPort)
	}
	return pin, nil
}

// InputOfType returns the first input whose declared type is compatible
// (supertype or subtype) with the requested descriptor, nil when none is.
// Used by generic wiring surfaces.
func (n *BaseNode) InputOfType(d *vartypes.Descriptor) *InputPort {
	for _, name := range n.inputOrder {
		if vartypes.Compatible(n.inputs[name].Type(), d) {
			return n.inputs[name]
		}
	}
	return nil
}

// OutputOfType returns the first output whose declared type is compatible
// with the requested descriptor, nil when none is.
func (n *BaseNode) OutputOfType(d *vartypes.Descriptor) *OutputPort {
	for _, name := range n.outputOrder {
		if vartypes.Compatible(n.outputs[name].Type(), d) {
			return n.outputs[name]
		}
	}
	return nil
}

// RaiseError reports a domain failure through the node-local reporting
// channel. The surrounding driver decides whether to halt or continue.
func (n *BaseNode) RaiseError(code, message string) {
	n.logger.Warn("node error",
		zap.String("node", n.String()),
		zap.String("code", code),
		zap.String("message", message))
	n.reporter.Report(ErrorEvent{
		NodeID:  n.id,
		Class:   n.class,
		Code:    code,
		Message: message,
	})
}
