package control

import (
	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/node"
)

// WaitAllNode is the all-of barrier: readiness and execution are the
// inherited defaults (ready once every input is available), and Notify
// force-resets all inputs after the default propagation. Every input must
// therefore be freshly supplied again before the next firing, which keeps
// synchronized-arrival semantics across repeated cycles regardless of
// upstream arrival order.
type WaitAllNode struct {
	node.BaseNode
}

// NewWaitAll builds an all-of barrier instance.
func NewWaitAll(desc *node.ClassDescriptor, cfg node.Config) (*WaitAllNode, error) {
	base, err := node.NewBaseNode(desc, cfg)
	if err != nil {
		return nil, err
	}
	n := &WaitAllNode{BaseNode: base}
	n.Bind(n)
	return n, nil
}

// Notify runs the default propagation, then force-resets all inputs, not
// just the ones that fired, so no stale value leaks into the next cycle.
func (n *WaitAllNode) Notify() error {
	if err := n.BaseNode.Notify(); err != nil {
		return err
	}
	n.ResetInputs()
	return nil
}

// WaitAnyNode is the any-of barrier: it extends the all-of barrier but is
// ready as soon as any input carries a set value, and Run forwards every
// currently-set input's value to the single output in port-declaration
// order. Multiple set inputs thus write the scalar output several times in
// one cycle, the last write winning at propagation time. This is preserved
// as documented legacy behavior and deliberately not extended.
type WaitAnyNode struct {
	WaitAllNode
}

// NewWaitAny builds an any-of barrier instance.
func NewWaitAny(desc *node.ClassDescriptor, cfg node.Config) (*WaitAnyNode, error) {
	base, err := node.NewBaseNode(desc, cfg)
	if err != nil {
		return nil, err
	}
	n := &WaitAnyNode{WaitAllNode{BaseNode: base}}
	n.Bind(n)
	return n, nil
}

// Check reports readiness as soon as any input holds an explicitly set
// value. Defaults do not count here; the barrier reacts to arrivals.
func (n *WaitAnyNode) Check() bool {
	for _, in := range n.Inputs() {
		if in.ValueSet() {
			return true
		}
	}
	return false
}

// Run forwards every set input's value to the output in declaration order.
func (n *WaitAnyNode) Run() error {
	n.Logger().Debug("executing node", zap.String("node", n.String()))
	for _, in := range n.Inputs() {
		if !in.ValueSet() {
			continue
		}
		if err := n.WriteOutput(portOut, in.RawValue()); err != nil {
			return err
		}
	}
	return nil
}
