package control

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/node"
)

type loopState int

const (
	loopFresh loopState = iota
	loopIterating
)

// LoopNode iterates its body a fixed number of times. The fresh cycle
// captures the Iterations count and emits Start to LoopBody; each completed
// body iteration reports back through Control and is re-emitted to LoopBody
// while the countdown runs; the Control value that arrives after the last
// iteration leaves through Final. A count of N produces exactly N LoopBody
// emissions in total.
type LoopNode struct {
	node.BaseNode

	state   loopState
	counter int
	fired   string
}

// NewLoop builds a counted loop node instance.
func NewLoop(desc *node.ClassDescriptor, cfg node.Config) (*LoopNode, error) {
	base, err := node.NewBaseNode(desc, cfg)
	if err != nil {
		return nil, err
	}
	n := &LoopNode{BaseNode: base, state: loopFresh}
	n.Bind(n)
	return n, nil
}

// Check reports readiness: fresh needs Start and Iterations (Control is
// excluded), iterating needs Control.
func (n *LoopNode) Check() bool {
	if n.state == loopFresh {
		if !checkExceptControl(&n.BaseNode) {
			n.Logger().Debug("prerequisites not met", zap.String("node", n.String()))
			return false
		}
		return true
	}
	return controlAvailable(&n.BaseNode)
}

// Run arms the countdown on the fresh cycle and emits Start to LoopBody;
// on iterating cycles it re-emits Control to LoopBody while the countdown
// runs, then routes Control to Final.
func (n *LoopNode) Run() error {
	n.Logger().Debug("executing node", zap.String("node", n.String()))
	if n.state == loopFresh {
		raw, err := n.ReadInput(portIterations)
		if err != nil {
			return err
		}
		count, ok := raw.(int)
		if !ok {
			return fmt.Errorf("%s: Iterations read produced %T, expected int", n.String(), raw)
		}
		start, err := n.ReadInput(portStart)
		if err != nil {
			return err
		}
		// The initial emission consumes one iteration.
		n.counter = count - 1
		n.state = loopIterating
		n.fired = portLoopBody
		return n.WriteOutput(portLoopBody, start)
	}

	joined, err := n.ReadInput(portControl)
	if err != nil {
		return err
	}
	if n.counter > 0 {
		n.counter--
		n.fired = portLoopBody
		return n.WriteOutput(portLoopBody, joined)
	}
	n.fired = portFinal
	return n.WriteOutput(portFinal, joined)
}

// Notify propagates the output Run fired. A LoopBody emission overrides
// stale body inputs and re-arms only Control; the Final emission re-arms
// every input except Iterations and returns the node to fresh.
func (n *LoopNode) Notify() error {
	if n.fired == portLoopBody {
		if err := n.PropagateOutput(portLoopBody, true); err != nil {
			return err
		}
		resetInput(&n.BaseNode, portControl)
		return nil
	}
	if err := n.PropagateOutput(portFinal, false); err != nil {
		return err
	}
	for _, in := range n.Inputs() {
		if in.Name() == portIterations {
			continue
		}
		in.Reset()
	}
	n.state = loopFresh
	n.counter = 0
	n.fired = ""
	return nil
}
