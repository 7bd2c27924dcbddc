package control

import (
	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/node"
	"github.com/wehubfusion/Daedalus/pkg/vartypes"
)

type switchState int

const (
	switchFresh switchState = iota
	switchPendingJoin
)

// SwitchNode is the branch node of an if/else construction. In the fresh
// state it routes the Start value to the True or False output according to
// the boolean Switch input; it then waits for the selected branch to report
// back through Control and routes that value to Final before returning to
// fresh.
type SwitchNode struct {
	node.BaseNode

	state  switchState
	chosen string
}

// NewSwitch builds a branch node instance.
func NewSwitch(desc *node.ClassDescriptor, cfg node.Config) (*SwitchNode, error) {
	base, err := node.NewBaseNode(desc, cfg)
	if err != nil {
		return nil, err
	}
	n := &SwitchNode{BaseNode: base, state: switchFresh}
	n.Bind(n)
	return n, nil
}

// Check reports readiness: fresh needs Start and Switch (Control is
// excluded), pending-join needs Control.
func (n *SwitchNode) Check() bool {
	if n.state == switchFresh {
		if !checkExceptControl(&n.BaseNode) {
			n.Logger().Debug("prerequisites not met", zap.String("node", n.String()))
			return false
		}
		return true
	}
	return controlAvailable(&n.BaseNode)
}

// Run routes Start to the chosen branch output, or the joined Control value
// to Final.
func (n *SwitchNode) Run() error {
	n.Logger().Debug("executing node", zap.String("node", n.String()))
	if n.state == switchFresh {
		cond, err := n.ReadInput(portSwitch)
		if err != nil {
			return err
		}
		start, err := n.ReadInput(portStart)
		if err != nil {
			return err
		}
		n.chosen = portFalse
		if vartypes.Truthy(cond) {
			n.chosen = portTrue
		}
		return n.WriteOutput(n.chosen, start)
	}
	joined, err := n.ReadInput(portControl)
	if err != nil {
		return err
	}
	return n.WriteOutput(portFinal, joined)
}

// Notify propagates only the chosen branch's connections (or Final's after
// the join), advances the state machine, and re-arms the consumed inputs.
// The untouched branch output is never propagated.
func (n *SwitchNode) Notify() error {
	if n.state == switchFresh {
		if err := n.PropagateOutput(n.chosen, false); err != nil {
			return err
		}
		n.state = switchPendingJoin
		resetInput(&n.BaseNode, portStart)
		resetInput(&n.BaseNode, portSwitch)
	} else {
		if err := n.PropagateOutput(portFinal, false); err != nil {
			return err
		}
		n.state = switchFresh
	}
	resetInput(&n.BaseNode, portControl)
	return nil
}
