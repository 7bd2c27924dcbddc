// Package control implements the control-flow node family: branch, counted
// loop, for-each and barrier-join nodes. Each node is a small explicit
// state machine whose state persists across check/run/notify cycles.
//
// Every control node derives from the abstract ControlNode class, which
// adds a Start input, a Control input and a Final output. The node that
// creates a branch point in the execution graph is also the node that
// reconverges it: downstream branches report completion by writing the
// Control input, and the reunified value leaves through Final.
package control

import (
	"github.com/wehubfusion/Daedalus/pkg/node"
	"github.com/wehubfusion/Daedalus/pkg/vartypes"
)

// Class names registered by this package.
const (
	ClassControlNode = "ControlNode"
	ClassSwitch      = "Switch"
	ClassLoop        = "Loop"
	ClassForEach     = "ForEach"
	ClassWaitAll     = "WaitAll"
	ClassWaitAny     = "WaitAny"
)

// Port names shared across the family.
const (
	portStart      = "Start"
	portControl    = "Control"
	portFinal      = "Final"
	portSwitch     = "Switch"
	portTrue       = "True"
	portFalse      = "False"
	portIterations = "Iterations"
	portLoopBody   = "LoopBody"
	portElement    = "ListElement"
	portOut        = "out"
)

// Register declares the control-flow classes in the given registry. It is
// called once at program start.
func Register(reg *node.Registry) error {
	_, err := reg.Register(node.NewClassSpec(ClassControlNode).
		Abstract().
		Input(portStart, vartypes.Object).
		Input(portControl, vartypes.Object).
		Output(portFinal, vartypes.Object).
		Tag("Node"))
	if err != nil {
		return err
	}

	_, err = reg.Register(node.NewClassSpec(ClassSwitch).
		Extends(ClassControlNode).
		Input(portSwitch, vartypes.Bool).
		Output(portTrue, vartypes.Object).
		Output(portFalse, vartypes.Object).
		Factory(func(cfg node.Config) (node.Node, error) {
			return NewSwitch(mustLookup(reg, ClassSwitch), cfg)
		}))
	if err != nil {
		return err
	}

	_, err = reg.Register(node.NewClassSpec(ClassLoop).
		Extends(ClassControlNode).
		Input(portIterations, vartypes.Int).
		Output(portLoopBody, vartypes.Object).
		Factory(func(cfg node.Config) (node.Node, error) {
			return NewLoop(mustLookup(reg, ClassLoop), cfg)
		}))
	if err != nil {
		return err
	}

	_, err = reg.Register(node.NewClassSpec(ClassForEach).
		Extends(ClassControlNode).
		Input(portStart, vartypes.Object, node.AsList()).
		Output(portElement, vartypes.Object).
		Factory(func(cfg node.Config) (node.Node, error) {
			return NewForEach(mustLookup(reg, ClassForEach), cfg)
		}))
	if err != nil {
		return err
	}

	_, err = reg.Register(node.NewClassSpec(ClassWaitAll).
		Input("1", vartypes.Object).
		Input("2", vartypes.Object).
		Output(portOut, vartypes.Object).
		Tag("Node").
		Factory(func(cfg node.Config) (node.Node, error) {
			return NewWaitAll(mustLookup(reg, ClassWaitAll), cfg)
		}))
	if err != nil {
		return err
	}

	_, err = reg.Register(node.NewClassSpec(ClassWaitAny).
		Extends(ClassWaitAll).
		Factory(func(cfg node.Config) (node.Node, error) {
			return NewWaitAny(mustLookup(reg, ClassWaitAny), cfg)
		}))
	return err
}

func mustLookup(reg *node.Registry, name string) *node.ClassDescriptor {
	desc, ok := reg.Lookup(name)
	if !ok {
		panic("control: class " + name + " not registered")
	}
	return desc
}

// checkExceptControl is the shared fresh-state readiness rule: every input
// except Control must be available.
func checkExceptControl(n *node.BaseNode) bool {
	for _, in := range n.Inputs() {
		if in.Name() == portControl {
			continue
		}
		if !in.IsAvailable() {
			return false
		}
	}
	return true
}

// controlAvailable is the joined-state readiness rule.
func controlAvailable(n *node.BaseNode) bool {
	in, err := n.Input(portControl)
	if err != nil {
		return false
	}
	return in.IsAvailable()
}

func resetInput(n *node.BaseNode, name string) {
	if in, err := n.Input(name); err == nil {
		in.Reset()
	}
}
