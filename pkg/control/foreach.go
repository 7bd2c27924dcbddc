package control

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/node"
)

type forEachState int

const (
	forEachFresh forEachState = iota
	forEachIterating
)

// ForEachNode iterates an index cursor over the elements of its list-typed
// Start input. While the cursor is in bounds each ready cycle emits one
// ListElement; when the list is exhausted the entire Start list leaves
// through Final and the node resets to its initial state.
type ForEachNode struct {
	node.BaseNode

	state  forEachState
	cursor int
	done   bool
}

// NewForEach builds a for-each node instance.
func NewForEach(desc *node.ClassDescriptor, cfg node.Config) (*ForEachNode, error) {
	base, err := node.NewBaseNode(desc, cfg)
	if err != nil {
		return nil, err
	}
	n := &ForEachNode{BaseNode: base, state: forEachFresh}
	n.Bind(n)
	return n, nil
}

// Check reports readiness: fresh needs Start (Control is excluded),
// iterating needs Control.
func (n *ForEachNode) Check() bool {
	if n.state == forEachFresh {
		if !checkExceptControl(&n.BaseNode) {
			n.Logger().Debug("prerequisites not met", zap.String("node", n.String()))
			return false
		}
		return true
	}
	return controlAvailable(&n.BaseNode)
}

// Run emits the element under the cursor, or the whole list to Final once
// the cursor runs off the end.
func (n *ForEachNode) Run() error {
	n.Logger().Debug("executing node", zap.String("node", n.String()))
	n.state = forEachIterating

	raw, err := n.ReadInput(portStart)
	if err != nil {
		return err
	}
	items, err := asSlice(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", n.String(), err)
	}
	if n.cursor < len(items) {
		if err := n.WriteOutput(portElement, items[n.cursor]); err != nil {
			return err
		}
	} else {
		if err := n.WriteOutput(portFinal, raw); err != nil {
			return err
		}
		n.done = true
	}
	n.cursor++
	return nil
}

// Notify propagates ListElement while iterating (re-arming Control), or
// Final once done, resetting the cursor and every input back to fresh.
func (n *ForEachNode) Notify() error {
	if !n.done {
		if err := n.PropagateOutput(portElement, true); err != nil {
			return err
		}
		resetInput(&n.BaseNode, portControl)
		return nil
	}
	if err := n.PropagateOutput(portFinal, false); err != nil {
		return err
	}
	n.ResetInputs()
	n.state = forEachFresh
	n.cursor = 0
	n.done = false
	return nil
}

func asSlice(v interface{}) ([]interface{}, error) {
	if items, ok := v.([]interface{}); ok {
		return items, nil
	}
	rv := reflect.ValueOf(v)
	if v == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("list input holds %T, not a sequence", v)
	}
	items := make([]interface{}, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, nil
}
