package library

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/node"
)

// IsEqualNode compares its two wildcard inputs and emits the result on the
// boolean Equal output.
type IsEqualNode struct {
	node.BaseNode
}

// NewIsEqual builds a comparison node instance.
func NewIsEqual(desc *node.ClassDescriptor, cfg node.Config) (*IsEqualNode, error) {
	base, err := node.NewBaseNode(desc, cfg)
	if err != nil {
		return nil, err
	}
	n := &IsEqualNode{BaseNode: base}
	n.Bind(n)
	return n, nil
}

// Run compares object1 and object2 by deep equality.
func (n *IsEqualNode) Run() error {
	n.Logger().Debug("executing node", zap.String("node", n.String()))
	a, err := n.ReadInput("object1")
	if err != nil {
		return err
	}
	b, err := n.ReadInput("object2")
	if err != nil {
		return err
	}
	return n.WriteOutput("Equal", reflect.DeepEqual(a, b))
}
