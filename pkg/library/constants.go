package library

import (
	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/node"
)

// ForwardNode backs the constant-producing classes (CreateBool, CreateInt,
// CreateString): Run reads one input, coerced to the declared type, and
// writes it to one output. The input's editor-supplied default makes the
// node a literal source.
type ForwardNode struct {
	node.BaseNode

	input  string
	output string
}

// NewForwardNode builds a forwarding instance for the named port pair.
func NewForwardNode(desc *node.ClassDescriptor, cfg node.Config, input, output string) (*ForwardNode, error) {
	base, err := node.NewBaseNode(desc, cfg)
	if err != nil {
		return nil, err
	}
	n := &ForwardNode{BaseNode: base, input: input, output: output}
	n.Bind(n)
	return n, nil
}

// Run reads the input and forwards it to the output.
func (n *ForwardNode) Run() error {
	n.Logger().Debug("executing node", zap.String("node", n.String()))
	v, err := n.ReadInput(n.input)
	if err != nil {
		return err
	}
	return n.WriteOutput(n.output, v)
}
