package library

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/node"
)

// ReadFileNode reads a file into its string Content output. An I/O failure
// is a domain error: it is raised through the node's reporting channel with
// code "IOError" and the cycle completes normally, so the driver keeps
// scheduling the rest of the graph.
type ReadFileNode struct {
	node.BaseNode
}

// NewReadFile builds a file-reading node instance.
func NewReadFile(desc *node.ClassDescriptor, cfg node.Config) (*ReadFileNode, error) {
	base, err := node.NewBaseNode(desc, cfg)
	if err != nil {
		return nil, err
	}
	n := &ReadFileNode{BaseNode: base}
	n.Bind(n)
	return n, nil
}

// Run reads the file named by the Name input.
func (n *ReadFileNode) Run() error {
	n.Logger().Debug("executing node", zap.String("node", n.String()))
	name, err := n.ReadInput("Name")
	if err != nil {
		return err
	}
	fileName, _ := name.(string)
	content, err := os.ReadFile(fileName)
	if err != nil {
		n.RaiseError("IOError", fmt.Sprintf("no file named %s", fileName))
		return nil
	}
	return n.WriteOutput("Content", string(content))
}
