package library

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/node"
)

// DebugPrintNode logs instance-specific debugging information for the value
// on its Object input, then passes the value straight through to Out
// without manipulation. When the value carries a type tag whose descriptor
// declares a DebugInfo renderer, that rendering is logged instead of the
// plain value.
type DebugPrintNode struct {
	node.BaseNode
}

// NewDebugPrint builds a debug-print node instance.
func NewDebugPrint(desc *node.ClassDescriptor, cfg node.Config) (*DebugPrintNode, error) {
	base, err := node.NewBaseNode(desc, cfg)
	if err != nil {
		return nil, err
	}
	n := &DebugPrintNode{BaseNode: base}
	n.Bind(n)
	return n, nil
}

// Run logs the debug rendering of the input value and forwards it.
func (n *DebugPrintNode) Run() error {
	n.Logger().Debug("executing node", zap.String("node", n.String()))
	v, err := n.ReadInput("Object")
	if err != nil {
		return err
	}
	n.Logger().Info("debug print",
		zap.String("node", n.String()),
		zap.String("value", debugString(v)))
	return n.WriteOutput("Out", v)
}

func debugString(v interface{}) string {
	if t, ok := v.(node.Taggable); ok {
		if tag := t.TypeTag(); tag != nil && tag.DebugInfo != nil {
			return tag.DebugInfo(v)
		}
	}
	return fmt.Sprint(v)
}
