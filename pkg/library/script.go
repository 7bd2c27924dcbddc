package library

import (
	"fmt"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/node"
)

// ScriptNode evaluates a JavaScript snippet against the value on its Input
// port. The snippet comes in through Source; the value is exposed to the
// script as the global "input", and the completion value of the script
// becomes the Result output. Script failures are domain errors reported
// through the node's channel with code "ScriptError".
type ScriptNode struct {
	node.BaseNode
}

// NewScript builds a script node instance.
func NewScript(desc *node.ClassDescriptor, cfg node.Config) (*ScriptNode, error) {
	base, err := node.NewBaseNode(desc, cfg)
	if err != nil {
		return nil, err
	}
	n := &ScriptNode{BaseNode: base}
	n.Bind(n)
	return n, nil
}

// Run evaluates the script on a fresh sandboxed VM.
func (n *ScriptNode) Run() error {
	n.Logger().Debug("executing node", zap.String("node", n.String()))
	source, err := n.ReadInput("Source")
	if err != nil {
		return err
	}
	input, err := n.ReadInput("Input")
	if err != nil {
		return err
	}

	vm := goja.New()
	if err := sandbox(vm); err != nil {
		return fmt.Errorf("%s: %w", n.String(), err)
	}
	if err := vm.Set("input", input); err != nil {
		return fmt.Errorf("%s: set input: %w", n.String(), err)
	}
	src, _ := source.(string)
	result, err := vm.RunString(src)
	if err != nil {
		n.RaiseError("ScriptError", err.Error())
		return nil
	}
	return n.WriteOutput("Result", result.Export())
}

// sandbox strips the globals a script must not reach. Each Run uses a fresh
// VM, so scripts cannot leak state into each other either.
func sandbox(vm *goja.Runtime) error {
	blocked := []string{
		"require",
		"module",
		"exports",
		"process",
		"global",
		"Buffer",
		"setImmediate",
		"clearImmediate",
	}
	for _, name := range blocked {
		if err := vm.Set(name, goja.Undefined()); err != nil {
			return fmt.Errorf("sandbox: failed to clear %s: %w", name, err)
		}
	}
	return nil
}
