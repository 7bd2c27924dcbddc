package node

import "fmt"

// PlainNode is a node instance with the default protocol only: ready when
// every input is available, a no-op Run, and full default propagation on
// Notify. Classes that exist purely to carry data between other nodes
// register a PlainNode factory instead of defining their own type.
type PlainNode struct {
	BaseNode
}

// NewPlainNode builds a default-protocol instance of the class.
func NewPlainNode(desc *ClassDescriptor, cfg Config) (*PlainNode, error) {
	base, err := NewBaseNode(desc, cfg)
	if err != nil {
		return nil, err
	}
	n := &PlainNode{BaseNode: base}
	n.Bind(n)
	return n, nil
}

// PlainFactory returns a Factory producing PlainNode instances of the named
// class, resolved against the registry at construction time.
func PlainFactory(reg *Registry, className string) Factory {
	return func(cfg Config) (Node, error) {
		desc, ok := reg.Lookup(className)
		if !ok {
			return nil, fmt.Errorf("node: class %q: %w", className, ErrUnknownClass)
		}
		return NewPlainNode(desc, cfg)
	}
}
