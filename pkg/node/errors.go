package node

import (
	"errors"
	"fmt"
)

var (
	// ErrInputNotAvailable indicates a read of an input with no explicit
	// value and no usable default. Drivers treat it as "not ready yet".
	ErrInputNotAvailable = errors.New("input not available")

	// ErrInputAlreadySet indicates a non-override write to an input that
	// already carries a value. This points at a graph-construction bug
	// (two producers feeding one unguarded input).
	ErrInputAlreadySet = errors.New("input already set")

	// ErrUnknownPort indicates a name that matches no declared input or
	// output of the node class.
	ErrUnknownPort = errors.New("unknown port")

	// ErrNoInputs indicates a node class that declares zero inputs.
	// Such classes are not valid and fail at construction.
	ErrNoInputs = errors.New("node class declares no inputs")

	// ErrUnknownClass indicates an unregistered node class name.
	ErrUnknownClass = errors.New("unknown node class")

	// ErrDuplicateClass indicates a node class name registered twice.
	ErrDuplicateClass = errors.New("node class already registered")
)

// PortError attributes a port-level failure to a specific node and port so
// that per-cycle errors are diagnosable.
type PortError struct {
	Node string
	Port string
	Err  error
}

// Error implements the error interface.
func (e *PortError) Error() string {
	return fmt.Sprintf("node %s: port %q: %v", e.Node, e.Port, e.Err)
}

// Unwrap returns the underlying error.
func (e *PortError) Unwrap() error {
	return e.Err
}

func portErr(node, port string, err error) error {
	return &PortError{Node: node, Port: port, Err: err}
}
