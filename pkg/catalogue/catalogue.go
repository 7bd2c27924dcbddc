// Package catalogue assembles a node class registry with every builtin
// class registered: the control-flow family and the standard library.
// Editors and drivers usually start from here and register their own
// classes on top.
package catalogue

import (
	"github.com/wehubfusion/Daedalus/pkg/control"
	"github.com/wehubfusion/Daedalus/pkg/library"
	"github.com/wehubfusion/Daedalus/pkg/node"
)

// NewRegistry creates a registry with all builtin node classes.
func NewRegistry() (*node.Registry, error) {
	reg := node.NewRegistry()
	if err := control.Register(reg); err != nil {
		return nil, err
	}
	if err := library.Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// MustNewRegistry is NewRegistry for program-start wiring; it panics on
// error.
func MustNewRegistry() *node.Registry {
	reg, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return reg
}
