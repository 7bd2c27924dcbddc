package node

import (
	"github.com/wehubfusion/Daedalus/pkg/vartypes"
)

// PortSpec is one declarative schema entry of a node class: a named, typed
// input or output definition shared by every instance of the class.
type PortSpec struct {
	// Name is unique within the node class.
	Name string

	// Type is the declared value-type descriptor.
	Type *vartypes.Descriptor

	// Hints are extra search strings; the type name is always implied
	// as the first hint.
	Hints []string

	// Default is the default literal, nil when absent. The literal is
	// coerced with the legacy rules when the instance port is built.
	Default interface{}

	// Options enumerates permitted literal values (editor concern,
	// preserved as data).
	Options []interface{}

	// IsList marks the port as carrying a homogeneous sequence of Type.
	IsList bool
}

// PortOption customizes a PortSpec inside the class builder.
type PortOption func(*PortSpec)

// WithHints adds extra search hints to the port.
func WithHints(hints ...string) PortOption {
	return func(s *PortSpec) { s.Hints = append(s.Hints, hints...) }
}

// WithDefault declares a default literal for the port.
func WithDefault(literal interface{}) PortOption {
	return func(s *PortSpec) { s.Default = literal }
}

// WithOptions enumerates the permitted literal values of the port.
func WithOptions(options ...interface{}) PortOption {
	return func(s *PortSpec) { s.Options = options }
}

// AsList marks the port as list-typed.
func AsList() PortOption {
	return func(s *PortSpec) { s.IsList = true }
}

// Factory builds a node instance of a registered class.
type Factory func(cfg Config) (Node, error)

// ClassSpec declares a node class for registration. It replaces the
// original environment's declarative class-body registration with an
// explicit builder invoked once per class at program start. Inheritance is
// explicit: a spec extending a base class inherits all of the base's ports
// and tags and may append more (a redeclared port name replaces the base
// entry in place; removal is not supported).
type ClassSpec struct {
	name     string
	base     string
	inputs   []PortSpec
	outputs  []PortSpec
	tags     []string
	abstract bool
	factory  Factory
}

// NewClassSpec starts a class declaration.
func NewClassSpec(name string) *ClassSpec {
	return &ClassSpec{name: name}
}

// Extends names the immediate parent class, which must already be
// registered when this spec is.
func (s *ClassSpec) Extends(base string) *ClassSpec {
	s.base = base
	return s
}

// Input appends an input port declaration.
func (s *ClassSpec) Input(name string, typ *vartypes.Descriptor, opts ...PortOption) *ClassSpec {
	spec := PortSpec{Name: name, Type: typ}
	for _, opt := range opts {
		opt(&spec)
	}
	s.inputs = append(s.inputs, spec)
	return s
}

// Output appends an output port declaration.
func (s *ClassSpec) Output(name string, typ *vartypes.Descriptor, opts ...PortOption) *ClassSpec {
	spec := PortSpec{Name: name, Type: typ}
	for _, opt := range opts {
		opt(&spec)
	}
	s.outputs = append(s.outputs, spec)
	return s
}

// Tag appends search labels to the class.
func (s *ClassSpec) Tag(tags ...string) *ClassSpec {
	s.tags = append(s.tags, tags...)
	return s
}

// Abstract excludes the class from the public catalogue and hint search
// while keeping it registered for inheritance.
func (s *ClassSpec) Abstract() *ClassSpec {
	s.abstract = true
	return s
}

// Factory sets the constructor used by Registry.New for this class.
func (s *ClassSpec) Factory(f Factory) *ClassSpec {
	s.factory = f
	return s
}
