// Package library provides the builtin node catalogue: constant producers,
// comparison, file reading, debug printing, string casing and a sandboxed
// JavaScript node.
package library

import (
	"github.com/wehubfusion/Daedalus/pkg/node"
	"github.com/wehubfusion/Daedalus/pkg/vartypes"
)

// Class names registered by this package.
const (
	ClassCreateBool   = "CreateBool"
	ClassCreateInt    = "CreateInt"
	ClassCreateString = "CreateString"
	ClassIsEqual      = "IsEqual"
	ClassReadFile     = "ReadFile"
	ClassDebugNode    = "DebugNode"
	ClassDebugPrint   = "DebugPrint"
	ClassChangeCase   = "ChangeCase"
	ClassScript       = "Script"
)

// Register declares the builtin node classes in the given registry.
func Register(reg *node.Registry) error {
	specs := []*node.ClassSpec{
		node.NewClassSpec(ClassCreateBool).
			Input("Value", vartypes.Bool, node.WithOptions(true, false)).
			Output("Boolean", vartypes.Bool).
			Tag("Node").
			Factory(forward(reg, ClassCreateBool, "Value", "Boolean")),

		node.NewClassSpec(ClassCreateInt).
			Input("Value", vartypes.Int).
			Output("Integer", vartypes.Int).
			Tag("Node").
			Factory(forward(reg, ClassCreateInt, "Value", "Integer")),

		node.NewClassSpec(ClassCreateString).
			Input("Str", vartypes.String).
			Output("String", vartypes.String).
			Tag("Node").
			Factory(forward(reg, ClassCreateString, "Str", "String")),

		node.NewClassSpec(ClassIsEqual).
			Input("object1", vartypes.Object).
			Input("object2", vartypes.Object).
			Output("Equal", vartypes.Bool).
			Tag("Node").
			Factory(func(cfg node.Config) (node.Node, error) {
				return NewIsEqual(mustLookup(reg, ClassIsEqual), cfg)
			}),

		node.NewClassSpec(ClassReadFile).
			Input("Name", vartypes.String).
			Output("Content", vartypes.String).
			Tag("Node").
			Factory(func(cfg node.Config) (node.Node, error) {
				return NewReadFile(mustLookup(reg, ClassReadFile), cfg)
			}),

		node.NewClassSpec(ClassDebugNode).
			Abstract().
			Tag("Node", "Debug"),

		node.NewClassSpec(ClassDebugPrint).
			Extends(ClassDebugNode).
			Input("Object", vartypes.Object).
			Output("Out", vartypes.Object).
			Factory(func(cfg node.Config) (node.Node, error) {
				return NewDebugPrint(mustLookup(reg, ClassDebugPrint), cfg)
			}),

		node.NewClassSpec(ClassChangeCase).
			Input("Value", vartypes.String).
			Input("Mode", vartypes.String,
				node.WithDefault(CaseUpper),
				node.WithOptions(CaseUpper, CaseLower, CaseTitle)).
			Output("Result", vartypes.String).
			Tag("Node", "String").
			Factory(func(cfg node.Config) (node.Node, error) {
				return NewChangeCase(mustLookup(reg, ClassChangeCase), cfg)
			}),

		node.NewClassSpec(ClassScript).
			Input("Source", vartypes.String).
			Input("Input", vartypes.Object).
			Output("Result", vartypes.Object).
			Tag("Node", "Script").
			Factory(func(cfg node.Config) (node.Node, error) {
				return NewScript(mustLookup(reg, ClassScript), cfg)
			}),
	}
	for _, spec := range specs {
		if _, err := reg.Register(spec); err != nil {
			return err
		}
	}
	return nil
}

func mustLookup(reg *node.Registry, name string) *node.ClassDescriptor {
	desc, ok := reg.Lookup(name)
	if !ok {
		panic("library: class " + name + " not registered")
	}
	return desc
}

// forward builds the factory of a constant-producing node: Run reads the
// single input and writes it, coerced, to the single output.
func forward(reg *node.Registry, class, input, output string) node.Factory {
	return func(cfg node.Config) (node.Node, error) {
		return NewForwardNode(mustLookup(reg, class), cfg, input, output)
	}
}
