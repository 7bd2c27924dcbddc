// Package vartypes provides the named value-type descriptors used for port
// typing and catalogue hint search, plus the literal coercion rules applied
// to port defaults and input reads.
package vartypes

import (
	"fmt"
	"sync"
)

// Kind classifies a descriptor for coercion purposes.
type Kind int

const (
	// KindObject is the wildcard kind. Values pass through uncoerced.
	KindObject Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	// KindCustom marks user-registered descriptors. Like KindObject they are
	// never coerced; they exist for typing, hints and debug display.
	KindCustom
)

// Descriptor is a named, displayable value-type tag. Descriptors are
// immutable once registered.
type Descriptor struct {
	// Name identifies the descriptor and doubles as its leading hint.
	Name string

	// Kind selects the coercion behavior.
	Kind Kind

	// Hints are additional search strings for catalogue matching. The
	// descriptor name is always implied as the first hint.
	Hints []string

	// Parent links a custom descriptor to its supertype, if any.
	Parent *Descriptor

	// DebugInfo, when set, renders a tagged value for debug output.
	DebugInfo func(value interface{}) string
}

// Builtin descriptors. Object is the wildcard type accepted anywhere.
var (
	Object = &Descriptor{Name: "object", Kind: KindObject}
	Bool   = &Descriptor{Name: "bool", Kind: KindBool}
	Int    = &Descriptor{Name: "int", Kind: KindInt}
	Float  = &Descriptor{Name: "float", Kind: KindFloat}
	String = &Descriptor{Name: "str", Kind: KindString}
)

// EffectiveHints returns the hint list used for catalogue matching: the
// descriptor name followed by any declared hints.
func (d *Descriptor) EffectiveHints(extra []string) []string {
	hints := make([]string, 0, 1+len(extra))
	hints = append(hints, d.Name)
	hints = append(hints, extra...)
	return hints
}

// AssignableTo reports whether a value of this type may be used where other
// is expected: same descriptor, the Object wildcard, or via the parent
// chain of a custom descriptor.
func (d *Descriptor) AssignableTo(other *Descriptor) bool {
	if d == nil || other == nil {
		return false
	}
	if other.Kind == KindObject {
		return true
	}
	for cur := d; cur != nil; cur = cur.Parent {
		if cur == other {
			return true
		}
	}
	return false
}

// Compatible reports bidirectional assignability, the relation used by the
// typed port lookup helpers for generic wiring.
func Compatible(a, b *Descriptor) bool {
	return a.AssignableTo(b) || b.AssignableTo(a)
}

type registry struct {
	mu    sync.RWMutex
	types map[string]*Descriptor
}

var defaultRegistry = &registry{types: map[string]*Descriptor{
	Object.Name: Object,
	Bool.Name:   Bool,
	Int.Name:    Int,
	Float.Name:  Float,
	String.Name: String,
}}

// Register adds a custom descriptor to the process-wide registry.
// Registration happens once at program start; re-registering a name fails.
func Register(d *Descriptor) error {
	if d == nil || d.Name == "" {
		return fmt.Errorf("vartypes: descriptor must have a name")
	}
	if d.Kind != KindCustom {
		return fmt.Errorf("vartypes: only custom descriptors may be registered, got kind %d", d.Kind)
	}
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	if _, exists := defaultRegistry.types[d.Name]; exists {
		return fmt.Errorf("vartypes: descriptor %q already registered", d.Name)
	}
	defaultRegistry.types[d.Name] = d
	return nil
}

// Lookup resolves a descriptor by name.
func Lookup(name string) (*Descriptor, bool) {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	d, ok := defaultRegistry.types[name]
	return d, ok
}
