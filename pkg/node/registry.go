package node

import (
	"fmt"
	"strings"
	"sync"
)

// ClassDescriptor is the immutable registry entry of a node class: the
// resolved port schemas (own plus inherited), the search tags, and the
// instance factory. Descriptors are created once at registration time and
// are read-only thereafter.
type ClassDescriptor struct {
	Name     string
	Inputs   []PortSpec
	Outputs  []PortSpec
	Tags     []string
	Abstract bool

	factory Factory
}

// MatchTag reports whether the prefix matches the start of any class tag,
// case-insensitively.
func (d *ClassDescriptor) MatchTag(prefix string) bool {
	p := strings.ToLower(prefix)
	for _, tag := range d.Tags {
		if strings.HasPrefix(strings.ToLower(tag), p) {
			return true
		}
	}
	return false
}

// MatchInputHint reports whether the prefix matches any input hint.
// The prefix "object" is a wildcard that matches every class.
func (d *ClassDescriptor) MatchInputHint(prefix string) bool {
	return matchHints(d.Inputs, prefix)
}

// MatchOutputHint reports whether the prefix matches any output hint.
// The prefix "object" is a wildcard that matches every class.
func (d *ClassDescriptor) MatchOutputHint(prefix string) bool {
	return matchHints(d.Outputs, prefix)
}

// MatchHint reports whether the prefix matches the class by tag, input
// hint or output hint. Used for catalogue search and autocomplete.
func (d *ClassDescriptor) MatchHint(prefix string) bool {
	return d.MatchInputHint(prefix) || d.MatchOutputHint(prefix) || d.MatchTag(prefix)
}

func matchHints(specs []PortSpec, prefix string) bool {
	p := strings.ToLower(prefix)
	if p == "object" {
		return true
	}
	for _, spec := range specs {
		for _, hint := range spec.Type.EffectiveHints(spec.Hints) {
			if strings.HasPrefix(strings.ToLower(hint), p) {
				return true
			}
		}
	}
	return false
}

// Registry is the catalogue of node classes. Registration happens at
// program start; lookups are read-only afterwards.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*ClassDescriptor
	order   []string
}

// NewRegistry creates an empty class registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*ClassDescriptor)}
}

// Default is the process-wide registry the builtin catalogue registers
// into.
var Default = NewRegistry()

// Register resolves a class spec against its base class and stores the
// resulting descriptor. The base must already be registered. A derived
// class inherits all ports and tags of its immediate parent and may append
// more; redeclaring a port name replaces the inherited entry in place.
func (r *Registry) Register(spec *ClassSpec) (*ClassDescriptor, error) {
	if spec == nil || spec.name == "" {
		return nil, fmt.Errorf("node: class spec must have a name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.classes[spec.name]; exists {
		return nil, fmt.Errorf("node: class %q: %w", spec.name, ErrDuplicateClass)
	}

	desc := &ClassDescriptor{
		Name:     spec.name,
		Abstract: spec.abstract,
		factory:  spec.factory,
	}
	if spec.base != "" {
		base, ok := r.classes[spec.base]
		if !ok {
			return nil, fmt.Errorf("node: base class %q: %w", spec.base, ErrUnknownClass)
		}
		desc.Inputs = append(desc.Inputs, base.Inputs...)
		desc.Outputs = append(desc.Outputs, base.Outputs...)
		desc.Tags = append(desc.Tags, base.Tags...)
	}
	desc.Inputs = mergeSpecs(desc.Inputs, spec.inputs)
	desc.Outputs = mergeSpecs(desc.Outputs, spec.outputs)
	desc.Tags = append(desc.Tags, spec.tags...)

	r.classes[spec.name] = desc
	r.order = append(r.order, spec.name)
	return desc, nil
}

// MustRegister is Register for program-start wiring; it panics on error.
func (r *Registry) MustRegister(spec *ClassSpec) *ClassDescriptor {
	desc, err := r.Register(spec)
	if err != nil {
		panic(err)
	}
	return desc
}

// Lookup resolves a class descriptor by name, abstract classes included.
func (r *Registry) Lookup(name string) (*ClassDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.classes[name]
	return d, ok
}

// Catalogue lists the public (non-abstract) classes in registration order.
func (r *Registry) Catalogue() []*ClassDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ClassDescriptor, 0, len(r.order))
	for _, name := range r.order {
		if d := r.classes[name]; !d.Abstract {
			out = append(out, d)
		}
	}
	return out
}

// Search filters the public catalogue by hint prefix: a class matches when
// the prefix matches a tag, an input hint or an output hint.
func (r *Registry) Search(prefix string) []*ClassDescriptor {
	var out []*ClassDescriptor
	for _, d := range r.Catalogue() {
		if d.MatchHint(prefix) {
			out = append(out, d)
		}
	}
	return out
}

// New instantiates a registered class through its factory.
func (r *Registry) New(className string, cfg Config) (Node, error) {
	d, ok := r.Lookup(className)
	if !ok {
		return nil, fmt.Errorf("node: class %q: %w", className, ErrUnknownClass)
	}
	if d.factory == nil {
		return nil, fmt.Errorf("node: class %q has no factory", className)
	}
	return d.factory(cfg)
}

// mergeSpecs appends own entries to base, replacing same-named base entries
// in place so a derived class may re-type an inherited port (the for-each
// node redeclares Start as a list) without disturbing declaration order.
func mergeSpecs(base, own []PortSpec) []PortSpec {
	out := append([]PortSpec(nil), base...)
	for _, spec := range own {
		replaced := false
		for i := range out {
			if out[i].Name == spec.Name {
				out[i] = spec
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, spec)
		}
	}
	return out
}
