package node

import (
	"github.com/wehubfusion/Daedalus/pkg/vartypes"
)

// Taggable is implemented by runtime values that can carry a type tag for
// downstream debug and introspection. Output writes attach the tag
// opportunistically; values that do not implement Taggable are passed
// through untouched.
type Taggable interface {
	SetTypeTag(*vartypes.Descriptor)
	TypeTag() *vartypes.Descriptor
}

// Port holds the state shared by input and output ports: the schema-derived
// identity plus the per-instance value slot. Ports are instance-private
// copies of the class schema; mutating one instance never affects another
// instance or the schema itself.
type Port struct {
	name      string
	typ       *vartypes.Descriptor
	hints     []string
	def       interface{}
	options   []interface{}
	isList    bool
	owner     string
	pinID     string
	connected bool
	valueSet  bool
	value     interface{}
}

// Name returns the port name, unique within the node class.
func (p *Port) Name() string { return p.name }

// Type returns the declared value-type descriptor.
func (p *Port) Type() *vartypes.Descriptor { return p.typ }

// Hints returns the effective hint list: the type name followed by any
// hints declared on the schema entry.
func (p *Port) Hints() []string { return p.hints }

// Default returns the current default, nil when absent.
func (p *Port) Default() interface{} { return p.def }

// Options returns the permitted literal values, when the schema enumerates
// them. Preserved as data for editor surfaces.
func (p *Port) Options() []interface{} { return p.options }

// IsList reports whether the port carries a homogeneous sequence rather
// than a scalar.
func (p *Port) IsList() bool { return p.isList }

// PinID returns the stable pin address of this port.
func (p *Port) PinID() string { return p.pinID }

// Connected reports whether an upstream connection feeds this port.
func (p *Port) Connected() bool { return p.connected }

// ValueSet reports whether a value was explicitly assigned.
func (p *Port) ValueSet() bool { return p.valueSet }

// RawValue returns the stored value without coercion.
func (p *Port) RawValue() interface{} { return p.value }

// SetDefault assigns a default literal, applying the legacy lossy coercion:
// typed ports attempt conversion and fall back to an empty string, boolean
// ports map "TRUE" (any case) to true and other strings to false.
func (p *Port) SetDefault(literal interface{}) {
	p.def = vartypes.CoerceDefault(p.typ, literal)
}

// Reset returns the port to its pre-execution state: default, value and
// set-flag are cleared. The connected flag survives, so the port is re-armed
// to wait for its upstream producer. Reset is idempotent.
func (p *Port) Reset() {
	p.def = nil
	p.valueSet = false
	p.value = nil
}

// coerce applies read-time conversion: element-wise for list ports, scalar
// otherwise. Object and custom types pass through.
func (p *Port) coerce(v interface{}) (interface{}, error) {
	if p.typ.Kind == vartypes.KindObject || p.typ.Kind == vartypes.KindCustom {
		return v, nil
	}
	if p.isList {
		return vartypes.ConvertList(p.typ, v)
	}
	return vartypes.Convert(p.typ, v)
}

// InputPort is a typed, stateful input slot on a node instance.
type InputPort struct {
	Port
}

// Value performs the pull operation: an explicitly set value is returned
// coerced; otherwise a present default is returned coerced, unless the port
// is flagged connected; otherwise the read fails with ErrInputNotAvailable.
func (p *InputPort) Value() (interface{}, error) {
	if p.valueSet {
		return p.coerce(p.value)
	}
	if p.def != nil && !p.connected {
		return p.coerce(p.def)
	}
	return nil, portErr(p.owner, p.name, ErrInputNotAvailable)
}

// ValueOrNil is the no-raise read mode: it returns nil instead of failing
// when the input is not available.
func (p *InputPort) ValueOrNil() interface{} {
	v, err := p.Value()
	if err != nil {
		return nil
	}
	return v
}

// Set performs the push into this input. It fails with ErrInputAlreadySet
// when a value is present and override is false. No coercion happens at
// write time; conversion is applied on read.
func (p *InputPort) Set(value interface{}, override bool) error {
	if p.valueSet && !override {
		return portErr(p.owner, p.name, ErrInputAlreadySet)
	}
	p.value = value
	p.valueSet = true
	return nil
}

// SetConnected marks the port as fed by an upstream connection. A connected
// port never falls back to its default; this is how control-flow nodes
// distinguish "waiting for upstream" from "use my static default".
func (p *InputPort) SetConnected(connected bool) {
	p.connected = connected
}

// IsAvailable reports whether a read would succeed: a value is set, or a
// default is present and the port is not connected.
func (p *InputPort) IsAvailable() bool {
	if p.valueSet {
		return true
	}
	return p.def != nil && !p.connected
}

// OutputPort is a typed, stateful output slot on a node instance.
type OutputPort struct {
	Port
}

// Write performs the push operation from node logic: the value is stored
// and marked set. When the value supports a type tag the port's descriptor
// is attached for downstream introspection.
func (p *OutputPort) Write(value interface{}) {
	if t, ok := value.(Taggable); ok {
		t.SetTypeTag(p.typ)
	}
	p.value = value
	p.valueSet = true
}
