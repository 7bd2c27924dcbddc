package vartypes

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Convert coerces a runtime value to the descriptor's kind. Object and
// custom descriptors pass the value through untouched. Conversion follows
// constructor semantics: bool is truthiness, numeric strings parse, and any
// value renders to a string.
func Convert(d *Descriptor, value interface{}) (interface{}, error) {
	if d == nil {
		return nil, fmt.Errorf("vartypes: nil descriptor")
	}
	switch d.Kind {
	case KindObject, KindCustom:
		return value, nil
	case KindBool:
		return Truthy(value), nil
	case KindInt:
		return toInt(value)
	case KindFloat:
		return toFloat(value)
	case KindString:
		return toString(value), nil
	default:
		return nil, fmt.Errorf("vartypes: unknown kind %d", d.Kind)
	}
}

// ConvertList applies Convert element-wise to a slice value.
func ConvertList(d *Descriptor, value interface{}) (interface{}, error) {
	rv := reflect.ValueOf(value)
	if value == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("vartypes: list port value is %T, not a sequence", value)
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		conv, err := Convert(d, rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("vartypes: element %d: %w", i, err)
		}
		out[i] = conv
	}
	return out, nil
}

// CoerceDefault applies the legacy default-literal coercion preserved for
// compatibility with saved graphs. For non-generic, non-wildcard types the
// literal is converted to the port type; a failed conversion falls back to
// an empty string placeholder. Boolean ports map the string "TRUE" in any
// case to true, every other string to false, and keep non-string literals
// as-is. Object and custom types keep the raw literal.
func CoerceDefault(d *Descriptor, literal interface{}) interface{} {
	if d == nil {
		return literal
	}
	switch d.Kind {
	case KindObject, KindCustom:
		return literal
	case KindBool:
		if s, ok := literal.(string); ok {
			return strings.EqualFold(s, "TRUE")
		}
		return literal
	default:
		conv, err := Convert(d, literal)
		if err != nil {
			return ""
		}
		return conv
	}
}

// Truthy reports the truth value of an arbitrary runtime value: nil, false,
// numeric zero, and empty strings/sequences/maps are false.
func Truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case float32:
		return v != 0
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() != 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

func toInt(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case float32:
		return int(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("vartypes: cannot convert %q to int", v)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("vartypes: cannot convert %T to int", value)
	}
}

func toFloat(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case bool:
		if v {
			return 1.0, nil
		}
		return 0.0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("vartypes: cannot convert %q to float", v)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("vartypes: cannot convert %T to float", value)
	}
}

func toString(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
