package fieldspec

import (
	"fmt"
	"strings"
)

// Value is a decoded datum: a string, 64-bit int, 64-bit float, bool, object,
// or array. Object keys are unique strings with unspecified iteration order;
// arrays preserve insertion order. The validator mutates a Value tree only to
// insert defaults into objects.
type Value interface {
	isValue()
	Equal(v Value) bool
	Clone() Value
	String() string
}

var _ Value = String("")
var _ Value = Int(0)
var _ Value = Float(0)
var _ Value = Bool(true)
var _ Value = Object(map[string]Value{"hi": Int(0)})
var _ Value = Array([]Value{Int(0), Bool(true)})

type String string

func (s String) isValue() {}
func (s String) Equal(v Value) bool {
	switch v := v.(type) {
	case String:
		return v == s
	default:
		return false
	}
}
func (s String) Clone() Value {
	return s
}
func (s String) String() string {
	return fmt.Sprintf("String(%s)", string(s))
}

type Int int64

func (i Int) isValue() {}
func (i Int) Equal(v Value) bool {
	switch v := v.(type) {
	case Int:
		return v == i
	default:
		return false
	}
}
func (i Int) Clone() Value {
	return i
}
func (i Int) String() string {
	return fmt.Sprintf("Int(%v)", int64(i))
}

type Float float64

func (f Float) isValue() {}
func (f Float) Equal(v Value) bool {
	switch v := v.(type) {
	case Float:
		return v == f
	default:
		return false
	}
}
func (f Float) Clone() Value {
	return f
}
func (f Float) String() string {
	return fmt.Sprintf("Float(%v)", float64(f))
}

type Bool bool

func (b Bool) isValue() {}
func (b Bool) Equal(v Value) bool {
	switch v := v.(type) {
	case Bool:
		return v == b
	default:
		return false
	}
}
func (b Bool) Clone() Value {
	return b
}
func (b Bool) String() string {
	return fmt.Sprintf("Bool(%v)", bool(b))
}

type Object map[string]Value

func (o Object) isValue() {}
func (o Object) Equal(v Value) bool {
	switch right := v.(type) {
	case Object:
		if len(right) != len(o) {
			return false
		}
		for k, lv := range o {
			if rv, ok := right[k]; !(ok && lv.Equal(rv)) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
func (o Object) Clone() Value {
	clone := make(map[string]Value, len(o))
	for k, v := range o {
		clone[k] = v.Clone()
	}
	return Object(clone)
}
func (o Object) String() string {
	sb := strings.Builder{}
	sb.WriteString("{")
	for k, v := range o {
		fmt.Fprintf(&sb, "%s: %s, ", k, v.String())
	}
	sb.WriteString("}")
	return sb.String()
}

type Array []Value

func (a Array) isValue() {}
func (a Array) Equal(v Value) bool {
	switch right := v.(type) {
	case Array:
		if len(right) != len(a) {
			return false
		}
		for i, lv := range a {
			if !lv.Equal(right[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
func (a Array) Clone() Value {
	clone := make([]Value, 0, len(a))
	for _, v := range a {
		clone = append(clone, v.Clone())
	}
	return Array(clone)
}
func (a Array) String() string {
	sb := strings.Builder{}
	sb.WriteString("[")
	for _, v := range a {
		sb.WriteString(v.String())
		sb.WriteString(", ")
	}
	sb.WriteString("]")
	return sb.String()
}
