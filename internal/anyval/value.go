package anyval

import (
	"net/url"
	"time"
)

// Value is the closed set of raw value shapes accepted at the untyped
// boundaries of the inspectors (key-value store, credential store).
// Keeping the set closed makes classification an exhaustive switch even
// though the external stores are untyped.
type Value interface {
	isValue()
}

type Bytes []byte

type Text string

type Number float64

type Bool bool

type Timestamp time.Time

type List []Value

type Map map[string]Value

type URI string

// Opaque wraps a runtime object that none of the other variants cover.
type Opaque struct {
	Val any
}

func (Bytes) isValue()     {}
func (Text) isValue()      {}
func (Number) isValue()    {}
func (Bool) isValue()      {}
func (Timestamp) isValue() {}
func (List) isValue()      {}
func (Map) isValue()       {}
func (URI) isValue()       {}
func (Opaque) isValue()    {}

// FromAny maps an arbitrary runtime value into the closed Value set.
// Unrecognized types land in Opaque rather than erroring.
func FromAny(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case nil:
		return Opaque{Val: nil}
	case []byte:
		return Bytes(x)
	case string:
		return Text(x)
	case bool:
		return Bool(x)
	case int:
		return Number(x)
	case int8:
		return Number(x)
	case int16:
		return Number(x)
	case int32:
		return Number(x)
	case int64:
		return Number(x)
	case uint:
		return Number(x)
	case uint8:
		return Number(x)
	case uint16:
		return Number(x)
	case uint32:
		return Number(x)
	case uint64:
		return Number(x)
	case float32:
		return Number(x)
	case float64:
		return Number(x)
	case time.Time:
		return Timestamp(x)
	case *url.URL:
		if x == nil {
			return Opaque{Val: nil}
		}
		return URI(x.String())
	case url.URL:
		return URI(x.String())
	case []any:
		out := make(List, 0, len(x))
		for _, el := range x {
			out = append(out, FromAny(el))
		}
		return out
	case map[string]any:
		out := make(Map, len(x))
		for k, el := range x {
			out[k] = FromAny(el)
		}
		return out
	default:
		return Opaque{Val: v}
	}
}
