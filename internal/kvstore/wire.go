package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"inspect-cli/internal/anyval"
)

// ErrUnsupportedValue is returned when a value variant cannot be persisted
// (opaque runtime handles have no stable wire form).
var ErrUnsupportedValue = errors.New("kvstore: unsupported value for persistence")

// wireValue is the JSON persistence form of an anyval.Value.
type wireValue struct {
	T string `json:"t"`

	S  string               `json:"s,omitempty"`
	N  float64              `json:"n,omitempty"`
	B  bool                 `json:"b,omitempty"`
	D  []byte               `json:"d,omitempty"`
	TS time.Time            `json:"ts,omitempty"`
	L  []wireValue          `json:"l,omitempty"`
	M  map[string]wireValue `json:"m,omitempty"`
}

func toWire(v anyval.Value) (wireValue, error) {
	switch x := v.(type) {
	case anyval.Text:
		return wireValue{T: "text", S: string(x)}, nil
	case anyval.Number:
		return wireValue{T: "num", N: float64(x)}, nil
	case anyval.Bool:
		return wireValue{T: "bool", B: bool(x)}, nil
	case anyval.Bytes:
		return wireValue{T: "data", D: []byte(x)}, nil
	case anyval.Timestamp:
		return wireValue{T: "time", TS: time.Time(x)}, nil
	case anyval.URI:
		return wireValue{T: "uri", S: string(x)}, nil
	case anyval.List:
		l := make([]wireValue, 0, len(x))
		for _, el := range x {
			w, err := toWire(el)
			if err != nil {
				return wireValue{}, err
			}
			l = append(l, w)
		}
		return wireValue{T: "list", L: l}, nil
	case anyval.Map:
		m := make(map[string]wireValue, len(x))
		for k, el := range x {
			w, err := toWire(el)
			if err != nil {
				return wireValue{}, err
			}
			m[k] = w
		}
		return wireValue{T: "map", M: m}, nil
	default:
		return wireValue{}, ErrUnsupportedValue
	}
}

func fromWire(w wireValue) (anyval.Value, error) {
	switch w.T {
	case "text":
		return anyval.Text(w.S), nil
	case "num":
		return anyval.Number(w.N), nil
	case "bool":
		return anyval.Bool(w.B), nil
	case "data":
		return anyval.Bytes(w.D), nil
	case "time":
		return anyval.Timestamp(w.TS), nil
	case "uri":
		return anyval.URI(w.S), nil
	case "list":
		l := make(anyval.List, 0, len(w.L))
		for _, el := range w.L {
			v, err := fromWire(el)
			if err != nil {
				return nil, err
			}
			l = append(l, v)
		}
		return l, nil
	case "map":
		m := make(anyval.Map, len(w.M))
		for k, el := range w.M {
			v, err := fromWire(el)
			if err != nil {
				return nil, err
			}
			m[k] = v
		}
		return m, nil
	default:
		return nil, fmt.Errorf("kvstore: unknown wire tag %q", w.T)
	}
}

func marshalValue(v anyval.Value) (string, error) {
	w, err := toWire(v)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(w)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalValue(s string) (anyval.Value, error) {
	var w wireValue
	if err := json.Unmarshal([]byte(s), &w); err != nil {
		return nil, err
	}
	return fromWire(w)
}
