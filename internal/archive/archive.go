// Package archive is the structured-object codec boundary used by value
// classification. The default codec is gob, which carries enough type
// information to round-trip registered Go values through opaque byte blobs.
package archive

import (
	"bytes"
	"encoding/gob"
)

// Codec decodes an archived object from raw bytes. Implementations must be
// synchronous and bounded; a failed decode returns an error and is never
// retried by callers.
type Codec interface {
	Decode(b []byte) (any, error)
}

type payload struct {
	V any
}

// Gob encodes and decodes values through encoding/gob. Concrete types stored
// inside the payload must be registered (Register) before encoding, same as
// with gob directly. Strings, numbers, bools and their slices/maps work out
// of the box.
type Gob struct{}

func (Gob) Decode(b []byte) (any, error) {
	var p payload
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&p); err != nil {
		return nil, err
	}
	return p.V, nil
}

func (Gob) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(payload{V: v}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Register exposes gob.Register for callers that archive custom types.
func Register(v any) {
	gob.Register(v)
}
