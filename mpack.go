// Package mpack is a self-describing binary serialization of JSON-like
// documents: nil, booleans, integers, floats, strings, binary blobs,
// arrays, maps, and typed extension values, each encoded behind a
// single tag byte in its narrowest wire form.
//
// This package holds the convenience surface. The subpackages carry
// the machinery: decode and encode move between bytes and the ir node
// model, stream provides event-based i/o without building trees,
// format bridges to JSON and YAML, and libdiff, patch and eval work
// on decoded documents.
package mpack

import (
	"bytes"

	"github.com/sibircevs/mpack/decode"
	"github.com/sibircevs/mpack/encode"
	"github.com/sibircevs/mpack/ir"
)

// Marshal encodes a native Go value (the encoding/json vocabulary
// plus []byte and the integer widths) to wire bytes.
func Marshal(v any) ([]byte, error) {
	node, err := ir.FromAny(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encode.Encode(node, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes the first value in d to a native Go value.
func Unmarshal(d []byte) (any, error) {
	node, err := decode.Parse(d)
	if err != nil {
		return nil, err
	}
	return ir.ToAny(node), nil
}

// Parse decodes the first value in d to an IR node, preserving map
// order, duplicate keys, and wire-level type fidelity. Empty input
// yields (nil, nil).
func Parse(d []byte) (*ir.Node, error) {
	return decode.Parse(d)
}

// Bytes encodes an IR node to its wire bytes.
func Bytes(node *ir.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode.Encode(node, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
