package decode

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/sibircevs/mpack/encode"
	"github.com/sibircevs/mpack/ir"
	"github.com/sibircevs/mpack/wire"
)

func parsed(t *testing.T, d []byte) *ir.Node {
	t.Helper()
	node, err := Parse(d)
	if err != nil {
		t.Fatalf("Parse(% X): %v", d, err)
	}
	return node
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected *ir.Node
	}{
		{"nil", []byte{0xC0}, ir.Null()},
		{"false", []byte{0xC2}, ir.FromBool(false)},
		{"true", []byte{0xC3}, ir.FromBool(true)},
		{"posfixint", []byte{0x05}, ir.FromInt(5)},
		{"posfixint max", []byte{0x7F}, ir.FromInt(127)},
		{"negfixint", []byte{0xFF}, ir.FromInt(-1)},
		{"negfixint min", []byte{0xE0}, ir.FromInt(-32)},
		{"uint8", []byte{0xCC, 0xC8}, ir.FromInt(200)},
		{"uint16", []byte{0xCD, 0x01, 0x00}, ir.FromInt(256)},
		{"uint32 max", []byte{0xCE, 0xFF, 0xFF, 0xFF, 0xFF}, ir.FromInt(4294967295)},
		{"uint64", []byte{0xCF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, ir.FromUint(math.MaxUint64)},
		{"int8", []byte{0xD0, 0x80}, ir.FromInt(-128)},
		{"int16", []byte{0xD1, 0xFF, 0x7F}, ir.FromInt(-129)},
		{"int32", []byte{0xD2, 0x80, 0x00, 0x00, 0x00}, ir.FromInt(math.MinInt32)},
		{"int64", []byte{0xD3, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, ir.FromInt(math.MinInt64)},
		{"float32", []byte{0xCA, 0x3F, 0xC0, 0x00, 0x00}, ir.FromFloat(1.5)},
		{"float64", []byte{0xCB, 0x3F, 0xF8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, ir.FromFloat(1.5)},
		{"fixstr", []byte{0xA3, 'a', 'b', 'c'}, ir.FromString("abc")},
		{"empty fixstr", []byte{0xA0}, ir.FromString("")},
		{"str8", []byte{0xD9, 0x03, 'a', 'b', 'c'}, ir.FromString("abc")},
		{"bin8", []byte{0xC4, 0x02, 1, 2}, ir.FromBytes([]byte{1, 2})},
		{"empty bin", []byte{0xC4, 0x00}, ir.FromBytes([]byte{})},
		{"fixext1", []byte{0xD4, 0x05, 0xAA}, ir.FromExt(5, []byte{0xAA})},
		{"ext8", []byte{0xC7, 0x03, 0xFF, 1, 2, 3}, ir.FromExt(-1, []byte{1, 2, 3})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsed(t, tt.input)
			if ir.Compare(got, tt.expected) != 0 {
				t.Errorf("Parse(% X) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestUnsignedWidening(t *testing.T) {
	// high-bit unsigned forms widen without sign extension
	tests := []struct {
		input    []byte
		expected int64
	}{
		{[]byte{0xCC, 0xFF}, 255},
		{[]byte{0xCD, 0xFF, 0xFF}, 65535},
		{[]byte{0xCE, 0xFF, 0xFF, 0xFF, 0xFF}, 4294967295},
	}
	for _, tt := range tests {
		got := parsed(t, tt.input)
		if got.Int64 != tt.expected {
			t.Errorf("Parse(% X) = %d, want %d", tt.input, got.Int64, tt.expected)
		}
	}
}

func TestParseContainers(t *testing.T) {
	// [5, 10, 20, 200]
	got := parsed(t, []byte{0x94, 0x05, 0x0A, 0x14, 0xCC, 0xC8})
	expected := ir.FromSlice([]*ir.Node{
		ir.FromInt(5), ir.FromInt(10), ir.FromInt(20), ir.FromInt(200),
	})
	if ir.Compare(got, expected) != 0 {
		t.Errorf("array = %v", got)
	}

	// {"schema": 0}
	got = parsed(t, []byte{0x81, 0xA6, 's', 'c', 'h', 'e', 'm', 'a', 0x00})
	if got.Type != ir.MapType || got.Len() != 1 {
		t.Fatalf("map = %v", got)
	}
	if v := ir.Get(got, "schema"); v == nil || v.Int64 != 0 {
		t.Errorf("Get(schema) = %v", v)
	}

	// array16 / map16 headers dispatch like their fix forms
	got = parsed(t, []byte{0xDC, 0x00, 0x01, 0xC0})
	if got.Type != ir.ArrayType || got.Len() != 1 || got.Values[0].Type != ir.NullType {
		t.Errorf("array16 = %v", got)
	}
	got = parsed(t, []byte{0xDE, 0x00, 0x01, 0xA1, 'k', 0x07})
	if got.Type != ir.MapType || got.Len() != 1 || got.Values[0].Int64 != 7 {
		t.Errorf("map16 = %v", got)
	}

	// parent links point into the decoded tree
	got = parsed(t, []byte{0x91, 0x92, 0x01, 0x02})
	inner := got.Values[0]
	if inner.Parent != got || inner.Values[1].Parent != inner {
		t.Error("decoded tree has wrong parent links")
	}
}

func TestDuplicateKeysPreserved(t *testing.T) {
	// {"a": 1, "a": 2}
	got := parsed(t, []byte{0x82, 0xA1, 'a', 0x01, 0xA1, 'a', 0x02})
	if got.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", got.Len())
	}
	if got.Values[0].Int64 != 1 || got.Values[1].Int64 != 2 {
		t.Error("duplicate pairs not preserved in wire order")
	}
}

func TestParseEmpty(t *testing.T) {
	node, err := Parse(nil)
	if node != nil || err != nil {
		t.Errorf("Parse(nil) = %v, %v", node, err)
	}
	_, err = NewDecoder(bytes.NewReader(nil)).ReadValue()
	if err != io.EOF {
		t.Errorf("ReadValue on empty = %v, want io.EOF", err)
	}
}

func TestParseAll(t *testing.T) {
	nodes, err := ParseAll([]byte{0x01, 0xC3, 0xA1, 'x'})
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 3 {
		t.Fatalf("ParseAll returned %d values", len(nodes))
	}
	if nodes[0].Int64 != 1 || !nodes[1].Bool || nodes[2].String != "x" {
		t.Errorf("ParseAll = %v", nodes)
	}
}

func TestTruncated(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"uint16 missing byte", []byte{0xCD, 0x01}},
		{"float64 short", []byte{0xCB, 0x3F, 0xF8}},
		{"str16 tag plus one length byte", []byte{0xDA, 0x01}},
		{"fixstr short payload", []byte{0xA3, 'a'}},
		{"str8 short payload", []byte{0xD9, 0x05, 'a'}},
		{"bin8 short payload", []byte{0xC4, 0x02, 1}},
		{"ext missing type", []byte{0xC7, 0x01}},
		{"fixext missing payload", []byte{0xD4, 0x05}},
		{"array missing element", []byte{0x92, 0x01}},
		{"map missing value", []byte{0x81, 0xA1, 'k'}},
		{"array16 missing length", []byte{0xDC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !errors.Is(err, wire.ErrTruncated) {
				t.Errorf("Parse(% X) = %v, want ErrTruncated", tt.input, err)
			}
		})
	}
}

func TestUnknownTag(t *testing.T) {
	_, err := Parse([]byte{0xC1})
	if !errors.Is(err, wire.ErrUnknownTag) {
		t.Errorf("Parse(0xC1) = %v, want ErrUnknownTag", err)
	}
	// also inside a container
	_, err = Parse([]byte{0x91, 0xC1})
	if !errors.Is(err, wire.ErrUnknownTag) {
		t.Errorf("Parse([0xC1]) = %v, want ErrUnknownTag", err)
	}
}

func TestDecodePositions(t *testing.T) {
	positions := map[*ir.Node]int{}
	// [5, "ab", {"k": nil}]
	input := []byte{0x93, 0x05, 0xA2, 'a', 'b', 0x81, 0xA1, 'k', 0xC0}
	node, err := Parse(input, DecodePositions(positions))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		node     *ir.Node
		expected int
	}{
		{node, 0},
		{node.Values[0], 1},
		{node.Values[1], 2},
		{node.Values[2], 5},
		{node.Values[2].Fields[0], 6},
		{node.Values[2].Values[0], 8},
	}
	for _, tt := range tests {
		if got := positions[tt.node]; got != tt.expected {
			t.Errorf("position of %v = %d, want %d", tt.node.Type, got, tt.expected)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	nodes := []*ir.Node{
		ir.Null(),
		ir.FromBool(true),
		ir.FromInt(-33),
		ir.FromInt(65536),
		ir.FromUint(math.MaxUint64),
		ir.FromFloat(0.1),
		ir.FromFloat(float64(math.Inf(-1))),
		ir.FromString("hello"),
		ir.FromBytes([]byte{0, 1, 2}),
		ir.FromExt(12, []byte{1, 2, 3, 4, 5}),
		ir.FromSlice([]*ir.Node{
			ir.FromInt(1),
			ir.FromMap(map[string]*ir.Node{
				"deep": ir.FromSlice([]*ir.Node{ir.Null()}),
			}),
		}),
		ir.FromKeyVals([]ir.KeyVal{
			{Key: ir.FromInt(1), Val: ir.FromString("one")},
			{Key: ir.FromSlice([]*ir.Node{ir.FromInt(2)}), Val: ir.FromBool(false)},
		}),
	}
	for _, node := range nodes {
		var buf bytes.Buffer
		if err := encode.Encode(node, &buf); err != nil {
			t.Fatalf("encode %v: %v", node.Type, err)
		}
		back, err := Parse(buf.Bytes())
		if err != nil {
			t.Fatalf("parse %v: %v", node.Type, err)
		}
		if ir.Compare(node, back) != 0 {
			t.Errorf("roundtrip of %v changed the value", node.Type)
		}
	}
}

func TestReaderStream(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 100; i++ {
		if err := encode.Encode(ir.FromInt(int64(i*1000)), &buf); err != nil {
			t.Fatal(err)
		}
	}
	dec := NewDecoder(&buf)
	for i := 0; i < 100; i++ {
		node, err := dec.ReadValue()
		if err != nil {
			t.Fatal(err)
		}
		if node.Int64 != int64(i*1000) {
			t.Fatalf("value %d = %d", i, node.Int64)
		}
	}
	if _, err := dec.ReadValue(); err != io.EOF {
		t.Errorf("stream end = %v, want io.EOF", err)
	}
}
