package mpack

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sibircevs/mpack/ir"
)

func TestMarshalUnmarshal(t *testing.T) {
	tests := []any{
		nil,
		true,
		int64(5),
		int64(-40),
		int64(70000),
		1.5,
		"document",
		[]byte{0xDE, 0xAD},
		[]any{int64(1), "two", nil},
		map[string]any{
			"schema": int64(0),
			"rows":   []any{map[string]any{"id": int64(7)}},
		},
	}
	for _, v := range tests {
		d, err := Marshal(v)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", v, err)
		}
		back, err := Unmarshal(d)
		if err != nil {
			t.Fatalf("Unmarshal(% X): %v", d, err)
		}
		if diff := cmp.Diff(v, back); diff != "" {
			t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestMarshalUnsupported(t *testing.T) {
	if _, err := Marshal(make(chan int)); err == nil {
		t.Error("Marshal of a channel should fail")
	}
}

func TestParseBytes(t *testing.T) {
	node, err := Parse([]byte{0x94, 0x05, 0x0A, 0x14, 0xCC, 0xC8})
	if err != nil {
		t.Fatal(err)
	}
	if node.Type != ir.ArrayType || node.Len() != 4 {
		t.Fatalf("node = %v", node)
	}
	d, err := Bytes(node)
	if err != nil {
		t.Fatal(err)
	}
	expected := []byte{0x94, 0x05, 0x0A, 0x14, 0xCC, 0xC8}
	if cmp.Diff(expected, d) != "" {
		t.Errorf("Bytes() = % X, want % X", d, expected)
	}

	node, err = Parse(nil)
	if node != nil || err != nil {
		t.Errorf("Parse(nil) = %v, %v", node, err)
	}
}
