package ir

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToAny(t *testing.T) {
	tests := []struct {
		name     string
		node     *Node
		expected any
	}{
		{"nil node", nil, nil},
		{"null", Null(), nil},
		{"bool", FromBool(true), true},
		{"int", FromInt(-7), int64(-7)},
		{"float", FromFloat(1.5), 1.5},
		{"string", FromString("hi"), "hi"},
		{"binary", FromBytes([]byte{1, 2}), []byte{1, 2}},
		{"ext", FromExt(3, []byte{9}), map[string]any{"ext": int64(3), "payload": []byte{9}}},
		{"array", FromSlice([]*Node{FromInt(1), FromString("a")}), []any{int64(1), "a"}},
		{"map", FromMap(map[string]*Node{"k": FromBool(false)}), map[string]any{"k": false}},
		{"int-keyed map",
			FromKeyVals([]KeyVal{{Key: FromInt(12), Val: Null()}}),
			map[string]any{"12": nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToAny(tt.node)
			if d := cmp.Diff(tt.expected, got); d != "" {
				t.Errorf("ToAny() mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestFromAnyRoundTrip(t *testing.T) {
	tests := []any{
		nil,
		true,
		int64(42),
		int64(-1),
		3.25,
		"str",
		[]byte{0xFF},
		[]any{int64(1), "x", nil},
		map[string]any{"a": int64(1), "b": []any{false}},
	}
	for _, v := range tests {
		node, err := FromAny(v)
		if err != nil {
			t.Fatalf("FromAny(%v): %v", v, err)
		}
		back := ToAny(node)
		if d := cmp.Diff(v, back); d != "" {
			t.Errorf("roundtrip mismatch (-want +got):\n%s", d)
		}
	}
}

func TestFromAnyWidths(t *testing.T) {
	for _, v := range []any{int(3), int8(3), int16(3), int32(3), int64(3)} {
		node, err := FromAny(v)
		if err != nil {
			t.Fatal(err)
		}
		if node.Type != IntType || node.Int64 != 3 {
			t.Errorf("FromAny(%T) = %v", v, node)
		}
	}
	for _, v := range []any{uint(3), uint16(3), uint32(3), uint64(3)} {
		node, err := FromAny(v)
		if err != nil {
			t.Fatal(err)
		}
		if node.Type != IntType || node.Uint64() != 3 {
			t.Errorf("FromAny(%T) = %v", v, node)
		}
	}
	node, err := FromAny(float32(1.5))
	if err != nil || node.Type != FloatType || node.Float64 != 1.5 {
		t.Errorf("FromAny(float32) = %v, %v", node, err)
	}
}

func TestFromAnyNumber(t *testing.T) {
	node, err := FromAny(json.Number("9007199254740993"))
	if err != nil {
		t.Fatal(err)
	}
	if node.Type != IntType || node.Int64 != 9007199254740993 {
		t.Errorf("large integer number = %v", node)
	}
	node, err = FromAny(json.Number("2.5"))
	if err != nil {
		t.Fatal(err)
	}
	if node.Type != FloatType || node.Float64 != 2.5 {
		t.Errorf("fractional number = %v", node)
	}
	if _, err := FromAny(json.Number("bogus")); !errors.Is(err, ErrNativeValue) {
		t.Errorf("bad number = %v, want ErrNativeValue", err)
	}
}

func TestFromAnyUnsupported(t *testing.T) {
	if _, err := FromAny(struct{}{}); !errors.Is(err, ErrNativeValue) {
		t.Errorf("FromAny(struct{}{}) = %v, want ErrNativeValue", err)
	}
	if _, err := FromAny([]any{make(chan int)}); !errors.Is(err, ErrNativeValue) {
		t.Errorf("nested unsupported = %v, want ErrNativeValue", err)
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		node     *Node
		expected string
	}{
		{FromString("k"), "k"},
		{FromInt(-3), "-3"},
		{FromFloat(1.5), "1.5"},
		{FromBool(true), "true"},
		{Null(), "null"},
		{FromBytes([]byte{0xAB, 0xCD}), "abcd"},
	}
	for _, tt := range tests {
		if got := KeyString(tt.node); got != tt.expected {
			t.Errorf("KeyString(%v) = %q, want %q", tt.node.Type, got, tt.expected)
		}
	}
}
