package decode

import (
	"bytes"
	"testing"

	"github.com/sibircevs/mpack/encode"
	"github.com/sibircevs/mpack/ir"
)

func FuzzReadValue(f *testing.F) {
	seeds := [][]byte{
		// Scalars
		{0xC0},
		{0xC2},
		{0xC3},
		{0x05},
		{0x7F},
		{0xFF},
		{0xCC, 0xC8},
		{0xCD, 0x01, 0x00},
		{0xCE, 0xFF, 0xFF, 0xFF, 0xFF},
		{0xCF, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		{0xD0, 0x80},
		{0xD3, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		{0xCA, 0x3F, 0xC0, 0x00, 0x00},
		{0xCB, 0x3F, 0xF8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},

		// Strings and binary
		{0xA0},
		{0xA3, 'a', 'b', 'c'},
		{0xD9, 0x03, 'x', 'y', 'z'},
		{0xC4, 0x02, 1, 2},

		// Ext
		{0xD4, 0x05, 0xAA},
		{0xC7, 0x03, 0xFF, 1, 2, 3},

		// Containers
		{0x90},
		{0x94, 0x05, 0x0A, 0x14, 0xCC, 0xC8},
		{0x80},
		{0x81, 0xA6, 's', 'c', 'h', 'e', 'm', 'a', 0x00},
		{0x91, 0x92, 0x01, 0x82, 0xA1, 'k', 0xC0, 0x01, 0xC3},

		// Hostile inputs
		{0xC1},
		{0xDB, 0xFF, 0xFF, 0xFF, 0xFF},
		{0xDC, 0xFF, 0xFF},
		{0xDF, 0xFF, 0xFF},
	}
	for _, seed := range seeds {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		node, err := Parse(data)
		if err != nil || node == nil {
			return
		}
		// whatever decodes must re-encode and decode to the same value
		var buf bytes.Buffer
		if err := encode.Encode(node, &buf); err != nil {
			t.Fatalf("re-encode of decoded value failed: %v", err)
		}
		back, err := Parse(buf.Bytes())
		if err != nil {
			t.Fatalf("re-decode failed: %v", err)
		}
		if ir.Compare(node, back) != 0 {
			t.Fatal("value changed across encode/decode")
		}
	})
}
