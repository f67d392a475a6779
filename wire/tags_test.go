package wire

import (
	"testing"
)

func TestFixRanges(t *testing.T) {
	for i := 0; i < 256; i++ {
		tag := byte(i)
		pos := tag <= 0x7F
		if IsPosFixInt(tag) != pos {
			t.Errorf("IsPosFixInt(0x%02X) = %t", tag, !pos)
		}
		neg := tag >= 0xE0
		if IsNegFixInt(tag) != neg {
			t.Errorf("IsNegFixInt(0x%02X) = %t", tag, !neg)
		}
		fm := tag >= 0x80 && tag <= 0x8F
		if IsFixMap(tag) != fm {
			t.Errorf("IsFixMap(0x%02X) = %t", tag, !fm)
		}
		fa := tag >= 0x90 && tag <= 0x9F
		if IsFixArray(tag) != fa {
			t.Errorf("IsFixArray(0x%02X) = %t", tag, !fa)
		}
		fs := tag >= 0xA0 && tag <= 0xBF
		if IsFixStr(tag) != fs {
			t.Errorf("IsFixStr(0x%02X) = %t", tag, !fs)
		}
	}
}

func TestFixLen(t *testing.T) {
	tests := []struct {
		tag      byte
		expected int
	}{
		{FixMapBase, 0},
		{FixMapBase | 0x0F, 15},
		{FixArrayBase | 0x03, 3},
		{FixStrBase, 0},
		{FixStrBase | 0x1F, 31},
	}
	for _, tt := range tests {
		if got := FixLen(tt.tag); got != tt.expected {
			t.Errorf("FixLen(0x%02X) = %d, want %d", tt.tag, got, tt.expected)
		}
	}
}

func TestTagName(t *testing.T) {
	tests := []struct {
		tag      byte
		expected string
	}{
		{0x00, "fixint"},
		{0x7F, "fixint"},
		{0x85, "fixmap"},
		{0x93, "fixarray"},
		{0xA5, "fixstr"},
		{TagNil, "nil"},
		{TagFalse, "false"},
		{TagTrue, "true"},
		{TagBin8, "bin8"},
		{TagExt32, "ext32"},
		{TagFloat64, "float64"},
		{TagUint64, "uint64"},
		{TagInt8, "int8"},
		{TagFixExt16, "fixext16"},
		{TagStr32, "str32"},
		{TagMap16, "map16"},
		{0xE0, "-fixint"},
		{0xFF, "-fixint"},
	}
	for _, tt := range tests {
		if got := TagName(tt.tag); got != tt.expected {
			t.Errorf("TagName(0x%02X) = %q, want %q", tt.tag, got, tt.expected)
		}
	}
}
