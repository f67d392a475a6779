package wire

// Tag byte values of the MessagePack wire format. The first byte of
// every encoded value is one of these, or falls in one of the fix
// ranges below. These values are the interoperability contract and
// must not change.
const (
	TagNil      byte = 0xC0
	TagReserved byte = 0xC1 // never produced, never accepted
	TagFalse    byte = 0xC2
	TagTrue     byte = 0xC3
	TagBin8     byte = 0xC4
	TagBin16    byte = 0xC5
	TagBin32    byte = 0xC6
	TagExt8     byte = 0xC7
	TagExt16    byte = 0xC8
	TagExt32    byte = 0xC9
	TagFloat32  byte = 0xCA
	TagFloat64  byte = 0xCB
	TagUint8    byte = 0xCC
	TagUint16   byte = 0xCD
	TagUint32   byte = 0xCE
	TagUint64   byte = 0xCF
	TagInt8     byte = 0xD0
	TagInt16    byte = 0xD1
	TagInt32    byte = 0xD2
	TagInt64    byte = 0xD3
	TagFixExt1  byte = 0xD4
	TagFixExt2  byte = 0xD5
	TagFixExt4  byte = 0xD6
	TagFixExt8  byte = 0xD7
	TagFixExt16 byte = 0xD8
	TagStr8     byte = 0xD9
	TagStr16    byte = 0xDA
	TagStr32    byte = 0xDB
	TagArray16  byte = 0xDC
	TagArray32  byte = 0xDD
	TagMap16    byte = 0xDE
	TagMap32    byte = 0xDF
)

// Bases of the single-byte fix forms. The low bits of the tag carry
// the value (positive/negative fixint) or the length (fixmap,
// fixarray, fixstr).
const (
	FixMapBase    byte = 0x80
	FixArrayBase  byte = 0x90
	FixStrBase    byte = 0xA0
	NegFixIntBase byte = 0xE0
)

const (
	FixStrMaxLen    = 31
	FixContainerMax = 15
	PosFixIntMax    = 127
	NegFixIntMin    = -32
)

func IsPosFixInt(tag byte) bool { return tag <= 0x7F }
func IsNegFixInt(tag byte) bool { return tag >= 0xE0 }
func IsFixMap(tag byte) bool    { return tag&0xF0 == FixMapBase }
func IsFixArray(tag byte) bool  { return tag&0xF0 == FixArrayBase }
func IsFixStr(tag byte) bool    { return tag&0xE0 == FixStrBase }

// FixLen extracts the length packed into a fixmap, fixarray or fixstr
// tag byte.
func FixLen(tag byte) int {
	if IsFixStr(tag) {
		return int(tag & 0x1F)
	}
	return int(tag & 0x0F)
}

// TagName returns a short human readable name for a tag byte, used in
// diagnostics and the annotated dump.
func TagName(tag byte) string {
	switch {
	case IsPosFixInt(tag):
		return "fixint"
	case IsNegFixInt(tag):
		return "-fixint"
	case IsFixMap(tag):
		return "fixmap"
	case IsFixArray(tag):
		return "fixarray"
	case IsFixStr(tag):
		return "fixstr"
	}
	name, ok := map[byte]string{
		TagNil:      "nil",
		TagReserved: "reserved",
		TagFalse:    "false",
		TagTrue:     "true",
		TagBin8:     "bin8",
		TagBin16:    "bin16",
		TagBin32:    "bin32",
		TagExt8:     "ext8",
		TagExt16:    "ext16",
		TagExt32:    "ext32",
		TagFloat32:  "float32",
		TagFloat64:  "float64",
		TagUint8:    "uint8",
		TagUint16:   "uint16",
		TagUint32:   "uint32",
		TagUint64:   "uint64",
		TagInt8:     "int8",
		TagInt16:    "int16",
		TagInt32:    "int32",
		TagInt64:    "int64",
		TagFixExt1:  "fixext1",
		TagFixExt2:  "fixext2",
		TagFixExt4:  "fixext4",
		TagFixExt8:  "fixext8",
		TagFixExt16: "fixext16",
		TagStr8:     "str8",
		TagStr16:    "str16",
		TagStr32:    "str32",
		TagArray16:  "array16",
		TagArray32:  "array32",
		TagMap16:    "map16",
		TagMap32:    "map32",
	}[tag]
	if ok {
		return name
	}
	return "<unknown tag>"
}
