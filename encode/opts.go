package encode

type EncodeOption func(*EncState)

// CompactFloats controls whether WriteValue emits the 32-bit form for
// float values that round-trip exactly through float32. Defaults to
// true. WriteFloat32 and WriteFloat64 are unaffected.
func CompactFloats(v bool) EncodeOption {
	return func(es *EncState) { es.compactFloats = v }
}
