package wire

import (
	"encoding/binary"
	"math"
)

// Fixed-width big-endian conversions shared by the encoder and the
// decoder. The destination/source slice length must match the type
// width exactly; encoding/binary panics otherwise, which is the
// intended precondition failure.

func PutUint16(d []byte, v uint16) { binary.BigEndian.PutUint16(d, v) }
func PutUint32(d []byte, v uint32) { binary.BigEndian.PutUint32(d, v) }
func PutUint64(d []byte, v uint64) { binary.BigEndian.PutUint64(d, v) }

func Uint16(d []byte) uint16 { return binary.BigEndian.Uint16(d) }
func Uint32(d []byte) uint32 { return binary.BigEndian.Uint32(d) }
func Uint64(d []byte) uint64 { return binary.BigEndian.Uint64(d) }

func PutFloat32(d []byte, f float32) { PutUint32(d, math.Float32bits(f)) }
func PutFloat64(d []byte, f float64) { PutUint64(d, math.Float64bits(f)) }

func Float32(d []byte) float32 { return math.Float32frombits(Uint32(d)) }
func Float64(d []byte) float64 { return math.Float64frombits(Uint64(d)) }
