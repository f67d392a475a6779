// Package encode maps IR nodes to their minimal MessagePack wire
// representation.
package encode

import (
	"fmt"
	"io"
	"math"

	"github.com/sibircevs/mpack/debug"
	"github.com/sibircevs/mpack/ir"
	"github.com/sibircevs/mpack/wire"
)

// Encoder writes values to a byte sink, always choosing the smallest
// wire form that can hold a value. It keeps no state between calls
// beyond the sink's offset; sink failures propagate unchanged.
type Encoder struct {
	sink *wire.Sink
	es   EncState
}

type EncState struct {
	compactFloats bool
}

// Encode writes one value tree to w.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	e := NewEncoder(w, opts...)
	if err := e.WriteValue(node); err != nil {
		return err
	}
	if debug.Encode() {
		debug.Logf("encoded %d bytes\n", e.Offset())
	}
	return nil
}

func NewEncoder(w io.Writer, opts ...EncodeOption) *Encoder {
	e := &Encoder{
		sink: wire.NewSink(w),
		es:   EncState{compactFloats: true},
	}
	for _, opt := range opts {
		opt(&e.es)
	}
	return e
}

// Offset returns the absolute byte offset in the output stream.
func (e *Encoder) Offset() int {
	return e.sink.Offset()
}

func (e *Encoder) WriteNil() error {
	return e.sink.WriteByte(wire.TagNil)
}

func (e *Encoder) WriteBool(v bool) error {
	if v {
		return e.sink.WriteByte(wire.TagTrue)
	}
	return e.sink.WriteByte(wire.TagFalse)
}

// WriteInt selects the narrowest wire form for v. The boundaries form
// a strict ladder: fixint, then the 1, 2, 4, and 8 byte signed and
// unsigned forms.
func (e *Encoder) WriteInt(v int64) error {
	switch {
	case v >= -32 && v <= -1:
		return e.sink.WriteByte(wire.NegFixIntBase | byte(v&0x1F))
	case v >= 0 && v <= 127:
		return e.sink.WriteByte(byte(v))
	case v >= -128 && v <= -33:
		return e.tagged8(wire.TagInt8, byte(v))
	case v >= 128 && v <= 255:
		return e.tagged8(wire.TagUint8, byte(v))
	case v >= -32768 && v <= -129:
		return e.tagged16(wire.TagInt16, uint16(v))
	case v >= 256 && v <= 65535:
		return e.tagged16(wire.TagUint16, uint16(v))
	case v >= math.MinInt32 && v <= -32769:
		return e.tagged32(wire.TagInt32, uint32(v))
	case v >= 65536 && v <= math.MaxUint32:
		return e.tagged32(wire.TagUint32, uint32(v))
	case v < math.MinInt32:
		return e.tagged64(wire.TagInt64, uint64(v))
	default:
		// v >= 2^32
		return e.tagged64(wire.TagUint64, uint64(v))
	}
}

// WriteUint is WriteInt for values addressed as unsigned; the upper
// half of the uint64 range selects the uint64 form.
func (e *Encoder) WriteUint(v uint64) error {
	if v > math.MaxInt64 {
		return e.tagged64(wire.TagUint64, v)
	}
	return e.WriteInt(int64(v))
}

func (e *Encoder) WriteFloat32(f float32) error {
	if err := e.sink.WriteByte(wire.TagFloat32); err != nil {
		return err
	}
	return e.sink.WriteUint32(math.Float32bits(f))
}

func (e *Encoder) WriteFloat64(f float64) error {
	if err := e.sink.WriteByte(wire.TagFloat64); err != nil {
		return err
	}
	return e.sink.WriteUint64(math.Float64bits(f))
}

// WriteStringHeader writes the narrowest string header for a payload
// of n bytes. The n payload bytes must follow.
func (e *Encoder) WriteStringHeader(n int) error {
	switch {
	case n <= wire.FixStrMaxLen:
		return e.sink.WriteByte(wire.FixStrBase | byte(n))
	case n <= math.MaxUint8:
		return e.tagged8(wire.TagStr8, byte(n))
	case n <= math.MaxUint16:
		return e.tagged16(wire.TagStr16, uint16(n))
	default:
		return e.tagged32(wire.TagStr32, uint32(n))
	}
}

func (e *Encoder) WriteString(s string) error {
	if err := e.WriteStringHeader(len(s)); err != nil {
		return err
	}
	return e.sink.Write([]byte(s))
}

// WriteBinaryHeader writes the narrowest binary header; there is no
// single-byte fix form for binary.
func (e *Encoder) WriteBinaryHeader(n int) error {
	switch {
	case n <= math.MaxUint8:
		return e.tagged8(wire.TagBin8, byte(n))
	case n <= math.MaxUint16:
		return e.tagged16(wire.TagBin16, uint16(n))
	default:
		return e.tagged32(wire.TagBin32, uint32(n))
	}
}

func (e *Encoder) WriteBinary(d []byte) error {
	if err := e.WriteBinaryHeader(len(d)); err != nil {
		return err
	}
	return e.sink.Write(d)
}

// WriteArrayHeader writes the narrowest array header for n elements.
// The n element values must follow.
func (e *Encoder) WriteArrayHeader(n int) error {
	switch {
	case n <= wire.FixContainerMax:
		return e.sink.WriteByte(wire.FixArrayBase | byte(n))
	case n <= math.MaxUint16:
		return e.tagged16(wire.TagArray16, uint16(n))
	default:
		return e.tagged32(wire.TagArray32, uint32(n))
	}
}

// WriteMapHeader writes the narrowest map header for n pairs. The n
// key/value pairs must follow, each key immediately followed by its
// value.
func (e *Encoder) WriteMapHeader(n int) error {
	switch {
	case n <= wire.FixContainerMax:
		return e.sink.WriteByte(wire.FixMapBase | byte(n))
	case n <= math.MaxUint16:
		return e.tagged16(wire.TagMap16, uint16(n))
	default:
		return e.tagged32(wire.TagMap32, uint32(n))
	}
}

// WriteExt writes an extension value: header, type tag, payload.
// Payload lengths of exactly 1, 2, 4, 8 and 16 bytes use the fixext
// forms.
func (e *Encoder) WriteExt(tag int8, payload []byte) error {
	n := len(payload)
	var err error
	switch n {
	case 1:
		err = e.sink.WriteByte(wire.TagFixExt1)
	case 2:
		err = e.sink.WriteByte(wire.TagFixExt2)
	case 4:
		err = e.sink.WriteByte(wire.TagFixExt4)
	case 8:
		err = e.sink.WriteByte(wire.TagFixExt8)
	case 16:
		err = e.sink.WriteByte(wire.TagFixExt16)
	default:
		switch {
		case n <= math.MaxUint8:
			err = e.tagged8(wire.TagExt8, byte(n))
		case n <= math.MaxUint16:
			err = e.tagged16(wire.TagExt16, uint16(n))
		default:
			err = e.tagged32(wire.TagExt32, uint32(n))
		}
	}
	if err != nil {
		return err
	}
	if err := e.sink.WriteByte(byte(tag)); err != nil {
		return err
	}
	return e.sink.Write(payload)
}

// WriteValue dispatches on the node's type, recursing depth first
// through containers. A node of no recognized type fails with
// ErrUnsupportedValue; there is no fallback representation.
func (e *Encoder) WriteValue(node *ir.Node) error {
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrUnsupportedValue)
	}
	switch node.Type {
	case ir.NullType:
		return e.WriteNil()
	case ir.BoolType:
		return e.WriteBool(node.Bool)
	case ir.IntType:
		return e.WriteInt(node.Int64)
	case ir.FloatType:
		return e.writeFloat(node.Float64)
	case ir.StringType:
		return e.WriteString(node.String)
	case ir.BinaryType:
		return e.WriteBinary(node.Bytes)
	case ir.ExtType:
		return e.WriteExt(node.ExtTag, node.Bytes)
	case ir.ArrayType:
		if err := e.WriteArrayHeader(len(node.Values)); err != nil {
			return err
		}
		for _, v := range node.Values {
			if err := e.WriteValue(v); err != nil {
				return err
			}
		}
		return nil
	case ir.MapType:
		if err := e.WriteMapHeader(len(node.Values)); err != nil {
			return err
		}
		for i := range node.Values {
			if err := e.WriteValue(node.Fields[i]); err != nil {
				return err
			}
			if err := e.WriteValue(node.Values[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: type %s", ErrUnsupportedValue, node.Type)
	}
}

// writeFloat picks 32-bit precision when the value survives the round
// trip exactly. NaN never compares equal and always takes the 64-bit
// form.
func (e *Encoder) writeFloat(f float64) error {
	if e.es.compactFloats {
		if f32 := float32(f); float64(f32) == f {
			return e.WriteFloat32(f32)
		}
	}
	return e.WriteFloat64(f)
}

func (e *Encoder) tagged8(tag, b byte) error {
	if err := e.sink.WriteByte(tag); err != nil {
		return err
	}
	return e.sink.WriteByte(b)
}

func (e *Encoder) tagged16(tag byte, v uint16) error {
	if err := e.sink.WriteByte(tag); err != nil {
		return err
	}
	return e.sink.WriteUint16(v)
}

func (e *Encoder) tagged32(tag byte, v uint32) error {
	if err := e.sink.WriteByte(tag); err != nil {
		return err
	}
	return e.sink.WriteUint32(v)
}

func (e *Encoder) tagged64(tag byte, v uint64) error {
	if err := e.sink.WriteByte(tag); err != nil {
		return err
	}
	return e.sink.WriteUint64(v)
}
