// Package decode materializes IR nodes from a MessagePack byte
// stream.
package decode

import (
	"fmt"
	"io"

	"github.com/sibircevs/mpack/debug"
	"github.com/sibircevs/mpack/ir"
	"github.com/sibircevs/mpack/wire"
)

// Decoder reads values from a byte source, one value per call to
// ReadValue. Container decode is pure recursion with no depth limit;
// depth limiting, if desired, is the caller's policy.
type Decoder struct {
	src  *wire.Source
	opts *decodeOpts
}

func NewDecoder(r io.Reader, opts ...DecodeOption) *Decoder {
	return newDecoder(wire.NewSource(r), opts)
}

func newDecoder(src *wire.Source, opts []DecodeOption) *Decoder {
	dOpts := &decodeOpts{}
	for _, f := range opts {
		f(dOpts)
	}
	return &Decoder{src: src, opts: dOpts}
}

// Parse decodes the first value in d. An empty input yields (nil,
// nil); trailing bytes after the first value are not consumed.
func Parse(d []byte, opts ...DecodeOption) (*ir.Node, error) {
	dec := newDecoder(wire.NewBytesSource(d), opts)
	res, err := dec.ReadValue()
	if err == io.EOF {
		return nil, nil
	}
	return res, err
}

// ParseAll decodes every value in d in sequence.
func ParseAll(d []byte, opts ...DecodeOption) ([]*ir.Node, error) {
	dec := newDecoder(wire.NewBytesSource(d), opts)
	var res []*ir.Node
	for {
		node, err := dec.ReadValue()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, node)
	}
}

// Offset returns the absolute offset of the next unread byte.
func (d *Decoder) Offset() int {
	return d.src.Offset()
}

// ReadValue decodes one value. A source exhausted before the leading
// tag byte returns (nil, io.EOF) without error; exhaustion anywhere
// after that is wire.ErrTruncated.
func (d *Decoder) ReadValue() (*ir.Node, error) {
	off := d.src.Offset()
	tag, err := d.src.ReadTag()
	if err != nil {
		return nil, err
	}
	if debug.Decode() {
		debug.Logf("decode %s at offset %d\n", wire.TagName(tag), off)
	}
	return d.value(tag, off)
}

// element decodes a nested value, where a missing tag byte is
// mid-value truncation rather than a clean end.
func (d *Decoder) element() (*ir.Node, error) {
	off := d.src.Offset()
	tag, err := d.src.ReadTag()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: value tag at offset %d", wire.ErrTruncated, off)
	}
	if err != nil {
		return nil, err
	}
	return d.value(tag, off)
}

func (d *Decoder) value(tag byte, off int) (*ir.Node, error) {
	var (
		node *ir.Node
		err  error
	)
	switch {
	case wire.IsPosFixInt(tag):
		node = ir.FromInt(int64(tag))
	case wire.IsNegFixInt(tag):
		node = ir.FromInt(int64(tag) - 256)
	case wire.IsFixMap(tag):
		node, err = d.mapValue(wire.FixLen(tag))
	case wire.IsFixArray(tag):
		node, err = d.arrayValue(wire.FixLen(tag))
	case wire.IsFixStr(tag):
		node, err = d.strValue(wire.FixLen(tag))
	default:
		node, err = d.tagged(tag, off)
	}
	if err != nil {
		return nil, err
	}
	d.track(node, off)
	return node, nil
}

func (d *Decoder) tagged(tag byte, off int) (*ir.Node, error) {
	switch tag {
	case wire.TagNil:
		return ir.Null(), nil
	case wire.TagFalse:
		return ir.FromBool(false), nil
	case wire.TagTrue:
		return ir.FromBool(true), nil

	case wire.TagUint8, wire.TagUint16, wire.TagUint32, wire.TagUint64:
		// Unsigned wire forms widen through the bit pattern; no
		// sign extension.
		u, err := d.uintField(1 << (tag - wire.TagUint8))
		if err != nil {
			return nil, err
		}
		return ir.FromUint(u), nil

	case wire.TagInt8, wire.TagInt16, wire.TagInt32, wire.TagInt64:
		u, err := d.uintField(1 << (tag - wire.TagInt8))
		if err != nil {
			return nil, err
		}
		switch tag {
		case wire.TagInt8:
			return ir.FromInt(int64(int8(u))), nil
		case wire.TagInt16:
			return ir.FromInt(int64(int16(u))), nil
		case wire.TagInt32:
			return ir.FromInt(int64(int32(u))), nil
		default:
			return ir.FromInt(int64(u)), nil
		}

	case wire.TagFloat32:
		b, err := d.src.ReadFull(4)
		if err != nil {
			return nil, err
		}
		return ir.FromFloat(float64(wire.Float32(b))), nil
	case wire.TagFloat64:
		b, err := d.src.ReadFull(8)
		if err != nil {
			return nil, err
		}
		return ir.FromFloat(wire.Float64(b)), nil

	case wire.TagStr8, wire.TagStr16, wire.TagStr32:
		n, err := d.lenField(1 << (tag - wire.TagStr8))
		if err != nil {
			return nil, err
		}
		return d.strValue(n)
	case wire.TagBin8, wire.TagBin16, wire.TagBin32:
		n, err := d.lenField(1 << (tag - wire.TagBin8))
		if err != nil {
			return nil, err
		}
		return d.binValue(n)

	case wire.TagExt8, wire.TagExt16, wire.TagExt32:
		n, err := d.lenField(1 << (tag - wire.TagExt8))
		if err != nil {
			return nil, err
		}
		return d.extValue(n)
	case wire.TagFixExt1, wire.TagFixExt2, wire.TagFixExt4,
		wire.TagFixExt8, wire.TagFixExt16:
		return d.extValue(1 << (tag - wire.TagFixExt1))

	case wire.TagArray16, wire.TagArray32:
		n, err := d.lenField(2 << (tag - wire.TagArray16))
		if err != nil {
			return nil, err
		}
		return d.arrayValue(n)
	case wire.TagMap16, wire.TagMap32:
		n, err := d.lenField(2 << (tag - wire.TagMap16))
		if err != nil {
			return nil, err
		}
		return d.mapValue(n)

	default:
		return nil, fmt.Errorf("%w: 0x%02X at offset %d", wire.ErrUnknownTag, tag, off)
	}
}

// lenField reads a big-endian unsigned length field of 1, 2 or 4
// bytes.
func (d *Decoder) lenField(width int) (int, error) {
	u, err := d.uintField(width)
	if err != nil {
		return 0, err
	}
	return int(u), nil
}

// uintField reads a big-endian unsigned field of 1, 2, 4 or 8 bytes.
func (d *Decoder) uintField(width int) (uint64, error) {
	b, err := d.src.ReadFull(width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(wire.Uint16(b)), nil
	case 4:
		return uint64(wire.Uint32(b)), nil
	default:
		return wire.Uint64(b), nil
	}
}

func (d *Decoder) strValue(n int) (*ir.Node, error) {
	b, err := d.src.ReadFull(n)
	if err != nil {
		return nil, err
	}
	return ir.FromString(string(b)), nil
}

func (d *Decoder) binValue(n int) (*ir.Node, error) {
	b, err := d.src.ReadFull(n)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = []byte{}
	}
	return ir.FromBytes(b), nil
}

func (d *Decoder) extValue(n int) (*ir.Node, error) {
	t, err := d.src.ReadFull(1)
	if err != nil {
		return nil, err
	}
	b, err := d.src.ReadFull(n)
	if err != nil {
		return nil, err
	}
	return ir.FromExt(int8(t[0]), b), nil
}

func (d *Decoder) arrayValue(n int) (*ir.Node, error) {
	res := &ir.Node{Type: ir.ArrayType}
	for i := 0; i < n; i++ {
		elt, err := d.element()
		if err != nil {
			return nil, err
		}
		elt.Parent = res
		elt.ParentIndex = i
		res.Values = append(res.Values, elt)
	}
	return res, nil
}

// mapValue decodes n key/value pairs in wire order. Duplicate keys
// are preserved as read; the wire is the source of truth for a
// decoded tree.
func (d *Decoder) mapValue(n int) (*ir.Node, error) {
	res := &ir.Node{Type: ir.MapType}
	for i := 0; i < n; i++ {
		key, err := d.element()
		if err != nil {
			return nil, err
		}
		val, err := d.element()
		if err != nil {
			return nil, err
		}
		key.Parent = res
		key.ParentIndex = i
		val.Parent = res
		val.ParentIndex = i
		res.Fields = append(res.Fields, key)
		res.Values = append(res.Values, val)
	}
	return res, nil
}

func (d *Decoder) track(node *ir.Node, off int) {
	if d.opts.positions != nil && node != nil {
		d.opts.positions[node] = off
	}
}
