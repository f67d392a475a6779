package stream

import (
	"fmt"
	"io"

	"github.com/sibircevs/mpack/wire"
)

// Decoder provides structural event-based decoding: one wire element
// per ReadEvent call, with container boundaries reported as
// Begin/End events instead of recursion. No value trees are built.
type Decoder struct {
	src   *wire.Source
	stack []frame
}

// frame tracks one open container: the event type that closes it and
// the number of values still expected (map pairs count twice).
type frame struct {
	end       EventType
	remaining int
}

// NewDecoder creates a new Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{src: wire.NewSource(r)}
}

// NewBytesDecoder creates a Decoder over an in-memory byte slice.
func NewBytesDecoder(d []byte) *Decoder {
	return &Decoder{src: wire.NewBytesSource(d)}
}

// Depth returns the current container nesting depth.
func (d *Decoder) Depth() int {
	return len(d.stack)
}

// Offset returns the absolute offset of the next unread byte.
func (d *Decoder) Offset() int {
	return d.src.Offset()
}

// ReadEvent reads the next structural event from the stream. End
// events are synthesized when an open container has consumed its
// declared element count. At the top level a cleanly exhausted source
// returns (nil, io.EOF); exhaustion inside a container is
// wire.ErrTruncated.
func (d *Decoder) ReadEvent() (*Event, error) {
	if n := len(d.stack); n > 0 && d.stack[n-1].remaining == 0 {
		top := d.stack[n-1]
		d.stack = d.stack[:n-1]
		d.closeValue()
		return &Event{Type: top.end, Offset: d.src.Offset()}, nil
	}

	off := d.src.Offset()
	tag, err := d.src.ReadTag()
	if err == io.EOF {
		if len(d.stack) > 0 {
			return nil, fmt.Errorf("%w: value tag at offset %d", wire.ErrTruncated, off)
		}
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}

	ev, err := d.event(tag, off)
	if err != nil {
		return nil, err
	}
	ev.Offset = off
	switch ev.Type {
	case EventBeginArray:
		d.stack = append(d.stack, frame{end: EventEndArray, remaining: ev.Len})
	case EventBeginMap:
		d.stack = append(d.stack, frame{end: EventEndMap, remaining: 2 * ev.Len})
	default:
		d.closeValue()
	}
	return ev, nil
}

// closeValue accounts a completed value toward the enclosing
// container, if any.
func (d *Decoder) closeValue() {
	if n := len(d.stack); n > 0 {
		d.stack[n-1].remaining--
	}
}

func (d *Decoder) event(tag byte, off int) (*Event, error) {
	switch {
	case wire.IsPosFixInt(tag):
		return &Event{Type: EventInt, Int: int64(tag)}, nil
	case wire.IsNegFixInt(tag):
		return &Event{Type: EventInt, Int: int64(tag) - 256}, nil
	case wire.IsFixMap(tag):
		return &Event{Type: EventBeginMap, Len: wire.FixLen(tag)}, nil
	case wire.IsFixArray(tag):
		return &Event{Type: EventBeginArray, Len: wire.FixLen(tag)}, nil
	case wire.IsFixStr(tag):
		return d.strEvent(wire.FixLen(tag))
	}

	switch tag {
	case wire.TagNil:
		return &Event{Type: EventNil}, nil
	case wire.TagFalse:
		return &Event{Type: EventBool, Bool: false}, nil
	case wire.TagTrue:
		return &Event{Type: EventBool, Bool: true}, nil

	case wire.TagUint8, wire.TagUint16, wire.TagUint32, wire.TagUint64:
		u, err := d.uintField(1 << (tag - wire.TagUint8))
		if err != nil {
			return nil, err
		}
		return &Event{Type: EventInt, Int: int64(u)}, nil
	case wire.TagInt8, wire.TagInt16, wire.TagInt32, wire.TagInt64:
		u, err := d.uintField(1 << (tag - wire.TagInt8))
		if err != nil {
			return nil, err
		}
		var v int64
		switch tag {
		case wire.TagInt8:
			v = int64(int8(u))
		case wire.TagInt16:
			v = int64(int16(u))
		case wire.TagInt32:
			v = int64(int32(u))
		default:
			v = int64(u)
		}
		return &Event{Type: EventInt, Int: v}, nil

	case wire.TagFloat32:
		b, err := d.src.ReadFull(4)
		if err != nil {
			return nil, err
		}
		return &Event{Type: EventFloat, Float: float64(wire.Float32(b))}, nil
	case wire.TagFloat64:
		b, err := d.src.ReadFull(8)
		if err != nil {
			return nil, err
		}
		return &Event{Type: EventFloat, Float: wire.Float64(b)}, nil

	case wire.TagStr8, wire.TagStr16, wire.TagStr32:
		n, err := d.uintField(1 << (tag - wire.TagStr8))
		if err != nil {
			return nil, err
		}
		return d.strEvent(int(n))
	case wire.TagBin8, wire.TagBin16, wire.TagBin32:
		n, err := d.uintField(1 << (tag - wire.TagBin8))
		if err != nil {
			return nil, err
		}
		b, err := d.src.ReadFull(int(n))
		if err != nil {
			return nil, err
		}
		return &Event{Type: EventBinary, Bytes: b}, nil

	case wire.TagExt8, wire.TagExt16, wire.TagExt32:
		n, err := d.uintField(1 << (tag - wire.TagExt8))
		if err != nil {
			return nil, err
		}
		return d.extEvent(int(n))
	case wire.TagFixExt1, wire.TagFixExt2, wire.TagFixExt4,
		wire.TagFixExt8, wire.TagFixExt16:
		return d.extEvent(1 << (tag - wire.TagFixExt1))

	case wire.TagArray16, wire.TagArray32:
		n, err := d.uintField(2 << (tag - wire.TagArray16))
		if err != nil {
			return nil, err
		}
		return &Event{Type: EventBeginArray, Len: int(n)}, nil
	case wire.TagMap16, wire.TagMap32:
		n, err := d.uintField(2 << (tag - wire.TagMap16))
		if err != nil {
			return nil, err
		}
		return &Event{Type: EventBeginMap, Len: int(n)}, nil

	default:
		return nil, fmt.Errorf("%w: 0x%02X at offset %d", wire.ErrUnknownTag, tag, off)
	}
}

func (d *Decoder) strEvent(n int) (*Event, error) {
	b, err := d.src.ReadFull(n)
	if err != nil {
		return nil, err
	}
	return &Event{Type: EventString, String: string(b)}, nil
}

func (d *Decoder) extEvent(n int) (*Event, error) {
	t, err := d.src.ReadFull(1)
	if err != nil {
		return nil, err
	}
	b, err := d.src.ReadFull(n)
	if err != nil {
		return nil, err
	}
	return &Event{Type: EventExt, ExtTag: int8(t[0]), Bytes: b}, nil
}

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
