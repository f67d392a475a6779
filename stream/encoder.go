package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/sibircevs/mpack/encode"
)

// ErrState reports a structural misuse of the streaming encoder:
// writing past a container's declared length, or closing a container
// that is not complete or not open.
var ErrState = errors.New("stream state error")

// Encoder provides explicit container management for streaming
// encoding. Container lengths are declared up front (the wire format
// is length-prefixed), and the encoder validates that exactly the
// declared number of values is written.
type Encoder struct {
	enc   *encode.Encoder
	stack []frame
}

// NewEncoder creates a new Encoder writing to w.
func NewEncoder(w io.Writer, opts ...encode.EncodeOption) *Encoder {
	return &Encoder{enc: encode.NewEncoder(w, opts...)}
}

// Depth returns the current container nesting depth.
func (e *Encoder) Depth() int {
	return len(e.stack)
}

// Offset returns the absolute byte offset in the output stream.
func (e *Encoder) Offset() int {
	return e.enc.Offset()
}

// Remaining returns how many values the innermost open container
// still expects, or -1 at the top level.
func (e *Encoder) Remaining() int {
	if n := len(e.stack); n > 0 {
		return e.stack[n-1].remaining
	}
	return -1
}

// BeginArray opens an array of exactly n elements.
func (e *Encoder) BeginArray(n int) error {
	if err := e.openValue(); err != nil {
		return err
	}
	if err := e.enc.WriteArrayHeader(n); err != nil {
		return err
	}
	e.stack = append(e.stack, frame{end: EventEndArray, remaining: n})
	return nil
}

// BeginMap opens a map of exactly n key/value pairs. Each key must be
// immediately followed by its value.
func (e *Encoder) BeginMap(n int) error {
	if err := e.openValue(); err != nil {
		return err
	}
	if err := e.enc.WriteMapHeader(n); err != nil {
		return err
	}
	e.stack = append(e.stack, frame{end: EventEndMap, remaining: 2 * n})
	return nil
}

func (e *Encoder) EndArray() error { return e.end(EventEndArray) }
func (e *Encoder) EndMap() error   { return e.end(EventEndMap) }

func (e *Encoder) end(kind EventType) error {
	n := len(e.stack)
	if n == 0 {
		return fmt.Errorf("%w: %s at top level", ErrState, kind)
	}
	top := e.stack[n-1]
	if top.end != kind {
		return fmt.Errorf("%w: %s closes a container opened as %s",
			ErrState, kind, top.end)
	}
	if top.remaining != 0 {
		return fmt.Errorf("%w: %s with %d values outstanding",
			ErrState, kind, top.remaining)
	}
	e.stack = e.stack[:n-1]
	e.closeValue()
	return nil
}

func (e *Encoder) WriteNil() error {
	return e.scalar(e.enc.WriteNil)
}

func (e *Encoder) WriteBool(v bool) error {
	return e.scalar(func() error { return e.enc.WriteBool(v) })
}

func (e *Encoder) WriteInt(v int64) error {
	return e.scalar(func() error { return e.enc.WriteInt(v) })
}

func (e *Encoder) WriteUint(v uint64) error {
	return e.scalar(func() error { return e.enc.WriteUint(v) })
}

func (e *Encoder) WriteFloat32(f float32) error {
	return e.scalar(func() error { return e.enc.WriteFloat32(f) })
}

func (e *Encoder) WriteFloat64(f float64) error {
	return e.scalar(func() error { return e.enc.WriteFloat64(f) })
}

func (e *Encoder) WriteString(s string) error {
	return e.scalar(func() error { return e.enc.WriteString(s) })
}

func (e *Encoder) WriteBinary(d []byte) error {
	return e.scalar(func() error { return e.enc.WriteBinary(d) })
}

func (e *Encoder) WriteExt(tag int8, payload []byte) error {
	return e.scalar(func() error { return e.enc.WriteExt(tag, payload) })
}

func (e *Encoder) scalar(write func() error) error {
	if err := e.openValue(); err != nil {
		return err
	}
	if err := write(); err != nil {
		return err
	}
	e.closeValue()
	return nil
}

// openValue checks that the innermost container can accept another
// value. openValue must be called before the value bytes are written.
func (e *Encoder) openValue() error {
	if n := len(e.stack); n > 0 && e.stack[n-1].remaining == 0 {
		return fmt.Errorf("%w: container is full, expected %s",
			ErrState, e.stack[n-1].end)
	}
	return nil
}

func (e *Encoder) closeValue() {
	if n := len(e.stack); n > 0 {
		e.stack[n-1].remaining--
	}
}
