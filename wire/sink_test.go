package wire

import (
	"bytes"
	"testing"
)

func TestSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)
	if err := s.WriteByte(0xC0); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteUint16(0x0102); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteUint32(0x03040506); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteUint64(0x0708090A0B0C0D0E); err != nil {
		t.Fatal(err)
	}
	if err := s.Write([]byte{0xFF}); err != nil {
		t.Fatal(err)
	}
	expected := []byte{
		0xC0,
		0x01, 0x02,
		0x03, 0x04, 0x05, 0x06,
		0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E,
		0xFF,
	}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("sink output = % X, want % X", buf.Bytes(), expected)
	}
	if s.Offset() != len(expected) {
		t.Errorf("Offset() = %d, want %d", s.Offset(), len(expected))
	}
}

func TestBytesRoundTrip(t *testing.T) {
	b := make([]byte, 8)
	PutUint16(b, 0xBEEF)
	if Uint16(b) != 0xBEEF {
		t.Errorf("Uint16 = 0x%04X", Uint16(b))
	}
	PutUint32(b, 0xDEADBEEF)
	if Uint32(b) != 0xDEADBEEF {
		t.Errorf("Uint32 = 0x%08X", Uint32(b))
	}
	PutUint64(b, 0xDEADBEEFCAFEF00D)
	if Uint64(b) != 0xDEADBEEFCAFEF00D {
		t.Errorf("Uint64 = 0x%016X", Uint64(b))
	}
	PutFloat64(b, 1.5)
	if Float64(b) != 1.5 {
		t.Errorf("Float64 = %g", Float64(b))
	}
	PutFloat32(b, -2.25)
	if Float32(b) != -2.25 {
		t.Errorf("Float32 = %g", Float32(b))
	}
}
