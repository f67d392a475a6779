package wire

import "io"

// Sink provides byte writing to an io.Writer with absolute offset
// tracking. It assumes no buffering or flush semantics; write errors
// from the underlying writer propagate unchanged.
type Sink struct {
	writer  io.Writer
	offset  int
	scratch [8]byte
}

// NewSink creates a new Sink writing to w.
func NewSink(w io.Writer) *Sink {
	return &Sink{writer: w}
}

// Offset returns the absolute byte offset in the output stream.
func (s *Sink) Offset() int {
	return s.offset
}

func (s *Sink) WriteByte(b byte) error {
	s.scratch[0] = b
	return s.Write(s.scratch[:1])
}

func (s *Sink) Write(d []byte) error {
	n, err := s.writer.Write(d)
	s.offset += n
	return err
}

func (s *Sink) WriteUint16(v uint16) error {
	PutUint16(s.scratch[:2], v)
	return s.Write(s.scratch[:2])
}

func (s *Sink) WriteUint32(v uint32) error {
	PutUint32(s.scratch[:4], v)
	return s.Write(s.scratch[:4])
}

func (s *Sink) WriteUint64(v uint64) error {
	PutUint64(s.scratch[:8], v)
	return s.Write(s.scratch[:8])
}
