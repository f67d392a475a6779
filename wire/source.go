package wire

import (
	"fmt"
	"io"
)

// Source provides buffered byte reading from an io.Reader with
// absolute offset tracking. It distinguishes the clean end of the
// stream (io.EOF from ReadTag, zero bytes consumed) from running out
// of bytes mid-value (ErrTruncated from ReadFull).
type Source struct {
	reader io.Reader

	// Internal buffer management
	buf      []byte
	bufStart int // Absolute offset where buf starts in stream
	bufPos   int // Current position within buf

	eof        bool
	bufferSize int
}

const defaultBufferSize = 4096

// A cap on single allocations while reading a length-prefixed
// payload. A hostile header may claim up to 4 GiB; memory is grown
// chunkwise as bytes actually arrive.
const maxReadChunk = 1 << 20

// NewSource creates a new Source reading from r.
func NewSource(r io.Reader) *Source {
	return &Source{
		reader:     r,
		bufferSize: defaultBufferSize,
	}
}

// NewBytesSource creates a Source over an in-memory byte slice.
func NewBytesSource(d []byte) *Source {
	return &Source{buf: d, eof: true, bufferSize: defaultBufferSize}
}

// Offset returns the absolute offset of the next unread byte.
func (s *Source) Offset() int {
	return s.bufStart + s.bufPos
}

// ReadTag reads one byte. If the source is cleanly exhausted before
// the byte is available, it returns io.EOF with nothing consumed.
func (s *Source) ReadTag() (byte, error) {
	if err := s.ensure(); err != nil {
		return 0, err
	}
	b := s.buf[s.bufPos]
	s.bufPos++
	return b, nil
}

// ReadFull reads exactly n bytes, failing with ErrTruncated when
// fewer are available. The returned slice is owned by the caller.
func (s *Source) ReadFull(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	res := make([]byte, 0, min(n, maxReadChunk))
	for len(res) < n {
		if err := s.ensure(); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
					ErrTruncated, n, s.Offset()-len(res), len(res))
			}
			return nil, err
		}
		take := min(n-len(res), len(s.buf)-s.bufPos)
		res = append(res, s.buf[s.bufPos:s.bufPos+take]...)
		s.bufPos += take
	}
	return res, nil
}

// ensure guarantees at least one unread byte in the buffer, reading
// from the underlying reader as needed. Returns io.EOF when the
// stream is exhausted.
func (s *Source) ensure() error {
	for s.bufPos >= len(s.buf) {
		if s.eof {
			return io.EOF
		}
		if err := s.fillBuffer(); err != nil {
			if err == io.EOF {
				s.eof = true
				continue
			}
			return err
		}
	}
	return nil
}

// fillBuffer reads more data into the buffer, compacting consumed
// bytes first when the buffer has grown past twice its nominal size.
func (s *Source) fillBuffer() error {
	if s.bufPos > s.bufferSize && len(s.buf) > s.bufferSize*2 {
		remaining := s.buf[s.bufPos:]
		copy(s.buf, remaining)
		s.buf = s.buf[:len(remaining)]
		s.bufStart += s.bufPos
		s.bufPos = 0
	}
	readBuf := make([]byte, s.bufferSize)
	n, err := s.reader.Read(readBuf)
	if n > 0 {
		s.buf = append(s.buf, readBuf[:n]...)
		return nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	return err
}
