package wire

import "errors"

var (
	// ErrTruncated reports that the byte source was exhausted in the
	// middle of a value. It is distinct from the clean end of input,
	// which surfaces as io.EOF with zero bytes consumed.
	ErrTruncated = errors.New("truncated input")

	// ErrUnknownTag reports a tag byte matching none of the defined
	// wire forms.
	ErrUnknownTag = errors.New("unknown tag")
)
