package encode

import "errors"

// ErrUnsupportedValue reports a node that is none of the recognized
// value kinds. The encoder never falls back to an opaque blob.
var ErrUnsupportedValue = errors.New("unsupported value")
