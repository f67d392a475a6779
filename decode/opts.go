package decode

import "github.com/sibircevs/mpack/ir"

type decodeOpts struct {
	positions map[*ir.Node]int
}

type DecodeOption func(*decodeOpts)

// DecodePositions records the starting byte offset of every decoded
// node into m. This allows consumers (like the annotated dump) to map
// nodes back to the stream.
func DecodePositions(m map[*ir.Node]int) DecodeOption {
	return func(o *decodeOpts) { o.positions = m }
}
