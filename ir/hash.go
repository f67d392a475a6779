package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the node. Equal nodes hash equally
// within a process; the seed is fresh per process start.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}

	var h maphash.Hash
	h.SetSeed(hashSeed)
	n.hashTo(&h)
	return h.Sum64()
}

func (n *Node) hashTo(h *maphash.Hash) {
	h.WriteByte(byte(n.Type))

	switch n.Type {
	case NullType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case IntType:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(n.Int64))
		h.Write(b[:])
	case FloatType:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(n.Float64))
		h.Write(b[:])
	case StringType:
		h.WriteString(n.String)
	case BinaryType:
		h.Write(n.Bytes)
	case ExtType:
		h.WriteByte(byte(n.ExtTag))
		h.Write(n.Bytes)
	case ArrayType:
		for _, v := range n.Values {
			v.hashTo(h)
		}
	case MapType:
		for i := range n.Fields {
			n.Fields[i].hashTo(h)
			n.Values[i].hashTo(h)
		}
	}
}
