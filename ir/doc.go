// Package ir provides the in-memory representation of MessagePack
// values.
//
// # Overview
//
// All values, whether decoded from a byte stream or built
// programmatically for encoding, are represented as ir.Node trees.
// The IR is purely semantic: it carries no wire-level information
// such as which integer width a value was read from.
//
// # Node Structure
//
// A Node represents a single value. Nodes can be:
//
//   - Atomic types: null, boolean, integer, float, string, binary
//   - Composite types: map (key-value pairs), array (ordered list)
//   - Extension: an application-defined type tag plus opaque payload
//
// The IR works as a recursive tagged union structure, where values are
// placed in fields depending on the node type. Each node maintains
// parent-child relationships, allowing navigation through the tree.
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	flag := ir.FromBool(true)
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "key": ir.FromString("value"),
//	})
//	arr := ir.FromSlice([]*ir.Node{
//	    ir.FromInt(1),
//	    ir.FromInt(2),
//	})
//
// # Structure Constraints
//
// For MapType nodes, Fields[i] is the key for the value at Values[i],
// so there are always the same number of fields as values. Keys may be
// nodes of any type. Insertion order is preserved; Set implements
// last-write-wins replacement for duplicate keys.
//
// Integers are 64-bit signed. The format's unsigned range up to
// 2^64-1 is carried through the same bit pattern: construct with
// FromUint and read back with Uint64.
//
// # Comparison and Hashing
//
// Nodes have a total order and can be hashed:
//
//	equal := ir.Compare(a, b) == 0
//	h := node.Hash()
//
// # Thread Safety
//
// Node structures are not thread-safe. If you need to access nodes
// from multiple goroutines, you must synchronize access yourself or
// clone nodes for each goroutine.
//
// # Related Packages
//
//   - github.com/sibircevs/mpack/decode - decodes byte streams into IR nodes
//   - github.com/sibircevs/mpack/encode - encodes IR nodes to bytes
//   - github.com/sibircevs/mpack/wire - tag table and byte-level I/O
package ir
