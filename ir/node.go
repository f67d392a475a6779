package ir

import (
	"maps"
	"slices"
)

// Node is one value in a decoded or constructed tree. It is a tagged
// union: Type selects which payload fields are meaningful.
//
// For MapType nodes, Fields[i] is the key for the value at Values[i],
// so there are always the same number of fields as values. Keys may be
// nodes of any type, including containers. Insertion order is wire
// order and is preserved.
//
// For ArrayType nodes, Fields is nil and Values holds the elements in
// order.
//
// Int64 carries the format's unsigned range by bit pattern: unsigned
// wire values in [2^63, 2^64) alias negative signed values. Use
// FromUint to construct such nodes and Uint64() to read them back.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int

	Bool    bool
	Int64   int64
	Float64 float64
	String  string
	Bytes   []byte
	ExtTag  int8

	Fields []*Node
	Values []*Node
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntType, Int64: v}
}

// FromUint stores v through the same bit pattern as Int64; values
// above 2^63-1 alias negative signed values.
func FromUint(v uint64) *Node {
	return &Node{Type: IntType, Int64: int64(v)}
}

func FromFloat(f float64) *Node {
	return &Node{Type: FloatType, Float64: f}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromBytes(d []byte) *Node {
	return &Node{Type: BinaryType, Bytes: d}
}

// FromExt constructs an application-defined typed extension value.
func FromExt(tag int8, payload []byte) *Node {
	return &Node{Type: ExtType, ExtTag: tag, Bytes: payload}
}

// Uint64 reads the integer payload back as unsigned, reversing the
// bit-pattern aliasing of FromUint.
func (y *Node) Uint64() uint64 {
	return uint64(y.Int64)
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{Type: ArrayType}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{}
	return FromKeyValsAt(res, kvs)
}

func FromKeyValsAt(res *Node, kvs []KeyVal) *Node {
	res.Type = MapType
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		if kv.Key == nil {
			kv.Key = Null()
		}
		kv.Key.Parent = res
		kv.Key.ParentIndex = i
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

// FromMap builds a string-keyed map node with keys in sorted order,
// for programmatic construction. Decoded maps preserve wire order
// instead.
func FromMap(yMap map[string]*Node) *Node {
	res := &Node{Type: MapType}
	res.Fields = make([]*Node, len(yMap))
	res.Values = make([]*Node, len(yMap))
	keys := slices.Sorted(maps.Keys(yMap))
	for i, key := range keys {
		y := yMap[key]
		y.Parent = res
		y.ParentIndex = i
		yField := &Node{
			Parent:      res,
			ParentIndex: i,
			Type:        StringType,
			String:      key,
		}
		res.Fields[i] = yField
		res.Values[i] = y
	}
	return res
}

// Get returns the value for a string key, or nil.
func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		f := y.Fields[i]
		if f.Type == StringType && f.String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Set inserts or replaces a key/value pair in a map node. An existing
// equal key keeps its position and its value is replaced; otherwise
// the pair is appended. Last write wins.
func (y *Node) Set(key, val *Node) {
	for i := range y.Fields {
		if Compare(y.Fields[i], key) == 0 {
			val.Parent = y
			val.ParentIndex = i
			y.Values[i] = val
			return
		}
	}
	i := len(y.Fields)
	key.Parent = y
	key.ParentIndex = i
	val.Parent = y
	val.ParentIndex = i
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, val)
}

// Len returns the number of elements (array) or pairs (map).
func (y *Node) Len() int {
	return len(y.Values)
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.Type = y.Type
	dst.Bool = y.Bool
	dst.Int64 = y.Int64
	dst.Float64 = y.Float64
	dst.String = y.String
	dst.ExtTag = y.ExtTag
	if y.Bytes != nil {
		dst.Bytes = slices.Clone(y.Bytes)
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			dstI := &Node{}
			yf.CloneTo(dstI)
			dstI.Parent = dst
			dstI.ParentIndex = i
			dst.Fields[i] = dstI
		}
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dstI := &Node{}
			yv.CloneTo(dstI)
			dstI.Parent = dst
			dstI.ParentIndex = i
			dst.Values[i] = dstI
		}
	}
	return dst
}

// Visit walks the tree depth first. f is called before and after each
// node's children; returning false from the pre call skips them. Map
// keys are visited before their values.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for i := range y.Values {
			if y.Fields != nil {
				if err := y.Fields[i].Visit(f); err != nil {
					return err
				}
			}
			if err := y.Values[i].Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}
