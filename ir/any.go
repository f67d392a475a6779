package ir

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// ErrNativeValue reports a Go value that FromAny cannot represent.
var ErrNativeValue = errors.New("unsupported native value")

// ToAny converts a node tree to plain Go values (nil, bool, int64,
// float64, string, []byte, []any, map[string]any) for JSON/YAML
// transcoding and expression evaluation.
//
// The conversion is lossy on purpose: map insertion order and
// duplicate keys are not representable in a Go map, non-string map
// keys are rendered through a canonical string form, and extension
// values become a two-field map.
func ToAny(y *Node) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case IntType:
		return y.Int64
	case FloatType:
		return y.Float64
	case StringType:
		return y.String
	case BinaryType:
		return y.Bytes
	case ExtType:
		return map[string]any{
			"ext":     int64(y.ExtTag),
			"payload": y.Bytes,
		}
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = ToAny(v)
		}
		return res
	case MapType:
		res := make(map[string]any, len(y.Fields))
		for i := range y.Fields {
			res[KeyString(y.Fields[i])] = ToAny(y.Values[i])
		}
		return res
	}
	return nil
}

// KeyString renders a map key in canonical text form.
func KeyString(y *Node) string {
	switch y.Type {
	case StringType:
		return y.String
	case IntType:
		return strconv.FormatInt(y.Int64, 10)
	case FloatType:
		return strconv.FormatFloat(y.Float64, 'g', -1, 64)
	case BoolType:
		return strconv.FormatBool(y.Bool)
	case NullType:
		return "null"
	case BinaryType, ExtType:
		return fmt.Sprintf("%x", y.Bytes)
	default:
		return fmt.Sprintf("%v", ToAny(y))
	}
}

// FromAny converts plain Go values to a node tree. It accepts the
// vocabulary produced by encoding/json, goccy/go-yaml, and expr
// results. Map keys are sorted for deterministic output.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return FromUint(uint64(x)), nil
	case uint8:
		return FromUint(uint64(x)), nil
	case uint16:
		return FromUint(uint64(x)), nil
	case uint32:
		return FromUint(uint64(x)), nil
	case uint64:
		return FromUint(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		// Integers stay integers so they reach the narrow wire forms.
		if i, err := x.Int64(); err == nil {
			return FromInt(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %q", ErrNativeValue, x.String())
		}
		return FromFloat(f), nil
	case string:
		return FromString(x), nil
	case []byte:
		return FromBytes(x), nil
	case []any:
		elts := make([]*Node, len(x))
		for i, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			elts[i] = n
		}
		return FromSlice(elts), nil
	case map[string]any:
		keys := slices.Sorted(maps.Keys(x))
		kvs := make([]KeyVal, len(keys))
		for i, key := range keys {
			n, err := FromAny(x[key])
			if err != nil {
				return nil, err
			}
			kvs[i] = KeyVal{Key: FromString(key), Val: n}
		}
		return FromKeyVals(kvs), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNativeValue, v)
	}
}
