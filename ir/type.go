package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	IntType
	FloatType
	StringType
	BinaryType
	ArrayType
	MapType
	ExtType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:   "Null",
		BoolType:   "Bool",
		IntType:    "Int",
		FloatType:  "Float",
		StringType: "String",
		BinaryType: "Binary",
		ArrayType:  "Array",
		MapType:    "Map",
		ExtType:    "Ext",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":   NullType,
		"Bool":   BoolType,
		"Int":    IntType,
		"Float":  FloatType,
		"String": StringType,
		"Binary": BinaryType,
		"Array":  ArrayType,
		"Map":    MapType,
		"Ext":    ExtType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		IntType,
		FloatType,
		StringType,
		BinaryType,
		ArrayType,
		MapType,
		ExtType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, MapType:
		return false
	default:
		return true
	}
}
