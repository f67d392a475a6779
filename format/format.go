// Package format names the interchange formats the tooling layer
// reads and writes, and bridges IR trees to and from them. The
// msgpack core itself has no dependency on this package.
package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/sibircevs/mpack/decode"
	"github.com/sibircevs/mpack/encode"
	"github.com/sibircevs/mpack/ir"
)

type Format int

const (
	MsgpackFormat Format = iota
	JSONFormat
	YAMLFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"m":       MsgpackFormat,
		"mp":      MsgpackFormat,
		"msgpack": MsgpackFormat,
		"j":       JSONFormat,
		"json":    JSONFormat,
		"y":       YAMLFormat,
		"yaml":    YAMLFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case MsgpackFormat:
		return []byte("msgpack"), nil
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsMsgpack() bool { return f == MsgpackFormat }
func (f Format) IsJSON() bool    { return f == JSONFormat }
func (f Format) IsYAML() bool    { return f == YAMLFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case MsgpackFormat:
		return ".msgpack"
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	default:
		return ""
	}
}

// Decode reads one document in format f into an IR tree. JSON and
// YAML come in through the native-value bridge and so carry that
// bridge's vocabulary, not wire-level type fidelity.
func Decode(d []byte, f Format) (*ir.Node, error) {
	switch f {
	case MsgpackFormat:
		return decode.Parse(d)
	case JSONFormat:
		var v any
		dec := json.NewDecoder(bytes.NewReader(d))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return ir.FromAny(v)
	case YAMLFormat:
		var v any
		if err := yaml.Unmarshal(d, &v); err != nil {
			return nil, err
		}
		return ir.FromAny(v)
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, f)
	}
}

// Encode writes node to w in format f.
func Encode(node *ir.Node, w io.Writer, f Format) error {
	switch f {
	case MsgpackFormat:
		return encode.Encode(node, w)
	case JSONFormat:
		d, err := json.MarshalIndent(ir.ToAny(node), "", "  ")
		if err != nil {
			return err
		}
		d = append(d, '\n')
		_, err = w.Write(d)
		return err
	case YAMLFormat:
		d, err := yaml.Marshal(ir.ToAny(node))
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	default:
		return fmt.Errorf("%w: %d", ErrBadFormat, f)
	}
}
