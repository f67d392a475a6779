package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"

	"github.com/sibircevs/mpack/format"
	"github.com/sibircevs/mpack/ir"
)

type MainConfig struct {
	M bool `cli:"name=m aliases=msgpack desc='do i/o in msgpack'"`
	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) inFmt(file string) format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	switch {
	case cfg.M:
		return format.MsgpackFormat
	case cfg.J:
		return format.JSONFormat
	case cfg.Y:
		return format.YAMLFormat
	}
	if f, ok := suffixFormat(file); ok {
		return f
	}
	return format.MsgpackFormat
}

func (cfg *MainConfig) outFmt() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	switch {
	case cfg.M:
		return format.MsgpackFormat
	case cfg.J:
		return format.JSONFormat
	case cfg.Y:
		return format.YAMLFormat
	}
	if f, ok := suffixFormat(cfg.Out); ok {
		return f
	}
	return format.JSONFormat
}

func suffixFormat(file string) (format.Format, bool) {
	switch filepath.Ext(file) {
	case ".mp", ".msgpack":
		return format.MsgpackFormat, true
	case ".json":
		return format.JSONFormat, true
	case ".yaml", ".yml":
		return format.YAMLFormat, true
	}
	return format.MsgpackFormat, false
}

func (cfg *MainConfig) readDoc(file string) (*ir.Node, error) {
	d, err := readFile(file)
	if err != nil {
		return nil, err
	}
	node, err := format.Decode(d, cfg.inFmt(file))
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", fileName(file), err)
	}
	return node, nil
}

func (cfg *MainConfig) writeDoc(w io.Writer, node *ir.Node) error {
	return format.Encode(node, w, cfg.outFmt())
}

func readFile(file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(os.Stdin)
	}
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	return d, nil
}

func fileName(file string) string {
	if file == "-" {
		return "stdin"
	}
	return file
}

type ConvConfig struct {
	*MainConfig

	Conv *cli.Command
}

type ViewConfig struct {
	*MainConfig

	Color bool `cli:"name=color desc='force color output'"`

	View *cli.Command
}

type EvalConfig struct {
	*MainConfig

	File bool `cli:"name=f desc='read the expression from a file'"`

	Eval *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig

	Patch *cli.Command
}
