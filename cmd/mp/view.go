package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/sibircevs/mpack/decode"
	"github.com/sibircevs/mpack/ir"
	"github.com/sibircevs/mpack/wire"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	vc := viewColors(cfg, cc.Out)
	for _, file := range args {
		d, err := readFile(file)
		if err != nil {
			return err
		}
		if err := viewDoc(cc.Out, d, vc); err != nil {
			return fmt.Errorf("error viewing %s: %w", fileName(file), err)
		}
	}
	return nil
}

func viewDoc(w io.Writer, d []byte, vc *viewColorSet) error {
	positions := map[*ir.Node]int{}
	nodes, err := decode.ParseAll(d, decode.DecodePositions(positions))
	if err != nil {
		return err
	}
	for _, node := range nodes {
		err := node.Visit(func(y *ir.Node, isPost bool) (bool, error) {
			if isPost {
				return true, nil
			}
			off := positions[y]
			depth := 0
			for p := y.Parent; p != nil; p = p.Parent {
				depth++
			}
			fmt.Fprintf(w, "%s  %s%s %s\n",
				vc.offset("%06x", off),
				indent(depth),
				vc.tag("%-10s", wire.TagName(d[off])),
				viewValue(y, vc))
			return true, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func viewValue(y *ir.Node, vc *viewColorSet) string {
	switch y.Type {
	case ir.NullType:
		return vc.num("nil")
	case ir.BoolType:
		return vc.num("%t", y.Bool)
	case ir.IntType:
		return vc.num("%d", y.Int64)
	case ir.FloatType:
		return vc.num("%g", y.Float64)
	case ir.StringType:
		return vc.str("%s", strconv.Quote(clip(y.String, 40)))
	case ir.BinaryType:
		return vc.str("bin(%d bytes)", len(y.Bytes))
	case ir.ExtType:
		return vc.str("ext(%d, %d bytes)", y.ExtTag, len(y.Bytes))
	case ir.ArrayType:
		return vc.container("array[%d]", len(y.Values))
	case ir.MapType:
		return vc.container("map[%d]", len(y.Fields))
	}
	return ""
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func indent(depth int) string {
	const pad = "                                "
	n := 2 * depth
	if n > len(pad) {
		n = len(pad)
	}
	return pad[:n]
}

type viewColorSet struct {
	offset    func(format string, a ...any) string
	tag       func(format string, a ...any) string
	str       func(format string, a ...any) string
	num       func(format string, a ...any) string
	container func(format string, a ...any) string
}

func viewColors(cfg *ViewConfig, w io.Writer) *viewColorSet {
	on := cfg.Color
	if !on {
		if f, ok := w.(*os.File); ok {
			on = isatty.IsTerminal(f.Fd())
		}
	}
	if !on {
		return &viewColorSet{
			offset:    fmt.Sprintf,
			tag:       fmt.Sprintf,
			str:       fmt.Sprintf,
			num:       fmt.Sprintf,
			container: fmt.Sprintf,
		}
	}
	return &viewColorSet{
		offset:    color.New(color.Faint).SprintfFunc(),
		tag:       color.New(color.FgYellow).SprintfFunc(),
		str:       color.New(color.FgGreen).SprintfFunc(),
		num:       color.New(color.FgCyan).SprintfFunc(),
		container: color.New(color.FgMagenta, color.Bold).SprintfFunc(),
	}
}
