package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/sibircevs/mpack/eval"
)

func mpEval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: eval requires an expression", cli.ErrUsage)
	}
	src := args[0]
	if cfg.File {
		d, err := readFile(src)
		if err != nil {
			return err
		}
		src = string(d)
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		doc, err := cfg.readDoc(file)
		if err != nil {
			return err
		}
		res, err := eval.Eval(doc, src)
		if err != nil {
			return fmt.Errorf("error evaluating %s: %w", fileName(file), err)
		}
		if err := cfg.writeDoc(cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}
