package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/sibircevs/mpack/libdiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two documents", cli.ErrUsage)
	}
	from, err := cfg.readDoc(args[0])
	if err != nil {
		return err
	}
	to, err := cfg.readDoc(args[1])
	if err != nil {
		return err
	}
	if cfg.Reverse {
		from, to = to, from
	}
	res := libdiff.Diff(from, to)
	if res == nil {
		return nil
	}
	return cfg.writeDoc(cc.Out, res)
}
