package main

import (
	"github.com/scott-cotton/cli"
)

func conv(cfg *ConvConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Conv.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		node, err := cfg.readDoc(file)
		if err != nil {
			return err
		}
		if err := cfg.writeDoc(cc.Out, node); err != nil {
			return err
		}
	}
	return nil
}
