package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	mpatch "github.com/sibircevs/mpack/patch"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	patchDoc, err := readFile(args[0])
	if err != nil {
		return err
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
		res, err := mpatch.Apply(doc, patchDoc)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", fileName(file), err)
		}
		if err := cfg.writeDoc(cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}
