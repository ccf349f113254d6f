package main

import (
	"fmt"

	"github.com/signadot/go-kdl/encode"
	"github.com/signadot/go-kdl/ir"
	kpatch "github.com/signadot/go-kdl/patch"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires 2 arguments, a patch and a file to which to apply it", cli.ErrUsage)
	}
	var p []byte
	if cfg.String {
		p = []byte(args[0])
	} else {
		p, err = readInput(cc, args[0])
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	target, err := getDocFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	var res *ir.Document
	if cfg.Merge {
		res, err = kpatch.Merge(target, p)
	} else {
		var jp *kpatch.Patch
		jp, err = kpatch.Decode(p)
		if err == nil {
			res, err = jp.Apply(target)
		}
	}
	if err != nil {
		return fmt.Errorf("error patching %s: %w", args[1], err)
	}
	if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
