package main

import (
	"fmt"

	"github.com/signadot/go-kdl/convert"
	"github.com/signadot/go-kdl/encode"
	"github.com/signadot/go-kdl/ir"

	"github.com/scott-cotton/cli"
)

func convertCmd(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	var from func([]byte) (*ir.Document, error)
	switch cfg.From {
	case "data", "d":
		from = convert.FromData
	case "json", "j":
		from = convert.FromJSON
	case "yaml", "y":
		from = convert.FromYAML
	default:
		return fmt.Errorf("%w: unknown input %q", cli.ErrUsage, cfg.From)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		d, err := readInput(cc, file)
		if err != nil {
			return err
		}
		doc, err := from(d)
		if err != nil {
			return fmt.Errorf("error converting %s: %w", file, err)
		}
		if err := encode.Encode(doc, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}
