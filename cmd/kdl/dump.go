package main

import (
	"fmt"
	"path/filepath"

	"github.com/signadot/go-kdl/convert"
	"github.com/signadot/go-kdl/format"
	"github.com/signadot/go-kdl/ir"

	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	f, err := format.ParseFormat(cfg.Format)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if !formatSet(cfg.Dump) {
		f = outFormat(cfg.Out, f)
	}
	return eachDoc(cfg.MainConfig, cc, args, func(_ string, doc *ir.Document) error {
		return convert.Encode(doc, f, cc.Out, cfg.encOpts(cc.Out)...)
	})
}

func formatSet(cmd *cli.Command) bool {
	for _, opt := range cmd.Opts {
		if opt.Name == "o" {
			return opt.Value != nil
		}
	}
	return false
}

// outFormat picks the format named by the suffix of the -out file.
func outFormat(out string, def format.Format) format.Format {
	ext := filepath.Ext(out)
	if ext == "" {
		return def
	}
	for _, f := range format.AllFormats() {
		if f.Suffix() == ext {
			return f
		}
	}
	return def
}
