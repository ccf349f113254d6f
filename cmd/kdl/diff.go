package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/go-kdl/encode"
	"github.com/signadot/go-kdl/libdiff"

	"github.com/scott-cotton/cli"
)

// diff exits with code 1 when the documents differ.
func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getDocFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getDocFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	if cfg.Nodes {
		changes := libdiff.Diff(a, b)
		if cfg.Reverse {
			changes = libdiff.Reverse(changes)
		}
		if len(changes) == 0 {
			return nil
		}
		if err := encode.Encode(libdiff.ToDocument(changes), cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
		return cli.ExitCodeErr(1)
	}
	canon := []encode.EncodeOption{
		encode.EncodeVersion(cfg.OutVersion),
		encode.EncodeLiterals(false),
		encode.SortProps(cfg.Sort),
	}
	if cfg.Reverse {
		a, b = b, a
		args[0], args[1] = args[1], args[0]
	}
	var ta, tb strings.Builder
	if err := encode.Encode(a, &ta, canon...); err != nil {
		return fmt.Errorf("error encoding %s: %w", args[0], err)
	}
	if err := encode.Encode(b, &tb, canon...); err != nil {
		return fmt.Errorf("error encoding %s: %w", args[1], err)
	}
	text, differs := libdiff.Lines(ta.String(), tb.String())
	if !differs {
		return nil
	}
	if _, err := io.WriteString(cc.Out, text); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
