package main

import (
	"fmt"

	kdl "github.com/signadot/go-kdl"
	"github.com/signadot/go-kdl/encode"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/parse"

	"github.com/scott-cotton/cli"
)

func match(cfg *MatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Match.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: match requires 1 argument, a pattern document", cli.ErrUsage)
	}
	var pattern *ir.Document
	if cfg.String {
		pattern, err = parse.ParseString(args[0], cfg.parseOpts()...)
	} else {
		pattern, err = getDocFile(cc, args[0], cfg.parseOpts()...)
	}
	if err != nil {
		return fmt.Errorf("error decoding pattern: %w", err)
	}
	return eachDoc(cfg.MainConfig, cc, args[1:], func(_ string, doc *ir.Document) error {
		res := kdl.MatchDocument(doc, pattern, cfg.Trim)
		return encode.Encode(ir.NewDocument(res...), cc.Out, cfg.encOpts(cc.Out)...)
	})
}
