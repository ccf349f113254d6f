package main

import (
	"fmt"

	"github.com/signadot/go-kdl/encode"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/query"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, an expression", cli.ErrUsage)
	}
	q, err := query.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return eachDoc(cfg.MainConfig, cc, args[1:], func(_ string, doc *ir.Document) error {
		nodes, err := q.Select(doc)
		if err != nil {
			return err
		}
		theLog.Debug("query", "expr", q.String(), "matches", len(nodes))
		return encode.Encode(ir.NewDocument(nodes...), cc.Out, cfg.encOpts(cc.Out)...)
	})
}
