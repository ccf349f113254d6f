package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/go-kdl/encode"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/parse"
	"github.com/signadot/go-kdl/stream"

	"github.com/scott-cotton/cli"
)

// cat copies each input to the encoder as events. With -v 1 or -v 2
// nothing is held in memory; with auto detection the parser records
// the events of a document before emitting them.
func cat(cfg *CatConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cat.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.SExpr {
		return eachDoc(cfg.MainConfig, cc, args, func(_ string, doc *ir.Document) error {
			return encode.SExpr(doc, cc.Out)
		})
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		if err := catFile(cfg, cc, file); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
	}
	return nil
}

func catFile(cfg *CatConfig, cc *cli.Context, file string) error {
	var r io.Reader = cc.In
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	p := parse.NewParser(r, cfg.parseOpts()...)
	enc := encode.NewEncoder(cc.Out, cfg.encOpts(cc.Out)...)
	if err := stream.Copy(enc, p); err != nil {
		return err
	}
	return enc.Flush()
}
