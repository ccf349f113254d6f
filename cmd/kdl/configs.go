package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/go-kdl/encode"
	"github.com/signadot/go-kdl/format"
	"github.com/signadot/go-kdl/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Debug  bool   `cli:"name=d desc='trace parse events to stderr'"`
	InV    string `cli:"name=v desc='input kdl version: 1, 2 or auto'"`
	OutV   string `cli:"name=V desc='output kdl version: 1 or 2'"`
	Indent int    `cli:"name=indent desc='spaces per nesting level'"`
	Sort   bool   `cli:"name=sort desc='sort properties by key'"`
	Color  bool   `cli:"name=color desc='encode with color'"`
	Canon  bool   `cli:"name=canon desc='write values in canonical form'"`
	Gops   bool   `cli:"name=gops desc='start a gops agent'"`

	InVersion, OutVersion format.Version

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) versions() error {
	v, err := format.ParseVersion(cfg.InV)
	if err != nil {
		return fmt.Errorf("%w: -v: %w", cli.ErrUsage, err)
	}
	cfg.InVersion = v
	v, err = format.ParseVersion(cfg.OutV)
	if err != nil {
		return fmt.Errorf("%w: -V: %w", cli.ErrUsage, err)
	}
	cfg.OutVersion = v
	return nil
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	res := []parse.ParseOption{parse.ParseVersion(cfg.InVersion)}
	if cfg.Debug {
		res = append(res, parse.ParseDebug(os.Stderr))
	}
	return res
}

func (cfg *MainConfig) optSet(name string) bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeVersion(cfg.OutVersion),
		encode.SortProps(cfg.Sort),
		encode.EncodeLiterals(!cfg.Canon),
	}
	if cfg.optSet("indent") {
		res = append(res, encode.Indent(cfg.Indent))
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	if cfg.optSet("color") {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type CatConfig struct {
	*MainConfig
	SExpr bool `cli:"name=s desc='print s-expressions'"`

	Cat *cli.Command
}

type DumpConfig struct {
	*MainConfig
	Format string `cli:"name=o desc='output format: kdl, json, yaml or sexp'"`

	Dump *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type MatchConfig struct {
	*MainConfig
	Trim   bool `cli:"name=trim desc='trim the results to the match'"`
	String bool `cli:"name=s desc='consider match a string argument'"`

	Match *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Nodes   bool `cli:"name=n desc='diff nodes instead of lines'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge  bool `cli:"name=m desc='the patch is a JSON merge patch'"`
	String bool `cli:"name=s desc='patch arg as string'"`

	Patch *cli.Command
}

type ConvertConfig struct {
	*MainConfig
	From string `cli:"name=i desc='input: data (plain json or yaml), json or yaml document form'"`

	Convert *cli.Command
}
