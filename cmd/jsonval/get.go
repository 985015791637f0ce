package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/stratodb/jsonval"
	"github.com/stratodb/jsonval/jpath"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path expression", cli.ErrUsage)
	}
	expr := args[0]
	if expr == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	if expr[0] != '$' {
		expr = "$" + expr
	}
	p, err := jpath.Parse(expr)
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		if err := getFile(cfg, cc, file, p); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", file, p, err)
		}
	}
	return nil
}

func getFile(cfg *GetConfig, cc *cli.Context, file string, p *jpath.Path) error {
	doc, err := getDocFile(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	hits, err := jsonval.NewDOM(doc).Seek(p, cfg.First)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	for _, hit := range hits {
		if err := jsonval.Encode(hit, cc.Out, opts...); err != nil {
			return err
		}
		if _, err := cc.Out.Write([]byte("\n")); err != nil {
			return err
		}
	}
	return nil
}
