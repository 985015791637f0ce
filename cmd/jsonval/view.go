package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/stratodb/jsonval"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		if err := viewFile(cfg, cc, file); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, cc *cli.Context, file string) error {
	doc, err := getDocFile(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	if err := jsonval.Encode(jsonval.NewDOM(doc), cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return err
	}
	_, err = cc.Out.Write([]byte("\n"))
	return err
}
