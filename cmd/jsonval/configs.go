package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/stratodb/jsonval"
	"github.com/stratodb/jsonval/dom"
	"github.com/stratodb/jsonval/parse"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='render with color'"`
	Pretty bool `cli:"name=pretty aliases=p desc='render indented, one element per line'"`
	Y      bool `cli:"name=y aliases=yaml desc='read input as yaml'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []jsonval.EncodeOption {
	var res []jsonval.EncodeOption
	if cfg.Pretty {
		res = append(res, jsonval.EncodePretty(true))
	}
	if cfg.Color {
		res = append(res, jsonval.EncodeColors(jsonval.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, jsonval.EncodeColors(jsonval.NewColors()))
	}
	return res
}

// getDocFile reads and parses one document, from a file or from the
// command input when path is "-".
func getDocFile(cfg *MainConfig, cc *cli.Context, path string) (*dom.Node, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return cfg.parseDoc(d)
}

func (cfg *MainConfig) parseDoc(d []byte) (*dom.Node, error) {
	if !cfg.Y {
		return parse.Parse(d)
	}
	var v any
	if err := yaml.Unmarshal(d, &v); err != nil {
		return nil, err
	}
	return dom.FromGo(v)
}

type ValidateConfig struct {
	*MainConfig

	Quiet    bool `cli:"name=q aliases=quiet desc='no per-file output, only the exit code'"`
	Validate *cli.Command
}

type GetConfig struct {
	*MainConfig

	First bool `cli:"name=1 aliases=first desc='stop at the first match'"`
	Get   *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}
