package jsonval

import (
	"strings"

	"github.com/fatih/color"
)

type colorAttr int

const (
	keyColor colorAttr = iota
	stringColor
	numberColor
	literalColor
	temporalColor
)

// Colors maps rendered token classes to sprint functions. Nil entries
// fall back to Default.
type Colors struct {
	Default func(string, ...any) string
	Map     map[colorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map: map[colorAttr]func(string, ...any) string{
			keyColor:      color.RGB(128, 168, 196).SprintfFunc(),
			stringColor:   color.RGB(8, 196, 16).SprintfFunc(),
			numberColor:   color.RGB(128, 216, 236).SprintfFunc(),
			literalColor:  color.RGB(168, 0, 196).SprintfFunc(),
			temporalColor: color.CyanString,
		},
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Get(a colorAttr) func(string, ...any) string {
	f := c.Map[a]
	if f == nil {
		return c.Default
	}
	return f
}

func (es *encState) color(a colorAttr, s string) string {
	if es.colors == nil {
		return s
	}
	return es.colors.Get(a)(s)
}
