package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse  bool
	Seek   bool
	Update bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("JSONVAL_DEBUG_PARSE")
	d.Seek = boolEnv("JSONVAL_DEBUG_SEEK")
	d.Update = boolEnv("JSONVAL_DEBUG_UPDATE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Seek() bool {
	return d.Seek
}
func Update() bool {
	return d.Update
}
