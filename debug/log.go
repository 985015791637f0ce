// Package debug provides env-gated diagnostics. Gates are read once at
// startup from JSONVAL_DEBUG_PARSE, JSONVAL_DEBUG_SEEK and
// JSONVAL_DEBUG_UPDATE.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
)

func Logf(msg string, args ...any) {
	for i := range args {
		switch args[i].(type) {
		case map[string]any, []any, json.Number:
			d, err := json.Marshal(args[i])
			if err != nil {
				args[i] = fmt.Sprintf("%v", args[i])
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
