package parse

import (
	"github.com/stratodb/jsonval/dom"
)

// syntaxChecker is the value-free variant of the builder: it tracks
// nesting depth and discards everything else. Grammar errors are the
// driver's business.
type syntaxChecker struct {
	depth int
	err   error
}

func (c *syntaxChecker) enter() bool {
	c.depth++
	if c.depth > dom.MaxDepth {
		c.err = dom.ErrDepth
		return false
	}
	return true
}

func (c *syntaxChecker) leave() bool {
	c.depth--
	return true
}

func (c *syntaxChecker) Null() bool            { return true }
func (c *syntaxChecker) Bool(bool) bool        { return true }
func (c *syntaxChecker) Int(int64) bool        { return true }
func (c *syntaxChecker) Uint(uint64) bool      { return true }
func (c *syntaxChecker) Double(float64) bool   { return true }
func (c *syntaxChecker) RawNumber(string) bool { return true }
func (c *syntaxChecker) String(string) bool    { return true }
func (c *syntaxChecker) Key(string) bool       { return true }
func (c *syntaxChecker) StartObject() bool     { return c.enter() }
func (c *syntaxChecker) EndObject() bool       { return c.leave() }
func (c *syntaxChecker) StartArray() bool      { return c.enter() }
func (c *syntaxChecker) EndArray() bool        { return c.leave() }

// Check reports whether data is one well-formed document within the
// depth bound, without building anything.
func Check(data []byte) error {
	c := &syntaxChecker{}
	if err := Walk(data, c); err != nil {
		if c.err != nil {
			return c.err
		}
		return err
	}
	return nil
}

// Valid is Check as a predicate.
func Valid(data []byte) bool {
	return Check(data) == nil
}
