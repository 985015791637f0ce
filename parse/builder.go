package parse

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"

	"github.com/stratodb/jsonval/dom"
)

type state int

const (
	expectAnyValue state = iota
	expectArrayValue
	expectObjectKey
	expectObjectValue
	expectEOF
)

// domBuilder assembles a document bottom-up from handler events. It
// tracks the open containers on an explicit stack and refuses nesting
// beyond dom.MaxDepth before the offending container is attached.
type domBuilder struct {
	state           state
	stack           []*dom.Node
	key             string
	doc             *dom.Node
	numbersAsDouble bool
	err             error
}

func newDOMBuilder(opts ...ParseOption) *domBuilder {
	o := &parseOpts{}
	for _, opt := range opts {
		opt(o)
	}
	return &domBuilder{numbersAsDouble: o.numbersAsDouble}
}

func (b *domBuilder) Doc() *dom.Node {
	return b.doc
}

func (b *domBuilder) Err() error {
	return b.err
}

func (b *domBuilder) fail(format string, args ...any) bool {
	b.err = fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
	return false
}

// newValue attaches a completed value at the current position.
func (b *domBuilder) newValue(n *dom.Node) bool {
	switch b.state {
	case expectAnyValue:
		b.doc = n
		b.state = expectEOF
	case expectArrayValue:
		top := b.stack[len(b.stack)-1]
		if err := top.Append(n); err != nil {
			b.err = err
			return false
		}
	case expectObjectValue:
		top := b.stack[len(b.stack)-1]
		// a repeated key keeps the last value seen
		if existing := top.Get(b.key); existing != nil {
			top.ReplaceChild(existing, n)
		} else if err := top.Add(b.key, n); err != nil {
			b.err = err
			return false
		}
		b.state = expectObjectKey
	default:
		return b.fail("unexpected value")
	}
	return true
}

// push attaches a new container and makes it current.
func (b *domBuilder) push(n *dom.Node, next state) bool {
	if len(b.stack) >= dom.MaxDepth {
		b.err = dom.ErrDepth
		return false
	}
	if !b.newValue(n) {
		return false
	}
	b.stack = append(b.stack, n)
	b.state = next
	return true
}

func (b *domBuilder) pop(want dom.Type) bool {
	if len(b.stack) == 0 || b.stack[len(b.stack)-1].Type != want {
		return b.fail("unbalanced %s end", want)
	}
	b.stack = b.stack[:len(b.stack)-1]
	switch {
	case len(b.stack) == 0:
		b.state = expectEOF
	case b.stack[len(b.stack)-1].Type == dom.ArrayType:
		b.state = expectArrayValue
	default:
		b.state = expectObjectKey
	}
	return true
}

func (b *domBuilder) Null() bool {
	return b.newValue(dom.Null())
}

func (b *domBuilder) Bool(v bool) bool {
	return b.newValue(dom.FromBool(v))
}

func (b *domBuilder) Int(v int64) bool {
	if b.numbersAsDouble {
		return b.Double(float64(v))
	}
	return b.newValue(dom.FromInt(v))
}

func (b *domBuilder) Uint(v uint64) bool {
	if b.numbersAsDouble {
		return b.Double(float64(v))
	}
	return b.newValue(dom.FromUint(v))
}

func (b *domBuilder) Double(v float64) bool {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return b.fail("non-finite number")
	}
	return b.newValue(dom.FromDouble(v))
}

func (b *domBuilder) RawNumber(s string) bool {
	if b.numbersAsDouble {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return b.fail("bad number %q", s)
		}
		return b.Double(f)
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return b.fail("bad number %q", s)
	}
	return b.newValue(dom.FromDecimal(d))
}

func (b *domBuilder) String(s string) bool {
	return b.newValue(dom.FromString(s))
}

func (b *domBuilder) Key(s string) bool {
	if b.state != expectObjectKey {
		return b.fail("unexpected key %q", s)
	}
	b.key = s
	b.state = expectObjectValue
	return true
}

func (b *domBuilder) StartObject() bool {
	return b.push(dom.NewObject(), expectObjectKey)
}

func (b *domBuilder) EndObject() bool {
	if b.state != expectObjectKey {
		return b.fail("object end before member value")
	}
	return b.pop(dom.ObjectType)
}

func (b *domBuilder) StartArray() bool {
	return b.push(dom.NewArray(), expectArrayValue)
}

func (b *domBuilder) EndArray() bool {
	if b.state != expectArrayValue {
		return b.fail("array end inside object")
	}
	return b.pop(dom.ArrayType)
}
