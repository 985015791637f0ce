package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stratodb/jsonval/debug"
	"github.com/stratodb/jsonval/dom"
)

// Parse builds a document from JSON text. Exactly one top-level value
// is required; syntax errors carry the byte offset at which the
// tokenizer gave up.
func Parse(data []byte, opts ...ParseOption) (*dom.Node, error) {
	b := newDOMBuilder(opts...)
	if err := Walk(data, b); err != nil {
		if b.Err() != nil {
			err = b.Err()
		}
		if debug.Parse() {
			debug.Logf("parse of %d bytes failed: %v\n", len(data), err)
		}
		return nil, err
	}
	return b.Doc(), nil
}

// errStopped reports that the handler asked the walk to stop.
var errStopped = errors.New("handler stopped the walk")

type walkFrame struct {
	object    bool
	expectKey bool
}

// Walk tokenizes one JSON document and feeds the events to h. The
// handler returning false aborts the walk; the handler's own error
// state then explains why.
func Walk(data []byte, h Handler) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var stack []walkFrame
	seenValue := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if !seenValue || len(stack) > 0 {
				return &SyntaxError{Offset: dec.InputOffset(), Msg: "unexpected end of document"}
			}
			return nil
		}
		if err != nil {
			return &SyntaxError{Offset: dec.InputOffset(), Msg: err.Error()}
		}
		if seenValue && len(stack) == 0 {
			return fmt.Errorf("%w at offset %d", ErrExtra, dec.InputOffset())
		}

		ok := true
		completed := false
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				ok = h.StartObject()
				stack = append(stack, walkFrame{object: true, expectKey: true})
			case '}':
				ok = h.EndObject()
				stack = stack[:len(stack)-1]
				completed = true
			case '[':
				ok = h.StartArray()
				stack = append(stack, walkFrame{})
			case ']':
				ok = h.EndArray()
				stack = stack[:len(stack)-1]
				completed = true
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectKey {
				ok = h.Key(t)
				stack[n-1].expectKey = false
			} else {
				ok = h.String(t)
				completed = true
			}
		case json.Number:
			ok = walkNumber(t, h)
			completed = true
		case bool:
			ok = h.Bool(t)
			completed = true
		case nil:
			ok = h.Null()
			completed = true
		}
		if !ok {
			return errStopped
		}
		if completed {
			if n := len(stack); n > 0 && stack[n-1].object {
				stack[n-1].expectKey = true
			} else if n == 0 {
				seenValue = true
			}
		}
	}
}

// walkNumber dispatches a numeric literal the way the engine types
// numbers: plain integers stay exact (signed first, then unsigned),
// anything with a fraction or exponent becomes a double, and an
// integer too large for either integer kind is carried verbatim as an
// exact decimal.
func walkNumber(n json.Number, h Handler) bool {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return h.Int(i)
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return h.Uint(u)
		}
		return h.RawNumber(s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// out of double range; keep the exact form
		return h.RawNumber(s)
	}
	return h.Double(f)
}
