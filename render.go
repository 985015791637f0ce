package jsonval

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stratodb/jsonval/dom"
)

// Encode renders the wrapped value as JSON text. The compact form
// separates elements with ", "; EncodePretty(true) breaks lines and
// indents two spaces per level. Works on either representation
// without materializing.
func Encode(w *Wrapper, out io.Writer, opts ...EncodeOption) error {
	es := &encState{}
	for _, opt := range opts {
		opt(es)
	}
	buf := &bytes.Buffer{}
	if err := encodeValue(w, buf, es, 0); err != nil {
		return err
	}
	_, err := out.Write(buf.Bytes())
	return err
}

// ToString is Encode into a string.
func (w *Wrapper) ToString(opts ...EncodeOption) (string, error) {
	var sb strings.Builder
	if err := Encode(w, &sb, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func encodeValue(w *Wrapper, buf *bytes.Buffer, es *encState, depth int) error {
	if w.Empty() {
		return ErrEmpty
	}
	if depth > dom.MaxDepth {
		return dom.ErrDepth
	}
	switch t := w.Type(); t {
	case dom.NullType:
		buf.WriteString(es.color(literalColor, "null"))
	case dom.BoolType:
		if w.Bool() {
			buf.WriteString(es.color(literalColor, "true"))
		} else {
			buf.WriteString(es.color(literalColor, "false"))
		}
	case dom.IntType:
		buf.WriteString(es.color(numberColor, strconv.FormatInt(w.Int64(), 10)))
	case dom.UintType:
		buf.WriteString(es.color(numberColor, strconv.FormatUint(w.Uint64(), 10)))
	case dom.DoubleType:
		buf.WriteString(es.color(numberColor, formatDouble(w.Double())))
	case dom.DecimalType:
		d, err := w.Decimal()
		if err != nil {
			return err
		}
		buf.WriteString(es.color(numberColor, d.Text('f')))
	case dom.StringType:
		buf.WriteString(es.color(stringColor, quote(w.Str())))
	case dom.DateType, dom.TimeType, dom.DateTimeType, dom.TimestampType:
		tv, err := w.Temporal()
		if err != nil {
			return err
		}
		buf.WriteString(es.color(temporalColor, quote(tv.String())))
	case dom.OpaqueType:
		ft, data := w.Opaque()
		s := fmt.Sprintf("base64:type%d:%s", int(ft), base64.StdEncoding.EncodeToString(data))
		buf.WriteString(es.color(stringColor, quote(s)))
	case dom.ArrayType:
		if err := encodeArray(w, buf, es, depth); err != nil {
			return err
		}
	case dom.ObjectType:
		if err := encodeObject(w, buf, es, depth); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: cannot render %s", ErrEmpty, t)
	}
	// checked after the value lands so the last write cannot slip past
	// the limit
	if es.maxSize > 0 && buf.Len() > es.maxSize {
		return fmt.Errorf("%w: %d bytes", ErrSizeExceeded, buf.Len())
	}
	return nil
}

func encodeArray(w *Wrapper, buf *bytes.Buffer, es *encState, depth int) error {
	n := w.Length()
	buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			writeSep(buf, es, depth+1)
		} else {
			writeOpen(buf, es, depth+1)
		}
		if err := encodeValue(w.At(i), buf, es, depth+1); err != nil {
			return err
		}
	}
	if n > 0 {
		writeClose(buf, es, depth)
	}
	buf.WriteByte(']')
	return nil
}

func encodeObject(w *Wrapper, buf *bytes.Buffer, es *encState, depth int) error {
	buf.WriteByte('{')
	it := w.ObjectIterator()
	first := true
	for key, v, ok := it.Next(); ok; key, v, ok = it.Next() {
		if first {
			writeOpen(buf, es, depth+1)
		} else {
			writeSep(buf, es, depth+1)
		}
		first = false
		buf.WriteString(es.color(keyColor, quote(key)))
		buf.WriteString(": ")
		if err := encodeValue(v, buf, es, depth+1); err != nil {
			return err
		}
	}
	if !first {
		writeClose(buf, es, depth)
	}
	buf.WriteByte('}')
	return nil
}

func writeOpen(buf *bytes.Buffer, es *encState, depth int) {
	if es.pretty {
		newline(buf, depth)
	}
}

func writeSep(buf *bytes.Buffer, es *encState, depth int) {
	buf.WriteByte(',')
	if es.pretty {
		newline(buf, depth)
	} else {
		buf.WriteByte(' ')
	}
}

func writeClose(buf *bytes.Buffer, es *encState, depth int) {
	if es.pretty {
		newline(buf, depth)
	}
}

func newline(buf *bytes.Buffer, depth int) {
	buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

// formatDouble keeps doubles distinguishable from integers in the
// output: an integral double renders with a trailing ".0".
func formatDouble(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

const hexDigits = "0123456789abcdef"

// quote double-quotes s with the document escape set: the two
// mandatory escapes, the named control characters and \u00XX for the
// remaining control bytes.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if c < 0x20 {
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigits[c>>4])
				sb.WriteByte(hexDigits[c&0xf])
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
