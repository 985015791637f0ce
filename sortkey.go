package jsonval

import (
	"encoding/binary"
	"strings"

	"github.com/stratodb/jsonval/dom"
)

// Sort key type tags, one leading byte per value. Their byte order
// reproduces the type precedence of Compare; the three number tags
// split the numeric group around zero so sign alone can decide.
const (
	keyNull      byte = 0x00
	keyNumberNeg byte = 0x01
	keyNumberZer byte = 0x02
	keyNumberPos byte = 0x03
	keyString    byte = 0x04
	keyObject    byte = 0x05
	keyArray     byte = 0x06
	keyFalse     byte = 0x07
	keyTrue      byte = 0x08
	keyDate      byte = 0x09
	keyTime      byte = 0x0A
	keyDateTime  byte = 0x0B
	keyOpaque    byte = 0x0C
)

// numberSortDigits is the fixed digit width numeric keys are padded
// to, so digit strings of different lengths compare correctly.
const numberSortDigits = 30

// varlenSuffixBytes is the size of the length suffix appended to
// truncated string keys.
const varlenSuffixBytes = 4

// SortKey appends a byte-comparable key for the wrapped value to dst,
// using at most keyLen bytes, and returns the extended slice. Unsigned
// lexicographic order of two keys reproduces Compare, with one
// documented exception: arrays and objects contribute only their
// element count, so two containers equal up to the count tie in the
// key and must be re-compared the slow way when their relative order
// matters.
func (w *Wrapper) SortKey(dst []byte, keyLen int) ([]byte, error) {
	if w.Empty() {
		return nil, ErrEmpty
	}
	kw := &sortKeyWriter{buf: dst, max: len(dst) + keyLen}
	if err := w.sortKeyTo(kw); err != nil {
		return nil, err
	}
	return kw.buf, nil
}

func (w *Wrapper) sortKeyTo(kw *sortKeyWriter) error {
	switch t := w.Type(); t {
	case dom.NullType:
		kw.appendByte(keyNull)
	case dom.BoolType:
		if w.Bool() {
			kw.appendByte(keyTrue)
		} else {
			kw.appendByte(keyFalse)
		}
	case dom.IntType, dom.UintType, dom.DoubleType, dom.DecimalType:
		return w.numericSortKey(kw)
	case dom.StringType:
		kw.appendByte(keyString)
		kw.appendStringAndLength(w.Str())
	case dom.OpaqueType:
		_, data := w.Opaque()
		kw.appendByte(keyOpaque)
		kw.appendStringAndLength(string(data))
	case dom.DateType, dom.TimeType, dom.DateTimeType, dom.TimestampType:
		tv, err := w.Temporal()
		if err != nil {
			return err
		}
		switch t {
		case dom.DateType:
			kw.appendByte(keyDate)
		case dom.TimeType:
			kw.appendByte(keyTime)
		default:
			kw.appendByte(keyDateTime)
		}
		var packed [8]byte
		// flip the sign bit so negative packed values sort first
		binary.BigEndian.PutUint64(packed[:], uint64(tv.Packed)^(1<<63))
		kw.appendBytes(packed[:])
	case dom.ArrayType, dom.ObjectType:
		if t == dom.ArrayType {
			kw.appendByte(keyArray)
		} else {
			kw.appendByte(keyObject)
		}
		var count [4]byte
		binary.BigEndian.PutUint32(count[:], uint32(w.Length()))
		kw.appendBytes(count[:])
	default:
		return ErrEmpty
	}
	return nil
}

// numericSortKey writes sign tag, a biased 2-byte decimal exponent and
// the significant digits right-padded to a fixed width. For negative
// numbers the exponent is negated and every digit inverted (9 minus
// digit, padding with 9) so that more negative values sort first.
func (w *Wrapper) numericSortKey(kw *sortKeyWriter) error {
	neg, exp, digits, err := numericParts(w)
	if err != nil {
		return err
	}
	if digits == "" {
		kw.appendByte(keyNumberZer)
		return nil
	}
	if neg {
		kw.appendByte(keyNumberNeg)
		exp = -exp
	} else {
		kw.appendByte(keyNumberPos)
	}
	var expBytes [2]byte
	binary.BigEndian.PutUint16(expBytes[:], uint16(exp)+1<<15)
	kw.appendBytes(expBytes[:])

	// fixed width; a double's exact expansion can run far longer
	if len(digits) > numberSortDigits {
		digits = digits[:numberSortDigits]
	}
	pad := byte('0')
	if neg {
		pad = '9'
		inv := make([]byte, len(digits))
		for i := 0; i < len(digits); i++ {
			inv[i] = '9' - digits[i] + '0'
		}
		digits = string(inv)
	}
	kw.appendBytes([]byte(digits))
	for i := len(digits); i < numberSortDigits; i++ {
		kw.appendByte(pad)
	}
	return nil
}

// numericParts normalizes any numeric value to value = 0.digits x
// 10^exp with digits free of leading and trailing zeros. Zero comes
// back with empty digits.
func numericParts(w *Wrapper) (neg bool, exp int, digits string, err error) {
	d, err := toDecimal(w)
	if err != nil {
		return false, 0, "", err
	}
	if d.IsZero() {
		return false, 0, "", nil
	}
	coeff := d.Coeff.String()
	exp = len(coeff) + int(d.Exponent)
	digits = strings.TrimRight(coeff, "0")
	return d.Negative, exp, digits, nil
}

// sortKeyWriter appends bytes up to a hard cap, silently dropping the
// overflow; truncated keys stay prefix-comparable.
type sortKeyWriter struct {
	buf []byte
	max int
}

func (kw *sortKeyWriter) remaining() int {
	return kw.max - len(kw.buf)
}

func (kw *sortKeyWriter) appendByte(b byte) {
	if kw.remaining() > 0 {
		kw.buf = append(kw.buf, b)
	}
}

func (kw *sortKeyWriter) appendBytes(s []byte) {
	if r := kw.remaining(); len(s) > r {
		s = s[:r]
	}
	kw.buf = append(kw.buf, s...)
}

// appendStringAndLength inlines s when it fits; otherwise it inlines
// what fits minus four bytes and appends the full length, big endian,
// so truncated keys equal on the prefix still order by length.
func (kw *sortKeyWriter) appendStringAndLength(s string) {
	r := kw.remaining()
	if len(s) <= r {
		kw.buf = append(kw.buf, s...)
		return
	}
	cut := r - varlenSuffixBytes
	if cut < 0 {
		cut = 0
	}
	kw.buf = append(kw.buf, s[:cut]...)
	var ln [varlenSuffixBytes]byte
	binary.BigEndian.PutUint32(ln[:], uint32(len(s)))
	kw.appendBytes(ln[:])
}
