package jsonval

import (
	"encoding/binary"
	"math"

	"github.com/stratodb/jsonval/dom"
)

// HashKey folds the wrapped value into a 64-bit checksum seeded with
// seed. The fold is order-sensitive and threads the running value
// through nested containers, so structurally different documents
// rarely collide. It is not cryptographic.
//
// Numerically equal values hash identically across the integer,
// unsigned, double and decimal kinds by hashing through the double
// value; collisions between distinct numbers sharing a double
// representation are accepted. Negative zero normalizes to zero.
func (w *Wrapper) HashKey(seed uint64) (uint64, error) {
	if w.Empty() {
		return 0, ErrEmpty
	}
	crc := seed
	switch t := w.Type(); t {
	case dom.NullType:
		crc = rollByte(crc, 'N')
	case dom.BoolType:
		if w.Bool() {
			crc = rollByte(crc, 'T')
		} else {
			crc = rollByte(crc, 'F')
		}
	case dom.IntType:
		crc = rollDouble(crc, float64(w.Int64()))
	case dom.UintType:
		crc = rollDouble(crc, float64(w.Uint64()))
	case dom.DoubleType:
		crc = rollDouble(crc, w.Double())
	case dom.DecimalType:
		d, err := w.Decimal()
		if err != nil {
			return 0, err
		}
		f, _ := d.Float64()
		crc = rollDouble(crc, f)
	case dom.StringType:
		crc = rollBytes(crc, []byte(w.Str()))
	case dom.OpaqueType:
		_, data := w.Opaque()
		crc = rollBytes(crc, data)
	case dom.DateType, dom.TimeType, dom.DateTimeType, dom.TimestampType:
		tv, err := w.Temporal()
		if err != nil {
			return 0, err
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(tv.Packed))
		crc = rollBytes(crc, b[:])
	case dom.ArrayType:
		crc = rollByte(crc, '[')
		n := w.Length()
		for i := 0; i < n; i++ {
			h, err := w.At(i).HashKey(crc)
			if err != nil {
				return 0, err
			}
			crc = h
		}
	case dom.ObjectType:
		crc = rollByte(crc, '{')
		it := w.ObjectIterator()
		for key, v, ok := it.Next(); ok; key, v, ok = it.Next() {
			crc = rollBytes(crc, []byte(key))
			h, err := v.HashKey(crc)
			if err != nil {
				return 0, err
			}
			crc = h
		}
	default:
		return 0, ErrEmpty
	}
	return crc, nil
}

// hashPrime is the 64-bit FNV prime. Multiplying the running state
// spreads every byte across the whole word, so the fold has no
// positional period and swapping distant bytes changes the result.
const hashPrime = 0x100000001b3

func rollByte(crc uint64, b byte) uint64 {
	return crc*hashPrime + uint64(b)
}

func rollBytes(crc uint64, data []byte) uint64 {
	for _, b := range data {
		crc = rollByte(crc, b)
	}
	return crc
}

func rollDouble(crc uint64, f float64) uint64 {
	if f == 0 {
		// fold -0.0 onto +0.0
		f = 0
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
	return rollBytes(crc, b[:])
}
