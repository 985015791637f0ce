package jsonval

import (
	"cmp"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/stratodb/jsonval/dom"
)

// Compare orders two wrapped values under the engine's total order.
// The result is -1, 0 or +1.
//
// Kinds rank null < numbers < string < object < array < boolean <
// date < time < datetime/timestamp < opaque; datetime and timestamp
// share a rank and compare against each other. Within the numeric
// group comparison is exact: a decimal operand forces the other side
// to decimal, int against uint decides by sign first, and double
// against integer compares as double with a decimal tie-break, since
// integer to double conversion can lose precision.
func Compare(a, b *Wrapper) (int, error) {
	if a.Empty() || b.Empty() {
		return 0, ErrEmpty
	}
	ta, tb := a.Type(), b.Type()
	ra, rb := typeRank(ta), typeRank(tb)
	if ra != rb {
		return cmp.Compare(ra, rb), nil
	}

	switch {
	case ta.IsNumber():
		return compareNumbers(a, b)
	case ta.IsTemporal():
		va, err := a.Temporal()
		if err != nil {
			return 0, err
		}
		vb, err := b.Temporal()
		if err != nil {
			return 0, err
		}
		return va.Compare(vb), nil
	}

	switch ta {
	case dom.NullType:
		return 0, nil
	case dom.BoolType:
		ba, bb := a.Bool(), b.Bool()
		switch {
		case ba == bb:
			return 0, nil
		case !ba:
			return -1, nil
		}
		return 1, nil
	case dom.StringType:
		return strings.Compare(a.Str(), b.Str()), nil
	case dom.OpaqueType:
		_, da := a.Opaque()
		_, db := b.Opaque()
		return strings.Compare(string(da), string(db)), nil
	case dom.ArrayType:
		return compareArrays(a, b)
	case dom.ObjectType:
		return compareObjects(a, b)
	}
	return 0, ErrEmpty
}

// typeRank is the precedence of a kind in the total order. Equal ranks
// mean the values decide.
func typeRank(t dom.Type) int {
	switch t {
	case dom.NullType:
		return 0
	case dom.DecimalType, dom.IntType, dom.UintType, dom.DoubleType:
		return 1
	case dom.StringType:
		return 2
	case dom.ObjectType:
		return 3
	case dom.ArrayType:
		return 4
	case dom.BoolType:
		return 5
	case dom.DateType:
		return 6
	case dom.TimeType:
		return 7
	case dom.DateTimeType, dom.TimestampType:
		return 8
	case dom.OpaqueType:
		return 9
	}
	return 10
}

func compareNumbers(a, b *Wrapper) (int, error) {
	ta, tb := a.Type(), b.Type()
	switch {
	case ta == dom.IntType && tb == dom.IntType:
		return cmp.Compare(a.Int64(), b.Int64()), nil
	case ta == dom.UintType && tb == dom.UintType:
		return cmp.Compare(a.Uint64(), b.Uint64()), nil
	case ta == dom.IntType && tb == dom.UintType:
		return compareIntUint(a.Int64(), b.Uint64()), nil
	case ta == dom.UintType && tb == dom.IntType:
		return -compareIntUint(b.Int64(), a.Uint64()), nil
	case ta == dom.DoubleType && tb == dom.DoubleType:
		return cmp.Compare(a.Double(), b.Double()), nil
	case ta == dom.DoubleType && (tb == dom.IntType || tb == dom.UintType):
		return compareDoubleInt(a, b)
	case (ta == dom.IntType || ta == dom.UintType) && tb == dom.DoubleType:
		c, err := compareDoubleInt(b, a)
		return -c, err
	}
	// at least one decimal; compare exactly in decimal
	da, err := toDecimal(a)
	if err != nil {
		return 0, err
	}
	db, err := toDecimal(b)
	if err != nil {
		return 0, err
	}
	return da.Cmp(db), nil
}

func compareIntUint(i int64, u uint64) int {
	if i < 0 {
		return -1
	}
	return cmp.Compare(uint64(i), u)
}

// compareDoubleInt compares as doubles first and only pays for an
// exact decimal comparison on a floating-point tie, where the integer
// may have lost precision in the conversion.
func compareDoubleInt(d, i *Wrapper) (int, error) {
	var fi float64
	if i.Type() == dom.IntType {
		fi = float64(i.Int64())
	} else {
		fi = float64(i.Uint64())
	}
	if c := cmp.Compare(d.Double(), fi); c != 0 {
		return c, nil
	}
	dd, err := toDecimal(d)
	if err != nil {
		return 0, err
	}
	di, err := toDecimal(i)
	if err != nil {
		return 0, err
	}
	return dd.Cmp(di), nil
}

// toDecimal converts any numeric wrapper to an exact decimal.
func toDecimal(w *Wrapper) (*apd.Decimal, error) {
	switch w.Type() {
	case dom.DecimalType:
		return w.Decimal()
	case dom.IntType:
		return apd.New(w.Int64(), 0), nil
	case dom.UintType:
		d, _, err := apd.NewFromString(strconv.FormatUint(w.Uint64(), 10))
		return d, err
	case dom.DoubleType:
		return doubleToDecimal(w.Double())
	}
	return nil, dom.ErrKind
}

// doubleToDecimal converts f to the decimal it exactly denotes, not
// the shortest decimal that reads back as f. Every finite double is an
// integer over a power of two, so the expansion terminates: with
// denominator 2^k the value is num*5^k at decimal exponent -k.
func doubleToDecimal(f float64) (*apd.Decimal, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, dom.ErrKind
	}
	r := new(big.Rat).SetFloat64(f)
	k := r.Denom().BitLen() - 1
	coeff := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(k)), nil)
	coeff.Mul(coeff, r.Num())
	d, _, err := apd.NewFromString(coeff.String() + "E" + strconv.Itoa(-k))
	return d, err
}

func compareArrays(a, b *Wrapper) (int, error) {
	la, lb := a.Length(), b.Length()
	n := min(la, lb)
	for i := 0; i < n; i++ {
		c, err := Compare(a.At(i), b.At(i))
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return cmp.Compare(la, lb), nil
}

// compareObjects orders by cardinality first, then by key/value pairs
// in key order, first difference wins.
func compareObjects(a, b *Wrapper) (int, error) {
	la, lb := a.Length(), b.Length()
	if la != lb {
		return cmp.Compare(la, lb), nil
	}
	ia, ib := a.ObjectIterator(), b.ObjectIterator()
	for {
		ka, va, ok := ia.Next()
		if !ok {
			return 0, nil
		}
		kb, vb, _ := ib.Next()
		if c := dom.KeyCompare(ka, kb); c != 0 {
			return c, nil
		}
		c, err := Compare(va, vb)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
}
