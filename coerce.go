package jsonval

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/stratodb/jsonval/dom"
)

// WarningCode classifies a lossy or impossible coercion.
type WarningCode int

const (
	WarnTruncated WarningCode = iota
	WarnOutOfRange
	WarnCastImpossible
)

// Warning reports a coercion that could not be performed faithfully.
// Coercions never fail outright: the value returned next to a warning
// is the best effort, or a neutral default when the cast is
// impossible.
type Warning struct {
	Code   WarningCode
	Target string
	From   dom.Type
}

func (w *Warning) Error() string {
	switch w.Code {
	case WarnTruncated:
		return fmt.Sprintf("truncated incorrect %s value from %s", w.Target, w.From)
	case WarnOutOfRange:
		return fmt.Sprintf("%s value out of range from %s", w.Target, w.From)
	}
	return fmt.Sprintf("cannot cast %s to %s", w.From, w.Target)
}

func warn(code WarningCode, target string, from dom.Type) *Warning {
	return &Warning{Code: code, Target: target, From: from}
}

// CoerceInt converts the wrapped value to a signed integer. Integers
// pass through, strings parse their leading digits, booleans map to 0
// and 1, decimals truncate toward zero, doubles round to nearest and
// clamp to the representable range, temporal values become their
// numeric form. Non-convertible kinds return 0 with a warning.
func (w *Wrapper) CoerceInt() (int64, *Warning) {
	const target = "INTEGER"
	t := w.Type()
	switch t {
	case dom.IntType:
		return w.Int64(), nil
	case dom.UintType:
		u := w.Uint64()
		if u > math.MaxInt64 {
			return math.MaxInt64, warn(WarnOutOfRange, target, t)
		}
		return int64(u), nil
	case dom.BoolType:
		if w.Bool() {
			return 1, nil
		}
		return 0, nil
	case dom.StringType:
		return parseIntPrefix(w.Str(), t)
	case dom.DecimalType:
		d, err := w.Decimal()
		if err != nil {
			return 0, warn(WarnCastImpossible, target, t)
		}
		return decimalToInt(d, t)
	case dom.DoubleType:
		f := w.Double()
		switch {
		case math.IsNaN(f):
			return 0, warn(WarnOutOfRange, target, t)
		case f >= math.MaxInt64:
			return math.MaxInt64, warn(WarnOutOfRange, target, t)
		case f <= math.MinInt64:
			return math.MinInt64, warn(WarnOutOfRange, target, t)
		}
		return int64(math.Round(f)), nil
	case dom.DateType, dom.TimeType, dom.DateTimeType, dom.TimestampType:
		tv, err := w.Temporal()
		if err != nil {
			return 0, warn(WarnCastImpossible, target, t)
		}
		return temporalToInt(tv), nil
	}
	return 0, warn(WarnCastImpossible, target, t)
}

// parseIntPrefix parses the leading base-10 integer of s, warning on
// trailing garbage, overflow or no digits at all, always returning a
// usable value.
func parseIntPrefix(s string, from dom.Type) (int64, *Warning) {
	const target = "INTEGER"
	t := strings.TrimSpace(s)
	i := 0
	if i < len(t) && (t[i] == '+' || t[i] == '-') {
		i++
	}
	d := i
	for d < len(t) && t[d] >= '0' && t[d] <= '9' {
		d++
	}
	if d == i {
		return 0, warn(WarnTruncated, target, from)
	}
	v, err := strconv.ParseInt(t[:d], 10, 64)
	if err != nil {
		// overflow; clamp by sign
		if t[0] == '-' {
			return math.MinInt64, warn(WarnOutOfRange, target, from)
		}
		return math.MaxInt64, warn(WarnOutOfRange, target, from)
	}
	if d != len(t) {
		return v, warn(WarnTruncated, target, from)
	}
	return v, nil
}

// decimalToInt truncates toward zero, warning when a fractional part
// is dropped and clamping on overflow.
func decimalToInt(d *apd.Decimal, from dom.Type) (int64, *Warning) {
	const target = "INTEGER"
	var trunc apd.Decimal
	ctx := apd.BaseContext.WithPrecision(40)
	ctx.Rounding = apd.RoundDown
	if _, err := ctx.RoundToIntegralValue(&trunc, d); err != nil {
		return 0, warn(WarnCastImpossible, target, from)
	}
	i, err := trunc.Int64()
	if err != nil {
		if d.Negative {
			return math.MinInt64, warn(WarnOutOfRange, target, from)
		}
		return math.MaxInt64, warn(WarnOutOfRange, target, from)
	}
	if trunc.Cmp(d) != 0 {
		return i, warn(WarnTruncated, target, from)
	}
	return i, nil
}

// temporalToInt is the numeric reading of a temporal value, such as
// 20260823 for a date and 20260823130559 for a datetime.
func temporalToInt(tv dom.TemporalValue) int64 {
	switch tv.Kind {
	case dom.DateType:
		y, m, d, _, _, _, _ := tv.DateComponents()
		return int64(y)*10000 + int64(m)*100 + int64(d)
	case dom.TimeType:
		neg, h, mi, s, _ := tv.TimeComponents()
		v := int64(h)*10000 + int64(mi)*100 + int64(s)
		if neg {
			return -v
		}
		return v
	}
	y, m, d, h, mi, s, _ := tv.DateComponents()
	date := int64(y)*10000 + int64(m)*100 + int64(d)
	return date*1000000 + int64(h)*10000 + int64(mi)*100 + int64(s)
}

// CoerceReal converts the wrapped value to a double under the same
// policy as CoerceInt.
func (w *Wrapper) CoerceReal() (float64, *Warning) {
	const target = "DOUBLE"
	t := w.Type()
	switch t {
	case dom.DoubleType:
		return w.Double(), nil
	case dom.IntType:
		return float64(w.Int64()), nil
	case dom.UintType:
		return float64(w.Uint64()), nil
	case dom.BoolType:
		if w.Bool() {
			return 1, nil
		}
		return 0, nil
	case dom.DecimalType:
		d, err := w.Decimal()
		if err != nil {
			return 0, warn(WarnCastImpossible, target, t)
		}
		f, err := d.Float64()
		if err != nil {
			return 0, warn(WarnOutOfRange, target, t)
		}
		return f, nil
	case dom.StringType:
		return parseRealPrefix(w.Str(), t)
	case dom.DateType, dom.TimeType, dom.DateTimeType, dom.TimestampType:
		tv, err := w.Temporal()
		if err != nil {
			return 0, warn(WarnCastImpossible, target, t)
		}
		return float64(temporalToInt(tv)), nil
	}
	return 0, warn(WarnCastImpossible, target, t)
}

// parseRealPrefix parses the longest leading float of s.
func parseRealPrefix(s string, from dom.Type) (float64, *Warning) {
	const target = "DOUBLE"
	t := strings.TrimSpace(s)
	end := floatPrefixLen(t)
	if end == 0 {
		return 0, warn(WarnTruncated, target, from)
	}
	f, err := strconv.ParseFloat(t[:end], 64)
	if err != nil {
		return 0, warn(WarnTruncated, target, from)
	}
	if math.IsInf(f, 0) {
		f = math.Copysign(math.MaxFloat64, f)
		return f, warn(WarnOutOfRange, target, from)
	}
	if end != len(t) {
		return f, warn(WarnTruncated, target, from)
	}
	return f, nil
}

// floatPrefixLen finds the longest prefix of t that parses as a float
// literal: sign, digits, fraction, exponent.
func floatPrefixLen(t string) int {
	i := 0
	if i < len(t) && (t[i] == '+' || t[i] == '-') {
		i++
	}
	digits := func() int {
		n := 0
		for i < len(t) && t[i] >= '0' && t[i] <= '9' {
			i++
			n++
		}
		return n
	}
	intDigits := digits()
	fracDigits := 0
	if i < len(t) && t[i] == '.' {
		i++
		fracDigits = digits()
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0
	}
	end := i
	if i < len(t) && (t[i] == 'e' || t[i] == 'E') {
		i++
		if i < len(t) && (t[i] == '+' || t[i] == '-') {
			i++
		}
		if digits() > 0 {
			end = i
		}
	}
	return end
}

// CoerceDecimal converts the wrapped value to an exact decimal.
func (w *Wrapper) CoerceDecimal() (*apd.Decimal, *Warning) {
	const target = "DECIMAL"
	t := w.Type()
	switch t {
	case dom.DecimalType:
		d, err := w.Decimal()
		if err != nil {
			return apd.New(0, 0), warn(WarnCastImpossible, target, t)
		}
		return d, nil
	case dom.IntType:
		return apd.New(w.Int64(), 0), nil
	case dom.UintType:
		d, _, err := apd.NewFromString(strconv.FormatUint(w.Uint64(), 10))
		if err != nil {
			return apd.New(0, 0), warn(WarnCastImpossible, target, t)
		}
		return d, nil
	case dom.DoubleType:
		d := &apd.Decimal{}
		if _, err := d.SetFloat64(w.Double()); err != nil {
			return apd.New(0, 0), warn(WarnOutOfRange, target, t)
		}
		return d, nil
	case dom.BoolType:
		if w.Bool() {
			return apd.New(1, 0), nil
		}
		return apd.New(0, 0), nil
	case dom.StringType:
		s := strings.TrimSpace(w.Str())
		if d, _, err := apd.NewFromString(s); err == nil {
			return d, nil
		}
		if end := floatPrefixLen(s); end > 0 {
			if d, _, err := apd.NewFromString(s[:end]); err == nil {
				return d, warn(WarnTruncated, target, t)
			}
		}
		return apd.New(0, 0), warn(WarnTruncated, target, t)
	case dom.DateType, dom.TimeType, dom.DateTimeType, dom.TimestampType:
		tv, err := w.Temporal()
		if err != nil {
			return apd.New(0, 0), warn(WarnCastImpossible, target, t)
		}
		return apd.New(temporalToInt(tv), 0), nil
	}
	return apd.New(0, 0), warn(WarnCastImpossible, target, t)
}

// CoerceDate converts the wrapped value to a date. Datetime and
// timestamp values keep their date part; strings parse as
// "YYYY-MM-DD" or a full datetime.
func (w *Wrapper) CoerceDate() (dom.TemporalValue, *Warning) {
	const target = "DATE"
	t := w.Type()
	switch t {
	case dom.DateType:
		tv, _ := w.Temporal()
		return tv, nil
	case dom.DateTimeType, dom.TimestampType:
		tv, err := w.Temporal()
		if err != nil {
			return dom.NewDate(0, 0, 0), warn(WarnCastImpossible, target, t)
		}
		y, m, d, _, _, _, _ := tv.DateComponents()
		return dom.NewDate(y, m, d), nil
	case dom.StringType:
		if tv, ok := parseDateString(w.Str()); ok {
			y, m, d, _, _, _, _ := tv.DateComponents()
			return dom.NewDate(y, m, d), nil
		}
		return dom.NewDate(0, 0, 0), warn(WarnTruncated, target, t)
	}
	return dom.NewDate(0, 0, 0), warn(WarnCastImpossible, target, t)
}

// CoerceTime converts the wrapped value to a time of day. Datetime and
// timestamp values keep their time part.
func (w *Wrapper) CoerceTime() (dom.TemporalValue, *Warning) {
	const target = "TIME"
	t := w.Type()
	switch t {
	case dom.TimeType:
		tv, _ := w.Temporal()
		return tv, nil
	case dom.DateTimeType, dom.TimestampType:
		tv, err := w.Temporal()
		if err != nil {
			return dom.NewTime(false, 0, 0, 0, 0), warn(WarnCastImpossible, target, t)
		}
		_, _, _, h, mi, s, us := tv.DateComponents()
		return dom.NewTime(false, h, mi, s, us), nil
	case dom.StringType:
		if tv, ok := parseTimeString(w.Str()); ok {
			return tv, nil
		}
		return dom.NewTime(false, 0, 0, 0, 0), warn(WarnTruncated, target, t)
	}
	return dom.NewTime(false, 0, 0, 0, 0), warn(WarnCastImpossible, target, t)
}

func parseDateString(s string) (dom.TemporalValue, bool) {
	s = strings.TrimSpace(s)
	var y, m, d, h, mi, sec int
	if n, err := fmt.Sscanf(s, "%d-%d-%d %d:%d:%d", &y, &m, &d, &h, &mi, &sec); err == nil && n == 6 {
		return dom.NewDateTime(y, m, d, h, mi, sec, 0), true
	}
	if n, err := fmt.Sscanf(s, "%d-%d-%d", &y, &m, &d); err == nil && n == 3 {
		return dom.NewDate(y, m, d), true
	}
	return dom.TemporalValue{}, false
}

func parseTimeString(s string) (dom.TemporalValue, bool) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var h, mi, sec int
	if n, err := fmt.Sscanf(s, "%d:%d:%d", &h, &mi, &sec); err == nil && n == 3 {
		return dom.NewTime(neg, h, mi, sec, 0), true
	}
	return dom.TemporalValue{}, false
}
