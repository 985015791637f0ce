package dom

import (
	"fmt"
)

// TemporalValue is a date/time scalar packed into an int64 whose
// numeric order matches chronological order within a kind. Kind is one
// of DateType, TimeType, DateTimeType, TimestampType; DateTime and
// Timestamp share the packing and compare against each other.
type TemporalValue struct {
	Kind   Type
	Packed int64
}

const microsBits = 20

// packYMDHMS packs calendar fields most significant first so numeric
// comparison preserves chronological order.
func packYMDHMS(year, month, day, hour, minute, sec, micro int) int64 {
	ymd := int64(year*13+month)<<5 | int64(day)
	hms := int64(hour)<<12 | int64(minute)<<6 | int64(sec)
	return ((ymd<<17)|hms)<<microsBits | int64(micro)
}

func NewDate(year, month, day int) TemporalValue {
	return TemporalValue{Kind: DateType, Packed: packYMDHMS(year, month, day, 0, 0, 0, 0)}
}

func NewDateTime(year, month, day, hour, minute, sec, micro int) TemporalValue {
	return TemporalValue{Kind: DateTimeType, Packed: packYMDHMS(year, month, day, hour, minute, sec, micro)}
}

func NewTimestamp(year, month, day, hour, minute, sec, micro int) TemporalValue {
	tv := NewDateTime(year, month, day, hour, minute, sec, micro)
	tv.Kind = TimestampType
	return tv
}

// NewTime packs a duration-of-day value, possibly negative.
func NewTime(neg bool, hour, minute, sec, micro int) TemporalValue {
	secs := int64(hour)*3600 + int64(minute)*60 + int64(sec)
	packed := secs<<microsBits | int64(micro)
	if neg {
		packed = -packed
	}
	return TemporalValue{Kind: TimeType, Packed: packed}
}

// DateComponents decodes a DateType, DateTimeType or TimestampType
// value back into calendar fields.
func (tv TemporalValue) DateComponents() (year, month, day, hour, minute, sec, micro int) {
	p := tv.Packed
	micro = int(p & (1<<microsBits - 1))
	p >>= microsBits
	hms := p & (1<<17 - 1)
	hour = int(hms >> 12)
	minute = int(hms >> 6 & 0x3f)
	sec = int(hms & 0x3f)
	ymd := p >> 17
	day = int(ymd & 0x1f)
	ym := ymd >> 5
	year = int(ym / 13)
	month = int(ym % 13)
	return
}

// TimeComponents decodes a TimeType value.
func (tv TemporalValue) TimeComponents() (neg bool, hour, minute, sec, micro int) {
	p := tv.Packed
	if p < 0 {
		neg = true
		p = -p
	}
	micro = int(p & (1<<microsBits - 1))
	secs := p >> microsBits
	hour = int(secs / 3600)
	minute = int(secs / 60 % 60)
	sec = int(secs % 60)
	return
}

// String renders the value the way it appears inside a document, bare
// of quotes.
func (tv TemporalValue) String() string {
	switch tv.Kind {
	case DateType:
		y, m, d, _, _, _, _ := tv.DateComponents()
		return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
	case TimeType:
		neg, h, mi, s, us := tv.TimeComponents()
		sign := ""
		if neg {
			sign = "-"
		}
		if us != 0 {
			return fmt.Sprintf("%s%02d:%02d:%02d.%06d", sign, h, mi, s, us)
		}
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, mi, s)
	case DateTimeType, TimestampType:
		y, m, d, h, mi, s, us := tv.DateComponents()
		if us != 0 {
			return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%06d", y, m, d, h, mi, s, us)
		}
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", y, m, d, h, mi, s)
	}
	return "<invalid temporal>"
}

// Compare orders two temporal values of comparable kinds by their
// packed representation.
func (tv TemporalValue) Compare(other TemporalValue) int {
	switch {
	case tv.Packed < other.Packed:
		return -1
	case tv.Packed > other.Packed:
		return 1
	}
	return 0
}
