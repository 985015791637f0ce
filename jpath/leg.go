package jpath

import (
	"fmt"
	"strconv"
)

type LegType int

const (
	MemberLeg LegType = iota
	MemberWildcardLeg
	ArrayCellLeg
	ArrayRangeLeg
	ArrayCellWildcardLeg
	EllipsisLeg
)

func (t LegType) String() string {
	s, ok := map[LegType]string{
		MemberLeg:            "Member",
		MemberWildcardLeg:    "MemberWildcard",
		ArrayCellLeg:         "ArrayCell",
		ArrayRangeLeg:        "ArrayRange",
		ArrayCellWildcardLeg: "ArrayCellWildcard",
		EllipsisLeg:          "Ellipsis",
	}[t]
	if ok {
		return s
	}
	return "<unknown leg type>"
}

// ArrayIndex is one array position in a path leg, counted from the
// front or from the back (last, last-1, ...).
type ArrayIndex struct {
	Index   int
	FromEnd bool
}

// Position resolves the index against an array of size n. The second
// return is false when the position falls outside [0, n).
func (ai ArrayIndex) Position(n int) (int, bool) {
	pos := ai.Index
	if ai.FromEnd {
		pos = n - 1 - ai.Index
	}
	return pos, pos >= 0 && pos < n
}

func (ai ArrayIndex) String() string {
	if !ai.FromEnd {
		return strconv.Itoa(ai.Index)
	}
	if ai.Index == 0 {
		return "last"
	}
	return fmt.Sprintf("last-%d", ai.Index)
}

// Leg is one step of a path. The fields used depend on Type: Member
// holds the key of a MemberLeg, Cell the index of an ArrayCellLeg, and
// Begin/End the bounds of an ArrayRangeLeg.
type Leg struct {
	Type   LegType
	Member string
	Cell   ArrayIndex
	Begin  ArrayIndex
	End    ArrayIndex
}

// IsArrayLeg reports whether the leg addresses array positions, which
// makes it subject to auto-wrapping of non-array values.
func (l *Leg) IsArrayLeg() bool {
	switch l.Type {
	case ArrayCellLeg, ArrayRangeLeg, ArrayCellWildcardLeg:
		return true
	}
	return false
}

// Range resolves the leg's array bounds against an array of size n,
// returning a half-open [lo, hi) interval clamped to the array. An
// ArrayCellWildcardLeg covers the whole array.
func (l *Leg) Range(n int) (lo, hi int) {
	switch l.Type {
	case ArrayCellWildcardLeg:
		return 0, n
	case ArrayRangeLeg:
		lo = l.Begin.Index
		if l.Begin.FromEnd {
			lo = n - 1 - l.Begin.Index
		}
		if lo < 0 {
			lo = 0
		}
		hi = l.End.Index
		if l.End.FromEnd {
			hi = n - 1 - l.End.Index
		}
		if hi >= n {
			hi = n - 1
		}
		if hi < lo {
			return 0, 0
		}
		return lo, hi + 1
	}
	return 0, 0
}

func (l *Leg) String() string {
	switch l.Type {
	case MemberLeg:
		if isIdent(l.Member) {
			return "." + l.Member
		}
		return "." + strconv.Quote(l.Member)
	case MemberWildcardLeg:
		return ".*"
	case ArrayCellLeg:
		return "[" + l.Cell.String() + "]"
	case ArrayRangeLeg:
		return fmt.Sprintf("[%s to %s]", l.Begin, l.End)
	case ArrayCellWildcardLeg:
		return "[*]"
	case EllipsisLeg:
		return "**"
	}
	return "<invalid>"
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '$':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
