package jsonval

import (
	"testing"

	"github.com/stratodb/jsonval/dom"
)

func TestCompareRanks(t *testing.T) {
	// one representative per rank, in ascending order
	ladder := []*Wrapper{
		mustParse(t, `null`),
		mustParse(t, `0`),
		mustParse(t, `""`),
		mustParse(t, `{}`),
		mustParse(t, `[]`),
		mustParse(t, `false`),
		val(t, dom.NewDate(2026, 8, 23)),
		val(t, dom.NewTime(false, 13, 5, 59, 0)),
		val(t, dom.NewDateTime(2026, 8, 23, 13, 5, 59, 0)),
		val(t, []byte("x")),
	}
	for i := 0; i < len(ladder); i++ {
		for j := 0; j < len(ladder); j++ {
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			got, err := Compare(ladder[i], ladder[j])
			if err != nil {
				t.Fatalf("(%d, %d): %v", i, j, err)
			}
			if got != want {
				t.Errorf("(%d, %d): got %d, want %d", i, j, got, want)
			}
		}
	}
}

func TestCompareNumbers(t *testing.T) {
	for _, tc := range []struct {
		name string
		a, b *Wrapper
		want int
	}{
		{"int eq", val(t, int64(5)), val(t, int64(5)), 0},
		{"int lt", val(t, int64(-2)), val(t, int64(3)), -1},
		{"uint eq", val(t, uint64(7)), val(t, uint64(7)), 0},
		{"neg int lt any uint", val(t, int64(-1)), val(t, uint64(0)), -1},
		{"max uint gt max int", val(t, int64(1<<63-1)), val(t, uint64(1<<64-1)), -1},
		{"int eq uint", val(t, int64(5)), val(t, uint64(5)), 0},
		{"double eq", val(t, 1.5), val(t, 1.5), 0},
		{"double lt int", val(t, 2.5), val(t, int64(3)), -1},
		{"double eq int", val(t, 3.0), val(t, int64(3)), 0},
		// float64(9007199254740993) collapses to ...992; the exact
		// comparison must still see the integer as larger
		{"double int precision", val(t, 9007199254740992.0), val(t, int64(9007199254740993)), -1},
		{"decimal eq int", val(t, mustDecimal(t, "3")), val(t, int64(3)), 0},
		{"decimal lt", val(t, mustDecimal(t, "2.9")), val(t, int64(3)), -1},
		// 3.14 as a double is slightly above the exact decimal 3.14
		{"decimal vs double", val(t, mustDecimal(t, "3.14")), val(t, 3.14), -1},
		{"decimal vs double tenth", val(t, mustDecimal(t, "0.1")), val(t, 0.1), -1},
		{"decimal at double value", val(t, mustDecimal(t, "0.5")), val(t, 0.5), 0},
		{"decimal big", val(t, mustDecimal(t, "1e40")), val(t, uint64(1<<64-1)), 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Compare(tc.a, tc.b)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
			rev, err := Compare(tc.b, tc.a)
			if err != nil {
				t.Fatal(err)
			}
			if rev != -tc.want {
				t.Errorf("reversed got %d, want %d", rev, -tc.want)
			}
		})
	}
}

func TestCompareContainers(t *testing.T) {
	for _, tc := range []struct {
		a, b string
		want int
	}{
		{`[]`, `[]`, 0},
		{`[1, 2]`, `[1, 2]`, 0},
		{`[1, 2]`, `[1, 3]`, -1},
		{`[1, 2]`, `[1, 2, 0]`, -1},
		{`[1, [2]]`, `[1, [3]]`, -1},
		{`{}`, `{}`, 0},
		{`{"a": 1}`, `{"a": 1}`, 0},
		{`{"a": 1}`, `{"a": 2}`, -1},
		{`{"a": 1}`, `{"a": 1, "b": 2}`, -1},
		{`{"a": 1}`, `{"b": 1}`, -1},
		{`{"bb": 1}`, `{"a": 1}`, 1},
	} {
		got, err := Compare(mustParse(t, tc.a), mustParse(t, tc.b))
		if err != nil {
			t.Fatalf("%s vs %s: %v", tc.a, tc.b, err)
		}
		if got != tc.want {
			t.Errorf("%s vs %s: got %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCompareTemporalCrossKind(t *testing.T) {
	dt := val(t, dom.NewDateTime(2026, 8, 23, 0, 0, 0, 0))
	ts := val(t, dom.NewTimestamp(2026, 8, 23, 0, 0, 0, 0))
	got, err := Compare(dt, ts)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("datetime vs equal timestamp: %d", got)
	}
	later := val(t, dom.NewTimestamp(2026, 8, 24, 0, 0, 0, 0))
	if got, _ := Compare(dt, later); got != -1 {
		t.Errorf("datetime vs later timestamp: %d", got)
	}
}

func TestCompareBinaryBacked(t *testing.T) {
	a := mustBinary(t, `{"a": [1, 2.5, "x"]}`, nil)
	b := mustParse(t, `{"a": [1, 2.5, "x"]}`)
	if got, err := Compare(a, b); err != nil || got != 0 {
		t.Fatalf("mixed representations: got %d, %v", got, err)
	}
	c := mustParse(t, `{"a": [1, 2.5, "y"]}`)
	if got, _ := Compare(a, c); got != -1 {
		t.Error("mixed representations lost the string difference")
	}
}

func TestCompareTotalOrderLaws(t *testing.T) {
	corpus := []*Wrapper{
		mustParse(t, `null`),
		mustParse(t, `-100`),
		mustParse(t, `-1.5`),
		mustParse(t, `0`),
		val(t, mustDecimal(t, "0.5")),
		mustParse(t, `1`),
		val(t, uint64(1<<64-1)),
		mustParse(t, `"a"`),
		mustParse(t, `"ab"`),
		mustParse(t, `{"a": 1}`),
		mustParse(t, `[1, 2]`),
		mustParse(t, `true`),
		val(t, dom.NewDate(2026, 1, 1)),
	}
	for i, a := range corpus {
		for j, b := range corpus {
			ab, err := Compare(a, b)
			if err != nil {
				t.Fatal(err)
			}
			ba, err := Compare(b, a)
			if err != nil {
				t.Fatal(err)
			}
			if ab != -ba {
				t.Errorf("antisymmetry broken at (%d, %d): %d vs %d", i, j, ab, ba)
			}
			if i == j && ab != 0 {
				t.Errorf("reflexivity broken at %d: %d", i, ab)
			}
		}
	}
}
