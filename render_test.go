package jsonval

import (
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"github.com/stratodb/jsonval/dom"
)

func renderOf(t *testing.T, w *Wrapper, opts ...EncodeOption) string {
	t.Helper()
	s, err := w.ToString(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRenderCompact(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{`null`, `null`},
		{`true`, `true`},
		{`-42`, `-42`},
		{`18446744073709551615`, `18446744073709551615`},
		{`1.5`, `1.5`},
		{`3.0`, `3.0`},
		{`1e21`, `1e+21`},
		{`"hi"`, `"hi"`},
		{`[]`, `[]`},
		{`{}`, `{}`},
		{`[1,2,3]`, `[1, 2, 3]`},
		{`{"b":2,"a":1}`, `{"a": 1, "b": 2}`},
		{`{"a":[true,{"x":null}]}`, `{"a": [true, {"x": null}]}`},
	} {
		for _, w := range []*Wrapper{mustParse(t, tc.in), mustBinary(t, tc.in, nil)} {
			if got := renderOf(t, w); got != tc.want {
				t.Errorf("%s: got %s, want %s", tc.in, got, tc.want)
			}
		}
	}
}

func TestRenderDoubleKeepsPoint(t *testing.T) {
	// an integral double must not render as an integer
	if got := renderOf(t, val(t, 2.0)); got != "2.0" {
		t.Errorf("got %s", got)
	}
}

func TestRenderEscapes(t *testing.T) {
	w := val(t, "a\"b\\c\nd\te\x01f")
	want := `"a\"b\\c\nd\te\u0001f"`
	if got := renderOf(t, w); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRenderPretty(t *testing.T) {
	w := mustParse(t, `{"a":[1,2],"b":{"c":true},"d":[]}`)
	want := `{
  "a": [
    1,
    2
  ],
  "b": {
    "c": true
  },
  "d": []
}`
	got := renderOf(t, w, EncodePretty(true))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pretty form mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSpecialKinds(t *testing.T) {
	dec := renderOf(t, val(t, mustDecimal(t, "3.140")))
	if dec != "3.140" {
		t.Errorf("decimal rendered as %s", dec)
	}
	dt := renderOf(t, val(t, dom.NewDateTime(2026, 8, 23, 13, 5, 59, 0)))
	if dt != `"2026-08-23 13:05:59"` {
		t.Errorf("datetime rendered as %s", dt)
	}
	blob := renderOf(t, val(t, []byte{0xDE, 0xAD}))
	if blob != `"base64:type252:3q0="` {
		t.Errorf("opaque rendered as %s", blob)
	}
}

func TestRenderSizeGuard(t *testing.T) {
	w := mustParse(t, `[1, 2, 3, 4, 5, 6, 7, 8, 9, 10]`)
	if _, err := w.ToString(EncodeMaxSize(5)); !errors.Is(err, ErrSizeExceeded) {
		t.Fatalf("got %v, want ErrSizeExceeded", err)
	}
	if _, err := w.ToString(EncodeMaxSize(4096)); err != nil {
		t.Fatalf("roomy cap failed: %v", err)
	}

	// a single scalar and a container's final element must trip the
	// guard too
	long := val(t, strings.Repeat("x", 100))
	if _, err := long.ToString(EncodeMaxSize(5)); !errors.Is(err, ErrSizeExceeded) {
		t.Fatalf("lone scalar past the cap: got %v, want ErrSizeExceeded", err)
	}
	tail := mustParse(t, `[1, "abcdefghij"]`)
	if _, err := tail.ToString(EncodeMaxSize(10)); !errors.Is(err, ErrSizeExceeded) {
		t.Fatalf("last element past the cap: got %v, want ErrSizeExceeded", err)
	}
}

// Rendering then parsing reproduces an equal document.
func TestRenderRoundTrip(t *testing.T) {
	for _, text := range []string{
		`null`,
		`[1, -2.5, "x", true, null]`,
		`{"a": {"b": [1, {"c": 18446744073709551615}]}}`,
		`{"esc": "line\nbreak \"q\""}`,
	} {
		orig := mustParse(t, text)
		back := mustParse(t, renderOf(t, orig))
		if c, err := Compare(orig, back); err != nil || c != 0 {
			t.Errorf("%s did not survive the round trip (%d, %v)", text, c, err)
		}
	}
}

func TestRenderColorsPlainEquivalent(t *testing.T) {
	// the identity palette must render the plain form
	plainColors := &Colors{Default: func(s string, _ ...any) string { return s }}
	w := mustParse(t, `{"a": [1, "x"]}`)
	if got := renderOf(t, w, EncodeColors(plainColors)); got != renderOf(t, w) {
		t.Errorf("identity palette changed the output: %s", got)
	}
	// color emission is stream-detected; force it on for the check
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()
	colored := renderOf(t, w, EncodeColors(NewColors()))
	if colored == renderOf(t, w) {
		t.Error("real palette produced no escape codes")
	}
}
