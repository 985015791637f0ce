package jsonval

import (
	"errors"
	"testing"
)

func TestAttemptBinaryUpdateInPlace(t *testing.T) {
	w := mustBinary(t, `{"a": 1, "b": 2}`, map[string]int{"$.b": 8})
	before := renderOf(t, w)

	applied, pathExists, err := w.AttemptBinaryUpdate(mustPath(t, `$.b`), val(t, int64(99)), false)
	if err != nil {
		t.Fatal(err)
	}
	if !applied || !pathExists {
		t.Fatalf("applied=%v pathExists=%v", applied, pathExists)
	}
	if got := renderOf(t, w); got != `{"a": 1, "b": 99}` {
		t.Errorf("document after update: %s", got)
	}
	if before != `{"a": 1, "b": 2}` {
		t.Errorf("captured original was %s", before)
	}
}

func TestAttemptBinaryUpdateNoSpace(t *testing.T) {
	w := mustBinary(t, `{"a": 1, "b": 2}`, nil)
	applied, pathExists, err := w.AttemptBinaryUpdate(
		mustPath(t, `$.a`), val(t, "a much longer replacement"), false)
	if err != nil {
		t.Fatal(err)
	}
	if applied {
		t.Error("update applied without room")
	}
	if !pathExists {
		t.Error("existing path reported missing")
	}
	if got := renderOf(t, w); got != `{"a": 1, "b": 2}` {
		t.Errorf("document changed by a refused update: %s", got)
	}
}

func TestAttemptBinaryUpdateMissingPath(t *testing.T) {
	w := mustBinary(t, `{"a": 1}`, nil)

	// replace-only of an absent path is a successful no-op
	applied, pathExists, err := w.AttemptBinaryUpdate(mustPath(t, `$.c`), val(t, int64(1)), true)
	if err != nil {
		t.Fatal(err)
	}
	if !applied || pathExists {
		t.Errorf("replaceOnly: applied=%v pathExists=%v", applied, pathExists)
	}

	// inserting needs a rebuild
	applied, pathExists, err = w.AttemptBinaryUpdate(mustPath(t, `$.c`), val(t, int64(1)), false)
	if err != nil {
		t.Fatal(err)
	}
	if applied || pathExists {
		t.Errorf("insert: applied=%v pathExists=%v", applied, pathExists)
	}
}

func TestAttemptBinaryUpdateUnsupportedPaths(t *testing.T) {
	w := mustBinary(t, `{"a": [1, 2]}`, map[string]int{"$.a[0]": 64, "$.a[1]": 64})

	for _, expr := range []string{`$.a[*]`, `$.a[0 to 1]`, `$**.a`, `$`} {
		applied, _, err := w.AttemptBinaryUpdate(mustPath(t, expr), val(t, int64(9)), false)
		if err != nil {
			t.Fatalf("%s: %v", expr, err)
		}
		if applied {
			t.Errorf("%s resolved to a single element", expr)
		}
	}
}

func TestAttemptBinaryUpdateArrayCell(t *testing.T) {
	w := mustBinary(t, `{"a": [1, 2, 3]}`, map[string]int{"$.a[1]": 16})
	applied, pathExists, err := w.AttemptBinaryUpdate(mustPath(t, `$.a[1]`), val(t, "mid"), false)
	if err != nil {
		t.Fatal(err)
	}
	if !applied || !pathExists {
		t.Fatalf("applied=%v pathExists=%v", applied, pathExists)
	}
	if got := renderOf(t, w); got != `{"a": [1, "mid", 3]}` {
		t.Errorf("document after update: %s", got)
	}

	// last resolves against the current element count
	applied, _, err = w.AttemptBinaryUpdate(mustPath(t, `$.a[last]`), val(t, int64(7)), false)
	if err != nil {
		t.Fatal(err)
	}
	if !applied {
		t.Fatal("update of the last cell refused")
	}
	if got := renderOf(t, w); got != `{"a": [1, "mid", 7]}` {
		t.Errorf("document after update: %s", got)
	}
}

func TestAttemptBinaryUpdateSlackDrains(t *testing.T) {
	w := mustBinary(t, `{"b": 2}`, map[string]int{"$.b": 3})

	// 2 -> 1234 costs 3 extra bytes, draining the reserve
	applied, _, err := w.AttemptBinaryUpdate(mustPath(t, `$.b`), val(t, int64(1234)), false)
	if err != nil || !applied {
		t.Fatalf("first update: applied=%v, %v", applied, err)
	}
	// no reserve left for further growth
	applied, _, err = w.AttemptBinaryUpdate(mustPath(t, `$.b`), val(t, int64(123456)), false)
	if err != nil {
		t.Fatal(err)
	}
	if applied {
		t.Error("second update applied with the reserve drained")
	}
	// shrinking still fits
	applied, _, err = w.AttemptBinaryUpdate(mustPath(t, `$.b`), val(t, int64(5)), false)
	if err != nil || !applied {
		t.Fatalf("shrinking update: applied=%v, %v", applied, err)
	}
	if got := renderOf(t, w); got != `{"b": 5}` {
		t.Errorf("document after updates: %s", got)
	}
}

func TestBinaryRemove(t *testing.T) {
	w := mustBinary(t, `{"a": 1, "b": [10, 20]}`, nil)

	found, err := w.BinaryRemove(mustPath(t, `$.b[0]`))
	if err != nil || !found {
		t.Fatalf("found=%v, %v", found, err)
	}
	if got := renderOf(t, w); got != `{"a": 1, "b": [20]}` {
		t.Errorf("document after remove: %s", got)
	}

	found, err = w.BinaryRemove(mustPath(t, `$.b`))
	if err != nil || !found {
		t.Fatalf("found=%v, %v", found, err)
	}
	if got := renderOf(t, w); got != `{"a": 1}` {
		t.Errorf("document after remove: %s", got)
	}

	found, err = w.BinaryRemove(mustPath(t, `$.zzz`))
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("absent path reported found")
	}
}

func TestBinaryUpdateRequiresBinary(t *testing.T) {
	w := mustParse(t, `{"a": 1}`)
	if _, _, err := w.AttemptBinaryUpdate(mustPath(t, `$.a`), val(t, int64(2)), false); !errors.Is(err, ErrNotBinary) {
		t.Errorf("got %v", err)
	}
	if _, err := w.BinaryRemove(mustPath(t, `$.a`)); !errors.Is(err, ErrNotBinary) {
		t.Errorf("got %v", err)
	}
}
