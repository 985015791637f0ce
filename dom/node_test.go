package dom

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
)

func mustObject(t *testing.T, kvs map[string]*Node) *Node {
	t.Helper()
	obj := NewObject()
	for k, v := range kvs {
		if err := obj.Add(k, v); err != nil {
			t.Fatalf("Add(%q): %v", k, err)
		}
	}
	return obj
}

func mustArray(t *testing.T, elems ...*Node) *Node {
	t.Helper()
	arr := NewArray()
	for _, el := range elems {
		if err := arr.Append(el); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	return arr
}

func TestObjectKeyOrder(t *testing.T) {
	obj := mustObject(t, map[string]*Node{
		"bb": FromInt(1),
		"a":  FromInt(2),
		"ab": FromInt(3),
		"b":  FromInt(4),
	})
	want := []string{"a", "b", "ab", "bb"}
	for i, w := range want {
		k, _ := obj.MemberAt(i)
		if k != w {
			t.Errorf("member %d = %q, want %q", i, k, w)
		}
	}
}

func TestObjectAddDuplicateKeepsExisting(t *testing.T) {
	obj := NewObject()
	if err := obj.Add("k", FromInt(1)); err != nil {
		t.Fatal(err)
	}
	if err := obj.Add("k", FromInt(2)); err != nil {
		t.Fatal(err)
	}
	if obj.Cardinality() != 1 {
		t.Fatalf("cardinality = %d, want 1", obj.Cardinality())
	}
	if got := obj.Get("k").Int64; got != 1 {
		t.Errorf("value = %d, want the first add to win", got)
	}
}

func TestObjectAddNil(t *testing.T) {
	obj := NewObject()
	if err := obj.Add("k", nil); err == nil {
		t.Error("Add(nil): expected error")
	}
}

func TestObjectRemove(t *testing.T) {
	obj := mustObject(t, map[string]*Node{"a": FromInt(1), "b": FromInt(2)})
	child := obj.Get("a")
	if !obj.Remove("a") {
		t.Fatal("Remove(a) = false")
	}
	if obj.Remove("a") {
		t.Error("second Remove(a) = true")
	}
	if child.Parent != nil {
		t.Error("removed child still has a parent")
	}
	if obj.Cardinality() != 1 || obj.Get("b") == nil {
		t.Error("remove disturbed the remaining member")
	}
}

func TestArrayInsertClamps(t *testing.T) {
	arr := mustArray(t, FromInt(0), FromInt(1))
	if err := arr.Insert(99, FromInt(2)); err != nil {
		t.Fatal(err)
	}
	if err := arr.Insert(-5, FromInt(-1)); err != nil {
		t.Fatal(err)
	}
	want := []int64{-1, 0, 1, 2}
	if arr.Size() != len(want) {
		t.Fatalf("size = %d, want %d", arr.Size(), len(want))
	}
	for i, w := range want {
		if got := arr.Element(i).Int64; got != w {
			t.Errorf("element %d = %d, want %d", i, got, w)
		}
	}
}

func TestArrayRemoveAt(t *testing.T) {
	arr := mustArray(t, FromInt(0), FromInt(1), FromInt(2))
	if arr.RemoveAt(3) {
		t.Error("RemoveAt(3) = true on size-3 array")
	}
	if !arr.RemoveAt(1) {
		t.Fatal("RemoveAt(1) = false")
	}
	if arr.Size() != 2 || arr.Element(1).Int64 != 2 {
		t.Error("remove shifted elements incorrectly")
	}
}

func TestReplaceChild(t *testing.T) {
	obj := mustObject(t, map[string]*Node{"a": FromInt(1)})
	old := obj.Get("a")
	repl := FromString("x")
	if !obj.ReplaceChild(old, repl) {
		t.Fatal("ReplaceChild = false")
	}
	if obj.Get("a") != repl || repl.Parent != obj || old.Parent != nil {
		t.Error("replace did not rewire ownership")
	}

	arr := mustArray(t, FromInt(1), FromInt(2))
	el := arr.Element(1)
	repl2 := FromBool(true)
	if !arr.ReplaceChild(el, repl2) {
		t.Fatal("array ReplaceChild = false")
	}
	if arr.Element(1) != repl2 {
		t.Error("array element not replaced")
	}
	if arr.ReplaceChild(el, FromInt(9)) {
		t.Error("ReplaceChild of a detached node = true")
	}
}

func TestCloneIsDeepAndIndependent(t *testing.T) {
	dec, _, err := apd.NewFromString("3.14")
	if err != nil {
		t.Fatal(err)
	}
	doc := mustObject(t, map[string]*Node{
		"nums": mustArray(t, FromInt(1), FromDouble(2.5), FromDecimal(dec)),
		"s":    FromString("hello"),
		"when": FromTemporal(NewDate(2026, 8, 23)),
	})
	cp := doc.Clone()
	if cp.Parent != nil {
		t.Error("clone root has a parent")
	}

	// mutating the clone must not reach the original
	cp.Get("nums").RemoveAt(0)
	cp.Get("nums").Element(1).Dec.SetInt64(99)
	if doc.Get("nums").Size() != 3 {
		t.Error("mutating clone changed original array size")
	}
	if doc.Get("nums").Element(2).Dec.String() != "3.14" {
		t.Error("mutating clone changed original decimal")
	}
	for i := 0; i < cp.Get("nums").Size(); i++ {
		if cp.Get("nums").Element(i).Parent != cp.Get("nums") {
			t.Error("clone children not reparented")
		}
	}
}

func TestDepth(t *testing.T) {
	tests := []struct {
		name string
		n    *Node
		want int
	}{
		{"scalar", FromInt(1), 1},
		{"empty array", NewArray(), 1},
		{"empty object", NewObject(), 1},
		{"flat array", mustArray(t, FromInt(1), FromInt(2)), 2},
		{"nested", mustObject(t, map[string]*Node{
			"a": mustArray(t, FromInt(1), mustObject(t, map[string]*Node{"b": FromInt(3)})),
		}), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.Depth(); got != tt.want {
				t.Errorf("Depth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	inner := FromInt(3)
	obj := mustObject(t, map[string]*Node{"b": inner})
	doc := mustObject(t, map[string]*Node{
		"a": mustArray(t, FromInt(1), FromInt(2), obj),
	})
	_ = doc
	if got := inner.Location().String(); got != "$.a[2].b" {
		t.Errorf("Location() = %s, want $.a[2].b", got)
	}
	if got := doc.Location().String(); got != "$" {
		t.Errorf("root Location() = %s, want $", got)
	}
}

func TestTemporalPackRoundTrip(t *testing.T) {
	dt := NewDateTime(2026, 8, 23, 13, 5, 59, 250000)
	y, mo, d, h, mi, s, us := dt.DateComponents()
	if y != 2026 || mo != 8 || d != 23 || h != 13 || mi != 5 || s != 59 || us != 250000 {
		t.Errorf("DateComponents = %d-%d-%d %d:%d:%d.%d", y, mo, d, h, mi, s, us)
	}
	if got := dt.String(); got != "2026-08-23 13:05:59.250000" {
		t.Errorf("String() = %q", got)
	}

	tv := NewTime(true, 1, 2, 3, 0)
	neg, h, mi, s, us := tv.TimeComponents()
	if !neg || h != 1 || mi != 2 || s != 3 || us != 0 {
		t.Errorf("TimeComponents = %v %d:%d:%d.%d", neg, h, mi, s, us)
	}
	if got := tv.String(); got != "-01:02:03" {
		t.Errorf("String() = %q", got)
	}

	early := NewDateTime(2026, 8, 23, 13, 5, 58, 0)
	if early.Compare(dt) != -1 || dt.Compare(early) != 1 || dt.Compare(dt) != 0 {
		t.Error("packed order does not follow chronology")
	}
}

func TestFromGoToGo(t *testing.T) {
	in := map[string]any{
		"b":    true,
		"i":    int64(-7),
		"u":    uint64(7),
		"f":    2.5,
		"s":    "str",
		"null": nil,
		"arr":  []any{int64(1), "two"},
	}
	n, err := FromGo(in)
	if err != nil {
		t.Fatal(err)
	}
	out, ok := n.ToGo().(map[string]any)
	if !ok {
		t.Fatalf("ToGo() = %T, want map", n.ToGo())
	}
	if out["i"] != int64(-7) || out["u"] != uint64(7) || out["f"] != 2.5 || out["s"] != "str" {
		t.Errorf("round trip lost scalars: %v", out)
	}
	arr, ok := out["arr"].([]any)
	if !ok || len(arr) != 2 || arr[0] != int64(1) || arr[1] != "two" {
		t.Errorf("round trip lost array: %v", out["arr"])
	}
	if _, err := FromGo(struct{}{}); err == nil {
		t.Error("FromGo(struct{}{}): expected error")
	}
}
