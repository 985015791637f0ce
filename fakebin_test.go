package jsonval

import (
	"encoding/binary"
	"fmt"

	"github.com/stratodb/jsonval/dom"
	"github.com/stratodb/jsonval/jsonbin"
	"github.com/stratodb/jsonval/parse"
)

// fakeFormat is an in-memory stand-in for the binary encoding: the
// "buffer" is compact JSON text and reserved slack is tracked per
// location outside the buffer. It honors the adapter protocol (views,
// space accounting, shadow writes on a private copy) closely enough to
// exercise every binary code path.
type fakeFormat struct {
	// slack maps a location path (string form) to reserved bytes
	slack map[string]int
}

func newFakeFormat() *fakeFormat {
	return &fakeFormat{slack: map[string]int{}}
}

func (f *fakeFormat) Parse(data []byte) (jsonbin.Value, error) {
	n, err := parse.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", jsonbin.ErrBadBinary, err)
	}
	return &fakeValue{fmt: f, node: n, root: n}, nil
}

func (f *fakeFormat) Serialize(n *dom.Node) ([]byte, error) {
	s, err := NewDOM(n).ToString()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (f *fakeFormat) SpaceNeeded(n *dom.Node, large bool) (int, error) {
	d, err := f.Serialize(n)
	if err != nil {
		return 0, err
	}
	return len(d), nil
}

type fakeValue struct {
	fmt  *fakeFormat
	node *dom.Node
	root *dom.Node
}

func (v *fakeValue) Type() jsonbin.Type {
	switch v.node.Type {
	case dom.ObjectType:
		return jsonbin.ObjectType
	case dom.ArrayType:
		return jsonbin.ArrayType
	case dom.StringType:
		return jsonbin.StringType
	case dom.IntType:
		return jsonbin.IntType
	case dom.UintType:
		return jsonbin.UintType
	case dom.DoubleType:
		return jsonbin.DoubleType
	case dom.NullType:
		return jsonbin.LiteralNullType
	case dom.BoolType:
		if v.node.Bool {
			return jsonbin.LiteralTrueType
		}
		return jsonbin.LiteralFalseType
	case dom.DecimalType, dom.DateType, dom.TimeType, dom.DateTimeType,
		dom.TimestampType, dom.OpaqueType:
		return jsonbin.OpaqueType
	}
	return jsonbin.ErrorType
}

func (v *fakeValue) ElementCount() int {
	switch v.node.Type {
	case dom.ObjectType:
		return v.node.Cardinality()
	case dom.ArrayType:
		return v.node.Size()
	}
	return 0
}

func (v *fakeValue) Key(i int) string {
	k, _ := v.node.MemberAt(i)
	return k
}

func (v *fakeValue) Element(i int) jsonbin.Value {
	var child *dom.Node
	switch v.node.Type {
	case dom.ObjectType:
		_, child = v.node.MemberAt(i)
	case dom.ArrayType:
		child = v.node.Element(i)
	}
	return &fakeValue{fmt: v.fmt, node: child, root: v.root}
}

func (v *fakeValue) LookupIndex(key string) int {
	n := v.node.Cardinality()
	for i := 0; i < n; i++ {
		if k, _ := v.node.MemberAt(i); k == key {
			return i
		}
	}
	return n
}

func (v *fakeValue) Int64() int64     { return v.node.Int64 }
func (v *fakeValue) Uint64() uint64   { return v.node.Uint64 }
func (v *fakeValue) Double() float64  { return v.node.Float64 }
func (v *fakeValue) LargeFormat() bool { return false }

func (v *fakeValue) Data() []byte {
	switch v.node.Type {
	case dom.StringType:
		return []byte(v.node.Str)
	case dom.DecimalType:
		return []byte(v.node.Dec.String())
	case dom.DateType, dom.TimeType, dom.DateTimeType, dom.TimestampType:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(v.node.Time.Packed))
		return b[:]
	case dom.OpaqueType:
		return v.node.Opaque.Data
	}
	return nil
}

func (v *fakeValue) FieldType() dom.FieldType {
	switch v.node.Type {
	case dom.DecimalType:
		return dom.FieldTypeNewDecimal
	case dom.DateType:
		return dom.FieldTypeDate
	case dom.TimeType:
		return dom.FieldTypeTime
	case dom.DateTimeType:
		return dom.FieldTypeDateTime
	case dom.TimestampType:
		return dom.FieldTypeTimestamp
	}
	return v.node.Opaque.FieldType
}

func (v *fakeValue) RawBinary() ([]byte, error) {
	return v.fmt.Serialize(v.root)
}

func (v *fakeValue) childAt(pos int) *dom.Node {
	switch v.node.Type {
	case dom.ObjectType:
		_, c := v.node.MemberAt(pos)
		return c
	case dom.ArrayType:
		return v.node.Element(pos)
	}
	return nil
}

func (v *fakeValue) slackKey(pos int) string {
	return v.childAt(pos).Location().String()
}

func (v *fakeValue) HasSpace(pos, needed int) (int, bool) {
	child := v.childAt(pos)
	if child == nil {
		return 0, false
	}
	cur, err := v.fmt.SpaceNeeded(child, false)
	if err != nil {
		return 0, false
	}
	avail := cur + v.fmt.slack[v.slackKey(pos)]
	if needed > avail {
		return 0, false
	}
	return 0, true
}

// UpdateInShadow re-reads the shadow buffer, swaps the element in the
// fresh tree and re-renders. Slack shrinks by the size delta.
func (v *fakeValue) UpdateInShadow(pos int, repl *dom.Node, offset, needed int, shadow []byte) ([]byte, error) {
	child := v.childAt(pos)
	if child == nil {
		return nil, jsonbin.ErrBadBinary
	}
	cur, err := v.fmt.SpaceNeeded(child, false)
	if err != nil {
		return nil, err
	}
	key := v.slackKey(pos)
	avail := cur + v.fmt.slack[key]
	if needed > avail {
		return nil, jsonbin.ErrNoSpace
	}

	doc, err := parse.Parse(shadow)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", jsonbin.ErrBadBinary, err)
	}
	target := locate(doc, child)
	if target == nil || !target.Parent.ReplaceChild(target, repl.Clone()) {
		return nil, jsonbin.ErrBadBinary
	}
	v.fmt.slack[key] = avail - needed
	return v.fmt.Serialize(doc)
}

func (v *fakeValue) RemoveInShadow(pos int, shadow []byte) ([]byte, error) {
	child := v.childAt(pos)
	if child == nil {
		return nil, jsonbin.ErrBadBinary
	}
	doc, err := parse.Parse(shadow)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", jsonbin.ErrBadBinary, err)
	}
	target := locate(doc, child)
	if target == nil {
		return nil, jsonbin.ErrBadBinary
	}
	parent := target.Parent
	switch parent.Type {
	case dom.ObjectType:
		loc := target.Location()
		leg := loc.Leg(loc.Len() - 1)
		parent.Remove(leg.Member)
	case dom.ArrayType:
		for i := 0; i < parent.Size(); i++ {
			if parent.Element(i) == target {
				parent.RemoveAt(i)
				break
			}
		}
	}
	return v.fmt.Serialize(doc)
}

func (v *fakeValue) FreeSpace() (int, error) {
	total := 0
	for _, s := range v.fmt.slack {
		total += s
	}
	return total, nil
}

// locate finds the node in doc at the same location ref has in its own
// tree.
func locate(doc *dom.Node, ref *dom.Node) *dom.Node {
	hits := dom.Seek(doc, ref.Location(), true)
	if len(hits) != 1 {
		return nil
	}
	return hits[0]
}

// mustBinary parses text through the fake format into a binary-backed
// wrapper with the given slack reservations (location path -> bytes).
func mustBinary(t interface {
	Helper()
	Fatalf(string, ...any)
}, text string, slack map[string]int) *Wrapper {
	t.Helper()
	f := newFakeFormat()
	for k, v := range slack {
		f.slack[k] = v
	}
	val, err := f.Parse([]byte(text))
	if err != nil {
		t.Fatalf("fake parse %q: %v", text, err)
	}
	return NewBinary(val, f)
}

var _ jsonbin.Value = (*fakeValue)(nil)
var _ jsonbin.Format = (*fakeFormat)(nil)
