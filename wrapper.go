package jsonval

import (
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/stratodb/jsonval/dom"
	"github.com/stratodb/jsonval/jsonbin"
)

// Wrapper unifies the two document representations behind one API: it
// holds either a tree node (owned or aliased) or a read-only binary
// view, and dispatches every operation to whichever is in play.
//
// An aliasing wrapper must not outlive the tree or buffer it borrows
// from. A binary-backed wrapper is always a view.
type Wrapper struct {
	node  *dom.Node
	alias bool

	bin    jsonbin.Value
	binFmt jsonbin.Format
	// domCache is the one-time materialization of bin, built lazily.
	domCache *dom.Node
	// shadow is the private buffer owned after a partial update.
	shadow []byte
}

// NewDOM wraps a tree, taking ownership.
func NewDOM(n *dom.Node) *Wrapper {
	return &Wrapper{node: n}
}

// AliasDOM wraps a tree without taking ownership. The wrapper must not
// outlive the tree's owner.
func AliasDOM(n *dom.Node) *Wrapper {
	return &Wrapper{node: n, alias: true}
}

// NewBinary wraps a binary view. f is needed for partial updates and
// may be nil for read-only use.
func NewBinary(v jsonbin.Value, f jsonbin.Format) *Wrapper {
	return &Wrapper{bin: v, binFmt: f}
}

// Empty reports a wrapper holding nothing, the result of moving a
// value out or of a failed lookup.
func (w *Wrapper) Empty() bool {
	return w == nil || (w.node == nil && w.bin == nil)
}

// IsDOM reports whether the wrapper is tree-backed.
func (w *Wrapper) IsDOM() bool {
	return w.node != nil
}

// Type is the value kind. Binary opaques tagged with a decimal or
// temporal column type surface as the corresponding native kind.
func (w *Wrapper) Type() dom.Type {
	switch {
	case w.Empty():
		return dom.ErrorType
	case w.node != nil:
		return w.node.Type
	}
	switch w.bin.Type() {
	case jsonbin.ObjectType:
		return dom.ObjectType
	case jsonbin.ArrayType:
		return dom.ArrayType
	case jsonbin.StringType:
		return dom.StringType
	case jsonbin.IntType:
		return dom.IntType
	case jsonbin.UintType:
		return dom.UintType
	case jsonbin.DoubleType:
		return dom.DoubleType
	case jsonbin.LiteralNullType:
		return dom.NullType
	case jsonbin.LiteralTrueType, jsonbin.LiteralFalseType:
		return dom.BoolType
	case jsonbin.OpaqueType:
		switch w.bin.FieldType() {
		case dom.FieldTypeDecimal, dom.FieldTypeNewDecimal:
			return dom.DecimalType
		case dom.FieldTypeDate:
			return dom.DateType
		case dom.FieldTypeTime:
			return dom.TimeType
		case dom.FieldTypeDateTime:
			return dom.DateTimeType
		case dom.FieldTypeTimestamp:
			return dom.TimestampType
		}
		return dom.OpaqueType
	}
	return dom.ErrorType
}

// Length is 1 for scalars, the element count for arrays, the member
// count for objects and 0 for an empty wrapper.
func (w *Wrapper) Length() int {
	switch {
	case w.Empty():
		return 0
	case w.node != nil:
		return w.node.Len()
	}
	switch w.bin.Type() {
	case jsonbin.ObjectType, jsonbin.ArrayType:
		return w.bin.ElementCount()
	}
	return 1
}

// At returns the i-th array element. Tree-backed wrappers return an
// alias, binary-backed ones a fresh view; out of bounds returns an
// empty wrapper.
func (w *Wrapper) At(i int) *Wrapper {
	switch {
	case w.Empty() || w.Type() != dom.ArrayType:
		return &Wrapper{}
	case w.node != nil:
		el := w.node.Element(i)
		if el == nil {
			return &Wrapper{}
		}
		return AliasDOM(el)
	}
	if i < 0 || i >= w.bin.ElementCount() {
		return &Wrapper{}
	}
	return NewBinary(w.bin.Element(i), w.binFmt)
}

// Lookup returns the object member under key, or an empty wrapper.
func (w *Wrapper) Lookup(key string) *Wrapper {
	switch {
	case w.Empty() || w.Type() != dom.ObjectType:
		return &Wrapper{}
	case w.node != nil:
		el := w.node.Get(key)
		if el == nil {
			return &Wrapper{}
		}
		return AliasDOM(el)
	}
	i := w.bin.LookupIndex(key)
	if i >= w.bin.ElementCount() {
		return &Wrapper{}
	}
	return NewBinary(w.bin.Element(i), w.binFmt)
}

// Key is the i-th member key of an object, in key order.
func (w *Wrapper) Key(i int) string {
	if w.node != nil {
		k, _ := w.node.MemberAt(i)
		return k
	}
	return w.bin.Key(i)
}

// ObjectIterator walks an object's members in key order.
type ObjectIterator struct {
	w    *Wrapper
	i, n int
}

func (w *Wrapper) ObjectIterator() *ObjectIterator {
	n := 0
	if w.Type() == dom.ObjectType {
		n = w.Length()
	}
	return &ObjectIterator{w: w, n: n}
}

func (it *ObjectIterator) Next() (string, *Wrapper, bool) {
	if it.i >= it.n {
		return "", nil, false
	}
	i := it.i
	it.i++
	key := it.w.Key(i)
	if it.w.node != nil {
		_, v := it.w.node.MemberAt(i)
		return key, AliasDOM(v), true
	}
	return key, NewBinary(it.w.bin.Element(i), it.w.binFmt), true
}

// Bool is the value of a BoolType wrapper.
func (w *Wrapper) Bool() bool {
	if w.node != nil {
		return w.node.Bool
	}
	return w.bin.Type() == jsonbin.LiteralTrueType
}

func (w *Wrapper) Int64() int64 {
	if w.node != nil {
		return w.node.Int64
	}
	return w.bin.Int64()
}

func (w *Wrapper) Uint64() uint64 {
	if w.node != nil {
		return w.node.Uint64
	}
	return w.bin.Uint64()
}

func (w *Wrapper) Double() float64 {
	if w.node != nil {
		return w.node.Float64
	}
	return w.bin.Double()
}

// Str is the payload of a StringType wrapper.
func (w *Wrapper) Str() string {
	if w.node != nil {
		return w.node.Str
	}
	return string(w.bin.Data())
}

// Decimal is the exact value of a DecimalType wrapper. Binary decimal
// payloads carry the text form.
func (w *Wrapper) Decimal() (*apd.Decimal, error) {
	if w.node != nil {
		return w.node.Dec, nil
	}
	d, _, err := apd.NewFromString(string(w.bin.Data()))
	if err != nil {
		return nil, fmt.Errorf("%w: decimal payload: %v", jsonbin.ErrBadBinary, err)
	}
	return d, nil
}

// Temporal is the value of a temporal-kinded wrapper. Binary temporal
// payloads carry the packed form, little endian.
func (w *Wrapper) Temporal() (dom.TemporalValue, error) {
	kind := w.Type()
	if !kind.IsTemporal() {
		return dom.TemporalValue{}, fmt.Errorf("%w: Temporal on %s", dom.ErrKind, kind)
	}
	if w.node != nil {
		return w.node.Time, nil
	}
	data := w.bin.Data()
	if len(data) != 8 {
		return dom.TemporalValue{}, fmt.Errorf("%w: temporal payload of %d bytes", jsonbin.ErrBadBinary, len(data))
	}
	packed := int64(binary.LittleEndian.Uint64(data))
	return dom.TemporalValue{Kind: kind, Packed: packed}, nil
}

// Opaque is the payload of an OpaqueType wrapper.
func (w *Wrapper) Opaque() (dom.FieldType, []byte) {
	if w.node != nil {
		return w.node.Opaque.FieldType, w.node.Opaque.Data
	}
	return w.bin.FieldType(), w.bin.Data()
}

// ToDOM materializes the value as a tree, parsing the binary form once
// and caching the result. Tree-backed wrappers return their node.
func (w *Wrapper) ToDOM() (*dom.Node, error) {
	if w.Empty() {
		return nil, ErrEmpty
	}
	if w.node != nil {
		return w.node, nil
	}
	if w.domCache == nil {
		n, err := BuildDOM(w.bin)
		if err != nil {
			return nil, err
		}
		w.domCache = n
	}
	return w.domCache, nil
}

// CloneDOM always returns a fresh owned tree, whatever the current
// representation.
func (w *Wrapper) CloneDOM() (*dom.Node, error) {
	if w.Empty() {
		return nil, ErrEmpty
	}
	if w.node != nil {
		return w.node.Clone(), nil
	}
	return BuildDOM(w.bin)
}

// Clone copies the wrapper: an owning wrapper deep-clones its tree, an
// alias shares it, a binary wrapper copies the view.
func (w *Wrapper) Clone() (*Wrapper, error) {
	switch {
	case w.Empty():
		return &Wrapper{}, nil
	case w.node != nil && !w.alias:
		return NewDOM(w.node.Clone()), nil
	case w.node != nil:
		return AliasDOM(w.node), nil
	}
	return NewBinary(w.bin, w.binFmt), nil
}

// Move transfers the held value to a new wrapper, leaving w empty.
func (w *Wrapper) Move() *Wrapper {
	res := &Wrapper{}
	*res, *w = *w, Wrapper{}
	return res
}

// Depth is the nesting depth of the document.
func (w *Wrapper) Depth() (int, error) {
	n, err := w.ToDOM()
	if err != nil {
		return 0, err
	}
	return n.Depth(), nil
}
