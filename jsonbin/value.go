// Package jsonbin declares the interface to the binary document
// encoding. The byte layout, element lookup, free-space accounting and
// shadow-write primitives all live with the implementation behind
// these interfaces; this engine only addresses values through them.
//
// Implementations must present object keys in the engine's canonical
// key order (shorter keys first, ties bytewise) so that key-ordered
// iteration agrees between the two representations.
//
// Payload conventions for scalar kinds the encoding has no native tag
// for: a decimal opaque carries the decimal's text form, a temporal
// opaque carries the packed int64, little endian.
package jsonbin

import (
	"errors"

	"github.com/stratodb/jsonval/dom"
)

var (
	// ErrBadBinary reports malformed binary input.
	ErrBadBinary = errors.New("invalid binary document")
	// ErrNoSpace reports that an in-place update does not fit the
	// reserved slack.
	ErrNoSpace = errors.New("insufficient space in binary document")
)

type Type int

const (
	ObjectType Type = iota
	ArrayType
	StringType
	IntType
	UintType
	DoubleType
	LiteralNullType
	LiteralTrueType
	LiteralFalseType
	OpaqueType
	ErrorType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		ObjectType:       "Object",
		ArrayType:        "Array",
		StringType:       "String",
		IntType:          "Int",
		UintType:         "Uint",
		DoubleType:       "Double",
		LiteralNullType:  "LiteralNull",
		LiteralTrueType:  "LiteralTrue",
		LiteralFalseType: "LiteralFalse",
		OpaqueType:       "Opaque",
		ErrorType:        "Error",
	}[t]
	if ok {
		return s
	}
	return "<unknown binary type>"
}

// Value is a read-only indexed view over one value inside an encoded
// document. Element and key access return fresh sub-views; views stay
// valid only as long as the backing buffer.
type Value interface {
	Type() Type

	// ElementCount is the element count of an array or the member
	// count of an object.
	ElementCount() int
	// Key returns the i-th member key of an object, in canonical key
	// order.
	Key(i int) string
	// Element returns the i-th array element or the i-th member value.
	Element(i int) Value
	// LookupIndex returns the member position of key, or
	// ElementCount() when absent.
	LookupIndex(key string) int

	Int64() int64
	Uint64() uint64
	Double() float64
	// Data is the payload of a string or opaque value.
	Data() []byte
	// FieldType tags an opaque payload's source column type.
	FieldType() dom.FieldType

	// RawBinary returns the full encoding of this value as a
	// standalone document buffer.
	RawBinary() ([]byte, error)
	// LargeFormat reports whether the enclosing container uses the
	// wide offset encoding, which changes space accounting.
	LargeFormat() bool

	// HasSpace reports whether the value at element position pos can
	// be overwritten in place by needed bytes, and at which buffer
	// offset the replacement would land.
	HasSpace(pos, needed int) (offset int, ok bool)
	// UpdateInShadow splices the encoding of repl over the element at
	// pos into shadow, a private copy of the document buffer, and
	// returns the updated buffer. The original buffer is never
	// touched.
	UpdateInShadow(pos int, repl *dom.Node, offset, needed int, shadow []byte) ([]byte, error)
	// RemoveInShadow erases the element at pos in shadow, compacting
	// the container in place, and returns the updated buffer.
	RemoveInShadow(pos int, shadow []byte) ([]byte, error)
	// FreeSpace is the total reclaimable slack of the document.
	FreeSpace() (int, error)
}

// Format encodes documents and opens encoded buffers.
type Format interface {
	// Parse opens a document buffer as a root value.
	Parse(data []byte) (Value, error)
	// Serialize encodes a tree into a standalone document buffer.
	Serialize(n *dom.Node) ([]byte, error)
	// SpaceNeeded is the encoded size of n as an element of a
	// container using the small or large offset format.
	SpaceNeeded(n *dom.Node, large bool) (int, error)
}
