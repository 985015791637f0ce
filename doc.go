// Package jsonval is a JSON value engine for a relational database's
// native JSON column type. It keeps documents in two interchangeable
// representations, a mutable tree (package dom) and an immutable
// offset-addressable binary encoding (behind package jsonbin's
// interfaces), and offers the operations a query engine needs on
// either one without the caller knowing which is in play: path seeking
// (package jpath), a total cross-type order, byte-comparable sort keys,
// rolling hash keys, scalar coercion, text rendering and in-place
// partial update of the binary form.
//
// The Wrapper type is the entry point; everything else hangs off it.
package jsonval
