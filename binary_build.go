package jsonval

import (
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/stratodb/jsonval/dom"
	"github.com/stratodb/jsonval/jsonbin"
)

// BuildDOM parses a binary view into a fresh tree. Containers are
// mirrored as empty shells first and then populated element by
// element, with a stack-depth check before each descent so pathological
// input fails with dom.ErrDepth instead of exhausting the stack.
func BuildDOM(v jsonbin.Value) (*dom.Node, error) {
	return buildDOM(v, 1)
}

func buildDOM(v jsonbin.Value, depth int) (*dom.Node, error) {
	if depth > dom.MaxDepth {
		return nil, dom.ErrDepth
	}
	switch v.Type() {
	case jsonbin.ObjectType:
		obj := dom.NewObject()
		if err := populateObject(obj, v, depth); err != nil {
			return nil, err
		}
		return obj, nil
	case jsonbin.ArrayType:
		arr := dom.NewArray()
		if err := populateArray(arr, v, depth); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return scalarFromBinary(v)
}

func populateObject(obj *dom.Node, v jsonbin.Value, depth int) error {
	n := v.ElementCount()
	for i := 0; i < n; i++ {
		child, err := buildDOM(v.Element(i), depth+1)
		if err != nil {
			return err
		}
		if err := obj.Add(v.Key(i), child); err != nil {
			return err
		}
	}
	return nil
}

func populateArray(arr *dom.Node, v jsonbin.Value, depth int) error {
	n := v.ElementCount()
	for i := 0; i < n; i++ {
		child, err := buildDOM(v.Element(i), depth+1)
		if err != nil {
			return err
		}
		if err := arr.Append(child); err != nil {
			return err
		}
	}
	return nil
}

func scalarFromBinary(v jsonbin.Value) (*dom.Node, error) {
	switch v.Type() {
	case jsonbin.LiteralNullType:
		return dom.Null(), nil
	case jsonbin.LiteralTrueType:
		return dom.FromBool(true), nil
	case jsonbin.LiteralFalseType:
		return dom.FromBool(false), nil
	case jsonbin.IntType:
		return dom.FromInt(v.Int64()), nil
	case jsonbin.UintType:
		return dom.FromUint(v.Uint64()), nil
	case jsonbin.DoubleType:
		return dom.FromDouble(v.Double()), nil
	case jsonbin.StringType:
		return dom.FromString(string(v.Data())), nil
	case jsonbin.OpaqueType:
		return opaqueFromBinary(v)
	}
	return nil, fmt.Errorf("%w: value type %s", jsonbin.ErrBadBinary, v.Type())
}

// opaqueFromBinary lifts decimal and temporal opaques into their
// native kinds; everything else stays opaque.
func opaqueFromBinary(v jsonbin.Value) (*dom.Node, error) {
	ft := v.FieldType()
	switch ft {
	case dom.FieldTypeDecimal, dom.FieldTypeNewDecimal:
		d, _, err := apd.NewFromString(string(v.Data()))
		if err != nil {
			return nil, fmt.Errorf("%w: decimal payload: %v", jsonbin.ErrBadBinary, err)
		}
		return dom.FromDecimal(d), nil
	case dom.FieldTypeDate, dom.FieldTypeTime, dom.FieldTypeDateTime, dom.FieldTypeTimestamp:
		data := v.Data()
		if len(data) != 8 {
			return nil, fmt.Errorf("%w: temporal payload of %d bytes", jsonbin.ErrBadBinary, len(data))
		}
		kind := dom.DateType
		switch ft {
		case dom.FieldTypeTime:
			kind = dom.TimeType
		case dom.FieldTypeDateTime:
			kind = dom.DateTimeType
		case dom.FieldTypeTimestamp:
			kind = dom.TimestampType
		}
		packed := int64(binary.LittleEndian.Uint64(data))
		return dom.FromTemporal(dom.TemporalValue{Kind: kind, Packed: packed}), nil
	}
	data := make([]byte, len(v.Data()))
	copy(data, v.Data())
	return dom.FromOpaque(ft, data), nil
}
