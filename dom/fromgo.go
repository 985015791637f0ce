package dom

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// FromGo builds a document from plain Go values: nil, bool, string,
// integers, floats, json.Number, *apd.Decimal, []byte (opaque blob),
// []any and map[string]any. Nested *Node values are cloned in.
func FromGo(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return FromUint(uint64(x)), nil
	case uint8:
		return FromUint(uint64(x)), nil
	case uint16:
		return FromUint(uint64(x)), nil
	case uint32:
		return FromUint(uint64(x)), nil
	case uint64:
		return FromUint(x), nil
	case float32:
		return FromDouble(float64(x)), nil
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return nil, fmt.Errorf("%w: non-finite double", ErrKind)
		}
		return FromDouble(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return FromInt(i), nil
		}
		if u, err := strconv.ParseUint(x.String(), 10, 64); err == nil {
			return FromUint(u), nil
		}
		d, _, err := apd.NewFromString(x.String())
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", x, err)
		}
		return FromDecimal(d), nil
	case *apd.Decimal:
		return FromDecimal(x), nil
	case []byte:
		data := make([]byte, len(x))
		copy(data, x)
		return FromOpaque(FieldTypeBlob, data), nil
	case TemporalValue:
		return FromTemporal(x), nil
	case *Node:
		return x.Clone(), nil
	case []any:
		arr := NewArray()
		for _, el := range x {
			c, err := FromGo(el)
			if err != nil {
				return nil, err
			}
			if err := arr.Append(c); err != nil {
				return nil, err
			}
		}
		return arr, nil
	case map[string]any:
		obj := NewObject()
		for k, el := range x {
			c, err := FromGo(el)
			if err != nil {
				return nil, err
			}
			if err := obj.Add(k, c); err != nil {
				return nil, err
			}
		}
		return obj, nil
	}
	return nil, fmt.Errorf("cannot build a document value from %T", v)
}

// ToGo converts the subtree back to plain Go values: objects become
// map[string]any, arrays []any, decimals *apd.Decimal, temporal values
// their string form, opaques their raw bytes.
func (n *Node) ToGo() any {
	switch n.Type {
	case NullType:
		return nil
	case BoolType:
		return n.Bool
	case IntType:
		return n.Int64
	case UintType:
		return n.Uint64
	case DoubleType:
		return n.Float64
	case DecimalType:
		d := &apd.Decimal{}
		d.Set(n.Dec)
		return d
	case StringType:
		return n.Str
	case DateType, TimeType, DateTimeType, TimestampType:
		return n.Time.String()
	case OpaqueType:
		data := make([]byte, len(n.Opaque.Data))
		copy(data, n.Opaque.Data)
		return data
	case ArrayType:
		res := make([]any, len(n.elems))
		for i, el := range n.elems {
			res[i] = el.ToGo()
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(n.members))
		for i := range n.members {
			res[n.members[i].Key] = n.members[i].Value.ToGo()
		}
		return res
	}
	return nil
}
