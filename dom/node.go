package dom

import (
	"github.com/cockroachdb/apd/v3"
)

// MaxDepth bounds document nesting for parsing, population and
// serialization.
const MaxDepth = 100

// Node is one value in a document tree, a tagged union over Type. The
// value lives in the field matching the type; container children are
// unexported so every attach point goes through a method that keeps
// ownership exclusive and parent pointers current.
//
// A node belongs to at most one container. Parent is a non-owning back
// reference, nil at the root.
type Node struct {
	Type   Type
	Parent *Node

	Bool    bool
	Int64   int64
	Uint64  uint64
	Float64 float64
	Dec     *apd.Decimal
	Str     string
	Time    TemporalValue
	Opaque  Opaque

	elems   []*Node
	members []Member
}

// Member is one key/value pair of an object. Objects keep members
// sorted by key, shorter keys first, ties broken by byte order.
type Member struct {
	Key   string
	Value *Node
}

// Opaque carries a value of a column type the document model has no
// native kind for, as raw bytes tagged with the source field type.
type Opaque struct {
	FieldType FieldType
	Data      []byte
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntType, Int64: v}
}

func FromUint(v uint64) *Node {
	return &Node{Type: UintType, Uint64: v}
}

func FromDouble(v float64) *Node {
	return &Node{Type: DoubleType, Float64: v}
}

func FromDecimal(d *apd.Decimal) *Node {
	return &Node{Type: DecimalType, Dec: d}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, Str: v}
}

func FromOpaque(ft FieldType, data []byte) *Node {
	return &Node{Type: OpaqueType, Opaque: Opaque{FieldType: ft, Data: data}}
}

func FromTemporal(tv TemporalValue) *Node {
	return &Node{Type: tv.Kind, Time: tv}
}

func NewArray() *Node {
	return &Node{Type: ArrayType}
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

// Clone returns a deep copy of the subtree rooted at n. The copy's
// root has no parent.
func (n *Node) Clone() *Node {
	res := &Node{}
	n.cloneTo(res)
	return res
}

func (n *Node) cloneTo(dst *Node) {
	dst.Type = n.Type
	dst.Bool = n.Bool
	dst.Int64 = n.Int64
	dst.Uint64 = n.Uint64
	dst.Float64 = n.Float64
	dst.Str = n.Str
	dst.Time = n.Time
	if n.Dec != nil {
		dst.Dec = &apd.Decimal{}
		dst.Dec.Set(n.Dec)
	}
	if n.Opaque.Data != nil {
		data := make([]byte, len(n.Opaque.Data))
		copy(data, n.Opaque.Data)
		dst.Opaque = Opaque{FieldType: n.Opaque.FieldType, Data: data}
	} else {
		dst.Opaque = n.Opaque
	}
	if n.elems != nil {
		dst.elems = make([]*Node, len(n.elems))
		for i, el := range n.elems {
			c := &Node{}
			el.cloneTo(c)
			c.Parent = dst
			dst.elems[i] = c
		}
	}
	if n.members != nil {
		dst.members = make([]Member, len(n.members))
		for i := range n.members {
			c := &Node{}
			n.members[i].Value.cloneTo(c)
			c.Parent = dst
			dst.members[i] = Member{Key: n.members[i].Key, Value: c}
		}
	}
}

// Depth is 1 for scalars and empty containers, 1 plus the deepest
// child otherwise.
func (n *Node) Depth() int {
	maxChild := 0
	switch n.Type {
	case ArrayType:
		for _, el := range n.elems {
			if d := el.Depth(); d > maxChild {
				maxChild = d
			}
		}
	case ObjectType:
		for i := range n.members {
			if d := n.members[i].Value.Depth(); d > maxChild {
				maxChild = d
			}
		}
	default:
		return 1
	}
	return 1 + maxChild
}

// Root walks parent references to the tree root.
func (n *Node) Root() *Node {
	res := n
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// Len is the element count of an array, the cardinality of an object
// and 1 for scalars.
func (n *Node) Len() int {
	switch n.Type {
	case ArrayType:
		return len(n.elems)
	case ObjectType:
		return len(n.members)
	}
	return 1
}

// Visit walks the subtree in pre and post order, arrays by position
// and objects in key order. Returning dive=false skips children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		switch n.Type {
		case ArrayType:
			for _, el := range n.elems {
				if err := el.Visit(f); err != nil {
					return err
				}
			}
		case ObjectType:
			for i := range n.members {
				if err := n.members[i].Value.Visit(f); err != nil {
					return err
				}
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

// detach severs the parent link, making n a root.
func (n *Node) detach() *Node {
	n.Parent = nil
	return n
}
