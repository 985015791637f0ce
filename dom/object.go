package dom

import (
	"fmt"
	"sort"
)

// KeyLess is the member ordering of objects: shorter keys sort before
// longer ones, equal lengths fall back to byte comparison.
func KeyLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// KeyCompare is KeyLess as a three-way comparison.
func KeyCompare(a, b string) int {
	switch {
	case KeyLess(a, b):
		return -1
	case KeyLess(b, a):
		return 1
	}
	return 0
}

func (n *Node) memberIndex(key string) int {
	return sort.Search(len(n.members), func(i int) bool {
		return !KeyLess(n.members[i].Key, key)
	})
}

// Add inserts child under key, taking ownership. A key already present
// keeps its existing value and the new child is discarded; callers
// that want overwrite or merge semantics must resolve the duplicate
// before adding.
func (n *Node) Add(key string, child *Node) error {
	if n.Type != ObjectType {
		return fmt.Errorf("%w: Add on %s", ErrKind, n.Type)
	}
	if child == nil {
		return fmt.Errorf("%w: Add(%q)", ErrNilNode, key)
	}
	i := n.memberIndex(key)
	if i < len(n.members) && n.members[i].Key == key {
		return nil
	}
	child.Parent = n
	n.members = append(n.members, Member{})
	copy(n.members[i+1:], n.members[i:])
	n.members[i] = Member{Key: key, Value: child}
	return nil
}

// AddClone inserts a deep copy of child under key.
func (n *Node) AddClone(key string, child *Node) error {
	if child == nil {
		return fmt.Errorf("%w: AddClone(%q)", ErrNilNode, key)
	}
	return n.Add(key, child.Clone())
}

// Get returns the value under key, nil when absent or when n is not an
// object.
func (n *Node) Get(key string) *Node {
	if n.Type != ObjectType {
		return nil
	}
	i := n.memberIndex(key)
	if i < len(n.members) && n.members[i].Key == key {
		return n.members[i].Value
	}
	return nil
}

// Remove drops the member under key and reports whether it was there.
// The removed subtree is detached and no longer reachable from n.
func (n *Node) Remove(key string) bool {
	if n.Type != ObjectType {
		return false
	}
	i := n.memberIndex(key)
	if i >= len(n.members) || n.members[i].Key != key {
		return false
	}
	n.members[i].Value.detach()
	n.members = append(n.members[:i], n.members[i+1:]...)
	return true
}

// Cardinality is the member count of an object.
func (n *Node) Cardinality() int {
	return len(n.members)
}

// MemberAt returns the i-th member in key order.
func (n *Node) MemberAt(i int) (string, *Node) {
	m := &n.members[i]
	return m.Key, m.Value
}

// ReplaceChild swaps newChild into the position old occupies in this
// container (object or array), detaching old. It reports whether old
// was found; identity, not equality, decides.
func (n *Node) ReplaceChild(old, newChild *Node) bool {
	if newChild == nil || old == newChild {
		return false
	}
	switch n.Type {
	case ObjectType:
		for i := range n.members {
			if n.members[i].Value != old {
				continue
			}
			old.detach()
			newChild.Parent = n
			n.members[i].Value = newChild
			return true
		}
	case ArrayType:
		for i := range n.elems {
			if n.elems[i] != old {
				continue
			}
			old.detach()
			newChild.Parent = n
			n.elems[i] = newChild
			return true
		}
	}
	return false
}
