package dom

import "fmt"

// Append adds child at the end of the array, taking ownership.
func (n *Node) Append(child *Node) error {
	return n.Insert(len(n.elems), child)
}

// AppendClone adds a deep copy of child at the end of the array.
func (n *Node) AppendClone(child *Node) error {
	if child == nil {
		return fmt.Errorf("%w: AppendClone", ErrNilNode)
	}
	return n.Append(child.Clone())
}

// Insert places child at position i, taking ownership. An index past
// the end appends, a negative index prepends.
func (n *Node) Insert(i int, child *Node) error {
	if n.Type != ArrayType {
		return fmt.Errorf("%w: Insert on %s", ErrKind, n.Type)
	}
	if child == nil {
		return fmt.Errorf("%w: Insert(%d)", ErrNilNode, i)
	}
	if i < 0 {
		i = 0
	}
	if i > len(n.elems) {
		i = len(n.elems)
	}
	child.Parent = n
	n.elems = append(n.elems, nil)
	copy(n.elems[i+1:], n.elems[i:])
	n.elems[i] = child
	return nil
}

// RemoveAt drops the element at position i, reporting whether i was in
// bounds. The removed subtree is detached.
func (n *Node) RemoveAt(i int) bool {
	if n.Type != ArrayType || i < 0 || i >= len(n.elems) {
		return false
	}
	n.elems[i].detach()
	n.elems = append(n.elems[:i], n.elems[i+1:]...)
	return true
}

// Element returns the i-th array element, nil when out of bounds.
func (n *Node) Element(i int) *Node {
	if n.Type != ArrayType || i < 0 || i >= len(n.elems) {
		return nil
	}
	return n.elems[i]
}

// Size is the element count of an array.
func (n *Node) Size() int {
	return len(n.elems)
}

// consumeArray moves every element of other onto the end of n, leaving
// other an empty shell.
func (n *Node) consumeArray(other *Node) {
	for _, el := range other.elems {
		el.Parent = n
		n.elems = append(n.elems, el)
	}
	other.elems = nil
}
