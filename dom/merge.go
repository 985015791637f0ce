package dom

// Merge combines two documents with preserve semantics, consuming both
// arguments: the result reuses their subtrees and neither input may be
// used afterwards.
//
// Rules: two arrays concatenate; two objects union, with values under
// a shared key merged recursively; anything else is wrapped into an
// array first and the arrays concatenate, so two scalars become a
// two-element array and array+scalar appends.
func Merge(a, b *Node) (*Node, error) {
	if a == nil || b == nil {
		return nil, ErrNilNode
	}
	switch {
	case a.Type == ArrayType && b.Type == ArrayType:
		a.consumeArray(b)
		return a.detach(), nil
	case a.Type == ObjectType && b.Type == ObjectType:
		if err := a.consumeObject(b); err != nil {
			return nil, err
		}
		return a.detach(), nil
	}
	left, err := makeMergeable(a)
	if err != nil {
		return nil, err
	}
	right, err := makeMergeable(b)
	if err != nil {
		return nil, err
	}
	left.consumeArray(right)
	return left.detach(), nil
}

// makeMergeable returns n if it already is an array, otherwise a new
// array owning n as its single element.
func makeMergeable(n *Node) (*Node, error) {
	if n.Type == ArrayType {
		return n, nil
	}
	arr := NewArray()
	if err := arr.Append(n.detach()); err != nil {
		return nil, err
	}
	return arr, nil
}

// consumeObject moves every member of other into n, merging values
// recursively where keys collide. other is left an empty shell.
func (n *Node) consumeObject(other *Node) error {
	members := other.members
	other.members = nil
	for i := range members {
		key, val := members[i].Key, members[i].Value
		existing := n.Get(key)
		if existing == nil {
			if err := n.Add(key, val.detach()); err != nil {
				return err
			}
			continue
		}
		merged, err := Merge(existing.detach(), val.detach())
		if err != nil {
			return err
		}
		j := n.memberIndex(key)
		merged.Parent = n
		n.members[j].Value = merged
	}
	return nil
}
