package dom

import (
	"github.com/stratodb/jsonval/jpath"
)

// FindChildren expands one path leg at n, appending matches to out in
// document order. seen suppresses duplicates by node identity so paths
// that re-converge (recursive descent) count a node once. autoWrap
// makes array legs treat a non-array as a one-element array. The
// return value is true once onlyNeedOne is set and a match exists.
func (n *Node) FindChildren(leg *jpath.Leg, autoWrap, onlyNeedOne bool, seen map[*Node]bool, out *[]*Node) bool {
	switch leg.Type {
	case jpath.MemberLeg:
		if n.Type != ObjectType {
			return false
		}
		if child := n.Get(leg.Member); child != nil {
			return addIfMissing(child, onlyNeedOne, seen, out)
		}
		return false
	case jpath.MemberWildcardLeg:
		if n.Type != ObjectType {
			return false
		}
		for i := range n.members {
			if addIfMissing(n.members[i].Value, onlyNeedOne, seen, out) {
				return true
			}
		}
		return false
	case jpath.ArrayCellLeg:
		if n.Type != ArrayType {
			if !autoWrap {
				return false
			}
			if _, ok := leg.Cell.Position(1); ok {
				return addIfMissing(n, onlyNeedOne, seen, out)
			}
			return false
		}
		if pos, ok := leg.Cell.Position(len(n.elems)); ok {
			return addIfMissing(n.elems[pos], onlyNeedOne, seen, out)
		}
		return false
	case jpath.ArrayRangeLeg, jpath.ArrayCellWildcardLeg:
		if n.Type != ArrayType {
			if !autoWrap {
				return false
			}
			if lo, hi := leg.Range(1); hi > lo {
				return addIfMissing(n, onlyNeedOne, seen, out)
			}
			return false
		}
		lo, hi := leg.Range(len(n.elems))
		for i := lo; i < hi; i++ {
			if addIfMissing(n.elems[i], onlyNeedOne, seen, out) {
				return true
			}
		}
		return false
	case jpath.EllipsisLeg:
		// Pre-order: the node itself, then matches under each child.
		if addIfMissing(n, onlyNeedOne, seen, out) {
			return true
		}
		switch n.Type {
		case ArrayType:
			for _, el := range n.elems {
				if el.FindChildren(leg, autoWrap, onlyNeedOne, seen, out) {
					return true
				}
			}
		case ObjectType:
			for i := range n.members {
				if n.members[i].Value.FindChildren(leg, autoWrap, onlyNeedOne, seen, out) {
					return true
				}
			}
		}
		return false
	}
	return false
}

func addIfMissing(n *Node, onlyNeedOne bool, seen map[*Node]bool, out *[]*Node) bool {
	if seen[n] {
		return false
	}
	seen[n] = true
	*out = append(*out, n)
	return onlyNeedOne
}

// Seek evaluates a path against n, returning every match in document
// order. With onlyNeedOne the walk stops at the first match of the
// final leg. Auto-wrapping of non-arrays under array legs is always in
// effect.
func Seek(n *Node, p *jpath.Path, onlyNeedOne bool) []*Node {
	candidates := []*Node{n}
	for i := 0; i < p.Len(); i++ {
		leg := p.Leg(i)
		lastLeg := i == p.Len()-1
		next := []*Node{}
		seen := map[*Node]bool{}
		for _, c := range candidates {
			if c.FindChildren(leg, true, onlyNeedOne && lastLeg, seen, &next) {
				break
			}
		}
		candidates = next
		if len(candidates) == 0 {
			return nil
		}
	}
	return candidates
}
