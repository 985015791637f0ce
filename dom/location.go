package dom

import (
	"github.com/stratodb/jsonval/jpath"
)

// Location reconstructs the path from the tree root down to n by
// walking parent references. Each level linear-scans the parent's
// children for pointer identity; documents are shallow so this stays
// cheap.
func (n *Node) Location() *jpath.Path {
	var legs []jpath.Leg
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		p := cur.Parent
		switch p.Type {
		case ArrayType:
			for i, el := range p.elems {
				if el == cur {
					legs = append(legs, jpath.Leg{
						Type: jpath.ArrayCellLeg,
						Cell: jpath.ArrayIndex{Index: i},
					})
					break
				}
			}
		case ObjectType:
			for i := range p.members {
				if p.members[i].Value == cur {
					legs = append(legs, jpath.Leg{
						Type:   jpath.MemberLeg,
						Member: p.members[i].Key,
					})
					break
				}
			}
		}
	}
	res := &jpath.Path{}
	for i := len(legs) - 1; i >= 0; i-- {
		res.Append(legs[i])
	}
	return res
}
