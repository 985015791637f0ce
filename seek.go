package jsonval

import (
	"github.com/stratodb/jsonval/debug"
	"github.com/stratodb/jsonval/dom"
	"github.com/stratodb/jsonval/jpath"
)

// Seek evaluates a path against the wrapped value and returns every
// match in document order; with onlyNeedOne, only the first.
//
// An ellipsis-free path is walked by direct recursion on whichever
// representation is in play; the hits alias the source (tree) or view
// the buffer (binary). A path with an ellipsis needs identity-based
// duplicate suppression, so the value is materialized to a tree first
// and every hit is cloned into an owning wrapper.
func (w *Wrapper) Seek(p *jpath.Path, onlyNeedOne bool) ([]*Wrapper, error) {
	if w.Empty() {
		return nil, ErrEmpty
	}
	if debug.Seek() {
		debug.Logf("seek %s (onlyNeedOne=%v)\n", p, onlyNeedOne)
	}
	if !p.ContainsEllipsis() {
		var hits []*Wrapper
		seekNoEllipsis(w, p.Legs(), onlyNeedOne, &hits)
		return hits, nil
	}
	n, err := w.ToDOM()
	if err != nil {
		return nil, err
	}
	var hits []*Wrapper
	for _, hit := range dom.Seek(n, p, onlyNeedOne) {
		hits = append(hits, NewDOM(hit.Clone()))
	}
	return hits, nil
}

// seekNoEllipsis walks the remaining legs from w, appending matches of
// the final leg. The return value is true once onlyNeedOne is
// satisfied. Non-arrays auto-wrap under array legs.
func seekNoEllipsis(w *Wrapper, legs []jpath.Leg, onlyNeedOne bool, hits *[]*Wrapper) bool {
	if len(legs) == 0 {
		*hits = append(*hits, w)
		return onlyNeedOne
	}
	leg, rest := &legs[0], legs[1:]
	switch leg.Type {
	case jpath.MemberLeg:
		if w.Type() != dom.ObjectType {
			return false
		}
		if el := w.Lookup(leg.Member); !el.Empty() {
			return seekNoEllipsis(el, rest, onlyNeedOne, hits)
		}
	case jpath.MemberWildcardLeg:
		if w.Type() != dom.ObjectType {
			return false
		}
		it := w.ObjectIterator()
		for _, el, ok := it.Next(); ok; _, el, ok = it.Next() {
			if seekNoEllipsis(el, rest, onlyNeedOne, hits) {
				return true
			}
		}
	case jpath.ArrayCellLeg:
		if w.Type() != dom.ArrayType {
			if pos, ok := leg.Cell.Position(1); ok && pos == 0 {
				return seekNoEllipsis(w, rest, onlyNeedOne, hits)
			}
			return false
		}
		if pos, ok := leg.Cell.Position(w.Length()); ok {
			return seekNoEllipsis(w.At(pos), rest, onlyNeedOne, hits)
		}
	case jpath.ArrayRangeLeg, jpath.ArrayCellWildcardLeg:
		if w.Type() != dom.ArrayType {
			if lo, hi := leg.Range(1); hi > lo {
				return seekNoEllipsis(w, rest, onlyNeedOne, hits)
			}
			return false
		}
		lo, hi := leg.Range(w.Length())
		for i := lo; i < hi; i++ {
			if seekNoEllipsis(w.At(i), rest, onlyNeedOne, hits) {
				return true
			}
		}
	}
	return false
}
