package jpath

import "strings"

// Path is an ordered sequence of legs rooted at the document ($).
type Path struct {
	legs     []Leg
	ellipsis bool
}

func NewPath(legs ...Leg) *Path {
	p := &Path{}
	for i := range legs {
		p.Append(legs[i])
	}
	return p
}

func (p *Path) Append(l Leg) *Path {
	p.legs = append(p.legs, l)
	if l.Type == EllipsisLeg {
		p.ellipsis = true
	}
	return p
}

func (p *Path) Len() int {
	return len(p.legs)
}

func (p *Path) Leg(i int) *Leg {
	return &p.legs[i]
}

func (p *Path) Legs() []Leg {
	return p.legs
}

// ContainsEllipsis reports whether any leg is a recursive descent,
// which selects the general seek algorithm.
func (p *Path) ContainsEllipsis() bool {
	return p.ellipsis
}

// Prefix returns a path holding the first n legs, sharing the backing
// slice with p.
func (p *Path) Prefix(n int) *Path {
	res := &Path{legs: p.legs[:n]}
	for i := range res.legs {
		if res.legs[i].Type == EllipsisLeg {
			res.ellipsis = true
		}
	}
	return res
}

func (p *Path) String() string {
	var sb strings.Builder
	sb.WriteByte('$')
	for i := range p.legs {
		sb.WriteString(p.legs[i].String())
	}
	return sb.String()
}
