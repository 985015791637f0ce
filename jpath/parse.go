package jpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses a path expression such as
//
//	$.a.b[3].c[last-1]["quoted key"][2 to 7][*].*
//	$**.b   (recursive descent, also written $..b)
//
// A recursive descent leg must be followed by at least one more leg.
func Parse(expr string) (*Path, error) {
	p := &parser{in: expr}
	return p.parse()
}

type parser struct {
	in  string
	pos int
}

func (p *parser) parse() (*Path, error) {
	p.skipSpace()
	if !p.eat('$') {
		return nil, p.errf("path must start with $")
	}
	res := &Path{}
	for {
		p.skipSpace()
		if p.done() {
			break
		}
		leg, err := p.parseLeg()
		if err != nil {
			return nil, err
		}
		if leg.Type == EllipsisLeg {
			if n := res.Len(); n > 0 && res.Leg(n-1).Type == EllipsisLeg {
				return nil, p.errf("consecutive recursive descents")
			}
		}
		res.Append(*leg)
	}
	if n := res.Len(); n > 0 && res.Leg(n-1).Type == EllipsisLeg {
		return nil, p.errf("path may not end with a recursive descent")
	}
	return res, nil
}

func (p *parser) parseLeg() (*Leg, error) {
	switch c := p.in[p.pos]; c {
	case '.':
		// $..x is the dotted spelling of recursive descent; consume
		// only the first dot so the second one starts the next leg.
		if p.pos+1 < len(p.in) && p.in[p.pos+1] == '.' {
			p.pos++
			return &Leg{Type: EllipsisLeg}, nil
		}
		p.pos++
		return p.parseMember()
	case '*':
		p.pos++
		if !p.eat('*') {
			return nil, p.errf("a lone * is not a leg, want .* or [*] or **")
		}
		return &Leg{Type: EllipsisLeg}, nil
	case '[':
		p.pos++
		return p.parseCell()
	default:
		return nil, p.errf("unexpected character %q", c)
	}
}

func (p *parser) parseMember() (*Leg, error) {
	p.skipSpace()
	if p.done() {
		return nil, p.errf("path ends with a dangling .")
	}
	if p.eat('*') {
		return &Leg{Type: MemberWildcardLeg}, nil
	}
	if p.in[p.pos] == '"' {
		name, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		return &Leg{Type: MemberLeg, Member: name}, nil
	}
	start := p.pos
	for !p.done() && isIdentByte(p.in[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, p.errf("expected a member name")
	}
	return &Leg{Type: MemberLeg, Member: p.in[start:p.pos]}, nil
}

func (p *parser) parseQuoted() (string, error) {
	start := p.pos
	p.pos++
	for !p.done() {
		switch p.in[p.pos] {
		case '\\':
			p.pos += 2
		case '"':
			p.pos++
			s, err := strconv.Unquote(p.in[start:p.pos])
			if err != nil {
				return "", p.errf("bad quoted member name: %v", err)
			}
			return s, nil
		default:
			p.pos++
		}
	}
	return "", p.errf("unterminated quoted member name")
}

func (p *parser) parseCell() (*Leg, error) {
	p.skipSpace()
	if p.eat('*') {
		p.skipSpace()
		if !p.eat(']') {
			return nil, p.errf("expected ] after [*")
		}
		return &Leg{Type: ArrayCellWildcardLeg}, nil
	}
	lo, err := p.parseIndex()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.eat(']') {
		return &Leg{Type: ArrayCellLeg, Cell: lo}, nil
	}
	if !p.eatWord("to") {
		return nil, p.errf("expected ] or 'to' in array leg")
	}
	hi, err := p.parseIndex()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eat(']') {
		return nil, p.errf("expected ] after array range")
	}
	return &Leg{Type: ArrayRangeLeg, Begin: lo, End: hi}, nil
}

func (p *parser) parseIndex() (ArrayIndex, error) {
	p.skipSpace()
	if p.eatWord("last") {
		p.skipSpace()
		if !p.eat('-') {
			return ArrayIndex{FromEnd: true}, nil
		}
		n, err := p.parseUint()
		if err != nil {
			return ArrayIndex{}, err
		}
		return ArrayIndex{Index: n, FromEnd: true}, nil
	}
	n, err := p.parseUint()
	if err != nil {
		return ArrayIndex{}, err
	}
	return ArrayIndex{Index: n}, nil
}

func (p *parser) parseUint() (int, error) {
	p.skipSpace()
	start := p.pos
	for !p.done() && p.in[p.pos] >= '0' && p.in[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, p.errf("expected an array index")
	}
	n, err := strconv.ParseUint(p.in[start:p.pos], 10, 32)
	if err != nil {
		return 0, p.errf("array index out of range: %v", err)
	}
	return int(n), nil
}

func (p *parser) done() bool {
	return p.pos >= len(p.in)
}

func (p *parser) eat(c byte) bool {
	if p.done() || p.in[p.pos] != c {
		return false
	}
	p.pos++
	return true
}

func (p *parser) eatWord(w string) bool {
	if !strings.HasPrefix(p.in[p.pos:], w) {
		return false
	}
	rest := p.in[p.pos+len(w):]
	if rest != "" && isIdentByte(rest[0]) {
		return false
	}
	p.pos += len(w)
	return true
}

func (p *parser) skipSpace() {
	for !p.done() && (p.in[p.pos] == ' ' || p.in[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) errf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s at offset %d in %q", ErrPath, msg, p.pos, p.in)
}

func isIdentByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '$':
		return true
	}
	return false
}
