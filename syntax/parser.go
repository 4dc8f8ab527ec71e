package syntax

import (
	"fmt"
	"strings"

	"github.com/coregx/revex/algebra"
)

// Parse converts a pattern in concrete syntax into a canonical algebra term.
// Matching against the term is implicitly anchored at both ends.
func Parse(pattern string) (*algebra.Term, error) {
	p := &parser{pattern: pattern, src: []rune(pattern)}
	t, err := p.alternation()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		return nil, p.errorf(nil, "unexpected %q", p.src[p.pos])
	}
	return t, nil
}

// metaChars are the characters that must be escaped to be matched literally.
const metaChars = `.$^\*+[]()|{}?`

type parser struct {
	pattern string
	src     []rune
	pos     int
}

func (p *parser) errorf(sentinel error, format string, args ...any) error {
	return &ParseError{
		Pattern: p.pattern,
		Pos:     p.pos,
		Reason:  fmt.Sprintf(format, args...),
		Err:     sentinel,
	}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune { return p.src[p.pos] }

func (p *parser) next() rune {
	r := p.src[p.pos]
	p.pos++
	return r
}

func (p *parser) accept(r rune) bool {
	if !p.eof() && p.peek() == r {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(r rune, what string) error {
	if p.accept(r) {
		return nil
	}
	return p.errorf(nil, "missing %q in %s", r, what)
}

// lookingAt reports whether the remaining input starts with s.
func (p *parser) lookingAt(s string) bool {
	if p.pos+len(s) > len(p.src) {
		return false
	}
	return string(p.src[p.pos:p.pos+len(s)]) == s
}

func (p *parser) alternation() (*algebra.Term, error) {
	first, err := p.concatenation()
	if err != nil {
		return nil, err
	}
	parts := []*algebra.Term{first}
	for p.accept('|') {
		part, err := p.concatenation()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return algebra.Union(parts...), nil
}

func (p *parser) concatenation() (*algebra.Term, error) {
	var factors []*algebra.Term
	for !p.eof() && p.peek() != '|' && p.peek() != ')' {
		atom, err := p.atom()
		if err != nil {
			return nil, err
		}
		atom, err = p.quantifier(atom)
		if err != nil {
			return nil, err
		}
		factors = append(factors, atom)
	}
	return algebra.Concat(factors...), nil
}

func (p *parser) atom() (*algebra.Term, error) {
	switch r := p.peek(); r {
	case '(':
		return p.group()
	case '[':
		return p.charSet()
	case '.':
		p.pos++
		return algebra.Dot, nil
	case '\\':
		p.pos++
		return p.escape()
	case '*', '+', '?', '{', '}', '^', '$':
		return nil, p.errorf(nil, "unexpected metacharacter %q", r)
	default:
		p.pos++
		return algebra.Char(r), nil
	}
}

func (p *parser) group() (*algebra.Term, error) {
	switch {
	case p.lookingAt("(?#"):
		p.pos += 3
		for !p.eof() && p.peek() != ')' {
			p.pos++
		}
		if err := p.expect(')', "comment"); err != nil {
			return nil, err
		}
		return algebra.Epsilon, nil

	case p.lookingAt("(?:"):
		p.pos += 3
		return p.groupBody("group")

	case p.lookingAt("(?="):
		p.pos += 3
		inner, err := p.groupBody("lookahead")
		if err != nil {
			return nil, err
		}
		return algebra.LookAhead(algebra.Concat(inner, algebra.Star(algebra.Dot)), algebra.Epsilon), nil

	case p.lookingAt("(?!"):
		p.pos += 3
		inner, err := p.groupBody("lookahead")
		if err != nil {
			return nil, err
		}
		guard := algebra.Complement(algebra.Concat(inner, algebra.Star(algebra.Dot)))
		return algebra.LookAhead(guard, algebra.Epsilon), nil

	case p.lookingAt("(?<="):
		p.pos += 4
		inner, err := p.groupBody("lookbehind")
		if err != nil {
			return nil, err
		}
		return algebra.LookBehind(algebra.Epsilon, algebra.Concat(algebra.Star(algebra.Dot), inner)), nil

	case p.lookingAt("(?<!"):
		p.pos += 4
		inner, err := p.groupBody("lookbehind")
		if err != nil {
			return nil, err
		}
		guard := algebra.Complement(algebra.Concat(algebra.Star(algebra.Dot), inner))
		return algebra.LookBehind(algebra.Epsilon, guard), nil

	default:
		p.pos++ // consume '('
		return p.groupBody("group")
	}
}

func (p *parser) groupBody(what string) (*algebra.Term, error) {
	inner, err := p.alternation()
	if err != nil {
		return nil, err
	}
	if err := p.expect(')', what); err != nil {
		return nil, err
	}
	return inner, nil
}

func (p *parser) quantifier(atom *algebra.Term) (*algebra.Term, error) {
	if p.eof() {
		return atom, nil
	}
	switch p.peek() {
	case '*':
		p.pos++
		return algebra.Star(atom), nil
	case '+':
		p.pos++
		return algebra.Concat(atom, algebra.Star(atom)), nil
	case '?':
		p.pos++
		return algebra.Union(atom, algebra.Epsilon), nil
	case '{':
		p.pos++
		return p.repeat(atom)
	}
	return atom, nil
}

func (p *parser) repeat(atom *algebra.Term) (*algebra.Term, error) {
	lo, loSet := p.digits()
	if !p.accept(',') {
		if err := p.expect('}', "repeat"); err != nil {
			return nil, err
		}
		if !loSet {
			return nil, p.errorf(nil, "missing count in repeat")
		}
		if lo == 0 {
			return nil, p.errorf(ErrInvalidRepeat, "repeat count must be positive")
		}
		return algebra.Repeat(atom, lo), nil
	}
	hi, hiSet := p.digits()
	if err := p.expect('}', "repeat"); err != nil {
		return nil, err
	}
	if !hiSet {
		hi = -1 // open-ended, like {4,}
	}
	if hiSet && hi < lo {
		return nil, p.errorf(ErrInvalidRepeat, "repeat range {%d,%d} is reversed", lo, hi)
	}
	return algebra.RepeatRange(atom, lo, hi), nil
}

func (p *parser) digits() (int, bool) {
	start := p.pos
	n := 0
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		n = n*10 + int(p.next()-'0')
	}
	return n, p.pos > start
}

// escape parses the characters following a backslash outside a character
// set. Character classes yield set terms; everything else yields a single
// literal character.
func (p *parser) escape() (*algebra.Term, error) {
	if p.eof() {
		return nil, p.errorf(nil, "trailing backslash")
	}
	r := p.peek()
	switch r {
	case 'd', 'D', 'w', 'W', 's', 'S':
		p.pos++
		t, _ := algebra.CharClass(r)
		return t, nil
	}
	c, err := p.escapedChar()
	if err != nil {
		return nil, err
	}
	return algebra.Char(c), nil
}

// escapedChar parses the remainder of an escape that denotes one concrete
// character: control escapes, octal and hex codes, and escaped
// metacharacters.
func (p *parser) escapedChar() (rune, error) {
	r := p.next()
	switch r {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'v':
		return '\v', nil
	case 'r':
		return '\r', nil
	case 'x':
		return p.charCode(2, 16)
	case 'u':
		return p.charCode(4, 16)
	case 'U':
		return p.charCode(8, 16)
	case '0', '1', '2', '3', '4', '5', '6', '7':
		p.pos--
		return p.charCode(3, 8)
	}
	if strings.ContainsRune(metaChars, r) || r == '-' {
		return r, nil
	}
	p.pos--
	return 0, p.errorf(nil, "unknown escape \\%c", r)
}

func (p *parser) charCode(length, base int) (rune, error) {
	v := 0
	for i := 0; i < length; i++ {
		if p.eof() {
			return 0, p.errorf(nil, "truncated character code")
		}
		d := digitValue(p.peek())
		if d < 0 || d >= base {
			return 0, p.errorf(nil, "invalid digit %q in character code", p.peek())
		}
		p.pos++
		v = v*base + d
	}
	return rune(v), nil
}

func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return -1
}

// charSet parses a bracket expression. Positive members accumulate into one
// set; negated classes inside the brackets are kept apart because they do
// not reduce to a plain member list.
func (p *parser) charSet() (*algebra.Term, error) {
	p.pos++ // consume '['
	negated := p.accept('^')

	var members []rune
	var negatedClasses [][]rune
	seen := 0
	for {
		if p.eof() {
			return nil, p.errorf(nil, "missing closing ]")
		}
		if p.peek() == ']' && seen > 0 {
			p.pos++
			break
		}
		seen++

		c, classRunes, classNegated, err := p.setItem()
		if err != nil {
			return nil, err
		}
		if classRunes != nil {
			if classNegated {
				negatedClasses = append(negatedClasses, classRunes)
			} else {
				members = append(members, classRunes...)
			}
			continue
		}

		// A dash after a single character starts a range unless it is the
		// last character before the closing bracket.
		if !p.eof() && p.peek() == '-' && p.pos+1 < len(p.src) && p.src[p.pos+1] != ']' {
			p.pos++
			hi, hiClass, _, err := p.setItem()
			if err != nil {
				return nil, err
			}
			if hiClass != nil {
				return nil, p.errorf(nil, "character class as range endpoint")
			}
			if c > hi {
				return nil, p.errorf(ErrInvalidCharRange, "range %c-%c is reversed", c, hi)
			}
			for r := c; r <= hi; r++ {
				members = append(members, r)
			}
			continue
		}
		members = append(members, c)
	}

	return makeSetTerm(members, negatedClasses, negated), nil
}

// setItem parses one element of a bracket expression: either a single
// character (possibly escaped) or a character class. Exactly one of the
// character and class results is meaningful.
func (p *parser) setItem() (rune, []rune, bool, error) {
	r := p.next()
	if r != '\\' {
		return r, nil, false, nil
	}
	if p.eof() {
		return 0, nil, false, p.errorf(nil, "trailing backslash")
	}
	switch c := p.peek(); c {
	case 'd', 'D', 'w', 'W', 's', 'S':
		p.pos++
		runes, _ := algebra.ClassRunes(c)
		return 0, runes, c >= 'A' && c <= 'Z', nil
	}
	c, err := p.escapedChar()
	if err != nil {
		return 0, nil, false, err
	}
	return c, nil, false, nil
}

// makeSetTerm assembles the term for a bracket expression.
//
// A positive set is the union of its plain members with any negated classes
// it contains. A negated set accepts a character iff no item does, which by
// De Morgan is the intersection of the negated member set with the
// (un-negated) classes.
func makeSetTerm(members []rune, negatedClasses [][]rune, negated bool) *algebra.Term {
	if !negated {
		terms := make([]*algebra.Term, 0, 1+len(negatedClasses))
		terms = append(terms, algebra.CharSet(members, false))
		for _, runes := range negatedClasses {
			terms = append(terms, algebra.CharSet(runes, true))
		}
		return algebra.Union(terms...)
	}
	terms := make([]*algebra.Term, 0, 1+len(negatedClasses))
	terms = append(terms, algebra.CharSet(members, true))
	for _, runes := range negatedClasses {
		terms = append(terms, algebra.CharSet(runes, false))
	}
	return algebra.Intersect(terms...)
}
