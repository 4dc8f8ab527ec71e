package algebra

import (
	"testing"
)

// TestDeriveBasics covers the leaf and single-operator derivative rules.
func TestDeriveBasics(t *testing.T) {
	a, b := Char('a'), Char('b')

	tests := []struct {
		name string
		term *Term
		char rune
		want *Term
	}{
		{"empty", Empty, 'a', Empty},
		{"epsilon", Epsilon, 'a', Empty},
		{"dot", Dot, 'x', Epsilon},
		{"charset hit", a, 'a', Epsilon},
		{"charset miss", a, 'b', Empty},
		{"negated charset hit", CharSet([]rune("a"), true), 'b', Epsilon},
		{"negated charset miss", CharSet([]rune("a"), true), 'a', Empty},
		{"concat", Concat(a, b), 'a', b},
		{"concat miss", Concat(a, b), 'b', Empty},
		{"union", Union(Concat(a, b), Concat(a, a)), 'a', Union(b, a)},
		{"star", Star(a), 'a', Star(a)},
		{"complement", Complement(a), 'a', Complement(Epsilon)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Derive(tt.term, tt.char); got != tt.want {
				t.Errorf("Derive(%s, %q) = %s, want %s", tt.term, tt.char, got, tt.want)
			}
		})
	}
}

// TestDeriveConcatNullablePrefix exercises the disjunction over nullable
// prefixes: the derivative of a?[ab]?b by 'a' must allow the character to
// have been consumed by either optional child.
func TestDeriveConcatNullablePrefix(t *testing.T) {
	a, b := Char('a'), Char('b')
	optA := Union(a, Epsilon)
	optAB := Union(CharSet([]rune("ab"), false), Epsilon)
	term := Concat(optA, optAB, b)

	for _, s := range []string{"aab", "ab", "b", "bb"} {
		if !Match(term, s) {
			t.Errorf("a?[ab]?b must match %q", s)
		}
	}
	for _, s := range []string{"", "aa", "aabb", "ba"} {
		if Match(term, s) {
			t.Errorf("a?[ab]?b must not match %q", s)
		}
	}
}

// TestDeriveNullableLaw checks law: derivative(R, c).Nullable == Match(R, c).
func TestDeriveNullableLaw(t *testing.T) {
	a, b := Char('a'), Char('b')
	terms := []*Term{
		Empty, Epsilon, Dot, a,
		Concat(a, b), Union(a, Star(b)), Intersect(Star(a), Star(b)),
		Complement(Concat(a, b)), Star(Union(a, b)),
		CharSet([]rune("ab"), true),
	}
	for _, term := range terms {
		for _, c := range "ab" {
			if Derive(term, c).Nullable() != Match(term, string(c)) {
				t.Errorf("derivative law violated for %s at %q", term, c)
			}
		}
	}
}

// TestMatch exercises the derivative matcher end to end on the algebra API.
func TestMatch(t *testing.T) {
	a, b, c := Char('a'), Char('b'), Char('c')

	tests := []struct {
		name  string
		term  *Term
		yes   []string
		no    []string
	}{
		{
			"star of union",
			Star(Union(a, Concat(b, b))),
			[]string{"", "a", "bb", "abba", "bbbb"},
			[]string{"b", "ab b", "abb b"},
		},
		{
			"intersection",
			Intersect(Star(Concat(a, b)), Star(Union(a, b))),
			[]string{"", "ab", "abab"},
			[]string{"a", "ba", "aab"},
		},
		{
			"complement",
			Complement(Concat(a, b)),
			[]string{"", "a", "ba", "abc"},
			[]string{"ab"},
		},
		{
			"difference via complement",
			Intersect(Star(a), Complement(Concat(a, a))),
			[]string{"", "a", "aaa"},
			[]string{"aa", "b"},
		},
		{
			"concat",
			Concat(a, b, c),
			[]string{"abc"},
			[]string{"", "ab", "abcc", "bac"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range tt.yes {
				if !Match(tt.term, s) {
					t.Errorf("%s must match %q", tt.term, s)
				}
			}
			for _, s := range tt.no {
				if Match(tt.term, s) {
					t.Errorf("%s must not match %q", tt.term, s)
				}
			}
		})
	}
}

// TestMatchLookaround exercises the lookaround derivative rules directly on
// terms shaped the way the parser builds them.
func TestMatchLookaround(t *testing.T) {
	sigma := Star(Dot)
	foo := Literal("foo")
	bar := Literal("bar")

	// foo(?=bar).*
	lookahead := Concat(foo, LookAhead(Concat(bar, sigma), Epsilon), sigma)
	for _, s := range []string{"foobar", "foobarasdf"} {
		if !Match(lookahead, s) {
			t.Errorf("foo(?=bar).* must match %q", s)
		}
	}
	for _, s := range []string{"foobaz", "foo", "xfoobar"} {
		if Match(lookahead, s) {
			t.Errorf("foo(?=bar).* must not match %q", s)
		}
	}

	// foo(?!bar).*
	negative := Concat(foo, LookAhead(Complement(Concat(bar, sigma)), Epsilon), sigma)
	for _, s := range []string{"foobaz", "foo", "foobaqq"} {
		if !Match(negative, s) {
			t.Errorf("foo(?!bar).* must match %q", s)
		}
	}
	for _, s := range []string{"foobar", "foobarx"} {
		if Match(negative, s) {
			t.Errorf("foo(?!bar).* must not match %q", s)
		}
	}

	// .*(?<!foo)bar
	behind := Concat(sigma, LookBehind(Epsilon, Complement(Concat(sigma, foo))), bar)
	for _, s := range []string{"bar", "foodbar", "ofobar"} {
		if !Match(behind, s) {
			t.Errorf(".*(?<!foo)bar must match %q", s)
		}
	}
	for _, s := range []string{"foobar", "xxfoobar"} {
		if Match(behind, s) {
			t.Errorf(".*(?<!foo)bar must not match %q", s)
		}
	}

	// .*(?<=foo)bar
	positive := Concat(sigma, LookBehind(Epsilon, Concat(sigma, foo)), bar)
	for _, s := range []string{"foobar", "xfoobar"} {
		if !Match(positive, s) {
			t.Errorf(".*(?<=foo)bar must match %q", s)
		}
	}
	for _, s := range []string{"bar", "foodbar"} {
		if Match(positive, s) {
			t.Errorf(".*(?<=foo)bar must not match %q", s)
		}
	}
}
