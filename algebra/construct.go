package algebra

import (
	"slices"
	"sort"
)

// CharSet builds a single-character term accepting (negated: rejecting)
// exactly the given characters. Members are sorted and deduplicated.
//
// Degenerate sets collapse: a positive set with no members is Empty, and a
// negated set with no members accepts every character, i.e. Dot.
func CharSet(runes []rune, negated bool) *Term {
	members := slices.Clone(runes)
	slices.Sort(members)
	members = slices.Compact(members)
	if len(members) == 0 {
		if negated {
			return Dot
		}
		return Empty
	}
	return intern(&Term{op: OpCharSet, runes: members, negated: negated})
}

// Char builds a term accepting exactly the single character r.
func Char(r rune) *Term {
	return CharSet([]rune{r}, false)
}

// Literal builds the concatenation of the characters of s.
func Literal(s string) *Term {
	children := make([]*Term, 0, len(s))
	for _, r := range s {
		children = append(children, Char(r))
	}
	return Concat(children...)
}

// Concat builds the concatenation of the given terms.
//
// Normalizations applied: same-kind children are flattened, Empty absorbs
// the whole product, Epsilon children are dropped, zero children yield
// Epsilon and a single child is returned as-is. A LookAhead followed by more
// children absorbs them into its suffix; a LookBehind preceded by children
// absorbs them into its prefix.
func Concat(children ...*Term) *Term {
	flat := make([]*Term, 0, len(children))
	for _, c := range children {
		if c.op == OpConcat {
			flat = append(flat, c.sub...)
		} else {
			flat = append(flat, c)
		}
	}
	for _, c := range flat {
		if c == Empty {
			return Empty
		}
	}
	flat = slices.DeleteFunc(flat, func(c *Term) bool { return c == Epsilon })

	// A lookbehind constrains the text consumed before it, so everything to
	// its left belongs in its prefix.
	for i := 1; i < len(flat); i++ {
		if flat[i].op == OpLookBehind {
			pre := make([]*Term, 0, i+1)
			pre = append(pre, flat[:i]...)
			pre = append(pre, flat[i].sub[0])
			merged := LookBehind(Concat(pre...), flat[i].sub[1])
			rest := make([]*Term, 0, len(flat)-i)
			rest = append(rest, merged)
			rest = append(rest, flat[i+1:]...)
			return Concat(rest...)
		}
	}
	// A lookahead constrains the text remaining after it, so everything to
	// its right belongs in its suffix.
	for i := 0; i < len(flat)-1; i++ {
		if flat[i].op == OpLookAhead {
			post := make([]*Term, 0, len(flat)-i)
			post = append(post, flat[i].sub[1])
			post = append(post, flat[i+1:]...)
			merged := LookAhead(flat[i].sub[0], Concat(post...))
			pre := make([]*Term, 0, i+1)
			pre = append(pre, flat[:i]...)
			pre = append(pre, merged)
			return Concat(pre...)
		}
	}

	switch len(flat) {
	case 0:
		return Epsilon
	case 1:
		return flat[0]
	}
	nullable := true
	for _, c := range flat {
		if !c.nullable {
			nullable = false
			break
		}
	}
	return intern(&Term{op: OpConcat, sub: flat, nullable: nullable})
}

// Union builds the union of the given terms.
//
// Normalizations applied: same-kind children are flattened into a set, Empty
// children are dropped (Empty alone stays Empty), all non-negated character
// sets merge into one, a single survivor is returned as-is, and the children
// of the resulting node are stored in canonical order.
func Union(children ...*Term) *Term {
	set := make(map[*Term]struct{}, len(children))
	for _, c := range children {
		if c.op == OpUnion {
			for _, s := range c.sub {
				set[s] = struct{}{}
			}
		} else {
			set[c] = struct{}{}
		}
	}
	delete(set, Empty)
	if len(set) == 0 {
		return Empty
	}

	var chars []rune
	merged := false
	flat := make([]*Term, 0, len(set))
	for c := range set {
		if c.op == OpCharSet && !c.negated {
			chars = append(chars, c.runes...)
			merged = true
			continue
		}
		flat = append(flat, c)
	}
	if merged {
		flat = append(flat, CharSet(chars, false))
	}

	if len(flat) == 1 {
		return flat[0]
	}
	sort.Slice(flat, func(i, j int) bool { return Compare(flat[i], flat[j]) < 0 })
	nullable := false
	for _, c := range flat {
		if c.nullable {
			nullable = true
			break
		}
	}
	return intern(&Term{op: OpUnion, sub: flat, nullable: nullable})
}

// Intersect builds the intersection of the given terms.
//
// Normalizations applied: flattening and deduplication; Empty absorbs;
// Epsilon reduces the intersection to Epsilon or Empty depending on the
// nullability of the other conjuncts; positive character sets intersect into
// one and negated ones union into one, the negated set is subtracted from
// the positive one, and a surviving positive set is restricted to the
// characters every remaining conjunct accepts, at which point the set alone
// is the result.
func Intersect(children ...*Term) *Term {
	set := make(map[*Term]struct{}, len(children))
	for _, c := range children {
		if c.op == OpIntersect {
			for _, s := range c.sub {
				set[s] = struct{}{}
			}
		} else {
			set[c] = struct{}{}
		}
	}
	if _, ok := set[Empty]; ok {
		return Empty
	}
	if _, ok := set[Epsilon]; ok {
		for c := range set {
			if !c.nullable {
				return Empty
			}
		}
		return Epsilon
	}

	var positive, negative *Term
	flat := make([]*Term, 0, len(set))
	for c := range set {
		switch {
		case c.op == OpCharSet && !c.negated:
			if positive == nil {
				positive = c
			} else {
				positive = CharSet(intersectRunes(positive.runes, c.runes), false)
			}
		case c.op == OpCharSet && c.negated:
			if negative == nil {
				negative = c
			} else {
				negative = CharSet(append(slices.Clone(negative.runes), c.runes...), true)
			}
		default:
			flat = append(flat, c)
		}
	}
	if positive != nil && positive.op != OpCharSet {
		// The positive sets intersected to nothing.
		return Empty
	}
	if positive != nil && negative != nil {
		diff := make([]rune, 0, len(positive.runes))
		for _, r := range positive.runes {
			if !containsRune(negative.runes, r) {
				diff = append(diff, r)
			}
		}
		if len(diff) == 0 {
			return Empty
		}
		positive, negative = CharSet(diff, false), nil
	}

	if positive != nil {
		// Each remaining conjunct constrains which single characters
		// survive; the restricted set is exactly the intersection.
		acceptable := make([]rune, 0, len(positive.runes))
		for _, r := range positive.runes {
			ok := true
			for _, c := range flat {
				if !Derive(c, r).nullable {
					ok = false
					break
				}
			}
			if ok {
				acceptable = append(acceptable, r)
			}
		}
		return CharSet(acceptable, false)
	}
	if negative != nil {
		flat = append(flat, negative)
	}

	if len(flat) == 1 {
		return flat[0]
	}
	sort.Slice(flat, func(i, j int) bool { return Compare(flat[i], flat[j]) < 0 })
	nullable := true
	for _, c := range flat {
		if !c.nullable {
			nullable = false
			break
		}
	}
	return intern(&Term{op: OpIntersect, sub: flat, nullable: nullable})
}

func intersectRunes(a, b []rune) []rune {
	out := make([]rune, 0, len(a))
	for _, r := range a {
		if containsRune(b, r) {
			out = append(out, r)
		}
	}
	return out
}

// Complement builds the complement of t, pushing the operator inward with
// De Morgan's laws so that a Complement node never wraps a Union, an
// Intersection or another Complement.
func Complement(t *Term) *Term {
	switch t.op {
	case OpUnion:
		conj := make([]*Term, len(t.sub))
		for i, c := range t.sub {
			conj[i] = Complement(c)
		}
		return Intersect(conj...)
	case OpIntersect:
		disj := make([]*Term, len(t.sub))
		for i, c := range t.sub {
			disj[i] = Complement(c)
		}
		return Union(disj...)
	case OpComplement:
		return t.sub[0]
	}
	return intern(&Term{op: OpComplement, sub: []*Term{t}, nullable: !t.nullable})
}

// Star builds the Kleene closure of t. Star of Empty or Epsilon is Epsilon.
func Star(t *Term) *Term {
	if t == Empty || t == Epsilon {
		return Epsilon
	}
	return intern(&Term{op: OpStar, sub: []*Term{t}, nullable: true})
}

// LookAhead builds a term whose language is the set of strings accepted by
// both guard and suffix. The guard carries the lookahead condition (already
// augmented with Σ* by the parser); the suffix is the rest of the host
// pattern. Successive lookaheads coalesce by intersecting their guards.
func LookAhead(guard, suffix *Term) *Term {
	if guard == Empty || suffix == Empty {
		return Empty
	}
	if suffix.op == OpLookAhead {
		return LookAhead(Intersect(guard, suffix.sub[0]), suffix.sub[1])
	}
	return intern(&Term{
		op:       OpLookAhead,
		sub:      []*Term{guard, suffix},
		nullable: guard.nullable && suffix.nullable,
	})
}

// LookBehind builds a term whose language is the set of strings accepted by
// both prefix and guard. The prefix is the part of the host pattern consumed
// so far; the guard carries the lookbehind condition (already augmented with
// Σ* by the parser). Successive lookbehinds coalesce by intersecting their
// guards.
func LookBehind(prefix, guard *Term) *Term {
	if prefix == Empty || guard == Empty {
		return Empty
	}
	if prefix.op == OpLookBehind {
		return LookBehind(prefix.sub[0], Intersect(prefix.sub[1], guard))
	}
	return intern(&Term{
		op:       OpLookBehind,
		sub:      []*Term{prefix, guard},
		nullable: prefix.nullable && guard.nullable,
	})
}

// Repeat builds the n-fold concatenation of t. Repeat(t, 0) is Epsilon.
func Repeat(t *Term, n int) *Term {
	if n <= 0 {
		return Epsilon
	}
	children := make([]*Term, n)
	for i := range children {
		children[i] = t
	}
	return Concat(children...)
}

// RepeatRange builds between lo and hi repetitions of t. A negative hi means
// unbounded, i.e. lo repetitions followed by Star(t).
func RepeatRange(t *Term, lo, hi int) *Term {
	required := Repeat(t, lo)
	if hi < 0 {
		return Concat(required, Star(t))
	}
	options := make([]*Term, 0, hi-lo+1)
	for k := 0; k <= hi-lo; k++ {
		options = append(options, Repeat(t, k))
	}
	return Concat(required, Union(options...))
}
