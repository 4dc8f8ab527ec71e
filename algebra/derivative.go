package algebra

// Derive computes the Brzozowski derivative of t with respect to the
// character r: a term whose language is {w : rw ∈ L(t)}.
//
// The result is built with the smart constructors, so repeated derivation
// only ever produces canonical terms. That is what bounds the number of
// distinct derivatives and makes DFA construction terminate.
func Derive(t *Term, r rune) *Term {
	switch t.op {
	case OpEmpty, OpEpsilon:
		return Empty

	case OpAnyChar:
		return Epsilon

	case OpCharSet:
		if t.MatchesChar(r) {
			return Epsilon
		}
		return Empty

	case OpConcat:
		// A disjunct per nullable prefix of the children: the character may
		// be consumed by the first child, or by the second if the first
		// matches ε, and so on up to the first non-nullable child.
		d := Empty
		for i, child := range t.sub {
			rest := make([]*Term, 0, len(t.sub)-i)
			rest = append(rest, Derive(child, r))
			rest = append(rest, t.sub[i+1:]...)
			d = Union(d, Concat(rest...))
			if !child.nullable {
				break
			}
		}
		return d

	case OpUnion:
		ds := make([]*Term, len(t.sub))
		for i, c := range t.sub {
			ds[i] = Derive(c, r)
		}
		return Union(ds...)

	case OpIntersect:
		ds := make([]*Term, len(t.sub))
		for i, c := range t.sub {
			ds[i] = Derive(c, r)
		}
		return Intersect(ds...)

	case OpComplement:
		return Complement(Derive(t.sub[0], r))

	case OpStar:
		return Concat(Derive(t.sub[0], r), t)

	case OpLookAhead:
		return LookAhead(Derive(t.sub[0], r), Derive(t.sub[1], r))

	case OpLookBehind:
		return LookBehind(Derive(t.sub[0], r), Derive(t.sub[1], r))
	}
	return Empty
}

// Match reports whether t accepts exactly the string s: the left fold of
// Derive over the characters of s ends in a nullable term. Matching is
// implicitly anchored at both ends.
func Match(t *Term, s string) bool {
	for _, r := range s {
		t = Derive(t, r)
		if t == Empty {
			return false
		}
	}
	return t.nullable
}
