// Package literal extracts required literal fragments from algebra terms.
//
// A fragment set {l1, …, lk} is "required" when every string the term
// accepts contains at least one li as a substring. Such sets feed the
// multi-literal prefilter: an input containing none of the fragments cannot
// match, so the engine can reject it without running the derivative
// matcher.
package literal

import "github.com/coregx/revex/algebra"

// maxAlternatives bounds the fragment sets collected from unions; beyond
// this a prefilter stops paying for itself.
const maxAlternatives = 64

// RequiredAlternatives returns a set of substrings of which every accepted
// string must contain at least one, or nil when no such usable set exists
// (the empty string is accepted, the structure is opaque, or the set would
// be too large).
func RequiredAlternatives(t *algebra.Term) [][]byte {
	return alternatives(t)
}

func alternatives(t *algebra.Term) [][]byte {
	switch t.Op() {
	case algebra.OpCharSet:
		if t.Negated() || len(t.Runes()) != 1 {
			return nil
		}
		return [][]byte{[]byte(string(t.Runes()[0]))}

	case algebra.OpConcat:
		// Every child must be traversed, so the best single child
		// requirement is required for the whole product. A run of
		// single-character sets beats anything nested.
		if run := longestRun(t.Sub()); len(run) > 0 {
			return [][]byte{run}
		}
		for _, c := range t.Sub() {
			if alts := alternatives(c); alts != nil {
				return alts
			}
		}
		return nil

	case algebra.OpUnion:
		// A union requires a fragment only if every branch does.
		var all [][]byte
		for _, c := range t.Sub() {
			alts := alternatives(c)
			if alts == nil {
				return nil
			}
			all = append(all, alts...)
			if len(all) > maxAlternatives {
				return nil
			}
		}
		return all

	case algebra.OpIntersect:
		// The language is contained in every conjunct's, so any conjunct's
		// requirement carries over.
		for _, c := range t.Sub() {
			if alts := alternatives(c); alts != nil {
				return alts
			}
		}
		return nil

	case algebra.OpLookAhead:
		return alternatives(t.Sub()[1])

	case algebra.OpLookBehind:
		return alternatives(t.Sub()[0])
	}
	return nil
}

// longestRun returns the longest consecutive run of single-character
// positive sets among the children, as raw bytes.
func longestRun(children []*algebra.Term) []byte {
	var best, cur []byte
	for _, c := range children {
		if c.Op() == algebra.OpCharSet && !c.Negated() && len(c.Runes()) == 1 {
			cur = append(cur, []byte(string(c.Runes()[0]))...)
			if len(cur) > len(best) {
				best = append(best[:0:0], cur...)
			}
			continue
		}
		cur = nil
	}
	return best
}
