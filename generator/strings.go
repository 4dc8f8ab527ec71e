package generator

import (
	"errors"
	"iter"

	"github.com/coregx/revex/dfa"
)

// ValidLengths yields, in increasing order, every length for which the
// automaton accepts at least one string. The sequence is finite when the
// language is finite and unbounded otherwise; an empty language yields
// nothing.
func (g *Generator) ValidLengths() iter.Seq[int] {
	return func(yield func(int) bool) {
		maxLen := -1
		longest, err := g.dfa.LongestString()
		switch {
		case errors.Is(err, dfa.ErrEmptyLanguage):
			return
		case errors.Is(err, dfa.ErrInfiniteLanguage):
			// Unbounded: every length is a candidate.
		default:
			maxLen = len(longest)
		}
		for length := 0; maxLen < 0 || length <= maxLen; length++ {
			if g.weight(g.dfa.Start(), length) > 0 {
				if !yield(length) {
					return
				}
			}
		}
	}
}

// MatchingStrings yields every accepted string exactly once, grouped by
// length in increasing order. Within one length, strings appear in the
// deterministic least-frequent-first symbol order. The sequence is
// unbounded when the language is infinite.
func (g *Generator) MatchingStrings() iter.Seq[string] {
	return func(yield func(string) bool) {
		for length := range g.ValidLengths() {
			if !g.emit(g.dfa.Start(), length, make([]rune, 0, length), yield) {
				return
			}
		}
	}
}

// emit walks all accepted completions of prefix with the given number of
// characters remaining, yielding each finished string. It reports false
// when the consumer stopped the iteration.
func (g *Generator) emit(state dfa.StateID, remaining int, prefix []rune, yield func(string) bool) bool {
	if remaining == 0 {
		if g.dfa.Accepting(state) {
			return yield(string(prefix))
		}
		return true
	}
	dist := g.distFor(state, remaining)
	if dist == nil {
		return true
	}
	for _, ci := range dist.order {
		next := g.dfa.NextByIndex(state, ci)
		if !g.emit(next, remaining-1, append(prefix, g.alphabet[ci]), yield) {
			return false
		}
	}
	return true
}
