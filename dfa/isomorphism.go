package dfa

import (
	"slices"

	"github.com/projectdiscovery/gologger"
)

// Isomorphism attempts to build a state bijection between two total DFAs
// over the same alphabet that preserves the start state, accepting-ness and
// every transition. It returns nil when no isomorphism exists. A partial
// automaton on either side is a contract violation reported as
// InvalidDFAError.
//
// Because both automata are deterministic and total, the mapping, if it
// exists, is unique: it is forced edge by edge from the start pair.
func (d *DFA) Isomorphism(other *DFA) (map[StateID]StateID, error) {
	if err := d.validateTotal(); err != nil {
		return nil, err
	}
	if err := other.validateTotal(); err != nil {
		return nil, err
	}
	if !sameAlphabet(d.alphabet, other.alphabet) {
		return nil, nil
	}
	if len(d.states) != len(other.states) {
		return nil, nil
	}

	mapping := map[StateID]StateID{StartState: StartState}
	frontier := []StateID{StartState}
	for len(frontier) > 0 {
		p := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		q := mapping[p]
		if d.states[p].accepting != other.states[q].accepting {
			return nil, nil
		}
		for ci, r := range d.alphabet {
			pn := d.states[p].next[ci]
			qn := other.states[q].next[other.index[r]]
			if mapped, ok := mapping[pn]; ok {
				if mapped != qn {
					gologger.Debug().Msgf(
						"dfa: inconsistent mapping %d->%d and %d via %q", pn, qn, mapped, r)
					return nil, nil
				}
				continue
			}
			mapping[pn] = qn
			frontier = append(frontier, pn)
		}
	}
	if len(mapping) != len(d.states) {
		// Unreachable states cannot be paired up by following transitions.
		return nil, nil
	}
	// Two states sent to the same target make the mapping a mere
	// homomorphism, not a bijection.
	used := make(map[StateID]bool, len(mapping))
	for _, q := range mapping {
		if used[q] {
			return nil, nil
		}
		used[q] = true
	}
	return mapping, nil
}

// sameAlphabet reports whether the two alphabets contain the same symbols,
// regardless of order.
func sameAlphabet(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := slices.Clone(a), slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}
