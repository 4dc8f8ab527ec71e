package dfa

import (
	"github.com/projectdiscovery/gologger"
)

// equivalentStates computes the state-equivalence relation: p ≡ q iff for
// every string w, running w from p and from q ends in the same
// accepting-ness. The relation starts as "same accepting-ness" and pairs are
// removed whenever some symbol sends them to an inequivalent pair, until a
// fixed point is reached.
func (d *DFA) equivalentStates() [][]bool {
	n := len(d.states)
	equiv := make([][]bool, n)
	for p := 0; p < n; p++ {
		equiv[p] = make([]bool, n)
		for q := 0; q < n; q++ {
			equiv[p][q] = d.states[p].accepting == d.states[q].accepting
		}
	}
	for changed := true; changed; {
		changed = false
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				if !equiv[p][q] {
					continue
				}
				for ci := range d.alphabet {
					dp, dq := d.states[p].next[ci], d.states[q].next[ci]
					if !equiv[dp][dq] {
						equiv[p][q], equiv[q][p] = false, false
						changed = true
						break
					}
				}
			}
		}
	}
	return equiv
}

// Minimize builds an automaton whose states are the equivalence classes of
// this one. The result recognizes the same language with the minimum number
// of states and is isomorphic to the Myhill–Nerode canonical automaton.
// The receiver must be total.
func (d *DFA) Minimize() (*DFA, error) {
	if err := d.validateTotal(); err != nil {
		return nil, err
	}
	equiv := d.equivalentStates()
	n := len(d.states)

	// Assign each state to a class, the start state's class first so the
	// rebuilt automaton keeps 0 as its start.
	class := make([]int, n)
	for i := range class {
		class[i] = -1
	}
	var reps []StateID
	assign := func(rep StateID) {
		id := len(reps)
		reps = append(reps, rep)
		for q := 0; q < n; q++ {
			if class[q] == -1 && equiv[rep][q] {
				class[q] = id
			}
		}
	}
	assign(StartState)
	for p := 0; p < n; p++ {
		if class[p] == -1 {
			assign(StateID(p))
		}
	}

	min := New(d.alphabet)
	for _, rep := range reps {
		id := min.AddState(d.states[rep].accepting)
		min.states[id].label = d.states[rep].label
	}
	for _, rep := range reps {
		from := StateID(class[rep])
		for ci, r := range d.alphabet {
			if err := min.AddTransition(from, r, StateID(class[d.states[rep].next[ci]])); err != nil {
				return nil, err
			}
		}
	}
	gologger.Debug().Msgf("dfa: minimized %d states to %d", n, len(reps))
	return min, nil
}
