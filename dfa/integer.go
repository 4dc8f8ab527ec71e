package dfa

// Integerize returns an isomorphic automaton whose states are 0..n-1 with 0
// the start state, ordered by a breadth-first walk from the start. State
// labels are dropped; unreachable states are appended after the reachable
// ones. The receiver must be total.
//
// The generator consumes this form: with consecutive integer states, path
// counts and distributions live in flat arrays instead of hash tables.
func (d *DFA) Integerize() (*DFA, error) {
	if err := d.validateTotal(); err != nil {
		return nil, err
	}

	order := make([]StateID, 0, len(d.states))
	newID := make([]StateID, len(d.states))
	for i := range newID {
		newID[i] = InvalidState
	}
	enqueue := func(id StateID) {
		if newID[id] == InvalidState {
			newID[id] = StateID(len(order))
			order = append(order, id)
		}
	}
	enqueue(StartState)
	for i := 0; i < len(order); i++ {
		for _, to := range d.states[order[i]].next {
			enqueue(to)
		}
	}
	for id := range d.states {
		enqueue(StateID(id))
	}

	out := New(d.alphabet)
	for _, old := range order {
		out.AddState(d.states[old].accepting)
	}
	for _, old := range order {
		for ci, r := range d.alphabet {
			if err := out.AddTransition(newID[old], r, newID[d.states[old].next[ci]]); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
