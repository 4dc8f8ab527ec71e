package dfa

import (
	"github.com/projectdiscovery/gologger"

	"github.com/coregx/revex/algebra"
)

// StateID identifies a DFA state. The start state is always 0.
type StateID uint32

// InvalidState marks an absent transition in a hand-built automaton.
const InvalidState StateID = ^StateID(0)

// StartState is the ID of the start state in every DFA built here.
const StartState StateID = 0

// DefaultAlphabet is the printable ASCII range, the alphabet used when the
// caller does not supply one.
var DefaultAlphabet = func() []rune {
	runes := make([]rune, 0, 95)
	for r := rune(0x20); r <= 0x7e; r++ {
		runes = append(runes, r)
	}
	return runes
}()

type state struct {
	label     *algebra.Term // term the state derives from; nil after Integerize
	accepting bool
	next      []StateID // indexed by symbol position in the alphabet
}

// DFA is a deterministic finite automaton over an explicit alphabet.
//
// Automata produced by Build and Minimize are total: every (state, symbol)
// pair has a transition. Automata assembled by hand through AddState and
// AddTransition may be partial until fully wired; analyses that require
// totality report InvalidDFAError in that case.
//
// A DFA is never mutated after construction and is safe for concurrent
// readers.
type DFA struct {
	alphabet []rune
	index    map[rune]int
	states   []state
}

// New returns an automaton with no states over the given alphabet.
// Duplicate alphabet symbols are dropped, keeping the first occurrence.
func New(alphabet []rune) *DFA {
	d := &DFA{index: make(map[rune]int, len(alphabet))}
	for _, r := range alphabet {
		if _, ok := d.index[r]; ok {
			continue
		}
		d.index[r] = len(d.alphabet)
		d.alphabet = append(d.alphabet, r)
	}
	return d
}

// AddState appends a state with no outgoing transitions and returns its ID.
// The first state added is the start state.
func (d *DFA) AddState(accepting bool) StateID {
	next := make([]StateID, len(d.alphabet))
	for i := range next {
		next[i] = InvalidState
	}
	d.states = append(d.states, state{accepting: accepting, next: next})
	return StateID(len(d.states) - 1)
}

// AddTransition wires δ(from, r) = to. Adding a transition for a symbol
// outside the alphabet, or re-targeting an existing transition, is an error.
func (d *DFA) AddTransition(from StateID, r rune, to StateID) error {
	i, ok := d.index[r]
	if !ok {
		return &InvalidDFAError{States: []StateID{from}}
	}
	if int(from) >= len(d.states) || int(to) >= len(d.states) {
		return &InvalidDFAError{States: []StateID{from}}
	}
	if cur := d.states[from].next[i]; cur != InvalidState && cur != to {
		return &InvalidDFAError{States: []StateID{from}}
	}
	d.states[from].next[i] = to
	return nil
}

// Build constructs the DFA of a term over the given alphabet: states are the
// derivative-reachable canonical terms, the start state is the term itself,
// and a state accepts iff its term is nullable. Termination is guaranteed by
// the normalizations the algebra applies at construction.
func Build(start *algebra.Term, alphabet []rune) *DFA {
	d := New(alphabet)
	ids := map[*algebra.Term]StateID{start: d.AddState(start.Nullable())}
	d.states[0].label = start
	queue := []*algebra.Term{start}
	for len(queue) > 0 {
		term := queue[0]
		queue = queue[1:]
		from := ids[term]
		for i, r := range d.alphabet {
			deriv := algebra.Derive(term, r)
			to, ok := ids[deriv]
			if !ok {
				to = d.AddState(deriv.Nullable())
				d.states[to].label = deriv
				ids[deriv] = to
				queue = append(queue, deriv)
			}
			d.states[from].next[i] = to
		}
	}
	gologger.Debug().Msgf("dfa: %d states over %d symbols for %s",
		len(d.states), len(d.alphabet), start)
	return d
}

// NumStates returns the number of states.
func (d *DFA) NumStates() int { return len(d.states) }

// Start returns the start state.
func (d *DFA) Start() StateID { return StartState }

// Alphabet returns the alphabet in its build order. The returned slice must
// not be modified.
func (d *DFA) Alphabet() []rune { return d.alphabet }

// Accepting reports whether id is an accepting state.
func (d *DFA) Accepting(id StateID) bool { return d.states[id].accepting }

// Label returns the algebra term a state was derived from, or nil for
// automata that carry no labels (hand-built or integerized ones).
func (d *DFA) Label(id StateID) *algebra.Term { return d.states[id].label }

// Next returns δ(id, r). The second result is false when r is outside the
// alphabet or the transition is absent.
func (d *DFA) Next(id StateID, r rune) (StateID, bool) {
	i, ok := d.index[r]
	if !ok {
		return InvalidState, false
	}
	to := d.states[id].next[i]
	return to, to != InvalidState
}

// NextByIndex returns δ(id, alphabet[i]).
func (d *DFA) NextByIndex(id StateID, i int) StateID {
	return d.states[id].next[i]
}

// Match runs the automaton over s and reports whether it ends in an
// accepting state. Characters outside the alphabet reject immediately.
func (d *DFA) Match(s string) bool {
	cur := StartState
	for _, r := range s {
		next, ok := d.Next(cur, r)
		if !ok {
			return false
		}
		cur = next
	}
	return d.states[cur].accepting
}

// FindInvalidStates returns the states lacking a transition for some
// alphabet symbol. A non-empty result means analyses requiring a total
// transition function will refuse this automaton.
func (d *DFA) FindInvalidStates() []StateID {
	var invalid []StateID
	for id := range d.states {
		for _, to := range d.states[id].next {
			if to == InvalidState {
				invalid = append(invalid, StateID(id))
				break
			}
		}
	}
	return invalid
}

func (d *DFA) validateTotal() error {
	if invalid := d.FindInvalidStates(); len(invalid) > 0 {
		return &InvalidDFAError{States: invalid}
	}
	return nil
}
