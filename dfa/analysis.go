package dfa

import (
	"strings"

	"github.com/coregx/revex/internal/sparse"
)

// reachable returns the states reachable from start.
func (d *DFA) reachable() *sparse.Set {
	seen := sparse.New(uint32(len(d.states)))
	if len(d.states) == 0 {
		return seen
	}
	seen.Insert(uint32(StartState))
	for i := 0; i < seen.Len(); i++ {
		from := StateID(seen.Values()[i])
		for _, to := range d.states[from].next {
			if to != InvalidState {
				seen.Insert(uint32(to))
			}
		}
	}
	return seen
}

// coReachable returns the states from which some accepting state is
// reachable, computed by a walk over the reversed transition graph.
func (d *DFA) coReachable() *sparse.Set {
	reverse := make([][]StateID, len(d.states))
	for from := range d.states {
		for _, to := range d.states[from].next {
			if to != InvalidState {
				reverse[to] = append(reverse[to], StateID(from))
			}
		}
	}
	seen := sparse.New(uint32(len(d.states)))
	for id := range d.states {
		if d.states[id].accepting {
			seen.Insert(uint32(id))
		}
	}
	for i := 0; i < seen.Len(); i++ {
		to := seen.Values()[i]
		for _, from := range reverse[to] {
			seen.Insert(uint32(from))
		}
	}
	return seen
}

// liveStates returns, per state, whether it is live: reachable from the
// start state and co-reachable to an accepting state. The live states
// induce the acceptable subgraph on which emptiness, finiteness and
// longest-string questions are decided.
func (d *DFA) liveStates() []bool {
	reach := d.reachable()
	co := d.coReachable()
	live := make([]bool, len(d.states))
	for _, v := range reach.Values() {
		live[v] = co.Contains(v)
	}
	return live
}

// IsEmpty reports whether the automaton accepts no string: the acceptable
// subgraph has no states.
func (d *DFA) IsEmpty() bool {
	for _, ok := range d.liveStates() {
		if ok {
			return false
		}
	}
	return true
}

// HasFiniteLanguage reports whether the accepted language is finite, which
// holds exactly when the acceptable subgraph is acyclic. An empty language
// is finite.
func (d *DFA) HasFiniteLanguage() bool {
	live := d.liveStates()
	_, ok := d.topoOrder(live)
	return ok
}

// topoOrder returns a topological order of the live states, or ok=false if
// the live subgraph has a cycle. Parallel edges (several symbols between the
// same pair of states) count once.
func (d *DFA) topoOrder(live []bool) ([]StateID, bool) {
	indegree := make([]int, len(d.states))
	total := 0
	for from := range d.states {
		if !live[from] {
			continue
		}
		total++
		for _, to := range d.successors(StateID(from), live) {
			indegree[to]++
		}
	}
	order := make([]StateID, 0, total)
	queue := make([]StateID, 0, total)
	for id := range d.states {
		if live[id] && indegree[id] == 0 {
			queue = append(queue, StateID(id))
		}
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		order = append(order, u)
		for _, v := range d.successors(u, live) {
			indegree[v]--
			if indegree[v] == 0 {
				queue = append(queue, v)
			}
		}
	}
	return order, len(order) == total
}

// successors returns the distinct live successor states of u.
func (d *DFA) successors(u StateID, live []bool) []StateID {
	var succ []StateID
	for _, to := range d.states[u].next {
		if to == InvalidState || !live[to] {
			continue
		}
		dup := false
		for _, s := range succ {
			if s == to {
				dup = true
				break
			}
		}
		if !dup {
			succ = append(succ, to)
		}
	}
	return succ
}

// LongestString returns a string of maximum length in the language.
//
// It fails with ErrEmptyLanguage when the automaton accepts nothing and with
// ErrInfiniteLanguage when the acceptable subgraph has a cycle. Otherwise
// the answer is a longest path in that DAG; such a path necessarily begins
// at the start state, because the start state reaches every live state.
func (d *DFA) LongestString() (string, error) {
	live := d.liveStates()
	any := false
	for _, ok := range live {
		if ok {
			any = true
			break
		}
	}
	if !any {
		return "", ErrEmptyLanguage
	}
	order, ok := d.topoOrder(live)
	if !ok {
		return "", ErrInfiniteLanguage
	}

	// DAG longest path, processed in reverse topological order. For each
	// state remember the symbol that starts its longest outgoing path.
	best := make([]int, len(d.states))
	choice := make([]int, len(d.states))
	for i := range choice {
		choice[i] = -1
	}
	for i := len(order) - 1; i >= 0; i-- {
		u := order[i]
		for ci, to := range d.states[u].next {
			if to == InvalidState || !live[to] {
				continue
			}
			if cand := 1 + best[to]; choice[u] == -1 || cand > best[u] {
				best[u] = cand
				choice[u] = ci
			}
		}
	}

	var b strings.Builder
	cur := StartState
	for choice[cur] != -1 {
		ci := choice[cur]
		b.WriteRune(d.alphabet[ci])
		cur = d.states[cur].next[ci]
	}
	return b.String(), nil
}
