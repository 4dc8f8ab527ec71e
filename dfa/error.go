// Package dfa builds deterministic finite automata from algebra terms by
// repeated Brzozowski derivation, and answers decision questions about the
// recognized language: emptiness, finiteness, the longest accepted string,
// minimization and isomorphism.
package dfa

import (
	"errors"
	"fmt"
)

// Common DFA errors.
var (
	// ErrEmptyLanguage indicates the automaton accepts no string at all.
	ErrEmptyLanguage = errors.New("empty language")

	// ErrInfiniteLanguage indicates the automaton accepts infinitely many
	// strings, so no longest string exists.
	ErrInfiniteLanguage = errors.New("infinite language")

	// ErrInvalidDFA indicates the transition function is not total over the
	// alphabet. Analyses that require totality refuse to run on such an
	// automaton.
	ErrInvalidDFA = errors.New("transition function is not total")
)

// InvalidDFAError reports which states are missing transitions.
type InvalidDFAError struct {
	States []StateID
}

// Error implements the error interface.
func (e *InvalidDFAError) Error() string {
	return fmt.Sprintf("dfa: %d states with missing transitions (first: %d)",
		len(e.States), e.States[0])
}

// Unwrap returns ErrInvalidDFA so callers can test with errors.Is.
func (e *InvalidDFAError) Unwrap() error {
	return ErrInvalidDFA
}
