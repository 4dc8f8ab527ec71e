package dfa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMinimizeCanonicalSize pins the textbook example: the minimal automaton
// of (a|b)*abb over {a,b} has exactly 4 states.
func TestMinimizeCanonicalSize(t *testing.T) {
	d := Build(mustTerm(t, `(a|b)*abb`), []rune("ab"))
	min, err := d.Minimize()
	require.NoError(t, err)
	require.Equal(t, 4, min.NumStates())
	require.LessOrEqual(t, min.NumStates(), d.NumStates())
}

// TestMinimizePreservesLanguage checks the language is untouched.
func TestMinimizePreservesLanguage(t *testing.T) {
	patterns := []string{`(a|b)*abb`, `a?b+`, `(ab|ba)*`, `a{0,4}`}
	inputs := []string{"", "a", "b", "ab", "abb", "aabb", "babb", "abab", "aaaa", "bbbb"}
	for _, pattern := range patterns {
		d := Build(mustTerm(t, pattern), []rune("ab"))
		min, err := d.Minimize()
		require.NoError(t, err)
		for _, in := range inputs {
			require.Equal(t, d.Match(in), min.Match(in),
				"pattern %q input %q", pattern, in)
		}
	}
}

// TestMinimizeIsomorphism checks that two automata recognize the same
// language iff their minimizations are isomorphic.
func TestMinimizeIsomorphism(t *testing.T) {
	minimize := func(pattern string) *DFA {
		t.Helper()
		min, err := Build(mustTerm(t, pattern), []rune("ab")).Minimize()
		require.NoError(t, err)
		return min
	}

	// Same language, different spellings.
	equivalent := [][2]string{
		{`(ab)*a`, `a(ba)*`},
		{`a|b|ab`, `ab|b|a`},
		{`(a|b)*`, `(a*b*)*`},
	}
	for _, pair := range equivalent {
		m1, m2 := minimize(pair[0]), minimize(pair[1])
		mapping, err := m1.Isomorphism(m2)
		require.NoError(t, err)
		require.NotNil(t, mapping, "%q and %q must minimize isomorphically", pair[0], pair[1])
		require.Len(t, mapping, m1.NumStates())
	}

	// Different languages.
	different := [][2]string{
		{`(ab)*a`, `(ab)*`},
		{`a+`, `a*`},
	}
	for _, pair := range different {
		m1, m2 := minimize(pair[0]), minimize(pair[1])
		mapping, err := m1.Isomorphism(m2)
		require.NoError(t, err)
		require.Nil(t, mapping, "%q and %q must not be isomorphic", pair[0], pair[1])
	}
}

// TestMinimizeIdempotent checks a second minimization changes nothing.
func TestMinimizeIdempotent(t *testing.T) {
	d := Build(mustTerm(t, `(a|b)*abb`), []rune("ab"))
	m1, err := d.Minimize()
	require.NoError(t, err)
	m2, err := m1.Minimize()
	require.NoError(t, err)
	require.Equal(t, m1.NumStates(), m2.NumStates())

	mapping, err := m1.Isomorphism(m2)
	require.NoError(t, err)
	require.NotNil(t, mapping)
}

// TestMinimizePartial checks the contract violation report.
func TestMinimizePartial(t *testing.T) {
	d := New([]rune("ab"))
	d.AddState(true)
	_, err := d.Minimize()
	require.ErrorIs(t, err, ErrInvalidDFA)
}

// TestIsomorphismAlphabetMismatch checks that automata over different
// alphabets are never isomorphic.
func TestIsomorphismAlphabetMismatch(t *testing.T) {
	d1 := Build(mustTerm(t, `a`), []rune("ab"))
	d2 := Build(mustTerm(t, `a`), []rune("ac"))
	mapping, err := d1.Isomorphism(d2)
	require.NoError(t, err)
	require.Nil(t, mapping)
}
