// Package generator samples and enumerates the language of a DFA.
//
// The machinery follows the "recursive RGA" algorithm of Bernardi & Giménez,
// "A Linear Algorithm for the Random Generation of Regular Languages":
// path counts from every state to an accepting state are accumulated per
// length through the automaton's adjacency matrix, and those counts weight
// the choice of each successive character. Drawing with probabilities
// proportional to the counts yields strings of a given length uniformly at
// random; replacing the random draw with a fixed traversal order turns the
// same machinery into a deterministic enumerator.
//
// Path counts grow exponentially in the length, so the count vectors are
// normalized to sum 1 after every accumulation step; only ratios matter for
// the per-state distributions, and normalization keeps everything inside
// floating-point range for lengths far beyond practical use.
package generator

import (
	"fmt"
	"math/rand"

	"github.com/projectdiscovery/gologger"
	"gonum.org/v1/gonum/mat"

	"github.com/coregx/revex/dfa"
)

// Config controls sampling behavior.
type Config struct {
	// Rand is the source used for uniform draws. When nil, the shared
	// global source is used; supply a seeded source for reproducibility.
	Rand *rand.Rand
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{}
}

// Generator produces strings of the language of a DFA, either uniformly at
// random or in a deterministic enumeration order, one exact length at a
// time.
//
// The per-length weight vectors and per-(state, remaining) distributions are
// memoized append-only, so a Generator gets cheaper with use. It is not safe
// for concurrent use without external locking.
type Generator struct {
	dfa      *dfa.DFA
	alphabet []rune
	rng      *rand.Rand
	random   bool

	// adj is the adjacency matrix of the automaton augmented with a sink
	// node in the last row/column: adj[u][v] counts the symbols leading u
	// to v, and adj[u][sink] is 1 iff u accepts.
	adj *mat.Dense

	// weights[n][u] is the normalized count of length-n accepted strings
	// readable from state u. Grown on demand.
	weights []*mat.VecDense

	dists map[distKey]*distribution
}

type distKey struct {
	state     dfa.StateID
	remaining int
}

// NewRandom returns a generator drawing uniformly at random among the
// accepted strings of each length. The automaton must be total.
func NewRandom(d *dfa.DFA, cfg Config) (*Generator, error) {
	g, err := newGenerator(d)
	if err != nil {
		return nil, err
	}
	g.random = true
	g.rng = cfg.Rand
	return g, nil
}

// NewDeterministic returns a generator that walks symbols in a fixed
// least-frequent-first order, so repeated draws cycle through the accepted
// strings instead of sampling them.
func NewDeterministic(d *dfa.DFA) (*Generator, error) {
	return newGenerator(d)
}

func newGenerator(d *dfa.DFA) (*Generator, error) {
	intd, err := d.Integerize()
	if err != nil {
		return nil, err
	}
	n := intd.NumStates()
	if n == 0 {
		return nil, fmt.Errorf("%w: automaton has no states", dfa.ErrInvalidDFA)
	}

	g := &Generator{
		dfa:      intd,
		alphabet: intd.Alphabet(),
		adj:      mat.NewDense(n+1, n+1, nil),
		dists:    make(map[distKey]*distribution),
	}
	for u := 0; u < n; u++ {
		for ci := range g.alphabet {
			v := int(intd.NextByIndex(dfa.StateID(u), ci))
			g.adj.Set(u, v, g.adj.At(u, v)+1)
		}
		if intd.Accepting(dfa.StateID(u)) {
			g.adj.Set(u, n, 1)
		}
	}

	// Length zero: one empty string per accepting state, then normalized
	// like every later vector.
	v0 := mat.NewVecDense(n, nil)
	for u := 0; u < n; u++ {
		v0.SetVec(u, g.adj.At(u, n))
	}
	normalize(v0)
	g.weights = []*mat.VecDense{v0}

	gologger.Debug().Msgf("generator: %d states, alphabet %d", n, len(g.alphabet))
	return g, nil
}

// weight returns the normalized count of length-n accepted strings readable
// from state u, accumulating vectors up to n on first use.
func (g *Generator) weight(u dfa.StateID, n int) float64 {
	states := g.dfa.NumStates()
	block := g.adj.Slice(0, states, 0, states)
	for len(g.weights) <= n {
		prev := g.weights[len(g.weights)-1]
		next := mat.NewVecDense(states, nil)
		next.MulVec(block, prev)
		normalize(next)
		g.weights = append(g.weights, next)
	}
	return g.weights[n].AtVec(int(u))
}

func normalize(v *mat.VecDense) {
	sum := 0.0
	for i := 0; i < v.Len(); i++ {
		sum += v.AtVec(i)
	}
	if sum > 0 {
		v.ScaleVec(1/sum, v)
	}
}

// GenerateString returns a string of exactly the given length accepted by
// the automaton. The random generator chooses uniformly among all such
// strings; the deterministic one cycles through them. The second result is
// false when no accepted string of that length exists.
func (g *Generator) GenerateString(length int) (string, bool) {
	state := g.dfa.Start()
	if length == 0 {
		if !g.dfa.Accepting(state) {
			return "", false
		}
		return "", true
	}
	if g.weight(state, length) == 0 {
		return "", false
	}
	out := make([]rune, 0, length)
	for i := 0; i < length; i++ {
		dist := g.distFor(state, length-i)
		if dist == nil {
			return "", false
		}
		var ci int
		if g.random {
			ci = dist.drawUniform(g.rng)
		} else {
			ci = dist.drawRoundRobin()
		}
		out = append(out, g.alphabet[ci])
		state = g.dfa.NextByIndex(state, ci)
	}
	return string(out), true
}

// distFor returns the character distribution for a state with the given
// number of characters remaining, or nil when no accepted continuation of
// that length exists. Distributions are cached.
func (g *Generator) distFor(state dfa.StateID, remaining int) *distribution {
	key := distKey{state: state, remaining: remaining}
	if d, ok := g.dists[key]; ok {
		return d
	}
	counts := make([]float64, len(g.alphabet))
	for ci := range g.alphabet {
		counts[ci] = g.weight(g.dfa.NextByIndex(state, ci), remaining-1)
	}
	d := newDistribution(counts)
	g.dists[key] = d
	return d
}
