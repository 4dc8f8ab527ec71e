package generator

import (
	"math/rand"
	"sort"
)

// distribution is the character-choice distribution for one (state,
// remaining-length) pair. It carries both draw policies: cumulative
// probabilities for uniform sampling and a least-frequent-first symbol
// order for deterministic cycling.
type distribution struct {
	cum   []float64 // right endpoints over symbol indices, last = 1
	order []int     // positive-weight symbol indices, least frequent first
	next  int       // round-robin cursor
}

// newDistribution builds a distribution from per-symbol weights, or returns
// nil when every weight is zero (no accepted continuation exists).
func newDistribution(counts []float64) *distribution {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return nil
	}
	d := &distribution{cum: make([]float64, len(counts))}
	acc := 0.0
	for i, c := range counts {
		acc += c / total
		d.cum[i] = acc
		if c > 0 {
			d.order = append(d.order, i)
		}
	}
	sort.SliceStable(d.order, func(i, j int) bool {
		return counts[d.order[i]] < counts[d.order[j]]
	})
	return d
}

// drawUniform picks a symbol index with probability proportional to its
// weight. A nil rng falls back to the shared global source.
func (d *distribution) drawUniform(rng *rand.Rand) int {
	var x float64
	if rng != nil {
		x = rng.Float64()
	} else {
		x = rand.Float64()
	}
	i := sort.SearchFloat64s(d.cum, x)
	if i >= len(d.cum) {
		i = len(d.cum) - 1
	}
	return i
}

// drawRoundRobin cycles through the positive-weight symbols from least to
// most frequent.
func (d *distribution) drawRoundRobin() int {
	i := d.order[d.next%len(d.order)]
	d.next++
	return i
}
