// Package revex is an algebraic regular-expression engine.
//
// Regular expressions are first-class values closed under union,
// intersection, complement, concatenation and Kleene star, compiled through
// Brzozowski derivatives. On top of exact full-match testing, the engine
// decides questions about the recognized language (emptiness, finiteness,
// longest accepted string) and generates members of it, either uniformly at
// random or by deterministic enumeration.
//
// Basic usage:
//
//	re, err := revex.Compile(`a[abc]*b`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.MatchString("acb")  // true; matching is anchored at both ends
//	re.MatchString("xacb") // false
//
// Algebraic composition:
//
//	even := revex.MustCompile(`(aa)*`)
//	short := revex.MustCompile(`a{0,16}`)
//	both := even.Intersect(short) // at most 16 a's, evenly many
//
// Language analysis and generation:
//
//	d := both.DFA(nil)
//	longest, _ := d.LongestString() // "aaaaaaaaaaaaaaaa"
//	g, _ := generator.NewRandom(d, generator.DefaultConfig())
//	s, ok := g.GenerateString(4)   // "aaaa", true
//
// Matching is implicitly anchored: there are no capture groups, explicit
// anchors or substring searches.
package revex

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/revex/algebra"
	"github.com/coregx/revex/dfa"
	"github.com/coregx/revex/generator"
	"github.com/coregx/revex/literal"
	"github.com/coregx/revex/syntax"
)

// Config controls compilation.
type Config struct {
	// EnablePrefilter enables the multi-literal prefilter: when the pattern
	// requires one of a small set of literal fragments, inputs containing
	// none of them are rejected without running the matcher.
	// Default: true
	EnablePrefilter bool

	// MinLiteralLen is the minimum fragment length worth prefiltering on.
	// Shorter fragments have too many false positives.
	// Default: 2
	MinLiteralLen int
}

// DefaultConfig returns the default compilation configuration.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter: true,
		MinLiteralLen:   2,
	}
}

// Regex is a compiled regular expression. It is immutable and safe for
// concurrent use.
type Regex struct {
	term      *algebra.Term
	pattern   string
	prefilter *ahocorasick.Automaton
}

// Compile parses a pattern into a Regex. The syntax is a superset of common
// POSIX syntax: quantifiers, grouping, character classes and sets,
// lookaround and comments; see the syntax package.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with custom configuration.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	term, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return &Regex{
		term:      term,
		pattern:   pattern,
		prefilter: buildPrefilter(term, config),
	}, nil
}

// MustCompile compiles a pattern and panics if it fails. Useful for
// patterns known to be valid at compile time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("revex: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// FromTerm wraps an algebra term as a Regex. The pattern string is the
// term's algebraic rendering.
func FromTerm(term *algebra.Term) *Regex {
	return &Regex{
		term:      term,
		pattern:   term.String(),
		prefilter: buildPrefilter(term, DefaultConfig()),
	}
}

func buildPrefilter(term *algebra.Term, config Config) *ahocorasick.Automaton {
	if !config.EnablePrefilter {
		return nil
	}
	alts := literal.RequiredAlternatives(term)
	if len(alts) == 0 {
		return nil
	}
	for _, alt := range alts {
		if len(alt) < config.MinLiteralLen {
			return nil
		}
	}
	builder := ahocorasick.NewBuilder()
	for _, alt := range alts {
		builder.AddPattern(alt)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return auto
}

// Term returns the canonical algebra term of the expression.
func (r *Regex) Term() *algebra.Term { return r.term }

// String returns the source text the expression was compiled from, or the
// algebraic rendering for composed expressions.
func (r *Regex) String() string { return r.pattern }

// Match reports whether the expression matches all of b. Matching is
// anchored at both ends.
func (r *Regex) Match(b []byte) bool {
	if r.prefilter != nil && !r.prefilter.IsMatch(b) {
		return false
	}
	return algebra.Match(r.term, string(b))
}

// MatchString reports whether the expression matches all of s.
func (r *Regex) MatchString(s string) bool {
	if r.prefilter != nil && !r.prefilter.IsMatch([]byte(s)) {
		return false
	}
	return algebra.Match(r.term, s)
}

// Union returns an expression matching what either operand matches.
func (r *Regex) Union(o *Regex) *Regex {
	return FromTerm(algebra.Union(r.term, o.term))
}

// Intersect returns an expression matching what both operands match.
func (r *Regex) Intersect(o *Regex) *Regex {
	return FromTerm(algebra.Intersect(r.term, o.term))
}

// Concat returns the concatenation of the two expressions.
func (r *Regex) Concat(o *Regex) *Regex {
	return FromTerm(algebra.Concat(r.term, o.term))
}

// Complement returns an expression matching exactly the strings the
// receiver rejects.
func (r *Regex) Complement() *Regex {
	return FromTerm(algebra.Complement(r.term))
}

// Star returns the Kleene closure of the expression.
func (r *Regex) Star() *Regex {
	return FromTerm(algebra.Star(r.term))
}

// Repeat returns the n-fold repetition of the expression.
func (r *Regex) Repeat(n int) *Regex {
	return FromTerm(algebra.Repeat(r.term, n))
}

// DFA builds the deterministic automaton of the expression over the given
// alphabet. A nil alphabet means printable ASCII.
func (r *Regex) DFA(alphabet []rune) *dfa.DFA {
	if alphabet == nil {
		alphabet = dfa.DefaultAlphabet
	}
	return dfa.Build(r.term, alphabet)
}

// IsEmpty reports whether the expression accepts no string over the given
// alphabet. A nil alphabet means printable ASCII.
func (r *Regex) IsEmpty(alphabet []rune) bool {
	return r.DFA(alphabet).IsEmpty()
}

// HasFiniteLanguage reports whether the expression accepts finitely many
// strings over the given alphabet. A nil alphabet means printable ASCII.
func (r *Regex) HasFiniteLanguage(alphabet []rune) bool {
	return r.DFA(alphabet).HasFiniteLanguage()
}

// LongestString returns a longest accepted string over the given alphabet.
// It fails with dfa.ErrEmptyLanguage or dfa.ErrInfiniteLanguage when no
// such string exists. A nil alphabet means printable ASCII.
func (r *Regex) LongestString(alphabet []rune) (string, error) {
	return r.DFA(alphabet).LongestString()
}

// RandomGenerator returns a uniform random string generator for the
// expression's language over the given alphabet. A nil alphabet means
// printable ASCII.
func (r *Regex) RandomGenerator(alphabet []rune, config generator.Config) (*generator.Generator, error) {
	return generator.NewRandom(r.DFA(alphabet), config)
}

// Enumerator returns a deterministic generator enumerating the expression's
// language over the given alphabet. A nil alphabet means printable ASCII.
func (r *Regex) Enumerator(alphabet []rune) (*generator.Generator, error) {
	return generator.NewDeterministic(r.DFA(alphabet))
}
