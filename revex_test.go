package revex

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/revex/dfa"
	"github.com/coregx/revex/generator"
)

// TestCompile tests basic compilation.
func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"simple literal", "hello", false},
		{"digit class", `\d+`, false},
		{"alternation", "foo|bar", false},
		{"charset", "[a-c]*", false},
		{"lookahead", "foo(?=bar).*", false},
		{"unclosed group", "(", true},
		{"zero repeat", "a{0}", true},
		{"reversed range", "[z-a]", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Errorf("Compile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && re == nil {
				t.Error("Compile() returned nil")
			}
		})
	}
}

// TestMustCompile tests panic on invalid pattern.
func TestMustCompile(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustCompile() did not panic on invalid pattern")
		}
	}()
	MustCompile("(")
}

// TestScenarioCharsetRun covers: a[abc]*b[abc]*c over "abcd".
func TestScenarioCharsetRun(t *testing.T) {
	re := MustCompile(`a[abc]*b[abc]*c`)
	require.True(t, re.MatchString("abbbbc"))
	require.False(t, re.MatchString("aabbcc d"))

	d := re.DFA([]rune("abcd"))
	min, err := d.Minimize()
	require.NoError(t, err)
	require.LessOrEqual(t, min.NumStates(), d.NumStates())

	_, err = d.LongestString()
	require.ErrorIs(t, err, dfa.ErrInfiniteLanguage)
}

// TestScenarioBlockStar covers: (a|bb|ccc)* generation over "abc".
func TestScenarioBlockStar(t *testing.T) {
	re := MustCompile(`(a|bb|ccc)*`)
	d := re.DFA([]rune("abc"))
	g, err := generator.NewRandom(d, generator.Config{Rand: rand.New(rand.NewSource(3))})
	require.NoError(t, err)

	s, ok := g.GenerateString(0)
	require.True(t, ok)
	require.Equal(t, "", s)

	s, ok = g.GenerateString(1)
	require.True(t, ok)
	require.Equal(t, "a", s)

	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		s, ok := g.GenerateString(2)
		require.True(t, ok)
		require.True(t, re.MatchString(s), "generated %q must match", s)
		counts[s]++
	}
	require.Len(t, counts, 2)
	require.InDelta(t, 500, counts["aa"], 100)
	require.InDelta(t, 500, counts["bb"], 100)
}

// TestScenarioIPv4 covers the IPv4 dotted-quad pattern.
func TestScenarioIPv4(t *testing.T) {
	const pattern = `((25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)`
	re := MustCompile(pattern)
	d := re.DFA([]rune("0123456789."))

	require.True(t, d.HasFiniteLanguage())

	longest, err := d.LongestString()
	require.NoError(t, err)
	require.Len(t, longest, 15)
	require.True(t, re.MatchString(longest))

	// Every generated string is a syntactically valid IPv4 address.
	ref := regexp.MustCompile(`^((25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)
	g, err := generator.NewRandom(d, generator.Config{Rand: rand.New(rand.NewSource(9))})
	require.NoError(t, err)
	for length := 7; length <= 15; length++ {
		s, ok := g.GenerateString(length)
		if !ok {
			continue
		}
		require.True(t, ref.MatchString(s), "generated %q must be a valid IPv4", s)
	}
}

// TestScenarioIntersection covers: (ab)* ∩ (ba)*.
func TestScenarioIntersection(t *testing.T) {
	re := MustCompile(`(ab)*`).Intersect(MustCompile(`(ba)*`))
	d := re.DFA([]rune("ab"))

	require.False(t, d.IsEmpty())
	longest, err := d.LongestString()
	require.NoError(t, err)
	require.Equal(t, "", longest)
}

// TestScenarioEvenBounded covers: (aa)* ∩ a{0,16}.
func TestScenarioEvenBounded(t *testing.T) {
	re := MustCompile(`(aa)*`).Intersect(MustCompile(`a{0,16}`))
	g, err := re.Enumerator([]rune("a"))
	require.NoError(t, err)

	var lengths []int
	for length := range g.ValidLengths() {
		lengths = append(lengths, length)
	}
	require.Equal(t, []int{0, 2, 4, 6, 8, 10, 12, 14, 16}, lengths)

	var strings []string
	for s := range g.MatchingStrings() {
		strings = append(strings, s)
	}
	require.Len(t, strings, 9)
	for i, s := range strings {
		require.Len(t, s, lengths[i])
	}
}

// TestScenarioLookaround covers lookahead and negative lookbehind.
func TestScenarioLookaround(t *testing.T) {
	re := MustCompile(`foo(?=bar).*`)
	require.True(t, re.MatchString("foobarasdf"))
	require.False(t, re.MatchString("foobaz"))

	re = MustCompile(`.*(?<!foo)bar`)
	require.True(t, re.MatchString("foodbar"))
	require.False(t, re.MatchString("foobar"))
}

// TestCombinators covers the algebraic API on compiled expressions.
func TestCombinators(t *testing.T) {
	a := MustCompile(`a+`)
	b := MustCompile(`b+`)

	union := a.Union(b)
	require.True(t, union.MatchString("aaa"))
	require.True(t, union.MatchString("b"))
	require.False(t, union.MatchString("ab"))

	concat := a.Concat(b)
	require.True(t, concat.MatchString("aab"))
	require.False(t, concat.MatchString("ba"))

	comp := a.Complement()
	require.True(t, comp.MatchString(""))
	require.True(t, comp.MatchString("ab"))
	require.False(t, comp.MatchString("aa"))

	star := concat.Star()
	require.True(t, star.MatchString(""))
	require.True(t, star.MatchString("abaabb"))

	rep := MustCompile(`ab`).Repeat(2)
	require.True(t, rep.MatchString("abab"))
	require.False(t, rep.MatchString("ab"))

	// Difference of languages via complement and intersection.
	diff := a.Intersect(MustCompile(`aa`).Complement())
	require.True(t, diff.MatchString("a"))
	require.True(t, diff.MatchString("aaa"))
	require.False(t, diff.MatchString("aa"))
}

// TestStdlibAgreement cross-checks full-match behavior against the standard
// library on patterns both engines support, over sampled ASCII strings.
func TestStdlibAgreement(t *testing.T) {
	patterns := []string{
		`a[abc]*b[abc]*c`,
		`(a|bb|ccc)*`,
		`a?b+c*`,
		`x{2,4}`,
		`[a-c]{1,3}`,
		`(ab|ba)*`,
		`\d+`,
		`a.c`,
		`[^abc]+`,
		`(a|b)*abb`,
		`\w\s\w`,
	}
	const alphabet = "abcx01. \t"
	rng := rand.New(rand.NewSource(1234))

	for _, pattern := range patterns {
		re := MustCompile(pattern)
		ref := regexp.MustCompile(`^(?:` + pattern + `)$`)
		for i := 0; i < 300; i++ {
			n := rng.Intn(7)
			buf := make([]byte, n)
			for j := range buf {
				buf[j] = alphabet[rng.Intn(len(alphabet))]
			}
			s := string(buf)
			if got, want := re.MatchString(s), ref.MatchString(s); got != want {
				t.Fatalf("pattern %q input %q: got %v, stdlib %v", pattern, s, got, want)
			}
		}
	}
}

// TestPrefilter checks that literal prefiltering never changes results.
func TestPrefilter(t *testing.T) {
	with, err := CompileWithConfig(`foo[ab]*baz`, DefaultConfig())
	require.NoError(t, err)
	without, err := CompileWithConfig(`foo[ab]*baz`, Config{EnablePrefilter: false})
	require.NoError(t, err)

	inputs := []string{"foobaz", "fooabbaz", "foo", "baz", "xfoobaz", "fooabba"}
	for _, in := range inputs {
		require.Equal(t, without.MatchString(in), with.MatchString(in), "input %q", in)
		require.Equal(t, without.Match([]byte(in)), with.Match([]byte(in)), "input %q", in)
	}
}

// TestFromTerm checks the Term round trip.
func TestFromTerm(t *testing.T) {
	re := MustCompile(`(a|bb)*`)
	again := FromTerm(re.Term())
	require.Equal(t, re.Term(), again.Term())
	require.True(t, again.MatchString("abb"))
}

// TestLanguageQueries covers the convenience forwarding on Regex.
func TestLanguageQueries(t *testing.T) {
	alphabet := []rune("ab")

	require.True(t, MustCompile(`q`).IsEmpty(alphabet))
	require.False(t, MustCompile(`a`).IsEmpty(alphabet))

	require.True(t, MustCompile(`a{1,3}`).HasFiniteLanguage(alphabet))
	require.False(t, MustCompile(`a*`).HasFiniteLanguage(alphabet))

	longest, err := MustCompile(`a{1,3}b?`).LongestString(alphabet)
	require.NoError(t, err)
	require.Len(t, longest, 4)
}
