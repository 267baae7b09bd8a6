package xqregex

import (
	"fmt"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestRequiredLiterals(t *testing.T) {
	cases := []struct {
		pattern  string
		expected []string
	}{
		{"a", []string{"a"}},
		{"abc", []string{"abc"}},
		{"x(foo|bar)y", []string{"foo", "bar"}},
		{"(ab)+c", []string{"ab"}},
		{".*hello.*world", []string{"hello"}},
		{"(a|a)bb", []string{"bb"}},
		{"(?:ab|ab)", []string{"ab"}},
		{"a{2}", []string{"a"}},
		{`\d+abc\s`, []string{"abc"}},
		{"(foo|ba(r|z))", []string{"foo", "ba"}},
		{"(r|z)", []string{"r", "z"}},

		{"", nil},
		{"a*", nil},
		{"a?", nil},
		{"[abc]", nil},
		{".", nil},
		{`\p{L}`, nil},
		{"foo|b*", nil},
		{`(a)\1`, []string{"a"}},
		{`\1`, nil},
	}

	for _, c := range cases {
		t.Run("", func(t *testing.T) {
			tree, err := parse(c.pattern, 0)
			if err != nil {
				// Only patterns the parser rejects may fail here.
				assert.Assert(t, c.expected == nil)
				return
			}
			lits, ok := requiredLiterals(tree.root)
			assert.Equal(t, ok, c.expected != nil, c.pattern)
			assert.DeepEqual(t, lits, c.expected)
		})
	}
}

func TestPrefilter(t *testing.T) {
	build := func(pattern string, flags Flags, minLen int) *prefilter {
		tree, err := parse(pattern, flags)
		assert.NilError(t, err)
		return newPrefilter(tree, flags.effective(), minLen)
	}

	p := build("hello", 0, 2)
	assert.Assert(t, p != nil)
	assert.DeepEqual(t, p.literals, []string{"hello"})
	assert.Assert(t, p.mayMatch("say hello!"))
	assert.Assert(t, !p.mayMatch("help"))
	assert.Assert(t, !p.mayMatch(""))
	assert.Assert(t, p.mayMatch("\xffhelp"))

	p = build("x(cat|dog)", 0, 2)
	assert.Assert(t, p != nil)
	assert.Assert(t, p.mayMatch("hotdog"))
	assert.Assert(t, !p.mayMatch("cow"))

	p = build("[ÿ]ü€\U0001F431", 0, 2)
	assert.Assert(t, p != nil)
	assert.Assert(t, p.mayMatch("ü€\U0001F431"))
	assert.Assert(t, !p.mayMatch("ü€"))

	assert.Assert(t, build("hello", FlagIgnoreCase, 2) == nil)
	assert.Assert(t, build("ab", 0, 3) == nil)
	assert.Assert(t, build("a", 0, 2) == nil)
	assert.Assert(t, build("a*", 0, 1) == nil)
	assert.Assert(t, build("a", 0, 1) != nil)
	assert.Assert(t, build("hello", FlagLiteral, 2) != nil)

	var alts []string
	for n := 0; n < maxPrefilterLiterals+1; n++ {
		alts = append(alts, fmt.Sprintf("w%03d", n))
	}
	assert.Assert(t, build(strings.Join(alts, "|"), 0, 2) == nil)
	assert.Assert(t, build(strings.Join(alts[:maxPrefilterLiterals], "|"), 0, 2) != nil)

	var nilFilter *prefilter
	assert.Assert(t, nilFilter.mayMatch("anything"))
}

func TestPrefilterAgreesWithMatcher(t *testing.T) {
	with := DefaultConfig()
	with.MinPrefilterLen = 1
	without := DefaultConfig()
	without.EnablePrefilter = false

	patterns := []string{"abc", "x(foo|bar)y", `(ab)+c\d`, "^a.c$", "[a-c]bc|abd", `(a)\1b`}
	inputs := []string{"", "abc", "xbary", "ababc1", "a\nc", "abd", "aab", "xfooyabc", "ab"}
	for _, pattern := range patterns {
		a := mustCompileConfig(t, pattern, with)
		b := mustCompileConfig(t, pattern, without)
		for _, input := range inputs {
			ma, err := a.Match(input)
			assert.NilError(t, err)
			mb, err := b.Match(input)
			assert.NilError(t, err)
			assert.Equal(t, ma, mb, "%q on %q", pattern, input)
		}
	}
}

func mustCompileConfig(t *testing.T, pattern string, config Config) *Regexp {
	t.Helper()
	re, err := CompileWithConfig(pattern, 0, config)
	assert.NilError(t, err)
	return re
}
