package xqregex

import (
	"testing"

	"github.com/dlclark/regexp2"
	"gotest.tools/v3/assert"
)

// The .NET dialect implemented by regexp2 shares character class
// subtraction, general categories and \d with XML Schema. regexp2 does not
// know the \p{IsBlock} names, so block escapes are left to TestCategories.
// The patterns below stay within the common subset, and the inputs contain
// no line terminators, so both engines must agree.
var oraclePatterns = []struct {
	pattern string
	flags   Flags
}{
	{"abc", 0},
	{"a|bc|", 0},
	{"^a.c$", 0},
	{"^(a|ab)(c|bcd)(d*)$", 0},
	{"^a{2,3}b?$", 0},
	{"^(ab)*?c", 0},
	{"x+?y", 0},
	{"[a-z-[aeiou]]+", 0},
	{"^[^a-c-[b]]", 0},
	{`^\p{Lu}\p{Ll}*$`, 0},
	{`\P{L}`, 0},
	{`\d{2}`, 0},
	{`(.)\1`, 0},
	{`^(a*)b\1$`, 0},
	{`^(?:(a)|b)+\1?$`, 0},
	{`[.?*+{}()|^$\[\]\\-]`, 0},
	{"HELLO", FlagIgnoreCase},
	{"[a-f]+x", FlagIgnoreCase},
	{`(ab)\1`, FlagIgnoreCase},
	{"^b", FlagMultiline},
	{"a.b", FlagDotAll},
}

var oracleInputs = []string{
	"",
	"a",
	"abc",
	"abcd",
	"aab",
	"aabaa",
	"aaba",
	"ababc",
	"xyyxy",
	"bcd",
	"Hello",
	"hello world",
	"ABab",
	"abAB",
	"Abracadabra",
	"e",
	"b",
	"12",
	"1٢",
	"αβγ",
	"ab1ba",
	"[x]",
	"a^b",
	"FACEx",
	"zzz",
}

func toRegexp2Options(flags Flags) regexp2.RegexOptions {
	options := regexp2.None
	if flags&FlagIgnoreCase != 0 {
		options |= regexp2.IgnoreCase
	}
	if flags&FlagMultiline != 0 {
		options |= regexp2.Multiline
	}
	if flags&FlagDotAll != 0 {
		options |= regexp2.Singleline
	}
	return options
}

func TestOracle(t *testing.T) {
	for _, p := range oraclePatterns {
		t.Run("", func(t *testing.T) {
			t.Parallel()
			re, err := Compile(p.pattern, p.flags)
			assert.NilError(t, err)
			oracle, err := regexp2.Compile(p.pattern, toRegexp2Options(p.flags))
			assert.NilError(t, err)

			for _, input := range oracleInputs {
				expected, err := oracle.MatchString(input)
				assert.NilError(t, err)
				actual, err := re.Match(input)
				assert.NilError(t, err)
				assert.Equal(t, actual, expected, "fn:matches(%q, %q, %q)", input, p.pattern, p.flags.String())
			}
		})
	}
}
