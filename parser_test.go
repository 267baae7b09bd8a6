package xqregex

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func lit(s string) []Node {
	var nodes []Node
	for _, r := range s {
		nodes = append(nodes, &Literal{Rune: r})
	}
	return nodes
}

func TestParse(t *testing.T) {
	cases := []struct {
		pattern  string
		flags    Flags
		expected Node
		groups   int
	}{
		{"a", 0, &Literal{Rune: 'a'}, 0},
		{"ab", 0, &Sequence{Items: lit("ab")}, 0},
		{"", 0, &Sequence{}, 0},
		{"a|b", 0, &Alternation{Alternatives: lit("ab")}, 0},
		{"a|", 0, &Alternation{Alternatives: []Node{&Literal{Rune: 'a'}, &Sequence{}}}, 0},
		{"(a)", 0, &Group{Index: 1, Body: &Literal{Rune: 'a'}}, 1},
		{"(?:a)", 0, &Group{Body: &Literal{Rune: 'a'}}, 0},
		{"((a)(b))", 0, &Group{Index: 1, Body: &Sequence{Items: []Node{
			&Group{Index: 2, Body: &Literal{Rune: 'a'}},
			&Group{Index: 3, Body: &Literal{Rune: 'b'}},
		}}}, 3},
		{"^.$", 0, &Sequence{Items: []Node{
			&Anchor{Kind: StartOfLine},
			&AnyChar{},
			&Anchor{Kind: EndOfLine},
		}}, 0},
		{"a*", 0, &Quantifier{Body: &Literal{Rune: 'a'}, Min: 0, Max: -1}, 0},
		{"a+?", 0, &Quantifier{Body: &Literal{Rune: 'a'}, Min: 1, Max: -1, Lazy: true}, 0},
		{"a??", 0, &Quantifier{Body: &Literal{Rune: 'a'}, Min: 0, Max: 1, Lazy: true}, 0},
		{"a{3}", 0, &Quantifier{Body: &Literal{Rune: 'a'}, Min: 3, Max: 3}, 0},
		{"a{2,}", 0, &Quantifier{Body: &Literal{Rune: 'a'}, Min: 2, Max: -1}, 0},
		{"a{0,2147483647}", 0, &Quantifier{Body: &Literal{Rune: 'a'}, Min: 0, Max: 2147483647}, 0},
		{`[a-c\d]`, 0, &CharClass{
			Ranges:     []Range{{Lo: 'a', Hi: 'c'}},
			Categories: []Category{{Name: "d"}},
		}, 0},
		{`[^a-[b]]`, 0, &CharClass{
			Negated:    true,
			Ranges:     []Range{{Lo: 'a', Hi: 'a'}},
			Subtracted: &CharClass{Ranges: []Range{{Lo: 'b', Hi: 'b'}}},
		}, 0},
		{`[-a-]`, 0, &CharClass{
			Ranges: []Range{{Lo: '-', Hi: '-'}, {Lo: 'a', Hi: 'a'}, {Lo: '-', Hi: '-'}},
		}, 0},
		{`[\n-\r]`, 0, &CharClass{Ranges: []Range{{Lo: '\n', Hi: '\r'}}}, 0},
		{`\P{Lu}`, 0, &CharClass{Categories: []Category{{Name: "Lu", Negated: true}}}, 0},
		{`\p{IsBasicLatin}`, 0, &CharClass{Categories: []Category{{Name: "IsBasicLatin"}}}, 0},
		{`\W`, 0, &CharClass{Categories: []Category{{Name: "w", Negated: true}}}, 0},
		{`\$`, 0, &Literal{Rune: '$'}, 0},
		{`(a)\1`, 0, &Sequence{Items: []Node{
			&Group{Index: 1, Body: &Literal{Rune: 'a'}},
			&Backreference{Index: 1},
		}}, 1},
		{`(a)\12*`, 0, &Sequence{Items: []Node{
			&Group{Index: 1, Body: &Literal{Rune: 'a'}},
			&Backreference{Index: 1},
			&Quantifier{Body: &Literal{Rune: '2'}, Min: 0, Max: -1},
		}}, 1},

		{"a b", FlagExtended, &Sequence{Items: lit("ab")}, 0},
		{"[a b]", FlagExtended, &CharClass{Ranges: []Range{{Lo: 'a', Hi: 'a'}, {Lo: ' ', Hi: ' '}, {Lo: 'b', Hi: 'b'}}}, 0},
		{"(a).*", FlagLiteral, &Sequence{Items: lit("(a).*")}, 0},
		{"", FlagLiteral, &Sequence{Items: []Node{}}, 0},
		{"a b", FlagLiteral | FlagExtended, &Sequence{Items: lit("a b")}, 0},
	}

	for _, c := range cases {
		t.Run("", func(t *testing.T) {
			t.Logf("%q, %q", c.pattern, c.flags.String())
			tree, err := parse(c.pattern, c.flags)
			assert.NilError(t, err)
			assert.DeepEqual(t, tree.root, c.expected)
			assert.Equal(t, tree.groups, c.groups)
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		pattern string
		pos     int
		message string
	}{
		{"a)", 1, "unmatched )"},
		{"(a", 2, "missing )"},
		{"(?a)", 2, "invalid group"},
		{"*a", 0, "nothing to repeat"},
		{"x**", 2, "nothing to repeat"},
		{"a{2,1}", 5, "invalid range in repetition"},
		{"a{1,x}", 4, "invalid quantifier"},
		{"a{9999999999}", 12, "quantifier bound too large"},
		{"}", 0, "unescaped '}'"},
		{`\`, 1, "trailing backslash"},
		{`\y`, 1, `invalid escape \y`},
		{`\p{La}`, 5, `unknown category "La"`},
		{`\pL`, 2, `expected { after \p`},
		{`\p{L`, 4, "missing } in category escape"},
		{`\0`, 1, `invalid back-reference \0`},
		{`(a)\2`, 4, `back-reference \2 to a non-existent group`},
		{`(\1)`, 2, `back-reference \1 to a group that is not closed`},
		{"[a", 2, "missing ]"},
		{"[]", 1, "empty character class"},
		{"[a[]", 2, "unescaped [ in character class"},
		{"[z-a]", 4, "range out of order in character class"},
		{"[a--]", 3, "'-' cannot end a range"},
		{"[0-9-.]", 4, "'-' is only allowed at the start or end of a character class"},
		{`[\d-z]`, 3, "'-' is only allowed at the start or end of a character class"},
		{`[a-\s]`, 5, "class escape cannot end a range"},
		{`[\1]`, 2, "back-reference not allowed in character class"},
		{"[a-[b]c]", 6, "subtraction must be the last part of a character class"},
	}

	for _, c := range cases {
		t.Run("", func(t *testing.T) {
			_, err := parse(c.pattern, 0)
			var xerr *Error
			assert.Assert(t, errors.As(err, &xerr), "%q", c.pattern)
			assert.Equal(t, xerr.Code, CodeInvalidPattern)
			assert.Equal(t, xerr.Pattern, c.pattern)
			assert.Equal(t, xerr.Pos, c.pos, "%q: %v", c.pattern, err)
			assert.ErrorContains(t, err, c.message)
		})
	}
}

func TestParseErrorsExtended(t *testing.T) {
	cases := []struct {
		pattern string
		pos     int
		message string
	}{
		{" a ) ", 3, "unmatched ) at offset 3"},
		{"( a ", 4, "missing ) at offset 4"},
		{"a  b {2,1}", 9, "invalid range in repetition at offset 9"},
		{"\\  y", 3, `invalid escape \y at offset 3`},
	}

	for _, c := range cases {
		_, err := parse(c.pattern, FlagExtended)
		var xerr *Error
		assert.Assert(t, errors.As(err, &xerr), "%q", c.pattern)
		assert.Equal(t, xerr.Pattern, c.pattern)
		assert.Equal(t, xerr.Pos, c.pos, c.pattern)
		assert.Equal(t, xerr.Error(), "FORX0002: "+c.message)
	}
}

func TestTotalCapturesCount(t *testing.T) {
	for _, c := range []struct {
		pattern string
		count   int
	}{
		{"", 0},
		{"()", 1},
		{"(?:)", 0},
		{"(()(?:()))", 3},
		{`\(()`, 1},
		{`[(]()`, 1},
		{`[\]()]()`, 1},
		{`[a-[(]]()`, 1},
	} {
		p := parser{pattern: []rune(c.pattern), totalCapturesCount: -1}
		assert.Equal(t, p.getTotalCapturesCount(), c.count, c.pattern)
	}
}

func TestStripWhitespace(t *testing.T) {
	for _, c := range []struct {
		pattern  string
		expected string
	}{
		{"", ""},
		{"abc", "abc"},
		{" a b ", "ab"},
		{"a\tb\nc\rd", "abcd"},
		{"a\u00A0b", "a\u00A0b"},
		{"[ a ]", "[ a ]"},
		{"[a-z-[ b ]] c", "[a-z-[ b ]]c"},
		{`\ s`, `\s`},
		{`\[ a \]`, `\[a\]`},
		{`[\] ] b`, `[\] ]b`},
		{`\p{ Is Basic Latin }`, `\p{IsBasicLatin}`},
	} {
		stripped, _ := stripWhitespace(c.pattern)
		assert.Equal(t, stripped, c.expected, c.pattern)
	}

	stripped, offsets := stripWhitespace("abc")
	assert.Equal(t, stripped, "abc")
	assert.Assert(t, offsets == nil)

	stripped, offsets = stripWhitespace(`\ s`)
	assert.Equal(t, stripped, `\s`)
	assert.DeepEqual(t, offsets, []int{0, 2, 3})

	stripped, offsets = stripWhitespace(" ä [ ] ")
	assert.Equal(t, stripped, "ä[ ]")
	assert.DeepEqual(t, offsets, []int{1, 3, 4, 5, 7})

	assert.Assert(t, isXMLSpace(' '))
	assert.Assert(t, isXMLSpace('\t'))
	assert.Assert(t, isXMLSpace('\n'))
	assert.Assert(t, isXMLSpace('\r'))
	assert.Assert(t, !isXMLSpace('\u00A0'))
	assert.Assert(t, !isXMLSpace('\v'))
	assert.Assert(t, !isXMLSpace('\f'))
}
