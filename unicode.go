package xqregex

import (
	"strings"
	"sync"
	"unicode"
)

// General categories accepted by \p{..} and \P{..}. Go's "C" table does not
// include unassigned code points, so "C" and "Cn" are derived separately.
var categoryTables = map[string]*unicode.RangeTable{
	"L":  unicode.L,
	"Lu": unicode.Lu,
	"Ll": unicode.Ll,
	"Lt": unicode.Lt,
	"Lm": unicode.Lm,
	"Lo": unicode.Lo,
	"M":  unicode.M,
	"Mn": unicode.Mn,
	"Mc": unicode.Mc,
	"Me": unicode.Me,
	"N":  unicode.N,
	"Nd": unicode.Nd,
	"Nl": unicode.Nl,
	"No": unicode.No,
	"P":  unicode.P,
	"Pc": unicode.Pc,
	"Pd": unicode.Pd,
	"Ps": unicode.Ps,
	"Pe": unicode.Pe,
	"Pi": unicode.Pi,
	"Pf": unicode.Pf,
	"Po": unicode.Po,
	"Z":  unicode.Z,
	"Zs": unicode.Zs,
	"Zl": unicode.Zl,
	"Zp": unicode.Zp,
	"S":  unicode.S,
	"Sm": unicode.Sm,
	"Sc": unicode.Sc,
	"Sk": unicode.Sk,
	"So": unicode.So,
	"Cc": unicode.Cc,
	"Cf": unicode.Cf,
	"Co": unicode.Co,
	"Cs": unicode.Cs,
}

var xmlSpaceChars = []charRange{
	{'\t', '\n'},
	{'\r', '\r'},
	{' ', ' '},
}

var (
	namedSetsOnce sync.Once
	namedSets     map[string]*charSet
)

func buildNamedSets() {
	sets := make(map[string]*charSet, len(categoryTables)+len(unicodeBlocks)+8)
	assigned := &charSet{}
	for name, table := range categoryTables {
		s := charSetFromTable(table)
		sets[name] = s
		if len(name) == 2 {
			assigned.union(s)
		}
	}
	unassigned := assigned.clone()
	unassigned.complement()
	sets["Cn"] = unassigned

	other := charSetFromTable(unicode.C)
	other.union(unassigned)
	sets["C"] = other

	for _, block := range unicodeBlocks {
		sets["Is"+block.name] = newCharSet(block.ranges...)
	}

	sets["s"] = newCharSet(xmlSpaceChars...)
	sets["i"] = newCharSet(nameStartChars...)
	nameChars := newCharSet(nameStartChars...)
	nameChars.union(newCharSet(nameExtraChars...))
	sets["c"] = nameChars
	sets["d"] = sets["Nd"]

	word := sets["P"].clone()
	word.union(sets["Z"])
	word.union(sets["C"])
	word.complement()
	sets["w"] = word

	namedSets = sets
}

// lookupCategory returns the code points of a category, block or
// multi-character escape. The returned set must not be modified.
func lookupCategory(name string) (*charSet, bool) {
	namedSetsOnce.Do(buildNamedSets)
	s, ok := namedSets[name]
	return s, ok
}

// isCategoryName reports whether name may appear in \p{name}.
func isCategoryName(name string) bool {
	if len(name) == 0 {
		return false
	}
	if strings.HasPrefix(name, "Is") {
		_, ok := blockByName(name[2:])
		return ok
	}
	if name == "C" || name == "Cn" {
		return true
	}
	_, ok := categoryTables[name]
	return ok
}

// multiCharEscapes maps the letter of a multi-character escape to the
// category name it is stored under. Upper-case letters are complements.
var multiCharEscapes = map[rune]Category{
	's': {Name: "s"},
	'S': {Name: "s", Negated: true},
	'i': {Name: "i"},
	'I': {Name: "i", Negated: true},
	'c': {Name: "c"},
	'C': {Name: "c", Negated: true},
	'd': {Name: "d"},
	'D': {Name: "d", Negated: true},
	'w': {Name: "w"},
	'W': {Name: "w", Negated: true},
}

// singleCharEscapes maps the character after a backslash to the code point
// it stands for.
var singleCharEscapes = map[rune]rune{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'\\': '\\',
	'|':  '|',
	'.':  '.',
	'?':  '?',
	'*':  '*',
	'+':  '+',
	'(':  '(',
	')':  ')',
	'{':  '{',
	'}':  '}',
	'-':  '-',
	'[':  '[',
	']':  ']',
	'^':  '^',
	'$':  '$',
}
