package xqregex

// Node is an element of a parsed pattern. The set of implementations is
// closed: *Literal, *AnyChar, *CharClass, *Anchor, *Group, *Backreference,
// *Quantifier, *Sequence and *Alternation.
type Node interface {
	node()
}

// Literal matches a single code point.
type Literal struct {
	Rune rune
}

// AnyChar is ".".
type AnyChar struct{}

// Range is an inclusive interval of code points.
type Range struct {
	Lo, Hi rune
}

// Category names a character class escape: a Unicode general category
// ("Lu", "N"), a block ("IsBasicLatin"), or one of the multi-character
// escapes ("s", "i", "c", "d", "w").
type Category struct {
	Name    string
	Negated bool
}

// CharClass is a bracketed character class expression, or a class escape
// appearing outside of brackets.
//
// Ranges hold the individual characters and ranges of the expression; they
// are matched case-blind under FlagIgnoreCase. Categories are never
// case-folded. Subtracted, if non-nil, is removed from the class after
// negation has been applied.
type CharClass struct {
	Ranges     []Range
	Categories []Category
	Negated    bool
	Subtracted *CharClass
}

// AnchorKind distinguishes "^" from "$".
type AnchorKind uint8

const (
	StartOfLine AnchorKind = iota
	EndOfLine
)

type Anchor struct {
	Kind AnchorKind
}

// Group is a parenthesized sub-expression. Index is the 1-based number of a
// capturing group, or 0 for "(?:...)".
type Group struct {
	Index int
	Body  Node
}

type Backreference struct {
	Index int
}

// Quantifier repeats Body between Min and Max times. Max is -1 when the
// repetition is unbounded. Lazy quantifiers prefer fewer repetitions.
type Quantifier struct {
	Body Node
	Min  int
	Max  int
	Lazy bool
}

type Sequence struct {
	Items []Node
}

type Alternation struct {
	Alternatives []Node
}

func (*Literal) node()       {}
func (*AnyChar) node()       {}
func (*CharClass) node()     {}
func (*Anchor) node()        {}
func (*Group) node()         {}
func (*Backreference) node() {}
func (*Quantifier) node()    {}
func (*Sequence) node()      {}
func (*Alternation) node()   {}
