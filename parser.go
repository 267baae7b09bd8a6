package xqregex

import (
	"math"
	"strconv"
)

type syntaxTree struct {
	root   Node
	groups int
}

type parser struct {
	// Pattern as given by the caller, reported in errors
	source  string
	pattern []rune
	pos     int

	// Offsets in source of the code points of pattern, nil if they agree
	offsets []int

	capturesCount      int
	totalCapturesCount int
	closedCaptures     []bool
}

func parse(pattern string, flags Flags) (*syntaxTree, error) {
	flags = flags.effective()
	if flags&FlagLiteral != 0 {
		return parseLiteral(pattern), nil
	}

	p := parser{
		source:             pattern,
		totalCapturesCount: -1,
	}
	if flags&FlagExtended != 0 {
		pattern, p.offsets = stripWhitespace(pattern)
	}
	p.pattern = []rune(pattern)

	root, err := p.parseDisjunction()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		// parseDisjunction only stops early at a ')'
		return nil, p.errorf("unmatched )")
	}
	return &syntaxTree{root: root, groups: p.capturesCount}, nil
}

func parseLiteral(pattern string) *syntaxTree {
	items := make([]Node, 0, len(pattern))
	for _, r := range pattern {
		items = append(items, &Literal{Rune: r})
	}
	return &syntaxTree{root: &Sequence{Items: items}}
}

func (p *parser) errorf(format string, args ...any) error {
	pos := p.pos
	if p.offsets != nil {
		pos = p.offsets[min(pos, len(p.offsets)-1)]
	}
	return newSyntaxError(p.source, pos, format, args...)
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.pattern)
}

func (p *parser) peek() (rune, bool) {
	return p.peekAt(0)
}

func (p *parser) peekAt(n int) (rune, bool) {
	if p.pos+n >= len(p.pattern) {
		return 0, false
	}
	return p.pattern[p.pos+n], true
}

func (p *parser) consume(expected rune) bool {
	if r, ok := p.peek(); ok && r == expected {
		p.pos++
		return true
	}
	return false
}

// getTotalCapturesCount counts the capturing groups of the whole pattern
// without parsing it.
func (p *parser) getTotalCapturesCount() int {
	if p.totalCapturesCount != -1 {
		return p.totalCapturesCount
	}
	count := 0
	depth := 0
	for i := 0; i < len(p.pattern); i++ {
		switch p.pattern[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '(':
			if depth == 0 && (i+1 >= len(p.pattern) || p.pattern[i+1] != '?') {
				count++
			}
		}
	}
	p.totalCapturesCount = count
	return count
}

func (p *parser) parseDisjunction() (Node, error) {
	first, err := p.parseAlternative()
	if err != nil {
		return nil, err
	}
	if r, ok := p.peek(); !ok || r != '|' {
		return first, nil
	}

	alternatives := []Node{first}
	for p.consume('|') {
		alt, err := p.parseAlternative()
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, alt)
	}
	return &Alternation{Alternatives: alternatives}, nil
}

func (p *parser) parseAlternative() (Node, error) {
	var items []Node
	for {
		r, ok := p.peek()
		if !ok || r == '|' || r == ')' {
			break
		}
		var err error
		items, err = p.parseTerm(items)
		if err != nil {
			return nil, err
		}
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return &Sequence{Items: items}, nil
}

// parseTerm parses an atom with its optional quantifier and appends the
// result to items. A back-reference followed by literal digits yields more
// than one node; the quantifier binds to the last of them.
func (p *parser) parseTerm(items []Node) ([]Node, error) {
	atoms, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	min, max, lazy, ok, err := p.parseQuantifier()
	if err != nil {
		return nil, err
	}
	if ok {
		last := len(atoms) - 1
		atoms[last] = &Quantifier{Body: atoms[last], Min: min, Max: max, Lazy: lazy}
	}
	return append(items, atoms...), nil
}

func (p *parser) parseAtom() ([]Node, error) {
	r, _ := p.peek()
	switch r {
	case '(':
		p.pos++
		g, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		return []Node{g}, nil
	case '[':
		p.pos++
		cls, err := p.parseClass()
		if err != nil {
			return nil, err
		}
		return []Node{cls}, nil
	case '.':
		p.pos++
		return []Node{&AnyChar{}}, nil
	case '^':
		p.pos++
		return []Node{&Anchor{Kind: StartOfLine}}, nil
	case '$':
		p.pos++
		return []Node{&Anchor{Kind: EndOfLine}}, nil
	case '\\':
		p.pos++
		return p.parseAtomEscape()
	case '*', '+', '?':
		return nil, p.errorf("nothing to repeat")
	case '{', '}', ']':
		return nil, p.errorf("unescaped %q", r)
	}
	p.pos++
	return []Node{&Literal{Rune: r}}, nil
}

func (p *parser) parseGroup() (Node, error) {
	index := 0
	if p.consume('?') {
		if !p.consume(':') {
			return nil, p.errorf("invalid group")
		}
	} else {
		p.capturesCount++
		index = p.capturesCount
	}

	body, err := p.parseDisjunction()
	if err != nil {
		return nil, err
	}
	if !p.consume(')') {
		return nil, p.errorf("missing )")
	}

	if index == 0 {
		return &Group{Body: body}, nil
	}
	for len(p.closedCaptures) <= index {
		p.closedCaptures = append(p.closedCaptures, false)
	}
	p.closedCaptures[index] = true
	return &Group{Index: index, Body: body}, nil
}

func (p *parser) parseAtomEscape() ([]Node, error) {
	r, ok := p.peek()
	if !ok {
		return nil, p.errorf("trailing backslash")
	}
	if r >= '0' && r <= '9' {
		return p.parseBackreference()
	}
	if r == 'p' || r == 'P' {
		cat, err := p.parseCategoryEscape()
		if err != nil {
			return nil, err
		}
		return []Node{&CharClass{Categories: []Category{cat}}}, nil
	}
	if cat, ok := multiCharEscapes[r]; ok {
		p.pos++
		return []Node{&CharClass{Categories: []Category{cat}}}, nil
	}
	if c, ok := singleCharEscapes[r]; ok {
		p.pos++
		return []Node{&Literal{Rune: c}}, nil
	}
	return nil, p.errorf("invalid escape \\%c", r)
}

// parseBackreference resolves the longest digit prefix that names a group of
// the pattern. The remaining digits are literals.
func (p *parser) parseBackreference() ([]Node, error) {
	start := p.pos
	for r, ok := p.peek(); ok && r >= '0' && r <= '9'; r, ok = p.peek() {
		p.pos++
	}
	digits := string(p.pattern[start:p.pos])
	p.pos = start

	if digits[0] == '0' {
		return nil, p.errorf("invalid back-reference \\%s", digits)
	}

	total := p.getTotalCapturesCount()
	index, n := 0, 0
	for i := len(digits); i >= 1; i-- {
		if i > 10 {
			continue
		}
		v, err := strconv.Atoi(digits[:i])
		if err == nil && v >= 1 && v <= total {
			index, n = v, i
			break
		}
	}
	if index == 0 {
		return nil, p.errorf("back-reference \\%s to a non-existent group", digits)
	}
	if index >= len(p.closedCaptures) || !p.closedCaptures[index] {
		return nil, p.errorf("back-reference \\%d to a group that is not closed", index)
	}

	p.pos += n
	nodes := []Node{&Backreference{Index: index}}
	for _, d := range digits[n:] {
		p.pos++
		nodes = append(nodes, &Literal{Rune: d})
	}
	return nodes, nil
}

// parseCategoryEscape parses \p{Name} or \P{Name}; the position is on
// the p.
func (p *parser) parseCategoryEscape() (Category, error) {
	negated := p.pattern[p.pos] == 'P'
	p.pos++
	if !p.consume('{') {
		return Category{}, p.errorf("expected { after \\p")
	}
	start := p.pos
	for {
		r, ok := p.peek()
		if !ok {
			return Category{}, p.errorf("missing } in category escape")
		}
		if r == '}' {
			break
		}
		p.pos++
	}
	name := string(p.pattern[start:p.pos])
	if !isCategoryName(name) {
		return Category{}, p.errorf("unknown category %q", name)
	}
	p.pos++
	return Category{Name: name, Negated: negated}, nil
}

// If number is valid, returns n, true. Values are saturated at
// math.MaxInt64 so that bounds checks can reject them.
func (p *parser) parseDecimalDigits() (int64, bool) {
	r, ok := p.peek()
	if !ok || r < '0' || r > '9' {
		return 0, false
	}
	var n int64 = 0
	for ; ok && r >= '0' && r <= '9'; r, ok = p.peek() {
		p.pos++

		n = n*10 + int64(r-'0')
		if n > math.MaxInt32 || n < 0 {
			n = math.MaxInt64
		}
	}
	return n, true
}

func (p *parser) parseQuantifier() (min, max int, lazy, ok bool, err error) {
	r, _ := p.peek()
	switch r {
	case '*':
		p.pos++
		min, max = 0, -1
	case '+':
		p.pos++
		min, max = 1, -1
	case '?':
		p.pos++
		min, max = 0, 1
	case '{':
		p.pos++
		lo, ok := p.parseDecimalDigits()
		if !ok {
			return 0, 0, false, false, p.errorf("invalid quantifier")
		}
		if lo > math.MaxInt32 {
			return 0, 0, false, false, p.errorf("quantifier bound too large")
		}
		min, max = int(lo), int(lo)

		if p.consume(',') {
			max = -1
			if hi, ok := p.parseDecimalDigits(); ok {
				if hi > math.MaxInt32 {
					return 0, 0, false, false, p.errorf("quantifier bound too large")
				}
				if int64(min) > hi {
					return 0, 0, false, false, p.errorf("invalid range in repetition")
				}
				max = int(hi)
			}
		}
		if !p.consume('}') {
			return 0, 0, false, false, p.errorf("invalid quantifier")
		}
	default:
		return 0, 0, false, false, nil
	}
	lazy = p.consume('?')
	return min, max, lazy, true, nil
}

type classAtom struct {
	r rune
	// Set for class escapes like \d or \p{Lu}
	category *Category
	// An unescaped '-'
	dash bool
}

// parseClass parses a character class expression; the position is just
// after the opening bracket.
func (p *parser) parseClass() (*CharClass, error) {
	cls := &CharClass{}
	if p.consume('^') {
		cls.Negated = true
	}

	first := true
	for {
		r, ok := p.peek()
		if !ok {
			return nil, p.errorf("missing ]")
		}
		if r == ']' {
			if first {
				return nil, p.errorf("empty character class")
			}
			p.pos++
			return cls, nil
		}
		next, _ := p.peekAt(1)
		if r == '-' && next == '[' {
			if first {
				return nil, p.errorf("empty character class")
			}
			p.pos += 2
			sub, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			if !p.consume(']') {
				return nil, p.errorf("subtraction must be the last part of a character class")
			}
			cls.Subtracted = sub
			return cls, nil
		}
		if r == '-' && !first && next != ']' {
			return nil, p.errorf("'-' is only allowed at the start or end of a character class")
		}

		atom, err := p.parseClassAtom()
		if err != nil {
			return nil, err
		}
		first = false

		if atom.category != nil {
			cls.Categories = append(cls.Categories, *atom.category)
			continue
		}

		r, ok = p.peek()
		next, _ = p.peekAt(1)
		if !ok || r != '-' || next == '[' || next == ']' {
			cls.Ranges = append(cls.Ranges, Range{Lo: atom.r, Hi: atom.r})
			continue
		}

		if atom.dash {
			return nil, p.errorf("'-' cannot start a range")
		}
		p.pos++
		if r, ok := p.peek(); ok && r == '-' {
			return nil, p.errorf("'-' cannot end a range")
		}
		end, err := p.parseClassAtom()
		if err != nil {
			return nil, err
		}
		if end.category != nil {
			return nil, p.errorf("class escape cannot end a range")
		}
		if end.r < atom.r {
			return nil, p.errorf("range out of order in character class")
		}
		cls.Ranges = append(cls.Ranges, Range{Lo: atom.r, Hi: end.r})
	}
}

func (p *parser) parseClassAtom() (classAtom, error) {
	r, ok := p.peek()
	if !ok {
		return classAtom{}, p.errorf("missing ]")
	}
	switch r {
	case '[':
		return classAtom{}, p.errorf("unescaped [ in character class")
	case '-':
		p.pos++
		return classAtom{r: '-', dash: true}, nil
	case '\\':
	default:
		p.pos++
		return classAtom{r: r}, nil
	}

	p.pos++
	r, ok = p.peek()
	if !ok {
		return classAtom{}, p.errorf("trailing backslash")
	}
	if r >= '0' && r <= '9' {
		return classAtom{}, p.errorf("back-reference not allowed in character class")
	}
	if r == 'p' || r == 'P' {
		cat, err := p.parseCategoryEscape()
		if err != nil {
			return classAtom{}, err
		}
		return classAtom{category: &cat}, nil
	}
	if cat, ok := multiCharEscapes[r]; ok {
		p.pos++
		return classAtom{category: &cat}, nil
	}
	if c, ok := singleCharEscapes[r]; ok {
		p.pos++
		return classAtom{r: c}, nil
	}
	return classAtom{}, p.errorf("invalid escape \\%c", r)
}
