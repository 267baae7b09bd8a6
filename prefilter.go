package xqregex

import (
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
)

// maxPrefilterLiterals caps the size of an alternation's literal set.
const maxPrefilterLiterals = 256

// prefilter rejects inputs that cannot match because none of the literals
// required by the pattern occurs in them.
type prefilter struct {
	literals []string
	auto     *ahocorasick.Automaton
}

func newPrefilter(tree *syntaxTree, flags Flags, minLen int) *prefilter {
	if flags&FlagIgnoreCase != 0 {
		return nil
	}
	lits, ok := requiredLiterals(tree.root)
	if !ok || len(lits) == 0 || len(lits) > maxPrefilterLiterals || shortest(lits) < minLen {
		return nil
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &prefilter{literals: lits, auto: auto}
}

// mayMatch reports false only if input cannot match.
func (p *prefilter) mayMatch(input string) bool {
	if p == nil || !utf8.ValidString(input) {
		return true
	}
	return p.auto.IsMatch([]byte(input))
}

func shortest(lits []string) int {
	n := -1
	for _, lit := range lits {
		if l := utf8.RuneCountInString(lit); n < 0 || l < n {
			n = l
		}
	}
	return n
}

// requiredLiterals returns a set of non-empty strings such that every match
// of n contains at least one of them. ok is false if there is no such set.
func requiredLiterals(n Node) (lits []string, ok bool) {
	switch n := n.(type) {
	case *Literal:
		return []string{string(n.Rune)}, true
	case *Group:
		return requiredLiterals(n.Body)
	case *Quantifier:
		if n.Min < 1 {
			return nil, false
		}
		return requiredLiterals(n.Body)
	case *Alternation:
		for _, alt := range n.Alternatives {
			altLits, ok := requiredLiterals(alt)
			if !ok {
				return nil, false
			}
			lits = append(lits, altLits...)
		}
		return dedupe(lits), true
	case *Sequence:
		return sequenceLiterals(n.Items)
	}
	return nil, false
}

// sequenceLiterals picks the best candidate among the runs of adjacent
// literals and the literal sets of the individual items.
func sequenceLiterals(items []Node) ([]string, bool) {
	var (
		best    []string
		bestLen int
		run     []rune
	)
	consider := func(lits []string) {
		if l := shortest(lits); l > bestLen {
			best, bestLen = lits, l
		}
	}
	flush := func() {
		if len(run) > 0 {
			consider([]string{string(run)})
			run = run[:0]
		}
	}
	for _, item := range items {
		if lit, ok := item.(*Literal); ok {
			run = append(run, lit.Rune)
			continue
		}
		flush()
		if lits, ok := requiredLiterals(item); ok {
			consider(lits)
		}
	}
	flush()
	return best, best != nil
}

func dedupe(lits []string) []string {
	seen := make(map[string]struct{}, len(lits))
	res := lits[:0]
	for _, lit := range lits {
		if _, ok := seen[lit]; ok {
			continue
		}
		seen[lit] = struct{}{}
		res = append(res, lit)
	}
	return res
}
