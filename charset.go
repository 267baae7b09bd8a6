package xqregex

import (
	"slices"
	"unicode"
)

type charRange struct {
	lo rune
	hi rune
}

type charSet struct {
	// Non-overlapping, non-adjacent ranges sorted in ascending order
	chars []charRange
}

func newCharSet(ranges ...charRange) *charSet {
	s := &charSet{}
	if len(ranges) == 0 {
		return s
	}
	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b charRange) int {
		return int(a.lo) - int(b.lo)
	})
	s.union(&charSet{chars: sorted})
	return s
}

// charSetFromTable flattens a unicode.RangeTable, expanding strided ranges.
func charSetFromTable(table *unicode.RangeTable) *charSet {
	var ranges []charRange
	add := func(lo, hi, stride rune) {
		if stride == 1 {
			ranges = append(ranges, charRange{lo: lo, hi: hi})
			return
		}
		for r := lo; r <= hi; r += stride {
			ranges = append(ranges, charRange{lo: r, hi: r})
		}
	}
	for _, r := range table.R16 {
		add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range table.R32 {
		add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	return newCharSet(ranges...)
}

func (s *charSet) clone() *charSet {
	return &charSet{chars: slices.Clone(s.chars)}
}

func (s *charSet) isEmpty() bool {
	return len(s.chars) == 0
}

// union merges other into s. Both inputs must be sorted by lo; the result
// is normalized.
func (s *charSet) union(other *charSet) {
	if len(other.chars) == 0 {
		return
	}
	chars := make([]charRange, 0, len(s.chars)+len(other.chars))

	i := 0
	j := 0
	for {
		var next charRange
		if i < len(s.chars) && (j >= len(other.chars) || s.chars[i].lo < other.chars[j].lo) {
			next = s.chars[i]
			i++
		} else if j < len(other.chars) {
			next = other.chars[j]
			j++
		} else {
			break
		}
		if len(chars) == 0 {
			chars = append(chars, next)
			continue
		}
		r := &chars[len(chars)-1]
		if next.hi <= r.hi {
			continue
		}
		if next.lo <= r.hi+1 {
			r.hi = next.hi
			continue
		}
		chars = append(chars, next)
	}
	s.chars = chars
}

func (s *charSet) subtraction(other *charSet) {
	if len(s.chars) == 0 || len(other.chars) == 0 {
		return
	}
	chars := []charRange{}

	j := 0
	for _, sRange := range s.chars {
		for j < len(other.chars) && other.chars[j].hi < sRange.lo {
			j++
		}

		for j < len(other.chars) {
			oRange := other.chars[j]
			if oRange.lo > sRange.hi {
				break
			}
			if oRange.lo > sRange.lo {
				chars = append(chars, charRange{lo: sRange.lo, hi: oRange.lo - 1})
			}
			if oRange.hi >= sRange.hi {
				sRange.lo = sRange.hi + 1
				break
			}
			sRange.lo = oRange.hi + 1
			j++
		}

		if sRange.lo <= sRange.hi {
			chars = append(chars, sRange)
		}
	}
	s.chars = chars
}

func (s *charSet) complement() {
	var chars []charRange
	next := rune(0)
	for _, r := range s.chars {
		if r.lo > next {
			chars = append(chars, charRange{lo: next, hi: r.lo - 1})
		}
		next = r.hi + 1
	}
	if next <= unicode.MaxRune {
		chars = append(chars, charRange{lo: next, hi: unicode.MaxRune})
	}
	s.chars = chars
}

func (s *charSet) containsRune(r rune) bool {
	lo := 0
	hi := len(s.chars)
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		range_ := s.chars[m]
		if range_.lo <= r && r <= range_.hi {
			return true
		}
		if r < range_.lo {
			hi = m
		} else {
			lo = m + 1
		}
	}
	return false
}

// containsFold reports whether r or any of its simple case variants
// is in s.
func (s *charSet) containsFold(r rune) bool {
	if s.containsRune(r) {
		return true
	}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if s.containsRune(f) {
			return true
		}
	}
	return false
}

// equalFold reports whether a and b are equal under simple case folding.
func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
