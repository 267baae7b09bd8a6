package xqregex

import "strings"

func isXMLSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// stripWhitespace implements the "x" flag: whitespace is removed everywhere
// except inside character class expressions. A backslash does not protect
// the whitespace following it, so `\ s` becomes `\s`.
//
// offsets maps each code point of the result, plus its end, to the code
// point offset in pattern. It is nil if nothing was removed.
func stripWhitespace(pattern string) (stripped string, offsets []int) {
	if !strings.ContainsAny(pattern, " \t\n\r") {
		return pattern, nil
	}

	var b strings.Builder
	b.Grow(len(pattern))

	depth := 0
	escaped := false
	n := 0
	for _, r := range pattern {
		n++
		if depth == 0 && isXMLSpace(r) {
			continue
		}
		b.WriteRune(r)
		offsets = append(offsets, n-1)

		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		}
	}
	return b.String(), append(offsets, n)
}
