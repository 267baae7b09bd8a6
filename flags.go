package xqregex

import "strings"

// Flags is a bitmask of matching options, as given by the flags argument of
// fn:matches. The zero value corresponds to an empty flags string.
type Flags uint8

const (
	// "." matches line terminators ("s" flag).
	FlagDotAll Flags = 1 << iota

	// "^" and "$" match at line boundaries ("m" flag).
	FlagMultiline

	// Case-insensitive matching ("i" flag).
	FlagIgnoreCase

	// Whitespace in the pattern is ignored outside of character class
	// expressions ("x" flag).
	FlagExtended

	// The pattern is matched as a literal string ("q" flag).
	// FlagExtended, FlagMultiline and FlagDotAll have no effect
	// when it is set.
	FlagLiteral
)

const flagLetters = "smixq"

// ParseFlags converts a flags string into Flags. Every character must be one
// of s, m, i, x or q; repetitions are allowed. Any other character, including
// whitespace, is reported as an error with code FORX0001.
func ParseFlags(str string) (Flags, error) {
	var flags Flags
	for _, char := range str {
		i := strings.IndexRune(flagLetters, char)
		if i < 0 {
			return 0, newFlagsError(str, char)
		}
		flags |= 1 << i
	}
	return flags, nil
}

// String returns the canonical flags string: each set flag once, in the
// order "smixq".
func (f Flags) String() string {
	var b strings.Builder
	for i := 0; i < len(flagLetters); i++ {
		if f&(1<<i) != 0 {
			b.WriteByte(flagLetters[i])
		}
	}
	return b.String()
}

// effective drops the flags that are meaningless for the pattern mode.
func (f Flags) effective() Flags {
	if f&FlagLiteral != 0 {
		return f &^ (FlagExtended | FlagMultiline | FlagDotAll)
	}
	return f
}
