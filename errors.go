package xqregex

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorCode is the XQuery error code carried by an [Error].
type ErrorCode string

const (
	// Invalid regular expression flags.
	CodeInvalidFlags ErrorCode = "FORX0001"

	// Invalid regular expression syntax.
	CodeInvalidPattern ErrorCode = "FORX0002"
)

// Error is returned for invalid flags and invalid patterns.
// Both kinds are detected before any matching takes place.
type Error struct {
	Code ErrorCode

	// Pattern is the pattern as it was passed to the compiler,
	// or the flags string for CodeInvalidFlags.
	Pattern string

	// Pos is the code point offset in Pattern at which the defect was
	// found, or -1 if it is not tied to a position. Under the "x" flag it
	// still refers to Pattern, not to the pattern without whitespace.
	Pos int

	msg string
}

func (e *Error) Error() string {
	if e.msg == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.msg
}

// Is reports whether target is an *Error with the same code. This makes
// errors.Is(err, ErrInvalidPattern) work for every pattern error.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var _ error = (*Error)(nil)

var (
	// ErrInvalidFlags matches every error with code FORX0001.
	ErrInvalidFlags = &Error{Code: CodeInvalidFlags, Pos: -1}

	// ErrInvalidPattern matches every error with code FORX0002.
	ErrInvalidPattern = &Error{Code: CodeInvalidPattern, Pos: -1}
)

// ErrBacktrackLimit is returned by a match that gave up after
// Config.MaxBacktracks backtracking steps.
var ErrBacktrackLimit = errors.New("xqregex: backtracking limit exceeded")

func newFlagsError(flags string, char rune) *Error {
	return &Error{
		Code:    CodeInvalidFlags,
		Pattern: flags,
		Pos:     -1,
		msg:     "invalid flag " + strconv.QuoteRune(char) + " in " + strconv.Quote(flags),
	}
}

func newSyntaxError(pattern string, pos int, format string, args ...any) *Error {
	return &Error{
		Code:    CodeInvalidPattern,
		Pattern: pattern,
		Pos:     pos,
		msg:     fmt.Sprintf(format, args...) + " at offset " + strconv.Itoa(pos),
	}
}
