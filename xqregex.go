// Package xqregex implements the regular expression dialect of the XPath and
// XQuery function fn:matches, as defined by XML Schema Part 2 and XPath
// Functions and Operators: category escapes, character class subtraction,
// multi-character escapes such as \i and \c, back-references and the
// s, m, i, x and q flags.
package xqregex

// Regexp represents a compiled pattern.
// It is safe for concurrent use by multiple goroutines.
// All methods on Regexp do not mutate internal state.
type Regexp struct {
	pattern   string
	flags     Flags
	tree      *syntaxTree
	prog      *program
	prefilter *prefilter
	config    Config
}

// Compile parses a pattern and returns a Regexp that can be matched against
// input strings. Invalid patterns are reported as an *Error with code
// FORX0002.
func Compile(pattern string, flags Flags) (*Regexp, error) {
	return CompileWithConfig(pattern, flags, DefaultConfig())
}

// CompileWithConfig is like [Compile] but uses the limits of config.
func CompileWithConfig(pattern string, flags Flags, config Config) (*Regexp, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	tree, err := parse(pattern, flags)
	if err != nil {
		return nil, err
	}
	re := &Regexp{
		pattern: pattern,
		flags:   flags,
		tree:    tree,
		prog:    buildProgram(tree, flags),
		config:  config,
	}
	if config.EnablePrefilter {
		re.prefilter = newPrefilter(tree, flags.effective(), config.MinPrefilterLen)
	}
	return re, nil
}

// MustCompile is like [Compile] but panics if the expression cannot be parsed.
// It simplifies safe initialization of global variables containing regular
// expressions.
func MustCompile(pattern string, flags Flags) *Regexp {
	re, err := Compile(pattern, flags)
	if err != nil {
		panic("xqregex: MustCompile: " + err.Error())
	}
	return re
}

// Match reports whether some substring of input matches the pattern.
// The only possible error is ErrBacktrackLimit.
func (re *Regexp) Match(input string) (bool, error) {
	if !re.prefilter.mayMatch(input) {
		return false, nil
	}
	return re.matchRunes([]rune(input))
}

// MatchRunes is like [Regexp.Match] for input given as code points.
func (re *Regexp) MatchRunes(input []rune) (bool, error) {
	return re.matchRunes(input)
}

func (re *Regexp) matchRunes(input []rune) (bool, error) {
	vm := newMachine(re.prog, input, re.config.MaxBacktracks)
	vm.eval()
	if vm.limitExceeded {
		return false, ErrBacktrackLimit
	}
	return !vm.notMatched, nil
}

// String returns the source text used to compile the pattern.
func (re *Regexp) String() string {
	return re.pattern
}

// Flags returns the flags the pattern was compiled with.
func (re *Regexp) Flags() Flags {
	return re.flags
}

// NumGroups returns the number of capturing groups.
func (re *Regexp) NumGroups() int {
	return re.tree.groups
}

// Root returns the syntax tree of the pattern. It must not be modified.
func (re *Regexp) Root() Node {
	return re.tree.root
}

// Matches implements fn:matches(input, pattern, flags). Compiled patterns
// are kept in a process-wide cache.
func Matches(input, pattern, flags string) (bool, error) {
	return defaultCache.Matches(input, pattern, flags)
}
