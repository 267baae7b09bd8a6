// Package starlarkxq exposes fn:matches to Starlark scripts.
//
//	xq.matches("abracadabra", "^a.*a$")         # True
//	p = xq.compile("[a-z-[aeiou]]+", flags="i")
//	p.matches("XYZ")                            # True
package starlarkxq

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/BaseXdb/xqregex"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Module is the Starlark value of the module. Compiled patterns are kept
// in a LRU cache shared by all threads using the module.
type Module struct {
	members starlark.StringDict
	cache   *xqregex.Cache
}

// NewModule creates a module using xqregex.DefaultConfig.
func NewModule() *Module {
	return NewModuleWithConfig(xqregex.DefaultConfig())
}

// NewModuleWithConfig creates a module whose cache and patterns use config.
func NewModuleWithConfig(config xqregex.Config) *Module {
	members := starlark.StringDict{
		"matches": starlark.NewBuiltin("matches", xqMatches),
		"compile": starlark.NewBuiltin("compile", xqCompile),
		"purge":   starlark.NewBuiltin("purge", xqPurge),
	}
	return &Module{
		members: members,
		cache:   xqregex.NewCache(config),
	}
}

// Check, if the type satisfies the interfaces.
var (
	_ starlark.Value    = (*Module)(nil)
	_ starlark.HasAttrs = (*Module)(nil)
)

func (m *Module) Freeze()               { m.members.Freeze() }
func (m *Module) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable: %s", m.Type()) }
func (m *Module) String() string        { return "<module xq>" }
func (m *Module) Truth() starlark.Bool  { return true }
func (m *Module) Type() string          { return "module" }

func (m *Module) Attr(name string) (starlark.Value, error) {
	if v, ok := m.members[name]; ok {
		if b, ok := v.(*starlark.Builtin); ok {
			return b.BindReceiver(m), nil
		}
		return v, nil
	}
	return nil, nil
}

func (m *Module) AttrNames() []string { return m.members.Keys() }

// inputParam is the input argument of fn:matches. None stands for the empty
// sequence, which is matched like the empty string.
type inputParam string

// requiredParam is a string argument for which the empty sequence is a
// type error.
type requiredParam string

var (
	_ starlark.Unpacker = (*inputParam)(nil)
	_ starlark.Unpacker = (*requiredParam)(nil)
)

func (p *inputParam) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case starlark.NoneType:
		*p = ""
	case starlark.String:
		*p = inputParam(v)
	default:
		return fmt.Errorf("got %s, want str or None", v.Type())
	}
	return nil
}

func (p *requiredParam) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case starlark.NoneType:
		return errors.New("XPTY0004: empty sequence is not allowed")
	case starlark.String:
		*p = requiredParam(v)
	default:
		return fmt.Errorf("got %s, want str", v.Type())
	}
	return nil
}

// xqMatches implements matches(input, pattern, flags="").
func xqMatches(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		input   inputParam
		pattern requiredParam
		flags   requiredParam
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "input", &input, "pattern", &pattern, "flags?", &flags); err != nil {
		return nil, err
	}

	m := b.Receiver().(*Module)
	matched, err := m.cache.Matches(string(input), string(pattern), string(flags))
	if err != nil {
		return nil, err
	}
	return starlark.Bool(matched), nil
}

// xqCompile implements compile(pattern, flags=""). Patterns come from the
// module cache, so compiling the same pattern twice yields equal values.
func xqCompile(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		pattern requiredParam
		flags   requiredParam
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &pattern, "flags?", &flags); err != nil {
		return nil, err
	}

	f, err := xqregex.ParseFlags(string(flags))
	if err != nil {
		return nil, err
	}
	m := b.Receiver().(*Module)
	re, err := m.cache.Compile(string(pattern), f)
	if err != nil {
		return nil, err
	}
	return &Pattern{re: re}, nil
}

// xqPurge clears the pattern cache.
func xqPurge(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	m := b.Receiver().(*Module)
	m.cache.Purge()

	return starlark.None, nil
}

// Pattern is a Starlark representation of a compiled pattern.
type Pattern struct {
	re *xqregex.Regexp
}

// Check, if the type satisfies the interfaces.
var (
	_ starlark.Value      = (*Pattern)(nil)
	_ starlark.HasAttrs   = (*Pattern)(nil)
	_ starlark.Comparable = (*Pattern)(nil)
)

func (p *Pattern) String() string {
	var b strings.Builder
	b.WriteString("xq.compile(")
	b.WriteString(strconv.Quote(p.re.String()))
	if flags := p.re.Flags().String(); flags != "" {
		b.WriteString(", flags=")
		b.WriteString(strconv.Quote(flags))
	}
	b.WriteByte(')')
	return b.String()
}

func (p *Pattern) Type() string          { return "pattern" }
func (p *Pattern) Freeze()               {}
func (p *Pattern) Truth() starlark.Bool  { return true }
func (p *Pattern) Hash() (uint32, error) { return starlark.String(p.re.String()).Hash() }

// Methods of the pattern object.
var patternMethods = map[string]*starlark.Builtin{
	"matches": starlark.NewBuiltin("matches", patternMatches),
}

// patternMembers contains members of the pattern object.
var patternMembers = map[string]func(p *Pattern) starlark.Value{
	"pattern": func(p *Pattern) starlark.Value { return starlark.String(p.re.String()) },
	"flags":   func(p *Pattern) starlark.Value { return starlark.String(p.re.Flags().String()) },
	"groups":  func(p *Pattern) starlark.Value { return starlark.MakeInt(p.re.NumGroups()) },
}

func (p *Pattern) Attr(name string) (starlark.Value, error) {
	if o, ok := patternMethods[name]; ok {
		return o.BindReceiver(p), nil
	}
	if o, ok := patternMembers[name]; ok {
		return o(p), nil
	}
	return nil, nil
}

func (p *Pattern) AttrNames() []string {
	names := make([]string, 0, len(patternMethods)+len(patternMembers))
	for name := range patternMethods {
		names = append(names, name)
	}
	for name := range patternMembers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (p *Pattern) CompareSameType(op syntax.Token, y starlark.Value, _ int) (bool, error) {
	o := y.(*Pattern)

	switch op {
	case syntax.EQL:
		return patternEquals(p, o), nil
	case syntax.NEQ:
		return !patternEquals(p, o), nil
	default:
		return false, fmt.Errorf("%s %s %s not implemented", p.Type(), op, o.Type())
	}
}

func patternEquals(x, y *Pattern) bool {
	return x.re.String() == y.re.String() && x.re.Flags() == y.re.Flags()
}

// patternMatches implements pattern.matches(input).
func patternMatches(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var input inputParam
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "input", &input); err != nil {
		return nil, err
	}

	p := b.Receiver().(*Pattern)
	matched, err := p.re.Match(string(input))
	if err != nil {
		return nil, err
	}
	return starlark.Bool(matched), nil
}
