package xqregex

type program struct {
	instructions []func(vm *machine)
	flags        Flags
	groups       int
}

// classMatcher is the compiled form of a CharClass.
type classMatcher struct {
	// Characters and ranges, compared case-blind under FlagIgnoreCase
	chars *charSet
	// Category and multi-character escapes, always compared exactly
	props      *charSet
	negated    bool
	subtracted *classMatcher
}

func newClassMatcher(cls *CharClass) *classMatcher {
	m := &classMatcher{negated: cls.Negated}

	ranges := make([]charRange, len(cls.Ranges))
	for i, r := range cls.Ranges {
		ranges[i] = charRange{lo: r.Lo, hi: r.Hi}
	}
	m.chars = newCharSet(ranges...)

	m.props = &charSet{}
	for _, cat := range cls.Categories {
		s, ok := lookupCategory(cat.Name)
		if !ok {
			// the parser only lets known names through
			panic("xqregex: unknown category " + cat.Name)
		}
		if cat.Negated {
			s = s.clone()
			s.complement()
		}
		m.props.union(s)
	}

	if cls.Subtracted != nil {
		m.subtracted = newClassMatcher(cls.Subtracted)
	}
	return m
}

func (m *classMatcher) matches(r rune, fold bool) bool {
	var in bool
	if fold {
		in = m.chars.containsFold(r)
	} else {
		in = m.chars.containsRune(r)
	}
	in = in || m.props.containsRune(r)
	if m.negated {
		in = !in
	}
	if in && m.subtracted != nil && m.subtracted.matches(r, fold) {
		return false
	}
	return in
}

type compiler struct {
	instructions []func(vm *machine)
	flags        Flags
}

// Returns the position of inserted instruction
func (c *compiler) emit(v func(vm *machine)) int {
	pos := len(c.instructions)
	c.instructions = append(c.instructions, v)
	return pos
}

func (c *compiler) next() int {
	return len(c.instructions)
}

// searchLoopPC is the instruction that advances the search to the next
// start position.
const searchLoopPC = 1

// buildProgram translates a syntax tree into instructions. The first two
// instructions implement the search loop: a frame that resumes at the
// following start position is kept at the bottom of the backtracking stack.
func buildProgram(tree *syntaxTree, flags Flags) *program {
	c := compiler{flags: flags.effective()}

	c.emit(func(vm *machine) {
		vm.pushBacktrackingFrame(searchLoopPC)
		vm.pc += 2
	})
	c.emit(func(vm *machine) {
		if vm.atEnd() {
			vm.noMatch()
			return
		}
		vm.pos++
		vm.pc--
	})

	c.compileNode(tree.root)

	return &program{
		instructions: c.instructions,
		flags:        c.flags,
		groups:       tree.groups,
	}
}

func (c *compiler) compileNode(n Node) {
	switch n := n.(type) {
	case *Literal:
		c.compileLiteral(n.Rune)
	case *AnyChar:
		dotAll := c.flags&FlagDotAll != 0
		c.emit(func(vm *machine) {
			if vm.atEnd() {
				vm.noMatch()
				return
			}
			r := vm.input[vm.pos]
			if !dotAll && (r == '\n' || r == '\r') {
				vm.noMatch()
				return
			}
			vm.pos++
			vm.pc++
		})
	case *CharClass:
		m := newClassMatcher(n)
		fold := c.flags&FlagIgnoreCase != 0
		c.emit(func(vm *machine) {
			if vm.atEnd() || !m.matches(vm.input[vm.pos], fold) {
				vm.noMatch()
				return
			}
			vm.pos++
			vm.pc++
		})
	case *Anchor:
		c.compileAnchor(n.Kind)
	case *Group:
		c.compileGroup(n)
	case *Backreference:
		index := n.Index
		c.emit(func(vm *machine) {
			if !vm.matchCapture(index) {
				vm.noMatch()
				return
			}
			vm.pc++
		})
	case *Quantifier:
		c.compileQuantifier(n)
	case *Sequence:
		for _, item := range n.Items {
			c.compileNode(item)
		}
	case *Alternation:
		c.compileAlternation(n)
	}
}

func (c *compiler) compileLiteral(want rune) {
	if c.flags&FlagIgnoreCase != 0 {
		c.emit(func(vm *machine) {
			if vm.atEnd() || !equalFold(want, vm.input[vm.pos]) {
				vm.noMatch()
				return
			}
			vm.pos++
			vm.pc++
		})
		return
	}
	c.emit(func(vm *machine) {
		if vm.atEnd() || vm.input[vm.pos] != want {
			vm.noMatch()
			return
		}
		vm.pos++
		vm.pc++
	})
}

func (c *compiler) compileAnchor(kind AnchorKind) {
	multiline := c.flags&FlagMultiline != 0
	if kind == StartOfLine {
		c.emit(func(vm *machine) {
			// In multi-line mode a line starts after every '\n' that is
			// not the last character of the input.
			if vm.pos == 0 || multiline && !vm.atEnd() && vm.input[vm.pos-1] == '\n' {
				vm.pc++
				return
			}
			vm.noMatch()
		})
		return
	}
	c.emit(func(vm *machine) {
		if vm.atEnd() || multiline && vm.input[vm.pos] == '\n' {
			vm.pc++
			return
		}
		vm.noMatch()
	})
}

func (c *compiler) compileGroup(g *Group) {
	if g.Index == 0 {
		c.compileNode(g.Body)
		return
	}
	index := g.Index
	c.emit(func(vm *machine) {
		vm.pc++
		vm.stack.push(vm.pos)
	})
	c.compileNode(g.Body)
	c.emit(func(vm *machine) {
		vm.pc++
		vm.captures[index] = capture{start: vm.stack.pop(), end: vm.pos}
	})
}

func (c *compiler) compileAlternation(a *Alternation) {
	var jumps []int
	for i, alt := range a.Alternatives {
		if i == len(a.Alternatives)-1 {
			c.compileNode(alt)
			break
		}
		split := c.emit(nil)
		c.compileNode(alt)
		jumps = append(jumps, c.emit(nil))

		nextAlt := c.next()
		c.instructions[split] = func(vm *machine) {
			vm.pc++
			vm.pushBacktrackingFrame(nextAlt)
		}
	}
	end := c.next()
	for _, j := range jumps {
		c.instructions[j] = func(vm *machine) {
			vm.pc = end
		}
	}
}

// compileQuantifier emits a loop around the body. The loop keeps its
// iteration count on the machine stack; each iteration additionally pushes
// its start position so that iterations consuming nothing can be detected.
func (c *compiler) compileQuantifier(q *Quantifier) {
	if q.Max == 0 {
		return
	}
	if q.Min == 1 && q.Max == 1 {
		c.compileNode(q.Body)
		return
	}
	min, max, lazy := q.Min, q.Max, q.Lazy

	c.emit(func(vm *machine) {
		vm.pc++
		vm.stack.push(0)
	})
	loop := c.emit(nil)
	body := c.emit(func(vm *machine) {
		vm.pc++
		vm.stack.push(vm.pos)
	})
	c.compileNode(q.Body)
	c.emit(func(vm *machine) {
		start := vm.stack.pop()
		count := vm.stack.peekPtr()
		if vm.pos == start {
			if *count >= min {
				vm.noMatch()
				return
			}
			// An empty iteration can be repeated to satisfy any minimum.
			*count = min
		} else {
			*count++
		}
		vm.pc = loop
	})
	exit := c.emit(func(vm *machine) {
		vm.pc++
		vm.stack.pop()
	})

	c.instructions[loop] = func(vm *machine) {
		count := vm.stack.peek()
		switch {
		case count < min:
			vm.pc = body
		case max >= 0 && count >= max:
			vm.pc = exit
		case lazy:
			vm.pushBacktrackingFrame(body)
			vm.pc = exit
		default:
			vm.pushBacktrackingFrame(exit)
			vm.pc = body
		}
	}
}
