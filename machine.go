package xqregex

type backtrackingFrame struct {
	pc                   int
	pos                  int
	capStart             int
	stackStart, stackLen int
}

type stack[T any] []T

func (s *stack[T]) push(v T) { *s = append(*s, v) }

func (s *stack[T]) inc() { var z T; *s = append(*s, z) }

func (s *stack[T]) peek() T { return (*s)[len(*s)-1] }

func (s *stack[T]) peekPtr() *T { return &(*s)[len(*s)-1] }

func (s *stack[T]) pop() T {
	i := len(*s) - 1
	v := (*s)[i]
	*s = (*s)[:i]
	return v
}

type capture struct {
	start int
	end   int
}

type machine struct {
	program []func(vm *machine)
	flags   Flags

	// Program Counter. Index of current machine instruction
	pc    int
	input []rune
	pos   int

	backtrackingStack stack[backtrackingFrame]
	capturesStack     []capture
	stacksStack       []int

	// Positions and loop counters of the quantifiers being executed
	stack stack[int]

	// Index 0 is unused so that group numbers index directly
	captures []capture

	// Choice points resumed since the current start position was tried
	backtracks    int
	maxBacktracks int

	notMatched    bool
	limitExceeded bool
}

func newMachine(prog *program, input []rune, maxBacktracks int) *machine {
	vm := &machine{
		program:       prog.instructions,
		flags:         prog.flags,
		input:         input,
		captures:      make([]capture, prog.groups+1),
		maxBacktracks: maxBacktracks,
	}
	for i := range vm.captures {
		vm.captures[i].start = -1
		vm.captures[i].end = -1
	}
	return vm
}

func (vm *machine) atEnd() bool {
	return vm.pos >= len(vm.input)
}

func (vm *machine) foldCase() bool {
	return vm.flags&FlagIgnoreCase != 0
}

func (vm *machine) pushBacktrackingFrame(pc int) {
	vm.backtrackingStack.inc()
	frame := vm.backtrackingStack.peekPtr()
	frame.pc = pc
	frame.pos = vm.pos
	frame.capStart = len(vm.capturesStack)
	vm.capturesStack = append(vm.capturesStack, vm.captures...)
	frame.stackStart = len(vm.stacksStack)
	frame.stackLen = len(vm.stack)
	vm.stacksStack = append(vm.stacksStack, vm.stack...)
}

func (vm *machine) noMatch() {
	if len(vm.backtrackingStack) == 0 {
		vm.notMatched = true
		return
	}
	frame := vm.backtrackingStack.pop()
	if frame.pc == searchLoopPC {
		// Moving on to the next start position starts a fresh attempt.
		vm.backtracks = 0
	} else if vm.maxBacktracks > 0 {
		vm.backtracks++
		if vm.backtracks > vm.maxBacktracks {
			vm.limitExceeded = true
			vm.notMatched = true
			return
		}
	}

	vm.pc = frame.pc
	vm.pos = frame.pos
	copy(vm.captures, vm.capturesStack[frame.capStart:frame.capStart+len(vm.captures)])
	vm.capturesStack = vm.capturesStack[:frame.capStart]
	vm.stack = vm.stack[:0]
	vm.stack = append(vm.stack, vm.stacksStack[frame.stackStart:frame.stackStart+frame.stackLen]...)
	vm.stacksStack = vm.stacksStack[:frame.stackStart]
}

func (vm *machine) eval() {
	for vm.pc < len(vm.program) && !vm.notMatched {
		vm.program[vm.pc](vm)
	}
}

// matchCapture compares the text of a closed group with the input at the
// current position and advances past it. A group that has not participated
// matches the empty string.
func (vm *machine) matchCapture(index int) bool {
	c := vm.captures[index]
	if c.start < 0 || c.end < 0 {
		return true
	}
	n := c.end - c.start
	if n > len(vm.input)-vm.pos {
		return false
	}
	fold := vm.foldCase()
	for i := 0; i < n; i++ {
		a, b := vm.input[c.start+i], vm.input[vm.pos+i]
		if a != b && (!fold || !equalFold(a, b)) {
			return false
		}
	}
	vm.pos += n
	return true
}
