package interpreter

// cell owns a variable's storage. Its kind never changes after creation.
type cell struct {
	val Value
}

// slot is a variable binding. An owned slot has a cell of its own; a
// by-reference parameter shares the cell of the variable it was bound to, so
// every write lands in the owner no matter how many calls deep the alias is.
type slot struct {
	cell *cell
	ref  string // caller-side name for a by-reference binding, empty otherwise
}

func ownedSlot(v Value) *slot {
	return &slot{cell: &cell{val: v}}
}

func (s *slot) value() Value {
	return s.cell.val
}

func (s *slot) kind() ValueKind {
	return s.cell.val.Kind
}

// set stores v in the owning cell. The caller checks that the kinds match.
func (s *slot) set(v Value) {
	s.cell.val = v
}

// isRef reports whether the slot aliases a variable of a calling frame.
func (s *slot) isRef() bool {
	return s.ref != ""
}

// block is one lexical nesting level.
type block map[string]*slot

// resultNames are the scope 0 slots a call writes its return value into.
var resultNames = map[ValueKind]string{
	KindInt:    "resulti",
	KindString: "results",
	KindBool:   "resultb",
}

// frame is one function activation: its blocks (index 0 is the function
// level scope), the function name and the line to resume at in the caller.
type frame struct {
	fn       string
	returnTo int
	blocks   []block
}

func newFrame(fn string, returnTo int) *frame {
	return &frame{
		fn:       fn,
		returnTo: returnTo,
		blocks:   []block{make(block)},
	}
}

// resolve returns the index of the innermost block declaring name, or -1.
func (f *frame) resolve(name string) int {
	for idx := len(f.blocks) - 1; idx >= 0; idx-- {
		if _, ok := f.blocks[idx][name]; ok {
			return idx
		}
	}
	return -1
}

// lookup returns the innermost binding of name.
func (f *frame) lookup(name string) (*slot, bool) {
	idx := f.resolve(name)
	if idx < 0 {
		return nil, false
	}
	return f.blocks[idx][name], true
}

// declare adds an owned variable to the innermost block. It reports false
// when the name is already declared in that block.
func (f *frame) declare(name string, v Value) bool {
	inner := f.blocks[len(f.blocks)-1]
	if _, ok := inner[name]; ok {
		return false
	}
	inner[name] = ownedSlot(v)
	return true
}

// bind adds a by-value parameter, replacing any earlier binding of the name.
func (f *frame) bind(name string, v Value) {
	f.blocks[len(f.blocks)-1][name] = ownedSlot(v)
}

// bindRef makes name an alias of owner, which lives in a calling frame.
func (f *frame) bindRef(name string, owner *slot, ownerName string) {
	f.blocks[len(f.blocks)-1][name] = &slot{cell: owner.cell, ref: ownerName}
}

// read returns the value of name in block scope.
func (f *frame) read(scope int, name string) (Value, bool) {
	if scope < 0 || scope >= len(f.blocks) {
		return Value{}, false
	}
	s, ok := f.blocks[scope][name]
	if !ok {
		return Value{}, false
	}
	return s.value(), true
}

// write stores v into name in block scope, keeping any alias intact.
func (f *frame) write(scope int, name string, v Value) bool {
	if scope < 0 || scope >= len(f.blocks) {
		return false
	}
	s, ok := f.blocks[scope][name]
	if !ok {
		return false
	}
	s.set(v)
	return true
}

// setResult stores a call result in scope 0 under the name for its kind.
func (f *frame) setResult(v Value) {
	name, ok := resultNames[v.Kind]
	if !ok {
		return
	}

	top := f.blocks[0]
	if s, ok := top[name]; ok && s.kind() == v.Kind {
		s.set(v)
		return
	}
	top[name] = ownedSlot(v)
}

func (f *frame) pushBlock() {
	f.blocks = append(f.blocks, make(block))
}

// popBlock drops the innermost block. The function level scope is never popped.
func (f *frame) popBlock() bool {
	if len(f.blocks) < 2 {
		return false
	}
	f.blocks[len(f.blocks)-1] = nil
	f.blocks = f.blocks[:len(f.blocks)-1]
	return true
}

// scopeStack is the stack of function activations.
type scopeStack struct {
	frames []*frame
}

func newScopeStack() *scopeStack {
	return &scopeStack{frames: make([]*frame, 0, 8)}
}

func (s *scopeStack) depth() int {
	return len(s.frames)
}

// top returns the frame of the running function.
func (s *scopeStack) top() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// caller returns the frame below the running one.
func (s *scopeStack) caller() *frame {
	if len(s.frames) < 2 {
		return nil
	}
	return s.frames[len(s.frames)-2]
}

func (s *scopeStack) pushFrame(f *frame) {
	s.frames = append(s.frames, f)
}

func (s *scopeStack) popFrame() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	f := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return f
}

// setReturnValue stores a callee's result in the caller's scope 0.
func (s *scopeStack) setReturnValue(v Value) {
	if c := s.caller(); c != nil {
		c.setResult(v)
	}
}
