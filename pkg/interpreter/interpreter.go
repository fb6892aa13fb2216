package interpreter

import (
	"bufio"
	"errors"
	"io"
	"os"

	"brewin/pkg/lexer"
	"brewin/pkg/parser"

	"github.com/charmbracelet/log"
)

// Interpreter executes a loaded Brewin program.
type Interpreter struct {
	prog *parser.Program // loaded program (lines, flow map, function table)

	out io.Writer     // output writer for print and input prompts
	in  *bufio.Reader // source of input lines

	trace    bool // log every executed statement at debug level
	maxSteps int  // maximum steps (0 = unlimited)
}

// ExecutionState is everything that changes while a program runs. It is
// created when Run starts and dropped when it returns.
type ExecutionState struct {
	IP     int // index of the statement to execute next
	scopes *scopeStack
	steps  int // steps executed
}

// Depth returns the number of active function frames.
func (st *ExecutionState) Depth() int {
	return st.scopes.depth()
}

// Steps returns the number of statements executed so far.
func (st *ExecutionState) Steps() int {
	return st.steps
}

// Lookup returns the current value of a variable visible in the running function.
func (st *ExecutionState) Lookup(name string) (Value, bool) {
	f := st.scopes.top()
	if f == nil {
		return Value{}, false
	}
	s, ok := f.lookup(name)
	if !ok {
		return Value{}, false
	}
	return s.value(), true
}

type Option func(*Interpreter)

// WithWriter sets the output writer for print statements
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithReader sets where the input builtin reads lines from
func WithReader(r io.Reader) Option {
	return func(i *Interpreter) { i.in = bufio.NewReader(r) }
}

// WithMaxSteps sets a maximum number of interpreter steps before returning ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// WithTrace logs every executed statement at debug level
func WithTrace(on bool) Option {
	return func(i *Interpreter) { i.trace = on }
}

// NewInterpreter creates a new Interpreter instance
func NewInterpreter(prog *parser.Program, opts ...Option) *Interpreter {
	it := &Interpreter{
		prog:     prog,
		out:      nil, // caller should set, or use WithWriter
		in:       nil,
		maxSteps: 0, // 0 => unlimited
	}

	for _, o := range opts {
		o(it)
	}

	if it.out == nil {
		it.out = os.Stdout
	}
	if it.in == nil {
		it.in = bufio.NewReader(os.Stdin)
	}

	return it
}

// Exec loads source lines and runs them from main.
func Exec(source []string, opts ...Option) error {
	return NewInterpreter(parser.Load(source), opts...).Run()
}

// Program returns the loaded program
func (i *Interpreter) Program() *parser.Program {
	return i.prog
}

// Output returns the output writer used for print
func (i *Interpreter) Output() io.Writer {
	return i.out
}

// Start creates the state for a fresh run positioned at the main function.
func (i *Interpreter) Start() (*ExecutionState, error) {
	entry := i.prog.Funcs.EntryLine(lexer.MainFunc)
	if entry < 0 {
		return nil, newErrorf(NameError, "function %s not defined", lexer.MainFunc)
	}

	st := &ExecutionState{
		IP:     entry,
		scopes: newScopeStack(),
	}
	st.scopes.pushFrame(newFrame(lexer.MainFunc, -1))

	return st, nil
}

// Step executes a single statement, returning (halted, error)
func (i *Interpreter) Step(st *ExecutionState) (bool, error) {
	if i.maxSteps > 0 && st.steps >= i.maxSteps {
		e := wrapError(ErrMaxStepsExceeded, "stopped after %d steps", st.steps)
		e.Line = st.IP
		return false, e
	}

	line := st.IP
	if i.trace {
		if stmt, ok := i.prog.At(line); ok {
			log.Debug("step", "ip", line, "stmt", stmt, "depth", st.scopes.depth())
		}
	}

	halted, err := coreStep(i, st)
	st.steps++

	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Line == noLine {
			e.Line = line
		}
		return false, err
	}

	return halted, nil
}

// Run executes from main until it returns or an error occurs
func (i *Interpreter) Run() error {
	st, err := i.Start()
	if err != nil {
		return err
	}

	for {
		halted, err := i.Step(st)
		if err != nil {
			return err
		}

		if halted {
			log.Debug("program finished", "steps", st.steps)
			return nil
		}
	}
}
