package interpreter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"brewin/pkg/lexer"
	"brewin/pkg/parser"

	"github.com/charmbracelet/log"
)

// coreStep is the main single-step execution function
// it returns (halted, error).
func coreStep(i *Interpreter, st *ExecutionState) (bool, error) {
	// halt if IP runs off the end of the program
	stmt, ok := i.prog.At(st.IP)
	if !ok {
		return true, nil
	}

	switch s := stmt.(type) {
	case parser.FuncDef, parser.Nop:
		// function bodies are entered through calls only
		st.IP++
		return false, nil

	case parser.VarDecl:
		return false, i.execVarDecl(st, s)

	case parser.Assign:
		return false, i.execAssign(st, s)

	case parser.Call:
		if lexer.IsBuiltin(s.Name) {
			return false, i.execBuiltin(st, s)
		}
		return false, i.execCall(st, s)

	case parser.EndFunc:
		if st.scopes.depth() <= 1 {
			return true, nil
		}
		return false, i.returnFrom(st, i.defaultResult(st))

	case parser.Return:
		return i.execReturn(st, s)

	case parser.If:
		return false, i.execIf(st, s)

	case parser.Else:
		// reached only after a true if branch: skip the else body
		end, ok := i.prog.Flow.ElseEnd(st.IP)
		if !ok {
			return false, newErrorf(SyntaxError, "else without matching endif")
		}
		st.IP = end
		return false, nil

	case parser.EndIf:
		if !st.scopes.top().popBlock() {
			return false, newErrorf(SyntaxError, "endif without open block")
		}
		st.IP++
		return false, nil

	case parser.While:
		return false, i.execWhile(st, s)

	case parser.EndWhile:
		start, ok := i.prog.Flow.LoopPartner(st.IP)
		if !ok {
			return false, newErrorf(SyntaxError, "endwhile without matching while")
		}
		if !st.scopes.top().popBlock() {
			return false, newErrorf(SyntaxError, "endwhile without open block")
		}
		st.IP = start
		return false, nil

	case parser.Malformed:
		return false, newErrorf(SyntaxError, "%s: %s", s.Keyword, s.Reason)

	default:
		return false, newErrorf(SyntaxError, "unhandled statement %T", stmt)
	}
}

func (i *Interpreter) execVarDecl(st *ExecutionState, s parser.VarDecl) error {
	kind, ok := KindFromName(s.Type)
	zero, hasZero := zeroValue(kind)
	if !ok || !hasZero {
		return newErrorf(TypeError, "unknown variable type %q", s.Type)
	}

	f := st.scopes.top()
	for _, name := range s.Names {
		if !f.declare(name, zero) {
			return newErrorf(NameError, "duplicate definition of %s within the same block", name)
		}
	}

	st.IP++
	return nil
}

func (i *Interpreter) execAssign(st *ExecutionState, s parser.Assign) error {
	v, err := i.evaluate(st, s.Expr)
	if err != nil {
		return err
	}

	f := st.scopes.top()
	scope := f.resolve(s.Target)
	if scope < 0 {
		return newErrorf(NameError, "variable %s not found", s.Target)
	}

	current, _ := f.read(scope, s.Target)
	if current.Kind != v.Kind {
		return newErrorf(TypeError, "cannot assign %s to %s variable %s", v.Kind, current.Kind, s.Target)
	}

	f.write(scope, s.Target, v)
	st.IP++
	return nil
}

// execCall binds arguments and transfers control to a user function. A
// parameter declared by reference aliases the caller's variable only when the
// argument token names one; literals fall back to by-value.
func (i *Interpreter) execCall(st *ExecutionState, s parser.Call) error {
	fn, ok := i.prog.Funcs.Lookup(s.Name)
	if !ok {
		return newErrorf(NameError, "function %s not defined", s.Name)
	}

	caller := st.scopes.top()
	args := make([]Value, len(s.Args))
	for idx, token := range s.Args {
		v, err := i.operand(st, token)
		if err != nil {
			return err
		}
		args[idx] = v
	}

	if len(args) != len(fn.Params) {
		return newErrorf(NameError, "function %s expects %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}

	callee := newFrame(fn.Name, st.IP+1)
	for idx, p := range fn.Params {
		want, ok := KindFromName(p.Type)
		if !ok || want != args[idx].Kind {
			return newErrorf(TypeError, "argument %s of %s expects %s, got %s", p.Name, fn.Name, p.Type, args[idx].Kind)
		}

		if owner, isVar := caller.lookup(s.Args[idx]); p.ByRef && isVar {
			callee.bindRef(p.Name, owner, s.Args[idx])
		} else {
			callee.bind(p.Name, args[idx])
		}
	}

	st.scopes.pushFrame(callee)
	log.Debug("call", "func", fn.Name, "line", fn.Line, "return_to", callee.returnTo)
	st.IP = fn.Line
	return nil
}

func (i *Interpreter) execReturn(st *ExecutionState, s parser.Return) (bool, error) {
	// return from main ends the program
	if st.scopes.depth() <= 1 {
		return true, nil
	}

	if len(s.Expr) == 0 {
		return false, i.returnFrom(st, i.defaultResult(st))
	}

	v, err := i.evaluate(st, s.Expr)
	if err != nil {
		return false, err
	}

	declared := i.prog.Funcs.ReturnType(st.scopes.top().fn)
	if want, ok := KindFromName(declared); !ok || want != v.Kind {
		return false, newErrorf(TypeError, "function %s returns %s, got %s", st.scopes.top().fn, declared, v.Kind)
	}

	return false, i.returnFrom(st, &v)
}

// defaultResult is the zero value of the running function's return type, or
// nil for void functions.
func (i *Interpreter) defaultResult(st *ExecutionState) *Value {
	kind, _ := KindFromName(i.prog.Funcs.ReturnType(st.scopes.top().fn))
	if zero, ok := zeroValue(kind); ok {
		return &zero
	}
	return nil
}

// returnFrom stores the result in the caller and resumes it.
func (i *Interpreter) returnFrom(st *ExecutionState, result *Value) error {
	if result != nil {
		st.scopes.setReturnValue(*result)
	}

	done := st.scopes.popFrame()
	log.Debug("return", "func", done.fn, "return_to", done.returnTo)
	st.IP = done.returnTo
	return nil
}

func (i *Interpreter) condition(st *ExecutionState, expr []string) (bool, error) {
	v, err := i.evaluate(st, expr)
	if err != nil {
		return false, err
	}
	if v.Kind != KindBool {
		return false, newErrorf(TypeError, "condition is %s, expected bool", v.Kind)
	}
	return v.Bool, nil
}

func (i *Interpreter) execIf(st *ExecutionState, s parser.If) error {
	ok, err := i.condition(st, s.Cond)
	if err != nil {
		return err
	}

	if ok {
		st.scopes.top().pushBlock()
		st.IP++
		return nil
	}

	branch, found := i.prog.Flow.IfTargets(st.IP)
	if !found {
		return newErrorf(SyntaxError, "if without matching endif")
	}

	if branch.HasElse() {
		// the else body gets its own block, closed by endif
		st.scopes.top().pushBlock()
		st.IP = branch.Else + 1
		return nil
	}

	st.IP = branch.End + 1
	return nil
}

func (i *Interpreter) execWhile(st *ExecutionState, s parser.While) error {
	ok, err := i.condition(st, s.Cond)
	if err != nil {
		return err
	}

	if ok {
		st.scopes.top().pushBlock()
		st.IP++
		return nil
	}

	end, found := i.prog.Flow.LoopPartner(st.IP)
	if !found {
		return newErrorf(SyntaxError, "while without matching endwhile")
	}
	st.IP = end + 1
	return nil
}

func (i *Interpreter) execBuiltin(st *ExecutionState, s parser.Call) error {
	switch lexer.Classify(s.Name) {
	case lexer.PRINT:
		text, err := i.joinArgs(st, s.Args)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(i.out, text); err != nil {
			return wrapError(err, "write output")
		}

	case lexer.INPUT:
		prompt, err := i.joinArgs(st, s.Args)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(i.out, prompt); err != nil {
			return wrapError(err, "write output")
		}
		line, err := i.readLine()
		if err != nil {
			return wrapError(err, "read input")
		}
		st.scopes.top().setResult(newString(line))

	case lexer.STRTOINT:
		if len(s.Args) != 1 {
			return newErrorf(NameError, "strtoint expects 1 argument, got %d", len(s.Args))
		}
		v, err := i.operand(st, s.Args[0])
		if err != nil {
			return err
		}
		if v.Kind != KindString {
			return newErrorf(TypeError, "strtoint expects string, got %s", v.Kind)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err != nil {
			return newErrorf(TypeError, "cannot convert %q to int", v.Str)
		}
		st.scopes.top().setResult(newInt(n))
	}

	st.IP++
	return nil
}

// joinArgs concatenates the printed forms of literal or variable arguments.
func (i *Interpreter) joinArgs(st *ExecutionState, args []string) (string, error) {
	var b strings.Builder
	for _, token := range args {
		v, err := i.operand(st, token)
		if err != nil {
			return "", err
		}
		b.WriteString(v.String())
	}
	return b.String(), nil
}

// readLine blocks for one line of input. A final line without a newline is
// accepted; end of input with nothing read is an error.
func (i *Interpreter) readLine() (string, error) {
	line, err := i.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
