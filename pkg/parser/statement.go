package parser

import (
	"brewin/pkg/lexer"
	"fmt"
	"strings"
)

// Statement is one decoded source line. The set of implementations is closed;
// the interpreter dispatches on it with a type switch.
type Statement interface {
	statement()
	String() string
}

// FuncDef opens a function body: func <name> <params>... <return type>
type FuncDef struct {
	Name string
}

// EndFunc closes a function body.
type EndFunc struct{}

// VarDecl declares zero-valued variables: var <type> <names>...
// The type is kept as written so an unknown type can be reported when the line runs.
type VarDecl struct {
	Type  string
	Names []string
}

// Assign stores an expression result: assign <name> <expr>...
type Assign struct {
	Target string
	Expr   []string
}

// Call invokes a builtin or user function: funccall <name> <args>...
type Call struct {
	Name string
	Args []string
}

// If starts a conditional block.
type If struct {
	Cond []string
}

// Else separates the two branches of a conditional block.
type Else struct{}

// EndIf closes a conditional block.
type EndIf struct{}

// While starts a loop.
type While struct {
	Cond []string
}

// EndWhile closes a loop and jumps back to its condition.
type EndWhile struct{}

// Return leaves the current function; Expr is empty for a bare return.
type Return struct {
	Expr []string
}

// Nop is a blank, comment-only or unrecognized line.
type Nop struct{}

// Malformed is a line whose keyword is missing a mandatory operand.
type Malformed struct {
	Keyword string
	Reason  string
}

func (FuncDef) statement() {}
func (EndFunc) statement() {}
func (VarDecl) statement() {}
func (Assign) statement() {}
func (Call) statement() {}
func (If) statement() {}
func (Else) statement() {}
func (EndIf) statement() {}
func (While) statement() {}
func (EndWhile) statement() {}
func (Return) statement() {}
func (Nop) statement() {}
func (Malformed) statement() {}

func (s FuncDef) String() string { return "func " + s.Name }
func (EndFunc) String() string { return "endfunc" }
func (s VarDecl) String() string { return "var " + s.Type + " " + strings.Join(s.Names, " ") }
func (s Assign) String() string { return "assign " + s.Target + " " + strings.Join(s.Expr, " ") }
func (s Call) String() string { return strings.TrimSpace("funccall " + s.Name + " " + strings.Join(s.Args, " ")) }
func (s If) String() string { return "if " + strings.Join(s.Cond, " ") }
func (Else) String() string { return "else" }
func (EndIf) String() string { return "endif" }
func (s While) String() string { return "while " + strings.Join(s.Cond, " ") }
func (EndWhile) String() string { return "endwhile" }
func (s Return) String() string { return strings.TrimSpace("return " + strings.Join(s.Expr, " ")) }
func (Nop) String() string { return "nop" }
func (s Malformed) String() string { return fmt.Sprintf("%s <%s>", s.Keyword, s.Reason) }

// Decode turns the tokens of one line into a Statement.
func Decode(tokens []string) Statement {
	if len(tokens) == 0 {
		return Nop{}
	}

	keyword := tokens[0]
	args := tokens[1:]

	t, ok := lexer.IsKeyword(keyword)
	if !ok {
		return Nop{}
	}

	switch t {
	case lexer.FUNC:
		if len(args) == 0 {
			return Malformed{Keyword: keyword, Reason: "missing function name"}
		}
		return FuncDef{Name: args[0]}
	case lexer.ENDFUNC:
		return EndFunc{}
	case lexer.VAR:
		if len(args) == 0 {
			return Malformed{Keyword: keyword, Reason: "missing variable type"}
		}
		return VarDecl{Type: args[0], Names: args[1:]}
	case lexer.ASSIGN:
		if len(args) == 0 {
			return Malformed{Keyword: keyword, Reason: "missing assignment target"}
		}
		return Assign{Target: args[0], Expr: args[1:]}
	case lexer.FUNCCALL:
		if len(args) == 0 {
			return Malformed{Keyword: keyword, Reason: "missing function name"}
		}
		return Call{Name: args[0], Args: args[1:]}
	case lexer.IF:
		return If{Cond: args}
	case lexer.ELSE:
		return Else{}
	case lexer.ENDIF:
		return EndIf{}
	case lexer.WHILE:
		return While{Cond: args}
	case lexer.ENDWHILE:
		return EndWhile{}
	case lexer.RETURN:
		return Return{Expr: args}
	default:
		return Nop{}
	}
}
