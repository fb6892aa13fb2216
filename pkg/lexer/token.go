package lexer

import (
	"fmt"
)

type TokenType int
type TokenCategory int

const (
	NONE TokenCategory = iota
	KEYWORD
	BUILTIN
	TYPE
	IDENTIFIER
	LITERAL
	OPERATOR
)

const (
	EOF TokenType = iota // end of line

	FUNC     // func
	ENDFUNC  // endfunc
	VAR      // var
	ASSIGN   // assign
	FUNCCALL // funccall
	IF       // if
	ELSE     // else
	ENDIF    // endif
	WHILE    // while
	ENDWHILE // endwhile
	RETURN   // return

	PRINT    // print
	INPUT    // input
	STRTOINT // strtoint

	INT    // int
	STRING // string
	BOOL   // bool
	VOID   // void

	ID     // identifier
	NUM    // integer literal
	STR    // quoted string literal
	TRUE   // True
	FALSE  // False

	PLUS  // +
	MINUS // -
	MULT  // *
	DIV   // /
	MOD   // %
	LT    // <
	GT    // >
	LE    // <=
	GE    // >=
	EQ    // ==
	NE    // !=
	AND   // &
	OR    // |

	ILLEGAL // illegal token
)

// Keywords maps every reserved word of the language to its token type.
var Keywords = map[string]TokenType{
	"func":     FUNC,
	"endfunc":  ENDFUNC,
	"var":      VAR,
	"assign":   ASSIGN,
	"funccall": FUNCCALL,
	"if":       IF,
	"else":     ELSE,
	"endif":    ENDIF,
	"while":    WHILE,
	"endwhile": ENDWHILE,
	"return":   RETURN,
	"print":    PRINT,
	"input":    INPUT,
	"strtoint": STRTOINT,
	"int":      INT,
	"string":   STRING,
	"bool":     BOOL,
	"void":     VOID,
	"True":     TRUE,
	"False":    FALSE,
}

// Operators maps the binary operator spellings to their token types.
var Operators = map[string]TokenType{
	"+":  PLUS,
	"-":  MINUS,
	"*":  MULT,
	"/":  DIV,
	"%":  MOD,
	"<":  LT,
	">":  GT,
	"<=": LE,
	">=": GE,
	"==": EQ,
	"!=": NE,
	"&":  AND,
	"|":  OR,
}

const MainFunc = "main"

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	for word, typ := range Keywords {
		if typ == t {
			return word
		}
	}
	for op, typ := range Operators {
		if typ == t {
			return op
		}
	}

	switch t {
	case EOF:
		return "$"
	case ID:
		return "id"
	case NUM:
		return "num"
	case STR:
		return "str"
	case ILLEGAL:
		return "illegal"
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// GetCategory returns the category of the token
func (t TokenType) GetCategory() TokenCategory {
	switch t {
	case FUNC, ENDFUNC, VAR, ASSIGN, FUNCCALL, IF, ELSE, ENDIF, WHILE, ENDWHILE, RETURN:
		return KEYWORD
	case PRINT, INPUT, STRTOINT:
		return BUILTIN
	case INT, STRING, BOOL, VOID:
		return TYPE
	case ID:
		return IDENTIFIER
	case NUM, STR, TRUE, FALSE:
		return LITERAL
	case PLUS, MINUS, MULT, DIV, MOD, LT, GT, LE, GE, EQ, NE, AND, OR:
		return OPERATOR
	default:
		return NONE
	}
}

// IsKeyword checks if the given word is reserved and returns its TokenType if it is
func IsKeyword(word string) (TokenType, bool) {
	tokenType, ok := Keywords[word]
	return tokenType, ok
}

// IsOperator reports whether the token is one of the binary operators.
func IsOperator(token string) bool {
	_, ok := Operators[token]
	return ok
}

// IsBuiltin reports whether a funccall target is handled by the interpreter itself.
func IsBuiltin(name string) bool {
	t, ok := Keywords[name]
	return ok && t.GetCategory() == BUILTIN
}

// Classify returns the token type of a single token produced by Tokenize.
func Classify(token string) TokenType {
	if token == "" {
		return EOF
	}
	if t, ok := Keywords[token]; ok {
		return t
	}
	if t, ok := Operators[token]; ok {
		return t
	}
	if IsStringLiteral(token) {
		return STR
	}
	if IsIntLiteral(token) {
		return NUM
	}
	if IsIdentifier(token) {
		return ID
	}

	return ILLEGAL
}
