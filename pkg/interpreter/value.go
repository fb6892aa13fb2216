package interpreter

import (
	"brewin/pkg/lexer"
	"strconv"
)

type ValueKind int

const (
	KindUnknown ValueKind = iota
	KindInt
	KindString
	KindBool
	KindVoid // return type only; no value has this kind
)

// String returns the type keyword for the kind.
func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindVoid:
		return "void"
	default:
		return "unknown"
	}
}

// KindFromName maps a type keyword to its kind.
func KindFromName(name string) (ValueKind, bool) {
	switch lexer.Classify(name) {
	case lexer.INT:
		return KindInt, true
	case lexer.STRING:
		return KindString, true
	case lexer.BOOL:
		return KindBool, true
	case lexer.VOID:
		return KindVoid, true
	default:
		return KindUnknown, false
	}
}

// Value is a tagged union over the three value types of the language.
// Values are copied; they carry no identity.
type Value struct {
	Kind ValueKind
	I64  int64
	Str  string
	Bool bool
}

// String renders the value the way print shows it.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case KindString:
		return v.Str
	default:
		return "<nil>"
	}
}

// newInt creates a new integer Value.
func newInt(i int64) Value {
	return Value{Kind: KindInt, I64: i}
}

// newString creates a new string Value.
func newString(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// newBool creates a new boolean Value.
func newBool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// zeroValue returns 0, "" or False for the kind. Void and unknown kinds have no zero value.
func zeroValue(k ValueKind) (Value, bool) {
	switch k {
	case KindInt:
		return newInt(0), true
	case KindString:
		return newString(""), true
	case KindBool:
		return newBool(false), true
	default:
		return Value{}, false
	}
}

// parseLiteral parses a string, integer or boolean literal token.
// It reports false when the token is not a literal.
func parseLiteral(token string) (Value, bool, error) {
	switch {
	case lexer.IsStringLiteral(token):
		return newString(lexer.Unquote(token)), true, nil
	case lexer.IsIntLiteral(token):
		i, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return Value{}, true, err
		}
		return newInt(i), true, nil
	case token == "True":
		return newBool(true), true, nil
	case token == "False":
		return newBool(false), true, nil
	default:
		return Value{}, false, nil
	}
}
