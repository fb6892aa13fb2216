package interpreter

import (
	"brewin/pkg/lexer"
	"brewin/pkg/parser/stack"
)

// evaluate reduces a prefix expression. The tokens are walked right to left
// over an operand stack: literals and variables are pushed, and each operator
// pops its left operand (top of stack) and right operand and pushes the result.
func (i *Interpreter) evaluate(st *ExecutionState, expr []string) (Value, error) {
	if len(expr) < 1 {
		return Value{}, newErrorf(SyntaxError, "empty expression")
	}

	operands := stack.NewStack[Value]()

	for idx := len(expr) - 1; idx >= 0; idx-- {
		token := expr[idx]

		if !lexer.IsOperator(token) {
			v, err := i.operand(st, token)
			if err != nil {
				return Value{}, err
			}
			operands.Push(v)
			continue
		}

		if operands.Size() < 2 {
			return Value{}, newErrorf(SyntaxError, "operator %s needs two operands", token)
		}
		left, _ := operands.Pop()
		right, _ := operands.Pop()

		res, err := evalBinary(token, left, right)
		if err != nil {
			return Value{}, err
		}
		operands.Push(res)
	}

	if operands.Size() != 1 {
		return Value{}, newErrorf(SyntaxError, "expression leaves %d values, expected 1", operands.Size())
	}

	result, _ := operands.Pop()
	return result, nil
}

// operand resolves a literal or a variable of the running function.
func (i *Interpreter) operand(st *ExecutionState, token string) (Value, error) {
	v, isLiteral, err := parseLiteral(token)
	if err != nil {
		return Value{}, newErrorf(SyntaxError, "integer literal %s out of range", token)
	}
	if isLiteral {
		return v, nil
	}

	s, ok := st.scopes.top().lookup(token)
	if !ok {
		return Value{}, newErrorf(NameError, "variable %s not found", token)
	}
	return s.value(), nil
}

// evalBinary applies op to two operands of the same kind.
func evalBinary(op string, a, b Value) (Value, error) {
	if a.Kind != b.Kind {
		return Value{}, newErrorf(TypeError, "operand types %s and %s do not match for %s", a.Kind, b.Kind, op)
	}

	switch a.Kind {
	case KindInt:
		return evalInt(op, a.I64, b.I64)
	case KindString:
		return evalString(op, a.Str, b.Str)
	case KindBool:
		return evalBool(op, a.Bool, b.Bool)
	}

	return Value{}, newErrorf(TypeError, "operator %s not supported for %s", op, a.Kind)
}

func evalInt(op string, a, b int64) (Value, error) {
	switch lexer.Operators[op] {
	case lexer.PLUS:
		return newInt(a + b), nil
	case lexer.MINUS:
		return newInt(a - b), nil
	case lexer.MULT:
		return newInt(a * b), nil
	case lexer.DIV:
		if b == 0 {
			return Value{}, wrapError(ErrDivisionByZero, "integer division by zero")
		}
		return newInt(floorDiv(a, b)), nil
	case lexer.MOD:
		if b == 0 {
			return Value{}, wrapError(ErrDivisionByZero, "integer modulo by zero")
		}
		return newInt(floorMod(a, b)), nil
	case lexer.LT:
		return newBool(a < b), nil
	case lexer.GT:
		return newBool(a > b), nil
	case lexer.LE:
		return newBool(a <= b), nil
	case lexer.GE:
		return newBool(a >= b), nil
	case lexer.EQ:
		return newBool(a == b), nil
	case lexer.NE:
		return newBool(a != b), nil
	}

	return Value{}, newErrorf(TypeError, "operator %s not supported for int", op)
}

func evalString(op string, a, b string) (Value, error) {
	switch lexer.Operators[op] {
	case lexer.PLUS:
		return newString(a + b), nil
	case lexer.LT:
		return newBool(a < b), nil
	case lexer.GT:
		return newBool(a > b), nil
	case lexer.LE:
		return newBool(a <= b), nil
	case lexer.GE:
		return newBool(a >= b), nil
	case lexer.EQ:
		return newBool(a == b), nil
	case lexer.NE:
		return newBool(a != b), nil
	}

	return Value{}, newErrorf(TypeError, "operator %s not supported for string", op)
}

// evalBool has no short circuit; both operands are already evaluated.
func evalBool(op string, a, b bool) (Value, error) {
	switch lexer.Operators[op] {
	case lexer.AND:
		return newBool(a && b), nil
	case lexer.OR:
		return newBool(a || b), nil
	case lexer.EQ:
		return newBool(a == b), nil
	case lexer.NE:
		return newBool(a != b), nil
	}

	return Value{}, newErrorf(TypeError, "operator %s not supported for bool", op)
}

// floorDiv rounds the quotient toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorMod returns a remainder with the sign of the divisor.
func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}
