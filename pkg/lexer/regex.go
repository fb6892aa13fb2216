package lexer

import (
	"regexp"
)

var (
	intLiteralRegex = regexp.MustCompile(`^-?\d+$`)
	identRegex      = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// IsIntLiteral reports whether the token is a decimal integer, optionally negative.
func IsIntLiteral(token string) bool {
	return intLiteralRegex.MatchString(token)
}

// IsStringLiteral reports whether the token is bounded by double quotes.
func IsStringLiteral(token string) bool {
	return len(token) >= 2 && token[0] == '"' && token[len(token)-1] == '"'
}

// IsBoolLiteral reports whether the token spells a boolean constant.
func IsBoolLiteral(token string) bool {
	return token == "True" || token == "False"
}

// IsIdentifier reports whether the token could name a variable or function.
func IsIdentifier(token string) bool {
	return identRegex.MatchString(token)
}

// Unquote strips the surrounding quotes from a string literal token.
func Unquote(token string) string {
	if !IsStringLiteral(token) {
		return token
	}

	return token[1 : len(token)-1]
}
