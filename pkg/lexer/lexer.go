package lexer

import "strings"

// Lexer splits one source line into whitespace separated tokens.
// Quoted text is one token and keeps its quotes; an unquoted '#' starts a comment.
type Lexer struct {
	input    string // line being tokenized
	length   int    // length of the line
	position int    // current position in the line
}

// Create a new lexer instance for one source line
func NewLexer(line string) *Lexer {
	return &Lexer{
		input:    line,
		length:   len(line),
		position: 0,
	}
}

// NextToken returns the next token on the line, or false once the line
// (or the comment that ends it) is exhausted.
func (l *Lexer) NextToken() (string, bool) {
	l.skipWhitespace()

	if l.position >= l.length || l.input[l.position] == '#' {
		l.position = l.length
		return "", false
	}

	var b strings.Builder
	inQuotes := false

	for l.position < l.length {
		ch := l.input[l.position]

		if !inQuotes && (isSpace(ch) || ch == '#') {
			break
		}
		if ch == '"' {
			inQuotes = !inQuotes
		}

		b.WriteByte(ch)
		l.position++
	}

	return b.String(), true
}

// Check if there are more tokens to read
func (l *Lexer) HasMore() bool {
	l.skipWhitespace()
	return l.position < l.length && l.input[l.position] != '#'
}

// Tokenize splits a whole line into tokens. Blank and comment-only lines yield no tokens.
func Tokenize(line string) []string {
	l := NewLexer(line)
	tokens := make([]string, 0, 4)

	for {
		tok, ok := l.NextToken()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Skip unquoted whitespace
func (l *Lexer) skipWhitespace() {
	for l.position < l.length && isSpace(l.input[l.position]) {
		l.position++
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}
