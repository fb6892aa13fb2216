package parser

import (
	"brewin/pkg/lexer"
)

// Line is one source line after tokenization and decoding.
type Line struct {
	Tokens []string
	Stmt   Statement
}

// Program is the loaded, immutable form of a source file. An instruction
// pointer is an index into Lines.
type Program struct {
	Lines []Line
	Flow  *FlowMap
	Funcs *FunctionTable
}

// Load tokenizes every source line, decodes it, and builds the control-flow
// map and function table.
func Load(source []string) *Program {
	stream := make([][]string, len(source))
	lines := make([]Line, len(source))

	for idx, src := range source {
		tokens := lexer.Tokenize(src)
		stream[idx] = tokens
		lines[idx] = Line{Tokens: tokens, Stmt: Decode(tokens)}
	}

	funcs := NewFunctionTable()
	funcs.Store(stream)

	return &Program{
		Lines: lines,
		Flow:  ResolveFlow(stream),
		Funcs: funcs,
	}
}

// Len returns the number of lines in the program.
func (p *Program) Len() int {
	return len(p.Lines)
}

// At returns the statement on a line, or false when the index is out of range.
func (p *Program) At(ip int) (Statement, bool) {
	if ip < 0 || ip >= len(p.Lines) {
		return nil, false
	}
	return p.Lines[ip].Stmt, true
}
