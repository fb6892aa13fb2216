package parser

import (
	"brewin/pkg/lexer"
	"sort"
	"strings"
)

const refPrefix = "ref"

// Param is one formal parameter of a function.
type Param struct {
	Name  string
	Type  string
	ByRef bool
}

// Function describes a user function. It is immutable once stored.
type Function struct {
	Name       string
	Line       int // line of the func statement
	Params     []Param
	ReturnType string
}

// FunctionTable maps function names to their descriptors.
type FunctionTable struct {
	defs map[string]*Function
}

// NewFunctionTable creates an empty table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{defs: make(map[string]*Function)}
}

// Store records every function definition found in the token stream.
// A later definition of the same name replaces an earlier one.
func (ft *FunctionTable) Store(stream [][]string) {
	for idx, tokens := range stream {
		if len(tokens) < 2 || lexer.Classify(tokens[0]) != lexer.FUNC {
			continue
		}

		fn := &Function{
			Name: tokens[1],
			Line: idx,
		}

		if len(tokens) > 2 {
			fn.ReturnType = tokens[len(tokens)-1]
			for _, pair := range tokens[2 : len(tokens)-1] {
				fn.Params = append(fn.Params, parseParam(pair))
			}
		}

		ft.defs[fn.Name] = fn
	}
}

// parseParam splits "name:type" or "name:reftype".
func parseParam(pair string) Param {
	name, typ, _ := strings.Cut(pair, ":")

	p := Param{Name: name, Type: typ}
	if strings.HasPrefix(typ, refPrefix) {
		p.Type = strings.TrimPrefix(typ, refPrefix)
		p.ByRef = true
	}

	return p
}

// Lookup returns the descriptor of a function, if defined.
func (ft *FunctionTable) Lookup(name string) (*Function, bool) {
	fn, ok := ft.defs[name]
	return fn, ok
}

// EntryLine returns the line of the func statement, or -1.
func (ft *FunctionTable) EntryLine(name string) int {
	if fn, ok := ft.defs[name]; ok {
		return fn.Line
	}
	return -1
}

// ReturnType returns the declared return type, or "".
func (ft *FunctionTable) ReturnType(name string) string {
	if fn, ok := ft.defs[name]; ok {
		return fn.ReturnType
	}
	return ""
}

// Parameters returns the formal parameters of a function.
func (ft *FunctionTable) Parameters(name string) []Param {
	if fn, ok := ft.defs[name]; ok {
		return fn.Params
	}
	return nil
}

// Functions returns all descriptors ordered by entry line.
func (ft *FunctionTable) Functions() []*Function {
	out := make([]*Function, 0, len(ft.defs))
	for _, fn := range ft.defs {
		out = append(out, fn)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Line < out[b].Line })
	return out
}
