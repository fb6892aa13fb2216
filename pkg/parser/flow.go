package parser

import (
	"fmt"

	"brewin/pkg/lexer"
	"brewin/pkg/parser/stack"
)

// Branch holds the structural partners of an if line.
type Branch struct {
	Else int // else line, or -1 when the block has no else
	End  int // endif line
}

// HasElse reports whether the conditional block has an else branch.
func (b Branch) HasElse() bool {
	return b.Else >= 0
}

// FlowMap resolves branch and loop lines to their partners in O(1).
// It is built once from the token stream and never changes afterwards.
type FlowMap struct {
	ifs   map[int]Branch // if line -> else/endif lines
	elses map[int]int    // else line -> endif line
	loops map[int]int    // while line <-> endwhile line
}

// ResolveFlow scans the token stream once and pairs every if/else/endif and
// while/endwhile. Stray closers are ignored; the stream is expected to be balanced.
func ResolveFlow(stream [][]string) *FlowMap {
	fm := &FlowMap{
		ifs:   make(map[int]Branch),
		elses: make(map[int]int),
		loops: make(map[int]int),
	}

	ifStack := stack.NewStack[[]int]()
	whileStack := stack.NewStack[int]()

	for idx, tokens := range stream {
		if len(tokens) == 0 {
			continue
		}

		switch lexer.Classify(tokens[0]) {
		case lexer.IF:
			ifStack.Push([]int{idx})

		case lexer.ELSE:
			if top := ifStack.Top(); top != nil {
				*top = append(*top, idx)
			}

		case lexer.ENDIF:
			entry, ok := ifStack.Pop()
			if !ok {
				continue
			}
			entry = append(entry, idx)

			branch := Branch{Else: -1, End: idx}
			if len(entry) == 3 {
				branch.Else = entry[1]
				fm.elses[entry[1]] = idx
			}
			fm.ifs[entry[0]] = branch

		case lexer.WHILE:
			whileStack.Push(idx)

		case lexer.ENDWHILE:
			start, ok := whileStack.Pop()
			if !ok {
				continue
			}
			fm.loops[start] = idx
			fm.loops[idx] = start
		}
	}

	return fm
}

// IfTargets returns the else/endif partners of an if line.
func (fm *FlowMap) IfTargets(line int) (Branch, bool) {
	b, ok := fm.ifs[line]
	return b, ok
}

// ElseEnd returns the endif line paired with an else line.
func (fm *FlowMap) ElseEnd(line int) (int, bool) {
	end, ok := fm.elses[line]
	return end, ok
}

// LoopPartner returns the endwhile of a while line, or the while of an endwhile line.
func (fm *FlowMap) LoopPartner(line int) (int, bool) {
	partner, ok := fm.loops[line]
	return partner, ok
}

// Len returns the number of lines that have a recorded partner.
func (fm *FlowMap) Len() int {
	return len(fm.ifs) + len(fm.elses) + len(fm.loops)
}

// Describe returns the jump targets recorded for a line, or "".
func (fm *FlowMap) Describe(line int) string {
	if b, ok := fm.ifs[line]; ok {
		if b.HasElse() {
			return fmt.Sprintf("else %d, endif %d", b.Else, b.End)
		}
		return fmt.Sprintf("endif %d", b.End)
	}
	if end, ok := fm.elses[line]; ok {
		return fmt.Sprintf("endif %d", end)
	}
	if partner, ok := fm.loops[line]; ok {
		if partner > line {
			return fmt.Sprintf("endwhile %d", partner)
		}
		return fmt.Sprintf("while %d", partner)
	}
	return ""
}
