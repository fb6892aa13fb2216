package parser_test

import (
	"brewin/pkg/lexer"
	"brewin/pkg/parser"
	"reflect"
	"testing"
)

func tokenizeAll(lines ...string) [][]string {
	stream := make([][]string, len(lines))
	for i, l := range lines {
		stream[i] = lexer.Tokenize(l)
	}
	return stream
}

func TestDecode(t *testing.T) {
	tests := []struct {
		input    string
		expected parser.Statement
	}{
		{"func main void", parser.FuncDef{Name: "main"}},
		{"endfunc", parser.EndFunc{}},
		{"var int x y", parser.VarDecl{Type: "int", Names: []string{"x", "y"}}},
		{"assign x + 1 2", parser.Assign{Target: "x", Expr: []string{"+", "1", "2"}}},
		{`funccall print "a" x`, parser.Call{Name: "print", Args: []string{`"a"`, "x"}}},
		{"funccall foo", parser.Call{Name: "foo", Args: []string{}}},
		{"if == x 1", parser.If{Cond: []string{"==", "x", "1"}}},
		{"else", parser.Else{}},
		{"endif", parser.EndIf{}},
		{"while < i 5", parser.While{Cond: []string{"<", "i", "5"}}},
		{"endwhile", parser.EndWhile{}},
		{"return", parser.Return{Expr: []string{}}},
		{"return x", parser.Return{Expr: []string{"x"}}},
		{"", parser.Nop{}},
		{"# comment", parser.Nop{}},
		{"hello world", parser.Nop{}},
		{"assign", parser.Malformed{Keyword: "assign", Reason: "missing assignment target"}},
		{"funccall", parser.Malformed{Keyword: "funccall", Reason: "missing function name"}},
	}

	for _, test := range tests {
		got := parser.Decode(lexer.Tokenize(test.input))
		if !reflect.DeepEqual(got, test.expected) {
			t.Errorf("Decode(%q): expected %#v, got %#v", test.input, test.expected, got)
		}
	}
}

func TestResolveFlow(t *testing.T) {
	stream := tokenizeAll(
		"func main void", // 0
		"if True",        // 1
		"while False",    // 2
		"endwhile",       // 3
		"else",           // 4
		"if False",       // 5
		"endif",          // 6
		"endif",          // 7
		"endfunc",        // 8
	)

	fm := parser.ResolveFlow(stream)

	outer, ok := fm.IfTargets(1)
	if !ok || outer.Else != 4 || outer.End != 7 || !outer.HasElse() {
		t.Errorf("outer if: expected {4 7}, got %+v (found=%v)", outer, ok)
	}

	inner, ok := fm.IfTargets(5)
	if !ok || inner.HasElse() || inner.End != 6 {
		t.Errorf("inner if: expected {-1 6}, got %+v (found=%v)", inner, ok)
	}

	if end, ok := fm.ElseEnd(4); !ok || end != 7 {
		t.Errorf("else: expected endif 7, got %d (found=%v)", end, ok)
	}

	if end, ok := fm.LoopPartner(2); !ok || end != 3 {
		t.Errorf("while: expected endwhile 3, got %d", end)
	}
	if start, ok := fm.LoopPartner(3); !ok || start != 2 {
		t.Errorf("endwhile: expected while 2, got %d", start)
	}

	for line, expected := range map[int]string{1: "else 4, endif 7", 2: "endwhile 3", 3: "while 2", 4: "endif 7", 5: "endif 6", 8: ""} {
		if got := fm.Describe(line); got != expected {
			t.Errorf("Describe(%d): expected %q, got %q", line, expected, got)
		}
	}

	if fm.Len() != 5 {
		t.Errorf("expected 5 recorded lines, got %d", fm.Len())
	}
}

func TestResolveFlowIgnoresStrayClosers(t *testing.T) {
	fm := parser.ResolveFlow(tokenizeAll("endif", "endwhile", "else"))
	if fm.Len() != 0 {
		t.Errorf("expected no pairs, got %d", fm.Len())
	}
}

func TestFunctionTable(t *testing.T) {
	ft := parser.NewFunctionTable()
	ft.Store(tokenizeAll(
		"func swap a:refint b:refint void",
		"endfunc",
		"func main void",
		"endfunc",
		"func greet name:string times:int string",
		"endfunc",
	))

	swap, ok := ft.Lookup("swap")
	if !ok {
		t.Fatalf("swap not stored")
	}
	expected := []parser.Param{{Name: "a", Type: "int", ByRef: true}, {Name: "b", Type: "int", ByRef: true}}
	if !reflect.DeepEqual(swap.Params, expected) {
		t.Errorf("swap params: expected %+v, got %+v", expected, swap.Params)
	}

	if ft.EntryLine("main") != 2 {
		t.Errorf("main: expected line 2, got %d", ft.EntryLine("main"))
	}
	if ft.ReturnType("greet") != "string" {
		t.Errorf("greet: expected string, got %q", ft.ReturnType("greet"))
	}
	if len(ft.Parameters("main")) != 0 {
		t.Errorf("main should have no parameters")
	}
	if p := ft.Parameters("greet"); len(p) != 2 || p[1].ByRef || p[1].Type != "int" {
		t.Errorf("greet params wrong: %+v", p)
	}

	if _, ok := ft.Lookup("missing"); ok {
		t.Errorf("unexpected function found")
	}
	if ft.EntryLine("missing") != -1 {
		t.Errorf("missing function should have entry line -1")
	}

	fns := ft.Functions()
	if len(fns) != 3 || fns[0].Name != "swap" || fns[2].Name != "greet" {
		t.Errorf("functions not ordered by line: %+v", fns)
	}
}

func TestLoad(t *testing.T) {
	prog := parser.Load([]string{
		"func main void",
		"  var int x # counter",
		"endfunc",
	})

	if prog.Len() != 3 {
		t.Fatalf("expected 3 lines, got %d", prog.Len())
	}

	stmt, ok := prog.At(1)
	if !ok {
		t.Fatalf("line 1 missing")
	}
	if decl, ok := stmt.(parser.VarDecl); !ok || decl.Names[0] != "x" {
		t.Errorf("expected var decl of x, got %#v", stmt)
	}

	if _, ok := prog.At(3); ok {
		t.Errorf("expected out of range line to be absent")
	}
	if prog.Funcs.EntryLine("main") != 0 {
		t.Errorf("expected main at line 0")
	}
}

func TestLoadKeepsMalformedLines(t *testing.T) {
	prog := parser.Load([]string{
		"func main void",
		"  assign",
		"  if True",
		"endfunc",
	})

	stmt, _ := prog.At(1)
	if _, ok := stmt.(parser.Malformed); !ok {
		t.Errorf("expected malformed assign, got %#v", stmt)
	}
	if _, ok := prog.Flow.IfTargets(2); ok {
		t.Errorf("expected unclosed if to have no targets")
	}
}
