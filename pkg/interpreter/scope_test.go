package interpreter

import "testing"

func TestDeclareAndShadow(t *testing.T) {
	f := newFrame("main", -1)

	if !f.declare("x", newInt(1)) {
		t.Fatalf("first declaration failed")
	}
	if f.declare("x", newInt(2)) {
		t.Errorf("duplicate declaration in the same block succeeded")
	}

	f.pushBlock()
	if !f.declare("x", newString("inner")) {
		t.Fatalf("shadowing declaration failed")
	}
	if idx := f.resolve("x"); idx != 1 {
		t.Errorf("expected innermost block 1, got %d", idx)
	}
	f.write(1, "x", newString("changed"))

	if !f.popBlock() {
		t.Fatalf("popBlock failed")
	}
	v, ok := f.read(0, "x")
	if !ok || v != newInt(1) {
		t.Errorf("outer binding changed: %#v", v)
	}

	if f.popBlock() {
		t.Errorf("function level scope must not be popped")
	}
	if f.resolve("nope") != -1 {
		t.Errorf("expected unresolved name")
	}
}

func TestReferenceChain(t *testing.T) {
	s := newScopeStack()

	main := newFrame("main", -1)
	main.declare("x", newInt(1))
	s.pushFrame(main)

	owner, _ := main.lookup("x")
	f1 := newFrame("f1", 1)
	f1.bindRef("a", owner, "x")
	f1.bindRef("b", owner, "x")
	s.pushFrame(f1)

	alias, _ := f1.lookup("a")
	f2 := newFrame("f2", 2)
	f2.bindRef("c", alias, "a")
	s.pushFrame(f2)

	f2.write(0, "c", newInt(42))

	for _, check := range []struct {
		f    *frame
		name string
	}{{main, "x"}, {f1, "a"}, {f1, "b"}, {f2, "c"}} {
		v, ok := check.f.read(0, check.name)
		if !ok || v.I64 != 42 {
			t.Errorf("%s in %s: expected 42, got %#v", check.name, check.f.fn, v)
		}
	}

	if c, _ := f2.lookup("c"); !c.isRef() || c.ref != "a" {
		t.Errorf("expected c to alias a, got %+v", c)
	}
	if x, _ := main.lookup("x"); x.isRef() {
		t.Errorf("owner must not be an alias")
	}

	if s.depth() != 3 || s.top() != f2 || s.caller() != f1 {
		t.Errorf("unexpected stack layout")
	}
}

func TestSetReturnValue(t *testing.T) {
	s := newScopeStack()
	main := newFrame("main", -1)
	s.pushFrame(main)
	main.pushBlock()
	s.pushFrame(newFrame("f", 3))

	s.setReturnValue(newInt(9))
	s.setReturnValue(newString("ok"))
	s.setReturnValue(newBool(true))
	s.setReturnValue(newInt(10))

	expected := map[string]Value{
		"resulti": newInt(10),
		"results": newString("ok"),
		"resultb": newBool(true),
	}
	for name, want := range expected {
		v, ok := main.read(0, name)
		if !ok || v != want {
			t.Errorf("%s: expected %#v, got %#v", name, want, v)
		}
	}

	done := s.popFrame()
	if done.returnTo != 3 || s.depth() != 1 {
		t.Errorf("unexpected pop result")
	}
	if s.caller() != nil {
		t.Errorf("main has no caller")
	}
}
