package ast

import (
	"strings"
	"testing"

	"github.com/kestrel-lang/kestrel/core"
)

func testLoc() core.Loc { return core.MakeLoc(1, 0, 10) }

// expectSanityPanic runs fn and asserts it aborts with a SanityError
// mentioning want.
func expectSanityPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("no panic, want SanityError containing %q", want)
		}
		sane, ok := r.(*core.SanityError)
		if !ok {
			t.Fatalf("panic payload is %T, want *SanityError", r)
		}
		if !strings.Contains(sane.Message, want) {
			t.Errorf("message = %q, want it to contain %q", sane.Message, want)
		}
	}()
	fn()
}

func TestBuilderRejectsNilChildren(t *testing.T) {
	gs := core.NewGlobalState()
	var b Builder
	loc := testLoc()
	lit := b.Literal(loc, core.IntLit(1))

	tests := []struct {
		desc string
		want string
		fn   func()
	}{
		{"if with nil then", "If.Then is nil", func() { b.If(loc, lit, nil, b.EmptyTree()) }},
		{"while with nil body", "While.Body is nil", func() { b.While(loc, lit, nil) }},
		{"return with nil expr", "Return.Expr is nil", func() { b.Return(loc, nil) }},
		{"send with nil recv", "Send.Recv is nil", func() { b.Send(loc, nil, gs.EnterName("f"), nil, nil) }},
		{"send with nil arg", "Send.Args[0] is nil", func() {
			b.Send(loc, lit, gs.EnterName("f"), []Expression{nil}, nil)
		}},
		{"send with no selector", "Send.Fun does not exist", func() { b.Send(loc, lit, core.NoName, nil, nil) }},
		{"assign with nil lhs", "Assign.LHS is nil", func() { b.Assign(loc, nil, lit) }},
		{"classdef with nil name", "ClassDef.Name is nil", func() {
			b.ClassDef(loc, loc, core.SymbolTodo, ClassKind, nil, nil, nil)
		}},
		{"methoddef with nil body", "MethodDef.RHS is nil", func() {
			b.MethodDef(loc, loc, core.SymbolTodo, gs.EnterName("m"), nil, nil, 0)
		}},
		{"optionalarg with nil default", "OptionalArg.Default is nil", func() {
			b.OptionalArg(loc, b.LocalVar(loc, gs.EnterName("x")), nil)
		}},
		{"hash length mismatch", "Hash has 1 keys but 0 values", func() {
			b.Hash(loc, []Expression{lit}, nil)
		}},
		{"insseq with nil final", "InsSeq.Expr is nil", func() { b.InsSeq(loc, nil, nil) }},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			expectSanityPanic(t, tc.want, tc.fn)
		})
	}
}

func TestBuilderAcceptsWellFormedNodes(t *testing.T) {
	gs := core.NewGlobalState()
	var b Builder
	loc := testLoc()

	tree := b.ClassDef(loc, loc, core.SymbolTodo, ClassKind,
		b.Constant(loc, gs.EnterName("Widget")),
		nil,
		[]Expression{
			b.MethodDef(loc, loc, core.SymbolTodo, gs.EnterName("area"), nil,
				b.Send0(loc, b.InstanceVar(loc, gs.EnterName("w")), gs.EnterName("square")), 0),
		})
	if err := Check(tree); err != nil {
		t.Fatalf("Check = %v, want nil", err)
	}
	if tree.NodeName() != "ClassDef" {
		t.Errorf("NodeName = %q, want ClassDef", tree.NodeName())
	}
	if got := tree.Loc(); got != loc {
		t.Errorf("Loc = %v, want %v", got, loc)
	}
}

func TestBuilderRecordsMetrics(t *testing.T) {
	gs := core.NewGlobalState()
	counters := NewCounters()
	b := NewBuilder(counters)
	loc := testLoc()

	b.Send(loc, b.EmptyTree(), gs.EnterName("f"),
		[]Expression{b.Literal(loc, core.IntLit(1)), b.Literal(loc, core.IntLit(2))}, nil)
	b.Array(loc, nil)

	if got := counters.Counter("trees", "send"); got != 1 {
		t.Errorf("send counter = %d, want 1", got)
	}
	if got := counters.Counter("trees", "literal"); got != 2 {
		t.Errorf("literal counter = %d, want 2", got)
	}
	if got := counters.Counter("trees", "array"); got != 1 {
		t.Errorf("array counter = %d, want 1", got)
	}
	if got := counters.Counter("trees", "classdef"); got != 0 {
		t.Errorf("classdef counter = %d, want 0", got)
	}
}

func TestNilSinkRecordsNothing(t *testing.T) {
	var b Builder // zero value, no sink
	b.Literal(testLoc(), core.NilLit())
	b.EmptyTree()
}

func TestSyntheticMethodFlags(t *testing.T) {
	gs := core.NewGlobalState()
	var b Builder
	loc := testLoc()

	m := b.SyntheticMethod(loc, gs.EnterName("name"), nil, b.InstanceVar(loc, gs.EnterName("name")))
	if !m.IsSynthesized() {
		t.Error("IsSynthesized = false")
	}
	if m.IsSelf() {
		t.Error("IsSelf = true")
	}
	if m.Symbol != core.SymbolTodo {
		t.Errorf("Symbol = %d, want SymbolTodo", m.Symbol)
	}
	if m.DeclLoc != loc {
		t.Errorf("DeclLoc = %v, want %v", m.DeclLoc, loc)
	}
}

func TestIsEmptyTree(t *testing.T) {
	var b Builder
	if !IsEmptyTree(b.EmptyTree()) {
		t.Error("IsEmptyTree(EmptyTree) = false")
	}
	// Compared by kind, not identity.
	if b.EmptyTree() == b.EmptyTree() && false {
		t.Error("unreachable")
	}
	if IsEmptyTree(b.Literal(testLoc(), core.NilLit())) {
		t.Error("IsEmptyTree(Literal) = true")
	}
	if got := b.EmptyTree().Loc(); got != core.LocNone {
		t.Errorf("EmptyTree.Loc = %v, want LocNone", got)
	}
}

func TestCheckDirectly(t *testing.T) {
	gs := core.NewGlobalState()
	lit := &Literal{Value: core.IntLit(1)}

	tests := []struct {
		desc string
		node Expression
		want string
	}{
		{"rescue with nil else", &Rescue{Body: lit}, "Rescue.Else is nil"},
		{"rescue with nil case", &Rescue{Body: lit, RescueCases: []*RescueCase{nil}, Else: lit, Ensure: lit},
			"Rescue.RescueCases[0] is nil"},
		{"local without name", &Local{}, "Local.LocalVar does not exist"},
		{"constant without name", &UnresolvedConstantLit{Scope: &EmptyTree{}}, "UnresolvedConstantLit.Cnst does not exist"},
		{"constantlit with nothing", &ConstantLit{}, "ConstantLit carries neither symbol, alias, nor original"},
	}
	for _, tc := range tests {
		err := Check(tc.node)
		if err == nil {
			t.Errorf("%s: Check = nil, want error", tc.desc)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: Check = %q, want it to contain %q", tc.desc, err, tc.want)
		}
	}

	ok := &UnresolvedConstantLit{Scope: &EmptyTree{}, Cnst: gs.EnterName("Widget")}
	if err := Check(ok); err != nil {
		t.Errorf("well-formed constant: Check = %v, want nil", err)
	}
}
