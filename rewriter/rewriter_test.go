package rewriter

import (
	"testing"

	"github.com/kestrel-lang/kestrel/ast"
	"github.com/kestrel-lang/kestrel/core"
)

func testCtx() core.MutableContext {
	return core.NewMutableContext(core.NewGlobalState())
}

func testLoc() core.Loc { return core.MakeLoc(1, 0, 10) }

// classBody wraps stats in a class definition the driver will visit.
func classBody(ctx core.MutableContext, stats ...ast.Expression) *ast.ClassDef {
	var b ast.Builder
	loc := testLoc()
	return b.ClassDef(loc, loc, core.SymbolTodo, ast.ClassKind,
		b.Constant(loc, ctx.GS.EnterName("Widget")), nil, stats)
}

func propSend(ctx core.MutableContext, fun core.NameRef, args ...ast.Expression) *ast.Send {
	var b ast.Builder
	return b.Send(testLoc(), b.EmptyTree(), fun, args, nil)
}

func symArg(ctx core.MutableContext, s string) ast.Expression {
	var b ast.Builder
	return b.SymbolLit(testLoc(), ctx.GS.EnterName(s))
}

func methodNames(ctx core.MutableContext, stats []ast.Expression) []string {
	var names []string
	for _, stat := range stats {
		if m, ok := stat.(*ast.MethodDef); ok {
			names = append(names, m.Name.Show(ctx.GS))
		} else {
			names = append(names, "<"+stat.NodeName()+">")
		}
	}
	return names
}

func wantNames(t *testing.T, ctx core.MutableContext, stats []ast.Expression, want ...string) {
	t.Helper()
	got := methodNames(ctx, stats)
	if len(got) != len(want) {
		t.Fatalf("body = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("body = %v, want %v", got, want)
		}
	}
}

func TestRunSplicesReplacements(t *testing.T) {
	ctx := testCtx()
	var b ast.Builder
	loc := testLoc()

	keep := b.Assign(loc, b.LocalVar(loc, ctx.GS.EnterName("x")), b.Literal(loc, core.IntLit(1)))
	cls := classBody(ctx,
		keep,
		propSend(ctx, core.NameProp, symArg(ctx, "name")),
		b.Literal(loc, core.IntLit(2)),
	)

	out := New(DefaultRegistry()).Run(ctx, cls).(*ast.ClassDef)
	wantNames(t, ctx, out.RHS, "<Assign>", "name", "name=", "<Literal>")
	if out.RHS[0] != ast.Expression(keep) {
		t.Error("unmatched statement was replaced")
	}
}

func TestRunLeavesUnmatchedBodyAlone(t *testing.T) {
	ctx := testCtx()
	var b ast.Builder
	loc := testLoc()

	cls := classBody(ctx,
		b.Assign(loc, b.LocalVar(loc, ctx.GS.EnterName("x")), b.Literal(loc, core.IntLit(1))),
		b.Send0(loc, b.LocalVar(loc, ctx.GS.EnterName("y")), ctx.GS.EnterName("compute")),
	)
	before := cls.ShowRaw(ctx.GS, 0)

	out := New(DefaultRegistry()).Run(ctx, cls)
	if got := out.ShowRaw(ctx.GS, 0); got != before {
		t.Errorf("body changed without a matching pass:\n%s\nvs\n%s", before, got)
	}
}

func TestRunProcessesNestedClasses(t *testing.T) {
	ctx := testCtx()

	inner := classBody(ctx, propSend(ctx, core.NameAttrReader, symArg(ctx, "id")))
	outer := classBody(ctx, inner)

	out := New(DefaultRegistry()).Run(ctx, outer).(*ast.ClassDef)
	got := out.RHS[0].(*ast.ClassDef)
	wantNames(t, ctx, got.RHS, "id")
}

func TestRunIgnoresNonClassRoot(t *testing.T) {
	ctx := testCtx()
	send := propSend(ctx, core.NameProp, symArg(ctx, "name"))

	// A bare prop call outside a class body is not a declaration site.
	out := New(DefaultRegistry()).Run(ctx, send)
	if out != ast.Expression(send) {
		t.Error("top-level send was rewritten")
	}
}

func TestRunIsDeterministic(t *testing.T) {
	build := func() (core.MutableContext, *ast.ClassDef) {
		ctx := testCtx()
		return ctx, classBody(ctx,
			propSend(ctx, core.NameProp, symArg(ctx, "a")),
			propSend(ctx, core.NameAttrAccessor, symArg(ctx, "b")),
		)
	}

	ctx1, cls1 := build()
	ctx2, cls2 := build()
	out1 := New(DefaultRegistry()).Run(ctx1, cls1).ShowRaw(ctx1.GS, 0)
	out2 := New(DefaultRegistry()).Run(ctx2, cls2).ShowRaw(ctx2.GS, 0)
	if out1 != out2 {
		t.Errorf("same input produced different trees:\n%s\nvs\n%s", out1, out2)
	}
}

// markerPass replaces every bare send with a fixed method definition
// so driver-level behavior can be observed independently of the
// shipped passes.
type markerPass struct {
	name   string
	marker string
	calls  *int
}

func (p markerPass) Name() string { return p.name }

func (p markerPass) ReplaceSend(ctx core.MutableContext, send *ast.Send, prev ast.Expression) []ast.Expression {
	*p.calls++
	var b ast.Builder
	return []ast.Expression{
		b.SyntheticMethod(send.Loc(), ctx.GS.EnterName(p.marker), nil, b.EmptyTree()),
	}
}

func TestFirstMatchWins(t *testing.T) {
	ctx := testCtx()
	firstCalls, secondCalls := 0, 0
	reg := &Registry{Send: []SendPass{
		markerPass{name: "first", marker: "from_first", calls: &firstCalls},
		markerPass{name: "second", marker: "from_second", calls: &secondCalls},
	}}

	cls := classBody(ctx, propSend(ctx, ctx.GS.EnterName("anything")))
	out := New(reg).Run(ctx, cls).(*ast.ClassDef)

	wantNames(t, ctx, out.RHS, "from_first")
	if firstCalls != 1 {
		t.Errorf("first pass ran %d times, want 1", firstCalls)
	}
	if secondCalls != 0 {
		t.Errorf("second pass ran %d times after a match, want 0", secondCalls)
	}
}

func TestRegistryFilter(t *testing.T) {
	ctx := testCtx()
	reg := DefaultRegistry().Filter([]string{"prop"})

	cls := classBody(ctx,
		propSend(ctx, core.NameProp, symArg(ctx, "a")),
		propSend(ctx, core.NameAttrReader, symArg(ctx, "b")),
	)
	out := New(reg).Run(ctx, cls).(*ast.ClassDef)

	// prop rewritten, attr_reader left alone by the filtered registry.
	wantNames(t, ctx, out.RHS, "a", "a=", "<Send>")
}

func TestRegistryFilterEmptyKeepsAll(t *testing.T) {
	reg := DefaultRegistry()
	if got := reg.Filter(nil); got != reg {
		t.Error("empty filter built a new registry")
	}
}

func TestPrevStatementContext(t *testing.T) {
	ctx := testCtx()
	var b ast.Builder
	loc := testLoc()

	var prevs []ast.Expression
	spy := spyPass{prevs: &prevs}
	reg := &Registry{Send: []SendPass{spy}}

	first := propSend(ctx, ctx.GS.EnterName("one"))
	second := propSend(ctx, ctx.GS.EnterName("two"))
	marker := b.Assign(loc, b.LocalVar(loc, ctx.GS.EnterName("x")), b.Literal(loc, core.IntLit(1)))

	cls := classBody(ctx, first, marker, second)
	New(reg).Run(ctx, cls)

	if len(prevs) != 2 {
		t.Fatalf("pass consulted %d times, want 2", len(prevs))
	}
	if prevs[0] != nil {
		t.Errorf("first statement saw prev %v, want nil", prevs[0])
	}
	if prevs[1] != ast.Expression(marker) {
		t.Error("second send did not see the assign as its predecessor")
	}
}

// spyPass records the prev argument and always declines.
type spyPass struct {
	prevs *[]ast.Expression
}

func (spyPass) Name() string { return "spy" }

func (p spyPass) ReplaceSend(ctx core.MutableContext, send *ast.Send, prev ast.Expression) []ast.Expression {
	*p.prevs = append(*p.prevs, prev)
	return nil
}
