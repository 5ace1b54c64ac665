package rewriter

import (
	"testing"

	"github.com/kestrel-lang/kestrel/ast"
	"github.com/kestrel-lang/kestrel/core"
)

func TestAttrReader(t *testing.T) {
	ctx := testCtx()
	out := runOn(ctx, propSend(ctx, core.NameAttrReader, symArg(ctx, "a"), symArg(ctx, "b")))
	wantNames(t, ctx, out.RHS, "a", "b")

	for _, stat := range out.RHS {
		m := stat.(*ast.MethodDef)
		if !m.IsSynthesized() {
			t.Errorf("method %s not flagged synthesized", m.Name.Show(ctx.GS))
		}
		if len(m.Args) != 0 {
			t.Errorf("reader %s has %d args, want 0", m.Name.Show(ctx.GS), len(m.Args))
		}
	}
}

func TestAttrWriter(t *testing.T) {
	ctx := testCtx()
	out := runOn(ctx, propSend(ctx, core.NameAttrWriter, symArg(ctx, "a")))
	wantNames(t, ctx, out.RHS, "a=")

	writer := out.RHS[0].(*ast.MethodDef)
	if len(writer.Args) != 1 {
		t.Fatalf("writer has %d args, want 1", len(writer.Args))
	}
	if _, ok := writer.RHS.(*ast.Assign); !ok {
		t.Errorf("writer body is %s, want Assign", writer.RHS.NodeName())
	}
}

func TestAttrAccessorOrdering(t *testing.T) {
	ctx := testCtx()
	out := runOn(ctx, propSend(ctx, core.NameAttrAccessor, symArg(ctx, "a"), symArg(ctx, "b")))
	// Reader before writer, per declared name in order.
	wantNames(t, ctx, out.RHS, "a", "a=", "b", "b=")
}

func TestAttrDeclinesNonSymbolArgument(t *testing.T) {
	ctx := testCtx()
	var b ast.Builder
	loc := testLoc()

	stat := propSend(ctx, core.NameAttrAccessor, symArg(ctx, "a"),
		b.LocalVar(loc, ctx.GS.EnterName("dynamic")))
	out := runOn(ctx, stat)
	if len(out.RHS) != 1 || out.RHS[0] != ast.Expression(stat) {
		t.Error("partially-symbolic declaration was rewritten")
	}
}

func TestAttrDeclinesNoArguments(t *testing.T) {
	ctx := testCtx()
	stat := propSend(ctx, core.NameAttrReader)
	out := runOn(ctx, stat)
	if len(out.RHS) != 1 || out.RHS[0] != ast.Expression(stat) {
		t.Error("argument-less declaration was rewritten")
	}
}

func TestAttrSigAmbiguity(t *testing.T) {
	ctx := testCtx()
	sig := propSend(ctx, core.NameSig)
	multi := propSend(ctx, core.NameAttrReader, symArg(ctx, "a"), symArg(ctx, "b"))

	// Two names under one sig: no way to tell which method the
	// signature belongs to, so the declaration stays as written.
	out := runOn(ctx, sig, multi)
	if len(out.RHS) != 2 {
		t.Fatalf("body has %d statements, want 2", len(out.RHS))
	}
	if out.RHS[1] != ast.Expression(multi) {
		t.Error("ambiguous declaration was rewritten")
	}
}

func TestAttrSigSingleNameRewrites(t *testing.T) {
	ctx := testCtx()
	sig := propSend(ctx, core.NameSig)
	single := propSend(ctx, core.NameAttrReader, symArg(ctx, "a"))

	out := runOn(ctx, sig, single)
	wantNames(t, ctx, out.RHS, "<Send>", "a")
}

func TestAttrMultiNameWithoutSigRewrites(t *testing.T) {
	ctx := testCtx()
	var b ast.Builder
	loc := testLoc()

	// The preceding statement is not a sig, so multi-name is fine.
	marker := b.Assign(loc, b.LocalVar(loc, ctx.GS.EnterName("x")), b.Literal(loc, core.IntLit(1)))
	multi := propSend(ctx, core.NameAttrReader, symArg(ctx, "a"), symArg(ctx, "b"))

	out := runOn(ctx, marker, multi)
	wantNames(t, ctx, out.RHS, "<Assign>", "a", "b")
}
