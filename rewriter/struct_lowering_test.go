package rewriter

import (
	"testing"

	"github.com/kestrel-lang/kestrel/ast"
	"github.com/kestrel-lang/kestrel/core"
)

func structAssign(ctx core.MutableContext, members ...ast.Expression) *ast.Assign {
	var b ast.Builder
	loc := testLoc()
	structNew := b.Send(loc, b.Constant(loc, core.NameStruct), core.NameNew, members, nil)
	return b.Assign(loc, b.Constant(loc, ctx.GS.EnterName("Point")), structNew)
}

func TestStructLowering(t *testing.T) {
	ctx := testCtx()
	assign := structAssign(ctx, symArg(ctx, "x"), symArg(ctx, "y"))

	out := runOn(ctx, assign)
	if len(out.RHS) != 1 {
		t.Fatalf("body has %d statements, want 1", len(out.RHS))
	}
	cls, ok := out.RHS[0].(*ast.ClassDef)
	if !ok {
		t.Fatalf("replacement is %s, want ClassDef", out.RHS[0].NodeName())
	}

	if cls.Name != assign.LHS {
		t.Error("class name does not reuse the assignment target")
	}
	if len(cls.Ancestors) != 1 {
		t.Fatalf("class has %d ancestors, want 1", len(cls.Ancestors))
	}
	anc := cls.Ancestors[0].(*ast.UnresolvedConstantLit)
	if anc.Cnst != core.NameStruct {
		t.Errorf("ancestor = %q, want Struct", anc.Cnst.Show(ctx.GS))
	}
	if cls.Loc() != assign.Loc() {
		t.Errorf("class loc = %v, want the assignment's %v", cls.Loc(), assign.Loc())
	}

	wantNames(t, ctx, cls.RHS, "x", "x=", "y", "y=", "new")

	ctor := cls.RHS[4].(*ast.MethodDef)
	if !ctor.IsSelf() {
		t.Error("constructor not defined on the singleton")
	}
	if !ctor.IsSynthesized() {
		t.Error("constructor not flagged synthesized")
	}
	if len(ctor.Args) != 2 {
		t.Fatalf("constructor has %d args, want 2", len(ctor.Args))
	}
	for i, arg := range ctor.Args {
		opt, ok := arg.(*ast.OptionalArg)
		if !ok {
			t.Fatalf("constructor arg %d is %s, want OptionalArg", i, arg.NodeName())
		}
		def, ok := opt.Default.(*ast.Literal)
		if !ok || !def.Value.IsNil() {
			t.Errorf("constructor arg %d default is not nil", i)
		}
	}
	if !ast.IsEmptyTree(ctor.RHS) {
		t.Errorf("constructor body is %s, want EmptyTree", ctor.RHS.NodeName())
	}
}

func TestStructLoweringDeclines(t *testing.T) {
	var b ast.Builder
	loc := testLoc()

	tests := []struct {
		desc string
		stat func(ctx core.MutableContext) ast.Expression
	}{
		{"zero members", func(ctx core.MutableContext) ast.Expression {
			return structAssign(ctx)
		}},
		{"non-symbol member", func(ctx core.MutableContext) ast.Expression {
			return structAssign(ctx, b.LocalVar(loc, ctx.GS.EnterName("dynamic")))
		}},
		{"with block", func(ctx core.MutableContext) ast.Expression {
			blk := b.Block(loc, nil, b.Literal(loc, core.NilLit()))
			structNew := b.Send(loc, b.Constant(loc, core.NameStruct), core.NameNew,
				[]ast.Expression{symArg(ctx, "x")}, blk)
			return b.Assign(loc, b.Constant(loc, ctx.GS.EnterName("Point")), structNew)
		}},
		{"scoped Struct receiver", func(ctx core.MutableContext) ast.Expression {
			scope := b.Constant(loc, ctx.GS.EnterName("Legacy"))
			scoped := b.UnresolvedConstantLit(loc, scope, core.NameStruct)
			structNew := b.Send(loc, scoped, core.NameNew, []ast.Expression{symArg(ctx, "x")}, nil)
			return b.Assign(loc, b.Constant(loc, ctx.GS.EnterName("Point")), structNew)
		}},
		{"different builder constant", func(ctx core.MutableContext) ast.Expression {
			structNew := b.Send(loc, b.Constant(loc, ctx.GS.EnterName("OpenStruct")), core.NameNew,
				[]ast.Expression{symArg(ctx, "x")}, nil)
			return b.Assign(loc, b.Constant(loc, ctx.GS.EnterName("Point")), structNew)
		}},
		{"different selector", func(ctx core.MutableContext) ast.Expression {
			structNew := b.Send(loc, b.Constant(loc, core.NameStruct), ctx.GS.EnterName("members"),
				[]ast.Expression{symArg(ctx, "x")}, nil)
			return b.Assign(loc, b.Constant(loc, ctx.GS.EnterName("Point")), structNew)
		}},
		{"non-constant target", func(ctx core.MutableContext) ast.Expression {
			structNew := b.Send(loc, b.Constant(loc, core.NameStruct), core.NameNew,
				[]ast.Expression{symArg(ctx, "x")}, nil)
			return b.Assign(loc, b.LocalVar(loc, ctx.GS.EnterName("point")), structNew)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			ctx := testCtx()
			stat := tc.stat(ctx)
			out := runOn(ctx, stat)
			if len(out.RHS) != 1 || out.RHS[0] != stat {
				t.Error("declined shape was rewritten")
			}
		})
	}
}

func TestStructLoweringResultIsSane(t *testing.T) {
	ctx := testCtx()
	out := runOn(ctx, structAssign(ctx, symArg(ctx, "x")))

	var bad error
	h := &ast.Handler{
		Default: func(ctx core.MutableContext, n ast.Expression) ast.Expression {
			if err := ast.Check(n); err != nil && bad == nil {
				bad = err
			}
			return n
		},
	}
	ast.Apply(ctx, h, out)
	if bad != nil {
		t.Errorf("lowered class contains a malformed node: %v", bad)
	}
}
