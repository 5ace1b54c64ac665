// Package rewriter desugars idiomatic class-body statements into the
// primitive node sequences the resolver understands. It runs once per
// tree, between parsing and resolution: the statement-splicing driver
// offers each class-body statement to an ordered pass list for its
// shape, and the first pass that matches replaces the statement with
// zero-or-more statements spliced in place. Anything no pass
// recognizes is left untouched.
package rewriter

import (
	"github.com/tliron/commonlog"

	"github.com/kestrel-lang/kestrel/ast"
	"github.com/kestrel-lang/kestrel/core"
)

var log = commonlog.GetLogger("kestrel.rewriter")

// Rewriter is the pass driver. One per file-processing unit; it holds
// no tree state between runs.
type Rewriter struct {
	reg *Registry
}

// New builds a driver over the given registry.
func New(reg *Registry) *Rewriter {
	return &Rewriter{reg: reg}
}

// Run desugars tree in place and returns the (possibly replaced)
// root. Nested class bodies anywhere in the tree are processed
// independently through the generic traversal; because the traversal
// is post-order, inner bodies are patched before outer ones.
func (r *Rewriter) Run(ctx core.MutableContext, tree ast.Expression) ast.Expression {
	h := &ast.Handler{
		ClassDef: r.postTransformClassDef,
	}
	return ast.Apply(ctx, h, tree)
}

func (r *Rewriter) postTransformClassDef(ctx core.MutableContext, classDef *ast.ClassDef) ast.Expression {
	var prev ast.Expression
	var replace map[int][]ast.Expression
	for i, stat := range classDef.RHS {
		var nodes []ast.Expression
		switch n := stat.(type) {
		case *ast.Assign:
			nodes = r.firstMatchAssign(ctx, n, prev)
		case *ast.Send:
			nodes = r.firstMatchSend(ctx, n, prev)
		case *ast.MethodDef:
			nodes = r.firstMatchMethodDef(ctx, n, prev)
		}
		if len(nodes) > 0 {
			if replace == nil {
				replace = make(map[int][]ast.Expression)
			}
			replace[i] = nodes
		}
		prev = stat
	}
	if replace == nil {
		return classDef
	}

	oldRHS := classDef.RHS
	newRHS := make([]ast.Expression, 0, len(oldRHS))
	for i, stat := range oldRHS {
		if nodes, ok := replace[i]; ok {
			newRHS = append(newRHS, nodes...)
		} else {
			newRHS = append(newRHS, stat)
		}
	}
	classDef.RHS = newRHS
	return classDef
}

func (r *Rewriter) firstMatchAssign(ctx core.MutableContext, assign *ast.Assign, prev ast.Expression) []ast.Expression {
	for _, p := range r.reg.Assign {
		if nodes := p.ReplaceAssign(ctx, assign, prev); len(nodes) > 0 {
			log.Debugf("pass %s rewrote assign at %s into %d statements", p.Name(), assign.Loc(), len(nodes))
			return nodes
		}
	}
	return nil
}

func (r *Rewriter) firstMatchSend(ctx core.MutableContext, send *ast.Send, prev ast.Expression) []ast.Expression {
	for _, p := range r.reg.Send {
		if nodes := p.ReplaceSend(ctx, send, prev); len(nodes) > 0 {
			log.Debugf("pass %s rewrote send %s at %s into %d statements",
				p.Name(), send.Fun.Show(ctx.GS), send.Loc(), len(nodes))
			return nodes
		}
	}
	return nil
}

func (r *Rewriter) firstMatchMethodDef(ctx core.MutableContext, mdef *ast.MethodDef, prev ast.Expression) []ast.Expression {
	for _, p := range r.reg.MethodDef {
		if nodes := p.ReplaceMethodDef(ctx, mdef, prev); len(nodes) > 0 {
			log.Debugf("pass %s rewrote method %s at %s into %d statements",
				p.Name(), mdef.Name.Show(ctx.GS), mdef.Loc(), len(nodes))
			return nodes
		}
	}
	return nil
}

// isBareCall reports whether a send is receiver-less at class-body
// level (written `prop :x`, not `other.prop :x`).
func isBareCall(send *ast.Send) bool {
	if ast.IsEmptyTree(send.Recv) {
		return true
	}
	_, isSelf := send.Recv.(*ast.Self)
	return isSelf
}

// symbolArg extracts the interned name of a symbol-literal argument.
func symbolArg(e ast.Expression) (core.NameRef, bool) {
	lit, ok := e.(*ast.Literal)
	if !ok || !lit.Value.IsSymbol() {
		return core.NoName, false
	}
	return lit.Value.AsName(), true
}
