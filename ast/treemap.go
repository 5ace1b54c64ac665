package ast

import (
	"github.com/kestrel-lang/kestrel/core"
)

// TreeMap is the generic rewrite engine: a single-threaded post-order
// traversal that visits every child before offering the current node
// to the caller's handler. A handler registers one hook per node kind
// it cares about; kinds without a hook fall through to Default, and
// with no Default they pass through structurally unchanged.
//
// A hook receives the node with its children already rewritten and
// returns the replacement. Returning the argument keeps the node.
// Returning anything else transfers ownership: the engine splices the
// replacement into the parent slot and the handler decides the fate
// of the old node. Hooks run exactly once per physical node.

// Handler carries the per-kind hooks. Any subset may be set.
type Handler struct {
	ClassDef              func(ctx core.MutableContext, n *ClassDef) Expression
	MethodDef             func(ctx core.MutableContext, n *MethodDef) Expression
	If                    func(ctx core.MutableContext, n *If) Expression
	While                 func(ctx core.MutableContext, n *While) Expression
	Break                 func(ctx core.MutableContext, n *Break) Expression
	Next                  func(ctx core.MutableContext, n *Next) Expression
	Return                func(ctx core.MutableContext, n *Return) Expression
	Retry                 func(ctx core.MutableContext, n *Retry) Expression
	Yield                 func(ctx core.MutableContext, n *Yield) Expression
	RescueCase            func(ctx core.MutableContext, n *RescueCase) Expression
	Rescue                func(ctx core.MutableContext, n *Rescue) Expression
	Field                 func(ctx core.MutableContext, n *Field) Expression
	Local                 func(ctx core.MutableContext, n *Local) Expression
	UnresolvedIdent       func(ctx core.MutableContext, n *UnresolvedIdent) Expression
	RestArg               func(ctx core.MutableContext, n *RestArg) Expression
	KeywordArg            func(ctx core.MutableContext, n *KeywordArg) Expression
	OptionalArg           func(ctx core.MutableContext, n *OptionalArg) Expression
	ShadowArg             func(ctx core.MutableContext, n *ShadowArg) Expression
	BlockArg              func(ctx core.MutableContext, n *BlockArg) Expression
	Assign                func(ctx core.MutableContext, n *Assign) Expression
	Send                  func(ctx core.MutableContext, n *Send) Expression
	Cast                  func(ctx core.MutableContext, n *Cast) Expression
	ZSuperArgs            func(ctx core.MutableContext, n *ZSuperArgs) Expression
	Self                  func(ctx core.MutableContext, n *Self) Expression
	Block                 func(ctx core.MutableContext, n *Block) Expression
	Hash                  func(ctx core.MutableContext, n *Hash) Expression
	Array                 func(ctx core.MutableContext, n *Array) Expression
	Literal               func(ctx core.MutableContext, n *Literal) Expression
	UnresolvedConstantLit func(ctx core.MutableContext, n *UnresolvedConstantLit) Expression
	ConstantLit           func(ctx core.MutableContext, n *ConstantLit) Expression
	InsSeq                func(ctx core.MutableContext, n *InsSeq) Expression
	EmptyTree             func(ctx core.MutableContext, n *EmptyTree) Expression

	// Default runs for any kind whose specific hook is unset.
	Default func(ctx core.MutableContext, n Expression) Expression
}

// Apply rewrites tree bottom-up through h and returns the new root.
// The traversal is deterministic and total; it terminates because the
// node hierarchy is a tree by construction.
func Apply(ctx core.MutableContext, h *Handler, tree Expression) Expression {
	core.Enforce(tree != nil, "TreeMap applied to nil tree")
	return mapOne(ctx, h, tree)
}

func mapList(ctx core.MutableContext, h *Handler, nodes []Expression) {
	for i, n := range nodes {
		nodes[i] = mapOne(ctx, h, n)
	}
}

func mapOne(ctx core.MutableContext, h *Handler, e Expression) Expression {
	switch n := e.(type) {
	case *ClassDef:
		n.Name = mapOne(ctx, h, n.Name)
		mapList(ctx, h, n.Ancestors)
		scoped := ctx.WithOwner(n.Symbol)
		mapList(scoped, h, n.RHS)
		if h.ClassDef != nil {
			return h.ClassDef(ctx, n)
		}

	case *MethodDef:
		scoped := ctx.WithOwner(n.Symbol)
		mapList(scoped, h, n.Args)
		n.RHS = mapOne(scoped, h, n.RHS)
		if h.MethodDef != nil {
			return h.MethodDef(ctx, n)
		}

	case *If:
		n.Cond = mapOne(ctx, h, n.Cond)
		n.Then = mapOne(ctx, h, n.Then)
		n.Else = mapOne(ctx, h, n.Else)
		if h.If != nil {
			return h.If(ctx, n)
		}

	case *While:
		n.Cond = mapOne(ctx, h, n.Cond)
		n.Body = mapOne(ctx, h, n.Body)
		if h.While != nil {
			return h.While(ctx, n)
		}

	case *Break:
		n.Expr = mapOne(ctx, h, n.Expr)
		if h.Break != nil {
			return h.Break(ctx, n)
		}

	case *Next:
		n.Expr = mapOne(ctx, h, n.Expr)
		if h.Next != nil {
			return h.Next(ctx, n)
		}

	case *Return:
		n.Expr = mapOne(ctx, h, n.Expr)
		if h.Return != nil {
			return h.Return(ctx, n)
		}

	case *Retry:
		if h.Retry != nil {
			return h.Retry(ctx, n)
		}

	case *Yield:
		mapList(ctx, h, n.Args)
		if h.Yield != nil {
			return h.Yield(ctx, n)
		}

	case *RescueCase:
		mapList(ctx, h, n.Exceptions)
		n.Var = mapOne(ctx, h, n.Var)
		n.Body = mapOne(ctx, h, n.Body)
		if h.RescueCase != nil {
			return h.RescueCase(ctx, n)
		}

	case *Rescue:
		n.Body = mapOne(ctx, h, n.Body)
		for i, c := range n.RescueCases {
			rewritten := mapOne(ctx, h, c)
			rc, ok := rewritten.(*RescueCase)
			core.Enforce(ok, "rescue case rewritten into %s", rewritten.NodeName())
			n.RescueCases[i] = rc
		}
		n.Else = mapOne(ctx, h, n.Else)
		n.Ensure = mapOne(ctx, h, n.Ensure)
		if h.Rescue != nil {
			return h.Rescue(ctx, n)
		}

	case *Field:
		if h.Field != nil {
			return h.Field(ctx, n)
		}

	case *Local:
		if h.Local != nil {
			return h.Local(ctx, n)
		}

	case *UnresolvedIdent:
		if h.UnresolvedIdent != nil {
			return h.UnresolvedIdent(ctx, n)
		}

	case *RestArg:
		n.Expr = mapReference(ctx, h, n.Expr)
		if h.RestArg != nil {
			return h.RestArg(ctx, n)
		}

	case *KeywordArg:
		n.Expr = mapReference(ctx, h, n.Expr)
		if h.KeywordArg != nil {
			return h.KeywordArg(ctx, n)
		}

	case *OptionalArg:
		n.Expr = mapReference(ctx, h, n.Expr)
		n.Default = mapOne(ctx, h, n.Default)
		if h.OptionalArg != nil {
			return h.OptionalArg(ctx, n)
		}

	case *ShadowArg:
		n.Expr = mapReference(ctx, h, n.Expr)
		if h.ShadowArg != nil {
			return h.ShadowArg(ctx, n)
		}

	case *BlockArg:
		n.Expr = mapReference(ctx, h, n.Expr)
		if h.BlockArg != nil {
			return h.BlockArg(ctx, n)
		}

	case *Assign:
		n.LHS = mapOne(ctx, h, n.LHS)
		n.RHS = mapOne(ctx, h, n.RHS)
		if h.Assign != nil {
			return h.Assign(ctx, n)
		}

	case *Send:
		n.Recv = mapOne(ctx, h, n.Recv)
		mapList(ctx, h, n.Args)
		if n.Block != nil {
			rewritten := mapOne(ctx, h, n.Block)
			blk, ok := rewritten.(*Block)
			core.Enforce(ok, "send block rewritten into %s", rewritten.NodeName())
			n.Block = blk
		}
		if h.Send != nil {
			return h.Send(ctx, n)
		}

	case *Cast:
		n.Arg = mapOne(ctx, h, n.Arg)
		n.TypeExpr = mapOne(ctx, h, n.TypeExpr)
		if h.Cast != nil {
			return h.Cast(ctx, n)
		}

	case *ZSuperArgs:
		if h.ZSuperArgs != nil {
			return h.ZSuperArgs(ctx, n)
		}

	case *Self:
		if h.Self != nil {
			return h.Self(ctx, n)
		}

	case *Block:
		mapList(ctx, h, n.Args)
		n.Body = mapOne(ctx, h, n.Body)
		if h.Block != nil {
			return h.Block(ctx, n)
		}

	case *Hash:
		mapList(ctx, h, n.Keys)
		mapList(ctx, h, n.Values)
		if h.Hash != nil {
			return h.Hash(ctx, n)
		}

	case *Array:
		mapList(ctx, h, n.Elems)
		if h.Array != nil {
			return h.Array(ctx, n)
		}

	case *Literal:
		if h.Literal != nil {
			return h.Literal(ctx, n)
		}

	case *UnresolvedConstantLit:
		n.Scope = mapOne(ctx, h, n.Scope)
		if h.UnresolvedConstantLit != nil {
			return h.UnresolvedConstantLit(ctx, n)
		}

	case *ConstantLit:
		// Original is kept verbatim for diagnostics, not traversed.
		if n.TypeAlias != nil {
			n.TypeAlias = mapOne(ctx, h, n.TypeAlias)
		}
		if h.ConstantLit != nil {
			return h.ConstantLit(ctx, n)
		}

	case *InsSeq:
		mapList(ctx, h, n.Stats)
		n.Expr = mapOne(ctx, h, n.Expr)
		if h.InsSeq != nil {
			return h.InsSeq(ctx, n)
		}

	case *EmptyTree:
		// An EmptyTree slot stays EmptyTree unless a hook replaces it.
		if h.EmptyTree != nil {
			return h.EmptyTree(ctx, n)
		}

	default:
		core.Enforce(false, "TreeMap reached unknown node kind %s", e.NodeName())
	}

	if h.Default != nil {
		return h.Default(ctx, e)
	}
	return e
}

func mapReference(ctx core.MutableContext, h *Handler, r Reference) Reference {
	rewritten := mapOne(ctx, h, r)
	ref, ok := rewritten.(Reference)
	core.Enforce(ok, "reference slot rewritten into %s", rewritten.NodeName())
	return ref
}
