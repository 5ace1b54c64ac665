package ast

import (
	"github.com/kestrel-lang/kestrel/core"
)

// Builder constructs nodes. Every construction path goes through a
// Builder method: the method asserts the node's structural invariants
// (fatal on violation) and reports construction metrics to the
// injected sink. The zero Builder is valid and records nothing.
type Builder struct {
	Metrics core.MetricsSink
}

// NewBuilder returns a Builder reporting to sink. A nil sink is fine.
func NewBuilder(sink core.MetricsSink) Builder {
	return Builder{Metrics: sink}
}

func (b Builder) count(name string) {
	if b.Metrics != nil {
		b.Metrics.CategoryCounterInc("trees", name)
	}
}

func (b Builder) histogram(name string, value int) {
	if b.Metrics != nil {
		b.Metrics.HistogramInc(name, value)
	}
}

func mustBeSane(n Expression) {
	if err := n.check(); err != nil {
		core.Enforce(false, "%s at %s: %s", n.NodeName(), n.Loc(), err)
	}
}

func (b Builder) ClassDef(loc, declLoc core.Loc, symbol core.SymbolRef, kind ClassDefKind,
	name Expression, ancestors, rhs []Expression) *ClassDef {
	n := &ClassDef{loc: loc, DeclLoc: declLoc, Symbol: symbol, Kind: kind,
		Name: name, Ancestors: ancestors, RHS: rhs}
	b.count("classdef")
	b.histogram("trees.classdef.ancestors", len(ancestors))
	mustBeSane(n)
	return n
}

func (b Builder) MethodDef(loc, declLoc core.Loc, symbol core.SymbolRef, name core.NameRef,
	args []Expression, rhs Expression, flags uint32) *MethodDef {
	n := &MethodDef{loc: loc, DeclLoc: declLoc, Symbol: symbol, Name: name,
		Args: args, RHS: rhs, Flags: flags}
	b.count("methoddef")
	b.histogram("trees.methoddef.args", len(args))
	mustBeSane(n)
	return n
}

func (b Builder) If(loc core.Loc, cond, thenp, elsep Expression) *If {
	n := &If{loc: loc, Cond: cond, Then: thenp, Else: elsep}
	b.count("if")
	mustBeSane(n)
	return n
}

func (b Builder) While(loc core.Loc, cond, body Expression) *While {
	n := &While{loc: loc, Cond: cond, Body: body}
	b.count("while")
	mustBeSane(n)
	return n
}

func (b Builder) Break(loc core.Loc, expr Expression) *Break {
	n := &Break{loc: loc, Expr: expr}
	b.count("break")
	mustBeSane(n)
	return n
}

func (b Builder) Next(loc core.Loc, expr Expression) *Next {
	n := &Next{loc: loc, Expr: expr}
	b.count("next")
	mustBeSane(n)
	return n
}

func (b Builder) Return(loc core.Loc, expr Expression) *Return {
	n := &Return{loc: loc, Expr: expr}
	b.count("return")
	mustBeSane(n)
	return n
}

func (b Builder) Retry(loc core.Loc) *Retry {
	n := &Retry{loc: loc}
	b.count("retry")
	mustBeSane(n)
	return n
}

func (b Builder) Yield(loc core.Loc, args []Expression) *Yield {
	n := &Yield{loc: loc, Args: args}
	b.count("yield")
	mustBeSane(n)
	return n
}

func (b Builder) RescueCase(loc core.Loc, exceptions []Expression, varExpr, body Expression) *RescueCase {
	n := &RescueCase{loc: loc, Exceptions: exceptions, Var: varExpr, Body: body}
	b.count("rescuecase")
	b.histogram("trees.rescuecase.exceptions", len(exceptions))
	mustBeSane(n)
	return n
}

func (b Builder) Rescue(loc core.Loc, body Expression, cases []*RescueCase, elsep, ensure Expression) *Rescue {
	n := &Rescue{loc: loc, Body: body, RescueCases: cases, Else: elsep, Ensure: ensure}
	b.count("rescue")
	b.histogram("trees.rescue.rescuecases", len(cases))
	mustBeSane(n)
	return n
}

func (b Builder) Field(loc core.Loc, symbol core.SymbolRef) *Field {
	n := &Field{loc: loc, Symbol: symbol}
	b.count("field")
	mustBeSane(n)
	return n
}

func (b Builder) Local(loc core.Loc, v core.LocalVariable) *Local {
	n := &Local{loc: loc, LocalVar: v}
	b.count("local")
	mustBeSane(n)
	return n
}

func (b Builder) UnresolvedIdent(loc core.Loc, kind VarKind, name core.NameRef) *UnresolvedIdent {
	n := &UnresolvedIdent{loc: loc, Kind: kind, Name: name}
	b.count("unresolvedident")
	mustBeSane(n)
	return n
}

func (b Builder) RestArg(loc core.Loc, expr Reference) *RestArg {
	n := &RestArg{loc: loc, Expr: expr}
	b.count("restarg")
	mustBeSane(n)
	return n
}

func (b Builder) KeywordArg(loc core.Loc, expr Reference) *KeywordArg {
	n := &KeywordArg{loc: loc, Expr: expr}
	b.count("keywordarg")
	mustBeSane(n)
	return n
}

func (b Builder) OptionalArg(loc core.Loc, expr Reference, def Expression) *OptionalArg {
	n := &OptionalArg{loc: loc, Expr: expr, Default: def}
	b.count("optionalarg")
	mustBeSane(n)
	return n
}

func (b Builder) ShadowArg(loc core.Loc, expr Reference) *ShadowArg {
	n := &ShadowArg{loc: loc, Expr: expr}
	b.count("shadowarg")
	mustBeSane(n)
	return n
}

func (b Builder) BlockArg(loc core.Loc, expr Reference) *BlockArg {
	n := &BlockArg{loc: loc, Expr: expr}
	b.count("blockarg")
	mustBeSane(n)
	return n
}

func (b Builder) Assign(loc core.Loc, lhs, rhs Expression) *Assign {
	n := &Assign{loc: loc, LHS: lhs, RHS: rhs}
	b.count("assign")
	mustBeSane(n)
	return n
}

func (b Builder) Send(loc core.Loc, recv Expression, fun core.NameRef, args []Expression, block *Block) *Send {
	n := &Send{loc: loc, Recv: recv, Fun: fun, Args: args, Block: block}
	b.count("send")
	b.histogram("trees.send.args", len(args))
	mustBeSane(n)
	return n
}

func (b Builder) Cast(loc core.Loc, cast core.NameRef, arg, typeExpr Expression) *Cast {
	n := &Cast{loc: loc, Cast: cast, Arg: arg, TypeExpr: typeExpr}
	b.count("cast")
	mustBeSane(n)
	return n
}

func (b Builder) ZSuperArgs(loc core.Loc) *ZSuperArgs {
	n := &ZSuperArgs{loc: loc}
	b.count("zsuper")
	mustBeSane(n)
	return n
}

func (b Builder) Self(loc core.Loc, claz core.SymbolRef) *Self {
	n := &Self{loc: loc, Claz: claz}
	b.count("self")
	mustBeSane(n)
	return n
}

func (b Builder) Block(loc core.Loc, args []Expression, body Expression) *Block {
	n := &Block{loc: loc, Args: args, Body: body}
	b.count("block")
	mustBeSane(n)
	return n
}

func (b Builder) Hash(loc core.Loc, keys, values []Expression) *Hash {
	n := &Hash{loc: loc, Keys: keys, Values: values}
	b.count("hash")
	b.histogram("trees.hash.entries", len(keys))
	mustBeSane(n)
	return n
}

func (b Builder) Array(loc core.Loc, elems []Expression) *Array {
	n := &Array{loc: loc, Elems: elems}
	b.count("array")
	b.histogram("trees.array.elems", len(elems))
	mustBeSane(n)
	return n
}

func (b Builder) Literal(loc core.Loc, value core.LitValue) *Literal {
	n := &Literal{loc: loc, Value: value}
	b.count("literal")
	mustBeSane(n)
	return n
}

func (b Builder) UnresolvedConstantLit(loc core.Loc, scope Expression, cnst core.NameRef) *UnresolvedConstantLit {
	n := &UnresolvedConstantLit{loc: loc, Scope: scope, Cnst: cnst}
	b.count("unresolvedconstantlit")
	mustBeSane(n)
	return n
}

func (b Builder) ConstantLit(loc core.Loc, symbol core.SymbolRef,
	original *UnresolvedConstantLit, typeAlias Expression) *ConstantLit {
	n := &ConstantLit{loc: loc, Symbol: symbol, Original: original, TypeAlias: typeAlias}
	b.count("constantlit")
	mustBeSane(n)
	return n
}

func (b Builder) InsSeq(loc core.Loc, stats []Expression, expr Expression) *InsSeq {
	n := &InsSeq{loc: loc, Stats: stats, Expr: expr}
	b.count("insseq")
	b.histogram("trees.insseq.stats", len(stats))
	mustBeSane(n)
	return n
}

func (b Builder) EmptyTree() *EmptyTree {
	n := &EmptyTree{}
	b.count("emptytree")
	return n
}

// --- synthesis conveniences for rewrite passes ---

// Send0 builds an argument-less call.
func (b Builder) Send0(loc core.Loc, recv Expression, fun core.NameRef) *Send {
	return b.Send(loc, recv, fun, nil, nil)
}

// Send1 builds a one-argument call.
func (b Builder) Send1(loc core.Loc, recv Expression, fun core.NameRef, arg Expression) *Send {
	return b.Send(loc, recv, fun, []Expression{arg}, nil)
}

// SymbolLit builds a symbol literal.
func (b Builder) SymbolLit(loc core.Loc, name core.NameRef) *Literal {
	return b.Literal(loc, core.SymbolLit(name))
}

// InstanceVar builds an unresolved instance-variable reference.
func (b Builder) InstanceVar(loc core.Loc, name core.NameRef) *UnresolvedIdent {
	return b.UnresolvedIdent(loc, VarInstance, name)
}

// LocalVar builds a local-variable reference with no disambiguator.
func (b Builder) LocalVar(loc core.Loc, name core.NameRef) *Local {
	return b.Local(loc, core.LocalVariable{Name: name})
}

// Constant builds an unscoped unresolved constant reference.
func (b Builder) Constant(loc core.Loc, cnst core.NameRef) *UnresolvedConstantLit {
	return b.UnresolvedConstantLit(loc, b.EmptyTree(), cnst)
}

// SyntheticMethod builds a pass-generated method definition: the
// symbol stays todo for the resolver and the synthesized flag is set.
func (b Builder) SyntheticMethod(loc core.Loc, name core.NameRef, args []Expression, rhs Expression) *MethodDef {
	return b.MethodDef(loc, loc, core.SymbolTodo, name, args, rhs, MethodSynthesized)
}
