// Package ast defines the closed syntax-tree representation consumed
// by the rewriter and, after desugaring, by resolution and inference.
//
// The hierarchy is fixed: every node kind lives in this file and
// implements Expression through an unexported method, so no package
// outside ast can add kinds. Nodes form a tree, never a graph - each
// child slot is exclusively owned by its parent, and replacing a
// subtree during rewriting transfers that ownership. Optional slots
// hold EmptyTree, never nil.
//
//	              / Control Flow <- if, while, break, next, return, retry, rescue
//	Pre-CFG node <
//	              \ Instruction <- assign, send, ident, hash, array, literal,
//	                               constant, self, insseq, block, yield, cast
//	              \ Definition  <- class, module, def, def self.
package ast

import (
	"errors"
	"fmt"

	"github.com/kestrel-lang/kestrel/core"
)

// Expression is the capability shared by every node: an immutable
// source location, the two debug renderings, and a structural sanity
// check. The unexported check method closes the hierarchy.
type Expression interface {
	Loc() core.Loc
	ToString(gs *core.GlobalState, tabs int) string
	ShowRaw(gs *core.GlobalState, tabs int) string
	NodeName() string

	check() error
}

// Reference is an assignable or referenceable location: a local, a
// field, an unresolved identifier, or an argument shape wrapping one
// of those.
type Reference interface {
	Expression
	referenceNode()
}

// IsEmptyTree reports whether e is the canonical "no expression"
// placeholder. EmptyTree is compared by kind, never by identity.
func IsEmptyTree(e Expression) bool {
	_, ok := e.(*EmptyTree)
	return ok
}

// ClassDefKind distinguishes class from module definitions.
type ClassDefKind uint8

const (
	ClassKind ClassDefKind = iota
	ModuleKind
)

// MethodDef flag bits.
const (
	MethodSelf        uint32 = 1 << iota // defined on the singleton (def self.x)
	MethodSynthesized                    // produced by a rewrite pass, not written by the user
)

// VarKind classifies an unresolved identifier.
type VarKind uint8

const (
	VarLocal VarKind = iota
	VarInstance
	VarClass
	VarGlobal
)

// ClassDef is a class or module definition. Kind is fixed at
// construction. Symbol stays SymbolTodo until the resolver runs.
type ClassDef struct {
	loc       core.Loc
	DeclLoc   core.Loc
	Symbol    core.SymbolRef
	Kind      ClassDefKind
	Name      Expression
	Ancestors []Expression
	RHS       []Expression
}

// MethodDef is a method definition with a single body expression.
type MethodDef struct {
	loc     core.Loc
	DeclLoc core.Loc
	Symbol  core.SymbolRef
	Name    core.NameRef
	Args    []Expression
	RHS     Expression
	Flags   uint32
}

// IsSelf reports whether the method is defined on the singleton.
func (n *MethodDef) IsSelf() bool { return n.Flags&MethodSelf != 0 }

// IsSynthesized reports whether a rewrite pass produced the method.
func (n *MethodDef) IsSynthesized() bool { return n.Flags&MethodSynthesized != 0 }

// If holds a condition and both branches. An absent branch is an
// explicit EmptyTree, never nil.
type If struct {
	loc  core.Loc
	Cond Expression
	Then Expression
	Else Expression
}

// While is a condition-guarded loop.
type While struct {
	loc  core.Loc
	Cond Expression
	Body Expression
}

// Break exits the enclosing loop with a value.
type Break struct {
	loc  core.Loc
	Expr Expression
}

// Next continues the enclosing loop with a value.
type Next struct {
	loc  core.Loc
	Expr Expression
}

// Return exits the enclosing method with a value.
type Return struct {
	loc  core.Loc
	Expr Expression
}

// Retry restarts the body of the enclosing rescue.
type Retry struct {
	loc core.Loc
}

// Yield invokes the block passed to the enclosing method.
type Yield struct {
	loc  core.Loc
	Args []Expression
}

// RescueCase is one rescue clause: the exception types it catches,
// the variable the exception binds to, and the handler body.
type RescueCase struct {
	loc        core.Loc
	Exceptions []Expression
	Var        Expression
	Body       Expression
}

// Rescue is a body with rescue clauses. Else and Ensure default to
// EmptyTree; the readable printer omits clauses that are EmptyTree.
type Rescue struct {
	loc         core.Loc
	Body        Expression
	RescueCases []*RescueCase
	Else        Expression
	Ensure      Expression
}

// Field references a resolved object field.
type Field struct {
	loc    core.Loc
	Symbol core.SymbolRef
}

// Local references a resolved local variable.
type Local struct {
	loc      core.Loc
	LocalVar core.LocalVariable
}

// UnresolvedIdent is an identifier the resolver has not yet bound.
// It only exists before resolution.
type UnresolvedIdent struct {
	loc  core.Loc
	Kind VarKind
	Name core.NameRef
}

// RestArg marks a parameter as the rest (splat) argument.
type RestArg struct {
	loc  core.Loc
	Expr Reference
}

// KeywordArg marks a parameter as keyword-passed.
type KeywordArg struct {
	loc  core.Loc
	Expr Reference
}

// OptionalArg is a parameter with a default value.
type OptionalArg struct {
	loc     core.Loc
	Expr    Reference
	Default Expression
}

// ShadowArg is a block-local parameter shadowing an outer binding.
type ShadowArg struct {
	loc  core.Loc
	Expr Reference
}

// BlockArg is the explicit block parameter (&blk).
type BlockArg struct {
	loc  core.Loc
	Expr Reference
}

// Assign stores rhs into the location named by lhs.
type Assign struct {
	loc core.Loc
	LHS Expression
	RHS Expression
}

// Send is a method call: receiver, selector, ordered arguments, and
// an optional trailing block. Block is the only nilable child slot.
type Send struct {
	loc   core.Loc
	Recv  Expression
	Fun   core.NameRef
	Args  []Expression
	Block *Block
}

// Cast is a checked type ascription (let, cast, assert-type).
type Cast struct {
	loc      core.Loc
	Cast     core.NameRef
	Arg      Expression
	TypeExpr Expression
}

// ZSuperArgs stands for the implicit argument list of a bare super.
type ZSuperArgs struct {
	loc core.Loc
}

// Self is the receiver pseudo-variable.
type Self struct {
	loc  core.Loc
	Claz core.SymbolRef
}

// Block is the closure attached to a send.
type Block struct {
	loc  core.Loc
	Args []Expression
	Body Expression
}

// Hash is a literal map with parallel key and value lists.
type Hash struct {
	loc    core.Loc
	Keys   []Expression
	Values []Expression
}

// Array is a literal ordered collection.
type Array struct {
	loc   core.Loc
	Elems []Expression
}

// Literal is a value known at parse time.
type Literal struct {
	loc   core.Loc
	Value core.LitValue
}

// UnresolvedConstantLit is a constant reference before resolution.
type UnresolvedConstantLit struct {
	loc   core.Loc
	Scope Expression
	Cnst  core.NameRef
}

// ConstantLit is a resolved constant. Only the resolver produces
// these; the parser and the rewriter never do.
type ConstantLit struct {
	loc       core.Loc
	Symbol    core.SymbolRef
	Original  *UnresolvedConstantLit
	TypeAlias Expression
}

// InsSeq is a statement sequence whose value is the final expression.
type InsSeq struct {
	loc   core.Loc
	Stats []Expression
	Expr  Expression
}

// EmptyTree is the canonical placeholder for "no expression". It
// carries no location.
type EmptyTree struct{}

func (n *ClassDef) Loc() core.Loc              { return n.loc }
func (n *MethodDef) Loc() core.Loc             { return n.loc }
func (n *If) Loc() core.Loc                    { return n.loc }
func (n *While) Loc() core.Loc                 { return n.loc }
func (n *Break) Loc() core.Loc                 { return n.loc }
func (n *Next) Loc() core.Loc                  { return n.loc }
func (n *Return) Loc() core.Loc                { return n.loc }
func (n *Retry) Loc() core.Loc                 { return n.loc }
func (n *Yield) Loc() core.Loc                 { return n.loc }
func (n *RescueCase) Loc() core.Loc            { return n.loc }
func (n *Rescue) Loc() core.Loc                { return n.loc }
func (n *Field) Loc() core.Loc                 { return n.loc }
func (n *Local) Loc() core.Loc                 { return n.loc }
func (n *UnresolvedIdent) Loc() core.Loc       { return n.loc }
func (n *RestArg) Loc() core.Loc               { return n.loc }
func (n *KeywordArg) Loc() core.Loc            { return n.loc }
func (n *OptionalArg) Loc() core.Loc           { return n.loc }
func (n *ShadowArg) Loc() core.Loc             { return n.loc }
func (n *BlockArg) Loc() core.Loc              { return n.loc }
func (n *Assign) Loc() core.Loc                { return n.loc }
func (n *Send) Loc() core.Loc                  { return n.loc }
func (n *Cast) Loc() core.Loc                  { return n.loc }
func (n *ZSuperArgs) Loc() core.Loc            { return n.loc }
func (n *Self) Loc() core.Loc                  { return n.loc }
func (n *Block) Loc() core.Loc                 { return n.loc }
func (n *Hash) Loc() core.Loc                  { return n.loc }
func (n *Array) Loc() core.Loc                 { return n.loc }
func (n *Literal) Loc() core.Loc               { return n.loc }
func (n *UnresolvedConstantLit) Loc() core.Loc { return n.loc }
func (n *ConstantLit) Loc() core.Loc           { return n.loc }
func (n *InsSeq) Loc() core.Loc                { return n.loc }
func (n *EmptyTree) Loc() core.Loc             { return core.LocNone }

func (n *ClassDef) NodeName() string              { return "ClassDef" }
func (n *MethodDef) NodeName() string             { return "MethodDef" }
func (n *If) NodeName() string                    { return "If" }
func (n *While) NodeName() string                 { return "While" }
func (n *Break) NodeName() string                 { return "Break" }
func (n *Next) NodeName() string                  { return "Next" }
func (n *Return) NodeName() string                { return "Return" }
func (n *Retry) NodeName() string                 { return "Retry" }
func (n *Yield) NodeName() string                 { return "Yield" }
func (n *RescueCase) NodeName() string            { return "RescueCase" }
func (n *Rescue) NodeName() string                { return "Rescue" }
func (n *Field) NodeName() string                 { return "Field" }
func (n *Local) NodeName() string                 { return "Local" }
func (n *UnresolvedIdent) NodeName() string       { return "UnresolvedIdent" }
func (n *RestArg) NodeName() string               { return "RestArg" }
func (n *KeywordArg) NodeName() string            { return "KeywordArg" }
func (n *OptionalArg) NodeName() string           { return "OptionalArg" }
func (n *ShadowArg) NodeName() string             { return "ShadowArg" }
func (n *BlockArg) NodeName() string              { return "BlockArg" }
func (n *Assign) NodeName() string                { return "Assign" }
func (n *Send) NodeName() string                  { return "Send" }
func (n *Cast) NodeName() string                  { return "Cast" }
func (n *ZSuperArgs) NodeName() string            { return "ZSuperArgs" }
func (n *Self) NodeName() string                  { return "Self" }
func (n *Block) NodeName() string                 { return "Block" }
func (n *Hash) NodeName() string                  { return "Hash" }
func (n *Array) NodeName() string                 { return "Array" }
func (n *Literal) NodeName() string               { return "Literal" }
func (n *UnresolvedConstantLit) NodeName() string { return "UnresolvedConstantLit" }
func (n *ConstantLit) NodeName() string           { return "ConstantLit" }
func (n *InsSeq) NodeName() string                { return "InsSeq" }
func (n *EmptyTree) NodeName() string             { return "EmptyTree" }

func (n *Field) referenceNode()           {}
func (n *Local) referenceNode()           {}
func (n *UnresolvedIdent) referenceNode() {}
func (n *RestArg) referenceNode()         {}
func (n *KeywordArg) referenceNode()      {}
func (n *OptionalArg) referenceNode()     {}
func (n *ShadowArg) referenceNode()       {}
func (n *BlockArg) referenceNode()        {}

// --- structural sanity ---
//
// check verifies the invariants the builders enforce at construction.
// It returns an error so tests can exercise validation directly; the
// builders turn a non-nil result into a fatal Enforce. A nil required
// child or a Hash length mismatch can only mean a bug in the parser
// or in a pass.

func nonNil(what string, e Expression) error {
	if e == nil {
		return errors.New(what + " is nil")
	}
	return nil
}

func allNonNil(what string, es []Expression) error {
	for i, e := range es {
		if e == nil {
			return fmt.Errorf("%s[%d] is nil", what, i)
		}
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (n *ClassDef) check() error {
	return firstErr(
		nonNil("ClassDef.Name", n.Name),
		allNonNil("ClassDef.Ancestors", n.Ancestors),
		allNonNil("ClassDef.RHS", n.RHS),
	)
}

func (n *MethodDef) check() error {
	if !n.Name.Exists() {
		return errors.New("MethodDef.Name does not exist")
	}
	return firstErr(
		allNonNil("MethodDef.Args", n.Args),
		nonNil("MethodDef.RHS", n.RHS),
	)
}

func (n *If) check() error {
	return firstErr(
		nonNil("If.Cond", n.Cond),
		nonNil("If.Then", n.Then),
		nonNil("If.Else", n.Else),
	)
}

func (n *While) check() error {
	return firstErr(nonNil("While.Cond", n.Cond), nonNil("While.Body", n.Body))
}

func (n *Break) check() error  { return nonNil("Break.Expr", n.Expr) }
func (n *Next) check() error   { return nonNil("Next.Expr", n.Expr) }
func (n *Return) check() error { return nonNil("Return.Expr", n.Expr) }
func (n *Retry) check() error  { return nil }

func (n *Yield) check() error { return allNonNil("Yield.Args", n.Args) }

func (n *RescueCase) check() error {
	return firstErr(
		allNonNil("RescueCase.Exceptions", n.Exceptions),
		nonNil("RescueCase.Var", n.Var),
		nonNil("RescueCase.Body", n.Body),
	)
}

func (n *Rescue) check() error {
	for i, c := range n.RescueCases {
		if c == nil {
			return fmt.Errorf("Rescue.RescueCases[%d] is nil", i)
		}
	}
	return firstErr(
		nonNil("Rescue.Body", n.Body),
		nonNil("Rescue.Else", n.Else),
		nonNil("Rescue.Ensure", n.Ensure),
	)
}

func (n *Field) check() error { return nil }
func (n *Local) check() error {
	if !n.LocalVar.Exists() {
		return errors.New("Local.LocalVar does not exist")
	}
	return nil
}

func (n *UnresolvedIdent) check() error {
	if !n.Name.Exists() {
		return errors.New("UnresolvedIdent.Name does not exist")
	}
	return nil
}

func checkWrapped(what string, e Reference) error {
	if e == nil {
		return errors.New(what + " is nil")
	}
	return nil
}

func (n *RestArg) check() error    { return checkWrapped("RestArg.Expr", n.Expr) }
func (n *KeywordArg) check() error { return checkWrapped("KeywordArg.Expr", n.Expr) }
func (n *OptionalArg) check() error {
	return firstErr(
		checkWrapped("OptionalArg.Expr", n.Expr),
		nonNil("OptionalArg.Default", n.Default),
	)
}
func (n *ShadowArg) check() error { return checkWrapped("ShadowArg.Expr", n.Expr) }
func (n *BlockArg) check() error  { return checkWrapped("BlockArg.Expr", n.Expr) }

func (n *Assign) check() error {
	return firstErr(nonNil("Assign.LHS", n.LHS), nonNil("Assign.RHS", n.RHS))
}

func (n *Send) check() error {
	if !n.Fun.Exists() {
		return errors.New("Send.Fun does not exist")
	}
	return firstErr(
		nonNil("Send.Recv", n.Recv),
		allNonNil("Send.Args", n.Args),
	)
}

func (n *Cast) check() error {
	return firstErr(nonNil("Cast.Arg", n.Arg), nonNil("Cast.TypeExpr", n.TypeExpr))
}

func (n *ZSuperArgs) check() error { return nil }
func (n *Self) check() error       { return nil }

func (n *Block) check() error {
	return firstErr(allNonNil("Block.Args", n.Args), nonNil("Block.Body", n.Body))
}

func (n *Hash) check() error {
	if len(n.Keys) != len(n.Values) {
		return fmt.Errorf("Hash has %d keys but %d values", len(n.Keys), len(n.Values))
	}
	return firstErr(
		allNonNil("Hash.Keys", n.Keys),
		allNonNil("Hash.Values", n.Values),
	)
}

func (n *Array) check() error   { return allNonNil("Array.Elems", n.Elems) }
func (n *Literal) check() error { return nil }

func (n *UnresolvedConstantLit) check() error {
	if !n.Cnst.Exists() {
		return errors.New("UnresolvedConstantLit.Cnst does not exist")
	}
	return nonNil("UnresolvedConstantLit.Scope", n.Scope)
}

func (n *ConstantLit) check() error {
	if !n.Symbol.Exists() && n.TypeAlias == nil && n.Original == nil {
		return errors.New("ConstantLit carries neither symbol, alias, nor original")
	}
	return nil
}

func (n *InsSeq) check() error {
	return firstErr(allNonNil("InsSeq.Stats", n.Stats), nonNil("InsSeq.Expr", n.Expr))
}

func (n *EmptyTree) check() error { return nil }

// Check re-runs a node's construction-time sanity check. Passes never
// need to call this; it exists so tests can verify structural closure
// of rewritten trees.
func Check(e Expression) error {
	return e.check()
}
