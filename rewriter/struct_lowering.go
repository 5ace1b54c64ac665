package rewriter

import (
	"github.com/kestrel-lang/kestrel/ast"
	"github.com/kestrel-lang/kestrel/core"
)

// StructLowering desugars struct-builder constant assignments:
//
//	Point = Struct.new(:x, :y)
//
// into an explicit class definition:
//
//	class Point < Struct
//	  def x; @x; end
//	  def x=(x); @x = x; end
//	  def y; @y; end
//	  def y=(y); @y = y; end
//	  def self.new(x = nil, y = nil); end
//	end
//
// so resolution sees an ordinary class with accessors and a
// constructor arity. The self.new body is left empty; inference
// treats synthesized constructors nominally.
type StructLowering struct{}

func (StructLowering) Name() string { return "struct" }

func (StructLowering) ReplaceAssign(ctx core.MutableContext, assign *ast.Assign, prev ast.Expression) []ast.Expression {
	lhs, ok := assign.LHS.(*ast.UnresolvedConstantLit)
	if !ok {
		return nil
	}
	send, ok := assign.RHS.(*ast.Send)
	if !ok {
		return nil
	}
	recv, ok := send.Recv.(*ast.UnresolvedConstantLit)
	if !ok || recv.Cnst != core.NameStruct || !ast.IsEmptyTree(recv.Scope) {
		return nil
	}
	if send.Fun != core.NameNew {
		return nil
	}
	if send.Block != nil {
		// Struct.new with a body block defines arbitrary methods;
		// rewriting just the members would change meaning.
		log.Debugf("struct assignment at %s carries a block, declining", assign.Loc())
		return nil
	}
	if len(send.Args) == 0 {
		return nil
	}
	members := make([]core.NameRef, 0, len(send.Args))
	for _, arg := range send.Args {
		name, ok := symbolArg(arg)
		if !ok {
			log.Debugf("struct assignment at %s has non-symbol member, declining", assign.Loc())
			return nil
		}
		members = append(members, name)
	}

	b := ast.NewBuilder(ctx.Metrics)
	loc := assign.Loc()

	body := make([]ast.Expression, 0, 2*len(members)+1)
	newArgs := make([]ast.Expression, 0, len(members))
	for _, member := range members {
		body = append(body, b.SyntheticMethod(loc, member, nil, b.InstanceVar(loc, member)))
		writerName := ctx.GS.EnterName(member.Show(ctx.GS) + "=")
		body = append(body, b.SyntheticMethod(loc, writerName,
			[]ast.Expression{b.LocalVar(loc, member)},
			b.Assign(loc, b.InstanceVar(loc, member), b.LocalVar(loc, member))))
		newArgs = append(newArgs, b.OptionalArg(loc, b.LocalVar(loc, member),
			b.Literal(loc, core.NilLit())))
	}
	body = append(body, b.MethodDef(loc, loc, core.SymbolTodo, core.NameNew,
		newArgs, b.EmptyTree(), ast.MethodSelf|ast.MethodSynthesized))

	classDef := b.ClassDef(loc, loc, core.SymbolTodo, ast.ClassKind,
		lhs, []ast.Expression{recv}, body)
	return []ast.Expression{classDef}
}
