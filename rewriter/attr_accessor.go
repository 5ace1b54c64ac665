package rewriter

import (
	"github.com/kestrel-lang/kestrel/ast"
	"github.com/kestrel-lang/kestrel/core"
)

// AttrAccessor desugars the attribute declaration family:
//
//	attr_reader :a, :b     ->  def a; @a; end / def b; @b; end
//	attr_writer :a         ->  def a=(a); @a = a; end
//	attr_accessor :a       ->  reader then writer, per name in order
//
// The preceding statement is consulted as read-only context: when it
// is a `sig` call, that signature types exactly one declaration, so a
// multi-name attribute send under a sig is ambiguous and the pass
// declines rather than guessing which method the signature belongs to.
type AttrAccessor struct{}

func (AttrAccessor) Name() string { return "attr_accessor" }

func (AttrAccessor) ReplaceSend(ctx core.MutableContext, send *ast.Send, prev ast.Expression) []ast.Expression {
	if !isBareCall(send) || send.Block != nil {
		return nil
	}
	makeReader := false
	makeWriter := false
	switch send.Fun {
	case core.NameAttrReader:
		makeReader = true
	case core.NameAttrWriter:
		makeWriter = true
	case core.NameAttrAccessor:
		makeReader = true
		makeWriter = true
	default:
		return nil
	}
	if len(send.Args) == 0 {
		return nil
	}

	names := make([]core.NameRef, 0, len(send.Args))
	for _, arg := range send.Args {
		name, ok := symbolArg(arg)
		if !ok {
			log.Debugf("attribute declaration at %s has non-symbol argument, declining", send.Loc())
			return nil
		}
		names = append(names, name)
	}
	if len(names) > 1 && isSigCall(prev) {
		log.Debugf("attribute declaration at %s follows a sig but declares %d names, declining",
			send.Loc(), len(names))
		return nil
	}

	b := ast.NewBuilder(ctx.Metrics)
	loc := send.Loc()
	var out []ast.Expression
	for _, name := range names {
		if makeReader {
			out = append(out, b.SyntheticMethod(loc, name, nil, b.InstanceVar(loc, name)))
		}
		if makeWriter {
			writerName := ctx.GS.EnterName(name.Show(ctx.GS) + "=")
			out = append(out, b.SyntheticMethod(loc, writerName,
				[]ast.Expression{b.LocalVar(loc, name)},
				b.Assign(loc, b.InstanceVar(loc, name), b.LocalVar(loc, name))))
		}
	}
	return out
}

// isSigCall matches a bare `sig { ... }` or `sig` statement.
func isSigCall(e ast.Expression) bool {
	send, ok := e.(*ast.Send)
	if !ok {
		return false
	}
	return send.Fun == core.NameSig && isBareCall(send)
}
