package rewriter

import (
	"github.com/kestrel-lang/kestrel/ast"
	"github.com/kestrel-lang/kestrel/core"
)

// Prop desugars declarative property calls:
//
//	prop :name, type: String
//	const :name, type: String
//
// into a reader method and, unless the property is immutable, a
// writer method:
//
//	def name
//	  T.let(@name, String)
//	end
//	def name=(name)
//	  @name = name
//	end
//
// `const` and `prop ..., immutable: true` produce the reader only.
// Both synthesized methods carry the original call's location.
type Prop struct{}

func (Prop) Name() string { return "prop" }

func (Prop) ReplaceSend(ctx core.MutableContext, send *ast.Send, prev ast.Expression) []ast.Expression {
	if !isBareCall(send) || send.Block != nil {
		return nil
	}
	immutable := false
	switch send.Fun {
	case core.NameProp:
	case core.NameConst:
		immutable = true
	default:
		return nil
	}
	if len(send.Args) == 0 {
		return nil
	}
	name, ok := symbolArg(send.Args[0])
	if !ok {
		// prop with a computed name: recognized shape, unsafe to rewrite.
		log.Debugf("prop at %s has non-symbol name, declining", send.Loc())
		return nil
	}

	var typeExpr ast.Expression
	rest := send.Args[1:]
	if len(rest) > 0 {
		opts, isHash := rest[len(rest)-1].(*ast.Hash)
		if isHash {
			rest = rest[:len(rest)-1]
			for i, key := range opts.Keys {
				keyName, isSym := symbolArg(key)
				if !isSym {
					log.Debugf("prop at %s has non-symbol option key, declining", send.Loc())
					return nil
				}
				switch keyName {
				case core.NameType:
					typeExpr = opts.Values[i]
				case core.NameImmutable:
					val, isLit := opts.Values[i].(*ast.Literal)
					if !isLit || !(val.Value.IsTrue() || val.Value.IsFalse()) {
						log.Debugf("prop at %s has non-boolean immutable option, declining", send.Loc())
						return nil
					}
					immutable = immutable || val.Value.IsTrue()
				default:
					// Unknown options are tolerated, not understood.
				}
			}
		}
		// A single remaining positional argument is the property type,
		// unless a type: option already named one.
		if len(rest) == 1 && typeExpr != nil {
			log.Debugf("prop at %s has both a positional type and a type option, declining", send.Loc())
			return nil
		}
		if len(rest) == 1 {
			typeExpr = rest[0]
		} else if len(rest) > 1 {
			log.Debugf("prop at %s has %d extra positional arguments, declining", send.Loc(), len(rest))
			return nil
		}
	}

	b := ast.NewBuilder(ctx.Metrics)
	loc := send.Loc()

	var readerBody ast.Expression = b.InstanceVar(loc, name)
	if typeExpr != nil {
		readerBody = b.Cast(loc, ctx.GS.EnterName("let"), readerBody, typeExpr)
	}
	reader := b.SyntheticMethod(loc, name, nil, readerBody)
	if immutable {
		return []ast.Expression{reader}
	}

	writerName := ctx.GS.EnterName(name.Show(ctx.GS) + "=")
	writer := b.SyntheticMethod(loc, writerName,
		[]ast.Expression{b.LocalVar(loc, name)},
		b.Assign(loc, b.InstanceVar(loc, name), b.LocalVar(loc, name)))
	return []ast.Expression{reader, writer}
}
