package treecache

import (
	"fmt"

	"github.com/kestrel-lang/kestrel/ast"
	"github.com/kestrel-lang/kestrel/core"
)

func decodeList(gs *core.GlobalState, recs []*nodeRec) ([]ast.Expression, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	out := make([]ast.Expression, len(recs))
	for i, rec := range recs {
		n, err := decodeNode(gs, rec)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func decodeReference(gs *core.GlobalState, rec *nodeRec) (ast.Reference, error) {
	n, err := decodeNode(gs, rec)
	if err != nil {
		return nil, err
	}
	ref, ok := n.(ast.Reference)
	if !ok {
		return nil, fmt.Errorf("treecache: %s where a reference is required", n.NodeName())
	}
	return ref, nil
}

// resolveSym maps a serialized symbol name back into gs. Cached trees
// are pre-resolution, so anything beyond the well-known builtins maps
// to the todo placeholder for the resolver to fill in.
func resolveSym(gs *core.GlobalState, s string) core.SymbolRef {
	switch s {
	case "", "<none>":
		return core.NoSymbol
	case "<todo sym>":
		return core.SymbolTodo
	}
	if ref := gs.FindSymbolByFullName(s); ref != core.NoSymbol {
		return ref
	}
	return core.SymbolTodo
}

func decodeNode(gs *core.GlobalState, rec *nodeRec) (ast.Expression, error) {
	if rec == nil {
		return nil, fmt.Errorf("treecache: missing node record")
	}
	var b ast.Builder
	loc := decodeLoc(rec.Loc)

	switch rec.Kind {
	case "ClassDef":
		name, err := decodeNode(gs, rec.NameNode)
		if err != nil {
			return nil, err
		}
		ancestors, err := decodeList(gs, rec.Ancestors)
		if err != nil {
			return nil, err
		}
		rhs, err := decodeList(gs, rec.Stats)
		if err != nil {
			return nil, err
		}
		return b.ClassDef(loc, decodeLocPtr(rec.DeclLoc), resolveSym(gs, rec.Sym),
			ast.ClassDefKind(rec.ClassKind), name, ancestors, rhs), nil

	case "MethodDef":
		args, err := decodeList(gs, rec.Args)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(gs, rec.Body)
		if err != nil {
			return nil, err
		}
		return b.MethodDef(loc, decodeLocPtr(rec.DeclLoc), resolveSym(gs, rec.Sym),
			gs.EnterName(rec.Str), args, body, rec.Flags), nil

	case "If":
		cond, err := decodeNode(gs, rec.Cond)
		if err != nil {
			return nil, err
		}
		thenp, err := decodeNode(gs, rec.Then)
		if err != nil {
			return nil, err
		}
		elsep, err := decodeNode(gs, rec.Else)
		if err != nil {
			return nil, err
		}
		return b.If(loc, cond, thenp, elsep), nil

	case "While":
		cond, err := decodeNode(gs, rec.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(gs, rec.Body)
		if err != nil {
			return nil, err
		}
		return b.While(loc, cond, body), nil

	case "Break":
		expr, err := decodeNode(gs, rec.Expr)
		if err != nil {
			return nil, err
		}
		return b.Break(loc, expr), nil

	case "Next":
		expr, err := decodeNode(gs, rec.Expr)
		if err != nil {
			return nil, err
		}
		return b.Next(loc, expr), nil

	case "Return":
		expr, err := decodeNode(gs, rec.Expr)
		if err != nil {
			return nil, err
		}
		return b.Return(loc, expr), nil

	case "Retry":
		return b.Retry(loc), nil

	case "Yield":
		args, err := decodeList(gs, rec.Args)
		if err != nil {
			return nil, err
		}
		return b.Yield(loc, args), nil

	case "RescueCase":
		exceptions, err := decodeList(gs, rec.Exceptions)
		if err != nil {
			return nil, err
		}
		varExpr, err := decodeNode(gs, rec.Var)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(gs, rec.Body)
		if err != nil {
			return nil, err
		}
		return b.RescueCase(loc, exceptions, varExpr, body), nil

	case "Rescue":
		body, err := decodeNode(gs, rec.Body)
		if err != nil {
			return nil, err
		}
		cases := make([]*ast.RescueCase, len(rec.Cases))
		for i, c := range rec.Cases {
			n, err := decodeNode(gs, c)
			if err != nil {
				return nil, err
			}
			rc, ok := n.(*ast.RescueCase)
			if !ok {
				return nil, fmt.Errorf("treecache: %s in rescue case list", n.NodeName())
			}
			cases[i] = rc
		}
		elsep, err := decodeNode(gs, rec.Else)
		if err != nil {
			return nil, err
		}
		ensure, err := decodeNode(gs, rec.Ensure)
		if err != nil {
			return nil, err
		}
		return b.Rescue(loc, body, cases, elsep, ensure), nil

	case "Field":
		return b.Field(loc, resolveSym(gs, rec.Sym)), nil

	case "Local":
		return b.Local(loc, core.LocalVariable{
			Name:   gs.EnterName(rec.Str),
			Unique: rec.Unique,
		}), nil

	case "UnresolvedIdent":
		return b.UnresolvedIdent(loc, ast.VarKind(rec.VarKind), gs.EnterName(rec.Str)), nil

	case "RestArg":
		ref, err := decodeReference(gs, rec.Expr)
		if err != nil {
			return nil, err
		}
		return b.RestArg(loc, ref), nil

	case "KeywordArg":
		ref, err := decodeReference(gs, rec.Expr)
		if err != nil {
			return nil, err
		}
		return b.KeywordArg(loc, ref), nil

	case "OptionalArg":
		ref, err := decodeReference(gs, rec.Expr)
		if err != nil {
			return nil, err
		}
		def, err := decodeNode(gs, rec.Default)
		if err != nil {
			return nil, err
		}
		return b.OptionalArg(loc, ref, def), nil

	case "ShadowArg":
		ref, err := decodeReference(gs, rec.Expr)
		if err != nil {
			return nil, err
		}
		return b.ShadowArg(loc, ref), nil

	case "BlockArg":
		ref, err := decodeReference(gs, rec.Expr)
		if err != nil {
			return nil, err
		}
		return b.BlockArg(loc, ref), nil

	case "Assign":
		lhs, err := decodeNode(gs, rec.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := decodeNode(gs, rec.RHS)
		if err != nil {
			return nil, err
		}
		return b.Assign(loc, lhs, rhs), nil

	case "Send":
		recv, err := decodeNode(gs, rec.Recv)
		if err != nil {
			return nil, err
		}
		args, err := decodeList(gs, rec.Args)
		if err != nil {
			return nil, err
		}
		var blk *ast.Block
		if rec.BlockRec != nil {
			n, err := decodeNode(gs, rec.BlockRec)
			if err != nil {
				return nil, err
			}
			var ok bool
			if blk, ok = n.(*ast.Block); !ok {
				return nil, fmt.Errorf("treecache: %s in send block slot", n.NodeName())
			}
		}
		return b.Send(loc, recv, gs.EnterName(rec.Str), args, blk), nil

	case "Cast":
		arg, err := decodeNode(gs, rec.Expr)
		if err != nil {
			return nil, err
		}
		typeExpr, err := decodeNode(gs, rec.TypeNode)
		if err != nil {
			return nil, err
		}
		return b.Cast(loc, gs.EnterName(rec.Str), arg, typeExpr), nil

	case "ZSuperArgs":
		return b.ZSuperArgs(loc), nil

	case "Self":
		return b.Self(loc, resolveSym(gs, rec.Sym)), nil

	case "Block":
		args, err := decodeList(gs, rec.Args)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(gs, rec.Body)
		if err != nil {
			return nil, err
		}
		return b.Block(loc, args, body), nil

	case "Hash":
		keys, err := decodeList(gs, rec.Keys)
		if err != nil {
			return nil, err
		}
		values, err := decodeList(gs, rec.Values)
		if err != nil {
			return nil, err
		}
		return b.Hash(loc, keys, values), nil

	case "Array":
		elems, err := decodeList(gs, rec.Elems)
		if err != nil {
			return nil, err
		}
		return b.Array(loc, elems), nil

	case "Literal":
		var value core.LitValue
		switch core.LitKind(rec.LitKind) {
		case core.LitNil:
			value = core.NilLit()
		case core.LitTrue:
			value = core.TrueLit()
		case core.LitFalse:
			value = core.FalseLit()
		case core.LitInt:
			value = core.IntLit(rec.Int)
		case core.LitFloat:
			value = core.FloatLit(rec.Float)
		case core.LitString:
			value = core.StringLit(gs.EnterName(rec.Str))
		case core.LitSymbol:
			value = core.SymbolLit(gs.EnterName(rec.Str))
		default:
			return nil, fmt.Errorf("treecache: unknown literal kind %d", rec.LitKind)
		}
		return b.Literal(loc, value), nil

	case "UnresolvedConstantLit":
		scope, err := decodeNode(gs, rec.Scope)
		if err != nil {
			return nil, err
		}
		return b.UnresolvedConstantLit(loc, scope, gs.EnterName(rec.Str)), nil

	case "ConstantLit":
		var orig *ast.UnresolvedConstantLit
		if rec.Orig != nil {
			n, err := decodeNode(gs, rec.Orig)
			if err != nil {
				return nil, err
			}
			var ok bool
			if orig, ok = n.(*ast.UnresolvedConstantLit); !ok {
				return nil, fmt.Errorf("treecache: %s in constant original slot", n.NodeName())
			}
		}
		var alias ast.Expression
		if rec.TypeNode != nil {
			var err error
			if alias, err = decodeNode(gs, rec.TypeNode); err != nil {
				return nil, err
			}
		}
		return b.ConstantLit(loc, resolveSym(gs, rec.Sym), orig, alias), nil

	case "InsSeq":
		stats, err := decodeList(gs, rec.Stats)
		if err != nil {
			return nil, err
		}
		expr, err := decodeNode(gs, rec.Expr)
		if err != nil {
			return nil, err
		}
		return b.InsSeq(loc, stats, expr), nil

	case "EmptyTree":
		return b.EmptyTree(), nil
	}

	return nil, fmt.Errorf("treecache: unknown node kind %q", rec.Kind)
}
