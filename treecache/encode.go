// Package treecache serializes desugared trees and caches them on
// disk keyed by file path and content hash, so an embedding driver
// can skip re-parsing and re-desugaring unchanged files. Encoding is
// canonical CBOR: byte-identical for identical trees, which the cache
// relies on. Interned names travel as strings and are re-interned on
// decode, so a cached tree loads into any GlobalState.
package treecache

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/kestrel-lang/kestrel/ast"
	"github.com/kestrel-lang/kestrel/core"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("treecache: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type locRec struct {
	File  uint32 `cbor:"f,omitempty"`
	Begin uint32 `cbor:"b,omitempty"`
	End   uint32 `cbor:"e,omitempty"`
}

// nodeRec is the wire form of one node. Which fields are populated
// depends on Kind; unknown kinds are a decode error.
type nodeRec struct {
	Kind string `cbor:"kind"`
	Loc  locRec `cbor:"loc"`

	DeclLoc   *locRec `cbor:"declLoc,omitempty"`
	ClassKind uint8   `cbor:"classKind,omitempty"`
	Flags     uint32  `cbor:"flags,omitempty"`
	VarKind   uint8   `cbor:"varKind,omitempty"`
	LitKind   uint8   `cbor:"litKind,omitempty"`
	Int       int64   `cbor:"int,omitempty"`
	Float     float64 `cbor:"float,omitempty"`
	Unique    uint32  `cbor:"unique,omitempty"`
	Str       string  `cbor:"str,omitempty"`
	Sym       string  `cbor:"sym,omitempty"`

	NameNode *nodeRec `cbor:"nameNode,omitempty"`
	Cond     *nodeRec `cbor:"cond,omitempty"`
	Then     *nodeRec `cbor:"then,omitempty"`
	Else     *nodeRec `cbor:"else,omitempty"`
	Ensure   *nodeRec `cbor:"ensure,omitempty"`
	Body     *nodeRec `cbor:"body,omitempty"`
	Recv     *nodeRec `cbor:"recv,omitempty"`
	LHS      *nodeRec `cbor:"lhs,omitempty"`
	RHS      *nodeRec `cbor:"rhs,omitempty"`
	Scope    *nodeRec `cbor:"scope,omitempty"`
	Var      *nodeRec `cbor:"var,omitempty"`
	Default  *nodeRec `cbor:"default,omitempty"`
	Expr     *nodeRec `cbor:"expr,omitempty"`
	TypeNode *nodeRec `cbor:"typeNode,omitempty"`
	BlockRec *nodeRec `cbor:"block,omitempty"`
	Orig     *nodeRec `cbor:"orig,omitempty"`

	Args       []*nodeRec `cbor:"args,omitempty"`
	Ancestors  []*nodeRec `cbor:"ancestors,omitempty"`
	Stats      []*nodeRec `cbor:"stats,omitempty"`
	Elems      []*nodeRec `cbor:"elems,omitempty"`
	Keys       []*nodeRec `cbor:"keys,omitempty"`
	Values     []*nodeRec `cbor:"values,omitempty"`
	Exceptions []*nodeRec `cbor:"exceptions,omitempty"`
	Cases      []*nodeRec `cbor:"cases,omitempty"`
}

// Encode serializes a tree to canonical CBOR bytes.
func Encode(gs *core.GlobalState, tree ast.Expression) ([]byte, error) {
	rec, err := encodeNode(gs, tree)
	if err != nil {
		return nil, err
	}
	data, err := cborEncMode.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("treecache: marshal tree: %w", err)
	}
	return data, nil
}

// Decode deserializes a tree, re-interning names into gs and re-running
// every node's construction sanity check through the builder. Cache
// bytes are external input, so a record that fails a builder invariant
// comes back as an error rather than aborting the process.
func Decode(gs *core.GlobalState, data []byte) (tree ast.Expression, err error) {
	var rec nodeRec
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("treecache: unmarshal tree: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			sane, ok := r.(*core.SanityError)
			if !ok {
				panic(r)
			}
			tree, err = nil, fmt.Errorf("treecache: corrupt tree record: %s", sane.Message)
		}
	}()
	return decodeNode(gs, &rec)
}

func encodeLoc(loc core.Loc) locRec {
	return locRec{File: uint32(loc.File), Begin: loc.BeginPos, End: loc.EndPos}
}

func encodeLocPtr(loc core.Loc) *locRec {
	r := encodeLoc(loc)
	return &r
}

func decodeLoc(r locRec) core.Loc {
	return core.Loc{File: core.FileRef(r.File), BeginPos: r.Begin, EndPos: r.End}
}

func decodeLocPtr(r *locRec) core.Loc {
	if r == nil {
		return core.LocNone
	}
	return decodeLoc(*r)
}

func encodeList(gs *core.GlobalState, nodes []ast.Expression) ([]*nodeRec, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]*nodeRec, len(nodes))
	for i, n := range nodes {
		rec, err := encodeNode(gs, n)
		if err != nil {
			return nil, err
		}
		out[i] = rec
	}
	return out, nil
}

func encodeNode(gs *core.GlobalState, e ast.Expression) (*nodeRec, error) {
	if e == nil {
		return nil, fmt.Errorf("treecache: cannot encode nil node")
	}
	rec := &nodeRec{Kind: e.NodeName(), Loc: encodeLoc(e.Loc())}
	var err error

	switch n := e.(type) {
	case *ast.ClassDef:
		rec.ClassKind = uint8(n.Kind)
		rec.DeclLoc = encodeLocPtr(n.DeclLoc)
		rec.Sym = n.Symbol.FullName(gs)
		if rec.NameNode, err = encodeNode(gs, n.Name); err != nil {
			return nil, err
		}
		if rec.Ancestors, err = encodeList(gs, n.Ancestors); err != nil {
			return nil, err
		}
		if rec.Stats, err = encodeList(gs, n.RHS); err != nil {
			return nil, err
		}

	case *ast.MethodDef:
		rec.Flags = n.Flags
		rec.DeclLoc = encodeLocPtr(n.DeclLoc)
		rec.Sym = n.Symbol.FullName(gs)
		rec.Str = n.Name.Show(gs)
		if rec.Args, err = encodeList(gs, n.Args); err != nil {
			return nil, err
		}
		if rec.Body, err = encodeNode(gs, n.RHS); err != nil {
			return nil, err
		}

	case *ast.If:
		if rec.Cond, err = encodeNode(gs, n.Cond); err != nil {
			return nil, err
		}
		if rec.Then, err = encodeNode(gs, n.Then); err != nil {
			return nil, err
		}
		if rec.Else, err = encodeNode(gs, n.Else); err != nil {
			return nil, err
		}

	case *ast.While:
		if rec.Cond, err = encodeNode(gs, n.Cond); err != nil {
			return nil, err
		}
		if rec.Body, err = encodeNode(gs, n.Body); err != nil {
			return nil, err
		}

	case *ast.Break:
		if rec.Expr, err = encodeNode(gs, n.Expr); err != nil {
			return nil, err
		}
	case *ast.Next:
		if rec.Expr, err = encodeNode(gs, n.Expr); err != nil {
			return nil, err
		}
	case *ast.Return:
		if rec.Expr, err = encodeNode(gs, n.Expr); err != nil {
			return nil, err
		}
	case *ast.Retry:

	case *ast.Yield:
		if rec.Args, err = encodeList(gs, n.Args); err != nil {
			return nil, err
		}

	case *ast.RescueCase:
		if rec.Exceptions, err = encodeList(gs, n.Exceptions); err != nil {
			return nil, err
		}
		if rec.Var, err = encodeNode(gs, n.Var); err != nil {
			return nil, err
		}
		if rec.Body, err = encodeNode(gs, n.Body); err != nil {
			return nil, err
		}

	case *ast.Rescue:
		if rec.Body, err = encodeNode(gs, n.Body); err != nil {
			return nil, err
		}
		rec.Cases = make([]*nodeRec, len(n.RescueCases))
		for i, c := range n.RescueCases {
			if rec.Cases[i], err = encodeNode(gs, c); err != nil {
				return nil, err
			}
		}
		if rec.Else, err = encodeNode(gs, n.Else); err != nil {
			return nil, err
		}
		if rec.Ensure, err = encodeNode(gs, n.Ensure); err != nil {
			return nil, err
		}

	case *ast.Field:
		rec.Sym = n.Symbol.FullName(gs)

	case *ast.Local:
		rec.Str = n.LocalVar.Name.Show(gs)
		rec.Unique = n.LocalVar.Unique

	case *ast.UnresolvedIdent:
		rec.VarKind = uint8(n.Kind)
		rec.Str = n.Name.Show(gs)

	case *ast.RestArg:
		if rec.Expr, err = encodeNode(gs, n.Expr); err != nil {
			return nil, err
		}
	case *ast.KeywordArg:
		if rec.Expr, err = encodeNode(gs, n.Expr); err != nil {
			return nil, err
		}
	case *ast.OptionalArg:
		if rec.Expr, err = encodeNode(gs, n.Expr); err != nil {
			return nil, err
		}
		if rec.Default, err = encodeNode(gs, n.Default); err != nil {
			return nil, err
		}
	case *ast.ShadowArg:
		if rec.Expr, err = encodeNode(gs, n.Expr); err != nil {
			return nil, err
		}
	case *ast.BlockArg:
		if rec.Expr, err = encodeNode(gs, n.Expr); err != nil {
			return nil, err
		}

	case *ast.Assign:
		if rec.LHS, err = encodeNode(gs, n.LHS); err != nil {
			return nil, err
		}
		if rec.RHS, err = encodeNode(gs, n.RHS); err != nil {
			return nil, err
		}

	case *ast.Send:
		rec.Str = n.Fun.Show(gs)
		if rec.Recv, err = encodeNode(gs, n.Recv); err != nil {
			return nil, err
		}
		if rec.Args, err = encodeList(gs, n.Args); err != nil {
			return nil, err
		}
		if n.Block != nil {
			if rec.BlockRec, err = encodeNode(gs, n.Block); err != nil {
				return nil, err
			}
		}

	case *ast.Cast:
		rec.Str = n.Cast.Show(gs)
		if rec.Expr, err = encodeNode(gs, n.Arg); err != nil {
			return nil, err
		}
		if rec.TypeNode, err = encodeNode(gs, n.TypeExpr); err != nil {
			return nil, err
		}

	case *ast.ZSuperArgs:

	case *ast.Self:
		rec.Sym = n.Claz.FullName(gs)

	case *ast.Block:
		if rec.Args, err = encodeList(gs, n.Args); err != nil {
			return nil, err
		}
		if rec.Body, err = encodeNode(gs, n.Body); err != nil {
			return nil, err
		}

	case *ast.Hash:
		if rec.Keys, err = encodeList(gs, n.Keys); err != nil {
			return nil, err
		}
		if rec.Values, err = encodeList(gs, n.Values); err != nil {
			return nil, err
		}

	case *ast.Array:
		if rec.Elems, err = encodeList(gs, n.Elems); err != nil {
			return nil, err
		}

	case *ast.Literal:
		rec.LitKind = uint8(n.Value.Kind)
		switch n.Value.Kind {
		case core.LitInt:
			rec.Int = n.Value.Int
		case core.LitFloat:
			rec.Float = n.Value.Float
		case core.LitString, core.LitSymbol:
			rec.Str = n.Value.Str.Show(gs)
		}

	case *ast.UnresolvedConstantLit:
		rec.Str = n.Cnst.Show(gs)
		if rec.Scope, err = encodeNode(gs, n.Scope); err != nil {
			return nil, err
		}

	case *ast.ConstantLit:
		rec.Sym = n.Symbol.FullName(gs)
		if n.Original != nil {
			if rec.Orig, err = encodeNode(gs, n.Original); err != nil {
				return nil, err
			}
		}
		if n.TypeAlias != nil {
			if rec.TypeNode, err = encodeNode(gs, n.TypeAlias); err != nil {
				return nil, err
			}
		}

	case *ast.InsSeq:
		if rec.Stats, err = encodeList(gs, n.Stats); err != nil {
			return nil, err
		}
		if rec.Expr, err = encodeNode(gs, n.Expr); err != nil {
			return nil, err
		}

	case *ast.EmptyTree:

	default:
		return nil, fmt.Errorf("treecache: cannot encode node kind %s", e.NodeName())
	}

	return rec, nil
}
