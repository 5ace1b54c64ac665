package rewriter

import (
	"github.com/kestrel-lang/kestrel/ast"
	"github.com/kestrel-lang/kestrel/core"
)

// A pass examines one class-body statement and either declines (nil
// or empty result) or returns the ordered statements that replace it.
// Passes are pure: they must not mutate the candidate or prev, and
// they consume the candidate by ownership transfer only when they
// return a replacement. prev is the immediately preceding original
// statement, read-only lookahead context; it is nil for the first
// statement of a body.
//
// A pass that recognizes a shape but finds a sub-shape it cannot
// safely rewrite declines rather than guessing.

// AssignPass rewrites assignment-shaped statements.
type AssignPass interface {
	Name() string
	ReplaceAssign(ctx core.MutableContext, assign *ast.Assign, prev ast.Expression) []ast.Expression
}

// SendPass rewrites call-shaped statements.
type SendPass interface {
	Name() string
	ReplaceSend(ctx core.MutableContext, send *ast.Send, prev ast.Expression) []ast.Expression
}

// MethodDefPass rewrites definition-shaped statements.
type MethodDefPass interface {
	Name() string
	ReplaceMethodDef(ctx core.MutableContext, mdef *ast.MethodDef, prev ast.Expression) []ast.Expression
}

// Registry holds the ordered pass lists, one per statement shape.
// Within a list the first pass returning a non-empty result wins and
// later passes are not tried. Statement shapes are mutually exclusive
// (the driver dispatches on the concrete node type), so no statement
// can reach two lists.
type Registry struct {
	Assign    []AssignPass
	Send      []SendPass
	MethodDef []MethodDefPass
}

// DefaultRegistry returns the shipped pass order. The order is part
// of the observable contract: earlier passes shadow later ones for
// overlapping shapes.
func DefaultRegistry() *Registry {
	return &Registry{
		Assign: []AssignPass{
			StructLowering{},
		},
		Send: []SendPass{
			Prop{},
			AttrAccessor{},
		},
		// Definition-shaped statements have no shipped passes; the
		// slot stays registrable for embedders.
		MethodDef: nil,
	}
}

// Filter returns a registry keeping only passes whose name is in
// enabled. An empty enabled list keeps everything.
func (r *Registry) Filter(enabled []string) *Registry {
	if len(enabled) == 0 {
		return r
	}
	keep := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		keep[name] = true
	}
	out := &Registry{}
	for _, p := range r.Assign {
		if keep[p.Name()] {
			out.Assign = append(out.Assign, p)
		}
	}
	for _, p := range r.Send {
		if keep[p.Name()] {
			out.Send = append(out.Send, p)
		}
	}
	for _, p := range r.MethodDef {
		if keep[p.Name()] {
			out.MethodDef = append(out.MethodDef, p)
		}
	}
	return out
}
