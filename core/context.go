package core

// MetricsSink receives construction observability events. Node
// builders take an optional sink so tests can construct trees without
// side effects leaking across cases.
type MetricsSink interface {
	CategoryCounterInc(category, name string)
	HistogramInc(histogram string, value int)
}

// Context is a read-only view of the state a traversal runs against.
type Context struct {
	GS    *GlobalState
	Owner SymbolRef
}

// MutableContext additionally permits interning synthesized names and
// recording construction metrics. One per file-processing unit;
// never shared across workers.
type MutableContext struct {
	Context
	Metrics MetricsSink
}

// NewMutableContext builds a context rooted at the top-level scope.
func NewMutableContext(gs *GlobalState) MutableContext {
	return MutableContext{Context: Context{GS: gs, Owner: SymbolRoot}}
}

// WithOwner returns a copy scoped to a different owner symbol.
func (ctx MutableContext) WithOwner(owner SymbolRef) MutableContext {
	ctx.Owner = owner
	return ctx
}
