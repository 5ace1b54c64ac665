package core

// SymbolRef is a handle into the shared symbol table. The zero ref
// means "no symbol".
type SymbolRef uint32

// SymbolKind classifies symbol-table entries.
type SymbolKind uint8

const (
	SymbolClass SymbolKind = iota
	SymbolMethod
	SymbolField
)

// Well-known symbols, entered by NewGlobalState in this exact order.
// The printers and passes compare against these; everything the parser
// produces carries SymbolTodo until the resolver runs.
const (
	NoSymbol SymbolRef = iota
	SymbolRoot
	SymbolTodo
	SymbolObject
	SymbolBasicObject
	SymbolTrueClass
	SymbolFalseClass
	SymbolNilClass
	SymbolSymbolClass
	SymbolStringClass
	SymbolIntegerClass
	SymbolFloatClass
	SymbolStructClass
	lastWellKnownSymbol
)

// SymbolData is the table payload for one symbol.
type SymbolData struct {
	Name  NameRef
	Owner SymbolRef
	Kind  SymbolKind
}

// Exists reports whether the ref points at a real table entry.
func (s SymbolRef) Exists() bool {
	return s != NoSymbol && s != SymbolTodo
}

// Data returns the table payload. The ref must be valid for gs.
func (s SymbolRef) Data(gs *GlobalState) *SymbolData {
	Enforce(s != NoSymbol, "SymbolRef.Data on NoSymbol")
	return &gs.symbols[s]
}

// Show returns the symbol's own name, or a placeholder for todo.
func (s SymbolRef) Show(gs *GlobalState) string {
	if s == NoSymbol {
		return "<none>"
	}
	if s == SymbolTodo {
		return "<todo sym>"
	}
	return s.Data(gs).Name.Show(gs)
}

// FullName joins the owner chain with "::", stopping at the root.
func (s SymbolRef) FullName(gs *GlobalState) string {
	if !s.Exists() {
		return s.Show(gs)
	}
	data := s.Data(gs)
	if data.Owner == NoSymbol || data.Owner == SymbolRoot {
		return data.Name.Show(gs)
	}
	return data.Owner.FullName(gs) + "::" + data.Name.Show(gs)
}
