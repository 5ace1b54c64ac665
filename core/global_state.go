// Package core holds the location and identity primitives shared by the
// front end: interned names, symbol handles, literal values, and the
// per-file symbol table (GlobalState). Trees reference these by value;
// the table owns the backing storage.
package core

// GlobalState is the name interner and symbol table for one
// file-processing unit. It is append-only: names and symbols are
// entered, never removed. A GlobalState must only be mutated by the
// single worker that owns it; read-only use (printing) is safe to
// share after mutation stops.
type GlobalState struct {
	names     []string
	nameIndex map[string]NameRef
	symbols   []SymbolData
}

// NewGlobalState builds a table pre-seeded with the well-known names
// and symbols. The seeding order is fixed so the NameXxx and SymbolXxx
// constants stay valid.
func NewGlobalState() *GlobalState {
	gs := &GlobalState{
		names:     []string{""}, // slot 0 = NoName
		nameIndex: map[string]NameRef{"": NoName},
	}
	for ref := NameRef(1); ref < lastWellKnownName; ref++ {
		got := gs.EnterName(wellKnownNames[ref])
		Enforce(got == ref, "well-known name %q interned at %d, want %d", wellKnownNames[ref], got, ref)
	}

	gs.symbols = make([]SymbolData, 1, lastWellKnownSymbol) // slot 0 = NoSymbol
	enter := func(ref SymbolRef, name string, owner SymbolRef, kind SymbolKind) {
		got := gs.EnterSymbol(gs.EnterName(name), owner, kind)
		Enforce(got == ref, "well-known symbol %q entered at %d, want %d", name, got, ref)
	}
	enter(SymbolRoot, "<root>", NoSymbol, SymbolClass)
	enter(SymbolTodo, "<todo sym>", SymbolRoot, SymbolClass)
	enter(SymbolObject, "Object", SymbolRoot, SymbolClass)
	enter(SymbolBasicObject, "BasicObject", SymbolRoot, SymbolClass)
	enter(SymbolTrueClass, "TrueClass", SymbolRoot, SymbolClass)
	enter(SymbolFalseClass, "FalseClass", SymbolRoot, SymbolClass)
	enter(SymbolNilClass, "NilClass", SymbolRoot, SymbolClass)
	enter(SymbolSymbolClass, "Symbol", SymbolRoot, SymbolClass)
	enter(SymbolStringClass, "String", SymbolRoot, SymbolClass)
	enter(SymbolIntegerClass, "Integer", SymbolRoot, SymbolClass)
	enter(SymbolFloatClass, "Float", SymbolRoot, SymbolClass)
	enter(SymbolStructClass, "Struct", SymbolRoot, SymbolClass)
	return gs
}

// EnterName interns s, returning the existing ref if already present.
func (gs *GlobalState) EnterName(s string) NameRef {
	if ref, ok := gs.nameIndex[s]; ok {
		return ref
	}
	ref := NameRef(len(gs.names))
	gs.names = append(gs.names, s)
	gs.nameIndex[s] = ref
	return ref
}

// NameString returns the string for an interned name.
func (gs *GlobalState) NameString(ref NameRef) string {
	Enforce(int(ref) < len(gs.names), "NameRef %d out of range (%d names)", ref, len(gs.names))
	return gs.names[ref]
}

// FindName returns the ref for s if it has been interned, NoName otherwise.
func (gs *GlobalState) FindName(s string) NameRef {
	return gs.nameIndex[s]
}

// EnterSymbol appends a symbol-table entry and returns its ref.
func (gs *GlobalState) EnterSymbol(name NameRef, owner SymbolRef, kind SymbolKind) SymbolRef {
	ref := SymbolRef(len(gs.symbols))
	gs.symbols = append(gs.symbols, SymbolData{Name: name, Owner: owner, Kind: kind})
	return ref
}

// FindSymbolByFullName walks the table looking for a symbol whose
// FullName matches. Linear: this exists for the tree cache decoder,
// not for resolution.
func (gs *GlobalState) FindSymbolByFullName(fullName string) SymbolRef {
	for i := 1; i < len(gs.symbols); i++ {
		ref := SymbolRef(i)
		if ref.FullName(gs) == fullName {
			return ref
		}
	}
	return NoSymbol
}

// NameCount reports the number of interned names, slot 0 included.
func (gs *GlobalState) NameCount() int {
	return len(gs.names)
}

// SymbolCount reports the number of symbol-table entries, slot 0 included.
func (gs *GlobalState) SymbolCount() int {
	return len(gs.symbols)
}
