package core

import "strconv"

// NameRef is an interned identifier. The zero ref is "no name".
type NameRef uint32

// NoName is the NameRef of the empty slot in the name table.
const NoName NameRef = 0

// Well-known names, interned by NewGlobalState in this exact order.
// The rewriter compares send selectors against these.
const (
	NameProp NameRef = iota + 1
	NameConst
	NameAttrReader
	NameAttrWriter
	NameAttrAccessor
	NameSig
	NameNew
	NameInitialize
	NameType
	NameImmutable
	NameStruct
	lastWellKnownName
)

var wellKnownNames = [...]string{
	NameProp:         "prop",
	NameConst:        "const",
	NameAttrReader:   "attr_reader",
	NameAttrWriter:   "attr_writer",
	NameAttrAccessor: "attr_accessor",
	NameSig:          "sig",
	NameNew:          "new",
	NameInitialize:   "initialize",
	NameType:         "type",
	NameImmutable:    "immutable",
	NameStruct:       "Struct",
}

// Exists reports whether the ref points at an interned name.
func (n NameRef) Exists() bool {
	return n != NoName
}

// Show returns the interned string for n. The ref must be valid for gs.
func (n NameRef) Show(gs *GlobalState) string {
	return gs.NameString(n)
}

// LocalVariable is a method-scoped variable slot. Unique disambiguates
// synthesized temporaries with the same base name; parser-produced and
// rewriter-produced locals use Unique 0 until resolution renumbers them.
type LocalVariable struct {
	Name   NameRef
	Unique uint32
}

// Exists reports whether the variable slot is bound to a name.
func (v LocalVariable) Exists() bool {
	return v.Name.Exists()
}

// Show renders the variable for the printers.
func (v LocalVariable) Show(gs *GlobalState) string {
	s := v.Name.Show(gs)
	if v.Unique == 0 {
		return s
	}
	return s + "$" + strconv.FormatUint(uint64(v.Unique), 10)
}
