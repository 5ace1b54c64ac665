package core

import "strconv"

// LitKind discriminates literal values.
type LitKind uint8

const (
	LitNil LitKind = iota
	LitTrue
	LitFalse
	LitInt
	LitFloat
	LitString
	LitSymbol
)

// LitValue is the resolved value of a Literal node. Strings and
// symbols carry their text through the name table.
type LitValue struct {
	Kind  LitKind
	Int   int64
	Float float64
	Str   NameRef
}

func NilLit() LitValue             { return LitValue{Kind: LitNil} }
func TrueLit() LitValue            { return LitValue{Kind: LitTrue} }
func FalseLit() LitValue           { return LitValue{Kind: LitFalse} }
func IntLit(v int64) LitValue      { return LitValue{Kind: LitInt, Int: v} }
func FloatLit(v float64) LitValue  { return LitValue{Kind: LitFloat, Float: v} }
func StringLit(s NameRef) LitValue { return LitValue{Kind: LitString, Str: s} }
func SymbolLit(s NameRef) LitValue { return LitValue{Kind: LitSymbol, Str: s} }

// IsSymbol reports whether the value is a symbol literal.
func (v LitValue) IsSymbol() bool { return v.Kind == LitSymbol }

// IsString reports whether the value is a string literal.
func (v LitValue) IsString() bool { return v.Kind == LitString }

// IsNil reports whether the value is nil.
func (v LitValue) IsNil() bool { return v.Kind == LitNil }

// IsTrue reports whether the value is true.
func (v LitValue) IsTrue() bool { return v.Kind == LitTrue }

// IsFalse reports whether the value is false.
func (v LitValue) IsFalse() bool { return v.Kind == LitFalse }

// AsName returns the interned text of a string or symbol literal.
func (v LitValue) AsName() NameRef {
	Enforce(v.Kind == LitString || v.Kind == LitSymbol,
		"LitValue.AsName on kind %d", v.Kind)
	return v.Str
}

// ClassSymbol returns the builtin class a value of this literal
// belongs to.
func (v LitValue) ClassSymbol() SymbolRef {
	switch v.Kind {
	case LitNil:
		return SymbolNilClass
	case LitTrue:
		return SymbolTrueClass
	case LitFalse:
		return SymbolFalseClass
	case LitInt:
		return SymbolIntegerClass
	case LitFloat:
		return SymbolFloatClass
	case LitString:
		return SymbolStringClass
	case LitSymbol:
		return SymbolSymbolClass
	}
	return NoSymbol
}

// Show renders the value the way the readable printer wants it.
func (v LitValue) Show(gs *GlobalState) string {
	switch v.Kind {
	case LitNil:
		return "nil"
	case LitTrue:
		return "true"
	case LitFalse:
		return "false"
	case LitInt:
		return strconv.FormatInt(v.Int, 10)
	case LitFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case LitString:
		return strconv.Quote(v.Str.Show(gs))
	case LitSymbol:
		return ":" + v.Str.Show(gs)
	}
	return "<bad literal>"
}
