package core

import "fmt"

// FileRef identifies a source file in the embedding driver's file table.
// File 0 is reserved for "no file".
type FileRef uint32

// NoFile is the FileRef carried by synthesized or absent locations.
const NoFile FileRef = 0

// Loc is a half-open byte range [BeginPos, EndPos) in a source file.
type Loc struct {
	File     FileRef
	BeginPos uint32
	EndPos   uint32
}

// LocNone is the location of nodes that have no source position,
// such as EmptyTree.
var LocNone = Loc{}

// MakeLoc builds a location covering [begin, end) in file.
func MakeLoc(file FileRef, begin, end uint32) Loc {
	return Loc{File: file, BeginPos: begin, EndPos: end}
}

// Exists reports whether the location points at real source text.
func (l Loc) Exists() bool {
	return l.File != NoFile
}

func (l Loc) String() string {
	if !l.Exists() {
		return "loc(none)"
	}
	return fmt.Sprintf("loc(file=%d %d..%d)", l.File, l.BeginPos, l.EndPos)
}
