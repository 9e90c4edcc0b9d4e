package frontend

import (
	"encoding/hex"
	"strings"

	"lukechampine.com/blake3"

	"github.com/ceeaziza/CastXML/internal/ast"
)

// typeInterner deduplicates lowered types. IDs are content-addressed:
// the digest of the structural description, so equal types produced from
// different syntax positions intern to the same handle.
type typeInterner struct {
	types map[string]ast.Type
}

func newTypeInterner() *typeInterner {
	return &typeInterner{types: make(map[string]ast.Type)}
}

// typeID computes the content-addressed identity for a type from its
// structural description.
func typeID(parts ...string) string {
	sum := blake3.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:16])
}

func (ti *typeInterner) intern(id string, mk func() ast.Type) ast.Type {
	if t, ok := ti.types[id]; ok {
		return t
	}
	t := mk()
	ti.types[id] = t
	return t
}

// Builtin interns a fundamental type by its canonical spelling.
func (ti *typeInterner) Builtin(spelling string) ast.Type {
	id := typeID("builtin", spelling)
	return ti.intern(id, func() ast.Type {
		return &builtinType{id: id, spelling: spelling}
	})
}

// Pointer interns a pointer to the given (possibly qualified) pointee.
func (ti *typeInterner) Pointer(pointee ast.QualType) ast.Type {
	id := typeID("pointer", pointee.Type.ID(), qualString(pointee.Quals))
	return ti.intern(id, func() ast.Type {
		return &pointerType{id: id, pointee: pointee}
	})
}

// Named interns a type known only by name: records, enums, and
// identifiers the frontend cannot resolve further.
func (ti *typeInterner) Named(kind ast.TypeKind, spelling string) ast.Type {
	id := typeID("named", kind.String(), spelling)
	return ti.intern(id, func() ast.Type {
		return &namedType{id: id, kind: kind, spelling: spelling}
	})
}

func qualString(q ast.Qualifiers) string {
	var sb strings.Builder
	if q&ast.QualConst != 0 {
		sb.WriteByte('c')
	}
	if q&ast.QualVolatile != 0 {
		sb.WriteByte('v')
	}
	if q&ast.QualRestrict != 0 {
		sb.WriteByte('r')
	}
	return sb.String()
}

type builtinType struct {
	id       string
	spelling string
}

func (t *builtinType) Kind() ast.TypeKind { return ast.TypeBuiltin }
func (t *builtinType) ID() string         { return t.id }
func (t *builtinType) Spelling() string   { return t.spelling }

type pointerType struct {
	id      string
	pointee ast.QualType
}

func (t *pointerType) Kind() ast.TypeKind    { return ast.TypePointer }
func (t *pointerType) ID() string            { return t.id }
func (t *pointerType) Pointee() ast.QualType { return t.pointee }

type namedType struct {
	id       string
	kind     ast.TypeKind
	spelling string
}

func (t *namedType) Kind() ast.TypeKind { return t.kind }
func (t *namedType) ID() string         { return t.id }
func (t *namedType) Spelling() string   { return t.spelling }
