// Package ast defines the frontend capability surface consumed by the
// GCC-XML serializer.
//
// The serializer never parses source code itself; it walks a graph of
// declaration and type handles owned by a language frontend. This package
// pins down the minimum that any frontend binding must provide: closed
// kind enumerations, declaration and declaration-context accessors, type
// accessors with local cv-qualifier bits, and source locations. The
// tree-sitter binding in internal/frontend is one implementation; tests
// supply hand-built fakes.
package ast

// DeclKind identifies the concrete kind of a declaration. The set is
// closed per frontend version; kinds without a dedicated emitter are
// written as Unimplemented records carrying the kind name.
type DeclKind int

const (
	DeclTranslationUnit DeclKind = iota
	DeclNamespace
	DeclTypedef
	DeclRecord
	DeclField
	DeclFunction
	DeclMethod
	DeclConstructor
	DeclDestructor
	DeclEnum
	DeclEnumConstant
	DeclVar
	DeclParmVar
	DeclAccessSpec
	DeclUsing
	DeclFriend
	DeclLinkageSpec
	DeclUnexposed
)

var declKindNames = [...]string{
	DeclTranslationUnit: "TranslationUnit",
	DeclNamespace:       "Namespace",
	DeclTypedef:         "Typedef",
	DeclRecord:          "CXXRecord",
	DeclField:           "Field",
	DeclFunction:        "Function",
	DeclMethod:          "CXXMethod",
	DeclConstructor:     "CXXConstructor",
	DeclDestructor:      "CXXDestructor",
	DeclEnum:            "Enum",
	DeclEnumConstant:    "EnumConstant",
	DeclVar:             "Var",
	DeclParmVar:         "ParmVar",
	DeclAccessSpec:      "AccessSpec",
	DeclUsing:           "Using",
	DeclFriend:          "Friend",
	DeclLinkageSpec:     "LinkageSpec",
	DeclUnexposed:       "Unexposed",
}

// String returns the frontend's name for the declaration kind.
func (k DeclKind) String() string {
	if k >= 0 && int(k) < len(declKindNames) {
		return declKindNames[k]
	}
	return "Unexposed"
}

// TypeKind identifies the concrete kind of an unqualified type.
type TypeKind int

const (
	TypeBuiltin TypeKind = iota
	TypePointer
	TypeLValueReference
	TypeRValueReference
	TypeMemberPointer
	TypeConstantArray
	TypeIncompleteArray
	TypeFunctionProto
	TypeRecord
	TypeEnum
	TypeTypedef
	TypeElaborated
	TypeParen
	TypeUnexposed
)

var typeKindNames = [...]string{
	TypeBuiltin:         "Builtin",
	TypePointer:         "Pointer",
	TypeLValueReference: "LValueReference",
	TypeRValueReference: "RValueReference",
	TypeMemberPointer:   "MemberPointer",
	TypeConstantArray:   "ConstantArray",
	TypeIncompleteArray: "IncompleteArray",
	TypeFunctionProto:   "FunctionProto",
	TypeRecord:          "Record",
	TypeEnum:            "Enum",
	TypeTypedef:         "Typedef",
	TypeElaborated:      "Elaborated",
	TypeParen:           "Paren",
	TypeUnexposed:       "Unexposed",
}

// String returns the frontend's name for the type kind.
func (k TypeKind) String() string {
	if k >= 0 && int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return "Unexposed"
}

// AccessSpecifier describes member access within a record context.
type AccessSpecifier int

const (
	// AccessNone marks declarations outside any record context.
	AccessNone AccessSpecifier = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

// Qualifiers is a bit set of local cv-qualifiers attached to a type use.
type Qualifiers uint8

const (
	QualConst Qualifiers = 1 << iota
	QualVolatile
	QualRestrict
)

// SourceLocation is a post-macro-expansion source position. The zero
// value is invalid and means the declaration has no usable location.
type SourceLocation struct {
	// File is the frontend's identity for the owning source file.
	// Equal strings denote the same file.
	File string

	// Line is the 1-based expansion line number.
	Line uint32
}

// IsValid reports whether the location refers to a real file position.
func (l SourceLocation) IsValid() bool {
	return l.File != "" && l.Line != 0
}

// Decl is an opaque handle to one declaration instance owned by the
// frontend. Multiple instances (a forward declaration and its
// definition, a re-opened namespace) may denote one logical entity;
// CanonicalDecl resolves to the single representative all of them share.
type Decl interface {
	// Kind returns the declaration's kind tag.
	Kind() DeclKind

	// ID returns a stable opaque identity for this instance. Two handles
	// with equal IDs must be treated as the same declaration.
	ID() string

	// CanonicalDecl returns the canonical representative of this
	// declaration. It returns the receiver when the declaration is its
	// own representative.
	CanonicalDecl() Decl

	// Name returns the declared name, or "" when anonymous.
	Name() string

	// Context returns the enclosing declaration context, or nil for the
	// translation unit.
	Context() DeclContext

	// Access returns the member access when the context is a record,
	// AccessNone otherwise.
	Access() AccessSpecifier

	// Location returns the declaration's source location; the zero value
	// means none.
	Location() SourceLocation
}

// DeclContext is a declaration that can contain other declarations.
// A context that is itself a declaration (namespace, record, translation
// unit) is recovered by asserting the value to Decl.
type DeclContext interface {
	// Decls returns the direct child declarations in source order.
	Decls() []Decl

	// Lookup returns the direct members matching name. Overloaded names
	// yield multiple results.
	Lookup(name string) []Decl

	// IsRecord reports whether the context is a class-like record.
	IsRecord() bool
}

// TypedefDecl is a declaration that introduces a name for a type.
type TypedefDecl interface {
	Decl

	// UnderlyingType returns the referenced type, possibly qualified.
	UnderlyingType() QualType
}

// RecordDecl is a class, struct, or union declaration.
type RecordDecl interface {
	Decl

	// IsInjectedClassName reports whether this declaration is the
	// class-name artifact injected into its own scope.
	IsInjectedClassName() bool
}

// Type is an opaque handle to one unqualified type owned by the
// frontend. Kind-specific structure is reached by asserting to the
// narrower interfaces below.
type Type interface {
	// Kind returns the type's kind tag.
	Kind() TypeKind

	// ID returns a stable opaque identity for the type. Two handles with
	// equal IDs denote the same type.
	ID() string
}

// BuiltinType is a fundamental type such as int or double.
type BuiltinType interface {
	Type

	// Spelling returns the canonical spelling of the type.
	Spelling() string
}

// PointerType is a pointer to some (possibly qualified) pointee.
type PointerType interface {
	Type

	// Pointee returns the pointed-to type.
	Pointee() QualType
}

// QualType pairs an unqualified core type with the local cv-qualifiers
// of one particular use. It is a value: two QualTypes are the same
// registry key exactly when the core types' IDs and the qualifier bits
// are both equal.
type QualType struct {
	Type  Type
	Quals Qualifiers
}

// IsNil reports whether the QualType carries no type at all.
func (t QualType) IsNil() bool {
	return t.Type == nil
}

// HasLocalQualifiers reports whether any local cv-qualifier is set.
func (t QualType) HasLocalQualifiers() bool {
	return t.Quals != 0
}

// Unqualified returns the same core type with all local qualifiers
// stripped.
func (t QualType) Unqualified() QualType {
	return QualType{Type: t.Type}
}
