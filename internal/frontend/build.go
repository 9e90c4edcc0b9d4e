package frontend

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ceeaziza/CastXML/internal/ast"
)

// nodeDeclKinds maps syntax node types with no dedicated lowering to the
// declaration kind they register as.
var nodeDeclKinds = map[string]ast.DeclKind{
	"function_definition": ast.DeclFunction,
	"declaration":         ast.DeclVar,
	"field_declaration":   ast.DeclField,
	"enum_specifier":      ast.DeclEnum,
	"using_declaration":   ast.DeclUsing,
	"friend_declaration":  ast.DeclFriend,
}

// builder lowers one parse tree into the ast handles. All state is local
// to a single TranslationUnit call.
type builder struct {
	src  []byte
	file string

	types  *typeInterner
	nextID int

	// namespaces maps (parent context, name) to the canonical namespace
	// instance, so re-opened namespaces merge their members.
	namespaces map[nsKey]*contextDecl
}

type nsKey struct {
	parent *contextDecl
	name   string
}

// TranslationUnit lowers the parse tree into the translation unit
// declaration consumed by the serializer. The returned handles copy
// everything they need; the parse tree may be closed afterwards.
func (r *ParseResult) TranslationUnit() ast.Decl {
	b := &builder{
		src:        r.Source,
		file:       r.FilePath,
		types:      newTypeInterner(),
		namespaces: make(map[nsKey]*contextDecl),
	}
	tu := &contextDecl{decl: decl{kind: ast.DeclTranslationUnit, id: b.declID()}}
	tu.self = tu
	if r.Root != nil {
		b.walkChildren(r.Root, tu, ast.AccessNone)
	}
	return tu
}

func (b *builder) declID() string {
	b.nextID++
	return fmt.Sprintf("d%d", b.nextID)
}

func (b *builder) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(b.src)
}

func (b *builder) location(node *sitter.Node) ast.SourceLocation {
	if b.file == "" {
		return ast.SourceLocation{}
	}
	return ast.SourceLocation{File: b.file, Line: node.StartPoint().Row + 1}
}

// walkChildren lowers the named children of a scope node into parent.
// Access specifier markers update the running access for subsequent
// members and are recorded as marker declarations themselves.
func (b *builder) walkChildren(node *sitter.Node, parent *contextDecl, access ast.AccessSpecifier) {
	cur := access
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "access_specifier" {
			cur = accessFromKeyword(b.text(child))
			marker := &decl{
				kind:   ast.DeclAccessSpec,
				id:     b.declID(),
				parent: parent.self.(ast.DeclContext),
				loc:    b.location(child),
			}
			marker.self = marker
			parent.add(marker)
			continue
		}
		b.lowerDecl(child, parent, cur)
	}
}

func accessFromKeyword(kw string) ast.AccessSpecifier {
	switch kw {
	case "public":
		return ast.AccessPublic
	case "protected":
		return ast.AccessProtected
	case "private":
		return ast.AccessPrivate
	}
	return ast.AccessNone
}

func (b *builder) lowerDecl(node *sitter.Node, parent *contextDecl, access ast.AccessSpecifier) {
	switch node.Type() {
	case "namespace_definition":
		b.lowerNamespace(node, parent)
	case "type_definition":
		b.lowerTypedef(node, parent, access)
	case "alias_declaration":
		b.lowerAlias(node, parent, access)
	case "class_specifier":
		b.lowerRecord(node, parent, access, ast.AccessPrivate)
	case "struct_specifier", "union_specifier":
		b.lowerRecord(node, parent, access, ast.AccessPublic)
	case "template_declaration", "linkage_specification":
		// Lower through to the wrapped declarations; the wrapper itself
		// has no standing of its own in the output.
		b.walkChildren(node, parent, access)
	default:
		kind, ok := nodeDeclKinds[node.Type()]
		if !ok {
			// Comments, preprocessor lines, stray statements.
			return
		}
		// A record definition with no declared variable parses as a
		// declaration wrapping the specifier in some grammar versions.
		if kind == ast.DeclVar && node.ChildByFieldName("declarator") == nil {
			if spec := recordSpecifierChild(node); spec != nil {
				b.lowerDecl(spec, parent, access)
				return
			}
		}
		if kind == ast.DeclFunction && parent.record {
			kind = ast.DeclMethod
		}
		d := &decl{
			kind:   kind,
			id:     b.declID(),
			name:   b.declName(node),
			parent: parent.self.(ast.DeclContext),
			access: access,
			loc:    b.location(node),
		}
		d.self = d
		parent.add(d)
	}
}

// recordSpecifierChild returns the record specifier nested directly under
// a declaration node, if the specifier carries a body of its own.
func recordSpecifierChild(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "struct_specifier", "class_specifier", "union_specifier":
			if child.ChildByFieldName("body") != nil {
				return child
			}
		}
	}
	return nil
}

// lowerNamespace lowers a namespace definition. Re-opened namespaces get
// their own declaration instance whose canonical representative is the
// first definition; members land on the canonical instance.
func (b *builder) lowerNamespace(node *sitter.Node, parent *contextDecl) {
	name := b.text(node.ChildByFieldName("name"))
	key := nsKey{parent: parent, name: name}

	ns := &contextDecl{decl: decl{
		kind:   ast.DeclNamespace,
		id:     b.declID(),
		name:   name,
		parent: parent.self.(ast.DeclContext),
		loc:    b.location(node),
	}}
	ns.self = ns

	canonical := b.namespaces[key]
	if canonical == nil {
		canonical = ns
		b.namespaces[key] = ns
	} else {
		ns.canon = canonical.self
	}
	parent.add(ns)

	if body := node.ChildByFieldName("body"); body != nil {
		b.walkChildren(body, canonical, ast.AccessNone)
	}
}

// lowerTypedef lowers `typedef <type> <declarator>;`.
func (b *builder) lowerTypedef(node *sitter.Node, parent *contextDecl, access ast.AccessSpecifier) {
	base := ast.QualType{
		Type:  b.lowerTypeNode(node.ChildByFieldName("type")),
		Quals: b.qualifiers(node),
	}
	declarator := node.ChildByFieldName("declarator")
	underlying := b.wrapDeclarator(declarator, base)

	td := &typedefDecl{
		decl: decl{
			kind:   ast.DeclTypedef,
			id:     b.declID(),
			name:   b.declaratorName(declarator),
			parent: parent.self.(ast.DeclContext),
			access: access,
			loc:    b.location(node),
		},
		underlying: underlying,
	}
	td.self = td
	parent.add(td)
}

// lowerAlias lowers `using <name> = <type>;` as a typedef.
func (b *builder) lowerAlias(node *sitter.Node, parent *contextDecl, access ast.AccessSpecifier) {
	underlying := b.lowerTypeDescriptor(node.ChildByFieldName("type"))

	td := &typedefDecl{
		decl: decl{
			kind:   ast.DeclTypedef,
			id:     b.declID(),
			name:   b.text(node.ChildByFieldName("name")),
			parent: parent.self.(ast.DeclContext),
			access: access,
			loc:    b.location(node),
		},
		underlying: underlying,
	}
	td.self = td
	parent.add(td)
}

func (b *builder) lowerRecord(node *sitter.Node, parent *contextDecl, access, defaultMemberAccess ast.AccessSpecifier) {
	rec := &recordDecl{contextDecl: contextDecl{
		decl: decl{
			kind:   ast.DeclRecord,
			id:     b.declID(),
			name:   b.text(node.ChildByFieldName("name")),
			parent: parent.self.(ast.DeclContext),
			access: access,
			loc:    b.location(node),
		},
		record: true,
	}}
	rec.self = rec
	parent.add(rec)

	if body := node.ChildByFieldName("body"); body != nil {
		b.walkChildren(body, &rec.contextDecl, defaultMemberAccess)
	}
}

// lowerTypeDescriptor lowers a type_descriptor node: a type with
// optional qualifiers and an abstract declarator.
func (b *builder) lowerTypeDescriptor(node *sitter.Node) ast.QualType {
	if node == nil {
		return ast.QualType{Type: b.types.Named(ast.TypeUnexposed, "")}
	}
	qt := ast.QualType{
		Type:  b.lowerTypeNode(node.ChildByFieldName("type")),
		Quals: b.qualifiers(node),
	}
	d := node.ChildByFieldName("declarator")
	for d != nil && d.Type() == "abstract_pointer_declarator" {
		qt = ast.QualType{Type: b.types.Pointer(qt)}
		d = d.ChildByFieldName("declarator")
	}
	return qt
}

// lowerTypeNode lowers the core type specifier of a declaration.
func (b *builder) lowerTypeNode(node *sitter.Node) ast.Type {
	if node == nil {
		return b.types.Named(ast.TypeUnexposed, "")
	}
	switch node.Type() {
	case "primitive_type", "sized_type_specifier":
		return b.types.Builtin(b.text(node))
	case "struct_specifier", "class_specifier", "union_specifier":
		name := b.text(node.ChildByFieldName("name"))
		return b.types.Named(ast.TypeRecord, name)
	case "enum_specifier":
		name := b.text(node.ChildByFieldName("name"))
		return b.types.Named(ast.TypeEnum, name)
	default:
		// type_identifier, qualified_identifier, and anything else the
		// grammar cannot resolve without semantic analysis.
		return b.types.Named(ast.TypeUnexposed, b.text(node))
	}
}

// qualifiers collects the local cv-qualifier children of a declaration
// or type descriptor node.
func (b *builder) qualifiers(node *sitter.Node) ast.Qualifiers {
	var q ast.Qualifiers
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "type_qualifier" {
			continue
		}
		switch b.text(child) {
		case "const":
			q |= ast.QualConst
		case "volatile":
			q |= ast.QualVolatile
		case "restrict", "__restrict", "__restrict__":
			q |= ast.QualRestrict
		}
	}
	return q
}

// wrapDeclarator applies pointer declarators around the base type and
// stops at the declared name. Function declarators collapse to an
// unexposed function type; unparsed shapes fall back to the base.
func (b *builder) wrapDeclarator(node *sitter.Node, base ast.QualType) ast.QualType {
	for node != nil {
		switch node.Type() {
		case "pointer_declarator":
			base = ast.QualType{Type: b.types.Pointer(base)}
			node = node.ChildByFieldName("declarator")
		case "function_declarator":
			return ast.QualType{
				Type: b.types.Named(ast.TypeFunctionProto, b.text(node)),
			}
		default:
			return base
		}
	}
	return base
}

// declName extracts the declared name from a declaration node, looking
// through its declarator chain.
func (b *builder) declName(node *sitter.Node) string {
	if n := node.ChildByFieldName("name"); n != nil {
		return b.text(n)
	}
	return b.declaratorName(node.ChildByFieldName("declarator"))
}

// declaratorName descends a declarator chain to the declared identifier.
func (b *builder) declaratorName(node *sitter.Node) string {
	for node != nil {
		switch node.Type() {
		case "identifier", "field_identifier", "type_identifier",
			"qualified_identifier", "destructor_name", "operator_name":
			return b.text(node)
		case "init_declarator", "pointer_declarator", "function_declarator",
			"array_declarator", "parenthesized_declarator", "reference_declarator":
			if d := node.ChildByFieldName("declarator"); d != nil {
				node = d
				continue
			}
			// Some wrappers keep the declarator as an unnamed child.
			if node.NamedChildCount() > 0 {
				node = node.NamedChild(0)
				continue
			}
			return ""
		default:
			return ""
		}
	}
	return ""
}
