package frontend

import "github.com/ceeaziza/CastXML/internal/ast"

// decl is the common implementation behind every lowered declaration.
// The self field carries the outermost value so CanonicalDecl returns
// the full handle even when decl is embedded.
type decl struct {
	kind   ast.DeclKind
	id     string
	name   string
	parent ast.DeclContext
	canon  ast.Decl
	access ast.AccessSpecifier
	loc    ast.SourceLocation
	self   ast.Decl
}

func (d *decl) Kind() ast.DeclKind { return d.kind }
func (d *decl) ID() string         { return d.id }
func (d *decl) Name() string       { return d.name }

func (d *decl) CanonicalDecl() ast.Decl {
	if d.canon != nil {
		return d.canon
	}
	return d.self
}

func (d *decl) Context() ast.DeclContext  { return d.parent }
func (d *decl) Access() ast.AccessSpecifier { return d.access }
func (d *decl) Location() ast.SourceLocation { return d.loc }

// contextDecl is a declaration that contains other declarations: the
// translation unit, namespaces, and records. Children of re-opened
// namespaces are merged onto the canonical instance, so Decls and Lookup
// see the union.
type contextDecl struct {
	decl
	record   bool
	children []ast.Decl
}

func (c *contextDecl) Decls() []ast.Decl { return c.children }

func (c *contextDecl) Lookup(name string) []ast.Decl {
	var out []ast.Decl
	for _, d := range c.children {
		if d.Name() == name {
			out = append(out, d)
		}
	}
	return out
}

func (c *contextDecl) IsRecord() bool { return c.record }

func (c *contextDecl) add(d ast.Decl) {
	c.children = append(c.children, d)
}

// typedefDecl is a typedef or alias declaration with its underlying type.
type typedefDecl struct {
	decl
	underlying ast.QualType
}

func (t *typedefDecl) UnderlyingType() ast.QualType { return t.underlying }

// recordDecl is a class, struct, or union definition. Tree-sitter does
// not materialize injected class names, so IsInjectedClassName is
// constantly false here.
type recordDecl struct {
	contextDecl
}

func (r *recordDecl) IsInjectedClassName() bool { return false }
