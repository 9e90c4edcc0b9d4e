package gccxml

import (
	"sort"

	"github.com/ceeaziza/CastXML/internal/ast"
)

// getContextIDRef returns the identifier of the element defining the
// given declaration context, registering it as a stub reference. It
// returns 0 when the context is not itself a declaration.
func (x *Dumper) getContextIDRef(dc ast.DeclContext) uint32 {
	if d, ok := dc.(ast.Decl); ok {
		return x.addDeclNode(d, false)
	}
	return 0
}

// getTypeIDRef returns the identifier to reference for the given
// (possibly cv-qualified) type, along with the qualifier booleans for
// the reference suffix. The type is registered as given; when it carries
// local qualifiers the unqualified core type is registered too and its
// identifier is returned instead.
func (x *Dumper) getTypeIDRef(t ast.QualType, complete bool) (id uint32, qc, qv, qr bool) {
	id = x.addTypeNode(t, complete)

	qc = t.Quals&ast.QualConst != 0
	qv = t.Quals&ast.QualVolatile != 0
	qr = t.Quals&ast.QualRestrict != 0

	if t.HasLocalQualifiers() {
		id = x.addTypeNode(t.Unqualified(), complete)
	}
	return id, qc, qv, qr
}

// printTypeIDRef writes the reference token for the given type: the
// unqualified core's identifier prefixed by an underscore, followed by
// c, v, and r characters for each local qualifier, in that order.
func (x *Dumper) printTypeIDRef(t ast.QualType, complete bool) {
	id, qc, qv, qr := x.getTypeIDRef(t, complete)

	suffix := ""
	if qc {
		suffix += "c"
	}
	if qv {
		suffix += "v"
	}
	if qr {
		suffix += "r"
	}
	x.out.printf("_%d%s", id, suffix)
}

// printIDAttribute writes the node's own id="_<n>" attribute.
func (x *Dumper) printIDAttribute(dn *dumpNode) {
	x.out.printf(" id=\"_%d\"", dn.index)
}

// printNameAttribute writes a name="..." attribute.
func (x *Dumper) printNameAttribute(name string) {
	x.out.printf(" name=\"%s\"", EncodeXML(name))
}

// printTypeAttribute writes a type="..." attribute referencing the given
// type, registering it for later output.
func (x *Dumper) printTypeAttribute(t ast.QualType, complete bool) {
	x.out.printf(" type=\"")
	x.printTypeIDRef(t, complete)
	x.out.printf("\"")
}

// printLocationAttribute writes location="f<id>:<line>" file="f<id>"
// line="<line>" for the declaration, registering the owning file.
// Declarations without a valid location get no attributes at all.
func (x *Dumper) printLocationAttribute(d ast.Decl) {
	loc := d.Location()
	if !loc.IsValid() {
		return
	}
	id := x.addDumpFile(loc.File)
	x.out.printf(" location=\"f%d:%d\" file=\"f%d\" line=\"%d\"",
		id, loc.Line, id, loc.Line)
}

// printContextAttribute writes a context="..." attribute referencing the
// enclosing declaration context as a stub, plus an access attribute when
// the context is a record.
func (x *Dumper) printContextAttribute(d ast.Decl) {
	dc := d.Context()
	if dc == nil {
		return
	}
	id := x.getContextIDRef(dc)
	if id == 0 {
		return
	}
	x.out.printf(" context=\"_%d\"", id)
	if dc.IsRecord() {
		switch d.Access() {
		case ast.AccessPrivate:
			x.out.printf(" access=\"private\"")
		case ast.AccessProtected:
			x.out.printf(" access=\"protected\"")
		default:
			x.out.printf(" access=\"public\"")
		}
	}
}

// printMembersAttribute writes a members="..." attribute listing the
// identifiers of the context's direct children, registering each as
// complete. Injected class names and access-specifier markers are
// skipped. The list is duplicate-free and ascending.
func (x *Dumper) printMembersAttribute(dc ast.DeclContext) {
	emitted := make(map[uint32]struct{})
	for _, d := range dc.Decls() {
		switch d.Kind() {
		case ast.DeclRecord:
			if rd, ok := d.(ast.RecordDecl); ok && rd.IsInjectedClassName() {
				continue
			}
		case ast.DeclAccessSpec:
			continue
		}
		if id := x.addDeclNode(d, true); id != 0 {
			emitted[id] = struct{}{}
		}
	}
	if len(emitted) == 0 {
		return
	}

	ids := make([]uint32, 0, len(emitted))
	for id := range emitted {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	x.out.printf(" members=\"")
	sep := ""
	for _, id := range ids {
		x.out.printf("%s_%d", sep, id)
		sep = " "
	}
	x.out.printf("\"")
}
