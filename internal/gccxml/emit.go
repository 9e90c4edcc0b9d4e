package gccxml

import "github.com/ceeaziza/CastXML/internal/ast"

// declEmitters dispatches declaration output by kind. Kinds without an
// entry fall back to the Unimplemented record, which keeps every
// assigned identifier defined in the document.
var declEmitters = map[ast.DeclKind]func(*Dumper, ast.Decl, *dumpNode){
	ast.DeclTranslationUnit: (*Dumper).outputTranslationUnitDecl,
	ast.DeclNamespace:       (*Dumper).outputNamespaceDecl,
	ast.DeclTypedef:         (*Dumper).outputTypedefDecl,
}

// typeEmitters dispatches unqualified type output by kind.
var typeEmitters = map[ast.TypeKind]func(*Dumper, ast.Type, *dumpNode){
	ast.TypeBuiltin: (*Dumper).outputBuiltinType,
	ast.TypePointer: (*Dumper).outputPointerType,
}

// outputDecl dispatches output of one declaration.
func (x *Dumper) outputDecl(d ast.Decl, dn *dumpNode) {
	if emit, ok := declEmitters[d.Kind()]; ok {
		emit(x, d, dn)
		return
	}
	x.outputUnimplementedDecl(d, dn)
}

// outputType dispatches output of one qualified or unqualified type.
func (x *Dumper) outputType(t ast.QualType, dn *dumpNode) {
	if t.HasLocalQualifiers() {
		x.outputCvQualifiedType(t, dn)
		return
	}
	if emit, ok := typeEmitters[t.Type.Kind()]; ok {
		emit(x, t.Type, dn)
		return
	}
	x.outputUnimplementedType(t.Type, dn)
}

// outputCvQualifiedType handles a type registration that carries local
// qualifiers. References to such a type already point at the unqualified
// core element with the qualifier suffix appended, so nothing is written
// for the wrapper itself.
// TODO: emit a CvQualifiedType element that references the unqualified
// type element and lists qualifier attributes.
func (x *Dumper) outputCvQualifiedType(t ast.QualType, dn *dumpNode) {
	_ = t
	_ = dn
}

func (x *Dumper) outputUnimplementedDecl(d ast.Decl, dn *dumpNode) {
	x.out.printf("  <Unimplemented id=\"_%d\" kind=\"%s\"/>\n",
		dn.index, EncodeXML(d.Kind().String()))
}

func (x *Dumper) outputUnimplementedType(t ast.Type, dn *dumpNode) {
	x.out.printf("  <Unimplemented id=\"_%d\" type_class=\"%s\"/>\n",
		dn.index, EncodeXML(t.Kind().String()))
}

// outputTranslationUnitDecl writes the whole-program scope as the
// global namespace element, named "::".
func (x *Dumper) outputTranslationUnitDecl(d ast.Decl, dn *dumpNode) {
	x.out.printf("  <Namespace")
	x.printIDAttribute(dn)
	x.printNameAttribute("::")
	if dn.complete {
		if dc, ok := d.(ast.DeclContext); ok {
			x.printMembersAttribute(dc)
		}
	}
	x.out.printf("/>\n")
}

func (x *Dumper) outputNamespaceDecl(d ast.Decl, dn *dumpNode) {
	x.out.printf("  <Namespace")
	x.printIDAttribute(dn)
	x.printNameAttribute(d.Name())
	x.printContextAttribute(d)
	if dn.complete {
		if dc, ok := d.(ast.DeclContext); ok {
			x.printMembersAttribute(dc)
		}
	}
	x.out.printf("/>\n")
}

func (x *Dumper) outputTypedefDecl(d ast.Decl, dn *dumpNode) {
	x.out.printf("  <Typedef")
	x.printIDAttribute(dn)
	x.printNameAttribute(d.Name())
	if td, ok := d.(ast.TypedefDecl); ok {
		x.printTypeAttribute(td.UnderlyingType(), dn.complete)
	}
	x.printContextAttribute(d)
	x.printLocationAttribute(d)
	x.out.printf("/>\n")
}

func (x *Dumper) outputBuiltinType(t ast.Type, dn *dumpNode) {
	x.out.printf("  <FundamentalType")
	x.printIDAttribute(dn)
	if bt, ok := t.(ast.BuiltinType); ok {
		x.printNameAttribute(bt.Spelling())
	}
	x.out.printf("/>\n")
}

func (x *Dumper) outputPointerType(t ast.Type, dn *dumpNode) {
	x.out.printf("  <PointerType")
	x.printIDAttribute(dn)
	if pt, ok := t.(ast.PointerType); ok {
		x.printTypeAttribute(pt.Pointee(), dn.complete)
	}
	x.out.printf("/>\n")
}
