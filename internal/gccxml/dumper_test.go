package gccxml

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/ceeaziza/CastXML/internal/ast"
)

// fakeDecl is a hand-built frontend declaration for serializer tests.
// It implements ast.Decl, ast.DeclContext, ast.TypedefDecl, and
// ast.RecordDecl; tests only populate the fields the kind under test
// needs.
type fakeDecl struct {
	kind       ast.DeclKind
	id         string
	name       string
	parent     *fakeDecl
	canon      *fakeDecl
	access     ast.AccessSpecifier
	loc        ast.SourceLocation
	children   []ast.Decl
	record     bool
	injected   bool
	underlying ast.QualType
}

func (d *fakeDecl) Kind() ast.DeclKind { return d.kind }
func (d *fakeDecl) ID() string         { return d.id }
func (d *fakeDecl) Name() string       { return d.name }

func (d *fakeDecl) CanonicalDecl() ast.Decl {
	if d.canon != nil {
		return d.canon
	}
	return d
}

func (d *fakeDecl) Context() ast.DeclContext {
	if d.parent == nil {
		return nil
	}
	return d.parent
}

func (d *fakeDecl) Access() ast.AccessSpecifier { return d.access }
func (d *fakeDecl) Location() ast.SourceLocation {
	return d.loc
}

func (d *fakeDecl) Decls() []ast.Decl { return d.children }

func (d *fakeDecl) Lookup(name string) []ast.Decl {
	var out []ast.Decl
	for _, c := range d.children {
		if c.Name() == name {
			out = append(out, c)
		}
	}
	return out
}

func (d *fakeDecl) IsRecord() bool              { return d.record }
func (d *fakeDecl) IsInjectedClassName() bool   { return d.injected }
func (d *fakeDecl) UnderlyingType() ast.QualType { return d.underlying }

// fakeType implements ast.Type, ast.BuiltinType, and ast.PointerType.
type fakeType struct {
	kind     ast.TypeKind
	id       string
	spelling string
	pointee  ast.QualType
}

func (t *fakeType) Kind() ast.TypeKind    { return t.kind }
func (t *fakeType) ID() string            { return t.id }
func (t *fakeType) Spelling() string      { return t.spelling }
func (t *fakeType) Pointee() ast.QualType { return t.pointee }

func builtin(spelling string) *fakeType {
	return &fakeType{kind: ast.TypeBuiltin, id: "b:" + spelling, spelling: spelling}
}

// testProgram builds the shared fixture: a translation unit containing
// one namespace N with one typedef T for int inside it.
func testProgram() (tu, n, typT *fakeDecl) {
	tu = &fakeDecl{kind: ast.DeclTranslationUnit, id: "tu"}
	n = &fakeDecl{kind: ast.DeclNamespace, id: "n", name: "N", parent: tu}
	typT = &fakeDecl{
		kind:       ast.DeclTypedef,
		id:         "t",
		name:       "T",
		parent:     n,
		loc:        ast.SourceLocation{File: "input.cxx", Line: 2},
		underlying: ast.QualType{Type: builtin("int")},
	}
	tu.children = []ast.Decl{n}
	n.children = []ast.Decl{typT}
	return tu, n, typT
}

func TestDumpWholeProgram(t *testing.T) {
	tu, _, _ := testProgram()

	var buf bytes.Buffer
	if err := Dump(&buf, tu, nil); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	want := `<?xml version="1.0"?>
<GCC_XML version="0.9.0" cvs_revision="1.136">
  <Namespace id="_1" name="::" members="_2"/>
  <Namespace id="_2" name="N" context="_1" members="_3"/>
  <Typedef id="_3" name="T" type="_4" context="_2" location="f1:2" file="f1" line="2"/>
  <FundamentalType id="_4" name="int"/>
  <File id="f1" name="input.cxx"/>
</GCC_XML>
`
	if got := buf.String(); got != want {
		t.Errorf("document mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpStartPath(t *testing.T) {
	tu, _, _ := testProgram()

	var buf bytes.Buffer
	if err := Dump(&buf, tu, []string{"N::T"}); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	// T is expanded first; its context chain is backfilled as stubs in
	// the second phase, without members attributes.
	want := `<?xml version="1.0"?>
<GCC_XML version="0.9.0" cvs_revision="1.136">
  <Typedef id="_1" name="T" type="_2" context="_3" location="f1:2" file="f1" line="2"/>
  <FundamentalType id="_2" name="int"/>
  <Namespace id="_3" name="N" context="_4"/>
  <Namespace id="_4" name="::"/>
  <File id="f1" name="input.cxx"/>
</GCC_XML>
`
	if got := buf.String(); got != want {
		t.Errorf("document mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpMissingLocation(t *testing.T) {
	tu, _, typT := testProgram()
	typT.loc = ast.SourceLocation{}

	var buf bytes.Buffer
	if err := Dump(&buf, tu, nil); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	got := buf.String()
	for _, attr := range []string{"location=", "file=", "line=", "<File"} {
		if strings.Contains(got, attr) {
			t.Errorf("document contains %q for a declaration without a location:\n%s", attr, got)
		}
	}
}

func TestDumpQualifiedTypeReference(t *testing.T) {
	tu, _, typT := testProgram()
	typT.underlying = ast.QualType{Type: builtin("int"), Quals: ast.QualConst}

	var buf bytes.Buffer
	if err := Dump(&buf, tu, nil); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	got := buf.String()

	// The qualified registration takes index 4, the unqualified core
	// index 5; the reference redirects to the core with a "c" suffix.
	if !strings.Contains(got, `type="_5c"`) {
		t.Errorf("expected qualified reference _5c, got:\n%s", got)
	}
	if !strings.Contains(got, `<FundamentalType id="_5" name="int"/>`) {
		t.Errorf("expected unqualified core element _5, got:\n%s", got)
	}
	// The wrapper node occupies identifier 4 but produces no record.
	if strings.Contains(got, `id="_4"`) || strings.Contains(got, "CvQualifiedType") {
		t.Errorf("qualified wrapper node must not produce a record, got:\n%s", got)
	}
}

func TestRegisterCanonicalIdentity(t *testing.T) {
	x := NewDumper(io.Discard, nil)

	def := &fakeDecl{kind: ast.DeclNamespace, id: "def", name: "N"}
	fwd := &fakeDecl{kind: ast.DeclNamespace, id: "fwd", name: "N", canon: def}

	a := x.addDeclNode(def, false)
	b := x.addDeclNode(fwd, false)
	if a != b {
		t.Errorf("canonical duplicates got distinct indices %d and %d", a, b)
	}
	if a != 1 {
		t.Errorf("first index = %d, want 1", a)
	}
}

func TestRegisterDensity(t *testing.T) {
	x := NewDumper(io.Discard, nil)

	for i, d := range []*fakeDecl{
		{kind: ast.DeclVar, id: "a"},
		{kind: ast.DeclVar, id: "b"},
		{kind: ast.DeclVar, id: "c"},
	} {
		if got := x.addDeclNode(d, true); got != uint32(i+1) {
			t.Errorf("index for node %d = %d, want %d", i, got, i+1)
		}
	}
	if got := x.addTypeNode(ast.QualType{Type: builtin("int")}, true); got != 4 {
		t.Errorf("type index = %d, want 4", got)
	}
}

func TestRegisterPromotion(t *testing.T) {
	x := NewDumper(io.Discard, nil)
	d := &fakeDecl{kind: ast.DeclVar, id: "a"}

	t.Run("incomplete registration does not enqueue in phase one", func(t *testing.T) {
		if got := x.addDeclNode(d, false); got != 1 {
			t.Fatalf("index = %d, want 1", got)
		}
		if len(x.queue) != 0 {
			t.Errorf("queue length = %d, want 0", len(x.queue))
		}
	})

	t.Run("promotion to complete enqueues once", func(t *testing.T) {
		x.addDeclNode(d, true)
		if len(x.queue) != 1 {
			t.Errorf("queue length = %d, want 1", len(x.queue))
		}
		if !x.declNodes["a"].complete {
			t.Error("node not marked complete after promotion")
		}
	})

	t.Run("complete flag never demotes", func(t *testing.T) {
		x.addDeclNode(d, false)
		if !x.declNodes["a"].complete {
			t.Error("incomplete re-registration demoted the node")
		}
		if len(x.queue) != 1 {
			t.Errorf("queue length = %d, want 1", len(x.queue))
		}
	})

	t.Run("idempotent re-registration", func(t *testing.T) {
		before := x.declNodes["a"].index
		if got := x.addDeclNode(d, true); got != before {
			t.Errorf("re-registration changed index from %d to %d", before, got)
		}
		if len(x.queue) != 1 {
			t.Errorf("queue length = %d, want 1", len(x.queue))
		}
	})
}

func TestTypeIDRefQualifiers(t *testing.T) {
	x := NewDumper(io.Discard, nil)

	qt := ast.QualType{Type: builtin("int"), Quals: ast.QualConst | ast.QualRestrict}
	id, qc, qv, qr := x.getTypeIDRef(qt, true)

	if !qc || qv || !qr {
		t.Errorf("qualifier booleans = %v %v %v, want true false true", qc, qv, qr)
	}
	// The qualified registration takes index 1; the returned id must be
	// the unqualified core's index 2.
	if id != 2 {
		t.Errorf("reference id = %d, want unqualified core index 2", id)
	}
	if got, _, _, _ := x.getTypeIDRef(qt.Unqualified(), true); got != 2 {
		t.Errorf("unqualified core index = %d, want 2", got)
	}
}

func TestMembersAttributeFiltering(t *testing.T) {
	rec := &fakeDecl{kind: ast.DeclRecord, id: "rec", name: "S", record: true}
	injected := &fakeDecl{kind: ast.DeclRecord, id: "inj", name: "S", parent: rec, injected: true}
	spec := &fakeDecl{kind: ast.DeclAccessSpec, id: "acc", parent: rec}
	fieldDef := &fakeDecl{kind: ast.DeclField, id: "f", name: "x", parent: rec, access: ast.AccessPrivate}
	fieldDup := &fakeDecl{kind: ast.DeclField, id: "fdup", name: "x", parent: rec, canon: fieldDef}
	rec.children = []ast.Decl{injected, spec, fieldDef, fieldDup}

	var buf bytes.Buffer
	x := NewDumper(&buf, nil)
	x.printMembersAttribute(rec)

	// The injected class name and the access marker contribute nothing,
	// and the duplicate field instances collapse to one identifier.
	if got := buf.String(); got != ` members="_1"` {
		t.Errorf("members attribute = %q, want %q", got, ` members="_1"`)
	}
	if len(x.queue) != 1 {
		t.Errorf("queued %d member nodes, want 1", len(x.queue))
	}
}

func TestMembersAttributeOrdering(t *testing.T) {
	ctx := &fakeDecl{kind: ast.DeclNamespace, id: "ns", name: "N"}
	a := &fakeDecl{kind: ast.DeclVar, id: "a", name: "a", parent: ctx}
	b := &fakeDecl{kind: ast.DeclVar, id: "b", name: "b", parent: ctx}
	c := &fakeDecl{kind: ast.DeclVar, id: "c", name: "c", parent: ctx}
	ctx.children = []ast.Decl{a, b, c}

	var buf bytes.Buffer
	x := NewDumper(&buf, nil)
	// Register the last child first so encounter order differs from
	// child order; the attribute must still be ascending by value.
	x.addDeclNode(c, false)
	x.printMembersAttribute(ctx)

	if got := buf.String(); got != ` members="_1 _2 _3"` {
		t.Errorf("members attribute = %q, want %q", got, ` members="_1 _2 _3"`)
	}
}

func TestAccessAttribute(t *testing.T) {
	tests := []struct {
		name   string
		access ast.AccessSpecifier
		want   string
	}{
		{"private member", ast.AccessPrivate, `access="private"`},
		{"protected member", ast.AccessProtected, `access="protected"`},
		{"public member", ast.AccessPublic, `access="public"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeDecl{kind: ast.DeclRecord, id: "rec", name: "S", record: true}
			td := &fakeDecl{
				kind:       ast.DeclTypedef,
				id:         "t",
				name:       "T",
				parent:     rec,
				access:     tt.access,
				underlying: ast.QualType{Type: builtin("int")},
			}
			rec.children = []ast.Decl{td}

			x := NewDumper(io.Discard, nil)
			x.addDeclNode(td, true)

			var buf bytes.Buffer
			x.out = printer{w: &buf}
			x.processQueue()

			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.want)
			}
		})
	}
}

// declIDPattern matches id="_N" on emitted elements; tokenPattern
// matches every underscore-prefixed reference token in attribute values.
var (
	declIDPattern = regexp.MustCompile(`id="_(\d+)"`)
	tokenPattern  = regexp.MustCompile(`_(\d+)`)
)

func TestReferentialClosure(t *testing.T) {
	// A program mixing implemented and unimplemented kinds, qualified
	// types, and a pointer chain.
	tu := &fakeDecl{kind: ast.DeclTranslationUnit, id: "tu"}
	n := &fakeDecl{kind: ast.DeclNamespace, id: "n", name: "N", parent: tu}
	intT := builtin("int")
	ptr := &fakeType{
		kind:    ast.TypePointer,
		id:      "p:const int*",
		pointee: ast.QualType{Type: intT, Quals: ast.QualConst},
	}
	tdef := &fakeDecl{
		kind:       ast.DeclTypedef,
		id:         "t",
		name:       "PCI",
		parent:     n,
		loc:        ast.SourceLocation{File: "a.h", Line: 4},
		underlying: ast.QualType{Type: ptr},
	}
	v := &fakeDecl{kind: ast.DeclVar, id: "v", name: "g", parent: n,
		loc: ast.SourceLocation{File: "b.h", Line: 9}}
	fn := &fakeDecl{kind: ast.DeclFunction, id: "fn", name: "f", parent: tu}
	tu.children = []ast.Decl{n, fn}
	n.children = []ast.Decl{tdef, v}

	var buf bytes.Buffer
	if err := Dump(&buf, tu, nil); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	doc := buf.String()

	defined := make(map[string]bool)
	for _, m := range declIDPattern.FindAllStringSubmatch(doc, -1) {
		defined[m[1]] = true
	}

	for _, attr := range []string{"type=", "context=", "members="} {
		for _, line := range strings.Split(doc, "\n") {
			i := strings.Index(line, attr)
			if i < 0 {
				continue
			}
			value := line[i+len(attr):]
			if j := strings.Index(value[1:], `"`); j >= 0 {
				value = value[:j+2]
			}
			for _, m := range tokenPattern.FindAllStringSubmatch(value, -1) {
				if !defined[m[1]] {
					t.Errorf("reference _%s in %s%s has no defining element", m[1], attr, value)
				}
			}
		}
	}
}

// failingWriter accepts limit bytes and then fails.
type failingWriter struct {
	limit int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.limit <= 0 {
		return 0, errors.New("sink closed")
	}
	w.limit -= len(p)
	return len(p), nil
}

func TestDumpSinkFailure(t *testing.T) {
	tu, _, _ := testProgram()
	err := Dump(&failingWriter{limit: 40}, tu, nil)
	if err == nil {
		t.Fatal("expected sink error, got nil")
	}
	if err.Error() != "sink closed" {
		t.Errorf("unexpected error: %v", err)
	}
}
