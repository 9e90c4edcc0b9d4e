package gccxml

import (
	"io"
	"testing"

	"github.com/ceeaziza/CastXML/internal/ast"
)

func TestLookupStart(t *testing.T) {
	tu := &fakeDecl{kind: ast.DeclTranslationUnit, id: "tu"}
	n := &fakeDecl{kind: ast.DeclNamespace, id: "n", name: "N", parent: tu}
	inner := &fakeDecl{kind: ast.DeclNamespace, id: "inner", name: "M", parent: n}
	leaf := &fakeDecl{kind: ast.DeclTypedef, id: "leaf", name: "T", parent: inner,
		underlying: ast.QualType{Type: builtin("int")}}
	// Two overloads of f plus a variable named like a scope segment.
	f1 := &fakeDecl{kind: ast.DeclFunction, id: "f1", name: "f", parent: n}
	f2 := &fakeDecl{kind: ast.DeclFunction, id: "f2", name: "f", parent: n}
	blocker := &fakeDecl{kind: ast.DeclVar, id: "blk", name: "V", parent: tu}
	tu.children = []ast.Decl{n, blocker}
	n.children = []ast.Decl{inner, f1, f2}
	inner.children = []ast.Decl{leaf}

	t.Run("multi segment path reaches the leaf", func(t *testing.T) {
		x := NewDumper(io.Discard, nil)
		x.lookupStart(tu, "N::M::T")
		if got := x.declNodes["leaf"]; got == nil || !got.complete {
			t.Fatalf("leaf not registered complete: %+v", got)
		}
		if len(x.queue) != 1 {
			t.Errorf("queued %d nodes, want 1", len(x.queue))
		}
	})

	t.Run("ambiguous final segment registers all matches", func(t *testing.T) {
		x := NewDumper(io.Discard, nil)
		x.lookupStart(tu, "N::f")
		if x.declNodes["f1"] == nil || x.declNodes["f2"] == nil {
			t.Error("not all overloads registered")
		}
		if len(x.queue) != 2 {
			t.Errorf("queued %d nodes, want 2", len(x.queue))
		}
	})

	t.Run("non-context branch is dropped silently", func(t *testing.T) {
		x := NewDumper(io.Discard, nil)
		x.lookupStart(tu, "V::y")
		if x.nodeCount != 0 {
			t.Errorf("registered %d nodes, want 0", x.nodeCount)
		}
	})

	t.Run("unknown name contributes nothing", func(t *testing.T) {
		x := NewDumper(io.Discard, nil)
		x.lookupStart(tu, "missing::T")
		if x.nodeCount != 0 || len(x.queue) != 0 {
			t.Errorf("registered %d nodes, queued %d, want none", x.nodeCount, len(x.queue))
		}
	})
}
