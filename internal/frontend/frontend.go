// Package frontend binds tree-sitter parse trees of C and C++ sources to
// the declaration and type surface consumed by the GCC-XML serializer.
//
// Parsing itself is delegated entirely to the tree-sitter grammars; this
// package only lowers the resulting syntax tree into the handles defined
// by internal/ast: a translation unit containing namespaces, typedefs,
// records with access sections, and the types they reference.
package frontend

import (
	"context"
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"

	"github.com/ceeaziza/CastXML/internal/ast"
)

// Language selects the grammar used to parse a source file.
type Language string

const (
	// C selects the C grammar.
	C Language = "c"
	// Cpp selects the C++ grammar.
	Cpp Language = "cpp"
)

// Parser wraps a tree-sitter parser for one language.
type Parser struct {
	parser *sitter.Parser
	lang   Language
}

// ParseResult holds a parsed source file and its syntax tree.
type ParseResult struct {
	// Tree is the complete tree-sitter parse tree.
	Tree *sitter.Tree
	// Root is the root node of the tree.
	Root *sitter.Node
	// Source is the parsed source text.
	Source []byte
	// FilePath is the path of the source file, empty for in-memory input.
	FilePath string
	// Language is the grammar the source was parsed with.
	Language Language
}

// NewParser creates a parser for the given language.
// Returns an UnsupportedLanguageError for anything but C and C++.
func NewParser(lang Language) (*Parser, error) {
	p := sitter.NewParser()
	switch lang {
	case C:
		p.SetLanguage(c.GetLanguage())
	case Cpp:
		p.SetLanguage(cpp.GetLanguage())
	default:
		return nil, &UnsupportedLanguageError{Language: string(lang)}
	}
	return &Parser{parser: p, lang: lang}, nil
}

// Parse parses source text and returns the syntax tree.
func (p *Parser) Parse(source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}
	return &ParseResult{
		Tree:     tree,
		Root:     tree.RootNode(),
		Source:   source,
		Language: p.lang,
	}, nil
}

// ParseFile parses a source file from disk.
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}
	result, err := p.Parse(source)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.File = path
		}
		return nil, err
	}
	result.FilePath = path
	return result, nil
}

// Language returns the language this parser is configured for.
func (p *Parser) Language() Language {
	return p.lang
}

// Close releases parser resources. The parser must not be used after.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
		p.parser = nil
	}
}

// Close releases the parse tree resources. The lowered declarations from
// TranslationUnit remain valid afterwards.
func (r *ParseResult) Close() {
	if r.Tree != nil {
		r.Tree.Close()
		r.Tree = nil
		r.Root = nil
	}
}

// HasErrors reports whether the parse tree contains syntax errors.
func (r *ParseResult) HasErrors() bool {
	if r.Root == nil {
		return false
	}
	return r.Root.HasError()
}

// LanguageFromExtension returns the language for a file extension, or ""
// if the extension is not recognized.
func LanguageFromExtension(ext string) Language {
	switch ext {
	case ".c":
		return C
	case ".h", ".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx":
		return Cpp
	default:
		return ""
	}
}

// LoadFile parses path with the grammar matching its extension and
// lowers it to the translation unit declaration.
func LoadFile(path string) (ast.Decl, error) {
	lang := LanguageFromExtension(filepath.Ext(path))
	if lang == "" {
		return nil, &UnsupportedLanguageError{Language: filepath.Ext(path)}
	}
	p, err := NewParser(lang)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	result, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	return result.TranslationUnit(), nil
}
