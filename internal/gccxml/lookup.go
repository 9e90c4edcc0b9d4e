package gccxml

import (
	"strings"

	"github.com/ceeaziza/CastXML/internal/ast"
)

// lookupStart registers every declaration matching the scoped name path
// in the given context as a complete start node. A path is segments
// separated by "::"; intermediate segments recurse into every matching
// result that is itself a declaration context, silently dropping the
// rest. Ambiguous final segments register all matches.
func (x *Dumper) lookupStart(dc ast.DeclContext, name string) {
	cur, rest, scoped := strings.Cut(name, "::")
	results := dc.Lookup(cur)
	if !scoped {
		for _, d := range results {
			x.addDeclNode(d, true)
		}
		return
	}
	for _, d := range results {
		if idc, ok := d.(ast.DeclContext); ok {
			x.lookupStart(idc, rest)
		}
	}
}
