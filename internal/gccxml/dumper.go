package gccxml

import (
	"fmt"
	"io"

	"github.com/ceeaziza/CastXML/internal/ast"
)

// documentHeader and documentFooter wrap every dump. The version and
// revision values are part of the compatibility contract with downstream
// consumers of the format and must not change.
const (
	documentHeader = "<?xml version=\"1.0\"?>\n" +
		"<GCC_XML version=\"0.9.0\" cvs_revision=\"1.136\">\n"
	documentFooter = "</GCC_XML>\n"
)

// dumpNode records the output status of one AST node.
type dumpNode struct {
	// index orders nodes by first encounter, starting at 1. Zero means
	// the node has not been registered.
	index uint32

	// complete reports whether the node is to be traversed completely.
	complete bool
}

// queueEntry is one frontier item: a declaration or a type together with
// its dump status.
type queueEntry struct {
	// decl is set when the entry is a declaration.
	decl ast.Decl

	// typ is set when the entry is a type.
	typ ast.QualType

	dn *dumpNode
}

// typeKey identifies a type registration: the core type's identity plus
// the local qualifier bits of this particular use.
type typeKey struct {
	id    string
	quals ast.Qualifiers
}

// printer writes the document and latches the first sink error so the
// emitters can stay free of error plumbing.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Dumper holds all serializer state for a single run. It is created per
// run and discarded afterwards; nothing is shared between runs.
type Dumper struct {
	out printer

	// startNames are the scoped name paths seeding the traversal. Empty
	// means the whole translation unit.
	startNames []string

	// nodeCount and fileCount are the monotonic identifier counters.
	nodeCount uint32
	fileCount uint32

	// requireComplete is true during the first drain, where only
	// complete registrations enqueue.
	requireComplete bool

	// declNodes maps canonical declaration identity to dump status.
	declNodes map[string]*dumpNode
	declOrder []declEntry

	// typeNodes maps type identity (core id + qualifier bits) to dump
	// status.
	typeNodes map[typeKey]*dumpNode
	typeOrder []typeEntry

	// fileNodes maps file identity to its file index; fileQueue holds
	// files in registration order for the metadata drain.
	fileNodes map[string]uint32
	fileQueue []string

	// queue is the node traversal frontier, strict FIFO.
	queue []queueEntry
}

type declEntry struct {
	d  ast.Decl
	dn *dumpNode
}

type typeEntry struct {
	t  ast.QualType
	dn *dumpNode
}

// NewDumper prepares a dump of the given start paths to w. An empty
// startNames slice selects the whole translation unit.
func NewDumper(w io.Writer, startNames []string) *Dumper {
	return &Dumper{
		out:             printer{w: w},
		startNames:      startNames,
		requireComplete: true,
		declNodes:       make(map[string]*dumpNode),
		typeNodes:       make(map[typeKey]*dumpNode),
		fileNodes:       make(map[string]uint32),
	}
}

// Dump serializes the AST reachable from tu to w. This is the package
// entry point; it is equivalent to NewDumper followed by Run.
func Dump(w io.Writer, tu ast.Decl, startNames []string) error {
	return NewDumper(w, startNames).Run(tu)
}

// addDeclNode registers a declaration and returns its index. The node is
// keyed by its canonical representative so duplicate instances collapse
// to one identifier.
func (x *Dumper) addDeclNode(d ast.Decl, complete bool) uint32 {
	if d == nil {
		panic("gccxml: registering nil declaration")
	}
	c := d.CanonicalDecl()
	dn := x.declNodes[c.ID()]
	if dn == nil {
		dn = new(dumpNode)
		x.declNodes[c.ID()] = dn
		x.declOrder = append(x.declOrder, declEntry{c, dn})
	}
	return x.addNode(queueEntry{decl: c, dn: dn}, complete)
}

// addTypeNode registers a (possibly qualified) type and returns its
// index.
func (x *Dumper) addTypeNode(t ast.QualType, complete bool) uint32 {
	if t.IsNil() {
		panic("gccxml: registering nil type")
	}
	key := typeKey{id: t.Type.ID(), quals: t.Quals}
	dn := x.typeNodes[key]
	if dn == nil {
		dn = new(dumpNode)
		x.typeNodes[key] = dn
		x.typeOrder = append(x.typeOrder, typeEntry{t, dn})
	}
	return x.addNode(queueEntry{typ: t, dn: dn}, complete)
}

// addNode updates an existing dump node or assigns a fresh index, and
// enqueues the entry according to the current traversal mode. It is the
// common tail of addDeclNode and addTypeNode.
func (x *Dumper) addNode(qe queueEntry, complete bool) uint32 {
	dn := qe.dn
	if dn.index != 0 {
		// Node was already encountered. See if it is now complete.
		if complete && !dn.complete {
			dn.complete = true
			x.queue = append(x.queue, qe)
		}
	} else {
		// New node. Assign the next index in encounter order.
		x.nodeCount++
		dn.index = x.nodeCount
		dn.complete = complete
		if complete || !x.requireComplete {
			x.queue = append(x.queue, qe)
		}
	}
	return dn.index
}

// addDumpFile registers a source file identity and returns its file
// index, queueing it for the metadata drain on first sight.
func (x *Dumper) addDumpFile(file string) uint32 {
	if idx, ok := x.fileNodes[file]; ok {
		return idx
	}
	x.fileCount++
	x.fileNodes[file] = x.fileCount
	x.fileQueue = append(x.fileQueue, file)
	return x.fileCount
}

// queueIncompleteDumpNodes enqueues every registered node that never had
// complete output requested, declarations first, each in first-encounter
// order.
func (x *Dumper) queueIncompleteDumpNodes() {
	for _, e := range x.declOrder {
		if !e.dn.complete {
			x.queue = append(x.queue, queueEntry{decl: e.d, dn: e.dn})
		}
	}
	for _, e := range x.typeOrder {
		if !e.dn.complete {
			x.queue = append(x.queue, queueEntry{typ: e.t, dn: e.dn})
		}
	}
}

// processQueue drains the frontier in FIFO order, dispatching each entry
// to the matching emitter.
func (x *Dumper) processQueue() {
	for len(x.queue) > 0 {
		qe := x.queue[0]
		x.queue = x.queue[1:]
		if qe.decl != nil {
			x.outputDecl(qe.decl, qe.dn)
		} else {
			x.outputType(qe.typ, qe.dn)
		}
	}
}

// processFileQueue writes one File element per registered source file,
// in registration order.
func (x *Dumper) processFileQueue() {
	for _, f := range x.fileQueue {
		x.out.printf("  <File id=\"f%d\" name=\"%s\"/>\n",
			x.fileNodes[f], EncodeXML(f))
	}
}

// Run serializes the AST reachable from the given translation unit.
// It returns the first output-sink error, if any.
func (x *Dumper) Run(tu ast.Decl) error {
	// Seed the frontier.
	if len(x.startNames) > 0 {
		if dc, ok := tu.(ast.DeclContext); ok {
			for _, name := range x.startNames {
				x.lookupStart(dc, name)
			}
		}
	} else {
		// No start specified. Use the whole translation unit.
		x.addDeclNode(tu, true)
	}

	x.out.printf("%s", documentHeader)

	// Dump the complete nodes.
	x.processQueue()

	// Queue all remaining incomplete nodes and dump them.
	x.requireComplete = false
	x.queueIncompleteDumpNodes()
	x.processQueue()

	// Dump the file metadata.
	x.processFileQueue()

	x.out.printf("%s", documentFooter)
	return x.out.err
}
