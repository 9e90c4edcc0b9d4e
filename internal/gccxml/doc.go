// Package gccxml serializes a frontend-owned AST into the legacy GCC-XML
// document format.
//
// # Overview
//
// The serializer is a lazy, two-phase graph exporter. Nodes (declarations
// and types) are discovered only through frontend accessor calls, may form
// cycles, and are emitted exactly once each. Every node is assigned a
// dense numeric identifier on first encounter, and every cross-reference
// written anywhere in the document resolves to an element emitted in that
// same document.
//
// # Traversal
//
// A run proceeds through two drains of a single FIFO frontier:
//
//  1. Complete drain. The start set (resolved from scoped name paths, or
//     the whole translation unit) is registered as complete and drained.
//     References discovered along the way register their targets but only
//     complete requests enqueue; contexts and non-forced types accumulate
//     as stub registrations.
//  2. Incomplete drain. Every registered node still marked incomplete is
//     enqueued once and drained. New references discovered here enqueue
//     immediately, so the pass terminates once the finite reachable set
//     is exhausted.
//
// A third, trivial drain writes one File element per source file that any
// location attribute mentioned.
//
// # Identifiers
//
// Declarations are keyed by their canonical representative, so forward
// declarations and definitions collapse to one identifier. Types are
// keyed by core type identity plus local cv-qualifier bits; references to
// a qualified type use the unqualified core's identifier with c/v/r
// suffix characters appended.
package gccxml
